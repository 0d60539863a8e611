package models

import "time"

// PostcardType classifies a partner-facing insight postcard
type PostcardType string

const (
	PostcardMoodBooster PostcardType = "mood_booster"
	PostcardGentleNudge PostcardType = "gentle_nudge"
	PostcardRhythmNote  PostcardType = "rhythm_note"
)

// Postcard is a single shareable insight sentence for a connected partner.
// At most one is generated per day.
type Postcard struct {
	Type       PostcardType `json:"type"`
	Text       string       `json:"text"`
	Emoji      string       `json:"emoji"`
	Highlights []string     `json:"highlights,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// DailyInsightItem is a postcard stored inside a day bucket
type DailyInsightItem struct {
	Type      PostcardType `json:"type"`
	Text      string       `json:"text"`
	Emoji     string       `json:"emoji"`
	Timestamp time.Time    `json:"timestamp"`
}

// DailyInsightsDay buckets up to three insight items per calendar day, one
// per type, newest replacing older items of the same type. Counts are
// incremented only on first insertion of a type per day.
type DailyInsightsDay struct {
	Date   string               `json:"date"` // YYYY-MM-DD
	Items  []DailyInsightItem   `json:"items"`
	Counts map[PostcardType]int `json:"counts"`
}

// PartnerContact is the locally-stored contact info actions link to
type PartnerContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdatePartnerContactRequest sets or replaces the partner contact
type UpdatePartnerContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone" binding:"required"`
}

// PartnerSummary is the multi-day rollup for week/month partner views
type PartnerSummary struct {
	Period     Period               `json:"period"`
	Start      time.Time            `json:"start"`
	End        time.Time            `json:"end"`
	Counts     map[PostcardType]int `json:"counts"`
	Deltas     map[PostcardType]int `json:"deltas"` // vs. the prior equal-length period
	Summary    string               `json:"summary"`
	Highlights []DailyInsightItem   `json:"highlights"` // up to 3, first occurrence per type
}
