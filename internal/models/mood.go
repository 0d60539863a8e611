package models

import "time"

// MoodValue is the 5-point ordinal mood scale used by the journaling app.
type MoodValue string

const (
	MoodStruggling MoodValue = "struggling"
	MoodChallenged MoodValue = "challenged"
	MoodOkay       MoodValue = "okay"
	MoodGood       MoodValue = "good"
	MoodGreat      MoodValue = "great"
)

// Valid reports whether v is one of the five known mood values.
func (v MoodValue) Valid() bool {
	switch v {
	case MoodStruggling, MoodChallenged, MoodOkay, MoodGood, MoodGreat:
		return true
	}
	return false
}

// MoodEntry represents a single journaled mood check-in. Entries are
// immutable once created; the advisor core only reads them.
type MoodEntry struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"device_id"`
	Timestamp   string    `json:"timestamp"` // ISO 8601, as recorded by the client
	MoodValue   MoodValue `json:"mood_value"`
	JournalNote *string   `json:"journal_note,omitempty"`
	Boosters    []string  `json:"boosters,omitempty"`
	Drainers    []string  `json:"drainers,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdvisorEntry is the minimal numeric projection of a MoodEntry consumed
// by the aggregator and detectors. Derived fresh on every call, never
// persisted.
type AdvisorEntry struct {
	T        int64 // epoch milliseconds; InvalidTime when the timestamp failed to parse
	Mood     int   // 1..5
	Boosters []string
	Drainers []string
	Note     string
}

// CreateMoodEntryRequest represents the request to record a mood entry
type CreateMoodEntryRequest struct {
	Timestamp   string   `json:"timestamp" binding:"required"`
	MoodValue   string   `json:"mood_value" binding:"required"`
	JournalNote *string  `json:"journal_note"`
	Boosters    []string `json:"boosters"`
	Drainers    []string `json:"drainers"`
}

// FeedbackRequest represents explicit helpful / not-helpful feedback on a
// rendered advisor item's template.
type FeedbackRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	Helpful    *bool  `json:"helpful" binding:"required"`
}
