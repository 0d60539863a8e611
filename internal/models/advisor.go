package models

import (
	"fmt"
	"time"
)

// Period is a fixed calendar-aligned aggregation window
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Valid reports whether p is one of the known periods
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// EventKind classifies a detected pattern
type EventKind string

const (
	EventKindTrend       EventKind = "trend"
	EventKindCorrelation EventKind = "corr"
	EventKindRhythm      EventKind = "rhythm"
	EventKindAdherence   EventKind = "adherence"
	EventKindCelebration EventKind = "celebration"
	EventKindSelfCare    EventKind = "selfcare"
)

// HourWindow is an inclusive [start,end] hour-of-day range
type HourWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Label renders the window as a short human-readable range
func (w HourWindow) Label() string {
	return fmt.Sprintf("%s–%s", formatHour(w.Start), formatHour(w.End))
}

// formatHour formats an hour (0-23) as a readable string
func formatHour(hour int) string {
	if hour == 0 {
		return "12 AM"
	} else if hour < 12 {
		return fmt.Sprintf("%d AM", hour)
	} else if hour == 12 {
		return "12 PM"
	}
	return fmt.Sprintf("%d PM", hour-12)
}

// PeriodDeltas compares an aggregate to the immediately preceding period
// of the same length.
type PeriodDeltas struct {
	AvgDelta float64 `json:"avg_delta"`
	NDelta   int     `json:"n_delta"`
}

// PeriodNovelty lists tags newly prominent within the current period.
type PeriodNovelty struct {
	EmergingBoosters []string `json:"emerging_boosters"`
	EmergingDrainers []string `json:"emerging_drainers"`
}

// PeriodAgg summarizes mood entries for one (period, anchor) pair.
// Recomputed on demand and never cached beyond the call frame.
type PeriodAgg struct {
	Period     Period        `json:"period"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	N          int           `json:"n"`
	Avg        float64       `json:"avg"` // 0 when N == 0, so delta math always has a number
	TopBooster string        `json:"top_booster,omitempty"`
	TopDrainer string        `json:"top_drainer,omitempty"`
	BestHour   *HourWindow   `json:"best_hour,omitempty"`
	BestDOW    *int          `json:"best_dow,omitempty"` // 0 = Monday .. 6 = Sunday
	Deltas     PeriodDeltas  `json:"deltas"`
	Novelty    PeriodNovelty `json:"novelty"`
}

// EventPayload is the tagged payload carried by an AdvisorEvent. Vars
// returns the interpolation values templates render with.
type EventPayload interface {
	Vars() map[string]string
}

// TrendPayload supports trend / summary-delta events
type TrendPayload struct {
	Avg       float64
	DeltaSign string // "+" or "-"
	DeltaAbs  string // formatted to two decimals
	BestHour  *HourWindow
}

func (p TrendPayload) Vars() map[string]string {
	vars := map[string]string{
		"avg":       fmt.Sprintf("%.2f", p.Avg),
		"deltaSign": p.DeltaSign,
		"deltaAbs":  p.DeltaAbs,
	}
	if p.BestHour != nil {
		vars["bestHour"] = p.BestHour.Label()
	}
	return vars
}

// CorrelationPayload supports booster/drainer correlation events
type CorrelationPayload struct {
	Tag   string
	Role  string // "booster" or "drainer"
	Count int
	Lift  float64 // mean mood with tag minus period mean
}

func (p CorrelationPayload) Vars() map[string]string {
	return map[string]string{
		"tag":   p.Tag,
		"role":  p.Role,
		"count": fmt.Sprintf("%d", p.Count),
		"lift":  fmt.Sprintf("%+.1f", p.Lift),
	}
}

// RhythmPayload supports best-hour / best-day rhythm events
type RhythmPayload struct {
	BestHour *HourWindow
	BestDOW  *int
}

func (p RhythmPayload) Vars() map[string]string {
	vars := map[string]string{}
	if p.BestHour != nil {
		vars["bestHour"] = p.BestHour.Label()
	}
	if p.BestDOW != nil {
		vars["bestDay"] = DayName(*p.BestDOW)
	}
	return vars
}

// AdherencePayload supports gentle check-in-frequency events
type AdherencePayload struct {
	NDelta int
}

func (p AdherencePayload) Vars() map[string]string {
	return map[string]string{"nDelta": fmt.Sprintf("%d", p.NDelta)}
}

// DayName returns the Monday-indexed day name for dow 0..6
func DayName(dow int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if dow < 0 || dow > 6 {
		return ""
	}
	return names[dow]
}

// AdvisorEvent is a detected noteworthy pattern, created by detectors and
// consumed by the composer within the same synthesis pass.
type AdvisorEvent struct {
	ID      string // template-family key, e.g. "week_summary_delta"
	Kind    EventKind
	Score   float64
	Payload EventPayload
}

// Tip is a short actionable suggestion attached to an advisor item
type Tip struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ActionType classifies a suggested external action
type ActionType string

const (
	ActionCall     ActionType = "call"
	ActionMessage  ActionType = "message"
	ActionWhatsApp ActionType = "whatsapp"
	ActionCalendar ActionType = "calendar"
	ActionMaps     ActionType = "maps"
	ActionReminder ActionType = "reminder"
)

// Action is a suggested external action rendered as a deep link
type Action struct {
	Type  ActionType `json:"type"`
	Label string     `json:"label"`
	URL   string     `json:"url"`
}

// AdvisorItem is the final user-facing insight unit, ephemeral per
// rendering pass. The UI shows at most three.
type AdvisorItem struct {
	ID        string    `json:"id"` // unique per render
	CreatedAt time.Time `json:"created_at"`
	Period    Period    `json:"period"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Tips      []Tip     `json:"tips"`
	Actions   []Action  `json:"actions,omitempty"`
}

// FeedbackRecord is the persisted per-template feedback tally
type FeedbackRecord struct {
	Helpful int   `json:"helpful"`
	Not     int   `json:"not"`
	Last    int64 `json:"last"` // epoch ms of last explicit feedback
}

// TagRelevance scores a booster/drainer tag by how strongly it moves mood
// within a window of entries.
type TagRelevance struct {
	Tag      string  `json:"tag"`
	Role     string  `json:"role"` // "booster" or "drainer"
	Count    int     `json:"count"`
	MeanMood float64 `json:"mean_mood"` // mean mood of entries carrying the tag
	Lift     float64 `json:"lift"`      // MeanMood minus the window's overall mean
}

// AdvisorResponse is the API response wrapping a composition pass
type AdvisorResponse struct {
	Items      []AdvisorItem `json:"items"`
	Period     Period        `json:"period"`
	ComputedAt time.Time     `json:"computed_at"`
}
