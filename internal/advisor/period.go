package advisor

import (
	"time"

	"github.com/moodloop/backend/internal/models"
)

// GetPeriodRange returns the inclusive [start,end] calendar window that
// contains anchor, in anchor's location. Weeks are ISO weeks (Monday
// through Sunday). The end bound is the last millisecond of the window,
// so both subsystems filtering with [start,end] inclusive agree exactly.
func GetPeriodRange(period models.Period, anchor time.Time) (time.Time, time.Time) {
	loc := anchor.Location()

	switch period {
	case models.PeriodWeek:
		// Back up to Monday 00:00 local
		offset := (int(anchor.Weekday()) + 6) % 7
		start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc).
			AddDate(0, 0, -offset)
		end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
		return start, end
	case models.PeriodMonth:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
		return start, end
	default: // day
		start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
		return start, end
	}
}

// PreviousAnchor returns an anchor inside the period immediately before
// the one containing anchor.
func PreviousAnchor(period models.Period, anchor time.Time) time.Time {
	switch period {
	case models.PeriodWeek:
		return anchor.AddDate(0, 0, -7)
	case models.PeriodMonth:
		// Anchor from the first of the previous month so short months
		// don't skip (e.g. March 31 would otherwise land in March again).
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start.AddDate(0, -1, 0)
	default:
		return anchor.AddDate(0, 0, -1)
	}
}
