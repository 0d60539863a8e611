package advisor

import (
	"math"
	"time"

	"github.com/moodloop/backend/internal/models"
)

// InvalidTime marks an AdvisorEntry whose timestamp failed to parse. It
// sorts before any real epoch, so inclusive range filters drop it without
// a dedicated validity check.
const InvalidTime int64 = math.MinInt64

// moodScale maps the journaling app's labels onto the 1..5 ordinal scale
var moodScale = map[models.MoodValue]int{
	models.MoodStruggling: 1,
	models.MoodChallenged: 2,
	models.MoodOkay:       3,
	models.MoodGood:       4,
	models.MoodGreat:      5,
}

// moodMidpoint is the lenient default for unknown labels
const moodMidpoint = 3

// AdaptEntries projects raw mood entries into the numeric representation
// consumed by the aggregator and detectors. Unknown mood labels degrade to
// the scale midpoint and malformed timestamps become InvalidTime; nothing
// here ever rejects an entry.
func AdaptEntries(entries []models.MoodEntry) []models.AdvisorEntry {
	adapted := make([]models.AdvisorEntry, 0, len(entries))
	for _, e := range entries {
		adapted = append(adapted, models.AdvisorEntry{
			T:        parseTimestamp(e.Timestamp),
			Mood:     moodToScale(e.MoodValue),
			Boosters: e.Boosters,
			Drainers: e.Drainers,
			Note:     noteText(e.JournalNote),
		})
	}
	return adapted
}

func moodToScale(v models.MoodValue) int {
	if m, ok := moodScale[v]; ok {
		return m
	}
	return moodMidpoint
}

func parseTimestamp(ts string) int64 {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		// Clients occasionally send timestamps without a zone designator
		if local, lerr := time.ParseInLocation("2006-01-02T15:04:05", ts, time.Local); lerr == nil {
			return local.UnixMilli()
		}
		return InvalidTime
	}
	return t.UnixMilli()
}

func noteText(note *string) string {
	if note == nil {
		return ""
	}
	return *note
}
