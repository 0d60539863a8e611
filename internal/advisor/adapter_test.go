package advisor

import (
	"testing"
	"time"

	"github.com/moodloop/backend/internal/models"
)

func TestAdaptEntriesMoodMapping(t *testing.T) {
	tests := []struct {
		mood models.MoodValue
		want int
	}{
		{models.MoodStruggling, 1},
		{models.MoodChallenged, 2},
		{models.MoodOkay, 3},
		{models.MoodGood, 4},
		{models.MoodGreat, 5},
		{models.MoodValue("ecstatic"), 3}, // unknown labels degrade to the midpoint
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			adapted := AdaptEntries([]models.MoodEntry{{
				Timestamp: "2025-03-15T08:00:00Z",
				MoodValue: tt.mood,
			}})
			if adapted[0].Mood != tt.want {
				t.Errorf("Mood = %d, want %d", adapted[0].Mood, tt.want)
			}
		})
	}
}

func TestAdaptEntriesTimestamps(t *testing.T) {
	entries := AdaptEntries([]models.MoodEntry{
		{Timestamp: "2025-03-15T08:00:00Z", MoodValue: models.MoodOkay},
		{Timestamp: "2025-03-15T08:00:00.123Z", MoodValue: models.MoodOkay},
		{Timestamp: "not a timestamp", MoodValue: models.MoodOkay},
		{Timestamp: "", MoodValue: models.MoodOkay},
	})

	want := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC).UnixMilli()
	if entries[0].T != want {
		t.Errorf("T = %d, want %d", entries[0].T, want)
	}
	if entries[1].T != want+123 {
		t.Errorf("fractional T = %d, want %d", entries[1].T, want+123)
	}
	if entries[2].T != InvalidTime {
		t.Errorf("unparseable timestamp T = %d, want InvalidTime", entries[2].T)
	}
	if entries[3].T != InvalidTime {
		t.Errorf("empty timestamp T = %d, want InvalidTime", entries[3].T)
	}
}

func TestAdaptEntriesLocalFallback(t *testing.T) {
	// Zone-less timestamps parse in local time rather than failing
	entries := AdaptEntries([]models.MoodEntry{
		{Timestamp: "2025-03-15T08:30:00", MoodValue: models.MoodGood},
	})

	want := time.Date(2025, 3, 15, 8, 30, 0, 0, time.Local).UnixMilli()
	if entries[0].T != want {
		t.Errorf("T = %d, want %d", entries[0].T, want)
	}
}

func TestAdaptEntriesNeverDrops(t *testing.T) {
	note := "long day"
	in := []models.MoodEntry{
		{Timestamp: "garbage", MoodValue: "garbage", JournalNote: &note, Boosters: []string{"walk"}, Drainers: []string{"meetings"}},
	}
	out := AdaptEntries(in)

	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Note != "long day" {
		t.Errorf("Note = %q, want %q", out[0].Note, "long day")
	}
	if len(out[0].Boosters) != 1 || out[0].Boosters[0] != "walk" {
		t.Errorf("Boosters = %v, want [walk]", out[0].Boosters)
	}
	if len(out[0].Drainers) != 1 || out[0].Drainers[0] != "meetings" {
		t.Errorf("Drainers = %v, want [meetings]", out[0].Drainers)
	}
}

func TestInvalidTimeExcludedByRangeFilters(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

	entries := []models.AdvisorEntry{
		{T: InvalidTime, Mood: 5},
		{T: start.UnixMilli() + 1000, Mood: 3},
	}
	kept := filterRange(entries, start, end)
	if len(kept) != 1 || kept[0].Mood != 3 {
		t.Errorf("filterRange kept %v, want only the valid entry", kept)
	}
}
