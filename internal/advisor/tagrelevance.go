package advisor

import (
	"sort"

	"github.com/moodloop/backend/internal/models"
)

// TagRelevance ranks booster and drainer tags by how strongly entries
// carrying them deviate from the window's overall mean mood. It backs the
// lift figures on correlation events and the place suggestions built by
// the action generator.

// ComputeTagRelevance scores every tag seen in the window. Boosters are
// ordered by lift descending (most uplifting first), drainers by lift
// ascending (most draining first); ties break lexicographically.
func ComputeTagRelevance(entries []models.AdvisorEntry) []models.TagRelevance {
	if len(entries) == 0 {
		return nil
	}

	var moodSum int
	type tagStat struct {
		count int
		sum   int
	}
	boosters := make(map[string]*tagStat)
	drainers := make(map[string]*tagStat)

	for _, e := range entries {
		moodSum += e.Mood
		for _, tag := range e.Boosters {
			stat := boosters[tag]
			if stat == nil {
				stat = &tagStat{}
				boosters[tag] = stat
			}
			stat.count++
			stat.sum += e.Mood
		}
		for _, tag := range e.Drainers {
			stat := drainers[tag]
			if stat == nil {
				stat = &tagStat{}
				drainers[tag] = stat
			}
			stat.count++
			stat.sum += e.Mood
		}
	}

	overall := float64(moodSum) / float64(len(entries))

	build := func(stats map[string]*tagStat, role string) []models.TagRelevance {
		out := make([]models.TagRelevance, 0, len(stats))
		for tag, stat := range stats {
			mean := float64(stat.sum) / float64(stat.count)
			out = append(out, models.TagRelevance{
				Tag:      tag,
				Role:     role,
				Count:    stat.count,
				MeanMood: mean,
				Lift:     mean - overall,
			})
		}
		return out
	}

	boosterRanks := build(boosters, "booster")
	sort.Slice(boosterRanks, func(i, j int) bool {
		if boosterRanks[i].Lift != boosterRanks[j].Lift {
			return boosterRanks[i].Lift > boosterRanks[j].Lift
		}
		return boosterRanks[i].Tag < boosterRanks[j].Tag
	})

	drainerRanks := build(drainers, "drainer")
	sort.Slice(drainerRanks, func(i, j int) bool {
		if drainerRanks[i].Lift != drainerRanks[j].Lift {
			return drainerRanks[i].Lift < drainerRanks[j].Lift
		}
		return drainerRanks[i].Tag < drainerRanks[j].Tag
	})

	return append(boosterRanks, drainerRanks...)
}

// TagLift looks up the lift for a specific tag and role; zero when the
// tag was never seen in the window.
func TagLift(ranked []models.TagRelevance, tag, role string) float64 {
	for _, r := range ranked {
		if r.Tag == tag && r.Role == role {
			return r.Lift
		}
	}
	return 0
}

// TopRelevantBooster returns the highest-lift booster tag, or "" when the
// window has none.
func TopRelevantBooster(ranked []models.TagRelevance) string {
	for _, r := range ranked {
		if r.Role == "booster" {
			return r.Tag
		}
	}
	return ""
}
