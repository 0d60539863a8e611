package advisor

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moodloop/backend/internal/models"
)

// Detectors are pure functions over aggregates that emit zero or more
// typed events. All tolerate sparse data by returning nothing; none of
// them ever error.

// Celebration threshold for a standout day
const celebrationAvg = 4.5

// maxCorrelationEvents caps correlation events per period
const maxCorrelationEvents = 2

// DetectAll runs every detector for the period containing anchor and
// returns the scored events.
func DetectAll(entries []models.AdvisorEntry, period models.Period, anchor time.Time) []models.AdvisorEvent {
	agg := Aggregate(entries, period, anchor)
	ranked := ComputeTagRelevance(filterRange(entries, agg.Start, agg.End))

	events := make([]models.AdvisorEvent, 0, 6)
	events = append(events, DetectTrend(agg)...)
	events = append(events, DetectCorrelation(entries, agg, ranked)...)
	events = append(events, DetectRhythm(agg)...)
	events = append(events, DetectAdherence(agg)...)
	events = append(events, DetectCelebration(agg)...)
	return events
}

// DetectTrend emits exactly one delta event when the aggregate has at
// least two entries and a finite delta.
func DetectTrend(agg models.PeriodAgg) []models.AdvisorEvent {
	if agg.N < 2 || math.IsNaN(agg.Deltas.AvgDelta) || math.IsInf(agg.Deltas.AvgDelta, 0) {
		return nil
	}

	id := "day_trend_stress_up"
	switch agg.Period {
	case models.PeriodWeek:
		id = "week_summary_delta"
	case models.PeriodMonth:
		id = "month_summary_delta"
	}

	sign := "+"
	if agg.Deltas.AvgDelta < 0 {
		sign = "-"
	}

	return []models.AdvisorEvent{{
		ID:    id,
		Kind:  models.EventKindTrend,
		Score: scoreMagnitude(math.Abs(agg.Deltas.AvgDelta)),
		Payload: models.TrendPayload{
			Avg:       agg.Avg,
			DeltaSign: sign,
			DeltaAbs:  fmt.Sprintf("%.2f", math.Abs(agg.Deltas.AvgDelta)),
			BestHour:  agg.BestHour,
		},
	}}
}

// DetectCorrelation emits tag-correlation events for week and month
// periods: the strongest boosters by occurrence count plus the first
// emerging drainer, capped at two events. Day periods emit none.
func DetectCorrelation(entries []models.AdvisorEntry, agg models.PeriodAgg, ranked []models.TagRelevance) []models.AdvisorEvent {
	if agg.Period == models.PeriodDay {
		return nil
	}

	boosterCounts := tagCountsInRange(entries, agg.Start, agg.End, true)
	events := make([]models.AdvisorEvent, 0, maxCorrelationEvents)
	prefix := string(agg.Period)

	boosterN := 1
	if agg.Period == models.PeriodMonth {
		boosterN = 2
	}
	for _, tag := range topTags(boosterCounts, boosterN) {
		events = append(events, models.AdvisorEvent{
			ID:    prefix + "_corr_booster",
			Kind:  models.EventKindCorrelation,
			Score: scoreMagnitude(math.Abs(TagLift(ranked, tag, "booster"))),
			Payload: models.CorrelationPayload{
				Tag:   tag,
				Role:  "booster",
				Count: boosterCounts[tag],
				Lift:  TagLift(ranked, tag, "booster"),
			},
		})
	}

	if len(events) < maxCorrelationEvents && len(agg.Novelty.EmergingDrainers) > 0 {
		tag := agg.Novelty.EmergingDrainers[0]
		drainerCounts := tagCountsInRange(entries, agg.Start, agg.End, false)
		events = append(events, models.AdvisorEvent{
			ID:    prefix + "_corr_drainer",
			Kind:  models.EventKindCorrelation,
			Score: scoreMagnitude(math.Abs(TagLift(ranked, tag, "drainer"))),
			Payload: models.CorrelationPayload{
				Tag:   tag,
				Role:  "drainer",
				Count: drainerCounts[tag],
				Lift:  TagLift(ranked, tag, "drainer"),
			},
		})
	}

	return events
}

// DetectRhythm emits one event when the aggregate found a best hour
// window or best day of week.
func DetectRhythm(agg models.PeriodAgg) []models.AdvisorEvent {
	if agg.BestHour == nil && agg.BestDOW == nil {
		return nil
	}
	return []models.AdvisorEvent{{
		ID:    string(agg.Period) + "_rhythm",
		Kind:  models.EventKindRhythm,
		Score: scoreMagnitude(0.5),
		Payload: models.RhythmPayload{
			BestHour: agg.BestHour,
			BestDOW:  agg.BestDOW,
		},
	}}
}

// DetectAdherence fires for day periods when check-in frequency did not
// increase versus yesterday. The copy downstream is deliberately gentle;
// this is an "it's okay" nudge, not a warning.
func DetectAdherence(agg models.PeriodAgg) []models.AdvisorEvent {
	if agg.Period != models.PeriodDay || agg.Deltas.NDelta > 0 {
		return nil
	}
	return []models.AdvisorEvent{{
		ID:      "day_adherence_ok",
		Kind:    models.EventKindAdherence,
		Score:   scoreMagnitude(0.3),
		Payload: models.AdherencePayload{NDelta: agg.Deltas.NDelta},
	}}
}

// DetectCelebration marks standout days: two or more check-ins averaging
// near the top of the scale.
func DetectCelebration(agg models.PeriodAgg) []models.AdvisorEvent {
	if agg.Period != models.PeriodDay || agg.N < 2 || agg.Avg < celebrationAvg {
		return nil
	}
	return []models.AdvisorEvent{{
		ID:    "day_celebration",
		Kind:  models.EventKindCelebration,
		Score: scoreMagnitude(agg.Avg - 4),
		Payload: models.TrendPayload{
			Avg:       agg.Avg,
			DeltaSign: "+",
			DeltaAbs:  fmt.Sprintf("%.2f", math.Abs(agg.Deltas.AvgDelta)),
			BestHour:  agg.BestHour,
		},
	}}
}

// filterRange keeps entries with timestamps inside [start,end] inclusive
func filterRange(entries []models.AdvisorEntry, start, end time.Time) []models.AdvisorEntry {
	startMs, endMs := start.UnixMilli(), end.UnixMilli()
	out := make([]models.AdvisorEntry, 0, len(entries))
	for _, e := range entries {
		if e.T >= startMs && e.T <= endMs {
			out = append(out, e)
		}
	}
	return out
}

// tagCountsInRange counts booster (or drainer) occurrences within the window
func tagCountsInRange(entries []models.AdvisorEntry, start, end time.Time, boosters bool) map[string]int {
	counts := make(map[string]int)
	for _, e := range filterRange(entries, start, end) {
		tags := e.Drainers
		if boosters {
			tags = e.Boosters
		}
		for _, tag := range tags {
			counts[tag]++
		}
	}
	return counts
}

// topTags returns up to n tags by count descending, ties lexicographic
func topTags(counts map[string]int, n int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
