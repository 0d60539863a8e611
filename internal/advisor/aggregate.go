package advisor

import (
	"sort"
	"time"

	"github.com/moodloop/backend/internal/models"
)

const (
	// Minimum samples an hour/day bucket needs before it can be "best"
	minBucketSamples = 2

	// Maximum emerging tags reported per kind
	maxEmergingTags = 3

	// Occurrences within the period for a tag to count as emerging
	emergingThreshold = 2
)

// Aggregate reduces adapted entries to summary statistics for the period
// containing anchor, including deltas against the immediately preceding
// period and emerging-tag novelty.
func Aggregate(entries []models.AdvisorEntry, period models.Period, anchor time.Time) models.PeriodAgg {
	agg := aggregateWindow(entries, period, anchor)

	prev := aggregateWindow(entries, period, PreviousAnchor(period, anchor))
	agg.Deltas = models.PeriodDeltas{
		AvgDelta: agg.Avg - prev.Avg,
		NDelta:   agg.N - prev.N,
	}

	return agg
}

// aggregateWindow computes everything except deltas for one window.
func aggregateWindow(entries []models.AdvisorEntry, period models.Period, anchor time.Time) models.PeriodAgg {
	start, end := GetPeriodRange(period, anchor)
	loc := anchor.Location()
	startMs, endMs := start.UnixMilli(), end.UnixMilli()

	agg := models.PeriodAgg{
		Period: period,
		Start:  start,
		End:    end,
	}

	var (
		moodSum       int
		hourSums      [24]int
		hourCounts    [24]int
		dowSums       [7]int // Monday-indexed
		dowCounts     [7]int
		boosterCounts = make(map[string]int)
		drainerCounts = make(map[string]int)
	)

	for _, e := range entries {
		if e.T < startMs || e.T > endMs {
			continue
		}
		agg.N++
		moodSum += e.Mood

		local := time.UnixMilli(e.T).In(loc)
		hour := local.Hour()
		hourSums[hour] += e.Mood
		hourCounts[hour]++

		dow := (int(local.Weekday()) + 6) % 7
		dowSums[dow] += e.Mood
		dowCounts[dow]++

		for _, tag := range e.Boosters {
			boosterCounts[tag]++
		}
		for _, tag := range e.Drainers {
			drainerCounts[tag]++
		}
	}

	// Empty periods average to 0, not NaN, so delta math downstream always
	// has a number to subtract.
	if agg.N > 0 {
		agg.Avg = float64(moodSum) / float64(agg.N)
	}

	if hour, ok := bestBucket(hourSums[:], hourCounts[:]); ok {
		agg.BestHour = &models.HourWindow{Start: hour, End: (hour + 1) % 24}
	}
	if dow, ok := bestBucket(dowSums[:], dowCounts[:]); ok {
		d := dow
		agg.BestDOW = &d
	}

	agg.TopBooster = topTag(boosterCounts)
	agg.TopDrainer = topTag(drainerCounts)
	agg.Novelty = models.PeriodNovelty{
		EmergingBoosters: emergingTags(boosterCounts),
		EmergingDrainers: emergingTags(drainerCounts),
	}

	return agg
}

// bestBucket returns the index with the strictly highest mean among
// buckets with at least minBucketSamples samples; ties keep the first
// index found in iteration order.
func bestBucket(sums, counts []int) (int, bool) {
	best := -1
	var bestMean float64
	for i := range sums {
		if counts[i] < minBucketSamples {
			continue
		}
		mean := float64(sums[i]) / float64(counts[i])
		if best == -1 || mean > bestMean {
			best = i
			bestMean = mean
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// topTag returns the tag with the highest occurrence count; ties break
// lexicographically so results are deterministic.
func topTag(counts map[string]int) string {
	var top string
	var topCount int
	for tag, count := range counts {
		if count > topCount || (count == topCount && topCount > 0 && tag < top) {
			top = tag
			topCount = count
		}
	}
	return top
}

// emergingTags returns tags occurring at least emergingThreshold times,
// capped to maxEmergingTags, by count descending then lexicographic.
func emergingTags(counts map[string]int) []string {
	tags := make([]string, 0, len(counts))
	for tag, count := range counts {
		if count >= emergingThreshold {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > maxEmergingTags {
		tags = tags[:maxEmergingTags]
	}
	return tags
}
