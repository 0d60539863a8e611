package partner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/internal/models"
)

const (
	// DateKeyFormat keys day buckets
	DateKeyFormat = "2006-01-02"

	// maxItemsPerDay caps a day bucket (one item per postcard type)
	maxItemsPerDay = 3

	// DigestDays is the rolling window partner digests read
	DigestDays = 7

	// maxSummaryHighlights caps representative previews in a rollup
	maxSummaryHighlights = 3
)

// DaysRepo is the persistence boundary for day buckets
type DaysRepo interface {
	GetDay(ctx context.Context, date string) (*models.DailyInsightsDay, error)
	PutDay(ctx context.Context, day *models.DailyInsightsDay) error
}

// Rollup merges postcards into day buckets and aggregates them for
// week and month partner views. Period boundaries come from the same
// range logic as the advisor aggregator, so the two subsystems always
// agree on what "this week" means.
type Rollup struct {
	repo DaysRepo
}

// NewRollup creates a rollup over the given repo
func NewRollup(repo DaysRepo) *Rollup {
	return &Rollup{repo: repo}
}

// Upsert merges a postcard into the bucket for the given date key. An
// existing item of the same type is replaced in place rather than
// appended; genuinely new types are inserted at the front and counted.
func (r *Rollup) Upsert(ctx context.Context, date string, pc models.Postcard) (*models.DailyInsightsDay, error) {
	day, err := r.repo.GetDay(ctx, date)
	if err != nil || day == nil {
		// Unreadable bucket degrades to a fresh one
		day = &models.DailyInsightsDay{Date: date}
	}
	if day.Counts == nil {
		day.Counts = make(map[models.PostcardType]int)
	}

	item := models.DailyInsightItem{
		Type:      pc.Type,
		Text:      pc.Text,
		Emoji:     pc.Emoji,
		Timestamp: pc.Timestamp,
	}

	replaced := false
	for i := range day.Items {
		if day.Items[i].Type == pc.Type {
			day.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		day.Items = append([]models.DailyInsightItem{item}, day.Items...)
		if len(day.Items) > maxItemsPerDay {
			day.Items = day.Items[:maxItemsPerDay]
		}
		day.Counts[pc.Type]++
	}

	if err := r.repo.PutDay(ctx, day); err != nil {
		return day, fmt.Errorf("failed to store day bucket %s: %w", date, err)
	}
	return day, nil
}

// Window returns existing day buckets for the n days ending at anchor,
// oldest first. Missing days are simply absent.
func (r *Rollup) Window(ctx context.Context, anchor time.Time, n int) []models.DailyInsightsDay {
	days := make([]models.DailyInsightsDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := anchor.AddDate(0, 0, -i).Format(DateKeyFormat)
		day, err := r.repo.GetDay(ctx, date)
		if err != nil || day == nil {
			continue
		}
		days = append(days, *day)
	}
	return days
}

// Summarize aggregates day buckets across the period containing anchor:
// summed counts, deltas against the prior equal-length period, a short
// natural-language summary, and up to three representative previews
// (first occurrence per type).
func (r *Rollup) Summarize(ctx context.Context, period models.Period, anchor time.Time) models.PartnerSummary {
	start, end := advisor.GetPeriodRange(period, anchor)
	counts, highlights := r.collect(ctx, start, end)

	prevStart, prevEnd := advisor.GetPeriodRange(period, advisor.PreviousAnchor(period, anchor))
	prevCounts, _ := r.collect(ctx, prevStart, prevEnd)

	deltas := make(map[models.PostcardType]int)
	for _, t := range []models.PostcardType{models.PostcardMoodBooster, models.PostcardRhythmNote, models.PostcardGentleNudge} {
		if counts[t] != 0 || prevCounts[t] != 0 {
			deltas[t] = counts[t] - prevCounts[t]
		}
	}

	return models.PartnerSummary{
		Period:     period,
		Start:      start,
		End:        end,
		Counts:     counts,
		Deltas:     deltas,
		Summary:    summaryText(period, counts, prevCounts),
		Highlights: highlights,
	}
}

// collect walks every date key inside [start,end], summing counts and
// keeping the first item seen per type.
func (r *Rollup) collect(ctx context.Context, start, end time.Time) (map[models.PostcardType]int, []models.DailyInsightItem) {
	counts := make(map[models.PostcardType]int)
	seen := make(map[models.PostcardType]bool)
	highlights := make([]models.DailyInsightItem, 0, maxSummaryHighlights)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day, err := r.repo.GetDay(ctx, d.Format(DateKeyFormat))
		if err != nil || day == nil {
			continue
		}
		for t, n := range day.Counts {
			counts[t] += n
		}
		for _, item := range day.Items {
			if !seen[item.Type] && len(highlights) < maxSummaryHighlights {
				seen[item.Type] = true
				highlights = append(highlights, item)
			}
		}
	}
	return counts, highlights
}

// summaryText renders the rollup as one friendly sentence
func summaryText(period models.Period, counts, prevCounts map[models.PostcardType]int) string {
	total, prevTotal := 0, 0
	for _, n := range counts {
		total += n
	}
	for _, n := range prevCounts {
		prevTotal += n
	}

	span := "this week"
	prevSpan := "last week"
	if period == models.PeriodMonth {
		span = "this month"
		prevSpan = "last month"
	}

	if total == 0 {
		return fmt.Sprintf("No shared insights %s yet.", span)
	}

	parts := make([]string, 0, 3)
	if n := counts[models.PostcardMoodBooster]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d mood %s", n, plural(n, "boost", "boosts")))
	}
	if n := counts[models.PostcardRhythmNote]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d rhythm %s", n, plural(n, "note", "notes")))
	}
	if n := counts[models.PostcardGentleNudge]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d gentle %s", n, plural(n, "check-in", "check-ins")))
	}

	sentence := fmt.Sprintf("%d shared %s %s — %s", total, plural(total, "insight", "insights"), span, strings.Join(parts, ", "))
	switch diff := total - prevTotal; {
	case diff > 0:
		sentence += fmt.Sprintf(", %d more than %s.", diff, prevSpan)
	case diff < 0:
		sentence += fmt.Sprintf(", %d fewer than %s.", -diff, prevSpan)
	default:
		sentence += fmt.Sprintf(", level with %s.", prevSpan)
	}
	return sentence
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
