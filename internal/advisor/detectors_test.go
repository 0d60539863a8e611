package advisor

import (
	"testing"
	"time"

	"github.com/moodloop/backend/internal/models"
)

func TestDetectTrendRequiresTwoEntries(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	agg := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 4, nil, nil),
	}, models.PeriodDay, anchor)

	if events := DetectTrend(agg); len(events) != 0 {
		t.Errorf("DetectTrend with one entry = %d events, want 0", len(events))
	}
}

func TestDetectTrendEventIDsPerPeriod(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	entries := []models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 2, nil, nil),
		entryAt(day.Add(14*time.Hour), 4, nil, nil),
	}

	tests := []struct {
		period models.Period
		wantID string
	}{
		{models.PeriodDay, "day_trend_stress_up"},
		{models.PeriodWeek, "week_summary_delta"},
		{models.PeriodMonth, "month_summary_delta"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			agg := Aggregate(entries, tt.period, anchor)
			events := DetectTrend(agg)
			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].ID != tt.wantID {
				t.Errorf("ID = %q, want %q", events[0].ID, tt.wantID)
			}
			if events[0].Kind != models.EventKindTrend {
				t.Errorf("Kind = %q, want trend", events[0].Kind)
			}
		})
	}
}

func TestDetectTrendPayloadSignAndAbs(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	yesterday := day.AddDate(0, 0, -1)

	entries := []models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 2, nil, nil),
		entryAt(day.Add(14*time.Hour), 2, nil, nil),
		entryAt(yesterday.Add(9*time.Hour), 4, nil, nil),
	}

	agg := Aggregate(entries, models.PeriodDay, anchor)
	events := DetectTrend(agg)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	payload, ok := events[0].Payload.(models.TrendPayload)
	if !ok {
		t.Fatalf("payload type = %T, want TrendPayload", events[0].Payload)
	}
	if payload.DeltaSign != "-" {
		t.Errorf("DeltaSign = %q, want -", payload.DeltaSign)
	}
	if payload.DeltaAbs != "2.00" {
		t.Errorf("DeltaAbs = %q, want 2.00", payload.DeltaAbs)
	}
}

func TestDetectCorrelationSkipsDay(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	entries := []models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 4, []string{"walk"}, nil),
		entryAt(day.Add(14*time.Hour), 4, []string{"walk"}, nil),
	}

	agg := Aggregate(entries, models.PeriodDay, anchor)
	ranked := ComputeTagRelevance(entries)
	if events := DetectCorrelation(entries, agg, ranked); len(events) != 0 {
		t.Errorf("day correlation events = %d, want 0", len(events))
	}
}

func TestDetectCorrelationWeek(t *testing.T) {
	anchor := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []models.AdvisorEntry{
		entryAt(monday.Add(9*time.Hour), 5, []string{"exercise"}, nil),
		entryAt(monday.Add(33*time.Hour), 4, []string{"exercise"}, []string{"meetings"}),
		entryAt(monday.Add(57*time.Hour), 2, nil, []string{"meetings"}),
	}

	agg := Aggregate(entries, models.PeriodWeek, anchor)
	ranked := ComputeTagRelevance(filterRange(entries, agg.Start, agg.End))
	events := DetectCorrelation(entries, agg, ranked)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (booster + drainer)", len(events))
	}
	if events[0].ID != "week_corr_booster" {
		t.Errorf("events[0].ID = %q, want week_corr_booster", events[0].ID)
	}
	if events[1].ID != "week_corr_drainer" {
		t.Errorf("events[1].ID = %q, want week_corr_drainer", events[1].ID)
	}

	booster := events[0].Payload.(models.CorrelationPayload)
	if booster.Tag != "exercise" || booster.Count != 2 || booster.Role != "booster" {
		t.Errorf("booster payload = %+v", booster)
	}
	if booster.Lift <= 0 {
		t.Errorf("booster lift = %f, want positive", booster.Lift)
	}

	drainer := events[1].Payload.(models.CorrelationPayload)
	if drainer.Tag != "meetings" || drainer.Count != 2 || drainer.Role != "drainer" {
		t.Errorf("drainer payload = %+v", drainer)
	}
	if drainer.Lift >= 0 {
		t.Errorf("drainer lift = %f, want negative", drainer.Lift)
	}
}

func TestDetectCorrelationMonthCapsAtTwo(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	first := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	entries := []models.AdvisorEntry{
		entryAt(first.Add(9*time.Hour), 5, []string{"exercise", "coffee"}, []string{"meetings"}),
		entryAt(first.AddDate(0, 0, 3), 4, []string{"exercise", "coffee"}, []string{"meetings"}),
		entryAt(first.AddDate(0, 0, 6), 4, []string{"exercise"}, nil),
	}

	agg := Aggregate(entries, models.PeriodMonth, anchor)
	ranked := ComputeTagRelevance(filterRange(entries, agg.Start, agg.End))
	events := DetectCorrelation(entries, agg, ranked)

	// Two boosters fill the cap; the drainer never makes it in
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.ID != "month_corr_booster" {
			t.Errorf("ID = %q, want month_corr_booster", ev.ID)
		}
	}
	if events[0].Payload.(models.CorrelationPayload).Tag != "exercise" {
		t.Errorf("first booster = %q, want exercise", events[0].Payload.(models.CorrelationPayload).Tag)
	}
	if events[1].Payload.(models.CorrelationPayload).Tag != "coffee" {
		t.Errorf("second booster = %q, want coffee", events[1].Payload.(models.CorrelationPayload).Tag)
	}
}

func TestDetectRhythm(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	sparse := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 4, nil, nil),
	}, models.PeriodDay, anchor)
	if events := DetectRhythm(sparse); len(events) != 0 {
		t.Errorf("rhythm without buckets = %d events, want 0", len(events))
	}

	dense := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 4, nil, nil),
		entryAt(day.Add(8*time.Hour+20*time.Minute), 5, nil, nil),
	}, models.PeriodDay, anchor)
	events := DetectRhythm(dense)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ID != "day_rhythm" {
		t.Errorf("ID = %q, want day_rhythm", events[0].ID)
	}
}

func TestDetectAdherence(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	yesterday := day.AddDate(0, 0, -1)

	// Fewer check-ins than yesterday fires the gentle nudge
	dropped := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 3, nil, nil),
		entryAt(yesterday.Add(8*time.Hour), 3, nil, nil),
		entryAt(yesterday.Add(20*time.Hour), 3, nil, nil),
	}, models.PeriodDay, anchor)
	events := DetectAdherence(dropped)
	if len(events) != 1 || events[0].ID != "day_adherence_ok" {
		t.Fatalf("events = %+v, want one day_adherence_ok", events)
	}
	if payload := events[0].Payload.(models.AdherencePayload); payload.NDelta != -1 {
		t.Errorf("NDelta = %d, want -1", payload.NDelta)
	}

	// More check-ins than yesterday stays quiet
	grew := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(8*time.Hour), 3, nil, nil),
		entryAt(day.Add(20*time.Hour), 3, nil, nil),
		entryAt(yesterday.Add(8*time.Hour), 3, nil, nil),
	}, models.PeriodDay, anchor)
	if events := DetectAdherence(grew); len(events) != 0 {
		t.Errorf("growing adherence events = %d, want 0", len(events))
	}

	// Never fires outside day periods
	week := Aggregate(nil, models.PeriodWeek, anchor)
	if events := DetectAdherence(week); len(events) != 0 {
		t.Errorf("week adherence events = %d, want 0", len(events))
	}
}

func TestDetectCelebration(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	bright := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(9*time.Hour), 5, nil, nil),
		entryAt(day.Add(15*time.Hour), 4, nil, nil),
	}, models.PeriodDay, anchor)
	if events := DetectCelebration(bright); len(events) != 1 || events[0].ID != "day_celebration" {
		t.Errorf("avg 4.5 day events = %+v, want one day_celebration", events)
	}

	middling := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(9*time.Hour), 4, nil, nil),
		entryAt(day.Add(15*time.Hour), 4, nil, nil),
	}, models.PeriodDay, anchor)
	if events := DetectCelebration(middling); len(events) != 0 {
		t.Errorf("avg 4.0 day events = %d, want 0", len(events))
	}

	single := Aggregate([]models.AdvisorEntry{
		entryAt(day.Add(9*time.Hour), 5, nil, nil),
	}, models.PeriodDay, anchor)
	if events := DetectCelebration(single); len(events) != 0 {
		t.Errorf("single-entry celebration events = %d, want 0", len(events))
	}
}

func TestDetectAllCombines(t *testing.T) {
	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	entries := []models.AdvisorEntry{
		entryAt(day.Add(9*time.Hour), 5, []string{"exercise"}, nil),
		entryAt(day.Add(9*time.Hour+30*time.Minute), 4, nil, nil),
	}

	events := DetectAll(entries, models.PeriodDay, anchor)

	seen := make(map[string]bool)
	for _, ev := range events {
		seen[ev.ID] = true
	}
	// Adherence stays quiet: two check-ins today versus none yesterday
	for _, want := range []string{"day_trend_stress_up", "day_rhythm", "day_celebration"} {
		if !seen[want] {
			t.Errorf("DetectAll missing %s (got %v)", want, events)
		}
	}
}
