package advisor

import (
	"context"
	"math"
	"time"

	"github.com/moodloop/backend/internal/models"
)

const (
	// Feedback decay: counts shrink by this factor at most once per window
	feedbackDecayFactor = 0.8
	feedbackDecayWindow = 7 * 24 * time.Hour

	individualWeightStep = 0.2
	individualWeightMin  = 0.5
	individualWeightMax  = 2.0

	categoryWeightStep = 0.15
	categoryWeightMin  = 0.7
	categoryWeightMax  = 1.5
)

// FeedbackRepo is the persistence boundary for the feedback map. A
// failing repo is treated as empty state; the engine never surfaces
// storage errors.
type FeedbackRepo interface {
	Load(ctx context.Context) (map[string]models.FeedbackRecord, error)
	Save(ctx context.Context, records map[string]models.FeedbackRecord) error
	DecayedAt(ctx context.Context) (time.Time, error)
	SetDecayedAt(ctx context.Context, t time.Time) error
}

// FeedbackEngine maintains per-template helpful / not-helpful tallies
// with periodic decay, and derives the selection weights the composer
// multiplies together when ranking template candidates.
type FeedbackEngine struct {
	repo    FeedbackRepo
	catalog []Template
	now     func() time.Time
}

// NewFeedbackEngine creates a feedback engine over the given repo. The
// catalog supplies template-id-to-kind mapping for category weights.
func NewFeedbackEngine(repo FeedbackRepo, catalog []Template) *FeedbackEngine {
	return &FeedbackEngine{repo: repo, catalog: catalog, now: time.Now}
}

// RecordHelpful increments the helpful tally for a template
func (f *FeedbackEngine) RecordHelpful(ctx context.Context, templateID string) {
	f.record(ctx, templateID, true)
}

// RecordNotHelpful increments the not-helpful tally for a template
func (f *FeedbackEngine) RecordNotHelpful(ctx context.Context, templateID string) {
	f.record(ctx, templateID, false)
}

func (f *FeedbackEngine) record(ctx context.Context, templateID string, helpful bool) {
	records := f.loadDecayed(ctx)
	rec := records[templateID]
	if helpful {
		rec.Helpful++
	} else {
		rec.Not++
	}
	rec.Last = f.now().UnixMilli()
	records[templateID] = rec

	// Best effort; a write failure just means the next pass starts from
	// the previous tallies.
	_ = f.repo.Save(ctx, records)
}

// IndividualWeight is clamp(1 + 0.2*helpful - 0.2*not, 0.5, 2); templates
// with no feedback weigh 1.
func (f *FeedbackEngine) IndividualWeight(ctx context.Context, templateID string) float64 {
	rec, ok := f.loadDecayed(ctx)[templateID]
	if !ok {
		return 1
	}
	w := 1 + individualWeightStep*float64(rec.Helpful) - individualWeightStep*float64(rec.Not)
	return clampRange(w, individualWeightMin, individualWeightMax)
}

// CategoryWeight averages helpful/not across all templates of the kind
// that have any recorded feedback, clamped to [0.7, 1.5]. Kinds with no
// feedback weigh 1.
func (f *FeedbackEngine) CategoryWeight(ctx context.Context, kind models.EventKind) float64 {
	records := f.loadDecayed(ctx)

	var helpfulSum, notSum, n int
	for _, t := range f.catalog {
		if t.Kind != kind {
			continue
		}
		rec, ok := records[t.ID]
		if !ok || (rec.Helpful == 0 && rec.Not == 0) {
			continue
		}
		helpfulSum += rec.Helpful
		notSum += rec.Not
		n++
	}
	if n == 0 {
		return 1
	}

	avgHelpful := float64(helpfulSum) / float64(n)
	avgNot := float64(notSum) / float64(n)
	w := 1 + categoryWeightStep*avgHelpful - categoryWeightStep*avgNot
	return clampRange(w, categoryWeightMin, categoryWeightMax)
}

// loadDecayed reads the feedback map, applying the decay pass first if
// one is due. Read failures degrade to an empty map.
func (f *FeedbackEngine) loadDecayed(ctx context.Context) map[string]models.FeedbackRecord {
	records, err := f.repo.Load(ctx)
	if err != nil || records == nil {
		records = make(map[string]models.FeedbackRecord)
	}

	now := f.now()
	decayedAt, err := f.repo.DecayedAt(ctx)
	if err != nil || decayedAt.IsZero() {
		// First access (or unreadable stamp): start the decay clock now
		// without shrinking anything.
		_ = f.repo.SetDecayedAt(ctx, now)
		return records
	}

	if now.Sub(decayedAt) <= feedbackDecayWindow {
		return records
	}

	for id, rec := range records {
		rec.Helpful = int(math.Floor(float64(rec.Helpful) * feedbackDecayFactor))
		rec.Not = int(math.Floor(float64(rec.Not) * feedbackDecayFactor))
		records[id] = rec
	}
	_ = f.repo.Save(ctx, records)
	_ = f.repo.SetDecayedAt(ctx, now)

	return records
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
