package advisor

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/moodloop/backend/internal/models"
)

const (
	// MaxItems is the most advisor items a single pass may produce
	MaxItems = 3

	// DefaultCooldown is how long a template rests after being shown
	DefaultCooldown = 72 * time.Hour

	// TrialWindow is the onboarding stretch during which a pass must
	// never come back empty
	TrialWindow = 48 * time.Hour

	// minEntriesForInsights is the overall entry count below which the
	// onboarding fallback also applies
	minEntriesForInsights = 3

	// MilestoneAha is the one-shot flag recorded the first time insights
	// land during the trial window
	MilestoneAha = "aha_first_insight"
)

// CooldownStore tracks when each template was last rendered. Failures
// are swallowed: an unreadable store behaves as "never shown".
type CooldownStore interface {
	LastShown(ctx context.Context, templateID string) (time.Time, bool, error)
	MarkShown(ctx context.Context, templateID string, at time.Time) error
}

// FeedbackWeights supplies the learned selection weights
type FeedbackWeights interface {
	IndividualWeight(ctx context.Context, templateID string) float64
	CategoryWeight(ctx context.Context, kind models.EventKind) float64
}

// TrialStore tracks the trial start and one-shot milestone flags
type TrialStore interface {
	TrialStart(ctx context.Context) (time.Time, bool, error)
	MarkMilestone(ctx context.Context, name string) error
}

// Rand is the injectable randomness source used for variant selection
type Rand interface {
	Intn(n int) int
}

// ComposeParams carries per-pass context into composition
type ComposeParams struct {
	// Vars are merged over each event payload's interpolation variables
	Vars map[string]string
	// TotalEntries is the user's overall journal size, for the
	// onboarding fallback rule
	TotalEntries int
	// Action context (partner contact details etc.)
	Actions ActionContext
}

// Composer matches scored events to eligible templates and renders the
// final advisor items. All collaborators are explicit dependencies so a
// pass has no hidden cross-call state.
type Composer struct {
	catalog   []Template
	cooldowns CooldownStore
	feedback  FeedbackWeights
	trial     TrialStore
	actions   ActionGenerator
	rand      Rand
	cooldown  time.Duration
	now       func() time.Time
}

// NewComposer wires a composer from its collaborators. trial may be nil
// when no onboarding state exists (the fallback then keys off entry
// count alone).
func NewComposer(catalog []Template, cooldowns CooldownStore, feedback FeedbackWeights, trial TrialStore, actions ActionGenerator, rnd Rand) *Composer {
	return &Composer{
		catalog:   catalog,
		cooldowns: cooldowns,
		feedback:  feedback,
		trial:     trial,
		actions:   actions,
		rand:      rnd,
		cooldown:  DefaultCooldown,
		now:       time.Now,
	}
}

// WithCooldown overrides the per-template cooldown window
func (c *Composer) WithCooldown(d time.Duration) *Composer {
	c.cooldown = d
	return c
}

// WithNow overrides the clock, for tests
func (c *Composer) WithNow(now func() time.Time) *Composer {
	c.now = now
	return c
}

// Compose turns scored events into at most MaxItems rendered items,
// respecting per-template cooldowns and feedback-weighted selection.
// Trial-window users always get at least one item.
func (c *Composer) Compose(ctx context.Context, period models.Period, events []models.AdvisorEvent, params ComposeParams) []models.AdvisorItem {
	now := c.now()

	sorted := make([]models.AdvisorEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	picked := make(map[string]bool)
	items := make([]models.AdvisorItem, 0, MaxItems)

	for _, event := range sorted {
		if len(items) >= MaxItems {
			break
		}
		tpl, ok := c.pickTemplate(ctx, event, period, picked, now)
		if !ok {
			continue
		}
		picked[tpl.ID] = true
		items = append(items, c.render(tpl, event.Payload, period, params, now))

		// Persist immediately so a crash mid-pass can't replay templates
		_ = c.cooldowns.MarkShown(ctx, tpl.ID, now)
	}

	inTrial := c.withinTrialWindow(ctx, now)

	if len(items) == 0 && (inTrial || params.TotalEntries < minEntriesForInsights) {
		if tpl, ok := c.templateByID(QuickResetTemplateID); ok {
			items = append(items, c.render(tpl, nil, period, params, now))
			if inTrial {
				_ = c.trialMilestone(ctx)
			}
		}
	} else if inTrial && period == models.PeriodDay && len(items) > 0 {
		_ = c.trialMilestone(ctx)
	}

	return items
}

// pickTemplate gathers candidates for the event (matching by id or
// kind, period-eligible, unused this pass, outside cooldown) and returns
// the one with the highest combined feedback weight.
func (c *Composer) pickTemplate(ctx context.Context, event models.AdvisorEvent, period models.Period, picked map[string]bool, now time.Time) (Template, bool) {
	var (
		best       Template
		bestWeight float64
		found      bool
	)
	for _, tpl := range CandidatesFor(c.catalog, event, period) {
		if picked[tpl.ID] || c.inCooldown(ctx, tpl.ID, now) {
			continue
		}
		weight := c.feedback.IndividualWeight(ctx, tpl.ID) * c.feedback.CategoryWeight(ctx, tpl.Kind)
		if !found || weight > bestWeight {
			best = tpl
			bestWeight = weight
			found = true
		}
	}
	return best, found
}

func (c *Composer) inCooldown(ctx context.Context, templateID string, now time.Time) bool {
	last, ok, err := c.cooldowns.LastShown(ctx, templateID)
	if err != nil || !ok {
		return false
	}
	return now.Sub(last) < c.cooldown
}

// render produces the final item: a uniformly random phrasing variant
// interpolated with the payload vars merged under the caller's params,
// at most two tips, and best-effort actions.
func (c *Composer) render(tpl Template, payload models.EventPayload, period models.Period, params ComposeParams, now time.Time) models.AdvisorItem {
	vars := Vars{}
	if payload != nil {
		for k, v := range payload.Vars() {
			vars[k] = v
		}
	}
	for k, v := range params.Vars {
		vars[k] = v
	}

	variant := tpl.Variants[c.rand.Intn(len(tpl.Variants))]

	tips := tpl.Tips(vars)
	if len(tips) > 2 {
		tips = tips[:2]
	}

	return models.AdvisorItem{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Period:    period,
		Title:     tpl.Title(vars),
		Text:      variant(vars),
		Tips:      tips,
		Actions:   c.safeActions(tpl.ID, payload, params.Actions),
	}
}

// safeActions shields item creation from any action-generation failure
func (c *Composer) safeActions(templateID string, payload models.EventPayload, actx ActionContext) (actions []models.Action) {
	if c.actions == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			actions = nil
		}
	}()
	return c.actions.Generate(templateID, payload, actx)
}

func (c *Composer) templateByID(id string) (Template, bool) {
	for _, tpl := range c.catalog {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return Template{}, false
}

// withinTrialWindow reports whether now falls inside the first 48 hours
// of the trial. A missing or unreadable trial start means no trial.
func (c *Composer) withinTrialWindow(ctx context.Context, now time.Time) bool {
	if c.trial == nil {
		return false
	}
	start, ok, err := c.trial.TrialStart(ctx)
	if err != nil || !ok {
		return false
	}
	elapsed := now.Sub(start)
	return elapsed >= 0 && elapsed <= TrialWindow
}

func (c *Composer) trialMilestone(ctx context.Context) error {
	if c.trial == nil {
		return nil
	}
	return c.trial.MarkMilestone(ctx, MilestoneAha)
}
