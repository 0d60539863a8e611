package advisor

import (
	"fmt"

	"github.com/moodloop/backend/internal/models"
)

// Vars is the interpolation context a template renders with: the event
// payload's variables merged with caller-supplied params.
type Vars map[string]string

// Get returns the value for key, or fallback when absent or empty.
func (v Vars) Get(key, fallback string) string {
	if s, ok := v[key]; ok && s != "" {
		return s
	}
	return fallback
}

// Template is a static catalog entry: multiple phrasing variants for one
// event family, scoped to the periods it applies to. The catalog is fixed
// at build time and never mutated.
type Template struct {
	ID       string
	Kind     models.EventKind
	Periods  []models.Period
	Title    func(Vars) string
	Variants []func(Vars) string
	Tips     func(Vars) []models.Tip
}

// AppliesTo reports whether the template is eligible for the period
func (t Template) AppliesTo(period models.Period) bool {
	for _, p := range t.Periods {
		if p == period {
			return true
		}
	}
	return false
}

// QuickResetTemplateID is the onboarding fallback rendered when a pass
// produces nothing during the user's first days.
const QuickResetTemplateID = "quick_reset"

// Catalog returns the full template catalog.
func Catalog() []Template {
	day := []models.Period{models.PeriodDay}
	weekMonth := []models.Period{models.PeriodWeek, models.PeriodMonth}
	all := []models.Period{models.PeriodDay, models.PeriodWeek, models.PeriodMonth}

	return []Template{
		{
			ID:      "day_trend_stress_up",
			Kind:    models.EventKindTrend,
			Periods: day,
			Title:   func(Vars) string { return "Today at a glance" },
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("Your mood today is averaging %s, %s%s versus yesterday.", v.Get("avg", "–"), v.Get("deltaSign", ""), v.Get("deltaAbs", "0.00"))
				},
				func(v Vars) string {
					return fmt.Sprintf("Today's check-ins average %s (%s%s from yesterday). Small shifts are normal.", v.Get("avg", "–"), v.Get("deltaSign", ""), v.Get("deltaAbs", "0.00"))
				},
			},
			Tips: func(v Vars) []models.Tip {
				tips := []models.Tip{{ID: "tip_breath", Text: "A two-minute breathing break can steady a wobbly afternoon."}}
				if bh := v.Get("bestHour", ""); bh != "" {
					tips = append(tips, models.Tip{ID: "tip_best_hour", Text: fmt.Sprintf("Your brightest window today was %s — protect it tomorrow.", bh)})
				}
				return tips
			},
		},
		{
			ID:      "week_summary_delta",
			Kind:    models.EventKindTrend,
			Periods: []models.Period{models.PeriodWeek},
			Title:   func(Vars) string { return "Your week in review" },
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("This week averaged %s, %s%s compared with last week.", v.Get("avg", "–"), v.Get("deltaSign", ""), v.Get("deltaAbs", "0.00"))
				},
				func(v Vars) string {
					return fmt.Sprintf("Week over week your mood moved %s%s, landing at an average of %s.", v.Get("deltaSign", ""), v.Get("deltaAbs", "0.00"), v.Get("avg", "–"))
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{
					{ID: "tip_review", Text: "Scroll back through the week's notes — the context behind the numbers is where the story is."},
					{ID: "tip_plan", Text: "Pick one thing that worked this week and schedule it again."},
				}
			},
		},
		{
			ID:      "month_summary_delta",
			Kind:    models.EventKindTrend,
			Periods: []models.Period{models.PeriodMonth},
			Title:   func(Vars) string { return "Your month in review" },
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("This month averaged %s, %s%s versus last month.", v.Get("avg", "–"), v.Get("deltaSign", ""), v.Get("deltaAbs", "0.00"))
				},
				func(v Vars) string {
					return fmt.Sprintf("Month over month your mood shifted %s%s to an average of %s.", v.Get("deltaSign", ""), v.Get("deltaAbs", "0.00"), v.Get("avg", "–"))
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_month_review", Text: "A month is enough data to spot a pattern. Skim your best week and ask what was different."}}
			},
		},
		{
			ID:      "week_corr_booster",
			Kind:    models.EventKindCorrelation,
			Periods: weekMonth,
			Title: func(v Vars) string {
				return fmt.Sprintf("%s is working for you", v.Get("tag", "Something"))
			},
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("%s showed up %s times this period and your mood runs %s when it does.", v.Get("tag", "A booster"), v.Get("count", "a few"), v.Get("lift", "higher"))
				},
				func(v Vars) string {
					return fmt.Sprintf("Days with %s tend to land %s on your mood scale. It's pulling weight.", v.Get("tag", "that booster"), v.Get("lift", "higher"))
				},
			},
			Tips: func(v Vars) []models.Tip {
				return []models.Tip{{ID: "tip_schedule_booster", Text: fmt.Sprintf("Put %s on the calendar before the week fills up.", v.Get("tag", "it"))}}
			},
		},
		{
			ID:      "month_corr_booster",
			Kind:    models.EventKindCorrelation,
			Periods: []models.Period{models.PeriodMonth},
			Title: func(v Vars) string {
				return fmt.Sprintf("%s kept coming up", v.Get("tag", "Something"))
			},
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("Across the month, %s appeared %s times alongside better moods (%s).", v.Get("tag", "a booster"), v.Get("count", "several"), v.Get("lift", "higher"))
				},
				func(v Vars) string {
					return fmt.Sprintf("%s was one of your most reliable lifts this month.", v.Get("tag", "That booster"))
				},
			},
			Tips: func(v Vars) []models.Tip {
				return []models.Tip{{ID: "tip_keep_booster", Text: fmt.Sprintf("Whatever makes %s easy to do, keep it in place next month.", v.Get("tag", "it"))}}
			},
		},
		{
			ID:      "week_corr_drainer",
			Kind:    models.EventKindCorrelation,
			Periods: weekMonth,
			Title: func(v Vars) string {
				return fmt.Sprintf("Keeping an eye on %s", v.Get("tag", "a drainer"))
			},
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("%s has been showing up more lately, and it tends to travel with lower moods (%s).", v.Get("tag", "A drainer"), v.Get("lift", "lower"))
				},
				func(v Vars) string {
					return fmt.Sprintf("No alarm here — just worth noticing that %s appeared %s times this period.", v.Get("tag", "that drainer"), v.Get("count", "a few"))
				},
			},
			Tips: func(v Vars) []models.Tip {
				return []models.Tip{{ID: "tip_drainer_buffer", Text: fmt.Sprintf("If %s is unavoidable, try pairing it with something that restores you.", v.Get("tag", "it"))}}
			},
		},
		{
			ID:      "month_corr_drainer",
			Kind:    models.EventKindCorrelation,
			Periods: []models.Period{models.PeriodMonth},
			Title: func(v Vars) string {
				return fmt.Sprintf("%s is a theme this month", v.Get("tag", "A drainer"))
			},
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("%s came up %s times this month, usually on heavier days (%s).", v.Get("tag", "A drainer"), v.Get("count", "several"), v.Get("lift", "lower"))
				},
				func(v Vars) string {
					return fmt.Sprintf("%s kept appearing this month. Worth a think about what's feeding it.", v.Get("tag", "That drainer"))
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_drainer_review", Text: "Drainers that recur monthly are usually structural. One small change beats willpower."}}
			},
		},
		{
			ID:      "day_rhythm",
			Kind:    models.EventKindRhythm,
			Periods: day,
			Title:   func(Vars) string { return "Your rhythm today" },
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("Your best stretch today was %s.", v.Get("bestHour", "earlier on"))
				},
				func(v Vars) string {
					return fmt.Sprintf("Today peaked around %s — notice what you were doing.", v.Get("bestHour", "mid-day"))
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_rhythm_day", Text: "Try putting tomorrow's hardest task inside your best window."}}
			},
		},
		{
			ID:      "week_rhythm",
			Kind:    models.EventKindRhythm,
			Periods: weekMonth,
			Title:   func(Vars) string { return "A rhythm is emerging" },
			Variants: []func(Vars) string{
				func(v Vars) string {
					if day := v.Get("bestDay", ""); day != "" {
						return fmt.Sprintf("%ss keep turning out to be your strongest day.", day)
					}
					return fmt.Sprintf("Your mood reliably peaks around %s.", v.Get("bestHour", "the same time"))
				},
				func(v Vars) string {
					if day := v.Get("bestDay", ""); day != "" {
						return fmt.Sprintf("There's a pattern here: %ss run brighter than the rest of your week.", day)
					}
					return fmt.Sprintf("The %s window keeps showing up as your high point.", v.Get("bestHour", "same"))
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_rhythm_week", Text: "Rhythms are leverage. Plan the draining stuff outside your peak and the good stuff inside it."}}
			},
		},
		{
			ID:      "day_adherence_ok",
			Kind:    models.EventKindAdherence,
			Periods: day,
			Title:   func(Vars) string { return "No pressure" },
			Variants: []func(Vars) string{
				func(Vars) string {
					return "Fewer check-ins than yesterday — that's completely fine. The journal works at whatever pace you do."
				},
				func(Vars) string {
					return "Quiet day in the journal. One honest check-in beats five rushed ones."
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_gentle_checkin", Text: "If it helps, anchor one check-in to something you already do daily, like a morning coffee."}}
			},
		},
		{
			ID:      "day_celebration",
			Kind:    models.EventKindCelebration,
			Periods: day,
			Title:   func(Vars) string { return "What a day" },
			Variants: []func(Vars) string{
				func(v Vars) string {
					return fmt.Sprintf("Today averaged %s — near the top of your scale. Worth marking.", v.Get("avg", "high"))
				},
				func(Vars) string {
					return "Today was a standout. Take ten seconds to notice what made it work."
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_celebrate", Text: "Tell someone about it. Shared wins stick better."}}
			},
		},
		{
			ID:      QuickResetTemplateID,
			Kind:    models.EventKindSelfCare,
			Periods: all,
			Title:   func(Vars) string { return "A quick reset" },
			Variants: []func(Vars) string{
				func(Vars) string {
					return "Not much data yet, and that's fine. Try a sixty-second reset: slow breath in for four, out for six, five times."
				},
				func(Vars) string {
					return "While the journal is still getting to know you, here's a reliable one: step outside for two minutes and look at something far away."
				},
			},
			Tips: func(Vars) []models.Tip {
				return []models.Tip{{ID: "tip_first_entries", Text: "A few check-ins a day for a week is enough for your first real insights."}}
			},
		},
	}
}

// CandidatesFor returns catalog templates matching the event by id or
// kind, eligible for the period.
func CandidatesFor(catalog []Template, event models.AdvisorEvent, period models.Period) []Template {
	out := make([]Template, 0, 2)
	for _, t := range catalog {
		if !t.AppliesTo(period) {
			continue
		}
		if t.ID == event.ID || t.Kind == event.Kind {
			out = append(out, t)
		}
	}
	return out
}
