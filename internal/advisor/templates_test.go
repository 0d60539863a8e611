package advisor

import (
	"testing"

	"github.com/moodloop/backend/internal/models"
)

func TestCatalogTemplatesAreWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, tpl := range Catalog() {
		if tpl.ID == "" {
			t.Error("template with empty ID")
		}
		if seen[tpl.ID] {
			t.Errorf("duplicate template ID %q", tpl.ID)
		}
		seen[tpl.ID] = true

		if len(tpl.Periods) == 0 {
			t.Errorf("%s: no eligible periods", tpl.ID)
		}
		if len(tpl.Variants) < 2 {
			t.Errorf("%s: %d variants, want at least 2", tpl.ID, len(tpl.Variants))
		}
		if tpl.Title == nil || tpl.Tips == nil {
			t.Errorf("%s: missing title or tips func", tpl.ID)
		}
	}

	if !seen[QuickResetTemplateID] {
		t.Errorf("catalog missing the %s fallback", QuickResetTemplateID)
	}
}

func TestCandidatesForMatchesByIDAndKind(t *testing.T) {
	catalog := Catalog()

	// Exact ID match
	event := models.AdvisorEvent{ID: "day_rhythm", Kind: models.EventKindRhythm}
	candidates := CandidatesFor(catalog, event, models.PeriodDay)
	if len(candidates) == 0 {
		t.Fatal("no candidates for day_rhythm")
	}
	for _, tpl := range candidates {
		if tpl.ID != "day_rhythm" && tpl.Kind != models.EventKindRhythm {
			t.Errorf("candidate %s matches neither id nor kind", tpl.ID)
		}
		if !tpl.AppliesTo(models.PeriodDay) {
			t.Errorf("candidate %s not eligible for day", tpl.ID)
		}
	}
}

func TestCandidatesForFiltersByPeriod(t *testing.T) {
	catalog := Catalog()

	// month_corr_booster is month-only; asking for week must exclude it
	event := models.AdvisorEvent{ID: "month_corr_booster", Kind: models.EventKindCorrelation}
	for _, tpl := range CandidatesFor(catalog, event, models.PeriodWeek) {
		if tpl.ID == "month_corr_booster" {
			t.Error("month-only template offered for a week period")
		}
	}
}

func TestVarsGet(t *testing.T) {
	v := Vars{"tag": "exercise", "empty": ""}

	if got := v.Get("tag", "fallback"); got != "exercise" {
		t.Errorf("Get(tag) = %q, want exercise", got)
	}
	if got := v.Get("missing", "fallback"); got != "fallback" {
		t.Errorf("Get(missing) = %q, want fallback", got)
	}
	if got := v.Get("empty", "fallback"); got != "fallback" {
		t.Errorf("Get(empty) = %q, want fallback for empty values", got)
	}
}
