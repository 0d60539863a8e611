package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/moodloop/backend/internal/models"
)

func testActx() ActionContext {
	return ActionContext{
		PartnerPhone: "+15551234567",
		PartnerName:  "Sam",
		Now:          time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBoosterActionsMapsAndCalendar(t *testing.T) {
	gen := NewActionGenerator()
	actions := gen.Generate("week_corr_booster", models.CorrelationPayload{Tag: "exercise", Role: "booster"}, testActx())

	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}

	if actions[0].Type != models.ActionMaps {
		t.Errorf("actions[0].Type = %q, want maps", actions[0].Type)
	}
	// "exercise" maps to the gym place type
	if !strings.Contains(actions[0].URL, "query=gym") {
		t.Errorf("maps URL = %q, want a gym query", actions[0].URL)
	}

	if actions[1].Type != models.ActionCalendar {
		t.Errorf("actions[1].Type = %q, want calendar", actions[1].Type)
	}
	// Tomorrow 18:00 for one hour
	if !strings.Contains(actions[1].URL, "20250316T180000%2F20250316T190000") {
		t.Errorf("calendar URL = %q, want tomorrow evening slot", actions[1].URL)
	}
}

func TestBoosterActionsUnmappedTagFallsBack(t *testing.T) {
	gen := NewActionGenerator()
	actions := gen.Generate("month_corr_booster", models.CorrelationPayload{Tag: "pottery"}, testActx())

	if len(actions) == 0 {
		t.Fatal("got no actions")
	}
	if !strings.Contains(actions[0].URL, "pottery+near+me") {
		t.Errorf("maps URL = %q, want a 'pottery near me' query", actions[0].URL)
	}
}

func TestBoosterActionsNoTag(t *testing.T) {
	gen := NewActionGenerator()
	if actions := gen.Generate("week_corr_booster", models.CorrelationPayload{}, testActx()); actions != nil {
		t.Errorf("got %v, want nil without a tag", actions)
	}
}

func TestReminderActions(t *testing.T) {
	gen := NewActionGenerator()
	for _, id := range []string{"day_adherence_ok", QuickResetTemplateID} {
		actions := gen.Generate(id, nil, testActx())
		if len(actions) != 1 {
			t.Fatalf("%s: got %d actions, want 1", id, len(actions))
		}
		if actions[0].Type != models.ActionReminder {
			t.Errorf("%s: Type = %q, want reminder", id, actions[0].Type)
		}
		if !strings.HasPrefix(actions[0].URL, "myapp://set-reminder?") {
			t.Errorf("%s: URL = %q, want a myapp deep link", id, actions[0].URL)
		}
		if !strings.Contains(actions[0].URL, "hour=20") {
			t.Errorf("%s: URL = %q, want the evening slot", id, actions[0].URL)
		}
	}
}

func TestShareActionsCelebration(t *testing.T) {
	gen := NewActionGenerator()
	actions := gen.Generate("day_celebration", models.TrendPayload{DeltaSign: "+"}, testActx())

	if len(actions) != 2 {
		t.Fatalf("got %d actions, want sms + whatsapp", len(actions))
	}
	if actions[0].Type != models.ActionMessage || actions[0].URL != "sms:+15551234567" {
		t.Errorf("actions[0] = %+v", actions[0])
	}
	if actions[0].Label != "Text Sam" {
		t.Errorf("Label = %q, want the partner's name", actions[0].Label)
	}
	if actions[1].Type != models.ActionWhatsApp || !strings.HasPrefix(actions[1].URL, "whatsapp://send?") {
		t.Errorf("actions[1] = %+v", actions[1])
	}
}

func TestContactActionsOnRoughDay(t *testing.T) {
	gen := NewActionGenerator()

	down := gen.Generate("day_trend_stress_up", models.TrendPayload{DeltaSign: "-"}, testActx())
	if len(down) != 3 {
		t.Fatalf("got %d actions, want call + sms + whatsapp", len(down))
	}
	if down[0].Type != models.ActionCall || down[0].URL != "tel:+15551234567" {
		t.Errorf("down[0] = %+v", down[0])
	}

	// An improving day suggests nothing
	up := gen.Generate("day_trend_stress_up", models.TrendPayload{DeltaSign: "+"}, testActx())
	if up != nil {
		t.Errorf("got %v, want nil on an improving day", up)
	}
}

func TestActionsDegradeWithoutPhone(t *testing.T) {
	gen := NewActionGenerator()
	actx := ActionContext{Now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}

	actions := gen.Generate("day_trend_stress_up", models.TrendPayload{DeltaSign: "-"}, actx)
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want call + sms only", len(actions))
	}
	if actions[0].URL != "tel:" {
		t.Errorf("call URL = %q, want scheme-only tel:", actions[0].URL)
	}
	if actions[1].URL != "sms:" {
		t.Errorf("sms URL = %q, want scheme-only sms:", actions[1].URL)
	}
	if actions[0].Label != "Call someone" {
		t.Errorf("Label = %q, want the generic label", actions[0].Label)
	}
}

func TestGenerateUnknownTemplate(t *testing.T) {
	gen := NewActionGenerator()
	if actions := gen.Generate("week_rhythm", nil, testActx()); actions != nil {
		t.Errorf("got %v, want nil for templates without actions", actions)
	}
}
