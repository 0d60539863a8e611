package advisor

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/moodloop/backend/internal/models"
)

// ActionContext carries the locally-stored context actions are built
// from. Everything is optional; missing pieces degrade the links rather
// than failing them.
type ActionContext struct {
	PartnerPhone string
	PartnerName  string
	Now          time.Time
}

// ActionGenerator maps a rendered template to suggested external
// actions. Implementations must never fail outward: any problem yields
// nil, which the composer treats as "no actions".
type ActionGenerator interface {
	Generate(templateID string, payload models.EventPayload, actx ActionContext) []models.Action
}

// boosterPlaces maps booster tags to maps-search place types. Unmapped
// tags fall back to "<booster> near me".
var boosterPlaces = map[string]string{
	"exercise": "gym",
	"walk":     "park",
	"nature":   "park",
	"coffee":   "coffee shop",
	"friends":  "restaurant",
	"swimming": "swimming pool",
	"yoga":     "yoga studio",
	"reading":  "library",
	"music":    "live music venue",
}

type actionGenerator struct{}

// NewActionGenerator creates the default action generator
func NewActionGenerator() ActionGenerator {
	return actionGenerator{}
}

func (actionGenerator) Generate(templateID string, payload models.EventPayload, actx ActionContext) []models.Action {
	switch {
	case strings.HasSuffix(templateID, "_corr_booster"):
		return boosterActions(payload, actx)
	case templateID == "day_adherence_ok" || templateID == QuickResetTemplateID:
		return reminderActions(actx)
	case templateID == "day_celebration":
		return shareActions(actx, "Had a really good day today 😊")
	case templateID == "day_trend_stress_up":
		return contactActions(payload, actx)
	}
	return nil
}

// boosterActions suggests a place and a calendar slot for the booster tag
func boosterActions(payload models.EventPayload, actx ActionContext) []models.Action {
	corr, ok := payload.(models.CorrelationPayload)
	if !ok || corr.Tag == "" {
		return nil
	}

	query := corr.Tag + " near me"
	if place, ok := boosterPlaces[strings.ToLower(corr.Tag)]; ok {
		query = place
	}

	actions := []models.Action{{
		Type:  models.ActionMaps,
		Label: fmt.Sprintf("Find %s nearby", corr.Tag),
		URL:   "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query),
	}}

	if cal := calendarURL(fmt.Sprintf("Time for %s", corr.Tag), actx.Now); cal != "" {
		actions = append(actions, models.Action{
			Type:  models.ActionCalendar,
			Label: "Put it on the calendar",
			URL:   cal,
		})
	}
	return actions
}

// calendarURL builds a Google Calendar render deep link for a one-hour
// slot tomorrow evening.
func calendarURL(title string, now time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	end := start.Add(time.Hour)

	const stamp = "20060102T150405"
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", start.Format(stamp)+"/"+end.Format(stamp))
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// reminderActions deep-links into the app's reminder scheduler
func reminderActions(actx ActionContext) []models.Action {
	now := actx.Now
	if now.IsZero() {
		now = time.Now()
	}
	q := url.Values{}
	q.Set("hour", "20")
	q.Set("minute", "0")
	q.Set("label", "Evening check-in")
	return []models.Action{{
		Type:  models.ActionReminder,
		Label: "Set a gentle reminder",
		URL:   "myapp://set-reminder?" + q.Encode(),
	}}
}

// shareActions builds message links toward the partner, degrading to
// scheme-only links when no phone number is stored.
func shareActions(actx ActionContext, text string) []models.Action {
	smsURL := "sms:"
	if actx.PartnerPhone != "" {
		smsURL = "sms:" + actx.PartnerPhone
	}
	actions := []models.Action{{
		Type:  models.ActionMessage,
		Label: shareLabel(actx.PartnerName),
		URL:   smsURL,
	}}
	if actx.PartnerPhone != "" {
		q := url.Values{}
		q.Set("phone", actx.PartnerPhone)
		q.Set("text", text)
		actions = append(actions, models.Action{
			Type:  models.ActionWhatsApp,
			Label: "Share on WhatsApp",
			URL:   "whatsapp://send?" + q.Encode(),
		})
	}
	return actions
}

// contactActions suggests reaching out on a rough day
func contactActions(payload models.EventPayload, actx ActionContext) []models.Action {
	trend, ok := payload.(models.TrendPayload)
	if !ok || trend.DeltaSign != "-" {
		return nil
	}
	telURL := "tel:"
	if actx.PartnerPhone != "" {
		telURL = "tel:" + actx.PartnerPhone
	}
	return append([]models.Action{{
		Type:  models.ActionCall,
		Label: callLabel(actx.PartnerName),
		URL:   telURL,
	}}, shareActions(actx, "Rough day over here. Could use a hello.")...)
}

func shareLabel(name string) string {
	if name != "" {
		return "Text " + name
	}
	return "Send a text"
}

func callLabel(name string) string {
	if name != "" {
		return "Call " + name
	}
	return "Call someone"
}
