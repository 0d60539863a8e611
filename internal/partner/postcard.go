// Package partner implements the partner-sharing side of the insight
// core: a priority-rule postcard generator over one day's entries, and
// the day-bucketed rollup that feeds weekly and monthly partner views.
package partner

import (
	"sort"
	"strings"
	"time"

	"github.com/moodloop/backend/internal/advisor"
	"github.com/moodloop/backend/internal/models"
)

// Postcard generation thresholds
const (
	minEntriesForPostcard = 2
	minEntriesForRhythm   = 3

	lowMood      = 2
	brightMood   = 4
	positiveMood = 4
)

// moodWords describes each scale point in partner-friendly language
var moodWords = map[int]string{
	1: "really low",
	2: "low",
	3: "okay",
	4: "happy",
	5: "very happy",
}

// Engine turns a single day's entries into at most one shareable
// postcard, using a fixed priority cascade rather than scoring. The
// randomness source only picks between phrasing variants.
type Engine struct {
	rand advisor.Rand
	now  func() time.Time
}

// NewEngine creates a postcard engine
func NewEngine(rnd advisor.Rand) *Engine {
	return &Engine{rand: rnd, now: time.Now}
}

// WithNow overrides the clock, for tests
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// GeneratePostcard runs the rule cascade over one day's adapted entries.
// Fewer than two entries is not an insight; the caller gets nil and
// shares nothing. Only the first satisfied rule fires.
func (e *Engine) GeneratePostcard(dayEntries []models.AdvisorEntry) *models.Postcard {
	entries := validSorted(dayEntries)
	if len(entries) < minEntriesForPostcard {
		return nil
	}

	if pc := e.turnaround(entries); pc != nil {
		return pc
	}
	if pc := e.boosterHighlight(entries); pc != nil {
		return pc
	}
	if pc := e.gentleNudge(entries); pc != nil {
		return pc
	}
	return e.rhythmNote(entries)
}

// turnaround fires when a rough start became a bright finish
func (e *Engine) turnaround(entries []models.AdvisorEntry) *models.Postcard {
	first, last := entries[0], entries[len(entries)-1]
	if first.Mood > lowMood || last.Mood < brightMood {
		return nil
	}

	booster := "something"
	if len(last.Boosters) > 0 {
		booster = last.Boosters[0]
	}

	text := e.pick(
		"The day started heavy but finished {word} — {booster} seemed to turn it around.",
		"What a turnaround today: from a rough morning to feeling {word}. {booster} helped.",
	)
	return &models.Postcard{
		Type:       models.PostcardMoodBooster,
		Text:       substitute(text, map[string]string{"booster": booster, "word": moodWords[last.Mood]}),
		Emoji:      "🌅",
		Highlights: []string{booster, moodWords[last.Mood]},
		Timestamp:  e.now(),
	}
}

// boosterHighlight fires when the best moment of the day carries a tag
func (e *Engine) boosterHighlight(entries []models.AdvisorEntry) *models.Postcard {
	best := entries[0]
	for _, entry := range entries[1:] {
		if entry.Mood > best.Mood {
			best = entry
		}
	}
	if len(best.Boosters) == 0 {
		return nil
	}

	booster := best.Boosters[0]
	text := e.pick(
		"{booster} was the bright spot of the day — feeling {word} afterwards.",
		"Today's highlight: {booster}. The mood hit {word}.",
	)
	return &models.Postcard{
		Type:       models.PostcardMoodBooster,
		Text:       substitute(text, map[string]string{"booster": booster, "word": moodWords[best.Mood]}),
		Emoji:      "✨",
		Highlights: []string{booster},
		Timestamp:  e.now(),
	}
}

// gentleNudge fires when the lowest moment of the day carries a drainer.
// The copy is deliberately non-alarming.
func (e *Engine) gentleNudge(entries []models.AdvisorEntry) *models.Postcard {
	lowest := entries[0]
	for _, entry := range entries[1:] {
		if entry.Mood < lowest.Mood {
			lowest = entry
		}
	}
	if lowest.Mood > lowMood || len(lowest.Drainers) == 0 {
		return nil
	}

	drainer := lowest.Drainers[0]
	text := e.pick(
		"{drainer} weighed on the day a bit. A check-in might be welcome.",
		"Today had a heavier stretch around {drainer} — nothing dramatic, just worth knowing.",
	)
	return &models.Postcard{
		Type:       models.PostcardGentleNudge,
		Text:       substitute(text, map[string]string{"drainer": drainer}),
		Emoji:      "💛",
		Highlights: []string{drainer},
		Timestamp:  e.now(),
	}
}

// rhythmNote is the fallback observation for days with enough entries
func (e *Engine) rhythmNote(entries []models.AdvisorEntry) *models.Postcard {
	if len(entries) < minEntriesForRhythm {
		return nil
	}

	bucket := bestDaypart(entries)
	state := dayState(entries)

	text := e.pick(
		"{bucket} was the best part of the day. Overall: a {state} one.",
		"The {bucket} hours carried the day — a {state} day all told.",
	)
	return &models.Postcard{
		Type:       models.PostcardRhythmNote,
		Text:       substitute(text, map[string]string{"bucket": bucket, "state": state}),
		Emoji:      "🌤️",
		Timestamp:  e.now(),
	}
}

func (e *Engine) pick(a, b string) string {
	if e.rand.Intn(2) == 0 {
		return a
	}
	return b
}

// substitute fills {placeholder} slots in the variant text
func substitute(text string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// validSorted drops unparseable timestamps and sorts chronologically
func validSorted(entries []models.AdvisorEntry) []models.AdvisorEntry {
	out := make([]models.AdvisorEntry, 0, len(entries))
	for _, e := range entries {
		if e.T != advisor.InvalidTime {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

// bestDaypart finds the time-of-day bucket with the highest share of
// positive moods. Buckets: morning 5–11, afternoon 12–16, evening
// 17–20, night 21–4.
func bestDaypart(entries []models.AdvisorEntry) string {
	names := []string{"morning", "afternoon", "evening", "night"}
	var positive, total [4]int

	for _, e := range entries {
		b := daypart(time.UnixMilli(e.T).Hour())
		total[b]++
		if e.Mood >= positiveMood {
			positive[b]++
		}
	}

	best := 0
	var bestRatio float64 = -1
	for i := range names {
		if total[i] == 0 {
			continue
		}
		ratio := float64(positive[i]) / float64(total[i])
		if ratio > bestRatio {
			bestRatio = ratio
			best = i
		}
	}
	return names[best]
}

func daypart(hour int) int {
	switch {
	case hour >= 5 && hour <= 11:
		return 0 // morning
	case hour >= 12 && hour <= 16:
		return 1 // afternoon
	case hour >= 17 && hour <= 20:
		return 2 // evening
	default:
		return 3 // night (21–4)
	}
}

// dayState grades the whole day from its average mood
func dayState(entries []models.AdvisorEntry) string {
	var sum int
	for _, e := range entries {
		sum += e.Mood
	}
	avg := float64(sum) / float64(len(entries))
	switch {
	case avg >= 4:
		return "great"
	case avg >= 3:
		return "good"
	case avg >= 2:
		return "okay"
	default:
		return "challenged"
	}
}
