package advisor

import "math"

// Salience weighting. Confidence and novelty are hooks for future
// refinement; the current detectors pass 1 for both, so ordering is
// dominated by magnitude.
const (
	weightMagnitude  = 0.4
	weightConfidence = 0.3
	weightNovelty    = 0.2
	weightRecency    = 0.1

	// Recency half-life in hours
	decayHalfLifeHours = 48.0
)

// Salience combines magnitude, confidence, novelty, and recency decay
// into a 0..1 importance score. Each component is clamped to [0,1]
// before weighting.
func Salience(magnitude, confidence, novelty, hoursOld float64) float64 {
	return weightMagnitude*clamp01(magnitude) +
		weightConfidence*clamp01(confidence) +
		weightNovelty*clamp01(novelty) +
		weightRecency*recencyDecay(hoursOld)
}

// scoreMagnitude is the default scoring path used by detectors: full
// confidence and novelty, one hour old.
func scoreMagnitude(magnitude float64) float64 {
	return Salience(magnitude, 1, 1, 1)
}

// recencyDecay is exponential with a 48-hour half-life. Downstream
// ranking depends on the exact 0.5^(hours/48) shape.
func recencyDecay(hoursOld float64) float64 {
	return clamp01(math.Pow(0.5, hoursOld/decayHalfLifeHours))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
