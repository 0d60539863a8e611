package advisor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalienceWeighting(t *testing.T) {
	// All components maxed and zero hours old scores exactly 1
	assert.InDelta(t, 1.0, Salience(1, 1, 1, 0), 1e-9)

	// Magnitude alone contributes 0.4
	assert.InDelta(t, 0.4, Salience(1, 0, 0, math.Inf(1)), 1e-9)
	// Confidence alone contributes 0.3
	assert.InDelta(t, 0.3, Salience(0, 1, 0, math.Inf(1)), 1e-9)
	// Novelty alone contributes 0.2
	assert.InDelta(t, 0.2, Salience(0, 0, 1, math.Inf(1)), 1e-9)
	// Recency alone contributes 0.1 at zero age
	assert.InDelta(t, 0.1, Salience(0, 0, 0, 0), 1e-9)
}

func TestSalienceComponentClamping(t *testing.T) {
	// Oversized inputs clamp to 1, negatives to 0
	assert.InDelta(t, Salience(1, 1, 1, 0), Salience(5, 7, 2, 0), 1e-9)
	assert.InDelta(t, Salience(0, 0, 0, 0), Salience(-3, -1, -0.5, 0), 1e-9)
	// NaN degrades to zero rather than poisoning the score
	assert.InDelta(t, 0.1, Salience(math.NaN(), 0, 0, 0), 1e-9)
}

func TestRecencyDecayHalfLife(t *testing.T) {
	assert.InDelta(t, 1.0, recencyDecay(0), 1e-9)
	assert.InDelta(t, 0.5, recencyDecay(48), 1e-9)
	assert.InDelta(t, 0.25, recencyDecay(96), 1e-9)
}

func TestSalienceOrderingFollowsMagnitude(t *testing.T) {
	// With equal confidence/novelty/age, a larger magnitude always ranks
	// higher. Composition relies on this.
	low := Salience(0.2, 1, 1, 1)
	high := Salience(0.8, 1, 1, 1)
	assert.Greater(t, high, low)
}
