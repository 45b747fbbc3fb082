package dice

import (
	"math/rand"
	"time"
)

// randomSource implements Source on top of math/rand
type randomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source seeded from the clock
func NewRandomSource() Source {
	return NewSeededSource(time.Now().UnixNano())
}

// NewSeededSource creates a deterministic source; two sources with the same
// seed produce the same sequence of draws.
func NewSeededSource(seed int64) Source {
	return &randomSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NextBool implements Source.NextBool
func (r *randomSource) NextBool(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return r.rng.Float64() < probability
}

// Range implements Source.Range
func (r *randomSource) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}
