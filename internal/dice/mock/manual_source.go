package mockdice

import (
	"sync"
)

// ManualSource implements dice.Source with predetermined results.
// Once the script runs out it falls back to the configured defaults.
type ManualSource struct {
	mu          sync.Mutex
	bools       []bool
	boolIndex   int
	ints        []int
	intIndex    int
	DefaultBool bool
	Requested   []float64 // probabilities passed to NextBool, in order
}

// NewManualSource creates a source whose unscripted NextBool calls return true
func NewManualSource() *ManualSource {
	return &ManualSource{DefaultBool: true}
}

// SetBools scripts upcoming NextBool results
func (m *ManualSource) SetBools(values ...bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools = values
	m.boolIndex = 0
}

// SetInts scripts upcoming Range results
func (m *ManualSource) SetInts(values ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints = values
	m.intIndex = 0
}

// NextBool implements dice.Source.NextBool
func (m *ManualSource) NextBool(probability float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requested = append(m.Requested, probability)
	if m.boolIndex >= len(m.bools) {
		return m.DefaultBool
	}
	v := m.bools[m.boolIndex]
	m.boolIndex++
	return v
}

// Range implements dice.Source.Range. Scripted values are clamped into
// [min, max]; without a script it returns min.
func (m *ManualSource) Range(min, max int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.intIndex >= len(m.ints) {
		return min
	}
	v := m.ints[m.intIndex]
	m.intIndex++
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
