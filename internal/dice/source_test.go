package dice_test

import (
	"testing"

	"github.com/KirkDiggler/spellbook/internal/dice"
	mockdice "github.com/KirkDiggler/spellbook/internal/dice/mock"
	"github.com/stretchr/testify/assert"
)

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.NextBool(0.5), b.NextBool(0.5))
		assert.Equal(t, a.Range(1, 6), b.Range(1, 6))
	}
}

func TestSeededSource_Bounds(t *testing.T) {
	src := dice.NewSeededSource(7)

	for i := 0; i < 100; i++ {
		assert.True(t, src.NextBool(1))
		assert.False(t, src.NextBool(0))

		v := src.Range(2, 4)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 4)
	}
	assert.Equal(t, 3, src.Range(3, 3))
	assert.Equal(t, 5, src.Range(5, 1))
}

func TestManualSource_Script(t *testing.T) {
	src := mockdice.NewManualSource()
	src.SetBools(false, true)
	src.SetInts(9, -1)

	assert.False(t, src.NextBool(0.9))
	assert.True(t, src.NextBool(0.1))
	assert.True(t, src.NextBool(0.5), "falls back to default once the script runs out")
	assert.Equal(t, []float64{0.9, 0.1, 0.5}, src.Requested)

	assert.Equal(t, 6, src.Range(1, 6), "clamped to max")
	assert.Equal(t, 1, src.Range(1, 6), "clamped to min")
	assert.Equal(t, 1, src.Range(1, 6), "unscripted returns min")
}
