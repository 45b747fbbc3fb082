package effects_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	t.Run("creates basic effect", func(t *testing.T) {
		effect := effects.NewBuilder("haste").
			WithSource(effects.SourceItem, "boots", "haste").
			WithName("Haste").
			WithDescription("Faster.").
			ForTicks(4, time.Second).
			Build()

		assert.Equal(t, "item:haste", effect.Key)
		assert.Equal(t, "Haste", effect.Name)
		assert.Equal(t, "boots", effect.SourceID)
		assert.Equal(t, "Faster.", effect.Description)
		assert.Equal(t, 4, effect.Ticks)
		assert.Equal(t, time.Second, effect.TimePerTick)
		assert.False(t, effect.Indefinite)
	})

	t.Run("defaults key from kind", func(t *testing.T) {
		effect := effects.NewBuilder("ward").Indefinitely(0).Build()

		assert.Equal(t, "other:ward", effect.Key)
		assert.True(t, effect.Indefinite)
	})
}

func TestBuildPoison_SharedKey(t *testing.T) {
	a := effects.BuildPoison("hero", 1, 3, time.Second)
	b := effects.BuildPoison("villager", 2, 3, time.Second)

	assert.Equal(t, a.Key, b.Key)
	assert.Equal(t, "spell:poison", a.Key)
}

func TestBuildRegeneration_Ticks(t *testing.T) {
	book := stats.NewBook()
	book.Set(stats.Health, 5, 10)

	regen := effects.BuildRegeneration("healer", 2, 3, time.Second)
	regen.OnTick(book)

	assert.Equal(t, 7, book.Get(stats.Health))
}
