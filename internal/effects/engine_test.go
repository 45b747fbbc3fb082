package effects_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ApplyInOrder(t *testing.T) {
	engine := effects.NewEngine(nil)
	book := stats.NewBook()
	book.Set(stats.Health, 10, 10)
	manager := engine.NewManager("villager", book)
	poison := effects.BuildPoison("hero", 1, 2, turn)

	err := engine.Apply(context.Background(), []effects.Effect{
		effects.AddToStat{OwnerID: "villager", Book: book, Stat: stats.Health, Amount: -3},
		effects.AddToMax{OwnerID: "villager", Book: book, Stat: stats.Health, Amount: -5},
		effects.StartTimed{Manager: manager, Effect: poison},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, book.Get(stats.Health))
	assert.Equal(t, 5, book.GetMax(stats.Health))
	assert.True(t, manager.Has(poison.Key))

	require.NoError(t, engine.Apply(context.Background(), []effects.Effect{
		effects.CancelTimed{Manager: manager, Key: poison.Key},
	}))
	assert.False(t, manager.Has(poison.Key))
}

func TestEngine_ApplyStopsAtFailure(t *testing.T) {
	engine := effects.NewEngine(&effects.EngineConfig{Scheduler: effects.NewManualScheduler()})
	book := stats.NewBook()
	book.Set(stats.Health, 10, 10)

	err := engine.Apply(context.Background(), []effects.Effect{
		effects.AddToStat{OwnerID: "a", Book: book, Stat: stats.Health, Amount: -1},
		effects.AddToStat{OwnerID: "ghost", Stat: stats.Health, Amount: -1},
		effects.AddToStat{OwnerID: "a", Book: book, Stat: stats.Health, Amount: -1},
	})

	require.Error(t, err)
	assert.Equal(t, 9, book.Get(stats.Health), "partial application is kept, nothing after the failure runs")
}

func TestEngine_ApplyCancelledContext(t *testing.T) {
	engine := effects.NewEngine(nil)
	book := stats.NewBook()
	book.Set(stats.Health, 10, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := engine.Apply(ctx, []effects.Effect{
		effects.AddToStat{OwnerID: "a", Book: book, Stat: stats.Health, Amount: -1},
	})
	require.Error(t, err)
	assert.Equal(t, 10, book.Get(stats.Health))
}

func TestComposite(t *testing.T) {
	book := stats.NewBook()
	book.Set(stats.Mana, 0, 10)

	c := effects.Composite{
		effects.AddToStat{OwnerID: "a", Book: book, Stat: stats.Mana, Amount: 4},
		effects.AddToStat{OwnerID: "a", Book: book, Stat: stats.Mana, Amount: 4},
	}

	require.NoError(t, c.Apply())
	assert.Equal(t, 8, book.Get(stats.Mana))
	assert.Equal(t, "2 effects", c.String())
}
