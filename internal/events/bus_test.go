package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/KirkDiggler/spellbook/internal/events"
)

func recorder(id string, priority int, order *[]string) *events.ListenerFunc {
	return &events.ListenerFunc{
		Name:  id,
		Order: priority,
		Fn: func(e events.Event) error {
			*order = append(*order, id)
			return nil
		},
	}
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()
	var executionOrder []string

	// Subscribe in random order
	bus.Subscribe(events.EventTypeCast, recorder("low", 300, &executionOrder))
	bus.Subscribe(events.EventTypeCast, recorder("high", 100, &executionOrder))
	bus.Subscribe(events.EventTypeCast, recorder("medium", 200, &executionOrder))

	failed := bus.Emit(events.NewCastEvent())

	assert.Equal(t, 0, failed)
	assert.Equal(t, []string{"high", "medium", "low"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus()
	var executionOrder []string

	bus.Subscribe(events.EventTypeBattle, &events.ListenerFunc{
		Name:  "first",
		Order: 100,
		Fn: func(e events.Event) error {
			executionOrder = append(executionOrder, "first")
			e.Cancel()
			return nil
		},
	})
	bus.Subscribe(events.EventTypeBattle, recorder("second", 200, &executionOrder))

	event := events.NewBattleEvent("battle-1", 1, "ONGOING", "")
	bus.Emit(event)

	assert.True(t, event.IsCancelled())
	assert.Equal(t, []string{"first"}, executionOrder)
}

func TestEventBus_FailingListenerDoesNotBlock(t *testing.T) {
	bus := events.NewBus()
	var executionOrder []string

	bus.Subscribe(events.EventTypeCast, &events.ListenerFunc{
		Name:  "broken",
		Order: 1,
		Fn: func(events.Event) error {
			return errors.New("speaker unplugged")
		},
	})
	bus.Subscribe(events.EventTypeCast, recorder("log", 2, &executionOrder))

	failed := bus.Emit(events.NewCastEvent())

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"log"}, executionOrder)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus()
	var executionOrder []string
	bus.Subscribe(events.EventTypeCast, recorder("a", 1, &executionOrder))
	bus.Subscribe(events.EventTypeCast, recorder("b", 2, &executionOrder))

	bus.Unsubscribe(events.EventTypeCast, "a")
	bus.Emit(events.NewCastEvent())

	assert.Equal(t, []string{"b"}, executionOrder)
}

func TestEventBus_EffectListener(t *testing.T) {
	bus := events.NewBus()
	var got []effects.Change
	bus.Subscribe(events.EventTypeEffect, &events.ListenerFunc{
		Name: "effects",
		Fn: func(e events.Event) error {
			got = append(got, e.(*events.EffectEvent).Change)
			return nil
		},
	})

	scheduler := effects.NewManualScheduler()
	engine := effects.NewEngine(&effects.EngineConfig{Scheduler: scheduler, Listener: bus.EffectListener()})
	manager := engine.NewManager("char-1", nil)
	assert.NoError(t, manager.Start(effects.NewBuilder("Guard").Indefinitely(0).Build()))
	manager.Cancel(effects.Key(effects.SourceOther, "Guard"))

	if assert.Len(t, got, 2) {
		assert.Equal(t, effects.StateActive, got[0].State)
		assert.Equal(t, effects.StateEnded, got[1].State)
		assert.Equal(t, effects.EventCancel, got[1].Event)
	}
}
