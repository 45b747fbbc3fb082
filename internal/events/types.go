package events

import (
	"github.com/KirkDiggler/spellbook/internal/effects"
)

// EventType represents the type of engine event
type EventType string

const (
	EventTypeCast   EventType = "cast"
	EventTypeEffect EventType = "effect"
	EventTypeBattle EventType = "battle"
)

// Event is the base interface for all engine events
type Event interface {
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// CastEvent carries the presentation descriptors of a resolved cast
type CastEvent struct {
	BaseEvent
	BattleID  string
	CasterID  string
	TargetID  string
	SpellID   string
	SpellName string
	Result    string
	Text      string
	Sound     string
	Visuals   []string
}

// NewCastEvent creates a cast event
func NewCastEvent() *CastEvent {
	return &CastEvent{BaseEvent: BaseEvent{Type: EventTypeCast}}
}

// EffectEvent reports a timed effect starting or ending
type EffectEvent struct {
	BaseEvent
	Change effects.Change
}

// NewEffectEvent creates an effect event
func NewEffectEvent(change effects.Change) *EffectEvent {
	return &EffectEvent{BaseEvent: BaseEvent{Type: EventTypeEffect}, Change: change}
}

// BattleEvent reports a battle's progress
type BattleEvent struct {
	BaseEvent
	BattleID string
	Turn     int
	Status   string
	Text     string
}

// NewBattleEvent creates a battle event
func NewBattleEvent(battleID string, turn int, status, text string) *BattleEvent {
	return &BattleEvent{
		BaseEvent: BaseEvent{Type: EventTypeBattle},
		BattleID:  battleID,
		Turn:      turn,
		Status:    status,
		Text:      text,
	}
}

// EffectListener forwards effect lifecycle changes onto the bus
func (b *Bus) EffectListener() effects.Listener {
	return func(change effects.Change) {
		b.Emit(NewEffectEvent(change))
	}
}
