package effects

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
)

// Builder helps create timed effects
type Builder struct {
	effect *TimedEffect
}

// NewBuilder creates a builder for an effect of the given kind. The key
// defaults to the kind under SourceOther.
func NewBuilder(kind string) *Builder {
	return &Builder{
		effect: &TimedEffect{
			Key:    Key(SourceOther, kind),
			Name:   kind,
			Source: SourceOther,
		},
	}
}

// WithName sets the display name
func (b *Builder) WithName(name string) *Builder {
	b.effect.Name = name
	return b
}

// WithKey overrides the stacking key
func (b *Builder) WithKey(key string) *Builder {
	b.effect.Key = key
	return b
}

// WithSource sets the effect source and re-derives the key from it
func (b *Builder) WithSource(source EffectSource, sourceID string, kind string) *Builder {
	b.effect.Source = source
	b.effect.SourceID = sourceID
	b.effect.Key = Key(source, kind)
	return b
}

// WithDescription adds a description
func (b *Builder) WithDescription(desc string) *Builder {
	b.effect.Description = desc
	return b
}

// ForTicks makes the effect last ticks intervals of every
func (b *Builder) ForTicks(ticks int, every time.Duration) *Builder {
	b.effect.Ticks = ticks
	b.effect.TimePerTick = every
	b.effect.Indefinite = false
	return b
}

// Indefinitely makes the effect last until cancelled, ticking every interval
// when every is positive
func (b *Builder) Indefinitely(every time.Duration) *Builder {
	b.effect.Indefinite = true
	b.effect.TimePerTick = every
	return b
}

// OnStart sets the start hook
func (b *Builder) OnStart(fn func(*stats.Book)) *Builder {
	b.effect.OnStart = fn
	return b
}

// OnTick sets the tick hook
func (b *Builder) OnTick(fn func(*stats.Book)) *Builder {
	b.effect.OnTick = fn
	return b
}

// OnEnd sets the end hook
func (b *Builder) OnEnd(fn func(*stats.Book)) *Builder {
	b.effect.OnEnd = fn
	return b
}

// OnReact sets the hook fired when the owner is targeted
func (b *Builder) OnReact(fn func(Observation) []Effect) *Builder {
	b.effect.React = fn
	return b
}

// OnWitness sets the hook fired for every cast in the battle
func (b *Builder) OnWitness(fn func(Observation) []Effect) *Builder {
	b.effect.Witness = fn
	return b
}

// Build returns the constructed effect
func (b *Builder) Build() *TimedEffect {
	return b.effect
}

// Common effect builders

// BuildPoison deals damage every tick. Poison from any source shares one
// key, so a fresh dose replaces the running one.
func BuildPoison(sourceID string, damage, ticks int, every time.Duration) *TimedEffect {
	return NewBuilder("Poison").
		WithSource(SourceSpell, sourceID, "poison").
		WithDescription(fmt.Sprintf("Loses %d health every turn for %d turns.", damage, ticks)).
		ForTicks(ticks, every).
		OnTick(func(target *stats.Book) {
			target.Add(stats.Health, -damage)
		}).
		Build()
}

// BuildRegeneration restores health every tick
func BuildRegeneration(sourceID string, heal, ticks int, every time.Duration) *TimedEffect {
	return NewBuilder("Regeneration").
		WithSource(SourceSpell, sourceID, "regeneration").
		WithDescription(fmt.Sprintf("Restores %d health every turn for %d turns.", heal, ticks)).
		ForTicks(ticks, every).
		OnTick(func(target *stats.Book) {
			target.Add(stats.Health, heal)
		}).
		Build()
}

// BuildCounter strikes back at anyone who lands an offensive spell on the
// owner while it lasts
func BuildCounter(ownerID string, damage, ticks int, every time.Duration) *TimedEffect {
	return NewBuilder("Counter").
		WithSource(SourceSpell, ownerID, "counter").
		WithDescription(fmt.Sprintf("Deals %d damage back to attackers.", damage)).
		ForTicks(ticks, every).
		OnReact(func(obs Observation) []Effect {
			if !obs.Offensive || obs.CasterID == ownerID || obs.Missed {
				return nil
			}
			return []Effect{AddToStat{
				OwnerID: obs.CasterID,
				Book:    obs.Caster,
				Stat:    stats.Health,
				Amount:  -damage,
			}}
		}).
		Build()
}
