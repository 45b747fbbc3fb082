package effects

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
)

// EffectSource represents where an effect comes from
type EffectSource string

const (
	SourceSpell     EffectSource = "spell"
	SourceItem      EffectSource = "item"
	SourceEquipment EffectSource = "equipment"
	SourceOther     EffectSource = "other"
)

// Key builds an effect key from its source and kind. Two effects with the
// same key never run at the same time on one target; a new one replaces
// the old one.
func Key(source EffectSource, kind string) string {
	return fmt.Sprintf("%s:%s", source, kind)
}

// Effect is a single state change produced by a resolved cast
type Effect interface {
	Apply() error
	String() string
}

// AddToStat adds Amount to the current value of a stat
type AddToStat struct {
	OwnerID string
	Book    *stats.Book
	Stat    stats.Type
	Amount  int
}

// Apply implements Effect
func (e AddToStat) Apply() error {
	if e.Book == nil {
		return fmt.Errorf("add %d %s: no stat book for %q", e.Amount, e.Stat, e.OwnerID)
	}
	e.Book.Add(e.Stat, e.Amount)
	return nil
}

func (e AddToStat) String() string {
	return fmt.Sprintf("%+d %s to %s", e.Amount, e.Stat.Name(), e.OwnerID)
}

// AddToMax adds Amount to the maximum of a stat
type AddToMax struct {
	OwnerID string
	Book    *stats.Book
	Stat    stats.Type
	Amount  int
}

// Apply implements Effect
func (e AddToMax) Apply() error {
	if e.Book == nil {
		return fmt.Errorf("add %d max %s: no stat book for %q", e.Amount, e.Stat, e.OwnerID)
	}
	e.Book.AddMax(e.Stat, e.Amount)
	return nil
}

func (e AddToMax) String() string {
	return fmt.Sprintf("%+d max %s to %s", e.Amount, e.Stat.Name(), e.OwnerID)
}

// StartTimed registers a timed effect on a target
type StartTimed struct {
	Manager *Manager
	Effect  *TimedEffect
}

// Apply implements Effect
func (e StartTimed) Apply() error {
	if e.Manager == nil {
		return fmt.Errorf("start %s: no effect manager", e.Effect.Key)
	}
	return e.Manager.Start(e.Effect)
}

func (e StartTimed) String() string {
	owner := ""
	if e.Manager != nil {
		owner = e.Manager.OwnerID()
	}
	return fmt.Sprintf("start %s on %s", e.Effect.Name, owner)
}

// CancelTimed ends a timed effect if it is active
type CancelTimed struct {
	Manager *Manager
	Key     string
}

// Apply implements Effect
func (e CancelTimed) Apply() error {
	if e.Manager == nil {
		return fmt.Errorf("cancel %s: no effect manager", e.Key)
	}
	e.Manager.Cancel(e.Key)
	return nil
}

func (e CancelTimed) String() string {
	owner := ""
	if e.Manager != nil {
		owner = e.Manager.OwnerID()
	}
	return fmt.Sprintf("cancel %s on %s", e.Key, owner)
}

// Composite applies its effects in order, stopping at the first failure
type Composite []Effect

// Apply implements Effect
func (c Composite) Apply() error {
	for _, e := range c {
		if err := e.Apply(); err != nil {
			return err
		}
	}
	return nil
}

func (c Composite) String() string {
	return fmt.Sprintf("%d effects", len(c))
}

// Observation describes a resolved cast to active effects
type Observation struct {
	CasterID  string
	TargetID  string
	SpellID   string
	SpellName string
	Result    string
	Missed    bool
	Offensive bool
	Caster    *stats.Book
	Target    *stats.Book
}

// TimedEffect is an effect that lives on a target for a while (a buff or
// debuff). It ticks every TimePerTick until Ticks have elapsed, unless
// Indefinite is set. An indefinite effect with no TimePerTick never ticks
// and only ends by cancellation.
type TimedEffect struct {
	Key         string
	Name        string
	Description string
	Source      EffectSource
	SourceID    string

	Ticks       int
	Indefinite  bool
	TimePerTick time.Duration

	OnStart func(target *stats.Book)
	OnTick  func(target *stats.Book)
	OnEnd   func(target *stats.Book)

	// React fires when the owner is the target of a resolved cast
	React func(obs Observation) []Effect

	// Witness fires for every cast resolved in the owner's battle
	Witness func(obs Observation) []Effect
}

// Info is a read-only view of an active effect
type Info struct {
	Key            string
	Name           string
	Source         EffectSource
	SourceID       string
	Indefinite     bool
	TicksElapsed   int
	TicksRemaining int
}
