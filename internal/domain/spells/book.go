package spells

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

// Chance returns a probability in [0, 1]
type Chance func(caster, target Params) float64

// EffectsFunc produces the effects of one outcome
type EffectsFunc func(caster, target Params, rng dice.Source) []effects.Effect

// CueFunc picks the sound and visuals for an outcome
type CueFunc func(caster, target Params) Cue

// Behavior is the table of decision functions that makes a spell what it
// is. Nil entries fall back to the defaults: always hit, never crit, no
// effects on a miss or crit, no extra requirements.
type Behavior struct {
	Requirements    func(caster, target Params) bool
	HitChance       Chance
	CriticalChance  Chance
	HitEffects      EffectsFunc
	CriticalEffects EffectsFunc
	MissEffects     EffectsFunc
	HitCue          CueFunc
	MissCue         CueFunc
	Detail          func(caster Params) string
	Text            func(caster, target Params, result ResultType) string
}

// Cost is one resource a spell consumes
type Cost struct {
	Stat   stats.Type
	Amount int
}

// Definition is what a Book is built from
type Definition struct {
	ID       string
	Name     string
	Icon     string
	Target   TargetType
	Type     SpellType
	Costs    map[stats.Type]int
	Priority int
	CastTime int
	Cooldown int
	Flags    []Flag
	Behavior Behavior

	// AlwaysCastable lifts the requirement that the caster knows the spell
	AlwaysCastable bool
}

// Book is an immutable spell definition shared by every caster. Two books
// are the same spell when they share an ID and silenced state.
type Book struct {
	id       string
	name     string
	icon     string
	target   TargetType
	kind     SpellType
	costs    []Cost
	priority int
	castTime int
	cooldown int
	flags    map[Flag]bool
	silenced bool
	behavior Behavior
}

// NewBook builds a spell definition. It panics on an empty ID or a
// negative cost; definitions are written in code and such a book is a bug.
func NewBook(def Definition) *Book {
	if def.ID == "" {
		panic("spell definition requires an ID")
	}

	costs := make([]Cost, 0, len(def.Costs))
	for stat, amount := range def.Costs {
		if amount < 0 {
			panic("spell " + def.ID + " has a negative " + string(stat) + " cost")
		}
		if amount == 0 {
			continue
		}
		costs = append(costs, Cost{Stat: stat, Amount: amount})
	}
	sort.Slice(costs, func(i, j int) bool {
		return costs[i].Stat.Less(costs[j].Stat)
	})

	flags := make(map[Flag]bool, len(def.Flags)+1)
	for _, f := range def.Flags {
		flags[f] = true
	}
	if !def.AlwaysCastable {
		flags[FlagCasterRequiresSpell] = true
	}

	name := def.Name
	if name == "" {
		name = def.ID
	}

	return &Book{
		id:       def.ID,
		name:     name,
		icon:     def.Icon,
		target:   def.Target,
		kind:     def.Type,
		costs:    costs,
		priority: def.Priority,
		castTime: def.CastTime,
		cooldown: def.Cooldown,
		flags:    flags,
		behavior: def.Behavior,
	}
}

func (b *Book) ID() string             { return b.id }
func (b *Book) Name() string           { return b.name }
func (b *Book) Icon() string           { return b.icon }
func (b *Book) Target() TargetType     { return b.target }
func (b *Book) Type() SpellType        { return b.kind }
func (b *Book) Priority() int          { return b.priority }
func (b *Book) CastTime() int          { return b.castTime }
func (b *Book) Cooldown() int          { return b.cooldown }
func (b *Book) IsSilenced() bool       { return b.silenced }
func (b *Book) HasFlag(flag Flag) bool { return b.flags[flag] }

// Costs returns the cost entries in stat order
func (b *Book) Costs() []Cost {
	out := make([]Cost, len(b.costs))
	copy(out, b.costs)
	return out
}

// Cost returns the amount of stat the spell consumes
func (b *Book) Cost(stat stats.Type) int {
	for _, c := range b.costs {
		if c.Stat == stat {
			return c.Amount
		}
	}
	return 0
}

// WithSilenced returns a copy of the book with the silenced bit set
func (b *Book) WithSilenced(silenced bool) *Book {
	copied := *b
	copied.silenced = silenced
	return &copied
}

// Equal reports whether two books are the same spell
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.id == other.id && b.silenced == other.silenced
}

// HasResource reports whether the caster can pay the cost in stat
func (b *Book) HasResource(caster Params, stat stats.Type) bool {
	cost := b.Cost(stat)
	if cost == 0 {
		return true
	}
	return caster.Stats != nil && caster.Stats.Get(stat) >= cost
}

// HasResources reports whether the caster can pay every cost
func (b *Book) HasResources(caster Params) bool {
	for _, c := range b.costs {
		if !b.HasResource(caster, c.Stat) {
			return false
		}
	}
	return true
}

// MeetsOtherRequirements runs the spell specific requirement check
func (b *Book) MeetsOtherRequirements(caster, target Params) bool {
	if b.behavior.Requirements == nil {
		return true
	}
	return b.behavior.Requirements(caster, target)
}

// CastCheck holds the independent reasons a cast may be blocked
type CastCheck struct {
	Silenced     bool
	Resources    bool
	Requirements bool
	Known        bool
}

// Castable is true when nothing blocks the cast
func (c CastCheck) Castable() bool {
	return !c.Silenced && c.Resources && c.Requirements && c.Known
}

// Reasons lists why a cast is blocked, for display
func (c CastCheck) Reasons() []string {
	var reasons []string
	if c.Silenced {
		reasons = append(reasons, "Silenced.")
	}
	if !c.Resources {
		reasons = append(reasons, "Insufficient resource.")
	}
	if !c.Requirements {
		reasons = append(reasons, "Requirements not met.")
	}
	if !c.Known {
		reasons = append(reasons, "Spell not known.")
	}
	return reasons
}

// Err describes why the cast is blocked, nil when it is castable. A missing
// resource takes precedence over other reasons.
func (c CastCheck) Err() error {
	if c.Castable() {
		return nil
	}
	reasons := strings.Join(c.Reasons(), " ")
	if !c.Resources {
		return dnderr.InsufficientResourcef("%s", reasons).WithMeta("reasons", c.Reasons())
	}
	return dnderr.UnmetRequirementf("%s", reasons).WithMeta("reasons", c.Reasons())
}

// Check evaluates every castability condition without side effects
func (b *Book) Check(caster, target Params) CastCheck {
	return CastCheck{
		Silenced:     b.silenced,
		Resources:    b.HasResources(caster),
		Requirements: b.MeetsOtherRequirements(caster, target),
		Known:        !b.HasFlag(FlagCasterRequiresSpell) || caster.Knows(b),
	}
}

// IsCastable reports whether caster may cast this spell on target
func (b *Book) IsCastable(caster, target Params) bool {
	return b.Check(caster, target).Castable()
}

// BuildSpell pays the spell's costs and resolves it. Nothing is mutated
// when the spell is not castable; the returned error has code
// invalid_cast and carries the failed checks as metadata.
func (b *Book) BuildSpell(caster, target Params, rng dice.Source) (*Spell, error) {
	check := b.Check(caster, target)
	if !check.Castable() {
		err := dnderr.InvalidCastf("%s attempted to cast %s without requirements fulfilled", caster.Name, b.name).
			WithMeta("spell_id", b.id).
			WithMeta("silenced", check.Silenced).
			WithMeta("resources", check.Resources).
			WithMeta("requirements", check.Requirements).
			WithMeta("known", check.Known)
		err.Cause = check.Err()
		return nil, err
	}

	for _, c := range b.costs {
		caster.Stats.Add(c.Stat, -c.Amount)
	}
	return b.ForceSpell(caster, target, rng), nil
}

// ForceSpell resolves the spell without checking or paying costs. Costs are
// still recorded on the result.
func (b *Book) ForceSpell(caster, target Params, rng dice.Source) *Spell {
	result := &Result{Type: ResultMiss}
	if roll(rng, b.chance(b.behavior.HitChance, 1, caster, target)) {
		result.Type = ResultHit
		if roll(rng, b.chance(b.behavior.CriticalChance, 0, caster, target)) {
			result.Type = ResultCritical
		}
	}

	var produce EffectsFunc
	var cue CueFunc
	switch result.Type {
	case ResultCritical:
		produce, cue = b.behavior.CriticalEffects, b.behavior.HitCue
	case ResultHit:
		produce, cue = b.behavior.HitEffects, b.behavior.HitCue
	default:
		produce, cue = b.behavior.MissEffects, b.behavior.MissCue
	}
	if produce != nil {
		result.Effects = produce(caster, target, rng)
	}
	if cue != nil {
		c := cue(caster, target)
		result.Sound = c.Sound
		result.Visuals = c.Visuals
	}
	result.Text = b.text(caster, target, result.Type)

	return &Spell{
		Book:     b,
		Result:   result,
		CasterID: caster.CharacterID,
		TargetID: target.CharacterID,
		Costs:    b.Costs(),
	}
}

func (b *Book) chance(fn Chance, fallback float64, caster, target Params) float64 {
	if fn == nil {
		return fallback
	}
	return fn(caster, target)
}

// roll only draws from the source for a genuine gamble
func roll(rng dice.Source, probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return rng.NextBool(probability)
}
