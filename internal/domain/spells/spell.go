package spells

import (
	"github.com/KirkDiggler/spellbook/internal/effects"
)

// Cue is what the presentation layer plays for an outcome. Sound and
// visuals are opaque tokens to the engine.
type Cue struct {
	Sound   string
	Visuals []string
}

// Result is the resolved outcome of one cast. It is built once and must be
// treated as read-only.
type Result struct {
	Type    ResultType
	Effects []effects.Effect
	Text    string
	Sound   string
	Visuals []string
}

// Spell is a resolved cast: what was cast, by whom, on whom, what it cost
// and what it did.
type Spell struct {
	Book     *Book
	Result   *Result
	CasterID string
	TargetID string
	Costs    []Cost
}

// Observation describes the spell to active effects on participants
func (s *Spell) Observation(caster, target Params) effects.Observation {
	return effects.Observation{
		CasterID:  s.CasterID,
		TargetID:  s.TargetID,
		SpellID:   s.Book.ID(),
		SpellName: s.Book.Name(),
		Result:    string(s.Result.Type),
		Missed:    !s.Result.Type.IsHit(),
		Offensive: s.Book.Type().Offensive(),
		Caster:    caster.Stats,
		Target:    target.Stats,
	}
}
