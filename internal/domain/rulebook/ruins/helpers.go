package ruins

import (
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

func clampChance(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

func statChange(p spells.Params, stat stats.Type, amount int) effects.Effect {
	return effects.AddToStat{
		OwnerID: p.CharacterID,
		Book:    p.Stats,
		Stat:    stat,
		Amount:  amount,
	}
}

func alive(p spells.Params) bool {
	return p.Stats != nil && p.Stats.Get(stats.Health) > 0
}

func cue(sound string, visuals ...string) spells.CueFunc {
	return func(_, _ spells.Params) spells.Cue {
		return spells.Cue{Sound: sound, Visuals: visuals}
	}
}
