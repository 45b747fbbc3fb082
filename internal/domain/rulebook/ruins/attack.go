package ruins

import (
	"fmt"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

const AttackID = "attack"

// Attack is the basic weapon strike. Agility decides hit and crit odds,
// strength decides damage, and a landed blow builds one skill point.
func Attack() *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:     AttackID,
		Name:   "Attack",
		Icon:   "icons/crossed-swords",
		Target: spells.TargetSingleEnemy,
		Type:   spells.SpellTypeOffense,
		Behavior: spells.Behavior{
			Requirements: func(_, target spells.Params) bool {
				return alive(target)
			},
			HitChance: func(caster, target spells.Params) float64 {
				diff := caster.Stats.Get(stats.Agility) - target.Stats.Get(stats.Agility)
				return clampChance(0.8+0.05*float64(diff), 0.2, 1)
			},
			CriticalChance: func(caster, _ spells.Params) float64 {
				return clampChance(0.05*float64(caster.Stats.Get(stats.Agility)), 0, 0.5)
			},
			HitEffects: func(caster, target spells.Params, rng dice.Source) []effects.Effect {
				return attackEffects(caster, target, rng, 1)
			},
			CriticalEffects: func(caster, target spells.Params, rng dice.Source) []effects.Effect {
				return attackEffects(caster, target, rng, 2)
			},
			HitCue:  cue("attack_hit", "slash"),
			MissCue: cue("attack_miss"),
			Detail: func(caster spells.Params) string {
				str := caster.Stats.Get(stats.Strength)
				return fmt.Sprintf("A basic attack dealing %d-%d damage.", str, str*2)
			},
		},
	})
}

func attackEffects(caster, target spells.Params, rng dice.Source, multiplier int) []effects.Effect {
	str := caster.Stats.Get(stats.Strength)
	damage := rng.Range(str, str*2) * multiplier
	if damage < 1 {
		damage = 1
	}
	return []effects.Effect{
		statChange(target, stats.Health, -damage),
		statChange(caster, stats.Skill, 1),
	}
}
