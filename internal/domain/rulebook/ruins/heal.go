package ruins

import (
	"fmt"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

const HealID = "heal"

func healAmount(caster spells.Params) int {
	amount := caster.Stats.Get(stats.Intellect) * 2
	if amount < 1 {
		amount = 1
	}
	return amount
}

// Heal restores health to a wounded ally
func Heal() *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:       HealID,
		Name:     "Heal",
		Icon:     "icons/health-normal",
		Target:   spells.TargetSingleAlly,
		Type:     spells.SpellTypeBoost,
		Costs:    map[stats.Type]int{stats.Mana: 3},
		Priority: 2,
		Behavior: spells.Behavior{
			Requirements: func(_, target spells.Params) bool {
				return alive(target) && target.Stats.Get(stats.Health) < target.Stats.GetMax(stats.Health)
			},
			HitEffects: func(caster, target spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{statChange(target, stats.Health, healAmount(caster))}
			},
			HitCue: cue("heal", "sparkle"),
			Detail: func(caster spells.Params) string {
				return fmt.Sprintf("Restore %d health to an ally.", healAmount(caster))
			},
		},
	})
}
