package ruins

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

const (
	RegenerateID = "regenerate"

	regenerationTicks = 3
)

func regenerationAmount(caster spells.Params) int {
	amount := caster.Stats.Get(stats.Intellect)
	if amount < 1 {
		amount = 1
	}
	return amount
}

// Regenerate heals an ally a little every turn
func Regenerate(turn time.Duration) *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:       RegenerateID,
		Name:     "Regenerate",
		Icon:     "icons/heart-plus",
		Target:   spells.TargetSingleAlly,
		Type:     spells.SpellTypeBoost,
		Costs:    map[stats.Type]int{stats.Mana: 4},
		Priority: 1,
		Behavior: spells.Behavior{
			Requirements: func(_, target spells.Params) bool {
				return alive(target)
			},
			HitEffects: func(caster, target spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{effects.StartTimed{
					Manager: target.Effects,
					Effect:  effects.BuildRegeneration(caster.CharacterID, regenerationAmount(caster), regenerationTicks, turn),
				}}
			},
			HitCue: cue("heal", "leaves"),
			Detail: func(caster spells.Params) string {
				return fmt.Sprintf("Restore %d health a turn for %d turns.", regenerationAmount(caster), regenerationTicks)
			},
		},
	})
}
