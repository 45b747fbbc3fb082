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
	SetupCounterID = "setup_counter"

	counterTicks = 2
)

func counterDamage(caster spells.Params) int {
	damage := caster.Stats.Get(stats.Strength)
	if damage < 1 {
		damage = 1
	}
	return damage
}

// SetupCounter readies a counterattack against anyone who strikes the
// caster in the next turns
func SetupCounter(turn time.Duration) *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:     SetupCounterID,
		Name:   "Counter",
		Icon:   "icons/shield-reflect",
		Target: spells.TargetSelf,
		Type:   spells.SpellTypeDefense,
		Costs:  map[stats.Type]int{stats.Skill: 1},
		Behavior: spells.Behavior{
			HitEffects: func(caster, _ spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{effects.StartTimed{
					Manager: caster.Effects,
					Effect:  effects.BuildCounter(caster.CharacterID, counterDamage(caster), counterTicks, turn),
				}}
			},
			HitCue: cue("counter", "shield"),
			Detail: func(caster spells.Params) string {
				return fmt.Sprintf("Deal %d damage to attackers for %d turns.", counterDamage(caster), counterTicks)
			},
			Text: func(caster, _ spells.Params, _ spells.ResultType) string {
				return fmt.Sprintf("%s prepares to counter.", caster.Name)
			},
		},
	})
}
