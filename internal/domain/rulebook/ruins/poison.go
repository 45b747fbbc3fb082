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
	InflictPoisonID = "inflict_poison"
	CurePoisonID    = "cure_poison"

	poisonDamage = 1
	poisonTicks  = 3
)

// PoisonKey is the effect key every poison shares, so a new dose replaces
// the running one instead of stacking
var PoisonKey = effects.Key(effects.SourceSpell, "poison")

// InflictPoison poisons an enemy for a few turns
func InflictPoison(turn time.Duration) *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:     InflictPoisonID,
		Name:   "Inflict Poison",
		Icon:   "icons/poison-bottle",
		Target: spells.TargetSingleEnemy,
		Type:   spells.SpellTypeOffense,
		Costs:  map[stats.Type]int{stats.Skill: 2},
		Behavior: spells.Behavior{
			Requirements: func(_, target spells.Params) bool {
				return alive(target)
			},
			HitChance: func(_, _ spells.Params) float64 {
				return 0.9
			},
			HitEffects: func(caster, target spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{effects.StartTimed{
					Manager: target.Effects,
					Effect:  effects.BuildPoison(caster.CharacterID, poisonDamage, poisonTicks, turn),
				}}
			},
			HitCue:  cue("poison", "green_cloud"),
			MissCue: cue("attack_miss"),
			Detail: func(spells.Params) string {
				return fmt.Sprintf("Poison an enemy for %d damage a turn over %d turns.", poisonDamage, poisonTicks)
			},
		},
	})
}

// CurePoison ends poison on an ally
func CurePoison() *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:       CurePoisonID,
		Name:     "Cure Poison",
		Icon:     "icons/vial",
		Target:   spells.TargetSingleAlly,
		Type:     spells.SpellTypeBoost,
		Costs:    map[stats.Type]int{stats.Mana: 2},
		Priority: 3,
		Behavior: spells.Behavior{
			Requirements: func(_, target spells.Params) bool {
				return target.Effects != nil && target.Effects.Has(PoisonKey)
			},
			HitEffects: func(_, target spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{effects.CancelTimed{Manager: target.Effects, Key: PoisonKey}}
			},
			HitCue: cue("cure", "sparkle"),
			Detail: func(spells.Params) string {
				return "Remove poison from an ally."
			},
		},
	})
}
