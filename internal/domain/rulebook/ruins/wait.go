package ruins

import (
	"fmt"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

const WaitID = "wait"

// Wait skips the turn and gathers a skill point
func Wait() *spells.Book {
	return spells.NewBook(spells.Definition{
		ID:       WaitID,
		Name:     "Wait",
		Icon:     "icons/hourglass",
		Target:   spells.TargetSelf,
		Type:     spells.SpellTypeDefense,
		Priority: -1,
		Behavior: spells.Behavior{
			HitEffects: func(caster, _ spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{statChange(caster, stats.Skill, 1)}
			},
			HitCue: cue("wait"),
			Detail: func(spells.Params) string {
				return "Do nothing this turn."
			},
			Text: func(caster, _ spells.Params, _ spells.ResultType) string {
				return fmt.Sprintf("%s waits.", caster.Name)
			},
		},
	})
}
