package encounter

import (
	"context"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Autopilot plays turns for whoever is current, picking at random among
// the castable options with the highest spell priority
type Autopilot struct {
	service Service
	source  dice.Source
}

// NewAutopilot creates an autopilot over the service
func NewAutopilot(service Service, source dice.Source) *Autopilot {
	if service == nil {
		panic("encounter service is required")
	}
	if source == nil {
		panic("random source is required")
	}
	return &Autopilot{service: service, source: source}
}

// Choose picks the current character's next cast
func (a *Autopilot) Choose(battle *Battle) (Option, bool) {
	options := battle.Options()
	if len(options) == 0 {
		return Option{}, false
	}

	top := 1
	for top < len(options) && options[top].Spell.Priority() == options[0].Spell.Priority() {
		top++
	}
	return options[a.source.Range(0, top-1)], true
}

// PlayTurn resolves one turn of the battle
func (a *Autopilot) PlayTurn(ctx context.Context, battleID string) (*spells.Spell, error) {
	battle, err := a.service.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	current := battle.Current()
	if current == nil {
		return nil, dnderr.BattleOver("battle " + battleID + " is over")
	}
	option, ok := a.Choose(battle)
	if !ok {
		return nil, dnderr.Validationf("%s has nothing to cast", current.Name).
			WithMeta("character_id", current.ID)
	}

	return a.service.Resolve(ctx, &ResolveInput{
		BattleID: battleID,
		CasterID: current.ID,
		TargetID: option.Target.ID,
		SpellID:  option.Spell.ID(),
	})
}
