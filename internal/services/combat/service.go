package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"context"
	"log"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/KirkDiggler/spellbook/internal/events"
)

// Service resolves casts
type Service interface {
	// Cast checks castability, pays costs, rolls the outcome and applies it
	Cast(ctx context.Context, input *CastInput) (*spells.Spell, error)

	// Force resolves a cast without checking or paying costs
	Force(ctx context.Context, input *CastInput) (*spells.Spell, error)
}

// CastInput describes one cast
type CastInput struct {
	BattleID string
	Caster   *character.Character
	Target   *character.Character
	Spell    *spells.Book

	// Witnesses see the cast after it lands. The caster and target may be
	// among them.
	Witnesses []*character.Character
}

type service struct {
	engine      *effects.Engine
	source      dice.Source
	bus         *events.Bus
	strictCasts bool
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Engine *effects.Engine
	Source dice.Source
	Bus    *events.Bus // optional

	// StrictCasts panics on an invalid cast instead of returning the error
	StrictCasts bool
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Engine == nil {
		panic("effect engine is required")
	}
	if cfg.Source == nil {
		panic("random source is required")
	}

	return &service{
		engine:      cfg.Engine,
		source:      cfg.Source,
		bus:         cfg.Bus,
		strictCasts: cfg.StrictCasts,
	}
}

// Cast resolves a cast. An uncastable spell is a caller bug: in strict mode
// it panics, otherwise it is logged and nothing happens.
func (s *service) Cast(ctx context.Context, input *CastInput) (*spells.Spell, error) {
	if err := validate(ctx, input); err != nil {
		return nil, err
	}

	spell, err := input.Spell.BuildSpell(input.Caster.Params(), input.Target.Params(), s.source)
	if err != nil {
		if s.strictCasts {
			panic(err)
		}
		log.Printf("Skipping invalid cast of %s by %s: %v", input.Spell.Name(), input.Caster.Name, err)
		return nil, err
	}

	if err := s.apply(ctx, input, spell); err != nil {
		return spell, err
	}
	return spell, nil
}

// Force resolves a cast without checks or costs
func (s *service) Force(ctx context.Context, input *CastInput) (*spells.Spell, error) {
	if err := validate(ctx, input); err != nil {
		return nil, err
	}

	spell := input.Spell.ForceSpell(input.Caster.Params(), input.Target.Params(), s.source)
	if err := s.apply(ctx, input, spell); err != nil {
		return spell, err
	}
	return spell, nil
}

func validate(ctx context.Context, input *CastInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input cannot be nil")
	}
	if input.Caster == nil {
		return dnderr.InvalidArgument("caster is required")
	}
	if input.Target == nil {
		return dnderr.InvalidArgument("target is required")
	}
	if input.Spell == nil {
		return dnderr.InvalidArgument("spell is required")
	}
	return ctx.Err()
}

// apply runs the outcome's effects, then the target's reactions, then every
// witness's follow-ups. Costs and effects already applied stay applied when
// a later step fails.
func (s *service) apply(ctx context.Context, input *CastInput, spell *spells.Spell) error {
	log.Printf("Cast %s by %s on %s: %s", input.Spell.Name(), input.Caster.Name, input.Target.Name, spell.Result.Type)

	if err := s.engine.Apply(ctx, spell.Result.Effects); err != nil {
		return dnderr.Wrapf(err, "failed to apply %s", input.Spell.Name())
	}

	obs := spell.Observation(input.Caster.Params(), input.Target.Params())
	if err := s.engine.Apply(ctx, input.Target.Effects.React(obs)); err != nil {
		return dnderr.Wrapf(err, "failed to apply reactions of %s", input.Target.Name)
	}
	for _, w := range input.Witnesses {
		if err := s.engine.Apply(ctx, w.Effects.Witness(obs)); err != nil {
			return dnderr.Wrapf(err, "failed to apply follow-ups of %s", w.Name)
		}
	}

	if s.bus != nil {
		event := events.NewCastEvent()
		event.BattleID = input.BattleID
		event.CasterID = spell.CasterID
		event.TargetID = spell.TargetID
		event.SpellID = input.Spell.ID()
		event.SpellName = input.Spell.Name()
		event.Result = string(spell.Result.Type)
		event.Text = spell.Result.Text
		event.Sound = spell.Result.Sound
		event.Visuals = spell.Result.Visuals
		s.bus.Emit(event)
	}

	return nil
}
