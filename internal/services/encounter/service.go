package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/repositories/characters"
	"github.com/KirkDiggler/spellbook/internal/services/combat"
	"github.com/KirkDiggler/spellbook/internal/uuid"
)

// Service manages running battles
type Service interface {
	// StartBattle creates a battle between the party and the enemies
	StartBattle(ctx context.Context, input *StartBattleInput) (*Battle, error)

	// GetBattle returns a running or finished battle
	GetBattle(ctx context.Context, battleID string) (*Battle, error)

	// Resolve plays the current character's turn
	Resolve(ctx context.Context, input *ResolveInput) (*spells.Spell, error)

	// EndBattle forgets a battle, saving the party first
	EndBattle(ctx context.Context, battleID string) error
}

// StartBattleInput is the input for starting a battle
type StartBattleInput struct {
	Party   []*character.Character
	Enemies []*character.Character
}

// ResolveInput is the input for resolving a turn
type ResolveInput struct {
	BattleID string
	CasterID string
	TargetID string
	SpellID  string
}

type service struct {
	resolver      combat.Service
	lookup        spells.Lookup
	clock         Clock
	turnDuration  time.Duration
	bus           *events.Bus
	repository    characters.Repository
	uuidGenerator uuid.Generator

	mu      sync.RWMutex
	battles map[string]*Battle
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Resolver      combat.Service
	Lookup        spells.Lookup
	Clock         Clock
	TurnDuration  time.Duration
	Bus           *events.Bus           // optional
	Repository    characters.Repository // optional
	UUIDGenerator uuid.Generator        // optional
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Resolver == nil {
		panic("combat resolver is required")
	}
	if cfg.Lookup == nil {
		panic("spell lookup is required")
	}
	if cfg.Clock == nil {
		panic("clock is required")
	}

	svc := &service{
		resolver:      cfg.Resolver,
		lookup:        cfg.Lookup,
		clock:         cfg.Clock,
		turnDuration:  cfg.TurnDuration,
		bus:           cfg.Bus,
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		battles:       make(map[string]*Battle),
	}
	if svc.turnDuration <= 0 {
		svc.turnDuration = time.Second
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// StartBattle creates a battle
func (s *service) StartBattle(ctx context.Context, input *StartBattleInput) (*Battle, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	battle, err := NewBattle(&BattleConfig{
		ID:           s.uuidGenerator.New(),
		Party:        input.Party,
		Enemies:      input.Enemies,
		Resolver:     s.resolver,
		Lookup:       s.lookup,
		Clock:        s.clock,
		TurnDuration: s.turnDuration,
		Bus:          s.bus,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to start battle")
	}

	s.mu.Lock()
	s.battles[battle.ID] = battle
	s.mu.Unlock()

	log.Printf("Started battle %s: %d party members vs %d enemies", battle.ID, len(input.Party), len(input.Enemies))
	return battle, nil
}

// GetBattle returns a battle by ID
func (s *service) GetBattle(ctx context.Context, battleID string) (*Battle, error) {
	if battleID == "" {
		return nil, dnderr.InvalidArgument("battle ID is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	battle, ok := s.battles[battleID]
	if !ok {
		return nil, dnderr.NotFoundf("battle %s not found", battleID).
			WithMeta("battle_id", battleID)
	}
	return battle, nil
}

// Resolve plays a turn. The party is saved as soon as the battle ends.
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*spells.Spell, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	battle, err := s.GetBattle(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	// battles are single-writer
	s.mu.Lock()
	defer s.mu.Unlock()

	spell, err := battle.Resolve(ctx, input.CasterID, input.TargetID, input.SpellID)
	if err != nil {
		return nil, err
	}

	if battle.IsOver() {
		if err := s.saveParty(ctx, battle); err != nil {
			return spell, err
		}
	}
	return spell, nil
}

// EndBattle saves the party and removes the battle
func (s *service) EndBattle(ctx context.Context, battleID string) error {
	battle, err := s.GetBattle(ctx, battleID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveParty(ctx, battle); err != nil {
		return err
	}
	delete(s.battles, battleID)
	log.Printf("Ended battle %s with status %s", battleID, battle.Status())
	return nil
}

func (s *service) saveParty(ctx context.Context, battle *Battle) error {
	if s.repository == nil {
		return nil
	}

	for _, member := range battle.Party() {
		if member.IsDefeated() && !member.HasFlag(character.FlagPersistsAfterDefeat) {
			continue
		}
		if err := s.repository.Save(ctx, member.ExportState()); err != nil {
			return dnderr.Wrapf(err, "failed to save %s after battle %s", member.Name, battle.ID)
		}
	}
	return nil
}
