package services

import (
	"time"

	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/rulebook/ruins"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/repositories/characters"
	"github.com/KirkDiggler/spellbook/internal/services/combat"
	"github.com/KirkDiggler/spellbook/internal/services/encounter"
	"github.com/KirkDiggler/spellbook/internal/uuid"
)

// Provider holds all service instances and the engine they share
type Provider struct {
	Scheduler        *effects.ManualScheduler
	Engine           *effects.Engine
	Catalog          *ruins.Catalog
	Roster           *ruins.Roster
	Bus              *events.Bus
	CombatService    combat.Service
	EncounterService encounter.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	Source              dice.Source
	Bus                 *events.Bus
	UUIDGenerator       uuid.Generator
	TurnDuration        time.Duration
	StrictCasts         bool
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use in-memory repository if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	source := cfg.Source
	if source == nil {
		source = dice.NewRandomSource()
	}

	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	turn := cfg.TurnDuration
	if turn <= 0 {
		turn = time.Second
	}

	scheduler := effects.NewManualScheduler()
	engine := effects.NewEngine(&effects.EngineConfig{
		Scheduler: scheduler,
		Listener:  bus.EffectListener(),
	})
	catalog := ruins.DefaultCatalog(turn)

	combatService := combat.NewService(&combat.ServiceConfig{
		Engine:      engine,
		Source:      source,
		Bus:         bus,
		StrictCasts: cfg.StrictCasts,
	})

	encounterService := encounter.NewService(&encounter.ServiceConfig{
		Resolver:      combatService,
		Lookup:        catalog,
		Clock:         scheduler,
		TurnDuration:  turn,
		Bus:           bus,
		Repository:    charRepo,
		UUIDGenerator: cfg.UUIDGenerator,
	})

	return &Provider{
		Scheduler: scheduler,
		Engine:    engine,
		Catalog:   catalog,
		Roster: ruins.NewRoster(&ruins.RosterConfig{
			Engine:  engine,
			Catalog: catalog,
			Source:  source,
			IDs:     cfg.UUIDGenerator,
		}),
		Bus:              bus,
		CombatService:    combatService,
		EncounterService: encounterService,
	}
}
