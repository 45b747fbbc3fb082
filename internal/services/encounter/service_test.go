package encounter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/spellbook/internal/dice/mock"
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/rulebook/ruins"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/effects"
	mockcharacters "github.com/KirkDiggler/spellbook/internal/repositories/characters/mock"
	"github.com/KirkDiggler/spellbook/internal/services/combat"
	"github.com/KirkDiggler/spellbook/internal/services/encounter"
	"github.com/KirkDiggler/spellbook/internal/uuid"
	mockuuid "github.com/KirkDiggler/spellbook/internal/uuid/mock"
)

type EncounterServiceTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	ctx        context.Context
	scheduler  *effects.ManualScheduler
	source     *mockdice.ManualSource
	roster     *ruins.Roster
	repository *mockcharacters.MockRepository
	service    encounter.Service
}

func (s *EncounterServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.scheduler = effects.NewManualScheduler()
	engine := effects.NewEngine(&effects.EngineConfig{Scheduler: s.scheduler})
	s.source = mockdice.NewManualSource()
	catalog := ruins.DefaultCatalog(turn)
	s.roster = ruins.NewRoster(&ruins.RosterConfig{
		Engine:  engine,
		Catalog: catalog,
		Source:  s.source,
		IDs:     uuid.NewSequenceGenerator("char"),
	})
	s.repository = mockcharacters.NewMockRepository(s.ctrl)
	s.service = encounter.NewService(&encounter.ServiceConfig{
		Resolver: combat.NewService(&combat.ServiceConfig{
			Engine: engine,
			Source: s.source,
		}),
		Lookup:        catalog,
		Clock:         s.scheduler,
		TurnDuration:  turn,
		Repository:    s.repository,
		UUIDGenerator: uuid.NewSequenceGenerator("battle"),
	})
}

func (s *EncounterServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestEncounterServiceSuite(t *testing.T) {
	suite.Run(t, new(EncounterServiceTestSuite))
}

func (s *EncounterServiceTestSuite) start() (*encounter.Battle, *character.Character, *character.Character) {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	b, err := s.service.StartBattle(s.ctx, &encounter.StartBattleInput{
		Party:   []*character.Character{hero},
		Enemies: []*character.Character{villager},
	})
	s.Require().NoError(err)
	return b, hero, villager
}

func (s *EncounterServiceTestSuite) TestStartBattle() {
	b, hero, _ := s.start()

	s.Equal("battle-1", b.ID)
	s.Equal(hero.ID, b.Current().ID)

	got, err := s.service.GetBattle(s.ctx, "battle-1")
	s.Require().NoError(err)
	s.Same(b, got)
}

func (s *EncounterServiceTestSuite) TestStartBattle_NoEnemies() {
	_, err := s.service.StartBattle(s.ctx, &encounter.StartBattleInput{
		Party: []*character.Character{s.roster.Hero("Alice")},
	})

	s.True(dnderr.IsInvalidArgument(err))
}

func (s *EncounterServiceTestSuite) TestGetBattle_NotFound() {
	_, err := s.service.GetBattle(s.ctx, "battle-404")

	s.True(dnderr.IsNotFound(err))
}

func (s *EncounterServiceTestSuite) TestResolve_SavesPartyOnVictory() {
	b, hero, villager := s.start()
	villager.Stats.Add(stats.Health, -14)
	s.source.SetBools(true, false)

	s.repository.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, state *character.State) error {
			s.Equal(hero.ID, state.ID)
			return nil
		})

	_, err := s.service.Resolve(s.ctx, &encounter.ResolveInput{
		BattleID: b.ID,
		CasterID: hero.ID,
		TargetID: villager.ID,
		SpellID:  ruins.AttackID,
	})

	s.Require().NoError(err)
	s.Equal(encounter.StatusVictory, b.Status())
}

func (s *EncounterServiceTestSuite) TestResolve_SaveError() {
	b, hero, villager := s.start()
	villager.Stats.Add(stats.Health, -14)
	s.source.SetBools(true, false)

	s.repository.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))

	spell, err := s.service.Resolve(s.ctx, &encounter.ResolveInput{
		BattleID: b.ID,
		CasterID: hero.ID,
		TargetID: villager.ID,
		SpellID:  ruins.AttackID,
	})

	s.Error(err)
	s.NotNil(spell)
}

func (s *EncounterServiceTestSuite) TestResolve_OngoingDoesNotSave() {
	b, hero, villager := s.start()

	_, err := s.service.Resolve(s.ctx, &encounter.ResolveInput{
		BattleID: b.ID,
		CasterID: hero.ID,
		TargetID: hero.ID,
		SpellID:  ruins.WaitID,
	})

	s.Require().NoError(err)
	s.Equal(villager.ID, b.Current().ID)
}

func (s *EncounterServiceTestSuite) TestResolve_UnknownBattle() {
	_, err := s.service.Resolve(s.ctx, &encounter.ResolveInput{BattleID: "battle-404"})

	s.True(dnderr.IsNotFound(err))
}

func (s *EncounterServiceTestSuite) TestEndBattle() {
	b, _, _ := s.start()
	s.repository.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	s.Require().NoError(s.service.EndBattle(s.ctx, b.ID))

	_, err := s.service.GetBattle(s.ctx, b.ID)
	s.True(dnderr.IsNotFound(err))
}

func TestNewService_PanicsWithoutResolver(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	encounter.NewService(&encounter.ServiceConfig{})
}

func TestStartBattle_UsesGeneratedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler := effects.NewManualScheduler()
	engine := effects.NewEngine(&effects.EngineConfig{Scheduler: scheduler})
	source := mockdice.NewManualSource()
	catalog := ruins.DefaultCatalog(turn)
	roster := ruins.NewRoster(&ruins.RosterConfig{Engine: engine, Catalog: catalog, Source: source})

	ids := mockuuid.NewMockGenerator(ctrl)
	ids.EXPECT().New().Return("battle-abc")

	svc := encounter.NewService(&encounter.ServiceConfig{
		Resolver:      combat.NewService(&combat.ServiceConfig{Engine: engine, Source: source}),
		Lookup:        catalog,
		Clock:         scheduler,
		UUIDGenerator: ids,
	})

	b, err := svc.StartBattle(context.Background(), &encounter.StartBattleInput{
		Party:   []*character.Character{roster.Hero("Alice")},
		Enemies: []*character.Character{roster.Villager()},
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != "battle-abc" {
		t.Fatalf("expected battle-abc, got %s", b.ID)
	}
}
