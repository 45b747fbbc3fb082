package encounter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spellbook/internal/dice"
	mockdice "github.com/KirkDiggler/spellbook/internal/dice/mock"
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/rulebook/ruins"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/services/combat"
	mockcombat "github.com/KirkDiggler/spellbook/internal/services/combat/mock"
	"github.com/KirkDiggler/spellbook/internal/services/encounter"
	"github.com/KirkDiggler/spellbook/internal/uuid"
)

const turn = time.Second

type BattleTestSuite struct {
	suite.Suite
	ctx       context.Context
	scheduler *effects.ManualScheduler
	engine    *effects.Engine
	source    *mockdice.ManualSource
	bus       *events.Bus
	battles   []*events.BattleEvent
	catalog   *ruins.Catalog
	roster    *ruins.Roster
	resolver  combat.Service
}

func (s *BattleTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.scheduler = effects.NewManualScheduler()
	s.engine = effects.NewEngine(&effects.EngineConfig{Scheduler: s.scheduler})
	s.source = mockdice.NewManualSource()
	s.bus = events.NewBus()
	s.battles = nil
	s.bus.Subscribe(events.EventTypeBattle, &events.ListenerFunc{
		Name: "recorder",
		Fn: func(e events.Event) error {
			s.battles = append(s.battles, e.(*events.BattleEvent))
			return nil
		},
	})
	s.catalog = ruins.DefaultCatalog(turn)
	s.roster = ruins.NewRoster(&ruins.RosterConfig{
		Engine:  s.engine,
		Catalog: s.catalog,
		Source:  s.source,
		IDs:     uuid.NewSequenceGenerator("char"),
	})
	s.resolver = combat.NewService(&combat.ServiceConfig{
		Engine: s.engine,
		Source: s.source,
		Bus:    s.bus,
	})
}

func TestBattleSuite(t *testing.T) {
	suite.Run(t, new(BattleTestSuite))
}

func (s *BattleTestSuite) newBattle(party, enemies []*character.Character) *encounter.Battle {
	b, err := encounter.NewBattle(&encounter.BattleConfig{
		ID:           "battle-1",
		Party:        party,
		Enemies:      enemies,
		Resolver:     s.resolver,
		Lookup:       s.catalog,
		Clock:        s.scheduler,
		TurnDuration: turn,
		Bus:          s.bus,
	})
	s.Require().NoError(err)
	return b
}

func (s *BattleTestSuite) TestNewBattle_TurnOrderByAgility() {
	hero := s.roster.Hero("Alice")
	healer := s.roster.Healer()
	villager := s.roster.Villager()

	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager, healer})

	s.Equal(healer.ID, b.Current().ID)
	s.Equal(encounter.StatusOngoing, b.Status())
	s.Equal(1, b.Round())
}

func (s *BattleTestSuite) TestNewBattle_PartyFirstOnTies() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()

	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})

	s.Equal(hero.ID, b.Current().ID)
}

func (s *BattleTestSuite) TestNewBattle_Validation() {
	hero := s.roster.Hero("Alice")

	_, err := encounter.NewBattle(&encounter.BattleConfig{
		Party:        []*character.Character{hero},
		Resolver:     s.resolver,
		Lookup:       s.catalog,
		Clock:        s.scheduler,
		TurnDuration: turn,
	})
	s.True(dnderr.IsInvalidArgument(err))

	_, err = encounter.NewBattle(&encounter.BattleConfig{
		Party:        []*character.Character{hero},
		Enemies:      []*character.Character{hero},
		Resolver:     s.resolver,
		Lookup:       s.catalog,
		Clock:        s.scheduler,
		TurnDuration: turn,
	})
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *BattleTestSuite) TestResolve_AttackEndsTurn() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})
	s.source.SetBools(true, false)
	s.source.SetInts(2)

	spell, err := b.Resolve(s.ctx, hero.ID, villager.ID, ruins.AttackID)

	s.Require().NoError(err)
	s.Equal(spells.ResultHit, spell.Result.Type)
	s.Equal(13, villager.Stats.Get(stats.Health))
	s.Equal(1, b.TurnCount())
	s.Equal(villager.ID, b.Current().ID)
	s.Equal(turn, s.scheduler.Now())
	s.Require().Len(b.Log(), 1)
	s.Contains(b.Log()[0], "Round 1: Alice used Attack on Villager")
	s.Require().Len(s.battles, 1)
	s.Equal(1, s.battles[0].Turn)
}

func (s *BattleTestSuite) TestResolve_RoundWraps() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})

	_, err := b.Resolve(s.ctx, hero.ID, hero.ID, ruins.WaitID)
	s.Require().NoError(err)
	_, err = b.Resolve(s.ctx, villager.ID, villager.ID, ruins.WaitID)
	s.Require().NoError(err)

	s.Equal(2, b.Round())
	s.Equal(hero.ID, b.Current().ID)
	s.Equal(1, hero.Stats.Get(stats.Skill))
}

func (s *BattleTestSuite) TestResolve_Errors() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})

	testCases := []struct {
		name     string
		casterID string
		targetID string
		spellID  string
		check    func(error) bool
	}{
		{"not their turn", villager.ID, hero.ID, ruins.AttackID, dnderr.IsValidation},
		{"unknown caster", "nobody", hero.ID, ruins.AttackID, dnderr.IsNotFound},
		{"unknown target", hero.ID, "nobody", ruins.AttackID, dnderr.IsNotFound},
		{"unknown spell", hero.ID, villager.ID, "fireball", dnderr.IsNotFound},
		{"attack an ally", hero.ID, hero.ID, ruins.AttackID, dnderr.IsValidation},
		{"wait on someone else", hero.ID, villager.ID, ruins.WaitID, dnderr.IsValidation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := b.Resolve(s.ctx, tc.casterID, tc.targetID, tc.spellID)
			s.True(tc.check(err), "unexpected error %v", err)
		})
	}
	s.Equal(0, b.TurnCount())
	s.Equal(30, hero.Stats.Get(stats.Health))
}

func (s *BattleTestSuite) TestResolve_InvalidCastKeepsTurn() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})

	// heroes do not know Heal
	_, err := b.Resolve(s.ctx, hero.ID, hero.ID, ruins.HealID)

	s.True(dnderr.IsInvalidCast(err))
	s.Equal(0, b.TurnCount())
	s.Equal(hero.ID, b.Current().ID)
	s.Equal(time.Duration(0), s.scheduler.Now())
}

func (s *BattleTestSuite) TestResolve_Victory() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	villager.Stats.Add(stats.Health, -14)
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})
	s.source.SetBools(true, false)

	_, err := b.Resolve(s.ctx, hero.ID, villager.ID, ruins.AttackID)

	s.Require().NoError(err)
	s.Equal(encounter.StatusVictory, b.Status())
	s.True(b.IsOver())
	s.Nil(b.Current())
	s.Equal(2*encounter.ExperiencePerLevel, b.ExperienceGiven())
	s.Equal(10, hero.Stats.Get(stats.Experience))
	s.Contains(b.Log()[len(b.Log())-1], "victorious")
	s.Require().NotEmpty(s.battles)
	s.Equal(string(encounter.StatusVictory), s.battles[len(s.battles)-1].Status)

	_, err = b.Resolve(s.ctx, hero.ID, villager.ID, ruins.AttackID)
	s.True(dnderr.IsBattleOver(err))
}

func (s *BattleTestSuite) TestResolve_Defeat() {
	hero := s.roster.Hero("Alice")
	hero.Stats.Add(stats.Health, -29)
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})

	_, err := b.Resolve(s.ctx, hero.ID, hero.ID, ruins.WaitID)
	s.Require().NoError(err)

	s.source.SetBools(true, false)
	_, err = b.Resolve(s.ctx, villager.ID, hero.ID, ruins.AttackID)

	s.Require().NoError(err)
	s.Equal(encounter.StatusDefeat, b.Status())
	s.Equal(0, b.ExperienceGiven())
	s.Equal(0, hero.Stats.Get(stats.Experience))
}

func (s *BattleTestSuite) TestResolve_TimedEffectsTickEachTurn() {
	debug := s.roster.Debug("Debug")
	debug.Stats.Add(stats.Skill, 2)
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{debug}, []*character.Character{villager})
	s.source.SetBools(true)

	_, err := b.Resolve(s.ctx, debug.ID, villager.ID, ruins.InflictPoisonID)
	s.Require().NoError(err)
	s.Equal(14, villager.Stats.Get(stats.Health))

	_, err = b.Resolve(s.ctx, villager.ID, villager.ID, ruins.WaitID)
	s.Require().NoError(err)
	s.Equal(13, villager.Stats.Get(stats.Health))
}

func (s *BattleTestSuite) TestResolve_SkipsDefeated() {
	hero := s.roster.Hero("Alice")
	first := s.roster.Villager()
	second := s.roster.Villager()
	first.Stats.Add(stats.Health, -100)
	b := s.newBattle([]*character.Character{hero}, []*character.Character{first, second})

	_, err := b.Resolve(s.ctx, hero.ID, hero.ID, ruins.WaitID)

	s.Require().NoError(err)
	s.Equal(second.ID, b.Current().ID)
}

func (s *BattleTestSuite) TestResolve_AllEnemiesPaysOnce() {
	quake := spells.NewBook(spells.Definition{
		ID:     "quake",
		Name:   "Quake",
		Target: spells.TargetAllEnemies,
		Type:   spells.SpellTypeOffense,
		Costs:  map[stats.Type]int{stats.Mana: 2},
		Behavior: spells.Behavior{
			HitEffects: func(_, target spells.Params, _ dice.Source) []effects.Effect {
				return []effects.Effect{effects.AddToStat{
					OwnerID: target.CharacterID,
					Book:    target.Stats,
					Stat:    stats.Health,
					Amount:  -1,
				}}
			},
		},
	})
	s.Require().NoError(s.catalog.Register(quake))

	hero := s.roster.Hero("Alice")
	s.Require().NoError(hero.Spells.Learn(quake))
	first := s.roster.Villager()
	second := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{first, second})

	_, err := b.Resolve(s.ctx, hero.ID, "", "quake")

	s.Require().NoError(err)
	s.Equal(3, hero.Stats.Get(stats.Mana))
	s.Equal(14, first.Stats.Get(stats.Health))
	s.Equal(14, second.Stats.Get(stats.Health))
	s.Len(b.Log(), 2)
}

func (s *BattleTestSuite) TestOptions() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	b := s.newBattle([]*character.Character{hero}, []*character.Character{villager})

	options := b.Options()

	s.Require().Len(options, 2)
	s.Equal(ruins.AttackID, options[0].Spell.ID())
	s.Equal(villager.ID, options[0].Target.ID)
	s.Equal(ruins.WaitID, options[1].Spell.ID())
	s.Equal(hero.ID, options[1].Target.ID)
}

func TestBattle_ResolverErrorKeepsTurn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler := effects.NewManualScheduler()
	engine := effects.NewEngine(&effects.EngineConfig{Scheduler: scheduler})
	catalog := ruins.DefaultCatalog(turn)
	roster := ruins.NewRoster(&ruins.RosterConfig{
		Engine:  engine,
		Catalog: catalog,
		Source:  mockdice.NewManualSource(),
	})
	hero := roster.Hero("Alice")
	villager := roster.Villager()

	resolver := mockcombat.NewMockService(ctrl)
	resolver.EXPECT().
		Cast(gomock.Any(), gomock.Any()).
		Return(nil, dnderr.InvalidCastf("cannot cast Attack"))

	b, err := encounter.NewBattle(&encounter.BattleConfig{
		ID:           "battle-1",
		Party:        []*character.Character{hero},
		Enemies:      []*character.Character{villager},
		Resolver:     resolver,
		Lookup:       catalog,
		Clock:        scheduler,
		TurnDuration: turn,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = b.Resolve(context.Background(), hero.ID, villager.ID, ruins.AttackID)

	if !dnderr.IsInvalidCast(err) {
		t.Fatalf("expected invalid cast, got %v", err)
	}
	if b.TurnCount() != 0 {
		t.Fatalf("turn advanced to %d", b.TurnCount())
	}
}
