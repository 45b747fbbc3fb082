package ruins_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	mockdice "github.com/KirkDiggler/spellbook/internal/dice/mock"
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/rulebook/ruins"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/KirkDiggler/spellbook/internal/uuid"
)

const turn = time.Second

type RuinsTestSuite struct {
	suite.Suite
	scheduler *effects.ManualScheduler
	catalog   *ruins.Catalog
	source    *mockdice.ManualSource
	roster    *ruins.Roster
}

func (s *RuinsTestSuite) SetupTest() {
	s.scheduler = effects.NewManualScheduler()
	s.catalog = ruins.DefaultCatalog(turn)
	s.source = mockdice.NewManualSource()
	s.roster = ruins.NewRoster(&ruins.RosterConfig{
		Engine:  effects.NewEngine(&effects.EngineConfig{Scheduler: s.scheduler}),
		Catalog: s.catalog,
		Source:  s.source,
		IDs:     uuid.NewSequenceGenerator("char"),
	})
}

func (s *RuinsTestSuite) cast(id string, caster, target *character.Character) *spells.Spell {
	spell, err := s.catalog.MustGet(id).BuildSpell(caster.Params(), target.Params(), s.source)
	s.Require().NoError(err)
	for _, e := range spell.Result.Effects {
		s.Require().NoError(e.Apply())
	}
	return spell
}

func (s *RuinsTestSuite) TestAttack_HitDealsStrengthDamageAndBuildsSkill() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	s.source.SetBools(true, false)
	s.source.SetInts(2)

	spell := s.cast(ruins.AttackID, hero, villager)

	s.Equal(spells.ResultHit, spell.Result.Type)
	s.Equal([]float64{0.8, 0.05}, s.source.Requested)
	s.Equal(13, villager.Stats.Get(stats.Health))
	s.Equal(1, hero.Stats.Get(stats.Skill))
	s.Equal("attack_hit", spell.Result.Sound)
}

func (s *RuinsTestSuite) TestAttack_CannotTargetDefeated() {
	hero := s.roster.Hero("Alice")
	villager := s.roster.Villager()
	villager.Stats.Add(stats.Health, -100)

	check := s.catalog.MustGet(ruins.AttackID).Check(hero.Params(), villager.Params())

	s.False(check.Requirements)
	s.True(check.Resources)
}

func (s *RuinsTestSuite) TestPoison_TicksUntilCured() {
	debug := s.roster.Debug("Debug")
	villager := s.roster.Villager()
	debug.Stats.Add(stats.Skill, 2)
	s.source.SetBools(true)

	s.cast(ruins.InflictPoisonID, debug, villager)
	s.Require().True(villager.Effects.Has(ruins.PoisonKey))
	s.Equal(0, debug.Stats.Get(stats.Skill))

	s.scheduler.Advance(turn)
	s.Equal(14, villager.Stats.Get(stats.Health))

	s.True(s.catalog.MustGet(ruins.CurePoisonID).IsCastable(debug.Params(), villager.Params()))
	s.cast(ruins.CurePoisonID, debug, villager)
	s.scheduler.Advance(3 * turn)

	s.Equal(14, villager.Stats.Get(stats.Health))
	s.False(villager.Effects.Has(ruins.PoisonKey))
	s.False(s.catalog.MustGet(ruins.CurePoisonID).IsCastable(debug.Params(), villager.Params()))
}

func (s *RuinsTestSuite) TestCounter_StrikesBackAtAttacker() {
	s.source.SetBools(false)
	knight := s.roster.Knight()
	hero := s.roster.Hero("Alice")
	knight.Stats.Add(stats.Skill, 1)

	s.cast(ruins.SetupCounterID, knight, knight)
	s.source.SetBools(true, false)
	attack := s.cast(ruins.AttackID, hero, knight)

	followUps := knight.Effects.React(attack.Observation(hero.Params(), knight.Params()))
	s.Require().Len(followUps, 1)
	s.Require().NoError(followUps[0].Apply())

	s.Equal(28, hero.Stats.Get(stats.Health))
}

func (s *RuinsTestSuite) TestHeal_RequiresWoundedTarget() {
	healer := s.roster.Healer()
	villager := s.roster.Villager()
	heal := s.catalog.MustGet(ruins.HealID)

	s.False(heal.IsCastable(healer.Params(), villager.Params()))

	villager.Stats.Add(stats.Health, -12)
	s.cast(ruins.HealID, healer, villager)

	s.Equal(13, villager.Stats.Get(stats.Health))
	s.Equal(22, healer.Stats.Get(stats.Mana))
}

func (s *RuinsTestSuite) TestRegenerate_HealsEachTurn() {
	debug := s.roster.Debug("Debug")
	debug.Stats.Add(stats.Health, -10)

	s.cast(ruins.RegenerateID, debug, debug)
	s.scheduler.Advance(5 * turn)

	s.Equal(30, debug.Stats.Get(stats.Health))
	s.Equal(0, debug.Effects.Len())
}

func (s *RuinsTestSuite) TestRoster_OptionalSpellsUseSource() {
	s.source.SetBools(true, false)

	knight := s.roster.Knight()
	healer := s.roster.Healer()

	s.True(knight.Spells.Knows(s.catalog.MustGet(ruins.InflictPoisonID)))
	s.False(healer.Spells.Knows(s.catalog.MustGet(ruins.RegenerateID)))
	s.True(healer.Spells.Knows(s.catalog.MustGet(ruins.HealID)))
	s.Equal("char-1", knight.ID)
	s.Equal("char-2", healer.ID)
}

func (s *RuinsTestSuite) TestRoster_Hero() {
	hero := s.roster.Hero("Alice")

	s.Equal(character.SideParty, hero.Side)
	s.True(hero.HasFlag(character.FlagPlayer))
	s.True(hero.Stats.Has(stats.Experience))
	s.Equal(30, hero.Stats.Get(stats.Health))
	s.Equal(2, hero.Spells.Len())
}

func TestRuinsSuite(t *testing.T) {
	suite.Run(t, new(RuinsTestSuite))
}

func TestCatalog_Register(t *testing.T) {
	c := ruins.NewCatalog()
	require.NoError(t, c.Register(ruins.Attack()))

	err := c.Register(ruins.Attack())

	assert.True(t, dnderr.IsAlreadyExists(err))
	assert.Len(t, c.List(), 1)
	assert.Panics(t, func() { c.MustGet(ruins.WaitID) })
}

func TestDefaultCatalog_ListOrder(t *testing.T) {
	c := ruins.DefaultCatalog(turn)

	var ids []string
	for _, b := range c.List() {
		ids = append(ids, b.ID())
	}

	assert.Equal(t, []string{
		ruins.AttackID,
		ruins.WaitID,
		ruins.HealID,
		ruins.InflictPoisonID,
		ruins.CurePoisonID,
		ruins.SetupCounterID,
		ruins.RegenerateID,
	}, ids)
}
