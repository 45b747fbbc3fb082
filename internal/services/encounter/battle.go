package encounter

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/services/combat"
)

// Status is the outcome of a battle so far
type Status string

const (
	StatusOngoing Status = "ONGOING"
	StatusVictory Status = "VICTORY"
	StatusDefeat  Status = "DEFEAT"
)

// ExperiencePerLevel is awarded to the party for each level of each
// defeated enemy
const ExperiencePerLevel = 5

const maxLogEntries = 50

// Clock advances the simulated time timed effects tick on
type Clock interface {
	Advance(d time.Duration) int
}

// Option is a cast the current character could make
type Option struct {
	Spell  *spells.Book
	Target *character.Character
}

// Battle is the party against a group of enemies. Characters act one at a
// time in turn order; every resolved turn moves the clock forward by one
// turn so timed effects tick.
//
// A Battle is not safe for concurrent use.
type Battle struct {
	ID string

	resolver     combat.Service
	lookup       spells.Lookup
	clock        Clock
	turnDuration time.Duration
	bus          *events.Bus

	participants []*character.Character
	combatants   map[string]*character.Character
	turnOrder    []string

	round      int
	turn       int
	turnCount  int
	status     Status
	combatLog  []string
	experience int
}

// BattleConfig holds what a battle is built from
type BattleConfig struct {
	ID           string
	Party        []*character.Character
	Enemies      []*character.Character
	Resolver     combat.Service
	Lookup       spells.Lookup
	Clock        Clock
	TurnDuration time.Duration
	Bus          *events.Bus // optional
}

// NewBattle sets up a battle. Turn order is by agility, party first on
// ties.
func NewBattle(cfg *BattleConfig) (*Battle, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("battle config cannot be nil")
	}
	if cfg.Resolver == nil || cfg.Lookup == nil || cfg.Clock == nil {
		return nil, dnderr.InvalidArgument("battle requires a resolver, a spell lookup and a clock")
	}
	if cfg.TurnDuration <= 0 {
		return nil, dnderr.InvalidArgumentf("turn duration must be positive, got %s", cfg.TurnDuration)
	}
	if len(cfg.Party) == 0 || len(cfg.Enemies) == 0 {
		return nil, dnderr.InvalidArgument("both sides need at least one character")
	}

	b := &Battle{
		ID:           cfg.ID,
		resolver:     cfg.Resolver,
		lookup:       cfg.Lookup,
		clock:        cfg.Clock,
		turnDuration: cfg.TurnDuration,
		bus:          cfg.Bus,
		combatants:   make(map[string]*character.Character),
		round:        1,
		status:       StatusOngoing,
	}

	add := func(c *character.Character, side character.Side) error {
		if c == nil {
			return dnderr.InvalidArgument("character cannot be nil")
		}
		if _, exists := b.combatants[c.ID]; exists {
			return dnderr.AlreadyExistsf("character %s is already in the battle", c.ID)
		}
		c.Side = side
		b.combatants[c.ID] = c
		b.participants = append(b.participants, c)
		return nil
	}
	for _, c := range cfg.Party {
		if err := add(c, character.SideParty); err != nil {
			return nil, err
		}
	}
	for _, c := range cfg.Enemies {
		if err := add(c, character.SideEnemy); err != nil {
			return nil, err
		}
	}

	order := make([]*character.Character, len(b.participants))
	copy(order, b.participants)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Stats.Get(stats.Agility) > order[j].Stats.Get(stats.Agility)
	})
	for _, c := range order {
		b.turnOrder = append(b.turnOrder, c.ID)
	}

	b.checkEnd()
	b.skipDefeated()
	return b, nil
}

// Resolve has the current character cast spellID on targetID and ends the
// turn. Spells aimed at a whole side ignore targetID.
func (b *Battle) Resolve(ctx context.Context, casterID, targetID, spellID string) (*spells.Spell, error) {
	if b.IsOver() {
		return nil, dnderr.BattleOver(fmt.Sprintf("battle %s is over", b.ID)).
			WithMeta("status", string(b.status))
	}

	caster, ok := b.combatants[casterID]
	if !ok {
		return nil, dnderr.NotFoundf("character %s is not in battle %s", casterID, b.ID)
	}
	if current := b.Current(); current == nil || current.ID != casterID {
		return nil, dnderr.Validationf("it is not %s's turn", caster.Name).
			WithMeta("character_id", casterID)
	}
	book, ok := b.lookup.Get(spellID)
	if !ok {
		return nil, dnderr.NotFoundf("spell %q not found", spellID).
			WithMeta("spell_id", spellID)
	}

	targets, err := b.targets(caster, targetID, book.Target())
	if err != nil {
		return nil, err
	}

	input := &combat.CastInput{
		BattleID:  b.ID,
		Caster:    caster,
		Target:    targets[0],
		Spell:     book,
		Witnesses: b.participants,
	}
	spell, err := b.resolver.Cast(ctx, input)
	if err != nil {
		if spell == nil {
			return nil, err
		}
		log.Printf("Battle %s: cast of %s partly applied: %v", b.ID, book.Name(), err)
	}
	b.addLog(spell.Result.Text)

	// the cost is paid once; the rest of the side is hit for free
	for _, target := range targets[1:] {
		input.Target = target
		extra, err := b.resolver.Force(ctx, input)
		if err != nil {
			log.Printf("Battle %s: %s on %s failed: %v", b.ID, book.Name(), target.Name, err)
			continue
		}
		b.addLog(extra.Result.Text)
	}

	b.endTurn()
	return spell, nil
}

func (b *Battle) targets(caster *character.Character, targetID string, targetType spells.TargetType) ([]*character.Character, error) {
	switch targetType {
	case spells.TargetAllAllies:
		return b.side(caster.Side, true), nil
	case spells.TargetAllEnemies:
		return b.side(opposing(caster.Side), true), nil
	}

	target, ok := b.combatants[targetID]
	if !ok {
		return nil, dnderr.NotFoundf("character %s is not in battle %s", targetID, b.ID)
	}

	valid := true
	switch targetType {
	case spells.TargetSelf:
		valid = target.ID == caster.ID
	case spells.TargetSingleAlly:
		valid = target.Side == caster.Side
	case spells.TargetSingleEnemy:
		valid = target.Side != caster.Side
	}
	if !valid {
		return nil, dnderr.Validationf("%s cannot target %s", targetType.Name(), target.Name).
			WithMeta("target_id", targetID)
	}
	return []*character.Character{target}, nil
}

// Options lists every castable spell and target for the current character
func (b *Battle) Options() []Option {
	caster := b.Current()
	if caster == nil {
		return nil
	}

	var options []Option
	for _, book := range caster.Spells.Books() {
		var candidates []*character.Character
		switch book.Target() {
		case spells.TargetSelf:
			candidates = []*character.Character{caster}
		case spells.TargetSingleAlly:
			candidates = b.side(caster.Side, false)
		case spells.TargetSingleEnemy:
			candidates = b.side(opposing(caster.Side), false)
		case spells.TargetAllAllies:
			candidates = first(b.side(caster.Side, true))
		case spells.TargetAllEnemies:
			candidates = first(b.side(opposing(caster.Side), true))
		default:
			candidates = b.participants
		}
		for _, target := range candidates {
			if book.IsCastable(caster.Params(), target.Params()) {
				options = append(options, Option{Spell: book, Target: target})
			}
		}
	}
	return options
}

func first(cs []*character.Character) []*character.Character {
	if len(cs) == 0 {
		return nil
	}
	return cs[:1]
}

func (b *Battle) endTurn() {
	b.turnCount++
	b.clock.Advance(b.turnDuration)

	if b.checkEnd() {
		return
	}
	b.turn++
	b.skipDefeated()
	b.emit("")
}

// skipDefeated moves the turn to the next character still standing,
// starting a new round when the order wraps
func (b *Battle) skipDefeated() {
	if b.IsOver() {
		return
	}
	for i := 0; i <= len(b.turnOrder); i++ {
		if b.turn >= len(b.turnOrder) {
			b.turn = 0
			b.round++
		}
		if !b.combatants[b.turnOrder[b.turn]].IsDefeated() {
			return
		}
		b.turn++
	}
}

// checkEnd ends the battle once a side is down and reports whether it did
func (b *Battle) checkEnd() bool {
	if b.IsOver() {
		return true
	}

	partyUp := len(b.side(character.SideParty, true)) > 0
	enemiesUp := len(b.side(character.SideEnemy, true)) > 0
	switch {
	case !enemiesUp:
		b.status = StatusVictory
		b.awardExperience()
		b.addLog("The party is victorious.")
	case !partyUp:
		b.status = StatusDefeat
		b.addLog("The party has been defeated.")
	default:
		return false
	}
	log.Printf("Battle %s ended after %d turns: %s", b.ID, b.turnCount, b.status)
	b.emit(b.combatLog[len(b.combatLog)-1])
	return true
}

func (b *Battle) awardExperience() {
	total := 0
	for _, enemy := range b.side(character.SideEnemy, false) {
		total += enemy.Stats.Get(stats.Level) * ExperiencePerLevel
	}
	for _, member := range b.side(character.SideParty, false) {
		if member.Stats.Has(stats.Experience) {
			member.Stats.Add(stats.Experience, total)
		}
	}
	b.experience = total
}

func (b *Battle) side(side character.Side, standingOnly bool) []*character.Character {
	var out []*character.Character
	for _, c := range b.participants {
		if c.Side != side {
			continue
		}
		if standingOnly && c.IsDefeated() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func opposing(side character.Side) character.Side {
	if side == character.SideParty {
		return character.SideEnemy
	}
	return character.SideParty
}

func (b *Battle) addLog(entry string) {
	b.combatLog = append(b.combatLog, fmt.Sprintf("Round %d: %s", b.round, entry))
	if len(b.combatLog) > maxLogEntries {
		b.combatLog = b.combatLog[len(b.combatLog)-maxLogEntries:]
	}
}

func (b *Battle) emit(text string) {
	if b.bus == nil {
		return
	}
	b.bus.Emit(events.NewBattleEvent(b.ID, b.turnCount, string(b.status), text))
}

// Current is the character whose turn it is, nil once the battle is over
func (b *Battle) Current() *character.Character {
	if b.IsOver() || b.turn >= len(b.turnOrder) {
		return nil
	}
	return b.combatants[b.turnOrder[b.turn]]
}

// Get returns a participant
func (b *Battle) Get(id string) (*character.Character, bool) {
	c, ok := b.combatants[id]
	return c, ok
}

func (b *Battle) Party() []*character.Character   { return b.side(character.SideParty, false) }
func (b *Battle) Enemies() []*character.Character { return b.side(character.SideEnemy, false) }
func (b *Battle) TurnCount() int                  { return b.turnCount }
func (b *Battle) Round() int                      { return b.round }
func (b *Battle) Status() Status                  { return b.status }
func (b *Battle) IsOver() bool                    { return b.status != StatusOngoing }
func (b *Battle) ExperienceGiven() int            { return b.experience }

// Log returns the combat log, oldest first
func (b *Battle) Log() []string {
	out := make([]string, len(b.combatLog))
	copy(out, b.combatLog)
	return out
}
