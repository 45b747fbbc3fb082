package ruins

import (
	"github.com/KirkDiggler/spellbook/internal/dice"
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
	"github.com/KirkDiggler/spellbook/internal/uuid"
)

// Roster builds the characters of the ruins
type Roster struct {
	engine  *effects.Engine
	catalog *Catalog
	source  dice.Source
	ids     uuid.Generator
}

// RosterConfig holds the roster's collaborators
type RosterConfig struct {
	Engine  *effects.Engine
	Catalog *Catalog
	Source  dice.Source    // decides optional spells
	IDs     uuid.Generator // defaults to google uuids
}

// NewRoster creates a roster
func NewRoster(cfg *RosterConfig) *Roster {
	if cfg == nil {
		panic("roster config is required")
	}
	if cfg.Engine == nil {
		panic("roster requires an effect engine")
	}
	if cfg.Catalog == nil {
		panic("roster requires a spell catalog")
	}
	if cfg.Source == nil {
		panic("roster requires a random source")
	}
	ids := cfg.IDs
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}
	return &Roster{
		engine:  cfg.Engine,
		catalog: cfg.Catalog,
		source:  cfg.Source,
		ids:     ids,
	}
}

func (r *Roster) build(name string, side character.Side, book *stats.Book, flags ...character.Flag) *character.Character {
	return character.New(&character.Config{
		ID:     r.ids.New(),
		Name:   name,
		Side:   side,
		Stats:  book,
		Spells: r.catalog.DefaultRepertoire(),
		Flags:  flags,
		Engine: r.engine,
	})
}

func (r *Roster) learn(c *character.Character, ids ...string) *character.Character {
	for _, id := range ids {
		if err := c.Spells.Learn(r.catalog.MustGet(id)); err != nil {
			panic(err)
		}
	}
	return c
}

func (r *Roster) enemy(name string, book *stats.Book) *character.Character {
	return r.build(name, character.SideEnemy, book, character.FlagDropsItems)
}

// Hero is the player character. Heroes earn experience.
func (r *Roster) Hero(name string) *character.Character {
	book := stats.NewCharacterBook(0, 1, 1, 1, 5)
	book.Set(stats.Experience, 0, stats.MaxExperience)
	return r.build(name, character.SideParty, book, character.FlagPlayer, character.FlagPersistsAfterDefeat)
}

// Villager is the weakest enemy of the ruins
func (r *Roster) Villager() *character.Character {
	return r.enemy("Villager", stats.NewCharacterBook(2, 1, 1, 1, 2))
}

// Knight counters attacks and sometimes carries poison
func (r *Roster) Knight() *character.Character {
	c := r.learn(r.enemy("Knight", stats.NewCharacterBook(3, 2, 2, 2, 5)), SetupCounterID)
	if r.source.NextBool(0.5) {
		r.learn(c, InflictPoisonID)
	}
	return c
}

// Healer mends the other enemies
func (r *Roster) Healer() *character.Character {
	c := r.learn(r.enemy("Healer", stats.NewCharacterBook(3, 1, 5, 5, 1)), HealID)
	if r.source.NextBool(0.5) {
		r.learn(c, RegenerateID)
	}
	return c
}

// Debug is a party member that knows every built-in spell
func (r *Roster) Debug(name string) *character.Character {
	c := r.build(name, character.SideParty, stats.NewCharacterBook(5, 5, 5, 5, 5), character.FlagPlayer)
	for _, b := range r.catalog.List() {
		if !c.Spells.Knows(b) {
			r.learn(c, b.ID())
		}
	}
	return c
}

// Catalog is the catalog characters' spells come from
func (r *Roster) Catalog() *Catalog {
	return r.catalog
}
