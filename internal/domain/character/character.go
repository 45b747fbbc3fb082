package character

import (
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

// Side is the team a character fights for
type Side string

const (
	SideParty Side = "party"
	SideEnemy Side = "enemy"
)

// Flag marks how the game treats a character
type Flag string

const (
	FlagPlayer              Flag = "player"
	FlagPersistsAfterDefeat Flag = "persists_after_defeat"
	FlagDropsItems          Flag = "drops_items"
)

// Character owns its stat book, spell repertoire and active effects. All
// three are mutated only by casts resolved through the combat resolver.
type Character struct {
	ID      string
	Name    string
	Side    Side
	Stats   *stats.Book
	Spells  *spells.Repertoire
	Effects *effects.Manager

	flags map[Flag]bool
}

// Config holds what a character is built from
type Config struct {
	ID     string
	Name   string
	Side   Side
	Stats  *stats.Book
	Spells *spells.Repertoire
	Flags  []Flag
	Engine *effects.Engine
}

// New creates a character. The effect engine is required; empty stats and
// an empty repertoire are created when missing.
func New(cfg *Config) *Character {
	if cfg == nil {
		panic("character config is required")
	}
	if cfg.Engine == nil {
		panic("character requires an effect engine")
	}

	book := cfg.Stats
	if book == nil {
		book = stats.NewBook()
	}
	repertoire := cfg.Spells
	if repertoire == nil {
		repertoire = spells.NewRepertoire()
	}

	c := &Character{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Side:    cfg.Side,
		Stats:   book,
		Spells:  repertoire,
		Effects: cfg.Engine.NewManager(cfg.ID, book),
		flags:   make(map[Flag]bool),
	}
	for _, f := range cfg.Flags {
		c.flags[f] = true
	}
	return c
}

// Params is the cast view of this character for one resolution
func (c *Character) Params() spells.Params {
	return spells.Params{
		CharacterID: c.ID,
		Name:        c.Name,
		Stats:       c.Stats,
		Spells:      c.Spells,
		Effects:     c.Effects,
	}
}

// IsDefeated is true once health reaches zero
func (c *Character) IsDefeated() bool {
	return c.Stats.Has(stats.Health) && c.Stats.Get(stats.Health) == 0
}

// HasFlag checks a character flag
func (c *Character) HasFlag(flag Flag) bool {
	return c.flags[flag]
}

// AddFlag sets a character flag
func (c *Character) AddFlag(flag Flag) {
	c.flags[flag] = true
}

// Flags returns the set flags in a stable order
func (c *Character) Flags() []Flag {
	out := make([]Flag, 0, len(c.flags))
	for _, f := range []Flag{FlagPlayer, FlagPersistsAfterDefeat, FlagDropsItems} {
		if c.flags[f] {
			out = append(out, f)
		}
	}
	return out
}

func (c *Character) String() string {
	return c.Name
}
