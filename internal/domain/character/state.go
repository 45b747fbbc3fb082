package character

import (
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

// State is the persisted form of a character. Active timed effects are not
// part of it; they end with the battle that started them.
type State struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Side   Side         `json:"side"`
	Flags  []Flag       `json:"flags,omitempty"`
	Stats  stats.State  `json:"stats"`
	Spells spells.State `json:"spells"`
}

// ExportState captures the character for storage
func (c *Character) ExportState() *State {
	return &State{
		ID:     c.ID,
		Name:   c.Name,
		Side:   c.Side,
		Flags:  c.Flags(),
		Stats:  c.Stats.ExportState(),
		Spells: c.Spells.ExportState(),
	}
}

// ImportState restores stats and spells. Either both are restored or the
// character is left untouched.
func (c *Character) ImportState(state *State, lookup spells.Lookup) error {
	if state == nil {
		return dnderr.InvalidArgument("state is required")
	}

	repertoire := spells.NewRepertoire()
	if err := repertoire.ImportState(state.Spells, lookup); err != nil {
		return dnderr.Wrapf(err, "failed to import spells for %s", state.ID)
	}
	// imported in place; the effect manager holds this book
	if err := c.Stats.ImportState(state.Stats); err != nil {
		return dnderr.Wrapf(err, "failed to import stats for %s", state.ID)
	}

	c.Spells = repertoire
	c.Name = state.Name
	c.Side = state.Side
	c.flags = make(map[Flag]bool, len(state.Flags))
	for _, f := range state.Flags {
		c.flags[f] = true
	}
	return nil
}

// FromState builds a character from stored state
func FromState(state *State, engine *effects.Engine, lookup spells.Lookup) (*Character, error) {
	if state == nil {
		return nil, dnderr.InvalidArgument("state is required")
	}
	c := New(&Config{ID: state.ID, Engine: engine})
	if err := c.ImportState(state, lookup); err != nil {
		return nil, err
	}
	return c, nil
}
