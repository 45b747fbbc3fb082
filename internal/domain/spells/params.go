package spells

import (
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	"github.com/KirkDiggler/spellbook/internal/effects"
)

// Params is the per-call view of a caster or target handed to spell
// decision functions. It borrows the character's state and must not be
// kept after the call returns.
type Params struct {
	CharacterID string
	Name        string
	Stats       *stats.Book
	Spells      *Repertoire
	Effects     *effects.Manager
}

// Knows reports whether the participant's repertoire contains b
func (p Params) Knows(b *Book) bool {
	return p.Spells != nil && p.Spells.Knows(b)
}
