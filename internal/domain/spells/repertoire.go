package spells

import (
	"sort"

	"github.com/KirkDiggler/spellbook/internal/domain/stats"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Lookup resolves a spell identity token to its definition
type Lookup interface {
	Get(id string) (*Book, bool)
}

// Repertoire is the set of spells a character has learned. Membership is by
// spell identity; learning a known spell does nothing.
//
// Repertoires are compared with Equal. There is no hash key for a
// repertoire; it is never used as a map key.
type Repertoire struct {
	books map[string]*Book
}

// State is the persisted form of a repertoire: spell IDs in learn order
type State struct {
	Spells []string `json:"spells"`
}

// NewRepertoire creates a repertoire seeded with defaults
func NewRepertoire(defaults ...*Book) *Repertoire {
	r := &Repertoire{
		books: make(map[string]*Book),
	}
	for _, b := range defaults {
		if b != nil {
			r.books[identity(b)] = b
		}
	}
	return r
}

func identity(b *Book) string {
	if b.silenced {
		return b.id + "#silenced"
	}
	return b.id
}

// Learn adds a spell. Only spells that must be known to be cast can be
// learned.
func (r *Repertoire) Learn(b *Book) error {
	if b == nil {
		return dnderr.InvalidArgument("spell is required")
	}
	if !b.HasFlag(FlagCasterRequiresSpell) {
		return dnderr.Validationf("spell %s is always castable and cannot be learned", b.id)
	}
	r.books[identity(b)] = b
	return nil
}

// Knows reports set membership
func (r *Repertoire) Knows(b *Book) bool {
	if b == nil {
		return false
	}
	_, ok := r.books[identity(b)]
	return ok
}

// HighestCost is the largest cost in stat among known spells, 0 if none
// uses it
func (r *Repertoire) HighestCost(stat stats.Type) int {
	highest := 0
	for _, b := range r.books {
		if c := b.Cost(stat); c > highest {
			highest = c
		}
	}
	return highest
}

// Books returns the known spells ordered by priority then ID
func (r *Repertoire) Books() []*Book {
	out := make([]*Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority > out[j].priority
		}
		return identity(out[i]) < identity(out[j])
	})
	return out
}

// Len is the number of known spells
func (r *Repertoire) Len() int {
	return len(r.books)
}

// Equal is set equality
func (r *Repertoire) Equal(other *Repertoire) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.books) != len(other.books) {
		return false
	}
	for key := range r.books {
		if _, ok := other.books[key]; !ok {
			return false
		}
	}
	return true
}

// ExportState lists the spell IDs in a stable order
func (r *Repertoire) ExportState() State {
	books := r.Books()
	state := State{Spells: make([]string, 0, len(books))}
	for _, b := range books {
		state.Spells = append(state.Spells, b.id)
	}
	return state
}

// ImportState replaces the repertoire's contents, learning each saved spell
// in turn. Every ID is resolved before anything changes; an unknown ID
// fails the whole import.
func (r *Repertoire) ImportState(state State, lookup Lookup) error {
	if lookup == nil {
		return dnderr.InvalidArgument("spell lookup is required")
	}

	books := make([]*Book, 0, len(state.Spells))
	for _, id := range state.Spells {
		b, ok := lookup.Get(id)
		if !ok {
			return dnderr.NotFoundf("unknown spell %q in saved repertoire", id).
				WithMeta("spell_id", id)
		}
		if !b.HasFlag(FlagCasterRequiresSpell) {
			return dnderr.Validationf("saved spell %q is always castable and cannot be learned", id)
		}
		books = append(books, b)
	}

	r.books = make(map[string]*Book, len(books))
	for _, b := range books {
		if err := r.Learn(b); err != nil {
			return err
		}
	}
	return nil
}
