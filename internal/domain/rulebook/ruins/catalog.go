package ruins

import (
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Catalog is the registry of spell definitions, keyed by identity token.
// Saved repertoires are resolved through it.
type Catalog struct {
	books map[string]*spells.Book
	order []string
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		books: make(map[string]*spells.Book),
	}
}

// DefaultCatalog registers every built-in spell. Timed effects tick once
// per turn.
func DefaultCatalog(turn time.Duration) *Catalog {
	c := NewCatalog()
	for _, b := range []*spells.Book{
		Attack(),
		Wait(),
		Heal(),
		InflictPoison(turn),
		CurePoison(),
		SetupCounter(turn),
		Regenerate(turn),
	} {
		if err := c.Register(b); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds a spell definition
func (c *Catalog) Register(b *spells.Book) error {
	if b == nil {
		return dnderr.InvalidArgument("spell is required")
	}
	if _, exists := c.books[b.ID()]; exists {
		return dnderr.AlreadyExistsf("spell %s already registered", b.ID())
	}
	c.books[b.ID()] = b
	c.order = append(c.order, b.ID())
	return nil
}

// Get implements spells.Lookup
func (c *Catalog) Get(id string) (*spells.Book, bool) {
	b, ok := c.books[id]
	return b, ok
}

// MustGet returns a registered spell or panics
func (c *Catalog) MustGet(id string) *spells.Book {
	b, ok := c.books[id]
	if !ok {
		panic("spell " + id + " is not registered")
	}
	return b
}

// List returns the spells in registration order
func (c *Catalog) List() []*spells.Book {
	out := make([]*spells.Book, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.books[id])
	}
	return out
}

// DefaultRepertoire is what every character starts with
func (c *Catalog) DefaultRepertoire() *spells.Repertoire {
	return spells.NewRepertoire(c.MustGet(AttackID), c.MustGet(WaitID))
}
