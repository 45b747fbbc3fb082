package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/spellbook/internal/domain/character"
)

// Repository persists character state between battles
type Repository interface {
	// Save creates or replaces a character
	Save(ctx context.Context, state *character.State) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.State, error)

	// Delete removes a character
	Delete(ctx context.Context, id string) error

	// List returns every stored character ordered by ID
	List(ctx context.Context) ([]*character.State, error)
}

// TimeProvider stamps saved records
type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time {
	return time.Now().UTC()
}
