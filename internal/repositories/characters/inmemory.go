package characters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/spellbook/internal/domain/character"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*character.State
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string]*character.State),
	}
}

// Save stores a copy of the character
func (r *InMemoryRepository) Save(ctx context.Context, state *character.State) error {
	if state == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if state.ID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.characters[state.ID] = copyState(state)
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*character.State, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.characters[id]
	if !exists {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	// Return a copy to avoid external modifications
	return copyState(state), nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.characters, id)
	return nil
}

// List returns every character ordered by ID
func (r *InMemoryRepository) List(ctx context.Context) ([]*character.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*character.State, 0, len(r.characters))
	for _, state := range r.characters {
		result = append(result, copyState(state))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func copyState(state *character.State) *character.State {
	c := *state
	c.Flags = append([]character.Flag(nil), state.Flags...)
	c.Stats.Stats = append(c.Stats.Stats[:0:0], state.Stats.Stats...)
	c.Spells.Spells = append([]string(nil), state.Spells.Spells...)
	return &c
}
