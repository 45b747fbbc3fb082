package testutils

import (
	"github.com/KirkDiggler/spellbook/internal/domain/character"
	"github.com/KirkDiggler/spellbook/internal/domain/spells"
	"github.com/KirkDiggler/spellbook/internal/domain/stats"
)

// CreateTestCharacterState creates a saved party member that knows the
// default spells and is partly wounded
func CreateTestCharacterState(id, name string) *character.State {
	return &character.State{
		ID:    id,
		Name:  name,
		Side:  character.SideParty,
		Flags: []character.Flag{character.FlagPlayer},
		Stats: stats.State{Stats: []stats.StatState{
			{Type: "level", Current: 1, Max: 99},
			{Type: "health", Current: 12, Max: 30},
		}},
		Spells: spells.State{Spells: []string{"attack", "wait"}},
	}
}

// CreateTestEnemyState creates a saved enemy with a single stat
func CreateTestEnemyState(id, name string) *character.State {
	return &character.State{
		ID:   id,
		Name: name,
		Side: character.SideEnemy,
		Stats: stats.State{Stats: []stats.StatState{
			{Type: "health", Current: 15, Max: 15},
		}},
		Spells: spells.State{Spells: []string{"attack"}},
	}
}
