package stats

import (
	"math"
	"sort"

	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Stat is a current/maximum pair
type Stat struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Book holds one character's stats. Every mutation is a delta and the
// current value is always clamped into [0, Max].
//
// A Book is owned by exactly one character and is not safe for concurrent
// use; the engine resolves one cast at a time.
type Book struct {
	stats map[Type]*Stat
}

// NewBook creates an empty stat book
func NewBook() *Book {
	return &Book{
		stats: make(map[Type]*Stat),
	}
}

// NewCharacterBook derives a book from the five base attributes
func NewCharacterBook(level, strength, agility, intellect, vitality int) *Book {
	b := NewBook()
	b.Set(Level, level, MaxLevel)
	b.Set(Strength, strength, strength)
	b.Set(Agility, agility, agility)
	b.Set(Intellect, intellect, intellect)
	b.Set(Vitality, vitality, vitality)

	health := BaseHealth + vitality*HealthPerVitality
	b.Set(Health, health, health)
	if intellect > 0 {
		mana := intellect * ManaPerIntellect
		b.Set(Mana, mana, mana)
	}
	b.Set(Skill, 0, MaxSkill)
	return b
}

const (
	MaxLevel          = 99
	MaxSkill          = 10
	MaxExperience     = 1_000_000
	BaseHealth        = 5
	HealthPerVitality = 5
	ManaPerIntellect  = 5
)

// Set registers a stat. The current value is clamped into [0, max].
func (b *Book) Set(t Type, current, max int) {
	if max < 0 {
		max = 0
	}
	b.stats[t] = &Stat{Current: clamp(current, 0, max), Max: max}
}

// Add applies a delta to the current value and returns the delta that was
// actually applied after clamping. Unknown stats are left untouched.
func (b *Book) Add(t Type, delta int) int {
	s, ok := b.stats[t]
	if !ok {
		return 0
	}
	before := s.Current
	s.Current = clamp(saturatingAdd(s.Current, delta), 0, s.Max)
	return s.Current - before
}

// AddMax applies a delta to the maximum and re-clamps the current value
func (b *Book) AddMax(t Type, delta int) int {
	s, ok := b.stats[t]
	if !ok {
		return 0
	}
	before := s.Max
	s.Max = saturatingAdd(s.Max, delta)
	if s.Max < 0 {
		s.Max = 0
	}
	s.Current = clamp(s.Current, 0, s.Max)
	return s.Max - before
}

// Get returns the current value, 0 for unknown stats
func (b *Book) Get(t Type) int {
	if s, ok := b.stats[t]; ok {
		return s.Current
	}
	return 0
}

// GetMax returns the maximum, 0 for unknown stats
func (b *Book) GetMax(t Type) int {
	if s, ok := b.stats[t]; ok {
		return s.Max
	}
	return 0
}

// Has reports whether the stat is registered
func (b *Book) Has(t Type) bool {
	_, ok := b.stats[t]
	return ok
}

// Types returns the registered stats in display order
func (b *Book) Types() []Type {
	out := make([]Type, 0, len(b.stats))
	for t := range b.stats {
		out = append(out, t)
	}
	sortTypes(out)
	return out
}

// StatState is the persisted form of one stat
type StatState struct {
	Type    string `json:"type"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}

// State is the persisted form of a book, ordered by display order
type State struct {
	Stats []StatState `json:"stats"`
}

// ExportState snapshots the book
func (b *Book) ExportState() State {
	state := State{Stats: make([]StatState, 0, len(b.stats))}
	for _, t := range b.Types() {
		s := b.stats[t]
		state.Stats = append(state.Stats, StatState{
			Type:    string(t),
			Current: s.Current,
			Max:     s.Max,
		})
	}
	return state
}

// ImportState replaces the book's contents. Nothing is changed when any
// entry names an unknown stat.
func (b *Book) ImportState(state State) error {
	restored := make(map[Type]*Stat, len(state.Stats))
	for _, entry := range state.Stats {
		t, err := Parse(entry.Type)
		if err != nil {
			return dnderr.WrapWithCode(err, dnderr.CodeNotFound, "failed to import stats")
		}
		max := entry.Max
		if max < 0 {
			max = 0
		}
		restored[t] = &Stat{Current: clamp(entry.Current, 0, max), Max: max}
	}
	b.stats = restored
	return nil
}

// saturatingAdd adds without wrapping around at the int limits
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortTypes(types []Type) {
	sort.Slice(types, func(i, j int) bool {
		return types[i].Less(types[j])
	})
}
