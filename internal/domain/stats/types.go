package stats

import (
	"fmt"
	"strings"
)

// Type is a resource or attribute a character carries
type Type string

const (
	Level      Type = "level"
	Strength   Type = "strength"
	Agility    Type = "agility"
	Intellect  Type = "intellect"
	Vitality   Type = "vitality"
	Health     Type = "health"
	Mana       Type = "mana"
	Skill      Type = "skill"
	Experience Type = "experience"
)

type typeInfo struct {
	name  string
	color string
	order int
}

// ordered lists every type in display order. The order is also the
// tie-break for anything rendered from a map keyed by Type.
var ordered = []Type{Level, Strength, Agility, Intellect, Vitality, Health, Mana, Skill, Experience}

var infos = map[Type]typeInfo{
	Level:      {name: "Level", color: "white", order: 0},
	Strength:   {name: "Strength", color: "red", order: 1},
	Agility:    {name: "Agility", color: "green", order: 2},
	Intellect:  {name: "Intellect", color: "blue", order: 3},
	Vitality:   {name: "Vitality", color: "yellow", order: 4},
	Health:     {name: "Health", color: "red", order: 5},
	Mana:       {name: "Mana", color: "cyan", order: 6},
	Skill:      {name: "Skill", color: "magenta", order: 7},
	Experience: {name: "Experience", color: "grey", order: 8},
}

// Types returns every known type in display order
func Types() []Type {
	out := make([]Type, len(ordered))
	copy(out, ordered)
	return out
}

// Parse resolves a stored type name
func Parse(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown stat type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a known type
func (t Type) Valid() bool {
	_, ok := infos[t]
	return ok
}

// Name is the display name
func (t Type) Name() string {
	if info, ok := infos[t]; ok {
		return info.name
	}
	return string(t)
}

// Color is the display color handed to the presentation layer
func (t Type) Color() string {
	if info, ok := infos[t]; ok {
		return info.color
	}
	return "white"
}

// Order is the position of t in display order; unknown types sort last
func (t Type) Order() int {
	if info, ok := infos[t]; ok {
		return info.order
	}
	return len(ordered)
}

// Less orders types for deterministic iteration
func (t Type) Less(other Type) bool {
	if t.Order() != other.Order() {
		return t.Order() < other.Order()
	}
	return t < other
}

func (t Type) String() string {
	return t.Name()
}
