package spells

import (
	"fmt"
	"strings"
)

// Colorize wraps text in the presentation layer's color markup
func Colorize(text, color string) string {
	return fmt.Sprintf("<color=%s>%s</color>", color, text)
}

func affordable(text string, ok bool) string {
	if ok {
		return Colorize(text, "white")
	}
	return Colorize(text, "red")
}

// CostText renders the costs in stat order, red where the caster is short
func (b *Book) CostText(caster Params) string {
	if len(b.costs) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(b.costs))
	for _, c := range b.costs {
		parts = append(parts, affordable(fmt.Sprintf("%d %s", c.Amount, c.Stat.Name()), b.HasResource(caster, c.Stat)))
	}
	return strings.Join(parts, ", ")
}

// DetailedName is the spell name colored by affordability
func (b *Book) DetailedName(caster Params) string {
	return affordable(b.name, b.HasResources(caster))
}

// CreateDescription describes the spell as caster would see it
func (b *Book) CreateDescription(caster Params) string {
	var sb strings.Builder
	if !b.HasResources(caster) {
		sb.WriteString(Colorize("Insufficient resource.", "red"))
		sb.WriteString("\n")
	}
	if b.behavior.Detail != nil {
		if detail := b.behavior.Detail(caster); detail != "" {
			sb.WriteString(detail)
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "Target: %s\nCost: %s", b.target.Name(), b.CostText(caster))
	return sb.String()
}

// CreateTargetDescription describes casting the spell on a chosen target
func (b *Book) CreateTargetDescription(caster, target Params) string {
	return fmt.Sprintf("%s will use %s on %s.\n%s", caster.Name, b.name, target.Name, b.CreateDescription(caster))
}

func (b *Book) text(caster, target Params, result ResultType) string {
	if b.behavior.Text != nil {
		return b.behavior.Text(caster, target, result)
	}
	if caster.CharacterID == target.CharacterID {
		if result.IsHit() {
			return fmt.Sprintf("%s used %s.", caster.Name, b.name)
		}
		return fmt.Sprintf("%s used %s, but it failed.", caster.Name, b.name)
	}
	switch result {
	case ResultCritical:
		return fmt.Sprintf("%s used %s on %s. A critical hit!", caster.Name, b.name, target.Name)
	case ResultHit:
		return fmt.Sprintf("%s used %s on %s.", caster.Name, b.name, target.Name)
	default:
		return fmt.Sprintf("%s used %s on %s, but missed.", caster.Name, b.name, target.Name)
	}
}
