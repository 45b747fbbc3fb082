package spells

// TargetType describes who a spell may be aimed at
type TargetType string

const (
	TargetSelf        TargetType = "self"
	TargetSingleAlly  TargetType = "single_ally"
	TargetSingleEnemy TargetType = "single_enemy"
	TargetAllAllies   TargetType = "all_allies"
	TargetAllEnemies  TargetType = "all_enemies"
	TargetAny         TargetType = "any"
)

// Name is the display name
func (t TargetType) Name() string {
	switch t {
	case TargetSelf:
		return "Self"
	case TargetSingleAlly:
		return "Single ally"
	case TargetSingleEnemy:
		return "Single enemy"
	case TargetAllAllies:
		return "All allies"
	case TargetAllEnemies:
		return "All enemies"
	case TargetAny:
		return "Any"
	default:
		return string(t)
	}
}

// SpellType is the category of a spell
type SpellType string

const (
	SpellTypeOffense  SpellType = "offense"
	SpellTypeBoost    SpellType = "boost"
	SpellTypeDefense  SpellType = "defense"
	SpellTypeItem     SpellType = "item"
	SpellTypeMerchant SpellType = "merchant"
)

// Offensive reports whether casting this type counts as an attack on the target
func (t SpellType) Offensive() bool {
	return t == SpellTypeOffense
}

// Flag marks special spell behaviour
type Flag string

const (
	// FlagCasterRequiresSpell means the caster must know the spell to cast it
	FlagCasterRequiresSpell Flag = "caster_requires_spell"
)

// ResultType is the outcome of a cast
type ResultType string

const (
	ResultMiss     ResultType = "MISS"
	ResultHit      ResultType = "HIT"
	ResultCritical ResultType = "CRITICAL"
)

// IsHit is true for hits and critical hits
func (r ResultType) IsHit() bool {
	return r == ResultHit || r == ResultCritical
}
