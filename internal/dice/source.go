package dice

//go:generate mockgen -destination=mock/mock_source.go -package=mockdice -source=source.go

// Source is the randomness every outcome roll draws from.
// Implementations are injected so resolution can be replayed in tests.
type Source interface {
	// NextBool returns true with the given probability (0..1)
	NextBool(probability float64) bool

	// Range returns a value in [min, max], inclusive
	Range(min, max int) int
}
