package types

// TypeScheme represents a polymorphic type `∀α₁…αₙ. body` where the αᵢ are
// variable ids bound by the scheme (spec.md §3).
type TypeScheme struct {
	Quantified []uint64
	Body       Type
}

// Mono wraps a type in a scheme with an empty quantifier list — the shape
// produced whenever the value restriction applies (spec.md invariant 5).
func Mono(t Type) *TypeScheme {
	return &TypeScheme{Body: t}
}

func (s *TypeScheme) isQuantified(id uint64) bool {
	for _, q := range s.Quantified {
		if q == id {
			return true
		}
	}
	return false
}
