package types

import "sort"

// Generalize turns a let-bound type into a scheme at the end of its binding
// group (spec.md §4.4.1). Only syntactic values are ever generalized
// (invariant 5, the value restriction); everything else gets Mono. For a
// value, the quantified set is every variable born strictly deeper than
// level that is not also free somewhere in env — i.e. not required by an
// enclosing binding (invariant 4).
func Generalize(t Type, env *TypeEnv, level uint32, isValue bool) *TypeScheme {
	if !isValue {
		return Mono(t)
	}
	freeInType := FreeVarsAtLevel(t, level)
	if len(freeInType) == 0 {
		return Mono(t)
	}
	freeInEnv := env.FreeVarsAtLevel(level)
	quantified := make([]uint64, 0, len(freeInType))
	for id := range freeInType {
		if !freeInEnv[id] {
			quantified = append(quantified, id)
		}
	}
	sort.Slice(quantified, func(i, j int) bool { return quantified[i] < quantified[j] })
	return &TypeScheme{Quantified: quantified, Body: t}
}
