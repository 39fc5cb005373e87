package types

import "fmt"

// UnifyErrorKind distinguishes the two ways Unify can fail.
type UnifyErrorKind int

const (
	InfiniteType UnifyErrorKind = iota
	TypeMismatch
)

// UnifyError carries the original pair that failed to unify. The top-level
// driver attaches source location and renders it as a tcerrors.Report.
type UnifyError struct {
	Kind UnifyErrorKind
	Left Type
	Right Type
	Detail string
}

func (e *UnifyError) Error() string {
	switch e.Kind {
	case InfiniteType:
		return fmt.Sprintf("infinite type: %s occurs in %s", e.Left, e.Right)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Detail)
		}
		return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
	}
}

func mismatch(a, b Type, detail string) error {
	return &UnifyError{Kind: TypeMismatch, Left: a, Right: b, Detail: detail}
}

// Unify solves a ~ b under the current substitution, returning the
// extended substitution or an error (spec.md §4.2). By convention, `a` (the
// left operand) is the expected side and `b` (the right operand) is the
// actual side — this governs which side of a Record unification is allowed
// to be the "wider" one (width subtyping, spec.md invariant 7): actual may
// carry fields expected doesn't ask for, never the reverse. This matches
// internal/infer/context.go's unify(loc, expected, actual, ...) wrapper,
// which forwards its arguments to Unify in that order.
func Unify(a, b Type, s Substitution) (Substitution, error) {
	a = Apply(s, a)
	b = Apply(s, b)

	if identical(a, b) {
		return s, nil
	}

	if av, ok := a.(*Var); ok {
		return bindVar(av, b, s)
	}
	if bv, ok := b.(*Var); ok {
		return bindVar(bv, a, s)
	}

	if _, ok := a.(*Const); ok && a == Never {
		return s, nil
	}
	if _, ok := b.(*Const); ok && b == Never {
		return s, nil
	}

	switch a := a.(type) {
	case *Const:
		bc, ok := b.(*Const)
		if !ok || a.Name != bc.Name {
			return nil, mismatch(a, b, "")
		}
		return s, nil

	case *Fun:
		bf, ok := b.(*Fun)
		if !ok {
			return nil, mismatch(a, b, "")
		}
		s, err := Unify(a.Param, bf.Param, s)
		if err != nil {
			return nil, err
		}
		return Unify(Apply(s, a.Result), Apply(s, bf.Result), s)

	case *App:
		ba, ok := b.(*App)
		if !ok {
			return nil, mismatch(a, b, "")
		}
		if len(a.Args) != len(ba.Args) {
			return nil, mismatch(a, b, "arity mismatch")
		}
		s, err := Unify(a.Ctor, ba.Ctor, s)
		if err != nil {
			return nil, err
		}
		for i := range a.Args {
			s, err = Unify(Apply(s, a.Args[i]), Apply(s, ba.Args[i]), s)
			if err != nil {
				return nil, err
			}
		}
		return s, nil

	case *Ref:
		br, ok := b.(*Ref)
		if !ok {
			return nil, mismatch(a, b, "")
		}
		return Unify(a.Inner, br.Inner, s) // invariant: no Ref subtyping

	case *Variant:
		bv, ok := b.(*Variant)
		if !ok {
			return nil, mismatch(a, b, "")
		}
		if a.Name != bv.Name {
			return nil, mismatch(a, b, "nominal variant mismatch")
		}
		if len(a.Args) != len(bv.Args) {
			return nil, mismatch(a, b, "arity mismatch")
		}
		var err error
		for i := range a.Args {
			s, err = Unify(Apply(s, a.Args[i]), Apply(s, bv.Args[i]), s)
			if err != nil {
				return nil, err
			}
		}
		return s, nil

	case *Record:
		br, ok := b.(*Record)
		if !ok {
			return nil, mismatch(a, b, "")
		}
		return unifyRecords(a, br, s)

	case *Union:
		return unifyUnion(a, b, s)
	}

	if bu, ok := b.(*Union); ok {
		return unifyUnion(bu, a, s)
	}

	return nil, mismatch(a, b, "")
}

func identical(a, b Type) bool {
	if av, ok := a.(*Var); ok {
		if bv, ok := b.(*Var); ok {
			return av.ID == bv.ID
		}
		return false
	}
	if ac, ok := a.(*Const); ok {
		if bc, ok := b.(*Const); ok {
			return ac.Name == bc.Name
		}
		return false
	}
	return false
}

// bindVar binds v to other, after an occurs check and a level update
// (spec.md §4.2 step 3).
func bindVar(v *Var, other Type, s Substitution) (Substitution, error) {
	if ov, ok := other.(*Var); ok && ov.ID == v.ID {
		return s, nil
	}
	if occurs(v.ID, other) {
		return nil, &UnifyError{Kind: InfiniteType, Left: v, Right: other}
	}
	lowerLevels(other, v.Level)
	out := make(Substitution, len(s)+1)
	for id, t := range s {
		out[id] = t
	}
	out[v.ID] = other
	return out, nil
}

func occurs(id uint64, t Type) bool {
	free := FreeVars(t)
	return free[id]
}

// lowerLevels walks other and, for every Var found, sets its Level to
// min(Level, lvl) — spec.md invariant 2, so that generalization at any
// outer scope sees the most conservative (smallest) level.
func lowerLevels(t Type, lvl uint32) {
	switch t := t.(type) {
	case *Var:
		if lvl < t.Level {
			t.Level = lvl
		}
	case *Fun:
		lowerLevels(t.Param, lvl)
		lowerLevels(t.Result, lvl)
	case *App:
		lowerLevels(t.Ctor, lvl)
		for _, a := range t.Args {
			lowerLevels(a, lvl)
		}
	case *Record:
		for _, ft := range t.Fields {
			lowerLevels(ft, lvl)
		}
	case *Variant:
		for _, a := range t.Args {
			lowerLevels(a, lvl)
		}
	case *Ref:
		lowerLevels(t.Inner, lvl)
	case *Union:
		for _, a := range t.Alternatives {
			lowerLevels(a, lvl)
		}
	}
}

// unifyRecords implements width subtyping (spec.md invariant 7): every
// field named on expected must appear on actual with a unifiable type.
// actual is the only side allowed to carry extra fields — if expected
// names a field actual doesn't have, that's a missing-field error
// regardless of which side has more fields overall (spec.md's
// "{x:Int} <: {x:Int,y:Int} fails when the larger record is expected").
func unifyRecords(expected, actual *Record, s Substitution) (Substitution, error) {
	var err error
	for name, et := range expected.Fields {
		at, ok := actual.Fields[name]
		if !ok {
			return nil, &UnifyError{Kind: TypeMismatch, Left: expected, Right: actual,
				Detail: fmt.Sprintf("missing field %q", name)}
		}
		s, err = Unify(Apply(s, et), Apply(s, at), s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// unifyUnion succeeds if t unifies with at least one alternative of u.
// Restricted to variant unions; primitive unions are never narrowed
// (spec.md §4.2 step 11, Non-goals).
func unifyUnion(u *Union, t Type, s Substitution) (Substitution, error) {
	for _, alt := range u.Alternatives {
		if next, err := Unify(alt, t, s); err == nil {
			return next, nil
		}
	}
	return nil, mismatch(u, t, "no alternative unifies")
}
