package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnify_RecordRowDiff(t *testing.T) {
	expected := &Record{Fields: map[string]Type{"x": Int, "y": Int, "z": Int}}
	actual := &Record{Fields: map[string]Type{"x": Int, "y": Int}}
	if diff := cmp.Diff(expected.Fields, actual.Fields, cmp.Comparer(Equals)); diff == "" {
		t.Fatal("expected a structural diff between mismatched record rows")
	}

	same := &Record{Fields: map[string]Type{"x": Int, "y": Int}}
	if diff := cmp.Diff(actual.Fields, same.Fields, cmp.Comparer(Equals)); diff != "" {
		t.Fatalf("identical record rows should not diff: %s", diff)
	}
}

func TestUnify_Consts(t *testing.T) {
	s, err := Unify(Int, Int, NewSubstitution())
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = Unify(Int, Bool, NewSubstitution())
	require.Error(t, err)
	var uerr *UnifyError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, TypeMismatch, uerr.Kind)
}

func TestUnify_NeverIsBottom(t *testing.T) {
	_, err := Unify(Never, Int, NewSubstitution())
	assert.NoError(t, err)
	_, err = Unify(String, Never, NewSubstitution())
	assert.NoError(t, err)
}

func TestUnify_OccursCheck(t *testing.T) {
	v := &Var{ID: 1, Level: 0}
	f := &Fun{Param: v, Result: Int}
	_, err := Unify(v, f, NewSubstitution())
	require.Error(t, err)
	var uerr *UnifyError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, InfiniteType, uerr.Kind)
}

func TestUnify_LevelLowering(t *testing.T) {
	outer := &Var{ID: 1, Level: 0}
	inner := &Var{ID: 2, Level: 5}
	s, err := Unify(outer, inner, NewSubstitution())
	require.NoError(t, err)
	resolved := Apply(s, inner)
	// inner got bound to outer (or vice versa); whichever var remains free
	// must have had its level lowered to 0.
	if v, ok := resolved.(*Var); ok {
		assert.Equal(t, uint32(0), v.Level)
	} else {
		assert.Equal(t, uint32(0), outer.Level)
	}
}

func TestUnify_FunParamsAndResults(t *testing.T) {
	a := &Var{ID: 1, Level: 0}
	f1 := &Fun{Param: a, Result: Int}
	f2 := &Fun{Param: String, Result: Int}
	s, err := Unify(f1, f2, NewSubstitution())
	require.NoError(t, err)
	assert.True(t, Equals(Apply(s, a), String))
}

func TestUnify_NominalVariants(t *testing.T) {
	red := &Variant{Name: "Red", Args: nil}
	blue := &Variant{Name: "Blue", Args: nil}
	_, err := Unify(red, blue, NewSubstitution())
	require.Error(t, err)

	redA := &Variant{Name: "Red", Args: []Type{Int}}
	redB := &Variant{Name: "Red", Args: []Type{Int}}
	_, err = Unify(redA, redB, NewSubstitution())
	require.NoError(t, err)
}

func TestUnify_WidthSubtyping(t *testing.T) {
	wide := &Record{Fields: map[string]Type{"x": Int, "y": Int}}
	narrow := &Record{Fields: map[string]Type{"x": Int}}

	// Unify(expected, actual): {x, y} actual used where {x} expected
	// succeeds — actual may carry fields expected doesn't ask for.
	_, err := Unify(narrow, wide, NewSubstitution())
	assert.NoError(t, err)

	// {x} actual used where {x, y} expected fails: expected names `y`,
	// which actual doesn't have. The larger record can never be the
	// expected side of a successful width-subtyping unification.
	_, err = Unify(wide, narrow, NewSubstitution())
	assert.Error(t, err)
}

func TestUnify_RecordFieldMismatch(t *testing.T) {
	a := &Record{Fields: map[string]Type{"x": Int}}
	b := &Record{Fields: map[string]Type{"x": Bool}}
	_, err := Unify(a, b, NewSubstitution())
	assert.Error(t, err)
}

func TestUnify_Idempotent(t *testing.T) {
	v := &Var{ID: 1, Level: 0}
	s, err := Unify(v, Int, NewSubstitution())
	require.NoError(t, err)
	s2, err := Unify(Apply(s, v), Apply(s, Int), s)
	require.NoError(t, err)
	assert.True(t, Equals(Apply(s2, v), Int))
}

func TestUnify_Symmetric(t *testing.T) {
	v := &Var{ID: 1, Level: 0}
	_, errAB := Unify(v, Int, NewSubstitution())
	_, errBA := Unify(Int, v, NewSubstitution())
	assert.Equal(t, errAB == nil, errBA == nil)
}

func TestUnify_UnionNarrowsOnlyVariants(t *testing.T) {
	u := &Union{Alternatives: []Type{
		&Variant{Name: "A"},
		&Variant{Name: "B"},
	}}
	_, err := Unify(u, &Variant{Name: "B"}, NewSubstitution())
	assert.NoError(t, err)

	_, err = Unify(u, &Variant{Name: "C"}, NewSubstitution())
	assert.Error(t, err)
}
