package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_FollowsChains(t *testing.T) {
	s := Substitution{1: &Var{ID: 2, Level: 0}, 2: Int}
	v := &Var{ID: 1, Level: 0}
	assert.True(t, Equals(Apply(s, v), Int))
}

func TestApply_PreservesSharingWhenNoChange(t *testing.T) {
	rec := &Record{Fields: map[string]Type{"x": Int}}
	s := Substitution{99: String} // doesn't touch rec at all
	got := Apply(s, rec)
	assert.Same(t, rec, got)
}

func TestCompose(t *testing.T) {
	s1 := Substitution{1: &Var{ID: 2, Level: 0}}
	s2 := Substitution{2: Int}
	composed := Compose(s1, s2)
	assert.True(t, Equals(Apply(composed, &Var{ID: 1}), Int))
}

func TestFreeVarsAtLevel(t *testing.T) {
	inner := &Var{ID: 1, Level: 3}
	outer := &Var{ID: 2, Level: 1}
	fn := &Fun{Param: inner, Result: outer}
	free := FreeVarsAtLevel(fn, 2)
	assert.True(t, free[1])
	assert.False(t, free[2])
}

func TestInstantiate_FreshensEveryQuantifiedVar(t *testing.T) {
	a := uint64(1)
	scheme := &TypeScheme{Quantified: []uint64{a}, Body: &Fun{Param: &Var{ID: a}, Result: &Var{ID: a}}}
	next := uint64(100)
	fresh := func() *Var {
		next++
		return &Var{ID: next, Level: 0}
	}
	inst := Instantiate(scheme, fresh)
	fn := inst.(*Fun)
	pv := fn.Param.(*Var)
	rv := fn.Result.(*Var)
	assert.Equal(t, pv.ID, rv.ID) // both occurrences get the SAME fresh var
	assert.NotEqual(t, a, pv.ID)
}

func TestIsGround(t *testing.T) {
	assert.True(t, IsGround(Int))
	assert.False(t, IsGround(&Var{ID: 1}))
	assert.True(t, IsGround(&Fun{Param: Int, Result: Bool}))
}
