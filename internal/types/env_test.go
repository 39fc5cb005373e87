package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeEnv_CopyOnWrite(t *testing.T) {
	base := EmptyEnv()
	extended := base.ExtendMono("x", Int)

	_, ok := base.LookupValue("x")
	assert.False(t, ok, "extending must not mutate the original env")

	binding, ok := extended.LookupValue("x")
	require.True(t, ok)
	assert.True(t, Equals(binding.(ValueScheme).Scheme.Body, Int))
}

func TestTypeEnv_FreeVarsAtLevel_ExcludesQuantified(t *testing.T) {
	env := EmptyEnv().ExtendScheme("id", &TypeScheme{
		Quantified: []uint64{1},
		Body:       &Fun{Param: &Var{ID: 1, Level: 5}, Result: &Var{ID: 1, Level: 5}},
	})
	free := env.FreeVarsAtLevel(0)
	assert.False(t, free[1], "quantified vars are bound, not free")
}

func TestTypeEnv_FreeVarsAtLevel_IncludesMonomorphicDeeperVars(t *testing.T) {
	env := EmptyEnv().ExtendMono("x", &Var{ID: 2, Level: 5})
	free := env.FreeVarsAtLevel(0)
	assert.True(t, free[2])
}
