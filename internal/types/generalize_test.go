package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralize_NonValueStaysMono(t *testing.T) {
	scheme := Generalize(&Var{ID: 10, Level: 3}, EmptyEnv(), 1, false)
	assert.Empty(t, scheme.Quantified)
}

func TestGeneralize_ValueQuantifiesDeeperFreeVars(t *testing.T) {
	body := &Fun{Param: &Var{ID: 10, Level: 3}, Result: &Var{ID: 10, Level: 3}}
	scheme := Generalize(body, EmptyEnv(), 1, true)
	assert.ElementsMatch(t, []uint64{10}, scheme.Quantified)
}

func TestGeneralize_ExcludesVarsFreeInEnv(t *testing.T) {
	env := EmptyEnv().ExtendMono("enclosing", &Var{ID: 10, Level: 3})
	body := &Fun{Param: &Var{ID: 10, Level: 3}, Result: &Var{ID: 11, Level: 3}}
	scheme := Generalize(body, env, 1, true)
	assert.ElementsMatch(t, []uint64{11}, scheme.Quantified)
}

func TestGeneralize_ExcludesShallowerVars(t *testing.T) {
	body := &Var{ID: 5, Level: 1}
	scheme := Generalize(body, EmptyEnv(), 1, true)
	assert.Empty(t, scheme.Quantified)
}
