package pattern

import (
	"testing"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCheckExhaustive_BoolNeedsBothArms(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.LiteralPattern{Kind: ast.BoolLit, Value: true}},
	}
	missing := CheckExhaustive(types.Bool, arms, types.EmptyEnv())
	assert.Equal(t, []string{"false"}, missing)
}

func TestCheckExhaustive_BoolBothArmsIsExhaustive(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.LiteralPattern{Kind: ast.BoolLit, Value: true}},
		{Pattern: &ast.LiteralPattern{Kind: ast.BoolLit, Value: false}},
	}
	assert.Empty(t, CheckExhaustive(types.Bool, arms, types.EmptyEnv()))
}

func TestCheckExhaustive_WildcardCoversAnyType(t *testing.T) {
	arms := []ast.MatchArm{{Pattern: &ast.WildcardPattern{}}}
	assert.Empty(t, CheckExhaustive(types.Int, arms, types.EmptyEnv()))
}

func TestCheckExhaustive_IntNeedsWildcard(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.LiteralPattern{Kind: ast.IntLit, Value: 1}},
	}
	assert.Equal(t, []string{"_"}, CheckExhaustive(types.Int, arms, types.EmptyEnv()))
}

func TestCheckExhaustive_StringAlwaysNeedsWildcard(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.LiteralPattern{Kind: ast.StringLit, Value: "a"}},
		{Pattern: &ast.LiteralPattern{Kind: ast.StringLit, Value: "b"}},
	}
	assert.Equal(t, []string{"_"}, CheckExhaustive(types.String, arms, types.EmptyEnv()))
}

func TestCheckExhaustive_VariantMissingOneArm(t *testing.T) {
	env := optionEnv()
	scrutinee := &types.Variant{Name: "Option", Args: []types.Type{types.Int}}
	arms := []ast.MatchArm{
		{Pattern: &ast.VariantPattern{Ctor: "Some", Args: []ast.Pattern{&ast.VarPattern{Name: "x"}}}},
	}
	assert.Equal(t, []string{"None"}, CheckExhaustive(scrutinee, arms, env))
}

func TestCheckExhaustive_VariantFullyCovered(t *testing.T) {
	env := optionEnv()
	scrutinee := &types.Variant{Name: "Option", Args: []types.Type{types.Int}}
	arms := []ast.MatchArm{
		{Pattern: &ast.VariantPattern{Ctor: "Some", Args: []ast.Pattern{&ast.VarPattern{Name: "x"}}}},
		{Pattern: &ast.VariantPattern{Ctor: "None"}},
	}
	assert.Empty(t, CheckExhaustive(scrutinee, arms, env))
}

func TestCheckExhaustive_NestedVariantWitness(t *testing.T) {
	env := optionEnv()
	inner := &types.Variant{Name: "Option", Args: []types.Type{types.Int}}
	outer := &types.Variant{Name: "Option", Args: []types.Type{inner}}
	arms := []ast.MatchArm{
		{Pattern: &ast.VariantPattern{Ctor: "Some", Args: []ast.Pattern{
			&ast.VariantPattern{Ctor: "Some", Args: []ast.Pattern{&ast.VarPattern{Name: "x"}}},
		}}},
		{Pattern: &ast.VariantPattern{Ctor: "None"}},
	}
	assert.Equal(t, []string{"Some(None)"}, CheckExhaustive(outer, arms, env))
}

func TestCheckExhaustive_GuardedArmDoesNotCount(t *testing.T) {
	env := optionEnv()
	scrutinee := &types.Variant{Name: "Option", Args: []types.Type{types.Int}}
	arms := []ast.MatchArm{
		{Pattern: &ast.VariantPattern{Ctor: "Some", Args: []ast.Pattern{&ast.VarPattern{Name: "x"}}},
			Guard: &ast.Literal{Kind: ast.BoolLit, Value: true}},
		{Pattern: &ast.VariantPattern{Ctor: "None"}},
	}
	assert.Equal(t, []string{"Some(_)"}, CheckExhaustive(scrutinee, arms, env))
}

func TestCheckExhaustive_TupleIsSingleConstructor(t *testing.T) {
	tupleType := &types.Variant{Name: TupleName(2), Args: []types.Type{types.Int, types.Bool}}
	arms := []ast.MatchArm{
		{Pattern: &ast.TuplePattern{Elements: []ast.Pattern{&ast.WildcardPattern{}, &ast.WildcardPattern{}}}},
	}
	assert.Empty(t, CheckExhaustive(tupleType, arms, types.EmptyEnv()))
}
