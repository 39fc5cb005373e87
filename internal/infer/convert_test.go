package infer

import (
	"testing"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSurfaceType_Primitive(t *testing.T) {
	ty, err := ConvertSurfaceType(&ast.NamedTypeExpr{Name: "Int"}, types.EmptyEnv(), ast.Location{})
	require.NoError(t, err)
	assert.True(t, types.Equals(ty, types.Int))
}

func TestConvertSurfaceType_TypeVarAlwaysRejected(t *testing.T) {
	_, err := ConvertSurfaceType(&ast.TypeVarExpr{Name: "a"}, types.EmptyEnv(), ast.Location{})
	require.Error(t, err)
	assert.Equal(t, tcerrors.TypeVarNotSupported, err.(*tcerrors.Report).Kind)
}

func TestConvertSurfaceType_UndefinedNamedType(t *testing.T) {
	_, err := ConvertSurfaceType(&ast.NamedTypeExpr{Name: "Widget"}, types.EmptyEnv(), ast.Location{})
	require.Error(t, err)
	assert.Equal(t, tcerrors.UndefinedType, err.(*tcerrors.Report).Kind)
}

func TestConvertSurfaceType_FuncArrow(t *testing.T) {
	te := &ast.FuncTypeExpr{Param: &ast.NamedTypeExpr{Name: "Int"}, Result: &ast.NamedTypeExpr{Name: "Bool"}}
	ty, err := ConvertSurfaceType(te, types.EmptyEnv(), ast.Location{})
	require.NoError(t, err)
	fn, ok := ty.(*types.Fun)
	require.True(t, ok)
	assert.True(t, types.Equals(fn.Param, types.Int))
	assert.True(t, types.Equals(fn.Result, types.Bool))
}

func TestConvertSurfaceType_RecordFields(t *testing.T) {
	te := &ast.RecordTypeExpr{Fields: []ast.RecordFieldTypeExpr{
		{Name: "x", Type: &ast.NamedTypeExpr{Name: "Int"}},
		{Name: "y", Type: &ast.NamedTypeExpr{Name: "Int"}},
	}}
	ty, err := ConvertSurfaceType(te, types.EmptyEnv(), ast.Location{})
	require.NoError(t, err)
	rec, ok := ty.(*types.Record)
	require.True(t, ok)
	assert.Len(t, rec.Fields, 2)
}

func TestConvertSurfaceType_RefWrapsInner(t *testing.T) {
	te := &ast.RefTypeExpr{Inner: &ast.NamedTypeExpr{Name: "Int"}}
	ty, err := ConvertSurfaceType(te, types.EmptyEnv(), ast.Location{})
	require.NoError(t, err)
	ref, ok := ty.(*types.Ref)
	require.True(t, ok)
	assert.True(t, types.Equals(ref.Inner, types.Int))
}

func TestConvertSurfaceType_UnionAlternatives(t *testing.T) {
	te := &ast.UnionTypeExpr{Alternatives: []ast.TypeExpr{
		&ast.NamedTypeExpr{Name: "Int"},
		&ast.NamedTypeExpr{Name: "String"},
	}}
	ty, err := ConvertSurfaceType(te, types.EmptyEnv(), ast.Location{})
	require.NoError(t, err)
	union, ok := ty.(*types.Union)
	require.True(t, ok)
	assert.Len(t, union.Alternatives, 2)
}

// TestConvertSurfaceType_GenericRecordAliasSubstitutesParams builds a
// `Box<a> = {value: a}` alias and checks that naming it as `Box<Int>`
// substitutes the placeholder param with Int throughout the alias body.
func TestConvertSurfaceType_GenericRecordAliasSubstitutesParams(t *testing.T) {
	a := &types.Var{ID: 9001}
	def := &types.TypeDef{
		Kind:      types.RecordTypeDef,
		Name:      "Box",
		Params:    []string{"a"},
		Alias:     &types.Record{Fields: map[string]types.Type{"value": a}},
		ParamVars: []*types.Var{a},
	}
	env := types.EmptyEnv().ExtendType("Box", def)

	te := &ast.NamedTypeExpr{Name: "Box", Args: []ast.TypeExpr{&ast.NamedTypeExpr{Name: "Int"}}}
	ty, err := ConvertSurfaceType(te, env, ast.Location{})
	require.NoError(t, err)
	rec, ok := ty.(*types.Record)
	require.True(t, ok)
	assert.True(t, types.Equals(rec.Fields["value"], types.Int))
}

func TestConvertSurfaceType_OpaqueExternalTypeBecomesApp(t *testing.T) {
	def := &types.TypeDef{Kind: types.ExternalTypeDef, Name: "Buffer", Arity: 0}
	env := types.EmptyEnv().ExtendType("Buffer", def)
	ty, err := ConvertSurfaceType(&ast.NamedTypeExpr{Name: "Buffer"}, env, ast.Location{})
	require.NoError(t, err)
	app, ok := ty.(*types.App)
	require.True(t, ok)
	ctor, ok := app.Ctor.(*types.Const)
	require.True(t, ok)
	assert.Equal(t, "Buffer", ctor.Name)
}

func TestConvertSurfaceType_VariantTypeBecomesVariant(t *testing.T) {
	def := &types.TypeDef{
		Kind: types.VariantTypeDef,
		Name: "Color",
		Variants: []types.VariantConstructor{
			{Name: "Red"}, {Name: "Green"}, {Name: "Blue"},
		},
	}
	env := types.EmptyEnv().ExtendType("Color", def)
	ty, err := ConvertSurfaceType(&ast.NamedTypeExpr{Name: "Color"}, env, ast.Location{})
	require.NoError(t, err)
	variant, ok := ty.(*types.Variant)
	require.True(t, ok)
	assert.Equal(t, "Color", variant.Name)
}
