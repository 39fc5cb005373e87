package infer

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// namedPrimitives maps the zero-argument surface names that resolve to a
// types.Const directly, without a TypeDef lookup.
var namedPrimitives = map[string]types.Type{
	"Int":    types.Int,
	"Float":  types.Float,
	"String": types.String,
	"Bool":   types.Bool,
	"Unit":   types.Unit,
	"Never":  types.Never,
}

// ConvertSurfaceType resolves a surface TypeExpr (a type annotation or an
// external signature) to a types.Type against
// env (spec.md §4.4.4). Lower-case identifiers are always rejected —
// generic annotations are not supported in surface syntax.
func ConvertSurfaceType(te ast.TypeExpr, env *types.TypeEnv, loc ast.Location) (types.Type, error) {
	switch te := te.(type) {
	case *ast.TypeVarExpr:
		return nil, tcerrors.NewTypeVarNotSupported(loc, te.Name)

	case *ast.NamedTypeExpr:
		return convertNamed(te, env, loc)

	case *ast.FuncTypeExpr:
		param, err := ConvertSurfaceType(te.Param, env, loc)
		if err != nil {
			return nil, err
		}
		result, err := ConvertSurfaceType(te.Result, env, loc)
		if err != nil {
			return nil, err
		}
		return &types.Fun{Param: param, Result: result}, nil

	case *ast.RecordTypeExpr:
		fields := make(map[string]types.Type, len(te.Fields))
		for _, f := range te.Fields {
			ft, err := ConvertSurfaceType(f.Type, env, loc)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = ft
		}
		return &types.Record{Fields: fields}, nil

	case *ast.UnionTypeExpr:
		alts := make([]types.Type, len(te.Alternatives))
		for i, a := range te.Alternatives {
			at, err := ConvertSurfaceType(a, env, loc)
			if err != nil {
				return nil, err
			}
			alts[i] = at
		}
		return &types.Union{Alternatives: alts}, nil

	case *ast.RefTypeExpr:
		inner, err := ConvertSurfaceType(te.Inner, env, loc)
		if err != nil {
			return nil, err
		}
		return &types.Ref{Inner: inner}, nil

	default:
		return nil, tcerrors.NewUndefinedType(loc, te.String())
	}
}

// NamedPrimitive returns the primitive types.Type a zero-argument primitive
// name resolves to (Int, Float, String, Bool, Unit, Never), for callers
// outside this package that need the same primitive table (internal/checker
// resolves type-definition bodies against it too).
func NamedPrimitive(name string) (types.Type, bool) {
	t, ok := namedPrimitives[name]
	return t, ok
}

func convertNamed(te *ast.NamedTypeExpr, env *types.TypeEnv, loc ast.Location) (types.Type, error) {
	if prim, ok := namedPrimitives[te.Name]; ok && len(te.Args) == 0 {
		return prim, nil
	}

	def, ok := env.LookupType(te.Name)
	if !ok {
		return nil, tcerrors.NewUndefinedType(loc, te.Name)
	}

	args := make([]types.Type, len(te.Args))
	for i, a := range te.Args {
		at, err := ConvertSurfaceType(a, env, loc)
		if err != nil {
			return nil, err
		}
		args[i] = at
	}

	switch def.Kind {
	case types.RecordTypeDef, types.ExternalTypeDef:
		if def.Alias == nil {
			// opaque external type: an applied App over its own name
			return &types.App{Ctor: &types.Const{Name: def.Name}, Args: args}, nil
		}
		return substituteParams(def.Alias, def.ParamVars, args), nil
	default: // VariantTypeDef
		return &types.Variant{Name: def.Name, Args: args}, nil
	}
}

// substituteParams instantiates a record/external alias's generic Alias
// body by substituting each declared parameter's placeholder Var with the
// caller's corresponding type argument, matched up positionally.
func substituteParams(body types.Type, paramVars []*types.Var, args []types.Type) types.Type {
	if len(paramVars) == 0 || len(args) == 0 {
		return body
	}
	sub := types.NewSubstitution()
	for i, pv := range paramVars {
		if i >= len(args) {
			break
		}
		sub[pv.ID] = args[i]
	}
	return types.Apply(sub, body)
}
