package checker

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/infer"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// stubTypeDef builds a TypeDef with its name, kind, and parameter
// placeholders set but its body left empty, so a forward reference from a
// sibling definition (mutual recursion, spec.md §4.6 step 2) has something
// to resolve against before the body itself is computed.
func stubTypeDef(name string, kind types.TypeDefKind, params []string, ctx *infer.InferenceContext) *types.TypeDef {
	paramVars := make([]*types.Var, len(params))
	for i := range params {
		paramVars[i] = ctx.Fresh()
	}
	return &types.TypeDef{Kind: kind, Name: name, Params: params, ParamVars: paramVars}
}

func paramVarsByName(params []string, paramVars []*types.Var) map[string]*types.Var {
	m := make(map[string]*types.Var, len(params))
	for i, p := range params {
		m[p] = paramVars[i]
	}
	return m
}

// stubTypeDefFor mints an empty-bodied TypeDef for d, of the right kind, so
// that a sibling type declared earlier or later in the same module can
// refer to it by name before its own body is resolved (spec.md §4.6 step 2
// "register all user type definitions... so mutual references work").
func stubTypeDefFor(d *ast.TypeDef, ctx *infer.InferenceContext) *types.TypeDef {
	kind := types.VariantTypeDef
	if d.RecordBody != nil {
		kind = types.RecordTypeDef
	}
	return stubTypeDef(d.Name, kind, d.Params, ctx)
}

// stubExternalTypeDefFor is stubTypeDefFor's counterpart for an
// ExternalTypeDecl: an ExternalTypeDef stub with one placeholder parameter
// per declared arity.
func stubExternalTypeDefFor(d *ast.ExternalTypeDecl, ctx *infer.InferenceContext) *types.TypeDef {
	params := make([]string, d.Arity)
	for i := range params {
		params[i] = string(rune('a' + i))
	}
	def := stubTypeDef(d.Name, types.ExternalTypeDef, params, ctx)
	def.Arity = d.Arity
	return def
}

// resolveTypeDefBody fills in a record TypeDef's already-stubbed Alias
// against env (which by now has every sibling type's stub registered, so
// mutual references resolve). Variant bodies are resolved separately, once
// every stub is in place (see bindVariantConstructors), since a variant's
// own value-level constructors need the complete picture of sibling types.
func resolveTypeDefBody(d *ast.TypeDef, env *types.TypeEnv) (*types.TypeEnv, error) {
	if d.RecordBody == nil {
		return env, nil
	}
	def, _ := env.LookupType(d.Name)
	byName := paramVarsByName(def.Params, def.ParamVars)
	alias, err := convertDefBody(d.RecordBody, byName, env, d.Position())
	if err != nil {
		return nil, err
	}
	def.Alias = alias
	return env.ExtendType(d.Name, def), nil
}

// resolveExternalTypeDefBody is resolveTypeDefBody's external-type
// counterpart: opaque external types have nothing to fill in.
func resolveExternalTypeDefBody(d *ast.ExternalTypeDecl, env *types.TypeEnv) (*types.TypeEnv, error) {
	if d.Alias == nil {
		return env, nil
	}
	def, _ := env.LookupType(d.Name)
	byName := paramVarsByName(def.Params, def.ParamVars)
	alias, err := convertDefBody(d.Alias, byName, env, d.Position())
	if err != nil {
		return nil, err
	}
	def.Alias = alias
	return env.ExtendType(d.Name, def), nil
}

// bindVariantConstructors fills in d's already-stubbed TypeDef's Variants
// and extends env with each constructor as a value binding (a function
// from its declared arg types to the variant type, quantified over the
// type's own params — spec.md §4.3's nominal variant rule).
func bindVariantConstructors(d *ast.TypeDef, env *types.TypeEnv) (*types.TypeEnv, error) {
	def, ok := env.LookupType(d.Name)
	if !ok {
		return env, nil
	}
	byName := paramVarsByName(def.Params, def.ParamVars)

	variants := make([]types.VariantConstructor, 0, len(d.Variants))
	for _, v := range d.Variants {
		params := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			pt, err := convertDefBody(a, byName, env, d.Position())
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		variants = append(variants, types.VariantConstructor{Name: v.Name, Params: params})
	}
	def.Variants = variants
	env = env.ExtendType(d.Name, def)

	quantified := make([]uint64, len(def.ParamVars))
	for i, pv := range def.ParamVars {
		quantified[i] = pv.ID
	}
	args := make([]types.Type, len(def.ParamVars))
	for i, pv := range def.ParamVars {
		args[i] = pv
	}
	result := &types.Variant{Name: def.Name, Args: args}

	for _, v := range variants {
		var body types.Type = result
		for i := len(v.Params) - 1; i >= 0; i-- {
			body = &types.Fun{Param: v.Params[i], Result: body}
		}
		env = env.ExtendValue(v.Name, types.ValueScheme{Scheme: &types.TypeScheme{Quantified: quantified, Body: body}})
	}
	return env, nil
}

// convertDefBody resolves a type-definition's own surface body, where a
// lower-case TypeVarExpr is expected to name one of the definition's own
// parameters (unlike infer.ConvertSurfaceType, which always rejects a
// TypeVarExpr since a plain expression annotation can never be generic —
// spec.md §4.4.4's "generic type variables inside an annotation: not
// supported").
func convertDefBody(te ast.TypeExpr, paramVars map[string]*types.Var, env *types.TypeEnv, loc ast.Location) (types.Type, error) {
	switch te := te.(type) {
	case *ast.TypeVarExpr:
		if v, ok := paramVars[te.Name]; ok {
			return v, nil
		}
		return nil, tcerrors.NewTypeVarNotSupported(loc, te.Name)

	case *ast.NamedTypeExpr:
		resolvedArgs := make([]types.Type, len(te.Args))
		for i, a := range te.Args {
			at, err := convertDefBody(a, paramVars, env, loc)
			if err != nil {
				return nil, err
			}
			resolvedArgs[i] = at
		}
		return resolveNamed(te.Name, resolvedArgs, env, loc)

	case *ast.FuncTypeExpr:
		param, err := convertDefBody(te.Param, paramVars, env, loc)
		if err != nil {
			return nil, err
		}
		res, err := convertDefBody(te.Result, paramVars, env, loc)
		if err != nil {
			return nil, err
		}
		return &types.Fun{Param: param, Result: res}, nil

	case *ast.RecordTypeExpr:
		fields := make(map[string]types.Type, len(te.Fields))
		for _, f := range te.Fields {
			ft, err := convertDefBody(f.Type, paramVars, env, loc)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = ft
		}
		return &types.Record{Fields: fields}, nil

	case *ast.UnionTypeExpr:
		alts := make([]types.Type, len(te.Alternatives))
		for i, a := range te.Alternatives {
			at, err := convertDefBody(a, paramVars, env, loc)
			if err != nil {
				return nil, err
			}
			alts[i] = at
		}
		return &types.Union{Alternatives: alts}, nil

	case *ast.RefTypeExpr:
		inner, err := convertDefBody(te.Inner, paramVars, env, loc)
		if err != nil {
			return nil, err
		}
		return &types.Ref{Inner: inner}, nil

	default:
		return nil, tcerrors.NewUndefinedType(loc, te.String())
	}
}

// resolveNamed looks up a concrete (non-parameter) named type reference
// against already-resolved args, mirroring infer.convertNamed but taking
// pre-resolved type arguments since the caller (convertDefBody) already
// walked them through the parameter-aware converter.
func resolveNamed(name string, args []types.Type, env *types.TypeEnv, loc ast.Location) (types.Type, error) {
	if prim, ok := infer.NamedPrimitive(name); ok && len(args) == 0 {
		return prim, nil
	}
	def, ok := env.LookupType(name)
	if !ok {
		return nil, tcerrors.NewUndefinedType(loc, name)
	}
	switch def.Kind {
	case types.RecordTypeDef, types.ExternalTypeDef:
		if def.Alias == nil {
			return &types.App{Ctor: &types.Const{Name: def.Name}, Args: args}, nil
		}
		sub := types.NewSubstitution()
		for i, pv := range def.ParamVars {
			if i < len(args) {
				sub[pv.ID] = args[i]
			}
		}
		return types.Apply(sub, def.Alias), nil
	default:
		return &types.Variant{Name: def.Name, Args: args}, nil
	}
}
