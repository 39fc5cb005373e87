package infer

import (
	"fmt"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// Infer dispatches on expr's concrete kind and returns its inferred type,
// extending c.Subst as it goes (spec.md §4.4's per-form table). Every
// successful result is also recorded into c.Annotations, keyed by the node
// itself, so the driver can walk the final substitution over them once the
// whole declaration has been checked (spec.md §4.6 step 5).
func (c *InferenceContext) Infer(expr ast.Expr, env *types.TypeEnv) (types.Type, error) {
	ty, err := c.inferDispatch(expr, env)
	if err != nil {
		return nil, err
	}
	c.Annotations[expr] = ty
	return ty, nil
}

func (c *InferenceContext) inferDispatch(expr ast.Expr, env *types.TypeEnv) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalConst(e.Kind), nil

	case *ast.Var:
		return c.inferVar(e, env)

	case *ast.Lambda:
		return c.inferLambda(e, env)

	case *ast.App:
		return c.inferApp(e, env)

	case *ast.BinOp:
		return c.inferBinOp(e, env)

	case *ast.UnOp:
		return c.inferUnOp(e, env)

	case *ast.Let:
		return c.inferLet(e, env)

	case *ast.LetRecGroup:
		return c.inferLetRecGroup(e, env)

	case *ast.Match:
		return c.inferMatch(e, env)

	case *ast.Record:
		return c.inferRecord(e, env)

	case *ast.RecordAccess:
		return c.inferRecordAccess(e, env)

	case *ast.RecordUpdate:
		return c.inferRecordUpdate(e, env)

	case *ast.Variant:
		return c.inferVariant(e, env)

	case *ast.Tuple:
		return c.inferTuple(e, env)

	case *ast.Unsafe:
		return c.Infer(e.Inner, env)

	case *ast.TypeAnnotation:
		return c.inferTypeAnnotation(e, env)

	default:
		return nil, fmt.Errorf("infer: unhandled expression kind %T", expr)
	}
}

func literalConst(kind ast.LitKind) types.Type {
	switch kind {
	case ast.IntLit:
		return types.Int
	case ast.FloatLit:
		return types.Float
	case ast.StringLit:
		return types.String
	case ast.BoolLit:
		return types.Bool
	default:
		return types.Unit
	}
}

func (c *InferenceContext) inferVar(e *ast.Var, env *types.TypeEnv) (types.Type, error) {
	binding, ok := env.LookupValue(e.Name)
	if !ok {
		suggestions := suggestNames(e.Name, env.Names(), c.SuggestionThreshold)
		return nil, tcerrors.NewUndefinedVariable(e.Position(), e.Name, suggestions)
	}
	switch b := binding.(type) {
	case types.ValueScheme:
		return types.Instantiate(b.Scheme, c.Fresh), nil
	case types.ExternalBinding:
		return types.Instantiate(b.Scheme, c.Fresh), nil
	case types.ExternalOverloadBinding:
		// A bare reference to an overloaded name, not applied anywhere
		// (inferApp intercepts the applied case before it reaches here).
		available := make([]int, len(b.Entries))
		for i, entry := range b.Entries {
			available[i] = entry.Arity
		}
		return nil, tcerrors.NewOverloadNoMatch(e.Position(), e.Name, 0, available)
	default:
		return nil, fmt.Errorf("infer: unknown value binding kind %T for %q", binding, e.Name)
	}
}

func (c *InferenceContext) inferLambda(e *ast.Lambda, env *types.TypeEnv) (types.Type, error) {
	param := c.Fresh()
	binder := newPatternBinder(c)
	paramEnv, err := binder.check(e.Param, param, env, e.Position())
	if err != nil {
		return nil, err
	}
	bodyType, err := c.Infer(e.Body, paramEnv)
	if err != nil {
		return nil, err
	}
	return &types.Fun{Param: types.Apply(c.Subst, param), Result: bodyType}, nil
}

func (c *InferenceContext) inferApp(e *ast.App, env *types.TypeEnv) (types.Type, error) {
	if head, args, ok := appChain(e); ok {
		if binding, found := env.LookupValue(head.Name); found {
			if ob, isOverload := binding.(types.ExternalOverloadBinding); isOverload {
				return c.inferOverloadCall(head, ob, args, env)
			}
		}
	}

	fnType, err := c.Infer(e.Func, env)
	if err != nil {
		return nil, err
	}
	argType, err := c.Infer(e.Arg, env)
	if err != nil {
		return nil, err
	}
	result := c.Fresh()
	if err := c.unify(e.Position(), &types.Fun{Param: argType, Result: result}, fnType, "function application"); err != nil {
		return nil, err
	}
	return types.Apply(c.Subst, result), nil
}

// appChain peels e's spine of nested unary Apps, returning the innermost
// Func (if it is a bare Var) and the arguments in left-to-right order.
func appChain(e *ast.App) (*ast.Var, []ast.Expr, bool) {
	var args []ast.Expr
	var cur ast.Expr = e
	for {
		app, ok := cur.(*ast.App)
		if !ok {
			break
		}
		args = append([]ast.Expr{app.Arg}, args...)
		cur = app.Func
	}
	v, ok := cur.(*ast.Var)
	return v, args, ok
}

func (c *InferenceContext) inferOverloadCall(head *ast.Var, ob types.ExternalOverloadBinding, args []ast.Expr, env *types.TypeEnv) (types.Type, error) {
	var entry *types.ExternalOverloadEntry
	available := make([]int, len(ob.Entries))
	for i := range ob.Entries {
		available[i] = ob.Entries[i].Arity
		if ob.Entries[i].Arity == len(args) {
			entry = &ob.Entries[i]
		}
	}
	if entry == nil {
		return nil, tcerrors.NewOverloadNoMatch(head.Position(), head.Name, len(args), available)
	}

	fnType := types.Instantiate(entry.Scheme, c.Fresh)
	for _, argExpr := range args {
		argType, err := c.Infer(argExpr, env)
		if err != nil {
			return nil, err
		}
		fn, ok := types.Apply(c.Subst, fnType).(*types.Fun)
		if !ok {
			return nil, tcerrors.NewTypeMismatch(argExpr.Position(), "function", types.PrettyPrintType(fnType), "overload application")
		}
		if err := c.unify(argExpr.Position(), fn.Param, argType, "overload argument"); err != nil {
			return nil, err
		}
		fnType = fn.Result
	}
	return types.Apply(c.Subst, fnType), nil
}

func (c *InferenceContext) inferRecord(e *ast.Record, env *types.TypeEnv) (types.Type, error) {
	fields := make(map[string]types.Type, len(e.Fields))
	for _, f := range e.Fields {
		ft, err := c.Infer(f.Value, env)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = ft
	}
	return &types.Record{Fields: fields}, nil
}

func (c *InferenceContext) inferRecordAccess(e *ast.RecordAccess, env *types.TypeEnv) (types.Type, error) {
	recType, err := c.Infer(e.Record, env)
	if err != nil {
		return nil, err
	}
	field := c.Fresh()
	constraint := &types.Record{Fields: map[string]types.Type{e.Field: field}}
	if err := c.unify(e.Position(), constraint, recType, "record field access"); err != nil {
		if _, ok := types.Apply(c.Subst, recType).(*types.Record); !ok {
			return nil, tcerrors.NewNonRecordAccess(e.Position(), types.PrettyPrintType(types.Apply(c.Subst, recType)))
		}
		return nil, tcerrors.NewMissingField(e.Position(), e.Field, types.PrettyPrintType(types.Apply(c.Subst, recType)))
	}
	return types.Apply(c.Subst, field), nil
}

func (c *InferenceContext) inferRecordUpdate(e *ast.RecordUpdate, env *types.TypeEnv) (types.Type, error) {
	baseType, err := c.Infer(e.Base, env)
	if err != nil {
		return nil, err
	}
	for _, u := range e.Updates {
		valType, err := c.Infer(u.Value, env)
		if err != nil {
			return nil, err
		}
		constraint := &types.Record{Fields: map[string]types.Type{u.Name: valType}}
		if err := c.unify(e.Position(), constraint, types.Apply(c.Subst, baseType), "record update"); err != nil {
			if _, ok := types.Apply(c.Subst, baseType).(*types.Record); !ok {
				return nil, tcerrors.NewNonRecordAccess(e.Position(), types.PrettyPrintType(types.Apply(c.Subst, baseType)))
			}
			return nil, tcerrors.NewMissingField(e.Position(), u.Name, types.PrettyPrintType(types.Apply(c.Subst, baseType)))
		}
	}
	return types.Apply(c.Subst, baseType), nil
}

func (c *InferenceContext) inferVariant(e *ast.Variant, env *types.TypeEnv) (types.Type, error) {
	binding, ok := env.LookupValue(e.Ctor)
	if !ok {
		return nil, tcerrors.NewUndefinedConstructor(e.Position(), e.Ctor)
	}
	scheme, ok := binding.(types.ValueScheme)
	if !ok {
		return nil, tcerrors.NewUndefinedConstructor(e.Position(), e.Ctor)
	}

	instantiated := types.Instantiate(scheme.Scheme, c.Fresh)
	if len(e.Args) == 0 {
		if _, isFun := instantiated.(*types.Fun); isFun {
			return nil, tcerrors.NewConstructorArity(e.Position(), e.Ctor, arity(instantiated), 0)
		}
		return instantiated, nil
	}

	cur := instantiated
	for i, argExpr := range e.Args {
		fn, ok := cur.(*types.Fun)
		if !ok {
			return nil, tcerrors.NewConstructorArity(e.Position(), e.Ctor, i, len(e.Args))
		}
		argType, err := c.Infer(argExpr, env)
		if err != nil {
			return nil, err
		}
		if err := c.unify(argExpr.Position(), fn.Param, argType, "constructor argument"); err != nil {
			return nil, err
		}
		cur = types.Apply(c.Subst, fn.Result)
	}
	if _, isFun := cur.(*types.Fun); isFun {
		return nil, tcerrors.NewConstructorArity(e.Position(), e.Ctor, arity(instantiated), len(e.Args))
	}
	return cur, nil
}

func arity(t types.Type) int {
	n := 0
	for {
		fn, ok := t.(*types.Fun)
		if !ok {
			return n
		}
		n++
		t = fn.Result
	}
}

func (c *InferenceContext) inferTuple(e *ast.Tuple, env *types.TypeEnv) (types.Type, error) {
	elems := make([]types.Type, len(e.Elements))
	for i, el := range e.Elements {
		et, err := c.Infer(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = et
	}
	return &types.Variant{Name: tupleName(len(elems)), Args: elems}, nil
}

func (c *InferenceContext) inferTypeAnnotation(e *ast.TypeAnnotation, env *types.TypeEnv) (types.Type, error) {
	target, err := ConvertSurfaceType(e.Type, env, e.Position())
	if err != nil {
		return nil, err
	}
	innerType, err := c.Infer(e.Inner, env)
	if err != nil {
		return nil, err
	}
	if err := c.unify(e.Position(), target, innerType, "type annotation"); err != nil {
		return nil, err
	}
	return target, nil
}
