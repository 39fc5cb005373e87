// Package pattern implements pattern checking and matrix-based
// exhaustiveness analysis (spec.md §4.5). Checking unifies a pattern's
// shape against an expected type and collects the bindings it introduces;
// exhaustiveness walks a match's arms as rows of a pattern matrix,
// specializing on head constructors the way a decision-tree compiler would,
// but computing missing witnesses instead of a dispatch tree (teacher:
// internal/dtree/decision_tree.go's matrix/specialization vocabulary,
// internal/types/typechecker_patterns.go's per-kind pattern rules).
package pattern

import (
	"fmt"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// Binder accumulates the substitution produced while checking one or more
// patterns. It has no notion of let-nesting level — pattern-bound names are
// always monomorphic (spec.md §4.5: VarPattern binds x ↦ expected, with no
// generalization step).
type Binder struct {
	Subst types.Substitution
	Fresh func() *types.Var
}

// NewBinder returns a Binder sharing the caller's running substitution and
// fresh-variable source (typically an *infer.InferenceContext's).
func NewBinder(subst types.Substitution, fresh func() *types.Var) *Binder {
	return &Binder{Subst: subst, Fresh: fresh}
}

func (b *Binder) unify(loc ast.Location, expected, actual types.Type, context string) error {
	s, err := types.Unify(expected, actual, b.Subst)
	if err != nil {
		ue, ok := err.(*types.UnifyError)
		if !ok {
			return err
		}
		if ue.Kind == types.InfiniteType {
			return tcerrors.NewInfiniteType(loc, types.PrettyPrintType(ue.Left), types.PrettyPrintType(ue.Right))
		}
		return tcerrors.NewTypeMismatch(loc, types.PrettyPrintType(ue.Left), types.PrettyPrintType(ue.Right), context)
	}
	b.Subst = s
	return nil
}

// literalType maps a pattern literal to its primitive type.
func literalType(kind ast.LitKind) types.Type {
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

// Check walks pat, unifying its shape against expected, and returns the new
// environment extended with every name pat binds (spec.md §4.5
// checkPattern). loc is used for any error this pattern raises.
func (b *Binder) Check(pat ast.Pattern, expected types.Type, env *types.TypeEnv, loc ast.Location) (*types.TypeEnv, error) {
	bound := map[string]bool{}
	return b.check(pat, expected, env, loc, bound)
}

func (b *Binder) check(pat ast.Pattern, expected types.Type, env *types.TypeEnv, loc ast.Location, bound map[string]bool) (*types.TypeEnv, error) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return env, nil

	case *ast.VarPattern:
		if bound[p.Name] {
			return nil, tcerrors.NewDuplicatePatternBinding(loc, p.Name)
		}
		bound[p.Name] = true
		return env.ExtendMono(p.Name, types.Apply(b.Subst, expected)), nil

	case *ast.LiteralPattern:
		if err := b.unify(loc, literalType(p.Kind), expected, "literal pattern"); err != nil {
			return nil, err
		}
		return env, nil

	case *ast.VariantPattern:
		return b.checkVariant(p, expected, env, loc, bound)

	case *ast.RecordPattern:
		return b.checkRecord(p, expected, env, loc, bound)

	case *ast.TuplePattern:
		return b.checkTuple(p, expected, env, loc, bound)

	default:
		return nil, fmt.Errorf("pattern: unhandled pattern kind %T", pat)
	}
}

func (b *Binder) checkVariant(p *ast.VariantPattern, expected types.Type, env *types.TypeEnv, loc ast.Location, bound map[string]bool) (*types.TypeEnv, error) {
	binding, ok := env.LookupValue(p.Ctor)
	if !ok {
		return nil, tcerrors.NewUndefinedConstructor(loc, p.Ctor)
	}
	scheme, ok := binding.(types.ValueScheme)
	if !ok {
		return nil, tcerrors.NewUndefinedConstructor(loc, p.Ctor)
	}

	instantiated := types.Instantiate(scheme.Scheme, b.Fresh)
	paramTypes, result := peelParams(instantiated)
	if len(paramTypes) != len(p.Args) {
		return nil, tcerrors.NewConstructorArity(loc, p.Ctor, len(paramTypes), len(p.Args))
	}

	next := env
	var err error
	for i, argPat := range p.Args {
		pt := types.Apply(b.Subst, paramTypes[i])
		next, err = b.check(argPat, pt, next, loc, bound)
		if err != nil {
			return nil, err
		}
	}

	if err := b.unify(loc, expected, types.Apply(b.Subst, result), "variant pattern"); err != nil {
		return nil, err
	}
	return next, nil
}

// peelParams strips n layers of Fun off t (a constructor's curried type),
// returning each Param in order and the final, non-Fun Result.
func peelParams(t types.Type) ([]types.Type, types.Type) {
	var params []types.Type
	for {
		fn, ok := t.(*types.Fun)
		if !ok {
			return params, t
		}
		params = append(params, fn.Param)
		t = fn.Result
	}
}

func (b *Binder) checkRecord(p *ast.RecordPattern, expected types.Type, env *types.TypeEnv, loc ast.Location, bound map[string]bool) (*types.TypeEnv, error) {
	fieldVars := make(map[string]types.Type, len(p.Fields))
	for _, f := range p.Fields {
		fieldVars[f.Name] = b.Fresh()
	}
	patternType := &types.Record{Fields: fieldVars}
	if err := b.unify(loc, patternType, expected, "record pattern"); err != nil {
		return nil, err
	}

	next := env
	var err error
	for _, f := range p.Fields {
		ft := types.Apply(b.Subst, fieldVars[f.Name])
		next, err = b.check(f.Pattern, ft, next, loc, bound)
		if err != nil {
			return nil, err
		}
	}
	return next, nil
}

// TupleName returns the nominal built-in variant name used to represent an
// n-element tuple type (spec.md §4.5: "TuplePattern(es) — treated as a
// built-in variant of fixed arity").
func TupleName(n int) string { return fmt.Sprintf("Tuple%d", n) }

func (b *Binder) checkTuple(p *ast.TuplePattern, expected types.Type, env *types.TypeEnv, loc ast.Location, bound map[string]bool) (*types.TypeEnv, error) {
	elemVars := make([]types.Type, len(p.Elements))
	for i := range elemVars {
		elemVars[i] = b.Fresh()
	}
	patternType := &types.Variant{Name: TupleName(len(p.Elements)), Args: elemVars}
	if err := b.unify(loc, patternType, expected, "tuple pattern"); err != nil {
		return nil, err
	}

	next := env
	var err error
	for i, elemPat := range p.Elements {
		et := types.Apply(b.Subst, elemVars[i])
		next, err = b.check(elemPat, et, next, loc, bound)
		if err != nil {
			return nil, err
		}
	}
	return next, nil
}
