// Package infer implements constraint-based Hindley-Milner inference over
// the Core AST (spec.md §4.4): level-scoped fresh variables, the value
// restriction at generalization time, and operator/let/match/record rules
// dispatched from a single InferenceContext.
package infer

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// InferenceContext threads the running substitution and let-nesting level
// through a single top-to-bottom inference pass. It is not safe for
// concurrent use — spec.md §5 rules out any concurrency inside the core.
type InferenceContext struct {
	nextID uint64
	Level  uint32
	Subst  types.Substitution

	// SuggestionThreshold bounds how far (edit distance) an unresolved name
	// may be from a candidate before it stops being offered as a "did you
	// mean" suggestion. Zero disables suggestions entirely.
	SuggestionThreshold int

	// Annotations records every expression node's inferred type as it is
	// produced. Entries are not necessarily fully zonked yet (later
	// unifications can still refine them) — internal/checker re-zonks every
	// entry against the final substitution once a declaration is done
	// (spec.md §4.6 step 5).
	Annotations map[ast.Expr]types.Type
}

// NewContext returns a context ready to check a module at level 0, with its
// fresh-variable counter seeded above every builtin id so that minted
// variables can never collide with one from the seeded environment.
func NewContext() *InferenceContext {
	return &InferenceContext{
		nextID:              types.BuiltinVarCeiling,
		Level:               0,
		Subst:               types.NewSubstitution(),
		SuggestionThreshold: 2,
		Annotations:         make(map[ast.Expr]types.Type),
	}
}

// Fresh mints a new inference variable at the context's current level.
func (c *InferenceContext) Fresh() *types.Var {
	c.nextID++
	return &types.Var{ID: c.nextID, Level: c.Level}
}

// EnterLet and ExitLet bracket a let-binding's value expression, per
// spec.md §4.4.1: a binding's own type variables are born one level deeper
// than the scope it is generalized into.
func (c *InferenceContext) EnterLet() { c.Level++ }
func (c *InferenceContext) ExitLet()  { c.Level-- }

// Zonk fully resolves every Var in t through the context's current
// substitution — the "read back the final answer" step run once at the end
// of checking a declaration (teacher: typechecker_core.go's zonking pass).
func (c *InferenceContext) Zonk(t types.Type) types.Type {
	return types.Apply(c.Subst, t)
}

// ZonkScheme resolves a scheme's body, leaving its quantified ids alone.
func (c *InferenceContext) ZonkScheme(s *types.TypeScheme) *types.TypeScheme {
	return types.ApplyScheme(c.Subst, s)
}

// Unify exposes the context's unification step to callers outside this
// package (internal/checker uses it to tie a recursive top-level binding's
// placeholder to its inferred value type, the same way inferLet does for a
// nested let).
func (c *InferenceContext) Unify(loc ast.Location, expected, actual types.Type, context string) error {
	return c.unify(loc, expected, actual, context)
}

// unify solves expected ~ actual under the running substitution, converting
// any failure into a located, renderable *tcerrors.Report. By convention
// (spec.md §4.2), `actual` is the side allowed to be a wider record.
func (c *InferenceContext) unify(loc ast.Location, expected, actual types.Type, context string) error {
	s, err := types.Unify(expected, actual, c.Subst)
	if err != nil {
		return c.wrapUnifyError(loc, err, context)
	}
	c.Subst = s
	return nil
}

func (c *InferenceContext) wrapUnifyError(loc ast.Location, err error, context string) error {
	ue, ok := err.(*types.UnifyError)
	if !ok {
		return err
	}
	switch ue.Kind {
	case types.InfiniteType:
		return tcerrors.NewInfiniteType(loc, types.PrettyPrintType(ue.Left), types.PrettyPrintType(ue.Right))
	default:
		return tcerrors.NewTypeMismatch(loc, types.PrettyPrintType(ue.Left), types.PrettyPrintType(ue.Right), context)
	}
}
