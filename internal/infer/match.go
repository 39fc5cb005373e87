package infer

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/pattern"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// inferMatch implements spec.md §4.4's five-step match rule together with
// §4.5's exhaustiveness check.
func (c *InferenceContext) inferMatch(e *ast.Match, env *types.TypeEnv) (types.Type, error) {
	scrutineeType, err := c.Infer(e.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	result := c.Fresh()

	for _, arm := range e.Arms {
		binder := newPatternBinder(c)
		armEnv, err := binder.check(arm.Pattern, types.Apply(c.Subst, scrutineeType), env, e.Position())
		if err != nil {
			return nil, err
		}

		if arm.Guard != nil {
			guardType, err := c.Infer(arm.Guard, armEnv)
			if err != nil {
				return nil, err
			}
			if err := c.unify(arm.Guard.Position(), types.Bool, guardType, "match guard"); err != nil {
				return nil, tcerrors.NewInvalidGuard(arm.Guard.Position(), types.PrettyPrintType(types.Apply(c.Subst, guardType)))
			}
		}

		bodyType, err := c.Infer(arm.Body, armEnv)
		if err != nil {
			return nil, err
		}
		if err := c.unify(arm.Body.Position(), types.Apply(c.Subst, result), bodyType, "match arm result"); err != nil {
			return nil, err
		}
	}

	missing := pattern.CheckExhaustive(types.Apply(c.Subst, scrutineeType), e.Arms, env)
	if len(missing) > 0 {
		return nil, tcerrors.NewNonExhaustiveMatch(e.Position(), missing)
	}

	return types.Apply(c.Subst, result), nil
}
