package infer

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/pattern"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// tupleName is the nominal built-in variant name for an n-element tuple,
// shared with internal/pattern so tuple construction and tuple patterns
// agree on the same synthetic constructor.
func tupleName(n int) string { return pattern.TupleName(n) }

// patternBinder adapts internal/pattern.Binder to share this context's
// running substitution and fresh-variable source, syncing the substitution
// back after every check so later Infer calls see its effects.
type patternBinder struct {
	ctx *InferenceContext
}

func newPatternBinder(ctx *InferenceContext) *patternBinder {
	return &patternBinder{ctx: ctx}
}

func (p *patternBinder) check(pat ast.Pattern, expected types.Type, env *types.TypeEnv, loc ast.Location) (*types.TypeEnv, error) {
	b := pattern.NewBinder(p.ctx.Subst, p.ctx.Fresh)
	next, err := b.Check(pat, expected, env, loc)
	p.ctx.Subst = b.Subst
	if err != nil {
		return nil, err
	}
	return next, nil
}
