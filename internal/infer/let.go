package infer

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// inferLet implements spec.md §4.4.1 exactly: level bump around the value,
// generalization gated by both level and the syntactic value restriction
// (mutable bindings are never values regardless of their RHS shape), then
// pattern-bind the generalized scheme into the body's environment.
func (c *InferenceContext) inferLet(e *ast.Let, env *types.TypeEnv) (types.Type, error) {
	c.EnterLet()
	valueEnv := env

	var placeholder *types.Var
	var placeholderNames []string
	if e.Recursive {
		placeholder = c.Fresh()
		placeholderNames = collectPatternNames(e.Pattern)
		for _, name := range placeholderNames {
			valueEnv = valueEnv.ExtendMono(name, placeholder)
		}
	}

	valueType, err := c.Infer(e.Value, valueEnv)
	if err != nil {
		c.ExitLet()
		return nil, err
	}

	if e.Recursive {
		if err := c.unify(e.Position(), placeholder, valueType, "recursive binding"); err != nil {
			c.ExitLet()
			return nil, err
		}
		valueType = types.Apply(c.Subst, placeholder)
	}
	c.ExitLet()

	isValue := !e.Mutable && types.IsSyntacticValue(e.Value)
	scheme := types.Generalize(types.Apply(c.Subst, valueType), env, c.Level, isValue)

	bodyEnv, err := c.bindSchemeToPattern(e.Pattern, scheme, env, e.Position())
	if err != nil {
		return nil, err
	}
	return c.Infer(e.Body, bodyEnv)
}

// bindSchemeToPattern binds a generalized let-value's scheme against its
// pattern: a single VarPattern gets the scheme itself (so it stays
// polymorphic); any other pattern shape destructures the scheme's body
// monomorphically, since only a whole let-bound name can carry quantifiers.
func (c *InferenceContext) bindSchemeToPattern(pat ast.Pattern, scheme *types.TypeScheme, env *types.TypeEnv, loc ast.Location) (*types.TypeEnv, error) {
	if v, ok := pat.(*ast.VarPattern); ok {
		return env.ExtendScheme(v.Name, scheme), nil
	}
	binder := newPatternBinder(c)
	return binder.check(pat, scheme.Body, env, loc)
}

func collectPatternNames(pat ast.Pattern) []string {
	var names []string
	ast.CollectNames(pat, &names)
	return names
}

// inferLetRecGroup implements spec.md §4.4.2: every binding gets a fresh
// placeholder up front so mutual references typecheck, then each binding is
// generalized independently once the whole group's bodies have been
// inferred.
func (c *InferenceContext) inferLetRecGroup(e *ast.LetRecGroup, env *types.TypeEnv) (types.Type, error) {
	c.EnterLet()
	placeholders := make(map[string]*types.Var, len(e.Bindings))
	groupEnv := env
	for _, b := range e.Bindings {
		placeholders[b.Name] = c.Fresh()
		groupEnv = groupEnv.ExtendMono(b.Name, placeholders[b.Name])
	}

	valueTypes := make(map[string]types.Type, len(e.Bindings))
	isValue := make(map[string]bool, len(e.Bindings))
	for _, b := range e.Bindings {
		vt, err := c.Infer(b.Value, groupEnv)
		if err != nil {
			c.ExitLet()
			return nil, err
		}
		if err := c.unify(e.Position(), placeholders[b.Name], vt, "recursive binding "+b.Name); err != nil {
			c.ExitLet()
			return nil, err
		}
		valueTypes[b.Name] = types.Apply(c.Subst, placeholders[b.Name])
		isValue[b.Name] = types.IsSyntacticValue(b.Value)
	}
	c.ExitLet()

	bodyEnv := env
	for _, b := range e.Bindings {
		scheme := types.Generalize(types.Apply(c.Subst, valueTypes[b.Name]), env, c.Level, isValue[b.Name])
		bodyEnv = bodyEnv.ExtendScheme(b.Name, scheme)
	}
	return c.Infer(e.Body, bodyEnv)
}
