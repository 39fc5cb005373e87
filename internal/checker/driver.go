package checker

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/infer"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// DeclResult is one processed top-level declaration: its name and the
// generalized scheme stored for it (spec.md §4.6 step 4).
type DeclResult struct {
	Name   string
	Scheme *types.TypeScheme
}

// Result is everything a successful module check produces (spec.md §6
// Output contract): the final environment, the zonked type of every
// expression node that was visited, and the per-declaration schemes in
// source order.
type Result struct {
	Env         *types.TypeEnv
	Decls       []DeclResult
	Annotations map[ast.Expr]types.Type
}

// CheckProgram runs the full spec.md §4.6 driver over prog: seed builtins,
// register type definitions first, then process every declaration in
// source order, generalizing and storing each one's scheme as it goes.
// The first error aborts the whole module (spec.md §7 "fail-fast at the
// top-level driver").
func CheckProgram(prog *ast.Program, opts Options) (*Result, error) {
	env := types.GetBuiltinEnv(opts.stdlib())
	declaredTypes := make(map[string]bool)
	declaredValues := make(map[string]bool)

	ctx := infer.NewContext()
	ctx.SuggestionThreshold = opts.LevenshteinThreshold

	// Phase 1: stub every type name (record, variant, external) with an
	// empty body so any sibling can refer to it regardless of declaration
	// order (spec.md §4.6 step 2 "so mutual references work").
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.TypeDef:
			if declaredTypes[d.Name] {
				return nil, tcerrors.NewDuplicateDeclaration(d.Position(), d.Name)
			}
			declaredTypes[d.Name] = true
			env = env.ExtendType(d.Name, stubTypeDefFor(d, ctx))

		case *ast.ExternalTypeDecl:
			if declaredTypes[d.Name] {
				return nil, tcerrors.NewDuplicateDeclaration(d.Position(), d.Name)
			}
			declaredTypes[d.Name] = true
			env = env.ExtendType(d.Name, stubExternalTypeDefFor(d, ctx))
		}
	}

	// Phase 2: fill in record/external alias bodies now that every stub is
	// visible, so a forward reference to a type declared later resolves.
	// Resolving record R inlines any other record it names by substituting
	// that other record's *already-resolved* Alias (infer.convertNamed's
	// eager-inlining convention, mirrored here) — so a reference two or
	// more forward-hops away only becomes fully concrete after enough
	// repeated passes, one per hop in the longest forward-reference chain.
	// Re-resolving is idempotent (each pass recomputes Alias from the
	// current env rather than accumulating), so running a fixed
	// len(prog.Decls)+1 passes unconditionally is simpler and safer than
	// trying to detect convergence early, and is always enough passes for
	// any acyclic chain no longer than the module itself. A genuine cycle
	// between two records (each containing the other by value, not through
	// a Ref) simply stabilizes on an opaque placeholder for whichever side
	// resolved last; it could never expand to a finite type anyway.
	for pass := 0; pass < len(prog.Decls)+1; pass++ {
		for _, decl := range prog.Decls {
			var err error
			switch d := decl.(type) {
			case *ast.TypeDef:
				env, err = resolveTypeDefBody(d, env)
			case *ast.ExternalTypeDecl:
				env, err = resolveExternalTypeDefBody(d, env)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	// Phase 3: variant constructors depend on every type def being fully
	// resolved (mutual references), so they're bound only now.
	for _, decl := range prog.Decls {
		if d, ok := decl.(*ast.TypeDef); ok && len(d.Variants) > 0 {
			var err error
			env, err = bindVariantConstructors(d, env)
			if err != nil {
				return nil, err
			}
		}
	}

	var results []DeclResult
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.LetDecl:
			if declaredValues[d.Name] {
				return nil, tcerrors.NewDuplicateDeclaration(d.Position(), d.Name)
			}
			declaredValues[d.Name] = true

			valueEnv := env
			var placeholder *types.Var
			ctx.EnterLet()
			if d.Recursive {
				placeholder = ctx.Fresh()
				valueEnv = valueEnv.ExtendMono(d.Name, placeholder)
			}
			valueType, err := ctx.Infer(d.Value, valueEnv)
			if err != nil {
				return nil, err
			}
			if d.Recursive {
				if err := ctx.Unify(d.Position(), placeholder, valueType, "recursive binding "+d.Name); err != nil {
					return nil, err
				}
				valueType = placeholder
			}
			ctx.ExitLet()
			scheme := types.Generalize(ctx.Zonk(valueType), env, ctx.Level, types.IsSyntacticValue(d.Value))
			if err := enforceDenyAny(opts, d.Position(), d.Name, scheme); err != nil {
				return nil, err
			}
			if err := enforceValueRestriction(d.Position(), d.Name, scheme); err != nil {
				return nil, err
			}
			env = env.ExtendScheme(d.Name, scheme)
			results = append(results, DeclResult{Name: d.Name, Scheme: scheme})

		case *ast.LetRecGroupDecl:
			groupEnv := env
			ctx.EnterLet()
			placeholders := make(map[string]*types.Var, len(d.Bindings))
			for _, b := range d.Bindings {
				if declaredValues[b.Name] {
					return nil, tcerrors.NewDuplicateDeclaration(d.Position(), b.Name)
				}
				declaredValues[b.Name] = true
				placeholders[b.Name] = ctx.Fresh()
				groupEnv = groupEnv.ExtendMono(b.Name, placeholders[b.Name])
			}
			for _, b := range d.Bindings {
				vt, err := ctx.Infer(b.Value, groupEnv)
				if err != nil {
					return nil, err
				}
				if err := ctx.Unify(b.Value.Position(), placeholders[b.Name], vt, "recursive binding "+b.Name); err != nil {
					return nil, err
				}
			}
			ctx.ExitLet()
			for _, b := range d.Bindings {
				scheme := types.Generalize(ctx.Zonk(placeholders[b.Name]), env, ctx.Level, types.IsSyntacticValue(b.Value))
				if err := enforceDenyAny(opts, d.Position(), b.Name, scheme); err != nil {
					return nil, err
				}
				if err := enforceValueRestriction(d.Position(), b.Name, scheme); err != nil {
					return nil, err
				}
				env = env.ExtendScheme(b.Name, scheme)
				results = append(results, DeclResult{Name: b.Name, Scheme: scheme})
			}

		case *ast.ExternalDecl:
			if declaredValues[d.Name] {
				return nil, tcerrors.NewDuplicateDeclaration(d.Position(), d.Name)
			}
			declaredValues[d.Name] = true
			ty, err := infer.ConvertSurfaceType(d.Type, env, d.Position())
			if err != nil {
				return nil, err
			}
			scheme := types.Generalize(ty, env, ctx.Level, true)
			env = env.ExtendValue(d.Name, types.ExternalBinding{Scheme: scheme, JSName: d.JSName})
			results = append(results, DeclResult{Name: d.Name, Scheme: scheme})

		case *ast.ExternalOverloadDecl:
			entries, err := convertOverloadEntries(d, env, ctx)
			if err != nil {
				return nil, err
			}
			if existing, ok := env.LookupValue(d.Name); ok {
				existingOverload, isOverload := existing.(types.ExternalOverloadBinding)
				if !isOverload {
					return nil, tcerrors.NewDuplicateDeclaration(d.Position(), d.Name)
				}
				for _, e := range existingOverload.Entries {
					for _, n := range entries {
						if e.Arity == n.Arity {
							return nil, tcerrors.NewDuplicateDeclaration(d.Position(), d.Name)
						}
					}
				}
				entries = append(existingOverload.Entries, entries...)
			} else {
				declaredValues[d.Name] = true
			}
			env = env.ExtendValue(d.Name, types.ExternalOverloadBinding{Entries: entries})
		}
	}

	annotations := make(map[ast.Expr]types.Type, len(ctx.Annotations))
	for expr, ty := range ctx.Annotations {
		annotations[expr] = ctx.Zonk(ty)
	}

	return &Result{Env: env, Decls: results, Annotations: annotations}, nil
}

// enforceValueRestriction implements the mandatory half of spec.md's
// Universal Law (spec.md §9 "ground, or a quantified variable of its
// enclosing scheme"): a binding the value restriction kept
// monomorphic has an empty Quantified list, so its body must be fully
// ground. A surviving free type variable there can never be resolved once
// the top-level scope closes — unlike enforceDenyAny below, this runs
// unconditionally, independent of DenyAny, because spec.md's concrete
// scenario `let f = () => ref(None) in f()` must fail regardless of
// configuration. Reported as ValueRestriction, the alternative spec.md
// explicitly allows for this case. Called after enforceDenyAny so that,
// when DenyAny is on, the narrower EscapingTypeVar check still gets first
// say over the exact same "nothing was quantified" case it also covers.
func enforceValueRestriction(loc ast.Location, name string, scheme *types.TypeScheme) error {
	if len(scheme.Quantified) > 0 {
		return nil
	}
	if len(types.FreeVars(scheme.Body)) > 0 {
		return tcerrors.NewValueRestriction(loc, name)
	}
	return nil
}

// enforceDenyAny implements spec.md §6's denyAny option: a narrower, opt-in
// check than enforceValueRestriction above. It catches a free variable that
// escapes quantification even when generalization DID quantify something
// else in the same scheme — a partial escape that the mandatory
// ground-if-monomorphic rule doesn't cover, since Quantified is non-empty.
func enforceDenyAny(opts Options, loc ast.Location, name string, scheme *types.TypeScheme) error {
	if !opts.DenyAny {
		return nil
	}
	free := types.FreeVars(scheme.Body)
	for _, q := range scheme.Quantified {
		delete(free, q)
	}
	if len(free) > 0 {
		return tcerrors.NewEscapingTypeVar(loc)
	}
	return nil
}

func convertOverloadEntries(d *ast.ExternalOverloadDecl, env *types.TypeEnv, ctx *infer.InferenceContext) ([]types.ExternalOverloadEntry, error) {
	entries := make([]types.ExternalOverloadEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		ty, err := infer.ConvertSurfaceType(e.Type, env, d.Position())
		if err != nil {
			return nil, err
		}
		scheme := types.Generalize(ty, env, ctx.Level, true)
		entries = append(entries, types.ExternalOverloadEntry{Arity: e.Arity, Scheme: scheme, JSName: e.JSName})
	}
	return entries, nil
}
