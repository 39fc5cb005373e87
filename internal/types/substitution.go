package types

// Substitution is a finite map from variable id to Type. The empty
// substitution (a nil or empty map) is the identity.
type Substitution map[uint64]Type

// NewSubstitution returns an empty (identity) substitution.
func NewSubstitution() Substitution {
	return make(Substitution)
}

// Apply rewrites every Var{id} in t that is bound in s, following chains
// recursively to a fixed point so the caller always sees a fully-resolved
// outer constructor. It preserves sharing: a subtree untouched by s is
// returned unchanged rather than copied.
func Apply(s Substitution, t Type) Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *Var:
		if bound, ok := s[t.ID]; ok {
			return Apply(s, bound) // follow chains to a fixed point
		}
		return t
	case *Const:
		return t
	case *Fun:
		param := Apply(s, t.Param)
		result := Apply(s, t.Result)
		if param == t.Param && result == t.Result {
			return t
		}
		return &Fun{Param: param, Result: result}
	case *App:
		ctor := Apply(s, t.Ctor)
		args, changed := applyAll(s, t.Args)
		if ctor == t.Ctor && !changed {
			return t
		}
		return &App{Ctor: ctor, Args: args}
	case *Record:
		changed := false
		fields := make(map[string]Type, len(t.Fields))
		for name, ft := range t.Fields {
			nft := Apply(s, ft)
			if nft != ft {
				changed = true
			}
			fields[name] = nft
		}
		if !changed {
			return t
		}
		return &Record{Fields: fields}
	case *Variant:
		args, changed := applyAll(s, t.Args)
		if !changed {
			return t
		}
		return &Variant{Name: t.Name, Args: args}
	case *Ref:
		inner := Apply(s, t.Inner)
		if inner == t.Inner {
			return t
		}
		return &Ref{Inner: inner}
	case *Union:
		alts, changed := applyAll(s, t.Alternatives)
		if !changed {
			return t
		}
		return &Union{Alternatives: alts}
	default:
		return t
	}
}

func applyAll(s Substitution, ts []Type) ([]Type, bool) {
	changed := false
	out := make([]Type, len(ts))
	for i, t := range ts {
		nt := Apply(s, t)
		if nt != t {
			changed = true
		}
		out[i] = nt
	}
	return out, changed
}

// ApplyScheme applies a substitution to a scheme's body, skipping any
// variable the scheme quantifies over (those are bound, not free).
func ApplyScheme(s Substitution, scheme *TypeScheme) *TypeScheme {
	if len(s) == 0 {
		return scheme
	}
	filtered := make(Substitution, len(s))
	for id, t := range s {
		if !scheme.isQuantified(id) {
			filtered[id] = t
		}
	}
	return &TypeScheme{Quantified: scheme.Quantified, Body: Apply(filtered, scheme.Body)}
}

// Compose returns s2 ∘ s1: applies s2 to every image of s1, then unions
// with s2 (s2's bindings win on overlap).
func Compose(s1, s2 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for id, t := range s1 {
		out[id] = Apply(s2, t)
	}
	for id, t := range s2 {
		out[id] = t
	}
	return out
}

// FreeVars returns every inference variable id free in t (after resolving
// through no substitution — callers that hold a live substitution should
// Apply it first).
func FreeVars(t Type) map[uint64]bool {
	free := make(map[uint64]bool)
	collectFreeVars(t, free)
	return free
}

func collectFreeVars(t Type, out map[uint64]bool) {
	switch t := t.(type) {
	case *Var:
		out[t.ID] = true
	case *Fun:
		collectFreeVars(t.Param, out)
		collectFreeVars(t.Result, out)
	case *App:
		collectFreeVars(t.Ctor, out)
		for _, a := range t.Args {
			collectFreeVars(a, out)
		}
	case *Record:
		for _, ft := range t.Fields {
			collectFreeVars(ft, out)
		}
	case *Variant:
		for _, a := range t.Args {
			collectFreeVars(a, out)
		}
	case *Ref:
		collectFreeVars(t.Inner, out)
	case *Union:
		for _, a := range t.Alternatives {
			collectFreeVars(a, out)
		}
	}
}

// FreeVarsAtLevel returns the subset of t's free variables whose Level is
// strictly greater than lvl — the generalization predicate of spec.md
// §4.4.1: only variables born deeper than the enclosing binding may be
// quantified.
func FreeVarsAtLevel(t Type, lvl uint32) map[uint64]bool {
	free := make(map[uint64]bool)
	collectFreeVarsAtLevel(t, lvl, free)
	return free
}

func collectFreeVarsAtLevel(t Type, lvl uint32, out map[uint64]bool) {
	switch t := t.(type) {
	case *Var:
		if t.Level > lvl {
			out[t.ID] = true
		}
	case *Fun:
		collectFreeVarsAtLevel(t.Param, lvl, out)
		collectFreeVarsAtLevel(t.Result, lvl, out)
	case *App:
		collectFreeVarsAtLevel(t.Ctor, lvl, out)
		for _, a := range t.Args {
			collectFreeVarsAtLevel(a, lvl, out)
		}
	case *Record:
		for _, ft := range t.Fields {
			collectFreeVarsAtLevel(ft, lvl, out)
		}
	case *Variant:
		for _, a := range t.Args {
			collectFreeVarsAtLevel(a, lvl, out)
		}
	case *Ref:
		collectFreeVarsAtLevel(t.Inner, lvl, out)
	case *Union:
		for _, a := range t.Alternatives {
			collectFreeVarsAtLevel(a, lvl, out)
		}
	}
}

// Instantiate replaces every quantified variable in scheme with a fresh one
// minted by fresh(), and returns the resulting monomorphic-at-this-scope
// body (spec.md "Instantiation").
func Instantiate(scheme *TypeScheme, fresh func() *Var) Type {
	if len(scheme.Quantified) == 0 {
		return scheme.Body
	}
	sub := make(Substitution, len(scheme.Quantified))
	for _, id := range scheme.Quantified {
		sub[id] = fresh()
	}
	return Apply(sub, scheme.Body)
}
