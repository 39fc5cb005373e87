package types

// ValueBinding is the sum of the three ways a name can be bound in the
// value namespace (spec.md §3 TypeEnv).
type ValueBinding interface {
	valueBindingNode()
}

// ValueScheme is an ordinary (possibly polymorphic) value binding.
type ValueScheme struct {
	Scheme *TypeScheme
}

func (ValueScheme) valueBindingNode() {}

// ExternalBinding is a foreign declaration with a single arity.
type ExternalBinding struct {
	Scheme *TypeScheme
	JSName string
}

func (ExternalBinding) valueBindingNode() {}

// ExternalOverloadEntry is one arity-tagged member of an overload group.
type ExternalOverloadEntry struct {
	Arity  int
	Scheme *TypeScheme
	JSName string
}

// ExternalOverloadBinding is a name overloaded by arity (spec.md §1:
// "Overload resolver: already groups external overloaded declarations by
// arity before the core runs").
type ExternalOverloadBinding struct {
	Entries []ExternalOverloadEntry
}

func (ExternalOverloadBinding) valueBindingNode() {}

// TypeDefKind distinguishes the three shapes a named type can have.
type TypeDefKind int

const (
	VariantTypeDef TypeDefKind = iota
	RecordTypeDef
	ExternalTypeDef
)

// VariantConstructor describes one constructor of a variant TypeDef, in
// terms of the already-resolved parameter types (with the TypeDef's own
// Params standing in for the type's quantified variables).
type VariantConstructor struct {
	Name   string
	Params []Type // constructor argument types, over TypeDef.Params
}

// TypeDef is a named type: a variant ADT, a record alias, or an opaque/
// aliased external type.
type TypeDef struct {
	Kind     TypeDefKind
	Name     string
	Params   []string // type parameter names, in declaration order
	Variants []VariantConstructor
	Alias    Type // for RecordTypeDef / aliased ExternalTypeDef
	Arity    int  // for an opaque ExternalTypeDef with no Alias

	// ParamVars are the placeholder variables Alias was built with, one per
	// Params entry in the same order. Instantiating a reference to this def
	// substitutes each ParamVars[i] for the caller's i'th type argument.
	ParamVars []*Var
}

// TypeEnv holds value and type bindings. Environments are extended by
// copy-on-write: each Extend* call derives a brand new map from the old one
// (spec.md §3 "no mutable scope chain").
type TypeEnv struct {
	values map[string]ValueBinding
	types  map[string]*TypeDef
}

// EmptyEnv returns an environment with no bindings at all.
func EmptyEnv() *TypeEnv {
	return &TypeEnv{values: map[string]ValueBinding{}, types: map[string]*TypeDef{}}
}

func (env *TypeEnv) clone() *TypeEnv {
	values := make(map[string]ValueBinding, len(env.values))
	for k, v := range env.values {
		values[k] = v
	}
	types := make(map[string]*TypeDef, len(env.types))
	for k, v := range env.types {
		types[k] = v
	}
	return &TypeEnv{values: values, types: types}
}

// ExtendValue returns a new environment with name bound to binding, leaving
// env untouched.
func (env *TypeEnv) ExtendValue(name string, binding ValueBinding) *TypeEnv {
	next := env.clone()
	next.values[name] = binding
	return next
}

// ExtendScheme is shorthand for ExtendValue with a plain ValueScheme.
func (env *TypeEnv) ExtendScheme(name string, scheme *TypeScheme) *TypeEnv {
	return env.ExtendValue(name, ValueScheme{Scheme: scheme})
}

// ExtendMono binds name monomorphically to t — used for lambda parameters,
// pattern bindings, and any non-generalizable binding.
func (env *TypeEnv) ExtendMono(name string, t Type) *TypeEnv {
	return env.ExtendScheme(name, Mono(t))
}

// LookupValue returns the binding for name, if any.
func (env *TypeEnv) LookupValue(name string) (ValueBinding, bool) {
	b, ok := env.values[name]
	return b, ok
}

// Names returns every bound value name, used by "did you mean?" search.
func (env *TypeEnv) Names() []string {
	out := make([]string, 0, len(env.values))
	for n := range env.values {
		out = append(out, n)
	}
	return out
}

// ExtendType returns a new environment with a type name bound to def.
func (env *TypeEnv) ExtendType(name string, def *TypeDef) *TypeEnv {
	next := env.clone()
	next.types[name] = def
	return next
}

// LookupType returns the TypeDef for name, if any.
func (env *TypeEnv) LookupType(name string) (*TypeDef, bool) {
	d, ok := env.types[name]
	return d, ok
}

// FreeVarsAtLevel returns every variable id free (at a level > lvl) across
// every binding currently in scope — used by generalization to exclude
// variables that are free in the surrounding environment (spec.md
// invariant 4).
func (env *TypeEnv) FreeVarsAtLevel(lvl uint32) map[uint64]bool {
	free := make(map[uint64]bool)
	for _, b := range env.values {
		switch b := b.(type) {
		case ValueScheme:
			addFreeFromScheme(b.Scheme, lvl, free)
		case ExternalBinding:
			addFreeFromScheme(b.Scheme, lvl, free)
		case ExternalOverloadBinding:
			for _, e := range b.Entries {
				addFreeFromScheme(e.Scheme, lvl, free)
			}
		}
	}
	return free
}

func addFreeFromScheme(scheme *TypeScheme, lvl uint32, out map[uint64]bool) {
	for id := range FreeVarsAtLevel(scheme.Body, lvl) {
		if !scheme.isQuantified(id) {
			out[id] = true
		}
	}
}
