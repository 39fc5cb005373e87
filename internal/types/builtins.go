package types

// Stdlib selects how much of the built-in function roster GetBuiltinEnv
// seeds (spec.md §6 configuration, §9 Open Question: "exact roster is a
// configuration detail, not part of the algorithm").
type Stdlib int

const (
	StdlibMinimal Stdlib = iota
	StdlibFull
)

// BuiltinVarCeiling is an upper bound on every variable id used while
// constructing the built-in environment. A fresh InferenceContext must start its own
// counter above this so that built-in scheme variables and freshly-minted
// inference variables can never collide.
const BuiltinVarCeiling uint64 = 1 << 20

// builtinIDs mints small, stable ids for the type variables that appear in
// built-in schemes. Schemes quantify over these ids directly; Instantiate
// replaces them with real fresh variables at call sites.
type builtinIDs struct{ next uint64 }

func (b *builtinIDs) id() uint64 {
	b.next++
	return b.next
}

func (b *builtinIDs) tvar() *Var {
	return &Var{ID: b.id(), Level: 0}
}

// GetBuiltinEnv returns the environment seeded into every module (spec.md
// §4.3): primitive constants (already globally available as the Const
// values in this package, not environment entries), the generic List/
// Option/Result variant types and their constructors, panic, ref, and a
// stdlib function roster gated by stdlib.
func GetBuiltinEnv(stdlib Stdlib) *TypeEnv {
	env := EmptyEnv()
	ids := &builtinIDs{}

	env = seedList(env, ids)
	env = seedOption(env, ids)
	env = seedResult(env, ids)

	env = env.ExtendValue("panic", ValueScheme{Scheme: &TypeScheme{
		Quantified: nil,
		Body:       &Fun{Param: String, Result: Never},
	}})

	refA := ids.tvar()
	env = env.ExtendValue("ref", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{refA.ID},
		Body:       &Fun{Param: refA, Result: &Ref{Inner: refA}},
	}})

	env = seedListFunctions(env, ids, stdlib)
	env = seedOptionFunctions(env, ids, stdlib)

	return env
}

func seedList(env *TypeEnv, ids *builtinIDs) *TypeEnv {
	a := ids.tvar()
	listA := &Variant{Name: "List", Args: []Type{a}}
	def := &TypeDef{
		Kind:   VariantTypeDef,
		Name:   "List",
		Params: []string{"a"},
		Variants: []VariantConstructor{
			{Name: "Cons", Params: []Type{a, listA}},
			{Name: "Nil", Params: nil},
		},
		ParamVars: []*Var{a},
	}
	env = env.ExtendType("List", def)

	consA, consList := ids.tvar(), &Variant{Name: "List", Args: nil}
	consList.Args = []Type{consA}
	env = env.ExtendValue("Cons", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{consA.ID},
		Body:       &Fun{Param: consA, Result: &Fun{Param: consList, Result: consList}},
	}})

	nilA := ids.tvar()
	env = env.ExtendValue("Nil", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{nilA.ID},
		Body:       &Variant{Name: "List", Args: []Type{nilA}},
	}})
	return env
}

func seedOption(env *TypeEnv, ids *builtinIDs) *TypeEnv {
	a := ids.tvar()
	optA := &Variant{Name: "Option", Args: []Type{a}}
	def := &TypeDef{
		Kind:   VariantTypeDef,
		Name:   "Option",
		Params: []string{"a"},
		Variants: []VariantConstructor{
			{Name: "Some", Params: []Type{a}},
			{Name: "None", Params: nil},
		},
		ParamVars: []*Var{a},
	}
	env = env.ExtendType("Option", def)

	someA := ids.tvar()
	env = env.ExtendValue("Some", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{someA.ID},
		Body:       &Fun{Param: someA, Result: &Variant{Name: "Option", Args: []Type{someA}}},
	}})

	noneA := ids.tvar()
	env = env.ExtendValue("None", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{noneA.ID},
		Body:       &Variant{Name: "Option", Args: []Type{noneA}},
	}})
	_ = optA
	return env
}

func seedResult(env *TypeEnv, ids *builtinIDs) *TypeEnv {
	a, e := ids.tvar(), ids.tvar()
	def := &TypeDef{
		Kind:   VariantTypeDef,
		Name:   "Result",
		Params: []string{"a", "e"},
		Variants: []VariantConstructor{
			{Name: "Ok", Params: []Type{a}},
			{Name: "Err", Params: []Type{e}},
		},
		ParamVars: []*Var{a, e},
	}
	env = env.ExtendType("Result", def)

	okA, okE := ids.tvar(), ids.tvar()
	env = env.ExtendValue("Ok", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{okA.ID, okE.ID},
		Body:       &Fun{Param: okA, Result: &Variant{Name: "Result", Args: []Type{okA, okE}}},
	}})

	errA, errE := ids.tvar(), ids.tvar()
	env = env.ExtendValue("Err", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{errA.ID, errE.ID},
		Body:       &Fun{Param: errE, Result: &Variant{Name: "Result", Args: []Type{errA, errE}}},
	}})
	return env
}

// seedListFunctions adds map/filter/fold/length on List. `filter`/`fold`
// are `Full`-only, matching the teacher's "Full" stdlib preset
// (`internal/link/env_seed.go`) gating niceties behind a richer preset
// while `Minimal` keeps only what the core language tests need.
func seedListFunctions(env *TypeEnv, ids *builtinIDs, stdlib Stdlib) *TypeEnv {
	a, b := ids.tvar(), ids.tvar()
	listA := &Variant{Name: "List", Args: []Type{a}}
	listB := &Variant{Name: "List", Args: []Type{b}}
	env = env.ExtendValue("map", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{a.ID, b.ID},
		Body: &Fun{Param: &Fun{Param: a, Result: b}, Result: &Fun{
			Param: listA, Result: listB,
		}},
	}})

	a2 := ids.tvar()
	listA2 := &Variant{Name: "List", Args: []Type{a2}}
	env = env.ExtendValue("length", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{a2.ID},
		Body:       &Fun{Param: listA2, Result: Int},
	}})

	if stdlib != StdlibFull {
		return env
	}

	fa := ids.tvar()
	filterList := &Variant{Name: "List", Args: []Type{fa}}
	env = env.ExtendValue("filter", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{fa.ID},
		Body: &Fun{Param: &Fun{Param: fa, Result: Bool}, Result: &Fun{
			Param: filterList, Result: filterList,
		}},
	}})

	foldA, foldAcc := ids.tvar(), ids.tvar()
	foldList := &Variant{Name: "List", Args: []Type{foldA}}
	env = env.ExtendValue("fold", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{foldA.ID, foldAcc.ID},
		Body: &Fun{
			Param: &Fun{Param: foldAcc, Result: &Fun{Param: foldA, Result: foldAcc}},
			Result: &Fun{Param: foldAcc, Result: &Fun{
				Param: foldList, Result: foldAcc,
			}},
		},
	}})
	return env
}

// seedOptionFunctions adds map/flatMap/getOrElse on Option. `flatMap` and
// `getOrElse` are `Full`-only, same gating rationale as List.
func seedOptionFunctions(env *TypeEnv, ids *builtinIDs, stdlib Stdlib) *TypeEnv {
	a, b := ids.tvar(), ids.tvar()
	optA := &Variant{Name: "Option", Args: []Type{a}}
	optB := &Variant{Name: "Option", Args: []Type{b}}
	env = env.ExtendValue("optionMap", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{a.ID, b.ID},
		Body:       &Fun{Param: &Fun{Param: a, Result: b}, Result: &Fun{Param: optA, Result: optB}},
	}})

	if stdlib != StdlibFull {
		return env
	}

	fa, fb := ids.tvar(), ids.tvar()
	flatOptA := &Variant{Name: "Option", Args: []Type{fa}}
	flatOptB := &Variant{Name: "Option", Args: []Type{fb}}
	env = env.ExtendValue("flatMap", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{fa.ID, fb.ID},
		Body: &Fun{Param: &Fun{Param: fa, Result: flatOptB}, Result: &Fun{
			Param: flatOptA, Result: flatOptB,
		}},
	}})

	ga := ids.tvar()
	getOrElseOpt := &Variant{Name: "Option", Args: []Type{ga}}
	env = env.ExtendValue("getOrElse", ValueScheme{Scheme: &TypeScheme{
		Quantified: []uint64{ga.ID},
		Body:       &Fun{Param: getOrElseOpt, Result: &Fun{Param: ga, Result: ga}},
	}})
	return env
}
