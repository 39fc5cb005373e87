package pattern

import (
	"strings"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// maxExhaustiveDepth bounds the recursion depth of missingVectors against
// pathologically deep nested variants; maxWitnesses caps how many missing
// cases CheckExhaustive reports, matching spec.md's "formatted with
// placeholder sub-patterns" examples rather than enumerating every case of
// an effectively unbounded witness set.
const (
	maxExhaustiveDepth = 16
	maxWitnesses       = 8
)

// ctorInfo is one head constructor of a scrutinee type's complete set, with
// its argument types already instantiated against that type's own
// arguments.
type ctorInfo struct {
	Name     string
	ArgTypes []types.Type
}

// CheckExhaustive reports the missing head-constructor skeletons (e.g.
// "None", "Cons(_, _)") for a match against scrutineeType, following
// spec.md §4.5's three-step algorithm. Arms with a guard are excluded from
// the coverage matrix: a guard can fail at runtime, so a guarded pattern
// can never be relied on to cover its shape.
func CheckExhaustive(scrutineeType types.Type, arms []ast.MatchArm, env *types.TypeEnv) []string {
	matrix := make([][]ast.Pattern, 0, len(arms))
	for _, arm := range arms {
		if arm.Guard != nil {
			continue
		}
		matrix = append(matrix, []ast.Pattern{arm.Pattern})
	}

	vectors := missingVectors([]types.Type{scrutineeType}, matrix, env, 0)
	out := make([]string, 0, len(vectors))
	for i, v := range vectors {
		if i >= maxWitnesses {
			break
		}
		out = append(out, v[0])
	}
	return out
}

// headKey classifies a pattern's head for matrix specialization: its
// constructor name and sub-pattern columns, or isDefault if the pattern
// covers anything remaining (wildcard, bound variable, or a record — since
// records have exactly one shape, any RecordPattern covers the column
// without a deeper per-field breakdown).
func headKey(pat ast.Pattern) (name string, args []ast.Pattern, isDefault bool) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return "", nil, true
	case *ast.VarPattern:
		return "", nil, true
	case *ast.RecordPattern:
		return "", nil, true
	case *ast.VariantPattern:
		return p.Ctor, p.Args, false
	case *ast.TuplePattern:
		return TupleName(len(p.Elements)), p.Elements, false
	case *ast.LiteralPattern:
		if p.Kind == ast.BoolLit {
			if v, _ := p.Value.(bool); v {
				return "true", nil, false
			}
			return "false", nil, false
		}
		return "", nil, false
	default:
		return "", nil, false
	}
}

// completeCtors returns the full head-constructor set for t0 and whether
// that set is closed (spec.md §4.5 step 1): Bool is {true, false}, a
// variant type is its declared constructors (instantiated against t0's own
// type arguments), a tuple's synthetic "TupleN" variant is its one
// constructor. Everything else (records, numeric/string primitives, refs,
// functions, unresolved variables) has no closed set — only a wildcard
// covers it.
func completeCtors(t0 types.Type, env *types.TypeEnv) ([]ctorInfo, bool) {
	switch t := t0.(type) {
	case *types.Const:
		if t == types.Bool {
			return []ctorInfo{{Name: "true"}, {Name: "false"}}, true
		}
		return nil, false

	case *types.Variant:
		def, ok := env.LookupType(t.Name)
		if !ok {
			if strings.HasPrefix(t.Name, "Tuple") {
				return []ctorInfo{{Name: t.Name, ArgTypes: t.Args}}, true
			}
			return nil, false
		}
		if def.Kind != types.VariantTypeDef {
			return nil, false
		}
		sub := types.NewSubstitution()
		for i, pv := range def.ParamVars {
			if i < len(t.Args) {
				sub[pv.ID] = t.Args[i]
			}
		}
		out := make([]ctorInfo, len(def.Variants))
		for i, vc := range def.Variants {
			argTypes := make([]types.Type, len(vc.Params))
			for j, p := range vc.Params {
				argTypes[j] = types.Apply(sub, p)
			}
			out[i] = ctorInfo{Name: vc.Name, ArgTypes: argTypes}
		}
		return out, true

	default:
		return nil, false
	}
}

// missingVectors is the matrix algorithm proper: for n = len(colTypes), it
// returns every missing pattern vector of width n not covered by matrix,
// specializing one column at a time and reassembling witnesses from the
// recursive result (teacher: dtree.compileMatrix/buildSwitch/specializeRows
// generalized from a single dispatch column to a full witness search).
func missingVectors(colTypes []types.Type, matrix [][]ast.Pattern, env *types.TypeEnv, depth int) [][]string {
	if depth > maxExhaustiveDepth {
		return nil
	}
	if len(colTypes) == 0 {
		if len(matrix) == 0 {
			return [][]string{{}}
		}
		return nil
	}

	t0 := colTypes[0]
	rest := colTypes[1:]
	complete, isClosed := completeCtors(t0, env)

	if !isClosed {
		var defaultMatrix [][]ast.Pattern
		for _, row := range matrix {
			if _, _, isDefault := headKey(row[0]); isDefault {
				defaultMatrix = append(defaultMatrix, row[1:])
			}
		}
		var results [][]string
		for _, sv := range missingVectors(rest, defaultMatrix, env, depth+1) {
			results = append(results, append([]string{"_"}, sv...))
		}
		return results
	}

	var results [][]string
	for _, c := range complete {
		var specialized [][]ast.Pattern
		for _, row := range matrix {
			key, args, isDefault := headKey(row[0])
			switch {
			case isDefault:
				wilds := make([]ast.Pattern, len(c.ArgTypes))
				for i := range wilds {
					wilds[i] = &ast.WildcardPattern{}
				}
				specialized = append(specialized, concatPatterns(wilds, row[1:]))
			case key == c.Name:
				specialized = append(specialized, concatPatterns(args, row[1:]))
			}
		}
		subColTypes := append(append([]types.Type{}, c.ArgTypes...), rest...)
		for _, sv := range missingVectors(subColTypes, specialized, env, depth+1) {
			witnessArgs := sv[:len(c.ArgTypes)]
			restVec := sv[len(c.ArgTypes):]
			results = append(results, append([]string{formatSkeleton(c.Name, witnessArgs)}, restVec...))
		}
	}
	return results
}

func concatPatterns(a, b []ast.Pattern) []ast.Pattern {
	out := make([]ast.Pattern, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func formatSkeleton(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}
