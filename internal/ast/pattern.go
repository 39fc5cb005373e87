package ast

import (
	"fmt"
	"strings"
)

// Pattern is the sum type of Core patterns used in `let`, lambda params,
// and match arms.
type Pattern interface {
	fmt.Stringer
	patternNode()
}

type WildcardPattern struct{}

func (w *WildcardPattern) patternNode() {}
func (w *WildcardPattern) String() string { return "_" }

type VarPattern struct {
	Name string
}

func (v *VarPattern) patternNode() {}
func (v *VarPattern) String() string { return v.Name }

type LiteralPattern struct {
	Kind  LitKind
	Value interface{}
}

func (l *LiteralPattern) patternNode() {}
func (l *LiteralPattern) String() string { return fmt.Sprintf("%v", l.Value) }

type VariantPattern struct {
	Ctor string
	Args []Pattern
}

func (v *VariantPattern) patternNode() {}
func (v *VariantPattern) String() string {
	if len(v.Args) == 0 {
		return v.Ctor
	}
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", v.Ctor, strings.Join(parts, ", "))
}

type RecordFieldPattern struct {
	Name    string
	Pattern Pattern
}

type RecordPattern struct {
	Fields []RecordFieldPattern
}

func (r *RecordPattern) patternNode() {}
func (r *RecordPattern) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Pattern)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// TuplePattern is treated as a built-in fixed-arity variant ("Tuple2",
// "Tuple3", ...) by the pattern checker.
type TuplePattern struct {
	Elements []Pattern
}

func (t *TuplePattern) patternNode() {}
func (t *TuplePattern) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// CollectNames returns every variable name a pattern binds, used to bind
// each name of a recursive let's pattern to its placeholder.
func CollectNames(p Pattern, out *[]string) {
	switch p := p.(type) {
	case *VarPattern:
		*out = append(*out, p.Name)
	case *VariantPattern:
		for _, a := range p.Args {
			CollectNames(a, out)
		}
	case *RecordPattern:
		for _, f := range p.Fields {
			CollectNames(f.Pattern, out)
		}
	case *TuplePattern:
		for _, e := range p.Elements {
			CollectNames(e, out)
		}
	}
}
