// Package types implements the type representation, substitution,
// unification, environment, and built-ins of the core (spec.md §4.1–§4.3).
package types

import (
	"fmt"
	"sort"
)

// Type is the tagged sum of every type-level construct (spec.md §3).
type Type interface {
	fmt.Stringer
	typeNode()
}

// Var is an inference variable. ID is globally unique within a run; Level
// records the let-nesting depth where it was born (spec.md invariant 2).
type Var struct {
	ID    uint64
	Level uint32
}

func (v *Var) typeNode() {}
func (v *Var) String() string { return fmt.Sprintf("t%d", v.ID) }

// Const is a nullary type constant.
type Const struct {
	Name string
}

func (c *Const) typeNode() {}
func (c *Const) String() string { return c.Name }

// Predefined constants (spec.md §4.3).
var (
	Int    = &Const{Name: "Int"}
	Float  = &Const{Name: "Float"}
	String = &Const{Name: "String"}
	Bool   = &Const{Name: "Bool"}
	Unit   = &Const{Name: "Unit"}
	Never  = &Const{Name: "Never"}
)

// Fun is a unary function type — all functions are unary after desugaring.
type Fun struct {
	Param  Type
	Result Type
}

func (f *Fun) typeNode() {}
func (f *Fun) String() string { return fmt.Sprintf("%s -> %s", wrapArrow(f.Param), f.Result) }

func wrapArrow(t Type) string {
	if _, ok := t.(*Fun); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

// App is an applied type constructor, e.g. List<Int>.
type App struct {
	Ctor Type
	Args []Type
}

func (a *App) typeNode() {}
func (a *App) String() string {
	s := a.Ctor.String() + "<"
	for i, arg := range a.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ">"
}

// Record is a structural record type.
type Record struct {
	Fields map[string]Type
}

func (r *Record) typeNode() {}
func (r *Record) String() string {
	s := "{"
	first := true
	for _, name := range sortedFieldNames(r.Fields) {
		if !first {
			s += ", "
		}
		first = false
		s += name + ": " + r.Fields[name].String()
	}
	return s + "}"
}

// Variant is a nominal variant type applied to type arguments. Equality
// requires the same Name (spec.md invariant 6).
type Variant struct {
	Name string
	Args []Type
}

func (v *Variant) typeNode() {}
func (v *Variant) String() string {
	if len(v.Args) == 0 {
		return v.Name
	}
	s := v.Name + "<"
	for i, a := range v.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// Ref is a mutable reference cell.
type Ref struct {
	Inner Type
}

func (r *Ref) typeNode() {}
func (r *Ref) String() string { return fmt.Sprintf("Ref<%s>", r.Inner) }

// Union is a closed set of alternatives, used for variant unions.
// Primitive-union narrowing is not supported (spec.md Non-goals).
type Union struct {
	Alternatives []Type
}

func (u *Union) typeNode() {}
func (u *Union) String() string {
	s := ""
	for i, alt := range u.Alternatives {
		if i > 0 {
			s += " | "
		}
		s += alt.String()
	}
	return s
}

func sortedFieldNames(fields map[string]Type) []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
