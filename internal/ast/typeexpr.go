package ast

import (
	"fmt"
	"strings"
)

// TypeExpr is surface syntax for a type annotation, external declaration
// signature, or type definition field — not yet resolved to a types.Type.
type TypeExpr interface {
	fmt.Stringer
	typeExprNode()
}

// NamedTypeExpr refers to a type by name, optionally applied to arguments:
// `Int`, `List<Int>`, `Option<a>`.
type NamedTypeExpr struct {
	Name string
	Args []TypeExpr
}

func (n *NamedTypeExpr) typeExprNode() {}
func (n *NamedTypeExpr) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ", "))
}

// FuncTypeExpr is a function arrow: `Param -> Result`.
type FuncTypeExpr struct {
	Param  TypeExpr
	Result TypeExpr
}

func (f *FuncTypeExpr) typeExprNode() {}
func (f *FuncTypeExpr) String() string { return fmt.Sprintf("%s -> %s", f.Param, f.Result) }

// RecordFieldTypeExpr is one field of a RecordTypeExpr.
type RecordFieldTypeExpr struct {
	Name string
	Type TypeExpr
}

// RecordTypeExpr is a structural record type: `{x: Int, y: Int}`.
type RecordTypeExpr struct {
	Fields []RecordFieldTypeExpr
}

func (r *RecordTypeExpr) typeExprNode() {}
func (r *RecordTypeExpr) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// UnionTypeExpr is a closed union of alternatives: `A | B | C`.
type UnionTypeExpr struct {
	Alternatives []TypeExpr
}

func (u *UnionTypeExpr) typeExprNode() {}
func (u *UnionTypeExpr) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// RefTypeExpr is `Ref<Inner>`.
type RefTypeExpr struct {
	Inner TypeExpr
}

func (r *RefTypeExpr) typeExprNode() {}
func (r *RefTypeExpr) String() string { return fmt.Sprintf("Ref<%s>", r.Inner) }

// TypeVarExpr is a lower-case identifier in a surface annotation. Per
// spec.md §4.4.4, these are not supported inside annotations and always
// produce TypeVarNotSupported.
type TypeVarExpr struct {
	Name string
}

func (t *TypeVarExpr) typeExprNode() {}
func (t *TypeVarExpr) String() string { return t.Name }
