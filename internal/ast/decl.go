package ast

import "fmt"

// Decl is the sum type of top-level module declarations.
type Decl interface {
	Position() Location
	String() string
	declNode()
}

// LetDecl is a top-level value binding.
type LetDecl struct {
	Node
	Name      string
	Value     Expr
	Recursive bool
	Exported  bool
}

func (d *LetDecl) declNode() {}
func (d *LetDecl) String() string { return fmt.Sprintf("let %s = %s", d.Name, d.Value) }

// LetRecGroupDecl is a top-level mutually recursive group.
type LetRecGroupDecl struct {
	Node
	Bindings []RecBinding
	Exported map[string]bool
}

func (d *LetRecGroupDecl) declNode() {}
func (d *LetRecGroupDecl) String() string {
	return fmt.Sprintf("let rec (%d bindings)", len(d.Bindings))
}

// ExternalDecl declares a single foreign binding with one arity.
type ExternalDecl struct {
	Node
	Name   string
	Type   TypeExpr
	JSName string
}

func (d *ExternalDecl) declNode() {}
func (d *ExternalDecl) String() string {
	return fmt.Sprintf("external %s : %s = %q", d.Name, d.Type, d.JSName)
}

// ExternalOverloadEntry is one arity-tagged overload member.
type ExternalOverloadEntry struct {
	Arity  int
	Type   TypeExpr
	JSName string
}

// ExternalOverloadDecl declares a name overloaded by arity, already grouped
// by the upstream overload resolver.
type ExternalOverloadDecl struct {
	Node
	Name    string
	Entries []ExternalOverloadEntry
}

func (d *ExternalOverloadDecl) declNode() {}
func (d *ExternalOverloadDecl) String() string {
	return fmt.Sprintf("external %s (%d overloads)", d.Name, len(d.Entries))
}

// ExternalTypeDecl declares a foreign (opaque or aliased) type.
type ExternalTypeDecl struct {
	Node
	Name  string
	Alias TypeExpr // nil for a fully opaque external type
	Arity int       // number of type parameters
}

func (d *ExternalTypeDecl) declNode() {}
func (d *ExternalTypeDecl) String() string { return fmt.Sprintf("external type %s", d.Name) }

// VariantCase is one constructor of a TypeDef.
type VariantCase struct {
	Name string
	Args []TypeExpr
}

// TypeDef declares a named ADT (variant) or record type, optionally
// parameterized.
type TypeDef struct {
	Node
	Name       string
	Params     []string // type parameter names, e.g. ["a"] for List<a>
	Variants   []VariantCase // non-empty for a variant type
	RecordBody *RecordTypeExpr // non-nil for a record type alias
}

func (d *TypeDef) declNode() {}
func (d *TypeDef) String() string { return fmt.Sprintf("type %s", d.Name) }

// Program is a whole module: an ordered sequence of declarations.
type Program struct {
	Decls []Decl
}
