// Package ast defines the Core AST consumed by the type checker.
//
// Every node here is assumed to already be desugared: multi-arg lambdas are
// curried, `if` has become `match`, list literals are `Cons`/`Nil`,
// pipe/compose are expanded, or-patterns are split. The checker never has to
// undo any of that.
package ast

import "fmt"

// Location is a source position, carried by every expression node.
type Location struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Node is the embeddable base struct that carries a Core AST node's Location.
type Node struct {
	Loc Location
}

func (n Node) Position() Location { return n.Loc }

// Expr is the sum type of Core expressions.
type Expr interface {
	Position() Location
	String() string
	exprNode()
}

// ---- Literals ----

type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
	UnitLit
)

type Literal struct {
	Node
	Kind  LitKind
	Value interface{}
}

func (l *Literal) exprNode() {}
func (l *Literal) String() string {
	return fmt.Sprintf("%v", l.Value)
}

// ---- Variable ----

type Var struct {
	Node
	Name string
}

func (v *Var) exprNode() {}
func (v *Var) String() string { return v.Name }

// ---- Lambda (unary, post-currying) ----

type Lambda struct {
	Node
	Param Pattern
	Body  Expr
}

func (l *Lambda) exprNode() {}
func (l *Lambda) String() string {
	return fmt.Sprintf("(%s) => %s", l.Param, l.Body)
}

// ---- Application (unary) ----

type App struct {
	Node
	Func Expr
	Arg  Expr
}

func (a *App) exprNode() {}
func (a *App) String() string {
	return fmt.Sprintf("%s(%s)", a.Func, a.Arg)
}

// ---- Operators ----

type BinOpKind string

const (
	OpAdd      BinOpKind = "+"
	OpSub      BinOpKind = "-"
	OpMul      BinOpKind = "*"
	OpMod      BinOpKind = "%"
	OpIntDiv   BinOpKind = "div"  // integer division; `Divide` never reaches the core
	OpFloatDiv BinOpKind = "/."   // float division
	OpLt       BinOpKind = "<"
	OpLe       BinOpKind = "<="
	OpGt       BinOpKind = ">"
	OpGe       BinOpKind = ">="
	OpEq       BinOpKind = "=="
	OpNe       BinOpKind = "!="
	OpAnd      BinOpKind = "&&"
	OpOr       BinOpKind = "||"
	OpRefAssign BinOpKind = ":="
)

type BinOp struct {
	Node
	Op    BinOpKind
	Left  Expr
	Right Expr
}

func (b *BinOp) exprNode() {}
func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

type UnOpKind string

const (
	OpNeg   UnOpKind = "-"
	OpNot   UnOpKind = "!not"
	OpDeref UnOpKind = "!"
)

type UnOp struct {
	Node
	Op      UnOpKind
	Operand Expr
}

func (u *UnOp) exprNode() {}
func (u *UnOp) String() string {
	return fmt.Sprintf("%s%s", u.Op, u.Operand)
}

// ---- Let ----

type Let struct {
	Node
	Pattern   Pattern
	Value     Expr
	Body      Expr
	Recursive bool
	Mutable   bool
}

func (l *Let) exprNode() {}
func (l *Let) String() string {
	rec := ""
	if l.Recursive {
		rec = "rec "
	}
	return fmt.Sprintf("let %s%s = %s in %s", rec, l.Pattern, l.Value, l.Body)
}

// LetRecGroup is a mutually recursive `let rec f = .. and g = ..` group.
type LetRecGroup struct {
	Node
	Bindings []RecBinding
	Body     Expr
}

type RecBinding struct {
	Name  string
	Value Expr
}

func (l *LetRecGroup) exprNode() {}
func (l *LetRecGroup) String() string {
	return fmt.Sprintf("let rec (%d bindings) in %s", len(l.Bindings), l.Body)
}

// ---- Match ----

type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Expr
}

type Match struct {
	Node
	Scrutinee Expr
	Arms      []MatchArm
}

func (m *Match) exprNode() {}
func (m *Match) String() string {
	return fmt.Sprintf("match %s { %d arms }", m.Scrutinee, len(m.Arms))
}

// ---- Records ----

type RecordField struct {
	Name  string
	Value Expr
}

type Record struct {
	Node
	Fields []RecordField
}

func (r *Record) exprNode() {}
func (r *Record) String() string { return fmt.Sprintf("{ %d fields }", len(r.Fields)) }

type RecordAccess struct {
	Node
	Record Expr
	Field  string
}

func (r *RecordAccess) exprNode() {}
func (r *RecordAccess) String() string { return fmt.Sprintf("%s.%s", r.Record, r.Field) }

type RecordUpdateField struct {
	Name  string
	Value Expr
}

type RecordUpdate struct {
	Node
	Base    Expr
	Updates []RecordUpdateField
}

func (r *RecordUpdate) exprNode() {}
func (r *RecordUpdate) String() string {
	return fmt.Sprintf("{ %s | %d updates }", r.Base, len(r.Updates))
}

// ---- Variant construction ----

type Variant struct {
	Node
	Ctor string
	Args []Expr
}

func (v *Variant) exprNode() {}
func (v *Variant) String() string { return fmt.Sprintf("%s(%d args)", v.Ctor, len(v.Args)) }

// ---- Tuple ----

type Tuple struct {
	Node
	Elements []Expr
}

func (t *Tuple) exprNode() {}
func (t *Tuple) String() string { return fmt.Sprintf("(%d-tuple)", len(t.Elements)) }

// ---- Unsafe ----

type Unsafe struct {
	Node
	Inner Expr
}

func (u *Unsafe) exprNode() {}
func (u *Unsafe) String() string { return fmt.Sprintf("unsafe(%s)", u.Inner) }

// ---- TypeAnnotation ----

type TypeAnnotation struct {
	Node
	Inner Expr
	Type  TypeExpr
}

func (t *TypeAnnotation) exprNode() {}
func (t *TypeAnnotation) String() string { return fmt.Sprintf("(%s : %s)", t.Inner, t.Type) }
