package types

import "github.com/mbcrawfo/corelang-tyck/internal/ast"

// IsSyntacticValue implements the structural predicate of spec.md §4.1: the
// only expression shapes eligible for generalization under the full value
// restriction (spec.md invariant 5, GLOSSARY "Syntactic value").
//
// True for: variables, lambdas, literals, variant constructors whose
// arguments are all syntactic values, records whose field values are all
// syntactic values, TypeAnnotation(v)/Unsafe(v) when v is a value.
//
// False for: applications, matches, lets, record access/update, every
// binary/unary operator (including `ref(...)`, which desugars to a plain
// application and is therefore already excluded by the App case).
func IsSyntacticValue(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Var, *ast.Literal, *ast.Lambda:
		return true
	case *ast.Variant:
		for _, arg := range e.Args {
			if !IsSyntacticValue(arg) {
				return false
			}
		}
		return true
	case *ast.Record:
		for _, f := range e.Fields {
			if !IsSyntacticValue(f.Value) {
				return false
			}
		}
		return true
	case *ast.TypeAnnotation:
		return IsSyntacticValue(e.Inner)
	case *ast.Unsafe:
		return IsSyntacticValue(e.Inner)
	default:
		return false
	}
}
