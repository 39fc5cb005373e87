// Package tcerrors implements the closed error taxonomy of spec.md §7: one
// Kind per failure mode, a stable short Code per Kind (teacher convention:
// PAR###/TC### in internal/errors/codes.go), and both the textual rendering
// mandated by spec.md §6 and a JSON encoding for tool consumers.
package tcerrors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
)

// Kind is the closed set of type-checker error kinds (spec.md §7).
type Kind string

const (
	TypeMismatch        Kind = "TypeMismatch"
	InfiniteType        Kind = "InfiniteType"
	UndefinedVariable   Kind = "UndefinedVariable"
	UndefinedType       Kind = "UndefinedType"
	UndefinedConstructor Kind = "UndefinedConstructor"
	ConstructorArity    Kind = "ConstructorArity"
	MissingField        Kind = "MissingField"
	NonRecordAccess     Kind = "NonRecordAccess"
	NonExhaustiveMatch  Kind = "NonExhaustiveMatch"
	InvalidGuard        Kind = "InvalidGuard"
	ValueRestriction    Kind = "ValueRestriction"
	EscapingTypeVar     Kind = "EscapingTypeVar"
	ArithmeticTypeMismatch Kind = "ArithmeticTypeMismatch"
	OverloadNoMatch     Kind = "OverloadNoMatch"
	OverloadAmbiguous   Kind = "OverloadAmbiguous"
	DuplicatePatternBinding Kind = "DuplicatePatternBinding"
	DuplicateDeclaration Kind = "DuplicateDeclaration"
	TypeVarNotSupported Kind = "TypeVarNotSupported"
)

// codeOf assigns each Kind a stable short code, continuing the teacher's
// TC### numbering convention (internal/errors/codes.go).
var codeOf = map[Kind]string{
	TypeMismatch:            "TY001",
	InfiniteType:            "TY002",
	UndefinedVariable:       "TY003",
	UndefinedType:           "TY004",
	UndefinedConstructor:    "TY005",
	ConstructorArity:        "TY006",
	MissingField:            "TY007",
	NonRecordAccess:         "TY008",
	NonExhaustiveMatch:      "TY009",
	InvalidGuard:            "TY010",
	ValueRestriction:        "TY011",
	EscapingTypeVar:         "TY012",
	ArithmeticTypeMismatch:  "TY013",
	OverloadNoMatch:         "TY014",
	OverloadAmbiguous:       "TY015",
	DuplicatePatternBinding: "TY016",
	DuplicateDeclaration:    "TY017",
	TypeVarNotSupported:     "TY018",
}

// Code returns the stable short code for a Kind.
func Code(k Kind) string { return codeOf[k] }

// Report is the canonical structured error for the checker. It satisfies
// the `error` interface and carries everything spec.md §6's textual form
// needs, plus a Data bag for programmatic consumers (teacher:
// internal/errors/report.go).
type Report struct {
	Kind     Kind
	Location ast.Location
	Message  string
	Expected string // pretty-printed, empty if not applicable
	Actual   string
	Hint     string
	Data     map[string]any
}

func (r *Report) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s\n  %s", r.Kind, r.Location, r.Message)
	if r.Expected != "" || r.Actual != "" {
		fmt.Fprintf(&b, "\n  Expected: %s\n  Actual:   %s", r.Expected, r.Actual)
	}
	if r.Hint != "" {
		fmt.Fprintf(&b, "\n  Hint: %s", r.Hint)
	}
	return b.String()
}

// ---- constructors, one per Kind (teacher: errors.go NewXError style) ----

func NewTypeMismatch(loc ast.Location, expected, actual string, context string) *Report {
	msg := "type mismatch"
	if context != "" {
		msg = context
	}
	return &Report{Kind: TypeMismatch, Location: loc, Message: msg, Expected: expected, Actual: actual}
}

func NewInfiniteType(loc ast.Location, varName, occursIn string) *Report {
	return &Report{
		Kind:     InfiniteType,
		Location: loc,
		Message:  fmt.Sprintf("infinite type: %s occurs in %s", varName, occursIn),
		Hint:     "this would create an infinite type; check for a recursive definition with no syntactic-value base case",
	}
}

func NewUndefinedVariable(loc ast.Location, name string, suggestions []string) *Report {
	r := &Report{Kind: UndefinedVariable, Location: loc, Message: fmt.Sprintf("undefined variable: %s", name)}
	if len(suggestions) > 0 {
		r.Hint = "did you mean " + joinQuoted(suggestions) + "?"
	}
	return r
}

func NewUndefinedType(loc ast.Location, name string) *Report {
	return &Report{Kind: UndefinedType, Location: loc, Message: fmt.Sprintf("undefined type: %s", name)}
}

func NewUndefinedConstructor(loc ast.Location, name string) *Report {
	return &Report{Kind: UndefinedConstructor, Location: loc, Message: fmt.Sprintf("undefined constructor: %s", name)}
}

func NewConstructorArity(loc ast.Location, name string, expected, actual int) *Report {
	return &Report{
		Kind:     ConstructorArity,
		Location: loc,
		Message:  fmt.Sprintf("constructor %s expects %d argument(s), got %d", name, expected, actual),
	}
}

func NewMissingField(loc ast.Location, field, recordType string) *Report {
	return &Report{
		Kind:     MissingField,
		Location: loc,
		Message:  fmt.Sprintf("record has no field %q", field),
		Actual:   recordType,
	}
}

func NewNonRecordAccess(loc ast.Location, actualType string) *Report {
	return &Report{Kind: NonRecordAccess, Location: loc, Message: "field access on a non-record type", Actual: actualType}
}

func NewNonExhaustiveMatch(loc ast.Location, missing []string) *Report {
	return &Report{
		Kind:     NonExhaustiveMatch,
		Location: loc,
		Message:  "non-exhaustive match",
		Hint:     "missing case(s): " + strings.Join(missing, ", "),
		Data:     map[string]any{"missing": missing},
	}
}

func NewInvalidGuard(loc ast.Location, actualType string) *Report {
	return &Report{Kind: InvalidGuard, Location: loc, Message: "guard must have type Bool", Actual: actualType}
}

func NewValueRestriction(loc ast.Location, bindingName string) *Report {
	return &Report{
		Kind:     ValueRestriction,
		Location: loc,
		Message:  fmt.Sprintf("%s is bound to a non-value expression and cannot be generalized", bindingName),
		Hint:     "consider adding a type annotation",
	}
}

func NewEscapingTypeVar(loc ast.Location) *Report {
	return &Report{Kind: EscapingTypeVar, Location: loc, Message: "a type variable escaped to an outer scope and cannot be generalized here"}
}

func NewArithmeticTypeMismatch(loc ast.Location, actualType string) *Report {
	return &Report{
		Kind:     ArithmeticTypeMismatch,
		Location: loc,
		Message:  "arithmetic operands must resolve to the same numeric type",
		Actual:   actualType,
		Hint:     "mixed Int/Float requires an explicit conversion",
	}
}

func NewOverloadNoMatch(loc ast.Location, name string, arity int, available []int) *Report {
	sort.Ints(available)
	parts := make([]string, len(available))
	for i, a := range available {
		parts[i] = fmt.Sprintf("%d", a)
	}
	return &Report{
		Kind:     OverloadNoMatch,
		Location: loc,
		Message:  fmt.Sprintf("no overload of %s accepts %d argument(s) (available arities: %s)", name, arity, strings.Join(parts, ", ")),
	}
}

func NewOverloadAmbiguous(loc ast.Location, name string) *Report {
	return &Report{Kind: OverloadAmbiguous, Location: loc, Message: fmt.Sprintf("ambiguous overload resolution for %s", name)}
}

func NewDuplicatePatternBinding(loc ast.Location, name string) *Report {
	return &Report{Kind: DuplicatePatternBinding, Location: loc, Message: fmt.Sprintf("%s is bound more than once in this pattern", name)}
}

func NewDuplicateDeclaration(loc ast.Location, name string) *Report {
	return &Report{Kind: DuplicateDeclaration, Location: loc, Message: fmt.Sprintf("%s is already declared", name)}
}

func NewTypeVarNotSupported(loc ast.Location, name string) *Report {
	return &Report{
		Kind:     TypeVarNotSupported,
		Location: loc,
		Message:  fmt.Sprintf("generic type variable %q is not supported in a surface type annotation", name),
	}
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, " or ")
}
