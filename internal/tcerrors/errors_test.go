package tcerrors

import (
	"testing"

	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/stretchr/testify/assert"
)

func loc() ast.Location {
	return ast.Location{File: "test.core", Line: 3, Column: 7}
}

func TestCode_IsStableAndUniquePerKind(t *testing.T) {
	seen := make(map[string]Kind)
	for kind, code := range codeOf {
		assert.NotEmpty(t, code)
		if existing, ok := seen[code]; ok {
			t.Fatalf("code %s shared by %s and %s", code, existing, kind)
		}
		seen[code] = kind
	}
}

func TestReport_ErrorIncludesKindLocationAndMessage(t *testing.T) {
	r := NewUndefinedType(loc(), "Widget")
	msg := r.Error()
	assert.Contains(t, msg, "UndefinedType")
	assert.Contains(t, msg, "test.core:3:7")
	assert.Contains(t, msg, "undefined type: Widget")
}

func TestReport_ErrorIncludesExpectedAndActualWhenSet(t *testing.T) {
	r := NewTypeMismatch(loc(), "Int", "String", "if branches")
	msg := r.Error()
	assert.Contains(t, msg, "Expected: Int")
	assert.Contains(t, msg, "Actual:   String")
}

func TestReport_ErrorOmitsExpectedActualWhenUnset(t *testing.T) {
	r := NewUndefinedConstructor(loc(), "Foo")
	assert.NotContains(t, r.Error(), "Expected:")
}

func TestNewUndefinedVariable_NoSuggestionsOmitsHint(t *testing.T) {
	r := NewUndefinedVariable(loc(), "xyz", nil)
	assert.Empty(t, r.Hint)
}

func TestNewUndefinedVariable_SuggestionsBecomeHint(t *testing.T) {
	r := NewUndefinedVariable(loc(), "coutn", []string{"count"})
	assert.Equal(t, `did you mean "count"?`, r.Hint)
}

func TestNewUndefinedVariable_MultipleSuggestionsJoinedWithOr(t *testing.T) {
	r := NewUndefinedVariable(loc(), "fo", []string{"foo", "for"})
	assert.Equal(t, `did you mean "foo" or "for"?`, r.Hint)
}

func TestNewConstructorArity_MessageReportsBothCounts(t *testing.T) {
	r := NewConstructorArity(loc(), "Some", 1, 2)
	assert.Contains(t, r.Message, "expects 1 argument(s), got 2")
}

func TestNewNonExhaustiveMatch_CarriesMissingInDataAndHint(t *testing.T) {
	r := NewNonExhaustiveMatch(loc(), []string{"None", "Some(_)"})
	assert.Contains(t, r.Hint, "None")
	assert.Contains(t, r.Hint, "Some(_)")
	assert.ElementsMatch(t, []string{"None", "Some(_)"}, r.Data["missing"])
}

func TestNewOverloadNoMatch_SortsAvailableArities(t *testing.T) {
	r := NewOverloadNoMatch(loc(), "show", 3, []int{2, 1})
	assert.Contains(t, r.Message, "available arities: 1, 2")
}

func TestReportSatisfiesErrorInterface(t *testing.T) {
	var err error = NewEscapingTypeVar(loc())
	assert.Error(t, err)
}
