package types

import "fmt"

// PrettyPrint renders a scheme with stable, human-readable quantifier
// names (`a`, `b`, `c`, ...) fresh per scheme, never exposing raw variable
// ids (spec.md §4.1).
func PrettyPrint(scheme *TypeScheme) string {
	names := make(map[uint64]string, len(scheme.Quantified))
	for i, id := range scheme.Quantified {
		names[id] = quantifierName(i)
	}
	body := prettyType(scheme.Body, names)
	if len(scheme.Quantified) == 0 {
		return body
	}
	prefix := "forall"
	for i := range scheme.Quantified {
		prefix += " " + quantifierName(i)
	}
	return prefix + ". " + body
}

// PrettyPrintType renders a bare type, naming any free variable it
// encounters "t<id>" since it has no enclosing scheme to name it from.
func PrettyPrintType(t Type) string {
	return prettyType(t, nil)
}

func quantifierName(i int) string {
	// a, b, c, ..., z, a1, b1, ...
	letter := rune('a' + i%26)
	suffix := i / 26
	if suffix == 0 {
		return string(letter)
	}
	return fmt.Sprintf("%c%d", letter, suffix)
}

func prettyType(t Type, names map[uint64]string) string {
	switch t := t.(type) {
	case *Var:
		if name, ok := names[t.ID]; ok {
			return name
		}
		return fmt.Sprintf("t%d", t.ID)
	case *Const:
		return t.Name
	case *Fun:
		param := prettyType(t.Param, names)
		if _, ok := t.Param.(*Fun); ok {
			param = "(" + param + ")"
		}
		return param + " -> " + prettyType(t.Result, names)
	case *App:
		s := prettyType(t.Ctor, names) + "<"
		for i, a := range t.Args {
			if i > 0 {
				s += ", "
			}
			s += prettyType(a, names)
		}
		return s + ">"
	case *Record:
		s := "{"
		first := true
		for _, name := range sortedFieldNames(t.Fields) {
			if !first {
				s += ", "
			}
			first = false
			s += name + ": " + prettyType(t.Fields[name], names)
		}
		return s + "}"
	case *Variant:
		if len(t.Args) == 0 {
			return t.Name
		}
		s := t.Name + "<"
		for i, a := range t.Args {
			if i > 0 {
				s += ", "
			}
			s += prettyType(a, names)
		}
		return s + ">"
	case *Ref:
		return "Ref<" + prettyType(t.Inner, names) + ">"
	case *Union:
		s := ""
		for i, alt := range t.Alternatives {
			if i > 0 {
				s += " | "
			}
			s += prettyType(alt, names)
		}
		return s
	default:
		return t.String()
	}
}
