package types

// Equals reports whether a and b are structurally identical types — same
// shape, same nominal names, same variable ids. It does not unify; two
// distinct but unifiable variables are not Equal.
func Equals(a, b Type) bool {
	switch a := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		return ok && a.ID == bv.ID
	case *Const:
		bc, ok := b.(*Const)
		return ok && a.Name == bc.Name
	case *Fun:
		bf, ok := b.(*Fun)
		return ok && Equals(a.Param, bf.Param) && Equals(a.Result, bf.Result)
	case *App:
		ba, ok := b.(*App)
		if !ok || !Equals(a.Ctor, ba.Ctor) || len(a.Args) != len(ba.Args) {
			return false
		}
		for i := range a.Args {
			if !Equals(a.Args[i], ba.Args[i]) {
				return false
			}
		}
		return true
	case *Record:
		br, ok := b.(*Record)
		if !ok || len(a.Fields) != len(br.Fields) {
			return false
		}
		for name, t := range a.Fields {
			bt, ok := br.Fields[name]
			if !ok || !Equals(t, bt) {
				return false
			}
		}
		return true
	case *Variant:
		bv, ok := b.(*Variant)
		if !ok || a.Name != bv.Name || len(a.Args) != len(bv.Args) {
			return false
		}
		for i := range a.Args {
			if !Equals(a.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *Ref:
		br, ok := b.(*Ref)
		return ok && Equals(a.Inner, br.Inner)
	case *Union:
		bu, ok := b.(*Union)
		if !ok || len(a.Alternatives) != len(bu.Alternatives) {
			return false
		}
		for i := range a.Alternatives {
			if !Equals(a.Alternatives[i], bu.Alternatives[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsGround reports whether t contains no free inference variable.
func IsGround(t Type) bool {
	return len(FreeVars(t)) == 0
}
