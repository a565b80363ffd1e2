package narrow

import "surge/internal/types"

// applyInstanceof keeps members that are subtypes of target on the true
// branch and replaces an any or unknown member with target itself, since
// `x instanceof Foo` for x: unknown narrows to Foo; every other member,
// object types not related to target included, is dropped. The false
// branch removes target-compatible members.
func (n *Narrower) applyInstanceof(declared, target types.TypeID, sense bool) types.TypeID {
	b := n.in.Builtins()
	var kept []types.TypeID
	for _, m := range n.members(declared) {
		compatible := n.rel.Subtype(m, target)
		if sense {
			switch {
			case compatible:
				kept = append(kept, m)
			case m == b.Any || m == b.Unknown:
				kept = append(kept, target)
			}
			continue
		}
		if !compatible {
			kept = append(kept, m)
		}
	}
	return n.rebuild(kept)
}

// applyLiteralEquality: the true branch keeps members a value of type
// literal could actually occupy (literal assignable into member); the
// false branch drops members that are themselves exactly that literal.
func (n *Narrower) applyLiteralEquality(declared, literal types.TypeID, sense bool) types.TypeID {
	return n.filter(declared, func(m types.TypeID) bool {
		if sense {
			return n.rel.Assignable(literal, m)
		}
		return m != literal
	})
}

// applyNullishEquality narrows to null|undefined on the true branch
// (intersected with whichever of the two the source actually carries) and
// strips them on the false branch.
func (n *Narrower) applyNullishEquality(declared types.TypeID, sense bool) types.TypeID {
	b := n.in.Builtins()
	return n.filter(declared, func(m types.TypeID) bool {
		isNullish := m == b.Null || m == b.Undefined
		if sense {
			return isNullish
		}
		return !isNullish
	})
}
