package narrow

import "surge/internal/types"

func (n *Narrower) applyTypeof(declared types.TypeID, tag TypeofTag, sense bool) types.TypeID {
	return n.filter(declared, func(m types.TypeID) bool {
		matches, known := n.typeofMatches(m, tag)
		if !known {
			// any/unknown/type-parameter-without-constraint: cannot decide
			// without more information, so the member survives both
			// branches rather than being unsoundly dropped.
			return true
		}
		if sense {
			return matches
		}
		return !matches
	})
}

// typeofMatches reports whether member's runtime `typeof` result is tag,
// and whether that could be determined at all.
func (n *Narrower) typeofMatches(member types.TypeID, tag TypeofTag) (matches bool, known bool) {
	b := n.in.Builtins()
	switch member {
	case b.Any, b.Unknown:
		return false, false
	}
	switch n.in.Kind(member) {
	case types.KindString, types.KindLiteralString, types.KindTemplateLiteral:
		return tag == TypeofString, true
	case types.KindNumber, types.KindLiteralNumber:
		return tag == TypeofNumber, true
	case types.KindBoolean, types.KindLiteralBoolean:
		return tag == TypeofBoolean, true
	case types.KindBigInt, types.KindLiteralBigInt:
		return tag == TypeofBigInt, true
	case types.KindSymbol:
		return tag == TypeofSymbol, true
	case types.KindUndefined, types.KindVoid:
		return tag == TypeofUndefined, true
	case types.KindNull:
		// typeof null === "object", a long-standing JS quirk.
		return tag == TypeofObject, true
	case types.KindCallable, types.KindConstructable:
		return tag == TypeofFunction, true
	case types.KindObject, types.KindArray, types.KindTuple:
		return tag == TypeofObject, true
	case types.KindTypeParameter:
		info, ok := n.in.TypeParamInfo(member)
		if !ok || info.Constraint == types.NoTypeID {
			return false, false
		}
		return n.typeofMatches(info.Constraint, tag)
	}
	return false, false
}
