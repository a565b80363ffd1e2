package narrow

import "surge/internal/types"

// isFalsySingleton reports whether member is one of the types that can
// only ever hold a falsy value: null, undefined, void, the `false`
// literal, the `0` literal, the `""` literal, or the `0n` literal.
func (n *Narrower) isFalsySingleton(member types.TypeID) bool {
	b := n.in.Builtins()
	if member == b.Null || member == b.Undefined || member == b.Void {
		return true
	}
	switch n.in.Kind(member) {
	case types.KindLiteralBoolean:
		info, _ := n.in.LiteralInfo(member)
		return !info.Bool
	case types.KindLiteralNumber:
		info, _ := n.in.LiteralInfo(member)
		return info.Num == 0
	case types.KindLiteralString:
		info, _ := n.in.LiteralInfo(member)
		text, ok := n.strings.Lookup(info.Str)
		return ok && text == ""
	case types.KindLiteralBigInt:
		info, _ := n.in.LiteralInfo(member)
		text, ok := n.strings.Lookup(info.Big)
		return ok && isZeroDigits(text)
	}
	return false
}

func isZeroDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '0' {
			return false
		}
	}
	return true
}

// applyTruthy implements spec §4.5's Truthy row. Generic `boolean` folds
// to its `true`/`false` literal on whichever branch survives; generic
// string/number/bigint are left unnarrowed on the false branch (per spec,
// since "" and 0 are already split out as their own literal members where
// present) and pass straight through on the true branch since any
// non-falsy-singleton value of those types can be truthy.
func (n *Narrower) applyTruthy(declared types.TypeID, sense bool) types.TypeID {
	b := n.in.Builtins()
	var kept []types.TypeID
	for _, m := range n.members(declared) {
		if m == b.Boolean {
			lit := n.in.RegisterLiteralBoolean(sense)
			kept = append(kept, lit)
			continue
		}
		falsy := n.isFalsySingleton(m)
		if sense {
			if !falsy {
				kept = append(kept, m)
			}
			continue
		}
		if falsy || m == b.String || m == b.Number || m == b.BigInt {
			kept = append(kept, m)
		}
	}
	return n.rebuild(kept)
}
