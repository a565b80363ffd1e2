package narrow

import "surge/internal/types"

// applyPredicate handles user-defined type guards (`x is Foo`) and
// assertion functions (`asserts x`). A type-guard narrows to Target on the
// true branch and removes Target-compatible members on the false branch,
// the same shape as Instanceof. An assertion function only has a true
// path (the call throws otherwise), so it degrades to Truthy there and
// passes declared through unchanged on the false branch.
func (n *Narrower) applyPredicate(declared types.TypeID, g Guard, sense bool) types.TypeID {
	if g.Target != types.NoTypeID {
		return n.applyInstanceof(declared, g.Target, sense)
	}
	if g.Asserts {
		if sense {
			return n.applyTruthy(declared, true)
		}
		return declared
	}
	return declared
}
