package narrow

import (
	"surge/internal/source"
	"surge/internal/types"
)

func isArrayLike(in *types.Interner, t types.TypeID) bool {
	k := in.Kind(t)
	return k == types.KindArray || k == types.KindTuple
}

// applyArray implements `Array.isArray(x)`: keep array/tuple members on
// the true branch, drop them on the false branch.
func (n *Narrower) applyArray(declared types.TypeID, sense bool) types.TypeID {
	return n.filter(declared, func(m types.TypeID) bool {
		isArr := isArrayLike(n.in, m)
		if sense {
			return isArr
		}
		return !isArr
	})
}

// applyInProperty implements `"name" in x`: keep members that have the
// named property (object types) or an index signature able to hold it.
func (n *Narrower) applyInProperty(declared types.TypeID, path []source.StringID, sense bool) types.TypeID {
	if len(path) == 0 {
		return declared
	}
	name := path[len(path)-1]
	return n.filter(declared, func(m types.TypeID) bool {
		_, has := n.in.LookupProperty(m, name)
		if !has {
			if info, ok := n.in.ObjectInfo(m); ok && len(info.Indexes) > 0 {
				has = true
			}
		}
		if sense {
			return has
		}
		return !has
	})
}

// applyArrayElementPredicate rebuilds array/tuple members with their
// element type narrowed (e.g. after `.filter(isString)`); non-array
// members pass through unchanged. Tuple rest elements are narrowed the
// same way as their array counterpart; tuple non-rest elements keep their
// own type intersected with element, since each position may already be
// more specific than the predicate's target.
func (n *Narrower) applyArrayElementPredicate(declared types.TypeID, element types.TypeID, sense bool) types.TypeID {
	if !sense {
		return declared
	}
	var kept []types.TypeID
	for _, m := range n.members(declared) {
		switch n.in.Kind(m) {
		case types.KindArray:
			readonly := n.in.IsReadonlyArrayOrTuple(m)
			kept = append(kept, n.in.MakeArray(element, readonly))
		case types.KindTuple:
			info, ok := n.in.TupleInfo(m)
			if !ok {
				kept = append(kept, m)
				continue
			}
			elems := make([]types.TupleElemInfo, len(info.Elems))
			for i, e := range info.Elems {
				elemType := element
				if !e.Rest {
					elemType = n.in.MakeIntersection([]types.TypeID{e.Type, element})
				}
				elems[i] = types.TupleElemInfo{Type: elemType, Optional: e.Optional, Rest: e.Rest}
			}
			kept = append(kept, n.in.RegisterTuple(elems, n.in.IsReadonlyArrayOrTuple(m)))
		default:
			kept = append(kept, m)
		}
	}
	return n.rebuild(kept)
}
