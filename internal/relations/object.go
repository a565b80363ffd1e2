package relations

import "surge/internal/types"

// objectSubtype implements spec §4.4's object-object case: every required
// property of t must exist on s with a subtype member type, optional
// properties of t may be absent from s, and a non-readonly property on t
// forbids a readonly property of the same name on s (a mutable view
// cannot be manufactured from a readonly source).
func (r *Relations) objectSubtype(s, t types.TypeID, assume assumption) bool {
	tInfo, ok := r.in.ObjectInfo(t)
	if !ok {
		return false
	}
	for _, tprop := range tInfo.Properties {
		sprop, found := r.in.LookupProperty(s, tprop.Name)
		if !found {
			if tprop.Optional {
				continue
			}
			return false
		}
		if !tprop.Readonly && sprop.Readonly {
			return false
		}
		if tprop.IsMethod || sprop.IsMethod {
			if !r.subtypeWith(sprop.Type, tprop.Type, assume) && !r.subtypeWith(tprop.Type, sprop.Type, assume) {
				return false
			}
			continue
		}
		if !r.subtypeWith(sprop.Type, tprop.Type, assume) {
			return false
		}
	}
	if len(tInfo.Indexes) == 0 {
		return true
	}
	sInfo, _ := r.in.ObjectInfo(s)
	for _, tidx := range tInfo.Indexes {
		matched := false
		for _, sidx := range sInfo.Indexes {
			if sidx.Kind == tidx.Kind && r.subtypeWith(sidx.Value, tidx.Value, assume) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// arrayLikeSubtypeArray implements "tuples are subtypes of arrays of their
// element union", folding a plain array's own element type through the
// same path so Array<->Array falls out of the same code.
func (r *Relations) arrayLikeSubtypeArray(s types.TypeID, sKind types.Kind, t types.TypeID, assume assumption) bool {
	if r.in.IsReadonlyArrayOrTuple(t) == false && r.in.IsReadonlyArrayOrTuple(s) && sKind == types.KindArray {
		return false
	}
	tElem, ok := r.in.ArrayElem(t)
	if !ok {
		return false
	}
	if sKind == types.KindArray {
		sElem, ok := r.in.ArrayElem(s)
		if !ok {
			return false
		}
		return r.subtypeWith(sElem, tElem, assume)
	}
	info, ok := r.in.TupleInfo(s)
	if !ok {
		return false
	}
	memberTypes := make([]types.TypeID, 0, len(info.Elems))
	for _, e := range info.Elems {
		memberTypes = append(memberTypes, e.Type)
	}
	union := r.in.MakeUnion(memberTypes)
	return r.subtypeWith(union, tElem, assume)
}

// tupleSubtype matches two tuples element-wise; a rest element on t absorbs
// any remaining elements of s from that position onward.
func (r *Relations) tupleSubtype(s, t types.TypeID, assume assumption) bool {
	sInfo, ok := r.in.TupleInfo(s)
	if !ok {
		return false
	}
	tInfo, ok := r.in.TupleInfo(t)
	if !ok {
		return false
	}
	si := 0
	for ti, telem := range tInfo.Elems {
		if telem.Rest {
			restType := telem.Type
			for ; si < len(sInfo.Elems); si++ {
				if !r.subtypeWith(sInfo.Elems[si].Type, restType, assume) {
					return false
				}
			}
			return true
		}
		if si >= len(sInfo.Elems) {
			return telem.Optional
		}
		selem := sInfo.Elems[si]
		if !r.subtypeWith(selem.Type, telem.Type, assume) {
			return false
		}
		if selem.Optional && !telem.Optional {
			return false
		}
		si++
		_ = ti
	}
	return si >= len(sInfo.Elems)
}

// callableSubtype implements parameter contravariance / return covariance,
// relaxing parameter checking to bivariant when method is true (object
// members declared with method syntax).
func (r *Relations) callableSubtype(s, t types.TypeID, assume assumption, method bool) bool {
	sInfo, ok := r.in.CallableInfo(s)
	if !ok {
		return false
	}
	tInfo, ok := r.in.CallableInfo(t)
	if !ok {
		return false
	}
	if sInfo.Construct != tInfo.Construct {
		return false
	}
	// Overloaded signatures: s (the source) must satisfy at least one of
	// its own overloads against every overload t requires.
	for _, tsig := range tInfo.Signatures {
		satisfied := false
		for _, ssig := range sInfo.Signatures {
			if r.signatureSubtype(ssig, tsig, assume, method) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

func (r *Relations) signatureSubtype(s, t types.SignatureInfo, assume assumption, method bool) bool {
	if !r.subtypeWith(s.Return, t.Return, assume) {
		return false
	}
	required := len(s.Params)
	for i, p := range s.Params {
		if p.Optional || p.Rest {
			required = i
			break
		}
	}
	if len(t.Params) < required && !hasRest(s.Params) {
		return false
	}
	n := len(s.Params)
	if len(t.Params) < n {
		n = len(t.Params)
	}
	for i := 0; i < n; i++ {
		sp, tp := s.Params[i], t.Params[i]
		if method {
			if !r.subtypeWith(tp.Type, sp.Type, assume) && !r.subtypeWith(sp.Type, tp.Type, assume) {
				return false
			}
			continue
		}
		if !r.subtypeWith(tp.Type, sp.Type, assume) {
			return false
		}
	}
	return true
}

func hasRest(params []types.ParamInfo) bool {
	for _, p := range params {
		if p.Rest {
			return true
		}
	}
	return false
}
