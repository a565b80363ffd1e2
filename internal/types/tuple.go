package types

// TupleElemInfo describes one position in a tuple type: `[a: string, b?:
// number, ...rest: boolean[]]`.
type TupleElemInfo struct {
	Type     TypeID
	Optional bool
	Rest     bool
}

// TupleInfo stores a tuple type's element list.
type TupleInfo struct {
	Elems []TupleElemInfo
}

// RegisterTuple interns a tuple type from its element list.
func (in *Interner) RegisterTuple(elems []TupleElemInfo, readonly bool) TypeID {
	cloned := make([]TupleElemInfo, len(elems))
	copy(cloned, elems)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
			continue
		}
		readonlyMatch := (tt.Flags&FlagReadonly != 0) == readonly
		if readonlyMatch && tupleElemsEqual(in.tuples[tt.Payload].Elems, cloned) {
			return id
		}
	}
	in.tuples = append(in.tuples, TupleInfo{Elems: cloned})
	var flags Flag
	if readonly {
		flags = FlagReadonly
	}
	return in.internRaw(Type{Kind: KindTuple, Payload: safeSlot(len(in.tuples) - 1), Flags: flags})
}

// TupleInfo returns metadata for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return TupleInfo{}, false
	}
	return in.tuples[tt.Payload], true
}

func tupleElemsEqual(a, b []TupleElemInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
