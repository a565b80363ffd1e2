package types

// MakeIndexedAccess interns `Object[Index]`, e.g. `T["length"]` or
// `T[number]`.
func (in *Interner) MakeIndexedAccess(object, index TypeID) TypeID {
	return in.Intern(Type{Kind: KindIndexedAccess, Elem: object, Index: index})
}

// IndexedAccessParts returns the object and index operands of an
// indexed-access TypeID.
func (in *Interner) IndexedAccessParts(id TypeID) (object, index TypeID, ok bool) {
	tt, found := in.Lookup(id)
	if !found || tt.Kind != KindIndexedAccess {
		return NoTypeID, NoTypeID, false
	}
	return tt.Elem, tt.Index, true
}

// MakeKeyOf interns `keyof T`.
func (in *Interner) MakeKeyOf(operand TypeID) TypeID {
	return in.Intern(Type{Kind: KindKeyOf, Elem: operand})
}

// KeyOfOperand returns the operand of a `keyof` TypeID.
func (in *Interner) KeyOfOperand(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindKeyOf {
		return NoTypeID, false
	}
	return tt.Elem, true
}
