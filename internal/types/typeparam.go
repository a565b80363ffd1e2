package types

import "surge/internal/source"

// TypeParamInfo describes a generic type parameter's own constraint and
// default, e.g. `<T extends Base = Default>`.
type TypeParamInfo struct {
	Name       source.StringID
	Constraint TypeID // NoTypeID if unconstrained
	Default    TypeID // NoTypeID if absent
}

// RegisterTypeParameter interns a fresh type-parameter type. Unlike other
// kinds, two type parameters with identical Name/Constraint/Default are
// NOT the same type: each declaration site introduces its own distinct
// type variable, so this always allocates a new side-table slot and never
// consults the dedup map. Def identifies the owning declaration (function,
// class, interface, or type alias) for display and merge purposes.
func (in *Interner) RegisterTypeParameter(def DefID, info TypeParamInfo) TypeID {
	in.typeParams = append(in.typeParams, info)
	slot := safeSlot(len(in.typeParams) - 1)
	lenTypes := safeSlot(len(in.types))
	id := TypeID(lenTypes)
	in.types = append(in.types, Type{Kind: KindTypeParameter, Def: def, Payload: slot})
	// Deliberately not added to in.index: each instance is nominally distinct.
	return id
}

// TypeParamInfo returns metadata for a type-parameter TypeID.
func (in *Interner) TypeParamInfo(id TypeID) (TypeParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParameter || int(tt.Payload) >= len(in.typeParams) {
		return TypeParamInfo{}, false
	}
	return in.typeParams[tt.Payload], true
}

// SetTypeParamConstraint back-patches a type parameter's constraint once
// resolved; type parameters are registered before their constraint
// expression (which may reference the parameter itself, or a sibling
// parameter declared later) can be checked.
func (in *Interner) SetTypeParamConstraint(id, constraint TypeID) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParameter || int(tt.Payload) >= len(in.typeParams) {
		return
	}
	in.typeParams[tt.Payload].Constraint = constraint
}
