package types

// MappedModifier encodes the `+`/`-`/absent modifier prefix on `readonly`
// and `?` inside a mapped type, e.g. `{ readonly [K in keyof T]-?: T[K] }`.
type MappedModifier uint8

const (
	ModifierNone MappedModifier = iota
	ModifierPlus
	ModifierMinus
)

// MappedInfo describes a mapped type `{ [K in Constraint as NameType]: Value }`.
type MappedInfo struct {
	TypeParam    TypeID // KindTypeParameter TypeID bound to K
	Constraint   TypeID // the `keyof T` (or union) K ranges over
	NameType     TypeID // `as` clause remapping, NoTypeID if absent
	Value        TypeID
	ReadonlyMod  MappedModifier
	OptionalMod  MappedModifier
}

// RegisterMapped interns a mapped type.
func (in *Interner) RegisterMapped(info MappedInfo) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindMapped || int(tt.Payload) >= len(in.mapped) {
			continue
		}
		if in.mapped[tt.Payload] == info {
			return id
		}
	}
	in.mapped = append(in.mapped, info)
	return in.internRaw(Type{Kind: KindMapped, Payload: safeSlot(len(in.mapped) - 1)})
}

// MappedInfo returns metadata for a mapped-type TypeID.
func (in *Interner) MappedInfo(id TypeID) (MappedInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindMapped || int(tt.Payload) >= len(in.mapped) {
		return MappedInfo{}, false
	}
	return in.mapped[tt.Payload], true
}

// ConditionalInfo describes `Check extends Extends ? True : False`, with
// InferParams naming the type parameters the Extends clause introduces via
// `infer X` for use inside True.
type ConditionalInfo struct {
	Check       TypeID
	Extends     TypeID
	True        TypeID
	False       TypeID
	InferParams []TypeID
}

// RegisterConditional interns a conditional type.
func (in *Interner) RegisterConditional(info ConditionalInfo) TypeID {
	cloned := info
	cloned.InferParams = cloneTypeArgs(info.InferParams)
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindConditional || int(tt.Payload) >= len(in.conditionals) {
			continue
		}
		c := in.conditionals[tt.Payload]
		if c.Check == cloned.Check && c.Extends == cloned.Extends && c.True == cloned.True &&
			c.False == cloned.False && tidSliceEqual(c.InferParams, cloned.InferParams) {
			return id
		}
	}
	in.conditionals = append(in.conditionals, cloned)
	return in.internRaw(Type{Kind: KindConditional, Payload: safeSlot(len(in.conditionals) - 1)})
}

// ConditionalInfo returns metadata for a conditional-type TypeID.
func (in *Interner) ConditionalInfo(id TypeID) (ConditionalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindConditional || int(tt.Payload) >= len(in.conditionals) {
		return ConditionalInfo{}, false
	}
	return in.conditionals[tt.Payload], true
}
