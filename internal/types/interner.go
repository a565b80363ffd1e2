package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Interner provides stable TypeIDs by hashing structural descriptors. It
// owns every side table kinds with variable-length payloads index into.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	literals         []LiteralInfo
	unions           []UnionInfo
	intersections    []IntersectionInfo
	objects          []ObjectInfo
	tuples           []TupleInfo
	callables        []CallableInfo
	typeParams       []TypeParamInfo
	applications     []ApplicationInfo
	mapped           []MappedInfo
	conditionals     []ConditionalInfo
	templateLiterals []TemplateLiteralInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	// Reserve slot 0 in every side table so Payload==0 reliably means
	// "no payload" rather than colliding with a legitimately registered entry.
	in.literals = append(in.literals, LiteralInfo{})
	in.unions = append(in.unions, UnionInfo{})
	in.intersections = append(in.intersections, IntersectionInfo{})
	in.objects = append(in.objects, ObjectInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.callables = append(in.callables, CallableInfo{})
	in.typeParams = append(in.typeParams, TypeParamInfo{})
	in.applications = append(in.applications, ApplicationInfo{})
	in.mapped = append(in.mapped, MappedInfo{})
	in.conditionals = append(in.conditionals, ConditionalInfo{})
	in.templateLiterals = append(in.templateLiterals, TemplateLiteralInfo{})

	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Undefined = in.Intern(Type{Kind: KindUndefined})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Number = in.Intern(Type{Kind: KindNumber})
	in.builtins.Boolean = in.Intern(Type{Kind: KindBoolean})
	in.builtins.BigInt = in.Intern(Type{Kind: KindBigInt})
	in.builtins.Symbol = in.Intern(Type{Kind: KindSymbol})
	in.builtins.EmptyObject = in.RegisterObject(nil, nil, nil)
	return in
}

// Builtins returns TypeIDs for intrinsic types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to storage without consulting the dedup map
// first; callers that already hold a unique side-table slot (and so cannot
// collide with a prior identical registration) use this directly.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid; reserved for call sites that hold
// an invariant guaranteeing id was produced by this same interner.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind is a convenience accessor for the type's discriminant.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

func safeSlot(n int) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("types: side table overflow: %w", err))
	}
	return slot
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeID, len(args))
	copy(out, args)
	return out
}
