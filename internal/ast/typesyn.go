package ast

import "surge/internal/source"

// TypeKind enumerates the kinds of type-syntax nodes.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeRef              // `Name<Args...>`, possibly a qualified name `A.B.C`
	TypeUnion
	TypeIntersection
	TypeArray
	TypeTuple
	TypeFunction
	TypeConstructor
	TypeObjectLit // interface-body-shaped object type literal
	TypeMapped
	TypeConditional
	TypeIndexedAccess
	TypeKeyOf
	TypeTypeOf
	TypeTemplateLiteral
	TypeLiteral // a literal type: "a", 1, true, null
	TypeParen
	TypeThis
	TypeInfer
	TypeReadonlyArray // `readonly T[]`
)

// Type is a type-syntax node. Its concrete data lives in one of the
// TypeExprs side-table arenas, selected by Kind and addressed by Payload.
type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

// TypeRefData is the payload of a TypeRef.
type TypeRefData struct {
	Path     []source.StringID // qualified name, e.g. `A.B.C`
	TypeArgs []TypeID
}

// TypeUnionData is the payload of a TypeUnion (`A | B | C`).
type TypeUnionData struct {
	Members []TypeID
}

// TypeIntersectionData is the payload of a TypeIntersection (`A & B & C`).
type TypeIntersectionData struct {
	Members []TypeID
}

// TypeArrayData is the payload of a TypeArray (`T[]`).
type TypeArrayData struct {
	Elem TypeID
}

// TupleElem is one element of a tuple type, possibly named
// (`[first: string, ...rest: number[]]`), optional, or a rest element.
type TupleElem struct {
	Name     source.StringID // NoStringID if unnamed
	Type     TypeID
	Optional bool
	Rest     bool
}

// TypeTupleData is the payload of a TypeTuple.
type TypeTupleData struct {
	Elems []TupleElem
}

// TypeFunctionData is the payload of a TypeFunction (`(a: A, b: B) => R`)
// and a TypeConstructor (`new (a: A) => R`).
type TypeFunctionData struct {
	TypeParams typeParamRange
	Params     paramRange
	Return     TypeID
}

// TypeMappedData is the payload of a TypeMapped
// (`{ [K in Keys]: T }`, `{ readonly [K in Keys]?: T }`, with optional
// `as` name remapping and +/-readonly/+/-optional modifiers).
type TypeMappedData struct {
	Param           source.StringID // `K`
	Constraint      TypeID          // `Keys`
	NameType        TypeID          // NoTypeID unless an `as` clause remaps the key
	Value           TypeID
	ReadonlyModifier MappedModifier
	OptionalModifier MappedModifier
}

// MappedModifier encodes a mapped-type `+`/`-`/absent modifier prefix.
type MappedModifier uint8

const (
	MappedModifierNone MappedModifier = iota
	MappedModifierAdd
	MappedModifierRemove
)

// TypeConditionalData is the payload of a TypeConditional
// (`Check extends Extends ? True : False`).
type TypeConditionalData struct {
	Check   TypeID
	Extends TypeID
	True    TypeID
	False   TypeID
}

// TypeIndexedAccessData is the payload of a TypeIndexedAccess (`T[K]`).
type TypeIndexedAccessData struct {
	Object TypeID
	Index  TypeID
}

// TypeKeyOfData is the payload of a TypeKeyOf (`keyof T`).
type TypeKeyOfData struct {
	Operand TypeID
}

// TypeTypeOfData is the payload of a TypeTypeOf (`typeof expr`), where expr
// is an entity-name expression (an identifier or dotted member chain).
type TypeTypeOfData struct {
	Operand ExprID
}

// TypeTemplateLiteralData is the payload of a TypeTemplateLiteral
// (`` `prefix-${T}-suffix` ``); shape mirrors TemplateLitData but each hole
// is a type rather than an expression.
type TypeTemplateLiteralData struct {
	Quasis []source.StringID
	Types  []TypeID
}

// TypeLitKind enumerates the kinds of a TypeLiteral.
type TypeLitKind uint8

const (
	TypeLitString TypeLitKind = iota
	TypeLitNumber
	TypeLitBigInt
	TypeLitBool
	TypeLitNull
	TypeLitUndefined
)

// TypeLiteralData is the payload of a TypeLiteral.
type TypeLiteralData struct {
	Kind TypeLitKind
	Raw  source.StringID // raw source text, empty for null/undefined
}

// TypeParenData is the payload of a TypeParen.
type TypeParenData struct {
	Inner TypeID
}

// TypeInferData is the payload of a TypeInfer (`infer R`, optionally
// constrained: `infer R extends string`).
type TypeInferData struct {
	Name       source.StringID
	Constraint TypeID // NoTypeID if unconstrained
}

// TypeExprs manages allocation of type-syntax nodes and their payload data.
// Named TypeExprs (not Types) to avoid colliding with Items.Types, which is
// the backing store for item-level extends/implements TypeID lists.
type TypeExprs struct {
	Arena            *Arena[Type]
	Refs             *Arena[TypeRefData]
	Unions           *Arena[TypeUnionData]
	Intersections    *Arena[TypeIntersectionData]
	Arrays           *Arena[TypeArrayData]
	Tuples           *Arena[TypeTupleData]
	Functions        *Arena[TypeFunctionData]
	Constructors     *Arena[TypeFunctionData]
	ObjectLits       *Arena[InterfaceDeclItem]
	Mapped           *Arena[TypeMappedData]
	Conditionals     *Arena[TypeConditionalData]
	IndexedAccess    *Arena[TypeIndexedAccessData]
	KeyOfs           *Arena[TypeKeyOfData]
	TypeOfs          *Arena[TypeTypeOfData]
	TemplateLiterals *Arena[TypeTemplateLiteralData]
	Literals         *Arena[TypeLiteralData]
	Parens           *Arena[TypeParenData]
	Infers           *Arena[TypeInferData]

	// Shared building blocks, mirroring Items/Exprs.
	TypeParams *Arena[TypeParamDecl]
	Params     *Arena[Param]
}

// NewTypeExprs creates a TypeExprs with per-kind arenas initialized to
// capHint. If capHint is 0, a default capacity of 1<<7 is used.
func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &TypeExprs{
		Arena:            NewArena[Type](capHint),
		Refs:             NewArena[TypeRefData](capHint),
		Unions:           NewArena[TypeUnionData](capHint),
		Intersections:    NewArena[TypeIntersectionData](capHint),
		Arrays:           NewArena[TypeArrayData](capHint),
		Tuples:           NewArena[TypeTupleData](capHint),
		Functions:        NewArena[TypeFunctionData](capHint),
		Constructors:     NewArena[TypeFunctionData](capHint),
		ObjectLits:       NewArena[InterfaceDeclItem](capHint),
		Mapped:           NewArena[TypeMappedData](capHint),
		Conditionals:     NewArena[TypeConditionalData](capHint),
		IndexedAccess:    NewArena[TypeIndexedAccessData](capHint),
		KeyOfs:           NewArena[TypeKeyOfData](capHint),
		TypeOfs:          NewArena[TypeTypeOfData](capHint),
		TemplateLiterals: NewArena[TypeTemplateLiteralData](capHint),
		Literals:         NewArena[TypeLiteralData](capHint),
		Parens:           NewArena[TypeParenData](capHint),
		Infers:           NewArena[TypeInferData](capHint),
		TypeParams:       NewArena[TypeParamDecl](capHint),
		Params:           NewArena[Param](capHint),
	}
}

func (t *TypeExprs) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the type-syntax node with the given ID.
func (t *TypeExprs) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *TypeExprs) allocTypeParams(tps []TypeParamDecl) typeParamRange {
	if len(tps) == 0 {
		return typeParamRange{}
	}
	var start TypeParamID
	for idx, tp := range tps {
		id := TypeParamID(t.TypeParams.Allocate(tp))
		if idx == 0 {
			start = id
		}
	}
	return typeParamRange{start: start, count: uint32(len(tps))}
}

func (t *TypeExprs) allocParams(params []Param) paramRange {
	if len(params) == 0 {
		return paramRange{}
	}
	var start ParamID
	for idx, p := range params {
		id := ParamID(t.Params.Allocate(p))
		if idx == 0 {
			start = id
		}
	}
	return paramRange{start: start, count: uint32(len(params))}
}

// ParamIDs returns the IDs of a contiguous param range allocated via this TypeExprs.
func (t *TypeExprs) ParamIDs(r paramRange) []ParamID {
	if r.count == 0 {
		return nil
	}
	ids := make([]ParamID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = ParamID(uint32(r.start) + j)
	}
	return ids
}

// Param returns the parameter with the given ID, allocated via this TypeExprs.
func (t *TypeExprs) Param(id ParamID) *Param { return t.Params.Get(uint32(id)) }

func (t *TypeExprs) NewRef(span source.Span, path []source.StringID, typeArgs []TypeID) TypeID {
	payload := t.Refs.Allocate(TypeRefData{
		Path:     append([]source.StringID(nil), path...),
		TypeArgs: append([]TypeID(nil), typeArgs...),
	})
	return t.new(TypeRef, span, PayloadID(payload))
}

func (t *TypeExprs) Ref(id TypeID) (*TypeRefData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeRef {
		return nil, false
	}
	return t.Refs.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewUnion(span source.Span, members []TypeID) TypeID {
	payload := t.Unions.Allocate(TypeUnionData{Members: append([]TypeID(nil), members...)})
	return t.new(TypeUnion, span, PayloadID(payload))
}

func (t *TypeExprs) Union(id TypeID) (*TypeUnionData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeUnion {
		return nil, false
	}
	return t.Unions.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewIntersection(span source.Span, members []TypeID) TypeID {
	payload := t.Intersections.Allocate(TypeIntersectionData{Members: append([]TypeID(nil), members...)})
	return t.new(TypeIntersection, span, PayloadID(payload))
}

func (t *TypeExprs) Intersection(id TypeID) (*TypeIntersectionData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeIntersection {
		return nil, false
	}
	return t.Intersections.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewArray(span source.Span, elem TypeID) TypeID {
	payload := t.Arrays.Allocate(TypeArrayData{Elem: elem})
	return t.new(TypeArray, span, PayloadID(payload))
}

func (t *TypeExprs) Array(id TypeID) (*TypeArrayData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(typ.Payload)), true
}

// NewReadonlyArray creates a `readonly T[]` type; it shares TypeArrayData's
// shape since the readonly modifier doesn't affect element structure.
func (t *TypeExprs) NewReadonlyArray(span source.Span, elem TypeID) TypeID {
	payload := t.Arrays.Allocate(TypeArrayData{Elem: elem})
	return t.new(TypeReadonlyArray, span, PayloadID(payload))
}

func (t *TypeExprs) NewTuple(span source.Span, elems []TupleElem) TypeID {
	payload := t.Tuples.Allocate(TypeTupleData{Elems: append([]TupleElem(nil), elems...)})
	return t.new(TypeTuple, span, PayloadID(payload))
}

func (t *TypeExprs) Tuple(id TypeID) (*TypeTupleData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeTuple {
		return nil, false
	}
	return t.Tuples.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) newFunctionLike(kind TypeKind, store *Arena[TypeFunctionData], span source.Span, typeParams []TypeParamDecl, params []Param, ret TypeID) TypeID {
	payload := store.Allocate(TypeFunctionData{
		TypeParams: t.allocTypeParams(typeParams),
		Params:     t.allocParams(params),
		Return:     ret,
	})
	return t.new(kind, span, PayloadID(payload))
}

func (t *TypeExprs) NewFunction(span source.Span, typeParams []TypeParamDecl, params []Param, ret TypeID) TypeID {
	return t.newFunctionLike(TypeFunction, t.Functions, span, typeParams, params, ret)
}

func (t *TypeExprs) Function(id TypeID) (*TypeFunctionData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeFunction {
		return nil, false
	}
	return t.Functions.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewConstructor(span source.Span, typeParams []TypeParamDecl, params []Param, ret TypeID) TypeID {
	return t.newFunctionLike(TypeConstructor, t.Constructors, span, typeParams, params, ret)
}

func (t *TypeExprs) Constructor(id TypeID) (*TypeFunctionData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeConstructor {
		return nil, false
	}
	return t.Constructors.Get(uint32(typ.Payload)), true
}

// NewObjectLit creates a new object-type literal (`{ a: string; f(): void }`),
// reusing InterfaceDeclItem's Extends/Members shape with an empty Name.
func (t *TypeExprs) NewObjectLit(span source.Span, members objectMemberRange) TypeID {
	payload := t.ObjectLits.Allocate(InterfaceDeclItem{Members: members, Span: span})
	return t.new(TypeObjectLit, span, PayloadID(payload))
}

func (t *TypeExprs) ObjectLit(id TypeID) (*InterfaceDeclItem, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeObjectLit {
		return nil, false
	}
	return t.ObjectLits.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewMapped(span source.Span, data TypeMappedData) TypeID {
	payload := t.Mapped.Allocate(data)
	return t.new(TypeMapped, span, PayloadID(payload))
}

func (t *TypeExprs) Mapped(id TypeID) (*TypeMappedData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeMapped {
		return nil, false
	}
	return t.Mapped.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewConditional(span source.Span, check, extends, trueT, falseT TypeID) TypeID {
	payload := t.Conditionals.Allocate(TypeConditionalData{Check: check, Extends: extends, True: trueT, False: falseT})
	return t.new(TypeConditional, span, PayloadID(payload))
}

func (t *TypeExprs) Conditional(id TypeID) (*TypeConditionalData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeConditional {
		return nil, false
	}
	return t.Conditionals.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewIndexedAccess(span source.Span, object, index TypeID) TypeID {
	payload := t.IndexedAccess.Allocate(TypeIndexedAccessData{Object: object, Index: index})
	return t.new(TypeIndexedAccess, span, PayloadID(payload))
}

func (t *TypeExprs) IndexedAccess(id TypeID) (*TypeIndexedAccessData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeIndexedAccess {
		return nil, false
	}
	return t.IndexedAccess.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewKeyOf(span source.Span, operand TypeID) TypeID {
	payload := t.KeyOfs.Allocate(TypeKeyOfData{Operand: operand})
	return t.new(TypeKeyOf, span, PayloadID(payload))
}

func (t *TypeExprs) KeyOf(id TypeID) (*TypeKeyOfData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeKeyOf {
		return nil, false
	}
	return t.KeyOfs.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewTypeOf(span source.Span, operand ExprID) TypeID {
	payload := t.TypeOfs.Allocate(TypeTypeOfData{Operand: operand})
	return t.new(TypeTypeOf, span, PayloadID(payload))
}

func (t *TypeExprs) TypeOf(id TypeID) (*TypeTypeOfData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeTypeOf {
		return nil, false
	}
	return t.TypeOfs.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewTemplateLiteral(span source.Span, quasis []source.StringID, types []TypeID) TypeID {
	payload := t.TemplateLiterals.Allocate(TypeTemplateLiteralData{
		Quasis: append([]source.StringID(nil), quasis...),
		Types:  append([]TypeID(nil), types...),
	})
	return t.new(TypeTemplateLiteral, span, PayloadID(payload))
}

func (t *TypeExprs) TemplateLiteral(id TypeID) (*TypeTemplateLiteralData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeTemplateLiteral {
		return nil, false
	}
	return t.TemplateLiterals.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewLiteral(span source.Span, kind TypeLitKind, raw source.StringID) TypeID {
	payload := t.Literals.Allocate(TypeLiteralData{Kind: kind, Raw: raw})
	return t.new(TypeLiteral, span, PayloadID(payload))
}

func (t *TypeExprs) Literal(id TypeID) (*TypeLiteralData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeLiteral {
		return nil, false
	}
	return t.Literals.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewParen(span source.Span, inner TypeID) TypeID {
	payload := t.Parens.Allocate(TypeParenData{Inner: inner})
	return t.new(TypeParen, span, PayloadID(payload))
}

func (t *TypeExprs) Paren(id TypeID) (*TypeParenData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeParen {
		return nil, false
	}
	return t.Parens.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewThis(span source.Span) TypeID {
	return t.new(TypeThis, span, NoPayloadID)
}

func (t *TypeExprs) NewInfer(span source.Span, name source.StringID, constraint TypeID) TypeID {
	payload := t.Infers.Allocate(TypeInferData{Name: name, Constraint: constraint})
	return t.new(TypeInfer, span, PayloadID(payload))
}

func (t *TypeExprs) Infer(id TypeID) (*TypeInferData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeInfer {
		return nil, false
	}
	return t.Infers.Get(uint32(typ.Payload)), true
}
