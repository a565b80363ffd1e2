package ast

import (
	"surge/internal/source"
)

// ItemKind enumerates the kinds of top-level (or module-body) declarations.
type ItemKind uint8

const (
	// ItemVarDecl represents a `var`/`let`/`const` declaration.
	ItemVarDecl ItemKind = iota
	// ItemFunctionDecl represents a `function` declaration.
	ItemFunctionDecl
	// ItemClassDecl represents a `class` declaration.
	ItemClassDecl
	// ItemInterfaceDecl represents an `interface` declaration.
	ItemInterfaceDecl
	// ItemTypeAliasDecl represents a `type` alias declaration.
	ItemTypeAliasDecl
	// ItemEnumDecl represents an `enum` declaration.
	ItemEnumDecl
	// ItemModuleDecl represents a `namespace`/`module` declaration.
	ItemModuleDecl
	// ItemImportDecl represents an `import` declaration.
	ItemImportDecl
	// ItemExportDecl represents an `export` declaration.
	ItemExportDecl
)

// ItemModifier is a bitset of declaration-level modifiers.
type ItemModifier uint8

const (
	// ItemExported marks a declaration reachable via `export`.
	ItemExported ItemModifier = 1 << iota
	// ItemDefaultExport marks the `export default` declaration of a file.
	ItemDefaultExport
	// ItemAmbient marks a `declare` declaration: type-only, erased at emit.
	ItemAmbient
	// ItemAbstractClass marks an `abstract class` declaration.
	ItemAbstractClass
	// ItemConstEnum marks a `const enum` declaration.
	ItemConstEnum
)

// Item is a top-level or module-body declaration. Its concrete data lives
// in one of the Items side-table arenas, selected by Kind and addressed by
// Payload.
type Item struct {
	Kind      ItemKind
	Modifiers ItemModifier
	Span      source.Span
	Payload   PayloadID
}

// VarDeclKind distinguishes `var`, `let` and `const`.
type VarDeclKind uint8

const (
	VarDeclVar VarDeclKind = iota
	VarDeclLet
	VarDeclConst
)

// VarDeclItem is the payload of an ItemVarDecl. TypeScript allows binding
// several declarators under one keyword (`let a = 1, b = 2`); each
// declarator is a Param-shaped binding reusing the Type/Default fields
// (Rest/Optional are unused here).
type VarDeclItem struct {
	Keyword     VarDeclKind
	Declarators paramRange
	Span        source.Span
}

// ClassMemberKind enumerates the kinds of a class body member.
type ClassMemberKind uint8

const (
	ClassMemberProperty ClassMemberKind = iota
	ClassMemberMethod
	ClassMemberConstructor
	ClassMemberGetter
	ClassMemberSetter
	ClassMemberIndexSignature
	ClassMemberStaticBlock
)

// ClassMember is one member of a class body.
type ClassMember struct {
	Kind        ClassMemberKind
	Name        source.StringID // NoStringID for a constructor/index/static block
	TypeParams  typeParamRange
	Params      paramRange
	Type        TypeID // property type, or method return type
	Initializer ExprID // property initializer, or NoExprID
	Body        StmtID // method/constructor/getter/setter/static-block body
	Modifiers   FnModifier
	Span        source.Span
}

type classMemberRange struct {
	start ClassMemberID
	count uint32
}

func (i *Items) allocClassMembers(members []ClassMember) classMemberRange {
	if len(members) == 0 {
		return classMemberRange{}
	}
	var start ClassMemberID
	for idx, m := range members {
		id := ClassMemberID(i.ClassMembers.Allocate(m))
		if idx == 0 {
			start = id
		}
	}
	return classMemberRange{start: start, count: uint32(len(members))}
}

// ClassMemberIDs returns the IDs of a contiguous class-member range.
func (i *Items) ClassMemberIDs(r classMemberRange) []ClassMemberID {
	if r.count == 0 {
		return nil
	}
	ids := make([]ClassMemberID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = ClassMemberID(uint32(r.start) + j)
	}
	return ids
}

// ClassMember returns the class member with the given ID.
func (i *Items) ClassMember(id ClassMemberID) *ClassMember { return i.ClassMembers.Get(uint32(id)) }

// ClassDeclItem is the payload of an ItemClassDecl.
type ClassDeclItem struct {
	Name       source.StringID
	TypeParams typeParamRange
	Extends    TypeID // NoTypeID if no `extends` clause
	Implements typeRange
	Members    classMemberRange
	Span       source.Span
}

func (i *Items) Class(id ItemID) (*ClassDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemClassDecl {
		return nil, false
	}
	return i.Classes.Get(uint32(item.Payload)), true
}

// NewClass creates a new class-declaration item.
func (i *Items) NewClass(
	name source.StringID,
	typeParams []TypeParamDecl,
	extends TypeID,
	implements []TypeID,
	members []ClassMember,
	modifiers ItemModifier,
	span source.Span,
) ItemID {
	payload := i.Classes.Allocate(ClassDeclItem{
		Name:       name,
		TypeParams: i.allocTypeParams(typeParams),
		Extends:    extends,
		Implements: i.allocTypes(implements),
		Members:    i.allocClassMembers(members),
		Span:       span,
	})
	it := ItemID(i.Arena.Allocate(Item{Kind: ItemClassDecl, Modifiers: modifiers, Span: span, Payload: PayloadID(payload)}))
	return it
}

// ObjectMemberKind enumerates the kinds of a member in an interface body or
// object type literal.
type ObjectMemberKind uint8

const (
	ObjectMemberProperty ObjectMemberKind = iota
	ObjectMemberMethod
	ObjectMemberIndexSignature
	ObjectMemberCallSignature
	ObjectMemberConstructSignature
	ObjectMemberGetter
	ObjectMemberSetter
)

// ObjectMember is one member of an interface body or object-type literal.
type ObjectMember struct {
	Kind       ObjectMemberKind
	Name       source.StringID // NoStringID for call/construct signatures
	TypeParams typeParamRange
	Params     paramRange // method/call/construct/index-signature parameters
	Type       TypeID     // property type or method/signature return type
	Optional   bool
	Readonly   bool
	Span       source.Span
}

type objectMemberRange struct {
	start ObjectMemberID
	count uint32
}

func (i *Items) allocObjectMembers(members []ObjectMember) objectMemberRange {
	if len(members) == 0 {
		return objectMemberRange{}
	}
	var start ObjectMemberID
	for idx, m := range members {
		id := ObjectMemberID(i.InterfaceMembers.Allocate(m))
		if idx == 0 {
			start = id
		}
	}
	return objectMemberRange{start: start, count: uint32(len(members))}
}

// ObjectMemberIDs returns the IDs of a contiguous interface-member range.
func (i *Items) ObjectMemberIDs(r objectMemberRange) []ObjectMemberID {
	if r.count == 0 {
		return nil
	}
	ids := make([]ObjectMemberID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = ObjectMemberID(uint32(r.start) + j)
	}
	return ids
}

// InterfaceMember returns the interface-body member with the given ID.
func (i *Items) InterfaceMember(id ObjectMemberID) *ObjectMember {
	return i.InterfaceMembers.Get(uint32(id))
}

// ObjectMember is an alias for InterfaceMember: object-type-literal members
// (TypeObjectLit) and interface-body members share the same backing arena.
func (i *Items) ObjectMember(id ObjectMemberID) *ObjectMember {
	return i.InterfaceMember(id)
}

// InterfaceDeclItem is the payload of an ItemInterfaceDecl.
type InterfaceDeclItem struct {
	Name       source.StringID
	TypeParams typeParamRange
	Extends    typeRange
	Members    objectMemberRange
	Span       source.Span
}

func (i *Items) Interface(id ItemID) (*InterfaceDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemInterfaceDecl {
		return nil, false
	}
	return i.Interfaces.Get(uint32(item.Payload)), true
}

// NewInterface creates a new interface-declaration item.
func (i *Items) NewInterface(
	name source.StringID,
	typeParams []TypeParamDecl,
	extends []TypeID,
	members []ObjectMember,
	modifiers ItemModifier,
	span source.Span,
) ItemID {
	payload := i.Interfaces.Allocate(InterfaceDeclItem{
		Name:       name,
		TypeParams: i.allocTypeParams(typeParams),
		Extends:    i.allocTypes(extends),
		Members:    i.allocObjectMembers(members),
		Span:       span,
	})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemInterfaceDecl, Modifiers: modifiers, Span: span, Payload: PayloadID(payload)}))
}

// TypeAliasDeclItem is the payload of an ItemTypeAliasDecl.
type TypeAliasDeclItem struct {
	Name       source.StringID
	TypeParams typeParamRange
	Target     TypeID
	Span       source.Span
}

func (i *Items) TypeAliasDecl(id ItemID) (*TypeAliasDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemTypeAliasDecl {
		return nil, false
	}
	return i.TypeAliases.Get(uint32(item.Payload)), true
}

// NewTypeAliasDecl creates a new type-alias item.
func (i *Items) NewTypeAliasDecl(
	name source.StringID,
	typeParams []TypeParamDecl,
	target TypeID,
	modifiers ItemModifier,
	span source.Span,
) ItemID {
	payload := i.TypeAliases.Allocate(TypeAliasDeclItem{
		Name:       name,
		TypeParams: i.allocTypeParams(typeParams),
		Target:     target,
		Span:       span,
	})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemTypeAliasDecl, Modifiers: modifiers, Span: span, Payload: PayloadID(payload)}))
}

// EnumMember is one member of an enum declaration.
type EnumMember struct {
	Name source.StringID
	Init ExprID // NoExprID if the member has no initializer
	Span source.Span
}

type enumMemberRange struct {
	start EnumMemberID
	count uint32
}

func (i *Items) allocEnumMembers(members []EnumMember) enumMemberRange {
	if len(members) == 0 {
		return enumMemberRange{}
	}
	var start EnumMemberID
	for idx, m := range members {
		id := EnumMemberID(i.EnumMembers.Allocate(m))
		if idx == 0 {
			start = id
		}
	}
	return enumMemberRange{start: start, count: uint32(len(members))}
}

// EnumMemberIDs returns the IDs of a contiguous enum-member range.
func (i *Items) EnumMemberIDs(r enumMemberRange) []EnumMemberID {
	if r.count == 0 {
		return nil
	}
	ids := make([]EnumMemberID, r.count)
	for j := uint32(0); j < r.count; j++ {
		ids[j] = EnumMemberID(uint32(r.start) + j)
	}
	return ids
}

// EnumMember returns the enum member with the given ID.
func (i *Items) EnumMember(id EnumMemberID) *EnumMember { return i.EnumMembers.Get(uint32(id)) }

// EnumDeclItem is the payload of an ItemEnumDecl.
type EnumDeclItem struct {
	Name    source.StringID
	Members enumMemberRange
	Span    source.Span
}

func (i *Items) Enum(id ItemID) (*EnumDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemEnumDecl {
		return nil, false
	}
	return i.Enums.Get(uint32(item.Payload)), true
}

// NewEnum creates a new enum-declaration item. A `const enum` is recorded
// via ItemConstEnum in modifiers.
func (i *Items) NewEnum(name source.StringID, members []EnumMember, modifiers ItemModifier, span source.Span) ItemID {
	payload := i.Enums.Allocate(EnumDeclItem{
		Name:    name,
		Members: i.allocEnumMembers(members),
		Span:    span,
	})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemEnumDecl, Modifiers: modifiers, Span: span, Payload: PayloadID(payload)}))
}

// ModuleDeclItem is the payload of an ItemModuleDecl (`namespace N { ... }`
// or `module "name" { ... }`).
type ModuleDeclItem struct {
	Name   source.StringID
	Body   []ItemID
	Global bool // `declare global { ... }`
	Span   source.Span
}

func (i *Items) Module(id ItemID) (*ModuleDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemModuleDecl {
		return nil, false
	}
	return i.Modules.Get(uint32(item.Payload)), true
}

// NewModule creates a new namespace/module-declaration item.
func (i *Items) NewModule(name source.StringID, body []ItemID, global bool, modifiers ItemModifier, span source.Span) ItemID {
	payload := i.Modules.Allocate(ModuleDeclItem{
		Name:   name,
		Body:   append([]ItemID(nil), body...),
		Global: global,
		Span:   span,
	})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemModuleDecl, Modifiers: modifiers, Span: span, Payload: PayloadID(payload)}))
}

// Items manages allocation of top-level items and their associated
// per-kind payload data, following the same arena-of-arenas shape used by
// Stmts, Exprs and TypeExprs.
type Items struct {
	Arena *Arena[Item]

	// Shared building blocks, reused by function/method/arrow-function and
	// call/construct-signature constructs.
	Params     *Arena[Param]
	TypeParams *Arena[TypeParamDecl]
	Types      *Arena[TypeID] // backing store for typeRange (extends/implements clauses)

	VarDecls         *Arena[VarDeclItem]
	Functions        *Arena[FunctionDeclItem]
	Classes          *Arena[ClassDeclItem]
	ClassMembers     *Arena[ClassMember]
	Interfaces       *Arena[InterfaceDeclItem]
	InterfaceMembers *Arena[ObjectMember]
	TypeAliases      *Arena[TypeAliasDeclItem]
	Enums            *Arena[EnumDeclItem]
	EnumMembers      *Arena[EnumMember]
	Modules          *Arena[ModuleDeclItem]
	Imports          *Arena[ImportDeclItem]
	Exports          *Arena[ExportDeclItem]
}

// NewItems creates and returns an *Items with per-kind arenas initialized to
// capHint. If capHint is 0, NewItems uses a default initial capacity of 1<<8.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:            NewArena[Item](capHint),
		Params:           NewArena[Param](capHint),
		TypeParams:       NewArena[TypeParamDecl](capHint),
		Types:            NewArena[TypeID](capHint),
		VarDecls:         NewArena[VarDeclItem](capHint),
		Functions:        NewArena[FunctionDeclItem](capHint),
		Classes:          NewArena[ClassDeclItem](capHint),
		ClassMembers:     NewArena[ClassMember](capHint),
		Interfaces:       NewArena[InterfaceDeclItem](capHint),
		InterfaceMembers: NewArena[ObjectMember](capHint),
		TypeAliases:      NewArena[TypeAliasDeclItem](capHint),
		Enums:            NewArena[EnumDeclItem](capHint),
		EnumMembers:      NewArena[EnumMember](capHint),
		Modules:          NewArena[ModuleDeclItem](capHint),
		Imports:          NewArena[ImportDeclItem](capHint),
		Exports:          NewArena[ExportDeclItem](capHint),
	}
}

// New creates a new item with the given kind and payload.
func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: payloadID}))
}

// Get returns the item with the given ID.
func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// typeRange records a contiguous run of TypeIDs in the shared Types arena,
// used for `extends`/`implements` clause lists.
type typeRange struct {
	start uint32
	count uint32
}

func (i *Items) allocTypes(types []TypeID) typeRange {
	if len(types) == 0 {
		return typeRange{}
	}
	var start uint32
	for idx, t := range types {
		id := i.Types.Allocate(t)
		if idx == 0 {
			start = id
		}
	}
	return typeRange{start: start, count: uint32(len(types))}
}

// TypeIDs returns the TypeIDs in a contiguous type range.
func (i *Items) TypeIDs(r typeRange) []TypeID {
	if r.count == 0 {
		return nil
	}
	out := make([]TypeID, r.count)
	for j := uint32(0); j < r.count; j++ {
		out[j] = *i.Types.Get(r.start + j)
	}
	return out
}

// VarDecl returns the VarDeclItem for the given ItemID.
func (i *Items) VarDecl(id ItemID) (*VarDeclItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemVarDecl {
		return nil, false
	}
	return i.VarDecls.Get(uint32(item.Payload)), true
}

// NewVarDecl creates a new `var`/`let`/`const` declaration item. Each
// declarator is represented as a Param (Name/Type/Default), reusing the
// shared Params arena.
func (i *Items) NewVarDecl(keyword VarDeclKind, declarators []Param, modifiers ItemModifier, span source.Span) ItemID {
	payload := i.VarDecls.Allocate(VarDeclItem{
		Keyword:     keyword,
		Declarators: i.allocParams(declarators),
		Span:        span,
	})
	return ItemID(i.Arena.Allocate(Item{Kind: ItemVarDecl, Modifiers: modifiers, Span: span, Payload: PayloadID(payload)}))
}
