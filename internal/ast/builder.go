package ast

import (
	"surge/internal/source"
)

// Hints provides capacity hints for the builder's per-category arenas.
type Hints struct{ Files, Items, Stmts, Exprs, Types uint }

// Builder aggregates the per-category node arenas (Files/Items/Stmts/
// Exprs/Types) plus the shared string interner, and is the single handle
// the parser threads through a file's construction.
type Builder struct {
	Files           *Files
	Items           *Items
	Stmts           *Stmts
	Exprs           *Exprs
	Types           *TypeExprs
	StringsInterner *source.Interner
}

// NewBuilder creates a Builder configured with capacity hints and a shared
// string interner.
//
// If any hint field is zero, a sensible default capacity is applied
// (Files=64, Items=128, Stmts=256, Exprs=256, Types=128). If
// stringsInterner is nil, a new interner is created.
func NewBuilder(hints Hints, stringsInterner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 6
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	if stringsInterner == nil {
		stringsInterner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Types:           NewTypeExprs(hints.Types),
		StringsInterner: stringsInterner,
	}
}

// NewFile creates a new file ID.
func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushItem appends an item to a file's top-level body, in source order.
func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Intern interns a string through the Builder's shared interner.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}

// NewObjectLitType creates an object-type literal (`{ a: string; f(): void }`).
// Object-type-literal members share the same backing arena as interface
// bodies (Items.InterfaceMembers), so allocating them goes through Items
// rather than through Types directly.
func (b *Builder) NewObjectLitType(span source.Span, members []ObjectMember) TypeID {
	return b.Types.NewObjectLit(span, b.Items.allocObjectMembers(members))
}

// NewObjectMember builds an interface-body or object-type-literal member,
// allocating its parameter and type-parameter lists into Items' arenas (the
// arena class ParamIDs/TypeParamIDs index for both contexts).
func (b *Builder) NewObjectMember(
	kind ObjectMemberKind,
	name source.StringID,
	typeParams []TypeParamDecl,
	params []Param,
	typ TypeID,
	optional, readonly bool,
	span source.Span,
) ObjectMember {
	return ObjectMember{
		Kind:       kind,
		Name:       name,
		TypeParams: b.Items.allocTypeParams(typeParams),
		Params:     b.Items.allocParams(params),
		Type:       typ,
		Optional:   optional,
		Readonly:   readonly,
		Span:       span,
	}
}

// NewClassExpr builds a class expression (a class declaration used as a
// value, e.g. a local class statement or `const C = class {...}`), allocating
// its type-parameter, implements and member lists into Items' arenas.
func (b *Builder) NewClassExpr(
	span source.Span,
	name source.StringID,
	typeParams []TypeParamDecl,
	extends TypeID,
	implements []TypeID,
	members []ClassMember,
	declSpan source.Span,
) ExprID {
	decl := ClassDeclItem{
		Name:       name,
		TypeParams: b.Items.allocTypeParams(typeParams),
		Extends:    extends,
		Implements: b.Items.allocTypes(implements),
		Members:    b.Items.allocClassMembers(members),
		Span:       declSpan,
	}
	return b.Exprs.NewClassExpr(span, decl)
}

// NewClassMember builds a class-body member, allocating its parameter and
// type-parameter lists into Items' arenas.
func (b *Builder) NewClassMember(
	kind ClassMemberKind,
	name source.StringID,
	typeParams []TypeParamDecl,
	params []Param,
	typ TypeID,
	initializer ExprID,
	body StmtID,
	modifiers FnModifier,
	span source.Span,
) ClassMember {
	return ClassMember{
		Kind:        kind,
		Name:        name,
		TypeParams:  b.Items.allocTypeParams(typeParams),
		Params:      b.Items.allocParams(params),
		Type:        typ,
		Initializer: initializer,
		Body:        body,
		Modifiers:   modifiers,
		Span:        span,
	}
}
