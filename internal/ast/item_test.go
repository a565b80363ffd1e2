package ast

import (
	"testing"

	"surge/internal/source"
)

func TestItems_NewVarDecl(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	x := interner.Intern("x")

	id := items.NewVarDecl(VarDeclLet, []Param{{Name: x, Type: NoTypeID, Default: NoExprID, Span: sp()}}, ItemExported, sp())

	decl, ok := items.VarDecl(id)
	if !ok {
		t.Fatalf("expected VarDecl to resolve")
	}
	if decl.Keyword != VarDeclLet {
		t.Fatalf("expected let keyword, got %v", decl.Keyword)
	}
	declarators := items.ParamIDs(decl.Declarators)
	if len(declarators) != 1 {
		t.Fatalf("expected 1 declarator, got %d", len(declarators))
	}
	if items.Param(declarators[0]).Name != x {
		t.Fatalf("expected declarator name to round-trip")
	}
	if items.Get(id).Modifiers&ItemExported == 0 {
		t.Fatalf("expected ItemExported modifier to be set")
	}
}

func TestItems_NewFunction_SetsItemModifiers(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	name := interner.Intern("f")

	id := items.NewFunction(name, nil, nil, NoTypeID, NoStmtID, FnAsync, ItemExported, sp())

	fn, ok := items.Function(id)
	if !ok {
		t.Fatalf("expected Function payload to resolve")
	}
	if fn.Modifiers&FnAsync == 0 {
		t.Fatalf("expected FnAsync to be set on the function payload")
	}
	if items.Get(id).Modifiers&ItemExported == 0 {
		t.Fatalf("expected ItemExported to be set on the item, not just the function payload")
	}
}

func TestItems_NewClass_WithMembers(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	className := interner.Intern("C")
	methodName := interner.Intern("m")

	members := []ClassMember{
		{Kind: ClassMemberMethod, Name: methodName, Type: NoTypeID, Body: NoStmtID, Span: sp()},
	}
	id := items.NewClass(className, nil, NoTypeID, nil, members, ItemExported, sp())

	class, ok := items.Class(id)
	if !ok {
		t.Fatalf("expected Class payload to resolve")
	}
	if class.Name != className {
		t.Fatalf("expected class name to round-trip")
	}
	memberIDs := items.ClassMemberIDs(class.Members)
	if len(memberIDs) != 1 {
		t.Fatalf("expected 1 member, got %d", len(memberIDs))
	}
	if items.ClassMember(memberIDs[0]).Name != methodName {
		t.Fatalf("expected method name to round-trip")
	}
}

func TestItems_NewInterface_ExtendsClause(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	name := interner.Intern("I")
	baseType := TypeID(1)
	id := items.NewInterface(name, nil, []TypeID{baseType}, nil, ItemExported, sp())

	iface, ok := items.Interface(id)
	if !ok {
		t.Fatalf("expected Interface payload to resolve")
	}
	extends := items.TypeIDs(iface.Extends)
	if len(extends) != 1 || extends[0] != baseType {
		t.Fatalf("expected extends clause to round-trip, got %+v", extends)
	}
}

func TestItems_NewEnum_ConstModifier(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	enumName := interner.Intern("E")
	memberName := interner.Intern("A")

	id := items.NewEnum(enumName, []EnumMember{{Name: memberName, Init: NoExprID, Span: sp()}}, ItemConstEnum, sp())

	if items.Get(id).Modifiers&ItemConstEnum == 0 {
		t.Fatalf("expected ItemConstEnum modifier to be set")
	}
	e, ok := items.Enum(id)
	if !ok {
		t.Fatalf("expected Enum payload to resolve")
	}
	members := items.EnumMemberIDs(e.Members)
	if len(members) != 1 || items.EnumMember(members[0]).Name != memberName {
		t.Fatalf("expected enum member to round-trip")
	}
}

func TestItems_Import_AllForms(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	module := interner.Intern("./mod")
	def := interner.Intern("Default")
	named := interner.Intern("Named")

	id := items.NewImport(module, def, source.NoStringID, []ImportSpec{{Name: named, Alias: source.NoStringID, Span: sp()}}, false, sp())

	imp, ok := items.Import(id)
	if !ok {
		t.Fatalf("expected Import payload to resolve")
	}
	if imp.Default != def {
		t.Fatalf("expected default import binding to round-trip")
	}
	if len(imp.Named) != 1 || imp.Named[0].Name != named {
		t.Fatalf("expected named import binding to round-trip")
	}
}

func TestItems_ExportStar(t *testing.T) {
	items := NewItems(0)
	interner := newTestInterner()
	module := interner.Intern("./mod")
	as := interner.Intern("ns")

	id := items.NewExportStar(module, as, sp())
	exp, ok := items.Export(id)
	if !ok {
		t.Fatalf("expected Export payload to resolve")
	}
	if !exp.IsStar || exp.StarAs != as {
		t.Fatalf("expected star re-export with alias to round-trip")
	}
}
