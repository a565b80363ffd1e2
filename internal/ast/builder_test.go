package ast

import (
	"testing"

	"surge/internal/source"
)

func sp() source.Span { return source.Span{File: 1, Start: 0, End: 1} }

func newTestInterner() *source.Interner { return source.NewInterner() }

func TestNewBuilder_Defaults(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	if b.Files == nil || b.Items == nil || b.Stmts == nil || b.Exprs == nil || b.Types == nil {
		t.Fatalf("expected all collections to be initialized")
	}
	if b.StringsInterner == nil {
		t.Fatalf("expected a default string interner")
	}
}

func TestBuilder_NewFilePushItem(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	name := b.Intern("x")
	item := b.Items.NewVarDecl(VarDeclConst, []Param{{Name: name, Type: NoTypeID, Default: NoExprID, Span: sp()}}, 0, sp())

	file := b.NewFile(sp())
	b.PushItem(file, item)

	f := b.Files.Get(file)
	if len(f.Items) != 1 || f.Items[0] != item {
		t.Fatalf("expected file to contain pushed item, got %+v", f.Items)
	}
}

func TestBuilder_InternDeduplicates(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	a := b.Intern("hello")
	c := b.Intern("hello")
	if a != c {
		t.Fatalf("expected interning the same string to return the same id")
	}
}
