package libs

import (
	"testing"

	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/symbols"
)

func TestMergeIndexUnionsDisjointNames(t *testing.T) {
	strings := source.NewInterner()
	dst := &symbols.Scope{}
	src := &symbols.Scope{
		ValueIndex: map[source.StringID][]symbols.SymbolID{
			strings.Intern("foo"): {1},
		},
		TypeIndex: map[source.StringID][]symbols.SymbolID{
			strings.Intern("Foo"): {2},
		},
	}

	mergeIndex(dst, src, "lib.one.ts")

	fooVal := strings.Intern("foo")
	if got := dst.ValueIndex[fooVal]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("dst.ValueIndex[foo] = %v, want [1]", got)
	}
	fooType := strings.Intern("Foo")
	if got := dst.TypeIndex[fooType]; len(got) != 1 || got[0] != 2 {
		t.Fatalf("dst.TypeIndex[Foo] = %v, want [2]", got)
	}
}

func TestMergeIndexAppendsAcrossFiles(t *testing.T) {
	strings := source.NewInterner()
	name := strings.Intern("shared")

	dst := &symbols.Scope{
		ValueIndex: map[source.StringID][]symbols.SymbolID{name: {1}},
	}
	src := &symbols.Scope{
		ValueIndex: map[source.StringID][]symbols.SymbolID{name: {2}},
	}

	mergeIndex(dst, src, "lib.two.ts")

	got := dst.ValueIndex[name]
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("dst.ValueIndex[shared] = %v, want [1 2]", got)
	}
}

func TestMergeIndexToleratesEmptySource(t *testing.T) {
	dst := &symbols.Scope{
		ValueIndex: map[source.StringID][]symbols.SymbolID{},
	}
	src := &symbols.Scope{}

	mergeIndex(dst, src, "lib.empty.ts")

	if len(dst.ValueIndex) != 0 {
		t.Fatalf("dst.ValueIndex = %v, want empty", dst.ValueIndex)
	}
}

func TestLoadRejectsUnparsedFile(t *testing.T) {
	strings := source.NewInterner()
	items := &ast.Items{}
	stmts := &ast.Stmts{}
	exprs := &ast.Exprs{}
	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}

	_, err := Load(items, stmts, exprs, strings, reporter, []File{
		{Name: "lib.broken.ts", AST: nil},
	})
	if err == nil {
		t.Fatalf("Load accepted a File with a nil AST")
	}
}

func TestLoadWithNoFilesReturnsEmptyUnifier(t *testing.T) {
	strings := source.NewInterner()
	items := &ast.Items{}
	stmts := &ast.Stmts{}
	exprs := &ast.Exprs{}
	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}

	u, err := Load(items, stmts, exprs, strings, reporter, nil)
	if err != nil {
		t.Fatalf("Load with no files returned error: %v", err)
	}
	if u.SymbolCount() != 0 {
		t.Fatalf("SymbolCount() = %d, want 0", u.SymbolCount())
	}
	if !u.Scope.IsValid() {
		t.Fatalf("Load did not allocate the unified scope")
	}
}
