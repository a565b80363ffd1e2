package narrow

import (
	"testing"

	"surge/internal/relations"
	"surge/internal/source"
	"surge/internal/types"
)

func newFixture() (*Narrower, *types.Interner, *source.Interner) {
	in := types.NewInterner()
	strs := source.NewInterner()
	rel := relations.New(in, strs)
	return New(in, rel, strs), in, strs
}

func TestTypeofNarrowsUnion(t *testing.T) {
	n, in, _ := newFixture()
	b := in.Builtins()
	u := in.MakeUnion([]types.TypeID{b.String, b.Number})

	g := Guard{Kind: KindTypeof, Typeof: TypeofString}
	trueBranch := n.Apply(u, g, true)
	falseBranch := n.Apply(u, g, false)

	if trueBranch != b.String {
		t.Fatalf("typeof string true branch = %v, want string", trueBranch)
	}
	if falseBranch != b.Number {
		t.Fatalf("typeof string false branch = %v, want number", falseBranch)
	}
}

func TestTypeofUnknownMemberSurvivesBothBranches(t *testing.T) {
	n, in, _ := newFixture()
	b := in.Builtins()
	u := in.MakeUnion([]types.TypeID{b.Any, b.String})

	g := Guard{Kind: KindTypeof, Typeof: TypeofNumber}
	trueBranch := n.Apply(u, g, true)
	if trueBranch != b.Any {
		t.Fatalf("any should survive an undecidable typeof check, got %v", trueBranch)
	}
}

func TestNullishEquality(t *testing.T) {
	n, in, _ := newFixture()
	b := in.Builtins()
	u := in.MakeUnion([]types.TypeID{b.String, b.Null, b.Undefined})

	g := Guard{Kind: KindNullishEquality}
	trueBranch := n.Apply(u, g, true)
	falseBranch := n.Apply(u, g, false)

	if trueBranch != in.MakeUnion([]types.TypeID{b.Null, b.Undefined}) {
		t.Fatalf("nullish-equality true branch should keep only null|undefined, got %v", trueBranch)
	}
	if falseBranch != b.String {
		t.Fatalf("nullish-equality false branch should strip null|undefined, got %v", falseBranch)
	}
}

func TestTruthyDropsFalsySingletons(t *testing.T) {
	n, in, strs := newFixture()
	b := in.Builtins()
	emptyStr := in.RegisterLiteralString(strs.Intern(""))
	u := in.MakeUnion([]types.TypeID{b.Null, b.Undefined, emptyStr, b.Number})

	g := Guard{Kind: KindTruthy}
	trueBranch := n.Apply(u, g, true)
	want := in.MakeUnion([]types.TypeID{b.Number})
	if trueBranch != want {
		t.Fatalf("truthy true branch = %v, want %v (falsy singletons dropped, number kept)", trueBranch, want)
	}
}

func TestTruthyBooleanFoldsToLiteral(t *testing.T) {
	n, in, _ := newFixture()
	b := in.Builtins()

	trueBranch := n.Apply(b.Boolean, Guard{Kind: KindTruthy}, true)
	falseBranch := n.Apply(b.Boolean, Guard{Kind: KindTruthy}, false)

	wantTrue := in.RegisterLiteralBoolean(true)
	wantFalse := in.RegisterLiteralBoolean(false)
	if trueBranch != wantTrue {
		t.Fatalf("truthy(boolean, true) = %v, want literal true", trueBranch)
	}
	if falseBranch != wantFalse {
		t.Fatalf("truthy(boolean, false) = %v, want literal false", falseBranch)
	}
}

func TestDiscriminantNarrowsTaggedUnion(t *testing.T) {
	n, in, strs := newFixture()
	kind := strs.Intern("kind")

	circleTag := in.RegisterLiteralString(strs.Intern("circle"))
	squareTag := in.RegisterLiteralString(strs.Intern("square"))
	circle := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: kind, Type: circleTag}}, nil)
	square := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: kind, Type: squareTag}}, nil)
	shape := in.MakeUnion([]types.TypeID{circle, square})

	g := Guard{Kind: KindDiscriminant, Path: []source.StringID{kind}, Value: circleTag}
	trueBranch := n.Apply(shape, g, true)
	falseBranch := n.Apply(shape, g, false)

	if trueBranch != circle {
		t.Fatalf("discriminant true branch = %v, want circle", trueBranch)
	}
	if falseBranch != square {
		t.Fatalf("discriminant false branch = %v, want square", falseBranch)
	}
}

func TestArrayGuard(t *testing.T) {
	n, in, _ := newFixture()
	b := in.Builtins()
	arr := in.MakeArray(b.String, false)
	u := in.MakeUnion([]types.TypeID{arr, b.String})

	g := Guard{Kind: KindArray}
	if n.Apply(u, g, true) != arr {
		t.Fatal("Array.isArray true branch should keep only the array member")
	}
	if n.Apply(u, g, false) != b.String {
		t.Fatal("Array.isArray false branch should drop the array member")
	}
}

func TestInstanceofFallsBackOnUnknown(t *testing.T) {
	n, in, strs := newFixture()
	b := in.Builtins()
	name := strs.Intern("name")
	foo := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: name, Type: b.String}}, nil)

	g := Guard{Kind: KindInstanceof, Target: foo}
	got := n.Apply(b.Unknown, g, true)
	if got != foo {
		t.Fatalf("instanceof on unknown should narrow to the target, got %v", got)
	}
}
