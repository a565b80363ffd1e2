package relations

import (
	"testing"

	"surge/internal/source"
	"surge/internal/types"
)

func newFixture() (*Relations, *types.Interner, *source.Interner) {
	in := types.NewInterner()
	strs := source.NewInterner()
	return New(in, strs), in, strs
}

func TestIdentityAndAnyUnknown(t *testing.T) {
	r, in, _ := newFixture()
	b := in.Builtins()

	if !r.Subtype(b.String, b.String) {
		t.Fatal("string should be a subtype of itself")
	}
	if !r.Subtype(b.String, b.Any) {
		t.Fatal("anything is a subtype of any")
	}
	if !r.Subtype(b.Never, b.String) {
		t.Fatal("never is a subtype of everything")
	}
	if !r.Subtype(b.Any, b.Unknown) {
		t.Fatal("any is a subtype of unknown")
	}
	if r.Subtype(b.Any, b.String) {
		t.Fatal("any is not a subtype of string")
	}
	if !r.Subtype(b.String, b.Unknown) {
		t.Fatal("everything is a subtype of unknown")
	}
	if r.Subtype(b.Unknown, b.String) {
		t.Fatal("unknown is not a subtype of string")
	}
}

func TestLiteralWidening(t *testing.T) {
	r, in, strs := newFixture()
	b := in.Builtins()
	hello := in.RegisterLiteralString(strs.Intern("hello"))
	world := in.RegisterLiteralString(strs.Intern("world"))

	if !r.Subtype(hello, b.String) {
		t.Fatal("string literal widens to string")
	}
	if r.Subtype(hello, world) {
		t.Fatal("distinct string literals are unrelated")
	}
	if !r.Subtype(hello, hello) {
		t.Fatal("identical literal is a subtype of itself")
	}
}

func TestUnionDistribution(t *testing.T) {
	r, in, _ := newFixture()
	b := in.Builtins()
	strOrNum := in.MakeUnion([]types.TypeID{b.String, b.Number})

	if !r.Subtype(b.String, strOrNum) {
		t.Fatal("string <: string|number")
	}
	if !r.Subtype(strOrNum, strOrNum) {
		t.Fatal("a union is a subtype of itself")
	}
	if r.Subtype(strOrNum, b.String) {
		t.Fatal("string|number is not a subtype of string")
	}
	if !r.Subtype(strOrNum, in.MakeUnion([]types.TypeID{b.Number, b.String, b.Boolean})) {
		t.Fatal("string|number <: number|string|boolean")
	}
}

func TestObjectStructuralSubtyping(t *testing.T) {
	r, in, strs := newFixture()
	b := in.Builtins()
	name := strs.Intern("name")
	age := strs.Intern("age")

	narrow := in.RegisterObject(types.NoDefID, []types.PropertyInfo{
		{Name: name, Type: b.String},
	}, nil)
	wide := in.RegisterObject(types.NoDefID, []types.PropertyInfo{
		{Name: name, Type: b.String},
		{Name: age, Type: b.Number, Optional: true},
	}, nil)

	if !r.Subtype(narrow, wide) {
		t.Fatal("object missing an optional property is still a subtype")
	}
	if !r.Subtype(wide, narrow) {
		t.Fatal("an object with an extra property is a subtype of one that doesn't require it")
	}

	mismatch := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: name, Type: b.Number}}, nil)
	if r.Subtype(mismatch, narrow) {
		t.Fatal("a property with an incompatible type breaks the subtype relation")
	}
}

func TestObjectReadonlyMismatch(t *testing.T) {
	r, in, strs := newFixture()
	b := in.Builtins()
	name := strs.Intern("name")

	mutableSrc := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: name, Type: b.String}}, nil)
	readonlySrc := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: name, Type: b.String, Readonly: true}}, nil)
	mutableTarget := in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: name, Type: b.String}}, nil)

	if !r.Subtype(mutableSrc, mutableTarget) {
		t.Fatal("mutable source should satisfy a mutable target")
	}
	if r.Subtype(readonlySrc, mutableTarget) {
		t.Fatal("a readonly property cannot satisfy a mutable target property")
	}
}

func TestTupleSubtypeOfArray(t *testing.T) {
	r, in, _ := newFixture()
	b := in.Builtins()
	tuple := in.RegisterTuple([]types.TupleElemInfo{{Type: b.String}, {Type: b.Number}}, false)
	arr := in.MakeArray(in.MakeUnion([]types.TypeID{b.String, b.Number}), false)

	if !r.Subtype(tuple, arr) {
		t.Fatal("[string, number] <: (string|number)[]")
	}
}

func TestTupleSubtypeWithRest(t *testing.T) {
	r, in, _ := newFixture()
	b := in.Builtins()
	src := in.RegisterTuple([]types.TupleElemInfo{{Type: b.String}, {Type: b.Number}, {Type: b.Number}}, false)
	dst := in.RegisterTuple([]types.TupleElemInfo{{Type: b.String}, {Type: b.Number, Rest: true}}, false)

	if !r.Subtype(src, dst) {
		t.Fatal("[string, number, number] <: [string, ...number[]]")
	}
}

func TestCallableContravariantParamsCovariantReturn(t *testing.T) {
	r, in, _ := newFixture()
	b := in.Builtins()
	strOrNum := in.MakeUnion([]types.TypeID{b.String, b.Number})

	// (x: string|number) => string
	wideParamNarrowReturn := in.RegisterCallable([]types.SignatureInfo{{
		Params: []types.ParamInfo{{Type: strOrNum}},
		Return: b.String,
	}}, false)
	// (x: string) => string|number
	narrowParamWideReturn := in.RegisterCallable([]types.SignatureInfo{{
		Params: []types.ParamInfo{{Type: b.String}},
		Return: strOrNum,
	}}, false)

	if !r.Subtype(wideParamNarrowReturn, narrowParamWideReturn) {
		t.Fatal("a function accepting more and returning less is a subtype of one accepting less and returning more")
	}
	if r.Subtype(narrowParamWideReturn, wideParamNarrowReturn) {
		t.Fatal("the reverse direction should not hold")
	}
}

func TestLazyCycleFallsBackToIdentity(t *testing.T) {
	r, in, _ := newFixture()

	// A not-yet-resolved Lazy(DefID) (no Evaluator installed) must compare
	// by identity rather than recurse forever once a self-referential
	// declaration (`interface Tree { children: Tree[] }`) resolves its own
	// body through this same DefID.
	a := in.MakeLazy(types.DefID(1))
	b := in.MakeLazy(types.DefID(1))
	c := in.MakeLazy(types.DefID(2))

	if !r.Subtype(a, b) {
		t.Fatal("two Lazy references to the same DefID are identical types")
	}
	if r.Subtype(a, c) {
		t.Fatal("Lazy references to different DefIDs are unrelated without an evaluator")
	}
}

func TestAssignabilityAnyBothWays(t *testing.T) {
	r, in, _ := newFixture()
	b := in.Builtins()

	if !r.Assignable(b.Any, b.String) {
		t.Fatal("any is assignable to string")
	}
	if !r.Assignable(b.String, b.Any) {
		t.Fatal("string is assignable to any")
	}
	if r.Assignable(b.String, b.Number) {
		t.Fatal("string is not assignable to number")
	}
}

func TestTemplateLiteralMatchesLiteral(t *testing.T) {
	r, in, strs := newFixture()
	b := in.Builtins()

	tmpl := in.RegisterTemplateLiteral([]types.TemplateSpan{
		{Text: strs.Intern("on")},
		{Hole: b.String},
	})
	onClick := in.RegisterLiteralString(strs.Intern("onClick"))
	offClick := in.RegisterLiteralString(strs.Intern("offClick"))

	if !r.Subtype(tmpl, onClick) {
		t.Fatal("`on${string}` should match \"onClick\"")
	}
	if r.Subtype(tmpl, offClick) {
		t.Fatal("`on${string}` should not match \"offClick\"")
	}
}

func TestTypeParameterConstraint(t *testing.T) {
	r, in, strs := newFixture()
	b := in.Builtins()
	_ = strs

	tp := in.RegisterTypeParameter(types.NoDefID, types.TypeParamInfo{Constraint: b.String})

	if !r.Subtype(tp, b.String) {
		t.Fatal("a type parameter constrained to string is a subtype of string")
	}
	if r.Subtype(tp, b.Number) {
		t.Fatal("a type parameter constrained to string is not a subtype of number")
	}
}
