package types

import (
	"testing"

	"surge/internal/source"
)

func TestInternerBuiltinsAreStable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if in.Intern(Type{Kind: KindString}) != b.String {
		t.Fatalf("re-interning string did not return the builtin TypeID")
	}
	if in.Intern(Type{Kind: KindNumber}) == in.Intern(Type{Kind: KindString}) {
		t.Fatalf("number and string interned to the same TypeID")
	}
}

func TestMakeUnionFlattensDedupsAndAbsorbsAny(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	// string | string -> string
	if got := in.MakeUnion([]TypeID{b.String, b.String}); got != b.String {
		t.Fatalf("string | string = %v, want %v", got, b.String)
	}

	// (string | number) | boolean flattened equals string | number | boolean
	nested := in.MakeUnion([]TypeID{b.String, b.Number})
	flat := in.MakeUnion([]TypeID{nested, b.Boolean})
	direct := in.MakeUnion([]TypeID{b.Boolean, b.Number, b.String})
	if flat != direct {
		t.Fatalf("flattened union %v != directly built union %v", flat, direct)
	}

	// any absorbs everything
	if got := in.MakeUnion([]TypeID{b.String, b.Any}); got != b.Any {
		t.Fatalf("string | any = %v, want any (%v)", got, b.Any)
	}

	// never is absorbed away unless the whole union is never
	if got := in.MakeUnion([]TypeID{b.String, b.Never}); got != b.String {
		t.Fatalf("string | never = %v, want string (%v)", got, b.String)
	}
	if got := in.MakeUnion([]TypeID{b.Never, b.Never}); got != b.Never {
		t.Fatalf("never | never = %v, want never (%v)", got, b.Never)
	}
}

func TestMakeIntersectionNeverAbsorbs(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if got := in.MakeIntersection([]TypeID{b.String, b.Never}); got != b.Never {
		t.Fatalf("string & never = %v, want never (%v)", got, b.Never)
	}
	if got := in.MakeIntersection([]TypeID{b.String}); got != b.String {
		t.Fatalf("single-member intersection should unwrap")
	}
}

func TestRegisterObjectDedups(t *testing.T) {
	in := NewInterner()
	strings := source.NewInterner()
	name := strings.Intern("x")
	props := []PropertyInfo{{Name: name, Type: in.Builtins().Number}}

	a := in.RegisterObject(NoDefID, props, nil)
	b2 := in.RegisterObject(NoDefID, []PropertyInfo{{Name: name, Type: in.Builtins().Number}}, nil)
	if a != b2 {
		t.Fatalf("structurally identical object types got different TypeIDs: %v vs %v", a, b2)
	}

	prop, ok := in.LookupProperty(a, name)
	if !ok || prop.Type != in.Builtins().Number {
		t.Fatalf("LookupProperty did not find expected property")
	}
}

func TestRegisterTypeParameterAlwaysFresh(t *testing.T) {
	in := NewInterner()
	strings := source.NewInterner()
	t1 := in.RegisterTypeParameter(NoDefID, TypeParamInfo{Name: strings.Intern("T")})
	t2 := in.RegisterTypeParameter(NoDefID, TypeParamInfo{Name: strings.Intern("T")})
	if t1 == t2 {
		t.Fatalf("two distinct type-parameter declarations interned to the same TypeID")
	}
}

func TestMakeApplicationIsStableAcrossCalls(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	def := DefID(7)
	a := in.MakeApplication(def, []TypeID{b.String})
	c := in.MakeApplication(def, []TypeID{b.String})
	if a != c {
		t.Fatalf("Box<string> interned twice produced different TypeIDs")
	}
	d := in.MakeApplication(def, []TypeID{b.Number})
	if a == d {
		t.Fatalf("Box<string> and Box<number> interned to the same TypeID")
	}
}
