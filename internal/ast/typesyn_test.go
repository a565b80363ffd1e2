package ast

import (
	"testing"

	"surge/internal/source"
)

func TestTypeExprs_UnionAndArray(t *testing.T) {
	types := NewTypeExprs(0)
	interner := newTestInterner()

	str := types.NewRef(sp(), []source.StringID{interner.Intern("string")}, nil)
	num := types.NewRef(sp(), []source.StringID{interner.Intern("number")}, nil)
	union := types.NewUnion(sp(), []TypeID{str, num})

	data, ok := types.Union(union)
	if !ok || len(data.Members) != 2 {
		t.Fatalf("expected union to carry 2 members, got %+v", data)
	}

	arr := types.NewArray(sp(), str)
	arrData, ok := types.Array(arr)
	if !ok || arrData.Elem != str {
		t.Fatalf("expected array element type to round-trip")
	}

	readonlyArr := types.NewReadonlyArray(sp(), str)
	if types.Get(readonlyArr).Kind != TypeReadonlyArray {
		t.Fatalf("expected NewReadonlyArray to produce TypeReadonlyArray kind")
	}
}

func TestTypeExprs_ConditionalAndInfer(t *testing.T) {
	types := NewTypeExprs(0)
	interner := newTestInterner()

	check := types.NewRef(sp(), []source.StringID{interner.Intern("T")}, nil)
	inferName := interner.Intern("R")
	extends := types.NewRef(sp(), []source.StringID{interner.Intern("Array")}, []TypeID{types.NewInfer(sp(), inferName, NoTypeID)})
	trueT := types.NewInfer(sp(), inferName, NoTypeID)
	falseT := types.NewRef(sp(), []source.StringID{interner.Intern("never")}, nil)

	cond := types.NewConditional(sp(), check, extends, trueT, falseT)
	data, ok := types.Conditional(cond)
	if !ok || data.Check != check || data.Extends != extends || data.True != trueT || data.False != falseT {
		t.Fatalf("expected conditional type fields to round-trip, got %+v", data)
	}
}

func TestTypeExprs_MappedType(t *testing.T) {
	types := NewTypeExprs(0)
	interner := newTestInterner()

	param := interner.Intern("K")
	constraint := types.NewRef(sp(), []source.StringID{interner.Intern("Keys")}, nil)
	value := types.NewRef(sp(), []source.StringID{interner.Intern("T")}, nil)

	mapped := types.NewMapped(sp(), TypeMappedData{
		Param:            param,
		Constraint:       constraint,
		Value:            value,
		ReadonlyModifier: MappedModifierAdd,
		OptionalModifier: MappedModifierRemove,
	})

	data, ok := types.Mapped(mapped)
	if !ok || data.ReadonlyModifier != MappedModifierAdd || data.OptionalModifier != MappedModifierRemove {
		t.Fatalf("expected mapped type modifiers to round-trip, got %+v", data)
	}
}

func TestTypeExprs_FunctionAndConstructorShareShape(t *testing.T) {
	types := NewTypeExprs(0)
	interner := newTestInterner()

	param := Param{Name: interner.Intern("x"), Type: NoTypeID, Default: NoExprID, Span: sp()}
	ret := types.NewRef(sp(), []source.StringID{interner.Intern("void")}, nil)

	fn := types.NewFunction(sp(), nil, []Param{param}, ret)
	ctor := types.NewConstructor(sp(), nil, []Param{param}, ret)

	if types.Get(fn).Kind != TypeFunction {
		t.Fatalf("expected TypeFunction kind")
	}
	if types.Get(ctor).Kind != TypeConstructor {
		t.Fatalf("expected TypeConstructor kind")
	}

	fnData, ok := types.Function(fn)
	if !ok || len(types.ParamIDs(fnData.Params)) != 1 {
		t.Fatalf("expected function type params to round-trip")
	}
	ctorData, ok := types.Constructor(ctor)
	if !ok || len(types.ParamIDs(ctorData.Params)) != 1 {
		t.Fatalf("expected constructor type params to round-trip")
	}
}

func TestTypeExprs_TupleWithNamedAndRestElements(t *testing.T) {
	types := NewTypeExprs(0)
	interner := newTestInterner()

	first := types.NewRef(sp(), []source.StringID{interner.Intern("string")}, nil)
	rest := types.NewArray(sp(), types.NewRef(sp(), []source.StringID{interner.Intern("number")}, nil))

	tuple := types.NewTuple(sp(), []TupleElem{
		{Name: interner.Intern("head"), Type: first},
		{Name: interner.Intern("tail"), Type: rest, Rest: true},
	})

	data, ok := types.Tuple(tuple)
	if !ok || len(data.Elems) != 2 || !data.Elems[1].Rest {
		t.Fatalf("expected tuple elements to round-trip, got %+v", data)
	}
}
