package ast

import (
	"testing"

	"surge/internal/source"
)

func TestExprs_BinaryAndLogical(t *testing.T) {
	exprs := NewExprs(0)
	interner := newTestInterner()

	left := exprs.NewNumericLit(sp(), interner.Intern("1"))
	right := exprs.NewNumericLit(sp(), interner.Intern("2"))
	bin := exprs.NewBinary(sp(), BinAdd, left, right)

	data, ok := exprs.Binary(bin)
	if !ok || data.Op != BinAdd || data.Left != left || data.Right != right {
		t.Fatalf("expected binary expr to round-trip, got %+v", data)
	}

	logical := exprs.NewLogical(sp(), LogNullish, left, right)
	ldata, ok := exprs.Logical(logical)
	if !ok || ldata.Op != LogNullish {
		t.Fatalf("expected logical expr to round-trip, got %+v", ldata)
	}
}

func TestExprs_MemberAndPrivateField(t *testing.T) {
	exprs := NewExprs(0)
	interner := newTestInterner()

	this := exprs.NewThis(sp())
	field := interner.Intern("x")
	member := exprs.NewMember(sp(), this, field, true, false)

	data, ok := exprs.Member(member)
	if !ok || !data.Private || data.Field != field || data.Target != this {
		t.Fatalf("expected private member access to round-trip, got %+v", data)
	}
}

func TestExprs_CallWithTypeArgsAndOptionalChain(t *testing.T) {
	exprs := NewExprs(0)
	types := NewTypeExprs(0)
	interner := newTestInterner()

	callee := exprs.NewIdent(sp(), interner.Intern("f"))
	arg := exprs.NewNumericLit(sp(), interner.Intern("1"))
	tArg := types.NewRef(sp(), nil, nil)

	call := exprs.NewCall(sp(), callee, []TypeID{tArg}, []ExprID{arg}, true)

	data, ok := exprs.Call(call)
	if !ok {
		t.Fatalf("expected Call payload to resolve")
	}
	if !data.Optional || len(data.Args) != 1 || data.Args[0] != arg || len(data.TypeArgs) != 1 {
		t.Fatalf("expected call fields to round-trip, got %+v", data)
	}
}

func TestExprs_ArrowFunctionConciseBody(t *testing.T) {
	exprs := NewExprs(0)
	interner := newTestInterner()

	param := Param{Name: interner.Intern("x"), Type: NoTypeID, Default: NoExprID, Span: sp()}
	body := exprs.NewIdent(sp(), interner.Intern("x"))

	arrow := exprs.NewArrowFunction(sp(), nil, []Param{param}, NoTypeID, NoStmtID, body, 0)
	fn, ok := exprs.FunctionExpr(arrow)
	if !ok {
		t.Fatalf("expected arrow function payload to resolve")
	}
	if fn.ExprBody != body || fn.Body != NoStmtID {
		t.Fatalf("expected concise-body arrow to carry an expr body, got %+v", fn)
	}
	params := exprs.ParamIDs(fn.Params)
	if len(params) != 1 || exprs.Param(params[0]).Name != param.Name {
		t.Fatalf("expected arrow params to round-trip")
	}
}

func TestExprs_AsConstAssertion(t *testing.T) {
	exprs := NewExprs(0)
	interner := newTestInterner()

	val := exprs.NewStringLit(sp(), interner.Intern("\"a\""))
	asID := exprs.NewAs(sp(), val, NoTypeID, true)

	data, ok := exprs.As(asID)
	if !ok || !data.Const || data.Value != val {
		t.Fatalf("expected as-const expr to round-trip, got %+v", data)
	}
}

func TestExprs_TemplateLiteralHoles(t *testing.T) {
	exprs := NewExprs(0)
	interner := newTestInterner()

	prefix := interner.Intern("hello ")
	suffix := interner.Intern("!")
	hole := exprs.NewIdent(sp(), interner.Intern("name"))

	quasis := []source.StringID{prefix, suffix}
	holes := []TemplateSpan{{Expr: hole, Span: sp()}}

	tpl := exprs.NewTemplateLit(sp(), quasis, holes, NoExprID)
	data, ok := exprs.TemplateLit(tpl)
	if !ok {
		t.Fatalf("expected TemplateLit payload to resolve")
	}
	if len(data.Quasis) != 2 || len(data.Exprs) != 1 || data.Exprs[0].Expr != hole {
		t.Fatalf("expected template literal quasis/holes to round-trip, got %+v", data)
	}
}
