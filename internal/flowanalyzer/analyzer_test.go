package flowanalyzer

import (
	"testing"

	"surge/internal/ast"
	"surge/internal/flow"
	"surge/internal/narrow"
	"surge/internal/relations"
	"surge/internal/source"
	"surge/internal/types"
)

func sp() source.Span { return source.Span{} }

type fixture struct {
	fa    *FlowAnalyzer
	in    *types.Interner
	strs  *source.Interner
	exprs *ast.Exprs
	stmts *ast.Stmts
}

func newFixture() *fixture {
	in := types.NewInterner()
	strs := source.NewInterner()
	rel := relations.New(in, strs)
	nar := narrow.New(in, rel, strs)
	exprs := ast.NewExprs(0)
	stmts := ast.NewStmts(0)
	fa := New(in, rel, nar, exprs, strs, nil, nil, nil)
	return &fixture{fa: fa, in: in, strs: strs, exprs: exprs, stmts: stmts}
}

func ident(f *fixture, name string) (ast.ExprID, Reference) {
	id := f.strs.Intern(name)
	e := f.exprs.NewIdent(sp(), id)
	return e, Reference{Path: []source.StringID{id}}
}

func TestGetFlowTypeStartReturnsDeclared(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	_, ref := ident(f, "x")
	g := flow.New()
	got := f.fa.GetFlowType(ref, b.String, g, g.Start(), false, false)
	if got != b.String {
		t.Fatalf("got %v, want declared string type", got)
	}
}

func TestGetFlowTypeTrueConditionNarrowsTypeof(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	xExpr, ref := ident(f, "x")
	u := f.in.MakeUnion([]types.TypeID{b.String, b.Number})

	typeofExpr := f.exprs.NewUnary(sp(), ast.UnaryTypeof, xExpr)
	strLit := f.exprs.NewStringLit(sp(), f.strs.Intern("string"))
	cond := f.exprs.NewBinary(sp(), ast.BinStrictEq, typeofExpr, strLit)

	builder := flow.NewBuilder(f.stmts, f.exprs)
	thenBlock := f.stmts.NewBlock(sp(), nil)
	ifStmt := f.stmts.NewIf(sp(), cond, thenBlock, ast.NoStmtID)
	built := builder.Build([]ast.StmtID{ifStmt})

	// built.Nodes: Start(0), TrueCondition(1), FalseCondition(2), BranchLabel(3).
	trueGot := f.fa.GetFlowType(ref, u, built, flow.NodeID(1), false, false)
	if trueGot != b.String {
		t.Fatalf("true branch = %v, want string", trueGot)
	}
	falseGot := f.fa.GetFlowType(ref, u, built, flow.NodeID(2), false, false)
	if falseGot != b.Number {
		t.Fatalf("false branch = %v, want number", falseGot)
	}
}

func TestGetFlowTypeBranchLabelUnionsArms(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	xExpr, ref := ident(f, "x")
	u := f.in.MakeUnion([]types.TypeID{b.String, b.Number, b.Boolean})

	typeofExpr := f.exprs.NewUnary(sp(), ast.UnaryTypeof, xExpr)
	strLit := f.exprs.NewStringLit(sp(), f.strs.Intern("string"))
	cond := f.exprs.NewBinary(sp(), ast.BinStrictEq, typeofExpr, strLit)

	builder := flow.NewBuilder(f.stmts, f.exprs)
	thenBlock := f.stmts.NewBlock(sp(), nil)
	elseBlock := f.stmts.NewBlock(sp(), nil)
	ifStmt := f.stmts.NewIf(sp(), cond, thenBlock, elseBlock)
	built := builder.Build([]ast.StmtID{ifStmt})

	// merge node is id 3: union of (string) and (number|boolean) = original u.
	merged := f.fa.GetFlowType(ref, u, built, flow.NodeID(3), false, false)
	if merged != u {
		t.Fatalf("merged = %v, want reconstituted union %v", merged, u)
	}
}

func TestGetFlowTypeLoopFixpointStabilizes(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	_, ref := ident(f, "x")

	cond := f.exprs.NewBoolLit(sp(), f.strs.Intern("true"))
	body := f.stmts.NewBlock(sp(), nil)
	loop := f.stmts.NewWhile(sp(), cond, body)

	builder := flow.NewBuilder(f.stmts, f.exprs)
	built := builder.Build([]ast.StmtID{loop})

	// LoopLabel is node 1; with no assignment to x inside the body, entry
	// and every back-edge resolve to the declared type, so the fixed
	// point should just be the declared type itself.
	got := f.fa.GetFlowType(ref, b.Number, built, flow.NodeID(1), false, false)
	if got != b.Number {
		t.Fatalf("loop label flow type = %v, want number", got)
	}
}

func TestGetFlowTypeDiscriminantSwitchClause(t *testing.T) {
	f := newFixture()
	kind := f.strs.Intern("kind")
	circleTag := f.in.RegisterLiteralString(f.strs.Intern("circle"))
	squareTag := f.in.RegisterLiteralString(f.strs.Intern("square"))
	circle := f.in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: kind, Type: circleTag}}, nil)
	square := f.in.RegisterObject(types.NoDefID, []types.PropertyInfo{{Name: kind, Type: squareTag}}, nil)
	shape := f.in.MakeUnion([]types.TypeID{circle, square})

	shapeExpr, shapeRef := ident(f, "shape")
	discriminant := f.exprs.NewMember(sp(), shapeExpr, kind, false, false)
	circleLit := f.exprs.NewStringLit(sp(), f.strs.Intern("circle"))

	cases := []ast.CaseClause{{Test: &circleLit, Body: nil}}
	sw := f.stmts.NewSwitch(sp(), discriminant, cases)

	builder := flow.NewBuilder(f.stmts, f.exprs)
	built := builder.Build([]ast.StmtID{sw})

	// clause node is id 1.
	got := f.fa.GetFlowType(shapeRef, shape, built, flow.NodeID(1), false, false)
	if got != circle {
		t.Fatalf("switch clause flow type = %v, want circle", got)
	}
}

func TestGetFlowTypeClosureInvalidationDropsNarrowing(t *testing.T) {
	f := newFixture()
	b := f.in.Builtins()
	_, ref := ident(f, "x")
	g := flow.New()

	// Even at a node that would otherwise narrow, a captured let/var
	// falls back to the declared type.
	got := f.fa.GetFlowType(ref, b.String, g, g.Start(), true, false)
	if got != b.String {
		t.Fatalf("captured let should fall back to declared, got %v", got)
	}
}
