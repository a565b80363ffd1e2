package ast

import "testing"

func TestStmts_IfElse(t *testing.T) {
	stmts := NewStmts(0)
	exprs := NewExprs(0)
	interner := newTestInterner()

	cond := exprs.NewBoolLit(sp(), interner.Intern("true"))
	thenBlock := stmts.NewBlock(sp(), nil)
	elseBlock := stmts.NewBlock(sp(), nil)

	id := stmts.NewIf(sp(), cond, thenBlock, elseBlock)
	ifStmt := stmts.If(id)
	if ifStmt == nil {
		t.Fatalf("expected If payload to resolve")
	}
	if ifStmt.Cond != cond || ifStmt.Then != thenBlock || ifStmt.Else != elseBlock {
		t.Fatalf("expected if statement fields to round-trip, got %+v", ifStmt)
	}
}

func TestStmts_BreakUnlabeledVsLabeled(t *testing.T) {
	stmts := NewStmts(0)
	interner := newTestInterner()
	label := interner.Intern("outer")

	bare := stmts.NewBreak(sp(), 0)
	if stmts.Break(bare) != nil {
		t.Fatalf("expected unlabeled break to have no payload")
	}

	labeled := stmts.NewBreak(sp(), label)
	jump := stmts.Break(labeled)
	if jump == nil || jump.Label != label {
		t.Fatalf("expected labeled break to round-trip its label")
	}
}

func TestStmts_SwitchCases(t *testing.T) {
	stmts := NewStmts(0)
	exprs := NewExprs(0)
	interner := newTestInterner()

	disc := exprs.NewIdent(sp(), interner.Intern("x"))
	one := exprs.NewNumericLit(sp(), interner.Intern("1"))
	body := stmts.NewEmpty(sp())

	id := stmts.NewSwitch(sp(), disc, []CaseClause{
		{Test: &one, Body: []StmtID{body}, Span: sp()},
		{Test: nil, Body: nil, Span: sp()},
	})

	sw := stmts.Switch(id)
	if sw == nil {
		t.Fatalf("expected Switch payload to resolve")
	}
	cases := stmts.Cases(sw.Cases)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].Test == nil || *cases[0].Test != one {
		t.Fatalf("expected first case test to round-trip")
	}
	if cases[1].Test != nil {
		t.Fatalf("expected default clause to have a nil test")
	}
}

func TestStmts_ForOfDeclaresBinding(t *testing.T) {
	stmts := NewStmts(0)
	exprs := NewExprs(0)
	interner := newTestInterner()

	name := interner.Intern("item")
	iterable := exprs.NewIdent(sp(), interner.Intern("items"))
	body := stmts.NewEmpty(sp())

	id := stmts.NewForOf(sp(), VarDeclConst, true, name, NoTypeID, iterable, body)
	forOf := stmts.ForOf(id)
	if forOf == nil {
		t.Fatalf("expected ForOf payload to resolve")
	}
	if !forOf.HasDecl || forOf.Name != name || forOf.Iterable != iterable {
		t.Fatalf("expected for-of fields to round-trip, got %+v", forOf)
	}
}

func TestStmts_TryCatchFinally(t *testing.T) {
	stmts := NewStmts(0)
	interner := newTestInterner()

	block := stmts.NewBlock(sp(), nil)
	catchBlock := stmts.NewBlock(sp(), nil)
	finallyBlock := stmts.NewBlock(sp(), nil)
	errName := interner.Intern("e")

	id := stmts.NewTry(sp(), block, true, errName, NoTypeID, catchBlock, finallyBlock)
	tryStmt := stmts.Try(id)
	if tryStmt == nil {
		t.Fatalf("expected Try payload to resolve")
	}
	if !tryStmt.HasCatch || tryStmt.CatchParam != errName || tryStmt.FinallyBlock != finallyBlock {
		t.Fatalf("expected try statement fields to round-trip, got %+v", tryStmt)
	}
}
