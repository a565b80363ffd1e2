package flow

import (
	"testing"

	"surge/internal/ast"
	"surge/internal/source"
)

func sp() source.Span { return source.Span{} }

func TestBuildStraightLineAssignments(t *testing.T) {
	stmts := ast.NewStmts(0)
	exprs := ast.NewExprs(0)
	strs := source.NewInterner()

	x := strs.Intern("x")
	y := strs.Intern("y")
	one := exprs.NewNumericLit(sp(), strs.Intern("1"))
	two := exprs.NewNumericLit(sp(), strs.Intern("2"))

	declX := stmts.NewVarDeclStmt(sp(), ast.VarDeclLet, []ast.Param{{Name: x, Type: ast.NoTypeID, Default: one}})
	declY := stmts.NewVarDeclStmt(sp(), ast.VarDeclConst, []ast.Param{{Name: y, Type: ast.NoTypeID, Default: two}})

	xIdent := exprs.NewIdent(sp(), x)
	assignExpr := exprs.NewAssignment(sp(), ast.AssignPlain, xIdent, two)
	assignStmt := stmts.NewExpr(sp(), assignExpr)

	b := NewBuilder(stmts, exprs)
	g := b.Build([]ast.StmtID{declX, declY, assignStmt})

	// Start + declX + declY + assignment = 4 nodes.
	if len(g.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(g.Nodes))
	}
	if g.Nodes[1].IsConst {
		t.Fatalf("let declarator should not be marked const")
	}
	if !g.Nodes[2].IsConst {
		t.Fatalf("const declarator should be marked const")
	}
	last := g.Nodes[3]
	if last.Kind != KindAssignment || last.Target != xIdent || last.Value != two {
		t.Fatalf("assignment node mismatch: %+v", last)
	}
	if len(last.Antecedents) != 1 || last.Antecedents[0] != NodeID(2) {
		t.Fatalf("assignment antecedent mismatch: %+v", last.Antecedents)
	}
}

func TestBuildIfElseMergesAtBranchLabel(t *testing.T) {
	stmts := ast.NewStmts(0)
	exprs := ast.NewExprs(0)
	strs := source.NewInterner()

	cond := exprs.NewBoolLit(sp(), strs.Intern("true"))
	thenBlock := stmts.NewBlock(sp(), nil)
	elseBlock := stmts.NewBlock(sp(), nil)
	ifStmt := stmts.NewIf(sp(), cond, thenBlock, elseBlock)

	b := NewBuilder(stmts, exprs)
	g := b.Build([]ast.StmtID{ifStmt})

	// Start(0), TrueCondition(1), FalseCondition(2), BranchLabel(3).
	if len(g.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(g.Nodes))
	}
	trueNode, falseNode, merge := g.Nodes[1], g.Nodes[2], g.Nodes[3]
	if trueNode.Kind != KindTrueCondition || falseNode.Kind != KindFalseCondition {
		t.Fatalf("expected true/false condition nodes, got %v / %v", trueNode.Kind, falseNode.Kind)
	}
	if trueNode.Condition != cond || falseNode.Condition != cond {
		t.Fatalf("condition node should carry the if's test expression")
	}
	if merge.Kind != KindBranchLabel {
		t.Fatalf("expected merge node to be a BranchLabel, got %v", merge.Kind)
	}
	if len(merge.Antecedents) != 2 || merge.Antecedents[0] != NodeID(1) || merge.Antecedents[1] != NodeID(2) {
		t.Fatalf("branch label should merge both arms, got %+v", merge.Antecedents)
	}
}

func TestBuildWhileLoopBackEdgeAndBreak(t *testing.T) {
	stmts := ast.NewStmts(0)
	exprs := ast.NewExprs(0)
	strs := source.NewInterner()

	cond := exprs.NewBoolLit(sp(), strs.Intern("true"))
	breakStmt := stmts.NewBreak(sp(), 0)
	body := stmts.NewBlock(sp(), []ast.StmtID{breakStmt})
	loop := stmts.NewWhile(sp(), cond, body)

	b := NewBuilder(stmts, exprs)
	g := b.Build([]ast.StmtID{loop})

	// Start(0), LoopLabel(1), TrueCondition(2), FalseCondition(3), exit BranchLabel(4).
	if len(g.Nodes) != 5 {
		t.Fatalf("got %d nodes, want 5", len(g.Nodes))
	}
	loopLabel := g.Nodes[1]
	if loopLabel.Kind != KindLoopLabel {
		t.Fatalf("expected loop label, got %v", loopLabel.Kind)
	}
	// The break statement leaves the body's "current node" as the
	// TrueCondition node itself (break only records cur, it doesn't
	// advance past it), so the back-edge added after popLoop re-adds
	// the true-branch entry as a loop antecedent.
	if len(loopLabel.Antecedents) != 2 {
		t.Fatalf("loop label should have start + back-edge antecedents, got %+v", loopLabel.Antecedents)
	}
	exit := g.Nodes[4]
	if exit.Kind != KindBranchLabel {
		t.Fatalf("expected exit branch label, got %v", exit.Kind)
	}
	// exit's antecedents: falseNode plus the break's source node.
	if len(exit.Antecedents) != 2 {
		t.Fatalf("exit should merge false-branch and break, got %+v", exit.Antecedents)
	}
}

func TestBuildSwitchClausesChainAndMerge(t *testing.T) {
	stmts := ast.NewStmts(0)
	exprs := ast.NewExprs(0)
	strs := source.NewInterner()

	discriminant := exprs.NewIdent(sp(), strs.Intern("x"))
	oneLit := exprs.NewNumericLit(sp(), strs.Intern("1"))
	twoLit := exprs.NewNumericLit(sp(), strs.Intern("2"))

	cases := []ast.CaseClause{
		{Test: &oneLit, Body: nil},
		{Test: &twoLit, Body: nil},
		{Test: nil, Body: nil}, // default
	}
	sw := stmts.NewSwitch(sp(), discriminant, cases)

	b := NewBuilder(stmts, exprs)
	g := b.Build([]ast.StmtID{sw})

	// Start(0), clause1(1), clause2(2), clause3/default(3), exit BranchLabel(4).
	if len(g.Nodes) != 5 {
		t.Fatalf("got %d nodes, want 5", len(g.Nodes))
	}
	c1, c2, c3 := g.Nodes[1], g.Nodes[2], g.Nodes[3]
	if c1.Kind != KindSwitchClause || c2.Kind != KindSwitchClause || c3.Kind != KindSwitchClause {
		t.Fatalf("expected switch clause nodes, got %v %v %v", c1.Kind, c2.Kind, c3.Kind)
	}
	if len(c1.CaseValues) != 1 || c1.CaseValues[0] != oneLit {
		t.Fatalf("first clause should carry its test expression, got %+v", c1.CaseValues)
	}
	if len(c3.CaseValues) != 0 {
		t.Fatalf("default clause should carry no case values, got %+v", c3.CaseValues)
	}
	// clauses chain: c2's antecedent is c1, c3's antecedent is c2.
	if len(c2.Antecedents) != 1 || c2.Antecedents[0] != NodeID(1) {
		t.Fatalf("clause 2 should chain off clause 1, got %+v", c2.Antecedents)
	}
	if len(c3.Antecedents) != 1 || c3.Antecedents[0] != NodeID(2) {
		t.Fatalf("clause 3 should chain off clause 2, got %+v", c3.Antecedents)
	}
	exit := g.Nodes[4]
	if exit.Kind != KindBranchLabel {
		t.Fatalf("expected exit branch label, got %v", exit.Kind)
	}
}
