package flow

import "surge/internal/ast"

// Builder constructs a Graph by walking one function or top-level module
// body's statements, threading a "current node" cursor the same way the
// binder threads a "current scope" cursor in internal/symbols/walk.go.
type Builder struct {
	Stmts *ast.Stmts
	Exprs *ast.Exprs
	g     *Graph

	loops []loopContext
}

type loopContext struct {
	continueTo NodeID
	breakFrom  *[]NodeID
}

// NewBuilder constructs a Builder over the given AST arenas.
func NewBuilder(stmts *ast.Stmts, exprs *ast.Exprs) *Builder {
	return &Builder{Stmts: stmts, Exprs: exprs, g: New()}
}

// Build walks the statement list of a function/module body and returns
// the resulting graph. entry defaults to the graph's Start node.
func (b *Builder) Build(body []ast.StmtID) *Graph {
	cur := b.g.Start()
	for _, id := range body {
		cur = b.stmt(cur, id)
	}
	return b.g
}

// Graph returns the graph built so far (useful mid-construction for tests).
func (b *Builder) Graph() *Graph { return b.g }

func (b *Builder) stmt(cur NodeID, id ast.StmtID) NodeID {
	st := b.Stmts.Get(id)
	if st == nil {
		return cur
	}
	switch st.Kind {
	case ast.StmtBlock:
		blk := b.Stmts.Block(id)
		for _, s := range blk.Stmts {
			cur = b.stmt(cur, s)
		}
		return cur

	case ast.StmtVarDecl:
		decl := b.Stmts.VarDeclStmt(id)
		isConst := decl.Keyword == ast.VarDeclConst
		for _, d := range decl.Declarators {
			node := b.g.alloc(Node{
				Kind:        KindAssignment,
				Antecedents: []NodeID{cur},
				Target:      ast.NoExprID,
				Value:       d.Default,
				IsConst:     isConst,
			})
			cur = node
		}
		return cur

	case ast.StmtExpr:
		ex := b.Stmts.Expr(id)
		if assign, ok := b.Exprs.Assignment(ex.Expr); ok {
			return b.g.alloc(Node{
				Kind:        KindAssignment,
				Antecedents: []NodeID{cur},
				Target:      assign.Target,
				Value:       assign.Value,
				IsConst:     false,
			})
		}
		return cur

	case ast.StmtIf:
		ifs := b.Stmts.If(id)
		trueNode := b.g.alloc(Node{Kind: KindTrueCondition, Antecedents: []NodeID{cur}, Condition: ifs.Cond})
		falseNode := b.g.alloc(Node{Kind: KindFalseCondition, Antecedents: []NodeID{cur}, Condition: ifs.Cond})
		thenEnd := b.stmt(trueNode, ifs.Then)
		elseEnd := falseNode
		if ifs.Else.IsValid() {
			elseEnd = b.stmt(falseNode, ifs.Else)
		}
		return b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: []NodeID{thenEnd, elseEnd}})

	case ast.StmtWhile:
		w := b.Stmts.While(id)
		loopLabel := b.g.alloc(Node{Kind: KindLoopLabel, Antecedents: []NodeID{cur}})
		trueNode := b.g.alloc(Node{Kind: KindTrueCondition, Antecedents: []NodeID{loopLabel}, Condition: w.Cond})
		falseNode := b.g.alloc(Node{Kind: KindFalseCondition, Antecedents: []NodeID{loopLabel}, Condition: w.Cond})
		var breaks []NodeID
		b.pushLoop(loopLabel, &breaks)
		bodyEnd := b.stmt(trueNode, w.Body)
		b.popLoop()
		b.g.addAntecedent(loopLabel, bodyEnd)
		exit := append([]NodeID{falseNode}, breaks...)
		return b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: exit})

	case ast.StmtDoWhile:
		w := b.Stmts.DoWhile(id)
		loopLabel := b.g.alloc(Node{Kind: KindLoopLabel, Antecedents: []NodeID{cur}})
		var breaks []NodeID
		b.pushLoop(loopLabel, &breaks)
		bodyEnd := b.stmt(loopLabel, w.Body)
		b.popLoop()
		trueNode := b.g.alloc(Node{Kind: KindTrueCondition, Antecedents: []NodeID{bodyEnd}, Condition: w.Cond})
		falseNode := b.g.alloc(Node{Kind: KindFalseCondition, Antecedents: []NodeID{bodyEnd}, Condition: w.Cond})
		b.g.addAntecedent(loopLabel, trueNode)
		exit := append([]NodeID{falseNode}, breaks...)
		return b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: exit})

	case ast.StmtForClassic:
		f := b.Stmts.ForClassic(id)
		if f.Init.IsValid() {
			cur = b.stmt(cur, f.Init)
		}
		loopLabel := b.g.alloc(Node{Kind: KindLoopLabel, Antecedents: []NodeID{cur}})
		condCur := NodeID(loopLabel)
		trueNode := loopLabel
		falseNode := loopLabel
		if f.Cond != ast.NoExprID {
			trueNode = b.g.alloc(Node{Kind: KindTrueCondition, Antecedents: []NodeID{condCur}, Condition: f.Cond})
			falseNode = b.g.alloc(Node{Kind: KindFalseCondition, Antecedents: []NodeID{condCur}, Condition: f.Cond})
		}
		var breaks []NodeID
		b.pushLoop(loopLabel, &breaks)
		bodyEnd := b.stmt(trueNode, f.Body)
		b.popLoop()
		if f.Post != ast.NoExprID {
			bodyEnd = b.g.alloc(Node{Kind: KindAssignment, Antecedents: []NodeID{bodyEnd}, Value: f.Post})
		}
		b.g.addAntecedent(loopLabel, bodyEnd)
		exit := append([]NodeID{falseNode}, breaks...)
		return b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: exit})

	case ast.StmtForIn, ast.StmtForOf:
		var iterable ast.ExprID
		var body ast.StmtID
		if st.Kind == ast.StmtForIn {
			f := b.Stmts.ForIn(id)
			iterable, body = f.Iterable, f.Body
		} else {
			f := b.Stmts.ForOf(id)
			iterable, body = f.Iterable, f.Body
		}
		_ = iterable
		loopLabel := b.g.alloc(Node{Kind: KindLoopLabel, Antecedents: []NodeID{cur}})
		bindNode := b.g.alloc(Node{Kind: KindAssignment, Antecedents: []NodeID{loopLabel}, Target: ast.NoExprID})
		var breaks []NodeID
		b.pushLoop(loopLabel, &breaks)
		bodyEnd := b.stmt(bindNode, body)
		b.popLoop()
		b.g.addAntecedent(loopLabel, bodyEnd)
		exit := append([]NodeID{loopLabel}, breaks...)
		return b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: exit})

	case ast.StmtSwitch:
		sw := b.Stmts.Switch(id)
		var breaks []NodeID
		b.loops = append(b.loops, loopContext{continueTo: NoNodeID, breakFrom: &breaks})
		prev := cur
		for _, c := range b.Stmts.Cases(sw.Cases) {
			var values []ast.ExprID
			if c.Test != nil {
				values = []ast.ExprID{*c.Test}
			}
			clause := b.g.alloc(Node{Kind: KindSwitchClause, Antecedents: []NodeID{prev}, Condition: sw.Discriminant, CaseValues: values})
			end := clause
			for _, s := range c.Body {
				end = b.stmt(end, s)
			}
			breaks = append(breaks, end)
			prev = clause
		}
		b.loops = b.loops[:len(b.loops)-1]
		return b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: append([]NodeID{prev}, breaks...)})

	case ast.StmtTry:
		tr := b.Stmts.Try(id)
		tryEnd := b.stmt(cur, tr.Block)
		ends := []NodeID{tryEnd}
		if tr.HasCatch {
			caught := b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: []NodeID{cur}})
			catchEnd := b.stmt(caught, tr.CatchBlock)
			ends = append(ends, catchEnd)
		}
		merged := b.g.alloc(Node{Kind: KindBranchLabel, Antecedents: ends})
		if tr.FinallyBlock.IsValid() {
			return b.stmt(merged, tr.FinallyBlock)
		}
		return merged

	case ast.StmtLabeled:
		l := b.Stmts.Labeled(id)
		return b.stmt(cur, l.Body)

	case ast.StmtWith:
		w := b.Stmts.With(id)
		return b.stmt(cur, w.Body)

	case ast.StmtBreak:
		if len(b.loops) == 0 {
			return cur
		}
		top := &b.loops[len(b.loops)-1]
		*top.breakFrom = append(*top.breakFrom, cur)
		return cur

	case ast.StmtContinue:
		if len(b.loops) == 0 {
			return cur
		}
		top := &b.loops[len(b.loops)-1]
		if top.continueTo != NoNodeID {
			b.g.addAntecedent(top.continueTo, cur)
		}
		return cur

	case ast.StmtReturn, ast.StmtThrow:
		return cur
	}
	return cur
}

func (b *Builder) pushLoop(continueTo NodeID, breaks *[]NodeID) {
	b.loops = append(b.loops, loopContext{continueTo: continueTo, breakFrom: breaks})
}

func (b *Builder) popLoop() {
	b.loops = b.loops[:len(b.loops)-1]
}
