package checker

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/types"
)

// checkStmt walks one statement body, the checker's counterpart to the
// binder's bindStmt: it resolves each declarator's final type, checks
// initializers/conditions/returns against their expected types, and
// validates break/continue/label targets against the enclosing
// loop/switch/label stack.
func (cs *CheckerState) checkStmt(scope symbols.ScopeID, id ast.StmtID) {
	stmt := cs.Builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block := cs.Builder.Stmts.Block(id)
		if block == nil {
			return
		}
		blockScope := cs.Binder.NodeScopes[symbols.NodeRef{Stmt: id}]
		if !blockScope.IsValid() {
			blockScope = scope
		}
		for _, childID := range block.Stmts {
			cs.checkStmt(blockScope, childID)
		}

	case ast.StmtVarDecl:
		cs.checkVarDeclStmt(scope, id)

	case ast.StmtExpr:
		if e := cs.Builder.Stmts.Expr(id); e != nil {
			cs.exprType(scope, e.Expr)
		}

	case ast.StmtReturn:
		if r := cs.Builder.Stmts.Return(id); r != nil && r.Expr.IsValid() {
			cs.exprType(scope, r.Expr)
		}

	case ast.StmtThrow:
		if t := cs.Builder.Stmts.Throw(id); t != nil {
			cs.exprType(scope, t.Expr)
		}

	case ast.StmtIf:
		ifStmt := cs.Builder.Stmts.If(id)
		if ifStmt == nil {
			return
		}
		cs.exprType(scope, ifStmt.Cond)
		cs.checkStmt(scope, ifStmt.Then)
		if ifStmt.Else.IsValid() {
			cs.checkStmt(scope, ifStmt.Else)
		}

	case ast.StmtWhile:
		w := cs.Builder.Stmts.While(id)
		if w == nil {
			return
		}
		cs.exprType(scope, w.Cond)
		cs.loopDepth++
		cs.checkStmt(scope, w.Body)
		cs.loopDepth--

	case ast.StmtDoWhile:
		w := cs.Builder.Stmts.DoWhile(id)
		if w == nil {
			return
		}
		cs.loopDepth++
		cs.checkStmt(scope, w.Body)
		cs.loopDepth--
		cs.exprType(scope, w.Cond)

	case ast.StmtForClassic:
		cs.checkForClassic(scope, id)

	case ast.StmtForIn, ast.StmtForOf:
		cs.checkForInOf(scope, id, stmt.Kind == ast.StmtForOf)

	case ast.StmtSwitch:
		cs.checkSwitch(scope, id)

	case ast.StmtTry:
		cs.checkTry(scope, id)

	case ast.StmtLabeled:
		cs.checkLabeled(scope, id)

	case ast.StmtBreak:
		cs.checkJump(id, cs.Builder.Stmts.Break(id), diag.TS1105, false)

	case ast.StmtContinue:
		cs.checkJump(id, cs.Builder.Stmts.Continue(id), diag.TS1104, true)

	case ast.StmtWith:
		w := cs.Builder.Stmts.With(id)
		if w == nil {
			return
		}
		cs.report(diag.TS2410, stmt.Span, "The 'with' statement is not supported in all environments and is forbidden in strict mode.")
		cs.exprType(scope, w.Object)
		cs.checkStmt(scope, w.Body)

	case ast.StmtEmpty, ast.StmtDebugger:
		// Nothing to check.
	}
}

func (cs *CheckerState) checkVarDeclStmt(scope symbols.ScopeID, id ast.StmtID) {
	decl := cs.Builder.Stmts.VarDeclStmt(id)
	if decl == nil {
		return
	}
	for _, d := range decl.Declarators {
		if d.Default.IsValid() {
			cs.exprType(scope, d.Default)
		}
		if d.Name == source.NoStringID {
			continue
		}
		symID, ok := cs.Binder.LookupValue(scope, d.Name)
		if !ok {
			continue
		}
		sym := cs.Binder.Symbols.Get(symID)
		if sym == nil {
			continue
		}
		cs.finishVarSymbol(scope, sym, d)
	}
}

// finishVarSymbol resolves a variable's final type from its declared
// annotation and/or initializer, reporting TS2322 when both are present
// and incompatible, and stamps the symbol so later reads see a concrete
// type instead of the binder's placeholder.
func (cs *CheckerState) finishVarSymbol(scope symbols.ScopeID, sym *symbols.Symbol, d ast.Param) {
	var declared types.TypeID
	if d.Type.IsValid() {
		declared = cs.evalType(scope, d.Type)
	}
	var initType types.TypeID
	if d.Default.IsValid() {
		initType = cs.exprType(scope, d.Default)
	}
	switch {
	case declared != types.NoTypeID && initType != types.NoTypeID:
		if !cs.Rel.Assignable(initType, declared) {
			cs.report(diag.TS2322, d.Span, "Type of initializer is not assignable to the declared type.")
		}
		sym.Type = declared
	case declared != types.NoTypeID:
		sym.Type = declared
	case initType != types.NoTypeID:
		sym.Type = initType
	default:
		sym.Type = cs.Types.Builtins().Any
	}
}

func (cs *CheckerState) checkForClassic(scope symbols.ScopeID, id ast.StmtID) {
	f := cs.Builder.Stmts.ForClassic(id)
	if f == nil {
		return
	}
	loopScope := cs.Binder.NodeScopes[symbols.NodeRef{Stmt: id}]
	if !loopScope.IsValid() {
		loopScope = scope
	}
	if f.Init.IsValid() {
		cs.checkStmt(loopScope, f.Init)
	}
	if f.Cond.IsValid() {
		cs.exprType(loopScope, f.Cond)
	}
	if f.Post.IsValid() {
		cs.exprType(loopScope, f.Post)
	}
	cs.loopDepth++
	cs.checkStmt(loopScope, f.Body)
	cs.loopDepth--
}

func (cs *CheckerState) checkForInOf(scope symbols.ScopeID, id ast.StmtID, isOf bool) {
	var f *ast.ForInStmt
	if isOf {
		f = cs.Builder.Stmts.ForOf(id)
	} else {
		f = cs.Builder.Stmts.ForIn(id)
	}
	if f == nil {
		return
	}
	loopScope := cs.Binder.NodeScopes[symbols.NodeRef{Stmt: id}]
	if !loopScope.IsValid() {
		loopScope = scope
	}
	iterableType := cs.exprType(loopScope, f.Iterable)
	elemType := cs.Types.Builtins().Any
	if isOf {
		elemType = cs.iterationElementType(iterableType)
	} else {
		elemType = cs.Types.Builtins().String
	}
	if f.HasDecl && f.Name != source.NoStringID {
		if symID, ok := cs.Binder.LookupValue(loopScope, f.Name); ok {
			if sym := cs.Binder.Symbols.Get(symID); sym != nil {
				if f.Type.IsValid() {
					sym.Type = cs.evalType(loopScope, f.Type)
				} else {
					sym.Type = elemType
				}
			}
		}
	}
	cs.loopDepth++
	cs.checkStmt(loopScope, f.Body)
	cs.loopDepth--
}

// iterationElementType resolves the element type a `for...of` iterates,
// covering arrays/tuples/strings directly (the common cases a structural
// checker sees without a full Iterable<T> protocol lookup).
func (cs *CheckerState) iterationElementType(t types.TypeID) types.TypeID {
	switch cs.Types.Kind(t) {
	case types.KindArray:
		if elem, ok := cs.Types.ArrayElem(t); ok {
			return elem
		}
	case types.KindString, types.KindLiteralString:
		return cs.Types.Builtins().String
	case types.KindTuple:
		info, ok := cs.Types.TupleInfo(t)
		if !ok || len(info.Elems) == 0 {
			break
		}
		members := make([]types.TypeID, len(info.Elems))
		for i, e := range info.Elems {
			members[i] = e.Type
		}
		return cs.Types.MakeUnion(members)
	}
	return cs.Types.Builtins().Any
}

func (cs *CheckerState) checkSwitch(scope symbols.ScopeID, id ast.StmtID) {
	sw := cs.Builder.Stmts.Switch(id)
	if sw == nil {
		return
	}
	discType := cs.exprType(scope, sw.Discriminant)
	_ = discType
	switchScope := cs.Binder.NodeScopes[symbols.NodeRef{Stmt: id}]
	if !switchScope.IsValid() {
		switchScope = scope
	}
	cs.switchDepth++
	hasDefault := false
	for _, c := range cs.Builder.Stmts.Cases(sw.Cases) {
		if c.Test != nil {
			cs.exprType(switchScope, *c.Test)
		} else {
			hasDefault = true
		}
		for _, bodyID := range c.Body {
			cs.checkStmt(switchScope, bodyID)
		}
	}
	cs.switchDepth--
	if cs.Options.SoundMode && !hasDefault {
		cs.report(diag.TS9006, cs.Builder.Stmts.Get(id).Span, "Switch statement is not exhaustive and has no default case.")
	}
}

func (cs *CheckerState) checkTry(scope symbols.ScopeID, id ast.StmtID) {
	tr := cs.Builder.Stmts.Try(id)
	if tr == nil {
		return
	}
	cs.checkStmt(scope, tr.Block)
	if tr.HasCatch {
		catchScope := scope
		if tr.CatchParam != source.NoStringID {
			if symID, ok := cs.Binder.LookupValue(scope, tr.CatchParam); ok {
				if sym := cs.Binder.Symbols.Get(symID); sym != nil {
					if tr.CatchType.IsValid() {
						sym.Type = cs.evalType(scope, tr.CatchType)
					} else {
						sym.Type = cs.Types.Builtins().Unknown
					}
				}
			}
		}
		if tr.CatchBlock.IsValid() {
			cs.checkStmt(catchScope, tr.CatchBlock)
		}
	}
	if tr.FinallyBlock.IsValid() {
		cs.checkStmt(scope, tr.FinallyBlock)
	}
}

func (cs *CheckerState) checkLabeled(scope symbols.ScopeID, id ast.StmtID) {
	l := cs.Builder.Stmts.Labeled(id)
	if l == nil {
		return
	}
	bodyStmt := cs.Builder.Stmts.Get(l.Body)
	isLoop := bodyStmt != nil && isLoopKind(bodyStmt.Kind)
	isSwitch := bodyStmt != nil && bodyStmt.Kind == ast.StmtSwitch
	cs.labels = append(cs.labels, labelFrame{name: l.Label, isLoop: isLoop, isSwitch: isSwitch})
	cs.checkStmt(scope, l.Body)
	cs.labels = cs.labels[:len(cs.labels)-1]
}

func isLoopKind(k ast.StmtKind) bool {
	switch k {
	case ast.StmtWhile, ast.StmtDoWhile, ast.StmtForClassic, ast.StmtForIn, ast.StmtForOf:
		return true
	default:
		return false
	}
}

// checkJump validates a break/continue's target: an unlabeled jump needs an
// enclosing loop (always, for continue) or loop/switch (for break); a
// labeled jump needs a matching, and for continue loop-shaped, entry on the
// label stack.
func (cs *CheckerState) checkJump(id ast.StmtID, j *ast.JumpStmt, bareCode diag.Code, isContinue bool) {
	span := cs.Builder.Stmts.Get(id).Span
	if j == nil || j.Label == source.NoStringID {
		if isContinue && cs.loopDepth == 0 {
			cs.report(bareCode, span, "A 'continue' statement can only be used within an enclosing iteration statement.")
		} else if !isContinue && cs.loopDepth == 0 && cs.switchDepth == 0 {
			cs.report(bareCode, span, "A 'break' statement can only be used within an enclosing iteration or switch statement.")
		}
		return
	}
	for i := len(cs.labels) - 1; i >= 0; i-- {
		if cs.labels[i].name != j.Label {
			continue
		}
		if isContinue && !cs.labels[i].isLoop {
			cs.report(diag.TS1344, span, "A label is not allowed here.")
		}
		return
	}
	cs.report(diag.TS1344, span, "A label is not allowed here.")
}
