package checker

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/types"
)

// checkItem is CheckFile's second pass: it walks one item's body (function/
// method statements, class member initializers, top-level variable
// initializers) now that every declaration's shape was already registered,
// so the bodies being checked see every sibling declaration's finished
// type regardless of source order. declScope is the scope this item was
// declared into, the same one registerDeclShape received.
func (cs *CheckerState) checkItem(id ast.ItemID, declScope symbols.ScopeID) {
	item := cs.Builder.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemVarDecl:
		cs.checkVarDeclItem(id, declScope)
	case ast.ItemFunctionDecl:
		cs.checkFunctionItem(id)
	case ast.ItemClassDecl:
		cs.checkClassItem(id, declScope)
	case ast.ItemModuleDecl:
		mod, _ := cs.Builder.Items.Module(id)
		if mod == nil {
			return
		}
		modScope := cs.itemScope(id)
		for _, childID := range mod.Body {
			cs.checkItem(childID, modScope)
		}
	}
}

func (cs *CheckerState) checkVarDeclItem(id ast.ItemID, declScope symbols.ScopeID) {
	decl, _ := cs.Builder.Items.VarDecl(id)
	if decl == nil {
		return
	}
	for _, pid := range cs.Builder.Items.ParamIDs(decl.Declarators) {
		p := cs.Builder.Items.Param(pid)
		if p == nil || p.Name == source.NoStringID {
			continue
		}
		symID, ok := cs.Binder.LookupValue(declScope, p.Name)
		if !ok {
			continue
		}
		sym := cs.Binder.Symbols.Get(symID)
		if sym == nil {
			continue
		}
		cs.finishVarSymbol(declScope, sym, *p)
	}
}

func (cs *CheckerState) checkFunctionItem(id ast.ItemID) {
	fn, _ := cs.Builder.Items.Function(id)
	if fn == nil || !fn.Body.IsValid() {
		return
	}
	fnScope := cs.itemScope(id)
	if !fnScope.IsValid() {
		return
	}
	sym := cs.declSymbol(id)
	cs.inFunctionBody(func() {
		cs.checkStmt(fnScope, fn.Body)
	})
	if sym == nil {
		return
	}
	info, ok := cs.Types.CallableInfo(sym.Type)
	if !ok || len(info.Signatures) == 0 {
		return
	}
	cs.checkReturnsAgainst(fnScope, fn.Body, info.Signatures[0].Return, fn.Modifiers&ast.FnAsync != 0)
}

func (cs *CheckerState) checkClassItem(id ast.ItemID, declScope symbols.ScopeID) {
	cls, _ := cs.Builder.Items.Class(id)
	if cls == nil {
		return
	}
	classScope := cs.itemScope(id)
	for _, mid := range cs.Builder.Items.ClassMemberIDs(cls.Members) {
		m := cs.Builder.Items.ClassMember(mid)
		if m == nil {
			continue
		}
		if m.Initializer.IsValid() {
			initType := cs.exprType(declScope, m.Initializer)
			if m.Type.IsValid() {
				propType := cs.evalType(classScope, m.Type)
				if !cs.Rel.Assignable(initType, propType) {
					cs.report(diag.TS2322, m.Span, "Type of initializer is not assignable to the declared property type.")
				}
			}
		}
		if m.Body.IsValid() {
			cs.inFunctionBody(func() {
				cs.checkStmt(classScope, m.Body)
			})
		}
	}
}

// inFunctionBody runs fn with a fresh break/continue/label context, the
// way entering any function-like body resets jump-target validity:
// `break`/`continue`/a labeled statement never reaches across a function
// boundary.
func (cs *CheckerState) inFunctionBody(fn func()) {
	savedLoop, savedSwitch, savedLabels := cs.loopDepth, cs.switchDepth, cs.labels
	cs.loopDepth, cs.switchDepth, cs.labels = 0, 0, nil
	fn()
	cs.loopDepth, cs.switchDepth, cs.labels = savedLoop, savedSwitch, savedLabels
}

// checkReturnsAgainst walks a function body's top-level statements looking
// for return statements to check against the declared return type; it does
// not descend into nested function expressions, whose return statements
// belong to their own signature. funcExprType does not check those return
// statements against an annotated return type either.
func (cs *CheckerState) checkReturnsAgainst(scope symbols.ScopeID, body ast.StmtID, declared types.TypeID, isAsync bool) {
	if declared == types.NoTypeID || declared == cs.Types.Builtins().Void || declared == cs.Types.Builtins().Any {
		return
	}
	cs.walkReturns(scope, body, func(retScope symbols.ScopeID, r *ast.ReturnStmt, span source.Span) {
		var actual types.TypeID
		if r.Expr.IsValid() {
			actual = cs.exprType(retScope, r.Expr)
		} else {
			actual = cs.Types.Builtins().Undefined
		}
		if !cs.Rel.Assignable(actual, declared) {
			cs.report(diag.TS2322, span, "Returned type is not assignable to the function's declared return type.")
		}
	})
}

func (cs *CheckerState) walkReturns(scope symbols.ScopeID, id ast.StmtID, visit func(symbols.ScopeID, *ast.ReturnStmt, source.Span)) {
	stmt := cs.Builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtReturn:
		if r := cs.Builder.Stmts.Return(id); r != nil {
			visit(scope, r, stmt.Span)
		}
	case ast.StmtBlock:
		block := cs.Builder.Stmts.Block(id)
		if block == nil {
			return
		}
		inner := cs.Binder.NodeScopes[symbols.NodeRef{Stmt: id}]
		if !inner.IsValid() {
			inner = scope
		}
		for _, childID := range block.Stmts {
			cs.walkReturns(inner, childID, visit)
		}
	case ast.StmtIf:
		ifStmt := cs.Builder.Stmts.If(id)
		if ifStmt == nil {
			return
		}
		cs.walkReturns(scope, ifStmt.Then, visit)
		if ifStmt.Else.IsValid() {
			cs.walkReturns(scope, ifStmt.Else, visit)
		}
	case ast.StmtWhile:
		if w := cs.Builder.Stmts.While(id); w != nil {
			cs.walkReturns(scope, w.Body, visit)
		}
	case ast.StmtDoWhile:
		if w := cs.Builder.Stmts.DoWhile(id); w != nil {
			cs.walkReturns(scope, w.Body, visit)
		}
	case ast.StmtForClassic:
		if f := cs.Builder.Stmts.ForClassic(id); f != nil {
			cs.walkReturns(scope, f.Body, visit)
		}
	case ast.StmtForIn:
		if f := cs.Builder.Stmts.ForIn(id); f != nil {
			cs.walkReturns(scope, f.Body, visit)
		}
	case ast.StmtForOf:
		if f := cs.Builder.Stmts.ForOf(id); f != nil {
			cs.walkReturns(scope, f.Body, visit)
		}
	case ast.StmtSwitch:
		sw := cs.Builder.Stmts.Switch(id)
		if sw == nil {
			return
		}
		for _, c := range cs.Builder.Stmts.Cases(sw.Cases) {
			for _, bodyID := range c.Body {
				cs.walkReturns(scope, bodyID, visit)
			}
		}
	case ast.StmtTry:
		tr := cs.Builder.Stmts.Try(id)
		if tr == nil {
			return
		}
		cs.walkReturns(scope, tr.Block, visit)
		if tr.CatchBlock.IsValid() {
			cs.walkReturns(scope, tr.CatchBlock, visit)
		}
		if tr.FinallyBlock.IsValid() {
			cs.walkReturns(scope, tr.FinallyBlock, visit)
		}
	case ast.StmtLabeled:
		if l := cs.Builder.Stmts.Labeled(id); l != nil {
			cs.walkReturns(scope, l.Body, visit)
		}
	}
}
