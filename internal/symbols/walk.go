package symbols

import (
	"surge/internal/ast"
	"surge/internal/source"
)

// bindStmt recurses into a statement, opening a new block scope for every
// construct that introduces one (bare blocks, loop bodies, catch clauses,
// switch bodies) and declaring `let`/`const`/`var` locals along the way.
// `var` declarations are function-scoped in TypeScript, so they are walked
// the same as `let`/`const` here but the binder resolves them against the
// nearest enclosing ScopeFunction rather than the block they textually sit
// in (handled by declare, which always targets the scope passed in — callers
// needing function-scoped var hoisting route through nearestFunctionScope).
func (b *Binder) bindStmt(scope ScopeID, id ast.StmtID) {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block := b.Stmts.Block(id)
		if block == nil {
			return
		}
		blockScope := b.Scopes.New(ScopeBlock, scope, ScopeOwner{Kind: ScopeOwnerStmt, SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id}, stmt.Span)
		b.NodeScopes[stmtRef(id)] = blockScope
		for _, childID := range block.Stmts {
			b.bindStmt(blockScope, childID)
		}

	case ast.StmtVarDecl:
		decl := b.Stmts.VarDeclStmt(id)
		if decl == nil {
			return
		}
		target := scope
		flag := FlagBlockScopedVariable
		if decl.Keyword == ast.VarDeclVar {
			flag = FlagFunctionScopedVariable
			target = b.nearestFunctionScope(scope)
		}
		for _, d := range decl.Declarators {
			if d.Default.IsValid() {
				b.resolveExpr(scope, d.Default)
			}
			if d.Name == source.NoStringID {
				continue
			}
			sym := b.declare(target, d.Name, flag|FlagValue, d.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id, Span: d.Span}, false)
			b.NodeSymbols[stmtRef(id)] = sym
		}

	case ast.StmtExpr:
		if e := b.Stmts.Expr(id); e != nil {
			b.resolveExpr(scope, e.Expr)
		}

	case ast.StmtReturn:
		if r := b.Stmts.Return(id); r != nil && r.Expr.IsValid() {
			b.resolveExpr(scope, r.Expr)
		}

	case ast.StmtThrow:
		if t := b.Stmts.Throw(id); t != nil {
			b.resolveExpr(scope, t.Expr)
		}

	case ast.StmtIf:
		ifStmt := b.Stmts.If(id)
		if ifStmt == nil {
			return
		}
		b.resolveExpr(scope, ifStmt.Cond)
		b.bindStmt(scope, ifStmt.Then)
		if ifStmt.Else.IsValid() {
			b.bindStmt(scope, ifStmt.Else)
		}

	case ast.StmtWhile:
		w := b.Stmts.While(id)
		if w != nil {
			b.resolveExpr(scope, w.Cond)
			b.bindStmt(scope, w.Body)
		}

	case ast.StmtDoWhile:
		w := b.Stmts.DoWhile(id)
		if w != nil {
			b.resolveExpr(scope, w.Cond)
			b.bindStmt(scope, w.Body)
		}

	case ast.StmtForClassic:
		f := b.Stmts.ForClassic(id)
		if f == nil {
			return
		}
		loopScope := b.Scopes.New(ScopeBlock, scope, ScopeOwner{Kind: ScopeOwnerStmt, SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id}, stmt.Span)
		b.NodeScopes[stmtRef(id)] = loopScope
		if f.Init.IsValid() {
			b.bindStmt(loopScope, f.Init)
		}
		if f.Cond.IsValid() {
			b.resolveExpr(loopScope, f.Cond)
		}
		if f.Post.IsValid() {
			b.resolveExpr(loopScope, f.Post)
		}
		b.bindStmt(loopScope, f.Body)

	case ast.StmtForIn, ast.StmtForOf:
		var f *ast.ForInStmt
		if stmt.Kind == ast.StmtForIn {
			f = b.Stmts.ForIn(id)
		} else {
			f = b.Stmts.ForOf(id)
		}
		if f == nil {
			return
		}
		loopScope := b.Scopes.New(ScopeBlock, scope, ScopeOwner{Kind: ScopeOwnerStmt, SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id}, stmt.Span)
		b.NodeScopes[stmtRef(id)] = loopScope
		if f.HasDecl && f.Name != source.NoStringID {
			flag := FlagBlockScopedVariable
			target := loopScope
			if f.Keyword == ast.VarDeclVar {
				flag = FlagFunctionScopedVariable
				target = b.nearestFunctionScope(scope)
			}
			sym := b.declare(target, f.Name, flag|FlagValue, stmt.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id, Span: stmt.Span}, false)
			b.NodeSymbols[stmtRef(id)] = sym
		}
		// An existing-binding LHS (`for (x in y)`) carries no ExprID of its
		// own to key a NodeSymbols entry on; the checker resolves it by name
		// against loopScope directly.
		b.resolveExpr(loopScope, f.Iterable)
		b.bindStmt(loopScope, f.Body)

	case ast.StmtSwitch:
		sw := b.Stmts.Switch(id)
		if sw == nil {
			return
		}
		b.resolveExpr(scope, sw.Discriminant)
		switchScope := b.Scopes.New(ScopeBlock, scope, ScopeOwner{Kind: ScopeOwnerStmt, SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id}, stmt.Span)
		b.NodeScopes[stmtRef(id)] = switchScope
		for _, c := range b.Stmts.Cases(sw.Cases) {
			if c.Test != nil {
				b.resolveExpr(switchScope, *c.Test)
			}
			for _, bodyID := range c.Body {
				b.bindStmt(switchScope, bodyID)
			}
		}

	case ast.StmtTry:
		tr := b.Stmts.Try(id)
		if tr == nil {
			return
		}
		b.bindStmt(scope, tr.Block)
		if tr.HasCatch {
			catchScope := b.Scopes.New(ScopeBlock, scope, ScopeOwner{Kind: ScopeOwnerStmt, SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id}, stmt.Span)
			if tr.CatchParam != source.NoStringID {
				b.declare(catchScope, tr.CatchParam, FlagBlockScopedVariable|FlagValue, stmt.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Stmt: id, Span: stmt.Span}, false)
			}
			if tr.CatchBlock.IsValid() {
				b.bindStmt(catchScope, tr.CatchBlock)
			}
		}
		if tr.FinallyBlock.IsValid() {
			b.bindStmt(scope, tr.FinallyBlock)
		}

	case ast.StmtLabeled:
		l := b.Stmts.Labeled(id)
		if l != nil {
			b.bindStmt(scope, l.Body)
		}

	case ast.StmtWith:
		w := b.Stmts.With(id)
		if w != nil {
			b.resolveExpr(scope, w.Object)
			b.bindStmt(scope, w.Body)
		}
	}
}

// nearestFunctionScope walks up the scope chain to find the innermost
// function (or file/module) scope, the hoist target for `var` and
// function declarations.
func (b *Binder) nearestFunctionScope(scope ScopeID) ScopeID {
	for s := scope; s.IsValid(); {
		sc := b.Scopes.Get(s)
		if sc == nil {
			return scope
		}
		if sc.Kind == ScopeFunction || sc.Kind == ScopeModule || sc.Kind == ScopeFile {
			return s
		}
		s = sc.Parent
	}
	return scope
}
