package symbols

import (
	"surge/internal/ast"
	"surge/internal/source"
)

// lookupValue walks scope's parent chain for name in the value declaration
// space (the TypeScript declaration space a `const`/`function`/class-as-value
// binding lives in).
func (b *Binder) lookupValue(scope ScopeID, name source.StringID) (SymbolID, bool) {
	return b.lookup(scope, name, false)
}

// lookupType walks scope's parent chain for name in the type declaration
// space (interfaces, type aliases, type parameters, and classes-as-types).
func (b *Binder) lookupType(scope ScopeID, name source.StringID) (SymbolID, bool) {
	return b.lookup(scope, name, true)
}

// LookupValue exposes lookupValue to packages outside symbols (the checker
// resolving an identifier expression's declaring symbol outside of the
// bind-time resolveExpr walk, e.g. for `instanceof`/predicate targets).
func (b *Binder) LookupValue(scope ScopeID, name source.StringID) (SymbolID, bool) {
	return b.lookupValue(scope, name)
}

// LookupType exposes lookupType to packages outside symbols — the
// checker's type-syntax evaluator resolves every TypeRef path segment
// through this, since reference resolution for type positions is this
// package's binder's job but happens lazily, on demand, rather than as a
// third bind-time pass.
func (b *Binder) LookupType(scope ScopeID, name source.StringID) (SymbolID, bool) {
	return b.lookupType(scope, name)
}

func (b *Binder) lookup(scope ScopeID, name source.StringID, types bool) (SymbolID, bool) {
	for s := scope; s.IsValid(); {
		sc := b.Scopes.Get(s)
		if sc == nil {
			return NoSymbolID, false
		}
		index := sc.ValueIndex
		if types {
			index = sc.TypeIndex
		}
		if ids, ok := index[name]; ok && len(ids) > 0 {
			return ids[0], true
		}
		s = sc.Parent
	}
	return NoSymbolID, false
}

// resolveIdentExpr binds a bare identifier expression to the value-space
// symbol it refers to, recording the relation in NodeSymbols so checker's
// get_type_of_node can look up a declared type without re-walking scopes. An
// unresolved identifier (typo, missing import, global ambient name this
// binder doesn't know about) is left unrecorded; the checker reports it.
func (b *Binder) resolveIdentExpr(scope ScopeID, id ast.ExprID, name source.StringID) {
	if sym, ok := b.lookupValue(scope, name); ok {
		b.NodeSymbols[exprRef(id)] = sym
	}
}

// resolveExpr recurses through an expression tree, resolving every
// identifier reference it contains and, for function/arrow/class
// expressions, binding the nested scope their body introduces (these
// constructs are never reached by declareItem, so binding and resolving
// happen together here, the first and only time the walk sees them).
func (b *Binder) resolveExpr(scope ScopeID, id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := b.Exprs.Get(id)
	if expr == nil {
		return
	}

	switch expr.Kind {
	case ast.ExprIdent:
		if ident, ok := b.Exprs.Ident(id); ok {
			b.resolveIdentExpr(scope, id, ident.Name)
		}

	case ast.ExprPrivateIdent, ast.ExprNumericLit, ast.ExprBigIntLit, ast.ExprStringLit,
		ast.ExprBoolLit, ast.ExprNullLit, ast.ExprUndefinedLit, ast.ExprThis, ast.ExprSuper:
		// No nested expressions or references to resolve.

	case ast.ExprTemplateLit:
		if tpl, ok := b.Exprs.TemplateLit(id); ok {
			if tpl.Tag.IsValid() {
				b.resolveExpr(scope, tpl.Tag)
			}
			for _, span := range tpl.Exprs {
				b.resolveExpr(scope, span.Expr)
			}
		}

	case ast.ExprArrayLit:
		if arr, ok := b.Exprs.ArrayLit(id); ok {
			for _, el := range arr.Elements {
				b.resolveExpr(scope, el)
			}
		}

	case ast.ExprObjectLit:
		if obj, ok := b.Exprs.ObjectLit(id); ok {
			for _, p := range obj.Props {
				if p.Computed {
					b.resolveExpr(scope, p.KeyExpr)
				}
				b.resolveExpr(scope, p.Value)
			}
		}

	case ast.ExprFunctionExpr, ast.ExprArrowFunction:
		b.resolveFunctionLike(scope, id)

	case ast.ExprClassExpr:
		if cls, ok := b.Exprs.ClassExpr(id); ok {
			b.resolveClassBody(scope, exprRef(id), &cls.Decl)
		}

	case ast.ExprUnary:
		if un, ok := b.Exprs.Unary(id); ok {
			b.resolveExpr(scope, un.Operand)
		}

	case ast.ExprUpdate:
		if up, ok := b.Exprs.Update(id); ok {
			b.resolveExpr(scope, up.Operand)
		}

	case ast.ExprBinary:
		if bin, ok := b.Exprs.Binary(id); ok {
			b.resolveExpr(scope, bin.Left)
			b.resolveExpr(scope, bin.Right)
		}

	case ast.ExprLogical:
		if lg, ok := b.Exprs.Logical(id); ok {
			b.resolveExpr(scope, lg.Left)
			b.resolveExpr(scope, lg.Right)
		}

	case ast.ExprAssignment:
		if asn, ok := b.Exprs.Assignment(id); ok {
			b.resolveExpr(scope, asn.Target)
			b.resolveExpr(scope, asn.Value)
		}

	case ast.ExprConditional:
		if c, ok := b.Exprs.Conditional(id); ok {
			b.resolveExpr(scope, c.Cond)
			b.resolveExpr(scope, c.Then)
			b.resolveExpr(scope, c.Else)
		}

	case ast.ExprCall:
		if call, ok := b.Exprs.Call(id); ok {
			b.resolveExpr(scope, call.Callee)
			for _, a := range call.Args {
				b.resolveExpr(scope, a)
			}
		}

	case ast.ExprNew:
		if n, ok := b.Exprs.New(id); ok {
			b.resolveExpr(scope, n.Callee)
			for _, a := range n.Args {
				b.resolveExpr(scope, a)
			}
		}

	case ast.ExprMember:
		if m, ok := b.Exprs.Member(id); ok {
			b.resolveExpr(scope, m.Target)
		}

	case ast.ExprIndexAccess:
		if ix, ok := b.Exprs.IndexAccess(id); ok {
			b.resolveExpr(scope, ix.Target)
			b.resolveExpr(scope, ix.Index)
		}

	case ast.ExprSpread:
		if sp, ok := b.Exprs.Spread(id); ok {
			b.resolveExpr(scope, sp.Value)
		}

	case ast.ExprAs:
		if a, ok := b.Exprs.As(id); ok {
			b.resolveExpr(scope, a.Value)
		}

	case ast.ExprSatisfies:
		if s, ok := b.Exprs.Satisfies(id); ok {
			b.resolveExpr(scope, s.Value)
		}

	case ast.ExprNonNull:
		if nn, ok := b.Exprs.NonNull(id); ok {
			b.resolveExpr(scope, nn.Value)
		}

	case ast.ExprParen:
		if p, ok := b.Exprs.Paren(id); ok {
			b.resolveExpr(scope, p.Inner)
		}

	case ast.ExprSequence:
		if sq, ok := b.Exprs.Sequence(id); ok {
			for _, e := range sq.Exprs {
				b.resolveExpr(scope, e)
			}
		}
	}
}

// resolveFunctionLike binds and resolves a function or arrow expression: a
// fresh function scope holds its type parameters and parameters, default
// values resolve against that same scope (TypeScript allows a later
// parameter's default to reference an earlier one), and the body is bound
// and resolved via bindStmt (block body) or resolveExpr (concise arrow
// body).
func (b *Binder) resolveFunctionLike(scope ScopeID, id ast.ExprID) {
	fn, ok := b.Exprs.FunctionExpr(id)
	if !ok {
		return
	}
	span := source.Span{}
	if e := b.Exprs.Get(id); e != nil {
		span = e.Span
	}
	fnScope := b.Scopes.New(ScopeFunction, scope, ScopeOwner{Kind: ScopeOwnerExpr, SourceFile: b.sourceFile, ASTFile: b.astFile, Expr: id}, span)
	b.NodeScopes[exprRef(id)] = fnScope
	b.declareTypeParams(fnScope, b.Exprs.TypeParamIDs(fn.TypeParams))
	for _, pid := range b.Exprs.ParamIDs(fn.Params) {
		p := b.Exprs.Param(pid)
		if p == nil {
			continue
		}
		if p.Name != source.NoStringID {
			b.declare(fnScope, p.Name, FlagFunctionScopedVariable|FlagValue, p.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Span: p.Span}, false)
		}
	}
	for _, pid := range b.Exprs.ParamIDs(fn.Params) {
		p := b.Exprs.Param(pid)
		if p != nil && p.Default.IsValid() {
			b.resolveExpr(fnScope, p.Default)
		}
	}
	if fn.Body.IsValid() {
		b.bindStmt(fnScope, fn.Body)
	}
	if fn.ExprBody.IsValid() {
		b.resolveExpr(fnScope, fn.ExprBody)
	}
}

// resolveClassBody binds and resolves a class body (declaration or
// expression): members go into a ScopeClass, property initializers resolve
// against the enclosing scope (a field initializer can't see its own class's
// instance members without `this`, which this binder doesn't model as a
// lexical name), and method bodies get their own function scope.
func (b *Binder) resolveClassBody(scope ScopeID, owner NodeRef, cls *ast.ClassDeclItem) ScopeID {
	classScope := b.Scopes.New(ScopeClass, scope, ScopeOwner{Kind: ScopeOwnerExpr, SourceFile: b.sourceFile, ASTFile: b.astFile, Expr: owner.Expr, Item: owner.Item}, cls.Span)
	b.NodeScopes[owner] = classScope
	b.declareTypeParams(classScope, b.Items.TypeParamIDs(cls.TypeParams))
	for _, mid := range b.Items.ClassMemberIDs(cls.Members) {
		m := b.Items.ClassMember(mid)
		if m == nil {
			continue
		}
		flag := FlagProperty
		if m.Kind == ast.ClassMemberMethod || m.Kind == ast.ClassMemberGetter || m.Kind == ast.ClassMemberSetter {
			flag = FlagMethod
		}
		if m.Name != source.NoStringID {
			b.declare(classScope, m.Name, flag|FlagValue, m.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Span: m.Span}, false)
		}
		if m.Initializer.IsValid() {
			b.resolveExpr(scope, m.Initializer)
		}
		if m.Body.IsValid() {
			memberScope := b.Scopes.New(ScopeFunction, classScope, ScopeOwner{Kind: ScopeOwnerExpr, SourceFile: b.sourceFile, ASTFile: b.astFile, Expr: owner.Expr, Item: owner.Item}, m.Span)
			for _, pid := range b.Items.ParamIDs(m.Params) {
				p := b.Items.Param(pid)
				if p != nil && p.Name != source.NoStringID {
					b.declare(memberScope, p.Name, FlagFunctionScopedVariable|FlagValue, p.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Span: p.Span}, false)
				}
			}
			for _, pid := range b.Items.ParamIDs(m.Params) {
				p := b.Items.Param(pid)
				if p != nil && p.Default.IsValid() {
					b.resolveExpr(memberScope, p.Default)
				}
			}
			b.bindStmt(memberScope, m.Body)
		}
	}
	return classScope
}
