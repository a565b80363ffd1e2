package symbols

import (
	"fmt"

	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
)

// NodeRef addresses a single AST node across whichever arena it lives in,
// so a single map can carry the bound-symbol/bound-scope relation for
// every node kind the binder visits.
type NodeRef struct {
	Item ast.ItemID
	Stmt ast.StmtID
	Expr ast.ExprID
}

func itemRef(id ast.ItemID) NodeRef { return NodeRef{Item: id} }
func stmtRef(id ast.StmtID) NodeRef { return NodeRef{Stmt: id} }
func exprRef(id ast.ExprID) NodeRef { return NodeRef{Expr: id} }

// Binder walks a parsed file's AST and produces its scope tree, symbol
// table, and node->symbol map. BindFile runs in two passes over a file's
// top-level items: declareItem first declares every item's own name (so
// forward references between top-level declarations resolve), then
// bindItemBody recurses into each item's nested scopes and bodies. Reference
// resolution — binding an ExprIdent use to the SymbolID it names — happens
// during that second pass, in lockstep with the nested-scope walk, since by
// then every sibling top-level name is already declared. Nested
// function/arrow/class expressions are bound and resolved in that same pass,
// the moment the walk reaches them, because nothing outside their own body
// can forward-reference a name they introduce.
type Binder struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Items   *ast.Items
	Stmts   *ast.Stmts
	Exprs   *ast.Exprs

	reporter    diag.Reporter
	sourceFile  source.FileID
	astFile     ast.FileID
	NodeScopes  map[NodeRef]ScopeID
	NodeSymbols map[NodeRef]SymbolID
}

// NewBinder constructs a Binder over the given AST arenas and a reporter
// for duplicate-declaration diagnostics.
func NewBinder(items *ast.Items, stmts *ast.Stmts, exprs *ast.Exprs, strings *source.Interner, reporter diag.Reporter) *Binder {
	return &Binder{
		Scopes:      NewScopes(64),
		Symbols:     NewSymbols(128),
		Strings:     strings,
		Items:       items,
		Stmts:       stmts,
		Exprs:       exprs,
		reporter:    reporter,
		NodeScopes:  make(map[NodeRef]ScopeID),
		NodeSymbols: make(map[NodeRef]SymbolID),
	}
}

// BindFile binds a single source file: file, declare every top-level item
// into a module scope, then recurse into member/body scopes.
func (b *Binder) BindFile(sourceFile source.FileID, astFile ast.FileID, file *ast.File) ScopeID {
	b.sourceFile = sourceFile
	b.astFile = astFile

	fileScope := b.Scopes.New(ScopeFile, NoScopeID, ScopeOwner{Kind: ScopeOwnerFile, SourceFile: sourceFile, ASTFile: astFile}, file.Span)
	moduleScope := b.Scopes.New(ScopeModule, fileScope, ScopeOwner{Kind: ScopeOwnerFile, SourceFile: sourceFile, ASTFile: astFile}, file.Span)

	for _, itemID := range file.Items {
		b.declareItem(moduleScope, itemID)
	}
	for _, itemID := range file.Items {
		b.bindItemBody(moduleScope, itemID)
	}
	return moduleScope
}

func (b *Binder) declSpan(item *ast.Item) source.Span { return item.Span }

// declareItem introduces the symbol(s) a top-level (or namespace-body)
// item declares into scope, applying TypeScript's declaration-merging
// rules, and records aliasing for imports/exports.
func (b *Binder) declareItem(scope ScopeID, id ast.ItemID) {
	item := b.Items.Get(id)
	if item == nil {
		return
	}
	exported := item.Modifiers&ast.ItemExported != 0 || item.Modifiers&ast.ItemDefaultExport != 0

	switch item.Kind {
	case ast.ItemVarDecl:
		decl, _ := b.Items.VarDecl(id)
		if decl == nil {
			return
		}
		flag := FlagBlockScopedVariable
		if decl.Keyword == ast.VarDeclVar {
			flag = FlagFunctionScopedVariable
		}
		for _, pid := range b.Items.ParamIDs(decl.Declarators) {
			p := b.Items.Param(pid)
			if p == nil {
				continue
			}
			sym := b.declare(scope, p.Name, flag|FlagValue, p.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: p.Span}, exported)
			b.NodeSymbols[itemRef(id)] = sym
		}

	case ast.ItemFunctionDecl:
		fn, _ := b.Items.Function(id)
		if fn == nil {
			return
		}
		sym := b.declare(scope, fn.Name, FlagFunction|FlagValue, b.declSpan(item), SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: b.declSpan(item)}, exported)
		b.NodeSymbols[itemRef(id)] = sym

	case ast.ItemClassDecl:
		cls, _ := b.Items.Class(id)
		if cls == nil {
			return
		}
		sym := b.declare(scope, cls.Name, FlagClass|FlagValue|FlagType, b.declSpan(item), SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: b.declSpan(item)}, exported)
		b.NodeSymbols[itemRef(id)] = sym

	case ast.ItemInterfaceDecl:
		iface, _ := b.Items.Interface(id)
		if iface == nil {
			return
		}
		sym := b.declare(scope, iface.Name, FlagInterface|FlagType, b.declSpan(item), SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: b.declSpan(item)}, exported)
		b.NodeSymbols[itemRef(id)] = sym

	case ast.ItemTypeAliasDecl:
		alias, _ := b.Items.TypeAliasDecl(id)
		if alias == nil {
			return
		}
		sym := b.declare(scope, alias.Name, FlagTypeAlias|FlagType, b.declSpan(item), SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: b.declSpan(item)}, exported)
		b.NodeSymbols[itemRef(id)] = sym

	case ast.ItemEnumDecl:
		en, _ := b.Items.Enum(id)
		if en == nil {
			return
		}
		sym := b.declare(scope, en.Name, FlagEnum|FlagValue|FlagType, b.declSpan(item), SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: b.declSpan(item)}, exported)
		b.NodeSymbols[itemRef(id)] = sym

	case ast.ItemModuleDecl:
		mod, _ := b.Items.Module(id)
		if mod == nil {
			return
		}
		sym := b.declare(scope, mod.Name, FlagModule|FlagValue, b.declSpan(item), SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: b.declSpan(item)}, exported)
		b.NodeSymbols[itemRef(id)] = sym

	case ast.ItemImportDecl:
		b.declareImport(scope, id)

	case ast.ItemExportDecl:
		b.declareExport(scope, id)
	}
}

// bindItemBody recurses into an item's nested scopes (function/method
// bodies, class/interface/enum/module bodies) now that every sibling
// top-level name is already declared.
func (b *Binder) bindItemBody(scope ScopeID, id ast.ItemID) {
	item := b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemVarDecl:
		decl, _ := b.Items.VarDecl(id)
		if decl == nil {
			return
		}
		for _, pid := range b.Items.ParamIDs(decl.Declarators) {
			p := b.Items.Param(pid)
			if p != nil && p.Default.IsValid() {
				b.resolveExpr(scope, p.Default)
			}
		}

	case ast.ItemFunctionDecl:
		fn, _ := b.Items.Function(id)
		if fn == nil || !fn.Body.IsValid() {
			return
		}
		fnScope := b.Scopes.New(ScopeFunction, scope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, fn.Span)
		b.NodeScopes[itemRef(id)] = fnScope
		b.declareTypeParams(fnScope, b.Items.TypeParamIDs(fn.TypeParams))
		b.declareParams(fnScope, b.Items.ParamIDs(fn.Params))
		for _, pid := range b.Items.ParamIDs(fn.Params) {
			p := b.Items.Param(pid)
			if p != nil && p.Default.IsValid() {
				b.resolveExpr(fnScope, p.Default)
			}
		}
		b.bindStmt(fnScope, fn.Body)

	case ast.ItemClassDecl:
		cls, _ := b.Items.Class(id)
		if cls == nil {
			return
		}
		classScope := b.Scopes.New(ScopeClass, scope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, cls.Span)
		b.NodeScopes[itemRef(id)] = classScope
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
				b.declare(classScope, m.Name, flag|FlagValue, m.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: m.Span}, false)
			}
			if m.Initializer.IsValid() {
				b.resolveExpr(scope, m.Initializer)
			}
			if m.Body.IsValid() {
				memberScope := b.Scopes.New(ScopeFunction, classScope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, m.Span)
				b.declareParams(memberScope, b.Items.ParamIDs(m.Params))
				for _, pid := range b.Items.ParamIDs(m.Params) {
					p := b.Items.Param(pid)
					if p != nil && p.Default.IsValid() {
						b.resolveExpr(memberScope, p.Default)
					}
				}
				b.bindStmt(memberScope, m.Body)
			}
		}

	case ast.ItemInterfaceDecl:
		iface, _ := b.Items.Interface(id)
		if iface == nil {
			return
		}
		ifaceScope := b.Scopes.New(ScopeInterface, scope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, iface.Span)
		b.NodeScopes[itemRef(id)] = ifaceScope
		b.declareTypeParams(ifaceScope, b.Items.TypeParamIDs(iface.TypeParams))

	case ast.ItemTypeAliasDecl:
		alias, _ := b.Items.TypeAliasDecl(id)
		if alias == nil {
			return
		}
		aliasScope := b.Scopes.New(ScopeBlock, scope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, alias.Span)
		b.NodeScopes[itemRef(id)] = aliasScope
		b.declareTypeParams(aliasScope, b.Items.TypeParamIDs(alias.TypeParams))

	case ast.ItemEnumDecl:
		en, _ := b.Items.Enum(id)
		if en == nil {
			return
		}
		enumScope := b.Scopes.New(ScopeEnum, scope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, en.Span)
		b.NodeScopes[itemRef(id)] = enumScope
		for _, mid := range b.Items.EnumMemberIDs(en.Members) {
			m := b.Items.EnumMember(mid)
			if m == nil {
				continue
			}
			b.declare(enumScope, m.Name, FlagEnumMember|FlagValue, m.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: m.Span}, false)
			if m.Init.IsValid() {
				b.resolveExpr(scope, m.Init)
			}
		}

	case ast.ItemModuleDecl:
		mod, _ := b.Items.Module(id)
		if mod == nil {
			return
		}
		modScope := b.Scopes.New(ScopeModule, scope, ScopeOwner{Kind: ScopeOwnerItem, SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id}, mod.Span)
		b.NodeScopes[itemRef(id)] = modScope
		for _, childID := range mod.Body {
			b.declareItem(modScope, childID)
		}
		for _, childID := range mod.Body {
			b.bindItemBody(modScope, childID)
		}

	case ast.ItemExportDecl:
		exp, ok := b.Items.Export(id)
		if ok && exp.Default.IsValid() {
			b.resolveExpr(scope, exp.Default)
		}
	}
}

func (b *Binder) declareTypeParams(scope ScopeID, tpIDs []ast.TypeParamID) {
	for _, tpID := range tpIDs {
		tp := b.Items.TypeParam(tpID)
		if tp == nil {
			continue
		}
		b.declare(scope, tp.Name, FlagTypeParameter|FlagType, tp.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Span: tp.Span}, false)
	}
}

func (b *Binder) declareParams(scope ScopeID, pIDs []ast.ParamID) {
	for _, pID := range pIDs {
		p := b.Items.Param(pID)
		if p == nil || p.Name == source.NoStringID {
			continue
		}
		b.declare(scope, p.Name, FlagFunctionScopedVariable|FlagValue, p.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Span: p.Span}, false)
	}
}

// declare introduces a symbol into scope, applying declaration-merging
// rules for a name already present there. A name collision that is not a
// legal merge is reported as a duplicate identifier (TS2300) and the new
// declaration is still added as an extra Declarations entry on the
// existing symbol, so downstream checks see one merged symbol rather than
// silently dropping the conflicting one.
func (b *Binder) declare(scope ScopeID, name source.StringID, flags SymbolFlags, span source.Span, decl SymbolDecl, exported bool) SymbolID {
	s := b.Scopes.Get(scope)
	if s == nil || name == source.NoStringID {
		return NoSymbolID
	}
	index := &s.ValueIndex
	if flags.IsType() && !flags.IsValue() {
		index = &s.TypeIndex
	}
	if *index == nil {
		*index = make(map[source.StringID][]SymbolID)
	}
	decl.Span = span
	if existing := (*index)[name]; len(existing) > 0 {
		existingID := existing[0]
		sym := b.Symbols.Get(existingID)
		if sym != nil {
			if !sym.Flags.mergeableWith(flags) {
				b.reportDuplicate(name, span, sym.FirstDecl())
			}
			sym.Flags |= flags
			sym.Declarations = append(sym.Declarations, decl)
			sym.Exported = sym.Exported || exported
			return existingID
		}
	}
	sym := Symbol{
		Name:         name,
		Flags:        flags,
		Scope:        scope,
		Declarations: []SymbolDecl{decl},
		Exported:     exported,
	}
	id := b.Symbols.New(sym)
	(*index)[name] = append((*index)[name], id)
	s.Symbols = append(s.Symbols, id)
	return id
}

func (b *Binder) reportDuplicate(name source.StringID, span, firstSpan source.Span) {
	if b.reporter == nil {
		return
	}
	text, _ := b.Strings.Lookup(name)
	msg := fmt.Sprintf("Duplicate identifier '%s'.", text)
	diag.ReportError(b.reporter, diag.TS2300, span, msg).
		WithNote(firstSpan, fmt.Sprintf("'%s' was also declared here.", text)).
		Emit()
}
