package symbols

import (
	"surge/internal/ast"
	"surge/internal/source"
)

// declareImport introduces alias symbols for every binding form an import
// declaration can produce. Each binding is declared as a FlagAlias symbol
// with AliasTarget left as NoSymbolID; no later pass assigns it.
func (b *Binder) declareImport(scope ScopeID, id ast.ItemID) {
	imp, ok := b.Items.Import(id)
	if !ok {
		return
	}
	flags := FlagAlias | FlagValue | FlagType
	if imp.TypeOnly {
		flags = FlagAlias | FlagType
	}

	if imp.Default != source.NoStringID {
		b.declare(scope, imp.Default, flags, imp.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: imp.Span}, false)
	}
	if imp.NamespaceAs != source.NoStringID {
		b.declare(scope, imp.NamespaceAs, flags, imp.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: imp.Span}, false)
	}
	for _, spec := range imp.Named {
		name := spec.Name
		if spec.Alias != source.NoStringID {
			name = spec.Alias
		}
		specFlags := flags
		if spec.TypeOnly {
			specFlags = FlagAlias | FlagType
		}
		b.declare(scope, name, specFlags, spec.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: spec.Span}, false)
	}
}

// declareExport handles the export forms that are not expressed as an
// ItemExported modifier on the underlying declaration: re-exports, star
// exports, and `export default`.
func (b *Binder) declareExport(scope ScopeID, id ast.ItemID) {
	exp, ok := b.Items.Export(id)
	if !ok {
		return
	}

	switch {
	case exp.DefaultItem.IsValid():
		b.declareItem(scope, exp.DefaultItem)
		if sym := b.NodeSymbols[itemRef(exp.DefaultItem)]; sym.IsValid() {
			if s := b.Symbols.Get(sym); s != nil {
				s.Exported = true
			}
			b.markDefaultExport(scope, sym)
		}
		b.bindItemBody(scope, exp.DefaultItem)

	case exp.Default.IsValid():
		b.declare(scope, b.defaultName(), FlagAlias|FlagValue|FlagExportValue, exp.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: exp.Span}, true)

	case exp.IsStar:
		name := exp.StarAs
		if name == source.NoStringID {
			// `export * from "m"` re-exports every binding without
			// introducing a local name; nothing to declare here, the
			// resolver handles re-export propagation once module graphs
			// are wired up.
			return
		}
		b.declare(scope, name, FlagAlias|FlagValue|FlagType, exp.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: exp.Span}, true)

	default:
		for _, spec := range exp.Named {
			if exp.Module != source.NoStringID {
				// Re-export of a name from another module: declare a
				// fresh alias local to this scope so it is visible to
				// anything referencing it by its exported name.
				name := spec.Name
				if spec.Alias != source.NoStringID {
					name = spec.Alias
				}
				flags := FlagAlias | FlagValue | FlagType
				if spec.TypeOnly {
					flags = FlagAlias | FlagType
				}
				b.declare(scope, name, flags, spec.Span, SymbolDecl{SourceFile: b.sourceFile, ASTFile: b.astFile, Item: id, Span: spec.Span}, true)
				continue
			}
			// `export { a, b as c }` exports an already-declared local
			// symbol under a possibly-different external name; mark the
			// existing declaration exported rather than shadowing it.
			b.markExportedByName(scope, spec.Name, spec.Alias)
		}
	}
}

// defaultName returns the interned "default" identifier used as the symbol
// name for `export default`.
func (b *Binder) defaultName() source.StringID {
	return b.Strings.Intern("default")
}

func (b *Binder) markDefaultExport(scope ScopeID, id SymbolID) {
	s := b.Symbols.Get(id)
	if s == nil {
		return
	}
	sc := b.Scopes.Get(scope)
	if sc == nil {
		return
	}
	name := b.defaultName()
	if sc.ValueIndex == nil {
		sc.ValueIndex = make(map[source.StringID][]SymbolID)
	}
	sc.ValueIndex[name] = append(sc.ValueIndex[name], id)
}

// markExportedByName flags an already-declared value/type symbol as
// exported, without introducing a new declaration site.
func (b *Binder) markExportedByName(scope ScopeID, name, alias source.StringID) {
	sc := b.Scopes.Get(scope)
	if sc == nil {
		return
	}
	if ids, ok := sc.ValueIndex[name]; ok && len(ids) > 0 {
		if s := b.Symbols.Get(ids[0]); s != nil {
			s.Exported = true
		}
	}
	if ids, ok := sc.TypeIndex[name]; ok && len(ids) > 0 {
		if s := b.Symbols.Get(ids[0]); s != nil {
			s.Exported = true
		}
	}
	_ = alias // external rename is a resolver-time concern, not a local declaration
}
