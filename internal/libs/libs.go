// Package libs loads TypeScript's ambient "lib" declaration files
// (lib.es5.d.ts, lib.dom.d.ts, and friends) and unifies them into a single
// ambient scope every checked file falls back to for names it doesn't
// declare itself — Array, Promise, Error, console, and the rest of the
// global environment a real tsc program always has in scope even though no
// user file imports them.
package libs

import (
	"fmt"

	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/symbols"
)

// File is one lib file to bind: its source and parsed AST, plus a name used
// only for diagnostics ("lib.es5.d.ts").
type File struct {
	Name   string
	Source source.FileID
	ASTID  ast.FileID
	AST    *ast.File
}

// Unifier holds the merged ambient declaration scope a checker's lib
// fallback (CheckerState.SetLib) resolves names through, plus the Binder
// that scope's symbols live in.
type Unifier struct {
	Binder *symbols.Binder
	Scope  symbols.ScopeID
}

// Load binds every file in files, in the order given, through one shared
// Binder, then unions each file's top-level declarations into a single
// ambient scope.
//
// Order matters: files are expected to already be dependency-sorted by the
// caller (lib.es5.d.ts before lib.es2015.d.ts, which augments es5's Array
// interface) the same way the original tsc lib loader processes its
// reference-directive dependency graph before unifying. Each file binds
// into its own module scope, so a later file's redeclaration of a name is a
// separate symbol rather than an extra Declarations entry on the earlier
// one; mergeIndex appends its ID after the earlier file's in the unified
// index, and lookup answers with the first, so the symbol that first
// introduces a name stays canonical. This package's job is only to union
// each file's moduleScope index into one scope.
//
// This plays the role the original numeric-SymbolId-offset scheme served
// (user binders numbering from lib_symbol_count so a low ID falls through
// to the lib binder): that scheme assumes one global, monotonically
// increasing symbol-ID space shared by every file, which this port's
// per-file Binders don't have — each file's Symbols arena starts counting
// from 1 again. Unioning by scope index instead of by ID range gets the
// same fallback behavior (a name a file doesn't declare resolves to the
// lib's declaration of it) without requiring a shared ID space at all.
func Load(items *ast.Items, stmts *ast.Stmts, exprs *ast.Exprs, strings *source.Interner, reporter diag.Reporter, files []File) (*Unifier, error) {
	binder := symbols.NewBinder(items, stmts, exprs, strings, reporter)
	unified := binder.Scopes.New(symbols.ScopeModule, symbols.NoScopeID,
		symbols.ScopeOwner{Kind: symbols.ScopeOwnerUnknown}, source.Span{})
	unifiedScope := binder.Scopes.Get(unified)

	for _, f := range files {
		if f.AST == nil {
			return nil, fmt.Errorf("libs: %s has no parsed AST", f.Name)
		}
		modScope := binder.BindFile(f.Source, f.ASTID, f.AST)
		sc := binder.Scopes.Get(modScope)
		if sc == nil {
			return nil, fmt.Errorf("libs: %s: BindFile returned an invalid scope", f.Name)
		}
		mergeIndex(unifiedScope, sc, f.Name)
	}

	return &Unifier{Binder: binder, Scope: unified}, nil
}

// mergeIndex unions src's value and type declaration spaces into dst,
// appending rather than overwriting so a name declared in more than one lib
// file keeps every symbol reachable (lookup answers with the first one
// unioned in, matching declare's own existing[0]-is-canonical convention).
func mergeIndex(dst, src *symbols.Scope, _ string) {
	if len(src.ValueIndex) > 0 && dst.ValueIndex == nil {
		dst.ValueIndex = make(map[source.StringID][]symbols.SymbolID, len(src.ValueIndex))
	}
	for name, ids := range src.ValueIndex {
		dst.ValueIndex[name] = append(dst.ValueIndex[name], ids...)
	}
	if len(src.TypeIndex) > 0 && dst.TypeIndex == nil {
		dst.TypeIndex = make(map[source.StringID][]symbols.SymbolID, len(src.TypeIndex))
	}
	for name, ids := range src.TypeIndex {
		dst.TypeIndex[name] = append(dst.TypeIndex[name], ids...)
	}
}

// SymbolCount reports how many symbols this unifier's Binder has declared
// across every lib file loaded into it — the ambient-global budget a
// caller may want to log or cap against.
func (u *Unifier) SymbolCount() int {
	return u.Binder.Symbols.Len()
}
