package checker

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"surge/internal/ast"
	"surge/internal/defs"
	"surge/internal/diag"
	"surge/internal/narrow"
	"surge/internal/relations"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/types"
)

// ProgramFile is one file of a CheckProgram run: the source file BindFile
// stamps node-scope records against, the ast.FileID the AST arena assigned
// it, and the parsed File itself.
type ProgramFile struct {
	Source source.FileID
	ASTID  ast.FileID
	AST    *ast.File
}

// ProgramResult is the per-file outcome of a CheckProgram run: the scope
// BindFile returned, the CheckerState that checked it (for SaveCache, or for
// inspecting get_type_of_node results afterward), and the diagnostics raised
// while binding and checking this file alone.
type ProgramResult struct {
	File  ProgramFile
	Scope symbols.ScopeID
	State *CheckerState
	Bag   *diag.Bag

	binder *symbols.Binder
}

// CheckProgram binds and checks every file of a program across two fully
// parallel phases joined by one barrier.
//
// Bind phase: each file gets its own symbols.Binder. A Binder allocates a
// fresh Symbols/Scopes arena per call and carries single-file mutable state
// (sourceFile, astFile) that a second concurrent BindFile call on the same
// Binder would corrupt — so one Binder per file is the only safe shape, not
// a missed sharing opportunity. Binders share nothing, so this phase runs
// with no synchronization at all.
//
// Check phase: every file gets its own CheckerState and its own defs.Store.
// A Binder numbers SymbolIDs from 1 independently per file, so a single
// Store keyed by raw SymbolID would alias unrelated symbols from different
// files onto the same DefID; per-file stores avoid that at the cost of
// cross-file nominal resolution (importing a class declared in another file
// and resolving its Lazy(DefID) across the file boundary is not
// implemented here — libBinder/libScope, installed on every file's
// CheckerState via SetLib, is the only cross-file name resolution this
// checker does today). All files do share one
// types.Interner, relations.Relations and narrow.Narrower, so structurally
// identical types occurring in different files still hash-cons to the same
// TypeID rather than each file growing its own copy. Neither Interner nor
// Relations guards its own mutation with a lock, so check-phase goroutines
// serialize around a single program-wide mutex held only for the CheckFile
// call itself; binding and per-file diagnostic bookkeeping happen outside
// it. This trades true check-phase parallelism for correctness without a
// blind fine-grained locking retrofit across every Interner/Relations
// method.
func CheckProgram(ctx context.Context, strings *source.Interner, builder *ast.Builder, files []ProgramFile, libBinder *symbols.Binder, libScope symbols.ScopeID, opts Options) ([]*ProgramResult, *diag.Bag, error) {
	results := make([]*ProgramResult, len(files))

	bindGroup, bindCtx := errgroup.WithContext(ctx)
	for i, pf := range files {
		i, pf := i, pf
		bindGroup.Go(func() error {
			if err := bindCtx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(opts.maxDiagnostics())
			binder := symbols.NewBinder(builder.Items, builder.Stmts, builder.Exprs, strings, &diag.BagReporter{Bag: bag})
			scope := binder.BindFile(pf.Source, pf.ASTID, pf.AST)
			results[i] = &ProgramResult{File: pf, Scope: scope, Bag: bag, binder: binder}
			return nil
		})
	}
	if err := bindGroup.Wait(); err != nil {
		return nil, nil, err
	}

	in := types.NewInterner()
	rel := relations.New(in, strings)
	narr := narrow.New(in, rel, strings)
	var checkMu sync.Mutex

	checkGroup, checkCtx := errgroup.WithContext(ctx)
	for _, res := range results {
		res := res
		checkGroup.Go(func() error {
			if err := checkCtx.Err(); err != nil {
				return err
			}
			reporter := &diag.BagReporter{Bag: res.Bag}
			cs := NewCheckerStateShared(strings, builder, res.binder, in, defs.New(), rel, narr, reporter, opts)
			cs.SetLib(libBinder, libScope)

			checkMu.Lock()
			cs.CheckFile(res.File.AST, res.Scope)
			checkMu.Unlock()

			res.State = cs
			res.binder = nil
			return nil
		})
	}
	if err := checkGroup.Wait(); err != nil {
		return nil, nil, err
	}

	merged := diag.NewBag(0)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()

	return results, merged, nil
}
