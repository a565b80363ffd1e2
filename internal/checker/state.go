// Package checker implements the semantic core of a TypeScript-compatible
// type checker: it binds a parsed program, interns its types, and drives
// the relation/narrowing/flow engines to answer get_type_of_node and
// is_assignable_to queries, emitting diagnostics along the way.
//
// CheckerState is the orchestrator a single file (or, via CheckProgram, a
// whole multi-file program) is checked through. Its shape mirrors the
// teacher's typeChecker: one struct aggregating every cache, index, and
// counter a check pass needs. CheckProgram builds one CheckerState per
// file; only the type interner and the relation/narrowing engines are
// shared between them.
package checker

import (
	"surge/internal/ast"
	"surge/internal/defs"
	"surge/internal/diag"
	"surge/internal/flow"
	"surge/internal/flowanalyzer"
	"surge/internal/narrow"
	"surge/internal/relations"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/trace"
	"surge/internal/types"
)

// Options configures a checker run. Fields default to tsc's own defaults
// (strict-adjacent but not --strict) when left zero-valued; SoundMode
// flips on the sound-mode TS9xxx diagnostics the checker implements.
type Options struct {
	// StrictNullChecks is carried from the manifest/CLI but is not read by
	// the checker or the relation engine: it changes no diagnostic, and
	// `null`/`undefined` assignability is the same with it on or off.
	StrictNullChecks bool
	// NoImplicitAny is carried from the manifest/CLI but is not read by the
	// checker: no TS7006/TS7022 diagnostic is reported with it on or off.
	NoImplicitAny bool
	// StrictFunctionTypes is carried from the manifest/CLI but is not read
	// by the checker or the relation engine: parameter variance is the same
	// with it on or off.
	StrictFunctionTypes bool
	// SoundMode enables TS9006 (a switch with no default clause). It is the
	// only TS9xxx check it gates; excess-property widening on fresh object
	// literals, bivariant method params and any-laundering are not reported.
	SoundMode bool
	// MaxRecursionDepth bounds type evaluation/relation recursion before
	// the checker reports TS9005 and falls back to `any` rather than
	// overflowing the Go call stack on a pathological recursive type.
	MaxRecursionDepth int
	// Tracer receives phase spans for this run, or nil to disable tracing.
	Tracer trace.Tracer
	// MaxDiagnostics bounds each file's diagnostic bag, the same way the
	// teacher's own MaxDiagnostics bounds parallel_diagnose's per-file bags.
	MaxDiagnostics int
}

// DefaultMaxRecursionDepth is the ceiling CheckProgram applies when
// Options.MaxRecursionDepth is left at zero.
const DefaultMaxRecursionDepth = 1000

// DefaultMaxDiagnostics is the ceiling applied when Options.MaxDiagnostics
// is left at zero.
const DefaultMaxDiagnostics = 2000

func (o Options) recursionLimit() int {
	if o.MaxRecursionDepth > 0 {
		return o.MaxRecursionDepth
	}
	return DefaultMaxRecursionDepth
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return DefaultMaxDiagnostics
}

// nodeTypeKey caches a computed expression type by (expr, scope) pair: the
// same expression node can be visited from more than one flow query, and
// scope distinguishes generic-instantiation environments from each other
// the way the teacher's typeCacheKey distinguishes Type/Scope/Env.
type nodeTypeKey struct {
	Expr  ast.ExprID
	Scope symbols.ScopeID
}

// funcFlowEntry caches the flow graph built for one function-like body,
// keyed (in CheckerState.funcFlow) by the body statement that owns it.
type funcFlowEntry struct {
	graph *flow.Graph
}

// CheckerState is the orchestrator a program (or a single standalone file)
// is checked through: it owns the type interner, the definition store, the
// subtype/assignability relation engine, the narrowing and flow-analysis
// engines, and every cache a check pass consults or populates.
type CheckerState struct {
	Options Options

	Strings *source.Interner
	Builder *ast.Builder

	Binder *symbols.Binder

	Types *types.Interner
	Defs  *defs.Store
	Rel   *relations.Relations
	Narr  *narrow.Narrower

	Reporter diag.Reporter
	tracer   trace.Tracer

	// libScope is the ambient declaration scope holding every lib's unified
	// symbol table (internal/libs populates it before any user file is
	// checked); NoScopeID when checking without a lib context. It is a
	// ScopeID into libBinder's own Scopes arena, not cs.Binder's — a file's
	// Binder and the lib unifier's Binder are different Binder instances
	// with independently numbered scope/symbol arenas, so libScope can only
	// ever be resolved through libBinder.
	libScope  symbols.ScopeID
	libBinder *symbols.Binder

	// nodeTypes memoizes get_type_of_node results.
	nodeTypes map[nodeTypeKey]types.TypeID
	// inProgress marks a node currently being evaluated, breaking
	// self-referential inference cycles (`const a = { b: a }`) by handing
	// back `any` rather than recursing forever.
	inProgress map[nodeTypeKey]bool

	// symbolTypes caches a declared (unnarrowed) type per symbol, the
	// counterpart to Symbol.Type for symbols the binder didn't already
	// stamp (destructured bindings, catch parameters inferred from a
	// thrown type).
	symbolTypes map[symbols.SymbolID]types.TypeID

	// exprTypeByID records the last scope-independent result exprType
	// computed for a node, so flowExprType (which flowanalyzer calls with
	// only an ExprID, no scope) can answer without re-deriving one. Sound
	// for the overwhelming majority of expressions, which are only ever
	// evaluated in the one scope they lexically sit in; a generic function
	// instantiated more than once over the same body is the one case this
	// approximates rather than tracks exactly.
	exprTypeByID map[ast.ExprID]types.TypeID

	// currentScope is the scope the checker is evaluating within right
	// now, used by resolveTypeName as a best-effort lookup context for
	// narrowing guards (`instanceof Foo`) that only carry a bare name.
	currentScope symbols.ScopeID

	// defTypeParams records, per DefID, the type-parameter TypeIDs its
	// declaration introduced, so reduceType's Application case can
	// substitute them with a generic instantiation's concrete arguments.
	defTypeParams map[types.DefID][]types.TypeID

	// funcFlow caches one flow.Graph per function-like body.
	funcFlow map[ast.StmtID]*funcFlowEntry
	flowAt   map[ast.ExprID]flowSite

	flowAnalyzer *flowanalyzer.FlowAnalyzer

	// labels is the active labeled-statement stack, innermost last, used
	// to validate `break label`/`continue label` targets (TS1344 when a
	// label doesn't exist or doesn't enclose a valid jump).
	labels []labelFrame
	// loopDepth/switchDepth track enclosing iteration/switch statements
	// for bare (unlabeled) break/continue validation (TS1104/TS1105).
	loopDepth   int
	switchDepth int

	// depth is the current type-evaluation recursion depth, checked
	// against Options.recursionLimit() by guardDepth.
	depth int

	// aliasInProgress marks a type-alias DefID currently being resolved
	// by reduceType's Lazy case, so a directly self-referential alias
	// (`type T = T`, disallowed by tsc but not yet diagnosed here) resolves
	// to `any` at the cycle point instead of recursing forever. Class/
	// interface/enum Lazy types never hit this: their Body is an Object/
	// Callable shape that itself bottoms out without re-entering Lazy.
	aliasInProgress map[types.DefID]bool
}

// labelFrame is one entry of the active labeled-statement stack.
type labelFrame struct {
	name     source.StringID
	isLoop   bool
	isSwitch bool
}

// flowSite records where in a function's flow graph an expression node
// sits, so get_type_of_node can resolve flow-narrowed types for it without
// the caller re-deriving its graph position.
type flowSite struct {
	graph *flow.Graph
	node  flow.NodeID
	crossesFunctionBoundary bool
}

// NewCheckerState constructs a checker orchestrator sharing the given
// string interner, AST builder, and binder (already run over the program's
// files). The type interner, definition store, and relation/narrowing
// engines are created fresh and wired together: the relation engine's
// evaluator is installed to reduce Lazy/Application/Mapped/Conditional/
// IndexedAccess/KeyOf types through this CheckerState's own evalType logic.
func NewCheckerState(strings *source.Interner, builder *ast.Builder, binder *symbols.Binder, reporter diag.Reporter, opts Options) *CheckerState {
	in := types.NewInterner()
	rel := relations.New(in, strings)
	narr := narrow.New(in, rel, strings)
	return newCheckerState(strings, builder, binder, in, defs.New(), rel, narr, reporter, opts)
}

// NewCheckerStateShared builds a CheckerState for one file of a multi-file
// CheckProgram run: the type interner, definition store, and relation/
// narrowing engines are passed in rather than built fresh. CheckProgram
// shares the interner and relation/narrowing engines across files, so
// structurally identical types hash-cons to the same TypeID, and passes each
// file its own definition store; every per-file mutable cache (node types,
// labels, depth counters, the flow graph table) stays private to this file's
// CheckerState.
// binder is this file's own Binder — each file gets an independent symbol
// arena, so cross-file name resolution is not attempted here (see
// CheckProgram's doc comment).
func NewCheckerStateShared(strings *source.Interner, builder *ast.Builder, binder *symbols.Binder, in *types.Interner, store *defs.Store, rel *relations.Relations, narr *narrow.Narrower, reporter diag.Reporter, opts Options) *CheckerState {
	return newCheckerState(strings, builder, binder, in, store, rel, narr, reporter, opts)
}

func newCheckerState(strings *source.Interner, builder *ast.Builder, binder *symbols.Binder, in *types.Interner, store *defs.Store, rel *relations.Relations, narr *narrow.Narrower, reporter diag.Reporter, opts Options) *CheckerState {
	cs := &CheckerState{
		Options:         opts,
		Strings:         strings,
		Builder:         builder,
		Binder:          binder,
		Types:           in,
		Defs:            store,
		Rel:             rel,
		Narr:            narr,
		Reporter:        reporter,
		tracer:          opts.Tracer,
		nodeTypes:       make(map[nodeTypeKey]types.TypeID),
		inProgress:      make(map[nodeTypeKey]bool),
		symbolTypes:     make(map[symbols.SymbolID]types.TypeID),
		exprTypeByID:    make(map[ast.ExprID]types.TypeID),
		defTypeParams:   make(map[types.DefID][]types.TypeID),
		funcFlow:        make(map[ast.StmtID]*funcFlowEntry),
		flowAt:          make(map[ast.ExprID]flowSite),
		aliasInProgress: make(map[types.DefID]bool),
	}
	rel.SetEvaluator(cs.reduceType)
	cs.flowAnalyzer = flowanalyzer.New(in, rel, narr, builder.Exprs, strings,
		cs.flowExprType, cs.resolveTypeName, cs.resolvePredicate)
	return cs
}

// SetLib installs the ambient lib context every file of a program checks
// against: binder is the unified lib Binder (internal/libs), scope the
// scope holding its merged symbol table. Called once per file's
// CheckerState before CheckFile; a nil binder or invalid scope leaves
// resolveTypeName's lib fallback inert, the same as never calling this.
func (cs *CheckerState) SetLib(binder *symbols.Binder, scope symbols.ScopeID) {
	cs.libBinder = binder
	cs.libScope = scope
}

// phase wraps a setup step in a trace span the way the teacher's run()
// method does, returning a closure that ends the span; callers defer or
// directly invoke the returned func.
func (cs *CheckerState) phase(name string) func() {
	span := trace.Begin(cs.tracer, trace.ScopePass, name, 0)
	return func() { span.End("") }
}

// CheckFile runs the full declaration-registration + item-walk pass over a
// single bound file, in the teacher's run()-shaped sequence: register every
// top-level declaration's shape first (so mutually-recursive classes/
// interfaces/aliases resolve regardless of declaration order), then walk
// each item to check its body and emit diagnostics. fileScope is the
// ScopeID BindFile returned for this file.
func (cs *CheckerState) CheckFile(astFile *ast.File, fileScope symbols.ScopeID) {
	done := cs.phase("register_declarations")
	for _, itemID := range astFile.Items {
		cs.registerDeclShape(itemID, fileScope)
	}
	done()

	done = cs.phase("check_items")
	for _, itemID := range astFile.Items {
		cs.checkItem(itemID, fileScope)
	}
	done()
}

// guardDepth increments the recursion counter and reports TS9005 once it
// crosses Options.recursionLimit(), returning false so the caller can bail
// out to an `any` fallback instead of recursing further. Every recursive
// evalType/Subtype-adjacent entry point that isn't already bounded by the
// relation engine's own cycle detection should call this.
func (cs *CheckerState) guardDepth(at source.Span) bool {
	cs.depth++
	if cs.depth > cs.Options.recursionLimit() {
		cs.report(diag.TS9005, at, "Type instantiation is excessively deep and possibly infinite.")
		return false
	}
	return true
}

func (cs *CheckerState) releaseDepth() { cs.depth-- }

// report emits a diagnostic through the configured reporter; a nil
// reporter silently drops it (used by tests that only want a resulting
// type, not diagnostics).
func (cs *CheckerState) report(code diag.Code, span source.Span, msg string) {
	if cs.Reporter == nil {
		return
	}
	diag.ReportError(cs.Reporter, code, span, msg).Emit()
}
