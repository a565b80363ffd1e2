// Package flowanalyzer answers get_flow_type queries by walking a
// flow.Graph backward from a program point, composing internal/narrow's
// guard application along TrueCondition/FalseCondition/SwitchClause edges
// and unioning across BranchLabel/LoopLabel merges.
package flowanalyzer

import (
	"surge/internal/ast"
	"surge/internal/flow"
	"surge/internal/narrow"
	"surge/internal/relations"
	"surge/internal/source"
	"surge/internal/types"
)

// maxLoopIterations bounds LOOP_LABEL fixed-point iteration; real programs
// stabilize in 2-3 passes (narrowing only shrinks or grows by a bounded
// number of union members), so this is a runaway guard, not a tuning knob.
const maxLoopIterations = 64

// FlowAnalyzer walks a flow.Graph to resolve a reference's narrowed type at a
// given node, per spec §4.6.
type FlowAnalyzer struct {
	in       *types.Interner
	rel      *relations.Relations
	narrower *narrow.Narrower
	exprs    *ast.Exprs
	strings  *source.Interner

	// exprType resolves the type CheckerState has already computed for an
	// expression node (the ASSIGNMENT case needs the assigned value's
	// type); the analyzer never evaluates expression types itself.
	exprType func(ast.ExprID) (types.TypeID, bool)

	// resolveType looks up a named type (an `instanceof` right-hand
	// identifier) by its binder-resolved name.
	resolveType func(source.StringID) (types.TypeID, bool)

	// resolvePredicate looks up a called function's type-predicate target
	// type, if it declares one (`x is Foo` / `asserts x is Foo`); asserts
	// reports whether the predicate is an assertion form.
	resolvePredicate func(source.StringID) (target types.TypeID, asserts bool, ok bool)

	// cache is the (reference, flow-node) -> TypeId memo spec §4.6 asks
	// for. A dedicated property-access cache and numeric-atom cache are
	// internal/checker's job once it has a concrete node-to-symbol map to
	// key them on; this package only tracks reference paths.
	cache map[cacheKey]types.TypeID
}

type cacheKey struct {
	ref  string
	node flow.NodeID
}

// New constructs a FlowAnalyzer. exprType is required; resolveType and
// resolvePredicate may be nil, in which case instanceof/predicate guards
// that need them are left untranslated and pass their condition through
// unnarrowed.
func New(
	in *types.Interner,
	rel *relations.Relations,
	narrower *narrow.Narrower,
	exprs *ast.Exprs,
	strings *source.Interner,
	exprType func(ast.ExprID) (types.TypeID, bool),
	resolveType func(source.StringID) (types.TypeID, bool),
	resolvePredicate func(source.StringID) (types.TypeID, bool, bool),
) *FlowAnalyzer {
	return &FlowAnalyzer{
		in:               in,
		rel:              rel,
		narrower:         narrower,
		exprs:            exprs,
		strings:          strings,
		exprType:         exprType,
		resolveType:      resolveType,
		resolvePredicate: resolvePredicate,
		cache:            make(map[cacheKey]types.TypeID),
	}
}

// GetFlowType resolves ref's narrowed type at node `at` in g, starting
// from declared. crossesFunctionBoundary and isConst implement closure
// invalidation (spec §4.6): a let/var captured by an enclosing function
// expression discards its narrowing and falls back to declared, since the
// flow graph inside the closure body doesn't dominate the outer
// assignment sites that could invalidate the narrowing.
func (fa *FlowAnalyzer) GetFlowType(ref Reference, declared types.TypeID, g *flow.Graph, at flow.NodeID, crossesFunctionBoundary, isConst bool) types.TypeID {
	if crossesFunctionBoundary && !isConst {
		return declared
	}
	key := cacheKey{ref: ref.key(), node: at}
	if v, ok := fa.cache[key]; ok {
		return v
	}
	result := fa.walk(ref, declared, g, at, make(map[flow.NodeID]types.TypeID))
	fa.cache[key] = result
	return result
}

func (fa *FlowAnalyzer) walk(ref Reference, declared types.TypeID, g *flow.Graph, id flow.NodeID, assume map[flow.NodeID]types.TypeID) types.TypeID {
	if v, ok := assume[id]; ok {
		return v
	}
	n := g.Get(id)
	if n == nil {
		return declared
	}

	switch n.Kind {
	case flow.KindStart:
		return declared

	case flow.KindAssignment:
		if target, ok := ReferenceOf(fa.exprs, n.Target); ok && target.Equal(ref) {
			assigned, ok := fa.exprType(n.Value)
			if !ok {
				return fa.walkSingleAntecedent(ref, declared, g, n, assume)
			}
			if n.IsConst {
				return assigned
			}
			return fa.widen(assigned)
		}
		return fa.walkSingleAntecedent(ref, declared, g, n, assume)

	case flow.KindTrueCondition:
		prior := fa.walkSingleAntecedent(ref, declared, g, n, assume)
		return fa.applyCondition(ref, prior, n.Condition, true)

	case flow.KindFalseCondition:
		prior := fa.walkSingleAntecedent(ref, declared, g, n, assume)
		return fa.applyCondition(ref, prior, n.Condition, false)

	case flow.KindBranchLabel:
		if len(n.Antecedents) == 0 {
			return declared
		}
		members := make([]types.TypeID, 0, len(n.Antecedents))
		for _, ante := range n.Antecedents {
			members = append(members, fa.walk(ref, declared, g, ante, assume))
		}
		return fa.in.MakeUnion(members)

	case flow.KindLoopLabel:
		return fa.fixpointLoop(ref, declared, g, id, n, assume)

	case flow.KindSwitchClause:
		prior := fa.walkSingleAntecedent(ref, declared, g, n, assume)
		return fa.applySwitchClause(ref, prior, n)
	}
	return declared
}

func (fa *FlowAnalyzer) walkSingleAntecedent(ref Reference, declared types.TypeID, g *flow.Graph, n *flow.Node, assume map[flow.NodeID]types.TypeID) types.TypeID {
	if len(n.Antecedents) == 0 {
		return declared
	}
	return fa.walk(ref, declared, g, n.Antecedents[0], assume)
}

// fixpointLoop evaluates a LOOP_LABEL: Antecedents[0] is the pre-loop
// entry edge, Antecedents[1:] are back edges from the body (and from any
// `continue`). The first pass assumes the loop label itself resolves to
// `never` (no iteration has completed yet); each subsequent pass feeds the
// previous result back in, stopping once the union stops changing.
func (fa *FlowAnalyzer) fixpointLoop(ref Reference, declared types.TypeID, g *flow.Graph, id flow.NodeID, n *flow.Node, assume map[flow.NodeID]types.TypeID) types.TypeID {
	if len(n.Antecedents) == 0 {
		return declared
	}
	entry := fa.walk(ref, declared, g, n.Antecedents[0], assume)
	backEdges := n.Antecedents[1:]
	if len(backEdges) == 0 {
		return entry
	}

	current := fa.in.Builtins().Never
	for iter := 0; iter < maxLoopIterations; iter++ {
		localAssume := make(map[flow.NodeID]types.TypeID, len(assume)+1)
		for k, v := range assume {
			localAssume[k] = v
		}
		localAssume[id] = current

		members := make([]types.TypeID, 0, len(backEdges)+1)
		members = append(members, entry)
		for _, be := range backEdges {
			members = append(members, fa.walk(ref, declared, g, be, localAssume))
		}
		next := fa.in.MakeUnion(members)
		if next == current {
			return next
		}
		current = next
	}
	return current
}

// applySwitchClause derives a guard from the clause's discriminant
// expression and case value(s) per spec §4.6. A `default:` clause
// (CaseValues empty) carries no elimination information on its own — full
// exhaustive narrowing of the default arm would need every sibling
// clause's values, which the switch-exhaustiveness check in
// internal/checker computes separately — so it passes the prior flow type
// through unchanged.
func (fa *FlowAnalyzer) applySwitchClause(ref Reference, declared types.TypeID, n *flow.Node) types.TypeID {
	if len(n.CaseValues) == 0 {
		return declared
	}
	full, ok := ReferenceOf(fa.exprs, n.Condition)
	if !ok {
		return declared
	}
	guardRef := full
	discriminantPath := full.Path
	isMember := len(full.Path) > 1
	if isMember {
		guardRef = full.Root()
		discriminantPath = full.Path[1:]
	}
	if !guardRef.Equal(ref) {
		return declared
	}

	results := make([]types.TypeID, 0, len(n.CaseValues))
	for _, cv := range n.CaseValues {
		litType, ok := fa.literalTypeOf(cv)
		if !ok {
			return declared
		}
		var g narrow.Guard
		if isMember {
			g = narrow.Guard{Kind: narrow.KindDiscriminant, Path: discriminantPath, Value: litType}
		} else {
			g = narrow.Guard{Kind: narrow.KindLiteralEquality, Literal: litType}
		}
		results = append(results, fa.narrower.Apply(declared, g, true))
	}
	return fa.in.MakeUnion(results)
}

// widen drops literal-type freshness on reassignment to a let/var binding:
// after `let x = 1; x = 2`, the flow type at the second assignment is
// `number`, not the literal `2` (a later read can't assume the literal
// survives past the reassignment site the way it would for `const`).
func (fa *FlowAnalyzer) widen(t types.TypeID) types.TypeID {
	b := fa.in.Builtins()
	switch fa.in.Kind(t) {
	case types.KindLiteralString:
		return b.String
	case types.KindLiteralNumber:
		return b.Number
	case types.KindLiteralBoolean:
		return b.Boolean
	case types.KindLiteralBigInt:
		return b.BigInt
	}
	return t
}
