// Package narrow implements the pure (TypeId, TypeGuard) -> TypeId
// functions flow analysis composes along every antecedent edge: each Guard
// variant below corresponds to one row of the guard table the flow
// analyzer's AST-to-guard translator produces, and Apply never mutates or
// looks anything up beyond the interner and the relation engine (subtype
// for Instanceof/Predicate, assignability for LiteralEquality and
// Discriminant).
package narrow

import (
	"surge/internal/relations"
	"surge/internal/source"
	"surge/internal/types"
)

// Kind identifies which guard Apply should evaluate.
type Kind uint8

const (
	KindTypeof Kind = iota
	KindInstanceof
	KindLiteralEquality
	KindNullishEquality
	KindDiscriminant
	KindPredicate
	KindTruthy
	KindArray
	KindInProperty
	KindArrayElementPredicate
)

// TypeofTag enumerates the strings a `typeof` guard compares against.
type TypeofTag uint8

const (
	TypeofString TypeofTag = iota
	TypeofNumber
	TypeofBoolean
	TypeofBigInt
	TypeofSymbol
	TypeofUndefined
	TypeofObject
	TypeofFunction
)

// Guard is a tagged union over the guard shapes spec §4.5 lists; only the
// fields relevant to Kind are read.
type Guard struct {
	Kind Kind

	Typeof  TypeofTag
	Target  types.TypeID // Instanceof's T, Predicate's type_id (NoTypeID if absent)
	Literal types.TypeID // LiteralEquality's L
	Path    []source.StringID
	Value   types.TypeID // Discriminant's expected value
	Asserts bool         // Predicate without an explicit type_id
	Element types.TypeID // ArrayElementPredicate's narrowed element type
}

// Narrower evaluates guards against the shared interner, relation cache,
// and string table (string-literal text backs the Truthy falsy-literal
// checks).
type Narrower struct {
	in      *types.Interner
	rel     *relations.Relations
	strings *source.Interner
}

func New(in *types.Interner, rel *relations.Relations, strings *source.Interner) *Narrower {
	return &Narrower{in: in, rel: rel, strings: strings}
}

// Apply narrows declared under guard g in the given sense (true/false
// branch). The result is always a subtype of declared (narrowing soundness,
// spec §8): every helper below filters or replaces union members, never
// introduces a member absent from the source type.
func (n *Narrower) Apply(declared types.TypeID, g Guard, sense bool) types.TypeID {
	switch g.Kind {
	case KindTypeof:
		return n.applyTypeof(declared, g.Typeof, sense)
	case KindInstanceof:
		return n.applyInstanceof(declared, g.Target, sense)
	case KindLiteralEquality:
		return n.applyLiteralEquality(declared, g.Literal, sense)
	case KindNullishEquality:
		return n.applyNullishEquality(declared, sense)
	case KindDiscriminant:
		return n.applyDiscriminant(declared, g.Path, g.Value, sense)
	case KindPredicate:
		return n.applyPredicate(declared, g, sense)
	case KindTruthy:
		return n.applyTruthy(declared, sense)
	case KindArray:
		return n.applyArray(declared, sense)
	case KindInProperty:
		return n.applyInProperty(declared, g.Path, sense)
	case KindArrayElementPredicate:
		return n.applyArrayElementPredicate(declared, g.Element, sense)
	}
	return declared
}

// members decomposes t into its union members, or a single-element slice
// if t is not a union.
func (n *Narrower) members(t types.TypeID) []types.TypeID {
	if n.in.Kind(t) == types.KindUnion {
		info, ok := n.in.UnionInfo(t)
		if ok {
			return info.Members
		}
	}
	return []types.TypeID{t}
}

// rebuild unions the kept/replacement members back up, collapsing to
// Never when nothing survives (an unreachable branch, e.g. `typeof x ===
// "string"` when x: number).
func (n *Narrower) rebuild(kept []types.TypeID) types.TypeID {
	if len(kept) == 0 {
		return n.in.Builtins().Never
	}
	return n.in.MakeUnion(kept)
}

func (n *Narrower) filter(t types.TypeID, keep func(types.TypeID) bool) types.TypeID {
	var kept []types.TypeID
	for _, m := range n.members(t) {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	return n.rebuild(kept)
}
