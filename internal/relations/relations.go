// Package relations implements the two structural relations the checker
// needs: subtype (declaration-site strictness) and assignability
// (call/assignment-site leniency), both defined by case analysis over
// types.TypeID pairs with coinductive cycle breaking and a shared result
// cache, following the interning package's own side-table-and-map idiom.
package relations

import (
	"surge/internal/source"
	"surge/internal/types"
)

// pairKey identifies one (source, target) relation query for caching and
// cycle detection. Subtype and assignability results are kept in separate
// caches since the same pair can have different answers under each relation.
type pairKey struct {
	S, T types.TypeID
}

// Relations holds the relation cache and the evaluator hook used to reduce
// compound types (IndexedAccess/KeyOf/Mapped/Conditional/Application)
// before structural comparison. CheckProgram shares one Relations across
// every file's CheckerState (NewCheckerState builds a private one), which
// works because the cache is keyed purely by TypeID pairs of the shared
// interner. The caches are plain maps with no locking; CheckProgram runs
// each CheckFile call under one mutex.
type Relations struct {
	in      *types.Interner
	strings *source.Interner

	subtypeCache    map[pairKey]bool
	assignableCache map[pairKey]bool
	evaluate        Evaluator
}

// Evaluator reduces a compound type to its structural form (or to a
// remaining Lazy if it cannot be reduced further) before a relation check
// inspects it. internal/checker supplies the concrete implementation (it
// alone has access to the type environment and definition store); nil is
// accepted and treated as "no further reduction possible", which is
// correct for any test or caller that never constructs Mapped/Conditional/
// Application/IndexedAccess/KeyOf/Lazy types.
type Evaluator func(id types.TypeID) types.TypeID

// New constructs a Relations instance over the shared interner and string
// table (strings resolves the text spans of template-literal types and the
// text of string literals; pass nil if the caller never constructs
// template-literal types, in which case templateMatchesLiteral reports no
// match for any literal, while templateMatchesTemplate, which compares span
// IDs only, is unaffected). Pass an Evaluator (or nil) via
// SetEvaluator once the caller has one available.
func New(in *types.Interner, strings *source.Interner) *Relations {
	return &Relations{
		in:              in,
		strings:         strings,
		subtypeCache:    make(map[pairKey]bool),
		assignableCache: make(map[pairKey]bool),
	}
}

// SetEvaluator installs the compound-type reducer. Call before the first
// Subtype/Assignable query that might involve Mapped/Conditional/
// Application/IndexedAccess/KeyOf/Lazy types.
func (r *Relations) SetEvaluator(eval Evaluator) { r.evaluate = eval }

func (r *Relations) reduce(id types.TypeID) types.TypeID {
	if r.evaluate == nil {
		return id
	}
	return r.evaluate(id)
}

// assumption is the in-progress set threaded through one top-level query,
// per spec §4.4 "Cycle handling": entering a check with a pair already on
// the stack returns true (coinductive hypothesis) rather than recursing
// forever on e.g. `interface Tree { children: Tree[] }`.
type assumption map[pairKey]struct{}

// Subtype reports whether s is a structural subtype of t (S <: T).
func (r *Relations) Subtype(s, t types.TypeID) bool {
	return r.subtypeWith(s, t, make(assumption))
}

// Assignable reports whether a value of type s can be assigned to a
// location of type t, per spec §4.4's assignability extension of subtype.
func (r *Relations) Assignable(s, t types.TypeID) bool {
	return r.assignableWith(s, t, make(assumption))
}

func (r *Relations) subtypeWith(s, t types.TypeID, assume assumption) bool {
	s = r.reduce(s)
	t = r.reduce(t)
	key := pairKey{s, t}
	if cached, ok := r.subtypeCache[key]; ok {
		return cached
	}
	if _, inProgress := assume[key]; inProgress {
		return true
	}
	assume[key] = struct{}{}
	result := r.checkSubtype(s, t, assume)
	delete(assume, key)
	r.subtypeCache[key] = result
	return result
}

func (r *Relations) assignableWith(s, t types.TypeID, assume assumption) bool {
	s = r.reduce(s)
	t = r.reduce(t)
	key := pairKey{s, t}
	if cached, ok := r.assignableCache[key]; ok {
		return cached
	}
	if _, inProgress := assume[key]; inProgress {
		return true
	}
	assume[key] = struct{}{}
	result := r.checkAssignable(s, t, assume)
	delete(assume, key)
	r.assignableCache[key] = result
	return result
}

func (r *Relations) checkAssignable(s, t types.TypeID, assume assumption) bool {
	b := r.in.Builtins()
	if s == b.Any || t == b.Any {
		return true
	}
	return r.checkSubtype(s, t, assume)
}

func (r *Relations) checkSubtype(s, t types.TypeID, assume assumption) bool {
	b := r.in.Builtins()

	if s == t {
		return true
	}
	if t == b.Any {
		return true
	}
	if s == b.Never {
		return true
	}
	if s == b.Any {
		return t == b.Any || t == b.Unknown
	}
	if t == b.Unknown {
		return true
	}

	sKind := r.in.Kind(s)
	tKind := r.in.Kind(t)

	if tKind == types.KindUnion {
		info, _ := r.in.UnionInfo(t)
		for _, member := range info.Members {
			if r.subtypeWith(s, member, assume) {
				return true
			}
		}
		return false
	}
	if sKind == types.KindUnion {
		info, _ := r.in.UnionInfo(s)
		for _, member := range info.Members {
			if !r.subtypeWith(member, t, assume) {
				return false
			}
		}
		return true
	}
	if tKind == types.KindIntersection {
		info, _ := r.in.IntersectionInfo(t)
		for _, member := range info.Members {
			if !r.subtypeWith(s, member, assume) {
				return false
			}
		}
		return true
	}
	if sKind == types.KindIntersection {
		info, _ := r.in.IntersectionInfo(s)
		for _, member := range info.Members {
			if r.subtypeWith(member, t, assume) {
				return true
			}
		}
		return false
	}

	if isLiteralKind(sKind) {
		base := r.in.BaseOfLiteral(s)
		if base == t {
			return true
		}
		if lit, ok := r.in.LiteralInfo(s); ok && isLiteralKind(tKind) {
			other, _ := r.in.LiteralInfo(t)
			return sKind == tKind && lit == other
		}
	}

	switch {
	case sKind == types.KindObject && tKind == types.KindObject:
		return r.objectSubtype(s, t, assume)
	case (sKind == types.KindArray || sKind == types.KindTuple) && tKind == types.KindArray:
		return r.arrayLikeSubtypeArray(s, sKind, t, assume)
	case sKind == types.KindTuple && tKind == types.KindTuple:
		return r.tupleSubtype(s, t, assume)
	case (sKind == types.KindCallable || sKind == types.KindConstructable) &&
		(tKind == types.KindCallable || tKind == types.KindConstructable):
		return r.callableSubtype(s, t, assume, false)
	case sKind == types.KindTypeParameter:
		info, ok := r.in.TypeParamInfo(s)
		if !ok || info.Constraint == types.NoTypeID {
			return false
		}
		return r.subtypeWith(info.Constraint, t, assume)
	case sKind == types.KindTemplateLiteral && isLiteralKind(tKind):
		return r.templateMatchesLiteral(s, t)
	case sKind == types.KindTemplateLiteral && tKind == types.KindTemplateLiteral:
		return r.templateMatchesTemplate(s, t)
	case sKind == types.KindLazy || tKind == types.KindLazy:
		// Unresolved even after reduction (self-referential Lazy); the
		// coinductive assumption-set entry already covers genuine cycles,
		// so two still-unresolved Lazy types are related only if identical.
		return s == t
	}

	return false
}

func isLiteralKind(k types.Kind) bool {
	switch k {
	case types.KindLiteralString, types.KindLiteralNumber, types.KindLiteralBigInt, types.KindLiteralBoolean:
		return true
	default:
		return false
	}
}
