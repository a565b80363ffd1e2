// Package defs holds the definition store: a stable DefId for every named
// declaration (class, interface, type alias, enum, module, function,
// variable) the binder discovers, a bidirectional DefId<->SymbolId mapping,
// and the lazily-populated DefId->TypeId body map that Lazy(DefId) types
// resolve through.
package defs

import (
	"fmt"

	"surge/internal/symbols"
	"surge/internal/types"
)

// Store allocates and tracks DefIds for one file: SymbolIDs are numbered
// per file, so checker.CheckProgram gives every file its own Store even
// though all files share one types.Interner.
type Store struct {
	// bySymbol/byDef mirror each other; DefId<->SymbolId is a bijection.
	bySymbol map[symbols.SymbolID]types.DefID
	byDef    []defEntry
}

type defEntry struct {
	symbol symbols.SymbolID
	body   types.TypeID // NoTypeID until the declaration has been evaluated
	kind   Kind
}

// Kind classifies what sort of declaration a DefId stands for, mirroring
// the symbol flag that produced it.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindClass
	KindInterface
	KindTypeAlias
	KindEnum
	KindModule
	KindFunction
	KindVariable
)

// New creates an empty definition store. Slot 0 is reserved so
// types.NoDefID never aliases a real entry.
func New() *Store {
	return &Store{
		bySymbol: make(map[symbols.SymbolID]types.DefID),
		byDef:    make([]defEntry, 1),
	}
}

// Declare allocates (or returns the existing) DefId for a symbol. Calling
// Declare twice for the same SymbolID is idempotent, which matters for
// merged declarations (an interface augmented twice still owns one DefId).
func (s *Store) Declare(sym symbols.SymbolID, kind Kind) types.DefID {
	if existing, ok := s.bySymbol[sym]; ok {
		return existing
	}
	id := types.DefID(len(s.byDef))
	s.byDef = append(s.byDef, defEntry{symbol: sym, body: types.NoTypeID, kind: kind})
	s.bySymbol[sym] = id
	return id
}

// Symbol returns the SymbolID a DefId was allocated for.
func (s *Store) Symbol(id types.DefID) (symbols.SymbolID, bool) {
	if int(id) <= 0 || int(id) >= len(s.byDef) {
		return symbols.NoSymbolID, false
	}
	return s.byDef[id].symbol, true
}

// DefOf returns the DefId already allocated for a symbol, if any.
func (s *Store) DefOf(sym symbols.SymbolID) (types.DefID, bool) {
	id, ok := s.bySymbol[sym]
	return id, ok
}

// Kind returns the declaration kind a DefId stands for.
func (s *Store) Kind(id types.DefID) Kind {
	if int(id) <= 0 || int(id) >= len(s.byDef) {
		return KindUnknown
	}
	return s.byDef[id].kind
}

// Body returns the declaration's resolved type, or NoTypeID if it has not
// been evaluated yet (the Lazy(DefId) case).
func (s *Store) Body(id types.DefID) types.TypeID {
	if int(id) <= 0 || int(id) >= len(s.byDef) {
		return types.NoTypeID
	}
	return s.byDef[id].body
}

// SetBody records the evaluated type for a declaration. Evaluating the
// same DefId twice with different results is an invariant violation (the
// declaration's shape cannot change mid-check) and returns an error rather
// than silently overwriting, per the "internal errors never panic in
// library code" rule.
func (s *Store) SetBody(id types.DefID, body types.TypeID) error {
	if int(id) <= 0 || int(id) >= len(s.byDef) {
		return fmt.Errorf("defs: SetBody: invalid DefId %d", id)
	}
	entry := &s.byDef[id]
	if entry.body != types.NoTypeID && entry.body != body {
		return fmt.Errorf("defs: SetBody: DefId %d body already resolved to %v, got %v", id, entry.body, body)
	}
	entry.body = body
	return nil
}

// Len reports the number of allocated definitions, excluding the sentinel.
func (s *Store) Len() int { return len(s.byDef) - 1 }
