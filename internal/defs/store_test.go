package defs

import (
	"testing"

	"surge/internal/symbols"
	"surge/internal/types"
)

func TestDeclareIsIdempotentPerSymbol(t *testing.T) {
	s := New()
	a := s.Declare(symbols.SymbolID(5), KindClass)
	b := s.Declare(symbols.SymbolID(5), KindClass)
	if a != b {
		t.Fatalf("Declare(same symbol) = %v, %v want equal", a, b)
	}
	if sym, ok := s.Symbol(a); !ok || sym != symbols.SymbolID(5) {
		t.Fatalf("Symbol(%v) = %v, %v", a, sym, ok)
	}
}

func TestSetBodyRejectsConflictingResolution(t *testing.T) {
	s := New()
	id := s.Declare(symbols.SymbolID(1), KindTypeAlias)
	if err := s.SetBody(id, types.TypeID(10)); err != nil {
		t.Fatalf("first SetBody: %v", err)
	}
	if err := s.SetBody(id, types.TypeID(10)); err != nil {
		t.Fatalf("idempotent SetBody: %v", err)
	}
	if err := s.SetBody(id, types.TypeID(11)); err == nil {
		t.Fatalf("expected error re-resolving DefId body to a different type")
	}
}

func TestBodyIsNoTypeIDUntilResolved(t *testing.T) {
	s := New()
	id := s.Declare(symbols.SymbolID(2), KindFunction)
	if got := s.Body(id); got != types.NoTypeID {
		t.Fatalf("Body before SetBody = %v, want NoTypeID", got)
	}
}
