package checker

import (
	"surge/internal/ast"
	"surge/internal/source"
	"surge/internal/types"
)

// flowExprType is the exprType callback flowanalyzer.New requires: it
// answers with the last scope-independent result exprType computed for id,
// since the flow analyzer only ever has an ast.ExprID to hand back, not the
// scope the expression was evaluated in.
func (cs *CheckerState) flowExprType(id ast.ExprID) (types.TypeID, bool) {
	t, ok := cs.exprTypeByID[id]
	return t, ok
}

// resolveTypeName is the resolveType callback: it resolves a bare type name
// appearing in a narrowing guard (`instanceof Foo`) against the scope the
// checker is currently evaluating, falling back to the lib scope so ambient
// global types (`Error`, `Array`) resolve even from a file scope that
// shadows nothing.
func (cs *CheckerState) resolveTypeName(name source.StringID) (types.TypeID, bool) {
	if cs.currentScope.IsValid() {
		if symID, ok := cs.Binder.LookupType(cs.currentScope, name); ok {
			if sym := cs.Binder.Symbols.Get(symID); sym != nil && sym.TypeType != types.NoTypeID {
				return sym.TypeType, true
			}
		}
	}
	if cs.libBinder != nil && cs.libScope.IsValid() {
		if symID, ok := cs.libBinder.LookupType(cs.libScope, name); ok {
			if sym := cs.libBinder.Symbols.Get(symID); sym != nil && sym.TypeType != types.NoTypeID {
				return sym.TypeType, true
			}
		}
	}
	return types.NoTypeID, false
}

// resolvePredicate is the resolvePredicate callback: it would look up a
// called function's `x is Foo` / `asserts x is Foo` return annotation.
// Neither the AST nor the type model represents type-predicate signatures
// yet (SignatureInfo has no predicate field), so every call guard is left
// untranslated for now; flowanalyzer treats a false ok the same as a nil
// callback and passes the condition through unnarrowed.
func (cs *CheckerState) resolvePredicate(name source.StringID) (types.TypeID, bool, bool) {
	return types.NoTypeID, false, false
}
