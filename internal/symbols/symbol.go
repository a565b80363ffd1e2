package symbols

import (
	"surge/internal/ast"
	"surge/internal/source"
	"surge/internal/types"
)

// SymbolFlags classifies what declaration space(s) a symbol occupies and
// what kind of declaration produced it, mirroring tsc's SymbolFlags: a
// single name can accumulate several of these across merged declarations
// (e.g. a class occupies both Class and Value; a namespace merged with a
// same-named function occupies Module and Function).
type SymbolFlags uint32

const (
	FlagValue SymbolFlags = 1 << iota
	FlagType
	FlagFunctionScopedVariable // `var`
	FlagBlockScopedVariable    // `let`/`const`
	FlagFunction
	FlagClass
	FlagInterface
	FlagEnum
	FlagEnumMember
	FlagModule // `module`/`namespace` declaration
	FlagTypeAlias
	FlagMethod
	FlagProperty
	FlagAlias // import/re-export binding standing in for another symbol
	FlagTypeParameter
	FlagExportValue
)

func (f SymbolFlags) Has(bit SymbolFlags) bool { return f&bit != 0 }

// IsValue reports whether the symbol can be referenced from an expression
// position.
func (f SymbolFlags) IsValue() bool {
	return f&(FlagValue|FlagFunctionScopedVariable|FlagBlockScopedVariable|FlagFunction|
		FlagClass|FlagEnum|FlagEnumMember|FlagMethod|FlagProperty) != 0
}

// IsType reports whether the symbol can be referenced from a type position.
func (f SymbolFlags) IsType() bool {
	return f&(FlagType|FlagClass|FlagInterface|FlagEnum|FlagTypeAlias|FlagTypeParameter) != 0
}

// mergeableWith reports whether two declarations of the same name are a
// legal TypeScript declaration merge rather than a duplicate-identifier
// error. Interfaces merge with interfaces and with classes; namespaces
// merge with anything; functions merge with functions (overloads). Enums
// are not merged: a second enum declaration of a name is a duplicate.
func (f SymbolFlags) mergeableWith(other SymbolFlags) bool {
	if f.Has(FlagModule) || other.Has(FlagModule) {
		return true
	}
	if f.Has(FlagInterface) && other.Has(FlagInterface) {
		return true
	}
	if f.Has(FlagInterface) && other.Has(FlagClass) || f.Has(FlagClass) && other.Has(FlagInterface) {
		return true
	}
	if f.Has(FlagFunction) && other.Has(FlagFunction) {
		return true // overload signatures
	}
	return false
}

// SymbolDecl pins a single declaration site contributing to a (possibly
// merged) symbol, for diagnostics and go-to-definition style lookups.
type SymbolDecl struct {
	SourceFile source.FileID
	ASTFile    ast.FileID
	Item       ast.ItemID
	Stmt       ast.StmtID
	Expr       ast.ExprID
	Span       source.Span
}

// Symbol describes a named entity reachable from some scope. When several
// declarations merge (interface augmentation, namespace-and-class, function
// overloads), Declarations holds every contributing site in source order
// while Type/Flags reflect the merged result.
type Symbol struct {
	Name         source.StringID
	Flags        SymbolFlags
	Scope        ScopeID
	Type         types.TypeID // value type, if IsValue()
	TypeType     types.TypeID // type-position meaning, if IsType()
	Declarations []SymbolDecl
	// AliasTarget is reserved for FlagAlias symbols (import bindings,
	// re-exports) to name the symbol the alias stands for. The binder
	// leaves it as NoSymbolID and no later pass assigns it.
	AliasTarget SymbolID
	Exported    bool
	Def         types.DefID // backing definition-store entry, for class/interface/enum/alias
}

// FirstDecl returns the symbol's original declaration span, or a zero span
// if it has none recorded.
func (s *Symbol) FirstDecl() source.Span {
	if len(s.Declarations) == 0 {
		return source.Span{}
	}
	return s.Declarations[0].Span
}
