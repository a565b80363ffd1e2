package checker

import (
	"surge/internal/ast"
	"surge/internal/defs"
	"surge/internal/diag"
	"surge/internal/symbols"
	"surge/internal/types"
)

// declSymbol returns the symbol a top-level item declared, if the binder
// recorded one (imports/exports without a default carry none).
func (cs *CheckerState) declSymbol(id ast.ItemID) *symbols.Symbol {
	symID, ok := cs.Binder.NodeSymbols[symbols.NodeRef{Item: id}]
	if !ok {
		return nil
	}
	return cs.Binder.Symbols.Get(symID)
}

func (cs *CheckerState) itemScope(id ast.ItemID) symbols.ScopeID {
	return cs.Binder.NodeScopes[symbols.NodeRef{Item: id}]
}

// registerTypeParams registers an interned type-parameter variable for
// each declared type parameter, binds it back onto the parameter's own
// symbol (declared by the binder into scope's TypeIndex) so references to
// it inside the declaration's body resolve to a concrete TypeID, and
// returns the list in declaration order for defTypeParams bookkeeping.
func (cs *CheckerState) registerTypeParams(scope symbols.ScopeID, ids []ast.TypeParamID, paramAt func(ast.TypeParamID) *ast.TypeParamDecl) []types.TypeID {
	out := make([]types.TypeID, 0, len(ids))
	sc := cs.Binder.Scopes.Get(scope)
	for _, tpID := range ids {
		tp := paramAt(tpID)
		if tp == nil {
			continue
		}
		tpType := cs.Types.RegisterTypeParameter(types.NoDefID, types.TypeParamInfo{})
		out = append(out, tpType)
		if sc != nil {
			if syms := sc.TypeIndex[tp.Name]; len(syms) > 0 {
				if sym := cs.Binder.Symbols.Get(syms[0]); sym != nil {
					sym.TypeType = tpType
				}
			}
		}
	}
	// Constraints/defaults reference sibling type parameters (`<T, U extends
	// T>`), so they're evaluated in a second pass once every parameter in
	// this list already has a TypeType to resolve against.
	for i, tpID := range ids {
		tp := paramAt(tpID)
		if tp == nil || !tp.Constraint.IsValid() || i >= len(out) {
			continue
		}
		cs.Types.SetTypeParamConstraint(out[i], cs.evalType(scope, tp.Constraint))
	}
	return out
}

// registerDeclShape is the first of CheckFile's two passes: it allocates a
// DefID and computes the declared shape for every class/interface/type-
// alias/enum/function/module item, so mutually-recursive top-level
// declarations resolve regardless of source order (registering B's shape
// while evaluating A's body only ever produces a Lazy(DefID) reference,
// never recurses into B's own registration). declScope is the scope this
// item was declared into (a module body's enclosing scope, or the file
// scope at the top level) — needed for the handful of constructs the
// binder itself resolves against the enclosing scope rather than a scope
// of the item's own (enum member initializers, in particular).
func (cs *CheckerState) registerDeclShape(id ast.ItemID, declScope symbols.ScopeID) {
	item := cs.Builder.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemClassDecl:
		cs.registerClassShape(id)
	case ast.ItemInterfaceDecl:
		cs.registerInterfaceShape(id)
	case ast.ItemTypeAliasDecl:
		cs.registerTypeAliasShape(id)
	case ast.ItemEnumDecl:
		cs.registerEnumShape(id, declScope)
	case ast.ItemFunctionDecl:
		cs.registerFunctionShape(id)
	case ast.ItemModuleDecl:
		mod, _ := cs.Builder.Items.Module(id)
		if mod == nil {
			return
		}
		modScope := cs.itemScope(id)
		for _, childID := range mod.Body {
			cs.registerDeclShape(childID, modScope)
		}
	}
}

func (cs *CheckerState) registerClassShape(id ast.ItemID) {
	cls, _ := cs.Builder.Items.Class(id)
	sym := cs.declSymbol(id)
	if cls == nil || sym == nil {
		return
	}
	scope := cs.itemScope(id)
	def := cs.Defs.Declare(cs.mustSymbolID(sym, id), defs.KindClass)
	sym.Def = def
	sym.TypeType = cs.Types.MakeLazy(def)
	cs.defTypeParams[def] = cs.registerTypeParams(scope, cs.Builder.Items.TypeParamIDs(cls.TypeParams), cs.Builder.Items.TypeParam)

	var props []types.PropertyInfo
	var ctorSig *types.SignatureInfo
	for _, mid := range cs.Builder.Items.ClassMemberIDs(cls.Members) {
		m := cs.Builder.Items.ClassMember(mid)
		if m == nil || m.Modifiers&ast.FnStatic != 0 || m.Kind == ast.ClassMemberStaticBlock {
			continue
		}
		if m.Kind == ast.ClassMemberConstructor {
			sig := cs.evalSignature(scope, nil, cs.Builder.Items.ParamIDs(m.Params), ast.NoTypeID, cs.Builder.Items.Param)
			sig.Return = sym.TypeType
			ctorSig = &sig
			// Constructor parameter properties (`constructor(public x:
			// T)`) do not become instance fields: Param carries no
			// accessibility marker in this AST, so every constructor
			// parameter is skipped here.
			continue
		}
		name, _ := cs.Strings.Lookup(m.Name)
		switch m.Kind {
		case ast.ClassMemberProperty:
			props = append(props, types.PropertyInfo{
				Name:     m.Name,
				Type:     cs.evalType(scope, m.Type),
				Optional: m.Modifiers&ast.FnOptional != 0,
				Readonly: m.Modifiers&ast.FnReadonly != 0,
			})
			_ = name
		case ast.ClassMemberMethod, ast.ClassMemberGetter, ast.ClassMemberSetter:
			sig := cs.evalSignature(scope, cs.Builder.Items.TypeParamIDs(m.TypeParams), cs.Builder.Items.ParamIDs(m.Params), m.Type, cs.Builder.Items.Param)
			props = append(props, types.PropertyInfo{
				Name:     m.Name,
				Type:     cs.Types.RegisterCallable([]types.SignatureInfo{sig}, false),
				Optional: m.Modifiers&ast.FnOptional != 0,
				IsMethod: true,
			})
		}
	}
	ownShape := cs.Types.RegisterObject(def, props, nil)
	instance := ownShape
	if cls.Extends.IsValid() {
		base := cs.evalType(scope, cls.Extends)
		instance = cs.Types.MakeIntersection([]types.TypeID{base, ownShape})
	}
	for _, implID := range cs.Builder.Items.TypeIDs(cls.Implements) {
		instance = cs.Types.MakeIntersection([]types.TypeID{instance, cs.evalType(scope, implID)})
	}
	if err := cs.Defs.SetBody(def, instance); err != nil {
		cs.report(diag.TS2300, cls.Span, err.Error())
	}
	if ctorSig == nil {
		ctorSig = &types.SignatureInfo{Return: sym.TypeType}
	}
	sym.Type = cs.Types.RegisterCallable([]types.SignatureInfo{*ctorSig}, true)
}

func (cs *CheckerState) registerInterfaceShape(id ast.ItemID) {
	iface, _ := cs.Builder.Items.Interface(id)
	sym := cs.declSymbol(id)
	if iface == nil || sym == nil {
		return
	}
	scope := cs.itemScope(id)
	def := cs.Defs.Declare(cs.mustSymbolID(sym, id), defs.KindInterface)
	sym.Def = def
	sym.TypeType = cs.Types.MakeLazy(def)
	cs.defTypeParams[def] = cs.registerTypeParams(scope, cs.Builder.Items.TypeParamIDs(iface.TypeParams), cs.Builder.Items.TypeParam)

	shape := cs.evalObjectShape(scope, iface)
	for _, extID := range cs.Builder.Items.TypeIDs(iface.Extends) {
		shape = cs.Types.MakeIntersection([]types.TypeID{cs.evalType(scope, extID), shape})
	}
	if err := cs.Defs.SetBody(def, shape); err != nil {
		cs.report(diag.TS2300, iface.Span, err.Error())
	}
}

func (cs *CheckerState) registerTypeAliasShape(id ast.ItemID) {
	alias, _ := cs.Builder.Items.TypeAliasDecl(id)
	sym := cs.declSymbol(id)
	if alias == nil || sym == nil {
		return
	}
	scope := cs.itemScope(id)
	def := cs.Defs.Declare(cs.mustSymbolID(sym, id), defs.KindTypeAlias)
	sym.Def = def
	sym.TypeType = cs.Types.MakeLazy(def)
	cs.defTypeParams[def] = cs.registerTypeParams(scope, cs.Builder.Items.TypeParamIDs(alias.TypeParams), cs.Builder.Items.TypeParam)
	target := cs.evalType(scope, alias.Target)
	if err := cs.Defs.SetBody(def, target); err != nil {
		cs.report(diag.TS2300, alias.Span, err.Error())
	}
}

func (cs *CheckerState) registerEnumShape(id ast.ItemID, declScope symbols.ScopeID) {
	en, _ := cs.Builder.Items.Enum(id)
	sym := cs.declSymbol(id)
	if en == nil || sym == nil {
		return
	}
	def := cs.Defs.Declare(cs.mustSymbolID(sym, id), defs.KindEnum)
	sym.Def = def

	var memberTypes []types.TypeID
	var props []types.PropertyInfo
	autoValue := 0.0
	for _, mid := range cs.Builder.Items.EnumMemberIDs(en.Members) {
		m := cs.Builder.Items.EnumMember(mid)
		if m == nil {
			continue
		}
		var memberType types.TypeID
		if m.Init.IsValid() {
			memberType = cs.exprType(declScope, m.Init)
			if n, ok := cs.Types.LiteralInfo(memberType); ok && cs.Types.Kind(memberType) == types.KindLiteralNumber {
				autoValue = n.Num + 1
			}
		} else {
			memberType = cs.Types.RegisterLiteralNumber(autoValue)
			autoValue++
		}
		memberTypes = append(memberTypes, memberType)
		props = append(props, types.PropertyInfo{Name: m.Name, Type: memberType, Readonly: true})
	}
	sym.TypeType = cs.Types.MakeLazy(def)
	union := cs.Types.Builtins().Never
	if len(memberTypes) > 0 {
		union = cs.Types.MakeUnion(memberTypes)
	}
	if err := cs.Defs.SetBody(def, union); err != nil {
		cs.report(diag.TS2300, en.Span, err.Error())
	}
	sym.Type = cs.Types.RegisterObject(types.NoDefID, props, nil)
}

func (cs *CheckerState) registerFunctionShape(id ast.ItemID) {
	fn, _ := cs.Builder.Items.Function(id)
	sym := cs.declSymbol(id)
	if fn == nil || sym == nil {
		return
	}
	scope := cs.itemScope(id)
	if !scope.IsValid() {
		// Ambient/overload signature with no body: the binder never gave
		// it its own scope, so type parameters resolve against the
		// declaring scope directly.
		scope = cs.declaringScopeFallback(id)
	}
	def := cs.Defs.Declare(cs.mustSymbolID(sym, id), defs.KindFunction)
	sym.Def = def
	typeParams := cs.registerTypeParams(scope, cs.Builder.Items.TypeParamIDs(fn.TypeParams), cs.Builder.Items.TypeParam)
	cs.defTypeParams[def] = typeParams
	sig := cs.evalSignature(scope, nil, cs.Builder.Items.ParamIDs(fn.Params), fn.ReturnType, cs.Builder.Items.Param)
	sig.TypeParams = typeParams
	sym.Type = cs.Types.RegisterCallable([]types.SignatureInfo{sig}, false)
}

// mustSymbolID recovers a Symbol's own SymbolID by re-resolving it through
// NodeSymbols; Symbol values don't carry their own ID (the arena indexes
// them), so the only handle available here is the NodeRef this item
// declared it under.
func (cs *CheckerState) mustSymbolID(sym *symbols.Symbol, id ast.ItemID) symbols.SymbolID {
	symID, _ := cs.Binder.NodeSymbols[symbols.NodeRef{Item: id}]
	_ = sym
	return symID
}

// declaringScopeFallback returns the nearest enclosing scope recorded for
// an item lacking its own (an ambient function signature with no body gets
// no fnScope from the binder). File-level items fall back to the file's
// module scope, found by walking from scope 1 upward is not available
// here, so this conservatively returns NoScopeID, pushing type-parameter
// resolution to fail closed to `any` rather than guessing a scope.
func (cs *CheckerState) declaringScopeFallback(id ast.ItemID) symbols.ScopeID {
	return symbols.NoScopeID
}
