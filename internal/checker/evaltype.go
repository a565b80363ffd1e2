package checker

import (
	"strconv"

	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/types"
)

// evalType evaluates a type-syntax node (ast.TypeID, living in the parser's
// TypeExprs arena) into an interned semantic type (types.TypeID), resolving
// every TypeRef against scope's type declaration space. This is the bridge
// spec's get_type_of_node needs between syntax and the structural type
// algebra internal/types/internal/relations operate over.
func (cs *CheckerState) evalType(scope symbols.ScopeID, id ast.TypeID) types.TypeID {
	if !id.IsValid() {
		return cs.Types.Builtins().Any
	}
	node := cs.Builder.Types.Get(id)
	if node == nil {
		return cs.Types.Builtins().Any
	}
	if !cs.guardDepth(node.Span) {
		return cs.Types.Builtins().Any
	}
	defer cs.releaseDepth()

	switch node.Kind {
	case ast.TypeRef:
		return cs.evalTypeRef(scope, id)
	case ast.TypeUnion:
		data, _ := cs.Builder.Types.Union(id)
		members := make([]types.TypeID, 0, len(data.Members))
		for _, m := range data.Members {
			members = append(members, cs.evalType(scope, m))
		}
		return cs.Types.MakeUnion(members)
	case ast.TypeIntersection:
		data, _ := cs.Builder.Types.Intersection(id)
		members := make([]types.TypeID, 0, len(data.Members))
		for _, m := range data.Members {
			members = append(members, cs.evalType(scope, m))
		}
		return cs.Types.MakeIntersection(members)
	case ast.TypeArray:
		data, _ := cs.Builder.Types.Array(id)
		return cs.Types.MakeArray(cs.evalType(scope, data.Elem), false)
	case ast.TypeReadonlyArray:
		data, _ := cs.Builder.Types.Array(id)
		return cs.Types.MakeArray(cs.evalType(scope, data.Elem), true)
	case ast.TypeTuple:
		data, _ := cs.Builder.Types.Tuple(id)
		elems := make([]types.TupleElemInfo, 0, len(data.Elems))
		for _, e := range data.Elems {
			elems = append(elems, types.TupleElemInfo{
				Type:     cs.evalType(scope, e.Type),
				Optional: e.Optional,
				Rest:     e.Rest,
			})
		}
		return cs.Types.RegisterTuple(elems, false)
	case ast.TypeFunction:
		return cs.evalSignatureType(scope, id, false)
	case ast.TypeConstructor:
		return cs.evalSignatureType(scope, id, true)
	case ast.TypeObjectLit:
		iface, _ := cs.Builder.Types.ObjectLit(id)
		return cs.evalObjectShape(scope, iface)
	case ast.TypeMapped:
		return cs.evalMappedType(scope, id)
	case ast.TypeConditional:
		data, _ := cs.Builder.Types.Conditional(id)
		return cs.Types.RegisterConditional(types.ConditionalInfo{
			Check:   cs.evalType(scope, data.Check),
			Extends: cs.evalType(scope, data.Extends),
			True:    cs.evalType(scope, data.True),
			False:   cs.evalType(scope, data.False),
		})
	case ast.TypeIndexedAccess:
		data, _ := cs.Builder.Types.IndexedAccess(id)
		return cs.Types.MakeIndexedAccess(cs.evalType(scope, data.Object), cs.evalType(scope, data.Index))
	case ast.TypeKeyOf:
		data, _ := cs.Builder.Types.KeyOf(id)
		return cs.Types.MakeKeyOf(cs.evalType(scope, data.Operand))
	case ast.TypeTypeOf:
		data, _ := cs.Builder.Types.TypeOf(id)
		return cs.exprType(scope, data.Operand)
	case ast.TypeTemplateLiteral:
		data, _ := cs.Builder.Types.TemplateLiteral(id)
		spans := make([]types.TemplateSpan, 0, len(data.Quasis)+len(data.Types))
		for i, q := range data.Quasis {
			spans = append(spans, types.TemplateSpan{Text: q})
			if i < len(data.Types) {
				spans = append(spans, types.TemplateSpan{Hole: cs.evalType(scope, data.Types[i])})
			}
		}
		return cs.Types.RegisterTemplateLiteral(spans)
	case ast.TypeLiteral:
		return cs.evalLiteralType(id)
	case ast.TypeParen:
		data, _ := cs.Builder.Types.Paren(id)
		return cs.evalType(scope, data.Inner)
	case ast.TypeThis:
		// `this` types need a containing class's instance type, which this
		// evaluator does not have in hand (registerClassShape does not pass
		// one down), so `this` always widens to `any`.
		return cs.Types.Builtins().Any
	case ast.TypeInfer:
		data, _ := cs.Builder.Types.Infer(id)
		constraint := types.NoTypeID
		if data.Constraint.IsValid() {
			constraint = cs.evalType(scope, data.Constraint)
		}
		return cs.Types.RegisterTypeParameter(types.NoDefID, types.TypeParamInfo{Constraint: constraint})
	default:
		return cs.Types.Builtins().Any
	}
}

// evalTypeRef resolves a `Name<Args...>` type reference against scope's
// type declaration space. Dotted paths (`NS.Member`) resolve only their
// first segment; qualified-namespace type lookup is out of scope for this
// evaluator and falls back to `any` for the unresolved remainder.
func (cs *CheckerState) evalTypeRef(scope symbols.ScopeID, id ast.TypeID) types.TypeID {
	data, _ := cs.Builder.Types.Ref(id)
	if data == nil || len(data.Path) == 0 {
		return cs.Types.Builtins().Any
	}
	name := data.Path[0]
	if builtin, ok := cs.builtinTypeRef(name); ok {
		return builtin
	}
	symID, ok := cs.Binder.LookupType(scope, name)
	if !ok {
		if text, ok2 := cs.Strings.Lookup(name); ok2 {
			cs.report(diag.TS2304, cs.Builder.Types.Get(id).Span, "Cannot find name '"+text+"'.")
		}
		return cs.Types.Builtins().Any
	}
	if len(data.Path) > 1 {
		return cs.Types.Builtins().Any
	}
	sym := cs.Binder.Symbols.Get(symID)
	if sym == nil {
		return cs.Types.Builtins().Any
	}
	if sym.Flags.Has(symbols.FlagTypeParameter) {
		return sym.TypeType
	}
	args := make([]types.TypeID, 0, len(data.TypeArgs))
	for _, a := range data.TypeArgs {
		args = append(args, cs.evalType(scope, a))
	}
	if len(args) == 0 {
		return cs.Types.MakeLazy(sym.Def)
	}
	return cs.Types.MakeApplication(sym.Def, args)
}

// builtinTypeRef maps TypeScript's lowercase primitive/intrinsic type
// names, which the parser represents as ordinary TypeRef identifiers, to
// their interned builtin TypeID.
func (cs *CheckerState) builtinTypeRef(name source.StringID) (types.TypeID, bool) {
	text, ok := cs.Strings.Lookup(name)
	if !ok {
		return types.NoTypeID, false
	}
	b := cs.Types.Builtins()
	switch text {
	case "any":
		return b.Any, true
	case "unknown":
		return b.Unknown, true
	case "never":
		return b.Never, true
	case "void":
		return b.Void, true
	case "undefined":
		return b.Undefined, true
	case "null":
		return b.Null, true
	case "string":
		return b.String, true
	case "number":
		return b.Number, true
	case "boolean":
		return b.Boolean, true
	case "bigint":
		return b.BigInt, true
	case "symbol", "unique symbol":
		return b.Symbol, true
	case "object":
		return b.EmptyObject, true
	default:
		return types.NoTypeID, false
	}
}

func (cs *CheckerState) evalSignatureType(scope symbols.ScopeID, id ast.TypeID, construct bool) types.TypeID {
	var data *ast.TypeFunctionData
	if construct {
		data, _ = cs.Builder.Types.Constructor(id)
	} else {
		data, _ = cs.Builder.Types.Function(id)
	}
	if data == nil {
		return cs.Types.Builtins().Any
	}
	sig := cs.evalSignature(scope, cs.Builder.Types.TypeParamIDs(data.TypeParams), cs.Builder.Types.ParamIDs(data.Params), data.Return, func(p ast.ParamID) *ast.Param {
		return cs.Builder.Types.Param(p)
	})
	return cs.Types.RegisterCallable([]types.SignatureInfo{sig}, construct)
}

// evalSignature evaluates one call signature's type parameters, parameter
// types, and return type. The paramAt indirection lets this same logic
// serve TypeExprs-owned parameters (function type syntax) and Items/
// Exprs-owned parameters (function/method declarations) without
// duplicating the loop.
func (cs *CheckerState) evalSignature(scope symbols.ScopeID, typeParams []ast.TypeParamID, params []ast.ParamID, ret ast.TypeID, paramAt func(ast.ParamID) *ast.Param) types.SignatureInfo {
	tps := make([]types.TypeID, 0, len(typeParams))
	for range typeParams {
		tps = append(tps, cs.Types.RegisterTypeParameter(types.NoDefID, types.TypeParamInfo{}))
	}
	ps := make([]types.ParamInfo, 0, len(params))
	for _, pid := range params {
		p := paramAt(pid)
		if p == nil {
			continue
		}
		name, _ := cs.Strings.Lookup(p.Name)
		ps = append(ps, types.ParamInfo{
			Name:     name,
			Type:     cs.evalType(scope, p.Type),
			Optional: p.Optional,
			Rest:     p.Rest,
		})
	}
	retType := cs.Types.Builtins().Any
	if ret.IsValid() {
		retType = cs.evalType(scope, ret)
	} else {
		retType = cs.Types.Builtins().Void
	}
	return types.SignatureInfo{TypeParams: tps, Params: ps, Return: retType}
}

func (cs *CheckerState) evalObjectShape(scope symbols.ScopeID, iface *ast.InterfaceDeclItem) types.TypeID {
	if iface == nil {
		return cs.Types.Builtins().EmptyObject
	}
	var props []types.PropertyInfo
	var indexes []types.IndexSignatureInfo
	for _, mid := range cs.Builder.Items.ObjectMemberIDs(iface.Members) {
		m := cs.Builder.Items.ObjectMember(mid)
		if m == nil {
			continue
		}
		switch m.Kind {
		case ast.ObjectMemberIndexSignature:
			kind := types.IndexKeyString
			indexes = append(indexes, types.IndexSignatureInfo{Kind: kind, Value: cs.evalType(scope, m.Type)})
		case ast.ObjectMemberCallSignature, ast.ObjectMemberConstructSignature:
			// Call/construct signatures on an object type are skipped: the
			// evaluated shape carries neither a property nor a signature
			// list for them.
		default:
			name, _ := cs.Strings.Lookup(m.Name)
			props = append(props, types.PropertyInfo{
				Name:     name,
				Type:     cs.evalType(scope, m.Type),
				Optional: m.Optional,
				Readonly: m.Readonly,
				IsMethod: m.Kind == ast.ObjectMemberMethod || m.Kind == ast.ObjectMemberGetter || m.Kind == ast.ObjectMemberSetter,
			})
		}
	}
	return cs.Types.RegisterObject(types.NoDefID, props, indexes)
}

func (cs *CheckerState) evalMappedType(scope symbols.ScopeID, id ast.TypeID) types.TypeID {
	data, _ := cs.Builder.Types.Mapped(id)
	if data == nil {
		return cs.Types.Builtins().Any
	}
	constraint := cs.evalType(scope, data.Constraint)
	param := cs.Types.RegisterTypeParameter(types.NoDefID, types.TypeParamInfo{Constraint: constraint})
	nameType := types.NoTypeID
	if data.NameType.IsValid() {
		nameType = cs.evalType(scope, data.NameType)
	}
	return cs.Types.RegisterMapped(types.MappedInfo{
		TypeParam:   param,
		Constraint:  constraint,
		NameType:    nameType,
		Value:       cs.evalType(scope, data.Value),
		ReadonlyMod: mappedModifier(data.ReadonlyModifier),
		OptionalMod: mappedModifier(data.OptionalModifier),
	})
}

// mappedModifier translates the parser's syntax-level mapped-type modifier
// enum into the interner's semantic one; the two exist separately because
// ast.MappedModifier also needs to represent "no `+`/`-` prefix written"
// while types.MappedModifier only distinguishes the two modifier directions
// from "absent", which map onto each other one-to-one.
func mappedModifier(m ast.MappedModifier) types.MappedModifier {
	switch m {
	case ast.MappedModifierAdd:
		return types.ModifierPlus
	case ast.MappedModifierRemove:
		return types.ModifierMinus
	default:
		return types.ModifierNone
	}
}

func (cs *CheckerState) evalLiteralType(id ast.TypeID) types.TypeID {
	data, _ := cs.Builder.Types.Literal(id)
	if data == nil {
		return cs.Types.Builtins().Any
	}
	raw, _ := cs.Strings.Lookup(data.Raw)
	switch data.Kind {
	case ast.TypeLitString:
		return cs.Types.RegisterLiteralString(raw)
	case ast.TypeLitNumber:
		n, _ := strconv.ParseFloat(raw, 64)
		return cs.Types.RegisterLiteralNumber(n)
	case ast.TypeLitBigInt:
		return cs.Types.RegisterLiteralBigInt(raw)
	case ast.TypeLitBool:
		return cs.Types.RegisterLiteralBoolean(raw == "true")
	case ast.TypeLitNull:
		return cs.Types.Builtins().Null
	case ast.TypeLitUndefined:
		return cs.Types.Builtins().Undefined
	default:
		return cs.Types.Builtins().Any
	}
}
