package checker

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/symbols"
	"surge/internal/types"
)

// exprType computes an expression's type (the checker's get_type_of_node
// for expression nodes), memoizing by (expr, scope) and breaking
// self-referential inference cycles (`const a = { b: a }`) by handing back
// `any` at the cycle point rather than recursing forever. It infers
// bottom-up from literal/operator shape. Identifier/member reads report a
// symbol's declared type, not its flow-narrowed one: flowwiring.go supplies
// the flowanalyzer callbacks, but no function's flow graph is built and
// GetFlowType is not called from this package.
func (cs *CheckerState) exprType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	if !id.IsValid() {
		return cs.Types.Builtins().Any
	}
	key := nodeTypeKey{Expr: id, Scope: scope}
	if t, ok := cs.nodeTypes[key]; ok {
		return t
	}
	if cs.inProgress[key] {
		return cs.Types.Builtins().Any
	}
	cs.inProgress[key] = true
	savedScope := cs.currentScope
	cs.currentScope = scope
	t := cs.computeExprType(scope, id)
	cs.currentScope = savedScope
	delete(cs.inProgress, key)
	cs.nodeTypes[key] = t
	cs.exprTypeByID[id] = t
	return t
}

func (cs *CheckerState) computeExprType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	node := cs.Builder.Exprs.Get(id)
	if node == nil {
		return cs.Types.Builtins().Any
	}
	if !cs.guardDepth(node.Span) {
		return cs.Types.Builtins().Any
	}
	defer cs.releaseDepth()
	b := cs.Types.Builtins()

	switch node.Kind {
	case ast.ExprIdent:
		return cs.identType(scope, id, node)
	case ast.ExprPrivateIdent:
		return cs.identType(scope, id, node)
	case ast.ExprNumericLit:
		return b.Number
	case ast.ExprBigIntLit:
		return b.BigInt
	case ast.ExprStringLit:
		return b.String
	case ast.ExprBoolLit:
		return b.Boolean
	case ast.ExprNullLit:
		return b.Null
	case ast.ExprUndefinedLit:
		return b.Undefined
	case ast.ExprTemplateLit:
		return b.String
	case ast.ExprArrayLit:
		return cs.arrayLitType(scope, id)
	case ast.ExprObjectLit:
		return cs.objectLitType(scope, id)
	case ast.ExprFunctionExpr, ast.ExprArrowFunction:
		return cs.funcExprType(scope, id)
	case ast.ExprClassExpr:
		return b.Any
	case ast.ExprThis:
		return b.Any
	case ast.ExprSuper:
		return b.Any
	case ast.ExprUnary:
		return cs.unaryType(scope, id)
	case ast.ExprUpdate:
		return b.Number
	case ast.ExprBinary:
		return cs.binaryType(scope, id)
	case ast.ExprLogical:
		return cs.logicalType(scope, id)
	case ast.ExprAssignment:
		data, _ := cs.Builder.Exprs.Assignment(id)
		if data == nil {
			return b.Any
		}
		return cs.exprType(scope, data.Value)
	case ast.ExprConditional:
		data, _ := cs.Builder.Exprs.Conditional(id)
		if data == nil {
			return b.Any
		}
		then := cs.exprType(scope, data.Then)
		els := cs.exprType(scope, data.Else)
		return cs.Types.MakeUnion([]types.TypeID{then, els})
	case ast.ExprCall:
		return cs.callType(scope, id)
	case ast.ExprNew:
		return cs.newType(scope, id)
	case ast.ExprMember:
		return cs.memberType(scope, id)
	case ast.ExprIndexAccess:
		return cs.indexAccessType(scope, id)
	case ast.ExprSpread:
		data, _ := cs.Builder.Exprs.Spread(id)
		if data == nil {
			return b.Any
		}
		return cs.exprType(scope, data.Value)
	case ast.ExprAs:
		data, _ := cs.Builder.Exprs.As(id)
		if data == nil {
			return b.Any
		}
		return cs.evalType(scope, data.Type)
	case ast.ExprSatisfies:
		data, _ := cs.Builder.Exprs.Satisfies(id)
		if data == nil {
			return b.Any
		}
		valueType := cs.exprType(scope, data.Value)
		target := cs.evalType(scope, data.Type)
		if !cs.Rel.Assignable(valueType, target) {
			cs.report(diag.TS2322, node.Span, "Type does not satisfy the expected type.")
		}
		return valueType
	case ast.ExprNonNull:
		data, _ := cs.Builder.Exprs.NonNull(id)
		if data == nil {
			return b.Any
		}
		return cs.stripNullish(cs.exprType(scope, data.Value))
	case ast.ExprParen:
		data, _ := cs.Builder.Exprs.Paren(id)
		if data == nil {
			return b.Any
		}
		return cs.exprType(scope, data.Inner)
	case ast.ExprSequence:
		data, _ := cs.Builder.Exprs.Sequence(id)
		if data == nil || len(data.Exprs) == 0 {
			return b.Undefined
		}
		var last types.TypeID
		for _, e := range data.Exprs {
			last = cs.exprType(scope, e)
		}
		return last
	default:
		return b.Any
	}
}

func (cs *CheckerState) identType(scope symbols.ScopeID, id ast.ExprID, node *ast.Expr) types.TypeID {
	symID, ok := cs.Binder.NodeSymbols[symbols.NodeRef{Expr: id}]
	if !ok {
		return cs.Types.Builtins().Any
	}
	sym := cs.Binder.Symbols.Get(symID)
	if sym == nil {
		return cs.Types.Builtins().Any
	}
	if sym.Type != types.NoTypeID {
		return sym.Type
	}
	if t, ok := cs.symbolTypes[symID]; ok {
		return t
	}
	return cs.Types.Builtins().Any
}

func (cs *CheckerState) arrayLitType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.ArrayLit(id)
	b := cs.Types.Builtins()
	if data == nil || len(data.Elements) == 0 {
		return cs.Types.MakeArray(b.Any, false)
	}
	members := make([]types.TypeID, 0, len(data.Elements))
	for _, e := range data.Elements {
		if !e.IsValid() {
			members = append(members, b.Undefined)
			continue
		}
		members = append(members, cs.exprType(scope, e))
	}
	return cs.Types.MakeArray(cs.Types.MakeUnion(members), false)
}

func (cs *CheckerState) objectLitType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.ObjectLit(id)
	if data == nil {
		return cs.Types.Builtins().EmptyObject
	}
	var props []types.PropertyInfo
	for _, p := range data.Props {
		switch p.Kind {
		case ast.ObjectPropSpread:
			spreadType := cs.exprType(scope, p.Value)
			if info, ok := cs.Types.ObjectInfo(spreadType); ok {
				props = append(props, info.Properties...)
			}
		case ast.ObjectPropMethod, ast.ObjectPropGetter, ast.ObjectPropSetter:
			props = append(props, types.PropertyInfo{Name: p.Key, Type: cs.exprType(scope, p.Value), IsMethod: true})
		default:
			if p.Computed {
				continue
			}
			props = append(props, types.PropertyInfo{Name: p.Key, Type: cs.exprType(scope, p.Value)})
		}
	}
	return cs.Types.RegisterObject(types.NoDefID, props, nil)
}

func (cs *CheckerState) funcExprType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.FunctionExpr(id)
	if data == nil {
		return cs.Types.Builtins().Any
	}
	sig := cs.evalSignature(scope, cs.Builder.Exprs.TypeParamIDs(data.TypeParams), cs.Builder.Exprs.ParamIDs(data.Params), data.ReturnType, cs.Builder.Exprs.Param)
	if data.ReturnType == ast.NoTypeID && data.ExprBody.IsValid() {
		sig.Return = cs.exprType(scope, data.ExprBody)
	}
	return cs.Types.RegisterCallable([]types.SignatureInfo{sig}, false)
}

func (cs *CheckerState) unaryType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.Unary(id)
	b := cs.Types.Builtins()
	if data == nil {
		return b.Any
	}
	switch data.Op {
	case ast.UnaryTypeof:
		return b.String
	case ast.UnaryNot:
		return b.Boolean
	case ast.UnaryVoid:
		return b.Undefined
	case ast.UnaryDelete:
		return b.Boolean
	case ast.UnaryPlus:
		return b.Number
	case ast.UnaryMinus, ast.UnaryBitNot:
		operand := cs.exprType(scope, data.Operand)
		if cs.Types.Kind(operand) == types.KindBigInt {
			return b.BigInt
		}
		return b.Number
	default:
		return b.Any
	}
}

func (cs *CheckerState) binaryType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.Binary(id)
	b := cs.Types.Builtins()
	if data == nil {
		return b.Any
	}
	switch data.Op {
	case ast.BinEq, ast.BinNotEq, ast.BinStrictEq, ast.BinStrictNotEq,
		ast.BinLess, ast.BinLessEq, ast.BinGreater, ast.BinGreaterEq,
		ast.BinInstanceOf, ast.BinIn:
		return b.Boolean
	case ast.BinAdd:
		left := cs.exprType(scope, data.Left)
		right := cs.exprType(scope, data.Right)
		if cs.Types.Kind(left) == types.KindString || cs.Types.Kind(right) == types.KindString {
			return b.String
		}
		return b.Number
	default:
		left := cs.exprType(scope, data.Left)
		if cs.Types.Kind(left) == types.KindBigInt {
			return b.BigInt
		}
		return b.Number
	}
}

func (cs *CheckerState) logicalType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.Logical(id)
	if data == nil {
		return cs.Types.Builtins().Any
	}
	left := cs.exprType(scope, data.Left)
	right := cs.exprType(scope, data.Right)
	switch data.Op {
	case ast.LogAnd:
		return right
	case ast.LogOr, ast.LogNullish:
		return cs.Types.MakeUnion([]types.TypeID{cs.stripFalsyForOr(left, data.Op), right})
	default:
		return cs.Types.MakeUnion([]types.TypeID{left, right})
	}
}

// stripFalsyForOr approximates `a || b`'s result type by dropping `a`'s
// nullish members for `??` (the only case narrow-able without a full
// truthiness lattice walk here); `||`'s narrower falsy-stripping is left to
// the flow/narrowing layer, which has the sense information this bottom-up
// pass doesn't.
func (cs *CheckerState) stripFalsyForOr(t types.TypeID, op ast.LogicalOp) types.TypeID {
	if op != ast.LogNullish {
		return t
	}
	return cs.stripNullish(t)
}

func (cs *CheckerState) stripNullish(t types.TypeID) types.TypeID {
	info, ok := cs.Types.UnionInfo(t)
	if !ok {
		return t
	}
	b := cs.Types.Builtins()
	kept := make([]types.TypeID, 0, len(info.Members))
	for _, m := range info.Members {
		if m == b.Null || m == b.Undefined {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return b.Never
	}
	return cs.Types.MakeUnion(kept)
}

func (cs *CheckerState) callType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.Call(id)
	b := cs.Types.Builtins()
	if data == nil {
		return b.Any
	}
	calleeType := cs.exprType(scope, data.Callee)
	sig := cs.bestSignature(calleeType)
	for i, a := range data.Args {
		argType := cs.exprType(scope, a)
		if sig != nil && i < len(sig.Params) {
			node := cs.Builder.Exprs.Get(a)
			if !cs.Rel.Assignable(argType, sig.Params[i].Type) && node != nil {
				cs.report(diag.TS2345, node.Span, "Argument is not assignable to parameter type.")
			}
		}
	}
	if sig == nil {
		return b.Any
	}
	return sig.Return
}

func (cs *CheckerState) newType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.New(id)
	b := cs.Types.Builtins()
	if data == nil {
		return b.Any
	}
	calleeType := cs.exprType(scope, data.Callee)
	info, ok := cs.Types.CallableInfo(calleeType)
	if !ok || len(info.Signatures) == 0 {
		return b.Any
	}
	return info.Signatures[0].Return
}

// bestSignature picks a callable type's first signature (overload
// resolution by best match is not implemented; every signature's return
// type is compared structurally elsewhere, so picking the first is sound
// for single-signature callables, the overwhelming common case).
func (cs *CheckerState) bestSignature(t types.TypeID) *types.SignatureInfo {
	info, ok := cs.Types.CallableInfo(t)
	if !ok || len(info.Signatures) == 0 {
		return nil
	}
	sig := info.Signatures[0]
	return &sig
}

func (cs *CheckerState) memberType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.Member(id)
	b := cs.Types.Builtins()
	if data == nil {
		return b.Any
	}
	targetType := cs.exprType(scope, data.Target)
	if data.Optional {
		targetType = cs.stripNullish(targetType)
	}
	if prop, ok := cs.Types.LookupProperty(targetType, data.Field); ok {
		return prop.Type
	}
	node := cs.Builder.Exprs.Get(id)
	if node != nil && cs.Types.Kind(targetType) != types.KindAny {
		text, _ := cs.Strings.Lookup(data.Field)
		cs.report(diag.TS2339, node.Span, "Property '"+text+"' does not exist on this type.")
	}
	return b.Any
}

func (cs *CheckerState) indexAccessType(scope symbols.ScopeID, id ast.ExprID) types.TypeID {
	data, _ := cs.Builder.Exprs.IndexAccess(id)
	b := cs.Types.Builtins()
	if data == nil {
		return b.Any
	}
	targetType := cs.exprType(scope, data.Target)
	if data.Optional {
		targetType = cs.stripNullish(targetType)
	}
	indexType := cs.exprType(scope, data.Index)
	if cs.Types.Kind(targetType) == types.KindArray {
		if elem, ok := cs.Types.ArrayElem(targetType); ok {
			return elem
		}
	}
	if cs.Types.Kind(indexType) == types.KindLiteralString {
		litInfo, _ := cs.Types.LiteralInfo(indexType)
		if prop, ok := cs.Types.LookupProperty(targetType, litInfo.Str); ok {
			return prop.Type
		}
	}
	return b.Any
}
