package flowanalyzer

import (
	"strconv"

	"surge/internal/ast"
	"surge/internal/narrow"
	"surge/internal/source"
	"surge/internal/types"
)

// applyCondition narrows declared under cond evaluated in the given sense
// (true for TRUE_CONDITION, false for FALSE_CONDITION), recursing through
// `&&`/`||`/`!` so a compound guard like `x != null && typeof x ===
// "string"` narrows in two steps instead of being treated as opaque.
func (fa *FlowAnalyzer) applyCondition(ref Reference, declared types.TypeID, cond ast.ExprID, sense bool) types.TypeID {
	if un, ok := fa.exprs.Unary(cond); ok && un.Op == ast.UnaryNot {
		return fa.applyCondition(ref, declared, un.Operand, !sense)
	}
	if lg, ok := fa.exprs.Logical(cond); ok {
		switch lg.Op {
		case ast.LogAnd:
			if sense {
				// `a && b` true: both narrowed, b's guard applied to a's result.
				mid := fa.applyCondition(ref, declared, lg.Left, true)
				return fa.applyCondition(ref, mid, lg.Right, true)
			}
			// De Morgan: `!(a && b)` == `!a || !b`; union the two
			// independent failure narrowings since which one failed isn't known.
			left := fa.applyCondition(ref, declared, lg.Left, false)
			right := fa.applyCondition(ref, declared, lg.Right, false)
			return fa.in.MakeUnion([]types.TypeID{left, right})
		case ast.LogOr:
			if !sense {
				mid := fa.applyCondition(ref, declared, lg.Left, false)
				return fa.applyCondition(ref, mid, lg.Right, false)
			}
			left := fa.applyCondition(ref, declared, lg.Left, true)
			right := fa.applyCondition(ref, declared, lg.Right, true)
			return fa.in.MakeUnion([]types.TypeID{left, right})
		case ast.LogNullish:
			// `a ?? b`'s truthiness isn't itself a narrowable condition
			// over a single reference; pass through unchanged.
			return declared
		}
	}

	target, guard, invert, ok := fa.translateGuard(cond)
	if !ok || !target.Equal(ref) {
		return declared
	}
	return fa.narrower.Apply(declared, guard, sense != invert)
}

// translateGuard extracts a single Guard from a leaf (non-logical)
// condition expression along with the reference it narrows. invert is true
// when the comparison's surface form is a "not equal" variant (`!==`,
// `!=`, `in` negated isn't a thing so always false there): the guard is
// expressed in its "matches" sense and invert flips it relative to the
// condition's own truthiness.
func (fa *FlowAnalyzer) translateGuard(cond ast.ExprID) (Reference, narrow.Guard, bool, bool) {
	if bin, ok := fa.exprs.Binary(cond); ok {
		switch bin.Op {
		case ast.BinEq, ast.BinStrictEq, ast.BinNotEq, ast.BinStrictNotEq:
			invert := bin.Op == ast.BinNotEq || bin.Op == ast.BinStrictNotEq
			if g, ref, ok := fa.typeofGuard(bin.Left, bin.Right); ok {
				return ref, g, invert, true
			}
			if g, ref, ok := fa.typeofGuard(bin.Right, bin.Left); ok {
				return ref, g, invert, true
			}
			if ref, ok := fa.nullishGuard(bin.Left, bin.Right); ok {
				return ref, narrow.Guard{Kind: narrow.KindNullishEquality}, invert, true
			}
			if ref, ok := fa.nullishGuard(bin.Right, bin.Left); ok {
				return ref, narrow.Guard{Kind: narrow.KindNullishEquality}, invert, true
			}
			if ref, g, ok := fa.literalOrDiscriminantGuard(bin.Left, bin.Right); ok {
				return ref, g, invert, true
			}
			if ref, g, ok := fa.literalOrDiscriminantGuard(bin.Right, bin.Left); ok {
				return ref, g, invert, true
			}
			return Reference{}, narrow.Guard{}, false, false

		case ast.BinInstanceOf:
			ref, ok := ReferenceOf(fa.exprs, bin.Left)
			if !ok {
				return Reference{}, narrow.Guard{}, false, false
			}
			ctor, ok := fa.exprs.Ident(bin.Right)
			if !ok || fa.resolveType == nil {
				return Reference{}, narrow.Guard{}, false, false
			}
			target, ok := fa.resolveType(ctor.Name)
			if !ok {
				return Reference{}, narrow.Guard{}, false, false
			}
			return ref, narrow.Guard{Kind: narrow.KindInstanceof, Target: target}, false, true

		case ast.BinIn:
			ref, ok := ReferenceOf(fa.exprs, bin.Right)
			if !ok {
				return Reference{}, narrow.Guard{}, false, false
			}
			lit, ok := fa.exprs.Literal(bin.Left)
			if !ok {
				return Reference{}, narrow.Guard{}, false, false
			}
			return ref, narrow.Guard{Kind: narrow.KindInProperty, Path: []source.StringID{lit.Raw}}, false, true
		}
		return Reference{}, narrow.Guard{}, false, false
	}

	if call, ok := fa.exprs.Call(cond); ok {
		if mem, ok := fa.exprs.Member(call.Callee); ok {
			if base, ok := fa.exprs.Ident(mem.Target); ok {
				if name, ok := fa.strings.Lookup(base.Name); ok && name == "Array" {
					if fname, ok := fa.strings.Lookup(mem.Field); ok && fname == "isArray" && len(call.Args) == 1 {
						if ref, ok := ReferenceOf(fa.exprs, call.Args[0]); ok {
							return ref, narrow.Guard{Kind: narrow.KindArray}, false, true
						}
					}
				}
			}
		}
		if ident, ok := fa.exprs.Ident(call.Callee); ok && fa.resolvePredicate != nil && len(call.Args) >= 1 {
			if ref, ok := ReferenceOf(fa.exprs, call.Args[0]); ok {
				if target, asserts, ok := fa.resolvePredicate(ident.Name); ok {
					return ref, narrow.Guard{Kind: narrow.KindPredicate, Target: target, Asserts: asserts}, false, true
				}
			}
		}
		return Reference{}, narrow.Guard{}, false, false
	}

	// A bare reference used as a condition (`if (x)`, `a.b &&
	// somethingElse`) is a truthy check on that reference.
	if ref, ok := ReferenceOf(fa.exprs, cond); ok {
		return ref, narrow.Guard{Kind: narrow.KindTruthy}, false, true
	}
	return Reference{}, narrow.Guard{}, false, false
}

// typeofGuard matches `typeof <expr> <op> "<tag>"` in either operand order.
func (fa *FlowAnalyzer) typeofGuard(typeofSide, literalSide ast.ExprID) (narrow.Guard, Reference, bool) {
	un, ok := fa.exprs.Unary(typeofSide)
	if !ok || un.Op != ast.UnaryTypeof {
		return narrow.Guard{}, Reference{}, false
	}
	ref, ok := ReferenceOf(fa.exprs, un.Operand)
	if !ok {
		return narrow.Guard{}, Reference{}, false
	}
	lit, ok := fa.exprs.Literal(literalSide)
	if !ok {
		return narrow.Guard{}, Reference{}, false
	}
	text, ok := fa.strings.Lookup(lit.Raw)
	if !ok {
		return narrow.Guard{}, Reference{}, false
	}
	tag, ok := typeofTagFromText(text)
	if !ok {
		return narrow.Guard{}, Reference{}, false
	}
	return narrow.Guard{Kind: narrow.KindTypeof, Typeof: tag}, ref, true
}

func typeofTagFromText(text string) (narrow.TypeofTag, bool) {
	switch text {
	case "string":
		return narrow.TypeofString, true
	case "number":
		return narrow.TypeofNumber, true
	case "boolean":
		return narrow.TypeofBoolean, true
	case "bigint":
		return narrow.TypeofBigInt, true
	case "symbol":
		return narrow.TypeofSymbol, true
	case "undefined":
		return narrow.TypeofUndefined, true
	case "object":
		return narrow.TypeofObject, true
	case "function":
		return narrow.TypeofFunction, true
	}
	return 0, false
}

// nullishGuard matches `<expr> <op> null`/`<expr> <op> undefined`.
func (fa *FlowAnalyzer) nullishGuard(refSide, litSide ast.ExprID) (Reference, bool) {
	if litKind := fa.exprs.Get(litSide); litKind == nil || (litKind.Kind != ast.ExprNullLit && litKind.Kind != ast.ExprUndefinedLit) {
		return Reference{}, false
	}
	return ReferenceOf(fa.exprs, refSide)
}

// literalOrDiscriminantGuard matches `<ref-or-member> <op> <literal>`. A
// bare reference produces LiteralEquality; a member-access chain's leaf
// segment produces Discriminant on the chain's root reference.
func (fa *FlowAnalyzer) literalOrDiscriminantGuard(refSide, litSide ast.ExprID) (Reference, narrow.Guard, bool) {
	full, ok := ReferenceOf(fa.exprs, refSide)
	if !ok {
		return Reference{}, narrow.Guard{}, false
	}
	litType, ok := fa.literalTypeOf(litSide)
	if !ok {
		return Reference{}, narrow.Guard{}, false
	}
	if len(full.Path) > 1 {
		return full.Root(), narrow.Guard{Kind: narrow.KindDiscriminant, Path: full.Path[1:], Value: litType}, true
	}
	return full, narrow.Guard{Kind: narrow.KindLiteralEquality, Literal: litType}, true
}

func (fa *FlowAnalyzer) literalTypeOf(id ast.ExprID) (types.TypeID, bool) {
	expr := fa.exprs.Get(id)
	if expr == nil {
		return types.NoTypeID, false
	}
	switch expr.Kind {
	case ast.ExprNullLit:
		return fa.in.Builtins().Null, true
	case ast.ExprUndefinedLit:
		return fa.in.Builtins().Undefined, true
	case ast.ExprBoolLit:
		lit, ok := fa.exprs.Literal(id)
		if !ok {
			return types.NoTypeID, false
		}
		text, ok := fa.strings.Lookup(lit.Raw)
		if !ok {
			return types.NoTypeID, false
		}
		return fa.in.RegisterLiteralBoolean(text == "true"), true
	case ast.ExprStringLit:
		lit, _ := fa.exprs.Literal(id)
		return fa.in.RegisterLiteralString(lit.Raw), true
	case ast.ExprNumericLit:
		lit, _ := fa.exprs.Literal(id)
		text, ok := fa.strings.Lookup(lit.Raw)
		if !ok {
			return types.NoTypeID, false
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return types.NoTypeID, false
		}
		return fa.in.RegisterLiteralNumber(n), true
	case ast.ExprBigIntLit:
		lit, _ := fa.exprs.Literal(id)
		return fa.in.RegisterLiteralBigInt(lit.Raw), true
	}
	return types.NoTypeID, false
}
