package types

import "surge/internal/source"

// LiteralInfo stores the concrete value behind a literal type. Only the
// field matching Kind is meaningful.
type LiteralInfo struct {
	Str  source.StringID
	Num  float64
	Big  source.StringID // bigint literal text, e.g. "10n" without the suffix
	Bool bool
}

// RegisterLiteralString interns a string literal type, e.g. the type of `"a"`.
func (in *Interner) RegisterLiteralString(s source.StringID) TypeID {
	return in.registerLiteral(KindLiteralString, LiteralInfo{Str: s})
}

// RegisterLiteralNumber interns a numeric literal type, e.g. the type of `42`.
func (in *Interner) RegisterLiteralNumber(n float64) TypeID {
	return in.registerLiteral(KindLiteralNumber, LiteralInfo{Num: n})
}

// RegisterLiteralBigInt interns a bigint literal type, e.g. the type of `10n`.
func (in *Interner) RegisterLiteralBigInt(digits source.StringID) TypeID {
	return in.registerLiteral(KindLiteralBigInt, LiteralInfo{Big: digits})
}

// RegisterLiteralBoolean interns `true` or `false` as its own singleton type.
func (in *Interner) RegisterLiteralBoolean(v bool) TypeID {
	return in.registerLiteral(KindLiteralBoolean, LiteralInfo{Bool: v})
}

func (in *Interner) registerLiteral(kind Kind, info LiteralInfo) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != kind || int(tt.Payload) >= len(in.literals) {
			continue
		}
		if in.literals[tt.Payload] == info {
			return id
		}
	}
	in.literals = append(in.literals, info)
	return in.internRaw(Type{Kind: kind, Payload: safeSlot(len(in.literals) - 1)})
}

// LiteralInfo retrieves the literal value behind a literal TypeID.
func (in *Interner) LiteralInfo(id TypeID) (LiteralInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return LiteralInfo{}, false
	}
	switch tt.Kind {
	case KindLiteralString, KindLiteralNumber, KindLiteralBigInt, KindLiteralBoolean:
	default:
		return LiteralInfo{}, false
	}
	if int(tt.Payload) >= len(in.literals) {
		return LiteralInfo{}, false
	}
	return in.literals[tt.Payload], true
}

// BaseOfLiteral returns the primitive supertype of a literal type (the type
// "a" widens to is string, 42 widens to number, and so on). Non-literal
// TypeIDs are returned unchanged.
func (in *Interner) BaseOfLiteral(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case KindLiteralString:
		return in.builtins.String
	case KindLiteralNumber:
		return in.builtins.Number
	case KindLiteralBigInt:
		return in.builtins.BigInt
	case KindLiteralBoolean:
		return in.builtins.Boolean
	default:
		return id
	}
}
