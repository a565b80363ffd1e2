package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// parseTypeExpr parses a full type expression: a conditional type, which in
// turn bottoms out through union, intersection, and postfix (array/indexed
// access) types built on a primary type.
//
//	TypeExpr     := Conditional
//	Conditional  := Union ( 'extends' Union '?' TypeExpr ':' TypeExpr )?
//	Union        := '|'? Intersection ( '|' Intersection )*
//	Intersection := '&'? Postfix ( '&' Postfix )*
//	Postfix      := 'readonly'? Primary ( '[]' | '[' TypeExpr ']' )*
//	Primary      := FunctionType | ConstructorType | 'keyof' Postfix
//	              | 'typeof' EntityName | '(' TypeExpr ')' | ObjectOrMappedType
//	              | TupleType | Literal | TemplateLiteralType
//	              | 'infer' Ident ( 'extends' Postfix )? | 'this' | TypeRef
func (p *Parser) parseTypeExpr() (ast.TypeID, bool) {
	return p.parseConditionalType()
}

func (p *Parser) parseConditionalType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	check, ok := p.parseUnionType()
	if !ok {
		return ast.NoTypeID, false
	}
	if !p.at(token.KwExtends) {
		return check, true
	}
	p.advance()
	extends, ok := p.parseUnionType()
	if !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.Question, diag.SynExpectType, "expected '?' in conditional type"); !ok {
		return ast.NoTypeID, false
	}
	trueT, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional type"); !ok {
		return ast.NoTypeID, false
	}
	falseT, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.Types.NewConditional(start.Cover(p.lastSpan), check, extends, trueT, falseT), true
}

func (p *Parser) parseUnionType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	leading := false
	if p.at(token.Pipe) {
		p.advance()
		leading = true
	}
	first, ok := p.parseIntersectionType()
	if !ok {
		return ast.NoTypeID, false
	}
	if !p.at(token.Pipe) && !leading {
		return first, true
	}
	members := []ast.TypeID{first}
	for p.at(token.Pipe) {
		p.advance()
		next, ok := p.parseIntersectionType()
		if !ok {
			return ast.NoTypeID, false
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return members[0], true
	}
	return p.arenas.Types.NewUnion(start.Cover(p.lastSpan), members), true
}

func (p *Parser) parseIntersectionType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	leading := false
	if p.at(token.Amp) {
		p.advance()
		leading = true
	}
	first, ok := p.parsePostfixType()
	if !ok {
		return ast.NoTypeID, false
	}
	if !p.at(token.Amp) && !leading {
		return first, true
	}
	members := []ast.TypeID{first}
	for p.at(token.Amp) {
		p.advance()
		next, ok := p.parsePostfixType()
		if !ok {
			return ast.NoTypeID, false
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return members[0], true
	}
	return p.arenas.Types.NewIntersection(start.Cover(p.lastSpan), members), true
}

func (p *Parser) parsePostfixType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	readonly := false
	if p.at(token.KwReadonly) {
		p.advance()
		readonly = true
	}
	base, ok := p.parsePrimaryType()
	if !ok {
		return ast.NoTypeID, false
	}

	for p.at(token.LBracket) {
		p.advance()
		if p.at(token.RBracket) {
			p.advance()
			if readonly {
				base = p.arenas.Types.NewReadonlyArray(start.Cover(p.lastSpan), base)
				readonly = false
				continue
			}
			base = p.arenas.Types.NewArray(start.Cover(p.lastSpan), base)
			continue
		}
		index, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after indexed-access type"); !ok {
			return ast.NoTypeID, false
		}
		base = p.arenas.Types.NewIndexedAccess(start.Cover(p.lastSpan), base, index)
	}

	if readonly {
		base = p.arenas.Types.NewReadonlyArray(start.Cover(p.lastSpan), base)
	}
	return base, true
}

func (p *Parser) parsePrimaryType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span

	switch p.lx.Peek().Kind {
	case token.KwKeyof:
		p.advance()
		operand, ok := p.parsePostfixType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewKeyOf(start.Cover(p.lastSpan), operand), true

	case token.KwTypeof:
		p.advance()
		operand, ok := p.parseEntityNameExpr()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewTypeOf(start.Cover(p.lastSpan), operand), true

	case token.KwInfer:
		p.advance()
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoTypeID, false
		}
		constraint := ast.NoTypeID
		if p.at(token.KwExtends) {
			p.advance()
			constraint, ok = p.parsePostfixType()
			if !ok {
				return ast.NoTypeID, false
			}
		}
		return p.arenas.Types.NewInfer(start.Cover(p.lastSpan), name, constraint), true

	case token.KwThis:
		p.advance()
		return p.arenas.Types.NewThis(start.Cover(p.lastSpan)), true

	case token.KwNew:
		return p.parseFunctionOrConstructorType(true)

	case token.LParen:
		if p.looksLikeFunctionType() {
			return p.parseFunctionOrConstructorType(false)
		}
		p.advance()
		inner, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized type"); !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewParen(start.Cover(p.lastSpan), inner), true

	case token.LBrace:
		return p.parseObjectOrMappedType()

	case token.LBracket:
		return p.parseTupleType()

	case token.StringLit:
		tok := p.advance()
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitString, p.arenas.Intern(stripQuotes(tok.Text))), true

	case token.NoSubstitutionTemplateLit, token.TemplateHead:
		return p.parseTemplateLiteralType()

	case token.NumericLit:
		tok := p.advance()
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitNumber, p.arenas.Intern(tok.Text)), true

	case token.BigIntLit:
		tok := p.advance()
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitBigInt, p.arenas.Intern(tok.Text)), true

	case token.Minus:
		p.advance()
		numTok, ok := p.expect(token.NumericLit, diag.SynExpectType, "expected a numeric literal after '-'")
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitNumber, p.arenas.Intern("-"+numTok.Text)), true

	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitBool, p.arenas.Intern(tok.Text)), true

	case token.KwNull:
		p.advance()
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitNull, source.NoStringID), true

	case token.KwUndefined:
		p.advance()
		return p.arenas.Types.NewLiteral(start.Cover(p.lastSpan), ast.TypeLitUndefined, source.NoStringID), true

	case token.KwAny, token.KwUnknown, token.KwNever, token.KwObjectKw, token.KwString,
		token.KwNumber, token.KwBoolean, token.KwBigint, token.KwSymbol, token.Ident:
		return p.parseTypeRef()

	default:
		p.err(diag.SynExpectType, "expected a type")
		return ast.NoTypeID, false
	}
}

// looksLikeFunctionType disambiguates `(params) => R` from a parenthesized
// type by scanning ahead: an empty parameter list, a leading `...rest`, or a
// `name:`/`name,`/`name)`/`name?` shape all commit to a function type.
func (p *Parser) looksLikeFunctionType() bool {
	if !p.at(token.LParen) {
		return false
	}
	open := p.advance()
	defer p.lx.Push(open)

	if p.at(token.RParen) || p.at(token.DotDotDot) {
		return true
	}
	if p.at(token.Ident) {
		nameTok := p.advance()
		isFn := p.at(token.Colon) || p.at(token.Comma) || p.at(token.RParen) || p.at(token.Question)
		p.lx.Push(nameTok)
		return isFn
	}
	return false
}

func (p *Parser) parseFunctionOrConstructorType(isConstructor bool) (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	if isConstructor {
		if _, ok := p.expect(token.KwNew, diag.SynExpectType, "expected 'new' in constructor type"); !ok {
			return ast.NoTypeID, false
		}
	}

	var typeParams []ast.TypeParamDecl
	if p.at(token.Lt) {
		var ok bool
		typeParams, ok = p.parseTypeParamList()
		if !ok {
			return ast.NoTypeID, false
		}
	}

	params, ok := p.parseParamList()
	if !ok {
		return ast.NoTypeID, false
	}

	if _, ok := p.expect(token.FatArrow, diag.SynExpectType, "expected '=>' in function type"); !ok {
		return ast.NoTypeID, false
	}
	ret, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoTypeID, false
	}

	span := start.Cover(p.lastSpan)
	if isConstructor {
		return p.arenas.Types.NewConstructor(span, typeParams, params, ret), true
	}
	return p.arenas.Types.NewFunction(span, typeParams, params, ret), true
}

func (p *Parser) parseTupleType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	p.advance() // '['

	var elems []ast.TupleElem
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem, ok := p.parseTupleElem()
		if !ok {
			p.resyncUntil(token.Comma, token.RBracket)
		} else {
			elems = append(elems, elem)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close tuple type"); !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.Types.NewTuple(start.Cover(p.lastSpan), elems), true
}

func (p *Parser) parseTupleElem() (ast.TupleElem, bool) {
	var elem ast.TupleElem
	if p.at(token.DotDotDot) {
		p.advance()
		elem.Rest = true
	}
	if p.at(token.Ident) {
		nameTok := p.advance()
		optional := false
		if p.at(token.Question) {
			p.advance()
			optional = true
		}
		if p.at(token.Colon) {
			p.advance()
			elem.Name = p.arenas.Intern(nameTok.Text)
			elem.Optional = optional
			typ, ok := p.parseTypeExpr()
			if !ok {
				return elem, false
			}
			elem.Type = typ
			return elem, true
		}
		p.lx.Push(nameTok)
	}
	typ, ok := p.parseTypeExpr()
	if !ok {
		return elem, false
	}
	elem.Type = typ
	if p.at(token.Question) {
		p.advance()
		elem.Optional = true
	}
	return elem, true
}

// parseObjectOrMappedType parses `{ ... }` as either a mapped type
// (`{ [K in Keys]: T }`) or an object-type literal (interface-body-shaped).
func (p *Parser) parseObjectOrMappedType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	if p.looksLikeMappedType() {
		return p.parseMappedType(start)
	}
	members, ok := p.parseObjectTypeMembers()
	if !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.NewObjectLitType(start.Cover(p.lastSpan), members), true
}

// looksLikeMappedType scans past '{' for a leading '+'/'-'/'readonly'/'['
// that signals a mapped type rather than an object-type literal.
func (p *Parser) looksLikeMappedType() bool {
	open := p.advance() // '{'
	defer p.lx.Push(open)

	if p.at(token.Plus) || p.at(token.Minus) {
		return true
	}
	if p.at(token.KwReadonly) {
		ro := p.advance()
		isBracket := p.at(token.LBracket)
		p.lx.Push(ro)
		return isBracket
	}
	return p.at(token.LBracket)
}

func (p *Parser) parseMappedType(start source.Span) (ast.TypeID, bool) {
	p.advance() // '{'

	var data ast.TypeMappedData
	if p.at(token.Plus) {
		p.advance()
		data.ReadonlyModifier = ast.MappedModifierAdd
	} else if p.at(token.Minus) {
		p.advance()
		data.ReadonlyModifier = ast.MappedModifierRemove
	}
	if p.at(token.KwReadonly) {
		p.advance()
		if data.ReadonlyModifier == ast.MappedModifierNone {
			data.ReadonlyModifier = ast.MappedModifierAdd
		}
	}

	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "expected '[' in mapped type"); !ok {
		return ast.NoTypeID, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a type parameter name in mapped type")
	if !ok {
		return ast.NoTypeID, false
	}
	data.Param = p.arenas.Intern(nameTok.Text)
	if _, ok := p.expect(token.KwIn, diag.SynExpectType, "expected 'in' in mapped type"); !ok {
		return ast.NoTypeID, false
	}
	constraint, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoTypeID, false
	}
	data.Constraint = constraint

	data.NameType = ast.NoTypeID
	if p.at(token.KwAs) {
		p.advance()
		nameType, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoTypeID, false
		}
		data.NameType = nameType
	}
	if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' in mapped type"); !ok {
		return ast.NoTypeID, false
	}

	if p.at(token.Plus) {
		p.advance()
		data.OptionalModifier = ast.MappedModifierAdd
	} else if p.at(token.Minus) {
		p.advance()
		data.OptionalModifier = ast.MappedModifierRemove
	}
	if p.at(token.Question) {
		p.advance()
		if data.OptionalModifier == ast.MappedModifierNone {
			data.OptionalModifier = ast.MappedModifierAdd
		}
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in mapped type"); !ok {
		return ast.NoTypeID, false
	}
	value, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoTypeID, false
	}
	data.Value = value

	if p.at(token.Semicolon) {
		p.advance()
	}
	if _, ok := p.expect(token.RBrace, diag.SynExpectType, "expected '}' to close mapped type"); !ok {
		return ast.NoTypeID, false
	}

	return p.arenas.Types.NewMapped(start.Cover(p.lastSpan), data), true
}

// parseObjectTypeMembers parses the body of an interface or object-type
// literal: a `{`-delimited, `;`/`,`/ASI-separated list of properties,
// methods, getters/setters, index signatures, and call/construct
// signatures.
func (p *Parser) parseObjectTypeMembers() ([]ast.ObjectMember, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectType, "expected '{' to start type body"); !ok {
		return nil, false
	}
	var members []ast.ObjectMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseObjectTypeMember()
		if !ok {
			p.resyncUntil(token.Semicolon, token.Comma, token.RBrace)
		} else {
			members = append(members, member)
		}
		for p.at(token.Semicolon) || p.at(token.Comma) {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynTypeExpectBody, "expected '}' to close type body"); !ok {
		return nil, false
	}
	return members, true
}

// objectMemberDraft accumulates an object-type member's fields in plain Go
// types while it's being parsed; ObjectMember itself can't be built
// incrementally because its Params/TypeParams ranges are only allocatable
// through Builder.NewObjectMember.
type objectMemberDraft struct {
	kind       ast.ObjectMemberKind
	name       source.StringID
	typeParams []ast.TypeParamDecl
	params     []ast.Param
	typ        ast.TypeID
	optional   bool
	readonly   bool
}

func (p *Parser) parseObjectTypeMember() (ast.ObjectMember, bool) {
	start := p.lx.Peek().Span
	draft := &objectMemberDraft{typ: ast.NoTypeID}

	if p.at(token.KwReadonly) && !p.nextIsMemberTerminator() {
		p.advance()
		draft.readonly = true
	}

	switch {
	case p.at(token.LParen), p.at(token.Lt):
		// Call signature: `(args): R`.
		draft.kind = ast.ObjectMemberCallSignature
		if !p.parseSignatureRest(draft) {
			return ast.ObjectMember{}, false
		}

	case p.at(token.KwNew):
		p.advance()
		draft.kind = ast.ObjectMemberConstructSignature
		if !p.parseSignatureRest(draft) {
			return ast.ObjectMember{}, false
		}

	case p.at(token.LBracket) && p.looksLikeIndexSignature():
		p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected an index parameter name")
		if !ok {
			return ast.ObjectMember{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in index signature"); !ok {
			return ast.ObjectMember{}, false
		}
		keyType, ok := p.parseTypeExpr()
		if !ok {
			return ast.ObjectMember{}, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close index signature"); !ok {
			return ast.ObjectMember{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after index signature"); !ok {
			return ast.ObjectMember{}, false
		}
		valueType, ok := p.parseTypeExpr()
		if !ok {
			return ast.ObjectMember{}, false
		}
		draft.kind = ast.ObjectMemberIndexSignature
		draft.name = p.arenas.Intern(nameTok.Text)
		draft.params = []ast.Param{{Name: p.arenas.Intern(nameTok.Text), Type: keyType}}
		draft.typ = valueType

	case p.at(token.KwGet) && p.nextIsPropertyName():
		p.advance()
		draft.kind = ast.ObjectMemberGetter
		if !p.parseMemberNameAndSignature(draft) {
			return ast.ObjectMember{}, false
		}

	case p.at(token.KwSet) && p.nextIsPropertyName():
		p.advance()
		draft.kind = ast.ObjectMemberSetter
		if !p.parseMemberNameAndSignature(draft) {
			return ast.ObjectMember{}, false
		}

	default:
		if !p.parseMemberNameAndSignature(draft) {
			return ast.ObjectMember{}, false
		}
	}

	span := start.Cover(p.lastSpan)
	return p.arenas.NewObjectMember(draft.kind, draft.name, draft.typeParams, draft.params, draft.typ, draft.optional, draft.readonly, span), true
}

// nextIsMemberTerminator reports whether the token after a contextual
// keyword (`readonly`, `get`, `set`) marks the keyword itself as the member
// name rather than a modifier (e.g. `readonly: string`).
func (p *Parser) nextIsMemberTerminator() bool {
	tok := p.advance()
	isTerminator := p.at(token.Colon) || p.at(token.Question) || p.at(token.LParen) || p.at(token.Semicolon) || p.at(token.Comma) || p.at(token.RBrace)
	p.lx.Push(tok)
	return isTerminator
}

func (p *Parser) nextIsPropertyName() bool {
	tok := p.advance()
	isName := p.at(token.Ident) || p.at(token.StringLit) || p.at(token.NumericLit) || p.at(token.LBracket)
	p.lx.Push(tok)
	return isName
}

// looksLikeIndexSignature distinguishes `[key: string]: T` from a computed
// property name `[Symbol.iterator](): void`.
func (p *Parser) looksLikeIndexSignature() bool {
	open := p.advance() // '['
	defer p.lx.Push(open)
	if !p.at(token.Ident) {
		return false
	}
	nameTok := p.advance()
	isIndex := p.at(token.Colon)
	p.lx.Push(nameTok)
	return isIndex
}

func (p *Parser) parseSignatureRest(draft *objectMemberDraft) bool {
	if p.at(token.Lt) {
		typeParams, ok := p.parseTypeParamList()
		if !ok {
			return false
		}
		draft.typeParams = typeParams
	}
	params, ok := p.parseParamList()
	if !ok {
		return false
	}
	draft.params = params
	if p.at(token.Colon) {
		p.advance()
		ret, ok := p.parseTypeExpr()
		if !ok {
			return false
		}
		draft.typ = ret
	}
	return true
}

func (p *Parser) parseMemberNameAndSignature(draft *objectMemberDraft) bool {
	name, ok := p.parsePropertyName()
	if !ok {
		return false
	}
	draft.name = name
	if p.at(token.Question) {
		p.advance()
		draft.optional = true
	}
	if p.at(token.LParen) || p.at(token.Lt) {
		draft.kind = methodKindFor(draft.kind)
		return p.parseSignatureRest(draft)
	}
	if draft.kind == ast.ObjectMemberGetter || draft.kind == ast.ObjectMemberSetter {
		return p.parseSignatureRest(draft)
	}
	draft.kind = ast.ObjectMemberProperty
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !ok {
		return false
	}
	typ, ok := p.parseTypeExpr()
	if !ok {
		return false
	}
	draft.typ = typ
	return true
}

func methodKindFor(kind ast.ObjectMemberKind) ast.ObjectMemberKind {
	if kind == ast.ObjectMemberGetter || kind == ast.ObjectMemberSetter {
		return kind
	}
	return ast.ObjectMemberMethod
}

// parsePropertyName parses an identifier, string, or numeric property name;
// a computed name (`[expr]`) is parsed and interned as the fixed placeholder
// "[computed]", not as its source text.
func (p *Parser) parsePropertyName() (source.StringID, bool) {
	switch p.lx.Peek().Kind {
	case token.StringLit:
		tok := p.advance()
		return p.arenas.Intern(stripQuotes(tok.Text)), true
	case token.Ident, token.NumericLit:
		tok := p.advance()
		return p.arenas.Intern(tok.Text), true
	case token.LBracket:
		p.advance()
		if _, ok := p.parseAssignExpr(); !ok {
			p.resyncUntil(token.RBracket)
		}
		if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after computed property name"); !ok {
			return source.NoStringID, false
		}
		return p.arenas.Intern("[computed]"), true
	default:
		if p.lx.Peek().IsKeyword() {
			tok := p.advance()
			return p.arenas.Intern(tok.Text), true
		}
		p.err(diag.SynExpectIdentifier, "expected a property name")
		return source.NoStringID, false
	}
}

// parseTemplateLiteralType parses a backtick template-literal type, whose
// substitution holes are types rather than expressions.
func (p *Parser) parseTemplateLiteralType() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	head := p.advance()
	if head.Kind == token.NoSubstitutionTemplateLit {
		return p.arenas.Types.NewTemplateLiteral(start.Cover(p.lastSpan), []source.StringID{p.arenas.Intern(head.Text)}, nil), true
	}
	quasis := []source.StringID{p.arenas.Intern(head.Text)}
	var types []ast.TypeID
	for {
		typ, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoTypeID, false
		}
		types = append(types, typ)
		if !p.at(token.TemplateMiddle) && !p.at(token.TemplateTail) {
			p.err(diag.SynExpectType, "expected the rest of a template-literal type")
			return ast.NoTypeID, false
		}
		part := p.advance()
		quasis = append(quasis, p.arenas.Intern(part.Text))
		if part.Kind == token.TemplateTail {
			break
		}
	}
	return p.arenas.Types.NewTemplateLiteral(start.Cover(p.lastSpan), quasis, types), true
}

// parseTypeRef parses a (possibly qualified) type name with optional type
// arguments: `Name`, `A.B.C`, `Array<T>`, or a primitive type keyword.
func (p *Parser) parseTypeRef() (ast.TypeID, bool) {
	start := p.lx.Peek().Span
	nameTok := p.advance()
	path := []source.StringID{p.arenas.Intern(nameTok.Text)}
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.parseIdent()
		if !ok {
			return ast.NoTypeID, false
		}
		path = append(path, seg)
	}

	var typeArgs []ast.TypeID
	if p.at(token.Lt) {
		p.advance()
		for !p.atAngleCloser() && !p.at(token.EOF) {
			arg, ok := p.parseTypeExpr()
			if !ok {
				return ast.NoTypeID, false
			}
			typeArgs = append(typeArgs, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if !p.consumeClosingAngle() {
			return ast.NoTypeID, false
		}
	}

	return p.arenas.Types.NewRef(start.Cover(p.lastSpan), path, typeArgs), true
}

// parseTypeParamList parses `<T extends C = D, ...>`.
func (p *Parser) parseTypeParamList() ([]ast.TypeParamDecl, bool) {
	if _, ok := p.expect(token.Lt, diag.SynExpectType, "expected '<' to start a type parameter list"); !ok {
		return nil, false
	}
	var params []ast.TypeParamDecl
	for !p.atAngleCloser() && !p.at(token.EOF) {
		start := p.lx.Peek().Span
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a type parameter name")
		if !ok {
			return nil, false
		}
		constraint, def := ast.NoTypeID, ast.NoTypeID
		if p.at(token.KwExtends) {
			p.advance()
			constraint, ok = p.parseTypeExpr()
			if !ok {
				return nil, false
			}
		}
		if p.at(token.Assign) {
			p.advance()
			def, ok = p.parseTypeExpr()
			if !ok {
				return nil, false
			}
		}
		params = append(params, ast.TypeParamDecl{
			Name:       p.arenas.Intern(nameTok.Text),
			Constraint: constraint,
			Default:    def,
			Span:       start.Cover(p.lastSpan),
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.consumeClosingAngle() {
		return nil, false
	}
	return params, true
}

// parseEntityNameExpr parses a dotted identifier chain (no calls or
// indexing), the grammar TypeScript allows as a `typeof` type operand.
func (p *Parser) parseEntityNameExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected an identifier")
	if !ok {
		return ast.NoExprID, false
	}
	expr := p.arenas.Exprs.NewIdent(nameTok.Span, p.arenas.Intern(nameTok.Text))
	for p.at(token.Dot) {
		p.advance()
		memberTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a property name")
		if !ok {
			return ast.NoExprID, false
		}
		expr = p.arenas.Exprs.NewMember(start.Cover(p.lastSpan), expr, p.arenas.Intern(memberTok.Text), false, false)
	}
	return expr, true
}
