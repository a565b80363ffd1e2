package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// parseInterfaceItem parses an `interface Name<T> extends A, B { ... }`
// declaration. Its body uses the same member grammar as an object-type
// literal.
func (p *Parser) parseInterfaceItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwInterface, diag.SynUnexpectedToken, "expected 'interface'"); !ok {
		return ast.NoItemID, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	var typeParams []ast.TypeParamDecl
	if p.at(token.Lt) {
		typeParams, ok = p.parseTypeParamList()
		if !ok {
			return ast.NoItemID, false
		}
	}

	var extends []ast.TypeID
	if p.at(token.KwExtends) {
		p.advance()
		for {
			t, ok := p.parseTypeRef()
			if !ok {
				return ast.NoItemID, false
			}
			extends = append(extends, t)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	members, ok := p.parseObjectTypeMembers()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewInterface(name, typeParams, extends, members, modifiers, start.Cover(p.lastSpan)), true
}

// parseTypeAliasItem parses a `type Name<T> = Expr` declaration.
func (p *Parser) parseTypeAliasItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwType, diag.SynUnexpectedToken, "expected 'type'"); !ok {
		return ast.NoItemID, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	var typeParams []ast.TypeParamDecl
	if p.at(token.Lt) {
		typeParams, ok = p.parseTypeParamList()
		if !ok {
			return ast.NoItemID, false
		}
	}

	if _, ok := p.expect(token.Assign, diag.SynTypeExpectEquals, "expected '=' in type alias"); !ok {
		return ast.NoItemID, false
	}
	target, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoItemID, false
	}
	p.consumeStatementTerminator()
	return p.arenas.Items.NewTypeAliasDecl(name, typeParams, target, modifiers, start.Cover(p.lastSpan)), true
}

// parseClassHeader parses the `Name<T> extends Base implements I, J` header
// shared by class declarations and class expressions. The leading 'class'
// keyword must already be consumed.
func (p *Parser) parseClassHeader() (source.StringID, []ast.TypeParamDecl, ast.TypeID, []ast.TypeID, bool) {
	name := source.NoStringID
	if p.at(token.Ident) {
		n, ok := p.parseIdent()
		if !ok {
			return source.NoStringID, nil, ast.NoTypeID, nil, false
		}
		name = n
	}

	var typeParams []ast.TypeParamDecl
	if p.at(token.Lt) {
		tp, ok := p.parseTypeParamList()
		if !ok {
			return name, nil, ast.NoTypeID, nil, false
		}
		typeParams = tp
	}

	extends := ast.NoTypeID
	if p.at(token.KwExtends) {
		p.advance()
		t, ok := p.parseTypeRef()
		if !ok {
			return name, typeParams, ast.NoTypeID, nil, false
		}
		extends = t
	}

	var implements []ast.TypeID
	if p.at(token.KwImplements) {
		p.advance()
		for {
			t, ok := p.parseTypeRef()
			if !ok {
				return name, typeParams, extends, implements, false
			}
			implements = append(implements, t)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	return name, typeParams, extends, implements, true
}

// parseClassItem parses a top-level or namespace-level class declaration.
func (p *Parser) parseClassItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'"); !ok {
		return ast.NoItemID, false
	}
	name, typeParams, extends, implements, ok := p.parseClassHeader()
	if !ok {
		return ast.NoItemID, false
	}
	members, ok := p.parseClassMembers()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewClass(name, typeParams, extends, implements, members, modifiers, start.Cover(p.lastSpan)), true
}

// parseClassExpr parses a `class {...}` expression, used for local class
// declarations (statements) and anonymous/named class expressions.
func (p *Parser) parseClassExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'"); !ok {
		return ast.NoExprID, false
	}
	name, typeParams, extends, implements, ok := p.parseClassHeader()
	if !ok {
		return ast.NoExprID, false
	}
	members, ok := p.parseClassMembers()
	if !ok {
		return ast.NoExprID, false
	}
	span := start.Cover(p.lastSpan)
	return p.arenas.NewClassExpr(span, name, typeParams, extends, implements, members, span), true
}

// parseClassMembers parses a `{`-delimited class body.
func (p *Parser) parseClassMembers() ([]ast.ClassMember, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start class body"); !ok {
		return nil, false
	}
	var members []ast.ClassMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			continue
		}
		members = append(members, member)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body"); !ok {
		return nil, false
	}
	return members, true
}

// atOverrideModifier reports whether the parser sits on the contextual
// `override` identifier used as a member modifier rather than as a member
// name (`override: string` names a property called override).
func (p *Parser) atOverrideModifier() bool {
	if p.lx.Peek().Text != "override" {
		return false
	}
	tok := p.advance()
	isModifierContinuation := p.at(token.Ident) || p.at(token.KwPublic) || p.at(token.KwPrivate) ||
		p.at(token.KwProtected) || p.at(token.KwReadonly) || p.at(token.KwStatic) || p.at(token.KwGet) ||
		p.at(token.KwSet) || p.at(token.Star) || p.at(token.LBracket) || p.at(token.StringLit) || p.at(token.NumericLit)
	p.lx.Push(tok)
	return isModifierContinuation
}

// parseMethodBody parses a method/accessor/constructor body, or consumes the
// statement terminator for an ambient/abstract/overload signature with no
// body.
func (p *Parser) parseMethodBody() (ast.StmtID, bool) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	p.consumeStatementTerminator()
	return ast.NoStmtID, true
}

// parseClassMember parses one property, method, accessor, constructor,
// index signature, or static initialization block in a class body.
func (p *Parser) parseClassMember() (ast.ClassMember, bool) {
	start := p.lx.Peek().Span
	p.skipDecorators()

	var mods ast.FnModifier
modifierLoop:
	for {
		switch p.lx.Peek().Kind {
		case token.KwPublic:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnPublic
		case token.KwPrivate:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnPrivate
		case token.KwProtected:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnProtected
		case token.KwStatic:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnStatic
		case token.KwAbstract:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnAbstract
		case token.KwReadonly:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnReadonly
		case token.KwAsync:
			if p.nextIsMemberTerminator() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnAsync
		case token.Ident:
			if !p.atOverrideModifier() {
				break modifierLoop
			}
			p.advance()
			mods |= ast.FnOverride
		default:
			break modifierLoop
		}
	}

	if mods&ast.FnStatic != 0 && p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return ast.ClassMember{}, false
		}
		return p.arenas.NewClassMember(ast.ClassMemberStaticBlock, source.NoStringID, nil, nil, ast.NoTypeID, ast.NoExprID, body, mods, start.Cover(p.lastSpan)), true
	}

	if p.at(token.Star) {
		p.advance()
		mods |= ast.FnGenerator
	}

	if (p.at(token.KwGet) || p.at(token.KwSet)) && p.nextIsPropertyName() {
		isGetter := p.at(token.KwGet)
		p.advance()
		name, ok := p.parsePropertyName()
		if !ok {
			return ast.ClassMember{}, false
		}
		params, ok := p.parseParamList()
		if !ok {
			return ast.ClassMember{}, false
		}
		retType := ast.NoTypeID
		if p.at(token.Colon) {
			p.advance()
			retType, ok = p.parseTypeExpr()
			if !ok {
				return ast.ClassMember{}, false
			}
		}
		body, ok := p.parseMethodBody()
		if !ok {
			return ast.ClassMember{}, false
		}
		kind := ast.ClassMemberSetter
		if isGetter {
			kind = ast.ClassMemberGetter
			mods |= ast.FnGetter
		} else {
			mods |= ast.FnSetter
		}
		return p.arenas.NewClassMember(kind, name, nil, params, retType, ast.NoExprID, body, mods, start.Cover(p.lastSpan)), true
	}

	if p.at(token.LBracket) && p.looksLikeIndexSignature() {
		p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected an index parameter name")
		if !ok {
			return ast.ClassMember{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in index signature"); !ok {
			return ast.ClassMember{}, false
		}
		keyType, ok := p.parseTypeExpr()
		if !ok {
			return ast.ClassMember{}, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close index signature"); !ok {
			return ast.ClassMember{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after index signature"); !ok {
			return ast.ClassMember{}, false
		}
		valueType, ok := p.parseTypeExpr()
		if !ok {
			return ast.ClassMember{}, false
		}
		p.consumeStatementTerminator()
		indexName := p.arenas.Intern(nameTok.Text)
		params := []ast.Param{{Name: indexName, Type: keyType, Span: nameTok.Span}}
		return p.arenas.NewClassMember(ast.ClassMemberIndexSignature, indexName, nil, params, valueType, ast.NoExprID, ast.NoStmtID, mods, start.Cover(p.lastSpan)), true
	}

	if p.at(token.Ident) && p.lx.Peek().Text == "constructor" {
		p.advance()
		params, ok := p.parseParamList()
		if !ok {
			return ast.ClassMember{}, false
		}
		body, ok := p.parseMethodBody()
		if !ok {
			return ast.ClassMember{}, false
		}
		return p.arenas.NewClassMember(ast.ClassMemberConstructor, source.NoStringID, nil, params, ast.NoTypeID, ast.NoExprID, body, mods, start.Cover(p.lastSpan)), true
	}

	name, ok := p.parsePropertyName()
	if !ok {
		return ast.ClassMember{}, false
	}
	if p.at(token.Question) {
		p.advance()
		mods |= ast.FnOptional
	}
	if p.at(token.Bang) {
		// Definite-assignment assertion (`name!: Type`); no runtime effect.
		p.advance()
	}

	if p.at(token.Lt) || p.at(token.LParen) {
		var typeParams []ast.TypeParamDecl
		if p.at(token.Lt) {
			tp, ok := p.parseTypeParamList()
			if !ok {
				return ast.ClassMember{}, false
			}
			typeParams = tp
		}
		params, ok := p.parseParamList()
		if !ok {
			return ast.ClassMember{}, false
		}
		retType := ast.NoTypeID
		if p.at(token.Colon) {
			p.advance()
			retType, ok = p.parseTypeExpr()
			if !ok {
				return ast.ClassMember{}, false
			}
		}
		body, ok := p.parseMethodBody()
		if !ok {
			return ast.ClassMember{}, false
		}
		return p.arenas.NewClassMember(ast.ClassMemberMethod, name, typeParams, params, retType, ast.NoExprID, body, mods, start.Cover(p.lastSpan)), true
	}

	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.parseTypeExpr()
		if !ok {
			return ast.ClassMember{}, false
		}
		typ = t
	}
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		e, ok := p.parseAssignExpr()
		if !ok {
			return ast.ClassMember{}, false
		}
		init = e
	}
	p.consumeStatementTerminator()
	return p.arenas.NewClassMember(ast.ClassMemberProperty, name, nil, nil, typ, init, ast.NoStmtID, mods, start.Cover(p.lastSpan)), true
}
