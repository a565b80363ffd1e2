package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// parsePostfixExpr parses a left-hand-side expression followed by an
// optional trailing `++`/`--`. Automatic semicolon insertion forbids a
// newline between the operand and the postfix operator.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	operand, ok := p.parseLHSExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.hasNewlineBefore() {
		return operand, true
	}
	switch p.lx.Peek().Kind {
	case token.PlusPlus:
		p.advance()
		return p.arenas.Exprs.NewUpdate(start.Cover(p.lastSpan), ast.UpdateIncrement, operand, false), true
	case token.MinusMinus:
		p.advance()
		return p.arenas.Exprs.NewUpdate(start.Cover(p.lastSpan), ast.UpdateDecrement, operand, false), true
	default:
		return operand, true
	}
}

// parseLHSExpr parses a `new` expression or a primary expression, then
// folds on any trailing chain of member accesses, index accesses, calls,
// and tagged templates.
func (p *Parser) parseLHSExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	var expr ast.ExprID
	var ok bool
	if p.at(token.KwNew) {
		expr, ok = p.parseNewExpr()
	} else {
		expr, ok = p.parsePrimaryExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseCallMemberChain(start, expr)
}

// parseNewExpr parses `new Callee(args)`, `new Callee`, and nested `new`
// targets (`new new Foo()`). The callee preceding the argument list may only
// be a chain of member/index accesses over a primary expression; a bare
// call there would belong to a different `new` instead. `new.target` is not
// modeled.
func (p *Parser) parseNewExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	p.advance() // 'new'

	var callee ast.ExprID
	var ok bool
	if p.at(token.KwNew) {
		callee, ok = p.parseNewExpr()
	} else {
		callee, ok = p.parsePrimaryExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	callee, ok = p.parseMemberOnlyChain(callee)
	if !ok {
		return ast.NoExprID, false
	}

	var typeArgs []ast.TypeID
	if p.at(token.Lt) && p.looksLikeCallTypeArgs() {
		ta, ok := p.parseTypeArgList()
		if !ok {
			return ast.NoExprID, false
		}
		typeArgs = ta
	}

	hasArgs := false
	var args []ast.ExprID
	if p.at(token.LParen) {
		hasArgs = true
		a, ok := p.parseArgList()
		if !ok {
			return ast.NoExprID, false
		}
		args = a
	}
	return p.arenas.Exprs.NewNew(start.Cover(p.lastSpan), callee, typeArgs, args, hasArgs), true
}

// parseMemberOnlyChain folds member and index accesses over expr, stopping
// before any call; used to parse a `new` callee, which may not itself
// include a call.
func (p *Parser) parseMemberOnlyChain(expr ast.ExprID) (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			field, ok := p.parseMemberName()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewMember(start.Cover(p.lastSpan), expr, field, false, false)
		case token.PrivateIdent:
			// unreachable without a preceding '.', kept for symmetry
			return expr, true
		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close index access"); !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewIndexAccess(start.Cover(p.lastSpan), expr, index, false)
		default:
			return expr, true
		}
	}
}

// parseCallMemberChain folds the trailing chain of `.field`, `?.field`,
// `[index]`, `?.[index]`, `(args)`, `?.(args)`, and tagged-template suffixes
// onto expr.
func (p *Parser) parseCallMemberChain(start source.Span, expr ast.ExprID) (ast.ExprID, bool) {
	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			field, ok := p.parseMemberName()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewMember(start.Cover(p.lastSpan), expr, field, false, false)
		case token.QuestionDot:
			p.advance()
			switch p.lx.Peek().Kind {
			case token.LParen:
				args, ok := p.parseArgList()
				if !ok {
					return ast.NoExprID, false
				}
				expr = p.arenas.Exprs.NewCall(start.Cover(p.lastSpan), expr, nil, args, true)
			case token.LBracket:
				p.advance()
				index, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close index access"); !ok {
					return ast.NoExprID, false
				}
				expr = p.arenas.Exprs.NewIndexAccess(start.Cover(p.lastSpan), expr, index, true)
			default:
				field, ok := p.parseMemberName()
				if !ok {
					return ast.NoExprID, false
				}
				expr = p.arenas.Exprs.NewMember(start.Cover(p.lastSpan), expr, field, false, true)
			}
		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close index access"); !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewIndexAccess(start.Cover(p.lastSpan), expr, index, false)
		case token.LParen:
			args, ok := p.parseArgList()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(start.Cover(p.lastSpan), expr, nil, args, false)
		case token.Bang:
			if p.hasNewlineBefore() {
				return expr, true
			}
			p.advance()
			expr = p.arenas.Exprs.NewNonNull(start.Cover(p.lastSpan), expr)
		case token.Lt:
			if !p.looksLikeCallTypeArgs() {
				return expr, true
			}
			typeArgs, ok := p.parseTypeArgList()
			if !ok {
				return ast.NoExprID, false
			}
			if p.at(token.NoSubstitutionTemplateLit) || p.at(token.TemplateHead) {
				tagged, ok := p.parseTemplateLit(expr)
				if !ok {
					return ast.NoExprID, false
				}
				expr = tagged
				continue
			}
			args, ok := p.parseArgList()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(start.Cover(p.lastSpan), expr, typeArgs, args, false)
		case token.NoSubstitutionTemplateLit, token.TemplateHead:
			tagged, ok := p.parseTemplateLit(expr)
			if !ok {
				return ast.NoExprID, false
			}
			expr = tagged
		default:
			return expr, true
		}
	}
}

// parseMemberName parses the name after a `.`/`?.`: an ordinary identifier,
// a private field (`#x`), or a contextual keyword used as a property name.
func (p *Parser) parseMemberName() (source.StringID, bool) {
	if p.at(token.PrivateIdent) {
		tok := p.advance()
		return p.arenas.Intern(tok.Text), true
	}
	if p.at(token.Ident) || p.lx.Peek().IsKeyword() {
		tok := p.advance()
		return p.arenas.Intern(tok.Text), true
	}
	p.err(diag.SynExpectIdentifier, "expected a property name")
	return source.NoStringID, false
}

// parseArgList parses a parenthesized, comma-separated call argument list,
// each argument optionally spread with `...`.
func (p *Parser) parseArgList() ([]ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' to start argument list"); !ok {
		return nil, false
	}
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		argStart := p.lx.Peek().Span
		var arg ast.ExprID
		var ok bool
		if p.at(token.DotDotDot) {
			p.advance()
			value, vok := p.parseAssignExpr()
			if !vok {
				return nil, false
			}
			arg, ok = p.arenas.Exprs.NewSpread(argStart.Cover(p.lastSpan), value), true
		} else {
			arg, ok = p.parseAssignExpr()
		}
		if !ok {
			p.resyncUntil(token.Comma, token.RParen)
		} else {
			args = append(args, arg)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	return args, true
}

// parseTypeArgList parses a committed `<T, U>` type argument list; the
// caller must have already confirmed via looksLikeCallTypeArgs that '<'
// here opens a type-argument list rather than a less-than comparison.
func (p *Parser) parseTypeArgList() ([]ast.TypeID, bool) {
	if _, ok := p.expect(token.Lt, diag.SynExpectType, "expected '<' to start a type argument list"); !ok {
		return nil, false
	}
	var args []ast.TypeID
	for !p.atAngleCloser() && !p.at(token.EOF) {
		t, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		args = append(args, t)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.consumeClosingAngle() {
		return nil, false
	}
	return args, true
}

// looksLikeCallTypeArgs performs a speculative, pushback-restoring scan to
// disambiguate `f<T>(...)` (a generic call) from `f < T > x` (a chain of
// comparisons). It succeeds only when a balanced '<...>' run, immediately
// followed by '(' or a template literal, is found before any token that
// could not appear inside a type argument list.
func (p *Parser) looksLikeCallTypeArgs() bool {
	var consumed []token.Token
	defer func() {
		for i := len(consumed) - 1; i >= 0; i-- {
			p.lx.Push(consumed[i])
		}
	}()
	take := func() token.Token {
		tok := p.lx.Next()
		consumed = append(consumed, tok)
		return tok
	}

	take() // '<'
	depth := 1
	for depth > 0 {
		switch p.lx.Peek().Kind {
		case token.EOF, token.Semicolon, token.LBrace:
			return false
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.UShr:
			depth -= 3
		case token.OrOr, token.AndAnd, token.QuestionQuestion, token.Question:
			return false
		}
		if depth < 0 {
			return false
		}
		take()
	}
	switch p.lx.Peek().Kind {
	case token.LParen, token.NoSubstitutionTemplateLit, token.TemplateHead:
		return true
	default:
		return false
	}
}
