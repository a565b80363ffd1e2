package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// parseExpr parses a full expression, including the comma operator.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	first, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	exprs := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		e, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, e)
	}
	return p.arenas.Exprs.NewSequence(start.Cover(p.lastSpan), exprs), true
}

// parseAssignExpr parses an assignment-level expression: an arrow function,
// a plain assignment, or anything of higher precedence.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	if arrow, ok := p.tryParseArrowFunction(); ok {
		return arrow, true
	}

	start := p.lx.Peek().Span
	left, ok := p.parseConditionalExpr()
	if !ok {
		return ast.NoExprID, false
	}

	if !p.lx.Peek().IsAssignOp() {
		return left, true
	}
	opTok := p.advance()
	right, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAssignment(start.Cover(p.lastSpan), assignOpFor(opTok.Kind), left, right), true
}

func assignOpFor(k token.Kind) ast.AssignOp {
	switch k {
	case token.PlusAssign:
		return ast.AssignAdd
	case token.MinusAssign:
		return ast.AssignSub
	case token.StarAssign:
		return ast.AssignMul
	case token.SlashAssign:
		return ast.AssignDiv
	case token.PercentAssign:
		return ast.AssignMod
	case token.StarStarAssign:
		return ast.AssignExp
	case token.AmpAssign:
		return ast.AssignBitAnd
	case token.PipeAssign:
		return ast.AssignBitOr
	case token.CaretAssign:
		return ast.AssignBitXor
	case token.ShlAssign:
		return ast.AssignShl
	case token.ShrAssign:
		return ast.AssignShr
	case token.UShrAssign:
		return ast.AssignUShr
	case token.AndAndAssign:
		return ast.AssignLogicalAnd
	case token.OrOrAssign:
		return ast.AssignLogicalOr
	case token.QuestionQAssign:
		return ast.AssignNullish
	default:
		return ast.AssignPlain
	}
}

// tryParseArrowFunction attempts to parse an arrow function starting at the
// current position; it returns (NoExprID, false) without consuming anything
// if the lookahead rules out an arrow here.
func (p *Parser) tryParseArrowFunction() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	switch {
	case p.at(token.KwAsync) && p.nextIsAsyncArrow():
		p.advance() // 'async'
		return p.parseArrowFunctionRest(start, ast.FnAsync)
	case p.at(token.Ident) && p.nextIsIdentArrow():
		return p.parseArrowFunctionRest(start, 0)
	case p.at(token.LParen) && p.nextIsArrowParams():
		return p.parseArrowFunctionRest(start, 0)
	default:
		return ast.NoExprID, false
	}
}

// nextIsIdentArrow reports whether the current identifier is immediately
// followed by '=>' (a single-parameter concise arrow with no parens).
func (p *Parser) nextIsIdentArrow() bool {
	tok := p.advance()
	isArrow := p.at(token.FatArrow)
	p.lx.Push(tok)
	return isArrow
}

// nextIsAsyncArrow reports whether the current 'async' introduces an async
// arrow function (`async x => ...` or `async (x) => ...`) rather than an
// `async` identifier or `async function`.
func (p *Parser) nextIsAsyncArrow() bool {
	tok := p.advance() // 'async'
	if p.hasNewlineBefore() {
		p.lx.Push(tok)
		return false
	}
	isArrow := (p.at(token.Ident) && p.nextIsIdentArrow()) || (p.at(token.LParen) && p.nextIsArrowParams())
	p.lx.Push(tok)
	return isArrow
}

// nextIsArrowParams reports whether the '(' at the current position opens a
// parenthesized parameter list followed by '=>' (optionally after a ':
// ReturnType' annotation), as opposed to a parenthesized expression. All
// tokens consumed during the lookahead are restored before returning.
func (p *Parser) nextIsArrowParams() bool {
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

	take() // '('
	depth := 1
	for depth > 0 {
		if p.at(token.EOF) {
			return false
		}
		switch p.lx.Peek().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		take()
	}

	if p.at(token.FatArrow) {
		return true
	}
	if !p.at(token.Colon) {
		return false
	}
	take() // ':'

	typeDepth := 0
	for {
		if p.at(token.EOF) || p.at(token.Semicolon) {
			return false
		}
		if typeDepth == 0 {
			switch p.lx.Peek().Kind {
			case token.FatArrow:
				return true
			case token.RBrace, token.Comma:
				return false
			}
		}
		switch p.lx.Peek().Kind {
		case token.LParen, token.LBracket, token.LBrace, token.Lt:
			typeDepth++
		case token.RParen, token.RBracket, token.RBrace, token.Gt:
			typeDepth = max(0, typeDepth-1)
		case token.Shr:
			typeDepth = max(0, typeDepth-2)
		case token.UShr:
			typeDepth = max(0, typeDepth-3)
		}
		take()
	}
}

// parseArrowFunctionRest parses the parameter list (or single bare
// identifier), optional return type, and body of an arrow function whose
// lookahead has already been confirmed by tryParseArrowFunction. start
// covers the leading 'async' keyword, if present.
func (p *Parser) parseArrowFunctionRest(start source.Span, fnMods ast.FnModifier) (ast.ExprID, bool) {
	var params []ast.Param
	if p.at(token.Ident) {
		tok := p.advance()
		params = []ast.Param{{Name: p.arenas.Intern(tok.Text), Type: ast.NoTypeID, Default: ast.NoExprID, Span: tok.Span}}
	} else {
		ps, ok := p.parseParamList()
		if !ok {
			return ast.NoExprID, false
		}
		params = ps
	}

	returnType := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoExprID, false
		}
		returnType = t
	}

	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'"); !ok {
		return ast.NoExprID, false
	}

	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewArrowFunction(start.Cover(p.lastSpan), nil, params, returnType, body, ast.NoExprID, fnMods), true
	}
	exprBody, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArrowFunction(start.Cover(p.lastSpan), nil, params, returnType, ast.NoStmtID, exprBody, fnMods), true
}

func (p *Parser) parseConditionalExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	cond, ok := p.parseNullishExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	p.advance()
	then, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewConditional(start.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseNullishExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseLogicalOrExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.QuestionQuestion) {
		p.advance()
		right, ok := p.parseLogicalOrExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewLogical(start.Cover(p.lastSpan), ast.LogNullish, left, right)
	}
	return left, true
}

func (p *Parser) parseLogicalOrExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseLogicalAndExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.OrOr) {
		p.advance()
		right, ok := p.parseLogicalAndExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewLogical(start.Cover(p.lastSpan), ast.LogOr, left, right)
	}
	return left, true
}

func (p *Parser) parseLogicalAndExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseBitOrExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.AndAnd) {
		p.advance()
		right, ok := p.parseBitOrExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewLogical(start.Cover(p.lastSpan), ast.LogAnd, left, right)
	}
	return left, true
}

func (p *Parser) parseBitOrExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseBitXorExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Pipe) {
		p.advance()
		right, ok := p.parseBitXorExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinBitOr, left, right)
	}
	return left, true
}

func (p *Parser) parseBitXorExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseBitAndExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Caret) {
		p.advance()
		right, ok := p.parseBitAndExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinBitXor, left, right)
	}
	return left, true
}

func (p *Parser) parseBitAndExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseEqualityExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Amp) {
		p.advance()
		right, ok := p.parseEqualityExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinBitAnd, left, right)
	}
	return left, true
}

func (p *Parser) parseEqualityExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseRelationalExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.BinaryOp
		switch p.lx.Peek().Kind {
		case token.EqEq:
			op = ast.BinEq
		case token.BangEq:
			op = ast.BinNotEq
		case token.EqEqEq:
			op = ast.BinStrictEq
		case token.BangEqEq:
			op = ast.BinStrictNotEq
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseRelationalExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

// parseRelationalExpr also absorbs the `as`/`satisfies` postfix type casts,
// which the grammar places at relational precedence.
func (p *Parser) parseRelationalExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseShiftExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch {
		case p.at(token.Lt):
			p.advance()
			right, ok := p.parseShiftExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinLess, left, right)
		case p.at(token.LtEq):
			p.advance()
			right, ok := p.parseShiftExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinLessEq, left, right)
		case p.at(token.Gt):
			p.advance()
			right, ok := p.parseShiftExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinGreater, left, right)
		case p.at(token.GtEq):
			p.advance()
			right, ok := p.parseShiftExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinGreaterEq, left, right)
		case p.at(token.KwInstanceof):
			p.advance()
			right, ok := p.parseShiftExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinInstanceOf, left, right)
		case p.at(token.KwIn):
			p.advance()
			right, ok := p.parseShiftExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinIn, left, right)
		case p.at(token.KwAs):
			p.advance()
			if p.at(token.KwConst) {
				p.advance()
				left = p.arenas.Exprs.NewAs(start.Cover(p.lastSpan), left, ast.NoTypeID, true)
				continue
			}
			typ, ok := p.parseTypeExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewAs(start.Cover(p.lastSpan), left, typ, false)
		case p.at(token.Ident) && p.lx.Peek().Text == "satisfies":
			p.advance()
			typ, ok := p.parseTypeExpr()
			if !ok {
				return ast.NoExprID, false
			}
			left = p.arenas.Exprs.NewSatisfies(start.Cover(p.lastSpan), left, typ)
		default:
			return left, true
		}
	}
}

func (p *Parser) parseShiftExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseAdditiveExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.BinaryOp
		switch p.lx.Peek().Kind {
		case token.Shl:
			op = ast.BinShl
		case token.Shr:
			op = ast.BinShr
		case token.UShr:
			op = ast.BinUShr
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseAdditiveExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

func (p *Parser) parseAdditiveExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseMultiplicativeExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.BinaryOp
		switch p.lx.Peek().Kind {
		case token.Plus:
			op = ast.BinAdd
		case token.Minus:
			op = ast.BinSub
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseMultiplicativeExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

func (p *Parser) parseMultiplicativeExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseExponentExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.BinaryOp
		switch p.lx.Peek().Kind {
		case token.Star:
			op = ast.BinMul
		case token.Slash:
			op = ast.BinDiv
		case token.Percent:
			op = ast.BinMod
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseExponentExpr()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), op, left, right)
	}
}

// parseExponentExpr parses right-associative `**`.
func (p *Parser) parseExponentExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.StarStar) {
		return left, true
	}
	p.advance()
	right, ok := p.parseExponentExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBinary(start.Cover(p.lastSpan), ast.BinExp, left, right), true
}

// parseUnaryExpr parses prefix unary/update operators, the legacy `<T>expr`
// cast, and `await`/`yield`. Neither await nor yield has a dedicated AST
// node, so both are parsed and erased to their operand expression.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	switch p.lx.Peek().Kind {
	case token.Plus:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryPlus, operand), true
	case token.Minus:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryMinus, operand), true
	case token.Bang:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryNot, operand), true
	case token.Tilde:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryBitNot, operand), true
	case token.KwTypeof:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryTypeof, operand), true
	case token.KwVoid:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryVoid, operand), true
	case token.KwDelete:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(start.Cover(p.lastSpan), ast.UnaryDelete, operand), true
	case token.PlusPlus:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUpdate(start.Cover(p.lastSpan), ast.UpdateIncrement, operand, true), true
	case token.MinusMinus:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUpdate(start.Cover(p.lastSpan), ast.UpdateDecrement, operand, true), true
	case token.KwAwait:
		p.advance()
		return p.parseUnaryExpr()
	case token.KwYield:
		p.advance()
		if p.at(token.Star) {
			p.advance()
		}
		if p.atExprEnd() {
			return p.arenas.Exprs.NewUndefinedLit(start.Cover(p.lastSpan)), true
		}
		return p.parseAssignExpr()
	case token.Lt:
		return p.parseLegacyCastExpr(start)
	default:
		return p.parsePostfixExpr()
	}
}

// atExprEnd reports whether the current token cannot start an expression,
// used to recognize a bare `yield` with no operand.
func (p *Parser) atExprEnd() bool {
	switch p.lx.Peek().Kind {
	case token.Semicolon, token.RParen, token.RBrace, token.RBracket, token.Comma, token.Colon, token.EOF:
		return true
	default:
		return p.hasNewlineBefore()
	}
}

// parseLegacyCastExpr parses the pre-`as` `<Type>expr` prefix cast syntax.
func (p *Parser) parseLegacyCastExpr(start source.Span) (ast.ExprID, bool) {
	p.advance() // '<'
	typ, ok := p.parseTypeExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.consumeClosingAngle() {
		return ast.NoExprID, false
	}
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAs(start.Cover(p.lastSpan), operand, typ, false), true
}

// parsePrimaryExpr parses a literal, identifier, parenthesized expression,
// array/object literal, template literal, or function/class expression.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	switch p.lx.Peek().Kind {
	case token.NumericLit:
		tok := p.advance()
		return p.arenas.Exprs.NewNumericLit(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.BigIntLit:
		tok := p.advance()
		return p.arenas.Exprs.NewBigIntLit(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.StringLit:
		tok := p.advance()
		return p.arenas.Exprs.NewStringLit(start.Cover(p.lastSpan), p.arenas.Intern(stripQuotes(tok.Text))), true
	case token.RegexLit:
		// Regular-expression literals have no dedicated AST node; their raw
		// source text (delimiters included) is kept as a string literal.
		tok := p.advance()
		return p.arenas.Exprs.NewStringLit(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.arenas.Exprs.NewBoolLit(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.KwNull:
		p.advance()
		return p.arenas.Exprs.NewNullLit(start.Cover(p.lastSpan)), true
	case token.KwUndefined:
		p.advance()
		return p.arenas.Exprs.NewUndefinedLit(start.Cover(p.lastSpan)), true
	case token.KwThis:
		p.advance()
		return p.arenas.Exprs.NewThis(start.Cover(p.lastSpan)), true
	case token.KwSuper:
		p.advance()
		return p.arenas.Exprs.NewSuper(start.Cover(p.lastSpan)), true
	case token.NoSubstitutionTemplateLit, token.TemplateHead:
		return p.parseTemplateLit(ast.NoExprID)
	case token.PrivateIdent:
		tok := p.advance()
		return p.arenas.Exprs.NewPrivateIdent(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.Ident:
		tok := p.advance()
		return p.arenas.Exprs.NewIdent(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.KwFunction:
		return p.parseFunctionExpr(0)
	case token.KwAsync:
		if p.nextIsAsyncFunction() {
			p.advance() // 'async'
			return p.parseFunctionExpr(ast.FnAsync)
		}
		tok := p.advance()
		return p.arenas.Exprs.NewIdent(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
	case token.KwClass:
		return p.parseClassExpr()
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression"); !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewParen(start.Cover(p.lastSpan), inner), true
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	default:
		if p.lx.Peek().IsKeyword() {
			// A contextual keyword used as an ordinary identifier in
			// expression position (e.g. `type`, `of`, `get`).
			tok := p.advance()
			return p.arenas.Exprs.NewIdent(start.Cover(p.lastSpan), p.arenas.Intern(tok.Text)), true
		}
		p.err(diag.SynExpectExpression, "expected an expression")
		return ast.NoExprID, false
	}
}

func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.LBracket, diag.SynUnclosedSquareBracket, "expected '[' to start an array literal"); !ok {
		return ast.NoExprID, false
	}
	var elements []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elements = append(elements, ast.NoExprID) // elision hole
			p.advance()
			continue
		}
		var elem ast.ExprID
		var ok bool
		if p.at(token.DotDotDot) {
			spreadStart := p.lx.Peek().Span
			p.advance()
			value, vok := p.parseAssignExpr()
			if !vok {
				return ast.NoExprID, false
			}
			elem, ok = p.arenas.Exprs.NewSpread(spreadStart.Cover(p.lastSpan), value), true
		} else {
			elem, ok = p.parseAssignExpr()
		}
		if !ok {
			p.resyncUntil(token.Comma, token.RBracket)
		} else {
			elements = append(elements, elem)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close array literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArrayLit(start.Cover(p.lastSpan), elements), true
}

func (p *Parser) parseObjectLit() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start an object literal"); !ok {
		return ast.NoExprID, false
	}
	var props []ast.ObjectProp
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop, ok := p.parseObjectProp()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
		} else {
			props = append(props, prop)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObjectLit(start.Cover(p.lastSpan), props), true
}

// nextIsObjectMemberStart reports whether the token after the current one
// (a contextual `get`/`set`/`async` keyword, or `*`) can itself start a
// property name, distinguishing a modifier from a shorthand property
// literally named `get`/`set`/`async`.
func (p *Parser) nextIsObjectMemberStart() bool {
	tok := p.advance()
	isStart := p.at(token.Ident) || p.at(token.StringLit) || p.at(token.NumericLit) ||
		p.at(token.LBracket) || p.at(token.Star) || p.lx.Peek().IsKeyword()
	p.lx.Push(tok)
	return isStart
}

// parseObjectProp parses one object-literal property: key-value, shorthand,
// method, getter/setter, or spread.
func (p *Parser) parseObjectProp() (ast.ObjectProp, bool) {
	start := p.lx.Peek().Span

	if p.at(token.DotDotDot) {
		p.advance()
		value, ok := p.parseAssignExpr()
		if !ok {
			return ast.ObjectProp{}, false
		}
		return ast.ObjectProp{Kind: ast.ObjectPropSpread, Value: value, Span: start.Cover(p.lastSpan)}, true
	}

	var fnMods ast.FnModifier
	isGetter, isSetter := false, false
	if (p.at(token.KwGet) || p.at(token.KwSet)) && p.nextIsObjectMemberStart() {
		isGetter = p.at(token.KwGet)
		isSetter = p.at(token.KwSet)
		p.advance()
	} else if p.at(token.KwAsync) && p.nextIsObjectMemberStart() {
		p.advance()
		fnMods |= ast.FnAsync
	}

	isGenerator := false
	if p.at(token.Star) {
		p.advance()
		isGenerator = true
	}

	computed := false
	keyExpr := ast.NoExprID
	var key source.StringID
	if p.at(token.LBracket) {
		computed = true
		p.advance()
		e, ok := p.parseAssignExpr()
		if !ok {
			return ast.ObjectProp{}, false
		}
		keyExpr = e
		if _, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after computed property name"); !ok {
			return ast.ObjectProp{}, false
		}
	} else {
		k, ok := p.parsePropertyName()
		if !ok {
			return ast.ObjectProp{}, false
		}
		key = k
	}

	if isGetter || isSetter {
		params, ok := p.parseParamList()
		if !ok {
			return ast.ObjectProp{}, false
		}
		retType := ast.NoTypeID
		if p.at(token.Colon) {
			p.advance()
			retType, ok = p.parseTypeExpr()
			if !ok {
				return ast.ObjectProp{}, false
			}
		}
		body, ok := p.parseBlock()
		if !ok {
			return ast.ObjectProp{}, false
		}
		fn := p.arenas.Exprs.NewFunctionExpr(start.Cover(p.lastSpan), source.NoStringID, nil, params, retType, body, fnMods)
		kind := ast.ObjectPropSetter
		if isGetter {
			kind = ast.ObjectPropGetter
		}
		return ast.ObjectProp{Kind: kind, Key: key, Computed: computed, KeyExpr: keyExpr, Value: fn, Span: start.Cover(p.lastSpan)}, true
	}

	if fnMods&ast.FnAsync != 0 || isGenerator || p.at(token.LParen) || p.at(token.Lt) {
		if isGenerator {
			fnMods |= ast.FnGenerator
		}
		var typeParams []ast.TypeParamDecl
		if p.at(token.Lt) {
			tp, ok := p.parseTypeParamList()
			if !ok {
				return ast.ObjectProp{}, false
			}
			typeParams = tp
		}
		params, ok := p.parseParamList()
		if !ok {
			return ast.ObjectProp{}, false
		}
		retType := ast.NoTypeID
		if p.at(token.Colon) {
			p.advance()
			retType, ok = p.parseTypeExpr()
			if !ok {
				return ast.ObjectProp{}, false
			}
		}
		body, ok := p.parseBlock()
		if !ok {
			return ast.ObjectProp{}, false
		}
		fn := p.arenas.Exprs.NewFunctionExpr(start.Cover(p.lastSpan), source.NoStringID, typeParams, params, retType, body, fnMods)
		return ast.ObjectProp{Kind: ast.ObjectPropMethod, Key: key, Computed: computed, KeyExpr: keyExpr, Value: fn, Span: start.Cover(p.lastSpan)}, true
	}

	if p.at(token.Colon) {
		p.advance()
		value, ok := p.parseAssignExpr()
		if !ok {
			return ast.ObjectProp{}, false
		}
		return ast.ObjectProp{Kind: ast.ObjectPropKeyValue, Key: key, Computed: computed, KeyExpr: keyExpr, Value: value, Span: start.Cover(p.lastSpan)}, true
	}

	if computed {
		p.err(diag.SynExpectColon, "expected ':' after computed property name")
		return ast.ObjectProp{}, false
	}

	// Shorthand `{ x }`, or `{ x = default }` when this object literal is
	// reused as a destructuring-assignment pattern.
	identExpr := p.arenas.Exprs.NewIdent(start.Cover(p.lastSpan), key)
	value := identExpr
	if p.at(token.Assign) {
		p.advance()
		def, ok := p.parseAssignExpr()
		if !ok {
			return ast.ObjectProp{}, false
		}
		value = p.arenas.Exprs.NewAssignment(start.Cover(p.lastSpan), ast.AssignPlain, identExpr, def)
	}
	return ast.ObjectProp{Kind: ast.ObjectPropShorthand, Key: key, Value: value, Span: start.Cover(p.lastSpan)}, true
}

// parseTemplateLit parses a backtick template literal, starting at its
// TemplateHead/NoSubstitutionTemplateLit token. `${...}` substitutions are
// transparent to the lexer's brace tracking, so the token immediately after
// each substitution expression is always a TemplateMiddle or TemplateTail.
func (p *Parser) parseTemplateLit(tag ast.ExprID) (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	head := p.advance()
	if head.Kind == token.NoSubstitutionTemplateLit {
		quasi := p.arenas.Intern(templateChunkText(head.Kind, head.Text))
		return p.arenas.Exprs.NewTemplateLit(start.Cover(p.lastSpan), []source.StringID{quasi}, nil, tag), true
	}

	quasis := []source.StringID{p.arenas.Intern(templateChunkText(head.Kind, head.Text))}
	var spans []ast.TemplateSpan
	for {
		holeStart := p.lx.Peek().Span
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		spans = append(spans, ast.TemplateSpan{Expr: e, Span: holeStart.Cover(p.lastSpan)})

		cont := p.lx.Peek()
		if cont.Kind != token.TemplateMiddle && cont.Kind != token.TemplateTail {
			p.err(diag.SynUnexpectedToken, "expected template literal continuation after '${...}'")
			return ast.NoExprID, false
		}
		p.advance()
		quasis = append(quasis, p.arenas.Intern(templateChunkText(cont.Kind, cont.Text)))
		if cont.Kind == token.TemplateTail {
			break
		}
	}
	return p.arenas.Exprs.NewTemplateLit(start.Cover(p.lastSpan), quasis, spans, tag), true
}

// templateChunkText strips the delimiter characters the lexer keeps as part
// of a template-literal token's raw text: a leading '`' or '}' and a
// trailing '`' or '${'.
func templateChunkText(kind token.Kind, raw string) string {
	front, back := 1, 1
	switch kind {
	case token.TemplateHead, token.TemplateMiddle:
		back = 2
	}
	if len(raw) < front+back {
		return raw
	}
	return raw[front : len(raw)-back]
}
