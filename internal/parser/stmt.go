package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// parseBlock parses a `{ stmt* }` block.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start a block"); !ok {
		return ast.NoStmtID, false
	}
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStatement()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(start.Cover(p.lastSpan), stmts), true
}

// parseStmt parses a single statement.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		span := p.advance().Span
		return p.arenas.Stmts.NewEmpty(span), true
	case token.KwVar, token.KwLet, token.KwConst:
		return p.parseVarDeclStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwDo:
		return p.parseDoWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwBreak:
		return p.parseBreakStmt()
	case token.KwContinue:
		return p.parseContinueStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.KwWith:
		return p.parseWithStmt()
	case token.KwDebugger:
		span := p.advance().Span
		p.consumeStatementTerminator()
		return p.arenas.Stmts.NewDebugger(span), true
	case token.KwFunction:
		return p.parseLocalFunctionStmt()
	case token.KwClass:
		return p.parseLocalClassStmt()
	case token.Ident:
		if p.atLabeledStmt() {
			return p.parseLabeledStmt()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// atLabeledStmt reports whether the parser is positioned at `ident:` that
// introduces a labeled statement, rather than an expression starting with an
// identifier.
func (p *Parser) atLabeledStmt() bool {
	ident := p.advance()
	isColon := p.at(token.Colon)
	p.lx.Push(ident)
	return isColon
}

func (p *Parser) parseLabeledStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	nameTok := p.advance()
	p.advance() // ':'
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLabeled(start.Cover(p.lastSpan), p.arenas.Intern(nameTok.Text), body), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consumeStatementTerminator()
	return p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), expr), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'return'
	expr := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.hasNewlineBefore() {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		expr = e
	}
	p.consumeStatementTerminator()
	return p.arenas.Stmts.NewReturn(start.Cover(p.lastSpan), expr), true
}

// hasNewlineBefore reports whether the upcoming token is preceded by a
// newline, used to implement return/break/continue's ASI restriction: the
// operand must start on the same line as the keyword.
func (p *Parser) hasNewlineBefore() bool {
	for _, tr := range p.lx.Peek().Leading {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

func (p *Parser) parseBreakStmt() (ast.StmtID, bool) {
	start := p.advance().Span
	label := source.NoStringID
	if p.at(token.Ident) && !p.hasNewlineBefore() {
		label = p.arenas.Intern(p.advance().Text)
	}
	p.consumeStatementTerminator()
	return p.arenas.Stmts.NewBreak(start.Cover(p.lastSpan), label), true
}

func (p *Parser) parseContinueStmt() (ast.StmtID, bool) {
	start := p.advance().Span
	label := source.NoStringID
	if p.at(token.Ident) && !p.hasNewlineBefore() {
		label = p.arenas.Intern(p.advance().Text)
	}
	p.consumeStatementTerminator()
	return p.arenas.Stmts.NewContinue(start.Cover(p.lastSpan), label), true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'if'
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'if'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoStmtID, false
	}
	thenStmt, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	elseStmt := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		e, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		elseStmt = e
	}
	return p.arenas.Stmts.NewIf(start.Cover(p.lastSpan), cond, thenStmt, elseStmt), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'while'
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(start.Cover(p.lastSpan), cond, body), true
}

func (p *Parser) parseDoWhileStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'do'
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after 'do' body"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoStmtID, false
	}
	p.consumeStatementTerminator()
	return p.arenas.Stmts.NewDoWhile(start.Cover(p.lastSpan), body, cond), true
}

// parseForStmt parses `for (init; cond; post) body`, `for (decl in expr) body`
// and `for (decl of expr) body`, disambiguating after the `(` by scanning for
// a bare `in`/`of` keyword ahead of the first `;`.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'for'
	if p.at(token.KwAwait) {
		p.advance() // for-await-of; iteration protocol distinction is checker-level
	}
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}

	kind, hasDecl := p.peekForHeaderKind()
	switch kind {
	case forHeaderIn, forHeaderOf:
		return p.parseForInOf(start, kind == forHeaderOf, hasDecl)
	default:
		return p.parseForClassic(start)
	}
}

type forHeaderKind int

const (
	forHeaderClassic forHeaderKind = iota
	forHeaderIn
	forHeaderOf
)

// peekForHeaderKind looks ahead from the '(' of a for-loop to tell apart a
// classic `init; cond; post` header from a `decl in/of iterable` header,
// restoring all consumed tokens before returning.
func (p *Parser) peekForHeaderKind() (forHeaderKind, bool) {
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

	hasDecl := false
	switch p.lx.Peek().Kind {
	case token.KwVar, token.KwLet, token.KwConst:
		take()
		hasDecl = true
	}

	if !p.at(token.Ident) {
		return forHeaderClassic, hasDecl
	}
	take() // binding name

	// Skip an optional `: Type` annotation by tracking bracket depth up to
	// the first top-level ';', 'in', 'of' or ')'.
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.Lt:
			depth++
			take()
		case token.RParen:
			if depth == 0 {
				return forHeaderClassic, hasDecl
			}
			depth--
			take()
		case token.RBracket, token.RBrace, token.Gt:
			if depth > 0 {
				depth--
			}
			take()
		case token.Semicolon, token.EOF:
			return forHeaderClassic, hasDecl
		case token.KwIn:
			if depth == 0 {
				return forHeaderIn, hasDecl
			}
			take()
		case token.KwOf:
			if depth == 0 {
				return forHeaderOf, hasDecl
			}
			take()
		default:
			take()
		}
	}
}

func (p *Parser) parseForInOf(start source.Span, isOf, hasDecl bool) (ast.StmtID, bool) {
	kw := ast.VarDeclLet
	switch p.lx.Peek().Kind {
	case token.KwVar:
		kw = ast.VarDeclVar
		p.advance()
	case token.KwLet:
		p.advance()
	case token.KwConst:
		kw = ast.VarDeclConst
		p.advance()
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a binding name")
	if !ok {
		return ast.NoStmtID, false
	}
	name := p.arenas.Intern(nameTok.Text)

	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		typ = t
	}

	if isOf {
		if _, ok := p.expect(token.KwOf, diag.SynUnexpectedToken, "expected 'of'"); !ok {
			return ast.NoStmtID, false
		}
	} else {
		if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'"); !ok {
			return ast.NoStmtID, false
		}
	}

	iterable, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}

	span := start.Cover(p.lastSpan)
	if isOf {
		return p.arenas.Stmts.NewForOf(span, kw, hasDecl, name, typ, iterable, body), true
	}
	return p.arenas.Stmts.NewForIn(span, kw, hasDecl, name, typ, iterable, body), true
}

func (p *Parser) parseForClassic(start source.Span) (ast.StmtID, bool) {
	init := ast.NoStmtID
	if !p.at(token.Semicolon) {
		switch p.lx.Peek().Kind {
		case token.KwVar, token.KwLet, token.KwConst:
			s, ok := p.parseVarDeclForInit()
			if !ok {
				return ast.NoStmtID, false
			}
			init = s
		default:
			initStart := p.lx.Peek().Span
			e, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			init = p.arenas.Stmts.NewExpr(initStart.Cover(p.lastSpan), e)
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after for-loop initializer"); !ok {
		return ast.NoStmtID, false
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		c, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		cond = c
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after for-loop condition"); !ok {
		return ast.NoStmtID, false
	}

	post := ast.NoExprID
	if !p.at(token.RParen) {
		pe, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		post = pe
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for-loop header"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewForClassic(start.Cover(p.lastSpan), init, cond, post, body), true
}

// parseVarDeclForInit parses the `var`/`let`/`const` declarator list used as
// the init clause of a classic for-loop header, without consuming the
// trailing ';' (the caller does).
func (p *Parser) parseVarDeclForInit() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	keywordTok := p.advance()
	kw := varDeclKindFor(keywordTok.Kind)
	decls, ok := p.parseVarDeclarators()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVarDeclStmt(start.Cover(p.lastSpan), kw, decls), true
}

func (p *Parser) parseSwitchStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'switch'
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'switch'"); !ok {
		return ast.NoStmtID, false
	}
	disc, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after switch discriminant"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start switch body"); !ok {
		return ast.NoStmtID, false
	}

	var cases []ast.CaseClause
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseStart := p.lx.Peek().Span
		var test *ast.ExprID
		switch {
		case p.at(token.KwCase):
			p.advance()
			e, ok := p.parseExpr()
			if !ok {
				p.resyncUntil(token.KwCase, token.KwDefault, token.RBrace)
				continue
			}
			test = &e
		case p.at(token.KwDefault):
			p.advance()
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default'")
			p.resyncUntil(token.KwCase, token.KwDefault, token.RBrace)
			continue
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case label"); !ok {
			p.resyncUntil(token.KwCase, token.KwDefault, token.RBrace)
			continue
		}
		var body []ast.StmtID
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			stmt, ok := p.parseStmt()
			if !ok {
				p.resyncStatement()
				continue
			}
			body = append(body, stmt)
		}
		cases = append(cases, ast.CaseClause{Test: test, Body: body, Span: caseStart.Cover(p.lastSpan)})
	}

	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch body"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(start.Cover(p.lastSpan), disc, cases), true
}

func (p *Parser) parseTryStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'try'
	block, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	hasCatch := false
	catchParam := source.NoStringID
	catchType := ast.NoTypeID
	catchBlock := ast.NoStmtID
	if p.at(token.KwCatch) {
		hasCatch = true
		p.advance()
		if p.at(token.LParen) {
			p.advance()
			if p.at(token.Ident) {
				catchParam = p.arenas.Intern(p.advance().Text)
				if p.at(token.Colon) {
					p.advance()
					t, ok := p.parseTypeExpr()
					if !ok {
						return ast.NoStmtID, false
					}
					catchType = t
				}
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after catch parameter"); !ok {
				return ast.NoStmtID, false
			}
		}
		cb, ok := p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		catchBlock = cb
	}

	finallyBlock := ast.NoStmtID
	if p.at(token.KwFinally) {
		p.advance()
		fb, ok := p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		finallyBlock = fb
	}

	if !hasCatch && finallyBlock == ast.NoStmtID {
		p.err(diag.SynUnexpectedToken, "expected 'catch' or 'finally' after 'try' block")
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewTry(start.Cover(p.lastSpan), block, hasCatch, catchParam, catchType, catchBlock, finallyBlock), true
}

func (p *Parser) parseThrowStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'throw'
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consumeStatementTerminator()
	return p.arenas.Stmts.NewThrow(start.Cover(p.lastSpan), expr), true
}

// parseLocalFunctionStmt parses a `function name(...) {...}` declaration
// appearing inside a block. There is no separate function-declaration
// statement kind; it is represented as an expression statement wrapping a
// named function expression, the same shape a hoisted local function takes
// once bound by the symbol binder.
func (p *Parser) parseLocalFunctionStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	fnMods := ast.FnModifier(0)
	if p.at(token.KwAsync) {
		p.advance()
		fnMods |= ast.FnAsync
	}
	expr, ok := p.parseFunctionExpr(fnMods)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), expr), true
}

// parseLocalClassStmt parses a `class Name {...}` declaration appearing
// inside a block, represented as an expression statement wrapping a class
// expression.
func (p *Parser) parseLocalClassStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseClassExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), expr), true
}

func (p *Parser) parseWithStmt() (ast.StmtID, bool) {
	start := p.advance().Span // 'with'
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'with'"); !ok {
		return ast.NoStmtID, false
	}
	obj, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after 'with' object"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWith(start.Cover(p.lastSpan), obj, body), true
}
