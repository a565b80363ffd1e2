package parser

import (
	"slices"

	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan returns the best span to anchor a diagnostic at: the
// current token, or the position right after lastSpan when we've run off
// the end of the file.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Start == peek.Span.End && peek.Span.Start == 0 {
		if p.lastSpan.End > 0 {
			return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
		}
	}
	return peek.Span
}

// expect consumes the next token if it matches k; otherwise it reports code
// at the end of the previously consumed token and returns (Invalid, false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, augment ...func(*diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.lastSpan.ZeroideToEnd()
	var fn func(*diag.ReportBuilder)
	if len(augment) > 0 {
		fn = augment[0]
	}
	p.emitDiagnostic(code, diag.SevError, diagSpan, msg, fn)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	p.emitDiagnostic(code, sev, sp, msg, nil)
}

func (p *Parser) emitDiagnostic(code diag.Code, sev diag.Severity, sp source.Span, msg string, augment func(*diag.ReportBuilder)) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return
	}
	if augment == nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
		return
	}
	builder := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	augment(builder)
	builder.Emit()
}

// resyncUntil consumes tokens until Peek() matches one of stop or EOF. The
// stop token itself is left unconsumed.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) {
		if slices.Contains(stop, p.lx.Peek().Kind) {
			return
		}
		p.advance()
	}
}

// resyncImportGroup recovers inside a `{ ... }` import/export clause list:
// skip to '}', ';' or EOF, consuming the brace if found.
func (p *Parser) resyncImportGroup() {
	p.resyncUntil(token.RBrace, token.Semicolon, token.EOF)
	if p.at(token.RBrace) {
		p.advance()
	}
}

// isBlockRecoveryToken reports whether a token kind ends a malformed
// statement without itself being consumed by resync.
func isBlockRecoveryToken(k token.Kind) bool {
	switch k {
	case token.KwFunction, token.KwImport, token.KwExport, token.KwClass,
		token.KwInterface, token.KwEnum, token.KwNamespace, token.KwModule,
		token.KwElse, token.KwFinally, token.KwCase, token.KwDefault:
		return true
	default:
		return false
	}
}

// isBlockStatementStarter reports whether a token can start a new statement
// inside a block.
func isBlockStatementStarter(kind token.Kind) bool {
	switch kind {
	case token.LBrace, token.KwVar, token.KwLet, token.KwConst, token.KwReturn,
		token.KwIf, token.KwWhile, token.KwDo, token.KwFor, token.KwBreak,
		token.KwContinue, token.KwSwitch, token.KwTry, token.KwThrow,
		token.KwFunction, token.KwClass, token.Semicolon, token.KwDebugger:
		return true
	default:
		return false
	}
}

// resyncStatement recovers at the statement level: skip tokens until a
// statement-terminating ';', the start of a new statement, the closing '}'
// of the current block, or EOF, tracking nested brace/paren/bracket depth so
// we don't mistake a delimiter inside a nested expression for the end of the
// enclosing statement.
func (p *Parser) resyncStatement() {
	braceDepth, parenDepth, bracketDepth := 0, 0, 0

	for !p.at(token.EOF) {
		tok := p.lx.Peek()

		switch tok.Kind {
		case token.Semicolon:
			if braceDepth == 0 && parenDepth == 0 && bracketDepth == 0 {
				p.advance()
				return
			}
		case token.LBrace:
			braceDepth++
		case token.RBrace:
			if braceDepth > 0 {
				braceDepth--
				break
			}
			if parenDepth == 0 && bracketDepth == 0 {
				return
			}
		case token.LParen:
			parenDepth++
		case token.RParen:
			if parenDepth > 0 {
				parenDepth--
				break
			}
			if braceDepth == 0 && bracketDepth == 0 {
				return
			}
		case token.LBracket:
			bracketDepth++
		case token.RBracket:
			if bracketDepth > 0 {
				bracketDepth--
				break
			}
			if braceDepth == 0 && parenDepth == 0 {
				return
			}
		default:
			if braceDepth == 0 && parenDepth == 0 && bracketDepth == 0 && isBlockStatementStarter(tok.Kind) {
				return
			}
		}

		p.advance()
	}
}

// consumeStatementTerminator implements automatic semicolon insertion: a
// explicit ';' is consumed if present; otherwise a '}', EOF, or a newline
// ahead of the next token silently ends the statement.
func (p *Parser) consumeStatementTerminator() {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) {
		return
	}
	for _, tr := range p.lx.Peek().Leading {
		if tr.Kind == token.TriviaNewline {
			return
		}
	}
	p.err(diag.SynExpectSemicolon, "expected ';'")
}

// stripQuotes removes the surrounding quote characters from a string
// literal token's raw text; the lexer keeps them as part of Token.Text.
func stripQuotes(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// FakeError emits a diagnostic at an arbitrary span; used by tests to drive
// recovery paths that are otherwise hard to trigger from valid input.
func (p *Parser) FakeError(msg string, span source.Span) {
	p.emitDiagnostic(diag.UnknownCode, diag.SevError, span, msg, nil)
}

// skipDecorators consumes zero or more `@decorator` / `@decorator(args)` /
// `@ns.decorator(args)` prefixes ahead of a declaration or parameter.
// Decorator runtime semantics are out of scope for the checker core (see
// token.At), so these are parsed only to keep surrounding declarations in
// sync with the source rather than being modeled in the AST.
func (p *Parser) skipDecorators() {
	for p.at(token.At) {
		p.advance()
		p.resyncUntil(token.LParen, token.Dot, token.Semicolon, token.LBrace, token.RBrace, token.At, token.EOF)
		for p.at(token.Dot) {
			p.advance()
			p.resyncUntil(token.LParen, token.Dot, token.Semicolon, token.LBrace, token.RBrace, token.At, token.EOF)
		}
		if p.at(token.LParen) {
			p.skipBalancedParens()
		}
	}
}

// skipBalancedParens consumes a '('...')' span, tracking nesting depth. The
// current token must be '('.
func (p *Parser) skipBalancedParens() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// atAngleCloser reports whether the current token could close a type
// argument or type parameter list: a bare '>' or any multi-character
// operator starting with '>' (the lexer has no generic-aware mode, so
// `Map<string, Array<number>>` ends in a single Shr token).
func (p *Parser) atAngleCloser() bool {
	switch p.lx.Peek().Kind {
	case token.Gt, token.Shr, token.UShr, token.GtEq, token.ShrAssign, token.UShrAssign:
		return true
	default:
		return false
	}
}

// consumeClosingAngle consumes one '>' off the current token, which may be a
// merged multi-character operator ('>>', '>>>', '>=', '>>=', '>>>='); any
// leftover characters are pushed back as a new token for the next closer (or
// the surrounding expression grammar) to consume.
func (p *Parser) consumeClosingAngle() bool {
	tok := p.lx.Peek()
	var remainderKind token.Kind
	switch tok.Kind {
	case token.Gt:
		p.advance()
		return true
	case token.Shr:
		remainderKind = token.Gt
	case token.UShr:
		remainderKind = token.Shr
	case token.GtEq:
		remainderKind = token.Assign
	case token.ShrAssign:
		remainderKind = token.GtEq
	case token.UShrAssign:
		remainderKind = token.ShrAssign
	default:
		p.err(diag.SynExpectType, "expected '>' to close a type argument list")
		return false
	}
	p.advance()
	splitPoint := tok.Span.Start + 1
	rest := token.Token{
		Kind: remainderKind,
		Span: source.Span{File: tok.Span.File, Start: splitPoint, End: tok.Span.End},
		Text: tok.Text[1:],
	}
	p.lastSpan = source.Span{File: tok.Span.File, Start: tok.Span.Start, End: splitPoint}
	p.lx.Push(rest)
	return true
}
