package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/fix"
	"surge/internal/source"
	"surge/internal/token"
)

// parseFnItem parses a top-level or namespace-level function declaration.
//
//	function name<T>(params): RetType { body }
//	function name(params): RetType;          // ambient / overload signature
//	async function* name(params) { body }
func (p *Parser) parseFnItem(modifiers ast.ItemModifier, fnMods ast.FnModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'"); !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Star) {
		p.advance()
		fnMods |= ast.FnGenerator
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

	params, ok := p.parseParamList()
	if !ok {
		return ast.NoItemID, false
	}

	returnType := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		returnType, ok = p.parseTypeExpr()
		if !ok {
			return ast.NoItemID, false
		}
	}

	body := ast.NoStmtID
	switch {
	case p.at(token.LBrace):
		body, ok = p.parseBlock()
		if !ok {
			return ast.NoItemID, false
		}
	default:
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after function signature", func(b *diag.ReportBuilder) {
			if b == nil {
				return
			}
			insertSpan := p.lastSpan.ZeroideToEnd()
			fixID := fix.MakeFixID(diag.SynExpectSemicolon, insertSpan)
			suggestion := fix.InsertText(
				"insert ';' after function signature",
				insertSpan,
				";",
				"",
				fix.WithID(fixID),
				fix.WithKind(diag.FixKindRefactor),
				fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
			)
			b.WithFixSuggestion(suggestion)
			b.WithNote(insertSpan, "insert ';' after function signature")
		}); !ok {
			return ast.NoItemID, false
		}
	}

	span := start.Cover(p.lastSpan)
	return p.arenas.Items.NewFunction(name, typeParams, params, returnType, body, fnMods, modifiers, span), true
}

// parseFunctionExpr parses a `function` expression (named or anonymous).
func (p *Parser) parseFunctionExpr(fnMods ast.FnModifier) (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'"); !ok {
		return ast.NoExprID, false
	}
	if p.at(token.Star) {
		p.advance()
		fnMods |= ast.FnGenerator
	}

	name := source.NoStringID
	if p.at(token.Ident) {
		nameID, ok := p.parseIdent()
		if !ok {
			return ast.NoExprID, false
		}
		name = nameID
	}

	var typeParams []ast.TypeParamDecl
	var ok bool
	if p.at(token.Lt) {
		typeParams, ok = p.parseTypeParamList()
		if !ok {
			return ast.NoExprID, false
		}
	}

	params, ok := p.parseParamList()
	if !ok {
		return ast.NoExprID, false
	}

	returnType := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		returnType, ok = p.parseTypeExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}

	return p.arenas.Exprs.NewFunctionExpr(start.Cover(p.lastSpan), name, typeParams, params, returnType, body, fnMods), true
}

// parseParamList parses a `(...)` parameter list shared by function
// declarations, function/arrow expressions, class methods, and function
// types. A `this: Type` pseudo-parameter, when present, is consumed but
// dropped: TypeScript erases it before codegen and the checker has no
// runtime binding for it.
func (p *Parser) parseParamList() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' to start a parameter list"); !ok {
		return nil, false
	}

	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			p.resyncUntil(token.Comma, token.RParen)
		} else if param != nil {
			params = append(params, *param)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list", func(b *diag.ReportBuilder) {
		if b == nil {
			return
		}
		insertSpan := p.lastSpan.ZeroideToEnd()
		fixID := fix.MakeFixID(diag.SynUnclosedParen, insertSpan)
		suggestion := fix.InsertText(
			"insert ')' to close the parameter list",
			insertSpan,
			")",
			"",
			fix.WithID(fixID),
			fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
		)
		b.WithFixSuggestion(suggestion)
		b.WithNote(insertSpan, "insert ')' to close the parameter list")
	}); !ok {
		return nil, false
	}
	return params, true
}

// parseParam parses one parameter. It returns (nil, true) for a `this`
// pseudo-parameter, which callers drop from the resulting parameter list.
func (p *Parser) parseParam() (*ast.Param, bool) {
	start := p.lx.Peek().Span

	if p.at(token.At) {
		p.skipDecorators()
	}
	// Constructor parameter-property modifiers (`public`/`private`/
	// `protected`/`readonly`); not modeled on ast.Param, parsed and dropped.
	for p.at(token.KwPublic) || p.at(token.KwPrivate) || p.at(token.KwProtected) || p.at(token.KwReadonly) {
		p.advance()
	}

	rest := false
	if p.at(token.DotDotDot) {
		p.advance()
		rest = true
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a parameter name")
	if !ok {
		return nil, false
	}
	isThis := !rest && nameTok.Text == "this"

	optional := false
	if p.at(token.Question) {
		p.advance()
		optional = true
	}

	typ := ast.NoTypeID
	if p.at(token.Colon) {
		p.advance()
		t, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		typ = t
	}

	def := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		e, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		def = e
	}

	if isThis {
		return nil, true
	}
	return &ast.Param{
		Name:     p.arenas.Intern(nameTok.Text),
		Type:     typ,
		Default:  def,
		Rest:     rest,
		Optional: optional,
		Span:     start.Cover(p.lastSpan),
	}, true
}
