package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/token"
)

// varDeclKindFor maps a `var`/`let`/`const` keyword token to its ast kind.
func varDeclKindFor(kind token.Kind) ast.VarDeclKind {
	switch kind {
	case token.KwVar:
		return ast.VarDeclVar
	case token.KwLet:
		return ast.VarDeclLet
	default:
		return ast.VarDeclConst
	}
}

// parseVarDeclarators parses the comma-separated `name: Type = init` list
// shared by `var`/`let`/`const` declarations at both item and statement
// level. Destructuring binding patterns are not represented on ast.Param;
// only simple identifier bindings are supported.
func (p *Parser) parseVarDeclarators() ([]ast.Param, bool) {
	var decls []ast.Param
	for {
		start := p.lx.Peek().Span
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a variable name")
		if !ok {
			return nil, false
		}

		typ := ast.NoTypeID
		if p.at(token.Question) {
			// Ambient/declare-only optional binding marker; no runtime effect.
			p.advance()
		}
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

		decls = append(decls, ast.Param{
			Name: p.arenas.Intern(nameTok.Text),
			Type: typ,
			Default: def,
			Span: start.Cover(p.lastSpan),
		})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return decls, true
}

// parseVarDeclItem parses a top-level or namespace-level `var`/`let`/`const`
// declaration item.
func (p *Parser) parseVarDeclItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	keywordTok := p.advance() // var/let/const
	kw := varDeclKindFor(keywordTok.Kind)

	decls, ok := p.parseVarDeclarators()
	if !ok {
		p.resyncStatement()
		return ast.NoItemID, false
	}
	p.consumeStatementTerminator()

	return p.arenas.Items.NewVarDecl(kw, decls, modifiers, start.Cover(p.lastSpan)), true
}

// parseVarDeclStmt parses a `var`/`let`/`const` declaration used as a
// statement.
func (p *Parser) parseVarDeclStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	keywordTok := p.advance()
	kw := varDeclKindFor(keywordTok.Kind)

	decls, ok := p.parseVarDeclarators()
	if !ok {
		p.resyncStatement()
		return ast.NoStmtID, false
	}
	p.consumeStatementTerminator()

	return p.arenas.Stmts.NewVarDeclStmt(start.Cover(p.lastSpan), kw, decls), true
}
