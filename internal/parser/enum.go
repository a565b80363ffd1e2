package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/token"
)

// parseEnumItem parses an `enum Name { A, B = 1, C }` declaration. A leading
// `const` is folded into ItemConstEnum by the caller before modifiers is
// passed in.
func (p *Parser) parseEnumItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwEnum, diag.SynUnexpectedToken, "expected 'enum'"); !ok {
		return ast.NoItemID, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynEnumExpectBody, "expected '{' for enum body"); !ok {
		return ast.NoItemID, false
	}

	var members []ast.EnumMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		memberStart := p.lx.Peek().Span
		nameTok, ok := p.parsePropertyName()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		init := ast.NoExprID
		if p.at(token.Assign) {
			p.advance()
			e, ok := p.parseAssignExpr()
			if !ok {
				p.resyncUntil(token.Comma, token.RBrace)
				if p.at(token.Comma) {
					p.advance()
				}
				continue
			}
			init = e
		}
		members = append(members, ast.EnumMember{Name: nameTok, Init: init, Span: memberStart.Cover(p.lastSpan)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace, diag.SynEnumExpectRBrace, "expected '}' after enum body"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewEnum(name, members, modifiers, start.Cover(p.lastSpan)), true
}
