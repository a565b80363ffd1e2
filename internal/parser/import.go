package parser

import (
	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

// parseModuleSpecifier consumes a string-literal module specifier and
// interns its value with the surrounding quote characters stripped; the
// lexer keeps raw source text (quotes included) on StringLit tokens.
func (p *Parser) parseModuleSpecifier() (source.StringID, bool) {
	tok, ok := p.expect(token.StringLit, diag.SynExpectModuleSeg, "expected a module specifier string")
	if !ok {
		return source.NoStringID, false
	}
	return p.arenas.Intern(stripQuotes(tok.Text)), true
}

// parseImportItem parses an `import ...` declaration in any of its forms:
// side-effect only, default, namespace, named, or a combination, optionally
// marked `type`-only.
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import'"); !ok {
		return ast.NoItemID, false
	}

	// `import "side-effect-module";`
	if p.at(token.StringLit) {
		module, ok := p.parseModuleSpecifier()
		if !ok {
			return ast.NoItemID, false
		}
		p.consumeStatementTerminator()
		return p.arenas.Items.NewImport(module, source.NoStringID, source.NoStringID, nil, false, start.Cover(p.lastSpan)), true
	}

	typeOnly := false
	if p.at(token.KwType) && p.nextImportClauseStartsTypeOnly() {
		p.advance()
		typeOnly = true
	}

	def := source.NoStringID
	namespaceAs := source.NoStringID
	var named []ast.ImportSpec

	if p.at(token.Ident) {
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		def = name
		if p.at(token.Comma) {
			p.advance()
		}
	}

	if p.at(token.Star) {
		p.advance()
		if _, ok := p.expect(token.KwAs, diag.SynExpectIdentAfterAs, "expected 'as' after '*'"); !ok {
			return ast.NoItemID, false
		}
		name, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		namespaceAs = name
	} else if p.at(token.LBrace) {
		specs, ok := p.parseImportSpecs()
		if !ok {
			return ast.NoItemID, false
		}
		named = specs
	}

	if _, ok := p.expect(token.KwFrom, diag.SynUnexpectedToken, "expected 'from'"); !ok {
		return ast.NoItemID, false
	}

	module, ok := p.parseModuleSpecifier()
	if !ok {
		return ast.NoItemID, false
	}
	p.consumeStatementTerminator()
	return p.arenas.Items.NewImport(module, def, namespaceAs, named, typeOnly, start.Cover(p.lastSpan)), true
}

// nextImportClauseStartsTypeOnly disambiguates a `type`-only import clause
// (`import type { T } from "m"`, `import type D from "m"`, `import type *
// as ns from "m"`) from an import of a binding literally named `type`
// (`import type from "m"`).
func (p *Parser) nextImportClauseStartsTypeOnly() bool {
	tok := p.advance() // the 'type' token
	isTypeOnlyClause := p.at(token.LBrace) || p.at(token.Star) ||
		(p.at(token.Ident) && p.lx.Peek().Text != "from")
	p.lx.Push(tok)
	return isTypeOnlyClause
}

// parseImportSpecs parses a `{ a, b as c, type D }` named-import group.
func (p *Parser) parseImportSpecs() ([]ast.ImportSpec, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start import list"); !ok {
		return nil, false
	}
	var specs []ast.ImportSpec
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		specStart := p.lx.Peek().Span
		specTypeOnly := false
		if p.at(token.KwType) && p.nextImportSpecStartsTypeOnly() {
			p.advance()
			specTypeOnly = true
		}
		name, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		alias := name
		if p.at(token.KwAs) {
			p.advance()
			a, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			alias = a
		}
		specs = append(specs, ast.ImportSpec{Name: name, Alias: alias, TypeOnly: specTypeOnly, Span: specStart.Cover(p.lastSpan)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close import list"); !ok {
		return nil, false
	}
	return specs, true
}

// nextImportSpecStartsTypeOnly disambiguates `type X` (a type-only named
// import) from a binding literally named `type` (`{ type }` or
// `{ type as alias }`).
func (p *Parser) nextImportSpecStartsTypeOnly() bool {
	tok := p.advance()
	isTypeOnlySpec := p.at(token.Ident) && p.lx.Peek().Kind != token.KwAs
	p.lx.Push(tok)
	return isTypeOnlySpec
}

// parseExportItem parses an `export ...` declaration in any of its
// standalone (re-export) forms: named, star, star-as, or default. The
// implicit form where `export` merely prefixes another declaration
// (`export const x = 1`) is handled by the caller, which sets ItemExported
// on the underlying declaration instead of building an ExportDeclItem.
func (p *Parser) parseExportItem() (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	if _, ok := p.expect(token.KwExport, diag.SynUnexpectedToken, "expected 'export'"); !ok {
		return ast.NoItemID, false
	}

	if p.at(token.Star) {
		p.advance()
		as := source.NoStringID
		if p.at(token.KwAs) {
			p.advance()
			name, ok := p.parseIdent()
			if !ok {
				return ast.NoItemID, false
			}
			as = name
		}
		if _, ok := p.expect(token.KwFrom, diag.SynUnexpectedToken, "expected 'from' after 'export *'"); !ok {
			return ast.NoItemID, false
		}
		module, ok := p.parseModuleSpecifier()
		if !ok {
			return ast.NoItemID, false
		}
		p.consumeStatementTerminator()
		return p.arenas.Items.NewExportStar(module, as, start.Cover(p.lastSpan)), true
	}

	if p.at(token.KwDefault) {
		p.advance()
		if p.at(token.KwFunction) || (p.at(token.KwAsync) && p.nextIsAsyncFunction()) {
			var fnMods ast.FnModifier
			if p.at(token.KwAsync) {
				p.advance()
				fnMods |= ast.FnAsync
			}
			item, ok := p.parseFnItem(ast.ItemExported, fnMods)
			if !ok {
				return ast.NoItemID, false
			}
			return p.arenas.Items.NewExportDefaultItem(item, start.Cover(p.lastSpan)), true
		}
		if p.at(token.KwClass) {
			item, ok := p.parseClassItem(ast.ItemExported)
			if !ok {
				return ast.NoItemID, false
			}
			return p.arenas.Items.NewExportDefaultItem(item, start.Cover(p.lastSpan)), true
		}
		expr, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoItemID, false
		}
		p.consumeStatementTerminator()
		return p.arenas.Items.NewExportDefaultExpr(expr, start.Cover(p.lastSpan)), true
	}

	typeOnly := false
	if p.at(token.KwType) && p.nextExportClauseStartsTypeOnly() {
		p.advance()
		typeOnly = true
	}

	specs, ok := p.parseExportSpecs()
	if !ok {
		return ast.NoItemID, false
	}
	module := source.NoStringID
	if p.at(token.KwFrom) {
		p.advance()
		m, ok := p.parseModuleSpecifier()
		if !ok {
			return ast.NoItemID, false
		}
		module = m
	}
	p.consumeStatementTerminator()
	if typeOnly {
		for i := range specs {
			specs[i].TypeOnly = true
		}
	}
	return p.arenas.Items.NewExportNamed(module, specs, start.Cover(p.lastSpan)), true
}

// nextExportClauseStartsTypeOnly disambiguates `export type { T }` from a
// re-export of a binding literally named `type`.
func (p *Parser) nextExportClauseStartsTypeOnly() bool {
	tok := p.advance()
	isTypeOnlyClause := p.at(token.LBrace)
	p.lx.Push(tok)
	return isTypeOnlyClause
}

// nextIsAsyncFunction reports whether the current `async` token introduces
// `async function` (as opposed to an `async` identifier binding).
func (p *Parser) nextIsAsyncFunction() bool {
	tok := p.advance()
	isAsyncFunction := p.at(token.KwFunction)
	p.lx.Push(tok)
	return isAsyncFunction
}

// parseExportSpecs parses a `{ a, b as c }` named-export group.
func (p *Parser) parseExportSpecs() ([]ast.ExportSpec, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start export list"); !ok {
		return nil, false
	}
	var specs []ast.ExportSpec
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		specStart := p.lx.Peek().Span
		name, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		alias := name
		if p.at(token.KwAs) {
			p.advance()
			a, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			alias = a
		}
		specs = append(specs, ast.ExportSpec{Name: name, Alias: alias, Span: specStart.Cover(p.lastSpan)})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close export list"); !ok {
		return nil, false
	}
	return specs, true
}
