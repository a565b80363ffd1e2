package parser

import (
	"context"
	"slices"

	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/lexer"
	"surge/internal/source"
	"surge/internal/token"
	"surge/internal/trace"
)

// Options configures a parse pass.
type Options struct {
	Trace         bool
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the configured error budget has been exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result is the output of a single-file parse.
type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state of a single-file parse: a token stream (via the
// lexer's Peek/Next/Push), the shared node builder, and enough bookkeeping
// to produce good diagnostics. Recursion depth is not limited: exprDepth is
// never read or updated.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span
	tracer   trace.Tracer
	exprDepth int
}

// ParseFile is the entry point for parsing a single file. It expects an
// already-constructed lexer over a source.File.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
		tracer:   trace.FromContext(ctx),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseIdent consumes an identifier token and interns its text.
func (p *Parser) parseIdent() (source.StringID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected an identifier")
	if !ok {
		return source.NoStringID, false
	}
	return p.arenas.Intern(tok.Text), true
}

// parseItems is the top-level loop: parse items until EOF, resyncing on
// failure so a single bad declaration doesn't abort the whole file.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span

	for !p.at(token.EOF) {
		before := p.lx.Peek()

		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
		} else {
			p.resyncTop()
		}

		// Guarantee forward progress even if both parseItem and resyncTop
		// left the cursor in place on malformed input.
		if !p.at(token.EOF) {
			after := p.lx.Peek()
			if after.Kind == before.Kind && after.Span == before.Span {
				p.advance()
			}
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the next token to the matching top-level
// declaration parser. `export` may prefix any declaration form; when it
// does, the declaration is parsed normally and ItemExported is folded into
// its modifiers, rather than wrapping it in an ExportDeclItem (which is
// reserved for re-exports, star-exports and `export default`).
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImportItem()
	case token.KwExport:
		return p.parseExportAware()
	case token.KwDeclare:
		p.advance()
		return p.parseDeclaration(ast.ItemAmbient)
	default:
		return p.parseDeclaration(0)
	}
}

// parseExportAware handles `export ...`: either a standalone re-export form
// (named/star/default, via parseExportItem) or `export` prefixing another
// declaration, in which case ItemExported is set on that declaration.
func (p *Parser) parseExportAware() (ast.ItemID, bool) {
	if p.nextExportIsReexportForm() {
		return p.parseExportItem()
	}
	p.advance() // 'export'
	modifiers := ast.ItemExported
	if p.at(token.KwDeclare) {
		p.advance()
		modifiers |= ast.ItemAmbient
	}
	return p.parseDeclaration(modifiers)
}

// nextExportIsReexportForm reports whether the token after `export` starts
// a standalone re-export/default form (`*`, `{`, `default`) as opposed to
// prefixing a var/function/class/interface/type/enum/namespace declaration.
// A bare `export type { ... }` is also a re-export form; `export type Name =
// ...` (a type-alias declaration) is not, so `type` only counts when it is
// immediately followed by `{`.
func (p *Parser) nextExportIsReexportForm() bool {
	tok := p.advance() // 'export'
	isReexport := p.at(token.Star) || p.at(token.LBrace) || p.at(token.KwDefault)
	if p.at(token.KwType) {
		typeTok := p.advance()
		isReexport = isReexport || p.at(token.LBrace)
		p.lx.Push(typeTok)
	}
	p.lx.Push(tok)
	return isReexport
}

// parseDeclaration parses one var/let/const/function/class/interface/type/
// enum/namespace declaration and folds modifiers into it.
func (p *Parser) parseDeclaration(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwConst:
		if p.nextIsConstEnum() {
			p.advance() // 'const'
			return p.parseEnumItem(modifiers | ast.ItemConstEnum)
		}
		return p.parseVarDeclItem(modifiers)
	case token.KwVar, token.KwLet:
		return p.parseVarDeclItem(modifiers)
	case token.KwAsync:
		return p.parseAsyncFnItem(modifiers)
	case token.KwFunction:
		return p.parseFnItem(modifiers, 0)
	case token.KwAbstract:
		p.advance()
		return p.parseClassItem(modifiers | ast.ItemAbstractClass)
	case token.KwClass:
		return p.parseClassItem(modifiers)
	case token.KwInterface:
		return p.parseInterfaceItem(modifiers)
	case token.KwType:
		return p.parseTypeAliasItem(modifiers)
	case token.KwEnum:
		return p.parseEnumItem(modifiers)
	case token.KwNamespace, token.KwModule:
		return p.parseModuleItem(modifiers)
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span, "unexpected top-level construct")
		return ast.NoItemID, false
	}
}

// nextIsConstEnum reports whether the current 'const' token introduces a
// `const enum` declaration rather than a `const` variable declaration.
func (p *Parser) nextIsConstEnum() bool {
	tok := p.advance()
	isConstEnum := p.at(token.KwEnum)
	p.lx.Push(tok)
	return isConstEnum
}

// parseAsyncFnItem consumes `async` and parses the rest as a function item
// with the async flag; it does not look ahead, so a token other than
// `function` after `async` is reported by parseFnItem.
func (p *Parser) parseAsyncFnItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	p.advance() // 'async'
	return p.parseFnItem(modifiers, ast.FnAsync)
}

// parseModuleItem parses a `namespace Name { ... }` / `module Name { ... }`
// declaration; `namespace global { ... }` / `module global { ... }` sets
// Global instead of a name. A bare `declare global { ... }` (without
// `namespace` or `module`) never reaches this function.
func (p *Parser) parseModuleItem(modifiers ast.ItemModifier) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	p.advance() // 'namespace' / 'module'

	global := false
	name := source.NoStringID
	if p.at(token.Ident) && p.lx.Peek().Text == "global" {
		p.advance()
		global = true
	} else {
		n, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		name = n
		for p.at(token.Dot) {
			p.advance()
			seg, ok := p.parseIdent()
			if !ok {
				return ast.NoItemID, false
			}
			name = seg
		}
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to start namespace body"); !ok {
		return ast.NoItemID, false
	}
	var body []ast.ItemID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.lx.Peek()
		itemID, ok := p.parseItem()
		if ok {
			body = append(body, itemID)
		} else {
			p.resyncTop()
		}
		if !p.at(token.RBrace) && !p.at(token.EOF) {
			after := p.lx.Peek()
			if after.Kind == before.Kind && after.Span == before.Span {
				p.advance()
			}
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close namespace body"); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewModule(name, body, global, modifiers, start.Cover(p.lastSpan)), true
}

// resyncTop recovers after an error at item level: skip tokens until the
// start of the next top-level declaration, a stray ';', or EOF.
func (p *Parser) resyncTop() {
	stopTokens := []token.Kind{
		token.Semicolon, token.KwImport, token.KwExport, token.KwVar, token.KwLet,
		token.KwConst, token.KwFunction, token.KwAsync, token.KwClass, token.KwAbstract,
		token.KwInterface, token.KwType, token.KwEnum, token.KwNamespace, token.KwModule,
		token.KwDeclare,
	}

	prev := p.lx.Peek()
	p.resyncUntil(stopTokens...)

	if !p.at(token.EOF) && p.lx.Peek().Span == prev.Span && p.lx.Peek().Kind == prev.Kind {
		p.advance()
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// isTopLevelStarter reports whether k begins a top-level declaration.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwExport, token.KwVar, token.KwLet, token.KwConst,
		token.KwFunction, token.KwAsync, token.KwClass, token.KwAbstract, token.KwInterface,
		token.KwType, token.KwEnum, token.KwNamespace, token.KwModule, token.KwDeclare:
		return true
	default:
		return false
	}
}
