package lexer

import (
	"surge/internal/diag"
	"surge/internal/token"
)

// templateFrame tracks an open `${...}` substitution within a template
// literal so `}` can be told apart from an ordinary block-closing brace.
type templateFrame struct {
	braceDepth int
}

// scanString scans a single- or double-quoted string literal. Escapes are
// consumed without being interpreted; a bare newline or EOF before the
// closing quote is an error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanTemplateStart scans the opening chunk of a backtick template literal,
// starting at the opening backtick. It produces NoSubstitutionTemplateLit if
// the literal has no `${`, otherwise TemplateHead and a pushed templateFrame.
func (lx *Lexer) scanTemplateStart() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '`'
	return lx.scanTemplateBody(start, token.NoSubstitutionTemplateLit, token.TemplateHead)
}

// scanTemplateContinuation resumes scanning a template literal right after a
// `${...}` substitution's closing '}', which is already consumed by the
// caller and included in mark. It produces TemplateTail if the literal ends
// here, otherwise TemplateMiddle and a re-pushed templateFrame.
func (lx *Lexer) scanTemplateContinuation(mark Mark) token.Token {
	return lx.scanTemplateBody(mark, token.TemplateTail, token.TemplateMiddle)
}

func (lx *Lexer) scanTemplateBody(start Mark, finalKind, middleKind token.Kind) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: finalKind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '$' && b1 == '{' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.tmplStack = append(lx.tmplStack, templateFrame{})
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: middleKind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump() // newlines are legal inside template literals
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
