package lexer

import (
	"strings"

	"surge/internal/diag"
	"surge/internal/token"
)

// collectLeadingTrivia collects the run of trivia preceding the next
// significant token.
//   - ' ' and '\t' coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - //... up to \n -> TriviaLineComment, or TriviaDirective if it is a
//     recognized pragma (// @ts-ignore, // @ts-expect-error)
//   - /* ... */ -> TriviaBlockComment (not nested: the first */ closes it; unterminated -> error)
//   - /** ... */ -> TriviaDocComment
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		tv := token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: text}
		if dir := parsePragmaDirective(text); dir != nil {
			tv.Kind = token.TriviaDirective
			tv.Directive = dir
		}
		lx.hold = append(lx.hold, tv)
		return true

	case '*':
		lx.cursor.Bump()
		isDoc := lx.cursor.Peek() == '*'
		if isDoc {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				isDoc = false // "/**/" is an empty block comment, not a doc comment
			}
		}
		// Block comments do not nest: the first "*/" closes the comment,
		// even if a "/*" appeared inside it.
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		kind := token.TriviaBlockComment
		if isDoc {
			kind = token.TriviaDocComment
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true
	default:
		lx.cursor.Reset(start)
		return false
	}
}

// parsePragmaDirective recognizes `// @ts-ignore` and `// @ts-expect-error`
// comments. Payload is whatever trailing text follows the directive name,
// e.g. an expected diagnostic code.
func parsePragmaDirective(lineComment string) *token.Directive {
	body := strings.TrimPrefix(lineComment, "//")
	body = strings.TrimLeft(body, " \t")
	body = strings.TrimPrefix(body, "@")
	switch {
	case strings.HasPrefix(body, "ts-expect-error"):
		rest := strings.TrimSpace(strings.TrimPrefix(body, "ts-expect-error"))
		return &token.Directive{Name: "ts-expect-error", Payload: rest}
	case strings.HasPrefix(body, "ts-ignore"):
		rest := strings.TrimSpace(strings.TrimPrefix(body, "ts-ignore"))
		return &token.Directive{Name: "ts-ignore", Payload: rest}
	default:
		return nil
	}
}
