package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/token"
)

const maxTokenLength = 64 * 1024 // hard limit in bytes to avoid pathological tokens

// Lexer converts source content into a stream of tokens.
type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	lookBuf   []token.Token  // pushback stack; last element is returned by the next Next()
	hold      []token.Trivia // leading trivia accumulated ahead of the next token
	tmplStack []templateFrame
}

// New creates a new Lexer for the provided file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// SetRange restricts the lexer to a specific range within the file.
func (lx *Lexer) SetRange(start, end uint32) {
	if lx == nil {
		return
	}
	lx.cursor.Off = start
	if end != 0 {
		lx.cursor.Limit = end
	}
	lx.lookBuf = nil
	lx.hold = nil
	lx.tmplStack = nil
}

// Next returns the next significant token, with its leading trivia attached.
// Returns EOF forever once the end of the file is reached.
func (lx *Lexer) Next() token.Token {
	if n := len(lx.lookBuf); n > 0 {
		tok := lx.lookBuf[n-1]
		lx.lookBuf = lx.lookBuf[:n-1]
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '#':
		tok = lx.scanPrivateIdent()

	case ch == '`':
		tok = lx.scanTemplateStart()

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= 0x80:
		tok = lx.scanIdentOrKeyword() // may still resolve to an operator if not a valid ident rune

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil

	lx.enforceTokenLength(&tok)

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.Push(t)
	return t
}

// Push injects a token back into the lookahead stack; tokens pushed later
// are returned first, so pushing back a consumed sequence in reverse order
// replays it faithfully (see, e.g., peekForHeaderKind's speculative scan).
func (lx *Lexer) Push(tok token.Token) {
	lx.lookBuf = append(lx.lookBuf, tok)
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) errLex(code diag.Code, span source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, span, msg, nil, nil)
	}
}

func (lx *Lexer) enforceTokenLength(tok *token.Token) {
	if tok == nil {
		return
	}
	length := tok.Span.End - tok.Span.Start
	if length <= maxTokenLength {
		return
	}
	msg := fmt.Sprintf("token length %d exceeds limit %d", length, maxTokenLength)
	lx.errLex(diag.LexTokenTooLong, tok.Span, msg)
	tok.Kind = token.Invalid
	if tok.Text == "" && tok.Span.End > tok.Span.Start && int(tok.Span.End) <= len(lx.file.Content) {
		tok.Text = string(lx.file.Content[tok.Span.Start:tok.Span.End])
	}
	// Fast-forward to EOF to avoid cascading work on a pathological token.
	if off, err := safecast.Conv[uint32](len(lx.file.Content)); err == nil {
		lx.cursor.Off = off
	}
}
