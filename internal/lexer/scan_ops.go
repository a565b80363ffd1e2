package lexer

import (
	"surge/internal/diag"
	"surge/internal/token"
)

// try4 attempts to consume an exact 4-byte sequence.
func (lx *Lexer) try4(a, b, c, d byte) bool {
	off := lx.cursor.Off
	content := lx.file.Content
	if int(off)+3 >= len(content) {
		return false
	}
	if content[off] != a || content[off+1] != b || content[off+2] != c || content[off+3] != d {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

// scanOperatorOrPunct scans an operator or punctuation token, matching the
// longest sequence first. '{' and '}' additionally track template-literal
// substitution brace depth so the lexer can resume scanning template text
// once a `${...}` expression closes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.try4('>', '>', '>', '='):
		return emit(token.UShrAssign)
	case lx.try3('*', '*', '='):
		return emit(token.StarStarAssign)
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	case lx.try3('.', '.', '.'):
		return emit(token.DotDotDot)
	case lx.try3('=', '=', '='):
		return emit(token.EqEqEq)
	case lx.try3('!', '=', '='):
		return emit(token.BangEqEq)
	case lx.try3('&', '&', '='):
		return emit(token.AndAndAssign)
	case lx.try3('|', '|', '='):
		return emit(token.OrOrAssign)
	case lx.try3('?', '?', '='):
		return emit(token.QuestionQAssign)
	case lx.try3('>', '>', '>'):
		return emit(token.UShr)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('?', '?'):
		return emit(token.QuestionQuestion)
	case lx.try2('?', '.'):
		return emit(token.QuestionDot)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('+', '+'):
		return emit(token.PlusPlus)
	case lx.try2('-', '-'):
		return emit(token.MinusMinus)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	case lx.try2('&', '='):
		return emit(token.AmpAssign)
	case lx.try2('|', '='):
		return emit(token.PipeAssign)
	case lx.try2('^', '='):
		return emit(token.CaretAssign)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		if len(lx.tmplStack) > 0 {
			lx.tmplStack[len(lx.tmplStack)-1].braceDepth++
		}
		return emit(token.LBrace)
	case '}':
		if n := len(lx.tmplStack); n > 0 {
			top := &lx.tmplStack[n-1]
			if top.braceDepth == 0 {
				lx.tmplStack = lx.tmplStack[:n-1]
				return lx.scanTemplateContinuation(start)
			}
			top.braceDepth--
		}
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '@':
		return emit(token.At)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
