package token

import (
	"surge/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, StarStar, Slash, Percent, Assign, PlusAssign, MinusAssign, StarAssign,
		StarStarAssign, SlashAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign,
		ShrAssign, UShrAssign, AndAndAssign, OrOrAssign, QuestionQAssign,
		EqEq, EqEqEq, Bang, BangEq, BangEqEq, Lt, LtEq, Gt, GtEq, Shl, Shr, UShr, Amp, Pipe, Caret,
		Tilde, AndAnd, OrOr, Question, QuestionQuestion, QuestionDot, Colon, Semicolon, Comma, Dot,
		DotDotDot, FatArrow, PlusPlus, MinusMinus, LParen, RParen, LBrace, RBrace, LBracket,
		RBracket, At:
		return true
	default:
		return false
	}
}
