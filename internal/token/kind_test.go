package token_test

import (
	"testing"

	"surge/internal/source"
	"surge/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NumericLit, token.BigIntLit, token.StringLit,
		token.NoSubstitutionTemplateLit, token.TemplateHead, token.TemplateTail,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign,
		token.EqEq, token.EqEqEq, token.Bang, token.BangEq, token.BangEqEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Shl, token.Shr, token.Amp, token.Pipe, token.Caret,
		token.AndAnd, token.OrOr,
		token.Question, token.QuestionQuestion, token.QuestionDot, token.Colon,
		token.Semicolon, token.Comma,
		token.Dot, token.DotDotDot, token.FatArrow,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.At,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.NumericLit}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsIdent(t *testing.T) {
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident should be ident")
	}
	if tok(token.KwFunction).IsIdent() {
		t.Fatalf("KwFunction must not be ident")
	}
}

func TestIsKeyword(t *testing.T) {
	keywords := []token.Kind{
		token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwIf, token.KwElse,
		token.KwFor, token.KwWhile, token.KwDo, token.KwBreak, token.KwContinue, token.KwReturn,
		token.KwImport, token.KwExport, token.KwAs, token.KwType, token.KwInterface, token.KwEnum,
		token.KwClass, token.KwNamespace, token.KwKeyof, token.KwInfer, token.KwTrue, token.KwFalse,
		token.KwWith,
	}
	for _, k := range keywords {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.Ident).IsKeyword() {
		t.Fatalf("Ident must not be keyword")
	}
}
