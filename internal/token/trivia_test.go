package token_test

import (
	"testing"

	"surge/internal/source"
	"surge/internal/token"
)

func TestDirectiveTriviaShape(t *testing.T) {
	dir := &token.Directive{
		Name:    "ts-expect-error",
		Payload: "TS2322",
	}
	tv := token.Trivia{
		Kind:      token.TriviaDirective,
		Span:      source.Span{Start: 0, End: 20},
		Text:      "// @ts-expect-error",
		Directive: dir,
	}
	tok := token.Token{
		Kind:    token.KwConst,
		Span:    source.Span{Start: 42, End: 47},
		Text:    "const",
		Leading: []token.Trivia{tv},
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaDirective || tok.Leading[0].Directive == nil {
		t.Fatalf("directive trivia must be present and structured")
	}
}
