package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"function":   KwFunction,
		"let":        KwLet,
		"return":     KwReturn,
		"interface":  KwInterface,
		"enum":       KwEnum,
		"namespace":  KwNamespace,
		"keyof":      KwKeyof,
		"infer":      KwInfer,
		"instanceof": KwInstanceof,
		"true":       KwTrue,
		"false":      KwFalse,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Function", "LET", "Await", // case matters — lowering is the lexer's job
		"string8", "toString", "identifier",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestIsContextual(t *testing.T) {
	if !IsContextual(KwType) {
		t.Fatalf("type should be contextual")
	}
	if IsContextual(KwIf) {
		t.Fatalf("if must not be contextual")
	}
}
