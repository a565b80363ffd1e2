package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"surge/internal/diag"
	"surge/internal/lexer"
	"surge/internal/source"
	"surge/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%d] %s: %s", d.Code, d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers_ASCII(t *testing.T) {
	tests := []string{"foo", "_bar", "__test", "x123", "camelCase", "UPPER", "$jquery", "_"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

func TestIdentifiers_Unicode(t *testing.T) {
	tests := []string{"переменная", "δ", "λx", "函数", "変数"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

func TestKeywords_Lowercase(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"let", token.KwLet},
		{"const", token.KwConst},
		{"var", token.KwVar},
		{"function", token.KwFunction},
		{"return", token.KwReturn},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"while", token.KwWhile},
		{"for", token.KwFor},
		{"in", token.KwIn},
		{"of", token.KwOf},
		{"break", token.KwBreak},
		{"continue", token.KwContinue},
		{"import", token.KwImport},
		{"export", token.KwExport},
		{"as", token.KwAs},
		{"type", token.KwType},
		{"interface", token.KwInterface},
		{"enum", token.KwEnum},
		{"namespace", token.KwNamespace},
		{"keyof", token.KwKeyof},
		{"infer", token.KwInfer},
		{"is", token.KwIs},
		{"asserts", token.KwAsserts},
		{"readonly", token.KwReadonly},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
		{"async", token.KwAsync},
		{"await", token.KwAwait},
		{"yield", token.KwYield},
		{"instanceof", token.KwInstanceof},
		{"typeof", token.KwTypeof},
		{"with", token.KwWith},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Errorf("expected %v, got %v", tt.kind, tok.Kind)
			}
		})
	}
}

// TypeScript keywords are case-sensitive: a capitalized spelling is always
// an ordinary identifier, never the keyword.
func TestKeywords_CapitalizedAreIdents(t *testing.T) {
	tests := []string{"Let", "LET", "Const", "Function", "TYPE", "Interface", "Enum", "True", "False"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, _ := makeTestLexer(input)
			tok := lx.Next()
			if tok.Kind != token.Ident {
				t.Errorf("expected Ident for %q, got %v", input, tok.Kind)
			}
			if tok.Text != input {
				t.Errorf("expected text %q, got %q", input, tok.Text)
			}
		})
	}
}

func TestPrivateIdentifier(t *testing.T) {
	expectSingleToken(t, "#balance", token.PrivateIdent, "#balance")
}

func TestNumbers_Decimal(t *testing.T) {
	tests := []string{"0", "123", "1_000", "1_000_000", "999_999_999"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.NumericLit, input)
		})
	}
}

func TestNumbers_Bases(t *testing.T) {
	tests := []string{"0b1010", "0B1010", "0o777", "0O777", "0xDEADBEEF", "0xff_AB"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.NumericLit, input)
		})
	}
}

func TestNumbers_Float(t *testing.T) {
	tests := []string{"1.0", "3.14", "0.5", "1_000.5", "1.", ".5", ".123"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.NumericLit, input)
		})
	}
}

func TestNumbers_Exponent(t *testing.T) {
	tests := []string{"1e10", "1E10", "1e+10", "1e-10", "3.14e-2"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.NumericLit, input)
		})
	}
}

func TestNumbers_BigInt(t *testing.T) {
	tests := []string{"123n", "0x1Fn", "0b101n", "0o17n"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.BigIntLit, input)
		})
	}
}

func TestNumbers_InvalidExponent(t *testing.T) {
	tests := []string{"1e", "1e+", "1e-"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makeTestLexer(input)
			tok := lx.Next()
			if tok.Kind != token.Invalid && !reporter.HasErrors() {
				t.Errorf("expected invalid token or error for %q, got %v", input, tok.Kind)
			}
		})
	}
}

func TestNumbers_DotFollowedByLetter(t *testing.T) {
	expectTokens(t, ".e10", []token.Kind{token.Dot, token.Ident})
}

func TestString_Simple(t *testing.T) {
	tests := []string{`""`, `"hello"`, `'hello'`, `"hello world"`, `'123'`}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.StringLit, input)
		})
	}
}

func TestString_Escapes(t *testing.T) {
	tests := []string{`"hello\nworld"`, `"tab\there"`, `"quote\"inside"`, `'it\'s'`, `"backslash\\"`}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.StringLit, input)
		})
	}
}

func TestString_Unterminated(t *testing.T) {
	tests := []string{`"hello`, `'world`, `"unclosed`}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makeTestLexer(input)
			tok := lx.Next()
			if tok.Kind != token.Invalid {
				t.Errorf("expected invalid for unterminated string, got %v", tok.Kind)
			}
			if !reporter.HasErrors() {
				t.Error("expected error report for unterminated string")
			}
		})
	}
}

func TestString_NewlineInString(t *testing.T) {
	lx, reporter := makeTestLexer("\"hello\nworld\"")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("expected invalid for newline in string, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected error report for newline in string")
	}
}

func TestTemplateLiteral_NoSubstitution(t *testing.T) {
	expectSingleToken(t, "`hello world`", token.NoSubstitutionTemplateLit, "`hello world`")
}

func TestTemplateLiteral_MultiLine(t *testing.T) {
	expectSingleToken(t, "`line one\nline two`", token.NoSubstitutionTemplateLit, "`line one\nline two`")
}

func TestTemplateLiteral_SingleSubstitution(t *testing.T) {
	expectTokens(t, "`hi ${name}!`", []token.Kind{
		token.TemplateHead,
		token.Ident,
		token.TemplateTail,
	})
}

func TestTemplateLiteral_MultipleSubstitutions(t *testing.T) {
	expectTokens(t, "`${a} and ${b}`", []token.Kind{
		token.TemplateHead,
		token.Ident,
		token.TemplateMiddle,
		token.Ident,
		token.TemplateTail,
	})
}

func TestTemplateLiteral_BraceInsideSubstitution(t *testing.T) {
	// The object literal's braces must not be confused with the `${...}` delimiters.
	expectTokens(t, "`${ {x: 1}.x }`", []token.Kind{
		token.TemplateHead,
		token.LBrace,
		token.Ident,
		token.Colon,
		token.NumericLit,
		token.RBrace,
		token.Dot,
		token.Ident,
		token.TemplateTail,
	})
}

func TestOperators_Assignment(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"=", token.Assign},
		{"+=", token.PlusAssign},
		{"-=", token.MinusAssign},
		{"*=", token.StarAssign},
		{"**=", token.StarStarAssign},
		{"/=", token.SlashAssign},
		{"%=", token.PercentAssign},
		{"&=", token.AmpAssign},
		{"|=", token.PipeAssign},
		{"^=", token.CaretAssign},
		{"<<=", token.ShlAssign},
		{">>=", token.ShrAssign},
		{">>>=", token.UShrAssign},
		{"&&=", token.AndAndAssign},
		{"||=", token.OrOrAssign},
		{"??=", token.QuestionQAssign},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperators_Comparison(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"==", token.EqEq},
		{"===", token.EqEqEq},
		{"!=", token.BangEq},
		{"!==", token.BangEqEq},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"<<", token.Shl},
		{">>", token.Shr},
		{">>>", token.UShr},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperators_Misc(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"**", token.StarStar},
		{"??", token.QuestionQuestion},
		{"?.", token.QuestionDot},
		{"=>", token.FatArrow},
		{"...", token.DotDotDot},
		{"++", token.PlusPlus},
		{"--", token.MinusMinus},
		{"~", token.Tilde},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperators_Greedy(t *testing.T) {
	expectTokens(t, ">>>=", []token.Kind{token.UShrAssign})
	expectTokens(t, ">>>", []token.Kind{token.UShr})
	expectTokens(t, "a??b", []token.Kind{token.Ident, token.QuestionQuestion, token.Ident})
	expectTokens(t, "a?.b", []token.Kind{token.Ident, token.QuestionDot, token.Ident})
	expectTokens(t, "a?b:c", []token.Kind{token.Ident, token.Question, token.Ident, token.Colon, token.Ident})
}

func TestPunctuation(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"(", token.LParen}, {")", token.RParen},
		{"{", token.LBrace}, {"}", token.RBrace},
		{"[", token.LBracket}, {"]", token.RBracket},
		{"@", token.At}, {";", token.Semicolon}, {",", token.Comma},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestPragmaDirective_TsExpectError(t *testing.T) {
	lx, _ := makeTestLexer("// @ts-expect-error TS2322\nconst x: number = \"s\";")
	tok := lx.Next()
	if tok.Kind != token.KwConst {
		t.Fatalf("expected const, got %v", tok.Kind)
	}
	if len(tok.Leading) == 0 {
		t.Fatalf("expected leading trivia")
	}
	var found *token.Directive
	for _, tv := range tok.Leading {
		if tv.Kind == token.TriviaDirective {
			found = tv.Directive
		}
	}
	if found == nil {
		t.Fatalf("expected a directive trivia")
	}
	if found.Name != "ts-expect-error" || found.Payload != "TS2322" {
		t.Fatalf("unexpected directive: %+v", found)
	}
}

func TestDocComment_Recognized(t *testing.T) {
	lx, _ := makeTestLexer("/** doc */\nfunction f() {}")
	tok := lx.Next()
	if tok.Kind != token.KwFunction {
		t.Fatalf("expected function, got %v", tok.Kind)
	}
	if len(tok.Leading) == 0 || tok.Leading[0].Kind != token.TriviaDocComment {
		t.Fatalf("expected leading doc comment trivia, got %+v", tok.Leading)
	}
}

// Block comments do not nest in TypeScript: the first "*/" closes the
// comment even when a "/*" appeared inside it.
func TestBlockCommentDoesNotNest(t *testing.T) {
	expectTokens(t, "/* a /* b */ c */ x", []token.Kind{
		token.Ident, // "c"
		token.Star,
		token.Slash,
		token.Ident, // "x"
	})
}

func TestBlockComment_Simple(t *testing.T) {
	lx, reporter := makeTestLexer("/* a comment */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("expected ident, got %v", tok.Kind)
	}
	if reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", reporter.ErrorMessages())
	}
}
