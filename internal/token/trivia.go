package token

import "surge/internal/source"

// Directive represents a source-level pragma comment, e.g. `// @ts-ignore`
// or `// @ts-expect-error`. Neither the binder nor the checker reads these,
// so they suppress no diagnostics.
type Directive struct {
	Name    string // "ts-ignore", "ts-expect-error"
	Payload string
}

// TriviaKind classifies types of non-code elements.
type TriviaKind uint8

const (
	// TriviaSpace represents horizontal whitespace.
	TriviaSpace TriviaKind = iota
	// TriviaNewline represents a newline character.
	TriviaNewline
	// TriviaLineComment represents a `//` line comment.
	TriviaLineComment
	// TriviaBlockComment represents a `/* ... */` block comment.
	TriviaBlockComment
	// TriviaDocComment represents a `/** ... */` doc comment.
	TriviaDocComment
	// TriviaDirective represents a `@ts-ignore`/`@ts-expect-error` pragma comment.
	TriviaDirective
)

// Trivia represents a non-code source element like comments or whitespace.
type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // set only when Kind == TriviaDirective
}
