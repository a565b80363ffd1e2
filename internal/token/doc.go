// Package token defines lexical token kinds and trivia for the TypeScript
// surface consumed by the checker core.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Decorators are lexed as '@' (Kind: At) + Ident; no per-decorator token kinds.
//   - Pragma comments (// @ts-ignore, // @ts-expect-error) are represented as
//     leading Trivia (TriviaDirective) and never appear in the main token stream.
//   - Contextual keywords (type, as, of, get/set, readonly, ...) always lex to
//     their keyword Kind; the parser downgrades them to identifiers per
//     production (see token.IsContextual).
package token
