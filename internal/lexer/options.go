package lexer

import (
	"surge/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	Reporter diag.Reporter
}
