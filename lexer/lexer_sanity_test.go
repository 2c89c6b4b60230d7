// ----------------------------------------------------------------------------
// FILE: lexer/lexer_sanity_test.go
// ----------------------------------------------------------------------------
package lexer

import (
	"testing"

	"zen/token"
)

// TestSanityLexer performs a basic sanity check on the lexer. It ensures that
// a standard line lexes without producing any ILLEGAL token.
func TestSanityLexer(t *testing.T) {
	input := `x = 10 eğer x == 10 ise yazdır(x)`
	for _, tok := range Tokenize(input) {
		if tok.Kind == token.ILLEGAL {
			t.Fatalf("unexpected illegal token %q", tok.Literal)
		}
	}
}
