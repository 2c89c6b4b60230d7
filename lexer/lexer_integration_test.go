// ----------------------------------------------------------------------------
// FILE: lexer/lexer_integration_test.go
// ----------------------------------------------------------------------------
package lexer

import (
	"testing"

	"zen/token"
)

// TestIntegrationLexer tokenizes an array-literal assignment, to verify
// bracket/comma handling alongside identifiers and number literals.
func TestIntegrationLexer(t *testing.T) {
	input := `liste = [1, 2, 3]`
	expected := []struct {
		kind    token.Kind
		literal string
	}{
		{token.IDENT, "liste"},
		{token.ASSIGN, "="},
		{token.LBRACKET, "["},
		{token.NUMBER, "1"},
		{token.COMMA, ","},
		{token.NUMBER, "2"},
		{token.COMMA, ","},
		{token.NUMBER, "3"},
		{token.RBRACKET, "]"},
		{token.EOF, ""},
	}
	toks := Tokenize(input)
	for i, e := range expected {
		if toks[i].Kind != e.kind || toks[i].Literal != e.literal {
			t.Fatalf("[%d] got %q %q, want %q %q", i, toks[i].Kind, toks[i].Literal, e.kind, e.literal)
		}
	}
}
