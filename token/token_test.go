package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_String(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	assert.Equal(t, "3:7", p.String())
}

func TestKind_StringNamesEveryKeyword(t *testing.T) {
	for lexeme, kind := range keywords {
		assert.Equal(t, lexeme, kind.String(), "keyword %q round-trips through Kind.String()", lexeme)
	}
}

func TestToken_String(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Lexeme: "x", Pos: Position{Line: 1, Column: 1}}
	assert.Contains(t, tok.String(), "x")
}
