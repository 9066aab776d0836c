package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
)

func TestScan_SimpleExpression(t *testing.T) {
	toks, err := Scan("let a = 3 + 4;")
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENTIFIER, token.ASSIGN, token.INT, token.PLUS, token.INT, token.SEMICOLON, token.END,
	}, kinds)
}

func TestScan_StringAndCommentsSkipped(t *testing.T) {
	toks, err := Scan(`
		// a comment
		let name = "world";
	`)
	require.NoError(t, err)

	var strLexemes []string
	for _, tk := range toks {
		if tk.Kind == token.STRING {
			strLexemes = append(strLexemes, tk.Lexeme)
		}
	}
	assert.Equal(t, []string{"world"}, strLexemes)
}

func TestScan_IllegalTokenStopsWithError(t *testing.T) {
	toks, err := Scan("let a = 3 $ 4;")
	require.Error(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.ILLEGAL, toks[len(toks)-1].Kind)
}
