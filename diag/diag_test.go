package diag

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
)

func TestBag_HasErrorsOnlyAfterErrorSeverity(t *testing.T) {
	b := &Bag{}
	assert.False(t, b.HasErrors())

	b.Warnf(StageParse, token.Token{}, "suspicious but not fatal")
	assert.False(t, b.HasErrors())

	b.Errorf(StageCompile, token.Token{}, "broken: %s", "oops")
	assert.True(t, b.HasErrors())
	require.Len(t, b.Items(), 2)
}

func TestRender_IncludesSourceLineAndCaret(t *testing.T) {
	color.NoColor = true
	src := "let a = 1\nlet b = $\n"
	b := &Bag{}
	b.Errorf(StageLex, token.Token{Pos: token.Position{Line: 2, Column: 9, Offset: 18}}, "unexpected character")

	out := Render(src, "prog.cyn", b)
	assert.Contains(t, out, "prog.cyn:2:9")
	assert.Contains(t, out, "let b = $")
	assert.Contains(t, out, "^")
}
