package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/diag"
	"github.com/kristofer/cynicscript/lexer"
	"github.com/kristofer/cynicscript/parser"
)

func runPasses(t *testing.T, src string) *diag.Bag {
	t.Helper()
	tokens, err := lexer.Scan(src)
	require.NoError(t, err)
	prog, errs := parser.Parse(tokens)
	require.Empty(t, errs)

	bag := &diag.Bag{}
	NewManager().Run(prog, bag)
	return bag
}

func TestConstantFold_FoldsDictKeyBeforeSyntaxCheck(t *testing.T) {
	bag := runPasses(t, `let d = { 1 + 2: "three" };`)
	assert.False(t, bag.HasErrors(), "%v", bag.Items())
}

func TestSyntaxCheck_NonConstantDictKeyErrors(t *testing.T) {
	bag := runPasses(t, `let k = 1; let d = { k: "one" };`)
	require.True(t, bag.HasErrors())
	found := false
	for _, d := range bag.Items() {
		if d.Message == "dict key must be a constant expression" {
			found = true
		}
	}
	assert.True(t, found, "%v", bag.Items())
}

func TestSyntaxCheck_RefOfNonLvalueErrors(t *testing.T) {
	bag := runPasses(t, `let r = &(1 + 2);`)
	require.True(t, bag.HasErrors())
}
