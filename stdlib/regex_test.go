package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestRegexMatchFindAllReplace(t *testing.T) {
	matched, ok, err := dsRegexMatch([]value.Value{str(`\d+`), str("abc123")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, matched.Bool)

	found, ok, err := dsRegexFindAll([]value.Value{str(`\d+`), str("a1 b22 c333")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	arr := found.Object.(*value.ArrayObject)
	require.Len(t, arr.Elements, 3)
	assert.Equal(t, "333", arr.Elements[2].Object.(*value.StringObject).String())

	replaced, ok, err := dsRegexReplace([]value.Value{str(`\d+`), str("a1b2"), str("#")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a#b#", replaced.Object.(*value.StringObject).String())
}

func TestRegexMatch_InvalidPatternErrors(t *testing.T) {
	_, ok, err := dsRegexMatch([]value.Value{str("("), str("x")}, token.Token{})
	assert.False(t, ok)
	assert.Error(t, err)
}
