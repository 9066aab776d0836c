package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestDsLen_ArrayStringDict(t *testing.T) {
	arr := value.NewArray([]value.Value{value.NewI64(1), value.NewI64(2)})
	n, ok, err := dsLen([]value.Value{value.NewObject(arr)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), n.I64)

	n, ok, err = dsLen([]value.Value{str("hello")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5), n.I64)
}

func TestDsPushPop_ReturnsTrackableArray(t *testing.T) {
	arr := value.NewArray([]value.Value{value.NewI64(1)})

	pushed, ok, err := dsPush([]value.Value{value.NewObject(arr), value.NewI64(2)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, len(pushed.Object.(*value.ArrayObject).Elements))

	popped, ok, err := dsPop([]value.Value{pushed}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), popped.I64)
	assert.Equal(t, 1, len(arr.Elements))
}

func TestDsPop_EmptyArrayErrors(t *testing.T) {
	arr := value.NewArray(nil)
	_, ok, err := dsPop([]value.Value{value.NewObject(arr)}, token.Token{})
	assert.False(t, ok)
	assert.Error(t, err)
}
