package stdlib

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestMemRandomInt_StaysWithinInclusiveRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		v, ok, err := memRandomInt([]value.Value{value.NewI64(5), value.NewI64(5)}, token.Token{})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(5), v.I64)
	}

	v, _, err := memRandomInt([]value.Value{value.NewI64(1), value.NewI64(10)}, token.Token{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v.I64, int64(1))
	assert.LessOrEqual(t, v.I64, int64(10))
}

func TestMemRandomInt_RejectsInvertedRange(t *testing.T) {
	_, _, err := memRandomInt([]value.Value{value.NewI64(10), value.NewI64(1)}, token.Token{})
	assert.Error(t, err)
}

func TestMemRandomFloat_IsWithinUnitInterval(t *testing.T) {
	v, ok, err := memRandomFloat(nil, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, v.F64, 0.0)
	assert.Less(t, v.F64, 1.0)
}

func TestMemRandomBytes_ReturnsBase64OfRequestedLength(t *testing.T) {
	v, ok, err := memRandomBytes([]value.Value{value.NewI64(16)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	decoded, err := base64.StdEncoding.DecodeString(v.Object.(*value.StringObject).String())
	require.NoError(t, err)
	assert.Len(t, decoded, 16)
}
