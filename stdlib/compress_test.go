package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestCompressGzipGunzip_RoundTrips(t *testing.T) {
	compressed, ok, err := compressGzip([]value.Value{str("the quick brown fox jumps over the lazy dog")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	decompressed, ok, err := compressGunzip([]value.Value{compressed}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", decompressed.Object.(*value.StringObject).String())
}

func TestCompressGunzip_InvalidInputErrors(t *testing.T) {
	_, _, err := compressGunzip([]value.Value{str("not valid base64 gzip !!")}, token.Token{})
	assert.Error(t, err)
}
