package stdlib

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestIoFileWriteReadExistsDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.txt")

	_, _, err := ioFileWrite([]value.Value{str(path), str("hello")}, token.Token{})
	require.NoError(t, err)

	exists, ok, err := ioFileExists([]value.Value{str(path)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, exists.Bool)

	content, ok, err := ioFileRead([]value.Value{str(path)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", content.Object.(*value.StringObject).String())

	_, _, err = ioFileDelete([]value.Value{str(path)}, token.Token{})
	require.NoError(t, err)

	exists, _, err = ioFileExists([]value.Value{str(path)}, token.Token{})
	require.NoError(t, err)
	assert.False(t, exists.Bool)
}

func TestIoFileRead_MissingFileErrors(t *testing.T) {
	_, _, err := ioFileRead([]value.Value{str(filepath.Join(t.TempDir(), "nope.txt"))}, token.Token{})
	assert.Error(t, err)
}

func TestIoHTTPGetPost_RoundTripAgainstTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte("GET"))
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}))
	defer srv.Close()

	got, ok, err := ioHTTPGet([]value.Value{str(srv.URL)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "GET", got.Object.(*value.StringObject).String())

	got, ok, err = ioHTTPPost([]value.Value{str(srv.URL), str("payload")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "payload", got.Object.(*value.StringObject).String())
}
