package stdlib

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestCorePrintln_JoinsArgsWithSpace(t *testing.T) {
	out := captureStdout(t, func() {
		_, ok, err := corePrintln([]value.Value{value.NewI64(1), str("two")}, token.Token{})
		require.NoError(t, err)
		require.True(t, ok)
	})
	assert.Equal(t, "1 two\n", out)
}

func TestCorePrint_NoTrailingNewline(t *testing.T) {
	out := captureStdout(t, func() {
		_, ok, err := corePrint([]value.Value{str("a"), str("b")}, token.Token{})
		require.NoError(t, err)
		require.True(t, ok)
	})
	assert.Equal(t, "ab", out)
}

func TestCorePrintln_DereferencesReferences(t *testing.T) {
	cell := value.NewI64(99)
	ref := value.NewReference(value.NewDirectSlot(&cell))

	out := captureStdout(t, func() {
		_, ok, err := corePrintln([]value.Value{value.NewObject(ref)}, token.Token{})
		require.NoError(t, err)
		require.True(t, ok)
	})
	assert.Equal(t, "99\n", out)
}
