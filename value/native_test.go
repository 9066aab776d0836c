package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
)

func TestNativeObject_FnIsInvokedWithArgsAndOrigin(t *testing.T) {
	var gotArgs []Value
	var gotTok token.Token

	n := NewNative("double", func(args []Value, origin token.Token) (Value, bool, error) {
		gotArgs = args
		gotTok = origin
		return NewI64(args[0].I64 * 2), true, nil
	})

	origin := token.Token{Pos: token.Position{Line: 3}}
	result, ok, err := n.Fn([]Value{NewI64(21)}, origin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), result.I64)
	assert.Equal(t, []Value{NewI64(21)}, gotArgs)
	assert.Equal(t, 3, gotTok.Pos.Line)
}

func TestNativeObject_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	n := NewNative("fail", func(args []Value, origin token.Token) (Value, bool, error) {
		return Value{}, false, boom
	})

	_, ok, err := n.Fn(nil, token.Token{})
	assert.False(t, ok)
	assert.Equal(t, boom, err)
}

func TestNativeObject_StringIncludesName(t *testing.T) {
	n := NewNative("foo", nil)
	assert.Equal(t, "<native fn foo>", n.String())
}
