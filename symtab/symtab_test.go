package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine_RedefinitionInSameScopeErrors(t *testing.T) {
	table := NewChild(NewGlobal())
	_, err := table.Define("x", false, nil)
	require.NoError(t, err)

	_, err = table.Define("x", false, nil)
	assert.Error(t, err)
}

func TestDefine_OverloadedFunctionsCoexist(t *testing.T) {
	table := NewChild(NewGlobal())
	_, err := table.Define("f", false, &Signature{Arity: 1})
	require.NoError(t, err)

	_, err = table.Define("f", false, &Signature{Arity: 2})
	assert.NoError(t, err)

	_, err = table.Define("f", false, &Signature{Arity: 1})
	assert.Error(t, err, "same arity redefined should still collide")
}

func TestEndScope_ReturnsAndDropsLocalsDeclaredInBlock(t *testing.T) {
	table := NewChild(NewGlobal())
	table.BeginScope()
	_, err := table.Define("a", false, nil)
	require.NoError(t, err)
	_, err = table.Define("b", false, nil)
	require.NoError(t, err)

	popped := table.EndScope()
	assert.Len(t, popped, 2)

	kind, _, _, err := table.Resolve("a", -1)
	require.NoError(t, err)
	assert.Equal(t, NotFound, kind)
}

func TestResolve_LocalThenUpvalueThenGlobal(t *testing.T) {
	global := NewGlobal()
	_, err := global.Define("g", false, nil)
	require.NoError(t, err)

	outer := NewChild(global)
	_, err = outer.Define("captured", false, nil)
	require.NoError(t, err)

	inner := NewChild(outer)
	_, err = inner.Define("local", false, nil)
	require.NoError(t, err)

	kind, _, _, err := inner.Resolve("local", -1)
	require.NoError(t, err)
	assert.Equal(t, Local, kind)

	kind, _, _, err = inner.Resolve("captured", -1)
	require.NoError(t, err)
	assert.Equal(t, Upvalue, kind)

	kind, _, _, err = inner.Resolve("g", -1)
	require.NoError(t, err)
	assert.Equal(t, Global, kind)

	kind, _, _, err = inner.Resolve("nope", -1)
	require.NoError(t, err)
	assert.Equal(t, NotFound, kind)
}
