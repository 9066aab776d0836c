package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumObject_SetPreservesDeclarationOrder(t *testing.T) {
	e := NewEnum("Color")
	e.Set("Red", NewI64(0))
	e.Set("Green", NewI64(1))
	e.Set("Red", NewI64(99)) // overwrite shouldn't duplicate order

	require.Equal(t, []string{"Red", "Green"}, e.Order)

	v, ok := e.Get("Red")
	require.True(t, ok)
	assert.Equal(t, int64(99), v.I64)

	_, ok = e.Get("Blue")
	assert.False(t, ok)
}
