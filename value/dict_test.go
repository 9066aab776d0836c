package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictObject_SetGetOverwrite(t *testing.T) {
	d := NewDict()
	d.Set(NewObject(NewString("a")), NewI64(1))
	d.Set(NewObject(NewString("b")), NewI64(2))
	d.Set(NewObject(NewString("a")), NewI64(99))

	assert.Equal(t, 2, d.Len())

	v, ok := d.Get(NewObject(NewString("a")))
	require.True(t, ok)
	assert.Equal(t, int64(99), v.I64)

	_, ok = d.Get(NewObject(NewString("missing")))
	assert.False(t, ok)
}

func TestDictObject_KeysPreserveInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set(NewI64(3), NewBool(true))
	d.Set(NewI64(1), NewBool(false))
	d.Set(NewI64(2), NewBool(true))

	var order []int64
	for _, k := range d.Keys() {
		order = append(order, k.I64)
	}
	assert.Equal(t, []int64{3, 1, 2}, order)
}
