package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionObject_CacheLookupAndStore(t *testing.T) {
	fn := NewFunction("fib", 1, VarArgNone, NewChunk())

	_, ok := fn.LookupCache("1")
	assert.False(t, ok)

	fn.StoreCache("1", []Value{NewI64(1)})
	results, ok := fn.LookupCache("1")
	require.True(t, ok)
	assert.Equal(t, int64(1), results[0].I64)
}

func TestUpvalueObject_CloseCopiesSlotAndSeversLocation(t *testing.T) {
	slot := NewI64(42)
	uv := NewOpenUpvalue(&slot)
	assert.True(t, uv.IsOpen())

	uv.Close()
	assert.False(t, uv.IsOpen())
	assert.Equal(t, int64(42), uv.Get().I64)

	slot = NewI64(99)
	assert.Equal(t, int64(42), uv.Get().I64, "closed upvalue must not see further writes to the old slot")
}

func TestUpvalueObject_SetWritesThroughWhileOpen(t *testing.T) {
	slot := NewI64(1)
	uv := NewOpenUpvalue(&slot)
	uv.Set(NewI64(7))
	assert.Equal(t, int64(7), slot.I64)
}

func TestClosureObject_BlackenEnqueuesFunctionAndUpvalues(t *testing.T) {
	fn := NewFunction("f", 0, VarArgNone, NewChunk())
	closure := NewClosure(fn)
	require.Len(t, closure.Upvalues, 0)

	slot := NewI64(1)
	closure.Upvalues = []*UpvalueObject{NewOpenUpvalue(&slot)}

	var enqueued []Object
	closure.Blacken(func(o Object) { enqueued = append(enqueued, o) })
	assert.Contains(t, enqueued, Object(fn))
	assert.Contains(t, enqueued, Object(closure.Upvalues[0]))
}
