package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceObject_DirectSlotReadsAndWritesThrough(t *testing.T) {
	cell := NewI64(1)
	ref := NewReference(NewDirectSlot(&cell))

	assert.Equal(t, int64(1), ref.Get().I64)

	ref.Set(NewI64(2))
	assert.Equal(t, int64(2), cell.I64, "write through the reference must mutate the original cell")
}

func TestReferenceObject_ArraySlotTracksIndexNotSnapshot(t *testing.T) {
	arr := NewArray([]Value{NewI64(10), NewI64(20)})

	ref := NewReference(NewArraySlot(arr, 1))
	assert.Equal(t, int64(20), ref.Get().I64)

	arr.Set(1, NewI64(99))
	assert.Equal(t, int64(99), ref.Get().I64, "the reference tracks the index, not a frozen value")
}

func TestReferenceObject_StringShowsDereferencedValue(t *testing.T) {
	cell := NewI64(7)
	ref := NewReference(NewDirectSlot(&cell))
	assert.Equal(t, "<ref 7>", ref.String())
}

func TestReferenceObject_CloneReturnsSameIdentity(t *testing.T) {
	cell := NewI64(1)
	ref := NewReference(NewDirectSlot(&cell))
	assert.Same(t, ref, ref.Clone())
}
