package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/value"
)

// fakeRoots lets a test control exactly what the collector sees as live.
type fakeRoots struct {
	roots []value.Value
}

func (f *fakeRoots) GCRoots() []value.Value { return f.roots }

func TestTrack_IsIdempotent(t *testing.T) {
	roots := &fakeRoots{}
	a := NewAllocator(roots, 1<<20, 2.0, false)

	s := value.NewString("hello")
	a.Track(s)
	a.Track(s) // must not splice s into a cycle on the chain

	count := 0
	cur := value.Object(s)
	for cur != nil {
		count++
		require.Less(t, count, 10, "object chain looped back on itself")
		cur = cur.Next()
	}
	assert.Equal(t, 1, count)
}

func TestCollect_SweepsUnreachableObjects(t *testing.T) {
	roots := &fakeRoots{}
	a := NewAllocator(roots, 1<<20, 2.0, false)

	live := value.NewString("kept")
	dead := value.NewString("collected")
	a.Track(live)
	a.Track(dead)

	roots.roots = []value.Value{value.NewObject(live)}
	a.Collect()

	var onChain []value.Object
	for cur := a.head; cur != nil; cur = cur.Next() {
		onChain = append(onChain, cur)
	}
	assert.Contains(t, onChain, value.Object(live))
	assert.NotContains(t, onChain, value.Object(dead))
}

func TestCollect_KeepsReachableThroughArray(t *testing.T) {
	roots := &fakeRoots{}
	a := NewAllocator(roots, 1<<20, 2.0, false)

	inner := value.NewString("inner")
	arr := value.NewArray([]value.Value{value.NewObject(inner)})
	a.Track(inner)
	a.Track(arr)

	roots.roots = []value.Value{value.NewObject(arr)}
	a.Collect()

	assert.Equal(t, 1, a.Collections)
	var onChain []value.Object
	for cur := a.head; cur != nil; cur = cur.Next() {
		onChain = append(onChain, cur)
	}
	assert.Contains(t, onChain, value.Object(inner), "array's element must survive through Blacken tracing")
}
