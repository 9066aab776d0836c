// Package gc implements the tri-color mark-sweep collector of spec.md
// §4.8: an allocator that tracks every heap value.Object on an intrusive
// object chain, a stop-the-world mark phase driven from the VM's roots,
// and a sweep phase that frees anything left unmarked. It runs inline
// during allocation the way the teacher's VM calls collectGarbage()
// directly from its "new object" helpers, rather than on a separate
// goroutine or timer (spec.md §5 "single-threaded and synchronous").
package gc

import "github.com/kristofer/cynicscript/value"

// RootProvider is implemented by the VM: it enumerates every live Value
// the collector must treat as a root (stack slots, globals, open
// upvalues, in-flight call-frame closures).
type RootProvider interface {
	GCRoots() []value.Value
}

// Allocator owns the object chain and decides when to collect.
type Allocator struct {
	head        value.Object
	bytesAlloc  int
	threshold   int
	growFactor  float64
	stressMode  bool
	roots       RootProvider

	// Collections counts completed mark-sweep cycles, surfaced for
	// diagnostics/DumpState.
	Collections int
}

// NewAllocator constructs an Allocator with the given initial threshold
// (bytes) and heap-grow factor, matching config.Options' GC fields.
func NewAllocator(roots RootProvider, initialThreshold int, growFactor float64, stressMode bool) *Allocator {
	return &Allocator{
		roots:      roots,
		threshold:  initialThreshold,
		growFactor: growFactor,
		stressMode: stressMode,
	}
}

// Track registers obj on the allocator's object chain and accounts for
// its size, collecting first if the new allocation would (or, in stress
// mode, always) cross the threshold.
func (a *Allocator) Track(obj value.Object) {
	if obj == nil || obj.Tracked() {
		return
	}
	if a.stressMode || a.bytesAlloc+obj.ByteSize() > a.threshold {
		a.Collect()
	}
	obj.SetNext(a.head)
	obj.SetTracked(true)
	a.head = obj
	a.bytesAlloc += obj.ByteSize()
}

// Collect runs one full mark-sweep cycle.
func (a *Allocator) Collect() {
	gray := a.markRoots()
	a.propagate(gray)
	a.sweep()
	a.threshold = int(float64(a.bytesAlloc) * a.growFactor)
	if a.threshold < 1<<16 {
		a.threshold = 1 << 16
	}
	a.Collections++
}

func (a *Allocator) markRoots() []value.Object {
	var gray []value.Object
	enqueue := func(o value.Object) {
		if o == nil || o.Marked() {
			return
		}
		o.Mark()
		gray = append(gray, o)
	}
	for _, v := range a.roots.GCRoots() {
		if v.Kind == value.Obj && v.Object != nil {
			enqueue(v.Object)
		}
	}
	return gray
}

func (a *Allocator) propagate(gray []value.Object) {
	for len(gray) > 0 {
		obj := gray[len(gray)-1]
		gray = gray[:len(gray)-1]
		obj.Blacken(func(child value.Object) {
			if child != nil && !child.Marked() {
				child.Mark()
				gray = append(gray, child)
			}
		})
	}
}

func (a *Allocator) sweep() {
	var prev value.Object
	survivorBytes := 0
	cur := a.head
	for cur != nil {
		next := cur.Next()
		if cur.Marked() {
			cur.Unmark()
			survivorBytes += cur.ByteSize()
			prev = cur
		} else {
			if prev == nil {
				a.head = next
			} else {
				prev.SetNext(next)
			}
		}
		cur = next
	}
	a.bytesAlloc = survivorBytes
}

// BytesAllocated reports the allocator's current live-byte estimate.
func (a *Allocator) BytesAllocated() int { return a.bytesAlloc }
