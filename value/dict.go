package value

import "strings"

// DictObject is an insertion-ordered Value->Value mapping. Ordering is
// kept in the keys/vals slices; the hash index accelerates lookup while
// tolerating hash collisions by storing every candidate slot index per
// bucket and confirming with full Value equality (spec.md §3 "keys must
// be hashable values").
type DictObject struct {
	Header
	keys  []Value
	vals  []Value
	index map[uint64][]int
}

func NewDict() *DictObject {
	return &DictObject{index: make(map[uint64][]int)}
}

func (d *DictObject) ObjKind() ObjectKind { return KDict }

func (d *DictObject) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.keys[i].String())
		b.WriteString(": ")
		b.WriteString(d.vals[i].String())
	}
	b.WriteByte('}')
	return b.String()
}

func (d *DictObject) ByteSize() int { return len(d.keys)*96 + 48 }

func (d *DictObject) Equals(o Object) bool {
	other, ok := o.(*DictObject)
	if !ok || len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		v, found := other.Get(k)
		if !found || !v.Equals(d.vals[i]) {
			return false
		}
	}
	return true
}

func (d *DictObject) Clone() Object {
	cp := NewDict()
	for i := range d.keys {
		cp.Set(d.keys[i].Clone(), d.vals[i].Clone())
	}
	return cp
}

// Blacken enqueues every key and value object reference.
func (d *DictObject) Blacken(enqueue func(Object)) {
	for i := range d.keys {
		if d.keys[i].Kind == Obj && d.keys[i].Object != nil {
			enqueue(d.keys[i].Object)
		}
		if d.vals[i].Kind == Obj && d.vals[i].Object != nil {
			enqueue(d.vals[i].Object)
		}
	}
}

func (d *DictObject) findSlot(key Value) int {
	h := key.Hash()
	for _, idx := range d.index[h] {
		if d.keys[idx].Equals(key) {
			return idx
		}
	}
	return -1
}

// Get looks up key, returning (value, true) if present.
func (d *DictObject) Get(key Value) (Value, bool) {
	idx := d.findSlot(key)
	if idx < 0 {
		return Value{}, false
	}
	return d.vals[idx], true
}

// Set inserts or overwrites key's value, preserving insertion order for
// new keys.
func (d *DictObject) Set(key, v Value) {
	if idx := d.findSlot(key); idx >= 0 {
		d.vals[idx] = v
		return
	}
	h := key.Hash()
	d.index[h] = append(d.index[h], len(d.keys))
	d.keys = append(d.keys, key)
	d.vals = append(d.vals, v)
}

// Len reports the number of entries.
func (d *DictObject) Len() int { return len(d.keys) }

// Keys returns the ordered key slice (read-only contract; callers must
// not mutate the returned slice).
func (d *DictObject) Keys() []Value { return d.keys }
