package value

// Slot is anything REF_* can point at: a VM stack slot, a global
// binding cell, or one element of an array. ReferenceObject dereferences
// through Slot transparently on read and writes through on assignment
// (spec.md §4.5 "REF_GLOBAL/REF_LOCAL/REF_UPVALUE/REF_INDEX_*").
type Slot interface {
	Load() Value
	Store(Value)
}

// directSlot adapts a bare *Value (a stack slot or a global cell) to Slot.
type directSlot struct{ ptr *Value }

func (s directSlot) Load() Value   { return *s.ptr }
func (s directSlot) Store(v Value) { *s.ptr = v }

// NewDirectSlot wraps a stack or global-table slot pointer.
func NewDirectSlot(ptr *Value) Slot { return directSlot{ptr: ptr} }

// arraySlot adapts one element of an ArrayObject to Slot, so `ref a[i]`
// keeps tracking index i rather than freezing the element's value at
// reference-creation time.
type arraySlot struct {
	arr *ArrayObject
	idx int64
}

func (s arraySlot) Load() Value {
	v, _ := s.arr.Get(s.idx)
	return v
}

func (s arraySlot) Store(v Value) { s.arr.Set(s.idx, v) }

// NewArraySlot wraps one index of arr.
func NewArraySlot(arr *ArrayObject, idx int64) Slot { return arraySlot{arr: arr, idx: idx} }

// upvalueSlot adapts an UpvalueObject to Slot.
type upvalueSlot struct{ uv *UpvalueObject }

func (s upvalueSlot) Load() Value   { return s.uv.Get() }
func (s upvalueSlot) Store(v Value) { s.uv.Set(v) }

// NewUpvalueSlot wraps an upvalue as a Slot.
func NewUpvalueSlot(uv *UpvalueObject) Slot { return upvalueSlot{uv: uv} }

// ReferenceObject is a first-class reference value produced by `ref expr`
// (spec.md §3 "reference"): it holds a Slot and dereferences through it
// uniformly regardless of what kind of storage backs it.
type ReferenceObject struct {
	Header
	Target Slot
}

func NewReference(target Slot) *ReferenceObject {
	return &ReferenceObject{Target: target}
}

func (r *ReferenceObject) ObjKind() ObjectKind { return KReference }
func (r *ReferenceObject) String() string      { return "<ref " + r.Target.Load().String() + ">" }
func (r *ReferenceObject) ByteSize() int       { return 16 }
func (r *ReferenceObject) Equals(o Object) bool { return r == o }

// Clone returns r itself: a reference's identity IS the slot it
// dereferences, so copying it must keep pointing at the same slot rather
// than snapshotting the pointed-to value.
func (r *ReferenceObject) Clone() Object { return r }

func (r *ReferenceObject) Blacken(enqueue func(Object)) {
	v := r.Target.Load()
	if v.Kind == Obj && v.Object != nil {
		enqueue(v.Object)
	}
}

// Get dereferences the reference.
func (r *ReferenceObject) Get() Value { return r.Target.Load() }

// Set writes through the reference.
func (r *ReferenceObject) Set(v Value) { r.Target.Store(v) }
