package value

import "fmt"

// VarArgKind names a function's surplus-argument discipline (spec.md
// §3, §4.9): none requires exact arity; unnamed allows extra positional
// args that are simply discarded; named packs the surplus into an array
// bound to the last formal parameter.
type VarArgKind byte

const (
	VarArgNone VarArgKind = iota
	VarArgUnnamed
	VarArgNamed
)

// FunctionObject is a compiled function body: its Chunk, its arity and
// varargs discipline, its upvalue count, and (optionally) a per-
// argument-tuple memoization cache (spec.md §4.9 "Function-call cache").
type FunctionObject struct {
	Header
	Name         string
	Arity        int
	VarArg       VarArgKind
	UpvalueCount int
	Chunk        *Chunk
	Cache        map[string][]Value // nil unless caching is enabled for this function
	HasReceiver  bool                // true for methods/constructors: local slot 0 is `this`, not the first argument
}

func NewFunction(name string, arity int, varArg VarArgKind, chunk *Chunk) *FunctionObject {
	return &FunctionObject{Name: name, Arity: arity, VarArg: varArg, Chunk: chunk}
}

func (f *FunctionObject) ObjKind() ObjectKind { return KFunction }
func (f *FunctionObject) String() string      { return fmt.Sprintf("<fn %s>", f.displayName()) }
func (f *FunctionObject) ByteSize() int       { return 96 }

func (f *FunctionObject) displayName() string {
	if f.Name == "" {
		return "anonymous"
	}
	return f.Name
}

func (f *FunctionObject) Equals(o Object) bool { return f == o }

// Clone returns f itself: function bodies are immutable code and are
// shared, never deep-copied (only closures over them, and the values
// they close over, are distinct per-invocation).
func (f *FunctionObject) Clone() Object { return f }

// Blacken enqueues every object-valued constant in the function's own
// chunk (nested function constants, string literals, ...) plus every
// cached argument/result tuple, since the cache is a GC root per
// spec.md §4.9.
func (f *FunctionObject) Blacken(enqueue func(Object)) {
	for _, c := range f.Chunk.Constants {
		if c.Kind == Obj && c.Object != nil {
			enqueue(c.Object)
		}
	}
	for _, results := range f.Cache {
		for _, r := range results {
			if r.Kind == Obj && r.Object != nil {
				enqueue(r.Object)
			}
		}
	}
}

// LookupCache checks the memoization cache for key, returning the cached
// result tuple on hit.
func (f *FunctionObject) LookupCache(key string) ([]Value, bool) {
	if f.Cache == nil {
		return nil, false
	}
	v, ok := f.Cache[key]
	return v, ok
}

// StoreCache records a result tuple for key, enabling the cache lazily
// on first use.
func (f *FunctionObject) StoreCache(key string, results []Value) {
	if f.Cache == nil {
		f.Cache = make(map[string][]Value)
	}
	f.Cache[key] = results
}

// ClosureObject pairs a FunctionObject with its captured Upvalue vector
// (spec.md §3 "closure").
type ClosureObject struct {
	Header
	Function *FunctionObject
	Upvalues []*UpvalueObject
}

func NewClosure(fn *FunctionObject) *ClosureObject {
	return &ClosureObject{Function: fn, Upvalues: make([]*UpvalueObject, fn.UpvalueCount)}
}

func (c *ClosureObject) ObjKind() ObjectKind { return KClosure }
func (c *ClosureObject) String() string      { return c.Function.String() }
func (c *ClosureObject) ByteSize() int       { return 32 + len(c.Upvalues)*8 }
func (c *ClosureObject) Equals(o Object) bool { return c == o }
func (c *ClosureObject) Clone() Object       { return c }

func (c *ClosureObject) Blacken(enqueue func(Object)) {
	enqueue(c.Function)
	for _, uv := range c.Upvalues {
		if uv != nil {
			enqueue(uv)
		}
	}
}

// UpvalueObject is either open (Location points into a live VM stack
// slot) or closed (it owns Closed after its enclosing frame returned),
// per spec.md §3 and invariant 2.
type UpvalueObject struct {
	Header
	Location *Value // non-nil while open: points into the VM's stack slice
	Closed   Value  // valid once closed
	NextOpen *UpvalueObject // unused: the VM tracks open upvalues in its own openUpvals/openIdx slices
}

func NewOpenUpvalue(loc *Value) *UpvalueObject {
	return &UpvalueObject{Location: loc}
}

func (u *UpvalueObject) ObjKind() ObjectKind { return KUpvalue }
func (u *UpvalueObject) String() string      { return "<upvalue>" }
func (u *UpvalueObject) ByteSize() int       { return 48 }
func (u *UpvalueObject) Equals(o Object) bool { return u == o }
func (u *UpvalueObject) Clone() Object       { return u }

func (u *UpvalueObject) Blacken(enqueue func(Object)) {
	v := u.Get()
	if v.Kind == Obj && v.Object != nil {
		enqueue(v.Object)
	}
}

// IsOpen reports whether the upvalue still points into a live frame.
func (u *UpvalueObject) IsOpen() bool { return u.Location != nil }

// Get reads through the upvalue regardless of open/closed state.
func (u *UpvalueObject) Get() Value {
	if u.Location != nil {
		return *u.Location
	}
	return u.Closed
}

// Set writes through the upvalue regardless of open/closed state.
func (u *UpvalueObject) Set(v Value) {
	if u.Location != nil {
		*u.Location = v
		return
	}
	u.Closed = v
}

// Close converts an open upvalue to closed, copying its current slot
// value into Closed and severing Location (spec.md §4.9 "Upvalue
// open->closed transition").
func (u *UpvalueObject) Close() {
	if u.Location == nil {
		return
	}
	u.Closed = *u.Location
	u.Location = nil
}
