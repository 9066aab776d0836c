package value

// ObjectKind discriminates the heap Object variants of spec.md §3.
type ObjectKind byte

const (
	KString ObjectKind = iota
	KArray
	KDict
	KStruct
	KFunction
	KClosure
	KUpvalue
	KNative
	KClass
	KBoundMethod
	KEnum
	KModule
	KReference
	KInstance
)

// Object is implemented by every heap-allocated CynicScript value. It is
// the capability-trait half of the Design Notes' "virtual dispatch
// across object kinds" tradeoff (spec.md §9): each concrete type
// implements these directly rather than going through a single
// discriminated-union match, because the object variants here are
// heterogeneous enough (string buffers vs. bytecode functions vs. class
// member tables) that per-kind structs read more clearly than one giant
// tagged struct would.
type Object interface {
	ObjKind() ObjectKind
	String() string
	Equals(Object) bool
	Clone() Object
	ByteSize() int

	// GC hooks (spec.md §4.8).
	Mark()
	Unmark()
	Marked() bool
	Blacken(enqueue func(Object))

	// Allocator object-chain linkage (spec.md §3 "object chain").
	Next() Object
	SetNext(Object)

	// Tracked reports whether the allocator has already linked this
	// object onto its object chain, so a second Track call (e.g. a
	// native function returning one of its own, already-heap-resident
	// arguments back out through vm.callNative) is a safe no-op instead
	// of splicing the chain into a cycle.
	Tracked() bool
	SetTracked(bool)
}

// Header is embedded by every concrete Object to supply the GC and
// object-chain bookkeeping uniformly, the way the teacher's Debugger and
// StackFrame types share small embeddable pieces of state rather than
// repeating fields. Concrete types still implement ObjKind/String/
// Equals/Clone/ByteSize/Blacken themselves.
type Header struct {
	marked  bool
	next    Object
	tracked bool
}

func (h *Header) Mark()            { h.marked = true }
func (h *Header) Unmark()          { h.marked = false }
func (h *Header) Marked() bool     { return h.marked }
func (h *Header) Next() Object     { return h.next }
func (h *Header) SetNext(o Object) { h.next = o }
func (h *Header) Tracked() bool    { return h.tracked }
func (h *Header) SetTracked(t bool) { h.tracked = t }
