// Package value implements the CynicScript runtime value representation:
// the tagged scalar Value union of spec.md §3, and (in the sibling files
// of this package) the heap Object hierarchy it can point at. Values are
// small, fixed-size structs copied by assignment, the way the teacher's
// VM pushes/pops bare Go `interface{}` slots — generalized here into a
// real tagged union so numeric kinds, booleans, and null don't each pay
// for a heap-boxed `interface{}`.
package value

import (
	"fmt"
	"math"
)

// Kind is the Value's scalar tag.
type Kind byte

const (
	Null Kind = iota
	I64
	F64
	Bool
	Obj
)

// Value is the tagged union every VM stack slot, local, global, upvalue,
// array element, dict key/value, and struct field holds.
type Value struct {
	Kind    Kind
	I64     int64
	F64     float64
	Bool    bool
	Object  Object
	Mutable bool
}

// NewNull, NewI64, ... construct Value in each scalar kind. Mutable
// defaults to true; callers that need an immutable binding set Mutable
// false explicitly once bound (symtab tracks mutability separately from
// the Value itself, which is what actually gets copied onto the stack).
func NewNull() Value             { return Value{Kind: Null, Mutable: true} }
func NewI64(v int64) Value       { return Value{Kind: I64, I64: v, Mutable: true} }
func NewF64(v float64) Value     { return Value{Kind: F64, F64: v, Mutable: true} }
func NewBool(v bool) Value       { return Value{Kind: Bool, Bool: v, Mutable: true} }
func NewObject(o Object) Value   { return Value{Kind: Obj, Object: o, Mutable: true} }

// IsNull, IsNumeric, IsTruthy classify a Value for the compiler/VM's
// control-flow and arithmetic dispatch.
func (v Value) IsNull() bool { return v.Kind == Null }

func (v Value) IsNumeric() bool { return v.Kind == I64 || v.Kind == F64 }

// IsTruthy implements the VM's boolean-coercion rule for JUMP_IF_FALSE
// and logical operators: null and boolean false are falsy, every other
// value (including 0 and "") is truthy, matching the original's dynamic
// "everything but null/false is truthy" semantics.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case Null:
		return false
	case Bool:
		return v.Bool
	default:
		return true
	}
}

// AsF64 widens an I64 or F64 Value to float64; panics if called on a
// non-numeric Value (callers must check IsNumeric first).
func (v Value) AsF64() float64 {
	switch v.Kind {
	case I64:
		return float64(v.I64)
	case F64:
		return v.F64
	default:
		panic(fmt.Sprintf("AsF64 on non-numeric value kind %d", v.Kind))
	}
}

// Equals implements spec.md §3's numeric-promoting, null-is-only-equal-
// to-null, object-equality-delegates equality rule.
func (v Value) Equals(o Value) bool {
	if v.Kind == Null || o.Kind == Null {
		return v.Kind == Null && o.Kind == Null
	}
	if v.IsNumeric() && o.IsNumeric() {
		return v.AsF64() == o.AsF64()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Bool:
		return v.Bool == o.Bool
	case Obj:
		if v.Object == nil || o.Object == nil {
			return v.Object == o.Object
		}
		return v.Object.Equals(o.Object)
	}
	return false
}

// Clone performs the deep copy spec.md §4.7 requires: scalars copy
// trivially; object values delegate to the object's own Clone, which
// allocates a fresh heap object (the allocator registers it like any
// other creation).
func (v Value) Clone() Value {
	if v.Kind == Obj && v.Object != nil {
		cloned := v.Object.Clone()
		return Value{Kind: Obj, Object: cloned, Mutable: v.Mutable}
	}
	return v
}

// Hash produces a stable hash for use as a dict key. Only values the
// language allows as dict keys (scalars and strings) are expected here;
// the syntax-check pass rejects non-constant dict keys before this
// matters at compile time, but the VM's dict object still needs a hash
// for any hashable runtime value used as a key via computed access.
func (v Value) Hash() uint64 {
	switch v.Kind {
	case Null:
		return 0x9e3779b97f4a7c15
	case Bool:
		if v.Bool {
			return 1
		}
		return 2
	case I64:
		return hashU64(uint64(v.I64))
	case F64:
		return hashU64(math.Float64bits(v.F64))
	case Obj:
		if s, ok := v.Object.(*StringObject); ok {
			return hashString(s.Runes)
		}
		// Non-string heap values (arrays, structs, closures, ...) hash by
		// identity: two distinct objects never collide as dict keys even
		// if structurally equal, matching reference-typed key semantics.
		return hashString([]rune(fmt.Sprintf("%p", v.Object)))
	}
	return 0
}

func hashU64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

func hashString(runes []rune) uint64 {
	var h uint64 = 14695981039346656037
	for _, r := range runes {
		h ^= uint64(r)
		h *= 1099511628211
	}
	return h
}

// String renders a Value the way the language's println-style natives
// print it.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	case I64:
		return fmt.Sprintf("%d", v.I64)
	case F64:
		return fmt.Sprintf("%g", v.F64)
	case Obj:
		if v.Object == nil {
			return "null"
		}
		return v.Object.String()
	}
	return "<?>"
}
