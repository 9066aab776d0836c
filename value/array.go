package value

import "strings"

// ArrayObject is an ordered, mutable sequence of Value.
type ArrayObject struct {
	Header
	Elements []Value
}

func NewArray(elems []Value) *ArrayObject {
	return &ArrayObject{Elements: elems}
}

func (a *ArrayObject) ObjKind() ObjectKind { return KArray }

func (a *ArrayObject) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		if e.Kind == Obj {
			if s, ok := e.Object.(*StringObject); ok {
				b.WriteByte('"')
				b.WriteString(s.String())
				b.WriteByte('"')
				continue
			}
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (a *ArrayObject) ByteSize() int { return len(a.Elements)*48 + 32 }

func (a *ArrayObject) Equals(o Object) bool {
	other, ok := o.(*ArrayObject)
	if !ok || len(a.Elements) != len(other.Elements) {
		return false
	}
	for i := range a.Elements {
		if !a.Elements[i].Equals(other.Elements[i]) {
			return false
		}
	}
	return true
}

func (a *ArrayObject) Clone() Object {
	cp := make([]Value, len(a.Elements))
	for i, e := range a.Elements {
		cp[i] = e.Clone()
	}
	return &ArrayObject{Elements: cp}
}

// Blacken enqueues every element object reference for GC tracing.
func (a *ArrayObject) Blacken(enqueue func(Object)) {
	for _, e := range a.Elements {
		if e.Kind == Obj && e.Object != nil {
			enqueue(e.Object)
		}
	}
}

// Get returns the element at i with negative-index normalization.
func (a *ArrayObject) Get(i int64) (Value, bool) {
	idx, ok := NormalizeIndex(i, len(a.Elements))
	if !ok {
		return Value{}, false
	}
	return a.Elements[idx], true
}

// Set writes the element at i with negative-index normalization.
func (a *ArrayObject) Set(i int64, v Value) bool {
	idx, ok := NormalizeIndex(i, len(a.Elements))
	if !ok {
		return false
	}
	a.Elements[idx] = v
	return true
}
