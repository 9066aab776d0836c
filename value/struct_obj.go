package value

import "strings"

// StructObject is an anonymous, string-keyed field record produced by a
// `struct { field: value, ... }` literal. FieldOrder preserves
// declaration order for printing and iteration.
type StructObject struct {
	Header
	Fields     map[string]Value
	FieldOrder []string
}

func NewStruct() *StructObject {
	return &StructObject{Fields: make(map[string]Value)}
}

func (s *StructObject) ObjKind() ObjectKind { return KStruct }

func (s *StructObject) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range s.FieldOrder {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		v := s.Fields[name]
		if str, ok := v.Object.(*StringObject); ok && v.Kind == Obj {
			b.WriteByte('"')
			b.WriteString(str.String())
			b.WriteByte('"')
			continue
		}
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (s *StructObject) ByteSize() int { return len(s.FieldOrder)*64 + 32 }

func (s *StructObject) Equals(o Object) bool {
	other, ok := o.(*StructObject)
	if !ok || len(s.FieldOrder) != len(other.FieldOrder) {
		return false
	}
	for name, v := range s.Fields {
		ov, ok := other.Fields[name]
		if !ok || !v.Equals(ov) {
			return false
		}
	}
	return true
}

func (s *StructObject) Clone() Object {
	cp := NewStruct()
	cp.FieldOrder = append([]string(nil), s.FieldOrder...)
	for k, v := range s.Fields {
		cp.Fields[k] = v.Clone()
	}
	return cp
}

func (s *StructObject) Blacken(enqueue func(Object)) {
	for _, v := range s.Fields {
		if v.Kind == Obj && v.Object != nil {
			enqueue(v.Object)
		}
	}
}

// Set adds or overwrites a field, recording first-insertion order.
func (s *StructObject) Set(name string, v Value) {
	if _, exists := s.Fields[name]; !exists {
		s.FieldOrder = append(s.FieldOrder, name)
	}
	s.Fields[name] = v
}

// Get reads a field.
func (s *StructObject) Get(name string) (Value, bool) {
	v, ok := s.Fields[name]
	return v, ok
}
