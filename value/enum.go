package value

// EnumObject is a named set of constant members (spec.md §3 "enum"),
// each member an arbitrary constant Value (not necessarily integral —
// the original source allows string- and float-valued members too).
type EnumObject struct {
	Header
	Name    string
	Members map[string]Value
	Order   []string
}

func NewEnum(name string) *EnumObject {
	return &EnumObject{Name: name, Members: make(map[string]Value)}
}

func (e *EnumObject) ObjKind() ObjectKind { return KEnum }
func (e *EnumObject) String() string      { return "<enum " + e.Name + ">" }
func (e *EnumObject) ByteSize() int       { return len(e.Order)*48 + 32 }
func (e *EnumObject) Equals(o Object) bool { return e == o }
func (e *EnumObject) Clone() Object       { return e }

func (e *EnumObject) Blacken(enqueue func(Object)) {
	for _, v := range e.Members {
		if v.Kind == Obj && v.Object != nil {
			enqueue(v.Object)
		}
	}
}

// Set adds a member, recording declaration order.
func (e *EnumObject) Set(name string, v Value) {
	if _, exists := e.Members[name]; !exists {
		e.Order = append(e.Order, name)
	}
	e.Members[name] = v
}

// Get reads a member.
func (e *EnumObject) Get(name string) (Value, bool) {
	v, ok := e.Members[name]
	return v, ok
}
