package value

import "strings"

// ClassObject is a class definition: its name, its ordered parent list
// (multi-inheritance, spec.md §3 "a class may inherit from more than one
// parent"), its member closures and constant fields, and its
// constructors keyed by arity (overload resolution happens by arity at
// call time, mirroring ordinary function overloading).
type ClassObject struct {
	Header
	Name         string
	Parents      []*ClassObject
	Methods      map[string]*ClosureObject
	Fields       map[string]Value
	FieldOrder   []string
	Constructors map[int]*ClosureObject
	Enums        map[string]*EnumObject
}

func NewClass(name string) *ClassObject {
	return &ClassObject{
		Name:         name,
		Methods:      make(map[string]*ClosureObject),
		Fields:       make(map[string]Value),
		Constructors: make(map[int]*ClosureObject),
		Enums:        make(map[string]*EnumObject),
	}
}

func (c *ClassObject) ObjKind() ObjectKind { return KClass }
func (c *ClassObject) String() string      { return "<class " + c.Name + ">" }
func (c *ClassObject) ByteSize() int       { return 128 + len(c.Methods)*16 }
func (c *ClassObject) Equals(o Object) bool { return c == o }
func (c *ClassObject) Clone() Object       { return c }

func (c *ClassObject) Blacken(enqueue func(Object)) {
	for _, m := range c.Methods {
		enqueue(m)
	}
	for _, ctor := range c.Constructors {
		enqueue(ctor)
	}
	for _, v := range c.Fields {
		if v.Kind == Obj && v.Object != nil {
			enqueue(v.Object)
		}
	}
	for _, p := range c.Parents {
		enqueue(p)
	}
	for _, e := range c.Enums {
		enqueue(e)
	}
}

// SetField adds or overwrites a constant field, recording first-insertion
// order for DumpState/printing.
func (c *ClassObject) SetField(name string, v Value) {
	if _, exists := c.Fields[name]; !exists {
		c.FieldOrder = append(c.FieldOrder, name)
	}
	c.Fields[name] = v
}

// FindMethod resolves name on this class, then on each parent in
// declaration order (spec.md §3 "method resolution order"), depth-first.
func (c *ClassObject) FindMethod(name string) (*ClosureObject, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	for _, p := range c.Parents {
		if m, ok := p.FindMethod(name); ok {
			return m, true
		}
	}
	return nil, false
}

// FindField resolves a constant field the same way FindMethod resolves
// methods: self first, then parents in order.
func (c *ClassObject) FindField(name string) (Value, bool) {
	if v, ok := c.Fields[name]; ok {
		return v, true
	}
	for _, p := range c.Parents {
		if v, ok := p.FindField(name); ok {
			return v, true
		}
	}
	return Value{}, false
}

// FindConstructor resolves the constructor overload matching argc,
// falling back to a parent's constructor only when this class declares
// none at all (a class that declares any constructor must match exactly).
func (c *ClassObject) FindConstructor(argc int) (*ClosureObject, bool) {
	if ctor, ok := c.Constructors[argc]; ok {
		return ctor, true
	}
	if len(c.Constructors) > 0 {
		return nil, false
	}
	for _, p := range c.Parents {
		if ctor, ok := p.FindConstructor(argc); ok {
			return ctor, true
		}
	}
	return nil, false
}

// InstanceObject is a live object of a class: its class pointer plus its
// own mutable field map (distinct from the class's constant Fields).
type InstanceObject struct {
	Header
	Class      *ClassObject
	Fields     map[string]Value
	FieldOrder []string
}

func NewInstance(class *ClassObject) *InstanceObject {
	return &InstanceObject{Class: class, Fields: make(map[string]Value)}
}

func (i *InstanceObject) ObjKind() ObjectKind { return KInstance }
func (i *InstanceObject) String() string {
	var b strings.Builder
	b.WriteString(i.Class.Name)
	b.WriteString(" instance")
	return b.String()
}
func (i *InstanceObject) ByteSize() int       { return len(i.FieldOrder)*64 + 32 }
func (i *InstanceObject) Equals(o Object) bool { return i == o }

func (i *InstanceObject) Clone() Object {
	cp := NewInstance(i.Class)
	cp.FieldOrder = append([]string(nil), i.FieldOrder...)
	for k, v := range i.Fields {
		cp.Fields[k] = v.Clone()
	}
	return cp
}

func (i *InstanceObject) Blacken(enqueue func(Object)) {
	enqueue(i.Class)
	for _, v := range i.Fields {
		if v.Kind == Obj && v.Object != nil {
			enqueue(v.Object)
		}
	}
}

// Set adds or overwrites an instance field, recording first-insertion
// order.
func (i *InstanceObject) Set(name string, v Value) {
	if _, exists := i.Fields[name]; !exists {
		i.FieldOrder = append(i.FieldOrder, name)
	}
	i.Fields[name] = v
}

// Get reads an instance field.
func (i *InstanceObject) Get(name string) (Value, bool) {
	v, ok := i.Fields[name]
	return v, ok
}

// BoundMethodObject binds a receiver instance to one of its class's
// methods, produced by GET_PROPERTY when the resolved member is callable
// (spec.md §4.5 "GET_PROPERTY").
type BoundMethodObject struct {
	Header
	Receiver *InstanceObject
	Method   *ClosureObject
}

func NewBoundMethod(recv *InstanceObject, method *ClosureObject) *BoundMethodObject {
	return &BoundMethodObject{Receiver: recv, Method: method}
}

func (b *BoundMethodObject) ObjKind() ObjectKind { return KBoundMethod }
func (b *BoundMethodObject) String() string      { return b.Method.String() }
func (b *BoundMethodObject) ByteSize() int       { return 24 }
func (b *BoundMethodObject) Equals(o Object) bool { return b == o }
func (b *BoundMethodObject) Clone() Object       { return b }

func (b *BoundMethodObject) Blacken(enqueue func(Object)) {
	enqueue(b.Receiver)
	enqueue(b.Method)
}
