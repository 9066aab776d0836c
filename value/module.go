package value

// ModuleObject is a named namespace of exported bindings (spec.md §3
// "module"), populated by running the module body in its own scope and
// then exporting every top-level binding under ModuleDecl.Name.Export.
type ModuleObject struct {
	Header
	Name    string
	Exports map[string]Value
	Order   []string
}

func NewModule(name string) *ModuleObject {
	return &ModuleObject{Name: name, Exports: make(map[string]Value)}
}

func (m *ModuleObject) ObjKind() ObjectKind { return KModule }
func (m *ModuleObject) String() string      { return "<module " + m.Name + ">" }
func (m *ModuleObject) ByteSize() int       { return len(m.Order)*48 + 32 }
func (m *ModuleObject) Equals(o Object) bool { return m == o }
func (m *ModuleObject) Clone() Object       { return m }

func (m *ModuleObject) Blacken(enqueue func(Object)) {
	for _, v := range m.Exports {
		if v.Kind == Obj && v.Object != nil {
			enqueue(v.Object)
		}
	}
}

// Export adds or overwrites a top-level binding, recording first
// declaration order.
func (m *ModuleObject) Export(name string, v Value) {
	if _, exists := m.Exports[name]; !exists {
		m.Order = append(m.Order, name)
	}
	m.Exports[name] = v
}

// Get reads an exported binding.
func (m *ModuleObject) Get(name string) (Value, bool) {
	v, ok := m.Exports[name]
	return v, ok
}
