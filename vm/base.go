package vm

import "github.com/kristofer/cynicscript/value"

// baseView is GET_BASE's pushed value: a transient marker meaning
// "resolve the next property access against instance's parent classes,
// not instance's own (possibly overriding) class" (spec.md §3 "base").
// It never escapes into a constant pool or onto a named binding, so it
// only needs to satisfy value.Object well enough for the GC to trace
// through it.
type baseView struct {
	value.Header
	instance *value.InstanceObject
	startAt  *value.ClassObject
}

func (b *baseView) ObjKind() value.ObjectKind { return value.KInstance }
func (b *baseView) String() string            { return "<base>" }
func (b *baseView) ByteSize() int             { return 16 }
func (b *baseView) Equals(o value.Object) bool { return b == o }
func (b *baseView) Clone() value.Object       { return b }

func (b *baseView) Blacken(enqueue func(value.Object)) {
	enqueue(b.instance)
	enqueue(b.startAt)
}

// getBase builds a baseView over the current method frame's receiver.
// Simplification: it always searches from the instance's own runtime
// class's parents, not from the specific class level the currently
// executing override was defined on, so `base` in a deep (3+ level)
// override chain resolves the same parent method at every level rather
// than the next one up. Documented in DESIGN.md.
func (v *VM) getBase() value.Value {
	this := v.stack[v.currentFrame().base]
	inst, ok := this.Object.(*value.InstanceObject)
	if this.Kind != value.Obj || !ok {
		panic(v.runtimeError("base is only valid inside a method"))
	}
	bv := &baseView{instance: inst, startAt: inst.Class}
	v.track(bv)
	return value.NewObject(bv)
}

// findInParents searches every parent of class (depth-first, declaration
// order) for a method, skipping class's own Methods map.
func findMethodInParents(class *value.ClassObject, name string) (*value.ClosureObject, bool) {
	for _, p := range class.Parents {
		if m, ok := p.FindMethod(name); ok {
			return m, true
		}
	}
	return nil, false
}

func findFieldInParents(class *value.ClassObject, name string) (value.Value, bool) {
	for _, p := range class.Parents {
		if fv, ok := p.FindField(name); ok {
			return fv, true
		}
	}
	return value.Value{}, false
}
