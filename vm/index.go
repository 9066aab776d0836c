package vm

import (
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/value"
)

// getIndex implements GET_INDEX over arrays, strings, and dicts; negative
// array/string indices normalize Python-style via value.NormalizeIndex.
func (v *VM) getIndex() {
	idx, recv := v.pop(), v.pop()
	if recv.Kind != value.Obj || recv.Object == nil {
		panic(v.runtimeError("cannot index a non-object value"))
	}
	switch obj := recv.Object.(type) {
	case *value.ArrayObject:
		i, ok := indexArg(idx)
		if !ok {
			panic(v.runtimeError("array index must be an integer"))
		}
		elem, ok := obj.Get(i)
		if !ok {
			panic(v.runtimeError("array index %d out of range", i))
		}
		v.push(elem)
	case *value.StringObject:
		i, ok := indexArg(idx)
		if !ok {
			panic(v.runtimeError("string index must be an integer"))
		}
		ch, ok := obj.Index(i)
		if !ok {
			panic(v.runtimeError("string index %d out of range", i))
		}
		v.push(value.NewObject(v.track(ch)))
	case *value.DictObject:
		val, ok := obj.Get(idx)
		if !ok {
			panic(v.runtimeError("key %s not found in dict", idx.String()))
		}
		v.push(val)
	default:
		panic(v.runtimeError("value is not indexable"))
	}
}

// setIndex implements SET_INDEX over arrays and dicts (strings are
// immutable, per spec.md §3, so assigning through a string index is a
// runtime error).
func (v *VM) setIndex() {
	idx, recv, val := v.pop(), v.pop(), v.pop()
	if recv.Kind != value.Obj || recv.Object == nil {
		panic(v.runtimeError("cannot index-assign a non-object value"))
	}
	switch obj := recv.Object.(type) {
	case *value.ArrayObject:
		i, ok := indexArg(idx)
		if !ok {
			panic(v.runtimeError("array index must be an integer"))
		}
		if !obj.Set(i, val) {
			panic(v.runtimeError("array index %d out of range", i))
		}
	case *value.DictObject:
		obj.Set(idx, val)
	default:
		panic(v.runtimeError("value does not support index assignment"))
	}
	v.push(val)
}

func indexArg(v value.Value) (int64, bool) {
	if v.Kind != value.I64 {
		return 0, false
	}
	return v.I64, true
}

// getProperty implements GET_PROPERTY across instances (self then
// parents via ClassObject.FindMethod/FindField), classes (static member
// access), modules, and enums.
func (v *VM) getProperty(name string) {
	recv := v.pop()
	if recv.Kind != value.Obj || recv.Object == nil {
		panic(v.runtimeError("cannot access property %q of a non-object value", name))
	}
	switch obj := recv.Object.(type) {
	case *baseView:
		if m, ok := findMethodInParents(obj.startAt, name); ok {
			bm := value.NewBoundMethod(obj.instance, m)
			v.push(value.NewObject(v.track(bm)))
			return
		}
		if fv, ok := findFieldInParents(obj.startAt, name); ok {
			v.push(fv)
			return
		}
		panic(v.runtimeError("base has no property %q", name))
	case *value.InstanceObject:
		if fv, ok := obj.Get(name); ok {
			v.push(fv)
			return
		}
		if m, ok := obj.Class.FindMethod(name); ok {
			bm := value.NewBoundMethod(obj, m)
			v.push(value.NewObject(v.track(bm)))
			return
		}
		if fv, ok := obj.Class.FindField(name); ok {
			v.push(fv)
			return
		}
		panic(v.runtimeError("%s has no property %q", obj.Class.Name, name))
	case *value.ClassObject:
		if fv, ok := obj.FindField(name); ok {
			v.push(fv)
			return
		}
		if m, ok := obj.FindMethod(name); ok {
			v.push(value.NewObject(m))
			return
		}
		if e, ok := obj.Enums[name]; ok {
			v.push(value.NewObject(e))
			return
		}
		panic(v.runtimeError("class %s has no static member %q", obj.Name, name))
	case *value.ModuleObject:
		fv, ok := obj.Get(name)
		if !ok {
			panic(v.runtimeError("module %s has no export %q", obj.Name, name))
		}
		v.push(fv)
	case *value.EnumObject:
		fv, ok := obj.Get(name)
		if !ok {
			panic(v.runtimeError("enum %s has no member %q", obj.Name, name))
		}
		v.push(fv)
	case *value.StructObject:
		fv, ok := obj.Get(name)
		if !ok {
			panic(v.runtimeError("struct has no field %q", name))
		}
		v.push(fv)
	default:
		panic(v.runtimeError("value has no property %q", name))
	}
}

// setProperty implements SET_PROPERTY over instances and structs;
// classes/modules/enums are immutable from the outside once built.
func (v *VM) setProperty(name string) {
	recv, val := v.pop(), v.pop()
	if recv.Kind != value.Obj || recv.Object == nil {
		panic(v.runtimeError("cannot set property %q of a non-object value", name))
	}
	switch obj := recv.Object.(type) {
	case *value.InstanceObject:
		obj.Set(name, val)
	case *value.StructObject:
		obj.Set(name, val)
	default:
		panic(v.runtimeError("value does not support property assignment"))
	}
	v.push(val)
}

// refIndex implements REF_INDEX_GLOBAL/REF_INDEX_LOCAL/REF_INDEX_UPVALUE:
// build a live reference into one element of an array addressed through a
// global/local/upvalue slot (the only receiver shapes compiler.compileReference
// ever emits these opcodes for).
func (v *VM) refIndex(ins bytecode.Instruction) {
	idxVal := v.pop()
	i, ok := indexArg(idxVal)
	if !ok {
		panic(v.runtimeError("reference index must be an integer"))
	}

	var recv value.Value
	switch ins.Op {
	case bytecode.REF_INDEX_GLOBAL:
		name := v.constString(ins.Args[0])
		recv = v.globals[name]
	case bytecode.REF_INDEX_LOCAL:
		recv = v.stack[v.currentFrame().base+int(ins.Args[0])]
	case bytecode.REF_INDEX_UPVALUE:
		recv = v.currentFrame().closure.Upvalues[ins.Args[0]].Get()
	}

	arr, ok := recv.Object.(*value.ArrayObject)
	if recv.Kind != value.Obj || !ok {
		panic(v.runtimeError("reference index receiver is not an array"))
	}
	ref := v.track(value.NewReference(value.NewArraySlot(arr, i))).(*value.ReferenceObject)
	v.push(value.NewObject(ref))
}
