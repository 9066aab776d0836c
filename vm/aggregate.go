package vm

import (
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/value"
)

// sourceArray pops the aggregate/array value APPREGATE_RESOLVE(_VAR_ARG)
// unpacks, erroring if it isn't array-shaped.
func (v *VM) sourceArray() *value.ArrayObject {
	src := v.pop()
	if src.Kind != value.Obj {
		panic(v.runtimeError("cannot destructure a non-array value"))
	}
	arr, ok := src.Object.(*value.ArrayObject)
	if !ok {
		panic(v.runtimeError("cannot destructure a non-array value"))
	}
	return arr
}

// resolveAggregate implements APPREGATE_RESOLVE: unpack the top-of-stack
// array into exactly n element values, one per destructuring target
// (spec.md §3 "array destructuring").
func (v *VM) resolveAggregate(ins bytecode.Instruction) {
	arr := v.sourceArray()
	n := int(ins.Args[0])
	if len(arr.Elements) < n {
		panic(v.runtimeError("destructuring pattern expects %d element(s), got %d", n, len(arr.Elements)))
	}
	for i := 0; i < n; i++ {
		v.push(arr.Elements[i])
	}
}

// resolveVarArgAggregate implements APPREGATE_RESOLVE_VAR_ARG: unpack the
// first n elements positionally, then pack everything after into a
// trailing array bound to the pattern's `...rest` tail.
func (v *VM) resolveVarArgAggregate(ins bytecode.Instruction) {
	arr := v.sourceArray()
	n := int(ins.Args[0])
	if len(arr.Elements) < n {
		panic(v.runtimeError("destructuring pattern expects at least %d element(s), got %d", n, len(arr.Elements)))
	}
	for i := 0; i < n; i++ {
		v.push(arr.Elements[i])
	}
	rest := append([]value.Value{}, arr.Elements[n:]...)
	v.push(value.NewObject(v.track(value.NewArray(rest))))
}
