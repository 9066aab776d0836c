package vm

import (
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/value"
)

// makeClosure implements CLOSURE: it reads the N trailing synthetic
// UPVALUE_PAIR instructions compileFunctionDecl/compileModuleDecl/Lambda
// emitted right after this one, capturing each by address into an open
// upvalue (if it isn't already open) or by copying the enclosing
// closure's own upvalue pointer.
func (v *VM) makeClosure(ins bytecode.Instruction) {
	fn := v.chunk().Constants[ins.Args[0]].Object.(*value.FunctionObject)
	cl := value.NewClosure(fn)
	n := int(ins.Args[1])
	for i := 0; i < n; i++ {
		pair := v.fetch()
		if pair.Args[0] == 1 {
			cl.Upvalues[i] = v.captureUpvalue(v.currentFrame().base + int(pair.Args[1]))
		} else {
			cl.Upvalues[i] = v.currentFrame().closure.Upvalues[pair.Args[1]]
		}
	}
	v.track(cl)
	v.push(value.NewObject(cl))
}

// captureUpvalue returns the existing open upvalue for stack slot idx, or
// opens a fresh one pointing directly into the stack (spec.md §4.9
// "Upvalue open->closed transition").
func (v *VM) captureUpvalue(idx int) *value.UpvalueObject {
	for i, existing := range v.openIdx {
		if existing == idx {
			return v.openUpvals[i]
		}
	}
	uv := value.NewOpenUpvalue(&v.stack[idx])
	v.track(uv)
	v.openUpvals = append(v.openUpvals, uv)
	v.openIdx = append(v.openIdx, idx)
	return uv
}

// closeUpvalues closes every open upvalue at or above stack index fromIdx
// (called when a scope or call frame whose locals start there ends), and
// drops them from the VM's open set.
func (v *VM) closeUpvalues(fromIdx int) {
	write := 0
	for i, idx := range v.openIdx {
		if idx >= fromIdx {
			v.openUpvals[i].Close()
			continue
		}
		v.openUpvals[write] = v.openUpvals[i]
		v.openIdx[write] = idx
		write++
	}
	v.openUpvals = v.openUpvals[:write]
	v.openIdx = v.openIdx[:write]
}
