package vm

import (
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/value"
)

// makeClass implements CLASS: the class constant sits on top of the
// stack with its N parent values (already resolved name reads) beneath
// it, pushed in declaration order by compiler.compileClassDecl.
func (v *VM) makeClass(ins bytecode.Instruction) {
	n := int(ins.Args[1])
	classVal := v.pop()
	class, ok := classVal.Object.(*value.ClassObject)
	if classVal.Kind != value.Obj || !ok {
		panic(v.runtimeError("CLASS operand is not a class constant"))
	}
	base := v.sp - n
	parents := make([]*value.ClassObject, n)
	for i := 0; i < n; i++ {
		p, ok := v.stack[base+i].Object.(*value.ClassObject)
		if v.stack[base+i].Kind != value.Obj || !ok {
			panic(v.runtimeError("parent of class %s is not a class", class.Name))
		}
		parents[i] = p
	}
	v.sp = base
	class.Parents = parents
	v.push(value.NewObject(class))
}

// makeModule implements MODULE: the module body's zero-arg function was
// just called and returned a struct of its exported top-level bindings
// (compiler.compileModuleBody); wrap that into a ModuleObject.
func (v *VM) makeModule(name string) {
	result := v.pop()
	mod := value.NewModule(name)
	if result.Kind == value.Obj {
		if s, ok := result.Object.(*value.StructObject); ok {
			for _, fname := range s.FieldOrder {
				val, _ := s.Get(fname)
				mod.Export(fname, val)
			}
		}
	}
	v.track(mod)
	v.push(value.NewObject(mod))
}
