package vm

import "github.com/kristofer/cynicscript/value"

// callValue dispatches CALL (and `new`, which the compiler also emits as
// a CALL against a class value) across every callable object kind.
func (v *VM) callValue(callee value.Value, argc int) error {
	if callee.Kind != value.Obj || callee.Object == nil {
		return v.runtimeError("value is not callable")
	}
	switch c := callee.Object.(type) {
	case *value.ClosureObject:
		return v.callClosure(c, argc, nil)
	case *value.NativeObject:
		return v.callNative(c, argc)
	case *value.BoundMethodObject:
		return v.callClosure(c.Method, argc, c.Receiver)
	case *value.ClassObject:
		return v.instantiate(c, argc)
	default:
		return v.runtimeError("value is not callable")
	}
}

// callClosure pushes a new call frame for cl. receiver is non-nil only
// when calling a method/constructor (cl.Function.HasReceiver must then
// also be true); it is written into the callee's own stack slot, which
// becomes local slot 0 ("this") for the new frame (spec.md §3 "this").
func (v *VM) callClosure(cl *value.ClosureObject, argc int, receiver *value.InstanceObject) error {
	fn := cl.Function
	calleeSlot := v.sp - argc - 1

	switch fn.VarArg {
	case value.VarArgNone:
		if argc != fn.Arity {
			return v.runtimeError("%s expects %d argument(s), got %d", fn.Name, fn.Arity, argc)
		}
	case value.VarArgUnnamed:
		if argc < fn.Arity {
			return v.runtimeError("%s expects at least %d argument(s), got %d", fn.Name, fn.Arity, argc)
		}
		v.sp = calleeSlot + 1 + fn.Arity // discard surplus positional args
	case value.VarArgNamed:
		if argc < fn.Arity {
			return v.runtimeError("%s expects at least %d argument(s), got %d", fn.Name, fn.Arity, argc)
		}
		extra := append([]value.Value{}, v.stack[calleeSlot+1+fn.Arity:v.sp]...)
		v.sp = calleeSlot + 1 + fn.Arity
		v.push(value.NewObject(v.track(value.NewArray(extra))))
	}

	var base int
	if fn.HasReceiver {
		if receiver == nil {
			return v.runtimeError("%s requires a receiver", fn.Name)
		}
		v.stack[calleeSlot] = value.NewObject(receiver)
		base = calleeSlot
	} else {
		base = calleeSlot + 1
	}

	if v.fp >= len(v.frames) {
		return v.runtimeError("call stack overflow")
	}
	v.frames[v.fp] = frame{closure: cl, ip: 0, base: base, calleeSlot: calleeSlot}
	v.fp++
	return nil
}

// callNative invokes a host function, discarding the callee+args window
// and replacing it with the result (or null, if the native signals it
// produced nothing).
func (v *VM) callNative(n *value.NativeObject, argc int) error {
	calleeSlot := v.sp - argc - 1
	args := append([]value.Value{}, v.stack[calleeSlot+1:v.sp]...)
	result, ok, err := n.Fn(args, v.lastToken)
	if err != nil {
		return v.runtimeError("%s", err)
	}
	v.sp = calleeSlot
	if ok {
		if result.Kind == value.Obj && result.Object != nil {
			v.track(result.Object) // no-op if the native returned an already-tracked arg
		}
		v.push(result)
	} else {
		v.push(value.NewNull())
	}
	return nil
}

// instantiate implements `new Class(...)`: it allocates an InstanceObject
// seeded with the class's constant fields, then — if a constructor
// matching argc exists — runs it with the instance bound as `this`,
// substituting the instance for whatever the constructor body returns
// (spec.md §3 "new always yields the instance").
func (v *VM) instantiate(class *value.ClassObject, argc int) error {
	calleeSlot := v.sp - argc - 1

	inst := value.NewInstance(class)
	for _, name := range class.FieldOrder {
		inst.Set(name, class.Fields[name].Clone())
	}
	v.track(inst)

	ctor, ok := class.FindConstructor(argc)
	if !ok {
		if argc != 0 {
			return v.runtimeError("class %s has no constructor accepting %d argument(s)", class.Name, argc)
		}
		v.sp = calleeSlot
		v.push(value.NewObject(inst))
		return nil
	}

	if err := v.callClosure(ctor, argc, inst); err != nil {
		return err
	}
	v.currentFrame().ctorResult = inst
	return nil
}
