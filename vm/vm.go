// Package vm implements the CynicScript bytecode interpreter: a value
// stack, a call-frame stack, opcode dispatch, and the closure/class/
// native calling conventions (spec.md §4.9 "Execution model"). It
// mirrors the teacher's own VM loop shape (a big switch over Opcode
// driven by a frame-relative instruction pointer) generalized to this
// spec's richer object model: closures with upvalues, classes with
// multi-inheritance, and a first-class reference type.
package vm

import (
	"fmt"

	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/config"
	"github.com/kristofer/cynicscript/diag"
	"github.com/kristofer/cynicscript/gc"
	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// frame is one active call's bookkeeping: its closure, instruction
// pointer, and the base stack index its locals start at. ctorResult is
// non-nil only for a frame running a constructor body, in which case
// RETURN substitutes it for whatever the constructor body returned (spec.md
// §3 "new always yields the instance, not the constructor's return
// value").
type frame struct {
	closure    *value.ClosureObject
	ip         int
	base       int
	calleeSlot int // stack index the callee value (and thus the whole call window) started at
	ctorResult *value.InstanceObject
}

// VM executes one program's compiled entry function to completion (or
// until a runtime diagnostic aborts it).
type VM struct {
	stack      []value.Value
	sp         int
	frames     []frame
	fp         int
	globals    map[string]value.Value
	openUpvals []*value.UpvalueObject // live open upvalues, unordered
	openIdx    []int                  // parallel stack-index for each entry
	alloc      *gc.Allocator
	bag        *diag.Bag
	opts       config.Options
	lastToken  token.Token
}

// New constructs a VM with opts' stack/frame/GC sizing.
func New(opts config.Options, bag *diag.Bag) *VM {
	v := &VM{
		stack:   make([]value.Value, opts.StackSize),
		frames:  make([]frame, opts.FramesMax),
		globals: make(map[string]value.Value),
		opts:    opts,
		bag:     bag,
	}
	v.alloc = gc.NewAllocator(v, opts.InitialGCThreshold, opts.GCHeapGrowFactor, opts.GCStressMode)
	return v
}

// GCRoots implements gc.RootProvider: every live stack slot, global, and
// open upvalue is a root, plus every in-flight frame's closure (so its
// function constant pool and captured upvalues survive collection).
func (v *VM) GCRoots() []value.Value {
	roots := make([]value.Value, 0, v.sp+len(v.globals)+v.fp)
	roots = append(roots, v.stack[:v.sp]...)
	for _, g := range v.globals {
		roots = append(roots, g)
	}
	for i := 0; i < v.fp; i++ {
		roots = append(roots, value.NewObject(v.frames[i].closure))
	}
	for _, uv := range v.openUpvals {
		roots = append(roots, value.NewObject(uv))
	}
	return roots
}

// track registers a freshly allocated heap object with the collector.
func (v *VM) track(o value.Object) value.Object {
	v.alloc.Track(o)
	return o
}

func (v *VM) push(val value.Value) {
	if v.sp >= len(v.stack) {
		panic(v.runtimeError("stack overflow"))
	}
	v.stack[v.sp] = val
	v.sp++
}

func (v *VM) pop() value.Value {
	v.sp--
	return v.stack[v.sp]
}

func (v *VM) peek(distance int) value.Value {
	return v.stack[v.sp-1-distance]
}

// runtimeError formats a *diag.Diagnostic-shaped error string tied to
// the currently executing instruction's origin token, then also records
// it in the VM's diag.Bag so Run's caller can render it uniformly with
// compile-time diagnostics.
func (v *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	v.bag.Errorf(diag.StageRun, v.lastToken, "%s", msg)
	return fmt.Errorf("%s", msg)
}

// Run executes fn (the program's implicit top-level function, or any
// other zero-arg FunctionObject) to completion, returning its final
// return value.
func (v *VM) Run(fn *value.FunctionObject) (value.Value, error) {
	closure := value.NewClosure(fn)
	v.track(closure)
	v.push(value.NewObject(closure))
	if err := v.callValue(value.NewObject(closure), 0); err != nil {
		return value.NewNull(), err
	}
	return v.runLoop()
}

// DefineGlobal installs val under name in the VM's global table before
// Run starts, the hook a host uses to wire stdlib natives (or any other
// host-provided value) into a program's global scope.
func (v *VM) DefineGlobal(name string, val value.Value) {
	if val.Kind == value.Obj && val.Object != nil {
		v.track(val.Object)
	}
	v.globals[name] = val
}

func (v *VM) currentFrame() *frame { return &v.frames[v.fp-1] }

func (v *VM) chunk() *value.Chunk { return v.currentFrame().closure.Function.Chunk }

func (v *VM) fetch() bytecode.Instruction {
	f := v.currentFrame()
	ins := f.closure.Function.Chunk.Code[f.ip]
	v.lastToken = f.closure.Function.Chunk.Tokens[f.ip]
	f.ip++
	return ins
}

// runLoop is the main bytecode dispatch loop; it returns when the
// outermost frame executes RETURN.
func (v *VM) runLoop() (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	baseFP := v.fp - 1
	for {
		ins := v.fetch()
		switch ins.Op {
		case bytecode.CONSTANT:
			v.push(v.chunk().Constants[ins.Args[0]])
		case bytecode.NULL:
			v.push(value.NewNull())
		case bytecode.POP:
			v.pop()

		case bytecode.ADD:
			v.binaryArith(ins.Op)
		case bytecode.SUB, bytecode.MUL, bytecode.DIV, bytecode.MOD,
			bytecode.BIT_AND, bytecode.BIT_OR, bytecode.BIT_XOR,
			bytecode.BIT_LEFT_SHIFT, bytecode.BIT_RIGHT_SHIFT,
			bytecode.LESS, bytecode.GREATER:
			v.binaryArith(ins.Op)
		case bytecode.NOT:
			v.push(value.NewBool(!v.pop().IsTruthy()))
		case bytecode.MINUS:
			v.unaryMinus()
		case bytecode.BIT_NOT:
			a := v.pop()
			v.push(value.NewI64(^a.I64))
		case bytecode.EQUAL:
			b, a := v.pop(), v.pop()
			v.push(value.NewBool(a.Equals(b)))
		case bytecode.FACTORIAL:
			v.factorial()

		case bytecode.JUMP:
			v.currentFrame().ip += int(ins.Args[0])
		case bytecode.JUMP_IF_FALSE:
			if !v.peek(0).IsTruthy() {
				v.currentFrame().ip += int(ins.Args[0])
			}
		case bytecode.LOOP:
			v.currentFrame().ip -= int(ins.Args[0])

		case bytecode.SET_GLOBAL:
			name := v.constString(ins.Args[0])
			v.globals[name] = v.peek(0)
		case bytecode.GET_GLOBAL:
			name := v.constString(ins.Args[0])
			val, ok := v.globals[name]
			if !ok {
				panic(v.runtimeError("undefined global %q", name))
			}
			v.push(val)
		case bytecode.SET_LOCAL:
			v.stack[v.currentFrame().base+int(ins.Args[0])] = v.peek(0)
		case bytecode.GET_LOCAL:
			v.push(v.stack[v.currentFrame().base+int(ins.Args[0])])
		case bytecode.SET_UPVALUE:
			v.currentFrame().closure.Upvalues[ins.Args[0]].Set(v.peek(0))
		case bytecode.GET_UPVALUE:
			v.push(v.currentFrame().closure.Upvalues[ins.Args[0]].Get())
		case bytecode.CLOSE_UPVALUE:
			v.closeUpvalues(v.currentFrame().base + int(ins.Args[0]))
			v.pop()

		case bytecode.REF_GLOBAL:
			name := v.constString(ins.Args[0])
			if _, ok := v.globals[name]; !ok {
				v.globals[name] = value.NewNull()
			}
			ref := v.track(value.NewReference(v.globalSlot(name))).(*value.ReferenceObject)
			v.push(value.NewObject(ref))
		case bytecode.REF_LOCAL:
			idx := v.currentFrame().base + int(ins.Args[0])
			ref := v.track(value.NewReference(value.NewDirectSlot(&v.stack[idx]))).(*value.ReferenceObject)
			v.push(value.NewObject(ref))
		case bytecode.REF_UPVALUE:
			uv := v.currentFrame().closure.Upvalues[ins.Args[0]]
			ref := v.track(value.NewReference(value.NewUpvalueSlot(uv))).(*value.ReferenceObject)
			v.push(value.NewObject(ref))
		case bytecode.REF_INDEX_GLOBAL, bytecode.REF_INDEX_LOCAL, bytecode.REF_INDEX_UPVALUE:
			v.refIndex(ins)

		case bytecode.ARRAY:
			n := int(ins.Args[0])
			elems := make([]value.Value, n)
			copy(elems, v.stack[v.sp-n:v.sp])
			v.sp -= n
			v.push(value.NewObject(v.track(value.NewArray(elems))))
		case bytecode.DICT:
			n := int(ins.Args[0])
			d := value.NewDict()
			base := v.sp - 2*n
			for i := 0; i < n; i++ {
				d.Set(v.stack[base+2*i], v.stack[base+2*i+1])
			}
			v.sp = base
			v.push(value.NewObject(v.track(d)))
		case bytecode.STRUCT:
			n := int(ins.Args[0])
			s := value.NewStruct()
			base := v.sp - 2*n
			for i := 0; i < n; i++ {
				key := v.stack[base+2*i]
				name := ""
				if key.Kind == value.Obj {
					if so, ok := key.Object.(*value.StringObject); ok {
						name = so.String()
					}
				}
				s.Set(name, v.stack[base+2*i+1])
			}
			v.sp = base
			v.push(value.NewObject(v.track(s)))
		case bytecode.GET_INDEX:
			v.getIndex()
		case bytecode.SET_INDEX:
			v.setIndex()
		case bytecode.GET_PROPERTY:
			v.getProperty(v.constString(ins.Args[0]))
		case bytecode.SET_PROPERTY:
			v.setProperty(v.constString(ins.Args[0]))
		case bytecode.GET_BASE:
			v.push(v.getBase())

		case bytecode.CALL:
			argc := int(ins.Args[0])
			callee := v.peek(argc)
			if err := v.callValue(callee, argc); err != nil {
				panic(err)
			}
		case bytecode.RETURN:
			result := v.pop()
			if ctor := v.currentFrame().ctorResult; ctor != nil {
				result = value.NewObject(ctor)
			}
			v.closeUpvalues(v.currentFrame().base)
			v.sp = v.currentFrame().calleeSlot
			v.fp--
			if v.fp == baseFP {
				return result, nil
			}
			v.push(result)
		case bytecode.CLOSURE:
			v.makeClosure(ins)

		case bytecode.CLASS:
			v.makeClass(ins)
		case bytecode.MODULE:
			v.makeModule(v.constString(ins.Args[0]))
		case bytecode.RESET:
			// Debug-only opcode: no-op at the interpreter level (kept for
			// bytecode-dump symmetry with the teacher's RESET instruction).

		case bytecode.APPREGATE_RESOLVE:
			v.resolveAggregate(ins)
		case bytecode.APPREGATE_RESOLVE_VAR_ARG:
			v.resolveVarArgAggregate(ins)

		default:
			panic(v.runtimeError("unimplemented opcode %s", ins.Op))
		}
	}
}

func (v *VM) constString(idx int32) string {
	c := v.chunk().Constants[idx]
	if c.Kind == value.Obj {
		if s, ok := c.Object.(*value.StringObject); ok {
			return s.String()
		}
	}
	return ""
}

// globalSlot returns a *value.Value pointer into the globals map's
// backing storage is not possible directly (Go maps don't expose
// pointers to values), so a reference to a global is backed by a small
// indirection object that reads/writes through the VM's map via name.
func (v *VM) globalSlot(name string) value.Slot {
	return globalRefSlot{vm: v, name: name}
}

type globalRefSlot struct {
	vm   *VM
	name string
}

func (s globalRefSlot) Load() value.Value { return s.vm.globals[s.name] }
func (s globalRefSlot) Store(val value.Value) { s.vm.globals[s.name] = val }
