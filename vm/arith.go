package vm

import (
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/value"
)

// binaryArith implements the numeric/string/bitwise binary opcodes.
// "+" additionally overloads to string concatenation and array
// concatenation when either operand is a string or array object,
// mirroring the original language's dynamically-typed "+" operator.
func (v *VM) binaryArith(op bytecode.Opcode) {
	b, a := v.pop(), v.pop()

	if op == bytecode.ADD {
		if sa, ok := a.Object.(*value.StringObject); a.Kind == value.Obj && ok {
			if sb, ok := b.Object.(*value.StringObject); b.Kind == value.Obj && ok {
				v.push(value.NewObject(v.track(sa.Concat(sb))))
				return
			}
		}
		if aa, ok := a.Object.(*value.ArrayObject); a.Kind == value.Obj && ok {
			if ab, ok := b.Object.(*value.ArrayObject); b.Kind == value.Obj && ok {
				elems := append(append([]value.Value{}, aa.Elements...), ab.Elements...)
				v.push(value.NewObject(v.track(value.NewArray(elems))))
				return
			}
		}
	}

	if !a.IsNumeric() || !b.IsNumeric() {
		panic(v.runtimeError("operand to %s must be numeric", op))
	}

	// Integer arithmetic stays integer unless either side is a float,
	// matching the original's "int op int -> int, anything else -> float"
	// promotion rule.
	bothInt := a.Kind == value.I64 && b.Kind == value.I64

	switch op {
	case bytecode.ADD:
		if bothInt {
			v.push(value.NewI64(a.I64 + b.I64))
		} else {
			v.push(value.NewF64(a.AsF64() + b.AsF64()))
		}
	case bytecode.SUB:
		if bothInt {
			v.push(value.NewI64(a.I64 - b.I64))
		} else {
			v.push(value.NewF64(a.AsF64() - b.AsF64()))
		}
	case bytecode.MUL:
		if bothInt {
			v.push(value.NewI64(a.I64 * b.I64))
		} else {
			v.push(value.NewF64(a.AsF64() * b.AsF64()))
		}
	case bytecode.DIV:
		if bothInt {
			if b.I64 == 0 {
				panic(v.runtimeError("division by zero"))
			}
			v.push(value.NewI64(a.I64 / b.I64))
		} else {
			v.push(value.NewF64(a.AsF64() / b.AsF64()))
		}
	case bytecode.MOD:
		if !bothInt {
			panic(v.runtimeError("%% requires integer operands"))
		}
		if b.I64 == 0 {
			panic(v.runtimeError("division by zero"))
		}
		v.push(value.NewI64(a.I64 % b.I64))
	case bytecode.LESS:
		if bothInt {
			v.push(value.NewBool(a.I64 < b.I64))
		} else {
			v.push(value.NewBool(a.AsF64() < b.AsF64()))
		}
	case bytecode.GREATER:
		if bothInt {
			v.push(value.NewBool(a.I64 > b.I64))
		} else {
			v.push(value.NewBool(a.AsF64() > b.AsF64()))
		}
	case bytecode.BIT_AND, bytecode.BIT_OR, bytecode.BIT_XOR,
		bytecode.BIT_LEFT_SHIFT, bytecode.BIT_RIGHT_SHIFT:
		if !bothInt {
			panic(v.runtimeError("%s requires integer operands", op))
		}
		switch op {
		case bytecode.BIT_AND:
			v.push(value.NewI64(a.I64 & b.I64))
		case bytecode.BIT_OR:
			v.push(value.NewI64(a.I64 | b.I64))
		case bytecode.BIT_XOR:
			v.push(value.NewI64(a.I64 ^ b.I64))
		case bytecode.BIT_LEFT_SHIFT:
			v.push(value.NewI64(a.I64 << uint(b.I64)))
		case bytecode.BIT_RIGHT_SHIFT:
			v.push(value.NewI64(a.I64 >> uint(b.I64)))
		}
	default:
		panic(v.runtimeError("unhandled binary opcode %s", op))
	}
}

// unaryMinus negates the top-of-stack numeric value in place.
func (v *VM) unaryMinus() {
	a := v.pop()
	if !a.IsNumeric() {
		panic(v.runtimeError("unary - requires a numeric operand"))
	}
	if a.Kind == value.I64 {
		v.push(value.NewI64(-a.I64))
	} else {
		v.push(value.NewF64(-a.F64))
	}
}

// factorial implements postfix `!` on a non-negative integer, mirroring
// the constant-fold pass's own iterative algorithm (pass/constant_fold.go)
// so compile-time-folded and runtime-computed factorials agree.
func (v *VM) factorial() {
	a := v.pop()
	if a.Kind != value.I64 || a.I64 < 0 {
		panic(v.runtimeError("! requires a non-negative integer operand"))
	}
	result := int64(1)
	for i := int64(2); i <= a.I64; i++ {
		result *= i
	}
	v.push(value.NewI64(result))
}
