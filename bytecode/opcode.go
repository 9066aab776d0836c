// Package bytecode defines the CynicScript instruction vocabulary: the
// Opcode enum and the Instruction shape the compiler emits and the VM
// dispatches on. It intentionally carries no dependency on the value or
// chunk types (see value.Chunk) so it can be imported everywhere the
// opcode vocabulary is needed without pulling in the object model -
// mirroring the teacher's own bytecode package, which keeps Opcode and
// Instruction free of any VM or compiler state.
package bytecode

// Opcode is a single-byte instruction tag.
type Opcode byte

const (
	// Stack.
	CONSTANT Opcode = iota
	NULL
	POP

	// Arithmetic / logic.
	ADD
	SUB
	MUL
	DIV
	MOD
	NOT
	MINUS
	BIT_AND
	BIT_OR
	BIT_XOR
	BIT_NOT
	BIT_LEFT_SHIFT
	BIT_RIGHT_SHIFT
	LESS
	GREATER
	EQUAL
	FACTORIAL

	// Control flow.
	JUMP
	JUMP_IF_FALSE
	LOOP

	// Bindings.
	SET_GLOBAL
	GET_GLOBAL
	SET_LOCAL
	GET_LOCAL
	SET_UPVALUE
	GET_UPVALUE
	REF_GLOBAL
	REF_LOCAL
	REF_UPVALUE
	REF_INDEX_GLOBAL
	REF_INDEX_LOCAL
	REF_INDEX_UPVALUE
	CLOSE_UPVALUE

	// Aggregates.
	ARRAY
	DICT
	STRUCT
	GET_INDEX
	SET_INDEX
	GET_PROPERTY
	SET_PROPERTY
	GET_BASE

	// Calls / returns.
	CALL
	RETURN
	CLOSURE

	// Objects.
	CLASS
	MODULE
	RESET

	// Multi-return packing.
	APPREGATE_RESOLVE
	APPREGATE_RESOLVE_VAR_ARG
)

var names = map[Opcode]string{
	CONSTANT: "CONSTANT", NULL: "NULL", POP: "POP",
	ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV", MOD: "MOD",
	NOT: "NOT", MINUS: "MINUS",
	BIT_AND: "BIT_AND", BIT_OR: "BIT_OR", BIT_XOR: "BIT_XOR", BIT_NOT: "BIT_NOT",
	BIT_LEFT_SHIFT: "BIT_LEFT_SHIFT", BIT_RIGHT_SHIFT: "BIT_RIGHT_SHIFT",
	LESS: "LESS", GREATER: "GREATER", EQUAL: "EQUAL", FACTORIAL: "FACTORIAL",
	JUMP: "JUMP", JUMP_IF_FALSE: "JUMP_IF_FALSE", LOOP: "LOOP",
	SET_GLOBAL: "SET_GLOBAL", GET_GLOBAL: "GET_GLOBAL",
	SET_LOCAL: "SET_LOCAL", GET_LOCAL: "GET_LOCAL",
	SET_UPVALUE: "SET_UPVALUE", GET_UPVALUE: "GET_UPVALUE",
	REF_GLOBAL: "REF_GLOBAL", REF_LOCAL: "REF_LOCAL", REF_UPVALUE: "REF_UPVALUE",
	REF_INDEX_GLOBAL: "REF_INDEX_GLOBAL", REF_INDEX_LOCAL: "REF_INDEX_LOCAL", REF_INDEX_UPVALUE: "REF_INDEX_UPVALUE",
	CLOSE_UPVALUE: "CLOSE_UPVALUE",
	ARRAY:         "ARRAY", DICT: "DICT", STRUCT: "STRUCT",
	GET_INDEX: "GET_INDEX", SET_INDEX: "SET_INDEX",
	GET_PROPERTY: "GET_PROPERTY", SET_PROPERTY: "SET_PROPERTY", GET_BASE: "GET_BASE",
	CALL: "CALL", RETURN: "RETURN", CLOSURE: "CLOSURE",
	CLASS: "CLASS", MODULE: "MODULE", RESET: "RESET",
	APPREGATE_RESOLVE: "APPREGATE_RESOLVE", APPREGATE_RESOLVE_VAR_ARG: "APPREGATE_RESOLVE_VAR_ARG",
}

func (op Opcode) String() string {
	if s, ok := names[op]; ok {
		return s
	}
	return "UNKNOWN"
}

// Instruction is one emitted opcode plus its operands. Using a small
// fixed set of int32 operand slots (rather than a raw variable-width
// byte stream, as the teacher's own bytecode.Instruction{Op, Operand}
// does for its simpler single-operand opcodes) keeps every opcode's
// source-token back-pointer at the same slice index as its Instruction,
// which is how the compiler's per-opcode diagnostics stay O(1) (spec.md
// §4.6's "per-opcode source-token back-pointers").
type Instruction struct {
	Op   Opcode
	Args [3]int32 // meaning is opcode-specific; unused slots are 0
}

// CLOSURE operand layout: Args[0] = function constant index,
// Args[1] = upvalue count N; the N (isLocal, index) pairs that follow
// are emitted as N additional synthetic UPVALUE_PAIR instructions
// immediately after, each {IsLocal, Index} in Args[0], Args[1].
const UPVALUE_PAIR Opcode = 0xFE
