package value

import (
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/token"
)

// Chunk is one function's compiled body: its opcode stream, its constant
// pool, and a parallel back-map from opcode index to the token.Token it
// was compiled from (spec.md §4.6). It is defined in this package rather
// than in package bytecode because its Constants pool holds Value (and,
// recursively, Function objects that each embed their own Chunk) — the
// same layering the teacher's bytecode.Bytecode struct uses by keeping
// Constants typed as []interface{} inside the same package as the
// instruction stream, just made concrete here since CynicScript's
// constant pool is homogeneously typed.
type Chunk struct {
	Code      []bytecode.Instruction
	Constants []Value
	Tokens    []token.Token // Tokens[i] is the origin token of Code[i]
}

// NewChunk returns an empty Chunk ready for the compiler to append to.
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddConstant appends v to the constant pool and returns its index,
// reusing an existing entry when v is a scalar that already matches
// (strings and other heap values are never deduplicated, since two
// distinct literal occurrences must remain distinct heap objects the
// clone/mutation invariants of spec.md §4.7 depend on).
func (c *Chunk) AddConstant(v Value) int {
	if v.Kind != Obj {
		for i, existing := range c.Constants {
			if existing.Kind == v.Kind && existing.Equals(v) {
				return i
			}
		}
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Emit appends an instruction and its origin token, returning the
// instruction's index (used by the compiler for jump-patch bookkeeping).
func (c *Chunk) Emit(op bytecode.Opcode, tok token.Token, args ...int32) int {
	var a [3]int32
	copy(a[:], args)
	c.Code = append(c.Code, bytecode.Instruction{Op: op, Args: a})
	c.Tokens = append(c.Tokens, tok)
	return len(c.Code) - 1
}
