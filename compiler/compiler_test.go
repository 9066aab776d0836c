package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/lexer"
	"github.com/kristofer/cynicscript/parser"
	"github.com/kristofer/cynicscript/value"
)

func compileSrc(t *testing.T, src string) *value.Chunk {
	t.Helper()
	tokens, err := lexer.Scan(src)
	require.NoError(t, err)
	prog, errs := parser.Parse(tokens)
	require.Empty(t, errs, "%v", errs)

	fn, bag := Compile(prog)
	require.False(t, bag.HasErrors(), "%v", bag.Items())
	return fn.Chunk
}

func opsOf(chunk *value.Chunk) []bytecode.Opcode {
	ops := make([]bytecode.Opcode, len(chunk.Code))
	for i, inst := range chunk.Code {
		ops[i] = inst.Op
	}
	return ops
}

func TestCompile_ArithmeticEmitsAddAndConstants(t *testing.T) {
	chunk := compileSrc(t, `let a = 3 + 4;`)
	ops := opsOf(chunk)
	assert.Contains(t, ops, bytecode.CONSTANT)
	assert.Contains(t, ops, bytecode.ADD)
	assert.Contains(t, ops, bytecode.SET_GLOBAL)
}

func TestCompile_IfEmitsConditionalJump(t *testing.T) {
	chunk := compileSrc(t, `if (1 < 2) { let x = 1; } else { let y = 2; }`)
	ops := opsOf(chunk)
	assert.Contains(t, ops, bytecode.JUMP_IF_FALSE)
	assert.Contains(t, ops, bytecode.JUMP)
}

func TestCompile_FunctionDeclEmitsClosureAndDefine(t *testing.T) {
	chunk := compileSrc(t, `fn add(a, b) { return a + b; }`)
	ops := opsOf(chunk)
	assert.Contains(t, ops, bytecode.CLOSURE)
	assert.Contains(t, ops, bytecode.SET_GLOBAL)
}
