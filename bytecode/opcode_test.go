package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_StringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "ADD", ADD.String())
	assert.Equal(t, "RETURN", RETURN.String())
	assert.Equal(t, "UNKNOWN", Opcode(0xAB).String())
}

func TestInstruction_ArgsDefaultToZero(t *testing.T) {
	inst := Instruction{Op: CONSTANT, Args: [3]int32{7}}
	assert.Equal(t, int32(7), inst.Args[0])
	assert.Equal(t, int32(0), inst.Args[1])
}
