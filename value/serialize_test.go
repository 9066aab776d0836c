package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/token"
)

func TestEncodeDecode_RoundTripsScalarConstantsAndCode(t *testing.T) {
	chunk := NewChunk()
	chunk.Code = append(chunk.Code, bytecode.Instruction{Op: bytecode.CONSTANT, Args: [3]int32{0}})
	chunk.Tokens = append(chunk.Tokens, token.Token{})
	chunk.Constants = append(chunk.Constants,
		NewI64(7),
		NewF64(2.5),
		NewBool(true),
		NewNull(),
		NewObject(NewString("hi")),
	)

	data := Encode(chunk)
	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, decoded.Code, 1)
	assert.Equal(t, bytecode.CONSTANT, decoded.Code[0].Op)

	require.Len(t, decoded.Constants, 5)
	assert.Equal(t, int64(7), decoded.Constants[0].I64)
	assert.InDelta(t, 2.5, decoded.Constants[1].F64, 1e-9)
	assert.True(t, decoded.Constants[2].Bool)
	assert.True(t, decoded.Constants[3].IsNull())
	assert.Equal(t, "hi", decoded.Constants[4].Object.(*StringObject).String())
}

func TestEncodeDecode_RoundTripsNestedFunctionConstant(t *testing.T) {
	inner := NewChunk()
	inner.Constants = append(inner.Constants, NewI64(1))
	fn := NewFunction("helper", 2, VarArgUnnamed, inner)
	fn.UpvalueCount = 1

	outer := NewChunk()
	outer.Constants = append(outer.Constants, NewObject(fn))

	decoded, err := Decode(Encode(outer))
	require.NoError(t, err)
	require.Len(t, decoded.Constants, 1)

	got := decoded.Constants[0].Object.(*FunctionObject)
	assert.Equal(t, "helper", got.Name)
	assert.Equal(t, 2, got.Arity)
	assert.Equal(t, VarArgUnnamed, got.VarArg)
	assert.Equal(t, 1, got.UpvalueCount)
	require.Len(t, got.Chunk.Constants, 1)
	assert.Equal(t, int64(1), got.Chunk.Constants[0].I64)
}

func TestDecode_RejectsBadMagicAndVersion(t *testing.T) {
	_, err := Decode([]byte{0, 0, 0, 0})
	assert.Error(t, err)

	_, err = Decode([]byte{0x43, 0x59, 0x4E, 0x53, 0, 0, 0, 2})
	assert.Error(t, err)
}
