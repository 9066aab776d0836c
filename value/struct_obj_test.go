package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructObject_SetPreservesFieldOrderInString(t *testing.T) {
	s := NewStruct()
	s.Set("name", Value{Kind: Obj, Object: NewString("Ada")})
	s.Set("age", NewI64(30))

	assert.Equal(t, `{name: "Ada", age: 30}`, s.String())
}

func TestStructObject_EqualsComparesFieldsNotOrder(t *testing.T) {
	a := NewStruct()
	a.Set("x", NewI64(1))
	a.Set("y", NewI64(2))

	b := NewStruct()
	b.Set("y", NewI64(2))
	b.Set("x", NewI64(1))

	assert.True(t, a.Equals(b))
}

func TestStructObject_CloneIsIndependent(t *testing.T) {
	s := NewStruct()
	s.Set("x", NewI64(1))

	clone := s.Clone().(*StructObject)
	clone.Set("x", NewI64(2))

	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.I64)
}
