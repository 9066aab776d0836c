package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleObject_ExportPreservesOrderAndOverwrites(t *testing.T) {
	m := NewModule("math")
	m.Export("PI", NewF64(3.14))
	m.Export("E", NewF64(2.71))
	m.Export("PI", NewF64(3.14159))

	require.Equal(t, []string{"PI", "E"}, m.Order)

	v, ok := m.Get("PI")
	require.True(t, ok)
	assert.InDelta(t, 3.14159, v.F64, 1e-9)
}

func TestModuleObject_BlackenEnqueuesOnlyObjectValuedExports(t *testing.T) {
	m := NewModule("mixed")
	str := NewString("hi")
	m.Export("greeting", Value{Kind: Obj, Object: str})
	m.Export("answer", NewI64(42))

	var got []Object
	m.Blacken(func(o Object) { got = append(got, o) })
	assert.Equal(t, []Object{str}, got)
}
