package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayObject_EqualsAndClone(t *testing.T) {
	a := NewArray([]Value{NewI64(1), NewI64(2), NewI64(3)})
	b := NewArray([]Value{NewI64(1), NewI64(2), NewI64(3)})
	assert.True(t, a.Equals(b))

	clone := a.Clone().(*ArrayObject)
	clone.Elements[0] = NewI64(99)
	assert.Equal(t, int64(1), a.Elements[0].I64)
	assert.Equal(t, int64(99), clone.Elements[0].I64)
}

func TestArrayObject_Blacken(t *testing.T) {
	inner := NewString("hi")
	arr := NewArray([]Value{NewObject(inner), NewI64(5)})

	var seen []Object
	arr.Blacken(func(o Object) { seen = append(seen, o) })
	assert.Equal(t, []Object{inner}, seen)
}
