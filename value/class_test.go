package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassObject_FindMethodChecksParentsDepthFirst(t *testing.T) {
	animal := NewClass("Animal")
	animal.Methods["speak"] = NewClosure(NewFunction("speak", 0, VarArgNone, NewChunk()))

	dog := NewClass("Dog")
	dog.Parents = []*ClassObject{animal}

	m, ok := dog.FindMethod("speak")
	require.True(t, ok)
	assert.Same(t, animal.Methods["speak"], m)

	_, ok = dog.FindMethod("fly")
	assert.False(t, ok)
}

func TestClassObject_FindConstructorRequiresExactArityWhenDeclared(t *testing.T) {
	dog := NewClass("Dog")
	dog.Constructors[1] = NewClosure(NewFunction("Dog", 1, VarArgNone, NewChunk()))

	_, ok := dog.FindConstructor(1)
	assert.True(t, ok)

	_, ok = dog.FindConstructor(2)
	assert.False(t, ok, "a class that declares any constructor must match arity exactly")
}

func TestClassObject_FindConstructorFallsBackToParentWhenNoneDeclared(t *testing.T) {
	animal := NewClass("Animal")
	animal.Constructors[1] = NewClosure(NewFunction("Animal", 1, VarArgNone, NewChunk()))

	dog := NewClass("Dog")
	dog.Parents = []*ClassObject{animal}

	ctor, ok := dog.FindConstructor(1)
	require.True(t, ok)
	assert.Same(t, animal.Constructors[1], ctor)
}

func TestInstanceObject_CloneDeepCopiesFields(t *testing.T) {
	class := NewClass("Point")
	inst := NewInstance(class)
	inst.Set("x", NewI64(1))
	inst.Set("y", NewI64(2))

	clone := inst.Clone().(*InstanceObject)
	clone.Set("x", NewI64(99))

	orig, _ := inst.Get("x")
	assert.Equal(t, int64(1), orig.I64)
	cloned, _ := clone.Get("x")
	assert.Equal(t, int64(99), cloned.I64)
	assert.Equal(t, []string{"x", "y"}, clone.FieldOrder)
}

func TestBoundMethodObject_BlackenEnqueuesReceiverAndMethod(t *testing.T) {
	class := NewClass("Point")
	inst := NewInstance(class)
	method := NewClosure(NewFunction("m", 0, VarArgNone, NewChunk()))
	bound := NewBoundMethod(inst, method)

	var got []Object
	bound.Blacken(func(o Object) { got = append(got, o) })
	assert.ElementsMatch(t, []Object{inst, method}, got)
}
