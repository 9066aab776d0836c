package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringObject_IndexNegativeAndOutOfRange(t *testing.T) {
	s := NewString("hello")

	r, ok := s.Index(0)
	assert.True(t, ok)
	assert.Equal(t, "h", r.String())

	r, ok = s.Index(-1)
	assert.True(t, ok)
	assert.Equal(t, "o", r.String())

	_, ok = s.Index(5)
	assert.False(t, ok)
}

func TestStringObject_ConcatAndEquals(t *testing.T) {
	a := NewString("foo")
	b := NewString("bar")
	c := a.Concat(b)
	assert.Equal(t, "foobar", c.String())
	assert.True(t, c.Equals(NewString("foobar")))
	assert.False(t, c.Equals(NewString("foobaz")))
}

func TestStringObject_CloneIsIndependentBuffer(t *testing.T) {
	a := NewString("abc")
	clone := a.Clone().(*StringObject)
	clone.Runes[0] = 'z'
	assert.Equal(t, "abc", a.String())
	assert.Equal(t, "zbc", clone.String())
}

func TestStringObject_UnicodeIndexingIsByCodePoint(t *testing.T) {
	s := NewString("héllo")
	r, ok := s.Index(1)
	assert.True(t, ok)
	assert.Equal(t, "é", r.String())
	assert.Equal(t, 5, s.Len())
}
