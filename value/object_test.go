package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader_TrackedDefaultsFalseAndIsSettable(t *testing.T) {
	s := NewString("x")
	assert.False(t, s.Tracked())

	s.SetTracked(true)
	assert.True(t, s.Tracked())
}

func TestHeader_MarkUnmarkRoundTrip(t *testing.T) {
	s := NewString("x")
	assert.False(t, s.Marked())

	s.Mark()
	assert.True(t, s.Marked())

	s.Unmark()
	assert.False(t, s.Marked())
}

func TestHeader_NextLinkage(t *testing.T) {
	a := NewString("a")
	b := NewString("b")
	a.SetNext(b)
	assert.Same(t, Object(b), a.Next())
}
