package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestJSONParse_WholeNumberBecomesI64(t *testing.T) {
	v, ok, err := dsJSONParse([]value.Value{str(`{"a": 3, "b": 2.5, "c": [1,2,3]}`)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	d, ok := v.Object.(*value.DictObject)
	require.True(t, ok)

	a, found := d.Get(str("a"))
	require.True(t, found)
	assert.Equal(t, value.I64, a.Kind)
	assert.Equal(t, int64(3), a.I64)

	b, found := d.Get(str("b"))
	require.True(t, found)
	assert.Equal(t, value.F64, b.Kind)
	assert.Equal(t, 2.5, b.F64)

	c, found := d.Get(str("c"))
	require.True(t, found)
	arr, ok := c.Object.(*value.ArrayObject)
	require.True(t, ok)
	assert.Equal(t, 3, len(arr.Elements))
}

func TestJSONGenerate_RoundTrip(t *testing.T) {
	d := value.NewDict()
	d.Set(str("x"), value.NewI64(10))

	encoded, ok, err := dsJSONGenerate([]value.Value{value.NewObject(d)}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	decoded, ok, err := dsJSONParse([]value.Value{encoded}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	dd := decoded.Object.(*value.DictObject)
	x, found := dd.Get(str("x"))
	require.True(t, found)
	assert.Equal(t, int64(10), x.I64)
}
