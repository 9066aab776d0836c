package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

func TestTimeFormatParse_RoundTripsViaDateLayout(t *testing.T) {
	ts := int64(1700000000) // 2023-11-14T22:13:20Z

	formatted, ok, err := timeFormat([]value.Value{value.NewI64(ts), str("date")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2023-11-14", formatted.Object.(*value.StringObject).String())

	parsed, ok, err := timeParse([]value.Value{formatted, str("date")}, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)

	refFormatted, _, _ := timeFormat([]value.Value{parsed, str("date")}, token.Token{})
	assert.Equal(t, "2023-11-14", refFormatted.Object.(*value.StringObject).String())
}

func TestTimeFieldAccessors_ExtractCalendarComponents(t *testing.T) {
	ts := value.NewI64(1700000000)

	yearVal, _, err := timeFns()["time.year"]([]value.Value{ts}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, int64(2023), yearVal.I64)

	monthVal, _, err := timeFns()["time.month"]([]value.Value{ts}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, int64(11), monthVal.I64)

	dayVal, _, err := timeFns()["time.day"]([]value.Value{ts}, token.Token{})
	require.NoError(t, err)
	assert.Equal(t, int64(14), dayVal.I64)
}

func TestTimeNow_ReturnsPlausibleUnixTimestamp(t *testing.T) {
	now, ok, err := timeNow(nil, token.Token{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Greater(t, now.I64, int64(1700000000))
}
