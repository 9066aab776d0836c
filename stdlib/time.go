package stdlib

import (
	"fmt"
	"time"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// timeFns implements the `time` group, grounded on
// kristofer/smog/pkg/vm/primitives.go's dateNow/dateFormat/dateParse and
// its timeYear/timeMonth/.../timeSecond field extractors, all addressing
// Unix timestamps the way the teacher does.
func timeFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"time.now":    timeNow,
		"time.format": timeFormat,
		"time.parse":  timeParse,
		"time.year":   timeField(func(t time.Time) int64 { return int64(t.Year()) }),
		"time.month":  timeField(func(t time.Time) int64 { return int64(t.Month()) }),
		"time.day":    timeField(func(t time.Time) int64 { return int64(t.Day()) }),
		"time.hour":   timeField(func(t time.Time) int64 { return int64(t.Hour()) }),
		"time.minute": timeField(func(t time.Time) int64 { return int64(t.Minute()) }),
		"time.second": timeField(func(t time.Time) int64 { return int64(t.Second()) }),
	}
}

func timeNow(args []value.Value, _ token.Token) (value.Value, bool, error) {
	return value.NewI64(time.Now().Unix()), true, nil
}

func timeLayout(format string) string {
	switch format {
	case "iso8601", "ISO8601", "rfc3339", "RFC3339":
		return time.RFC3339
	case "date":
		return "2006-01-02"
	case "time":
		return "15:04:05"
	case "datetime":
		return "2006-01-02 15:04:05"
	default:
		return format
	}
}

func timeFormat(args []value.Value, _ token.Token) (value.Value, bool, error) {
	ts, err := argI64(args, 0, "time.format")
	if err != nil {
		return value.Value{}, false, err
	}
	format, err := argString(args, 1, "time.format")
	if err != nil {
		return value.Value{}, false, err
	}
	return str(time.Unix(ts, 0).UTC().Format(timeLayout(format))), true, nil
}

func timeParse(args []value.Value, _ token.Token) (value.Value, bool, error) {
	dateStr, err := argString(args, 0, "time.parse")
	if err != nil {
		return value.Value{}, false, err
	}
	format, err := argString(args, 1, "time.parse")
	if err != nil {
		return value.Value{}, false, err
	}
	t, err := time.Parse(timeLayout(format), dateStr)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("time.parse: %v", err)
	}
	return value.NewI64(t.Unix()), true, nil
}

// timeField builds a native that extracts one calendar component from a
// Unix-timestamp argument.
func timeField(extract func(time.Time) int64) value.NativeFn {
	return func(args []value.Value, _ token.Token) (value.Value, bool, error) {
		ts, err := argI64(args, 0, "time field accessor")
		if err != nil {
			return value.Value{}, false, err
		}
		return value.NewI64(extract(time.Unix(ts, 0).UTC())), true, nil
	}
}
