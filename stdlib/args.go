package stdlib

import (
	"fmt"

	"github.com/kristofer/cynicscript/value"
)

// argString/argI64/argArray extract one positional
// argument in the Go type a native needs, returning a descriptive error
// if the call site passed the wrong arity or a value of the wrong kind —
// the native function's half of spec.md §4.8's "TypeWarning on
// mismatched native argument" contract.
func argString(args []value.Value, i int, fn string) (string, error) {
	v, err := arg(args, i, fn)
	if err != nil {
		return "", err
	}
	if v.Kind != value.Obj {
		return "", fmt.Errorf("%s: argument %d must be a string", fn, i+1)
	}
	s, ok := v.Object.(*value.StringObject)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string", fn, i+1)
	}
	return s.String(), nil
}

func argI64(args []value.Value, i int, fn string) (int64, error) {
	v, err := arg(args, i, fn)
	if err != nil {
		return 0, err
	}
	if v.Kind != value.I64 {
		return 0, fmt.Errorf("%s: argument %d must be an integer", fn, i+1)
	}
	return v.I64, nil
}

func argArray(args []value.Value, i int, fn string) (*value.ArrayObject, error) {
	v, err := arg(args, i, fn)
	if err != nil {
		return nil, err
	}
	if v.Kind != value.Obj {
		return nil, fmt.Errorf("%s: argument %d must be an array", fn, i+1)
	}
	a, ok := v.Object.(*value.ArrayObject)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d must be an array", fn, i+1)
	}
	return a, nil
}

func arg(args []value.Value, i int, fn string) (value.Value, error) {
	if i >= len(args) {
		return value.Value{}, fmt.Errorf("%s: expects at least %d argument(s), got %d", fn, i+1, len(args))
	}
	return args[i], nil
}

func str(s string) value.Value { return value.NewObject(value.NewString(s)) }
