package stdlib

import (
	"fmt"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// dsFns implements the remainder of the `ds` group: array length and
// mutation beyond what GET_INDEX/SET_INDEX/ARRAY already cover as
// opcodes, generalized from kristofer/smog/pkg/vm/vm.go's Smalltalk
// array messages ("size", "at:", "at:put:") into append/remove helpers a
// stack-based array literal has no opcode for.
func dsFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"ds.len":  dsLen,
		"ds.push": dsPush,
		"ds.pop":  dsPop,
	}
}

func dsLen(args []value.Value, _ token.Token) (value.Value, bool, error) {
	v, err := arg(args, 0, "ds.len")
	if err != nil {
		return value.Value{}, false, err
	}
	if v.Kind != value.Obj || v.Object == nil {
		return value.Value{}, false, fmt.Errorf("ds.len: argument must be an array, string, or dict")
	}
	switch o := v.Object.(type) {
	case *value.ArrayObject:
		return value.NewI64(int64(len(o.Elements))), true, nil
	case *value.StringObject:
		return value.NewI64(int64(o.Len())), true, nil
	case *value.DictObject:
		return value.NewI64(int64(o.Len())), true, nil
	default:
		return value.Value{}, false, fmt.Errorf("ds.len: argument must be an array, string, or dict")
	}
}

func dsPush(args []value.Value, _ token.Token) (value.Value, bool, error) {
	arr, err := argArray(args, 0, "ds.push")
	if err != nil {
		return value.Value{}, false, err
	}
	elem, err := arg(args, 1, "ds.push")
	if err != nil {
		return value.Value{}, false, err
	}
	arr.Elements = append(arr.Elements, elem)
	return value.NewObject(arr), true, nil
}

func dsPop(args []value.Value, _ token.Token) (value.Value, bool, error) {
	arr, err := argArray(args, 0, "ds.pop")
	if err != nil {
		return value.Value{}, false, err
	}
	if len(arr.Elements) == 0 {
		return value.Value{}, false, fmt.Errorf("ds.pop: array is empty")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, true, nil
}
