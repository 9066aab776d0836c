package stdlib

import (
	"encoding/json"
	"fmt"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// jsonFns implements the `ds` group's JSON marshaling, generalized from
// kristofer/smog/pkg/vm/primitives.go's jsonParse/jsonGenerate — the
// teacher's convertJSONValue left JSON objects as a bare Go map "for now
// (Dictionary type not yet implemented)"; this rewrite's value.DictObject
// closes that gap, so JSON objects round-trip through it instead.
func jsonFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"ds.jsonParse":    dsJSONParse,
		"ds.jsonGenerate": dsJSONGenerate,
	}
}

func dsJSONParse(args []value.Value, _ token.Token) (value.Value, bool, error) {
	data, err := argString(args, 0, "ds.jsonParse")
	if err != nil {
		return value.Value{}, false, err
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		return value.Value{}, false, fmt.Errorf("ds.jsonParse: %v", err)
	}
	return fromJSON(decoded), true, nil
}

func dsJSONGenerate(args []value.Value, _ token.Token) (value.Value, bool, error) {
	v, err := arg(args, 0, "ds.jsonGenerate")
	if err != nil {
		return value.Value{}, false, err
	}
	encoded, err := json.Marshal(toJSON(v))
	if err != nil {
		return value.Value{}, false, fmt.Errorf("ds.jsonGenerate: %v", err)
	}
	return str(string(encoded)), true, nil
}

// fromJSON converts a json.Unmarshal result (float64/string/bool/nil/
// []interface{}/map[string]interface{}) into a runtime Value, preferring
// an integer representation for whole-number JSON numbers the way the
// teacher's convertJSONValue does.
func fromJSON(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.NewNull()
	case bool:
		return value.NewBool(t)
	case float64:
		if t == float64(int64(t)) {
			return value.NewI64(int64(t))
		}
		return value.NewF64(t)
	case string:
		return str(t)
	case []interface{}:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			elems[i] = fromJSON(e)
		}
		return value.NewObject(value.NewArray(elems))
	case map[string]interface{}:
		d := value.NewDict()
		for k, e := range t {
			d.Set(str(k), fromJSON(e))
		}
		return value.NewObject(d)
	default:
		return value.NewNull()
	}
}

// toJSON converts a runtime Value back into a json.Marshal-friendly Go
// value, the inverse of fromJSON.
func toJSON(v value.Value) interface{} {
	switch v.Kind {
	case value.Null:
		return nil
	case value.Bool:
		return v.Bool
	case value.I64:
		return v.I64
	case value.F64:
		return v.F64
	case value.Obj:
		switch o := v.Object.(type) {
		case *value.StringObject:
			return o.String()
		case *value.ArrayObject:
			out := make([]interface{}, len(o.Elements))
			for i, e := range o.Elements {
				out[i] = toJSON(e)
			}
			return out
		case *value.DictObject:
			out := make(map[string]interface{}, o.Len())
			for _, k := range o.Keys() {
				ev, _ := o.Get(k)
				out[k.String()] = toJSON(ev)
			}
			return out
		default:
			return o.String()
		}
	}
	return nil
}
