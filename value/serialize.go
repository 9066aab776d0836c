package value

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/token"
)

// Binary chunk file header, per spec.md §6 "Bytecode file format".
const (
	MagicNumber  uint32 = 0x43594E53 // "CYNS"
	VersionBinary uint32 = 1
)

// payload kind tags for constant encoding. These are distinct from
// value.Kind/ObjectKind: they describe the wire representation, not the
// runtime representation, and only cover the constant kinds that can
// legally appear in a chunk's constant pool (scalars, strings, nested
// functions).
const (
	payloadNull byte = iota
	payloadI64
	payloadF64
	payloadBool
	payloadString
	payloadFunction
)

// Encode serializes c to its binary chunk form: 4-byte magic, 4-byte
// version, 4-byte instruction count, the fixed-width instruction
// records, 4-byte constant count, then each constant prefixed by its
// 4-byte payload size (spec.md §6). Per-opcode source tokens are not
// serialized: a loaded chunk has no original source text to point at,
// so runtime diagnostics after deserialization fall back to opcode
// offsets only.
func Encode(c *Chunk) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, MagicNumber)
	binary.Write(&buf, binary.BigEndian, VersionBinary)

	binary.Write(&buf, binary.BigEndian, uint32(len(c.Code)))
	for _, ins := range c.Code {
		buf.WriteByte(byte(ins.Op))
		for _, a := range ins.Args {
			binary.Write(&buf, binary.BigEndian, a)
		}
	}

	binary.Write(&buf, binary.BigEndian, uint32(len(c.Constants)))
	for _, v := range c.Constants {
		payload := encodeValue(v)
		binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
		buf.Write(payload)
	}

	return buf.Bytes()
}

func encodeValue(v Value) []byte {
	var buf bytes.Buffer
	switch {
	case v.IsNull():
		buf.WriteByte(payloadNull)
	case v.Kind == I64:
		buf.WriteByte(payloadI64)
		binary.Write(&buf, binary.BigEndian, v.I64)
	case v.Kind == F64:
		buf.WriteByte(payloadF64)
		binary.Write(&buf, binary.BigEndian, v.F64)
	case v.Kind == Bool:
		buf.WriteByte(payloadBool)
		if v.Bool {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case v.Kind == Obj:
		switch o := v.Object.(type) {
		case *StringObject:
			buf.WriteByte(payloadString)
			s := o.String()
			binary.Write(&buf, binary.BigEndian, uint32(len(s)))
			buf.WriteString(s)
		case *FunctionObject:
			buf.WriteByte(payloadFunction)
			binary.Write(&buf, binary.BigEndian, uint32(len(o.Name)))
			buf.WriteString(o.Name)
			binary.Write(&buf, binary.BigEndian, uint32(o.Arity))
			buf.WriteByte(byte(o.VarArg))
			binary.Write(&buf, binary.BigEndian, uint32(o.UpvalueCount))
			buf.Write(Encode(o.Chunk))
		default:
			// Non-constant-pool object kinds (closures, instances, ...)
			// never reach a chunk's constant pool; encoding one is a
			// compiler bug, not a recoverable runtime condition.
			panic(fmt.Sprintf("value: cannot serialize constant of kind %d", o.ObjKind()))
		}
	}
	return buf.Bytes()
}

// Decode parses a binary chunk produced by Encode. It does not attempt
// to reconstruct Tokens: loaded chunks carry no source text.
func Decode(data []byte) (*Chunk, error) {
	r := bytes.NewReader(data)

	var magic, version uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("value: truncated chunk header: %w", err)
	}
	if magic != MagicNumber {
		return nil, fmt.Errorf("value: bad magic number %#x", magic)
	}
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("value: truncated chunk header: %w", err)
	}
	if version != VersionBinary {
		return nil, fmt.Errorf("value: unsupported chunk version %d", version)
	}

	var opcodeCount uint32
	if err := binary.Read(r, binary.BigEndian, &opcodeCount); err != nil {
		return nil, fmt.Errorf("value: truncated opcode count: %w", err)
	}

	c := NewChunk()
	for i := uint32(0); i < opcodeCount; i++ {
		opByte, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("value: truncated instruction %d: %w", i, err)
		}
		var args [3]int32
		for j := range args {
			if err := binary.Read(r, binary.BigEndian, &args[j]); err != nil {
				return nil, fmt.Errorf("value: truncated instruction %d operands: %w", i, err)
			}
		}
		c.Code = append(c.Code, bytecode.Instruction{Op: bytecode.Opcode(opByte), Args: args})
		c.Tokens = append(c.Tokens, token.Token{})
	}

	var constCount uint32
	if err := binary.Read(r, binary.BigEndian, &constCount); err != nil {
		return nil, fmt.Errorf("value: truncated constant count: %w", err)
	}
	for i := uint32(0); i < constCount; i++ {
		var size uint32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, fmt.Errorf("value: truncated constant %d size: %w", i, err)
		}
		payload := make([]byte, size)
		if _, err := r.Read(payload); err != nil {
			return nil, fmt.Errorf("value: truncated constant %d payload: %w", i, err)
		}
		v, err := decodeValue(payload)
		if err != nil {
			return nil, fmt.Errorf("value: constant %d: %w", i, err)
		}
		c.Constants = append(c.Constants, v)
	}

	return c, nil
}

func decodeValue(payload []byte) (Value, error) {
	r := bytes.NewReader(payload)
	kind, err := r.ReadByte()
	if err != nil {
		return Value{}, err
	}
	switch kind {
	case payloadNull:
		return NewNull(), nil
	case payloadI64:
		var i int64
		if err := binary.Read(r, binary.BigEndian, &i); err != nil {
			return Value{}, err
		}
		return NewI64(i), nil
	case payloadF64:
		var f float64
		if err := binary.Read(r, binary.BigEndian, &f); err != nil {
			return Value{}, err
		}
		return NewF64(f), nil
	case payloadBool:
		b, err := r.ReadByte()
		if err != nil {
			return Value{}, err
		}
		return NewBool(b != 0), nil
	case payloadString:
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return Value{}, err
		}
		buf := make([]byte, n)
		if _, err := r.Read(buf); err != nil {
			return Value{}, err
		}
		return NewObject(NewString(string(buf))), nil
	case payloadFunction:
		var nameLen uint32
		if err := binary.Read(r, binary.BigEndian, &nameLen); err != nil {
			return Value{}, err
		}
		nameBuf := make([]byte, nameLen)
		if _, err := r.Read(nameBuf); err != nil {
			return Value{}, err
		}
		var arity uint32
		if err := binary.Read(r, binary.BigEndian, &arity); err != nil {
			return Value{}, err
		}
		varArgByte, err := r.ReadByte()
		if err != nil {
			return Value{}, err
		}
		var upvalCount uint32
		if err := binary.Read(r, binary.BigEndian, &upvalCount); err != nil {
			return Value{}, err
		}
		rest := payload[len(payload)-r.Len():]
		nested, err := Decode(rest)
		if err != nil {
			return Value{}, err
		}
		fn := NewFunction(string(nameBuf), int(arity), VarArgKind(varArgByte), nested)
		fn.UpvalueCount = int(upvalCount)
		return NewObject(fn), nil
	default:
		return Value{}, fmt.Errorf("unknown constant payload kind %d", kind)
	}
}
