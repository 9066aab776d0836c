package stdlib

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// randomFns implements the `mem`-adjacent random-generation group,
// grounded on kristofer/smog/pkg/vm/primitives.go's randomInt/
// randomFloat/randomBytes — kept on crypto/rand as the teacher does,
// rather than math/rand, so a script can't be seeded or predicted.
func randomFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"mem.randomInt":   memRandomInt,
		"mem.randomFloat": memRandomFloat,
		"mem.randomBytes": memRandomBytes,
	}
}

func memRandomInt(args []value.Value, _ token.Token) (value.Value, bool, error) {
	min, err := argI64(args, 0, "mem.randomInt")
	if err != nil {
		return value.Value{}, false, err
	}
	max, err := argI64(args, 1, "mem.randomInt")
	if err != nil {
		return value.Value{}, false, err
	}
	if min > max {
		return value.Value{}, false, fmt.Errorf("mem.randomInt: min must be <= max")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return value.Value{}, false, fmt.Errorf("mem.randomInt: %v", err)
	}
	return value.NewI64(n.Int64() + min), true, nil
}

func memRandomFloat(args []value.Value, _ token.Token) (value.Value, bool, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return value.Value{}, false, fmt.Errorf("mem.randomFloat: %v", err)
	}
	n := uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
		uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
	return value.NewF64(float64(n>>11) / float64(uint64(1)<<53)), true, nil
}

func memRandomBytes(args []value.Value, _ token.Token) (value.Value, bool, error) {
	length, err := argI64(args, 0, "mem.randomBytes")
	if err != nil {
		return value.Value{}, false, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return value.Value{}, false, fmt.Errorf("mem.randomBytes: %v", err)
	}
	return str(base64.StdEncoding.EncodeToString(buf)), true, nil
}
