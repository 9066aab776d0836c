package vm

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/compiler"
	"github.com/kristofer/cynicscript/config"
	"github.com/kristofer/cynicscript/diag"
	"github.com/kristofer/cynicscript/lexer"
	"github.com/kristofer/cynicscript/parser"
	"github.com/kristofer/cynicscript/pass"
	"github.com/kristofer/cynicscript/stdlib"
	"github.com/kristofer/cynicscript/value"
)

// runProgram compiles and runs src on a fresh VM with the standard
// library installed, mirroring cmd/cynicscript's own pipeline, and
// returns everything printed to stdout via print/println.
func runProgram(t *testing.T, src string) string {
	t.Helper()

	tokens, err := lexer.Scan(src)
	require.NoError(t, err)

	prog, errs := parser.Parse(tokens)
	require.Empty(t, errs)

	bag := &diag.Bag{}
	pass.NewManager().Run(prog, bag)
	require.False(t, bag.HasErrors(), "%v", bag.Items())

	fn, compileBag := compiler.Compile(prog)
	require.False(t, compileBag.HasErrors(), "%v", compileBag.Items())

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w

	v := New(config.Default(), &diag.Bag{})
	for name, native := range stdlib.All() {
		v.DefineGlobal(name, value.NewObject(native))
	}
	_, runErr := v.Run(fn)

	os.Stdout = orig
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, runErr)
	return string(out)
}

func TestProgram_ArithmeticAndPrintln(t *testing.T) {
	out := runProgram(t, `let a = 3; let b = 4; println(a * a + b * b);`)
	assert.Equal(t, "25\n", out)
}

func TestProgram_RecursiveFactorial(t *testing.T) {
	out := runProgram(t, `
		fn fact(n) { if (n <= 1) return 1; return n * fact(n - 1); }
		println(fact(6));
	`)
	assert.Equal(t, "720\n", out)
}

func TestProgram_ArrayDestructuringWithRest(t *testing.T) {
	out := runProgram(t, `
		let [x, y, ...rest] = [1, 2, 3, 4, 5];
		println(x);
		println(y);
		println(rest);
	`)
	assert.Equal(t, "1\n2\n[3, 4, 5]\n", out)
}

func TestProgram_ClosureCounter(t *testing.T) {
	out := runProgram(t, `
		fn make_counter() {
			let c = 0;
			return fn() { c = c + 1; return c; };
		}
		let k = make_counter();
		println(k());
		println(k());
		println(k());
	`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestProgram_ReferenceFollowsSlot(t *testing.T) {
	out := runProgram(t, `
		let arr = [10, 20, 30];
		let r = &arr[1];
		arr[1] = 99;
		println(r);
	`)
	assert.Equal(t, "99\n", out)
}

func TestProgram_ClassInheritanceAndBase(t *testing.T) {
	out := runProgram(t, `
		class A { fn hi() { return "a"; } }
		class B : A { fn hi2() { return base.hi() + "!"; } }
		let b = new B();
		println(b.hi2());
	`)
	assert.Equal(t, "a!\n", out)
}
