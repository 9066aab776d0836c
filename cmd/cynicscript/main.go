// Command cynicscript is the external driver for the language: it wires
// the lexer/parser/pass/compiler pipeline onto the VM, following the
// contract spec.md §6 fixes (-f/--file, -s/--serialize, -h/--help,
// -v/--version, and a no-args REPL). It generalizes the teacher's
// hand-rolled os.Args[1] switch (kristofer/smog/cmd/smog/main.go) onto
// gopkg.in/urfave/cli.v1, the CLI library this rewrite's domain stack
// adopts from ProbeChain-go-probe/go.mod.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/kristofer/cynicscript/compiler"
	"github.com/kristofer/cynicscript/config"
	"github.com/kristofer/cynicscript/diag"
	"github.com/kristofer/cynicscript/lexer"
	"github.com/kristofer/cynicscript/parser"
	"github.com/kristofer/cynicscript/pass"
	"github.com/kristofer/cynicscript/stdlib"
	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
	"github.com/kristofer/cynicscript/vm"
)

const version = "0.1.0"

// stderr is the diagnostic writer: go-colorable wraps os.Stderr so
// fatih/color's ANSI codes render correctly even under the Windows
// console, the pairing SPEC_FULL.md's domain stack calls for.
var stderr = colorable.NewColorableStderr()

func main() {
	app := cli.NewApp()
	app.Name = "cynicscript"
	app.Usage = "run or serialize CynicScript programs"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "file, f", Usage: "compile and run a source `FILE`"},
		cli.StringFlag{Name: "serialize, s", Usage: "compile -f's source and write the top-level chunk to `PATH` instead of running it"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	file := c.String("file")
	serializeTo := c.String("serialize")

	if file == "" {
		if serializeTo != "" {
			return cli.NewExitError("error: --serialize requires --file", 1)
		}
		runREPL()
		return nil
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("error reading %s: %v", file, err), 1)
	}

	fn, bag := compileSource(string(src))
	if bag.HasErrors() {
		fmt.Fprint(stderr, diag.Render(string(src), file, bag))
		return cli.NewExitError("", 1)
	}

	if serializeTo != "" {
		return os.WriteFile(serializeTo, value.Encode(fn.Chunk), 0o644)
	}

	return execute(fn, string(src), file)
}

// compileSource runs the full lex -> parse -> pass -> compile pipeline
// on one buffer, collecting every stage's diagnostics into one bag so a
// single diag.Render call reports everything at once (spec.md §7).
func compileSource(src string) (*value.FunctionObject, *diag.Bag) {
	bag := &diag.Bag{}

	tokens, err := lexer.Scan(src)
	if err != nil {
		bag.Errorf(diag.StageLex, token.Token{}, "%v", err)
		return nil, bag
	}

	prog, errs := parser.Parse(tokens)
	for _, e := range errs {
		bag.Errorf(diag.StageParse, token.Token{}, "%s", e)
	}
	if bag.HasErrors() {
		return nil, bag
	}

	pass.NewManager().Run(prog, bag)
	if bag.HasErrors() {
		return nil, bag
	}

	fn, compileBag := compiler.Compile(prog)
	for _, d := range compileBag.Items() {
		bag.Add(d.Severity, d.Stage, d.Token, "%s", d.Message)
	}
	return fn, bag
}

// execute runs a freshly compiled program to completion on a fresh VM
// with the standard library's natives installed as globals.
func execute(fn *value.FunctionObject, src, filename string) error {
	bag := &diag.Bag{}
	v := vm.New(config.Default(), bag)
	for name, native := range stdlib.All() {
		v.DefineGlobal(name, value.NewObject(native))
	}
	if _, err := v.Run(fn); err != nil {
		if bag.HasErrors() {
			fmt.Fprint(stderr, diag.Render(src, filename, bag))
		} else {
			fmt.Fprintln(stderr, color.RedString("runtime error: %v", err))
		}
		return cli.NewExitError("", 1)
	}
	return nil
}

// runREPL reads lines from stdin until EOF, compiling and running each
// complete buffer as its own program on a persistent VM. Each input is
// compiled on its own, so a name defined by an earlier input is not
// resolvable in a later one. This mirrors spec.md §6's "clear resets
// accumulated source; exit leaves" contract and the teacher's own REPL
// loop shape (kristofer/smog/cmd/smog/main.go's runREPL).
func runREPL() {
	fmt.Printf("cynicscript %s\n", version)
	fmt.Println("Type 'exit' to leave, 'clear' to reset the current buffer.")

	bag := &diag.Bag{}
	v := vm.New(config.Default(), bag)
	for name, native := range stdlib.All() {
		v.DefineGlobal(name, value.NewObject(native))
	}

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder

	for {
		if buf.Len() == 0 {
			fmt.Print("> ")
		} else {
			fmt.Print("... ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "exit":
			return
		case "clear":
			buf.Reset()
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")
		src := buf.String()

		// A line ending mid-block (open '{' with no matching '}' yet)
		// is treated as incomplete input and folded into the next line,
		// the REPL's only concession to this language's brace-delimited
		// blocks spanning multiple lines of input.
		if strings.Count(src, "{") > strings.Count(src, "}") {
			continue
		}

		fn, compileBag := compileSource(src)
		if compileBag.HasErrors() {
			fmt.Fprint(stderr, diag.Render(src, "<repl>", compileBag))
			buf.Reset()
			continue
		}

		if _, err := v.Run(fn); err != nil {
			fmt.Fprintln(stderr, color.RedString("runtime error: %v", err))
		}
		buf.Reset()
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, color.RedString("error reading input: %v", err))
	}
}
