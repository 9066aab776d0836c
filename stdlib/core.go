package stdlib

import (
	"fmt"

	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

// coreFns implements the two ambient output natives every program can
// call unqualified: print/println. The teacher treats these as VM-level
// built-ins dispatched directly in its big switch (pkg/vm/vm.go's
// "println"/"print" selector cases) rather than routing them through
// primitives.go with everything else; this rewrite keeps that
// bare-name, no-group-prefix treatment instead of namespacing them like
// the rest of the registry (io.*, ds.*, ...), since a scripting
// language's print is conventionally a global, not a library call.
func coreFns() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"print":   corePrint,
		"println": corePrintln,
	}
}

func corePrint(args []value.Value, _ token.Token) (value.Value, bool, error) {
	for _, a := range args {
		fmt.Print(displayString(a))
	}
	return value.NewNull(), true, nil
}

func corePrintln(args []value.Value, _ token.Token) (value.Value, bool, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = displayString(a)
	}
	if len(parts) == 0 {
		fmt.Println()
		return value.NewNull(), true, nil
	}
	fmt.Println(joinWithSpace(parts))
	return value.NewNull(), true, nil
}

// displayString renders a Value the way print/println show it to a
// program's user: a reference prints the value it points at, not a
// `<ref ...>` wrapper, per spec.md §6's "println(r) -> 99 (reference
// follows the slot)" scenario — the wrapper form is still what
// Value.String() uses for non-output contexts like error messages.
func displayString(v value.Value) string {
	if v.Kind == value.Obj {
		if ref, ok := v.Object.(*value.ReferenceObject); ok {
			return displayString(ref.Target.Load())
		}
	}
	return v.String()
}

func joinWithSpace(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}
