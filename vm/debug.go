package vm

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/kristofer/cynicscript/value"
)

// DumpState renders the live value stack and call-frame stack for
// interactive debugging, the non-interactive counterpart to the
// teacher's Debugger (kristofer/smog/pkg/vm/debugger.go), which steps
// and inspects breakpoints rather than printing a snapshot. go-spew
// walks the Value/Object graph (including cyclic references through
// closures/upvalues) without the panics fmt.Sprintf("%+v", ...) risks on
// this object model's back-references.
func (v *VM) DumpState() string {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, MaxDepth: 4}
	snapshot := struct {
		Stack  []value.Value
		Frames []frameSnapshot
	}{
		Stack: append([]value.Value{}, v.stack[:v.sp]...),
	}
	for i := 0; i < v.fp; i++ {
		f := v.frames[i]
		snapshot.Frames = append(snapshot.Frames, frameSnapshot{
			Function: f.closure.Function.Name,
			IP:       f.ip,
			Base:     f.base,
		})
	}
	return cfg.Sdump(snapshot)
}

type frameSnapshot struct {
	Function string
	IP       int
	Base     int
}
