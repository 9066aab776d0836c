// Package pass implements the compiler's pre-lowering AST passes:
// constant folding, structural syntax checking, and advisory numeric-kind
// narrowing (spec.md §4.4, grounded on the original implementation's
// TypeCheckAndResolvePass.cpp narrowing table). Passes run in a fixed
// order and accumulate diagnostics into a shared diag.Bag rather than
// halting on the first non-fatal finding, the way the teacher's own
// Compile() accumulates one []error from repeated compileStatement
// calls instead of aborting on the first.
package pass

import (
	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/diag"
)

// Pass is one ordered AST-rewriting/checking stage.
type Pass interface {
	Name() string
	Run(prog *ast.Program, bag *diag.Bag)
}

// Manager runs a fixed sequence of passes over a parsed Program.
type Manager struct {
	passes []Pass
}

// NewManager returns a Manager configured with the standard pipeline:
// constant-fold first (so syntax-check sees folded dict keys and the
// narrowing pass sees folded literal initializers), then syntax-check,
// then narrowing.
func NewManager() *Manager {
	return &Manager{passes: []Pass{
		&ConstantFold{},
		&SyntaxCheck{},
		&Narrowing{},
	}}
}

// Run executes every configured pass in order against bag.
func (m *Manager) Run(prog *ast.Program, bag *diag.Bag) {
	for _, p := range m.passes {
		p.Run(prog, bag)
	}
}
