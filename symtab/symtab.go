// Package symtab implements the compiler's scope-and-binding tracking:
// nested symbol tables chained by an enclosing pointer, a fixed local
// slot array per function scope, and upvalue resolution across
// enclosing function boundaries (spec.md §3 "lexical scoping" and
// §4.9's non-local-return/closure invariants). It generalizes the
// teacher's single flat `symbols map[string]int` compiler field into a
// proper nested table, the way a real closures-and-scopes language
// needs, while keeping the teacher's "a symbol is just a slot index"
// simplicity at each individual scope level.
package symtab

import "fmt"

// MaxLocals bounds one function scope's local slots, mirroring the
// fixed-size local array of config.Options.StackSize's frame budget.
const MaxLocals = 256

// Signature records a function binding's arity, so overload resolution
// (multiple declarations of the same name at different arities, spec.md
// §3 "function overloading") can pick the right one at a call site.
type Signature struct {
	Arity    int
	VarArg   bool
}

type localSlot struct {
	name       string
	depth      int
	isConst    bool
	captured   bool
	signatures []Signature // non-nil only for function bindings
}

type upvalueSlot struct {
	index   int
	isLocal bool // true: captures enclosing's local slot Index; false: captures enclosing's upvalue Index
}

// Table is one function's compile-time scope: its locals, its scope
// depth, and its resolved upvalues. The global scope is represented by
// a Table with enclosing == nil whose "locals" are instead tracked as
// globals by name only (no slot limit).
type Table struct {
	enclosing *Table

	locals []localSlot
	depth  int

	upvalues []upvalueSlot

	globals map[string]Signature // only populated on the outermost Table
}

// NewGlobal creates the outermost, enclosing-less Table.
func NewGlobal() *Table {
	return &Table{globals: make(map[string]Signature)}
}

// NewChild creates a function-local Table nested inside parent.
func NewChild(parent *Table) *Table {
	return &Table{enclosing: parent}
}

// IsGlobal reports whether t has no enclosing scope.
func (t *Table) IsGlobal() bool { return t.enclosing == nil }

// BeginScope / EndScope bracket a lexical block within the current
// function; EndScope returns the locals that fell out of scope (most
// recently declared first) so the compiler can emit CLOSE_UPVALUE/POP
// for each.
func (t *Table) BeginScope() { t.depth++ }

func (t *Table) EndScope() []struct {
	SlotIndex int
	Captured  bool
} {
	t.depth--
	var popped []struct {
		SlotIndex int
		Captured  bool
	}
	for len(t.locals) > 0 && t.locals[len(t.locals)-1].depth > t.depth {
		last := t.locals[len(t.locals)-1]
		popped = append(popped, struct {
			SlotIndex int
			Captured  bool
		}{SlotIndex: len(t.locals) - 1, Captured: last.captured})
		t.locals = t.locals[:len(t.locals)-1]
	}
	return popped
}

// Define binds name at the current scope depth (or as a global, if t is
// the outermost table), returning the local slot index (meaningless for
// globals, which are looked up by name at runtime). Redefinition in the
// same block depth is an error (spec.md §7 SemanticError "symbol
// redefinition in the same scope"), except that a function name may be
// redefined with a distinct Signature (overloading).
func (t *Table) Define(name string, isConst bool, sig *Signature) (slot int, err error) {
	if t.IsGlobal() {
		if existing, ok := t.globals[name]; ok {
			if sig == nil || !overloadable(existing, *sig) {
				return 0, fmt.Errorf("symbol %q already defined in this scope", name)
			}
		}
		if sig != nil {
			t.globals[name] = *sig
		} else {
			t.globals[name] = Signature{}
		}
		return -1, nil
	}

	for i := len(t.locals) - 1; i >= 0; i-- {
		l := t.locals[i]
		if l.depth < t.depth {
			break
		}
		if l.name == name {
			if sig == nil || len(l.signatures) == 0 {
				return 0, fmt.Errorf("symbol %q already defined in this scope", name)
			}
			for _, existing := range l.signatures {
				if !overloadable(existing, *sig) {
					return 0, fmt.Errorf("symbol %q already defined in this scope", name)
				}
			}
			t.locals[i].signatures = append(t.locals[i].signatures, *sig)
			return i, nil
		}
	}

	if len(t.locals) >= MaxLocals {
		return 0, fmt.Errorf("too many local variables in one function (max %d)", MaxLocals)
	}
	ls := localSlot{name: name, depth: t.depth, isConst: isConst}
	if sig != nil {
		ls.signatures = []Signature{*sig}
	}
	t.locals = append(t.locals, ls)
	return len(t.locals) - 1, nil
}

func overloadable(a, b Signature) bool {
	return a.Arity != b.Arity || a.VarArg != b.VarArg
}

// ResolveKind distinguishes where Resolve found a binding.
type ResolveKind int

const (
	NotFound ResolveKind = iota
	Local
	Upvalue
	Global
)

// Resolve looks up name, searching this Table's locals, then (if not
// found) capturing it as an upvalue chained through enclosing Tables,
// and finally falling back to the global scope. argc, if >= 0, narrows
// resolution to a function signature whose arity is exactly that many
// positional arguments (or at most that many, if the matching signature
// is variadic); pass -1 for non-call references.
func (t *Table) Resolve(name string, argc int) (ResolveKind, int, bool, error) {
	if idx, isConst, ok := t.resolveLocal(name, argc); ok {
		return Local, idx, isConst, nil
	}
	if idx, ok := t.resolveUpvalue(name, argc); ok {
		return Upvalue, idx, false, nil
	}
	if t.resolveGlobal(name, argc) {
		return Global, 0, false, nil
	}
	return NotFound, 0, false, nil
}

func (t *Table) resolveLocal(name string, argc int) (int, bool, bool) {
	for i := len(t.locals) - 1; i >= 0; i-- {
		l := t.locals[i]
		if l.name != name {
			continue
		}
		if argc >= 0 && len(l.signatures) > 0 && !matchesAny(l.signatures, argc) {
			continue
		}
		return i, l.isConst, true
	}
	return 0, false, false
}

func matchesAny(sigs []Signature, argc int) bool {
	for _, s := range sigs {
		if s.Arity == argc || (s.VarArg && argc >= s.Arity) {
			return true
		}
	}
	return false
}

// resolveUpvalue recursively searches enclosing Tables, marking the
// captured local as `captured` (so the compiler knows to box it with
// CLOSE_UPVALUE on scope exit) and memoizing one upvalue slot per
// (enclosing index, isLocal) pair so repeated references share a slot.
func (t *Table) resolveUpvalue(name string, argc int) (int, bool) {
	if t.enclosing == nil {
		return 0, false
	}
	if idx, _, ok := t.enclosing.resolveLocal(name, argc); ok {
		t.enclosing.locals[idx].captured = true
		return t.addUpvalue(idx, true), true
	}
	if idx, ok := t.enclosing.resolveUpvalue(name, argc); ok {
		return t.addUpvalue(idx, false), true
	}
	return 0, false
}

func (t *Table) addUpvalue(index int, isLocal bool) int {
	for i, uv := range t.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	t.upvalues = append(t.upvalues, upvalueSlot{index: index, isLocal: isLocal})
	return len(t.upvalues) - 1
}

func (t *Table) resolveGlobal(name string, argc int) bool {
	root := t
	for root.enclosing != nil {
		root = root.enclosing
	}
	sig, ok := root.globals[name]
	if !ok {
		return false
	}
	if argc >= 0 && (sig.Arity != 0 || sig.VarArg) {
		return matchesAny([]Signature{sig}, argc)
	}
	return true
}

// Upvalues exposes the resolved upvalue chain for CLOSURE emission:
// Upvalues()[i] gives (isLocal, index) for upvalue slot i.
func (t *Table) Upvalues() []struct {
	IsLocal bool
	Index   int
} {
	out := make([]struct {
		IsLocal bool
		Index   int
	}, len(t.upvalues))
	for i, uv := range t.upvalues {
		out[i] = struct {
			IsLocal bool
			Index   int
		}{IsLocal: uv.isLocal, Index: uv.index}
	}
	return out
}

// LocalCount reports the number of local slots currently defined (the
// compiler uses this for the function's declared local-frame size).
func (t *Table) LocalCount() int { return len(t.locals) }

// Depth reports the current lexical block depth within this function.
func (t *Table) Depth() int { return t.depth }

// IsConstLocal reports whether the local at slot is declared const.
func (t *Table) IsConstLocal(slot int) bool {
	if slot < 0 || slot >= len(t.locals) {
		return false
	}
	return t.locals[slot].isConst
}

// IsCapturedLocal reports whether the local at slot was captured by any
// nested closure (the compiler uses this to decide GET_LOCAL vs leaving
// it addressable only via upvalue after CLOSE_UPVALUE).
func (t *Table) IsCapturedLocal(slot int) bool {
	if slot < 0 || slot >= len(t.locals) {
		return false
	}
	return t.locals[slot].captured
}
