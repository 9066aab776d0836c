// Package compiler lowers a parsed, pass-checked *ast.Program into
// bytecode: a value.Chunk per function, wired together the way spec.md
// §4.5 describes (short-circuit jumps for &&/||, for-loop desugaring
// already done by the parser, destructuring via APPREGATE_RESOLVE,
// closures via CLOSURE + upvalue pairs, classes as compile-time-constructed
// constants, modules as a CLOSURE + CALL + MODULE sequence run at load).
//
// Every compiled function gets its own Compiler sharing the outer
// diag.Bag, chained through `enclosing` the way the teacher's single
// Compiler handles one flat program — generalized here into one
// Compiler per function scope so nested functions each get their own
// symtab.Table and value.Chunk.
package compiler

import (
	"fmt"

	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/diag"
	"github.com/kristofer/cynicscript/stdlib"
	"github.com/kristofer/cynicscript/symtab"
	"github.com/kristofer/cynicscript/token"
	"github.com/kristofer/cynicscript/value"
)

type loopContext struct {
	continueTarget int
	breakJumps     []int
	increment      ast.Statement
}

// Compiler compiles one function body (the top-level program counts as
// an implicit zero-arg function) into a value.Chunk.
type Compiler struct {
	bag       *diag.Bag
	enclosing *Compiler
	table     *symtab.Table
	chunk     *value.Chunk
	fnName    string
	loops     []*loopContext
}

// Compile compiles prog into the implicit top-level FunctionObject.
func Compile(prog *ast.Program) (*value.FunctionObject, *diag.Bag) {
	bag := &diag.Bag{}
	c := &Compiler{
		bag:    bag,
		table:  symtab.NewGlobal(),
		chunk:  value.NewChunk(),
		fnName: "main",
	}
	// The standard library's natives are installed as globals by the host
	// (vm.DefineGlobal) before the program runs; declare their names so
	// calls to them resolve.
	for name := range stdlib.All() {
		c.table.Define(name, false, nil)
	}
	for _, stmt := range prog.Statements {
		c.compileStmt(stmt)
	}
	c.chunk.Emit(bytecode.NULL, prog.Token)
	c.chunk.Emit(bytecode.RETURN, prog.Token)
	fn := value.NewFunction("main", 0, value.VarArgNone, c.chunk)
	fn.UpvalueCount = len(c.table.Upvalues())
	return fn, bag
}

func (c *Compiler) fatal(t ast.Node, format string, args ...any) {
	c.bag.Errorf(diag.StageCompile, t.Tok(), format, args...)
}

func (c *Compiler) emit(op bytecode.Opcode, t ast.Node, args ...int32) int {
	return c.chunk.Emit(op, t.Tok(), args...)
}

func (c *Compiler) constIndex(v value.Value) int32 {
	return int32(c.chunk.AddConstant(v))
}

func (c *Compiler) stringConst(s string) int32 {
	return c.constIndex(value.NewObject(value.NewString(s)))
}

// emitJump emits op with a placeholder operand and returns the
// instruction index to patch once the jump target is known.
func (c *Compiler) emitJump(op bytecode.Opcode, t ast.Node) int {
	return c.emit(op, t, 0)
}

// patchJump backfills a previously emitted jump's operand with the
// distance to the current end of the chunk.
func (c *Compiler) patchJump(idx int) {
	offset := int32(len(c.chunk.Code) - idx - 1)
	c.chunk.Code[idx].Args[0] = offset
}

// emitLoop emits a backward LOOP jump to loopStart.
func (c *Compiler) emitLoop(loopStart int, t ast.Node) {
	offset := int32(len(c.chunk.Code) - loopStart + 1)
	c.emit(bytecode.LOOP, t, offset)
}

func (c *Compiler) beginScope() { c.table.BeginScope() }

func (c *Compiler) endScope(t ast.Node) {
	popped := c.table.EndScope()
	for i := len(popped) - 1; i >= 0; i-- {
		if popped[i].Captured {
			c.emit(bytecode.CLOSE_UPVALUE, t, int32(popped[i].SlotIndex))
		} else {
			c.emit(bytecode.POP, t)
		}
	}
}

func (c *Compiler) compileStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.compileExpr(s.Expression)
		c.emit(bytecode.POP, s)
	case *ast.VarDecl:
		c.compileVarDecl(s)
	case *ast.FunctionDecl:
		c.compileFunctionDecl(s)
	case *ast.ClassDecl:
		c.compileClassDecl(s)
	case *ast.EnumDecl:
		c.compileEnumDecl(s)
	case *ast.ModuleDecl:
		c.compileModuleDecl(s)
	case *ast.ReturnStatement:
		c.compileReturn(s)
	case *ast.IfStatement:
		c.compileIf(s)
	case *ast.WhileStatement:
		c.compileWhile(s)
	case *ast.ScopeStatement:
		c.beginScope()
		for _, inner := range s.Stmts {
			c.compileStmt(inner)
		}
		c.endScope(s)
	case *ast.AstStmts:
		for _, inner := range s.Stmts {
			c.compileStmt(inner)
		}
	case *ast.BreakStatement:
		c.compileBreak(s)
	case *ast.ContinueStatement:
		c.compileContinue(s)
	default:
		c.fatal(stmt, "compiler: unhandled statement type %T", stmt)
	}
}

func (c *Compiler) compileIf(s *ast.IfStatement) {
	c.compileExpr(s.Cond)
	thenJump := c.emitJump(bytecode.JUMP_IF_FALSE, s)
	c.emit(bytecode.POP, s)
	c.compileStmt(s.Then)
	elseJump := c.emitJump(bytecode.JUMP, s)
	c.patchJump(thenJump)
	c.emit(bytecode.POP, s)
	if s.Else != nil {
		c.compileStmt(s.Else)
	}
	c.patchJump(elseJump)
}

func (c *Compiler) compileWhile(s *ast.WhileStatement) {
	loopStart := len(c.chunk.Code)
	c.compileExpr(s.Cond)
	exitJump := c.emitJump(bytecode.JUMP_IF_FALSE, s)
	c.emit(bytecode.POP, s)

	lc := &loopContext{increment: s.Increment, continueTarget: loopStart}
	c.loops = append(c.loops, lc)
	c.compileStmt(s.Body)
	if s.Increment != nil {
		c.compileStmt(s.Increment)
	}
	c.loops = c.loops[:len(c.loops)-1]

	c.emitLoop(loopStart, s)
	c.patchJump(exitJump)
	c.emit(bytecode.POP, s)
	for _, jmp := range lc.breakJumps {
		c.patchJump(jmp)
	}
}

func (c *Compiler) compileBreak(s *ast.BreakStatement) {
	if len(c.loops) == 0 {
		c.fatal(s, "break outside of a loop")
		return
	}
	lc := c.loops[len(c.loops)-1]
	jmp := c.emitJump(bytecode.JUMP, s)
	lc.breakJumps = append(lc.breakJumps, jmp)
}

func (c *Compiler) compileContinue(s *ast.ContinueStatement) {
	if len(c.loops) == 0 {
		c.fatal(s, "continue outside of a loop")
		return
	}
	lc := c.loops[len(c.loops)-1]
	if lc.increment != nil {
		c.compileStmt(lc.increment)
	}
	// The increment has just run; loop straight back to the condition.
	c.emitLoop(lc.continueTarget, s)
}

func (c *Compiler) compileReturn(s *ast.ReturnStatement) {
	switch v := s.Value.(type) {
	case nil:
		c.emit(bytecode.NULL, s)
	case *ast.Aggregate:
		// Multiple return values are packed into one array, the same
		// shape a multi-binding `let [a, b] = f()` destructures.
		for _, el := range v.Elements {
			c.compileExpr(el)
		}
		c.emit(bytecode.ARRAY, s, int32(len(v.Elements)))
	default:
		c.compileExpr(v)
	}
	c.emit(bytecode.RETURN, s)
}

func (c *Compiler) compileVarDecl(s *ast.VarDecl) {
	for _, b := range s.Bindings {
		if b.Pattern.Name != nil {
			c.compileSingleBinding(b, s.Token)
			continue
		}
		c.compileDestructureBinding(b, s.Token)
	}
}

func (c *Compiler) compileSingleBinding(b ast.VarBinding, _ token.Token) {
	name := b.Pattern.Name
	if b.Initializer != nil {
		c.compileExpr(b.Initializer)
	} else {
		c.emit(bytecode.NULL, name)
	}
	c.defineBinding(name.Name, name.IsConst, name)
}

func (c *Compiler) compileDestructureBinding(b ast.VarBinding, _ any) {
	if b.Initializer != nil {
		c.compileExpr(b.Initializer)
	} else {
		c.emit(bytecode.NULL, b.Pattern.Elements[0])
	}
	n := len(b.Pattern.Elements)
	if b.Pattern.Varargs != nil {
		c.emit(bytecode.APPREGATE_RESOLVE_VAR_ARG, b.Pattern.Elements[0], int32(n))
	} else {
		c.emit(bytecode.APPREGATE_RESOLVE, b.Pattern.Elements[0], int32(n))
	}
	// APPREGATE_RESOLVE leaves n (or n+1, with the trailing array) values
	// on the stack in pattern order, the last one on top.
	if c.table.IsGlobal() {
		// SET_GLOBAL binds the top of the stack and pops it, so globals
		// are bound from the end of the pattern back to the start.
		if b.Pattern.Varargs != nil {
			c.defineBinding(b.Pattern.Varargs.Name, false, b.Pattern.Varargs)
		}
		for i := n - 1; i >= 0; i-- {
			el := b.Pattern.Elements[i]
			c.defineBinding(el.Name, el.IsConst, el)
		}
		return
	}
	// Locals stay in their slots, so each is bound in pattern order.
	for _, el := range b.Pattern.Elements {
		c.defineBinding(el.Name, el.IsConst, el)
	}
	if b.Pattern.Varargs != nil {
		c.defineBinding(b.Pattern.Varargs.Name, false, b.Pattern.Varargs)
	}
}

// defineBinding binds name to whatever value currently sits on top of the
// stack, as a local, upvalue-capturable local, or global depending on
// scope.
func (c *Compiler) defineBinding(name string, isConst bool, t ast.Node) {
	if c.table.IsGlobal() {
		if _, err := c.table.Define(name, isConst, nil); err != nil {
			c.fatal(t, "%s", err)
		}
		c.emit(bytecode.SET_GLOBAL, t, c.stringConst(name))
		c.emit(bytecode.POP, t)
		return
	}
	if _, err := c.table.Define(name, isConst, nil); err != nil {
		c.fatal(t, "%s", err)
	}
	// Locals simply stay on the stack at the slot the symtab assigned;
	// no further instruction is needed (matches the teacher's "variable
	// declarations don't generate code, they just reserve space").
}

func (c *Compiler) compileFunctionDecl(s *ast.FunctionDecl) {
	sig := &symtab.Signature{Arity: len(s.Params), VarArg: s.VarArgKind != ast.VarArgNone}
	if _, err := c.table.Define(s.Name, true, sig); err != nil {
		c.fatal(s, "%s", err)
	}
	closureIdx, upvalues := c.compileFunctionBody(s.Name, s.Params, s.VarArgKind, s.Body, s)
	c.emit(bytecode.CLOSURE, s, closureIdx, int32(len(upvalues)))
	for _, uv := range upvalues {
		c.emit(bytecode.UPVALUE_PAIR, s, boolToInt32(uv.IsLocal), int32(uv.Index))
	}
	if c.table.IsGlobal() {
		c.emit(bytecode.SET_GLOBAL, s, c.stringConst(s.Name))
		c.emit(bytecode.POP, s)
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// compileFunctionBody compiles params+body into a fresh nested Compiler,
// adds the resulting FunctionObject as a constant of the enclosing
// chunk, and returns its constant index plus the resolved upvalue list.
func (c *Compiler) compileFunctionBody(name string, params []*ast.VarDescriptor, varArgKind ast.VarArgKind, body []ast.Statement, t ast.Node) (int32, []struct {
	IsLocal bool
	Index   int
}) {
	return c.compileFunctionBodyWith(name, params, varArgKind, body, t, false)
}

// compileMethodBody is compileFunctionBody for a method/constructor body,
// which additionally binds the implicit receiver to local slot 0 (spec.md
// §3 "this").
func (c *Compiler) compileMethodBody(name string, params []*ast.VarDescriptor, varArgKind ast.VarArgKind, body []ast.Statement, t ast.Node) (int32, []struct {
	IsLocal bool
	Index   int
}) {
	return c.compileFunctionBodyWith(name, params, varArgKind, body, t, true)
}

func (c *Compiler) compileFunctionBodyWith(name string, params []*ast.VarDescriptor, varArgKind ast.VarArgKind, body []ast.Statement, t ast.Node, bindThis bool) (int32, []struct {
	IsLocal bool
	Index   int
}) {
	inner := &Compiler{
		bag:       c.bag,
		enclosing: c,
		table:     symtab.NewChild(c.table),
		chunk:     value.NewChunk(),
		fnName:    name,
	}
	if bindThis {
		if _, err := inner.table.Define("this", true, nil); err != nil {
			inner.fatal(t, "%s", err)
		}
	}
	for _, param := range params {
		if _, err := inner.table.Define(param.Name, false, nil); err != nil {
			inner.fatal(param, "%s", err)
		}
	}
	for _, stmt := range body {
		inner.compileStmt(stmt)
	}
	inner.emit(bytecode.NULL, t)
	inner.emit(bytecode.RETURN, t)

	var vak value.VarArgKind
	switch varArgKind {
	case ast.VarArgUnnamed:
		vak = value.VarArgUnnamed
	case ast.VarArgNamed:
		vak = value.VarArgNamed
	}
	fn := value.NewFunction(name, len(params), vak, inner.chunk)
	fn.UpvalueCount = len(inner.table.Upvalues())
	idx := c.constIndex(value.NewObject(fn))
	return idx, inner.table.Upvalues()
}

func (c *Compiler) compileEnumDecl(s *ast.EnumDecl) {
	enum := value.NewEnum(s.Name)
	next := value.NewI64(0)
	for _, m := range s.Members {
		var v value.Value
		if m.Value != nil {
			v = c.evalConstExpr(m.Value)
		} else if next.Kind == value.I64 {
			v = next
		} else {
			v = value.NewNull()
		}
		enum.Set(m.Name, v)
		if v.Kind == value.I64 {
			next = value.NewI64(v.I64 + 1)
		} else {
			next = value.NewNull()
		}
	}
	idx := c.constIndex(value.NewObject(enum))
	c.emit(bytecode.CONSTANT, s, idx)
	if c.table.IsGlobal() {
		if _, err := c.table.Define(s.Name, true, nil); err != nil {
			c.fatal(s, "%s", err)
		}
		c.emit(bytecode.SET_GLOBAL, s, c.stringConst(s.Name))
		c.emit(bytecode.POP, s)
	} else {
		if _, err := c.table.Define(s.Name, true, nil); err != nil {
			c.fatal(s, "%s", err)
		}
	}
}

// evalConstExpr evaluates a (post constant-fold) literal expression at
// compile time, for contexts like enum member values that must be known
// statically. Non-literal input is a compile error: constant-fold ran
// already, so anything reaching here that isn't a Literal is a genuinely
// dynamic expression used where spec.md requires a constant.
func (c *Compiler) evalConstExpr(e ast.Expression) value.Value {
	lit, ok := e.(*ast.Literal)
	if !ok {
		c.fatal(e, "expected a constant expression")
		return value.NewNull()
	}
	switch lit.Kind {
	case ast.LitI64:
		return value.NewI64(lit.I64)
	case ast.LitF64:
		return value.NewF64(lit.F64)
	case ast.LitBool:
		return value.NewBool(lit.Bool)
	case ast.LitString:
		return value.NewObject(value.NewString(lit.Str))
	case ast.LitChar:
		return value.NewObject(value.NewString(string(lit.Char)))
	default:
		return value.NewNull()
	}
}

// moduleExportName returns the binding name a top-level module statement
// introduces, if any; used to decide which names compileModuleBody exports.
func moduleExportName(stmt ast.Statement) (string, bool) {
	switch s := stmt.(type) {
	case *ast.FunctionDecl:
		return s.Name, true
	case *ast.ClassDecl:
		return s.Name, true
	case *ast.EnumDecl:
		return s.Name, true
	}
	return "", false
}

// compileModuleBody is compileFunctionBody specialized for a module: it
// additionally packs every top-level binding (single var/const names,
// functions, classes, enums) into a struct literal and returns that, so
// the VM's MODULE opcode can turn the call's result straight into a
// ModuleObject's exports (spec.md §3 "module" exports its top-level
// bindings). Destructuring var bindings at module scope are skipped: a
// module export name must be a single identifier.
func (c *Compiler) compileModuleBody(name string, body []ast.Statement, t ast.Node) (int32, []struct {
	IsLocal bool
	Index   int
}) {
	inner := &Compiler{
		bag:       c.bag,
		enclosing: c,
		table:     symtab.NewChild(c.table),
		chunk:     value.NewChunk(),
		fnName:    name,
	}
	var exportNames []string
	for _, stmt := range body {
		inner.compileStmt(stmt)
		if n, ok := moduleExportName(stmt); ok {
			exportNames = append(exportNames, n)
			continue
		}
		if vd, ok := stmt.(*ast.VarDecl); ok {
			for _, b := range vd.Bindings {
				if b.Pattern.Name != nil {
					exportNames = append(exportNames, b.Pattern.Name.Name)
				}
			}
		}
	}
	for _, n := range exportNames {
		kind, slot, _, err := inner.table.Resolve(n, -1)
		if err != nil || kind != symtab.Local {
			inner.fatal(t, "module export %q is not a local binding", n)
			continue
		}
		inner.emit(bytecode.CONSTANT, t, inner.stringConst(n))
		inner.emitNameRead(symtab.Local, slot, n, t)
	}
	inner.emit(bytecode.STRUCT, t, int32(len(exportNames)))
	inner.emit(bytecode.RETURN, t)

	fn := value.NewFunction(name, 0, value.VarArgNone, inner.chunk)
	fn.UpvalueCount = len(inner.table.Upvalues())
	idx := c.constIndex(value.NewObject(fn))
	return idx, inner.table.Upvalues()
}

func (c *Compiler) compileModuleDecl(s *ast.ModuleDecl) {
	idx, upvalues := c.compileModuleBody(s.Name, s.Body, s)
	c.emit(bytecode.CLOSURE, s, idx, int32(len(upvalues)))
	for _, uv := range upvalues {
		c.emit(bytecode.UPVALUE_PAIR, s, boolToInt32(uv.IsLocal), int32(uv.Index))
	}
	c.emit(bytecode.CALL, s, 0)
	c.emit(bytecode.MODULE, s, c.stringConst(s.Name))
	if c.table.IsGlobal() {
		if _, err := c.table.Define(s.Name, true, nil); err != nil {
			c.fatal(s, "%s", err)
		}
		c.emit(bytecode.SET_GLOBAL, s, c.stringConst(s.Name))
		c.emit(bytecode.POP, s)
	} else {
		if _, err := c.table.Define(s.Name, true, nil); err != nil {
			c.fatal(s, "%s", err)
		}
	}
}

func (c *Compiler) compileClassDecl(s *ast.ClassDecl) {
	class := value.NewClass(s.Name)
	for _, f := range s.Fields {
		class.SetField(f.Name, c.evalConstExpr(f.Initializer))
	}
	for _, m := range s.Methods {
		idx, upvalues := c.compileMethodBody(m.Name, m.Params, m.VarArgKind, m.Body, m)
		fn := c.chunk.Constants[idx].Object.(*value.FunctionObject)
		fn.HasReceiver = true
		class.Methods[m.Name] = value.NewClosure(fn)
		if len(upvalues) > 0 {
			c.fatal(m, "method %s captures outer state, which is not supported for class-level closures", m.Name)
		}
	}
	for _, ctor := range s.Constructors {
		_, upvalues := c.compileMethodBody(s.Name, ctor.Params, ctor.VarArgKind, ctor.Body, ctor)
		lastIdx := len(c.chunk.Constants) - 1
		fn := c.chunk.Constants[lastIdx].Object.(*value.FunctionObject)
		fn.HasReceiver = true
		class.Constructors[len(ctor.Params)] = value.NewClosure(fn)
		if len(upvalues) > 0 {
			c.fatal(ctor, "constructor for %s captures outer state, which is not supported for class-level closures", s.Name)
		}
	}
	for _, e := range s.Enums {
		enum := value.NewEnum(e.Name)
		next := value.NewI64(0)
		for _, m := range e.Members {
			var v value.Value
			if m.Value != nil {
				v = c.evalConstExpr(m.Value)
			} else {
				v = next
			}
			enum.Set(m.Name, v)
			if v.Kind == value.I64 {
				next = value.NewI64(v.I64 + 1)
			}
		}
		class.Enums[e.Name] = enum
	}

	for _, parentName := range s.Parents {
		kind, slot, _, err := c.table.Resolve(parentName, -1)
		if err != nil || kind == symtab.NotFound {
			c.fatal(s, "unresolved parent class %q", parentName)
			continue
		}
		c.emitNameRead(kind, slot, parentName, s)
	}
	idx := c.constIndex(value.NewObject(class))
	c.emit(bytecode.CONSTANT, s, int32(idx))
	c.emit(bytecode.CLASS, s, c.stringConst(s.Name), int32(len(s.Parents)))

	if c.table.IsGlobal() {
		if _, err := c.table.Define(s.Name, true, nil); err != nil {
			c.fatal(s, "%s", err)
		}
		c.emit(bytecode.SET_GLOBAL, s, c.stringConst(s.Name))
		c.emit(bytecode.POP, s)
	} else {
		if _, err := c.table.Define(s.Name, true, nil); err != nil {
			c.fatal(s, "%s", err)
		}
	}
}

func (c *Compiler) emitNameRead(kind symtab.ResolveKind, slot int, name string, t ast.Node) {
	switch kind {
	case symtab.Local:
		c.emit(bytecode.GET_LOCAL, t, int32(slot))
	case symtab.Upvalue:
		c.emit(bytecode.GET_UPVALUE, t, int32(slot))
	case symtab.Global:
		c.emit(bytecode.GET_GLOBAL, t, c.stringConst(name))
	default:
		c.fatal(t, fmt.Sprintf("undefined reference %q", name))
	}
}
