package compiler

import (
	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/bytecode"
	"github.com/kristofer/cynicscript/symtab"
	"github.com/kristofer/cynicscript/value"
)

var infixOps = map[string]bytecode.Opcode{
	"+": bytecode.ADD, "-": bytecode.SUB, "*": bytecode.MUL, "/": bytecode.DIV, "%": bytecode.MOD,
	"<": bytecode.LESS, ">": bytecode.GREATER,
	"&": bytecode.BIT_AND, "|": bytecode.BIT_OR, "^": bytecode.BIT_XOR,
	"<<": bytecode.BIT_LEFT_SHIFT, ">>": bytecode.BIT_RIGHT_SHIFT,
}

var compoundAssignBase = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"&=": "&", "|=": "|", "^=": "^", "<<=": "<<", ">>=": ">>",
}

// compileExpr compiles e, leaving exactly one value on the stack.
func (c *Compiler) compileExpr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.Literal:
		c.compileLiteral(n)
	case *ast.Identifier:
		c.compileIdentRead(n.Name, n, -1)
	case *ast.This:
		kind, slot, _, _ := c.table.Resolve("this", -1)
		c.emitNameRead(kind, slot, "this", n)
	case *ast.Base:
		c.emit(bytecode.GET_BASE, n)
	case *ast.Grouping:
		c.compileExpr(n.Inner)
	case *ast.Array:
		for _, el := range n.Elements {
			c.compileExpr(el)
		}
		c.emit(bytecode.ARRAY, n, int32(len(n.Elements)))
	case *ast.Dict:
		for _, entry := range n.Entries {
			c.compileExpr(entry.Key)
			c.compileExpr(entry.Value)
		}
		c.emit(bytecode.DICT, n, int32(len(n.Entries)))
	case *ast.Struct:
		for _, f := range n.Fields {
			c.emit(bytecode.CONSTANT, n, c.stringConst(f.Name))
			c.compileExpr(f.Value)
		}
		c.emit(bytecode.STRUCT, n, int32(len(n.Fields)))
	case *ast.Prefix:
		c.compilePrefix(n)
	case *ast.Postfix:
		c.compilePostfix(n)
	case *ast.Infix:
		c.compileInfix(n)
	case *ast.Ternary:
		c.compileTernary(n)
	case *ast.Index:
		c.compileExpr(n.Receiver)
		c.compileExpr(n.Index)
		c.emit(bytecode.GET_INDEX, n)
	case *ast.Dot:
		c.compileExpr(n.Receiver)
		c.emit(bytecode.GET_PROPERTY, n, c.stringConst(n.Name))
	case *ast.Call:
		c.compileCall(n)
	case *ast.New:
		c.compileNew(n)
	case *ast.Reference:
		c.compileReference(n)
	case *ast.Lambda:
		idx, upvalues := c.compileFunctionBody("", n.Params, n.VarArgKind, n.Body, n)
		c.emit(bytecode.CLOSURE, n, idx, int32(len(upvalues)))
		for _, uv := range upvalues {
			c.emit(bytecode.UPVALUE_PAIR, n, boolToInt32(uv.IsLocal), int32(uv.Index))
		}
	case *ast.CompoundExpr:
		c.compileCompoundExpr(n)
	case *ast.Aggregate:
		// An aggregate (`a, b, c`) evaluates to a single array value;
		// destructuring binds against it via APPREGATE_RESOLVE/
		// APPREGATE_RESOLVE_VAR_ARG, and a bare aggregate expression
		// elsewhere is just that array.
		for _, el := range n.Elements {
			c.compileExpr(el)
		}
		c.emit(bytecode.ARRAY, n, int32(len(n.Elements)))
	default:
		c.fatal(e, "compiler: unhandled expression type %T", e)
		c.emit(bytecode.NULL, e)
	}
}

func (c *Compiler) compileLiteral(n *ast.Literal) {
	switch n.Kind {
	case ast.LitNull:
		c.emit(bytecode.NULL, n)
	case ast.LitI64:
		c.emit(bytecode.CONSTANT, n, c.constIndex(value.NewI64(n.I64)))
	case ast.LitF64:
		c.emit(bytecode.CONSTANT, n, c.constIndex(value.NewF64(n.F64)))
	case ast.LitBool:
		c.emit(bytecode.CONSTANT, n, c.constIndex(value.NewBool(n.Bool)))
	case ast.LitChar:
		c.emit(bytecode.CONSTANT, n, c.stringConst(string(n.Char)))
	case ast.LitString:
		c.emit(bytecode.CONSTANT, n, c.stringConst(n.Str))
	}
}

// compileIdentRead emits whatever read opcode resolves name, narrowed by
// argc when the identifier sits in call position (-1 otherwise).
func (c *Compiler) compileIdentRead(name string, t ast.Node, argc int) {
	kind, slot, _, _ := c.table.Resolve(name, argc)
	c.emitNameRead(kind, slot, name, t)
}

func (c *Compiler) compilePrefix(n *ast.Prefix) {
	switch n.Operator {
	case "++", "--":
		c.compileIncDec(n.Operand, n.Operator == "++", n, true)
		return
	}
	c.compileExpr(n.Operand)
	switch n.Operator {
	case "-":
		c.emit(bytecode.MINUS, n)
	case "!":
		c.emit(bytecode.NOT, n)
	case "~":
		c.emit(bytecode.BIT_NOT, n)
	}
}

func (c *Compiler) compilePostfix(n *ast.Postfix) {
	switch n.Operator {
	case "++", "--":
		c.compileIncDec(n.Operand, n.Operator == "++", n, false)
	case "!":
		c.compileExpr(n.Operand)
		c.emit(bytecode.FACTORIAL, n)
	}
}

// compileIncDec reads the lvalue, adds/subtracts one, writes it back,
// leaving either the new (prefix) or old (postfix) value on the stack.
func (c *Compiler) compileIncDec(target ast.Expression, isInc bool, t ast.Node, wantNew bool) {
	if !wantNew {
		// Postfix: read the old value once more underneath the update;
		// it is what remains after the stored new value is popped below.
		c.compileExpr(target)
	}
	c.compileExpr(target)
	c.emit(bytecode.CONSTANT, t, c.constIndex(value.NewI64(1)))
	if isInc {
		c.emit(bytecode.ADD, t)
	} else {
		c.emit(bytecode.SUB, t)
	}
	c.compileStoreLvalue(target, t)
	if !wantNew {
		c.emit(bytecode.POP, t)
	}
}

func (c *Compiler) compileTernary(n *ast.Ternary) {
	c.compileExpr(n.Cond)
	elseJump := c.emitJump(bytecode.JUMP_IF_FALSE, n)
	c.emit(bytecode.POP, n)
	c.compileExpr(n.Then)
	endJump := c.emitJump(bytecode.JUMP, n)
	c.patchJump(elseJump)
	c.emit(bytecode.POP, n)
	c.compileExpr(n.Else)
	c.patchJump(endJump)
}

func (c *Compiler) compileInfix(n *ast.Infix) {
	switch n.Operator {
	case "=":
		c.compileExpr(n.Right)
		c.compileStoreLvalue(n.Left, n)
		return
	case "&&":
		c.compileExpr(n.Left)
		shortJump := c.emitJump(bytecode.JUMP_IF_FALSE, n)
		c.emit(bytecode.POP, n)
		c.compileExpr(n.Right)
		c.patchJump(shortJump)
		return
	case "||":
		c.compileExpr(n.Left)
		elseJump := c.emitJump(bytecode.JUMP_IF_FALSE, n)
		endJump := c.emitJump(bytecode.JUMP, n)
		c.patchJump(elseJump)
		c.emit(bytecode.POP, n)
		c.compileExpr(n.Right)
		c.patchJump(endJump)
		return
	case "==":
		c.compileExpr(n.Left)
		c.compileExpr(n.Right)
		c.emit(bytecode.EQUAL, n)
		return
	case "!=":
		c.compileExpr(n.Left)
		c.compileExpr(n.Right)
		c.emit(bytecode.EQUAL, n)
		c.emit(bytecode.NOT, n)
		return
	case "<=":
		c.compileExpr(n.Left)
		c.compileExpr(n.Right)
		c.emit(bytecode.GREATER, n)
		c.emit(bytecode.NOT, n)
		return
	case ">=":
		c.compileExpr(n.Left)
		c.compileExpr(n.Right)
		c.emit(bytecode.LESS, n)
		c.emit(bytecode.NOT, n)
		return
	}
	if base, ok := compoundAssignBase[n.Operator]; ok {
		c.compileExpr(n.Left)
		c.compileExpr(n.Right)
		c.emit(infixOps[base], n)
		c.compileStoreLvalue(n.Left, n)
		return
	}
	if op, ok := infixOps[n.Operator]; ok {
		c.compileExpr(n.Left)
		c.compileExpr(n.Right)
		c.emit(op, n)
		return
	}
	c.fatal(n, "compiler: unhandled infix operator %q", n.Operator)
}

// compileStoreLvalue writes the value currently on top of the stack
// through target, leaving that same value on the stack afterward (so
// assignment remains usable as an expression).
func (c *Compiler) compileStoreLvalue(target ast.Expression, t ast.Node) {
	switch lv := target.(type) {
	case *ast.Identifier:
		kind, slot, isConst, _ := c.table.Resolve(lv.Name, -1)
		if isConst {
			c.fatal(lv, "cannot assign to constant %q", lv.Name)
		}
		switch kind {
		case symtab.Local:
			c.emit(bytecode.SET_LOCAL, t, int32(slot))
		case symtab.Upvalue:
			c.emit(bytecode.SET_UPVALUE, t, int32(slot))
		default:
			c.emit(bytecode.SET_GLOBAL, t, c.stringConst(lv.Name))
		}
	case *ast.Index:
		c.compileExpr(lv.Receiver)
		c.compileExpr(lv.Index)
		c.emit(bytecode.SET_INDEX, t)
	case *ast.Dot:
		c.compileExpr(lv.Receiver)
		c.emit(bytecode.SET_PROPERTY, t, c.stringConst(lv.Name))
	default:
		c.fatal(t, "invalid assignment target")
	}
}

func (c *Compiler) compileCall(n *ast.Call) {
	argc := len(n.Args)
	if ident, ok := n.Callee.(*ast.Identifier); ok {
		c.compileIdentRead(ident.Name, ident, argc)
	} else {
		c.compileExpr(n.Callee)
	}
	for _, a := range n.Args {
		c.compileExpr(a)
	}
	c.emit(bytecode.CALL, n, int32(argc))
}

func (c *Compiler) compileNew(n *ast.New) {
	if ident, ok := n.Call.Callee.(*ast.Identifier); ok {
		c.compileIdentRead(ident.Name, ident, -1)
	} else {
		c.compileExpr(n.Call.Callee)
	}
	for _, a := range n.Call.Args {
		c.compileExpr(a)
	}
	c.emit(bytecode.CALL, n, int32(len(n.Call.Args)))
}

// compileReference compiles `&target` into the matching REF_* opcode,
// per spec.md §4.5's reference-object family, unifying global/local/
// upvalue/index targets the way value.Slot does at runtime.
func (c *Compiler) compileReference(n *ast.Reference) {
	switch tgt := n.Target.(type) {
	case *ast.Identifier:
		kind, slot, _, _ := c.table.Resolve(tgt.Name, -1)
		switch kind {
		case symtab.Local:
			c.emit(bytecode.REF_LOCAL, n, int32(slot))
		case symtab.Upvalue:
			c.emit(bytecode.REF_UPVALUE, n, int32(slot))
		default:
			c.emit(bytecode.REF_GLOBAL, n, c.stringConst(tgt.Name))
		}
	case *ast.Index:
		if ident, ok := tgt.Receiver.(*ast.Identifier); ok {
			kind, slot, _, _ := c.table.Resolve(ident.Name, -1)
			c.compileExpr(tgt.Index)
			switch kind {
			case symtab.Local:
				c.emit(bytecode.REF_INDEX_LOCAL, n, int32(slot))
			case symtab.Upvalue:
				c.emit(bytecode.REF_INDEX_UPVALUE, n, int32(slot))
			default:
				c.emit(bytecode.REF_INDEX_GLOBAL, n, c.stringConst(ident.Name))
			}
			return
		}
		c.fatal(n, "reference to a computed index receiver is not supported")
	default:
		c.fatal(n, "invalid reference target")
	}
}

// compileCompoundExpr compiles `({ stmts...; trailing })`. Its statements
// share the enclosing lexical scope rather than opening their own: the
// stack machine has no "keep top value, discard N slots beneath it"
// instruction, so any local declared inside would either leak its slot
// or, if popped, take the trailing result with it. Locals declared here
// are therefore visible (and live) for the remainder of the enclosing
// scope, a documented loosening of block scoping for this one construct.
func (c *Compiler) compileCompoundExpr(n *ast.CompoundExpr) {
	for _, stmt := range n.Stmts {
		c.compileStmt(stmt)
	}
	if n.Trailing != nil {
		c.compileExpr(n.Trailing)
	} else {
		c.emit(bytecode.NULL, n)
	}
}
