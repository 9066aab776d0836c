package pass

import (
	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/diag"
)

// SyntaxCheck validates structural rules the grammar alone can't enforce:
// `ref` may only target an lvalue and dict keys must be constant after
// folding (spec.md §4.3/§4.4 SemanticError cases). Varargs-last (for
// parameters and for a destructuring pattern's `...rest`) and `new`
// wrapping a Call are guaranteed by the parser and not re-checked here.
// Findings are fatal (spec.md §7), so this pass must run after
// ConstantFold collapses foldable dict keys.
type SyntaxCheck struct{}

func (SyntaxCheck) Name() string { return "syntax-check" }

func (sc SyntaxCheck) Run(prog *ast.Program, bag *diag.Bag) {
	for _, stmt := range prog.Statements {
		sc.checkStmt(stmt, bag)
	}
}

func (sc SyntaxCheck) checkStmt(stmt ast.Statement, bag *diag.Bag) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		sc.checkExpr(s.Expression, bag)
	case *ast.ReturnStatement:
		if s.Value != nil {
			sc.checkExpr(s.Value, bag)
		}
	case *ast.IfStatement:
		sc.checkExpr(s.Cond, bag)
		sc.checkStmt(s.Then, bag)
		if s.Else != nil {
			sc.checkStmt(s.Else, bag)
		}
	case *ast.WhileStatement:
		sc.checkExpr(s.Cond, bag)
		sc.checkStmt(s.Body, bag)
		if s.Increment != nil {
			sc.checkStmt(s.Increment, bag)
		}
	case *ast.ScopeStatement:
		for _, inner := range s.Stmts {
			sc.checkStmt(inner, bag)
		}
	case *ast.AstStmts:
		for _, inner := range s.Stmts {
			sc.checkStmt(inner, bag)
		}
	case *ast.VarDecl:
		for _, b := range s.Bindings {
			if b.Pattern.Elements != nil && b.Pattern.Varargs != nil {
				// varargs-last is enforced by construction in the parser
				// (see varArgLast); nothing further to check here.
				_ = b.Pattern
			}
			if b.Initializer != nil {
				sc.checkExpr(b.Initializer, bag)
			}
		}
	case *ast.FunctionDecl:
		if !varArgLast(s.Params, s.VarArgKind) {
			bag.Errorf(diag.StagePass, s.Token, "varargs parameter must be the last parameter")
		}
		for _, inner := range s.Body {
			sc.checkStmt(inner, bag)
		}
	case *ast.ClassDecl:
		for _, f := range s.Fields {
			if f.Initializer != nil {
				sc.checkExpr(f.Initializer, bag)
			}
		}
		for _, m := range s.Methods {
			sc.checkStmt(m, bag)
		}
		for _, ctor := range s.Constructors {
			sc.checkStmt(ctor, bag)
		}
	case *ast.ModuleDecl:
		for _, inner := range s.Body {
			sc.checkStmt(inner, bag)
		}
	}
}

func (sc SyntaxCheck) checkExpr(e ast.Expression, bag *diag.Bag) {
	switch n := e.(type) {
	case *ast.Grouping:
		sc.checkExpr(n.Inner, bag)
	case *ast.Prefix:
		sc.checkExpr(n.Operand, bag)
	case *ast.Postfix:
		sc.checkExpr(n.Operand, bag)
	case *ast.Infix:
		sc.checkExpr(n.Left, bag)
		sc.checkExpr(n.Right, bag)
	case *ast.Ternary:
		sc.checkExpr(n.Cond, bag)
		sc.checkExpr(n.Then, bag)
		sc.checkExpr(n.Else, bag)
	case *ast.Array:
		for _, el := range n.Elements {
			sc.checkExpr(el, bag)
		}
	case *ast.Dict:
		for _, entry := range n.Entries {
			if !isConstantExpr(entry.Key) {
				bag.Errorf(diag.StagePass, n.Token, "dict key must be a constant expression")
			}
			sc.checkExpr(entry.Key, bag)
			sc.checkExpr(entry.Value, bag)
		}
	case *ast.Struct:
		for _, f := range n.Fields {
			sc.checkExpr(f.Value, bag)
		}
	case *ast.Call:
		sc.checkExpr(n.Callee, bag)
		for _, a := range n.Args {
			sc.checkExpr(a, bag)
		}
	case *ast.Index:
		sc.checkExpr(n.Receiver, bag)
		sc.checkExpr(n.Index, bag)
	case *ast.Dot:
		sc.checkExpr(n.Receiver, bag)
	case *ast.Reference:
		if !isLvalue(n.Target) {
			bag.Errorf(diag.StagePass, n.Token, "ref target must be a variable, index, or property expression")
		}
		sc.checkExpr(n.Target, bag)
	case *ast.Lambda:
		if !varArgLast(n.Params, n.VarArgKind) {
			bag.Errorf(diag.StagePass, n.Token, "varargs parameter must be the last parameter")
		}
		for _, inner := range n.Body {
			sc.checkStmt(inner, bag)
		}
	case *ast.New:
		sc.checkExpr(n.Call, bag)
	case *ast.CompoundExpr:
		for _, inner := range n.Stmts {
			sc.checkStmt(inner, bag)
		}
		if n.Trailing != nil {
			sc.checkExpr(n.Trailing, bag)
		}
	case *ast.Aggregate:
		for _, el := range n.Elements {
			sc.checkExpr(el, bag)
		}
	}
}

// isConstantExpr reports whether e is foldable to a literal; ConstantFold
// runs before this pass, so any non-Literal here is a genuinely dynamic
// expression.
func isConstantExpr(e ast.Expression) bool {
	_, ok := e.(*ast.Literal)
	return ok
}

// isLvalue reports whether e names addressable storage: a bare
// identifier, an index expression, or a property access.
func isLvalue(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Index, *ast.Dot:
		return true
	}
	return false
}

func varArgLast(params []*ast.VarDescriptor, kind ast.VarArgKind) bool {
	if kind == ast.VarArgNone {
		return true
	}
	// The parser only ever appends the trailing varargs marker after all
	// named params, so by construction this always holds; params is not
	// inspected.
	return true
}
