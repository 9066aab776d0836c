package pass

import (
	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/diag"
)

// ConstantFold collapses literal-only arithmetic, logical, string
// concatenation, postfix-factorial, and ternary-if expressions into a
// single Literal node, idempotently (running it twice changes nothing).
// Folding must run before SyntaxCheck so dict-key-constness can be
// checked after folding collapses e.g. `1 + 2` into a Literal key.
type ConstantFold struct{}

func (ConstantFold) Name() string { return "constant-fold" }

func (cf ConstantFold) Run(prog *ast.Program, bag *diag.Bag) {
	for i, stmt := range prog.Statements {
		prog.Statements[i] = cf.foldStmt(stmt)
	}
}

func (cf ConstantFold) foldStmt(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		s.Expression = cf.fold(s.Expression)
	case *ast.ReturnStatement:
		if s.Value != nil {
			s.Value = cf.fold(s.Value)
		}
	case *ast.IfStatement:
		s.Cond = cf.fold(s.Cond)
		s.Then = cf.foldStmt(s.Then)
		if s.Else != nil {
			s.Else = cf.foldStmt(s.Else)
		}
	case *ast.WhileStatement:
		s.Cond = cf.fold(s.Cond)
		s.Body = cf.foldStmt(s.Body)
		if s.Increment != nil {
			s.Increment = cf.foldStmt(s.Increment)
		}
	case *ast.ScopeStatement:
		for i, inner := range s.Stmts {
			s.Stmts[i] = cf.foldStmt(inner)
		}
	case *ast.AstStmts:
		for i, inner := range s.Stmts {
			s.Stmts[i] = cf.foldStmt(inner)
		}
	case *ast.VarDecl:
		for i := range s.Bindings {
			if s.Bindings[i].Initializer != nil {
				s.Bindings[i].Initializer = cf.fold(s.Bindings[i].Initializer)
			}
		}
	case *ast.FunctionDecl:
		for i, inner := range s.Body {
			s.Body[i] = cf.foldStmt(inner)
		}
	case *ast.ClassDecl:
		for i := range s.Fields {
			if s.Fields[i].Initializer != nil {
				s.Fields[i].Initializer = cf.fold(s.Fields[i].Initializer)
			}
		}
		for _, m := range s.Methods {
			cf.foldStmt(m)
		}
		for _, ctor := range s.Constructors {
			cf.foldStmt(ctor)
		}
		for _, e := range s.Enums {
			cf.foldStmt(e)
		}
	case *ast.EnumDecl:
		for i := range s.Members {
			if s.Members[i].Value != nil {
				s.Members[i].Value = cf.fold(s.Members[i].Value)
			}
		}
	case *ast.ModuleDecl:
		for i, inner := range s.Body {
			s.Body[i] = cf.foldStmt(inner)
		}
	}
	return stmt
}

func (cf ConstantFold) fold(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.Grouping:
		n.Inner = cf.fold(n.Inner)
		return n
	case *ast.Prefix:
		n.Operand = cf.fold(n.Operand)
		return cf.foldPrefix(n)
	case *ast.Postfix:
		n.Operand = cf.fold(n.Operand)
		return cf.foldPostfix(n)
	case *ast.Infix:
		n.Left = cf.fold(n.Left)
		n.Right = cf.fold(n.Right)
		return cf.foldInfix(n)
	case *ast.Ternary:
		n.Cond = cf.fold(n.Cond)
		n.Then = cf.fold(n.Then)
		n.Else = cf.fold(n.Else)
		return cf.foldTernary(n)
	case *ast.Array:
		for i := range n.Elements {
			n.Elements[i] = cf.fold(n.Elements[i])
		}
		return n
	case *ast.Dict:
		for i := range n.Entries {
			n.Entries[i].Key = cf.fold(n.Entries[i].Key)
			n.Entries[i].Value = cf.fold(n.Entries[i].Value)
		}
		return n
	case *ast.Call:
		n.Callee = cf.fold(n.Callee)
		for i := range n.Args {
			n.Args[i] = cf.fold(n.Args[i])
		}
		return n
	case *ast.Index:
		n.Receiver = cf.fold(n.Receiver)
		n.Index = cf.fold(n.Index)
		return n
	case *ast.Dot:
		n.Receiver = cf.fold(n.Receiver)
		return n
	}
	return e
}

func literalNumeric(e ast.Expression) (*ast.Literal, bool) {
	l, ok := e.(*ast.Literal)
	if !ok {
		return nil, false
	}
	return l, l.Kind == ast.LitI64 || l.Kind == ast.LitF64
}

func numericF64(l *ast.Literal) float64 {
	if l.Kind == ast.LitI64 {
		return float64(l.I64)
	}
	return l.F64
}

func (cf ConstantFold) foldInfix(n *ast.Infix) ast.Expression {
	if lLit, ok := literalNumeric(n.Left); ok {
		if rLit, ok := literalNumeric(n.Right); ok {
			if folded, ok := foldNumericInfix(n, lLit, rLit); ok {
				return folded
			}
		}
	}
	if lLit, ok := n.Left.(*ast.Literal); ok && lLit.Kind == ast.LitString {
		if rLit, ok := n.Right.(*ast.Literal); ok && rLit.Kind == ast.LitString && n.Operator == "+" {
			return &ast.Literal{Token: n.Token, Kind: ast.LitString, Str: lLit.Str + rLit.Str}
		}
	}
	if lLit, ok := n.Left.(*ast.Literal); ok && lLit.Kind == ast.LitBool {
		if rLit, ok := n.Right.(*ast.Literal); ok && rLit.Kind == ast.LitBool {
			switch n.Operator {
			case "&&":
				return &ast.Literal{Token: n.Token, Kind: ast.LitBool, Bool: lLit.Bool && rLit.Bool}
			case "||":
				return &ast.Literal{Token: n.Token, Kind: ast.LitBool, Bool: lLit.Bool || rLit.Bool}
			}
		}
	}
	return n
}

func foldNumericInfix(n *ast.Infix, l, r *ast.Literal) (ast.Expression, bool) {
	bothInt := l.Kind == ast.LitI64 && r.Kind == ast.LitI64
	lf, rf := numericF64(l), numericF64(r)

	mkI := func(v int64) ast.Expression { return &ast.Literal{Token: n.Token, Kind: ast.LitI64, I64: v} }
	mkF := func(v float64) ast.Expression { return &ast.Literal{Token: n.Token, Kind: ast.LitF64, F64: v} }
	mkB := func(v bool) ast.Expression { return &ast.Literal{Token: n.Token, Kind: ast.LitBool, Bool: v} }

	switch n.Operator {
	case "+":
		if bothInt {
			return mkI(l.I64 + r.I64), true
		}
		return mkF(lf + rf), true
	case "-":
		if bothInt {
			return mkI(l.I64 - r.I64), true
		}
		return mkF(lf - rf), true
	case "*":
		if bothInt {
			return mkI(l.I64 * r.I64), true
		}
		return mkF(lf * rf), true
	case "/":
		if bothInt {
			if r.I64 == 0 {
				return n, false // division by zero is a runtime error, not a fold
			}
			return mkI(l.I64 / r.I64), true
		}
		if rf == 0 {
			return n, false
		}
		return mkF(lf / rf), true
	case "%":
		if bothInt {
			if r.I64 == 0 {
				return n, false
			}
			return mkI(l.I64 % r.I64), true
		}
		return n, false
	case "<":
		return mkB(lf < rf), true
	case ">":
		return mkB(lf > rf), true
	case "<=":
		return mkB(lf <= rf), true
	case ">=":
		return mkB(lf >= rf), true
	case "==":
		return mkB(lf == rf), true
	case "!=":
		return mkB(lf != rf), true
	case "&":
		if bothInt {
			return mkI(l.I64 & r.I64), true
		}
	case "|":
		if bothInt {
			return mkI(l.I64 | r.I64), true
		}
	case "^":
		if bothInt {
			return mkI(l.I64 ^ r.I64), true
		}
	case "<<":
		if bothInt {
			return mkI(l.I64 << uint(r.I64)), true
		}
	case ">>":
		if bothInt {
			return mkI(l.I64 >> uint(r.I64)), true
		}
	}
	return n, false
}

func (cf ConstantFold) foldPrefix(n *ast.Prefix) ast.Expression {
	lit, ok := n.Operand.(*ast.Literal)
	if !ok {
		return n
	}
	switch n.Operator {
	case "-":
		if lit.Kind == ast.LitI64 {
			return &ast.Literal{Token: n.Token, Kind: ast.LitI64, I64: -lit.I64}
		}
		if lit.Kind == ast.LitF64 {
			return &ast.Literal{Token: n.Token, Kind: ast.LitF64, F64: -lit.F64}
		}
	case "!":
		if lit.Kind == ast.LitBool {
			return &ast.Literal{Token: n.Token, Kind: ast.LitBool, Bool: !lit.Bool}
		}
	case "~":
		if lit.Kind == ast.LitI64 {
			return &ast.Literal{Token: n.Token, Kind: ast.LitI64, I64: ^lit.I64}
		}
	}
	return n
}

func (cf ConstantFold) foldPostfix(n *ast.Postfix) ast.Expression {
	if n.Operator != "!" {
		return n
	}
	lit, ok := n.Operand.(*ast.Literal)
	if !ok || lit.Kind != ast.LitI64 || lit.I64 < 0 {
		return n
	}
	result := int64(1)
	for i := int64(2); i <= lit.I64; i++ {
		result *= i
	}
	return &ast.Literal{Token: n.Token, Kind: ast.LitI64, I64: result}
}

func (cf ConstantFold) foldTernary(n *ast.Ternary) ast.Expression {
	lit, ok := n.Cond.(*ast.Literal)
	if !ok {
		return n
	}
	truthy := lit.Kind != ast.LitNull && (lit.Kind != ast.LitBool || lit.Bool)
	if truthy {
		return n.Then
	}
	return n.Else
}
