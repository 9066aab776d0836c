// Package ast defines the Abstract Syntax Tree node shapes for
// CynicScript. Every node carries the token.Token it was produced from
// (for diagnostics) and is arena-owned by the Program that holds it:
// individual nodes never own their children's lifetime beyond the
// enclosing slice, so a whole compilation unit's tree is freed together
// when the Program goes out of scope (§9 Design Notes, "Destructor-driven
// cleanup of nested AST").
package ast

import "github.com/kristofer/cynicscript/token"

// Node is implemented by every AST node.
type Node interface {
	Tok() token.Token
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a Node executed for effect.
type Statement interface {
	Node
	stmtNode()
}

// Program is the root of a parsed compilation unit: an ordered list of
// top-level statements (the "ast-stmts" variant of spec.md §3).
type Program struct {
	Token      token.Token
	Statements []Statement
}

func (p *Program) Tok() token.Token { return p.Token }

// ---- Type annotation -------------------------------------------------

// TypeAnnotation is a diagnostics-only type name attached to var
// descriptors; it never influences runtime dispatch (spec.md §3).
type TypeAnnotation struct {
	Token token.Token
	Name  string // canonical name: i8..i64, u8..u64, f32, f64, bool, char, string, any, or a user type
}

func (t *TypeAnnotation) Tok() token.Token { return t.Token }

// ---- Literal numeric subkinds -----------------------------------------

// LiteralKind distinguishes the runtime subkind of a Literal expression.
type LiteralKind int

const (
	LitI64 LiteralKind = iota
	LitF64
	LitBool
	LitChar
	LitString
	LitNull
)

// Literal is a scalar literal expression.
type Literal struct {
	Token token.Token
	Kind  LiteralKind
	I64   int64
	F64   float64
	Bool  bool
	Char  rune
	Str   string
}

func (l *Literal) Tok() token.Token { return l.Token }
func (*Literal) exprNode()          {}

// Identifier references a named binding.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) Tok() token.Token { return i.Token }
func (*Identifier) exprNode()          {}

// VarDescriptor is a typed binding name used in parameter lists,
// destructuring patterns, and var declarations: `name` or `name: Type`.
type VarDescriptor struct {
	Token   token.Token
	Name    string
	Type    *TypeAnnotation // nil if unannotated
	IsConst bool
}

func (v *VarDescriptor) Tok() token.Token { return v.Token }
func (*VarDescriptor) exprNode()          {}

// Grouping is a parenthesized expression, kept distinct from its inner
// expression so the pass manager and compiler can tell explicit grouping
// from bare sub-expressions when deciding associativity of rewrites.
type Grouping struct {
	Token token.Token
	Inner Expression
}

func (g *Grouping) Tok() token.Token { return g.Token }
func (*Grouping) exprNode()          {}

// Array is an array literal.
type Array struct {
	Token    token.Token
	Elements []Expression
}

func (a *Array) Tok() token.Token { return a.Token }
func (*Array) exprNode()          {}

// DictEntry is one key-value pair of a Dict literal, order-preserving.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// Dict is an ordered-key dict literal.
type Dict struct {
	Token   token.Token
	Entries []DictEntry
}

func (d *Dict) Tok() token.Token { return d.Token }
func (*Dict) exprNode()          {}

// StructField is one field of a Struct literal.
type StructField struct {
	Name  string
	Value Expression
}

// Struct is an anonymous, string-keyed field record literal.
type Struct struct {
	Token  token.Token
	Fields []StructField
}

func (s *Struct) Tok() token.Token { return s.Token }
func (*Struct) exprNode()          {}

// Prefix is a unary prefix expression: -x, !x, ~x, &x (reference-of is
// modeled separately as Reference, see below), ++x, --x.
type Prefix struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (p *Prefix) Tok() token.Token { return p.Token }
func (*Prefix) exprNode()          {}

// Infix is a binary infix expression, including assignment and the
// compound-assignment family (emitted by the compiler as read-modify-
// write around the same lvalue).
type Infix struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (i *Infix) Tok() token.Token { return i.Token }
func (*Infix) exprNode()          {}

// Postfix is a postfix expression: x++, x--, or x! (factorial).
type Postfix struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (p *Postfix) Tok() token.Token { return p.Token }
func (*Postfix) exprNode()          {}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (t *Ternary) Tok() token.Token { return t.Token }
func (*Ternary) exprNode()          {}

// Index is `receiver[index]`.
type Index struct {
	Token    token.Token
	Receiver Expression
	Index    Expression
}

func (i *Index) Tok() token.Token { return i.Token }
func (*Index) exprNode()          {}

// Reference is `&target`, producing a first-class reference value to
// target's storage slot (stack, global, or array index).
type Reference struct {
	Token  token.Token
	Target Expression
}

func (r *Reference) Tok() token.Token { return r.Token }
func (*Reference) exprNode()          {}

// Lambda is an anonymous function literal: `fn(params) { body }`.
type Lambda struct {
	Token      token.Token
	Params     []*VarDescriptor
	VarArgKind VarArgKind
	Body       []Statement
}

func (l *Lambda) Tok() token.Token { return l.Token }
func (*Lambda) exprNode()          {}

// VarArgKind names a function's varargs discipline (spec.md §3, §4.9).
type VarArgKind int

const (
	VarArgNone VarArgKind = iota
	VarArgUnnamed
	VarArgNamed
)

// Call is `callee(args...)`.
type Call struct {
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (c *Call) Tok() token.Token { return c.Token }
func (*Call) exprNode()          {}

// Dot is `receiver.name`, a property/method access.
type Dot struct {
	Token    token.Token
	Receiver Expression
	Name     string
}

func (d *Dot) Tok() token.Token { return d.Token }
func (*Dot) exprNode()          {}

// New is `new Class(args...)`.
type New struct {
	Token token.Token
	Call  *Call
}

func (n *New) Tok() token.Token { return n.Token }
func (*New) exprNode()          {}

// This refers to the receiver inside a method body.
type This struct{ Token token.Token }

func (t *This) Tok() token.Token { return t.Token }
func (*This) exprNode()          {}

// Base refers to the parent-class member context inside a method body.
type Base struct{ Token token.Token }

func (b *Base) Tok() token.Token { return b.Token }
func (*Base) exprNode()          {}

// CompoundExpr is `({ stmts...; trailingExpr })`: a block whose value is
// its trailing expression.
type CompoundExpr struct {
	Token    token.Token
	Stmts    []Statement
	Trailing Expression
}

func (c *CompoundExpr) Tok() token.Token { return c.Token }
func (*CompoundExpr) exprNode()          {}

// Varargs is the `...name` varargs marker in a parameter list or
// destructuring pattern's trailing position.
type Varargs struct {
	Token token.Token
	Name  string
}

func (v *Varargs) Tok() token.Token { return v.Token }
func (*Varargs) exprNode()          {}

// Factorial-as-expression is represented via Postfix{Operator: "!"}; no
// separate node is needed beyond that (kept here only as documentation).

// Aggregate packs multiple expressions for a multi-value return
// (`return a, b, c`); the parser builds it only there.
type Aggregate struct {
	Token    token.Token
	Elements []Expression
}

func (a *Aggregate) Tok() token.Token { return a.Token }
func (*Aggregate) exprNode()          {}

// ---- Statements --------------------------------------------------------

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) Tok() token.Token { return e.Token }
func (*ExpressionStatement) stmtNode()          {}

// ReturnStatement carries an optional single expression or an Aggregate
// for multi-value returns.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil, a plain Expression, or *Aggregate
}

func (r *ReturnStatement) Tok() token.Token { return r.Token }
func (*ReturnStatement) stmtNode()          {}

// IfStatement is `if (cond) then [else else_]`.
type IfStatement struct {
	Token token.Token
	Cond  Expression
	Then  Statement
	Else  Statement // nil if absent
}

func (i *IfStatement) Tok() token.Token { return i.Token }
func (*IfStatement) stmtNode()          {}

// ScopeStatement is a lexical block `{ stmts... }`.
type ScopeStatement struct {
	Token token.Token
	Stmts []Statement
}

func (s *ScopeStatement) Tok() token.Token { return s.Token }
func (*ScopeStatement) stmtNode()          {}

// WhileStatement is `while (cond) body`, with an optional Increment
// block used by the parser's desugaring of `for` loops into while loops.
type WhileStatement struct {
	Token     token.Token
	Cond      Expression
	Body      Statement
	Increment Statement // nil unless desugared from `for`
}

func (w *WhileStatement) Tok() token.Token { return w.Token }
func (*WhileStatement) stmtNode()          {}

// BreakStatement is `break;`.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) Tok() token.Token { return b.Token }
func (*BreakStatement) stmtNode()          {}

// ContinueStatement is `continue;`.
type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) Tok() token.Token { return c.Token }
func (*ContinueStatement) stmtNode()          {}

// AstStmts is an ordered Statement list without the semantics of a
// lexical ScopeStatement (no implicit scope push/pop). The passes and the
// compiler handle it; the parser does not produce it.
type AstStmts struct {
	Token token.Token
	Stmts []Statement
}

func (a *AstStmts) Tok() token.Token { return a.Token }
func (*AstStmts) stmtNode()          {}

// ---- Declarations (structurally statements) ----------------------------

// VarBinding is one `pattern = initializer` entry of a var/const
// declaration batch.
type VarBinding struct {
	Pattern     VarPattern
	Initializer Expression // nil if no initializer given
}

// VarPattern is either a single typed name (Name != nil) or an
// array-destructuring pattern (Elements != nil).
type VarPattern struct {
	Name     *VarDescriptor
	Elements []*VarDescriptor // destructuring targets
	Varargs  *Varargs         // non-nil trailing `...rest`, only in Elements form
}

// VarDecl is a `let`/`const` batch declaration.
type VarDecl struct {
	Token    token.Token
	IsConst  bool
	Bindings []VarBinding
}

func (v *VarDecl) Tok() token.Token { return v.Token }
func (*VarDecl) stmtNode()          {}

// FunctionDecl is a named function declaration.
type FunctionDecl struct {
	Token      token.Token
	Name       string
	Params     []*VarDescriptor
	VarArgKind VarArgKind
	Body       []Statement
}

func (f *FunctionDecl) Tok() token.Token { return f.Token }
func (*FunctionDecl) stmtNode()          {}

// ClassField is a field declaration inside a class body (`let x = 1;` or
// `const x = 1;` at class scope becomes a mutable/constant member).
type ClassField struct {
	Name        string
	IsConst     bool
	Initializer Expression
}

// ClassDecl is a class declaration with an ordered parent list
// (multi-inheritance), fields, methods, nested enums, and constructors
// (methods whose name equals the class name, keyed by arity).
type ClassDecl struct {
	Token       token.Token
	Name        string
	Parents     []string
	Fields      []ClassField
	Methods     []*FunctionDecl
	Enums       []*EnumDecl
	Constructors []*FunctionDecl
}

func (c *ClassDecl) Tok() token.Token { return c.Token }
func (*ClassDecl) stmtNode()          {}

// EnumDecl is `enum Name { A = expr, B, ... }`; a member with no
// initializer continues a constant-fold-computable sequence from the
// previous member (lowering detail handled by the compiler).
type EnumDecl struct {
	Token   token.Token
	Name    string
	Members []EnumMember
}

func (e *EnumDecl) Tok() token.Token { return e.Token }
func (*EnumDecl) stmtNode()          {}

// EnumMember is one `Name [= Value]` entry of an EnumDecl.
type EnumMember struct {
	Name  string
	Value Expression // nil if implicit
}

// ModuleDecl is a `module Name { ... }` declaration; its body compiles to
// a zero-arg closure immediately invoked to produce a module value.
type ModuleDecl struct {
	Token token.Token
	Name  string
	Body  []Statement
}

func (m *ModuleDecl) Tok() token.Token { return m.Token }
func (*ModuleDecl) stmtNode()          {}
