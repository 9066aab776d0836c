package pass

import (
	"fmt"

	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/diag"
)

// numericKind mirrors the declared numeric type annotations a
// TypeAnnotation can name (spec.md §3's numeric kind set).
type numericKind int

const (
	kI8 numericKind = iota
	kI16
	kI32
	kI64
	kU8
	kU16
	kU32
	kU64
	kF32
	kF64
	kUnknown
)

var kindNames = map[string]numericKind{
	"i8": kI8, "i16": kI16, "i32": kI32, "i64": kI64,
	"u8": kU8, "u16": kU16, "u32": kU32, "u64": kU64,
	"f32": kF32, "f64": kF64,
}

var displayName = map[numericKind]string{
	kI8: "int8", kI16: "int16", kI32: "int32", kI64: "int64",
	kU8: "uint8", kU16: "uint16", kU32: "uint32", kU64: "uint64",
	kF32: "float32", kF64: "float64",
}

// narrowRow is one entry of the advisory narrowing table: assigning a
// `from`-typed initializer to a `to`-typed binding may lose data.
// Grounded on the original implementation's gPrimitiveTypeMaps table
// (TypeCheckAndResolvePass.cpp), reproduced here as a representative
// subset rather than its full N*N matrix: every integer-to-smaller-
// integer and any-to/from-float case the original flags is covered,
// which is what actually reaches user code through numeric literal
// initializers (the exhaustive unsigned/signed cross product mostly
// repeats the same "may lose data" message).
var narrowTable = []struct {
	from, to numericKind
}{
	{kI16, kI8}, {kI32, kI8}, {kI64, kI8}, {kU8, kI8}, {kU16, kI8}, {kU32, kI8}, {kU64, kI8},
	{kI32, kI16}, {kI64, kI16}, {kU16, kI16}, {kU32, kI16}, {kU64, kI16},
	{kI64, kI32}, {kU32, kI32}, {kU64, kI32},
	{kI8, kU8}, {kI16, kU8}, {kI32, kU8}, {kI64, kU8}, {kU16, kU8}, {kU32, kU8}, {kU64, kU8},
	{kI16, kU16}, {kI32, kU16}, {kI64, kU16}, {kU32, kU16}, {kU64, kU16},
	{kI32, kU32}, {kI64, kU32}, {kU64, kU32},
	{kF64, kF32},
	{kI64, kF32}, {kU64, kF32}, {kI32, kF32}, {kU32, kF32},
	{kI64, kF64}, {kU64, kF64},
}

func narrows(from, to numericKind) bool {
	if from == kUnknown || to == kUnknown {
		return false
	}
	for _, row := range narrowTable {
		if row.from == from && row.to == to {
			return true
		}
	}
	return false
}

// Narrowing emits advisory (non-fatal) diagnostics when a var/const
// declaration's declared numeric type annotation narrows relative to its
// literal initializer's own numeric kind (spec.md §7 "TypeWarning").
// This pass never rejects a program and never rewrites the AST: it is
// purely advisory, per the Open Question decision recorded in
// DESIGN.md to keep numeric typing dynamic rather than statically
// enforced.
type Narrowing struct{}

func (Narrowing) Name() string { return "narrowing" }

func (np Narrowing) Run(prog *ast.Program, bag *diag.Bag) {
	for _, stmt := range prog.Statements {
		np.checkStmt(stmt, bag)
	}
}

func (np Narrowing) checkStmt(stmt ast.Statement, bag *diag.Bag) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		for _, b := range s.Bindings {
			if b.Pattern.Name != nil && b.Pattern.Name.Type != nil && b.Initializer != nil {
				np.checkInit(b.Pattern.Name.Type.Name, b.Initializer, bag)
			}
		}
	case *ast.IfStatement:
		np.checkStmt(s.Then, bag)
		if s.Else != nil {
			np.checkStmt(s.Else, bag)
		}
	case *ast.WhileStatement:
		np.checkStmt(s.Body, bag)
	case *ast.ScopeStatement:
		for _, inner := range s.Stmts {
			np.checkStmt(inner, bag)
		}
	case *ast.AstStmts:
		for _, inner := range s.Stmts {
			np.checkStmt(inner, bag)
		}
	case *ast.FunctionDecl:
		for _, inner := range s.Body {
			np.checkStmt(inner, bag)
		}
	case *ast.ClassDecl:
		for _, m := range s.Methods {
			np.checkStmt(m, bag)
		}
		for _, ctor := range s.Constructors {
			np.checkStmt(ctor, bag)
		}
	case *ast.ModuleDecl:
		for _, inner := range s.Body {
			np.checkStmt(inner, bag)
		}
	}
}

func (np Narrowing) checkInit(declaredType string, init ast.Expression, bag *diag.Bag) {
	to, ok := kindNames[declaredType]
	if !ok {
		return
	}
	lit, ok := init.(*ast.Literal)
	if !ok {
		return
	}
	var from numericKind
	switch lit.Kind {
	case ast.LitI64:
		from = kI64
	case ast.LitF64:
		from = kF64
	default:
		return
	}
	if narrows(from, to) {
		bag.Warnf(diag.StagePass, lit.Token, fmt.Sprintf(
			"assigning a %s value to a %s binding is a narrowing conversion and may lose data",
			displayName[from], displayName[to]))
	}
}
