package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Scan(src)
	require.NoError(t, err)
	prog, errs := Parse(tokens)
	require.Empty(t, errs, "%v", errs)
	return prog
}

func TestParse_VarDeclWithDestructuring(t *testing.T) {
	prog := parseSrc(t, `let [x, y, ...rest] = [1, 2, 3];`)
	require.Len(t, prog.Statements, 1)

	decl, ok := prog.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Len(t, decl.Bindings, 1)

	pattern := decl.Bindings[0].Pattern
	require.Len(t, pattern.Elements, 2)
	assert.Equal(t, "x", pattern.Elements[0].Name)
	assert.Equal(t, "y", pattern.Elements[1].Name)
	require.NotNil(t, pattern.Varargs)
	assert.Equal(t, "rest", pattern.Varargs.Name)
}

func TestParse_ClassWithParentsAndConstructor(t *testing.T) {
	prog := parseSrc(t, `
		class Dog : Animal {
			fn Dog(name) { this.name = name; }
			fn speak() { return "Woof"; }
		}
	`)
	require.Len(t, prog.Statements, 1)
	class, ok := prog.Statements[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Dog", class.Name)
	assert.Equal(t, []string{"Animal"}, class.Parents)
	assert.Len(t, class.Constructors, 1)
	assert.Len(t, class.Methods, 1)
}

func TestParse_UnexpectedTokenRecordsError(t *testing.T) {
	tokens, err := lexer.Scan(`let = ;`)
	require.NoError(t, err)
	_, errs := Parse(tokens)
	assert.NotEmpty(t, errs)
}
