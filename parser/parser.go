// Package parser implements the CynicScript recursive-descent,
// precedence-climbing parser (spec.md §4.2): it turns a token stream
// into an *ast.Program, reporting and continuing past errors the way
// the teacher parser's `errors []string` field does, rather than
// aborting at the first syntax error.
package parser

import (
	"fmt"

	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/token"
)

// precedence levels, lowest to highest, per spec.md §4.2.
const (
	precNone = iota
	precAssignment
	precTernary
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precComparison
	precShift
	precAdditive
	precMultiplicative
	precPrefix
	precPostfix
	precCall
)

var binPrec = map[token.Kind]int{
	token.ASSIGN: precAssignment, token.PLUS_EQ: precAssignment, token.MINUS_EQ: precAssignment,
	token.STAR_EQ: precAssignment, token.SLASH_EQ: precAssignment, token.PERCENT_EQ: precAssignment,
	token.AMP_EQ: precAssignment, token.PIPE_EQ: precAssignment, token.CARET_EQ: precAssignment,
	token.SHL_EQ: precAssignment, token.SHR_EQ: precAssignment,
	token.QUESTION: precTernary,
	token.OR_OR:    precOr,
	token.AND_AND:  precAnd,
	token.PIPE:     precBitOr,
	token.CARET:    precBitXor,
	token.AMP:      precBitAnd,
	token.EQ:       precEquality, token.NEQ: precEquality,
	token.LT: precComparison, token.LTE: precComparison, token.GT: precComparison, token.GTE: precComparison,
	token.SHL: precShift, token.SHR: precShift,
	token.PLUS: precAdditive, token.MINUS: precAdditive,
	token.STAR: precMultiplicative, token.SLASH: precMultiplicative, token.PERCENT: precMultiplicative,
	token.LPAREN: precCall, token.DOT: precCall, token.LBRACKET: precCall,
	token.INC: precPostfix, token.DEC: precPostfix, token.FACTORIAL: precPostfix,
}

var assignOps = map[token.Kind]bool{
	token.ASSIGN: true, token.PLUS_EQ: true, token.MINUS_EQ: true, token.STAR_EQ: true,
	token.SLASH_EQ: true, token.PERCENT_EQ: true, token.AMP_EQ: true, token.PIPE_EQ: true,
	token.CARET_EQ: true, token.SHL_EQ: true, token.SHR_EQ: true,
}

// Parser holds the token stream and error-recovery state.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []string
}

// New constructs a Parser over an already-scanned token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every parse error accumulated during Parse.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("%s: %s", tok.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorf(p.cur(), "expected %s, got %s %q", k, p.cur().Kind, p.cur().Lexeme)
	return p.cur()
}

// synchronize discards tokens until a likely statement boundary, so one
// syntax error doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	p.advance()
	for p.cur().Kind != token.END {
		if p.tokens[p.pos-1].Kind == token.SEMICOLON {
			return
		}
		switch p.cur().Kind {
		case token.CLASS, token.FN, token.LET, token.CONST, token.FOR, token.IF,
			token.WHILE, token.RETURN, token.MODULE, token.ENUM:
			return
		}
		p.advance()
	}
}

// Parse parses the full token stream into a Program.
func Parse(tokens []token.Token) (*ast.Program, []string) {
	p := New(tokens)
	prog := &ast.Program{Token: p.cur()}
	for p.cur().Kind != token.END {
		stmt := p.parseDeclOrStmt()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog, p.errors
}

func (p *Parser) parseDeclOrStmt() (stmt ast.Statement) {
	startErrs := len(p.errors)
	defer func() {
		if len(p.errors) > startErrs {
			p.synchronize()
		}
	}()

	switch p.cur().Kind {
	case token.LET, token.CONST:
		return p.parseVarDecl()
	case token.FN:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.MODULE:
		return p.parseModuleDecl()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.LBRACE:
		return p.parseScope()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		tok := p.advance()
		p.match(token.SEMICOLON)
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		p.match(token.SEMICOLON)
		return &ast.ContinueStatement{Token: tok}
	case token.SWITCH:
		return p.parseSwitch()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseScope() *ast.ScopeStatement {
	tok := p.expect(token.LBRACE)
	s := &ast.ScopeStatement{Token: tok}
	for !p.check(token.RBRACE) && p.cur().Kind != token.END {
		s.Stmts = append(s.Stmts, p.parseDeclOrStmt())
	}
	p.expect(token.RBRACE)
	return s
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(precAssignment)
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.parseStatement()
	}
	return &ast.IfStatement{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(precAssignment)
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Cond: cond, Body: body}
}

// parseFor desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }` (spec.md §4.3 "for loop
// desugars to while").
func (p *Parser) parseFor() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)

	var init ast.Statement
	if !p.check(token.SEMICOLON) {
		init = p.parseDeclOrStmt()
	} else {
		p.advance()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression(precAssignment)
	} else {
		cond = &ast.Literal{Token: p.cur(), Kind: ast.LitBool, Bool: true}
	}
	p.expect(token.SEMICOLON)

	var incr ast.Statement
	if !p.check(token.RPAREN) {
		incrExpr := p.parseExpression(precAssignment)
		incr = &ast.ExpressionStatement{Token: incrExpr.Tok(), Expression: incrExpr}
	}
	p.expect(token.RPAREN)

	body := p.parseStatement()

	loop := &ast.WhileStatement{Token: tok, Cond: cond, Body: body, Increment: incr}
	if init == nil {
		return loop
	}
	return &ast.ScopeStatement{Token: tok, Stmts: []ast.Statement{init, loop}}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.advance()
	if p.check(token.SEMICOLON) || p.check(token.RBRACE) {
		p.match(token.SEMICOLON)
		return &ast.ReturnStatement{Token: tok}
	}
	first := p.parseExpression(precAssignment)
	if p.check(token.COMMA) {
		elems := []ast.Expression{first}
		for p.match(token.COMMA) {
			elems = append(elems, p.parseExpression(precAssignment))
		}
		p.match(token.SEMICOLON)
		return &ast.ReturnStatement{Token: tok, Value: &ast.Aggregate{Token: tok, Elements: elems}}
	}
	p.match(token.SEMICOLON)
	return &ast.ReturnStatement{Token: tok, Value: first}
}

// parseSwitch desugars `switch (subject) { v1, v2: stmt...; default: stmt... }`
// into a chain of IfStatements, each comparing subject against its case
// values with `==` (spec.md §4.3 "switch desugars to if-chain"; grounded
// on the original implementation's ParseSwitchStmt, which has no `case`
// keyword — a case label is just one or more comma-separated value
// expressions followed by `:`).
func (p *Parser) parseSwitch() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	subject := p.parseExpression(precAssignment)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	type swcase struct {
		conds []ast.Expression
		body  []ast.Statement
	}
	var cases []swcase
	var defaultBody []ast.Statement

	for !p.check(token.RBRACE) && p.cur().Kind != token.END {
		if p.match(token.DEFAULT) {
			p.expect(token.COLON)
			defaultBody = p.parseSwitchBody()
			continue
		}

		var conds []ast.Expression
		conds = append(conds, p.parseExpression(precTernary+1))
		for p.match(token.COMMA) {
			conds = append(conds, p.parseExpression(precTernary+1))
		}
		p.expect(token.COLON)
		cases = append(cases, swcase{conds: conds, body: p.parseSwitchBody()})
	}
	p.expect(token.RBRACE)

	var chain ast.Statement
	if len(defaultBody) > 0 {
		chain = &ast.ScopeStatement{Token: tok, Stmts: defaultBody}
	}
	for i := len(cases) - 1; i >= 0; i-- {
		c := cases[i]
		var cond ast.Expression = &ast.Infix{Token: tok, Operator: "==", Left: subject, Right: c.conds[0]}
		for _, extra := range c.conds[1:] {
			cond = &ast.Infix{Token: tok, Operator: "||", Left: cond,
				Right: &ast.Infix{Token: tok, Operator: "==", Left: subject, Right: extra}}
		}
		chain = &ast.IfStatement{Token: tok, Cond: cond, Then: &ast.ScopeStatement{Token: tok, Stmts: c.body}, Else: chain}
	}
	if chain == nil {
		return &ast.ScopeStatement{Token: tok}
	}
	return chain
}

// parseSwitchBody parses either a single statement or a braced block of
// statements following a case/default label.
func (p *Parser) parseSwitchBody() []ast.Statement {
	if p.match(token.LBRACE) {
		var stmts []ast.Statement
		for !p.check(token.RBRACE) && p.cur().Kind != token.END {
			stmts = append(stmts, p.parseDeclOrStmt())
		}
		p.expect(token.RBRACE)
		return stmts
	}
	return []ast.Statement{p.parseDeclOrStmt()}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(precAssignment)
	tok := expr.Tok()
	p.match(token.SEMICOLON)
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}
