package parser

import (
	"strconv"

	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/token"
)

// parseExpression implements precedence-climbing: parse a prefix/primary
// term, then repeatedly fold in infix/postfix operators whose precedence
// is at least minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	for {
		k := p.cur().Kind
		if k == token.BANG {
			// The lexer emits BANG for every '!'; one that follows a
			// complete operand is postfix factorial.
			k = token.FACTORIAL
		}
		prec, ok := binPrec[k]
		if !ok || prec < minPrec {
			break
		}
		switch {
		case assignOps[k]:
			left = p.parseAssign(left)
		case k == token.QUESTION:
			left = p.parseTernary(left)
		case k == token.INC, k == token.DEC, k == token.FACTORIAL:
			tok := p.advance()
			left = &ast.Postfix{Token: tok, Operator: tok.Kind.String(), Operand: left}
		case k == token.LPAREN:
			left = p.parseCall(left)
		case k == token.LBRACKET:
			left = p.parseIndex(left)
		case k == token.DOT:
			left = p.parseDot(left)
		default:
			left = p.parseBinary(left, prec)
		}
	}
	return left
}

func (p *Parser) parseAssign(left ast.Expression) ast.Expression {
	tok := p.advance()
	right := p.parseExpression(precAssignment)
	return &ast.Infix{Token: tok, Operator: tok.Kind.String(), Left: left, Right: right}
}

func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	tok := p.advance()
	then := p.parseExpression(precAssignment)
	p.expect(token.COLON)
	els := p.parseExpression(precTernary)
	return &ast.Ternary{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseBinary(left ast.Expression, prec int) ast.Expression {
	tok := p.advance()
	// All binary operators here are left-associative; next term must bind
	// strictly tighter than this one.
	right := p.parseExpression(prec + 1)
	return &ast.Infix{Token: tok, Operator: tok.Kind.String(), Left: left, Right: right}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	tok := p.advance() // LPAREN
	var args []ast.Expression
	for !p.check(token.RPAREN) {
		args = append(args, p.parseExpression(precAssignment))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.Call{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseIndex(recv ast.Expression) ast.Expression {
	tok := p.advance() // LBRACKET
	idx := p.parseExpression(precAssignment)
	p.expect(token.RBRACKET)
	return &ast.Index{Token: tok, Receiver: recv, Index: idx}
}

func (p *Parser) parseDot(recv ast.Expression) ast.Expression {
	tok := p.advance() // DOT
	name := p.expect(token.IDENTIFIER)
	return &ast.Dot{Token: tok, Receiver: recv, Name: name.Lexeme}
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur().Kind {
	case token.MINUS, token.BANG, token.TILDE:
		tok := p.advance()
		operand := p.parseExpression(precPrefix)
		return &ast.Prefix{Token: tok, Operator: tok.Kind.String(), Operand: operand}
	case token.INC, token.DEC:
		tok := p.advance()
		operand := p.parseExpression(precPrefix)
		return &ast.Prefix{Token: tok, Operator: tok.Kind.String(), Operand: operand}
	case token.AMP:
		tok := p.advance()
		target := p.parseExpression(precPrefix)
		return &ast.Reference{Token: tok, Target: target}
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		tok := p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LitString, Str: tok.Lexeme}
	case token.CHAR:
		tok := p.advance()
		var r rune
		for _, c := range tok.Lexeme {
			r = c
			break
		}
		return &ast.Literal{Token: tok, Kind: ast.LitChar, Char: r}
	case token.TRUE:
		tok := p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LitBool, Bool: true}
	case token.FALSE:
		tok := p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LitBool, Bool: false}
	case token.NULL:
		tok := p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LitNull}
	case token.IDENTIFIER:
		tok := p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	case token.THIS:
		return &ast.This{Token: p.advance()}
	case token.BASE:
		return &ast.Base{Token: p.advance()}
	case token.LPAREN:
		return p.parseGroupingOrCompound()
	case token.LBRACE_PAREN:
		return p.parseCompoundExpr()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseDictLiteral()
	case token.STRUCT:
		return p.parseStructLiteral()
	case token.FN:
		return p.parseLambda()
	case token.NEW:
		return p.parseNew()
	case token.MATCH:
		return p.parseMatch()
	case token.ELLIPSIS:
		tok := p.advance()
		name := p.expect(token.IDENTIFIER)
		return &ast.Varargs{Token: tok, Name: name.Lexeme}
	default:
		tok := p.advance()
		p.errorf(tok, "unexpected token %s %q in expression", tok.Kind, tok.Lexeme)
		return &ast.Literal{Token: tok, Kind: ast.LitNull}
	}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.advance()
	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.errorf(tok, "invalid integer literal %q", tok.Lexeme)
	}
	return &ast.Literal{Token: tok, Kind: ast.LitI64, I64: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.advance()
	lexeme := tok.Lexeme
	if len(lexeme) > 0 && (lexeme[len(lexeme)-1] == 'f' || lexeme[len(lexeme)-1] == 'F') {
		lexeme = lexeme[:len(lexeme)-1]
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		p.errorf(tok, "invalid float literal %q", tok.Lexeme)
	}
	return &ast.Literal{Token: tok, Kind: ast.LitF64, F64: v}
}

// parseGroupingOrCompound disambiguates `(expr)` from a dict literal the
// parser never routes here (dicts use `struct`-less `{ key: value }` only
// inside a Dict production reached elsewhere) — here it is always a plain
// parenthesized expression.
func (p *Parser) parseGroupingOrCompound() ast.Expression {
	tok := p.advance() // LPAREN
	inner := p.parseExpression(precAssignment)
	p.expect(token.RPAREN)
	return &ast.Grouping{Token: tok, Inner: inner}
}

// parseCompoundExpr parses `({ stmt...; trailingExpr })`.
func (p *Parser) parseCompoundExpr() ast.Expression {
	tok := p.advance() // LBRACE_PAREN
	var stmts []ast.Statement
	var trailing ast.Expression
	for !p.check(token.PAREN_RBRACE) && p.cur().Kind != token.END {
		if isExprOnlyTerminal(p) {
			trailing = p.parseExpression(precAssignment)
			break
		}
		stmts = append(stmts, p.parseDeclOrStmt())
	}
	p.expect(token.PAREN_RBRACE)
	return &ast.CompoundExpr{Token: tok, Stmts: stmts, Trailing: trailing}
}

// isExprOnlyTerminal heuristically detects that the remaining compound-
// expression content is a single trailing expression (no semicolon
// before the closing `})`), by scanning ahead without consuming.
func isExprOnlyTerminal(p *Parser) bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		k := p.tokens[i].Kind
		switch k {
		case token.LPAREN, token.LBRACE, token.LBRACKET, token.LBRACE_PAREN:
			depth++
		case token.RPAREN, token.RBRACE, token.RBRACKET:
			depth--
		case token.PAREN_RBRACE:
			if depth == 0 {
				return true
			}
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				return false
			}
		case token.END:
			return true
		}
	}
	return true
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // LBRACKET
	arr := &ast.Array{Token: tok}
	for !p.check(token.RBRACKET) {
		arr.Elements = append(arr.Elements, p.parseExpression(precAssignment))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return arr
}

// parseDictLiteral parses `{ key: value, ... }`, reached only when the
// parser can statically tell a `{` begins a dict rather than a block —
// callers invoke this explicitly (e.g. after `new` disambiguation is not
// needed since dicts never start a statement).
func (p *Parser) parseDictLiteral() ast.Expression {
	tok := p.advance() // LBRACE
	d := &ast.Dict{Token: tok}
	for !p.check(token.RBRACE) {
		key := p.parseExpression(precTernary + 1)
		p.expect(token.COLON)
		val := p.parseExpression(precAssignment)
		d.Entries = append(d.Entries, ast.DictEntry{Key: key, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return d
}

func (p *Parser) parseStructLiteral() ast.Expression {
	tok := p.advance() // STRUCT
	p.expect(token.LBRACE)
	s := &ast.Struct{Token: tok}
	for !p.check(token.RBRACE) {
		name := p.expect(token.IDENTIFIER)
		p.expect(token.COLON)
		val := p.parseExpression(precAssignment)
		s.Fields = append(s.Fields, ast.StructField{Name: name.Lexeme, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return s
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.advance() // FN
	p.expect(token.LPAREN)
	params, varArgKind := p.parseParamList()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	var body []ast.Statement
	for !p.check(token.RBRACE) && p.cur().Kind != token.END {
		body = append(body, p.parseDeclOrStmt())
	}
	p.expect(token.RBRACE)
	return &ast.Lambda{Token: tok, Params: params, VarArgKind: varArgKind, Body: body}
}

func (p *Parser) parseParamList() ([]*ast.VarDescriptor, ast.VarArgKind) {
	var params []*ast.VarDescriptor
	kind := ast.VarArgNone
	for !p.check(token.RPAREN) {
		if p.match(token.ELLIPSIS) {
			name := p.expect(token.IDENTIFIER)
			params = append(params, &ast.VarDescriptor{Token: name, Name: name.Lexeme})
			kind = ast.VarArgNamed
			break
		}
		params = append(params, p.parseVarDescriptor())
		if !p.match(token.COMMA) {
			break
		}
	}
	return params, kind
}

func (p *Parser) parseVarDescriptor() *ast.VarDescriptor {
	name := p.expect(token.IDENTIFIER)
	vd := &ast.VarDescriptor{Token: name, Name: name.Lexeme}
	if p.match(token.COLON) {
		typeTok := p.advance()
		vd.Type = &ast.TypeAnnotation{Token: typeTok, Name: typeTok.Lexeme}
	}
	return vd
}

func (p *Parser) parseNew() ast.Expression {
	tok := p.advance() // NEW
	callee := p.parseExpression(precCall)
	call, ok := callee.(*ast.Call)
	if !ok {
		p.errorf(tok, "expected a constructor call after 'new'")
		call = &ast.Call{Token: tok, Callee: callee}
	}
	return &ast.New{Token: tok, Call: call}
}

// parseMatch desugars `match (subject) { p1: e1, p2: e2, default: e3 }`
// into nested ternaries comparing subject against each pattern in order
// (spec.md §4.3 "match desugars to nested ternary").
func (p *Parser) parseMatch() ast.Expression {
	tok := p.advance() // MATCH
	p.expect(token.LPAREN)
	subject := p.parseExpression(precAssignment)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	type arm struct {
		pattern ast.Expression // nil means default
		result  ast.Expression
	}
	var arms []arm
	for !p.check(token.RBRACE) {
		if p.match(token.DEFAULT) {
			p.expect(token.COLON)
			arms = append(arms, arm{result: p.parseExpression(precAssignment)})
		} else {
			pat := p.parseExpression(precTernary + 1)
			p.expect(token.COLON)
			arms = append(arms, arm{pattern: pat, result: p.parseExpression(precAssignment)})
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)

	var result ast.Expression = &ast.Literal{Token: tok, Kind: ast.LitNull}
	for i := len(arms) - 1; i >= 0; i-- {
		a := arms[i]
		if a.pattern == nil {
			result = a.result
			continue
		}
		cond := &ast.Infix{Token: tok, Operator: "==", Left: subject, Right: a.pattern}
		result = &ast.Ternary{Token: tok, Cond: cond, Then: a.result, Else: result}
	}
	return result
}
