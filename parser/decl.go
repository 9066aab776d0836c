package parser

import (
	"github.com/kristofer/cynicscript/ast"
	"github.com/kristofer/cynicscript/token"
)

// parseVarDecl parses a `let`/`const` batch declaration, each binding
// either a single typed name or an array-destructuring pattern
// `[x, y, ...rest] = expr` (spec.md §4.3).
func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.advance() // LET or CONST
	isConst := tok.Kind == token.CONST

	decl := &ast.VarDecl{Token: tok, IsConst: isConst}
	for {
		decl.Bindings = append(decl.Bindings, p.parseVarBinding(isConst))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.match(token.SEMICOLON)
	return decl
}

func (p *Parser) parseVarBinding(isConst bool) ast.VarBinding {
	var pattern ast.VarPattern
	if p.check(token.LBRACKET) {
		pattern = p.parseDestructurePattern(isConst)
	} else {
		vd := p.parseVarDescriptor()
		vd.IsConst = isConst
		pattern = ast.VarPattern{Name: vd}
	}

	var init ast.Expression
	if p.match(token.ASSIGN) {
		init = p.parseExpression(precTernary)
	}
	return ast.VarBinding{Pattern: pattern, Initializer: init}
}

func (p *Parser) parseDestructurePattern(isConst bool) ast.VarPattern {
	p.expect(token.LBRACKET)
	var elems []*ast.VarDescriptor
	var varargs *ast.Varargs
	for !p.check(token.RBRACKET) {
		if p.match(token.ELLIPSIS) {
			name := p.expect(token.IDENTIFIER)
			varargs = &ast.Varargs{Token: name, Name: name.Lexeme}
			break
		}
		vd := p.parseVarDescriptor()
		vd.IsConst = isConst
		elems = append(elems, vd)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return ast.VarPattern{Elements: elems, Varargs: varargs}
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.advance() // FN
	name := p.expect(token.IDENTIFIER)
	p.expect(token.LPAREN)
	params, varArgKind := p.parseParamList()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	var body []ast.Statement
	for !p.check(token.RBRACE) && p.cur().Kind != token.END {
		body = append(body, p.parseDeclOrStmt())
	}
	p.expect(token.RBRACE)
	return &ast.FunctionDecl{Token: tok, Name: name.Lexeme, Params: params, VarArgKind: varArgKind, Body: body}
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	tok := p.advance() // CLASS
	name := p.expect(token.IDENTIFIER)
	decl := &ast.ClassDecl{Token: tok, Name: name.Lexeme}

	if p.match(token.COLON) {
		decl.Parents = append(decl.Parents, p.expect(token.IDENTIFIER).Lexeme)
		for p.match(token.COMMA) {
			decl.Parents = append(decl.Parents, p.expect(token.IDENTIFIER).Lexeme)
		}
	}

	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) && p.cur().Kind != token.END {
		switch p.cur().Kind {
		case token.ENUM:
			decl.Enums = append(decl.Enums, p.parseEnumDecl())
		case token.FN:
			fn := p.parseFunctionDecl()
			if fn.Name == decl.Name {
				decl.Constructors = append(decl.Constructors, fn)
			} else {
				decl.Methods = append(decl.Methods, fn)
			}
		case token.LET, token.CONST:
			isConst := p.cur().Kind == token.CONST
			p.advance()
			for {
				name := p.expect(token.IDENTIFIER)
				field := ast.ClassField{Name: name.Lexeme, IsConst: isConst}
				if p.match(token.ASSIGN) {
					field.Initializer = p.parseExpression(precTernary)
				}
				decl.Fields = append(decl.Fields, field)
				if !p.match(token.COMMA) {
					break
				}
			}
			p.match(token.SEMICOLON)
		default:
			tok := p.advance()
			p.errorf(tok, "unexpected token %s in class body", tok.Kind)
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	tok := p.advance() // ENUM
	name := p.expect(token.IDENTIFIER)
	decl := &ast.EnumDecl{Token: tok, Name: name.Lexeme}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) {
		memberName := p.expect(token.IDENTIFIER)
		member := ast.EnumMember{Name: memberName.Lexeme}
		if p.match(token.ASSIGN) {
			member.Value = p.parseExpression(precTernary)
		}
		decl.Members = append(decl.Members, member)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseModuleDecl() *ast.ModuleDecl {
	tok := p.advance() // MODULE
	name := p.expect(token.IDENTIFIER)
	decl := &ast.ModuleDecl{Token: tok, Name: name.Lexeme}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) && p.cur().Kind != token.END {
		decl.Body = append(decl.Body, p.parseDeclOrStmt())
	}
	p.expect(token.RBRACE)
	return decl
}
