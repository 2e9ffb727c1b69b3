package dsl

import (
	"fmt"
	"strconv"
)

// Parser parses DSL tokens into an AST.
type Parser struct {
	tokens []Token
	pos    int
	errors []error
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
		errors: []error{},
	}
}

// Parse parses the tokens into a Program AST.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{
		Statements: []Stmt{},
	}

	for !p.isAtEnd() {
		p.skipNewlines()
		if p.isAtEnd() {
			break
		}

		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}

	return program, nil
}

func (p *Parser) parseStatement() Stmt {
	if p.check(TokenReturn) {
		return p.parseReturnStmt()
	}

	if p.check(TokenIdent) && p.peekNext().Type == TokenAssign {
		return p.parseAssignStmt()
	}

	p.error(fmt.Sprintf("expected assignment or return, got %v", p.peek().Type))
	return nil
}

func (p *Parser) parseReturnStmt() *ReturnStmt {
	p.advance() // consume 'return'
	expr := p.parseExpression()
	return &ReturnStmt{Value: expr}
}

func (p *Parser) parseAssignStmt() *AssignStmt {
	name := p.advance().Value
	p.advance() // consume '='
	expr := p.parseExpression()
	return &AssignStmt{Name: name, Value: expr}
}

func (p *Parser) parseExpression() Expr {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() Expr {
	left := p.parseMultiplicative()

	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := p.advance().Type
		right := p.parseMultiplicative()
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}

	return left
}

func (p *Parser) parseMultiplicative() Expr {
	left := p.parseUnary()

	for p.check(TokenStar) || p.check(TokenSlash) {
		op := p.advance().Type
		right := p.parseUnary()
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}

	return left
}

func (p *Parser) parseUnary() Expr {
	if p.check(TokenMinus) {
		op := p.advance().Type
		right := p.parseUnary()
		return &UnaryExpr{Op: op, Right: right}
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() Expr {
	switch {
	case p.check(TokenInt):
		val, _ := strconv.ParseInt(p.advance().Value, 10, 64)
		return &IntLit{Value: val}

	case p.check(TokenFloat):
		val, _ := strconv.ParseFloat(p.advance().Value, 64)
		return &FloatLit{Value: val}

	case p.check(TokenString):
		return &StringLit{Value: p.advance().Value}

	case p.check(TokenIdent):
		name := p.advance().Value
		if p.check(TokenLParen) {
			return p.parseCall(name)
		}
		return &Ident{Name: name}

	case p.check(TokenLParen):
		p.advance()
		expr := p.parseExpression()
		p.expect(TokenRParen)
		return expr

	default:
		p.error(fmt.Sprintf("unexpected token: %v", p.peek().Type))
		return nil
	}
}

func (p *Parser) parseCall(name string) Expr {
	p.expect(TokenLParen)

	args := []Expr{}
	for !p.check(TokenRParen) && !p.isAtEnd() {
		arg := p.parseExpression()
		args = append(args, arg)

		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	p.expect(TokenRParen)
	return &CallExpr{Func: name, Args: args}
}

// Helper methods

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) expect(t TokenType) Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(fmt.Sprintf("expected %v, got %v", t, p.peek().Type))
	return Token{}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TokenEOF
}

func (p *Parser) skipNewlines() {
	for p.check(TokenNewline) {
		p.advance()
	}
}

func (p *Parser) error(msg string) {
	tok := p.peek()
	err := fmt.Errorf("line %d, col %d: %s", tok.Line, tok.Col, msg)
	p.errors = append(p.errors, err)
	p.advance() // Skip problematic token
}
