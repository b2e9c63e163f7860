package compiler

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds statement and expression nesting in the parser.
const DefaultMaxDepth = 1000

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	program    = statement* EOF
//	statement  = funcDecl | varDecl | returnStmt | ifStmt | whileStmt | block | exprStmt
//	funcDecl   = TYPE IDENTIFIER "(" (TYPE IDENTIFIER ("," TYPE IDENTIFIER)*)? ")" block
//	varDecl    = TYPE IDENTIFIER ("=" expression)? ";"
//	returnStmt = "return" expression? ";"
//	ifStmt     = "if" "(" expression ")" statement ("else" statement)?
//	whileStmt  = "while" "(" expression ")" statement
//	block      = "{" statement* "}"
//	exprStmt   = expression ";"
//	expression = unary (ASSIGN_OP expression | (BINARY_OP expression)*)
//	unary      = ("!" | "-" | "++" | "--") unary | primary
//	primary    = INT_LIT | FLOAT_LIT | STRING_LIT | "true" | "false" | "null"
//	           | IDENTIFIER ("(" args? ")")? | "(" expression ")"
//	TYPE       = "int" | "float" | "bool" | "string" | "void"
//
// Binary operators are folded by precedence climbing; see precedence.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string

	depth    int
	maxDepth int // 0 disables the nesting limit
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{
		tokens:      tokens,
		sourceLines: strings.Split(rawSource, "\n"),
		maxDepth:    DefaultMaxDepth,
	}
}

// fmtError builds a SyntaxError carrying the source line where the token appears.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	snippet := ""
	lineIdx := tok.Line - 1 // Lines are 1-based
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}
	return &SyntaxError{Pos: tok.Pos(), Msg: fmt.Sprintf(format, args...), Snippet: snippet}
}

// enter records one level of recursion and fails once maxDepth is exceeded.
func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.fmtError(p.peek(), "nesting too deep (limit %d)", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// peek returns the current token without consuming it. Past the end of the
// slice it keeps returning the final token, which is EOF for lexer output.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return Token{Type: EOF}
		}
		last := p.tokens[len(p.tokens)-1]
		if last.Type != EOF {
			return Token{Type: EOF, Line: last.Line, Column: last.Column}
		}
		return last
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.fmtError(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	return p.advance(), nil
}

// precedence returns the binding power of a binary operator, or 0 for any
// token that ends an operand chain.
func precedence(tt TokenType) int {
	switch tt {
	case OR_LOGICAL:
		return 1
	case AND_LOGICAL:
		return 2
	case EQUALS, NOT_EQ:
		return 3
	case GREATER, GREATER_EQ, LESS, LESS_EQ:
		return 4
	case PLUS, MINUS:
		return 5
	case STAR, SLASH, PERCENT:
		return 6
	}
	return 0
}

// compoundOps maps a compound assignment to the operator it expands to.
var compoundOps = map[TokenType]TokenType{
	PLUS_ASSIGN:    PLUS,
	MINUS_ASSIGN:   MINUS,
	STAR_ASSIGN:    STAR,
	SLASH_ASSIGN:   SLASH,
	PERCENT_ASSIGN: PERCENT,
}

func isAssignOp(tt TokenType) bool {
	if tt == ASSIGN {
		return true
	}
	_, ok := compoundOps[tt]
	return ok
}

// parseExpression parses a unary term followed by either an assignment or a
// chain of binary operators binding tighter than minPrec.
func (p *Parser) parseExpression(minPrec int) (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if isAssignOp(p.peek().Type) {
		opTok := p.advance()
		target, ok := left.(*Identifier)
		if !ok {
			return nil, p.fmtError(opTok, "invalid assignment target %s", left)
		}
		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if op, compound := compoundOps[opTok.Type]; compound {
			read := *target
			value = &BinaryExpr{Pos: opTok.Pos(), Left: &read, Op: op, Right: value}
		}
		return &AssignExpr{Pos: opTok.Pos(), Target: target, Value: value}, nil
	}

	for {
		prec := precedence(p.peek().Type)
		if prec == 0 || prec <= minPrec {
			break
		}
		opTok := p.advance()
		// Parsing the right operand at the operator's own precedence makes
		// equal-precedence chains fold to the left.
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: opTok.Pos(), Left: left, Op: opTok.Type, Right: right}
	}
	return left, nil
}

// parseUnary handles prefix operators !, -, ++ and --.
func (p *Parser) parseUnary() (Expr, error) {
	switch p.peek().Type {
	case NOT, MINUS, PLUS_PLUS, MINUS_MINUS:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Pos: opTok.Pos(), Op: opTok.Type, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case INT_LIT, FLOAT_LIT, STRING_LIT:
		return &Literal{Pos: tok.Pos(), Value: tok.Literal}, nil
	case TRUE:
		return &Literal{Pos: tok.Pos(), Value: Value{Kind: BoolValue, Bool: true}}, nil
	case FALSE:
		return &Literal{Pos: tok.Pos(), Value: Value{Kind: BoolValue, Bool: false}}, nil
	case NULL:
		return &Literal{Pos: tok.Pos(), Value: Value{Kind: NullValue}}, nil
	case IDENTIFIER:
		ident := &Identifier{Pos: tok.Pos(), Name: tok.Lexeme}
		if p.peek().Type == LPAREN {
			p.advance() // (
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return &CallExpr{Pos: tok.Pos(), Target: ident, Args: args}, nil
		}
		return ident, nil
	case LPAREN:
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.fmtError(tok, "unexpected token %s (%q)", tok.Type, tok.Lexeme)
}

// parseCallArgs parses the argument list after the opening '(' up to and
// including the closing ')'.
func (p *Parser) parseCallArgs() ([]Expr, error) {
	var args []Expr
	if p.peek().Type != RPAREN {
		for {
			arg, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.peek().Type != COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseVarDecl parses  type name [= expr] ;
func (p *Parser) parseVarDecl() (Stmt, error) {
	typeTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{Pos: typeTok.Pos(), TypeName: typeTok.Lexeme, Name: nameTok.Lexeme}
	if p.peek().Type == ASSIGN {
		p.advance()
		decl.Init, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseFunctionDecl parses  type name(type a, type b) { ... }
func (p *Parser) parseFunctionDecl() (Stmt, error) {
	retTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var params []Param
	if p.peek().Type != RPAREN {
		for {
			typeTok := p.advance()
			if !typeTok.Type.IsTypeKeyword() {
				return nil, p.fmtError(typeTok, "expected parameter type, got %s (%q)", typeTok.Type, typeTok.Lexeme)
			}
			paramName, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			params = append(params, Param{TypeName: typeTok.Lexeme, Name: paramName.Lexeme})

			if p.peek().Type != COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	lbrace, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(lbrace)
	if err != nil {
		return nil, err
	}

	return &FunctionDecl{
		Pos:        retTok.Pos(),
		ReturnType: retTok.Lexeme,
		Name:       nameTok.Lexeme,
		Params:     params,
		Body:       body,
	}, nil
}

// parseReturn parses  return [expr] ;
// The leading RETURN token has already been consumed by parseStatement.
func (p *Parser) parseReturn(kw Token) (Stmt, error) {
	if p.peek().Type == SEMICOLON {
		p.advance()
		return &ReturnStmt{Pos: kw.Pos()}, nil
	}

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ReturnStmt{Pos: kw.Pos(), Expr: expr}, nil
}

// parseBlock parses statements up to the closing '}'.
// The leading LBRACE token has already been consumed.
func (p *Parser) parseBlock(lbrace Token) (*BlockStmt, error) {
	block := &BlockStmt{Pos: lbrace.Pos()}
	for {
		tok := p.peek()
		if tok.Type == RBRACE {
			p.advance()
			return block, nil
		}
		if tok.Type == EOF {
			return nil, p.fmtError(lbrace, "unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
}

// parseCondition parses  ( expr )
func (p *Parser) parseCondition() (Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf parses if ( cond ) then [ else elseBranch ]
// The leading IF token has already been consumed by parseStatement.
func (p *Parser) parseIf(kw Token) (Stmt, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Pos: kw.Pos(), Condition: cond, Then: then}
	if p.peek().Type == ELSE {
		p.advance()
		stmt.Else, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseWhile parses while ( cond ) body
// The leading WHILE token has already been consumed by parseStatement.
func (p *Parser) parseWhile(kw Token) (Stmt, error) {
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Pos: kw.Pos(), Condition: cond, Body: body}, nil
}

// parseStatement dispatches to the correct sub-parser based on the leading token.
func (p *Parser) parseStatement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	if tok.Type.IsTypeKeyword() {
		// type name ( starts a function, anything else after the type is a variable
		if p.peekAt(1).Type == IDENTIFIER && p.peekAt(2).Type == LPAREN {
			return p.parseFunctionDecl()
		}
		return p.parseVarDecl()
	}

	switch tok.Type {
	case RETURN:
		p.advance()
		return p.parseReturn(tok)

	case IF:
		p.advance()
		return p.parseIf(tok)

	case WHILE:
		p.advance()
		return p.parseWhile(tok)

	case LBRACE:
		p.advance()
		return p.parseBlock(tok)

	default:
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &ExprStmt{Pos: expr.Position(), Expr: expr}, nil
	}
}

func (p *Parser) parseProgram() ([]Stmt, error) {
	var stmts []Stmt
	for p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Parse builds the top-level statement list from a token stream, stopping at
// the first syntax error.
func Parse(tokens []Token, rawSource string) ([]Stmt, error) {
	return NewParser(tokens, rawSource).parseProgram()
}
