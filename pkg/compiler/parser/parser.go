package parser

import (
	"github.com/agenthands/nlox/pkg/compiler/ast"
	"github.com/agenthands/nlox/pkg/compiler/lexer"
)

// Parser is a recursive-descent parser over a scanned token stream.
//
//	declaration := "var" IDENT ( "=" expression )? ";" | statement
//	statement   := "print" expression ";" | block
//	             | "if" expression block ( "else" block )?
//	             | "while" expression block
//	             | ";" | expression ";"
//	block       := "{" declaration* "}"
//	expression  := assignment
//	assignment  := logic_or ( "=" assignment )?
//	logic_or    := logic_and ( "or" logic_and )*
//	logic_and   := equality ( "and" equality )*
//	equality    := comparison ( ( "!=" | "==" ) comparison )*
//	comparison  := term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        := factor ( ( "-" | "+" ) factor )*
//	factor      := unary ( ( "/" | "*" ) unary )*
//	unary       := ( "!" | "-" ) unary | primary
//	primary     := "false" | "true" | "nil" | INT | DECIMAL | STRING | IDENT
//	             | "(" expression ")"
type Parser struct {
	tokens *lexer.Tokens
}

func NewParser(tokens *lexer.Tokens) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole stream. The first error aborts parsing.
func Parse(tokens *lexer.Tokens) ([]ast.Statement, error) {
	return NewParser(tokens).Parse()
}

func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.tokens.Done() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) declaration() (ast.Statement, error) {
	if kw, ok := p.match(lexer.KindVar); ok {
		return p.varDecl(kw)
	}
	return p.statement()
}

func (p *Parser) varDecl(kw lexer.Token) (ast.Statement, error) {
	nameTok := p.tokens.Peek()
	name, err := ast.NewIdent(nameTok)
	if err != nil {
		return nil, &ParseError{Kind: ErrIdentifierExpected, Token: nameTok}
	}
	p.tokens.Next()

	decl := &ast.Var{Keyword: kw, Name: name}
	if _, ok := p.match(lexer.KindEqual); ok {
		if decl.Init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch p.tokens.Peek().Kind {
	case lexer.KindPrint:
		kw := p.tokens.Next()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.semicolon(); err != nil {
			return nil, err
		}
		return &ast.Print{Keyword: kw, Expr: expr}, nil
	case lexer.KindLeftBrace:
		return p.block()
	case lexer.KindIf:
		return p.ifStmt()
	case lexer.KindWhile:
		return p.whileStmt()
	case lexer.KindSemicolon:
		return &ast.Empty{Semicolon: p.tokens.Next()}, nil
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) block() (*ast.Block, error) {
	brace, err := p.expect(lexer.KindLeftBrace, "'{'")
	if err != nil {
		return nil, err
	}

	b := &ast.Block{Brace: brace}
	for {
		switch next := p.tokens.Peek(); next.Kind {
		case lexer.KindRightBrace:
			p.tokens.Next()
			return b, nil
		case lexer.KindEOF:
			return nil, &ParseError{Kind: ErrUnterminatedBlock, Token: next, Expected: "'}'"}
		}

		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, stmt)
	}
}

func (p *Parser) ifStmt() (ast.Statement, error) {
	kw := p.tokens.Next()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{Keyword: kw, Cond: cond, Then: then}
	if _, ok := p.match(lexer.KindElse); ok {
		if stmt.Else, err = p.block(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) whileStmt() (ast.Statement, error) {
	kw := p.tokens.Next()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.While{Keyword: kw, Cond: cond, Body: body}, nil
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment is right-associative. The target is checked before the
// right-hand side is parsed.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	eq, ok := p.match(lexer.KindEqual)
	if !ok {
		return expr, nil
	}

	lit, isLit := expr.(*ast.Literal)
	if !isLit || !lit.IsIdentifier() {
		return nil, &ParseError{Kind: ErrInvalidAssignmentTarget, Token: eq}
	}
	target, err := ast.NewIdent(lit.Token)
	if err != nil {
		return nil, &ParseError{Kind: ErrIdentifierExpected, Token: lit.Token}
	}

	rhs, err := p.assignment()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Target: target, Op: eq, Value: rhs}, nil
}

func (p *Parser) logicOr() (ast.Expr, error) {
	return p.binary(p.logicAnd, lexer.KindOr)
}

func (p *Parser) logicAnd() (ast.Expr, error) {
	return p.binary(p.equality, lexer.KindAnd)
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, lexer.KindBangEqual, lexer.KindEqualEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term,
		lexer.KindGreater, lexer.KindGreaterEqual, lexer.KindLess, lexer.KindLessEqual)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, lexer.KindMinus, lexer.KindPlus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, lexer.KindSlash, lexer.KindStar)
}

// binary parses one precedence level: operands come from next and are
// folded left-associatively for every operator in ops.
func (p *Parser) binary(next func() (ast.Expr, error), ops ...lexer.Kind) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(ops...)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	if op, ok := p.match(lexer.KindBang, lexer.KindMinus); ok {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.tokens.Peek()
	switch tok.Kind {
	case lexer.KindFalse, lexer.KindTrue, lexer.KindNil,
		lexer.KindInteger, lexer.KindDecimal, lexer.KindString, lexer.KindIdentifier:
		p.tokens.Next()
		return &ast.Literal{Token: tok}, nil
	case lexer.KindLeftParen:
		p.tokens.Next()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindRightParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Paren: tok, Inner: inner}, nil
	}
	return nil, &ParseError{Kind: ErrUnexpectedToken, Token: tok, Expected: "expression"}
}

func (p *Parser) semicolon() error {
	if _, ok := p.match(lexer.KindSemicolon); ok {
		return nil
	}
	return &ParseError{Kind: ErrSemicolonExpected, Token: p.tokens.Peek()}
}

func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	if tok, ok := p.match(kind); ok {
		return tok, nil
	}
	return lexer.Token{}, &ParseError{Kind: ErrUnexpectedToken, Token: p.tokens.Peek(), Expected: what}
}

// match consumes the next token if its kind is one of kinds.
func (p *Parser) match(kinds ...lexer.Kind) (lexer.Token, bool) {
	next := p.tokens.Peek()
	for _, k := range kinds {
		if next.Kind == k {
			return p.tokens.Next(), true
		}
	}
	return lexer.Token{}, false
}
