package ast

import (
	"errors"
	"fmt"

	"github.com/agenthands/nlox/pkg/compiler/lexer"
)

// ErrNotIdentifier is returned by NewIdent for non-identifier tokens.
var ErrNotIdentifier = errors.New("token is not an identifier")

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Pos() lexer.Token
}

// Expr represents an expression that yields a value.
type Expr interface {
	Node
	exprNode()
}

// Statement represents a standalone unit of execution.
type Statement interface {
	Node
	stmtNode()
}

// Ident is a validated identifier.
type Ident struct {
	Name  string
	Token lexer.Token
}

// NewIdent wraps tok, failing unless it is an identifier.
func NewIdent(tok lexer.Token) (Ident, error) {
	if tok.Kind != lexer.KindIdentifier || tok.Lexeme == "" {
		return Ident{}, fmt.Errorf("%w: %v", ErrNotIdentifier, tok)
	}
	return Ident{Name: tok.Lexeme, Token: tok}, nil
}

// Unary: ("!" | "-") Operand
type Unary struct {
	Op      lexer.Token
	Operand Expr
}

func (u *Unary) Pos() lexer.Token { return u.Op }
func (u *Unary) exprNode()        {}

// Binary: Left Op Right, including "and" and "or".
type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

func (b *Binary) Pos() lexer.Token { return b.Op }
func (b *Binary) exprNode()        {}

// Grouping: "(" Inner ")"
type Grouping struct {
	Paren lexer.Token
	Inner Expr
}

func (g *Grouping) Pos() lexer.Token { return g.Paren }
func (g *Grouping) exprNode()        {}

// Literal wraps a literal or identifier token. Identifiers are resolved
// when the literal is evaluated.
type Literal struct {
	Token lexer.Token
}

func (l *Literal) Pos() lexer.Token { return l.Token }
func (l *Literal) exprNode()        {}

// IsIdentifier reports whether the literal names a variable.
func (l *Literal) IsIdentifier() bool {
	return l.Token.Kind == lexer.KindIdentifier
}

// Assignment: Target "=" Value
type Assignment struct {
	Target Ident
	Op     lexer.Token
	Value  Expr
}

func (a *Assignment) Pos() lexer.Token { return a.Op }
func (a *Assignment) exprNode()        {}

// Block: "{" Statements "}"
type Block struct {
	Brace      lexer.Token
	Statements []Statement
}

func (b *Block) Pos() lexer.Token { return b.Brace }
func (b *Block) stmtNode()        {}

// If: "if" Cond Then ("else" Else)?
type If struct {
	Keyword lexer.Token
	Cond    Expr
	Then    *Block
	Else    *Block // nil without an else branch
}

func (i *If) Pos() lexer.Token { return i.Keyword }
func (i *If) stmtNode()        {}

// While: "while" Cond Body
type While struct {
	Keyword lexer.Token
	Cond    Expr
	Body    *Block
}

func (w *While) Pos() lexer.Token { return w.Keyword }
func (w *While) stmtNode()        {}

// Var: "var" Name ("=" Init)? ";"
type Var struct {
	Keyword lexer.Token
	Name    Ident
	Init    Expr // nil when declared without initializer
}

func (v *Var) Pos() lexer.Token { return v.Keyword }
func (v *Var) stmtNode()        {}

// Print: "print" Expr ";"
type Print struct {
	Keyword lexer.Token
	Expr    Expr
}

func (p *Print) Pos() lexer.Token { return p.Keyword }
func (p *Print) stmtNode()        {}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Expr Expr
}

func (e *ExprStmt) Pos() lexer.Token { return e.Expr.Pos() }
func (e *ExprStmt) stmtNode()        {}

// Empty is a bare semicolon.
type Empty struct {
	Semicolon lexer.Token
}

func (e *Empty) Pos() lexer.Token { return e.Semicolon }
func (e *Empty) stmtNode()        {}
