package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/nlox/pkg/compiler/ast"
)

// Printer renders syntax trees as parenthesised prefix expressions:
//
//	print 1 + 2 * 3;   =>  (print (+ 1 (* 2 3)))
type Printer struct {
	b strings.Builder
}

// Fprint writes one line per top-level statement.
func Fprint(w io.Writer, stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if _, err := fmt.Fprintln(w, Sprint(stmt)); err != nil {
			return err
		}
	}
	return nil
}

// Sprint renders a single statement or expression.
func Sprint(node ast.Node) string {
	p := &Printer{}
	p.emitNode(node)
	return p.b.String()
}

func (p *Printer) emitNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Print:
		p.list("print", n.Expr)
	case *ast.ExprStmt:
		p.list("expr", n.Expr)
	case *ast.Var:
		p.open("var")
		p.word(n.Name.Name)
		if n.Init != nil {
			p.b.WriteByte(' ')
			p.emitNode(n.Init)
		}
		p.b.WriteByte(')')
	case *ast.Block:
		p.open("block")
		for _, stmt := range n.Statements {
			p.b.WriteByte(' ')
			p.emitNode(stmt)
		}
		p.b.WriteByte(')')
	case *ast.If:
		if n.Else != nil {
			p.list("if", n.Cond, n.Then, n.Else)
		} else {
			p.list("if", n.Cond, n.Then)
		}
	case *ast.While:
		p.list("while", n.Cond, n.Body)
	case *ast.Empty:
		p.b.WriteString("(empty)")

	case *ast.Literal:
		p.b.WriteString(n.Token.Lexeme)
	case *ast.Grouping:
		p.list("group", n.Inner)
	case *ast.Unary:
		p.list(n.Op.Lexeme, n.Operand)
	case *ast.Binary:
		p.list(n.Op.Lexeme, n.Left, n.Right)
	case *ast.Assignment:
		p.open("=")
		p.word(n.Target.Name)
		p.b.WriteByte(' ')
		p.emitNode(n.Value)
		p.b.WriteByte(')')
	default:
		fmt.Fprintf(&p.b, "(unknown %T)", node)
	}
}

func (p *Printer) list(head string, nodes ...ast.Node) {
	p.open(head)
	for _, n := range nodes {
		p.b.WriteByte(' ')
		p.emitNode(n)
	}
	p.b.WriteByte(')')
}

func (p *Printer) open(head string) {
	p.b.WriteByte('(')
	p.b.WriteString(head)
}

func (p *Printer) word(w string) {
	p.b.WriteByte(' ')
	p.b.WriteString(w)
}
