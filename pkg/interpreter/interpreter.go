package interpreter

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"

	"github.com/agenthands/nlox/pkg/compiler/ast"
	"github.com/agenthands/nlox/pkg/compiler/lexer"
	"github.com/agenthands/nlox/pkg/core/value"
)

// Interpreter walks statement trees against an Environment, writing the
// output of print statements to out.
type Interpreter struct {
	env *Environment
	out io.Writer

	gas   int // statement budget; 0 means unlimited
	spent int
}

// New creates an interpreter over env. A nil env gets a fresh global scope.
func New(env *Environment, out io.Writer) *Interpreter {
	if env == nil {
		env = NewEnvironment()
	}
	return &Interpreter{env: env, out: out}
}

func (in *Interpreter) Environment() *Environment {
	return in.env
}

// SetGasLimit caps the number of statements executed from now on, counting
// every pass through a loop body. Zero removes the cap.
func (in *Interpreter) SetGasLimit(limit int) {
	in.gas = limit
	in.spent = 0
}

// Run executes stmts in order and stops at the first error. Side effects of
// statements that ran before the failure are kept.
func (in *Interpreter) Run(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a single statement.
func (in *Interpreter) Execute(stmt ast.Statement) error {
	if glog.V(5) {
		glog.V(5).Infof("interpreter: execute %T at %v", stmt, stmt.Pos().Start)
	}
	if _, isBlock := stmt.(*ast.Block); !isBlock {
		if err := in.spend(stmt.Pos()); err != nil {
			return err
		}
	}

	switch s := stmt.(type) {
	case *ast.Print:
		v, err := in.Eval(s.Expr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(in.out, v.Format()); err != nil {
			return &RuntimeError{Kind: ErrOutput, Token: s.Keyword, Err: err}
		}
		return nil

	case *ast.ExprStmt:
		_, err := in.Eval(s.Expr)
		return err

	case *ast.Var:
		var init *value.Value
		if s.Init != nil {
			v, err := in.Eval(s.Init)
			if err != nil {
				return err
			}
			init = &v
		}
		return at(in.env.Declare(s.Name.Name, init), s.Name.Token)

	case *ast.Block:
		return in.executeBlock(s)

	case *ast.If:
		ok, err := in.condition(s.Keyword, s.Cond)
		if err != nil {
			return err
		}
		if ok {
			return in.executeBlock(s.Then)
		}
		if s.Else != nil {
			return in.executeBlock(s.Else)
		}
		return nil

	case *ast.While:
		for {
			ok, err := in.condition(s.Keyword, s.Cond)
			if err != nil || !ok {
				return err
			}
			if err := in.executeBlock(s.Body); err != nil {
				return err
			}
		}

	case *ast.Empty:
		return nil
	}

	return fmt.Errorf("interpreter: unsupported statement %T", stmt)
}

// executeBlock runs b in a fresh scope. The scope is closed even when a
// statement inside fails.
func (in *Interpreter) executeBlock(b *ast.Block) (err error) {
	if err := in.spend(b.Brace); err != nil {
		return err
	}
	in.env.NewScope()
	defer func() {
		if endErr := in.env.EndScope(); endErr != nil {
			glog.Errorf("interpreter: closing scope opened at %v: %v", b.Brace.Start, endErr)
			err = multierror.Append(err, endErr)
		}
	}()

	for _, stmt := range b.Statements {
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// spend charges one statement against the gas limit. Every block entry is
// charged, so a loop with an empty body still runs out.
func (in *Interpreter) spend(at lexer.Token) error {
	if in.gas == 0 {
		return nil
	}
	if in.spent >= in.gas {
		return &RuntimeError{Kind: ErrGasExhausted, Token: at}
	}
	in.spent++
	return nil
}

func (in *Interpreter) condition(kw lexer.Token, cond ast.Expr) (bool, error) {
	v, err := in.Eval(cond)
	if err != nil {
		return false, err
	}
	return truthy(kw, v)
}

// Eval evaluates an expression to a value. Identifiers are read from the
// environment here; assignment targets are never evaluated.
func (in *Interpreter) Eval(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.IsIdentifier() {
			v, err := in.env.Lookup(e.Token.Lexeme)
			return v, at(err, e.Token)
		}
		return e.Token.Literal, nil

	case *ast.Grouping:
		return in.Eval(e.Inner)

	case *ast.Unary:
		v, err := in.Eval(e.Operand)
		if err != nil {
			return value.Null, err
		}
		return unary(e.Op, v)

	case *ast.Binary:
		if e.Op.Kind == lexer.KindAnd || e.Op.Kind == lexer.KindOr {
			return in.logical(e)
		}
		l, err := in.Eval(e.Left)
		if err != nil {
			return value.Null, err
		}
		r, err := in.Eval(e.Right)
		if err != nil {
			return value.Null, err
		}
		return binary(e.Op, l, r)

	case *ast.Assignment:
		v, err := in.Eval(e.Value)
		if err != nil {
			return value.Null, err
		}
		if err := in.env.Assign(e.Target.Name, v); err != nil {
			return value.Null, at(err, e.Target.Token)
		}
		return v, nil
	}

	return value.Null, fmt.Errorf("interpreter: unsupported expression %T", expr)
}

// logical short-circuits "and" and "or". The result is always a bool.
func (in *Interpreter) logical(e *ast.Binary) (value.Value, error) {
	l, err := in.Eval(e.Left)
	if err != nil {
		return value.Null, err
	}
	lt, err := truthy(e.Op, l)
	if err != nil {
		return value.Null, err
	}
	if e.Op.Kind == lexer.KindOr && lt {
		return value.Bool(true), nil
	}
	if e.Op.Kind == lexer.KindAnd && !lt {
		return value.Bool(false), nil
	}

	r, err := in.Eval(e.Right)
	if err != nil {
		return value.Null, err
	}
	rt, err := truthy(e.Op, r)
	if err != nil {
		return value.Null, err
	}
	return value.Bool(rt), nil
}
