package interpreter_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/nlox/pkg/compiler/ast"
	"github.com/agenthands/nlox/pkg/compiler/lexer"
	"github.com/agenthands/nlox/pkg/compiler/parser"
	"github.com/agenthands/nlox/pkg/core/value"
	"github.com/agenthands/nlox/pkg/interpreter"
)

func run(t *testing.T, env *interpreter.Environment, src string) (string, error) {
	t.Helper()
	toks, err := lexer.Scan(src)
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)

	var out bytes.Buffer
	err = interpreter.New(env, &out).Run(stmts)
	return out.String(), err
}

func TestRunOutput(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"declare and print", "var x = 1; print x;", "1\n"},
		{"shadowing", "var x = 1; { var x = 2; print x; } print x;", "2\n1\n"},
		{"unbound reads nil", "var x; print x;", "nil\n"},
		{"precedence", "print 1 + 2 * 3;", "7\n"},
		{"grouping", "print (1 + 2) * 3;", "9\n"},
		{"concat", `print "a" + "b";`, "ab\n"},
		{"logical", "print true and false or true;", "true\n"},
		{"int division truncates", "print 7 / 2; print -7 / 2;", "3\n-3\n"},
		{"promotion", "print 1 + 0.5; print 3 * 1.5;", "1.5\n4.5\n"},
		{"decimal division", "print 1.0 / 4;", "0.25\n"},
		{"unary", "print -3; print !true; print -(1.5);", "-3\nfalse\n-1.5\n"},
		{"equality across numbers", "print 1 == 1.0; print 1 != 2;", "true\ntrue\n"},
		{"equality across types", `print 1 == "1"; print nil == nil; print nil == false;`, "false\ntrue\nfalse\n"},
		{"comparison", `print 1 < 2; print 2.5 >= 3; print "a" < "b";`, "true\nfalse\ntrue\n"},
		{"assignment value", "var a; var b; a = b = 4; print a; print b;", "4\n4\n"},
		{"assign outer from block", "var n = 1; { n = n + 1; } print n;", "2\n"},
		{"if else", "if 1 < 2 { print 1; } else { print 2; }", "1\n"},
		{"else branch", "if nil { print 1; } else { print 2; }", "2\n"},
		{"int truthiness", "if 0 { print 1; } if 5 { print 2; }", "2\n"},
		{"while", "var i = 0; while i < 3 { print i; i = i + 1; }", "0\n1\n2\n"},
		{"while false", "while false { print 1; }", ""},
		{"while with false and condition", "var x = 0; while (x and true) { }", ""},
		{"or short circuits", "print true or undefined;", "true\n"},
		{"and short circuits", "print false and undefined;", "false\n"},
		{"empty statements", ";;print 1;;", "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, nil, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   error
		output string
		msg    string
	}{
		{"assign undeclared", "x = 1;", interpreter.ErrAssignToUndeclared, "", "1:0: assignment to undeclared variable 'x'"},
		{"read undeclared", "print y;", interpreter.ErrUndefinedVariable, "", "1:6: undefined variable 'y'"},
		{"duplicate", "var a = 1; var a = 2;", interpreter.ErrDuplicateDeclaration, "", "1:15: duplicate declaration 'a'"},
		{"add int and string", `print 1 + "b";`, interpreter.ErrTypeMismatch, "", "1:8: type mismatch: operator '+' cannot be applied to int and string"},
		{"subtract strings", `print "a" - "b";`, interpreter.ErrTypeMismatch, "", ""},
		{"negate string", `print -"a";`, interpreter.ErrTypeMismatch, "", "1:6: type mismatch: operator '-' cannot be applied to string"},
		{"not int", "print !1;", interpreter.ErrTypeMismatch, "", ""},
		{"string condition", `if "s" { print 1; }`, interpreter.ErrTypeMismatch, "", "1:0: type mismatch: operator 'if' cannot be applied to string"},
		{"decimal in logical", "print 1.5 and true;", interpreter.ErrTypeMismatch, "", ""},
		{"compare bool", "print true < false;", interpreter.ErrTypeMismatch, "", ""},
		{"division by zero", "print 1; print 1 / 0;", interpreter.ErrDivisionByZero, "1\n", "1:17: division by zero in '/'"},
		{"stops at first error", "print 1; print z; print 2;", interpreter.ErrUndefinedVariable, "1\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, nil, tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.output, got)
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}

			var rerr *interpreter.RuntimeError
			require.ErrorAs(t, err, &rerr)
			assert.NotZero(t, rerr.Location().Line)
		})
	}
}

func TestRunClosesScopeOnError(t *testing.T) {
	env := interpreter.NewEnvironment()
	_, err := run(t, env, "{ var inner = 1; { print missing; } }")
	require.ErrorIs(t, err, interpreter.ErrUndefinedVariable)

	assert.Equal(t, 1, env.Depth())
	_, err = env.Lookup("inner")
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)
}

func TestRunKeepsStateAcrossCalls(t *testing.T) {
	env := interpreter.NewEnvironment()
	_, err := run(t, env, "var count = 1;")
	require.NoError(t, err)
	out, err := run(t, env, "count = count + 1; print count;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	v, err := env.Lookup("count")
	require.NoError(t, err)
	assert.Equal(t, value.Int(2), v)
}

type failingWriter struct{}

var errBrokenPipe = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

func TestPrintWriteFailure(t *testing.T) {
	toks, err := lexer.Scan("print 1;")
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)

	err = interpreter.New(nil, failingWriter{}).Run(stmts)
	assert.ErrorIs(t, err, interpreter.ErrOutput)
	assert.ErrorIs(t, err, errBrokenPipe)
	assert.EqualError(t, err, "1:0: output failed: broken pipe")
}

func TestEval(t *testing.T) {
	toks, err := lexer.Scan("1 + 2.5;")
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)

	in := interpreter.New(nil, nil)
	stmt, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	v, err := in.Eval(stmt.Expr)
	require.NoError(t, err)
	assert.Equal(t, value.Decimal(3.5), v)
}

func TestGasLimit(t *testing.T) {
	toks, err := lexer.Scan("var i = 0; while true { i = i + 1; }")
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)

	env := interpreter.NewEnvironment()
	in := interpreter.New(env, &bytes.Buffer{})
	in.SetGasLimit(11)
	err = in.Run(stmts)
	require.ErrorIs(t, err, interpreter.ErrGasExhausted)
	assert.Equal(t, 1, env.Depth())

	// var, while, then block and assignment per pass.
	v, err := env.Lookup("i")
	require.NoError(t, err)
	assert.Equal(t, value.Int(4), v)

	out, err := run(t, nil, "var n = 0; while n < 3 { n = n + 1; }")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGasLimitEmptyLoopBody(t *testing.T) {
	toks, err := lexer.Scan("while true { }")
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)

	in := interpreter.New(nil, &bytes.Buffer{})
	in.SetGasLimit(100)

	done := make(chan error, 1)
	go func() { done <- in.Run(stmts) }()
	select {
	case err := <-done:
		require.ErrorIs(t, err, interpreter.ErrGasExhausted)
		var rerr *interpreter.RuntimeError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, lexer.Location{Offset: 11, Line: 1, Column: 11}, rerr.Location())
	case <-time.After(5 * time.Second):
		t.Fatal("gas limit did not stop a loop with an empty body")
	}
}
