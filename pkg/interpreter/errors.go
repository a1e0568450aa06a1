package interpreter

import (
	"errors"
	"fmt"

	"github.com/agenthands/nlox/pkg/compiler/lexer"
)

var (
	ErrUndefinedVariable    = errors.New("undefined variable")
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrAssignToUndeclared   = errors.New("assignment to undeclared variable")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrOutput               = errors.New("output failed")
	ErrGasExhausted         = errors.New("gas exhausted")

	// ErrNoParentScope means a scope was closed that was never opened.
	// It indicates a bug in the interpreter, not in the program.
	ErrNoParentScope = errors.New("end of scope without parent")
)

// RuntimeError reports a failure while executing a program.
// Kind is one of the Err* sentinels.
type RuntimeError struct {
	Kind     error
	Name     string      // variable involved, if any
	Op       string      // operator involved, if any
	Operands string      // description of the offending operand types
	Token    lexer.Token // where evaluation failed; zero if unknown
	Err      error       // underlying cause, if any
}

func (e *RuntimeError) Error() string {
	if e.Token.Start.Line == 0 {
		return e.Message()
	}
	return e.Token.Start.String() + ": " + e.Message()
}

// Message is Error without the location prefix.
func (e *RuntimeError) Message() string {
	switch e.Kind {
	case ErrUndefinedVariable, ErrDuplicateDeclaration, ErrAssignToUndeclared:
		return fmt.Sprintf("%s '%s'", e.Kind, e.Name)
	case ErrTypeMismatch:
		return fmt.Sprintf("%s: operator '%s' cannot be applied to %s", e.Kind, e.Op, e.Operands)
	case ErrDivisionByZero:
		return fmt.Sprintf("%s in '%s'", e.Kind, e.Op)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

// Location is where the failing expression starts.
func (e *RuntimeError) Location() lexer.Location {
	return e.Token.Start
}

func (e *RuntimeError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Is lets an assignment to an undeclared name also match ErrUndefinedVariable.
func (e *RuntimeError) Is(target error) bool {
	return e.Kind == ErrAssignToUndeclared && target == ErrUndefinedVariable
}

// at attaches a location to runtime errors that do not have one yet.
func at(err error, tok lexer.Token) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) && rerr.Token.Start.Line == 0 {
		rerr.Token = tok
	}
	return err
}
