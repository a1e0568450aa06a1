package parser

import (
	"errors"
	"fmt"

	"github.com/agenthands/nlox/pkg/compiler/lexer"
)

var (
	ErrIdentifierExpected      = errors.New("identifier expected")
	ErrSemicolonExpected       = errors.New("semicolon expected")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrUnterminatedBlock       = errors.New("unterminated block")
	ErrUnexpectedToken         = errors.New("unexpected token")
)

// ParseError reports the first syntax error in a token stream.
type ParseError struct {
	Kind     error
	Token    lexer.Token // the offending token
	Expected string      // what the parser was looking for, if known
}

func (e *ParseError) Error() string {
	return e.Token.Start.String() + ": " + e.Message()
}

// Message is Error without the location prefix.
func (e *ParseError) Message() string {
	switch e.Kind {
	case ErrIdentifierExpected, ErrSemicolonExpected:
		return fmt.Sprintf("%s before %v", e.Kind, e.Token)
	case ErrUnterminatedBlock:
		return fmt.Sprintf("%s: expected %s before %v", e.Kind, e.Expected, e.Token)
	case ErrUnexpectedToken:
		if e.Expected == "" {
			return fmt.Sprintf("%s %v", e.Kind, e.Token)
		}
		return fmt.Sprintf("%s %v: expected %s", e.Kind, e.Token, e.Expected)
	default:
		return e.Kind.Error()
	}
}

// Location is where the offending token starts.
func (e *ParseError) Location() lexer.Location {
	return e.Token.Start
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
