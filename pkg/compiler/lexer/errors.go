package lexer

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrInvalidNumber      = errors.New("invalid number")
)

// ScanError reports the first lexical error in a source.
// Kind is one of the Err* sentinels; Err holds the strconv failure behind
// ErrInvalidNumber.
type ScanError struct {
	Kind error
	Char rune
	Text string
	Loc  Location
	Err  error
}

func (e *ScanError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

// Message is Error without the location prefix.
func (e *ScanError) Message() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("%s %q", e.Kind, e.Char)
	case ErrInvalidNumber:
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Text, e.Err)
	default:
		return e.Kind.Error()
	}
}

// Location is where the offending token starts.
func (e *ScanError) Location() Location {
	return e.Loc
}

func (e *ScanError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
