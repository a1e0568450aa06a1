package lexer

import (
	"fmt"

	"github.com/agenthands/nlox/pkg/core/value"
)

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota

	// single-character punctuation
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindComma
	KindDot
	KindMinus
	KindPlus
	KindSemicolon
	KindSlash
	KindStar

	// one or two character operators
	KindBang
	KindBangEqual
	KindEqual
	KindEqualEqual
	KindGreater
	KindGreaterEqual
	KindLess
	KindLessEqual

	// literals
	KindIdentifier
	KindString
	KindInteger
	KindDecimal

	// keywords
	KindAnd
	KindClass
	KindElse
	KindFalse
	KindFor
	KindFun
	KindIf
	KindNil
	KindOr
	KindPrint
	KindReturn
	KindSuper
	KindThis
	KindTrue
	KindVar
	KindWhile
)

var kindNames = [...]string{
	KindEOF:          "end of input",
	KindLeftParen:    "'('",
	KindRightParen:   "')'",
	KindLeftBrace:    "'{'",
	KindRightBrace:   "'}'",
	KindComma:        "','",
	KindDot:          "'.'",
	KindMinus:        "'-'",
	KindPlus:         "'+'",
	KindSemicolon:    "';'",
	KindSlash:        "'/'",
	KindStar:         "'*'",
	KindBang:         "'!'",
	KindBangEqual:    "'!='",
	KindEqual:        "'='",
	KindEqualEqual:   "'=='",
	KindGreater:      "'>'",
	KindGreaterEqual: "'>='",
	KindLess:         "'<'",
	KindLessEqual:    "'<='",
	KindIdentifier:   "identifier",
	KindString:       "string",
	KindInteger:      "integer",
	KindDecimal:      "decimal",
	KindAnd:          "'and'",
	KindClass:        "'class'",
	KindElse:         "'else'",
	KindFalse:        "'false'",
	KindFor:          "'for'",
	KindFun:          "'fun'",
	KindIf:           "'if'",
	KindNil:          "'nil'",
	KindOr:           "'or'",
	KindPrint:        "'print'",
	KindReturn:       "'return'",
	KindSuper:        "'super'",
	KindThis:         "'this'",
	KindTrue:         "'true'",
	KindVar:          "'var'",
	KindWhile:        "'while'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsLiteral reports whether tokens of this kind carry a value.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindString, KindInteger, KindDecimal, KindTrue, KindFalse, KindNil:
		return true
	}
	return false
}

var keywords = map[string]Kind{
	"and":    KindAnd,
	"class":  KindClass,
	"else":   KindElse,
	"false":  KindFalse,
	"for":    KindFor,
	"fun":    KindFun,
	"if":     KindIf,
	"nil":    KindNil,
	"or":     KindOr,
	"print":  KindPrint,
	"return": KindReturn,
	"super":  KindSuper,
	"this":   KindThis,
	"true":   KindTrue,
	"var":    KindVar,
	"while":  KindWhile,
}

// Location is a point in the source.
// Offset is a byte offset, Line is 1-based and Column counts runes since the
// last newline, starting at 0.
type Location struct {
	Offset int
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Token represents a lexical unit pointing back to the source.
// Lexeme is src[Start.Offset:End.Offset].
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal value.Value
	Start   Location
	End     Location
}

func (t Token) String() string {
	switch {
	case t.Kind == KindEOF:
		return t.Kind.String()
	case t.Kind == KindIdentifier:
		return fmt.Sprintf("identifier %q", t.Lexeme)
	case t.Kind == KindString || t.Kind == KindInteger || t.Kind == KindDecimal:
		return fmt.Sprintf("%s %s", t.Kind, t.Lexeme)
	default:
		return t.Kind.String()
	}
}
