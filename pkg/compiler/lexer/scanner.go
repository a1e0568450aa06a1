package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/agenthands/nlox/pkg/core/value"
)

// Scanner performs lexical analysis on nlox source.
type Scanner struct {
	source string
	loc    Location // position of the next unread rune
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		loc:    Location{Line: 1},
	}
}

// Reset re-initializes the scanner with new source.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.loc = Location{Line: 1}
}

// Scan tokenizes the whole source. The returned stream always ends in
// exactly one EOF token. The first error aborts the scan.
func Scan(source string) (*Tokens, error) {
	toks, err := ScanAll(source)
	if err != nil {
		return nil, err
	}
	return NewTokens(toks), nil
}

// ScanAll is Scan returning a plain slice.
func ScanAll(source string) ([]Token, error) {
	s := NewScanner(source)
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks, nil
		}
	}
}

// Next returns the next token from the source. Once the input is exhausted
// it keeps returning EOF tokens located at the end of the source.
func (s *Scanner) Next() (Token, error) {
	s.skipTrivia()

	start := s.loc
	if s.atEnd() {
		return Token{Kind: KindEOF, Start: start, End: start}, nil
	}

	ch := s.advance()
	switch ch {
	case '(':
		return s.emit(KindLeftParen, start), nil
	case ')':
		return s.emit(KindRightParen, start), nil
	case '{':
		return s.emit(KindLeftBrace, start), nil
	case '}':
		return s.emit(KindRightBrace, start), nil
	case ',':
		return s.emit(KindComma, start), nil
	case '.':
		return s.emit(KindDot, start), nil
	case '-':
		return s.emit(KindMinus, start), nil
	case '+':
		return s.emit(KindPlus, start), nil
	case ';':
		return s.emit(KindSemicolon, start), nil
	case '*':
		return s.emit(KindStar, start), nil
	case '/':
		return s.emit(KindSlash, start), nil
	case '!':
		return s.emit(s.either('=', KindBangEqual, KindBang), start), nil
	case '=':
		return s.emit(s.either('=', KindEqualEqual, KindEqual), start), nil
	case '<':
		return s.emit(s.either('=', KindLessEqual, KindLess), start), nil
	case '>':
		return s.emit(s.either('=', KindGreaterEqual, KindGreater), start), nil
	case '"':
		return s.scanString(start)
	}

	if isDigit(ch) {
		return s.scanNumber(start)
	}
	if unicode.IsLetter(ch) {
		return s.scanIdentifier(start), nil
	}

	return Token{}, &ScanError{Kind: ErrUnexpectedChar, Char: ch, Loc: start}
}

// skipTrivia consumes whitespace and line comments.
func (s *Scanner) skipTrivia() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		case '/':
			if s.peekNext() != '/' {
				return
			}
			for !s.atEnd() && s.advance() != '\n' {
			}
		default:
			return
		}
	}
}

func (s *Scanner) scanString(start Location) (Token, error) {
	for {
		if s.atEnd() {
			return Token{}, &ScanError{Kind: ErrUnterminatedString, Loc: start}
		}
		if s.advance() == '"' {
			break
		}
	}

	tok := s.emit(KindString, start)
	tok.Literal = value.String(s.source[start.Offset+1 : s.loc.Offset-1])
	return tok, nil
}

// scanNumber reads digits ('.' digits)?. A dot that is not followed by a
// digit is left for the next token.
func (s *Scanner) scanNumber(start Location) (Token, error) {
	s.digits()

	isDecimal := false
	if s.peek() == '.' && isDigit(s.peekNext()) {
		isDecimal = true
		s.advance()
		s.digits()
	}

	text := s.source[start.Offset:s.loc.Offset]
	if isDecimal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &ScanError{Kind: ErrInvalidNumber, Text: text, Loc: start, Err: err}
		}
		tok := s.emit(KindDecimal, start)
		tok.Literal = value.Decimal(f)
		return tok, nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &ScanError{Kind: ErrInvalidNumber, Text: text, Loc: start, Err: err}
	}
	tok := s.emit(KindInteger, start)
	tok.Literal = value.Int(i)
	return tok, nil
}

// scanIdentifier reads a letter followed by letters or underscores.
// Digits are not part of identifiers.
func (s *Scanner) scanIdentifier(start Location) Token {
	for !s.atEnd() {
		ch := s.peek()
		if !unicode.IsLetter(ch) && ch != '_' {
			break
		}
		s.advance()
	}

	text := s.source[start.Offset:s.loc.Offset]
	kind, ok := keywords[text]
	if !ok {
		return s.emit(KindIdentifier, start)
	}

	tok := s.emit(kind, start)
	switch kind {
	case KindTrue:
		tok.Literal = value.Bool(true)
	case KindFalse:
		tok.Literal = value.Bool(false)
	}
	return tok
}

func (s *Scanner) digits() {
	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}
}

func (s *Scanner) emit(kind Kind, start Location) Token {
	return Token{
		Kind:   kind,
		Lexeme: s.source[start.Offset:s.loc.Offset],
		Start:  start,
		End:    s.loc,
	}
}

// either consumes the lookahead and returns matched if it equals want.
func (s *Scanner) either(want rune, matched, otherwise Kind) Kind {
	if !s.atEnd() && s.peek() == want {
		s.advance()
		return matched
	}
	return otherwise
}

func (s *Scanner) atEnd() bool {
	return s.loc.Offset >= len(s.source)
}

func (s *Scanner) advance() rune {
	ch, width := utf8.DecodeRuneInString(s.source[s.loc.Offset:])
	s.loc.Offset += width
	if ch == '\n' {
		s.loc.Line++
		s.loc.Column = 0
	} else {
		s.loc.Column++
	}
	return ch
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(s.source[s.loc.Offset:])
	return ch
}

func (s *Scanner) peekNext() rune {
	if s.atEnd() {
		return 0
	}
	_, width := utf8.DecodeRuneInString(s.source[s.loc.Offset:])
	if s.loc.Offset+width >= len(s.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(s.source[s.loc.Offset+width:])
	return ch
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
