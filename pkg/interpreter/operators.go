package interpreter

import (
	"cmp"
	"strings"

	"github.com/agenthands/nlox/pkg/compiler/lexer"
	"github.com/agenthands/nlox/pkg/core/value"
)

// truthy coerces v to a boolean for conditions and logical operators.
// Strings and decimals have no truth value.
func truthy(op lexer.Token, v value.Value) (bool, error) {
	switch v.Type {
	case value.TypeBool:
		return v.AsBool(), nil
	case value.TypeInt:
		return v.AsInt() != 0, nil
	case value.TypeNull:
		return false, nil
	case value.TypeString, value.TypeDecimal:
		return false, mismatch(op, v)
	}
	return false, mismatch(op, v)
}

func unary(op lexer.Token, v value.Value) (value.Value, error) {
	switch op.Kind {
	case lexer.KindBang:
		if v.Type == value.TypeBool {
			return value.Bool(!v.AsBool()), nil
		}
	case lexer.KindMinus:
		switch v.Type {
		case value.TypeInt:
			return value.Int(-v.AsInt()), nil
		case value.TypeDecimal:
			return value.Decimal(-v.AsDecimal()), nil
		}
	}
	return value.Null, mismatch(op, v)
}

// binary applies every non-logical binary operator.
func binary(op lexer.Token, l, r value.Value) (value.Value, error) {
	switch op.Kind {
	case lexer.KindPlus, lexer.KindMinus, lexer.KindStar, lexer.KindSlash:
		return arithmetic(op, l, r)
	case lexer.KindEqualEqual:
		return value.Bool(equal(l, r)), nil
	case lexer.KindBangEqual:
		return value.Bool(!equal(l, r)), nil
	case lexer.KindLess, lexer.KindLessEqual, lexer.KindGreater, lexer.KindGreaterEqual:
		return compare(op, l, r)
	}
	return value.Null, mismatch(op, l, r)
}

// arithmetic promotes int to decimal when the operand types differ.
// Only + accepts strings.
func arithmetic(op lexer.Token, l, r value.Value) (value.Value, error) {
	switch {
	case l.Type == value.TypeInt && r.Type == value.TypeInt:
		a, b := l.AsInt(), r.AsInt()
		switch op.Kind {
		case lexer.KindPlus:
			return value.Int(a + b), nil
		case lexer.KindMinus:
			return value.Int(a - b), nil
		case lexer.KindStar:
			return value.Int(a * b), nil
		case lexer.KindSlash:
			if b == 0 {
				return value.Null, &RuntimeError{Kind: ErrDivisionByZero, Op: op.Lexeme, Token: op}
			}
			return value.Int(a / b), nil
		}
	case l.IsNumber() && r.IsNumber():
		a, b := l.AsDecimal(), r.AsDecimal()
		switch op.Kind {
		case lexer.KindPlus:
			return value.Decimal(a + b), nil
		case lexer.KindMinus:
			return value.Decimal(a - b), nil
		case lexer.KindStar:
			return value.Decimal(a * b), nil
		case lexer.KindSlash:
			return value.Decimal(a / b), nil
		}
	case l.Type == value.TypeString && r.Type == value.TypeString && op.Kind == lexer.KindPlus:
		return value.String(l.AsString() + r.AsString()), nil
	}
	return value.Null, mismatch(op, l, r)
}

// equal never fails: values of unrelated types are simply unequal.
func equal(l, r value.Value) bool {
	switch {
	case l.Type == value.TypeInt && r.Type == value.TypeInt:
		return l.AsInt() == r.AsInt()
	case l.IsNumber() && r.IsNumber():
		return l.AsDecimal() == r.AsDecimal()
	case l.Type != r.Type:
		return false
	}

	switch l.Type {
	case value.TypeNull:
		return true
	case value.TypeBool:
		return l.AsBool() == r.AsBool()
	case value.TypeString:
		return l.AsString() == r.AsString()
	}
	return false
}

// compare orders numbers and strings.
func compare(op lexer.Token, l, r value.Value) (value.Value, error) {
	switch {
	case l.Type == value.TypeInt && r.Type == value.TypeInt:
		return value.Bool(ordered(op.Kind, l.AsInt(), r.AsInt())), nil
	case l.IsNumber() && r.IsNumber():
		return value.Bool(ordered(op.Kind, l.AsDecimal(), r.AsDecimal())), nil
	case l.Type == value.TypeString && r.Type == value.TypeString:
		return value.Bool(ordered(op.Kind, l.AsString(), r.AsString())), nil
	}
	return value.Null, mismatch(op, l, r)
}

func ordered[T cmp.Ordered](kind lexer.Kind, a, b T) bool {
	switch kind {
	case lexer.KindLess:
		return a < b
	case lexer.KindLessEqual:
		return a <= b
	case lexer.KindGreater:
		return a > b
	case lexer.KindGreaterEqual:
		return a >= b
	}
	return false
}

func mismatch(op lexer.Token, operands ...value.Value) error {
	types := make([]string, len(operands))
	for i, v := range operands {
		types[i] = v.Type.String()
	}
	return &RuntimeError{
		Kind:     ErrTypeMismatch,
		Op:       op.Lexeme,
		Operands: strings.Join(types, " and "),
		Token:    op,
	}
}
