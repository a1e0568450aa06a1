package value

import (
	"fmt"
	"math"
	"strconv"
)

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeDecimal
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDecimal:
		return "decimal"
	case TypeString:
		return "string"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Value is a tagged union.
// Ints and decimals live in the bits of Data, booleans as 0 or 1.
type Value struct {
	Type Type
	Data uint64
	Str  string
}

// Null is the zero Value.
var Null = Value{}

func Bool(b bool) Value {
	if b {
		return Value{Type: TypeBool, Data: 1}
	}
	return Value{Type: TypeBool}
}

func Int(i int64) Value {
	return Value{Type: TypeInt, Data: uint64(i)}
}

func Decimal(f float64) Value {
	return Value{Type: TypeDecimal, Data: math.Float64bits(f)}
}

func String(s string) Value {
	return Value{Type: TypeString, Str: s}
}

// AsBool returns the value as bool.
func (v Value) AsBool() bool {
	return v.Data != 0
}

// AsInt returns the value as int64.
func (v Value) AsInt() int64 {
	return int64(v.Data)
}

// AsDecimal returns the value as float64, widening ints.
func (v Value) AsDecimal() float64 {
	if v.Type == TypeDecimal {
		return math.Float64frombits(v.Data)
	}
	return float64(int64(v.Data))
}

func (v Value) AsString() string {
	return v.Str
}

// IsNumber reports whether v is an int or a decimal.
func (v Value) IsNumber() bool {
	return v.Type == TypeInt || v.Type == TypeDecimal
}

// Format returns the printed representation of the value.
func (v Value) Format() string {
	switch v.Type {
	case TypeString:
		return v.Str
	case TypeInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case TypeDecimal:
		return strconv.FormatFloat(v.AsDecimal(), 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.AsBool())
	case TypeNull:
		return "nil"
	default:
		return fmt.Sprintf("%v", v.Data)
	}
}

func (v Value) String() string {
	return v.Format()
}

// GoString renders the value with its type, quoting strings.
func (v Value) GoString() string {
	if v.Type == TypeString {
		return "string(" + strconv.Quote(v.Str) + ")"
	}
	if v.Type == TypeNull {
		return "nil"
	}
	return v.Type.String() + "(" + v.Format() + ")"
}
