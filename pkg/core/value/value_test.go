package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/nlox/pkg/core/value"
)

func TestValueCreation(t *testing.T) {
	vInt := value.Int(-42)
	assert.Equal(t, value.TypeInt, vInt.Type)
	assert.Equal(t, int64(-42), vInt.AsInt())

	vDec := value.Decimal(1.5)
	assert.Equal(t, value.TypeDecimal, vDec.Type)
	assert.Equal(t, 1.5, vDec.AsDecimal())

	vBool := value.Bool(true)
	assert.Equal(t, value.TypeBool, vBool.Type)
	assert.True(t, vBool.AsBool())
	assert.False(t, value.Bool(false).AsBool())

	assert.Equal(t, value.TypeNull, value.Null.Type)
	assert.Equal(t, value.Null, value.Value{})
}

func TestIntWidening(t *testing.T) {
	assert.Equal(t, 7.0, value.Int(7).AsDecimal())
	assert.True(t, value.Int(0).IsNumber())
	assert.True(t, value.Decimal(0).IsNumber())
	assert.False(t, value.String("1").IsNumber())
}

// Typed so the sum is rounded at run time instead of folded exactly.
var tenth, fifth float64 = 0.1, 0.2

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
	}{
		{"string verbatim", value.String("a b"), "a b"},
		{"empty string", value.String(""), ""},
		{"int", value.Int(123), "123"},
		{"negative int", value.Int(-7), "-7"},
		{"decimal", value.Decimal(1.5), "1.5"},
		{"whole decimal", value.Decimal(2), "2"},
		{"inexact decimal", value.Decimal(tenth + fifth), "0.30000000000000004"},
		{"infinity", value.Decimal(math.Inf(1)), "+Inf"},
		{"true", value.Bool(true), "true"},
		{"false", value.Bool(false), "false"},
		{"null", value.Null, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Format())
		})
	}
}

func TestGoString(t *testing.T) {
	assert.Equal(t, `string("hi")`, value.String("hi").GoString())
	assert.Equal(t, "int(3)", value.Int(3).GoString())
	assert.Equal(t, "nil", value.Null.GoString())
	assert.Equal(t, "decimal", value.TypeDecimal.String())
}
