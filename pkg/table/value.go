package table

import (
	"math"
	"strconv"
)

// Kind is the type tag of a Value.
type Kind uint8

const (
	Missing Kind = iota
	Number
	String
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "missing"
	}
}

// Value is one cell: a number, a string or the missing sentinel.
// The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric value. NaN is stored as missing.
func Num(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: Number, num: f}
}

// Str returns a string value.
func Str(s string) Value { return Value{kind: String, str: s} }

// Null returns the missing value.
func Null() Value { return Value{} }

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing sentinel.
func (v Value) IsMissing() bool { return v.kind == Missing }

// Float returns the numeric payload; ok is false for non-numbers.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// Text returns the string payload; ok is false for non-strings.
func (v Value) Text() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// Key is the canonical map key of the value: numbers in shortest form
// (1 not 1.0), strings verbatim, "" for missing.
func (v Value) Key() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case String:
		return v.str
	default:
		return ""
	}
}

// String renders the value for output; missing renders empty.
func (v Value) String() string { return v.Key() }

// Interface returns float64, string or nil.
func (v Value) Interface() any {
	switch v.kind {
	case Number:
		return v.num
	case String:
		return v.str
	default:
		return nil
	}
}
