package condition

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies the type of a literal Value.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindLong
	KindBoolean
	KindInstant
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindLong:
		return "long"
	case KindBoolean:
		return "boolean"
	case KindInstant:
		return "instant"
	default:
		return "invalid"
	}
}

// Value is an immutable typed literal handed to a Builder.
// The zero Value is invalid.
type Value struct {
	kind Kind
	str  string
	num  float64
	long int64
	b    bool
	t    time.Time
}

// String returns a string literal.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a 64-bit floating point literal. NaN and infinities are allowed.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Long returns a 64-bit integer literal for wide integer columns.
func Long(i int64) Value { return Value{kind: KindLong, long: i} }

// Bool returns a boolean literal.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Instant returns a point-in-time literal.
func Instant(t time.Time) Value { return Value{kind: KindInstant, t: t} }

// Kind returns the literal kind.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string of a KindString value.
func (v Value) Str() string { return v.str }

// Num returns the float64 of a KindNumber value.
func (v Value) Num() float64 { return v.num }

// LongValue returns the int64 of a KindLong value.
func (v Value) LongValue() int64 { return v.long }

// BoolValue returns the bool of a KindBoolean value.
func (v Value) BoolValue() bool { return v.b }

// InstantValue returns the time of a KindInstant value.
func (v Value) InstantValue() time.Time { return v.t }

// Float returns the value as a float64 for numeric kinds.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindLong:
		return float64(v.long), true
	}
	return 0, false
}

// Equal reports whether two values have the same kind and content.
// NaN numbers are equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		if math.IsNaN(v.num) && math.IsNaN(o.num) {
			return true
		}
		return v.num == o.num
	case KindLong:
		return v.long == o.long
	case KindBoolean:
		return v.b == o.b
	case KindInstant:
		return v.t.Equal(o.t)
	}
	return true
}

// GoString is used by %#v and in test failure messages.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindLong:
		return strconv.FormatInt(v.long, 10) + "L"
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindInstant:
		return v.t.UTC().Format(time.RFC3339Nano)
	}
	return "<invalid>"
}
