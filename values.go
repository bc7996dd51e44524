package quickfilter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/daterange"
	"github.com/hugr-lab/quickfilter/literal"
)

var (
	booleanOperators = []condition.Operator{
		condition.OpIsTrue,
		condition.OpIsFalse,
		condition.OpIsNull,
	}
	rangeOperators = []condition.Operator{
		condition.OpEq,
		condition.OpNotEq,
		condition.OpGreaterThan,
		condition.OpGreaterThanOrEqual,
		condition.OpLessThan,
		condition.OpLessThanOrEqual,
	}
	textOperators = []condition.Operator{
		condition.OpEq,
		condition.OpEqIgnoreCase,
		condition.OpNotEq,
		condition.OpNotEqIgnoreCase,
		condition.OpContains,
		condition.OpNotContains,
		condition.OpStartsWith,
		condition.OpEndsWith,
	}
)

// FilterTypes returns the operator kinds an advanced filter can offer for
// a column of typeTag. Unknown types support none.
func FilterTypes(typeTag string) []condition.Operator {
	var ops []condition.Operator
	switch columntype.Classify(typeTag) {
	case columntype.Boolean:
		ops = booleanOperators
	case columntype.Char, columntype.Integer, columntype.Decimal, columntype.DateTime:
		ops = rangeOperators
	case columntype.String:
		ops = textOperators
	}
	return append([]condition.Operator(nil), ops...)
}

// OperatorString returns the quick filter token for op.
func OperatorString(op condition.Operator) (string, error) {
	switch op {
	case condition.OpEq:
		return "=", nil
	case condition.OpNotEq:
		return "!=", nil
	case condition.OpGreaterThan:
		return ">", nil
	case condition.OpGreaterThanOrEqual:
		return ">=", nil
	case condition.OpLessThan:
		return "<", nil
	case condition.OpLessThanOrEqual:
		return "<=", nil
	case condition.OpContains:
		return "~", nil
	case condition.OpNotContains:
		return "!~", nil
	default:
		return "", fmt.Errorf("quickfilter: %w %q", ErrUnknownOperator, op)
	}
}

// filterValue converts advanced filter text to a literal for a column of
// typeTag. Array types convert through their element type.
func (c *Compiler) filterValue(typeTag, text string) (condition.Value, error) {
	base := columntype.BaseType(typeTag)
	switch columntype.Classify(base) {
	case columntype.Boolean:
		b, err := literal.ParseBoolean(text, false)
		if err != nil {
			return condition.Value{}, err
		}
		if b == nil {
			return condition.Value{}, fmt.Errorf("%w '%s'", literal.ErrInvalidBoolean, text)
		}
		return condition.Bool(*b), nil
	case columntype.Integer, columntype.Decimal:
		switch {
		case columntype.IsLong(base):
			n, err := literal.ParseLong(text)
			if err != nil {
				return condition.Value{}, err
			}
			return condition.Long(n), nil
		case columntype.IsBigDecimal(base), columntype.IsBigInteger(base):
			return condition.String(literal.RemoveCommas(text)), nil
		}
		f, err := literal.ParseNumber(text)
		if err != nil {
			return condition.Value{}, err
		}
		if f == nil {
			return condition.Value{}, fmt.Errorf("%w '%s'", literal.ErrInvalidNumber, text)
		}
		return condition.Number(*f), nil
	case columntype.DateTime:
		r, err := c.resolveDate(text, time.UTC)
		if err != nil {
			return condition.Value{}, err
		}
		if r.Start == nil {
			return condition.Value{}, fmt.Errorf("%w '%s'", daterange.ErrInvalidDate, text)
		}
		return condition.Instant(*r.Start), nil
	default:
		return condition.String(text), nil
	}
}

// MakeValue converts text to a Go value suited to a column of typeTag:
// string for text columns, int64 for long columns, bool for boolean columns,
// time.Time (the range start) for date columns and float64 for other
// numeric columns. The text "null", and text that denotes no value, yields
// nil. Dates resolve in timeZone, the configured zone or UTC.
//
// Types without a category return an error matching ErrUnsupportedValue.
func (c *Compiler) MakeValue(typeTag, text, timeZone string) (any, error) {
	if text == "null" {
		return nil, nil
	}

	switch category := columntype.Classify(typeTag); {
	case category.IsText():
		return text, nil
	case columntype.IsLong(typeTag):
		n, err := literal.ParseLong(text)
		if err != nil {
			return nil, err
		}
		return n, nil
	case category == columntype.Boolean:
		b, err := literal.ParseBoolean(text, true)
		if err != nil || b == nil {
			return nil, err
		}
		return *b, nil
	case category == columntype.DateTime:
		loc, err := c.dateLocation(timeZone)
		if err != nil {
			return nil, err
		}
		r, err := c.resolveDate(text, loc)
		if err != nil || r.Start == nil {
			return nil, err
		}
		return *r.Start, nil
	case category.IsNumeric():
		f, err := literal.ParseNumber(text)
		if err != nil || f == nil {
			return nil, err
		}
		return *f, nil
	default:
		c.logger.Error("Unexpected column type", "type", typeTag)
		return nil, fmt.Errorf("quickfilter: %w: column type %q", ErrUnsupportedValue, typeTag)
	}
}

// MakeNullableEqFilter returns isNull for a nil raw value and an equality
// filter on the converted value otherwise. raw is a value as stored in the
// column: numbers are char codes on character columns.
func (c *Compiler) MakeNullableEqFilter(col condition.Column, raw any) (condition.Condition, error) {
	if raw == nil {
		return col.Filter().IsNull(), nil
	}
	v, err := rawValue(col.Type(), raw)
	if err != nil {
		return nil, err
	}
	return col.Filter().Eq(v), nil
}

// rawValue converts a raw column value, as decoded from JSON, MessagePack or
// read from a table, to a literal for a column of typeTag.
func rawValue(typeTag string, raw any) (condition.Value, error) {
	category := columntype.Classify(columntype.BaseType(typeTag))
	switch {
	case category.IsText():
		if s, ok := raw.(string); ok {
			return condition.String(s), nil
		}
		n, err := rawNumber(raw)
		if err != nil {
			return condition.Value{}, err
		}
		if category == columntype.Char {
			if !n.isInt || n.i < 0 || n.i > utf8.MaxRune || !utf8.ValidRune(rune(n.i)) {
				return condition.Value{}, fmt.Errorf("quickfilter: %w: char code %s", ErrUnsupportedValue, n)
			}
			return condition.String(string(rune(n.i))), nil
		}
		return condition.String(n.String()), nil
	case category == columntype.Boolean:
		switch v := raw.(type) {
		case bool:
			return condition.Bool(v), nil
		case string:
			b, err := literal.ParseBoolean(v, false)
			if err != nil {
				return condition.Value{}, err
			}
			if b == nil {
				return condition.Value{}, fmt.Errorf("%w '%s'", literal.ErrInvalidBoolean, v)
			}
			return condition.Bool(*b), nil
		}
		n, err := rawNumber(raw)
		if err != nil {
			return condition.Value{}, err
		}
		return condition.Bool(n.f != 0), nil
	case category == columntype.DateTime:
		switch v := raw.(type) {
		case time.Time:
			return condition.Instant(v), nil
		case string:
			// JSON carries instants as RFC 3339 text
			if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return condition.Instant(t), nil
			}
		}
		return condition.Value{}, fmt.Errorf("quickfilter: %w %T for date column", ErrUnsupportedValue, raw)
	default:
		n, err := rawNumber(raw)
		if err != nil {
			return condition.Value{}, err
		}
		if n.isInt && columntype.IsLong(columntype.BaseType(typeTag)) {
			return condition.Long(n.i), nil
		}
		return condition.Number(n.f), nil
	}
}

// number is a raw numeric value. isInt is set when i holds the exact value.
type number struct {
	f     float64
	i     int64
	isInt bool
}

func (n number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func intNumber(i int64) number { return number{f: float64(i), i: i, isInt: true} }

func floatNumber(f float64) number {
	n := number{f: f}
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		n.i, n.isInt = int64(f), true
	}
	return n
}

func rawNumber(raw any) (number, error) {
	switch v := raw.(type) {
	case int:
		return intNumber(int64(v)), nil
	case int8:
		return intNumber(int64(v)), nil
	case int16:
		return intNumber(int64(v)), nil
	case int32:
		return intNumber(int64(v)), nil
	case int64:
		return intNumber(v), nil
	case uint8:
		return intNumber(int64(v)), nil
	case uint16:
		return intNumber(int64(v)), nil
	case uint32:
		return intNumber(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return floatNumber(float64(v)), nil
		}
		return intNumber(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return floatNumber(float64(v)), nil
		}
		return intNumber(int64(v)), nil
	case float32:
		return floatNumber(float64(v)), nil
	case float64:
		return floatNumber(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return intNumber(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return number{}, fmt.Errorf("%w '%s'", literal.ErrInvalidNumber, v)
		}
		return floatNumber(f), nil
	case string:
		if i, err := literal.ParseLong(v); err == nil {
			return intNumber(i), nil
		}
		f, err := literal.ParseNumber(v)
		if err != nil {
			return number{}, err
		}
		if f == nil {
			return number{}, fmt.Errorf("%w '%s'", literal.ErrInvalidNumber, v)
		}
		return floatNumber(*f), nil
	default:
		return number{}, fmt.Errorf("quickfilter: %w %T", ErrUnsupportedValue, raw)
	}
}
