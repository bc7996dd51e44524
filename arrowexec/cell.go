package arrowexec

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
)

type cellKind uint8

const (
	cellNull cellKind = iota
	cellString
	cellChar
	cellInt
	cellUint
	cellFloat
	cellBool
	cellTime
)

// cell is a single value read from an Arrow array.
type cell struct {
	kind cellKind
	s    string
	r    rune
	i    int64
	u    uint64
	f    float64
	b    bool
	t    time.Time
}

// reader reads the cell at row i of one column.
type reader func(i int) cell

// newReader returns a reader for arr. typeTag is the column's backend type
// tag; it decides whether uint16 arrays hold characters or numbers.
func newReader(arr arrow.Array, typeTag string) (reader, error) {
	charTag := columntype.Classify(columntype.BaseType(typeTag)) == columntype.Char

	value, err := valueReader(arr, charTag)
	if err != nil {
		return nil, err
	}
	return func(i int) cell {
		if arr.IsNull(i) {
			return cell{}
		}
		return value(i)
	}, nil
}

func valueReader(arr arrow.Array, charTag bool) (reader, error) {
	switch a := arr.(type) {
	case *array.String:
		return func(i int) cell { return cell{kind: cellString, s: a.Value(i)} }, nil
	case *array.LargeString:
		return func(i int) cell { return cell{kind: cellString, s: a.Value(i)} }, nil
	case *array.Boolean:
		return func(i int) cell { return cell{kind: cellBool, b: a.Value(i)} }, nil
	case *array.Int8:
		return func(i int) cell { return cell{kind: cellInt, i: int64(a.Value(i))} }, nil
	case *array.Int16:
		return func(i int) cell { return cell{kind: cellInt, i: int64(a.Value(i))} }, nil
	case *array.Int32:
		return func(i int) cell { return cell{kind: cellInt, i: int64(a.Value(i))} }, nil
	case *array.Int64:
		return func(i int) cell { return cell{kind: cellInt, i: a.Value(i)} }, nil
	case *array.Uint8:
		return func(i int) cell { return cell{kind: cellUint, u: uint64(a.Value(i))} }, nil
	case *array.Uint16:
		if charTag {
			return func(i int) cell { return cell{kind: cellChar, r: rune(a.Value(i))} }, nil
		}
		return func(i int) cell { return cell{kind: cellUint, u: uint64(a.Value(i))} }, nil
	case *array.Uint32:
		return func(i int) cell { return cell{kind: cellUint, u: uint64(a.Value(i))} }, nil
	case *array.Uint64:
		return func(i int) cell { return cell{kind: cellUint, u: a.Value(i)} }, nil
	case *array.Float32:
		return func(i int) cell { return cell{kind: cellFloat, f: float64(a.Value(i))} }, nil
	case *array.Float64:
		return func(i int) cell { return cell{kind: cellFloat, f: a.Value(i)} }, nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return func(i int) cell { return cell{kind: cellTime, t: a.Value(i).ToTime(unit)} }, nil
	case *array.Date32:
		return func(i int) cell { return cell{kind: cellTime, t: a.Value(i).ToTime()} }, nil
	case *array.Date64:
		return func(i int) cell { return cell{kind: cellTime, t: a.Value(i).ToTime()} }, nil
	case *array.Dictionary:
		dict, err := valueReader(a.Dictionary(), charTag)
		if err != nil {
			return nil, err
		}
		return func(i int) cell { return dict(a.GetValueIndex(i)) }, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, arr.DataType())
	}
}

// text returns the cell as a string for string and char cells.
func (c cell) text() (string, bool) {
	switch c.kind {
	case cellString:
		return c.s, true
	case cellChar:
		return string(c.r), true
	}
	return "", false
}

// compare orders c against v. ok is false when the pair is unordered,
// which happens when either side is NaN.
func compare(c cell, v condition.Value) (cmp int, ok bool, err error) {
	switch c.kind {
	case cellString:
		if v.Kind() == condition.KindString {
			return strings.Compare(c.s, v.Str()), true, nil
		}
	case cellChar:
		switch v.Kind() {
		case condition.KindString:
			return strings.Compare(string(c.r), v.Str()), true, nil
		case condition.KindNumber, condition.KindLong:
			f, _ := v.Float()
			return compareFloat(float64(c.r), f)
		}
	case cellInt:
		switch v.Kind() {
		case condition.KindLong:
			return compareInt(c.i, v.LongValue()), true, nil
		case condition.KindNumber:
			return compareFloat(float64(c.i), v.Num())
		}
	case cellUint:
		switch v.Kind() {
		case condition.KindLong:
			if v.LongValue() < 0 {
				return 1, true, nil
			}
			return compareUint(c.u, uint64(v.LongValue())), true, nil
		case condition.KindNumber:
			return compareFloat(float64(c.u), v.Num())
		}
	case cellFloat:
		if f, isNum := v.Float(); isNum {
			return compareFloat(c.f, f)
		}
	case cellBool:
		if v.Kind() == condition.KindBoolean {
			return compareBool(c.b, v.BoolValue()), true, nil
		}
	case cellTime:
		if v.Kind() == condition.KindInstant {
			return c.t.Compare(v.InstantValue()), true, nil
		}
	}
	return 0, false, fmt.Errorf("%w: cannot compare %s literal with column value", ErrTypeMismatch, v.Kind())
}

// equal reports whether c equals v. NaN equals NaN so that a filter for
// a NaN literal matches NaN rows.
func equal(c cell, v condition.Value) (bool, error) {
	cmp, ok, err := compare(c, v)
	if err != nil {
		return false, err
	}
	if !ok {
		f, _ := v.Float()
		return c.kind == cellFloat && math.IsNaN(c.f) && math.IsNaN(f), nil
	}
	return cmp == 0, nil
}

func compareFloat(a, b float64) (int, bool, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false, nil
	}
	switch {
	case a < b:
		return -1, true, nil
	case a > b:
		return 1, true, nil
	}
	return 0, true, nil
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	}
	return 1
}
