package quickfilter

import (
	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
)

// MakeSelectValueFilter builds a filter from values picked in a value list.
//
// With invert unset, selected lists the values to keep; an empty selection
// keeps nothing. With invert set, the list starts from everything and
// selected lists the values to drop; an empty selection returns
// (nil, nil), meaning no filtering. A nil entry stands for null. A non-empty
// inverted selection never matches null.
//
// Raw values of unsupported Go types return an error matching
// ErrUnsupportedValue.
func (c *Compiler) MakeSelectValueFilter(col condition.Column, selected []any, invert bool) (condition.Condition, error) {
	if len(selected) == 0 {
		if invert {
			return nil, nil
		}
		return c.MakeNeverFilter(col), nil
	}

	var (
		values       []condition.Value
		nullSelected bool
	)
	for _, raw := range selected {
		if raw == nil {
			nullSelected = true
			continue
		}
		v, err := rawValue(col.Type(), raw)
		if err != nil {
			c.logger.Error("Unable to convert selected value", "column", col.Name(), "error", err)
			return nil, err
		}
		values = append(values, v)
	}

	filter := col.Filter()
	if nullSelected {
		switch {
		case len(values) == 0 && invert:
			return filter.IsNull().Not(), nil
		case len(values) == 0:
			return filter.IsNull(), nil
		case invert:
			return filter.IsNull().Not().And(filter.NotIn(values)), nil
		default:
			return filter.IsNull().Or(filter.In(values)), nil
		}
	}

	if invert {
		return filter.NotIn(values).And(filter.IsNull().Not()), nil
	}
	return filter.In(values), nil
}

// MakeNeverFilter returns a filter that matches no rows of col, built as
// eq(v) AND notEq(v) for an arbitrary literal v of the column type.
func (c *Compiler) MakeNeverFilter(col condition.Column) condition.Condition {
	var v condition.Value
	switch columntype.Classify(col.Type()) {
	case columntype.String, columntype.Char:
		v = condition.String("a")
	case columntype.Boolean:
		v = condition.Bool(true)
	case columntype.DateTime:
		v = condition.Instant(c.now())
	default:
		v = condition.Number(0)
	}

	filter := col.Filter()
	return filter.Eq(v).And(filter.NotEq(v))
}
