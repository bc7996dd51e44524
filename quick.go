package quickfilter

import (
	"strings"

	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
)

// MakeQuickFilter compiles quick filter text for col. Clauses are split on
// "||" and then on "&&"; AND binds tighter than OR and there is no other
// grammar. Empty clauses are skipped.
//
// It returns (nil, nil) when text contains no clause, and an error matching
// ErrInvalidFilterText when any clause cannot be parsed.
// timeZone is only used for date columns; see MakeQuickFilterFromComponent.
func (c *Compiler) MakeQuickFilter(col condition.Column, text, timeZone string) (condition.Condition, error) {
	var orFilter condition.Condition
	for _, orComponent := range strings.Split(text, "||") {
		var andFilter condition.Condition
		for _, andComponent := range strings.Split(orComponent, "&&") {
			andComponent = strings.TrimSpace(andComponent)
			if andComponent == "" {
				continue
			}

			filter, err := c.MakeQuickFilterFromComponent(col, andComponent, timeZone)
			if err != nil {
				return nil, err
			}
			if filter == nil {
				return nil, &ParseError{Column: col.Name(), Text: text}
			}

			if andFilter == nil {
				andFilter = filter
			} else {
				andFilter = andFilter.And(filter)
			}
		}

		switch {
		case andFilter == nil:
		case orFilter == nil:
			orFilter = andFilter
		default:
			orFilter = orFilter.Or(andFilter)
		}
	}

	return orFilter, nil
}

// MakeQuickFilterFromComponent compiles a single clause without "&&" or
// "||". It returns (nil, nil) if the clause cannot be parsed.
//
// Date columns are parsed as dates only when a time zone is known, either
// passed as timeZone or configured in Config.TimeZone; otherwise they are
// parsed as text. Date parsing errors are returned unchanged.
func (c *Compiler) MakeQuickFilterFromComponent(col condition.Column, text, timeZone string) (condition.Condition, error) {
	switch columntype.Classify(col.Type()) {
	case columntype.Integer, columntype.Decimal:
		return c.MakeQuickNumberFilter(col, text), nil
	case columntype.Boolean:
		return c.MakeQuickBooleanFilter(col, text), nil
	case columntype.DateTime:
		loc, err := c.location(timeZone)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			return c.makeQuickDateFilter(col, text, loc)
		}
		return c.MakeQuickTextFilter(col, text), nil
	case columntype.Char:
		return c.MakeQuickCharFilter(col, text), nil
	default:
		return c.MakeQuickTextFilter(col, text), nil
	}
}

// makeRangeFilter applies a relational operator token to b.
// It returns nil for tokens that are not relational.
func makeRangeFilter(b condition.Builder, operation string, v condition.Value) condition.Condition {
	switch operation {
	case "=":
		return b.Eq(v)
	case "<":
		return b.LessThan(v)
	case "<=", "=<":
		return b.LessThanOrEqualTo(v)
	case ">":
		return b.GreaterThan(v)
	case ">=", "=>":
		return b.GreaterThanOrEqualTo(v)
	case "!=", "!":
		return b.NotEq(v)
	default:
		return nil
	}
}

func isRangeOperation(operation string) bool {
	switch operation {
	case "<", "<=", "=<", ">", ">=", "=>":
		return true
	default:
		return false
	}
}
