package quickfilter

import (
	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/daterange"
)

// MakeSearchTextFilter builds the filter a table-wide search applies to one
// column. Boolean and numeric columns use their quick filter grammar, date
// columns match the day or instant the text denotes, arbitrary precision
// numbers compare as strings and everything else matches a case-insensitive
// substring. Text the column cannot match yields a never filter, so the
// result is always non-nil.
func (c *Compiler) MakeSearchTextFilter(col condition.Column, text, timeZone string) condition.Condition {
	filter, err := c.makeSearchTextFilter(col, text, timeZone)
	if err != nil || filter == nil {
		c.logger.Debug("Search text does not apply to column", "column", col.Name(), "text", text, "error", err)
		return c.MakeNeverFilter(col)
	}
	return filter
}

func (c *Compiler) makeSearchTextFilter(col condition.Column, text, timeZone string) (condition.Condition, error) {
	typeTag := col.Type()
	switch category := columntype.Classify(typeTag); {
	case category == columntype.Boolean:
		return c.MakeQuickBooleanFilter(col, text), nil
	case category == columntype.DateTime:
		return c.MakeQuickDateFilterWithOperation(col, daterange.TrimTimeZone(text), condition.OpEq, timeZone)
	case columntype.IsBigDecimal(typeTag), columntype.IsBigInteger(typeTag):
		v, err := c.filterValue(typeTag, text)
		if err != nil {
			return nil, err
		}
		return col.Filter().Eq(v), nil
	case category.IsNumeric():
		return c.MakeQuickNumberFilter(col, text), nil
	default:
		v, err := c.filterValue(typeTag, text)
		if err != nil {
			return nil, err
		}
		return col.Filter().ContainsIgnoreCase(v), nil
	}
}
