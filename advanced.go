package quickfilter

import (
	"fmt"

	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
)

// AdvancedFilterItem is one row of an advanced filter form.
type AdvancedFilterItem struct {
	// Operator is the operator kind selected for the row.
	Operator condition.Operator `json:"selectedType" msgpack:"selectedType"`

	// Value is the raw value text typed into the row.
	Value string `json:"value" msgpack:"value"`
}

// AdvancedFilterOptions combines advanced filter rows with a value selection.
type AdvancedFilterOptions struct {
	// Items are folded in order. Rows with an empty operator or value are skipped.
	Items []AdvancedFilterItem `json:"filterItems" msgpack:"filterItems"`

	// Operators[i-1] joins Items[i] to the result of the preceding rows.
	// The index is the row position in Items, including skipped rows.
	Operators []condition.JoinOperator `json:"filterOperators" msgpack:"filterOperators"`

	// InvertSelection treats SelectedValues as the values to exclude.
	InvertSelection bool `json:"invertSelection" msgpack:"invertSelection"`

	// SelectedValues are raw column values; nil stands for null.
	SelectedValues []any `json:"selectedValues" msgpack:"selectedValues"`
}

// MakeAdvancedFilter compiles advanced filter options for col.
//
// Rows that cannot be parsed are logged and skipped. A parsed row at
// position i > 0 is joined with Operators[i-1]; it is dropped when no
// preceding row produced a condition or no operator exists at that position.
// The result is AND-ed with the selection filter of SelectedValues. An empty
// selection only means "everything" when InvertSelection is set; see
// MakeSelectValueFilter.
//
// It returns (nil, nil) when nothing filters, and an error for an unknown
// operator kind or join operator or a date resolution failure.
func (c *Compiler) MakeAdvancedFilter(col condition.Column, options AdvancedFilterOptions, timeZone string) (condition.Condition, error) {
	var filter condition.Condition
	for i, item := range options.Items {
		if item.Operator == "" || item.Value == "" {
			continue
		}

		leaf, err := c.MakeAdvancedValueFilter(col, item.Operator, item.Value, timeZone)
		if err != nil {
			if !isSoft(err) {
				c.logger.Error("Unable to create filter", "column", col.Name(), "operator", item.Operator, "error", err)
				return nil, err
			}
			c.logger.Debug("Skipping unparsable filter item", "column", col.Name(), "operator", item.Operator, "value", item.Value, "error", err)
			continue
		}
		if leaf == nil {
			c.logger.Debug("Empty filter ignored", "column", col.Name(), "operator", item.Operator, "value", item.Value)
			continue
		}

		if i == 0 {
			filter = leaf
			continue
		}
		if filter == nil || i-1 >= len(options.Operators) {
			c.logger.Debug("Filter item has nothing to join", "column", col.Name(), "index", i)
			continue
		}

		switch op := options.Operators[i-1]; op {
		case condition.JoinAnd:
			filter = filter.And(leaf)
		case condition.JoinOr:
			filter = filter.Or(leaf)
		default:
			c.logger.Error("Unexpected filter operator", "column", col.Name(), "operator", op)
			return nil, fmt.Errorf("quickfilter: %w %q at position %d", ErrUnknownJoinOperator, op, i-1)
		}
	}

	selectFilter, err := c.MakeSelectValueFilter(col, options.SelectedValues, options.InvertSelection)
	if err != nil {
		return nil, err
	}
	switch {
	case selectFilter == nil:
		return filter, nil
	case filter == nil:
		return selectFilter, nil
	default:
		return filter.And(selectFilter), nil
	}
}

// MakeAdvancedValueFilter compiles one advanced filter row.
//
// Date columns use MakeQuickDateFilterWithOperation. Numeric and character
// columns render the operator as quick filter text and use MakeQuickFilter.
// Other columns dispatch on the operator kind directly.
//
// An operator kind the column does not support returns an error matching
// ErrUnknownOperator. Values that cannot be parsed return an error matching
// ErrInvalidFilterText or one of the literal parse errors.
func (c *Compiler) MakeAdvancedValueFilter(col condition.Column, op condition.Operator, value, timeZone string) (condition.Condition, error) {
	switch columntype.Classify(col.Type()) {
	case columntype.DateTime:
		return c.MakeQuickDateFilterWithOperation(col, value, op, timeZone)
	case columntype.Integer, columntype.Decimal, columntype.Char:
		token, err := OperatorString(op)
		if err != nil {
			return nil, err
		}
		return c.MakeQuickFilter(col, token+value, "")
	}

	filter := col.Filter()
	switch op {
	case condition.OpEq, condition.OpEqIgnoreCase, condition.OpNotEq, condition.OpNotEqIgnoreCase,
		condition.OpGreaterThan, condition.OpGreaterThanOrEqual, condition.OpLessThan, condition.OpLessThanOrEqual:
		v, err := c.filterValue(col.Type(), value)
		if err != nil {
			return nil, err
		}
		switch op {
		case condition.OpEq:
			return filter.Eq(v), nil
		case condition.OpEqIgnoreCase:
			return filter.EqIgnoreCase(v), nil
		case condition.OpNotEq:
			return filter.NotEq(v), nil
		case condition.OpNotEqIgnoreCase:
			return filter.NotEqIgnoreCase(v), nil
		case condition.OpGreaterThan:
			return filter.GreaterThan(v), nil
		case condition.OpGreaterThanOrEqual:
			return filter.GreaterThanOrEqualTo(v), nil
		case condition.OpLessThan:
			return filter.LessThan(v), nil
		default:
			return filter.LessThanOrEqualTo(v), nil
		}
	case condition.OpIsTrue:
		return filter.IsTrue(), nil
	case condition.OpIsFalse:
		return filter.IsFalse(), nil
	case condition.OpIsNull:
		return filter.IsNull(), nil
	case condition.OpContains:
		return containsFilter(filter, value), nil
	case condition.OpNotContains:
		return notContainsFilter(filter, value), nil
	case condition.OpStartsWith:
		return matchesFilter(filter, startsWithPattern(value)), nil
	case condition.OpEndsWith:
		return matchesFilter(filter, endsWithPattern(value)), nil
	default:
		return nil, fmt.Errorf("quickfilter: %w %q for column %s", ErrUnknownOperator, op, col.Name())
	}
}
