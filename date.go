package quickfilter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/daterange"
	"github.com/hugr-lab/quickfilter/internal/recovery"
)

var datePattern = regexp.MustCompile(`(?s)^\s*(>=|<=|=>|=<|>|<|!=|!|=)?(.*)`)

// MakeQuickDateFilter compiles a date quick filter clause such as
// ">= 2024-01" in timeZone, or the configured zone if timeZone is empty.
// Resolver errors are returned unchanged.
func (c *Compiler) MakeQuickDateFilter(col condition.Column, text, timeZone string) (condition.Condition, error) {
	loc, err := c.dateLocation(timeZone)
	if err != nil {
		return nil, err
	}
	return c.makeQuickDateFilter(col, text, loc)
}

func (c *Compiler) makeQuickDateFilter(col condition.Column, text string, loc *time.Location) (condition.Condition, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	operation, dateText := m[1], m[2]

	op := condition.OpEq
	switch operation {
	case "<":
		op = condition.OpLessThan
	case "<=", "=<":
		op = condition.OpLessThanOrEqual
	case ">":
		op = condition.OpGreaterThan
	case ">=", "=>":
		op = condition.OpGreaterThanOrEqual
	case "!=", "!":
		op = condition.OpNotEq
	}

	return c.makeDateFilterWithOperation(col, dateText, op, loc)
}

// MakeQuickDateFilterWithOperation compiles date text without an operator
// token against op. The text resolves to a half-open range [start, end);
// end is absent when the text denotes an exact instant:
//
//	eq                  start <= x < end, or x == start
//	lessThan            x < start
//	lessThanOrEqualTo   x < end, or x <= start
//	greaterThan         x >= end, or x > start
//	greaterThanOrEqual  x >= start
//	notEq               x < start || x >= end, or x != start
//
// Text that resolves to no instant produces isNull, negated for notEq.
// Other operators return an error matching ErrUnknownOperator.
func (c *Compiler) MakeQuickDateFilterWithOperation(col condition.Column, text string, op condition.Operator, timeZone string) (condition.Condition, error) {
	loc, err := c.dateLocation(timeZone)
	if err != nil {
		return nil, err
	}
	return c.makeDateFilterWithOperation(col, text, op, loc)
}

func (c *Compiler) makeDateFilterWithOperation(col condition.Column, text string, op condition.Operator, loc *time.Location) (condition.Condition, error) {
	r, err := c.resolveDate(text, loc)
	if err != nil {
		return nil, err
	}

	filter := col.Filter()
	if r.Start == nil {
		if op == condition.OpNotEq {
			return filter.IsNull().Not(), nil
		}
		return filter.IsNull(), nil
	}

	start := condition.Instant(*r.Start)
	var end condition.Value
	hasEnd := r.End != nil
	if hasEnd {
		end = condition.Instant(*r.End)
	}

	switch op {
	case condition.OpEq:
		if hasEnd {
			return filter.GreaterThanOrEqualTo(start).And(filter.LessThan(end)), nil
		}
		return filter.Eq(start), nil
	case condition.OpLessThan:
		return filter.LessThan(start), nil
	case condition.OpLessThanOrEqual:
		if hasEnd {
			return filter.LessThan(end), nil
		}
		return filter.LessThanOrEqualTo(start), nil
	case condition.OpGreaterThan:
		if hasEnd {
			return filter.GreaterThanOrEqualTo(end), nil
		}
		return filter.GreaterThan(start), nil
	case condition.OpGreaterThanOrEqual:
		return filter.GreaterThanOrEqualTo(start), nil
	case condition.OpNotEq:
		if hasEnd {
			return filter.LessThan(start).Or(filter.GreaterThanOrEqualTo(end)), nil
		}
		return filter.NotEq(start), nil
	default:
		c.logger.Error("Invalid date filter operator", "column", col.Name(), "operator", op)
		return nil, fmt.Errorf("quickfilter: %w %q for date column %s", ErrUnknownOperator, op, col.Name())
	}
}

// dateLocation is location with a UTC fallback for calls that must parse
// dates even when no zone is known.
func (c *Compiler) dateLocation(timeZone string) (*time.Location, error) {
	loc, err := c.location(timeZone)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return loc, nil
}

// resolveDate calls the configured resolver, turning a panic into an error.
func (c *Compiler) resolveDate(text string, loc *time.Location) (daterange.Range, error) {
	return recovery.RecoverToValue(c.logger, "ResolveDate", func() (daterange.Range, error) {
		return c.resolver.Resolve(text, loc)
	})
}
