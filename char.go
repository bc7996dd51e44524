package quickfilter

import (
	"regexp"
	"strings"

	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/literal"
)

var charPattern = regexp.MustCompile(`(?s)^(>=|<=|=>|=<|>|<|!=|=|!)?(null|"."|'.'|.)?(.*)`)

// MakeQuickCharFilter compiles a character quick filter clause: an optional
// relational operator followed by one character, a quoted character or
// null. It returns nil if the clause cannot be parsed.
//
// Operands of range operators are wrapped in quotes so that the engine
// cannot confuse them with operator tokens.
func (c *Compiler) MakeQuickCharFilter(col condition.Column, text string) condition.Condition {
	m := charPattern.FindStringSubmatch(strings.TrimSpace(text))
	operation, value, overflow := m[1], m[2], m[3]

	if strings.TrimSpace(overflow) != "" {
		return nil
	}
	if value == "" {
		return nil
	}
	if operation == "" {
		operation = "="
	}

	filter := col.Filter()
	if value == "null" {
		switch operation {
		case "=":
			return filter.IsNull()
		case "!=", "!":
			return filter.IsNull().Not()
		default:
			return nil
		}
	}

	if isRangeOperation(operation) {
		value = literal.QuoteValue(value)
	}
	return makeRangeFilter(filter, operation, condition.String(value))
}
