package quickfilter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/literal"
)

// numberPattern captures operator, negative sign, digits, abnormal value and
// trailing garbage. Every group is optional so the pattern always matches.
var numberPattern = regexp.MustCompile(
	`(?is)^\s*(>=|<=|=>|=<|>|<|!=|=|!)?(\s*-\s*)?(\s*\d*(?:,\d{3})*(?:\.\d*)?\s*)?(null|nan|infinity|inf|∞)?(.*)`)

// MakeQuickNumberFilter compiles a numeric quick filter clause such as
// ">= 1,000", "!=-inf" or "nan". The abnormal values null, nan and
// infinity are only accepted with "=", "!" and "!=".
// It returns nil if the clause cannot be parsed.
func (c *Compiler) MakeQuickNumberFilter(col condition.Column, text string) condition.Condition {
	m := numberPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	operation, negativeSign, value, abnormalValue, overflow := m[1], m[2], m[3], m[4], m[5]

	if strings.TrimSpace(overflow) != "" {
		return nil
	}
	if operation == "" {
		operation = "="
	}

	filter := col.Filter()
	if abnormalValue != "" {
		if operation != "=" && operation != "!" && operation != "!=" {
			return nil
		}

		var cond condition.Condition
		switch strings.ToLower(abnormalValue) {
		case "null":
			cond = filter.IsNull()
		case "nan":
			cond = filter.Invoke(condition.FuncIsNaN)
		case "infinity", "inf", "∞":
			if negativeSign != "" {
				cond = filter.Invoke(condition.FuncIsInf).And(filter.LessThan(condition.Number(0)))
			} else {
				cond = filter.Invoke(condition.FuncIsInf).And(filter.GreaterThan(condition.Number(0)))
			}
		}
		if operation == "!" || operation == "!=" {
			cond = cond.Not()
		}
		return cond
	}

	value = literal.RemoveCommas(value)

	var v condition.Value
	if columntype.IsLong(col.Type()) {
		if negativeSign != "" {
			value = "-" + value
		}
		n, err := literal.ParseLong(value)
		if err != nil {
			c.logger.Warn("Unable to create long filter", "column", col.Name(), "error", err)
			return nil
		}
		v = condition.Long(n)
	} else {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		if negativeSign != "" {
			f = -f
		}
		v = condition.Number(f)
	}

	return makeRangeFilter(filter, operation, v)
}
