package quickfilter

import (
	"regexp"
	"strings"

	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/literal"
)

var booleanPattern = regexp.MustCompile(`(?s)^(!=|=|!)?(.*)`)

// MakeQuickBooleanFilter compiles a boolean quick filter clause such as
// "true", "!= n" or "null". It returns nil for unrecognized words.
func (c *Compiler) MakeQuickBooleanFilter(col condition.Column, text string) condition.Condition {
	m := booleanPattern.FindStringSubmatch(strings.TrimSpace(text))
	operation, value := m[1], m[2]
	notEqual := operation == "!" || operation == "!="

	b, err := literal.ParseBoolean(strings.ToLower(strings.TrimSpace(value)), false)
	if err != nil {
		return nil
	}

	filter := col.Filter()
	var cond condition.Condition
	switch {
	case b == nil:
		cond = filter.IsNull()
	case *b:
		cond = filter.IsTrue()
	default:
		cond = filter.IsFalse()
	}

	if notEqual {
		return cond.Not()
	}
	return cond
}
