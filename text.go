package quickfilter

import (
	"regexp"
	"strings"

	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/literal"
)

var textPattern = regexp.MustCompile(`(?s)^(!~|!=|~|=|!)?(.*)`)

// MakeQuickTextFilter compiles a text quick filter clause. Supported
// operators are "=" (default), "!=", "~" (contains) and "!~" (does not
// contain). With "=" and "!=", a leading "*" matches the end of the value
// and a trailing unescaped "*" matches its start. All comparisons ignore
// case. A backslash escapes a leading operator, a wildcard or the word null;
// see literal.Escape.
//
// It returns nil if the clause cannot be parsed.
func (c *Compiler) MakeQuickTextFilter(col condition.Column, text string) condition.Condition {
	m := textPattern.FindStringSubmatch(strings.TrimSpace(text))
	operation, value := m[1], strings.TrimSpace(m[2])

	// empty values only make sense with an explicit = or !=
	if value == "" && operation != "=" && operation != "!=" {
		return nil
	}
	if operation == "" {
		operation = "="
	}

	filter := col.Filter()
	if strings.ToLower(value) == "null" {
		switch operation {
		case "=":
			return filter.IsNull()
		case "!=", "!":
			return filter.IsNull().Not()
		}
	}

	var endsWith, startsWith bool
	if strings.HasPrefix(value, "*") {
		endsWith = true
		value = value[1:]
	} else if strings.HasSuffix(value, "*") && !strings.HasSuffix(value, `\*`) {
		startsWith = true
		value = value[:len(value)-1]
	}

	value = literal.Unescape(value)

	switch operation {
	case "~":
		return containsFilter(filter, value)
	case "!~":
		return notContainsFilter(filter, value)
	case "!=":
		switch {
		case endsWith:
			return notMatchesFilter(filter, endsWithPattern(value))
		case startsWith:
			return notMatchesFilter(filter, startsWithPattern(value))
		}
		return filter.NotEqIgnoreCase(condition.String(strings.ToLower(value)))
	case "=":
		switch {
		case endsWith:
			return matchesFilter(filter, endsWithPattern(value))
		case startsWith:
			return matchesFilter(filter, startsWithPattern(value))
		}
		return filter.EqIgnoreCase(condition.String(strings.ToLower(value)))
	}

	return nil
}

// quoteRegexp quotes s as a literal inside a \Q...\E block.
func quoteRegexp(s string) string {
	return `\Q` + strings.ReplaceAll(s, `\E`, `\E\\E\Q`) + `\E`
}

func containsPattern(s string) string   { return `(?s)(?i).*` + quoteRegexp(s) + `.*` }
func startsWithPattern(s string) string { return `(?s)(?i)^` + quoteRegexp(s) + `.*` }
func endsWithPattern(s string) string   { return `(?s)(?i).*` + quoteRegexp(s) + `$` }

// matchesFilter is true for non-null values matching pattern.
func matchesFilter(b condition.Builder, pattern string) condition.Condition {
	return b.IsNull().Not().And(b.Invoke(condition.FuncMatches, condition.String(pattern)))
}

// notMatchesFilter is true for null values and values not matching pattern.
func notMatchesFilter(b condition.Builder, pattern string) condition.Condition {
	return b.IsNull().Or(b.Invoke(condition.FuncMatches, condition.String(pattern)).Not())
}

func containsFilter(b condition.Builder, value string) condition.Condition {
	return matchesFilter(b, containsPattern(value))
}

func notContainsFilter(b condition.Builder, value string) condition.Condition {
	return notMatchesFilter(b, containsPattern(value))
}
