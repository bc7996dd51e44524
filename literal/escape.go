package literal

import (
	"regexp"
	"strings"
)

var (
	operatorPrefix        = regexp.MustCompile(`(?s)^(!~|!=|~|=|!)?(.*)`)
	escapedOperatorPrefix = regexp.MustCompile(`(?s)^(\\!~|\\!=|\\~|\\=|\\!)?(.*)`)
	// zero or more backslashes followed by the word null
	escapedNull = regexp.MustCompile(`^\\*null$`)
)

// Escape makes a table value safe to use as quick filter text, so that a
// leading operator, a wildcard or the word null is searched for literally.
//
//	=test → \=test
//	null  → \null
//	*abc  → \*abc
//	abc*  → abc\*
func Escape(text string) string {
	m := operatorPrefix.FindStringSubmatch(text)
	operation, value := m[1], m[2]

	if operation != "" {
		return `\` + operation + value
	}
	if escapedNull.MatchString(strings.ToLower(value)) {
		return `\` + value
	}
	if strings.HasPrefix(value, "*") {
		return `\` + value
	}
	if strings.HasSuffix(value, "*") && !strings.HasSuffix(value, `\*`) {
		return value[:len(value)-1] + `\*`
	}
	return value
}

// Unescape reverses Escape, turning escaped quick filter text back into the
// literal value to search for. An escaped operator followed by an escaped
// null is not restored exactly: Unescape(Escape(`!\null`)) is "!null".
func Unescape(text string) string {
	m := escapedOperatorPrefix.FindStringSubmatch(text)
	operation, value := m[1], m[2]

	if operation != "" {
		operation = strings.Replace(operation, `\`, "", 1)
	}
	if escapedNull.MatchString(strings.ToLower(value)) {
		value = strings.Replace(value, `\`, "", 1)
	}
	if operation == "" && strings.HasPrefix(value, `\*`) {
		value = value[1:]
	}
	if operation == "" && strings.HasSuffix(value, `\*`) {
		return value[:len(value)-2] + "*"
	}
	return operation + value
}

// QuoteValue wraps value in double quotes unless it is already wrapped in
// matching single or double quotes.
func QuoteValue(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value
		}
	}
	return `"` + value + `"`
}
