package literal

import (
	"fmt"
	"strings"
)

// ParseBoolean parses a boolean word. Any prefix of "false" or "no", and "0",
// is false; any prefix of "true" or "yes", and "1", is true. "null" yields
// nil, as does the empty string when allowEmpty is set.
func ParseBoolean(text string, allowEmpty bool) (*bool, error) {
	if text == "" && allowEmpty {
		return nil, nil
	}

	var v bool
	switch strings.ToLower(text) {
	case "null":
		return nil, nil
	case "0", "f", "fa", "fal", "fals", "false", "n", "no":
		v = false
	case "1", "t", "tr", "tru", "true", "y", "ye", "yes":
		v = true
	default:
		return nil, fmt.Errorf("%w '%s'", ErrInvalidBoolean, text)
	}
	return &v, nil
}
