// Package literal converts user-typed text into typed filter literals and
// implements the escape codec for quick filter text.
package literal

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidNumber is returned when text is not a decimal number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidLong is returned when text is not a 64-bit integer.
	ErrInvalidLong = errors.New("invalid long")

	// ErrInvalidBoolean is returned when text is not a boolean word.
	ErrInvalidBoolean = errors.New("invalid boolean")
)

var (
	numberPattern    = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)
	separatorPattern = regexp.MustCompile(`[\s,]`)
)

// RemoveCommas strips whitespace and thousands separators from text.
func RemoveCommas(text string) string {
	return separatorPattern.ReplaceAllString(text, "")
}

// ParseNumber parses a decimal number. It returns nil for "null" and the
// empty string. The words "∞", "infinity" and "inf", optionally signed,
// map to the matching infinity.
func ParseNumber(text string) (*float64, error) {
	if text == "null" || text == "" {
		return nil, nil
	}

	clean := RemoveCommas(strings.ToLower(text))
	sign := 1.0
	unsigned := clean
	switch {
	case strings.HasPrefix(clean, "-"):
		sign = -1
		unsigned = clean[1:]
	case strings.HasPrefix(clean, "+"):
		unsigned = clean[1:]
	}
	switch unsigned {
	case "∞", "infinity", "inf":
		v := math.Inf(int(sign))
		return &v, nil
	}

	if !numberPattern.MatchString(clean) {
		return nil, fmt.Errorf("%w '%s'", ErrInvalidNumber, text)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrInvalidNumber, text, err)
	}
	return &v, nil
}

// ParseLong parses a 64-bit integer after removing thousands separators.
func ParseLong(text string) (int64, error) {
	v, err := strconv.ParseInt(RemoveCommas(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w '%s'", ErrInvalidLong, text)
	}
	return v, nil
}
