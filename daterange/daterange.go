// Package daterange resolves partial date/time text into a half-open instant
// range. A bare day resolves to the 24-hour window starting at midnight in the
// requested time zone; text that already denotes an exact instant resolves to
// a range without an end.
package daterange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	// Zone names in filter text must resolve without a system zoneinfo database.
	_ "time/tzdata"
)

// ErrInvalidDate is returned when text cannot be resolved to an instant.
var ErrInvalidDate = errors.New("invalid date")

// Range is a half-open instant range [Start, End).
// A nil Start means the text denotes null. A nil End means Start is exact.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// IsNull reports whether the range denotes no instant.
func (r Range) IsNull() bool { return r.Start == nil }

// Resolver turns date text into an instant range in a time zone.
type Resolver interface {
	Resolve(text string, loc *time.Location) (Range, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(text string, loc *time.Location) (Range, error)

// Resolve calls f(text, loc).
func (f ResolverFunc) Resolve(text string, loc *time.Location) (Range, error) {
	return f(text, loc)
}

// Parser is the default Resolver. The zero value uses the wall clock.
type Parser struct {
	// Now returns the current time for "now", "today" and "yesterday".
	// OPTIONAL: Uses time.Now if nil.
	Now func() time.Time
}

// Default is the resolver used when none is configured.
var Default Resolver = &Parser{}

// Parse resolves text with the default parser.
func Parse(text string, loc *time.Location) (Range, error) {
	return Default.Resolve(text, loc)
}

var datePattern = regexp.MustCompile(
	`^(\d{4})(?:-(\d{1,2})(?:-(\d{1,2})(?:[T ](\d{1,2})(?::(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?)?)?)?)?` +
		`(?:\s*(Z|[+-]\d{2}:?\d{2}|[A-Za-z_]+(?:/[A-Za-z_+-]+)*))?$`)

var zoneNamePattern = regexp.MustCompile(`^[A-Za-z_]+(?:/[A-Za-z_+-]+)*$`)

// Resolve implements Resolver.
func (p *Parser) Resolve(text string, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	clean := strings.TrimSpace(text)

	switch strings.ToLower(clean) {
	case "", "null":
		return Range{}, nil
	case "now":
		now := p.now().In(loc)
		return Range{Start: &now}, nil
	case "today":
		return p.dayRange(loc, 0), nil
	case "yesterday":
		return p.dayRange(loc, -1), nil
	}

	m := datePattern.FindStringSubmatch(clean)
	if m == nil {
		return Range{}, fmt.Errorf("%w '%s'", ErrInvalidDate, text)
	}

	if zone := m[8]; zone != "" {
		zoneLoc, err := parseZone(zone)
		if err != nil {
			return Range{}, fmt.Errorf("%w '%s': %w", ErrInvalidDate, text, err)
		}
		loc = zoneLoc
	}

	fields := [6]int{0, 1, 1, 0, 0, 0}
	given := 0
	for i := 0; i < 6; i++ {
		if m[i+1] == "" {
			break
		}
		fields[i], _ = strconv.Atoi(m[i+1])
		given = i + 1
	}

	nanos, digits := 0, len(m[7])
	if digits > 0 {
		nanos, _ = strconv.Atoi(m[7] + strings.Repeat("0", 9-digits))
	}

	year, month, day, hour, minute, second := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	if month < 1 || month > 12 || hour > 23 || minute > 59 || second > 59 {
		return Range{}, fmt.Errorf("%w '%s': field out of range", ErrInvalidDate, text)
	}
	start := time.Date(year, time.Month(month), day, hour, minute, second, nanos, loc)
	if start.Day() != day || start.Month() != time.Month(month) {
		return Range{}, fmt.Errorf("%w '%s': no such day", ErrInvalidDate, text)
	}

	var end time.Time
	switch {
	case digits == 9:
		return Range{Start: &start}, nil
	case digits > 0:
		unit := time.Duration(1)
		for i := digits; i < 9; i++ {
			unit *= 10
		}
		end = start.Add(unit)
	case given == 1:
		end = start.AddDate(1, 0, 0)
	case given == 2:
		end = start.AddDate(0, 1, 0)
	case given == 3:
		end = start.AddDate(0, 0, 1)
	case given == 4:
		end = start.Add(time.Hour)
	case given == 5:
		end = start.Add(time.Minute)
	default:
		end = start.Add(time.Second)
	}
	return Range{Start: &start, End: &end}, nil
}

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Parser) dayRange(loc *time.Location, offset int) Range {
	now := p.now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return Range{Start: &start, End: &end}
}

func parseZone(zone string) (*time.Location, error) {
	if zone == "Z" {
		return time.UTC, nil
	}
	if zone[0] == '+' || zone[0] == '-' {
		digits := strings.ReplaceAll(zone[1:], ":", "")
		hours, _ := strconv.Atoi(digits[:2])
		minutes, _ := strconv.Atoi(digits[2:])
		offset := hours*3600 + minutes*60
		if zone[0] == '-' {
			offset = -offset
		}
		return time.FixedZone(zone, offset), nil
	}
	return time.LoadLocation(zone)
}

// TrimTimeZone removes a trailing zone name separated by a space, so that
// "2024-01-02 10:00 America/New_York" becomes "2024-01-02 10:00".
func TrimTimeZone(text string) string {
	trimmed := strings.TrimSpace(text)
	i := strings.LastIndexByte(trimmed, ' ')
	if i < 0 {
		return trimmed
	}
	if zoneNamePattern.MatchString(trimmed[i+1:]) {
		return strings.TrimSpace(trimmed[:i])
	}
	return trimmed
}
