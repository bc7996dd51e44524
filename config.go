package quickfilter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hugr-lab/quickfilter/daterange"
)

// Config contains configuration for a filter Compiler.
type Config struct {
	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// Valid values: slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// TimeZone is the IANA zone (e.g., "America/New_York") used when a call
	// passes an empty time zone.
	// OPTIONAL: If empty, quick filters on date columns without an explicit
	// zone fall back to character/text parsing, and explicit date operations
	// resolve dates in UTC.
	TimeZone string

	// DateResolver turns partial date text into an instant range.
	// OPTIONAL: Uses daterange.Default if nil.
	DateResolver daterange.Resolver
}

// Standard errors returned by quickfilter package.
var (
	// ErrInvalidFilterText indicates a compound quick filter contains a
	// clause that cannot be parsed.
	ErrInvalidFilterText = errors.New("invalid filter text")

	// ErrUnknownOperator indicates an operator kind that is not supported
	// for the column. It is a caller bug, never the result of user text.
	ErrUnknownOperator = errors.New("unknown filter operator")

	// ErrUnknownJoinOperator indicates an advanced filter join operator
	// other than "and" or "or".
	ErrUnknownJoinOperator = errors.New("unknown join operator")

	// ErrInvalidTimeZone indicates a time zone name that cannot be loaded.
	ErrInvalidTimeZone = errors.New("invalid time zone")

	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid compiler config")

	// ErrUnsupportedValue indicates a selected raw value whose Go type
	// cannot be converted to a literal for the column.
	ErrUnsupportedValue = errors.New("unsupported filter value")
)

// Compiler turns quick filter text and advanced filter options into
// condition trees. It holds no mutable state and is safe for concurrent use.
type Compiler struct {
	logger   *slog.Logger
	loc      *time.Location
	resolver daterange.Resolver
	now      func() time.Time
}

// New creates a Compiler from config.
// Returns an error wrapping ErrInvalidConfig if TimeZone cannot be loaded.
func New(config Config) (*Compiler, error) {
	var loc *time.Location
	if config.TimeZone != "" {
		var err error
		loc, err = time.LoadLocation(config.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("%w: time zone %q: %v", ErrInvalidConfig, config.TimeZone, err)
		}
	}

	logger := config.Logger
	if logger == nil {
		if config.LogLevel != nil {
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: *config.LogLevel,
			})
			logger = slog.New(handler)
		} else {
			logger = slog.Default()
		}
	}

	resolver := config.DateResolver
	if resolver == nil {
		resolver = daterange.Default
	}

	return &Compiler{
		logger:   logger,
		loc:      loc,
		resolver: resolver,
		now:      time.Now,
	}, nil
}

// location returns the zone for timeZone, falling back to the configured
// default. It returns nil without error when neither is set.
func (c *Compiler) location(timeZone string) (*time.Location, error) {
	if timeZone == "" {
		return c.loc, nil
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("quickfilter: %w %q: %v", ErrInvalidTimeZone, timeZone, err)
	}
	return loc, nil
}
