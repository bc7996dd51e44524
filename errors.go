package quickfilter

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/quickfilter/literal"
)

// ParseError reports quick filter text that could not be compiled.
// It matches ErrInvalidFilterText with errors.Is.
type ParseError struct {
	// Column is the name of the column the filter was built for.
	Column string

	// Text is the complete filter text.
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("quickfilter: unable to parse quick filter from text %q for column %s", e.Text, e.Column)
}

// Unwrap makes a ParseError match ErrInvalidFilterText.
func (e *ParseError) Unwrap() error { return ErrInvalidFilterText }

// isSoft reports whether err rejects a single filter unit rather than the
// whole build.
func isSoft(err error) bool {
	return errors.Is(err, ErrInvalidFilterText) ||
		errors.Is(err, literal.ErrInvalidNumber) ||
		errors.Is(err, literal.ErrInvalidLong) ||
		errors.Is(err, literal.ErrInvalidBoolean)
}
