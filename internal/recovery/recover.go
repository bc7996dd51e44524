// Package recovery guards calls into user-supplied collaborators, such as a
// configured date-range resolver, so a panic surfaces as an error instead of
// crashing the caller.
package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ErrPanic is wrapped by every error produced from a recovered panic.
var ErrPanic = errors.New("panic recovered")

// RecoverToValue wraps a function that returns a value and error.
// If the function panics, returns zero value and an error wrapping ErrPanic.
//
// Example:
//
//	r, err := recovery.RecoverToValue(logger, "ResolveDate", func() (daterange.Range, error) {
//	    return resolver.Resolve(text, loc)
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			var zero T
			result = zero
			err = fmt.Errorf("%w: %s: %v", ErrPanic, operation, r)
		}
	}()

	return fn()
}
