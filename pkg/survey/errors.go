package survey

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned for a jump or lookup outside the registry.
var ErrUnknownSection = errors.New("unknown survey section")

// ErrAtFirstSection is returned when retreating from the lowest section.
var ErrAtFirstSection = errors.New("already at first section")

// ErrAtLastSection is returned when advancing past the highest section.
var ErrAtLastSection = errors.New("already at last section")

// ValidationError reports a single rejected field. The save is blocked and
// nothing is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
