package core

import (
	"errors"
	"fmt"
)

// ValidationError reports a request rejected before the pipeline runs.
// It is the only error the classification path surfaces to callers;
// anything else is an infrastructure failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrEmptyText is returned when the submitted text is missing or blank
var ErrEmptyText = &ValidationError{Field: "text", Reason: "must not be empty"}

// IsValidation reports whether err is a request validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
