package finder

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest matches every *InvalidRequestError with errors.Is.
var ErrInvalidRequest = errors.New("invalid request")

// InvalidRequestError describes a rejected search: bad bounds or letters outside a-z.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

func invalid(field, format string, args ...any) error {
	return &InvalidRequestError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
