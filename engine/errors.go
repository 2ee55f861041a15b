package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownField is wrapped by every FieldError.
var ErrUnknownField = errors.New("unknown field")

// FieldError reports a criteria field that the view does not expose.
// Only returned under WithStrictFields.
type FieldError struct {
	Role  string // "facet", "text", "floor", "sort", "measure", "denominator"
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q: %v", e.Role, e.Field, ErrUnknownField)
}

func (e *FieldError) Unwrap() error { return ErrUnknownField }
