package progressbar

import (
	"errors"
	"strings"
)

// Common errors.
var (
	ErrInvalidMax    = errors.New("progressbar: max must be positive")
	ErrInvalidWidth  = errors.New("progressbar: width must be positive")
	ErrInvalidState  = errors.New("progressbar: invalid state")
	ErrUnknownField  = errors.New("progressbar: unknown field")
	ErrInvalidGlyph  = errors.New("progressbar: glyph must be one printable column")
	ErrInvalidFormat = errors.New("progressbar: invalid format")
)

// FieldError is returned when a configuration field is unknown or its value is
// rejected. Use errors.Is with ErrUnknownField, ErrInvalidGlyph or
// ErrInvalidFormat to tell the cases apart.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "progressbar: " + e.Field + ": " + strings.TrimPrefix(e.Err.Error(), "progressbar: ")
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
