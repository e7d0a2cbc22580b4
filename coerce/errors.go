package coerce

import (
	"errors"

	"param-binder/diagnostic"
)

var (
	// ErrNoConverter is returned when no converter is registered for a type.
	ErrNoConverter = errors.New("no converter")
	// ErrConversion wraps every error reported by a converter.
	ErrConversion = errors.New("conversion failed")
)

// FieldError is one problem found while converting one input value.
type FieldError struct {
	Code    string // diagnostic code
	Message string
	Value   string // rejected input
	Type    string // target type

	sentinel error
	cause    error
}

func (e *FieldError) Error() string {
	return e.Message
}

// Unwrap exposes both the package sentinel and the converter's own error.
func (e *FieldError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.sentinel != nil {
		out = append(out, e.sentinel)
	}

	if e.cause != nil {
		out = append(out, e.cause)
	}

	return out
}

func conversionError(input, typ string, cause error) *FieldError {
	return &FieldError{
		Code:     diagnostic.CodeConversion,
		Message:  cause.Error(),
		Value:    input,
		Type:     typ,
		sentinel: ErrConversion,
		cause:    cause,
	}
}

func noConverterError(input, typ string) *FieldError {
	return &FieldError{
		Code:     diagnostic.CodeNoConverter,
		Message:  "no converter registered for " + typ,
		Value:    input,
		Type:     typ,
		sentinel: ErrNoConverter,
	}
}
