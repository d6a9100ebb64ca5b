package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel wrapped by every ValidationError
var ErrValidation = errors.New("validation failed")

// User-facing validation messages
const (
	MsgHeightTooLow         = "Height must be at least 60 cm."
	MsgWeightNotPositive    = "Weight must be greater than 0 kg."
	MsgInvalidBloodPressure = "Please enter valid blood pressure values."
	MsgAgeNotWholeNumber    = "Age must be a whole number of years."
	MsgAgeOutOfRange        = "Please enter a realistic age in years."
	MsgMalformedBody        = "Request body must be a JSON object."
)

// Context keys for error values
const (
	FieldKey = "field"
)

// ValidationError is a rejected input. Message is safe to show to the client.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given input field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewMissingValueError reports a required field that is absent or null
func NewMissingValueError(field string) *ValidationError {
	return NewValidationError(field, fmt.Sprintf("Please enter a value for %s.", field))
}

// NewInvalidNumberError reports a field that does not hold a number
func NewInvalidNumberError(field string) *ValidationError {
	return NewValidationError(field, fmt.Sprintf("Please enter a valid number for %s.", field))
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PublicMessage returns the message shown to the client
func (e *ValidationError) PublicMessage() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AsValidationError extracts a ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
