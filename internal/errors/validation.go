package errors

import (
	"fmt"
	"strings"
)

type ValidationCode string

const (
	MissingRequiredField ValidationCode = "MissingRequiredField"
	InvalidType          ValidationCode = "InvalidType"
	InvalidEnumValue     ValidationCode = "InvalidEnumValue"
	InvalidTemporalRange ValidationCode = "InvalidTemporalRange"
	InvalidValue         ValidationCode = "InvalidValue"
)

type FieldError struct {
	Field   string         `json:"field"`
	Code    ValidationCode `json:"code"`
	Message string         `json:"message"`
}

// ValidationError collects every field-level problem found in one payload.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", v.Message, strings.Join(parts, "; "))
}

func (v *ValidationError) Add(field string, code ValidationCode, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Code: code, Message: message})
}

// Has reports whether a problem was already recorded for field.
func (v *ValidationError) Has(field string) bool {
	for _, f := range v.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when no field errors were recorded.
func (v *ValidationError) Err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}
