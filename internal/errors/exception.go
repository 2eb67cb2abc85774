package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
	Details    any
}

func (e *Exception) Error() string {
	return e.Message
}

// Is matches exceptions by status and message so that copies made by
// WithDetails still satisfy errors.Is against the sentinel.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Message == t.Message
}

func (e *Exception) WithDetails(details any) *Exception {
	return &Exception{
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Details:    details,
	}
}

func StatusCode(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
