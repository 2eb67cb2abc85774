package errors

import "net/http"

var (
	ErrMissingToken = &Exception{
		Message:    "No token provided",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidToken = &Exception{
		Message:    "Invalid token",
		StatusCode: http.StatusUnauthorized,
	}

	ErrForbidden = &Exception{
		Message:    "Not authorized",
		StatusCode: http.StatusForbidden,
	}

	// ErrAuthenticationFailed covers both unknown email and wrong password.
	ErrAuthenticationFailed = &Exception{
		Message:    "Authentication failed",
		StatusCode: http.StatusUnauthorized,
		Details:    "Invalid email or password",
	}

	ErrDuplicateEmail = &Exception{
		Message:    "User already exists",
		StatusCode: http.StatusBadRequest,
	}
)
