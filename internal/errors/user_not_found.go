package errors

import "net/http"

var ErrUserNotFound = &Exception{
	Message:    "User not found",
	StatusCode: http.StatusNotFound,
}
