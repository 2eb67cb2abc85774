package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-dashboard.com/task-dashboard/internal/errors"
	"task-dashboard.com/task-dashboard/internal/logger"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respond(c echo.Context, status int, message string, fields echo.Map) error {
	body := echo.Map{
		"success": true,
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(status, body)
}

// ErrorHandler renders every failure as {success:false, message, details}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		logger.Error("unhandled error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logger.Error("failed to write error response", "error", writeErr)
	}
}

func errorBody(err error) (int, errorResponse) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, errorResponse{
			Message: validationErr.Message,
			Details: validationErr.Fields,
		}
	}

	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, errorResponse{
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, errorResponse{Message: fmt.Sprint(httpErr.Message)}
	}

	return http.StatusInternalServerError, errorResponse{
		Message: "Internal server error",
		Details: err.Error(),
	}
}
