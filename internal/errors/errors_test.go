package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	ve := NewValidationError("Validation failed")
	ve.Add("title", MissingRequiredField, "Task title is required")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing token", ErrMissingToken, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("load: %w", ErrTaskNotFound), http.StatusNotFound},
		{"validation", ve, http.StatusBadRequest},
		{"duplicate email", ErrDuplicateEmail, http.StatusBadRequest},
		{"conflict", ErrOptimisticLock, http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestException_WithDetailsKeepsIdentity(t *testing.T) {
	err := ErrInvalidJSON.WithDetails("unexpected EOF")

	assert.True(t, errors.Is(err, ErrInvalidJSON))
	assert.Equal(t, "unexpected EOF", err.Details)
	assert.Nil(t, ErrInvalidJSON.Details)
}

func TestValidationError_Err(t *testing.T) {
	ve := NewValidationError("Validation failed")
	require.NoError(t, ve.Err())

	ve.Add("endTime", InvalidTemporalRange, "End time must be after start time")
	err := ve.Err()
	require.Error(t, err)
	assert.True(t, ve.Has("endTime"))
	assert.False(t, ve.Has("startTime"))
	assert.Contains(t, err.Error(), "endTime: End time must be after start time")
}
