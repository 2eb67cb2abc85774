package validators

import (
	"strings"

	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

var (
	emailField = field{
		name: "email",
		tag:  "required,email",
		trim: true,
		messages: map[string]string{
			"required": "Email is required",
			"email":    "Please provide a valid email address",
		},
	}
	registerPasswordField = field{
		name: "password",
		tag:  "required,min=6",
		messages: map[string]string{
			"required": "Password is required",
			"min":      "Password must be at least 6 characters long",
		},
	}
	loginPasswordField = field{
		name:     "password",
		tag:      "required",
		messages: map[string]string{"required": "Password is required"},
	}
	nameField = field{
		name: "name",
		tag:  "required,min=2",
		trim: true,
		messages: map[string]string{
			"required": "Name is required",
			"min":      "Name must be at least 2 characters long",
		},
	}
)

func ValidateRegisterRequest(body dto.Payload) (*dto.RegisterRequest, error) {
	ve := apperrors.NewValidationError(validationFailed)

	email, _ := required(body, ve, emailField, "Email must be a string")
	password, _ := required(body, ve, registerPasswordField, "Password must be a string")
	name, _ := required(body, ve, nameField, "Name must be a string")

	if err := ve.Err(); err != nil {
		return nil, err
	}
	return &dto.RegisterRequest{
		Email:    normalizeEmail(email),
		Password: password,
		Name:     name,
	}, nil
}

func ValidateLoginRequest(body dto.Payload) (*dto.LoginRequest, error) {
	ve := apperrors.NewValidationError(validationFailed)

	email, _ := required(body, ve, emailField, "Email must be a string")
	password, _ := required(body, ve, loginPasswordField, "Password must be a string")

	if err := ve.Err(); err != nil {
		return nil, err
	}
	return &dto.LoginRequest{
		Email:    normalizeEmail(email),
		Password: password,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
