package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "task-dashboard.com/task-dashboard/internal/http/middlewares"
)

func (h *Handler) Register(c echo.Context) error {
	body, err := decodePayload(c)
	if err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), body)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "User registered successfully", echo.Map{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	body, err := decodePayload(c)
	if err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), body)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", echo.Map{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *Handler) Profile(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), callerID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Profile retrieved successfully", echo.Map{"user": user})
}
