package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
	"task-dashboard.com/task-dashboard/internal/services"
)

type Handler struct {
	taskService      *services.TaskService
	authService      *services.AuthService
	dashboardService *services.DashboardService
}

func NewHandler(
	taskService *services.TaskService,
	authService *services.AuthService,
	dashboardService *services.DashboardService,
) *Handler {
	return &Handler{
		taskService:      taskService,
		authService:      authService,
		dashboardService: dashboardService,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// decodePayload reads a JSON object body. An empty body is an empty object.
func decodePayload(c echo.Context) (dto.Payload, error) {
	body := dto.Payload{}
	if c.Request().ContentLength == 0 {
		return body, nil
	}

	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		if errors.Is(err, io.EOF) {
			return dto.Payload{}, nil
		}
		return nil, apperrors.ErrInvalidJSON.WithDetails(decodeDetail(err))
	}
	if body == nil {
		body = dto.Payload{}
	}
	return body, nil
}

func decodeDetail(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
