package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "task-dashboard.com/task-dashboard/internal/http/middlewares"
)

func (h *Handler) Overview(c echo.Context) error {
	return dashboardView(c, "Dashboard statistics retrieved successfully", h.dashboardService.Overview)
}

func (h *Handler) CompletionTime(c echo.Context) error {
	return dashboardView(c, "Completion time statistics retrieved successfully", h.dashboardService.CompletionTime)
}

func (h *Handler) PriorityStats(c echo.Context) error {
	return dashboardView(c, "Priority statistics retrieved successfully", h.dashboardService.Priority)
}

func (h *Handler) Snapshot(c echo.Context) error {
	return dashboardView(c, "Dashboard retrieved successfully", h.dashboardService.Snapshot)
}

func dashboardView[T any](c echo.Context, message string, load func(context.Context, string) (T, error)) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	data, err := load(c.Request().Context(), callerID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, message, echo.Map{"data": data})
}
