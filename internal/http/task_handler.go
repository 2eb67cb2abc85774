package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "task-dashboard.com/task-dashboard/internal/http/middlewares"
)

func (h *Handler) CreateTask(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	body, err := decodePayload(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), callerID, body)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Task created successfully", echo.Map{"task": task})
}

func (h *Handler) ListTasks(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), callerID, c.QueryParams())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Tasks retrieved successfully", echo.Map{"tasks": tasks})
}

func (h *Handler) GetTask(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"), callerID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task retrieved successfully", echo.Map{"task": task})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	body, err := decodePayload(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), callerID, body)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task updated successfully", echo.Map{"task": task})
}

func (h *Handler) ReplaceTask(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	body, err := decodePayload(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ReplaceTask(c.Request().Context(), c.Param("id"), callerID, body)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task updated successfully", echo.Map{"task": task})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id"), callerID); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task deleted successfully", nil)
}
