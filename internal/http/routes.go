package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"task-dashboard.com/task-dashboard/internal/auth"
	middleware "task-dashboard.com/task-dashboard/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, tokens *auth.TokenService, rateLimit echo.MiddlewareFunc) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.RequestLogger(), middleware.Metrics())

	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authenticated := middleware.Authenticate(tokens)

	users := e.Group("/users", rateLimit)
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/me", h.Profile, authenticated)

	tasks := e.Group("/tasks", rateLimit, authenticated)
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.PUT("/:id", h.ReplaceTask)
	tasks.DELETE("/:id", h.DeleteTask)

	dashboard := e.Group("/dashboard", rateLimit, authenticated)
	dashboard.GET("", h.Snapshot)
	dashboard.GET("/stats", h.Overview)
	dashboard.GET("/completion-time", h.CompletionTime)
	dashboard.GET("/priority", h.PriorityStats)
}
