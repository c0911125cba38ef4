package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "kanban-today.com/kanban-today/internal/http/middlewares"
	"kanban-today.com/kanban-today/internal/limiter"
)

func Register(e *echo.Echo, h *Handler, store limiter.Store, rateLimitPerMinute int) {
	e.Renderer = NewTemplateRenderer()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RateLimiter(store, rateLimitPerMinute, time.Minute))

	e.GET("/", h.Index)
	e.POST("/add", h.AddTask)
	e.POST("/delete/:id", h.DeleteTask)
	e.POST("/move/:id", h.MoveTask)

	e.GET("/api/today", h.Today)
	e.GET("/api/board", h.Board)
	e.GET("/healthz", h.Health)
}
