package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "kanban-today.com/kanban-today/internal/data_models"
	apperrors "kanban-today.com/kanban-today/internal/errors"
	"kanban-today.com/kanban-today/internal/http/validators"
	"kanban-today.com/kanban-today/internal/services"
)

type Handler struct {
	boardService *services.BoardService
	todayLimit   int
}

func NewHandler(boardService *services.BoardService, todayLimit int) *Handler {
	if todayLimit <= 0 {
		todayLimit = services.DefaultTodayLimit
	}
	return &Handler{
		boardService: boardService,
		todayLimit:   todayLimit,
	}
}

type indexPage struct {
	Board dto.BoardResponse
	Today []dto.TodayItem
	Error string
}

var errorBanners = map[string]string{
	"bad_date":       "Due date must be a valid date (YYYY-MM-DD).",
	"title_required": "Title is required.",
}

func (h *Handler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	board, err := h.boardService.Board(ctx)
	if err != nil {
		return httpError(err)
	}

	today, err := h.boardService.Today(ctx, h.todayLimit)
	if err != nil {
		return httpError(err)
	}

	return c.Render(http.StatusOK, "index.html", indexPage{
		Board: dto.NewBoardResponse(board),
		Today: dto.NewTodayItems(today),
		Error: errorBanners[c.QueryParam("error")],
	})
}

func (h *Handler) AddTask(c echo.Context) error {
	var req dto.AddTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if req.Priority == "" {
		req.Priority = "mid"
	}
	if req.Status == "" {
		req.Status = "todo"
	}

	if err := validators.ValidateAddTaskRequest(&req); err != nil {
		return redirectWithError(c, err)
	}

	_, err := h.boardService.AddTask(c.Request().Context(), services.AddTaskInput{
		Title:    req.Title,
		DueDate:  req.DueDate,
		Priority: req.Priority,
		Status:   req.Status,
	})
	if err != nil {
		return redirectWithError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteTask always lands back on the board, whether or not the task existed.
func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := h.boardService.DeleteTask(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) MoveTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httpError(apperrors.ErrInvalidTaskID)
	}

	var req dto.MoveTaskRequest
	if err := c.Bind(&req); err != nil || req.Status == nil {
		return httpError(apperrors.ErrInvalidJSON)
	}

	if _, err := h.boardService.MoveTask(c.Request().Context(), id, *req.Status); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.MoveTaskResponse{OK: true})
}

func (h *Handler) Today(c echo.Context) error {
	limit := h.todayLimit
	if raw := c.QueryParam("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return httpError(apperrors.ErrInvalidLimit)
		}
		if n == 0 {
			return c.JSON(http.StatusOK, []dto.TodayItem{})
		}
		limit = n
	}

	ranked, err := h.boardService.Today(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.NewTodayItems(ranked))
}

func (h *Handler) Board(c echo.Context) error {
	board, err := h.boardService.Board(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.NewBoardResponse(board))
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func redirectWithError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidDueDate):
		return c.Redirect(http.StatusSeeOther, "/?error=bad_date")
	case errors.Is(err, apperrors.ErrTitleRequired):
		return c.Redirect(http.StatusSeeOther, "/?error=title_required")
	default:
		return httpError(err)
	}
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperrors.StatusCode(err), apperrors.PublicMessage(err))
}
