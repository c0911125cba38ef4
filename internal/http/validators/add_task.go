package validators

import (
	"strings"
	"time"

	dto "kanban-today.com/kanban-today/internal/data_models"
	apperrors "kanban-today.com/kanban-today/internal/errors"
	"kanban-today.com/kanban-today/pkg/constants"
)

// ValidateAddTaskRequest checks the fields the store would otherwise reject.
// Priority and status are never validated here; unknown values get coerced.
func ValidateAddTaskRequest(r *dto.AddTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if _, err := time.Parse(constants.DateLayout, strings.TrimSpace(r.DueDate)); err != nil {
		return apperrors.ErrInvalidDueDate
	}
	return nil
}
