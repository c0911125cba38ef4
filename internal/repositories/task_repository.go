package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kanban-today.com/kanban-today/internal/errors"
	"kanban-today.com/kanban-today/pkg/constants"
	model "kanban-today.com/kanban-today/pkg/models"
)

type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

// WithClock returns a copy of the repository that stamps created_at and
// done_at from now.
func (r *TaskRepository) WithClock(now func() time.Time) *TaskRepository {
	return &TaskRepository{db: r.db, now: now}
}

// CreateTask coerces priority and status, rejects a due date that is not
// YYYY-MM-DD and inserts the task as not done.
func (r *TaskRepository) CreateTask(ctx context.Context, title, dueDate, priorityRaw, statusRaw string) (*model.Task, error) {
	if _, err := time.Parse(constants.DateLayout, dueDate); err != nil {
		return nil, apperrors.ErrInvalidDueDate
	}

	task := &model.Task{
		Title:     title,
		DueDate:   dueDate,
		Priority:  constants.ParsePriority(priorityRaw),
		CreatedAt: r.now().Format(constants.TimestampLayout),
		Done:      false,
		Status:    constants.ParseStatus(statusRaw),
		DoneAt:    nil,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes the task and reports whether a row was there. Deleting an
// unknown id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Task{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

// SetStatus moves the task and derives done and done_at from the target
// status alone, so done -> done refreshes done_at. Unknown ids are ignored.
func (r *TaskRepository) SetStatus(ctx context.Context, id int64, statusRaw string) (constants.TaskStatus, error) {
	status := constants.ParseStatus(statusRaw)

	updates := map[string]interface{}{
		"status":  status,
		"done":    false,
		"done_at": nil,
	}
	if status == constants.StatusDone {
		updates["done"] = true
		updates["done_at"] = r.now().Format(constants.TimestampLayout)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.Task{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return "", err
	}

	return status, nil
}

// ListByStatus returns one board column.
func (r *TaskRepository) ListByStatus(ctx context.Context, status constants.TaskStatus) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("due_date asc").Order("priority desc").Order("id asc").
		Find(&tasks).Error
	return tasks, err
}

// ListOpen returns every task that is not done, in insertion order.
func (r *TaskRepository) ListOpen(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status != ?", constants.StatusDone).
		Order("id asc").
		Find(&tasks).Error
	return tasks, err
}
