package model

import (
	"kanban-today.com/kanban-today/pkg/constants"
)

// Task mirrors a row of the tasks table. Dates are kept as text so that a
// malformed value written by an older client never fails a whole read.
type Task struct {
	ID        int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string               `gorm:"not null" json:"title"`
	DueDate   string               `gorm:"not null" json:"due_date"`
	Priority  constants.Priority   `gorm:"not null" json:"priority"`
	CreatedAt string               `gorm:"not null" json:"created_at"`
	Done      bool                 `gorm:"not null" json:"done"`
	Status    constants.TaskStatus `gorm:"type:text;not null" json:"status"`
	DoneAt    *string              `json:"done_at,omitempty"`
}
