package dto

import (
	"kanban-today.com/kanban-today/internal/services"
	"kanban-today.com/kanban-today/pkg/constants"
	model "kanban-today.com/kanban-today/pkg/models"
)

type AddTaskRequest struct {
	Title    string `form:"title"`
	DueDate  string `form:"due_date"`
	Priority string `form:"priority"`
	Status   string `form:"status"`
}

// MoveTaskRequest carries the target column. A nil Status means the key
// was absent, which is rejected rather than coerced.
type MoveTaskRequest struct {
	Status *string `json:"status"`
}

type MoveTaskResponse struct {
	OK bool `json:"ok"`
}

// TaskView is a task the way the board and the today list present it.
type TaskView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	PriorityRaw int    `json:"priority_raw"`
	Status      string `json:"status"`
}

type TodayItem struct {
	Score int `json:"score"`
	TaskView
}

type BoardColumn struct {
	Status string     `json:"status"`
	Label  string     `json:"label"`
	Count  int        `json:"count"`
	Tasks  []TaskView `json:"tasks"`
}

type BoardResponse struct {
	Columns []BoardColumn  `json:"columns"`
	Counts  map[string]int `json:"counts"`
}

func NewTaskView(t model.Task) TaskView {
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		DueDate:     t.DueDate,
		Priority:    t.Priority.Label(),
		PriorityRaw: int(t.Priority),
		Status:      string(t.Status),
	}
}

func NewTodayItems(ranked []services.ScoredTask) []TodayItem {
	items := make([]TodayItem, 0, len(ranked))
	for _, st := range ranked {
		items = append(items, TodayItem{Score: st.Score, TaskView: NewTaskView(st.Task)})
	}
	return items
}

func NewBoardResponse(board *services.Board) BoardResponse {
	resp := BoardResponse{
		Columns: make([]BoardColumn, 0, len(constants.Statuses())),
		Counts:  make(map[string]int, len(constants.Statuses())),
	}

	for _, status := range constants.Statuses() {
		tasks := board.Columns[status]
		views := make([]TaskView, 0, len(tasks))
		for _, t := range tasks {
			views = append(views, NewTaskView(t))
		}

		resp.Columns = append(resp.Columns, BoardColumn{
			Status: string(status),
			Label:  status.Label(),
			Count:  board.Counts[status],
			Tasks:  views,
		})
		resp.Counts[string(status)] = board.Counts[status]
	}

	return resp
}
