package services

import (
	"context"
	"log"
	"strings"
	"time"

	apperrors "kanban-today.com/kanban-today/internal/errors"
	repository "kanban-today.com/kanban-today/internal/repositories"
	"kanban-today.com/kanban-today/pkg/constants"
	model "kanban-today.com/kanban-today/pkg/models"
)

type BoardService struct {
	repo *repository.TaskRepository
	now  func() time.Time
}

type AddTaskInput struct {
	Title    string
	DueDate  string
	Priority string
	Status   string
}

// Board is every task grouped into its column, plus per-column counts.
type Board struct {
	Columns map[constants.TaskStatus][]model.Task
	Counts  map[constants.TaskStatus]int
}

func NewBoardService(repo *repository.TaskRepository) *BoardService {
	return &BoardService{repo: repo, now: time.Now}
}

// WithClock returns a copy whose Today uses now as the reference date.
func (s *BoardService) WithClock(now func() time.Time) *BoardService {
	return &BoardService{repo: s.repo, now: now}
}

func (s *BoardService) AddTask(ctx context.Context, in AddTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	task, err := s.repo.CreateTask(ctx, title, strings.TrimSpace(in.DueDate), in.Priority, in.Status)
	if err != nil {
		return nil, err
	}

	log.Printf("task %d created in %s", task.ID, task.Status)
	return task, nil
}

// MoveTask puts the task in the column named by statusRaw. Every move is
// allowed; an unknown column name lands the task in todo.
func (s *BoardService) MoveTask(ctx context.Context, id int64, statusRaw string) (constants.TaskStatus, error) {
	status, err := s.repo.SetStatus(ctx, id, statusRaw)
	if err != nil {
		return "", err
	}

	log.Printf("task %d moved to %s", id, status)
	return status, nil
}

func (s *BoardService) DeleteTask(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if removed {
		log.Printf("task %d deleted", id)
	}
	return nil
}

func (s *BoardService) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BoardService) Board(ctx context.Context) (*Board, error) {
	board := &Board{
		Columns: make(map[constants.TaskStatus][]model.Task, len(constants.Statuses())),
		Counts:  make(map[constants.TaskStatus]int, len(constants.Statuses())),
	}

	for _, status := range constants.Statuses() {
		tasks, err := s.repo.ListByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		board.Columns[status] = tasks
		board.Counts[status] = len(tasks)
	}

	return board, nil
}

// Today ranks the open tasks against the service clock's current date.
func (s *BoardService) Today(ctx context.Context, limit int) ([]ScoredTask, error) {
	return s.TodayAt(ctx, s.now(), limit)
}

func (s *BoardService) TodayAt(ctx context.Context, today time.Time, limit int) ([]ScoredTask, error) {
	if limit < 0 {
		return nil, apperrors.ErrInvalidLimit
	}

	tasks, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	return RankToday(tasks, today, limit), nil
}
