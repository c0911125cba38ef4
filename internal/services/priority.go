package services

import (
	"cmp"
	"math"
	"slices"
	"time"

	"kanban-today.com/kanban-today/pkg/constants"
	model "kanban-today.com/kanban-today/pkg/models"
)

// DefaultTodayLimit is how many tasks the today view shows.
const DefaultTodayLimit = 5

const (
	overdueWeight  = 35
	dueHorizonDays = 20
	maxAgingWeight = 10
)

var statusWeights = map[constants.TaskStatus]int{
	constants.StatusProgress: 18,
	constants.StatusTodo:     10,
	constants.StatusPending:  2,
	constants.StatusDone:     -9999,
}

const unknownStatusWeight = 10

// ScoredTask is one entry of the today ranking.
type ScoredTask struct {
	Score   int
	DueDays int
	Task    model.Task
}

// DateOf drops the clock part of t, keeping the calendar date it has in
// its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil is dueDate minus today in whole days, negative when overdue.
func DaysUntil(dueDate string, today time.Time) (int, bool) {
	due, err := time.Parse(constants.DateLayout, dueDate)
	if err != nil {
		return 0, false
	}
	return daysBetween(DateOf(today), due), true
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// Score is the urgency of task on the given day.
func Score(task model.Task, today time.Time) int {
	return statusWeight(task.Status) +
		dueWeight(task.DueDate, today) +
		task.Priority.Weight() +
		agingWeight(task.CreatedAt, today)
}

func statusWeight(status constants.TaskStatus) int {
	if w, ok := statusWeights[status]; ok {
		return w
	}
	return unknownStatusWeight
}

func dueWeight(dueDate string, today time.Time) int {
	d, ok := DaysUntil(dueDate, today)
	if !ok {
		return 0
	}
	if d < 0 {
		return overdueWeight
	}
	return max(0, dueHorizonDays-d)
}

var createdAtLayouts = []string{
	constants.TimestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	constants.DateLayout,
}

func agingWeight(createdAt string, today time.Time) int {
	for _, layout := range createdAtLayouts {
		created, err := time.Parse(layout, createdAt)
		if err != nil {
			continue
		}
		age := daysBetween(DateOf(created), DateOf(today))
		return min(maxAgingWeight, max(0, age))
	}
	return 0
}

// RankToday scores tasks and returns the top limit of them. Ties on score
// go to the task due soonest (most overdue first), then the higher
// priority, then the lower id. A non-positive limit means DefaultTodayLimit.
func RankToday(tasks []model.Task, today time.Time, limit int) []ScoredTask {
	if limit <= 0 {
		limit = DefaultTodayLimit
	}

	scored := make([]ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		dueDays, ok := DaysUntil(task.DueDate, today)
		if !ok {
			dueDays = math.MaxInt
		}
		scored = append(scored, ScoredTask{
			Score:   Score(task, today),
			DueDays: dueDays,
			Task:    task,
		})
	}

	slices.SortFunc(scored, func(a, b ScoredTask) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(a.DueDays, b.DueDays),
			cmp.Compare(b.Task.Priority, a.Task.Priority),
			cmp.Compare(a.Task.ID, b.Task.ID),
		)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
