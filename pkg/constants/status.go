package constants

type TaskStatus string

const (
	StatusTodo     TaskStatus = "todo"
	StatusPending  TaskStatus = "pending"
	StatusProgress TaskStatus = "progress"
	StatusDone     TaskStatus = "done"
)

var statusLabels = map[TaskStatus]string{
	StatusTodo:     "To do",
	StatusPending:  "Pending",
	StatusProgress: "In progress",
	StatusDone:     "Done",
}

// Statuses returns the board columns in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusTodo, StatusPending, StatusProgress, StatusDone}
}

// ParseStatus resolves raw to one of the four columns. Anything else,
// including a different letter case, becomes StatusTodo.
func ParseStatus(raw string) TaskStatus {
	s := TaskStatus(raw)
	if s.IsValid() {
		return s
	}
	return StatusTodo
}

func (s TaskStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s TaskStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
