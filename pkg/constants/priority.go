package constants

import "strings"

// Priority is the urgency level picked when a task is created.
type Priority int

const (
	PriorityLow  Priority = 1
	PriorityMid  Priority = 2
	PriorityHigh Priority = 3
)

var priorityNames = map[string]Priority{
	"low":  PriorityLow,
	"mid":  PriorityMid,
	"high": PriorityHigh,
}

// ParsePriority matches raw case-insensitively against low, mid and high.
// Unknown values fall back to PriorityMid.
func ParsePriority(raw string) Priority {
	if p, ok := priorityNames[strings.ToLower(raw)]; ok {
		return p
	}
	return PriorityMid
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMid:
		return "MID"
	case PriorityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Weight is the priority term of the urgency score.
func (p Priority) Weight() int {
	return int(p) * 8
}
