// internal/sched/event.go

package sched

import (
	"time"
)

// EventKind represents what happened to a task.
type EventKind int

const (
	EventAdded EventKind = iota
	EventExecuted
	EventCancelled
	EventRejected // an operation failed and changed nothing
)

// Event is emitted by the Manager after every operation that touches a task id.
type Event struct {
	Time     time.Time
	Kind     EventKind
	TaskID   string
	Priority int
	Arrival  float64
	Err      error // set only for EventRejected
}

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "Added"
	case EventExecuted:
		return "Executed"
	case EventCancelled:
		return "Cancelled"
	case EventRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}
