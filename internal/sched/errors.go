package sched

import "github.com/pkg/errors"

var (
	// ErrDuplicateID is returned by AddTask when the id is already pending.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrNoPendingTasks is returned by ExecuteNext when nothing is pending.
	ErrNoPendingTasks = errors.New("no pending tasks")

	// ErrNotFound is returned by CancelTask when the id is not pending.
	ErrNotFound = errors.New("task not found")
)
