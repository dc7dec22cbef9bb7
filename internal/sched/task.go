package sched

import "fmt"

// Task represents one pending unit of work. It is a value: once created by the
// Manager nothing about it changes.
type Task struct {
	ID       string  // caller supplied, unique among pending tasks
	Priority int     // higher runs first
	Arrival  float64 // stamped by the Manager at insertion, strictly increasing
}

// Before reports whether t ranks ahead of o in execution order:
// higher priority first, then earlier arrival.
func (t Task) Before(o Task) bool {
	if t.Priority != o.Priority {
		return t.Priority > o.Priority
	}
	return t.Arrival < o.Arrival
}

func (t Task) String() string {
	return fmt.Sprintf("Task(ID=%q, Priority=%d, Arrival=%.2f)", t.ID, t.Priority, t.Arrival)
}
