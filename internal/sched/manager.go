// internal/sched/manager.go

package sched

import (
	"iter"
	"math"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// handles locates one pending task inside both structures.
type handles struct {
	node  NodeHandle
	entry EntryHandle
}

// Manager keeps the pending set in two views at once: a priority queue that
// answers "what runs next" and an arrival list that answers "what is pending,
// oldest first". The index maps every pending id to its handles in both, so
// cancelling never scans either structure.
//
// A Manager is not safe for concurrent use. Callers sharing one must hold a
// single mutex around every method, since ExecuteNext and CancelTask both
// read and then modify the index and the two structures.
type Manager struct {
	clock    Clock
	last     float64 // last issued arrival stamp
	stamped  bool    // whether last is meaningful
	arrivals *ArrivalList
	queue    *PriorityQueue
	index    map[string]handles // pending id -> handles
	log      zerolog.Logger
	observe  func(Event)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the arrival clock. The default is a LogicalClock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the logger used for debug output of every operation.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithObserver registers fn to receive an Event after every operation.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) { m.observe = fn }
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		clock:    NewLogicalClock(),
		arrivals: NewArrivalList(),
		queue:    NewPriorityQueue(),
		index:    make(map[string]handles),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddTask stamps a new task with the next arrival and makes it pending.
// It fails with ErrDuplicateID if id is already pending. Ids of executed or
// cancelled tasks may be added again.
func (m *Manager) AddTask(id string, priority int) error {
	if _, dup := m.index[id]; dup {
		err := errors.Wrapf(ErrDuplicateID, "add %q", id)
		m.reject(id, err)
		return err
	}

	t := Task{ID: id, Priority: priority, Arrival: m.stamp()}
	m.index[id] = handles{
		node:  m.arrivals.Append(t),
		entry: m.queue.Insert(t),
	}

	m.log.Debug().
		Str("task_id", t.ID).
		Int("priority", t.Priority).
		Float64("arrival", t.Arrival).
		Msg("task added")
	m.emit(EventAdded, t, nil)
	return nil
}

// stamp returns an arrival strictly greater than every earlier one, nudging
// the clock's value up when it did not advance.
func (m *Manager) stamp() float64 {
	a := m.clock.Now()
	if m.stamped && a <= m.last {
		a = math.Nextafter(m.last, math.Inf(1))
	}
	m.last, m.stamped = a, true
	return a
}

// ExecuteNext removes and returns the highest priority pending task, the
// earliest arrival winning ties. It fails with ErrNoPendingTasks when the
// pending set is empty.
func (m *Manager) ExecuteNext() (Task, error) {
	t, ok := m.queue.ExtractBest()
	if !ok {
		m.reject("", ErrNoPendingTasks)
		return Task{}, ErrNoPendingTasks
	}

	h := m.index[t.ID]
	delete(m.index, t.ID)
	m.arrivals.Remove(h.node)

	m.log.Debug().
		Str("task_id", t.ID).
		Int("priority", t.Priority).
		Float64("arrival", t.Arrival).
		Msg("task executed")
	m.emit(EventExecuted, t, nil)
	return t, nil
}

// CancelTask drops a pending task. Its heap entry is only invalidated and is
// discarded once it reaches the top of the queue. It fails with ErrNotFound
// if id is not pending.
func (m *Manager) CancelTask(id string) error {
	h, ok := m.index[id]
	if !ok {
		err := errors.Wrapf(ErrNotFound, "cancel %q", id)
		m.reject(id, err)
		return err
	}

	t := m.arrivals.Task(h.node)
	m.arrivals.Remove(h.node)
	m.queue.Invalidate(h.entry)
	delete(m.index, id)

	m.log.Debug().
		Str("task_id", id).
		Int("priority", t.Priority).
		Float64("arrival", t.Arrival).
		Msg("task cancelled")
	m.emit(EventCancelled, t, nil)
	return nil
}

// ListByArrival yields the pending tasks, oldest first. The sequence reads
// live state and must be consumed before the next mutation.
func (m *Manager) ListByArrival() iter.Seq[Task] {
	return m.arrivals.All()
}

// Pending returns a snapshot of ListByArrival.
func (m *Manager) Pending() []Task {
	return slices.Collect(m.ListByArrival())
}

// Peek returns the task ExecuteNext would return, without removing it.
func (m *Manager) Peek() (Task, bool) {
	return m.queue.Peek()
}

// Contains reports whether id is pending.
func (m *Manager) Contains(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Len returns the number of pending tasks.
func (m *Manager) Len() int { return len(m.index) }

// QueueStats exposes the priority queue's lazy-deletion backlog.
func (m *Manager) QueueStats() QueueStats { return m.queue.Stats() }

func (m *Manager) reject(id string, err error) {
	m.log.Debug().Str("task_id", id).Err(err).Msg("operation rejected")
	m.emit(EventRejected, Task{ID: id}, err)
}

func (m *Manager) emit(kind EventKind, t Task, err error) {
	if m.observe == nil {
		return
	}
	m.observe(Event{
		Time:     time.Now(),
		Kind:     kind,
		TaskID:   t.ID,
		Priority: t.Priority,
		Arrival:  t.Arrival,
		Err:      err,
	})
}
