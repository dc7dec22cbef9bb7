// internal/sched/clock.go

package sched

import (
	"sync/atomic"
	"time"
)

// Clock supplies arrival stamps. Successive calls should not go backwards;
// the Manager still guards against a clock that repeats a value.
type Clock interface {
	Now() float64
}

// LogicalClock counts calls atomically and returns the count as the stamp.
// Stamps start at 1.
type LogicalClock struct {
	count atomic.Int64
}

// NewLogicalClock creates a clock whose first stamp is 1.
func NewLogicalClock() *LogicalClock {
	return &LogicalClock{}
}

// Now advances the counter and returns it.
func (c *LogicalClock) Now() float64 {
	return float64(c.count.Add(1))
}

// Count returns the number of stamps issued so far.
func (c *LogicalClock) Count() int64 {
	return c.count.Load()
}

// WallClock stamps arrivals with Unix time in fractional seconds.
type WallClock struct {
	now func() time.Time
}

// NewWallClock creates a clock backed by time.Now.
func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

// Now returns the current Unix time in seconds.
func (c *WallClock) Now() float64 {
	t := c.now()
	return float64(t.UnixNano()) / float64(time.Second)
}
