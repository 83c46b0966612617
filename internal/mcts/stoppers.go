package mcts

import (
	"sync/atomic"
	"time"
)

// Stopper decides when the search loop ends. Done is polled between
// iterations, never inside one, so a time limit overshoots by at most one
// iteration.
type Stopper interface {
	Done(iteration int) bool
}

// MaxIters stops after a fixed number of iterations.
type MaxIters int

// Done reports whether the iteration budget is exhausted.
func (m MaxIters) Done(iteration int) bool {
	return iteration >= int(m)
}

// MaxTime stops once the elapsed wall clock exceeds the budget. The clock
// starts on the first poll.
type MaxTime struct {
	Limit time.Duration
	start time.Time
}

// NewMaxTime creates a wall-clock stopper.
func NewMaxTime(limit time.Duration) *MaxTime {
	return &MaxTime{Limit: limit}
}

// Done reports whether the time budget is exhausted.
func (m *MaxTime) Done(iteration int) bool {
	if iteration == 0 {
		m.start = time.Now()
	}
	return time.Since(m.start) >= m.Limit
}

// Async stops when an external controller raises the flag. It is the
// cancellation channel for searches driven from another goroutine.
type Async struct {
	Flag *atomic.Bool
}

// Done reports whether the flag has been raised.
func (a Async) Done(int) bool {
	return a.Flag.Load()
}

// FirstOf stops as soon as any of its children would.
type FirstOf []Stopper

// Done polls the children in order.
func (f FirstOf) Done(iteration int) bool {
	for _, s := range f {
		if s.Done(iteration) {
			return true
		}
	}
	return false
}
