// Package testutil provides deterministic ids and clocks for tests and
// golden scenarios.
package testutil

import (
	"sync"
	"time"
)

// DeterministicClock is a wall clock for tests. Each call to Now returns
// the start time advanced by Step times the number of prior calls.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int
}

// NewDeterministicClock creates a clock starting at start. A zero step
// returns start forever.
func NewDeterministicClock(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{start: start, step: step}
}

// Now returns the next instant.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Reset rewinds the clock so the next Now returns start again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
