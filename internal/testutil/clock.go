// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"time"
)

// ReferenceTime is where a FakeClock created from the zero time starts.
var ReferenceTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a controllable time source for code that derives seeds or
// pack names from the current time. Each Now call moves it forward by the
// configured step (zero by default) and is counted.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	step  time.Duration
	reads int
}

// NewFakeClock returns a clock reading start, or ReferenceTime if start is zero.
func NewFakeClock(start time.Time) *FakeClock {
	if start.IsZero() {
		start = ReferenceTime
	}
	return &FakeClock{now: start}
}

// Now returns the current reading and then applies the step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	c.reads++
	return t
}

// SetStep sets how far each Now call advances the clock.
func (c *FakeClock) SetStep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}

// Advance moves the clock forward by d without counting a read.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Reads reports how many times Now has been called.
func (c *FakeClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
