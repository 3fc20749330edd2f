// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"testing"
	"time"
)

func TestFakeClock_Start(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 13, 37, 0, 0, time.UTC)
	if got := NewFakeClock(start).Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}
	if got := NewFakeClock(time.Time{}).Now(); !got.Equal(ReferenceTime) {
		t.Errorf("Now() from zero start = %v, want %v", got, ReferenceTime)
	}
}

func TestFakeClock_StepAndAdvance(t *testing.T) {
	t.Parallel()

	c := NewFakeClock(ReferenceTime)
	if a, b := c.Now(), c.Now(); !a.Equal(b) {
		t.Errorf("zero step: readings differ: %v, %v", a, b)
	}

	c.SetStep(time.Millisecond)
	first := c.Now()
	second := c.Now()
	if got := second.Sub(first); got != time.Millisecond {
		t.Errorf("step between readings = %v, want 1ms", got)
	}

	c.Advance(time.Hour)
	if got := c.Now().Sub(second); got != time.Hour+time.Millisecond {
		t.Errorf("Advance() moved clock by %v, want 1h1ms", got)
	}
	if got := c.Reads(); got != 5 {
		t.Errorf("Reads() = %d, want 5", got)
	}
}

func TestFakeClock_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewFakeClock(ReferenceTime)
	c.SetStep(time.Second)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() { c.Now() })
	}
	wg.Wait()

	if got := c.Reads(); got != 50 {
		t.Errorf("Reads() = %d, want 50", got)
	}
	if got := c.Now(); !got.Equal(ReferenceTime.Add(50 * time.Second)) {
		t.Errorf("Now() after 50 reads = %v", got)
	}
}
