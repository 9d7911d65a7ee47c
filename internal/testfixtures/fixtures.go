// Package testfixtures provides the deterministic clock, ID generator, fake
// payroll backend, and in-memory session store shared by handler tests.
package testfixtures

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReferenceTime is the canonical baseline instant used by fixtures:
// 2025-06-01 12:00 UTC, a Sunday.
func ReferenceTime() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

// Clock is a controllable time source, tracked as a base instant plus the
// drift accumulated through Advance.
type Clock struct {
	mu     sync.RWMutex
	base   time.Time
	offset time.Duration
}

// NewClock returns a clock initialised to start, or to ReferenceTime when
// start is the zero value.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{base: start}
}

// Now returns the clock's current instant.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base.Add(c.offset)
}

// NowFunc exposes Now for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set moves the clock to the given time, discarding accumulated drift.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.base = t
	c.offset = 0
	c.mu.Unlock()
}

// Advance moves the clock forward and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.offset += d
	updated := c.base.Add(c.offset)
	c.mu.Unlock()
	return updated
}

// IDGenerator yields deterministic sequential identifiers.
type IDGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDGenerator constructs a generator with the given prefix, defaulting to
// "id".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1))
}

// NextFunc exposes Next for dependency injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}
