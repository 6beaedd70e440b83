package animation

import "time"

// Clock supplies pipeline time in seconds. Delta and elapsed come from the
// same reading so blink timing cannot skew within a tick.
type Clock interface {
	Tick() (delta, elapsed float64)
}

// WallClock is a monotonic clock started at construction.
type WallClock struct {
	start time.Time
	last  time.Time
}

// NewClock starts a wall clock now.
func NewClock() *WallClock {
	now := time.Now()
	return &WallClock{start: now, last: now}
}

// Tick returns seconds since the previous tick and since start.
func (c *WallClock) Tick() (delta, elapsed float64) {
	now := time.Now()
	delta = now.Sub(c.last).Seconds()
	elapsed = now.Sub(c.start).Seconds()
	c.last = now
	return delta, elapsed
}

// ManualClock is advanced explicitly. Used for replay and tests.
type ManualClock struct {
	now  float64
	last float64
}

// Advance moves the clock forward by seconds.
func (c *ManualClock) Advance(seconds float64) {
	c.now += seconds
}

// Set jumps to an absolute time. Going backwards is ignored.
func (c *ManualClock) Set(seconds float64) {
	if seconds > c.now {
		c.now = seconds
	}
}

// Tick implements Clock.
func (c *ManualClock) Tick() (delta, elapsed float64) {
	delta = c.now - c.last
	c.last = c.now
	return delta, c.now
}
