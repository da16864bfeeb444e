package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Clock converts variable frame deltas into whole fixed-size simulation
// steps and tracks the time since the last automatic drop.
type Clock struct {
	timestep    time.Duration
	maxFrame    time.Duration
	accumulator time.Duration
	sinceDrop   time.Duration
}

// NewClock creates a clock with the given step size and per-frame clamp.
func NewClock(timestep, maxFrame time.Duration) Clock {
	return Clock{timestep: timestep, maxFrame: maxFrame}
}

// Timestep returns the length of one logical step.
func (c *Clock) Timestep() time.Duration {
	return c.timestep
}

// Accumulate adds a frame delta and returns how many whole steps are due.
// The delta is clamped to [0, maxFrame] so a long stall cannot trigger a
// burst of catch-up drops.
func (c *Clock) Accumulate(delta time.Duration) int {
	c.accumulator += core.Clamp(delta, 0, c.maxFrame)
	steps := int(c.accumulator / c.timestep)
	c.accumulator -= time.Duration(steps) * c.timestep
	return steps
}

// Tick advances the drop timer by one step and reports whether it has
// passed interval. The timer restarts from zero when it fires.
func (c *Clock) Tick(interval time.Duration) bool {
	c.sinceDrop += c.timestep
	if c.sinceDrop > interval {
		c.sinceDrop = 0
		return true
	}
	return false
}

// Reset drops any banked time.
func (c *Clock) Reset() {
	c.accumulator = 0
	c.sinceDrop = 0
}
