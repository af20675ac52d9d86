package testutil

import "time"

// Clock is a project.Clock that advances one day per reading, so every
// project in a run gets its own creation date.
type Clock struct {
	current time.Time
	step    time.Duration
}

// NewClock returns a clock starting at a fixed UTC time.
func NewClock() *Clock {
	return &Clock{
		current: time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC),
		step:    24 * time.Hour,
	}
}

// Now returns the current time and moves the clock forward.
func (c *Clock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)

	return now
}
