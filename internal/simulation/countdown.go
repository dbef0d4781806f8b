package simulation

import "time"

// Countdown is the level timer.
type Countdown struct {
	Duration time.Duration
	Elapsed  time.Duration
}

// Tick advances the timer, saturating at its duration.
func (c *Countdown) Tick(dt time.Duration) {
	c.Elapsed = min(c.Elapsed+dt, c.Duration)
}

// Finished reports whether the timer has run out.
func (c Countdown) Finished() bool {
	return c.Elapsed >= c.Duration
}

// Remaining returns the time left.
func (c Countdown) Remaining() time.Duration {
	return c.Duration - c.Elapsed
}

// Seconds returns the remaining time rounded up to whole seconds, or zero
// once finished.
func (c Countdown) Seconds() int {
	if c.Finished() {
		return 0
	}
	r := c.Remaining()
	s := int(r / time.Second)
	if r%time.Second != 0 {
		s++
	}
	return s
}
