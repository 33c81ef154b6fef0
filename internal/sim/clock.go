package sim

import "time"

// Clock turns wall-clock time into per-frame deltas for live drivers. The
// first tick is the baseline and reports zero.
type Clock struct {
	// MaxDt caps a single delta in seconds. Zero disables the cap.
	MaxDt float64

	now     func() time.Time
	last    time.Time
	started bool
}

func NewClock(maxDt float64) *Clock {
	return &Clock{MaxDt: maxDt, now: time.Now}
}

// Tick returns the seconds elapsed since the previous tick, never negative.
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		dt = 0
	}
	if c.MaxDt > 0 && dt > c.MaxDt {
		dt = c.MaxDt
	}
	return dt
}

// Reset makes the next tick a new baseline.
func (c *Clock) Reset() {
	c.started = false
}
