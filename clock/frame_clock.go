package clock

import "time"

// FrameClock measures the wall time between consecutive frames.
type FrameClock struct {
	now  func() time.Time
	last time.Time
}

// NewFrameClock creates a clock reading time from now, or from time.Now when
// now is nil. Tests pass a controllable source.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now}
}

// Delta returns the time since the previous call. The first call returns 0.
func (c *FrameClock) Delta() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	return max(d, 0)
}
