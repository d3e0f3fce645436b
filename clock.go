package dreamscape

import "time"

// MaxFrameDT caps a single measured frame delta. Longer gaps (a stalled
// window, a paused loop) advance the simulation by this much.
const MaxFrameDT = 0.25

// FrameClock measures the wall time elapsed between frames, for use as the
// dt argument to World.Step.
type FrameClock struct {
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time

	last time.Time
}

// Tick returns the seconds since the previous Tick, clamped to
// [0, MaxFrameDT]. The first Tick after construction or Reset returns 0.
func (c *FrameClock) Tick() float64 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return Clamp(dt, 0, MaxFrameDT)
}

// Reset forgets the previous tick, so time spent paused is not counted.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}

func (c *FrameClock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
