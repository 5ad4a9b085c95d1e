// Package clock turns raw timestamps into per-frame timing snapshots.
// It plays the role of the host framework's timer: frame counter, frame delta
// and averaged FPS, computed from times the caller supplies.
package clock

import (
	"time"

	"github.com/vovakirdan/tui-timestep/internal/core"
)

// fpsSamples is how many recent frame deltas the FPS average covers.
const fpsSamples = 200

// Clock tracks frame timing. The zero value is not usable; use New.
type Clock struct {
	start   time.Time
	last    time.Time
	ticks   uint64
	samples []time.Duration
	next    int
	sum     time.Duration
}

// New creates a clock that has not seen any frame yet.
func New() *Clock {
	return &Clock{samples: make([]time.Duration, 0, fpsSamples)}
}

// Tick records a frame presented at now and returns its FrameContext.
// The first tick has a zero delta. A timestamp earlier than the previous one
// is treated as a zero delta.
func (c *Clock) Tick(now time.Time) core.FrameContext {
	var delta time.Duration
	if c.ticks == 0 {
		c.start = now
	} else {
		delta = max(now.Sub(c.last), 0)
		c.record(delta)
	}
	c.last = now
	c.ticks++

	return core.FrameContext{
		Ticks:   c.ticks,
		Delta:   delta,
		Elapsed: now.Sub(c.start),
		FPS:     c.FPS(),
	}
}

// Advance is Tick for callers that know the delta rather than a timestamp.
func (c *Clock) Advance(delta time.Duration) core.FrameContext {
	if c.ticks == 0 {
		return c.Tick(time.Time{})
	}
	return c.Tick(c.last.Add(delta))
}

func (c *Clock) record(d time.Duration) {
	if len(c.samples) < fpsSamples {
		c.samples = append(c.samples, d)
		c.sum += d
		return
	}
	c.sum -= c.samples[c.next]
	c.samples[c.next] = d
	c.sum += d
	c.next = (c.next + 1) % fpsSamples
}

// FPS returns the average frame rate over the recent frames, or 0 before two
// frames have been seen.
func (c *Clock) FPS() float64 {
	if len(c.samples) == 0 || c.sum <= 0 {
		return 0
	}
	mean := c.sum.Seconds() / float64(len(c.samples))
	return 1.0 / mean
}

// Ticks returns how many frames have been recorded.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Reset forgets all recorded frames.
func (c *Clock) Reset() {
	c.ticks = 0
	c.samples = c.samples[:0]
	c.next = 0
	c.sum = 0
}
