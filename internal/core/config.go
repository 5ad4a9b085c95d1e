package core

import (
	"time"

	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

// RuntimeConfig contains configuration passed to demos at initialization.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Presentation frames per second requested from the host (default 60)
	Seed      int64 // RNG seed for jittered frame schedules
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// FrameContext is the immutable timing snapshot of one rendered frame.
// The host builds it once per frame and hands it to the demo, so demos never
// query timers themselves.
type FrameContext struct {
	Ticks   uint64        // Frames presented so far, including this one
	Delta   time.Duration // Time since the previous frame (zero on the first)
	Elapsed time.Duration // Time since the first frame
	FPS     float64       // Average frames per second over recent frames
}

// RenderHint is passed to a demo's render callback.
type RenderHint struct {
	Frame FrameContext
	Alpha float64 // Interpolation fraction reported by the last update
}

// UpdateResult is returned by a demo after handling one frame.
type UpdateResult struct {
	Report timestep.Report
	// PresentDelay asks the host to hold the next frame back by at least this
	// long after presenting the current one.
	PresentDelay time.Duration
}

// DemoStats summarizes a demo's progress since its last reset.
type DemoStats struct {
	Frames   uint64  // Frames handled
	Steps    int     // Simulation steps taken
	Position float64 // Current simulated position
	Paused   bool    // Whether the demo is paused
}
