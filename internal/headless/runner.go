// Package headless drives demos without a terminal, using a synthetic frame
// schedule. It produces per-frame traces for plotting and deterministic tests.
package headless

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-timestep/internal/clock"
	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

// Schedule describes the synthetic frame times fed to a demo.
type Schedule struct {
	Frames    int           // Number of frames to run
	FrameTime time.Duration // Nominal frame duration
	Jitter    float64       // Relative jitter in [0, 1): each frame lasts FrameTime*(1±Jitter)
	Seed      int64         // RNG seed for jitter
}

// Validate checks the schedule.
func (s Schedule) Validate() error {
	if s.Frames <= 0 {
		return errors.New("headless: frames must be positive")
	}
	if s.FrameTime <= 0 {
		return errors.New("headless: frame time must be positive")
	}
	if s.Jitter < 0 || s.Jitter >= 1 {
		return errors.New("headless: jitter must be in [0, 1)")
	}
	return nil
}

// Deltas returns the frame deltas of the schedule. The first frame always
// has a zero delta, like a real host's first frame.
func (s Schedule) Deltas() []time.Duration {
	rng := rand.New(rand.NewSource(s.Seed))
	out := make([]time.Duration, s.Frames)
	for i := 1; i < s.Frames; i++ {
		d := s.FrameTime
		if s.Jitter > 0 {
			f := 1 + s.Jitter*(2*rng.Float64()-1)
			d = time.Duration(float64(s.FrameTime) * f)
		}
		out[i] = d
	}
	return out
}

// Sample is one frame of a trace.
type Sample struct {
	Frame    core.FrameContext
	Steps    int
	Position float64 // Simulated position after the update
	Rendered float64 // Position the renderer would draw
	Alpha    float64
}

// Summary aggregates a run.
type Summary struct {
	DemoID        string
	Frames        int
	Steps         int
	FinalPosition float64
	AvgFPS        float64
	Duration      time.Duration // Simulated wall time covered by the frames
}

// Trace is the result of a headless run.
type Trace struct {
	Samples []Sample
	Summary Summary
}

// Positions returns the simulated position of every frame.
func (t Trace) Positions() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Position
	}
	return out
}

// RenderedPositions returns the rendered position of every frame.
func (t Trace) RenderedPositions() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Rendered
	}
	return out
}

// renderer is implemented by demos whose render position differs from the
// simulated one.
type renderer interface {
	Blended(alpha float64) float64
}

// Run resets the demo and drives it through the schedule. Present delays are
// reported in the trace but never slept. A nil logger disables diagnostics.
func Run(d registry.Demo, cfg core.RuntimeConfig, s Schedule, logger *log.Logger) (Trace, error) {
	if err := s.Validate(); err != nil {
		return Trace{}, err
	}

	d.Reset(cfg)
	c := clock.New()
	deltas := s.Deltas()
	trace := Trace{Samples: make([]Sample, 0, len(deltas))}

	blender, _ := d.(renderer)

	var last core.FrameContext
	for _, delta := range deltas {
		frame := c.Advance(delta)
		res := d.OnUpdate(frame)
		stats := d.Stats()

		rendered := stats.Position
		if blender != nil {
			rendered = blender.Blended(res.Report.Alpha)
		}

		if logger != nil {
			logger.Debug("[update]",
				"tick", frame.Ticks,
				"steps", res.Report.Steps,
				"distance", res.Report.Distance,
				"delta", frame.Delta,
			)
			logger.Debug("[draw]",
				"tick", frame.Ticks,
				"fps", frame.FPS,
				"pos", stats.Position,
				"rendered", rendered,
			)
		}

		trace.Samples = append(trace.Samples, Sample{
			Frame:    frame,
			Steps:    res.Report.Steps,
			Position: stats.Position,
			Rendered: rendered,
			Alpha:    res.Report.Alpha,
		})
		last = frame
	}

	stats := d.Stats()
	trace.Summary = Summary{
		DemoID:        d.ID(),
		Frames:        len(deltas),
		Steps:         stats.Steps,
		FinalPosition: stats.Position,
		AvgFPS:        last.FPS,
		Duration:      last.Elapsed,
	}

	if logger != nil {
		logger.Info("run finished",
			"demo", d.ID(),
			"frames", trace.Summary.Frames,
			"steps", trace.Summary.Steps,
			"position", trace.Summary.FinalPosition,
		)
	}
	return trace, nil
}
