// Package config provides YAML-based demo configuration loading and
// pace presets for the timestep demos.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

// DemoConfig contains all configuration for one demo.
type DemoConfig struct {
	Simulation   SimulationConfig   `yaml:"simulation"`
	Stepping     SteppingConfig     `yaml:"stepping"`
	Presentation PresentationConfig `yaml:"presentation"`
}

// SimulationConfig defines the simulated body.
type SimulationConfig struct {
	Velocity float64 `yaml:"velocity"` // Track units per second
}

// SteppingConfig selects and tunes the stepping policy.
type SteppingConfig struct {
	Policy           string `yaml:"policy"`              // variable, fixed, semifixed, interpolated, vsync
	Rate             int    `yaml:"rate"`                // Fixed updates per second
	DtCapRate        int    `yaml:"dt_cap_rate"`         // Semi-fixed: largest step is 1/dt_cap_rate
	MaxStepsPerFrame int    `yaml:"max_steps_per_frame"` // Fixed and interpolated: 0 = simulate every due interval
}

// PresentationConfig defines how the host presents frames.
type PresentationConfig struct {
	FrameRate    int           `yaml:"frame_rate"`    // Frames per second the host aims for
	PresentDelay time.Duration `yaml:"present_delay"` // Extra hold after each frame, e.g. "2s"
}

// Kind returns the parsed stepping policy.
func (c DemoConfig) Kind() (timestep.Kind, error) {
	return timestep.ParseKind(c.Stepping.Policy)
}

// PolicyOptions converts the stepping section to policy options.
func (c DemoConfig) PolicyOptions() timestep.Options {
	return timestep.Options{
		Rate:     c.Stepping.Rate,
		CapRate:  c.Stepping.DtCapRate,
		MaxSteps: c.Stepping.MaxStepsPerFrame,
	}
}

// NewPolicy builds the configured stepping policy.
func (c DemoConfig) NewPolicy() (timestep.Policy, error) {
	kind, err := c.Kind()
	if err != nil {
		return nil, err
	}
	return timestep.New(kind, c.PolicyOptions())
}

// Validate checks the configuration for values no policy can run with.
func (c DemoConfig) Validate() error {
	kind, err := c.Kind()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Simulation.Velocity < 0 {
		return fmt.Errorf("config: velocity must not be negative, got %v", c.Simulation.Velocity)
	}
	if c.Presentation.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.Presentation.FrameRate)
	}
	if c.Presentation.PresentDelay < 0 {
		return fmt.Errorf("config: present_delay must not be negative, got %v", c.Presentation.PresentDelay)
	}
	if c.Stepping.MaxStepsPerFrame < 0 {
		return fmt.Errorf("config: max_steps_per_frame must not be negative, got %d", c.Stepping.MaxStepsPerFrame)
	}
	if _, err := timestep.New(kind, c.PolicyOptions()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
