// Package timestep implements a one-dimensional kinematic simulation and the
// stepping policies that decide how elapsed frame time is turned into
// simulation steps.
// It contains no external dependencies so the arithmetic can be tested in
// isolation from any host loop.
package timestep

import (
	"math"
	"time"
)

// TrackLength is the length of the circular track positions wrap around.
const TrackLength = 800.0

// State is the simulated body: a position on the track moving at a constant
// velocity.
type State struct {
	Position float64 // Current coordinate, always in [0, TrackLength)
	Previous float64 // Position before the last completed step
	velocity float64 // Units per second, fixed at construction
}

// NewState creates a state at position zero moving at the given velocity.
func NewState(velocity float64) *State {
	return &State{velocity: velocity}
}

// Velocity returns the constant speed in units per second.
func (s *State) Velocity() float64 {
	return s.velocity
}

// Step advances the position by velocity*dt seconds and wraps it onto the
// track. dt must not be negative.
func (s *State) Step(dt float64) float64 {
	distance := s.velocity * dt
	s.Previous = s.Position
	s.Position = Wrap(s.Position + distance)
	return distance
}

// StepDuration is Step with the elapsed time given as a duration.
func (s *State) StepDuration(d time.Duration) float64 {
	return s.Step(d.Seconds())
}

// Interpolate blends Previous and Position by alpha in [0, 1].
//
// When the last step wrapped (Position < Previous) the previous coordinate is
// mirrored to TrackLength-Previous so the blended point keeps moving forward
// instead of sweeping back across the track. Only a single wrap per interval
// is accounted for.
func (s *State) Interpolate(alpha float64) float64 {
	previous := s.Previous
	if s.Position < s.Previous {
		previous = TrackLength - s.Previous
	}
	return s.Position*alpha + previous*(1.0-alpha)
}

// Reset moves the body back to the start of the track.
func (s *State) Reset() {
	s.Position = 0
	s.Previous = 0
}

// Wrap normalizes a non-negative coordinate into [0, TrackLength).
func Wrap(x float64) float64 {
	x = math.Mod(x, TrackLength)
	if x < 0 {
		x += TrackLength
	}
	// Mod of a value just below a multiple of the track can round up to
	// TrackLength itself after the correction above.
	if x >= TrackLength {
		x = 0
	}
	return x
}

// Interval converts an update rate in Hz to the duration of one step.
// Non-positive rates yield zero.
func Interval(hz int) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(hz)
}
