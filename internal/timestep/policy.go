package timestep

import (
	"fmt"
	"time"
)

// Kind names a stepping policy.
type Kind string

const (
	KindVariable     Kind = "variable"
	KindFixed        Kind = "fixed"
	KindSemiFixed    Kind = "semifixed"
	KindInterpolated Kind = "interpolated"
	KindVSync        Kind = "vsync"
)

// Kinds lists every known policy kind.
func Kinds() []Kind {
	return []Kind{KindVariable, KindFixed, KindSemiFixed, KindInterpolated, KindVSync}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("timestep: unknown policy %q", s)
}

// Report describes what a policy did with one frame's elapsed time.
type Report struct {
	Steps    int             // Simulation steps actually taken
	Sizes    []time.Duration // Size of each step taken, in order
	Drained  int             // Fixed intervals consumed without simulating
	Distance float64         // Total distance travelled this frame
	Alpha    float64         // Fraction of the pending interval elapsed (interpolating policy only)
}

// Policy turns the elapsed time of a rendered frame into simulation steps.
type Policy interface {
	Kind() Kind
	// Advance consumes delta and steps st zero or more times.
	Advance(st *State, delta time.Duration) Report
	// Reset clears any accumulated time.
	Reset()
}

// Variable steps once per frame with the raw frame delta.
type Variable struct{}

// NewVariable creates a variable-delta policy.
func NewVariable() *Variable {
	return &Variable{}
}

func (p *Variable) Kind() Kind { return KindVariable }

func (p *Variable) Reset() {}

func (p *Variable) Advance(st *State, delta time.Duration) Report {
	return Report{
		Steps:    1,
		Sizes:    []time.Duration{delta},
		Distance: st.StepDuration(delta),
	}
}

// Fixed accumulates frame time and steps in constant intervals.
// Zero, one or several steps may happen per frame.
type Fixed struct {
	interval time.Duration
	maxSteps int
	acc      time.Duration
}

// NewFixed creates a fixed-interval policy running at hz updates per second.
func NewFixed(hz int) *Fixed {
	return &Fixed{interval: Interval(hz)}
}

// NewFixedLimited creates a fixed-interval policy that simulates at most
// maxSteps intervals per frame. Any further due intervals are drained from the
// accumulator without being simulated. maxSteps <= 0 means no limit.
func NewFixedLimited(hz, maxSteps int) *Fixed {
	return &Fixed{interval: Interval(hz), maxSteps: maxSteps}
}

func (p *Fixed) Kind() Kind { return KindFixed }

// Interval returns the fixed step size.
func (p *Fixed) Interval() time.Duration { return p.interval }

// Accumulated returns the leftover time not yet consumed by a step.
func (p *Fixed) Accumulated() time.Duration { return p.acc }

func (p *Fixed) Reset() { p.acc = 0 }

func (p *Fixed) Advance(st *State, delta time.Duration) Report {
	var r Report
	if p.interval <= 0 {
		return r
	}
	p.acc += delta
	for p.acc >= p.interval {
		p.acc -= p.interval
		if p.maxSteps > 0 && r.Steps >= p.maxSteps {
			r.Drained++
			continue
		}
		r.Distance += st.StepDuration(p.interval)
		r.Sizes = append(r.Sizes, p.interval)
		r.Steps++
	}
	return r
}

// Alpha returns the fraction of the current interval already elapsed.
func (p *Fixed) Alpha() float64 {
	if p.interval <= 0 {
		return 0
	}
	return float64(p.acc) / float64(p.interval)
}

// SemiFixed consumes the whole frame time in steps no larger than a cap.
type SemiFixed struct {
	cap time.Duration
}

// NewSemiFixed creates a semi-fixed policy whose steps never exceed 1/hz.
func NewSemiFixed(hz int) *SemiFixed {
	return &SemiFixed{cap: Interval(hz)}
}

func (p *SemiFixed) Kind() Kind { return KindSemiFixed }

// Cap returns the upper bound on a single step.
func (p *SemiFixed) Cap() time.Duration { return p.cap }

func (p *SemiFixed) Reset() {}

func (p *SemiFixed) Advance(st *State, delta time.Duration) Report {
	var r Report
	if p.cap <= 0 {
		return r
	}
	for remaining := delta; remaining > 0; {
		dt := min(remaining, p.cap)
		r.Distance += st.StepDuration(dt)
		r.Sizes = append(r.Sizes, dt)
		r.Steps++
		remaining -= dt
	}
	return r
}

// Interpolated is a Fixed policy that also reports the interpolation alpha
// for rendering between the last two simulated positions.
type Interpolated struct {
	Fixed
}

// NewInterpolated creates an interpolating fixed-interval policy.
func NewInterpolated(hz int) *Interpolated {
	return &Interpolated{Fixed: Fixed{interval: Interval(hz)}}
}

func (p *Interpolated) Kind() Kind { return KindInterpolated }

func (p *Interpolated) Advance(st *State, delta time.Duration) Report {
	r := p.Fixed.Advance(st, delta)
	r.Alpha = p.Alpha()
	return r
}

// VSync never steps; the host's frame pacing is the implicit step.
type VSync struct{}

// NewVSync creates a vsync-locked policy.
func NewVSync() *VSync {
	return &VSync{}
}

func (p *VSync) Kind() Kind { return KindVSync }

func (p *VSync) Reset() {}

func (p *VSync) Advance(_ *State, _ time.Duration) Report {
	return Report{}
}

// Options configures New.
type Options struct {
	Rate     int // Fixed/interpolated updates per second
	CapRate  int // Semi-fixed: 1/CapRate is the largest step
	MaxSteps int // Fixed/interpolated: simulated steps per frame limit, 0 = unlimited
}

// New builds the policy of the given kind.
func New(kind Kind, opts Options) (Policy, error) {
	switch kind {
	case KindVariable:
		return NewVariable(), nil
	case KindFixed:
		if opts.Rate <= 0 {
			return nil, fmt.Errorf("timestep: fixed policy needs a positive rate, got %d", opts.Rate)
		}
		return NewFixedLimited(opts.Rate, opts.MaxSteps), nil
	case KindSemiFixed:
		if opts.CapRate <= 0 {
			return nil, fmt.Errorf("timestep: semi-fixed policy needs a positive cap rate, got %d", opts.CapRate)
		}
		return NewSemiFixed(opts.CapRate), nil
	case KindInterpolated:
		if opts.Rate <= 0 {
			return nil, fmt.Errorf("timestep: interpolated policy needs a positive rate, got %d", opts.Rate)
		}
		p := NewInterpolated(opts.Rate)
		p.maxSteps = opts.MaxSteps
		return p, nil
	case KindVSync:
		return NewVSync(), nil
	default:
		return nil, fmt.Errorf("timestep: unknown policy %q", kind)
	}
}
