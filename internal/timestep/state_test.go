package timestep

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestNewState(t *testing.T) {
	s := NewState(60)

	if s.Position != 0 || s.Previous != 0 {
		t.Errorf("new state should start at 0, got pos=%v prev=%v", s.Position, s.Previous)
	}
	if s.Velocity() != 60 {
		t.Errorf("Velocity() = %v, expected 60", s.Velocity())
	}
}

func TestStepStaysOnTrack(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewState(150)

	for i := 0; i < 10000; i++ {
		dt := rng.Float64() * 3.0 // up to several laps per step
		s.Step(dt)
		if s.Position < 0 || s.Position >= TrackLength {
			t.Fatalf("step %d: position %v outside [0, %v)", i, s.Position, TrackLength)
		}
	}
}

func TestStepWrapsAroundTrack(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		velocity float64
		dt       float64
	}{
		{"just past the end", 790, 60, 0.5},
		{"exactly one lap", 100, 60, 800.0 / 60.0},
		{"several laps", 0, 60, 50},
		{"no wrap", 10, 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.velocity)
			s.Position = tt.start

			distance := s.Step(tt.dt)
			expected := math.Mod(tt.start+distance, TrackLength)

			if math.Abs(s.Position-expected) > 1e-9 {
				t.Errorf("Position = %v, expected %v", s.Position, expected)
			}
			if s.Previous != tt.start {
				t.Errorf("Previous = %v, expected %v", s.Previous, tt.start)
			}
		})
	}
}

func TestStepRecordsDistance(t *testing.T) {
	s := NewState(60)
	distance := s.Step(0.25)

	if distance != 15 {
		t.Errorf("distance = %v, expected 15", distance)
	}
	if s.Position != 15 {
		t.Errorf("Position = %v, expected 15", s.Position)
	}
}

func TestStepDuration(t *testing.T) {
	s := NewState(150)
	for i := 0; i < 3; i++ {
		s.StepDuration(10 * time.Millisecond)
	}

	if s.Position != 4.5 {
		t.Errorf("Position = %v, expected 4.5", s.Position)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	s := NewState(150)
	s.Position = 10
	s.Step(0.01)

	if got := s.Interpolate(0); got != s.Previous {
		t.Errorf("Interpolate(0) = %v, expected previous %v", got, s.Previous)
	}
	if got := s.Interpolate(1); got != s.Position {
		t.Errorf("Interpolate(1) = %v, expected position %v", got, s.Position)
	}

	mid := s.Interpolate(0.5)
	if math.Abs(mid-10.75) > 1e-9 {
		t.Errorf("Interpolate(0.5) = %v, expected 10.75", mid)
	}
}

func TestInterpolateAcrossWrap(t *testing.T) {
	s := NewState(150)
	s.Position = 799
	s.Step(0.01) // 799 + 1.5 wraps to 0.5

	if math.Abs(s.Position-0.5) > 1e-9 {
		t.Fatalf("Position = %v, expected 0.5", s.Position)
	}

	// Previous is mirrored to TrackLength-Previous when a wrap happened.
	if got := s.Interpolate(0); math.Abs(got-1) > 1e-9 {
		t.Errorf("Interpolate(0) = %v, expected 1", got)
	}
	if got := s.Interpolate(1); got != s.Position {
		t.Errorf("Interpolate(1) = %v, expected %v", got, s.Position)
	}
}

func TestInterpolateDoesNotMutate(t *testing.T) {
	s := NewState(60)
	s.Step(0.5)
	pos, prev := s.Position, s.Previous

	s.Interpolate(0.3)

	if s.Position != pos || s.Previous != prev {
		t.Error("Interpolate should not change the state")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{799.5, 799.5},
		{800, 0},
		{1650, 50},
		{-10, 790},
	}

	for _, tt := range tests {
		if got := Wrap(tt.in); got != tt.want {
			t.Errorf("Wrap(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestInterval(t *testing.T) {
	if got := Interval(100); got != 10*time.Millisecond {
		t.Errorf("Interval(100) = %v, expected 10ms", got)
	}
	if got := Interval(0); got != 0 {
		t.Errorf("Interval(0) = %v, expected 0", got)
	}
	if got := Interval(-5); got != 0 {
		t.Errorf("Interval(-5) = %v, expected 0", got)
	}
}
