package config

import "fmt"

// PacePreset represents a named presentation frame rate.
type PacePreset string

const (
	PaceSlow     PacePreset = "slow"
	PaceNormal   PacePreset = "normal"
	PaceFast     PacePreset = "fast"
	PaceUncapped PacePreset = "uncapped"
)

// FrameRateForPreset returns the frame rate for a pace preset.
func FrameRateForPreset(preset PacePreset) (int, error) {
	switch preset {
	case PaceSlow:
		return 12, nil
	case PaceNormal:
		return 60, nil
	case PaceFast:
		return 144, nil
	case PaceUncapped:
		return 1000, nil
	default:
		return 0, fmt.Errorf("config: unknown pace %q (want slow, normal, fast or uncapped)", preset)
	}
}

// ApplyPace overrides the presentation frame rate with a preset.
// An empty preset leaves the config untouched.
func ApplyPace(cfg *DemoConfig, preset PacePreset) error {
	if preset == "" {
		return nil
	}
	rate, err := FrameRateForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Presentation.FrameRate = rate
	return nil
}
