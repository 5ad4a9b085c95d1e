package config

import (
	"embed"
	"time"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DemoIDs lists the demos that ship an embedded default configuration.
var DemoIDs = []string{"variable", "fixed", "semifixed", "freephysics", "finaltouch", "vsync"}

// Default returns the hard-coded configuration for a demo.
// Unknown IDs get the variable delta time configuration.
func Default(demoID string) DemoConfig {
	cfg := DemoConfig{
		Simulation: SimulationConfig{Velocity: 60},
		Stepping:   SteppingConfig{Policy: "variable"},
		Presentation: PresentationConfig{
			FrameRate: 60,
		},
	}

	switch demoID {
	case "fixed":
		cfg.Stepping = SteppingConfig{Policy: "fixed", Rate: 24}
	case "semifixed":
		cfg.Stepping = SteppingConfig{Policy: "semifixed", DtCapRate: 60}
	case "freephysics":
		cfg.Stepping = SteppingConfig{Policy: "fixed", Rate: 5, MaxStepsPerFrame: 1}
		cfg.Presentation.PresentDelay = 2 * time.Second
	case "finaltouch":
		cfg.Simulation.Velocity = 150
		cfg.Stepping = SteppingConfig{Policy: "interpolated", Rate: 100}
	case "vsync":
		cfg.Simulation.Velocity = 0
		cfg.Stepping = SteppingConfig{Policy: "vsync"}
	}
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a demo, or nil.
func GetDefaultYAML(demoID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + demoID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
