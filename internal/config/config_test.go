package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	for _, id := range DemoIDs {
		t.Run(id, func(t *testing.T) {
			data := GetDefaultYAML(id)
			if data == nil {
				t.Fatalf("no embedded default for %q", id)
			}

			var cfg DemoConfig
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				t.Fatalf("embedded default does not parse: %v", err)
			}
			if cfg != Default(id) {
				t.Errorf("embedded default = %+v, hard-coded = %+v", cfg, Default(id))
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("embedded default is invalid: %v", err)
			}
		})
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	cfg, err := Load("finaltouch", "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Simulation.Velocity != 150 || cfg.Stepping.Rate != 100 {
		t.Errorf("unexpected finaltouch config: %+v", cfg)
	}

	kind, err := cfg.Kind()
	if err != nil || kind != timestep.KindInterpolated {
		t.Errorf("Kind() = %v, %v; expected interpolated", kind, err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
simulation:
  velocity: 90
stepping:
  policy: fixed
  rate: 30
presentation:
  present_delay: 250ms
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("fixed", path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Simulation.Velocity != 90 || cfg.Stepping.Rate != 30 {
		t.Errorf("custom values not applied: %+v", cfg)
	}
	if cfg.Presentation.PresentDelay != 250*time.Millisecond {
		t.Errorf("PresentDelay = %v, expected 250ms", cfg.Presentation.PresentDelay)
	}
	// Unset keys keep the demo defaults
	if cfg.Presentation.FrameRate != 60 {
		t.Errorf("FrameRate = %d, expected default 60", cfg.Presentation.FrameRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load("fixed", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("stepping: [not, a, map"), 0o600)
	if _, err := Load("fixed", broken); err == nil {
		t.Error("expected error for unparsable custom config")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("stepping:\n  policy: warp\n"), 0o600)
	_, err := Load("fixed", invalid)
	if err == nil || !strings.Contains(err.Error(), "unknown policy") {
		t.Errorf("expected unknown policy error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DemoConfig)
		wantErr bool
	}{
		{"default is valid", func(*DemoConfig) {}, false},
		{"negative velocity", func(c *DemoConfig) { c.Simulation.Velocity = -1 }, true},
		{"zero frame rate", func(c *DemoConfig) { c.Presentation.FrameRate = 0 }, true},
		{"negative delay", func(c *DemoConfig) { c.Presentation.PresentDelay = -time.Second }, true},
		{"fixed without rate", func(c *DemoConfig) { c.Stepping.Rate = 0 }, true},
		{"negative step limit", func(c *DemoConfig) { c.Stepping.MaxStepsPerFrame = -2 }, true},
		{"unknown policy", func(c *DemoConfig) { c.Stepping.Policy = "teleport" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default("fixed")
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewPolicy(t *testing.T) {
	for _, id := range DemoIDs {
		cfg := Default(id)
		p, err := cfg.NewPolicy()
		if err != nil {
			t.Errorf("%s: NewPolicy() failed: %v", id, err)
			continue
		}
		if string(p.Kind()) != cfg.Stepping.Policy {
			t.Errorf("%s: policy kind = %s, expected %s", id, p.Kind(), cfg.Stepping.Policy)
		}
	}
}

func TestApplyPace(t *testing.T) {
	cfg := Default("variable")

	if err := ApplyPace(&cfg, PaceFast); err != nil {
		t.Fatalf("ApplyPace() failed: %v", err)
	}
	if cfg.Presentation.FrameRate != 144 {
		t.Errorf("FrameRate = %d, expected 144", cfg.Presentation.FrameRate)
	}

	if err := ApplyPace(&cfg, ""); err != nil || cfg.Presentation.FrameRate != 144 {
		t.Error("empty pace should leave config untouched")
	}

	if err := ApplyPace(&cfg, "ludicrous"); err == nil {
		t.Error("expected error for unknown pace")
	}
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "conf.yaml")
	if err := WriteDocument(path); err != nil {
		t.Fatalf("WriteDocument() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("generated document does not parse: %v", err)
	}
	if len(doc.Demos) != len(DemoIDs) {
		t.Errorf("document has %d demos, expected %d", len(doc.Demos), len(DemoIDs))
	}
	if doc.Demos["freephysics"].Presentation.PresentDelay != 2*time.Second {
		t.Errorf("freephysics present_delay = %v, expected 2s", doc.Demos["freephysics"].Presentation.PresentDelay)
	}
}
