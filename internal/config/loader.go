package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads a demo configuration.
// Search order: customPath -> ~/.timestep/configs/<id>.yaml -> ./configs/<id>.yaml
// -> embedded default -> hard-coded default.
// Only a broken customPath is an error; other sources are skipped when
// missing or unparsable. The returned config is validated.
func Load(demoID, customPath string) (DemoConfig, error) {
	if customPath != "" {
		cfg := Default(demoID)
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := demoID + ".yaml"
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, ok := tryFile(demoID, path); ok {
			return cfg, nil
		}
	}

	if data := GetDefaultYAML(demoID); data != nil {
		cfg := Default(demoID)
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}
	return Default(demoID), nil
}

// tryFile reads an optional config file layered over the demo defaults.
func tryFile(demoID, path string) (DemoConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DemoConfig{}, false
	}
	cfg := Default(demoID)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DemoConfig{}, false
	}
	if cfg.Validate() != nil {
		return DemoConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".timestep", "configs", filename)
}

// Document is the full default configuration written by the genconf tool.
type Document struct {
	Window WindowConfig          `yaml:"window"`
	Demos  map[string]DemoConfig `yaml:"demos"`
}

// WindowConfig describes the terminal surface the demos draw on.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultDocument returns the default configuration document.
func DefaultDocument() Document {
	doc := Document{
		Window: WindowConfig{Title: "timestep", Width: 80, Height: 24},
		Demos:  make(map[string]DemoConfig, len(DemoIDs)),
	}
	for _, id := range DemoIDs {
		doc.Demos[id] = Default(id)
	}
	return doc
}

// GenerateDocument marshals the default configuration document to YAML.
func GenerateDocument() ([]byte, error) {
	data, err := yaml.Marshal(DefaultDocument())
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal default document: %w", err)
	}
	return data, nil
}

// WriteDocument writes the default configuration document to path.
func WriteDocument(path string) error {
	data, err := GenerateDocument()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}
