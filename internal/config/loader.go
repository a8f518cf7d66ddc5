package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBoa loads the game configuration.
// Search order: customPath -> ~/.boa/configs/boa.yaml -> ./configs/boa.yaml -> embedded default
func LoadBoa(customPath string) (BoaConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BoaConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BoaConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("boa.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "boa.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBoaYAML)
	if err != nil {
		return DefaultBoaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
// Fields left out of a variant that also exists in the defaults keep their
// default values.
func Parse(data []byte) (BoaConfig, error) {
	cfg := BoaConfig{Effects: DefaultBoaConfig().Effects}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BoaConfig{}, err
	}
	fillDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return BoaConfig{}, err
	}
	return cfg, nil
}

// fillDefaults completes partially specified variants from the built-ins.
func fillDefaults(cfg *BoaConfig) {
	defaults := DefaultBoaConfig()
	if len(cfg.Variants) == 0 {
		cfg.Variants = defaults.Variants
		return
	}
	for name, v := range cfg.Variants {
		d, ok := defaults.Variants[name]
		if !ok {
			continue
		}
		if v.Title == "" {
			v.Title = d.Title
		}
		if v.Width == 0 {
			v.Width = d.Width
		}
		if v.Height == 0 {
			v.Height = d.Height
		}
		if v.StepInterval == 0 {
			v.StepInterval = d.StepInterval
		}
		if len(v.StartBody) == 0 {
			v.StartBody = d.StartBody
		}
		if v.StartDirection == "" {
			v.StartDirection = d.StartDirection
		}
		cfg.Variants[name] = v
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boa", "configs", filename)
}
