// Package config provides YAML-based configuration loading for the board
// variants and the cosmetic effects layer.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Variant names shipped with the embedded defaults.
const (
	VariantClassic = "classic"
	VariantDense   = "dense"
)

// ErrUnknownVariant is returned when a variant name is not configured.
var ErrUnknownVariant = errors.New("config: unknown variant")

// BoaConfig contains every configurable parameter of the game.
type BoaConfig struct {
	Variants map[string]VariantConfig `yaml:"variants"`
	Effects  EffectsConfig            `yaml:"effects"`
}

// VariantConfig describes one board: size, pace and starting position.
type VariantConfig struct {
	Title          string        `yaml:"title"`
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	StepInterval   time.Duration `yaml:"step_interval"`
	QueueCapacity  int           `yaml:"queue_capacity"` // 0 = unbounded
	StartBody      []Point       `yaml:"start_body"`     // tail first
	StartDirection string        `yaml:"start_direction"`
}

// Point is a board cell as written in YAML.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// EffectsConfig holds cosmetic parameters for the renderer.
type EffectsConfig struct {
	HueSpeed       float64       `yaml:"hue_speed"`        // degrees per second
	SegmentHueStep float64       `yaml:"segment_hue_step"` // hue offset between neighbouring segments
	BurstParticles int           `yaml:"burst_particles"`  // particles spawned on a crash
	BurstLifetime  time.Duration `yaml:"burst_lifetime"`
}

// Variant returns the named variant.
func (c BoaConfig) Variant(name string) (VariantConfig, error) {
	v, ok := c.Variants[name]
	if !ok {
		return VariantConfig{}, fmt.Errorf("%w %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// VariantNames returns the configured variant names, sorted.
func (c BoaConfig) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the ranges the loader cannot express in YAML.
// Board geometry (adjacency of the start body) is checked by the game.
func (c BoaConfig) Validate() error {
	if len(c.Variants) == 0 {
		return errors.New("config: no variants defined")
	}
	for _, name := range c.VariantNames() {
		if err := c.Variants[name].Validate(); err != nil {
			return fmt.Errorf("config: variant %q: %w", name, err)
		}
	}
	if c.Effects.HueSpeed < 0 {
		return fmt.Errorf("config: negative hue_speed %v", c.Effects.HueSpeed)
	}
	if c.Effects.BurstParticles < 0 {
		return fmt.Errorf("config: negative burst_particles %d", c.Effects.BurstParticles)
	}
	return nil
}

// Validate checks a single variant.
func (v VariantConfig) Validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", v.Width, v.Height)
	case v.StepInterval <= 0:
		return fmt.Errorf("step_interval must be positive, got %s", v.StepInterval)
	case v.QueueCapacity < 0:
		return fmt.Errorf("queue_capacity must not be negative, got %d", v.QueueCapacity)
	case len(v.StartBody) == 0:
		return errors.New("start_body must list at least one cell")
	case len(v.StartBody) > v.Width*v.Height:
		return fmt.Errorf("start_body has %d cells, grid only %d", len(v.StartBody), v.Width*v.Height)
	}
	switch v.StartDirection {
	case "left", "right", "up", "down":
	default:
		return fmt.Errorf("start_direction must be left, right, up or down, got %q", v.StartDirection)
	}
	return nil
}
