package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/boa.yaml
var defaultBoaYAML []byte

// DefaultBoaConfig returns the built-in configuration. It mirrors the
// embedded YAML and is used when even that cannot be parsed.
func DefaultBoaConfig() BoaConfig {
	start := []Point{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}
	return BoaConfig{
		Variants: map[string]VariantConfig{
			VariantClassic: {
				Title:          "Boa",
				Width:          10,
				Height:         10,
				StepInterval:   150 * time.Millisecond,
				StartBody:      start,
				StartDirection: "left",
			},
			VariantDense: {
				Title:          "Boa (Dense)",
				Width:          15,
				Height:         10,
				StepInterval:   125 * time.Millisecond,
				StartBody:      append([]Point(nil), start...),
				StartDirection: "left",
			},
		},
		Effects: EffectsConfig{
			HueSpeed:       40,
			SegmentHueStep: 12,
			BurstParticles: 24,
			BurstLifetime:  900 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBoaYAML
}
