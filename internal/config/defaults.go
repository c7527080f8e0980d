package config

import (
	_ "embed"
)

//go:embed defaults/dots.yaml
var defaultDotsYAML []byte

// DefaultDotsConfig returns the built-in configuration.
// Used when the embedded YAML cannot be parsed.
func DefaultDotsConfig() DotsConfig {
	return DotsConfig{
		Presets: []PresetConfig{
			{ID: "classic", Title: "Classic 8x8", Width: 8, Height: 8, Palette: []string{"red", "green", "blue", "yellow"}},
			{ID: "small", Title: "Small 5x5", Width: 5, Height: 5, Palette: []string{"red", "green", "blue"}},
			{ID: "wide", Title: "Wide 16x10", Width: 16, Height: 10, Palette: []string{"red", "green", "blue", "yellow", "purple"}},
			{ID: "mono", Title: "Mono 6x6", Width: 6, Height: 6, Palette: []string{"orange"}},
		},
		Animation: AnimationConfig{
			PopTicks:        8,
			FallTicksPerRow: 4,
			SpawnTicks:      18,
			SpawnOffsetRows: 10,
			Easing:          "outQuad",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDotsYAML
}
