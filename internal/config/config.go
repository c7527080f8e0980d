// Package config provides YAML-based configuration loading for board presets
// and animation timing.
package config

// DotsConfig contains all configuration for the dot-popping game.
type DotsConfig struct {
	Presets   []PresetConfig  `yaml:"presets"`
	Animation AnimationConfig `yaml:"animation"`
}

// PresetConfig describes one playable board.
type PresetConfig struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
	Palette []string `yaml:"palette"` // Color names; repeat a name to weight it
}

// AnimationConfig defines how selections are animated, in simulation ticks.
type AnimationConfig struct {
	PopTicks        int    `yaml:"pop_ticks"`          // Flash-out time of removed tokens
	FallTicksPerRow int    `yaml:"fall_ticks_per_row"` // Fall time per row dropped
	SpawnTicks      int    `yaml:"spawn_ticks"`        // Drop time of a new token
	SpawnOffsetRows int    `yaml:"spawn_offset_rows"`  // Rows above its cell a new token starts from
	Easing          string `yaml:"easing"`             // Easing function name, see games/dots
}

// Preset returns the preset with the given ID.
func (c DotsConfig) Preset(id string) (PresetConfig, bool) {
	for _, p := range c.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return PresetConfig{}, false
}

// PresetIDs returns preset IDs in file order.
func (c DotsConfig) PresetIDs() []string {
	ids := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		ids[i] = p.ID
	}
	return ids
}
