package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "dots.yaml"

// LoadDots loads game configuration.
// Search order: customPath -> ~/.dotpop/configs/dots.yaml -> ./configs/dots.yaml -> embedded default
//
// A custom path must exist, parse and validate. Files found on the search path
// are skipped silently when they are unreadable or invalid.
func LoadDots(customPath string) (DotsConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DotsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DotsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDotsYAML)
	if err != nil {
		return DefaultDotsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML, fills unset animation fields from the defaults and
// validates the result.
func Parse(data []byte) (DotsConfig, error) {
	var cfg DotsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DotsConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	cfg.Animation = cfg.Animation.withDefaults()
	if err := cfg.Validate(); err != nil {
		return DotsConfig{}, err
	}
	return cfg, nil
}

func (a AnimationConfig) withDefaults() AnimationConfig {
	def := DefaultDotsConfig().Animation
	if a.PopTicks <= 0 {
		a.PopTicks = def.PopTicks
	}
	if a.FallTicksPerRow <= 0 {
		a.FallTicksPerRow = def.FallTicksPerRow
	}
	if a.SpawnTicks <= 0 {
		a.SpawnTicks = def.SpawnTicks
	}
	if a.SpawnOffsetRows <= 0 {
		a.SpawnOffsetRows = def.SpawnOffsetRows
	}
	if a.Easing == "" {
		a.Easing = def.Easing
	}
	return a
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dotpop", "configs", filename)
}
