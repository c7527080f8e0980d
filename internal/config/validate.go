package config

import (
	"fmt"

	"github.com/vovakirdan/dotpop/internal/board"
)

// MaxBoardSide bounds preset dimensions so a board fits a terminal.
const MaxBoardSide = 40

// Easings lists the easing names accepted in the animation section.
var Easings = []string{"linear", "outQuad", "outCubic", "outBounce", "inOutSine"}

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks presets and animation settings.
func (c DotsConfig) Validate() error {
	if len(c.Presets) == 0 {
		return ValidationError{Code: "NO_PRESETS", Message: "at least one preset is required"}
	}

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if p.ID == "" {
			return ValidationError{Code: "MISSING_ID", Message: fmt.Sprintf("preset #%d has no id", i+1)}
		}
		if seen[p.ID] {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("preset %q defined twice", p.ID)}
		}
		seen[p.ID] = true

		if err := p.Validate(); err != nil {
			return err
		}
	}

	if !knownEasing(c.Animation.Easing) {
		return ValidationError{
			Code:    "INVALID_EASING",
			Message: fmt.Sprintf("unknown easing %q (want one of %v)", c.Animation.Easing, Easings),
		}
	}

	return nil
}

// Validate checks a single preset.
func (p PresetConfig) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxBoardSide || p.Height > MaxBoardSide {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("preset %q: size %dx%d outside 1..%d", p.ID, p.Width, p.Height, MaxBoardSide),
		}
	}
	if len(p.Palette) == 0 {
		return ValidationError{Code: "EMPTY_PALETTE", Message: fmt.Sprintf("preset %q: palette is empty", p.ID)}
	}
	if _, err := board.ParsePalette(p.Palette); err != nil {
		return ValidationError{Code: "INVALID_COLOR", Message: fmt.Sprintf("preset %q: %v", p.ID, err)}
	}
	return nil
}

// BoardPalette converts the preset palette names.
func (p PresetConfig) BoardPalette() (board.Palette, error) {
	return board.ParsePalette(p.Palette)
}

func knownEasing(name string) bool {
	for _, e := range Easings {
		if e == name {
			return true
		}
	}
	return false
}
