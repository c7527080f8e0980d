package board

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned (wrapped in a *ConfigError) when a board
// cannot be constructed from the given dimensions, palette or layout.
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// ConfigError names the construction argument that was rejected.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("board: invalid %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
