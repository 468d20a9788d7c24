package engine

import (
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultGridSize      = 20
	DefaultInitialLength = 1
	DefaultTickMillis    = 75
)

// GameConfig describes a game preset loaded from JSON or YAML.
type GameConfig struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Width         int    `json:"width" yaml:"width"`
	Height        int    `json:"height" yaml:"height"`
	InitialLength int    `json:"initial_length,omitempty" yaml:"initial_length,omitempty"`
	TickMillis    int    `json:"tick_ms,omitempty" yaml:"tick_ms,omitempty"`
}

// DefaultGameConfig returns the classic preset used when nothing else is
// available.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:          "classic",
		Description:   "Classic 20x20 field at 75ms per tick",
		Width:         DefaultGridSize,
		Height:        DefaultGridSize,
		InitialLength: DefaultInitialLength,
		TickMillis:    DefaultTickMillis,
	}
}

// Normalize fills optional fields left at zero.
func (c *GameConfig) Normalize() {
	if c.InitialLength == 0 {
		c.InitialLength = DefaultInitialLength
	}
	if c.TickMillis == 0 {
		c.TickMillis = DefaultTickMillis
	}
}

// Grid returns the bounds described by the config.
func (c *GameConfig) Grid() Grid {
	return Grid{Width: c.Width, Height: c.Height}
}

// TickPeriod returns the time between two ticks.
func (c *GameConfig) TickPeriod() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Clone returns an independent copy.
func (c *GameConfig) Clone() *GameConfig {
	clone := *c
	return &clone
}

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return errors.New("config validation: config is nil")
	}
	if config.Name == "" {
		return errors.New("config validation: name is required")
	}

	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return errors.Errorf("config validation: width must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, config.Width)
	}
	if config.Height < MinGridSize || config.Height > MaxGridSize {
		return errors.Errorf("config validation: height must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, config.Height)
	}

	if config.InitialLength < MinInitialLength || config.InitialLength > MaxInitialLength {
		return errors.Errorf("config validation: initial_length must be between %d and %d, got %d",
			MinInitialLength, MaxInitialLength, config.InitialLength)
	}

	if config.TickMillis < MinTickMillis || config.TickMillis > MaxTickMillis {
		return errors.Errorf("config validation: tick_ms must be between %d and %d, got %d",
			MinTickMillis, MaxTickMillis, config.TickMillis)
	}

	return nil
}
