package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig defines the diagnostics logger settings.
type LoggingConfig struct {
	// Level is a zerolog level name: debug, info, warn or error.
	Level string `json:"level"`
	// Component tags every log line.
	Component string `json:"component"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Component == "" {
		c.Component = "perfmap"
	}
}

// Validate checks the level name.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown level %s", c.Level)
	}
	return nil
}
