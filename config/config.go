// Package config loads the application configuration from a JSON or YAML
// file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/perfmap/core/metrics"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. PERFMAP_LOGGING__LEVEL=debug.
const EnvPrefix = "PERFMAP_"

type Config struct {
	Logging       LoggingConfig       `json:"logging"`
	Interpolation InterpolationConfig `json:"interpolation"`
	Registry      RegistryConfig      `json:"registry"`
	Metrics       metrics.Config      `json:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// Load reads path, applies environment overrides and defaults, then
// validates the result. An empty path loads environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.Interpolation.SetDefaults()
	c.Registry.SetDefaults()
}

// Validate reports every invalid section.
func (c Config) Validate() error {
	var errs []error
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if err := c.Interpolation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("interpolation: %w", err))
	}
	if err := c.Registry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("registry: %w", err))
	}
	for i, s := range c.Metrics.Sinks {
		if s.Type == "" {
			errs = append(errs, fmt.Errorf("metrics: sink %d: type is required", i))
		}
	}
	return errors.Join(errs...)
}
