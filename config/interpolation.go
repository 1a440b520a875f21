package config

import (
	"errors"

	"github.com/kilianp07/perfmap/core/grid"
	"github.com/kilianp07/perfmap/core/perfmap"
)

// InterpolationConfig holds the defaults applied to every performance map.
type InterpolationConfig struct {
	// Method is the query method used when a caller names none.
	Method string `json:"method"`
	// Extrapolation is the off-grid policy: linear, constant or error.
	Extrapolation string `json:"extrapolation"`
}

func (c *InterpolationConfig) SetDefaults() {
	if c.Method == "" {
		c.Method = grid.Linear.String()
	}
	if c.Extrapolation == "" {
		c.Extrapolation = grid.ExtrapolateLinear.String()
	}
}

func (c InterpolationConfig) Validate() error {
	_, errM := grid.ParseInterpolationMethod(c.Method)
	_, errE := grid.ParseExtrapolationMethod(c.Extrapolation)
	return errors.Join(errM, errE)
}

// DefaultMethod returns the parsed Method.
func (c InterpolationConfig) DefaultMethod() (grid.InterpolationMethod, error) {
	return grid.ParseInterpolationMethod(c.Method)
}

// MapOptions returns the performance map options carrying the configured
// extrapolation policy.
func (c InterpolationConfig) MapOptions() ([]perfmap.Option, error) {
	e, err := grid.ParseExtrapolationMethod(c.Extrapolation)
	if err != nil {
		return nil, err
	}
	return []perfmap.Option{perfmap.WithEngineOptions(grid.WithExtrapolation(e))}, nil
}
