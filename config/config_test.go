package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/perfmap/core/factory"
	"github.com/kilianp07/perfmap/core/grid"
	"github.com/kilianp07/perfmap/core/schema"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `logging:
  level: debug
  component: chiller-tool
interpolation:
  method: cubic
  extrapolation: constant
registry:
  duplicate_policy: replace
metrics:
  sinks:
    - type: prometheus
    - type: nop
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "chiller-tool", cfg.Logging.Component)
	m, err := cfg.Interpolation.DefaultMethod()
	require.NoError(t, err)
	assert.Equal(t, grid.Cubic, m)
	p, err := cfg.Registry.Policy()
	require.NoError(t, err)
	assert.Equal(t, schema.ReplaceDuplicates, p)
	require.Len(t, cfg.Metrics.Sinks, 2)
	assert.Equal(t, "prometheus", cfg.Metrics.Sinks[0].Type)
}

func TestLoadJSONWithEnvOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{"logging": {"level": "warn"}}`)
	t.Setenv("PERFMAP_LOGGING__LEVEL", "error")
	t.Setenv("PERFMAP_INTERPOLATION__EXTRAPOLATION", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "perfmap", cfg.Logging.Component)
	assert.Equal(t, "error", cfg.Interpolation.Extrapolation)
	assert.Equal(t, "reject", cfg.Registry.DuplicatePolicy)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("PERFMAP_REGISTRY__DUPLICATE_POLICY", "replace")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "replace", cfg.Registry.DuplicatePolicy)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "x = 1"))
	assert.ErrorContains(t, err, "unsupported config format: .toml")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", `interpolation:
  method: quintic
registry:
  duplicate_policy: ignore
`))
	require.Error(t, err)
	assert.ErrorContains(t, err, `interpolation: unknown interpolation method "quintic"`)
	assert.ErrorContains(t, err, `registry: unknown duplicate policy "ignore"`)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "linear", cfg.Interpolation.Method)
	assert.Equal(t, "linear", cfg.Interpolation.Extrapolation)
	assert.Empty(t, cfg.Metrics.Sinks)

	opts, err := cfg.Interpolation.MapOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestValidate_SinkType(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}, {Conf: map[string]any{"x": 1}}}
	assert.EqualError(t, cfg.Validate(), "metrics: sink 1: type is required")
}

func TestLoggingConfig_Validate(t *testing.T) {
	c := LoggingConfig{Level: "verbose"}
	assert.EqualError(t, c.Validate(), "unknown level verbose")
	c.Level = "warn"
	assert.NoError(t, c.Validate())
}
