package rs

import (
	"fmt"
	"strings"
	"sync"
)

type memLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (m *memLogger) Debugf(string, ...any)         {}
func (m *memLogger) Debugw(string, map[string]any) {}
func (m *memLogger) Errorf(string, ...any)         {}

func (m *memLogger) Infof(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func (m *memLogger) Warnf(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, fmt.Sprintf(format, args...))
}

func (m *memLogger) warned(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.warns {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// tensor samples f over the grid spanned by axes, first axis slowest.
func tensor(axes [][]float64, f func(p []float64) any) []any {
	var out []any
	p := make([]float64, len(axes))
	var walk func(d int)
	walk = func(d int) {
		if d == len(axes) {
			out = append(out, f(p))
			return
		}
		for _, x := range axes[d] {
			p[d] = x
			walk(d + 1)
		}
	}
	walk(0)
	return out
}

func toAny(xs []float64) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

var chillerAxes = [][]float64{
	{0.001, 0.002},
	{278, 283},
	{0.001, 0.002},
	{293, 303},
	{1, 2},
}

func chillerCapacity(p []float64) float64 {
	return 1e5*p[0] + 500*(p[1]-278) - 200*(p[3]-293) + 1000*p[4]
}

func chillerPower(p []float64) float64 {
	return 2e4*p[2] + 300*(p[3]-293) + 500*p[4]
}

func numeric(f func([]float64) float64) func([]float64) any {
	return func(p []float64) any { return f(p) }
}

// chillerDoc returns a JSON-shaped RS0001 document without standby map or
// optional heat tables.
func chillerDoc() map[string]any {
	heatFlow := tensor(chillerAxes, numeric(func(p []float64) float64 {
		return chillerCapacity(p) + chillerPower(p)
	}))
	return map[string]any{
		"metadata": map[string]any{
			"schema_version": "2.0.0",
			"id":             "chiller-1",
			"data_version":   float64(3),
		},
		"description": map[string]any{
			"product_information": map[string]any{
				"manufacturer": "Acme",
				"model_number": "CH-100",
				"refrigerant":  "R-134a",
			},
		},
		"performance": map[string]any{
			"maximum_power":                   float64(12000),
			"cycling_degradation_coefficient": 0.25,
			"compressor_speed_control_type":   "DISCRETE",
			"performance_map_cooling": map[string]any{
				"grid_variables": map[string]any{
					"evaporator_liquid_volumetric_flow_rate": toAny(chillerAxes[0]),
					"evaporator_liquid_leaving_temperature":  toAny(chillerAxes[1]),
					"condenser_liquid_volumetric_flow_rate":  toAny(chillerAxes[2]),
					"condenser_liquid_entering_temperature":  toAny(chillerAxes[3]),
					"compressor_sequence_number":             []any{float64(1), float64(2)},
				},
				"lookup_variables": map[string]any{
					"net_refrigerating_capacity":     tensor(chillerAxes, numeric(chillerCapacity)),
					"input_power":                    tensor(chillerAxes, numeric(chillerPower)),
					"net_condenser_liquid_heat_flow": heatFlow,
				},
			},
		},
	}
}

var fanAxes = [][]float64{
	{0, 1, 2},
	{0, 100},
}

func fanSpeed(p []float64) float64 { return 1000 + 500*p[0] + 2*p[1] }

func fanShaftPower(p []float64) float64 { return 10*p[0] + 0.1*p[1] }

func fanDoc() map[string]any {
	states := tensor(fanAxes, func(p []float64) any {
		if p[0] == 0 && p[1] == 100 {
			return "STALL"
		}
		return "NORMAL"
	})
	return map[string]any{
		"metadata": map[string]any{"schema_version": "1.0.0"},
		"description": map[string]any{
			"product_information": map[string]any{
				"manufacturer":        "Acme",
				"model_number":        "F-20",
				"impeller_type":       "CENTRIFUGAL_BACKWARD_CURVED",
				"number_of_impellers": float64(2),
			},
		},
		"performance": map[string]any{
			"nominal_standard_air_volumetric_flow_rate": 1.5,
			"is_enclosed":                               true,
			"performance_map": map[string]any{
				"grid_variables": map[string]any{
					"standard_air_volumetric_flow_rate": toAny(fanAxes[0]),
					"static_pressure_difference":        toAny(fanAxes[1]),
				},
				"lookup_variables": map[string]any{
					"impeller_rotational_speed": tensor(fanAxes, numeric(fanSpeed)),
					"shaft_power":               tensor(fanAxes, numeric(fanShaftPower)),
					"operation_state":           states,
				},
			},
		},
	}
}
