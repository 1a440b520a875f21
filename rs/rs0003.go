package rs

import (
	"fmt"
	"math"
	"strings"

	"github.com/kilianp07/perfmap/core/grid"
	"github.com/kilianp07/perfmap/core/logger"
	"github.com/kilianp07/perfmap/core/perfmap"
	"github.com/kilianp07/perfmap/core/schema"
)

// RS0003ID identifies the fan assembly specification.
const RS0003ID = "RS0003"

// OperationState is the fan operating regime at a grid point.
type OperationState int

// Operation states in document order.
const (
	OperationNormal OperationState = iota
	OperationStall
)

// String returns the document spelling of s.
func (s OperationState) String() string {
	switch s {
	case OperationNormal:
		return "NORMAL"
	case OperationStall:
		return "STALL"
	default:
		return fmt.Sprintf("OperationState(%d)", int(s))
	}
}

// ParseOperationState parses the document spelling of an operation state.
func ParseOperationState(s string) (OperationState, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL":
		return OperationNormal, nil
	case "STALL":
		return OperationStall, nil
	default:
		return 0, fmt.Errorf("unknown operation state %q", s)
	}
}

// RS0003 describes a fan assembly.
type RS0003 struct {
	Metadata    Metadata
	Description RS0003Description
	Performance RS0003Performance

	mapOpts []perfmap.Option
}

// NewRS0003 returns an empty fan assembly whose maps are built with opts.
func NewRS0003(opts ...perfmap.Option) *RS0003 {
	return &RS0003{mapOpts: opts}
}

// RS0003Description holds the descriptive part of a fan document.
type RS0003Description struct {
	ProductInformation FanProductInformation
}

// FanProductInformation identifies the fan product.
type FanProductInformation struct {
	Manufacturer      string `json:"manufacturer"`
	ModelNumber       string `json:"model_number"`
	ImpellerType      string `json:"impeller_type"`
	NumberOfImpellers int    `json:"number_of_impellers"`
}

// RS0003Performance holds the fan ratings and its performance map.
type RS0003Performance struct {
	NominalStandardAirVolumetricFlowRate float64
	IsEnclosed                           bool
	PerformanceMap                       *FanMap
}

// RSID returns RS0003ID.
func (r *RS0003) RSID() string { return RS0003ID }

// SchemaVersion returns the schema version declared in the metadata.
func (r *RS0003) SchemaVersion() string { return r.Metadata.SchemaVersion }

// Initialize reads the fan assembly from doc and finalizes its performance map.
func (r *RS0003) Initialize(doc schema.Document, log logger.Logger) error {
	rd := schema.NewReader(doc, log)
	rd.Require("metadata", "performance")
	r.Metadata.read(rd.Object("metadata"))
	rd.Object("description").Decode("product_information", &r.Description.ProductInformation)

	perf := rd.Object("performance")
	perf.Require("performance_map")
	p := &r.Performance
	perf.Float("nominal_standard_air_volumetric_flow_rate", &p.NominalStandardAirVolumetricFlowRate)
	perf.Bool("is_enclosed", &p.IsEnclosed)

	fan := &FanMap{}
	fan.read(perf.Object("performance_map"))
	if err := rd.Err(); err != nil {
		return err
	}

	fan.Map = newMap(RS0003ID+".performance_map", log, r.mapOpts)
	if err := perfmap.Populate(fan.Map, &fan.GridVariables, &fan.LookupVariables); err != nil {
		return err
	}
	p.PerformanceMap = fan
	return nil
}

// PerformanceMaps returns the finalized maps keyed by schema field name.
func (r *RS0003) PerformanceMaps() map[string]*perfmap.Map {
	if r.Performance.PerformanceMap == nil {
		return map[string]*perfmap.Map{}
	}
	return map[string]*perfmap.Map{"performance_map": r.Performance.PerformanceMap.Map}
}

// FanMap is the fan assembly performance map.
type FanMap struct {
	GridVariables   FanGridVariables
	LookupVariables FanLookupVariables
	*perfmap.Map
}

// FanGridVariables are the fan performance map axes.
type FanGridVariables struct {
	StandardAirVolumetricFlowRate []float64
	StaticPressureDifference      []float64
}

// PopulatePerformanceMap adds the fan axes to m in schema order.
func (g *FanGridVariables) PopulatePerformanceMap(m *perfmap.Map) error {
	if err := perfmap.AddGridAxis(m, "standard_air_volumetric_flow_rate", g.StandardAirVolumetricFlowRate); err != nil {
		return err
	}
	return perfmap.AddGridAxis(m, "static_pressure_difference", g.StaticPressureDifference)
}

// FanLookupVariables are the fan performance map tables.
type FanLookupVariables struct {
	ImpellerRotationalSpeed []float64
	ShaftPower              []float64
	OperationState          []OperationState
}

// PopulatePerformanceMap adds the fan tables to m in schema order.
func (l *FanLookupVariables) PopulatePerformanceMap(m *perfmap.Map) error {
	if err := perfmap.AddDataTable(m, "impeller_rotational_speed", l.ImpellerRotationalSpeed); err != nil {
		return err
	}
	if err := perfmap.AddDataTable(m, "shaft_power", l.ShaftPower); err != nil {
		return err
	}
	return perfmap.AddDataTable(m, "operation_state", l.OperationState)
}

func (f *FanMap) read(rd *schema.Reader) {
	rd.Require("grid_variables", "lookup_variables")
	g := rd.Object("grid_variables")
	g.Require("standard_air_volumetric_flow_rate", "static_pressure_difference")
	g.Floats("standard_air_volumetric_flow_rate", &f.GridVariables.StandardAirVolumetricFlowRate)
	g.Floats("static_pressure_difference", &f.GridVariables.StaticPressureDifference)

	l := rd.Object("lookup_variables")
	l.Require("impeller_rotational_speed", "shaft_power", "operation_state")
	l.Floats("impeller_rotational_speed", &f.LookupVariables.ImpellerRotationalSpeed)
	l.Floats("shaft_power", &f.LookupVariables.ShaftPower)
	var states []string
	if l.Strings("operation_state", &states) {
		parsed := make([]OperationState, len(states))
		for i, s := range states {
			st, err := ParseOperationState(s)
			if err != nil {
				l.Fail("operation_state", fmt.Errorf("index %d: %w", i, err))
				return
			}
			parsed[i] = st
		}
		f.LookupVariables.OperationState = parsed
	}
}

// FanLookup holds the fan lookup variables at one operating point.
type FanLookup struct {
	ImpellerRotationalSpeed float64
	ShaftPower              float64
	OperationState          OperationState
}

// CalculatePerformance interpolates the fan lookup variables. The operation
// state is interpolated like any table, rounded to the nearest state and
// clamped to the known states when extrapolated off the grid.
func (f *FanMap) CalculatePerformance(
	standardAirVolumetricFlowRate float64,
	staticPressureDifference float64,
	methods ...grid.InterpolationMethod,
) (FanLookup, error) {
	v, err := f.CalculateAll([]float64{standardAirVolumetricFlowRate, staticPressureDifference}, methods...)
	if err != nil {
		return FanLookup{}, err
	}
	return FanLookup{
		ImpellerRotationalSpeed: v[0],
		ShaftPower:              v[1],
		OperationState:          nearestState(v[2]),
	}, nil
}

func nearestState(v float64) OperationState {
	s := OperationState(math.Round(v))
	if s < OperationNormal {
		return OperationNormal
	}
	if s > OperationStall {
		return OperationStall
	}
	return s
}
