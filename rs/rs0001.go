package rs

import (
	"github.com/kilianp07/perfmap/core/grid"
	"github.com/kilianp07/perfmap/core/logger"
	"github.com/kilianp07/perfmap/core/perfmap"
	"github.com/kilianp07/perfmap/core/schema"
)

// RS0001ID identifies the liquid-cooled chiller specification.
const RS0001ID = "RS0001"

// RS0001 describes a liquid-cooled chiller.
type RS0001 struct {
	Metadata    Metadata
	Description RS0001Description
	Performance RS0001Performance

	mapOpts []perfmap.Option
}

// NewRS0001 returns an empty chiller whose maps are built with opts.
func NewRS0001(opts ...perfmap.Option) *RS0001 {
	return &RS0001{mapOpts: opts}
}

// RS0001Description holds the descriptive part of a chiller document.
type RS0001Description struct {
	ProductInformation ChillerProductInformation
}

// ChillerProductInformation identifies the chiller product.
type ChillerProductInformation struct {
	Manufacturer          string
	ModelNumber           string
	NominalVoltage        float64
	NominalFrequency      float64
	CompressorType        string
	Refrigerant           string
	HotGasBypassInstalled bool
	LiquidDataSource      string
}

// RS0001Performance holds the chiller ratings. PerformanceMapStandby is nil
// when the document has no standby map.
type RS0001Performance struct {
	EvaporatorFoulingFactor       float64
	CondenserFoulingFactor        float64
	CompressorSpeedControlType    string
	MaximumPower                  float64
	CyclingDegradationCoefficient float64
	PerformanceMapCooling         *CoolingMap
	PerformanceMapStandby         *StandbyMap
}

// RSID returns RS0001ID.
func (r *RS0001) RSID() string { return RS0001ID }

// SchemaVersion returns the schema version declared in the metadata.
func (r *RS0001) SchemaVersion() string { return r.Metadata.SchemaVersion }

// Initialize reads the chiller from doc and finalizes its performance maps.
func (r *RS0001) Initialize(doc schema.Document, log logger.Logger) error {
	rd := schema.NewReader(doc, log)
	rd.Require("metadata", "performance")
	r.Metadata.read(rd.Object("metadata"))

	pi := rd.Object("description").Object("product_information")
	info := &r.Description.ProductInformation
	pi.String("manufacturer", &info.Manufacturer)
	pi.String("model_number", &info.ModelNumber)
	pi.Float("nominal_voltage", &info.NominalVoltage)
	pi.Float("nominal_frequency", &info.NominalFrequency)
	pi.String("compressor_type", &info.CompressorType)
	pi.String("refrigerant", &info.Refrigerant)
	pi.Bool("hot_gas_bypass_installed", &info.HotGasBypassInstalled)
	pi.String("liquid_data_source", &info.LiquidDataSource)

	perf := rd.Object("performance")
	perf.Require("performance_map_cooling")
	p := &r.Performance
	perf.Float("evaporator_fouling_factor", &p.EvaporatorFoulingFactor)
	perf.Float("condenser_fouling_factor", &p.CondenserFoulingFactor)
	perf.String("compressor_speed_control_type", &p.CompressorSpeedControlType)
	perf.Float("maximum_power", &p.MaximumPower)
	perf.Float("cycling_degradation_coefficient", &p.CyclingDegradationCoefficient)

	cooling := &CoolingMap{}
	cooling.read(perf.Object("performance_map_cooling"))
	var standby *StandbyMap
	if s := perf.Object("performance_map_standby"); s.Present() {
		standby = &StandbyMap{}
		standby.read(s)
	}
	if err := rd.Err(); err != nil {
		return err
	}

	cooling.Map = newMap(RS0001ID+".performance_map_cooling", log, r.mapOpts)
	if err := perfmap.Populate(cooling.Map, &cooling.GridVariables, &cooling.LookupVariables); err != nil {
		return err
	}
	p.PerformanceMapCooling = cooling
	if standby != nil {
		standby.Map = newMap(RS0001ID+".performance_map_standby", log, r.mapOpts)
		if err := perfmap.Populate(standby.Map, &standby.GridVariables, &standby.LookupVariables); err != nil {
			return err
		}
		p.PerformanceMapStandby = standby
	}
	return nil
}

// PerformanceMaps returns the finalized maps keyed by schema field name.
func (r *RS0001) PerformanceMaps() map[string]*perfmap.Map {
	maps := make(map[string]*perfmap.Map, 2)
	if c := r.Performance.PerformanceMapCooling; c != nil {
		maps["performance_map_cooling"] = c.Map
	}
	if s := r.Performance.PerformanceMapStandby; s != nil {
		maps["performance_map_standby"] = s.Map
	}
	return maps
}

// CoolingMap is the chiller cooling performance map.
type CoolingMap struct {
	GridVariables   CoolingGridVariables
	LookupVariables CoolingLookupVariables
	*perfmap.Map
}

// CoolingGridVariables are the cooling map axes.
type CoolingGridVariables struct {
	EvaporatorLiquidVolumetricFlowRate []float64
	EvaporatorLiquidLeavingTemperature []float64
	CondenserLiquidVolumetricFlowRate  []float64
	CondenserLiquidEnteringTemperature []float64
	CompressorSequenceNumber           []int
}

// PopulatePerformanceMap adds the cooling axes to m in schema order.
func (g *CoolingGridVariables) PopulatePerformanceMap(m *perfmap.Map) error {
	axes := []struct {
		name   string
		values []float64
	}{
		{"evaporator_liquid_volumetric_flow_rate", g.EvaporatorLiquidVolumetricFlowRate},
		{"evaporator_liquid_leaving_temperature", g.EvaporatorLiquidLeavingTemperature},
		{"condenser_liquid_volumetric_flow_rate", g.CondenserLiquidVolumetricFlowRate},
		{"condenser_liquid_entering_temperature", g.CondenserLiquidEnteringTemperature},
	}
	for _, a := range axes {
		if err := perfmap.AddGridAxis(m, a.name, a.values); err != nil {
			return err
		}
	}
	return perfmap.AddGridAxis(m, "compressor_sequence_number", g.CompressorSequenceNumber)
}

// CoolingLookupVariables are the cooling map tables. Absent heat tables are
// zero-filled.
type CoolingLookupVariables struct {
	NetRefrigeratingCapacity   []float64
	InputPower                 []float64
	NetCondenserLiquidHeatFlow []float64
	OilCoolerHeat              []float64
	AuxiliaryHeat              []float64
}

// PopulatePerformanceMap adds the cooling tables to m in schema order.
func (l *CoolingLookupVariables) PopulatePerformanceMap(m *perfmap.Map) error {
	tables := []struct {
		name   string
		values []float64
	}{
		{"net_refrigerating_capacity", l.NetRefrigeratingCapacity},
		{"input_power", l.InputPower},
		{"net_condenser_liquid_heat_flow", l.NetCondenserLiquidHeatFlow},
		{"oil_cooler_heat", l.OilCoolerHeat},
		{"auxiliary_heat", l.AuxiliaryHeat},
	}
	for _, t := range tables {
		if err := perfmap.AddDataTable(m, t.name, t.values); err != nil {
			return err
		}
	}
	return nil
}

func (c *CoolingMap) read(rd *schema.Reader) {
	rd.Require("grid_variables", "lookup_variables")
	g := rd.Object("grid_variables")
	g.Require(
		"evaporator_liquid_volumetric_flow_rate",
		"evaporator_liquid_leaving_temperature",
		"condenser_liquid_volumetric_flow_rate",
		"condenser_liquid_entering_temperature",
		"compressor_sequence_number",
	)
	gv := &c.GridVariables
	g.Floats("evaporator_liquid_volumetric_flow_rate", &gv.EvaporatorLiquidVolumetricFlowRate)
	g.Floats("evaporator_liquid_leaving_temperature", &gv.EvaporatorLiquidLeavingTemperature)
	g.Floats("condenser_liquid_volumetric_flow_rate", &gv.CondenserLiquidVolumetricFlowRate)
	g.Floats("condenser_liquid_entering_temperature", &gv.CondenserLiquidEnteringTemperature)
	g.Ints("compressor_sequence_number", &gv.CompressorSequenceNumber)

	l := rd.Object("lookup_variables")
	l.Require("net_refrigerating_capacity", "input_power", "net_condenser_liquid_heat_flow")
	lv := &c.LookupVariables
	l.Floats("net_refrigerating_capacity", &lv.NetRefrigeratingCapacity)
	l.Floats("input_power", &lv.InputPower)
	l.Floats("net_condenser_liquid_heat_flow", &lv.NetCondenserLiquidHeatFlow)
	l.Floats("oil_cooler_heat", &lv.OilCoolerHeat)
	l.Floats("auxiliary_heat", &lv.AuxiliaryHeat)
	zeroFill(gv, lv)
}

// zeroFill sizes absent optional heat tables to the grid with zeros.
func zeroFill(gv *CoolingGridVariables, lv *CoolingLookupVariables) {
	size := len(gv.EvaporatorLiquidVolumetricFlowRate) * len(gv.EvaporatorLiquidLeavingTemperature) *
		len(gv.CondenserLiquidVolumetricFlowRate) * len(gv.CondenserLiquidEnteringTemperature) *
		len(gv.CompressorSequenceNumber)
	if lv.OilCoolerHeat == nil {
		lv.OilCoolerHeat = make([]float64, size)
	}
	if lv.AuxiliaryHeat == nil {
		lv.AuxiliaryHeat = make([]float64, size)
	}
}

// CoolingLookup holds the cooling lookup variables at one operating point.
type CoolingLookup struct {
	NetRefrigeratingCapacity   float64
	InputPower                 float64
	NetCondenserLiquidHeatFlow float64
	OilCoolerHeat              float64
	AuxiliaryHeat              float64
}

// CalculatePerformance interpolates every cooling lookup variable at the
// given operating point.
func (c *CoolingMap) CalculatePerformance(
	evaporatorLiquidVolumetricFlowRate float64,
	evaporatorLiquidLeavingTemperature float64,
	condenserLiquidVolumetricFlowRate float64,
	condenserLiquidEnteringTemperature float64,
	compressorSequenceNumber float64,
	methods ...grid.InterpolationMethod,
) (CoolingLookup, error) {
	v, err := c.CalculateAll([]float64{
		evaporatorLiquidVolumetricFlowRate,
		evaporatorLiquidLeavingTemperature,
		condenserLiquidVolumetricFlowRate,
		condenserLiquidEnteringTemperature,
		compressorSequenceNumber,
	}, methods...)
	if err != nil {
		return CoolingLookup{}, err
	}
	return CoolingLookup{
		NetRefrigeratingCapacity:   v[0],
		InputPower:                 v[1],
		NetCondenserLiquidHeatFlow: v[2],
		OilCoolerHeat:              v[3],
		AuxiliaryHeat:              v[4],
	}, nil
}

// StandbyMap is the chiller standby power map.
type StandbyMap struct {
	GridVariables   StandbyGridVariables
	LookupVariables StandbyLookupVariables
	*perfmap.Map
}

// StandbyGridVariables are the standby map axes.
type StandbyGridVariables struct {
	EnvironmentDryBulbTemperature []float64
}

// PopulatePerformanceMap adds the standby axis to m.
func (g *StandbyGridVariables) PopulatePerformanceMap(m *perfmap.Map) error {
	return perfmap.AddGridAxis(m, "environment_dry_bulb_temperature", g.EnvironmentDryBulbTemperature)
}

// StandbyLookupVariables are the standby map tables.
type StandbyLookupVariables struct {
	InputPower []float64
}

// PopulatePerformanceMap adds the standby table to m.
func (l *StandbyLookupVariables) PopulatePerformanceMap(m *perfmap.Map) error {
	return perfmap.AddDataTable(m, "input_power", l.InputPower)
}

func (s *StandbyMap) read(rd *schema.Reader) {
	rd.Require("grid_variables", "lookup_variables")
	g := rd.Object("grid_variables")
	g.Require("environment_dry_bulb_temperature")
	g.Floats("environment_dry_bulb_temperature", &s.GridVariables.EnvironmentDryBulbTemperature)
	l := rd.Object("lookup_variables")
	l.Require("input_power")
	l.Floats("input_power", &s.LookupVariables.InputPower)
}

// CalculatePerformance returns the standby input power at the given
// environment dry-bulb temperature.
func (s *StandbyMap) CalculatePerformance(environmentDryBulbTemperature float64, methods ...grid.InterpolationMethod) (float64, error) {
	return s.Calculate([]float64{environmentDryBulbTemperature}, 0, methods...)
}
