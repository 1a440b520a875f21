package perfmap

// GridVariables describes the independent variables of a performance map.
// Implementations add one axis per variable in declaration order.
type GridVariables interface {
	PopulatePerformanceMap(m *Map) error
}

// LookupVariables describes the dependent variables of a performance map.
// Implementations add one table per variable in declaration order.
type LookupVariables interface {
	PopulatePerformanceMap(m *Map) error
}

// Populate fills m from its grid and lookup variables and finalizes it.
func Populate(m *Map, grid GridVariables, lookup LookupVariables) error {
	if grid != nil {
		if err := grid.PopulatePerformanceMap(m); err != nil {
			return err
		}
	}
	if lookup != nil {
		if err := lookup.PopulatePerformanceMap(m); err != nil {
			return err
		}
	}
	return m.Finalize()
}

// AddGridAxis adds a named axis to m and reports its size.
func AddGridAxis[T Number](m *Map, name string, values []T) error {
	if err := m.addAxis(name, widen(values)); err != nil {
		return err
	}
	m.log.Infof("Adding grid axis %s with size %d", name, len(values))
	return nil
}

// AddDataTable adds a named table to m and reports its size.
func AddDataTable[T Number](m *Map, name string, values []T) error {
	if err := m.addTable(name, widen(values)); err != nil {
		return err
	}
	m.log.Infof("Adding grid table %s with size %d", name, len(values))
	return nil
}

// Provider is implemented by schema instances owning performance maps,
// keyed by the map's field name in the schema.
type Provider interface {
	PerformanceMaps() map[string]*Map
}
