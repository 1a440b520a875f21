package app

import "github.com/kilianp07/perfmap/core/perfmap"

// AxisInfo summarizes one grid axis.
type AxisInfo struct {
	Name          string  `json:"name"`
	Points        int     `json:"points"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Extrapolation string  `json:"extrapolation"`
}

// MapInfo summarizes one performance map.
type MapInfo struct {
	Name   string     `json:"name"`
	State  string     `json:"state"`
	Axes   []AxisInfo `json:"axes"`
	Tables []string   `json:"tables"`
	Error  string     `json:"error,omitempty"`
}

// Description summarizes a loaded document.
type Description struct {
	ID            string    `json:"id"`
	Path          string    `json:"path"`
	RSID          string    `json:"rs_id"`
	SchemaVersion string    `json:"schema_version"`
	Maps          []MapInfo `json:"maps"`
}

// Describe reports the identity and performance maps of l.
func Describe(l *Loaded) Description {
	d := Description{
		ID:            l.ID,
		Path:          l.Path,
		RSID:          l.Instance.RSID(),
		SchemaVersion: l.Instance.SchemaVersion(),
	}
	maps := Maps(l)
	for _, name := range MapNames(l) {
		d.Maps = append(d.Maps, describeMap(name, maps[name]))
	}
	return d
}

func describeMap(name string, m *perfmap.Map) MapInfo {
	info := MapInfo{Name: name, State: m.State().String(), Tables: m.TableNames()}
	e, err := m.Engine()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	names := m.AxisNames()
	for i := 0; i < e.NumAxes(); i++ {
		lo, hi := e.Bounds(i)
		info.Axes = append(info.Axes, AxisInfo{
			Name:          names[i],
			Points:        e.AxisLen(i),
			Min:           lo,
			Max:           hi,
			Extrapolation: e.Extrapolation(i).String(),
		})
	}
	return info
}
