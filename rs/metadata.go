package rs

import (
	"github.com/kilianp07/perfmap/core/logger"
	"github.com/kilianp07/perfmap/core/perfmap"
	"github.com/kilianp07/perfmap/core/schema"
)

// Metadata is the common header of every representation specification.
type Metadata struct {
	DataModel     string
	Schema        string
	SchemaVersion string
	Description   string
	ID            string
	DataTimestamp string
	DataVersion   int
	DataSource    string
	Disclaimer    string
	Notes         string
}

func (m *Metadata) read(rd *schema.Reader) {
	rd.Require("schema_version")
	rd.String("data_model", &m.DataModel)
	rd.String("schema", &m.Schema)
	rd.String("schema_version", &m.SchemaVersion)
	rd.String("description", &m.Description)
	rd.String("id", &m.ID)
	rd.String("data_timestamp", &m.DataTimestamp)
	rd.Int("data_version", &m.DataVersion)
	rd.String("data_source", &m.DataSource)
	rd.String("disclaimer", &m.Disclaimer)
	rd.String("notes", &m.Notes)
}

func newMap(name string, log logger.Logger, opts []perfmap.Option) *perfmap.Map {
	base := []perfmap.Option{perfmap.WithName(name), perfmap.WithLogger(log)}
	return perfmap.New(append(base, opts...)...)
}
