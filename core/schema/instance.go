package schema

import (
	"fmt"

	"github.com/kilianp07/perfmap/core/logger"
)

// Instance is an in-memory record of one representation specification. It
// is populated once by Initialize and read-only afterwards.
type Instance interface {
	// RSID returns the representation specification identifier, e.g. "RS0001".
	RSID() string
	// SchemaVersion returns the schema version recorded in the document metadata.
	SchemaVersion() string
	// Initialize parses the instance fields out of doc. Missing optional
	// fields are reported on log and do not fail initialization.
	Initialize(doc Document, log logger.Logger) error
}

// Factory builds one concrete Instance type from a parsed document.
type Factory interface {
	RSID() string
	CreateInstance(doc Document, log logger.Logger) (Instance, error)
}

type constructorFactory struct {
	id   string
	ctor func() Instance
}

// NewFactory returns a Factory that allocates an Instance with ctor and
// initializes it from the document.
func NewFactory(id string, ctor func() Instance) Factory {
	return constructorFactory{id: id, ctor: ctor}
}

func (f constructorFactory) RSID() string { return f.id }

func (f constructorFactory) CreateInstance(doc Document, log logger.Logger) (Instance, error) {
	inst := f.ctor()
	if err := inst.Initialize(doc, logger.OrNop(log)); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", f.id, err)
	}
	return inst, nil
}
