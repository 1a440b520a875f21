package rs

import (
	"github.com/kilianp07/perfmap/core/perfmap"
	"github.com/kilianp07/perfmap/core/schema"
)

// Builtins returns the factories for every built-in representation
// specification. opts are applied to each performance map they build.
func Builtins(opts ...perfmap.Option) []schema.Factory {
	return []schema.Factory{
		schema.NewFactory(RS0001ID, func() schema.Instance { return NewRS0001(opts...) }),
		schema.NewFactory(RS0003ID, func() schema.Instance { return NewRS0003(opts...) }),
	}
}
