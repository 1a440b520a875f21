package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/perfmap/core/factory"
	coremetrics "github.com/kilianp07/perfmap/core/metrics"
)

// RegisterBuiltins adds the infrastructure sinks to reg. The "prometheus"
// sink registers its collectors on promReg, or on the default registerer
// when promReg is nil. Setting "disabled" in its config yields a NopSink.
func RegisterBuiltins(reg *coremetrics.SinkRegistry, promReg prometheus.Registerer) error {
	return reg.Register("prometheus", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			Disabled bool `json:"disabled"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Disabled {
			return coremetrics.NopSink{}, nil
		}
		return NewPromSinkWithRegistry(promReg)
	})
}
