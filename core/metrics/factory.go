package metrics

import "github.com/kilianp07/perfmap/core/factory"

// SinkRegistry maps sink type names to their factories.
type SinkRegistry = factory.ModuleRegistry[Sink]

// NewSinkRegistry returns a registry holding only the "nop" sink. Other
// sinks are added explicitly at startup.
func NewSinkRegistry() *SinkRegistry {
	reg := factory.NewModuleRegistry[Sink]()
	_ = reg.Register("nop", func(map[string]any) (Sink, error) { return NopSink{}, nil })
	return reg
}

// NewSink creates a Sink from the provided configuration.
func NewSink(reg *SinkRegistry, cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return reg.Create(cfgs[0])
	}
	sinks := make([]Sink, len(cfgs))
	for i, c := range cfgs {
		s, err := reg.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
