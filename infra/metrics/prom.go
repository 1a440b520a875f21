package metrics

import (
	coremetrics "github.com/kilianp07/perfmap/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records registry and query events in Prometheus metrics.
type PromSink struct {
	instances *prometheus.CounterVec
	create    *prometheus.HistogramVec
	queries   *prometheus.HistogramVec
}

// NewPromSink registers metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// that are already registered are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	instances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "perfmap_instances_total",
		Help: "Schema instance creation attempts by representation specification and outcome",
	}, []string{"rs_id", "outcome"})
	create := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "perfmap_instance_create_seconds",
		Help:    "Time spent creating and initializing schema instances",
		Buckets: prometheus.DefBuckets,
	}, []string{"rs_id"})
	queries := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "perfmap_query_seconds",
		Help:    "Interpolation query latency by performance map and method",
		Buckets: []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1},
	}, []string{"map", "method", "failed"})

	var err error
	if instances, err = register(reg, instances); err != nil {
		return nil, err
	}
	if create, err = register(reg, create); err != nil {
		return nil, err
	}
	if queries, err = register(reg, queries); err != nil {
		return nil, err
	}
	return &PromSink{instances: instances, create: create, queries: queries}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordInstance counts the creation attempt and observes its duration when
// an instance was built.
func (s *PromSink) RecordInstance(ev coremetrics.InstanceEvent) error {
	s.instances.WithLabelValues(ev.RSID, string(ev.Outcome)).Inc()
	if ev.Outcome == coremetrics.OutcomeCreated {
		s.create.WithLabelValues(ev.RSID).Observe(ev.Duration.Seconds())
	}
	return nil
}

// RecordQuery observes the query latency.
func (s *PromSink) RecordQuery(ev coremetrics.QueryEvent) error {
	failed := "false"
	if ev.Failed {
		failed = "true"
	}
	s.queries.WithLabelValues(ev.Map, ev.Method, failed).Observe(ev.Duration.Seconds())
	return nil
}
