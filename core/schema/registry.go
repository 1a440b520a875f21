package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/perfmap/core/factory"
	"github.com/kilianp07/perfmap/core/logger"
	"github.com/kilianp07/perfmap/core/metrics"
)

// DuplicatePolicy decides what RegisterFactory does with an identifier that
// is already registered.
type DuplicatePolicy int

const (
	// RejectDuplicates keeps the existing factory and returns ErrDuplicate.
	RejectDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates overwrites the existing factory and logs a warning.
	ReplaceDuplicates
)

func (p DuplicatePolicy) String() string {
	if p == ReplaceDuplicates {
		return "replace"
	}
	return "reject"
}

// ParseDuplicatePolicy converts a configuration string into a policy. An
// empty string selects RejectDuplicates.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectDuplicates, nil
	case "replace":
		return ReplaceDuplicates, nil
	default:
		return RejectDuplicates, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// Registry maps representation specification identifiers to factories.
type Registry struct {
	factories *factory.Registry[Factory]
	log       logger.Logger
	sink      metrics.Sink
	policy    DuplicatePolicy
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger handed to factories and used for registry
// diagnostics.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) { r.log = logger.OrNop(l) }
}

// WithMetrics sets the sink receiving instance creation events.
func WithMetrics(s metrics.Sink) RegistryOption {
	return func(r *Registry) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithDuplicatePolicy sets the policy applied by RegisterFactory.
func WithDuplicatePolicy(p DuplicatePolicy) RegistryOption {
	return func(r *Registry) { r.policy = p }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: factory.NewRegistry[Factory](),
		log:       logger.Nop{},
		sink:      metrics.NopSink{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterFactory maps id to f. With RejectDuplicates an existing id is kept
// and ErrDuplicate returned; with ReplaceDuplicates the new factory wins and
// a warning is logged. The boolean reports whether f is now registered.
func (r *Registry) RegisterFactory(id string, f Factory) (bool, error) {
	if f == nil {
		return false, fmt.Errorf("register %s: %w", id, ErrNilFactory)
	}
	if r.policy == ReplaceDuplicates {
		if r.factories.Replace(id, f) {
			r.log.Warnf("factory for %s replaced by a later registration", id)
		}
		return true, nil
	}
	if err := r.factories.Register(id, f); err != nil {
		r.log.Errorf("register %s: %v", id, err)
		return false, fmt.Errorf("register %s: %w", id, err)
	}
	r.log.Debugf("registered factory %s", id)
	return true, nil
}

// Override maps id to f regardless of the duplicate policy and reports
// whether a previous factory was replaced.
func (r *Registry) Override(id string, f Factory) bool {
	if f == nil {
		return false
	}
	replaced := r.factories.Replace(id, f)
	if replaced {
		r.log.Infof("factory for %s overridden", id)
	}
	return replaced
}

// RegisterAll registers every factory under its own identifier, in order.
// All failures are reported.
func (r *Registry) RegisterAll(fs ...Factory) error {
	var errs []error
	for _, f := range fs {
		if f == nil {
			errs = append(errs, ErrNilFactory)
			continue
		}
		if _, err := r.RegisterFactory(f.RSID(), f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the factory registered under id.
func (r *Registry) Lookup(id string) (Factory, bool) {
	return r.factories.Get(id)
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string { return r.factories.Names() }

// Len returns the number of registered identifiers.
func (r *Registry) Len() int { return r.factories.Len() }

// Create builds the instance registered under id from doc. An unknown id is
// not an error: Create returns a nil Instance and a nil error so the caller
// decides how to react. Initialization errors are returned.
func (r *Registry) Create(id string, doc Document) (Instance, error) {
	start := time.Now()
	f, ok := r.factories.Get(id)
	if !ok {
		r.log.Debugw("unknown representation specification", map[string]any{"rs_id": id})
		r.record(id, metrics.OutcomeUnknown, start)
		return nil, nil
	}
	inst, err := f.CreateInstance(doc, r.log)
	if err != nil {
		r.record(id, metrics.OutcomeFailed, start)
		return nil, err
	}
	r.record(id, metrics.OutcomeCreated, start)
	return inst, nil
}

func (r *Registry) record(id string, outcome metrics.Outcome, start time.Time) {
	ev := metrics.InstanceEvent{RSID: id, Outcome: outcome, Duration: time.Since(start), Time: start}
	if err := r.sink.RecordInstance(ev); err != nil {
		r.log.Warnf("record instance metrics: %v", err)
	}
}
