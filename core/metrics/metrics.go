package metrics

import "time"

// Outcome classifies the result of a registry lookup.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUnknown Outcome = "unknown"
	OutcomeFailed  Outcome = "failed"
)

// InstanceEvent describes one schema instance creation attempt.
type InstanceEvent struct {
	RSID     string
	Outcome  Outcome
	Duration time.Duration
	Time     time.Time
}

// Sink records registry events for observability purposes.
type Sink interface {
	RecordInstance(ev InstanceEvent) error
}

// QueryEvent describes one interpolation query against a performance map.
type QueryEvent struct {
	Map      string
	Method   string
	Tables   int
	Failed   bool
	Duration time.Duration
}

// QueryRecorder records interpolation query events.
type QueryRecorder interface {
	RecordQuery(ev QueryEvent) error
}

// NopSink implements Sink and QueryRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordInstance(InstanceEvent) error { return nil }
func (NopSink) RecordQuery(QueryEvent) error       { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordInstance forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordInstance(ev InstanceEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordInstance(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordQuery forwards query events to sinks implementing QueryRecorder.
func (m *MultiSink) RecordQuery(ev QueryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(QueryRecorder); ok {
			if err := rec.RecordQuery(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordQuery sends ev to s when it implements QueryRecorder.
func RecordQuery(s Sink, ev QueryEvent) error {
	if rec, ok := s.(QueryRecorder); ok {
		return rec.RecordQuery(ev)
	}
	return nil
}
