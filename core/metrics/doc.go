// Package metrics defines sinks for performance map and schema registry
// events. A Sink records schema instance creations; sinks that also
// implement QueryRecorder receive interpolation query timings. Sinks are
// built from configuration through a SinkRegistry and combined with
// NewMultiSink when several are configured.
package metrics
