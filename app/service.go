// Package app wires the configuration, logger, metrics sink and schema
// registry together and keeps the documents loaded during a session.
package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/perfmap/config"
	"github.com/kilianp07/perfmap/core/grid"
	coremetrics "github.com/kilianp07/perfmap/core/metrics"
	"github.com/kilianp07/perfmap/core/perfmap"
	"github.com/kilianp07/perfmap/core/schema"
	"github.com/kilianp07/perfmap/infra/document"
	"github.com/kilianp07/perfmap/infra/logger"
	"github.com/kilianp07/perfmap/infra/metrics"
	"github.com/kilianp07/perfmap/rs"
)

var (
	// ErrUnknownRS indicates a document whose identifier has no registered factory.
	ErrUnknownRS = errors.New("unknown representation specification")

	// ErrNotLoaded indicates a load identifier that is not held by the service.
	ErrNotLoaded = errors.New("document not loaded")

	// ErrUnknownMap indicates a performance map name the instance does not own.
	ErrUnknownMap = errors.New("unknown performance map")
)

// Loaded is a document turned into a schema instance.
type Loaded struct {
	ID       string
	Path     string
	Instance schema.Instance
	LoadedAt time.Time
}

// Service orchestrates document loading and performance map queries.
type Service struct {
	log      logger.Logger
	sink     coremetrics.Sink
	registry *schema.Registry
	method   grid.InterpolationMethod

	mu     sync.RWMutex
	loaded map[string]*Loaded
}

type options struct {
	log     logger.Logger
	promReg prometheus.Registerer
}

// Option configures a Service.
type Option func(*options)

// WithLogger replaces the logger built from the logging configuration.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithPrometheusRegisterer sets where the prometheus sink registers its
// collectors. The default registerer is used otherwise.
func WithPrometheusRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.promReg = r }
}

// New creates a Service from the configuration. The registry is populated
// with the built-in representation specifications.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logg := o.log
	if logg == nil {
		logg = logger.NewWithLevel(cfg.Logging.Component, cfg.Logging.Level)
	}

	sinks := coremetrics.NewSinkRegistry()
	if err := metrics.RegisterBuiltins(sinks, o.promReg); err != nil {
		return nil, fmt.Errorf("metrics registry: %w", err)
	}
	sink, err := coremetrics.NewSink(sinks, cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	method, err := cfg.Interpolation.DefaultMethod()
	if err != nil {
		return nil, fmt.Errorf("interpolation: %w", err)
	}
	mapOpts, err := cfg.Interpolation.MapOptions()
	if err != nil {
		return nil, fmt.Errorf("interpolation: %w", err)
	}
	policy, err := cfg.Registry.Policy()
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	reg := schema.NewRegistry(
		schema.WithLogger(logg),
		schema.WithMetrics(sink),
		schema.WithDuplicatePolicy(policy),
	)
	if err := reg.RegisterAll(rs.Builtins(mapOpts...)...); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	logg.Debugw("service ready", map[string]any{
		"rs":            reg.IDs(),
		"method":        method.String(),
		"extrapolation": cfg.Interpolation.Extrapolation,
		"policy":        policy.String(),
	})
	return &Service{
		log:      logg,
		sink:     sink,
		registry: reg,
		method:   method,
		loaded:   make(map[string]*Loaded),
	}, nil
}

// Registry exposes the schema registry, e.g. to register extra factories.
func (s *Service) Registry() *schema.Registry { return s.registry }

// Load parses the document at path and creates the instance registered
// under rsID. An empty rsID is taken from the document's metadata.schema.
func (s *Service) Load(path, rsID string) (*Loaded, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	if rsID == "" {
		rsID = schemaID(doc)
	}
	if rsID == "" {
		return nil, fmt.Errorf("%s: no representation specification given and metadata.schema is missing", path)
	}
	id := uuid.NewString()
	s.log.Infof("load %s: %s as %s", id, path, rsID)
	inst, err := s.registry.Create(rsID, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownRS, rsID, strings.Join(s.registry.IDs(), ", "))
	}
	l := &Loaded{ID: id, Path: path, Instance: inst, LoadedAt: time.Now()}
	s.mu.Lock()
	s.loaded[id] = l
	s.mu.Unlock()
	return l, nil
}

func schemaID(doc schema.Document) string {
	meta, err := doc.Sub("metadata")
	if err != nil {
		return ""
	}
	id, err := meta.String("schema")
	if err != nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(id))
}

// Get returns the loaded document with the given identifier.
func (s *Service) Get(id string) (*Loaded, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loaded[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, id)
	}
	return l, nil
}

// List returns every loaded document ordered by path.
func (s *Service) List() []*Loaded {
	s.mu.RLock()
	out := make([]*Loaded, 0, len(s.loaded))
	for _, l := range s.loaded {
		out = append(out, l)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].LoadedAt.Before(out[j].LoadedAt)
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Maps returns the performance maps of l keyed by schema field name.
func Maps(l *Loaded) map[string]*perfmap.Map {
	p, ok := l.Instance.(perfmap.Provider)
	if !ok {
		return map[string]*perfmap.Map{}
	}
	return p.PerformanceMaps()
}

// MapNames returns the sorted performance map names of l.
func MapNames(l *Loaded) []string {
	maps := Maps(l)
	names := make([]string, 0, len(maps))
	for n := range maps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TableValue is one interpolated lookup variable.
type TableValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// QueryResult is the answer to one interpolation query.
type QueryResult struct {
	Map    string       `json:"map"`
	Method string       `json:"method"`
	Target []float64    `json:"target"`
	Values []TableValue `json:"values"`
}

// Query interpolates every table of the named map of a loaded document.
// mapName may be empty when the instance owns a single map. Without
// methods the configured default method applies to every axis.
func (s *Service) Query(id, mapName string, target []float64, methods ...grid.InterpolationMethod) (QueryResult, error) {
	l, err := s.Get(id)
	if err != nil {
		return QueryResult{}, err
	}
	m, name, err := selectMap(l, mapName)
	if err != nil {
		return QueryResult{}, err
	}
	if len(methods) == 0 {
		methods = []grid.InterpolationMethod{s.method}
	}

	start := time.Now()
	values, err := m.CalculateAll(target, methods...)
	ev := coremetrics.QueryEvent{
		Map:      m.Name(),
		Method:   methodLabel(methods),
		Tables:   len(values),
		Failed:   err != nil,
		Duration: time.Since(start),
	}
	if rerr := coremetrics.RecordQuery(s.sink, ev); rerr != nil {
		s.log.Warnf("record query: %v", rerr)
	}
	if err != nil {
		s.log.Debugf("query %s %s failed: %v", id, name, err)
		return QueryResult{}, fmt.Errorf("query %s: %w", name, err)
	}

	tables := m.TableNames()
	res := QueryResult{
		Map:    name,
		Method: ev.Method,
		Target: append([]float64(nil), target...),
		Values: make([]TableValue, len(values)),
	}
	for i, v := range values {
		res.Values[i] = TableValue{Name: tables[i], Value: v}
	}
	return res, nil
}

func selectMap(l *Loaded, name string) (*perfmap.Map, string, error) {
	maps := Maps(l)
	if name == "" && len(maps) == 1 {
		for n, m := range maps {
			return m, n, nil
		}
	}
	m, ok := maps[name]
	if !ok {
		return nil, "", fmt.Errorf("%w %q (available: %s)", ErrUnknownMap, name, strings.Join(MapNames(l), ", "))
	}
	return m, name, nil
}

func methodLabel(methods []grid.InterpolationMethod) string {
	parts := make([]string, len(methods))
	for i, m := range methods {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}
