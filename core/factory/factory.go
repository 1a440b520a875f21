package factory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

var (
	// ErrDuplicate indicates a name that is already registered.
	ErrDuplicate = errors.New("already registered")

	// ErrUnknown indicates a name that is not registered.
	ErrUnknown = errors.New("unknown module type")
)

// Registry stores values keyed by name. It is safe for concurrent use, so
// late registrations may race with lookups.
type Registry[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewRegistry returns an empty registry.
func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{entries: make(map[string]V)}
}

// Register adds v under name. An existing entry is left untouched and
// ErrDuplicate is returned.
func (r *Registry[V]) Register(name string, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.entries[name] = v
	return nil
}

// Replace stores v under name and reports whether an entry was overwritten.
func (r *Registry[V]) Replace(name string, v V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.entries[name]
	r.entries[name] = v
	return existed
}

// Get returns the value registered under name.
func (r *Registry[V]) Get(name string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[name]
	return v, ok
}

// Names returns the registered names in sorted order.
func (r *Registry[V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ModuleConfig contains the type name and raw configuration for a module.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory constructs an implementation of T using the provided raw config.
type Factory[T any] func(map[string]any) (T, error)

// ModuleRegistry stores module factories keyed by module type.
type ModuleRegistry[T any] struct {
	*Registry[Factory[T]]
}

// NewModuleRegistry returns an empty module registry.
func NewModuleRegistry[T any]() *ModuleRegistry[T] {
	return &ModuleRegistry[T]{Registry: NewRegistry[Factory[T]]()}
}

// Register adds a factory for the given type name.
func (r *ModuleRegistry[T]) Register(name string, f Factory[T]) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", name)
	}
	return r.Registry.Register(name, f)
}

// Create instantiates a module based on its configuration.
func (r *ModuleRegistry[T]) Create(cfg ModuleConfig) (T, error) {
	f, ok := r.Get(cfg.Type)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w %s", ErrUnknown, cfg.Type)
	}
	return f(cfg.Conf)
}

// Decode fills out the provided struct using json tags. Numeric and string
// scalars are converted leniently.
func Decode(data any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
