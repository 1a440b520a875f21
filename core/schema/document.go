package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/spf13/cast"

	"github.com/kilianp07/perfmap/core/factory"
)

// Document is a parsed structured document. Its origin format (JSON, YAML,
// CBOR) is irrelevant once loaded.
type Document struct {
	path string
	data map[string]any
}

// NewDocument wraps raw parsed data. Nested maps with non-string keys, as
// produced by some decoders, are converted to map[string]any.
func NewDocument(data map[string]any) Document {
	if data == nil {
		data = map[string]any{}
	}
	return Document{data: normalizeMap(data)}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		return normalizeMap(cast.ToStringMap(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

// Raw returns the underlying map.
func (d Document) Raw() map[string]any { return d.data }

// Path returns the dotted location of d inside its root document.
func (d Document) Path() string { return d.path }

// Empty reports whether d has no keys.
func (d Document) Empty() bool { return len(d.data) == 0 }

// Keys returns the document keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is present.
func (d Document) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

func (d Document) pathOf(key string) string {
	if d.path == "" {
		return key
	}
	return d.path + "." + key
}

func (d Document) fieldErr(key string, err error) error {
	return &FieldError{Path: d.pathOf(key), Err: err}
}

func (d Document) typeErr(key string, err error) error {
	return d.fieldErr(key, fmt.Errorf("%w: %v", ErrFieldType, err))
}

// Get returns the raw value stored under key.
func (d Document) Get(key string) (any, error) {
	v, ok := d.data[key]
	if !ok {
		return nil, d.fieldErr(key, ErrMissingField)
	}
	return v, nil
}

// Sub returns the nested object stored under key.
func (d Document) Sub(key string) (Document, error) {
	v, err := d.Get(key)
	if err != nil {
		return Document{}, err
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return Document{}, d.typeErr(key, err)
	}
	return Document{path: d.pathOf(key), data: m}, nil
}

// String returns the value under key as a string.
func (d Document) String(key string) (string, error) {
	return scalar(d, key, cast.ToStringE)
}

// Float returns the value under key as a float64.
func (d Document) Float(key string) (float64, error) {
	return scalar(d, key, cast.ToFloat64E)
}

// Int returns the value under key as an int.
func (d Document) Int(key string) (int, error) {
	return scalar(d, key, cast.ToIntE)
}

// Bool returns the value under key as a bool.
func (d Document) Bool(key string) (bool, error) {
	return scalar(d, key, cast.ToBoolE)
}

// Floats returns the numeric sequence under key widened to float64.
func (d Document) Floats(key string) ([]float64, error) {
	return sequence(d, key, cast.ToFloat64E)
}

// Ints returns the integer sequence under key.
func (d Document) Ints(key string) ([]int, error) {
	return sequence(d, key, cast.ToIntE)
}

// Strings returns the string sequence under key.
func (d Document) Strings(key string) ([]string, error) {
	return sequence(d, key, cast.ToStringE)
}

// Decode fills out from the object under key using json struct tags.
func (d Document) Decode(key string, out any) error {
	sub, err := d.Sub(key)
	if err != nil {
		return err
	}
	if err := factory.Decode(sub.data, out); err != nil {
		return d.typeErr(key, err)
	}
	return nil
}

func scalar[T any](d Document, key string, conv func(any) (T, error)) (T, error) {
	var zero T
	v, err := d.Get(key)
	if err != nil {
		return zero, err
	}
	out, err := conv(v)
	if err != nil {
		return zero, d.typeErr(key, err)
	}
	return out, nil
}

func sequence[T any](d Document, key string, conv func(any) (T, error)) ([]T, error) {
	v, err := d.Get(key)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, d.typeErr(key, fmt.Errorf("expected sequence, got %T", v))
	}
	out := make([]T, rv.Len())
	for i := range out {
		e, err := conv(rv.Index(i).Interface())
		if err != nil {
			return nil, d.typeErr(fmt.Sprintf("%s[%d]", key, i), err)
		}
		out[i] = e
	}
	return out, nil
}
