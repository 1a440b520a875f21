package schema

import (
	"errors"
	"fmt"

	"github.com/kilianp07/perfmap/core/factory"
)

var (
	// ErrMissingField indicates a key absent from a document.
	ErrMissingField = errors.New("missing field")

	// ErrFieldType indicates a value that cannot be converted to the requested type.
	ErrFieldType = errors.New("invalid field type")

	// ErrDuplicate indicates a representation specification identifier that is already registered.
	ErrDuplicate = factory.ErrDuplicate

	// ErrNilFactory indicates a nil factory passed to the registry.
	ErrNilFactory = errors.New("nil factory")
)

// FieldError locates a document error by its dotted path.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }
