package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine construction.
var (
	// ErrNoAxes indicates an engine was built without any axis.
	ErrNoAxes = errors.New("grid has no axes")

	// ErrEmptyAxis indicates an axis without values.
	ErrEmptyAxis = errors.New("axis is empty")

	// ErrNonMonotonicAxis indicates an axis that is not strictly increasing.
	ErrNonMonotonicAxis = errors.New("axis is not strictly increasing")

	// ErrNonFiniteAxis indicates an axis containing NaN or infinite values.
	ErrNonFiniteAxis = errors.New("axis contains non-finite values")

	// ErrTableSize indicates a table whose length differs from the grid size.
	ErrTableSize = errors.New("table size does not match grid size")

	// ErrGridTooLarge indicates axis lengths whose product overflows int.
	ErrGridTooLarge = errors.New("grid size overflows int")
)

// Sentinel errors for queries.
var (
	// ErrDimension indicates a target whose length differs from the axis count.
	ErrDimension = errors.New("target dimension mismatch")

	// ErrTableIndex indicates a table index outside the declared tables.
	ErrTableIndex = errors.New("table index out of range")

	// ErrOutOfBounds indicates a target outside the grid when extrapolation is disabled.
	ErrOutOfBounds = errors.New("target outside grid bounds")

	// ErrNaNTarget indicates a target coordinate that is NaN.
	ErrNaNTarget = errors.New("target coordinate is NaN")

	// ErrNonFiniteTarget indicates a target coordinate that is infinite.
	ErrNonFiniteTarget = errors.New("target coordinate is infinite")

	// ErrNonFiniteResult indicates a finite target whose interpolated value
	// overflowed to NaN or an infinity.
	ErrNonFiniteResult = errors.New("interpolated value is not finite")

	// ErrMethodCount indicates a method list that is neither empty, a single
	// method, nor one method per axis.
	ErrMethodCount = errors.New("interpolation method count mismatch")
)

// AxisError identifies the axis responsible for a failure.
type AxisError struct {
	Index int
	Err   error
}

func (e *AxisError) Error() string { return fmt.Sprintf("axis %d: %v", e.Index, e.Err) }

func (e *AxisError) Unwrap() error { return e.Err }

// TableError identifies a data table whose size is inconsistent with the grid.
type TableError struct {
	Index int
	Got   int
	Want  int
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %d: %v: got %d values, want %d", e.Index, ErrTableSize, e.Got, e.Want)
}

func (e *TableError) Unwrap() error { return ErrTableSize }
