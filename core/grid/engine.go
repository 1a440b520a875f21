package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Engine answers interpolation queries over a fixed grid and its tables.
type Engine struct {
	name    string
	axes    [][]float64
	tables  [][]float64
	strides []int
	size    int
	extrap  []ExtrapolationMethod
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	name    string
	extrap  ExtrapolationMethod
	perAxis map[int]ExtrapolationMethod
}

// WithName labels the engine in error messages.
func WithName(name string) Option {
	return func(o *engineOptions) { o.name = name }
}

// WithExtrapolation sets the extrapolation policy for every axis.
func WithExtrapolation(e ExtrapolationMethod) Option {
	return func(o *engineOptions) { o.extrap = e }
}

// WithAxisExtrapolation overrides the extrapolation policy of a single axis.
func WithAxisExtrapolation(axis int, e ExtrapolationMethod) Option {
	return func(o *engineOptions) {
		if o.perAxis == nil {
			o.perAxis = make(map[int]ExtrapolationMethod)
		}
		o.perAxis[axis] = e
	}
}

// NewEngine validates axes and tables and returns a queryable engine. Every
// violation is reported; the returned error joins one *AxisError or
// *TableError per offending input. Inputs are copied.
func NewEngine(axes [][]float64, tables [][]float64, opts ...Option) (*Engine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(axes) == 0 {
		return nil, ErrNoAxes
	}

	var errs []error
	size := 1
	overflow := false
	for i, a := range axes {
		if err := ValidateAxis(a); err != nil {
			errs = append(errs, &AxisError{Index: i, Err: err})
		}
		if overflow || len(a) == 0 {
			continue
		}
		if size > math.MaxInt/len(a) {
			errs = append(errs, &AxisError{Index: i, Err: ErrGridTooLarge})
			overflow = true
			continue
		}
		size *= len(a)
	}
	if overflow {
		return nil, joinErrors(o.name, errs)
	}
	for i, t := range tables {
		if len(t) != size {
			errs = append(errs, &TableError{Index: i, Got: len(t), Want: size})
		}
	}
	for i := range o.perAxis {
		if i < 0 || i >= len(axes) {
			errs = append(errs, &AxisError{Index: i, Err: errors.New("extrapolation override for unknown axis")})
		}
	}
	if len(errs) > 0 {
		return nil, joinErrors(o.name, errs)
	}

	e := &Engine{
		name:    o.name,
		axes:    make([][]float64, len(axes)),
		tables:  make([][]float64, len(tables)),
		strides: make([]int, len(axes)),
		size:    size,
		extrap:  make([]ExtrapolationMethod, len(axes)),
	}
	for i, a := range axes {
		e.axes[i] = append([]float64(nil), a...)
		e.extrap[i] = o.extrap
		if ex, ok := o.perAxis[i]; ok {
			e.extrap[i] = ex
		}
	}
	for i, t := range tables {
		e.tables[i] = append([]float64(nil), t...)
	}
	stride := 1
	for i := len(axes) - 1; i >= 0; i-- {
		e.strides[i] = stride
		stride *= len(axes[i])
	}
	return e, nil
}

func joinErrors(name string, errs []error) error {
	if name != "" {
		return fmt.Errorf("%s: %w", name, errors.Join(errs...))
	}
	return errors.Join(errs...)
}

// Name returns the label given with WithName.
func (e *Engine) Name() string { return e.name }

// NumAxes returns the grid dimensionality.
func (e *Engine) NumAxes() int { return len(e.axes) }

// NumTables returns the number of data tables.
func (e *Engine) NumTables() int { return len(e.tables) }

// AxisLen returns the number of points on axis i.
func (e *Engine) AxisLen(i int) int { return len(e.axes[i]) }

// Axis returns a copy of axis i.
func (e *Engine) Axis(i int) []float64 { return append([]float64(nil), e.axes[i]...) }

// Bounds returns the first and last value of axis i.
func (e *Engine) Bounds(i int) (float64, float64) {
	a := e.axes[i]
	return a[0], a[len(a)-1]
}

// Shape returns the length of every axis.
func (e *Engine) Shape() []int {
	s := make([]int, len(e.axes))
	for i, a := range e.axes {
		s[i] = len(a)
	}
	return s
}

// Size returns the number of grid points, which is also every table's length.
func (e *Engine) Size() int { return e.size }

// Extrapolation returns the extrapolation policy of axis i.
func (e *Engine) Extrapolation(i int) ExtrapolationMethod { return e.extrap[i] }

// Value interpolates table at target. Methods may be omitted (linear on every
// axis), a single method applied to every axis, or one method per axis.
func (e *Engine) Value(target []float64, table int, methods ...InterpolationMethod) (float64, error) {
	if table < 0 || table >= len(e.tables) {
		return 0, fmt.Errorf("%w: %d (have %d)", ErrTableIndex, table, len(e.tables))
	}
	c, err := e.corners(target, methods)
	if err != nil {
		return 0, err
	}
	v := c.apply(e.tables[table])
	if !finite(v) {
		return 0, fmt.Errorf("%w: table %d at %v", ErrNonFiniteResult, table, target)
	}
	return v, nil
}

// Values interpolates every table at target, in declaration order.
func (e *Engine) Values(target []float64, methods ...InterpolationMethod) ([]float64, error) {
	c, err := e.corners(target, methods)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(e.tables))
	for i, t := range e.tables {
		out[i] = c.apply(t)
		if !finite(out[i]) {
			return nil, fmt.Errorf("%w: table %d at %v", ErrNonFiniteResult, i, target)
		}
	}
	return out, nil
}

// cornerSet is the tensor product of the per-axis stencils: a flat table
// index and a combined weight for every contributing grid point.
type cornerSet struct {
	index  []int
	weight []float64
	buf    []float64
}

func (c *cornerSet) apply(table []float64) float64 {
	for i, idx := range c.index {
		c.buf[i] = table[idx]
	}
	return floats.Dot(c.weight, c.buf)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (e *Engine) resolveMethods(methods []InterpolationMethod) ([]InterpolationMethod, error) {
	per := make([]InterpolationMethod, len(e.axes))
	switch len(methods) {
	case 0:
	case 1:
		for i := range per {
			per[i] = methods[0]
		}
	case len(e.axes):
		copy(per, methods)
	default:
		return nil, fmt.Errorf("%w: got %d methods for %d axes", ErrMethodCount, len(methods), len(e.axes))
	}
	return per, nil
}

func (e *Engine) corners(target []float64, methods []InterpolationMethod) (*cornerSet, error) {
	if len(target) != len(e.axes) {
		return nil, fmt.Errorf("%w: got %d coordinates, want %d", ErrDimension, len(target), len(e.axes))
	}
	per, err := e.resolveMethods(methods)
	if err != nil {
		return nil, err
	}

	stencils := make([]stencil, len(e.axes))
	total := 1
	for i, a := range e.axes {
		x := target[i]
		if math.IsNaN(x) {
			return nil, &AxisError{Index: i, Err: ErrNaNTarget}
		}
		if math.IsInf(x, 0) {
			return nil, &AxisError{Index: i, Err: ErrNonFiniteTarget}
		}
		lo, hi := a[0], a[len(a)-1]
		if x < lo || x > hi {
			switch e.extrap[i] {
			case ExtrapolateError:
				return nil, &AxisError{Index: i, Err: fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfBounds, x, lo, hi)}
			case ExtrapolateConstant:
				x = math.Max(lo, math.Min(hi, x))
			}
		}
		stencils[i] = weights(a, x, per[i])
		total *= stencils[i].n
	}

	c := &cornerSet{
		index:  make([]int, 0, total),
		weight: make([]float64, 0, total),
		buf:    make([]float64, total),
	}
	var walk func(axis, offset int, w float64)
	walk = func(axis, offset int, w float64) {
		if axis == len(stencils) {
			c.index = append(c.index, offset)
			c.weight = append(c.weight, w)
			return
		}
		s := &stencils[axis]
		for k := 0; k < s.n; k++ {
			walk(axis+1, offset+s.idx[k]*e.strides[axis], w*s.w[k])
		}
	}
	walk(0, 0, 1)
	return c, nil
}
