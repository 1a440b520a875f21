package grid

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/interp"
)

// tabulate evaluates f on every grid point, first axis slowest.
func tabulate(axes [][]float64, f func(p []float64) float64) []float64 {
	size := 1
	for _, a := range axes {
		size *= len(a)
	}
	out := make([]float64, size)
	p := make([]float64, len(axes))
	for flat := 0; flat < size; flat++ {
		rem := flat
		for i := len(axes) - 1; i >= 0; i-- {
			p[i] = axes[i][rem%len(axes[i])]
			rem /= len(axes[i])
		}
		out[flat] = f(p)
	}
	return out
}

func TestNewEngine_Errors(t *testing.T) {
	t.Run("no axes", func(t *testing.T) {
		_, err := NewEngine(nil, nil)
		assert.ErrorIs(t, err, ErrNoAxes)
	})

	t.Run("table size mismatch names the table", func(t *testing.T) {
		axes := [][]float64{{0, 1}, {0, 1, 2}}
		_, err := NewEngine(axes, [][]float64{make([]float64, 6), make([]float64, 5)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTableSize)
		var te *TableError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 1, te.Index)
		assert.Equal(t, 5, te.Got)
		assert.Equal(t, 6, te.Want)
	})

	t.Run("all violations are reported", func(t *testing.T) {
		axes := [][]float64{{0, 1}, {2, 1}}
		_, err := NewEngine(axes, [][]float64{{1}}, WithName("RS0001"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNonMonotonicAxis)
		assert.ErrorIs(t, err, ErrTableSize)
		assert.Contains(t, err.Error(), "RS0001")
		var ae *AxisError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, 1, ae.Index)
	})

	t.Run("extrapolation override on unknown axis", func(t *testing.T) {
		_, err := NewEngine([][]float64{{0, 1}}, nil, WithAxisExtrapolation(3, ExtrapolateError))
		assert.Error(t, err)
	})
}

func TestNewEngine_CopiesInputs(t *testing.T) {
	axis := []float64{0, 1}
	table := []float64{0, 10}
	e, err := NewEngine([][]float64{axis}, [][]float64{table})
	require.NoError(t, err)
	axis[1] = 5
	table[1] = 100
	v, err := e.Value([]float64{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
	assert.Equal(t, []float64{0, 1}, e.Axis(0))
}

func TestValue_VerticesAreExact(t *testing.T) {
	axes := [][]float64{{-5, 0, 2.5, 10}, {1, 2}, {0.1, 0.2, 0.7}}
	f := func(p []float64) float64 { return math.Sin(p[0]) * math.Exp(p[1]) / (1 + p[2]) }
	table := tabulate(axes, f)
	e, err := NewEngine(axes, [][]float64{table})
	require.NoError(t, err)

	for _, m := range []InterpolationMethod{Linear, Cubic} {
		for flat, want := range table {
			rem := flat
			p := make([]float64, len(axes))
			for i := len(axes) - 1; i >= 0; i-- {
				p[i] = axes[i][rem%len(axes[i])]
				rem /= len(axes[i])
			}
			got, err := e.Value(p, 0, m)
			require.NoError(t, err)
			assert.Equal(t, want, got, "method %s at %v", m, p)
		}
	}
}

func TestValue_Midpoint(t *testing.T) {
	e, err := NewEngine([][]float64{{2, 6}}, [][]float64{{-3, 9}})
	require.NoError(t, err)
	v, err := e.Value([]float64{4}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3, v, 1e-12)
}

func TestValue_MatchesPiecewiseLinear(t *testing.T) {
	xs := []float64{0, 0.3, 1.1, 2, 4.5, 5}
	ys := []float64{1, -2, 0.5, 3, 3.5, -1}
	var ref interp.PiecewiseLinear
	require.NoError(t, ref.Fit(xs, ys))

	e, err := NewEngine([][]float64{xs}, [][]float64{ys}, WithExtrapolation(ExtrapolateConstant))
	require.NoError(t, err)
	for _, x := range []float64{-1, 0, 0.1, 0.3, 0.9, 1.7, 3.3, 4.99, 5, 7} {
		got, err := e.Value([]float64{x}, 0)
		require.NoError(t, err)
		assert.True(t, scalar.EqualWithinAbs(ref.Predict(x), got, 1e-12), "x=%v ref=%v got=%v", x, ref.Predict(x), got)
	}
}

func TestValue_MultilinearIsExact(t *testing.T) {
	axes := [][]float64{{0, 0.5, 3, 4}, {-2, 1, 7}}
	f := func(p []float64) float64 { return 1 + 2*p[0] - 3*p[1] + 0.5*p[0]*p[1] }
	e, err := NewEngine(axes, [][]float64{tabulate(axes, f)})
	require.NoError(t, err)
	for _, p := range [][]float64{{0.2, -1}, {1.7, 0.3}, {3.9, 6.5}, {2.2, 1}} {
		got, err := e.Value(p, 0)
		require.NoError(t, err)
		assert.InDelta(t, f(p), got, 1e-12, "p=%v", p)
	}
}

func TestValue_CubicReproducesQuadratics(t *testing.T) {
	axes := [][]float64{{0, 1, 2, 3, 4, 5}, {10, 12, 14, 16}}
	f := func(p []float64) float64 { return p[0]*p[0] - 2*p[1]*p[1] + p[0]*p[1] }
	e, err := NewEngine(axes, [][]float64{tabulate(axes, f)})
	require.NoError(t, err)

	// interior intervals only; edge intervals use one-sided slopes
	for _, p := range [][]float64{{1.5, 12.5}, {2.25, 13}, {3.9, 13.7}, {1.1, 12.1}} {
		cub, err := e.Value(p, 0, Cubic)
		require.NoError(t, err)
		assert.InDelta(t, f(p), cub, 1e-9, "p=%v", p)

		lin, err := e.Value(p, 0, Linear)
		require.NoError(t, err)
		assert.Greater(t, math.Abs(lin-f(p)), math.Abs(cub-f(p)))
	}
}

func TestValue_ErrorBoundLinear(t *testing.T) {
	// linear error on a smooth function is bounded by h^2/8 * max|f''|
	n := 21
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i) * math.Pi / float64(n-1)
	}
	ys := make([]float64, n)
	for i, x := range axis {
		ys[i] = math.Sin(x)
	}
	e, err := NewEngine([][]float64{axis}, [][]float64{ys})
	require.NoError(t, err)
	h := axis[1] - axis[0]
	bound := h * h / 8
	for x := 0.01; x < math.Pi; x += 0.137 {
		v, err := e.Value([]float64{x}, 0)
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(v-math.Sin(x)), bound, "x=%v", x)

		c, err := e.Value([]float64{x}, 0, Cubic)
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(c-math.Sin(x)), bound, "x=%v", x)
	}
}

func TestValue_Extrapolation(t *testing.T) {
	axes := [][]float64{{0, 1}}
	tables := [][]float64{{0, 10}}

	lin, err := NewEngine(axes, tables)
	require.NoError(t, err)
	v, err := lin.Value([]float64{2}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 20, v, 1e-12)
	v, err = lin.Value([]float64{-0.5}, 0, Cubic)
	require.NoError(t, err)
	assert.InDelta(t, -5, v, 1e-12)

	con, err := NewEngine(axes, tables, WithExtrapolation(ExtrapolateConstant))
	require.NoError(t, err)
	v, err = con.Value([]float64{2}, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
	v, err = con.Value([]float64{-3}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	strict, err := NewEngine(axes, tables, WithExtrapolation(ExtrapolateError))
	require.NoError(t, err)
	_, err = strict.Value([]float64{1.0001}, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	v, err = strict.Value([]float64{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestValue_PerAxisExtrapolation(t *testing.T) {
	axes := [][]float64{{0, 1}, {0, 1}}
	f := func(p []float64) float64 { return p[0] + 10*p[1] }
	e, err := NewEngine(axes, [][]float64{tabulate(axes, f)},
		WithExtrapolation(ExtrapolateConstant),
		WithAxisExtrapolation(1, ExtrapolateError),
	)
	require.NoError(t, err)
	assert.Equal(t, ExtrapolateConstant, e.Extrapolation(0))
	assert.Equal(t, ExtrapolateError, e.Extrapolation(1))

	v, err := e.Value([]float64{5, 0.5}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 6, v, 1e-12)

	_, err = e.Value([]float64{0.5, 2}, 0)
	var ae *AxisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 1, ae.Index)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestValue_QueryErrors(t *testing.T) {
	e, err := NewEngine([][]float64{{0, 1}, {0, 1}}, [][]float64{{0, 1, 2, 3}})
	require.NoError(t, err)

	_, err = e.Value([]float64{0.5}, 0)
	assert.ErrorIs(t, err, ErrDimension)
	_, err = e.Value([]float64{0.5, 0.5}, 1)
	assert.ErrorIs(t, err, ErrTableIndex)
	_, err = e.Value([]float64{0.5, 0.5}, -1)
	assert.ErrorIs(t, err, ErrTableIndex)
	_, err = e.Value([]float64{math.NaN(), 0.5}, 0)
	assert.ErrorIs(t, err, ErrNaNTarget)
	_, err = e.Values([]float64{0.5, 0.5}, Linear, Cubic, Linear)
	assert.ErrorIs(t, err, ErrMethodCount)
}

func TestValue_NonFinite(t *testing.T) {
	e, err := NewEngine([][]float64{{0, 1, 2}}, [][]float64{{0, 10, 20}})
	require.NoError(t, err)

	for _, x := range []float64{math.Inf(1), math.Inf(-1)} {
		v, err := e.Value([]float64{x}, 0)
		assert.ErrorIs(t, err, ErrNonFiniteTarget, "x=%v", x)
		assert.Zero(t, v)
		var ae *AxisError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, 0, ae.Index)
	}

	v, err := e.Value([]float64{1e308}, 0)
	assert.ErrorIs(t, err, ErrNonFiniteResult)
	assert.Zero(t, v)
	vs, err := e.Values([]float64{1e308})
	assert.ErrorIs(t, err, ErrNonFiniteResult)
	assert.Nil(t, vs)

	// Finite extrapolation still answers.
	v, err = e.Value([]float64{3}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 30, v, 1e-12)
}

func TestNewEngine_SizeOverflow(t *testing.T) {
	long := make([]float64, 1<<16)
	for i := range long {
		long[i] = float64(i)
	}
	axes := [][]float64{long, long, long, long}

	e, err := NewEngine(axes, [][]float64{{0}})
	require.Error(t, err)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrGridTooLarge)
	assert.NotErrorIs(t, err, ErrTableSize)
	var ae *AxisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 3, ae.Index)
}

func TestValue_PerAxisMethods(t *testing.T) {
	axes := [][]float64{{0, 1, 2, 3}, {0, 1, 2, 3}}
	f := func(p []float64) float64 { return p[0]*p[0] + p[1] }
	e, err := NewEngine(axes, [][]float64{tabulate(axes, f)})
	require.NoError(t, err)

	v, err := e.Value([]float64{1.5, 1.5}, 0, Cubic, Linear)
	require.NoError(t, err)
	assert.InDelta(t, 1.5*1.5+1.5, v, 1e-12)

	lin, err := e.Value([]float64{1.5, 1.5}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.5+1.5, lin, 1e-12)
}

func TestValues_DeclarationOrder(t *testing.T) {
	axes := [][]float64{{0, 1}, {0, 2}}
	tables := [][]float64{
		tabulate(axes, func(p []float64) float64 { return p[0] }),
		tabulate(axes, func(p []float64) float64 { return p[1] }),
		tabulate(axes, func(p []float64) float64 { return p[0] + p[1] }),
	}
	e, err := NewEngine(axes, tables)
	require.NoError(t, err)
	got, err := e.Values([]float64{0.25, 1})
	require.NoError(t, err)
	want := []float64{0.25, 1, 1.25}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{2, 2}, e.Shape())
	assert.Equal(t, 4, e.Size())
	assert.Equal(t, 3, e.NumTables())
	lo, hi := e.Bounds(1)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestValue_SinglePointAxis(t *testing.T) {
	e, err := NewEngine([][]float64{{3}, {0, 1}}, [][]float64{{5, 7}})
	require.NoError(t, err)
	v, err := e.Value([]float64{100, 0.5}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 6, v, 1e-12)
}

func TestValue_ConcurrentQueries(t *testing.T) {
	axes := [][]float64{{0, 1, 2, 3, 4}, {0, 5, 10}}
	f := func(p []float64) float64 { return math.Cos(p[0]) * p[1] }
	e, err := NewEngine(axes, [][]float64{tabulate(axes, f)})
	require.NoError(t, err)

	targets := [][]float64{{0.5, 2}, {1.5, 7}, {3.2, 9}, {2, 5}, {3.9, 0.1}}
	methods := []InterpolationMethod{Linear, Cubic}
	baseline := make(map[InterpolationMethod][]float64)
	for _, m := range methods {
		for _, p := range targets {
			v, err := e.Value(p, 0, m)
			require.NoError(t, err)
			baseline[m] = append(baseline[m], v)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			m := methods[g%len(methods)]
			for iter := 0; iter < 100; iter++ {
				for i, p := range targets {
					v, err := e.Value(p, 0, m)
					if err != nil || v != baseline[m][i] {
						errs <- m.String()
						return
					}
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for m := range errs {
		t.Errorf("concurrent %s query diverged from baseline", m)
	}
}

func TestParseMethods(t *testing.T) {
	m, err := ParseInterpolationMethod("Cubic")
	require.NoError(t, err)
	assert.Equal(t, Cubic, m)
	m, err = ParseInterpolationMethod("")
	require.NoError(t, err)
	assert.Equal(t, Linear, m)
	_, err = ParseInterpolationMethod("spline")
	assert.Error(t, err)

	x, err := ParseExtrapolationMethod("clamp")
	require.NoError(t, err)
	assert.Equal(t, ExtrapolateConstant, x)
	x, err = ParseExtrapolationMethod("error")
	require.NoError(t, err)
	assert.Equal(t, ExtrapolateError, x)
	_, err = ParseExtrapolationMethod("quadratic")
	assert.Error(t, err)
	assert.Equal(t, "constant", ExtrapolateConstant.String())
	assert.Equal(t, "cubic", Cubic.String())
}
