package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ValidateAxis checks that values form a usable axis: non-empty, finite and
// strictly increasing.
func ValidateAxis(values []float64) error {
	if len(values) == 0 {
		return ErrEmptyAxis
	}
	if floats.HasNaN(values) || math.IsInf(floats.Max(values), 1) || math.IsInf(floats.Min(values), -1) {
		return ErrNonFiniteAxis
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return ErrNonMonotonicAxis
		}
	}
	return nil
}

// stencil holds the grid indices and weights contributed by one axis.
type stencil struct {
	idx [4]int
	w   [4]float64
	n   int
}

func (s *stencil) add(i int, w float64) {
	if w == 0 {
		return
	}
	s.idx[s.n] = i
	s.w[s.n] = w
	s.n++
}

// interval returns the lower index of the interval used for x and the
// normalized position of x inside it. mu is outside [0,1] when x is off-grid.
func interval(axis []float64, x float64) (int, float64) {
	lo := searchLower(axis, x)
	h := axis[lo+1] - axis[lo]
	return lo, (x - axis[lo]) / h
}

func searchLower(axis []float64, x float64) int {
	n := len(axis)
	lo := sort.SearchFloat64s(axis, x) - 1
	if lo < 0 {
		lo = 0
	}
	if lo > n-2 {
		lo = n - 2
	}
	return lo
}

// weights builds the stencil for target coordinate x on axis. The caller has
// already applied the extrapolation policy.
func weights(axis []float64, x float64, method InterpolationMethod) stencil {
	var s stencil
	if len(axis) == 1 {
		s.add(0, 1)
		return s
	}
	lo, mu := interval(axis, x)
	if method == Linear || len(axis) == 2 || mu < 0 || mu > 1 {
		s.add(lo, 1-mu)
		s.add(lo+1, mu)
		return s
	}
	return cubicWeights(axis, lo, mu)
}

// cubicWeights expands a cubic Hermite segment into per-point weights. Slopes
// are central differences over the neighbouring points, one-sided at the
// axis edges.
func cubicWeights(axis []float64, lo int, mu float64) stencil {
	var s stencil
	mu2 := mu * mu
	mu3 := mu2 * mu
	h00 := 2*mu3 - 3*mu2 + 1
	h10 := mu3 - 2*mu2 + mu
	h01 := -2*mu3 + 3*mu2
	h11 := mu3 - mu2
	h := axis[lo+1] - axis[lo]

	var wm1, w0, w1, w2 float64
	w0 = h00
	w1 = h01
	if lo > 0 {
		d := axis[lo+1] - axis[lo-1]
		wm1 -= h * h10 / d
		w1 += h * h10 / d
	} else {
		w0 -= h10
		w1 += h10
	}
	if lo+2 < len(axis) {
		d := axis[lo+2] - axis[lo]
		w0 -= h * h11 / d
		w2 += h * h11 / d
	} else {
		w0 -= h11
		w1 += h11
	}
	if lo > 0 {
		s.add(lo-1, wm1)
	}
	s.add(lo, w0)
	s.add(lo+1, w1)
	if lo+2 < len(axis) {
		s.add(lo+2, w2)
	}
	return s
}
