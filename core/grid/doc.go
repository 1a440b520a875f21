// Package grid implements the interpolation engine behind equipment
// performance maps. An Engine owns a set of strictly increasing axes and
// one or more flattened data tables sized to the product of the axis
// lengths. Queries combine the values at the corners of the enclosing grid
// cell using per-axis weight stencils (linear or cubic) and an explicit,
// per-axis extrapolation policy for targets that fall outside the grid.
//
// Tables are flattened row-major: the first axis varies slowest and the
// last axis varies fastest.
//
// Example usage:
//
//	eng, err := grid.NewEngine(
//	    [][]float64{{0, 10}, {0, 1, 2}},
//	    [][]float64{{0, 1, 2, 10, 11, 12}},
//	    grid.WithExtrapolation(grid.ExtrapolateConstant),
//	)
//	v, err := eng.Value([]float64{5, 1.5}, 0, grid.Cubic)
//
// An Engine is immutable once built. The interpolation method is chosen per
// call and never stored, so concurrent queries are safe.
package grid
