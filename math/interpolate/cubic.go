package interpolate

import (
	"fmt"
)

// Cubic1D is a 1D cubic Hermite interpolator.
//
// Between two grid points the interpolant is the cubic with the sampled
// values at both ends and slopes estimated from the neighboring samples (see
// Tangent). It passes exactly through every sample, has a continuous first
// derivative, and reduces to linear interpolation on a two point grid.
type Cubic1D struct {
	xs     searcher
	vals   []float64
	slopes []float64
	tan    Tangent
}

// NewCubic1D creates a cubic interpolator for a sequence of strictly
// increasing points, xs, which take on the values given by vals. Both slices
// are copied, so the caller may reuse them afterwards.
//
// An error wrapping ErrInvalidInput is returned if the slices have different
// lengths, hold fewer than two points, contain a non-finite number, if xs
// is not strictly increasing, or if a cell width or slope overflows.
func NewCubic1D(xs, vals []float64, opts ...Option) (*Cubic1D, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	if len(xs) != len(vals) {
		return nil, invalidf("len(vals) = %d, but len(xs) = %d",
			len(vals), len(xs))
	}
	if err := checkAxis("xs", xs); err != nil {
		return nil, err
	}
	if err := checkValues(vals); err != nil {
		return nil, err
	}

	c := &Cubic1D{tan: o.tangent}
	c.xs.init(append([]float64(nil), xs...))
	c.vals = append([]float64(nil), vals...)
	c.slopes = make([]float64, len(xs))
	c.tan.slopes(c.xs.xs, c.vals, c.slopes)
	if err := checkSlopes("xs", c.xs.xs, c.slopes); err != nil {
		return nil, err
	}

	return c, nil
}

// NewUniformCubic1D creates a cubic interpolator on a uniformly spaced
// sequence of x values starting at x0 and separated by dx whose values are
// given by vals.
func NewUniformCubic1D(
	x0, dx float64, vals []float64, opts ...Option,
) (*Cubic1D, error) {
	if len(vals) < 2 {
		return nil, invalidf("len(vals) = %d, but at least 2 points are needed",
			len(vals))
	}
	return NewCubic1D(uniformAxis(x0, dx, len(vals)), vals, opts...)
}

// Eval returns the interpolated value at x. Values of x outside the grid are
// extrapolated with the polynomial of the nearest boundary cell.
func (c *Cubic1D) Eval(x float64) float64 {
	return c.evalCell(c.xs.search(x), x)
}

func (c *Cubic1D) evalCell(i int, x float64) float64 {
	x1, x2 := c.xs.cell(i)
	dx := x2 - x1
	t := (x - x1) / dx
	return hermite(t, c.vals[i], c.vals[i+1],
		c.slopes[i]*dx, c.slopes[i+1]*dx)
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (c *Cubic1D) EvalAll(xs []float64, out ...[]float64) []float64 {
	res := outBuffer(len(xs), out)
	i := -1
	for j, x := range xs {
		i = c.xs.searchFrom(x, i)
		res[j] = c.evalCell(i, x)
	}
	return res
}

// Deriv returns the first derivative of the interpolant at x.
func (c *Cubic1D) Deriv(x float64) float64 {
	i := c.xs.search(x)
	x1, x2 := c.xs.cell(i)
	dx := x2 - x1
	t := (x - x1) / dx
	return hermiteDeriv(t, c.vals[i], c.vals[i+1],
		c.slopes[i]*dx, c.slopes[i+1]*dx) / dx
}

// Bounds returns the first and last grid points.
func (c *Cubic1D) Bounds() (lo, hi float64) { return c.xs.x0, c.xs.lim }

// Contains returns true if x lies inside the grid, i.e. if Eval(x) would not
// extrapolate.
func (c *Cubic1D) Contains(x float64) bool {
	return x >= c.xs.x0 && x <= c.xs.lim
}

// Len returns the number of grid points.
func (c *Cubic1D) Len() int { return len(c.vals) }

// Tangent returns the slope scheme the interpolator was built with.
func (c *Cubic1D) Tangent() Tangent { return c.tan }

// Release drops the interpolator's grid. The interpolator must not be used
// afterwards. Calling Release more than once, or on a nil interpolator, is
// harmless.
func (c *Cubic1D) Release() {
	if c == nil {
		return
	}
	c.xs = searcher{}
	c.vals, c.slopes = nil, nil
}

func (c *Cubic1D) String() string {
	return fmt.Sprintf("Cubic1D{n: %d, range: [%g, %g], tangent: %s}",
		len(c.vals), c.xs.x0, c.xs.lim, c.tan)
}
