/*package scatter interpolates functions sampled at scattered points in any
number of dimensions.

Unlike the interpolators in math/interpolate, nothing here assumes a grid:
the estimate at a query point is a weighted mean of the values at nearby
data points, and a Finder decides which points count as nearby.
*/
package scatter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/ndinterp/math/interpolate"
)

// ExactDist is the distance below which a query is taken to coincide with a
// data point. Eval returns that point's value unchanged instead of dividing
// by a vanishing distance.
const ExactDist = 1e-10

// InvDist is an inverse distance weighting interpolator. The estimate at q
// is
//
//	sum_i v_i / d(q, p_i)  /  sum_i 1 / d(q, p_i)
//
// over the points p_i selected by its Finder, where d is the Euclidean
// distance. The interpolant passes through every data point but is not
// smooth there.
type InvDist struct {
	points [][]float64
	vals   []float64
	dim    int
	k      int
	finder Finder
}

type options struct {
	neighbors int
}

// Option configures an InvDist at construction time.
type Option func(*options)

// WithNeighbors restricts each estimate to the k data points nearest the
// query, found with a KDTree. The default, 0, uses every point.
func WithNeighbors(k int) Option {
	return func(o *options) { o.neighbors = k }
}

// NewInvDist creates an inverse distance weighting interpolator over the
// given points, which take on the values vals. All points must have the
// same, non-zero, number of coordinates. Both slices are copied.
//
// An error wrapping interpolate.ErrInvalidInput is returned if there are no
// points, if the lengths disagree, if any input is not finite, or if a
// negative neighbor count is requested.
func NewInvDist(
	points [][]float64, vals []float64, opts ...Option,
) (*InvDist, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(points) == 0 {
		return nil, invalidf("no points were given")
	} else if len(points) != len(vals) {
		return nil, invalidf("len(vals) = %d, but len(points) = %d",
			len(vals), len(points))
	} else if o.neighbors < 0 {
		return nil, invalidf("neighbor count %d is negative", o.neighbors)
	}

	dim := len(points[0])
	if dim == 0 {
		return nil, invalidf("points[0] has no coordinates")
	}
	flat := make([]float64, 0, dim*len(points))
	for i, p := range points {
		if len(p) != dim {
			return nil, invalidf("len(points[%d]) = %d, but len(points[0]) = %d",
				i, len(p), dim)
		}
		if !finite(p) {
			return nil, invalidf("points[%d] = %v is not finite", i, p)
		}
		flat = append(flat, p...)
	}
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidf("vals[%d] = %g is not finite", i, v)
		}
	}

	d := &InvDist{dim: dim, k: o.neighbors}
	d.points = make([][]float64, len(points))
	for i := range d.points {
		d.points[i] = flat[i*dim : (i+1)*dim : (i+1)*dim]
	}
	d.vals = append([]float64(nil), vals...)

	if d.k == 0 || d.k >= len(points) {
		d.k = len(points)
		d.finder = NewAll(len(points))
	} else {
		d.finder = NewKDTree(d.points, d.k)
	}

	return d, nil
}

// NewInvDistWithFinder is NewInvDist with a caller-supplied Finder. The
// indices returned by f refer to points.
func NewInvDistWithFinder(
	points [][]float64, vals []float64, f Finder,
) (*InvDist, error) {
	if f == nil {
		return nil, invalidf("finder is nil")
	}
	d, err := NewInvDist(points, vals)
	if err != nil {
		return nil, err
	}
	d.finder = f
	d.k = 0
	return d, nil
}

// Eval returns the interpolated value at q. It panics if len(q) is not the
// dimensionality of the data points.
func (d *InvDist) Eval(q []float64) float64 {
	d.checkQuery(q)
	return d.weigh(q, d.finder.Neighbors(q, nil))
}

// EvalAll evaluates the interpolator at every point in qs. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (d *InvDist) EvalAll(qs [][]float64, out ...[]float64) []float64 {
	var res []float64
	if len(out) == 0 {
		res = make([]float64, len(qs))
	} else {
		res = out[0]
	}

	var idx []int
	for i, q := range qs {
		d.checkQuery(q)
		idx = d.finder.Neighbors(q, idx)
		res[i] = d.weigh(q, idx)
	}
	return res
}

func (d *InvDist) checkQuery(q []float64) {
	if len(q) != d.dim {
		panic(fmt.Sprintf("len(q) = %d, but the points have %d coordinates",
			len(q), d.dim))
	}
}

// weigh combines the values of the points idx. A point within ExactDist of
// q short-circuits the sum.
func (d *InvDist) weigh(q []float64, idx []int) float64 {
	sum, norm := 0.0, 0.0
	for _, i := range idx {
		r := floats.Distance(q, d.points[i], 2)
		if r < ExactDist {
			return d.vals[i]
		}
		sum += d.vals[i] / r
		norm += 1 / r
	}
	return sum / norm
}

// Len returns the number of data points.
func (d *InvDist) Len() int { return len(d.vals) }

// Dim returns the number of coordinates of each data point.
func (d *InvDist) Dim() int { return d.dim }

// Neighbors returns the number of points which contribute to each estimate,
// or 0 if a custom Finder decides.
func (d *InvDist) Neighbors() int { return d.k }

// Release drops the interpolator's data. The interpolator must not be used
// afterwards. Calling Release more than once, or on a nil interpolator, is
// harmless.
func (d *InvDist) Release() {
	if d == nil {
		return
	}
	d.points, d.vals, d.finder = nil, nil, nil
	d.dim, d.k = 0, 0
}

func (d *InvDist) String() string {
	return fmt.Sprintf("InvDist{n: %d, dim: %d, neighbors: %d}",
		len(d.vals), d.dim, d.k)
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format,
		append([]interface{}{interpolate.ErrInvalidInput}, args...)...)
}
