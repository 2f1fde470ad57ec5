/*package ndinterp interpolates functions tabulated on rectilinear grids with
cubic Hermite polynomials.

The grid interpolators live in math/interpolate and the scattered data
interpolator in math/scatter. This package exposes them through a
handle-style API (Build1D, Evaluate1D, Build2D, Evaluate2D, BuildScattered,
EvaluateScattered, Release) and provides Evaluator, which spreads large
batches of points over several goroutines.
*/
package ndinterp

import (
	"github.com/phil-mansfield/ndinterp/math/interpolate"
	"github.com/phil-mansfield/ndinterp/math/scatter"
)

// Releaser is implemented by interpolators which can drop their grids before
// they are garbage collected.
type Releaser interface {
	Release()
}

var (
	_ Releaser = &interpolate.Cubic1D{}
	_ Releaser = &interpolate.Cubic2D{}
	_ Releaser = &scatter.InvDist{}
)

// Build1D creates a 1D interpolator over the strictly increasing points xs
// with the values vals. See interpolate.NewCubic1D.
func Build1D(
	xs, vals []float64, opts ...interpolate.Option,
) (*interpolate.Cubic1D, error) {
	return interpolate.NewCubic1D(xs, vals, opts...)
}

// Evaluate1D evaluates a 1D interpolator at x.
func Evaluate1D(intr *interpolate.Cubic1D, x float64) float64 {
	return intr.Eval(x)
}

// Build2D creates a 2D interpolator over the grid as x bs with the row-major
// values vals, vals(ia, ib) -> vals[ia*len(bs) + ib]. See
// interpolate.NewCubic2D.
func Build2D(
	as, bs, vals []float64, opts ...interpolate.Option,
) (*interpolate.Cubic2D, error) {
	return interpolate.NewCubic2D(as, bs, vals, opts...)
}

// Evaluate2D evaluates a 2D interpolator at (a, b).
func Evaluate2D(intr *interpolate.Cubic2D, a, b float64) float64 {
	return intr.Eval(a, b)
}

// BuildScattered creates an inverse distance weighting interpolator over
// scattered points. See scatter.NewInvDist.
func BuildScattered(
	points [][]float64, vals []float64, opts ...scatter.Option,
) (*scatter.InvDist, error) {
	return scatter.NewInvDist(points, vals, opts...)
}

// EvaluateScattered evaluates a scattered data interpolator at q.
func EvaluateScattered(intr *scatter.InvDist, q []float64) float64 {
	return intr.Eval(q)
}

// Release drops the grid held by an interpolator. A nil handle is ignored,
// and releasing the same handle twice is harmless.
func Release(intr Releaser) {
	if intr == nil {
		return
	}
	intr.Release()
}
