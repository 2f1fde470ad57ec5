/*package interpolate implements cubic Hermite interpolators over rectilinear
grids in one and two dimensions.

Interpolators are built once from tabulated data and are immutable
afterwards. They own copies of the arrays they were built from and keep no
lookup cache on the instance, so Eval may be called from any number of
goroutines at once. Batch methods (EvalAll and friends) keep a search hint on
the stack instead, which makes sorted batches cost O(1) per point.

Points outside the grid are extrapolated with the polynomial of the nearest
boundary cell, independently along each axis. Use Contains to reject them if
that is not wanted.
*/
package interpolate

// Interpolator is a 1D interpolator.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequence of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Cubic1D{}
)

// BiInterpolator is a 2D interpolator.
type BiInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(a, b float64) float64
	// EvalAll evaluates a sequence of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(as, bs []float64, out ...[]float64) []float64

	EvalAllA(as []float64, b float64, out ...[]float64) []float64
	EvalAllB(a float64, bs []float64, out ...[]float64) []float64
}

var (
	_ BiInterpolator = &Cubic2D{}
)

type options struct {
	tangent Tangent
}

// Option configures an interpolator at construction time.
type Option func(*options)

// WithTangent sets the scheme used to estimate slopes at interior grid
// points. The default is Centered.
func WithTangent(tan Tangent) Option {
	return func(o *options) { o.tangent = tan }
}

func newOptions(opts []Option) (*options, error) {
	o := &options{tangent: Centered}
	for _, opt := range opts {
		opt(o)
	}
	if !o.tangent.valid() {
		return nil, invalidf("unknown tangent scheme %s", o.tangent)
	}
	return o, nil
}

func outBuffer(n int, out [][]float64) []float64 {
	if len(out) == 0 {
		return make([]float64, n)
	}
	return out[0]
}

func uniformAxis(x0, dx float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = x0 + float64(i)*dx
	}
	return xs
}
