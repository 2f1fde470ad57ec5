package interpolate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned by every constructor in this package when the
// supplied grid cannot be interpolated. The wrapped message names the
// offending slice and index. Use errors.Is to test for it.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}

// checkAxis verifies that xs is a usable grid axis.
func checkAxis(name string, xs []float64) error {
	if len(xs) < 2 {
		return invalidf("len(%s) = %d, but at least 2 points are needed",
			name, len(xs))
	}

	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return invalidf("%s[%d] = %g is not finite", name, i, x)
		}
	}

	for i := 0; i < len(xs)-1; i++ {
		if !(xs[i+1] > xs[i]) {
			return invalidf(
				"%s is not strictly increasing: %s[%d] = %g, %s[%d] = %g",
				name, name, i, xs[i], name, i+1, xs[i+1],
			)
		} else if math.IsInf(xs[i+1]-xs[i], 0) {
			return invalidf("width of cell %d of %s overflows: %s[%d] = %g, "+
				"%s[%d] = %g", i, name, name, i, xs[i], name, i+1, xs[i+1])
		}
	}

	return nil
}

func checkValues(vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("vals[%d] = %g is not finite", i, v)
		}
	}
	return nil
}

// checkSlopes verifies that the slopes estimated along an axis, and the
// slopes scaled by the width of each cell they bound, are finite. Values
// near the edge of the float64 range can pass checkValues and still
// overflow here.
func checkSlopes(name string, xs, slopes []float64) error {
	for i, m := range slopes {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return invalidf("slope along %s at %s[%d] = %g is not finite",
				name, name, i, xs[i])
		}
	}
	for i := 0; i < len(xs)-1; i++ {
		dx := xs[i+1] - xs[i]
		if math.IsInf(slopes[i]*dx, 0) || math.IsInf(slopes[i+1]*dx, 0) {
			return invalidf("slopes in cell %d of %s overflow", i, name)
		}
	}
	return nil
}
