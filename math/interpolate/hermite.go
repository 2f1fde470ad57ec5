package interpolate

import (
	"fmt"
)

// Tangent selects how the slope of the interpolant is estimated at interior
// grid points. At the two ends of an axis only one neighboring cell exists,
// so every scheme falls back to that cell's secant there. This makes the
// boundary cells lower order than interior ones.
type Tangent int

const (
	// Centered averages the secants of the two cells adjacent to a point.
	// This is the scheme LHAPDF uses for alpha_s and PDF grids and is the
	// default.
	Centered Tangent = iota
	// Monotone uses the Fritsch-Butland weighted harmonic mean of the two
	// secants and a zero slope at local extrema, so monotone data gives a
	// monotone interpolant.
	Monotone
)

func (tan Tangent) String() string {
	switch tan {
	case Centered:
		return "Centered"
	case Monotone:
		return "Monotone"
	}
	return fmt.Sprintf("Tangent(%d)", int(tan))
}

func (tan Tangent) valid() bool {
	return tan == Centered || tan == Monotone
}

// knot estimates the slope at a point whose left cell has width hl and
// secant dl and whose right cell has width hr and secant dr.
func (tan Tangent) knot(hl, dl, hr, dr float64) float64 {
	switch tan {
	case Monotone:
		if dl*dr <= 0 {
			return 0
		}
		wl, wr := 2*hr+hl, hr+2*hl
		return (wl + wr) / (wl/dl + wr/dr)
	default:
		return 0.5 * (dl + dr)
	}
}

// at returns the slope dy/dx at point k of the samples (xs, ys).
func (tan Tangent) at(xs, ys []float64, k int) float64 {
	n := len(xs)
	switch k {
	case 0:
		return secant(xs, ys, 0)
	case n - 1:
		return secant(xs, ys, n-2)
	}
	return tan.knot(
		xs[k]-xs[k-1], secant(xs, ys, k-1),
		xs[k+1]-xs[k], secant(xs, ys, k),
	)
}

// slopes writes the slope at every point of (xs, ys) to out.
func (tan Tangent) slopes(xs, ys, out []float64) {
	for k := range xs {
		out[k] = tan.at(xs, ys, k)
	}
}

func secant(xs, ys []float64, i int) float64 {
	return (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
}

// hermite evaluates the cubic Hermite polynomial at t in [0, 1] for a cell
// with end values y0 and y1 and end slopes m0 and m1. The slopes must
// already be multiplied by the cell width. The result is exactly y0 at t = 0
// and exactly y1 at t = 1.
func hermite(t, y0, y1, m0, m1 float64) float64 {
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*y0 + h10*m0 + h01*y1 + h11*m1
}

// hermiteDeriv is the derivative of hermite with respect to t.
func hermiteDeriv(t, y0, y1, m0, m1 float64) float64 {
	t2 := t * t

	d00 := 6*t2 - 6*t
	d10 := 3*t2 - 4*t + 1
	d01 := -6*t2 + 6*t
	d11 := 3*t2 - 2*t

	return d00*y0 + d10*m0 + d01*y1 + d11*m1
}
