package interpolate

import (
	"fmt"
)

// Cubic2D is a bi-cubic interpolator built as a tensor product of the 1D
// Hermite scheme used by Cubic1D.
//
// The order of the two passes is fixed: Eval first interpolates along axis A
// at (up to) four grid lines of axis B around the point, then interpolates
// those four intermediate values along axis B. The scheme is not symmetric
// under swapping the axes, so a table built with its axes transposed will
// give slightly different results between grid points. This matches
// LHAPDF's bicubic scheme with A = log(x) and B = log(Q^2).
type Cubic2D struct {
	as, bs searcher
	na, nb int
	// vals(ia, ib) -> vals[ia*nb + ib]. dAs has the same layout and holds
	// the slope along axis A at every grid point.
	vals []float64
	dAs  []float64
	tan  Tangent
}

// NewCubic2D creates a bi-cubic interpolator on top of a grid with the
// values given by vals. The values of the A and B grid lines are given by as
// and bs, both strictly increasing. vals is row-major with one row per
// point of as: vals(ia, ib) -> vals[ia*len(bs) + ib]. All slices are copied.
//
// An error wrapping ErrInvalidInput is returned if
// len(vals) != len(as) * len(bs), if either axis has fewer than two points or
// is not strictly increasing, if any input is not finite, or if a cell width
// or slope along either axis overflows.
func NewCubic2D(as, bs, vals []float64, opts ...Option) (*Cubic2D, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	if err := checkAxis("as", as); err != nil {
		return nil, err
	}
	if err := checkAxis("bs", bs); err != nil {
		return nil, err
	}
	if len(as)*len(bs) != len(vals) {
		return nil, invalidf("len(vals) = %d, but len(as) = %d and len(bs) = %d",
			len(vals), len(as), len(bs))
	}
	if err := checkValues(vals); err != nil {
		return nil, err
	}

	c := &Cubic2D{tan: o.tangent}
	c.as.init(append([]float64(nil), as...))
	c.bs.init(append([]float64(nil), bs...))
	c.na, c.nb = len(as), len(bs)
	c.vals = append([]float64(nil), vals...)
	if err := c.initSlopes(); err != nil {
		return nil, err
	}

	return c, nil
}

// NewCubic2DTable is NewCubic2D for a table given as one row per point of
// as, each row holding one value per point of bs.
func NewCubic2DTable(
	as, bs []float64, rows [][]float64, opts ...Option,
) (*Cubic2D, error) {
	if len(rows) != len(as) {
		return nil, invalidf("len(rows) = %d, but len(as) = %d",
			len(rows), len(as))
	}

	vals := make([]float64, 0, len(as)*len(bs))
	for ia, row := range rows {
		if len(row) != len(bs) {
			return nil, invalidf("len(rows[%d]) = %d, but len(bs) = %d",
				ia, len(row), len(bs))
		}
		vals = append(vals, row...)
	}

	return NewCubic2D(as, bs, vals, opts...)
}

// NewUniformCubic2D creates a bi-cubic interpolator on top of a uniform grid
// with the values given by vals. The A and B grid lines start at a0 and b0
// and increase with steps of da and db, respectively. vals is laid out as in
// NewCubic2D.
func NewUniformCubic2D(
	a0, da float64, na int,
	b0, db float64, nb int,
	vals []float64, opts ...Option,
) (*Cubic2D, error) {
	if na < 2 || nb < 2 {
		return nil, invalidf("na = %d and nb = %d, but at least 2 points "+
			"are needed along each axis", na, nb)
	}
	return NewCubic2D(uniformAxis(a0, da, na), uniformAxis(b0, db, nb),
		vals, opts...)
}

// initSlopes fills dAs with the slope along axis A at every grid point,
// treating each grid line of axis B as an independent 1D table.
//
// Slopes along B are estimated during evaluation, but the ones at the grid
// points are still checked here so that overflowing rows are rejected.
func (c *Cubic2D) initSlopes() error {
	c.dAs = make([]float64, len(c.vals))
	line, slopes := make([]float64, c.na), make([]float64, c.na)

	for ib := 0; ib < c.nb; ib++ {
		for ia := range line {
			line[ia] = c.vals[ia*c.nb+ib]
		}
		c.tan.slopes(c.as.xs, line, slopes)
		if err := checkSlopes("as", c.as.xs, slopes); err != nil {
			return err
		}
		for ia := range slopes {
			c.dAs[ia*c.nb+ib] = slopes[ia]
		}
	}

	row := make([]float64, c.nb)
	for ia := 0; ia < c.na; ia++ {
		c.tan.slopes(c.bs.xs, c.vals[ia*c.nb:(ia+1)*c.nb], row)
		if err := checkSlopes("bs", c.bs.xs, row); err != nil {
			return err
		}
	}

	return nil
}

// Eval evaluates the bi-cubic interpolator at (a, b). Points outside the
// grid are extrapolated along each axis independently.
func (c *Cubic2D) Eval(a, b float64) float64 {
	return c.evalCell(c.as.search(a), c.bs.search(b), a, b)
}

func (c *Cubic2D) evalCell(ia, ib int, a, b float64) float64 {
	// Grid lines of B which contribute: up to one below and two above ib.
	lo, hi := ib-1, ib+2
	if lo < 0 {
		lo = 0
	}
	if hi > c.nb-1 {
		hi = c.nb - 1
	}

	// First pass: along A on each contributing line.
	a1, a2 := c.as.cell(ia)
	da := a2 - a1
	t := (a - a1) / da

	var buf [4]float64
	gs := buf[:hi-lo+1]
	for jb := lo; jb <= hi; jb++ {
		k1, k2 := ia*c.nb+jb, (ia+1)*c.nb+jb
		gs[jb-lo] = hermite(t, c.vals[k1], c.vals[k2],
			c.dAs[k1]*da, c.dAs[k2]*da)
	}

	// Second pass: along B through the intermediate values. The window
	// only reaches an end of gs where it reaches an end of the grid, so
	// the one-sided slopes in Tangent.at line up with the grid boundary.
	bs := c.bs.xs[lo : hi+1]
	k := ib - lo
	db := bs[k+1] - bs[k]
	u := (b - bs[k]) / db
	m1 := c.tan.at(bs, gs, k) * db
	m2 := c.tan.at(bs, gs, k+1) * db

	return hermite(u, gs[k], gs[k+1], m1, m2)
}

// EvalAll evaluates the interpolator at all the given (a, b) values. If an
// output array is given, the output is written to that array (the array is
// still returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (c *Cubic2D) EvalAll(as, bs []float64, out ...[]float64) []float64 {
	if len(as) != len(bs) {
		panic(fmt.Sprintf("len(as) = %d, but len(bs) = %d", len(as), len(bs)))
	}

	res := outBuffer(len(as), out)
	ia, ib := -1, -1
	for i := range as {
		ia = c.as.searchFrom(as[i], ia)
		ib = c.bs.searchFrom(bs[i], ib)
		res[i] = c.evalCell(ia, ib, as[i], bs[i])
	}
	return res
}

// EvalAllA evaluates the interpolator along the line of constant b at every
// point in as.
func (c *Cubic2D) EvalAllA(as []float64, b float64, out ...[]float64) []float64 {
	res := outBuffer(len(as), out)
	ib := c.bs.search(b)
	ia := -1
	for i, a := range as {
		ia = c.as.searchFrom(a, ia)
		res[i] = c.evalCell(ia, ib, a, b)
	}
	return res
}

// EvalAllB evaluates the interpolator along the line of constant a at every
// point in bs.
func (c *Cubic2D) EvalAllB(a float64, bs []float64, out ...[]float64) []float64 {
	res := outBuffer(len(bs), out)
	ia := c.as.search(a)
	ib := -1
	for i, b := range bs {
		ib = c.bs.searchFrom(b, ib)
		res[i] = c.evalCell(ia, ib, a, b)
	}
	return res
}

// Bounds returns the corners of the grid.
func (c *Cubic2D) Bounds() (aLo, aHi, bLo, bHi float64) {
	return c.as.x0, c.as.lim, c.bs.x0, c.bs.lim
}

// Contains returns true if (a, b) lies inside the grid, i.e. if Eval(a, b)
// would not extrapolate along either axis.
func (c *Cubic2D) Contains(a, b float64) bool {
	return a >= c.as.x0 && a <= c.as.lim && b >= c.bs.x0 && b <= c.bs.lim
}

// Shape returns the number of grid lines along A and B.
func (c *Cubic2D) Shape() (na, nb int) { return c.na, c.nb }

// Tangent returns the slope scheme the interpolator was built with.
func (c *Cubic2D) Tangent() Tangent { return c.tan }

// Release drops the interpolator's grid. The interpolator must not be used
// afterwards. Calling Release more than once, or on a nil interpolator, is
// harmless.
func (c *Cubic2D) Release() {
	if c == nil {
		return
	}
	c.as, c.bs = searcher{}, searcher{}
	c.na, c.nb = 0, 0
	c.vals, c.dAs = nil, nil
}

func (c *Cubic2D) String() string {
	return fmt.Sprintf(
		"Cubic2D{shape: %dx%d, a: [%g, %g], b: [%g, %g], tangent: %s}",
		c.na, c.nb, c.as.x0, c.as.lim, c.bs.x0, c.bs.lim, c.tan,
	)
}
