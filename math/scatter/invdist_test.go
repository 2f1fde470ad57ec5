package scatter

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/ndinterp/math/interpolate"
)

func randPoints(rng *rand.Rand, n, dim int) [][]float64 {
	ps := make([][]float64, n)
	for i := range ps {
		ps[i] = make([]float64, dim)
		for d := range ps[i] {
			ps[i][d] = 10*rng.Float64() - 5
		}
	}
	return ps
}

func pointValues(ps [][]float64, f func([]float64) float64) []float64 {
	vals := make([]float64, len(ps))
	for i, p := range ps {
		vals[i] = f(p)
	}
	return vals
}

func smooth(p []float64) float64 {
	sum := 0.0
	for d, x := range p {
		sum += math.Sin(x + float64(d))
	}
	return sum
}

// nearest is a brute force Finder which sorts every point by distance.
type nearest struct {
	points [][]float64
	k      int
}

func (f *nearest) Neighbors(q []float64, buf []int) []int {
	buf = buf[:0]
	for i := range f.points {
		buf = append(buf, i)
	}
	sq := func(i int) float64 {
		return site{q, -1}.Distance(site{f.points[i], i})
	}
	sort.Slice(buf, func(i, j int) bool { return sq(buf[i]) < sq(buf[j]) })
	return buf[:min(f.k, len(buf))]
}

func TestInvDistWeights(t *testing.T) {
	d, err := NewInvDist([][]float64{{0}, {1}}, []float64{0, 1})
	require.NoError(t, err)
	// Weights 1/0.25 and 1/0.75.
	assert.InDelta(t, 0.25, d.Eval([]float64{0.25}), 1e-15)

	d, err = NewInvDist([][]float64{{0, 0}, {2, 0}}, []float64{1, 3})
	require.NoError(t, err)
	// Weights 1/0.5 and 1/1.5.
	assert.InDelta(t, 1.5, d.Eval([]float64{0.5, 0}), 1e-15)
	// Equidistant points are averaged.
	assert.InDelta(t, 2.0, d.Eval([]float64{1, 7}), 1e-15)
}

func TestInvDistExactHit(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ps := randPoints(rng, 50, 3)
	vals := pointValues(ps, smooth)

	for _, k := range []int{0, 1, 5} {
		d, err := NewInvDist(ps, vals, WithNeighbors(k))
		require.NoError(t, err)

		for i, p := range ps {
			assert.Equal(t, vals[i], d.Eval(p), "k = %d, i = %d", k, i)

			near := append([]float64(nil), p...)
			near[0] += ExactDist / 2
			assert.Equal(t, vals[i], d.Eval(near), "k = %d, i = %d", k, i)
		}
	}

	// Just outside the threshold the neighbor no longer short-circuits, but
	// it still dominates the sum.
	d, err := NewInvDist([][]float64{{0}, {1}}, []float64{2, 5})
	require.NoError(t, err)
	v := d.Eval([]float64{2 * ExactDist})
	assert.NotEqual(t, 2.0, v)
	assert.InDelta(t, 2.0, v, 1e-8)
}

func TestInvDistBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	ps := randPoints(rng, 80, 2)
	vals := pointValues(ps, smooth)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	for _, k := range []int{0, 4} {
		d, err := NewInvDist(ps, vals, WithNeighbors(k))
		require.NoError(t, err)
		for _, q := range randPoints(rng, 500, 2) {
			v := d.Eval(q)
			assert.True(t, v >= lo-1e-12 && v <= hi+1e-12,
				"k = %d, q = %v, v = %g", k, q, v)
		}
	}
}

func TestKDTreeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	ps := randPoints(rng, 300, 3)

	for _, k := range []int{1, 7, 300, 400} {
		tree := NewKDTree(ps, k)
		brute := &nearest{ps, k}
		for _, q := range randPoints(rng, 100, 3) {
			assert.Equal(t, brute.Neighbors(q, nil), tree.Neighbors(q, nil),
				"k = %d, q = %v", k, q)
		}
	}
}

func TestInvDistNeighborsMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	ps := randPoints(rng, 200, 4)
	vals := pointValues(ps, smooth)

	d, err := NewInvDist(ps, vals, WithNeighbors(6))
	require.NoError(t, err)
	assert.Equal(t, 6, d.Neighbors())
	ref, err := NewInvDistWithFinder(ps, vals, &nearest{ps, 6})
	require.NoError(t, err)
	assert.Equal(t, 0, ref.Neighbors())

	qs := randPoints(rng, 200, 4)
	want := ref.EvalAll(qs)
	got := d.EvalAll(qs)
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestInvDistAllNeighbors(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	ps := randPoints(rng, 30, 2)
	vals := pointValues(ps, smooth)

	all, err := NewInvDist(ps, vals)
	require.NoError(t, err)
	many, err := NewInvDist(ps, vals, WithNeighbors(100))
	require.NoError(t, err)
	assert.Equal(t, 30, all.Neighbors())
	assert.Equal(t, 30, many.Neighbors())

	qs := randPoints(rng, 50, 2)
	assert.Equal(t, all.EvalAll(qs), many.EvalAll(qs))
}

func TestInvDistEvalAll(t *testing.T) {
	rng := rand.New(rand.NewSource(16))
	ps := randPoints(rng, 40, 3)
	d, err := NewInvDist(ps, pointValues(ps, smooth), WithNeighbors(5))
	require.NoError(t, err)

	qs := randPoints(rng, 60, 3)
	out := make([]float64, len(qs))
	res := d.EvalAll(qs, out)
	assert.Same(t, &out[0], &res[0])
	for i, q := range qs {
		assert.Equal(t, d.Eval(q), res[i], "q = %v", q)
	}

	assert.Panics(t, func() { d.Eval([]float64{1, 2}) })
	assert.Panics(t, func() { d.EvalAll([][]float64{{1, 2, 3}, {1}}) })
}

func TestInvDistConcurrentEval(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	ps := randPoints(rng, 100, 2)
	d, err := NewInvDist(ps, pointValues(ps, smooth), WithNeighbors(8))
	require.NoError(t, err)

	qs := randPoints(rng, 300, 2)
	want := d.EvalAll(qs)

	g := new(errgroup.Group)
	results := make([][]float64, 6)
	for w := range results {
		w := w
		g.Go(func() error {
			res := make([]float64, len(qs))
			for i, q := range qs {
				res[i] = d.Eval(q)
			}
			results[w] = res
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, res := range results {
		assert.Equal(t, want, res)
	}
}

func TestInvDistCopiesInputAndRelease(t *testing.T) {
	ps := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	vals := []float64{1, 2, 3}
	d, err := NewInvDist(ps, vals, WithNeighbors(2))
	require.NoError(t, err)

	q := []float64{0.3, 0.4}
	before := d.Eval(q)
	ps[1][0], vals[2] = 0.31, -100
	assert.Equal(t, before, d.Eval(q))

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2, d.Dim())
	assert.Equal(t, "InvDist{n: 3, dim: 2, neighbors: 2}", d.String())

	d.Release()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, "InvDist{n: 0, dim: 0, neighbors: 0}", d.String())
	assert.NotPanics(t, d.Release)

	var nilInvDist *InvDist
	assert.NotPanics(t, nilInvDist.Release)
}

func TestInvDistInvalidInput(t *testing.T) {
	table := []struct {
		name   string
		points [][]float64
		vals   []float64
		opts   []Option
	}{
		{"empty", nil, nil, nil},
		{"length mismatch", [][]float64{{0}, {1}}, []float64{1}, nil},
		{"no coordinates", [][]float64{{}, {}}, []float64{1, 2}, nil},
		{"ragged", [][]float64{{0, 1}, {1}}, []float64{1, 2}, nil},
		{"nan coordinate", [][]float64{{0}, {math.NaN()}}, []float64{1, 2}, nil},
		{"inf coordinate", [][]float64{{math.Inf(-1)}, {1}}, []float64{1, 2}, nil},
		{"inf value", [][]float64{{0}, {1}}, []float64{1, math.Inf(1)}, nil},
		{"negative neighbors", [][]float64{{0}, {1}}, []float64{1, 2},
			[]Option{WithNeighbors(-1)}},
	}

	for _, test := range table {
		d, err := NewInvDist(test.points, test.vals, test.opts...)
		assert.Nil(t, d, test.name)
		assert.ErrorIs(t, err, interpolate.ErrInvalidInput, test.name)
	}

	_, err := NewInvDistWithFinder([][]float64{{0}}, []float64{1}, nil)
	assert.ErrorIs(t, err, interpolate.ErrInvalidInput)
}
