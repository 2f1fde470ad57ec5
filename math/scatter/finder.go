package scatter

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Finder selects the data points which contribute to the estimate at a
// query point. Finders are read-only after construction and may be shared
// between goroutines.
type Finder interface {
	// Neighbors appends the indices of the selected points to buf[:0] and
	// returns the result.
	Neighbors(q []float64, buf []int) []int
}

var (
	_ Finder = &All{}
	_ Finder = &KDTree{}
)

// All is a Finder which selects every point. Combined with InvDist this is
// Shepard's global inverse distance weighting.
type All struct {
	n int
}

// NewAll creates a Finder over n points.
func NewAll(n int) *All { return &All{n} }

func (f *All) Neighbors(q []float64, buf []int) []int {
	buf = buf[:0]
	for i := 0; i < f.n; i++ {
		buf = append(buf, i)
	}
	return buf
}

// KDTree is a Finder which selects the k points closest to the query, in
// order of increasing distance.
type KDTree struct {
	tree *kdtree.Tree
	k    int
}

// NewKDTree builds a k-d tree over points and returns a Finder which selects
// the k nearest of them. points must be non-empty and share one
// dimensionality. The coordinates are not copied and must not be modified
// while the tree is in use.
func NewKDTree(points [][]float64, k int) *KDTree {
	ss := make(sites, len(points))
	for i, x := range points {
		ss[i] = site{x, i}
	}
	return &KDTree{tree: kdtree.New(ss, false), k: k}
}

func (f *KDTree) Neighbors(q []float64, buf []int) []int {
	keep := kdtree.NewNKeeper(f.k)
	f.tree.NearestSet(keep, site{q, -1})

	buf = buf[:0]
	for _, c := range keep.Heap {
		if s, ok := c.Comparable.(site); ok {
			buf = append(buf, s.i)
		}
	}
	return buf
}

// site is a point tagged with its index in the input.
type site struct {
	x []float64
	i int
}

func (p site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.x[d] - c.(site).x[d]
}

func (p site) Dims() int { return len(p.x) }

// Distance returns the squared Euclidean distance between p and c.
func (p site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	sum := 0.0
	for d := range p.x {
		dx := p.x[d] - q.x[d]
		sum += dx * dx
	}
	return sum
}

type sites []site

func (s sites) Index(i int) kdtree.Comparable         { return s[i] }
func (s sites) Len() int                              { return len(s) }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

func (s sites) Pivot(d kdtree.Dim) int {
	p := plane{s, d}
	return kdtree.Partition(p, kdtree.MedianOfRandoms(p, 100))
}

// plane orders sites along a single dimension.
type plane struct {
	sites
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.sites[i].x[p.Dim] < p.sites[j].x[p.Dim]
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{p.sites[start:end], p.Dim}
}

func (p plane) Swap(i, j int) { p.sites[i], p.sites[j] = p.sites[j], p.sites[i] }
