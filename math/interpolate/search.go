package interpolate

// searcher maps a point to the grid cell which contains it. A searcher is
// never written to after init, so one value can be shared by any number of
// goroutines. Callers which walk through sorted points carry their own hint
// instead (see searchFrom).
type searcher struct {
	xs      []float64
	x0, lim float64
	n       int

	// Usually the input data is close to uniform. This is our estimate of
	// the point spacing.
	dx float64
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.n = len(xs)
	s.x0, s.lim = xs[0], xs[s.n-1]
	s.dx = (s.lim - s.x0) / float64(s.n-1)
}

// search returns the index i of the cell with xs[i] <= x < xs[i+1].
//
// Points outside the grid are not an error: anything below xs[0] maps to the
// first cell and anything at or above the last grid line maps to the last
// cell, so the boundary cells are extended.
func (s *searcher) search(x float64) int {
	return s.searchFrom(x, -1)
}

// searchFrom is search with a hint, usually the cell returned for the
// previous point of a batch. The hinted cell and its right neighbor are
// checked first, then a guess under the assumption of uniform spacing, then
// a binary search. A negative hint skips the first check.
func (s *searcher) searchFrom(x float64, hint int) int {
	if i, ok := s.hinted(x, hint); ok {
		return i
	}
	return s.bisect(x)
}

// hinted tries every constant time lookup done by searchFrom. ok is false if
// none of them found the cell.
func (s *searcher) hinted(x float64, hint int) (i int, ok bool) {
	last := s.n - 2
	if x < s.x0 {
		return 0, true
	} else if x >= s.lim {
		return last, true
	}

	xs := s.xs
	if hint >= 0 && hint <= last && xs[hint] <= x {
		if x < xs[hint+1] {
			return hint, true
		}
		if hint < last && x < xs[hint+2] {
			return hint + 1, true
		}
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.x0) / s.dx)
	if guess >= 0 && guess <= last && xs[guess] <= x && x < xs[guess+1] {
		return guess, true
	}

	return 0, false
}

// bisect finds the cell of a point strictly inside the grid by binary
// search.
func (s *searcher) bisect(x float64) int {
	// xs[lo] <= x < xs[hi] holds throughout.
	xs := s.xs
	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo
}

// cell returns the bounds of cell i.
func (s *searcher) cell(i int) (x1, x2 float64) {
	return s.xs[i], s.xs[i+1]
}
