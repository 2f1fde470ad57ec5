package ndinterp

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/ndinterp/io"
	"github.com/phil-mansfield/ndinterp/math/interpolate"
)

const (
	// Batches are split into blocks of this many points. Cancellation is
	// checked between blocks.
	BlockSize = 1 << 12
)

// Evaluator evaluates large batches of points against an interpolator using
// several goroutines. Interpolators are immutable, so the goroutines share
// one instance and each walks a contiguous block of the batch with its own
// search hint.
type Evaluator struct {
	workers int
	log     bool
}

// NewEvaluator creates an Evaluator which uses up to workers goroutines. If
// workers is not positive, the number of logical cores is used.
func NewEvaluator(workers int) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{workers: workers}
}

// NewEvaluatorFromConfig creates an Evaluator with the worker count and
// logging flag of con.
func NewEvaluatorFromConfig(con *io.InterpolatorConfig) *Evaluator {
	e := NewEvaluator(con.Workers)
	e.Log(con.Log)
	return e
}

// Log turns logging of batch sizes and timings on or off.
func (e *Evaluator) Log(flag bool) { e.log = flag }

// Workers returns the maximum number of goroutines used per batch.
func (e *Evaluator) Workers() int { return e.workers }

// EvalAll evaluates intr at every point in xs. If an output array is given,
// the output is written to that array and returned. The context is checked
// between blocks of BlockSize points; if it is cancelled, its error is
// returned and the contents of the output are unspecified.
func (e *Evaluator) EvalAll(
	ctx context.Context, intr interpolate.Interpolator,
	xs []float64, out ...[]float64,
) ([]float64, error) {
	res, err := outBuffer(len(xs), out)
	if err != nil {
		return nil, err
	}

	err = e.run(ctx, len(xs), func(lo, hi int) {
		intr.EvalAll(xs[lo:hi], res[lo:hi])
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EvalAll2D evaluates intr at every point (as[i], bs[i]). It otherwise
// behaves like EvalAll.
func (e *Evaluator) EvalAll2D(
	ctx context.Context, intr interpolate.BiInterpolator,
	as, bs []float64, out ...[]float64,
) ([]float64, error) {
	if len(as) != len(bs) {
		return nil, fmt.Errorf("%w: len(as) = %d, but len(bs) = %d",
			interpolate.ErrInvalidInput, len(as), len(bs))
	}
	res, err := outBuffer(len(as), out)
	if err != nil {
		return nil, err
	}

	err = e.run(ctx, len(as), func(lo, hi int) {
		intr.EvalAll(as[lo:hi], bs[lo:hi], res[lo:hi])
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// run splits [0, n) into contiguous ranges, one per worker, and calls f on
// every block of every range.
func (e *Evaluator) run(ctx context.Context, n int, f func(lo, hi int)) error {
	workers := e.batchWorkers(n)

	var start time.Time
	if e.log {
		start = time.Now()
		log.Printf("Evaluating %d points with %d workers.", n, workers)
	}

	if workers <= 1 {
		for lo := 0; lo < n; lo += BlockSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			f(lo, min(lo+BlockSize, n))
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		span := (n + workers - 1) / workers
		for wlo := 0; wlo < n; wlo += span {
			wlo := wlo
			whi := min(wlo+span, n)
			g.Go(func() error {
				for lo := wlo; lo < whi; lo += BlockSize {
					if err := gctx.Err(); err != nil {
						return err
					}
					f(lo, min(lo+BlockSize, whi))
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	if e.log {
		log.Printf("Evaluated %d points in %s.", n, time.Since(start))
	}
	return nil
}

// batchWorkers returns the number of goroutines used for a batch of n
// points: at most one per block, and never fewer than one.
func (e *Evaluator) batchWorkers(n int) int {
	blocks := (n + BlockSize - 1) / BlockSize
	return max(min(e.workers, blocks), 1)
}

func outBuffer(n int, out [][]float64) ([]float64, error) {
	if len(out) == 0 {
		return make([]float64, n), nil
	}
	if len(out[0]) < n {
		return nil, fmt.Errorf("%w: len(out) = %d, but %d points are queried",
			interpolate.ErrInvalidInput, len(out[0]), n)
	}
	return out[0][:n], nil
}
