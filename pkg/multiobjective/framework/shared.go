package framework

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

type filterConfig struct {
	tolerance float64
}

// FilterOption tunes the dominance relation.
type FilterOption func(*filterConfig)

// WithEqualityTolerance treats two points as equal when every objective
// differs by at most tol. It never relaxes the "no worse than" test.
func WithEqualityTolerance(tol float64) FilterOption {
	return func(c *filterConfig) {
		c.tolerance = tol
	}
}

func newFilterConfig(opts []FilterOption) filterConfig {
	var c filterConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Dominates checks if point a dominates point b, that is a is no worse than b
// in every objective and the two points are not equal. Any comparison with
// NaN is false, so a point holding NaN neither dominates nor is dominated.
// Points of different length never dominate each other.
func Dominates(a, b ObjectiveSpacePoint, opts ...FilterOption) bool {
	if len(a) != len(b) {
		return false
	}
	return dominates(a, b, newFilterConfig(opts).tolerance)
}

func dominates(a, b []float64, tol float64) bool {
	for i := range a {
		if !(a[i] <= b[i]) {
			return false
		}
	}
	return !equal(a, b, tol)
}

func equal(a, b []float64, tol float64) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !(math.Abs(a[i]-b[i]) <= tol) {
			return false
		}
	}
	return true
}

// isDominated scans every other row in index order and stops at the first
// one dominating row i.
func isDominated(rows [][]float64, i int, tol float64) bool {
	for j := range rows {
		if j != i && dominates(rows[j], rows[i], tol) {
			return true
		}
	}
	return false
}

// NonDominated returns a mask marking the rows of m that no other row
// dominates. It compares every pair of rows, O(M^2 * N).
func NonDominated(m *ObjectiveMatrix, opts ...FilterOption) []bool {
	cfg := newFilterConfig(opts)
	rows := m.rowViews()
	mask := make([]bool, len(rows))
	for i := range rows {
		mask[i] = !isDominated(rows, i, cfg.tolerance)
	}
	return mask
}

// NonDominatedConcurrent computes the same mask as NonDominated, splitting
// the rows across at most workers goroutines.
func NonDominatedConcurrent(ctx context.Context, m *ObjectiveMatrix, workers int, opts ...FilterOption) ([]bool, error) {
	cfg := newFilterConfig(opts)
	rows := m.rowViews()
	mask := make([]bool, len(rows))
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(rows) + workers - 1) / workers
	for start := 0; start < len(rows); start += chunk {
		start, end := start, min(start+chunk, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				mask[i] = !isDominated(rows, i, cfg.tolerance)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mask, nil
}

// FilterRows validates rows as an ObjectiveMatrix and returns its
// non-dominated mask.
func FilterRows(rows [][]float64, opts ...FilterOption) ([]bool, error) {
	m, err := NewObjectiveMatrix(rows)
	if err != nil {
		return nil, err
	}
	return NonDominated(m, opts...), nil
}
