package fit

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the solvers.
var (
	ErrBadInput   = errors.New("fit: invalid input")
	ErrBadBounds  = errors.New("fit: lower bound above upper bound")
	ErrNoConverge = errors.New("fit: failed to converge")
)

// IsotonicOption configures Isotonic.
type IsotonicOption func(*isotonicConfig)

type isotonicConfig struct {
	decreasing bool
	lo, hi     float64
}

// Decreasing fits a non-increasing curve instead of a non-decreasing one.
func Decreasing() IsotonicOption {
	return func(c *isotonicConfig) {
		c.decreasing = true
	}
}

// WithBounds clips the fitted values to [lo, hi] after the fit. Passing NaN
// leaves that side unbounded.
func WithBounds(lo, hi float64) IsotonicOption {
	return func(c *isotonicConfig) {
		c.lo = lo
		c.hi = hi
	}
}

// Isotonic fits a monotone step curve to the points (x[i], y[i]) by the
// pool-adjacent-violators algorithm and returns the fitted values, one per
// input point. x must be strictly ascending. The fit minimizes the sum of
// squared deviations from y among all monotone sequences.
func Isotonic(x, y []float64, opts ...IsotonicOption) ([]float64, error) {
	cfg := isotonicConfig{lo: math.NaN(), hi: math.NaN()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrBadInput)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d coordinates, %d values", ErrBadInput, len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("%w: coordinates not strictly ascending at %d", ErrBadInput, i)
		}
	}
	if !math.IsNaN(cfg.lo) && !math.IsNaN(cfg.hi) && cfg.lo > cfg.hi {
		return nil, fmt.Errorf("%w: %g > %g", ErrBadBounds, cfg.lo, cfg.hi)
	}

	work := make([]float64, len(y))
	copy(work, y)
	if cfg.decreasing {
		for i := range work {
			work[i] = -work[i]
		}
	}

	out := pava(work)

	if cfg.decreasing {
		for i := range out {
			out[i] = -out[i]
		}
	}
	for i := range out {
		if !math.IsNaN(cfg.lo) && out[i] < cfg.lo {
			out[i] = cfg.lo
		}
		if !math.IsNaN(cfg.hi) && out[i] > cfg.hi {
			out[i] = cfg.hi
		}
	}
	return out, nil
}

// pava pools adjacent violators for a non-decreasing fit with uniform
// weights. Each block carries the running sum and count of the pooled
// points; a violation merges the offending blocks and replays against the
// new tail.
func pava(y []float64) []float64 {
	type block struct {
		sum   float64
		count float64
		width int
	}
	blocks := make([]block, 0, len(y))
	for _, v := range y {
		cur := block{sum: v, count: 1, width: 1}
		for len(blocks) > 0 {
			last := blocks[len(blocks)-1]
			if last.sum/last.count <= cur.sum/cur.count {
				break
			}
			cur.sum += last.sum
			cur.count += last.count
			cur.width += last.width
			blocks = blocks[:len(blocks)-1]
		}
		blocks = append(blocks, cur)
	}

	out := make([]float64, 0, len(y))
	for _, b := range blocks {
		mean := b.sum / b.count
		for i := 0; i < b.width; i++ {
			out = append(out, mean)
		}
	}
	return out
}
