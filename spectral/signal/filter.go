package signal

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/filter"
)

// FilterOption configures WindowFilter.
type FilterOption func(*filterConfig)

type filterConfig struct {
	kind        filter.KernelKind
	useKernel   bool
	polyorder   int
	extrapolate bool
}

// WithKernel smooths by convolution with the given kernel shape instead
// of the default Savitzky-Golay polynomial filter.
func WithKernel(kind filter.KernelKind) FilterOption {
	return func(c *filterConfig) {
		c.kind = kind
		c.useKernel = true
	}
}

// WithPolyOrder sets the Savitzky-Golay polynomial order. The default
// is 2. The order must be smaller than the window sample count.
func WithPolyOrder(p int) FilterOption {
	return func(c *filterConfig) { c.polyorder = p }
}

// WithExtrapolate extends the signal by half a window on each side
// before filtering, so the output edges are computed from full windows
// instead of edge handling.
func WithExtrapolate() FilterOption {
	return func(c *filterConfig) { c.extrapolate = true }
}

// WindowFilter smooths every channel with a sliding window of the given
// width in domain units. The domain must be uniformly spaced. The width
// is converted to a sample count; a width that is not an integral
// multiple of the domain interval is truncated with a logged warning.
//
// By default a Savitzky-Golay filter of order 2 is applied and the
// sample count is forced up to the next odd number. WithKernel selects
// plain kernel convolution instead.
func (s *Signal) WindowFilter(width float64, opts ...FilterOption) (*Signal, error) {
	cfg := filterConfig{polyorder: 2}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if width <= 0 || math.IsNaN(width) {
		return nil, fmt.Errorf("%w: width must be > 0, got %g", ErrWindow, width)
	}
	interval, uniform := s.dom.Interval()
	if !uniform {
		return nil, fmt.Errorf("signal: window filter: %w", domain.ErrNotUniform)
	}
	ratio := width / interval
	m := int(ratio)
	if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
		slog.Warn("window width is not an integral multiple of the domain interval, truncating",
			"width", width, "interval", interval, "samples", m)
	}
	if m < 1 {
		return nil, fmt.Errorf("%w: width %g narrower than the domain interval %g", ErrWindow, width, interval)
	}
	if !cfg.useKernel {
		m += (m + 1) % 2
	}
	if m > s.dom.Len() {
		return nil, fmt.Errorf("%w: %d samples wide for %d samples of data", ErrWindow, m, s.dom.Len())
	}

	var kernel []float64
	if cfg.useKernel {
		var err error
		kernel, err = filter.Kernel(m, cfg.kind)
		if err != nil {
			return nil, err
		}
	}

	out := s.clone()
	if cfg.extrapolate {
		ext, left, err := s.extended(m)
		if err != nil {
			return nil, err
		}
		n := s.dom.Len()
		for c := range ext {
			var sm []float64
			var err error
			if cfg.useKernel {
				sm, err = filter.ConvolveMode(ext[c], kernel, filter.ModeValid)
			} else {
				sm, err = filter.SavGolFilter(ext[c], m, cfg.polyorder)
				if err == nil {
					sm = append([]float64(nil), sm[left:left+n]...)
				}
			}
			if err != nil {
				return nil, err
			}
			out.data[c] = sm
		}
		return out, nil
	}
	for c, ch := range s.data {
		var sm []float64
		var err error
		if cfg.useKernel {
			sm, err = filter.ConvolveMode(ch, kernel, filter.ModeSame)
		} else {
			sm, err = filter.SavGolFilter(ch, m, cfg.polyorder)
		}
		if err != nil {
			return nil, err
		}
		out.data[c] = sm
	}
	return out, nil
}

// extended evaluates every channel on the domain extended by a window's
// worth of coordinates, split across both sides, using the signal's
// interpolator beyond the edges.
func (s *Signal) extended(m int) (ext [][]float64, left int, err error) {
	left = (m - 1) / 2
	right := m / 2
	d, err := s.dom.Extend(left, true)
	if err != nil {
		return nil, 0, err
	}
	d, err = d.Extend(right, false)
	if err != nil {
		return nil, 0, err
	}
	ins, err := s.interpolants()
	if err != nil {
		return nil, 0, err
	}
	xs := d.Values()
	ext = make([][]float64, len(ins))
	for c, in := range ins {
		ch := make([]float64, len(xs))
		for k, x := range xs {
			ch[k] = s.clip(c, in.Predict(x))
		}
		ext[c] = ch
	}
	return ext, left, nil
}
