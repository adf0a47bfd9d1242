package signal

import (
	"math"

	"github.com/cwbudde/algo-spectral/spectral/interp"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Option configures signal construction.
type Option func(*config)

type config struct {
	u          unit.Unit
	domainAxis int
	labels     []string
	name       string
	attrs      map[string]string
	builder    interp.Builder
	clipMin    []float64
	clipMax    []float64
	domainMin  float64
	domainMax  float64
}

func defaultConfig() config {
	return config{
		builder:   interp.Linear(),
		domainMin: math.NaN(),
		domainMax: math.NaN(),
	}
}

// WithUnit sets the value unit. The default is dimensionless.
func WithUnit(u unit.Unit) Option {
	return func(c *config) { c.u = u }
}

// WithDomainAxis sets which axis of two-dimensional values runs along the
// domain: 0 when rows are domain samples (the default), 1 when rows are
// channels. One-dimensional signals always use axis 0.
func WithDomainAxis(axis int) Option {
	return func(c *config) { c.domainAxis = axis }
}

// WithLabels names the channels. The number of labels must match the
// channel count.
func WithLabels(labels ...string) Option {
	return func(c *config) {
		c.labels = make([]string, len(labels))
		copy(c.labels, labels)
	}
}

// WithName names the signal.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithAttrs attaches free-form metadata to the signal.
func WithAttrs(attrs map[string]string) Option {
	return func(c *config) {
		c.attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			c.attrs[k] = v
		}
	}
}

// WithInterpolator selects the interpolator used for evaluation and
// resampling. The default is interp.Linear.
func WithInterpolator(b interp.Builder) Option {
	return func(c *config) { c.builder = b }
}

// WithClipMin clips interpolated values of all channels below at v.
func WithClipMin(v float64) Option {
	return func(c *config) { c.clipMin = []float64{v} }
}

// WithClipMax clips interpolated values of all channels above at v.
func WithClipMax(v float64) Option {
	return func(c *config) { c.clipMax = []float64{v} }
}

// WithClipMinPerChannel clips interpolated values below at a separate
// bound per channel. The slice length must match the channel count.
func WithClipMinPerChannel(vs []float64) Option {
	return func(c *config) {
		c.clipMin = make([]float64, len(vs))
		copy(c.clipMin, vs)
	}
}

// WithClipMaxPerChannel clips interpolated values above at a separate
// bound per channel. The slice length must match the channel count.
func WithClipMaxPerChannel(vs []float64) Option {
	return func(c *config) {
		c.clipMax = make([]float64, len(vs))
		copy(c.clipMax, vs)
	}
}

// WithDomainBounds widens or narrows the coordinate range the signal may
// be evaluated on, in domain units. NaN leaves a side at the domain edge.
// Bounds wider than the domain permit extrapolation up to the bound.
func WithDomainBounds(min, max float64) Option {
	return func(c *config) {
		c.domainMin = min
		c.domainMax = max
	}
}
