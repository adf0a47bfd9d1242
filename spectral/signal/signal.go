package signal

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/interp"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Signal is a set of sampled channels on a shared domain, with a value
// unit and a named interpolator. The zero value is not usable; construct
// signals with New or New1D.
type Signal struct {
	data       [][]float64 // channel-major, data[c][k] with k along the domain
	dom        *domain.Domain
	u          unit.Unit
	ndim       int
	domainAxis int
	labels     []string
	name       string
	attrs      map[string]string
	builder    interp.Builder
	clipMin    []float64 // nil, length 1, or one bound per channel
	clipMax    []float64
	domainMin  float64 // NaN when the domain edge applies
	domainMax  float64

	interps []interp.Interpolant // fitted lazily, reset on mutation
}

// New builds a two-dimensional signal from oriented values: rows are
// domain samples by default, or channels with WithDomainAxis(1). The
// values are copied.
func New(values [][]float64, dom *domain.Domain, opts ...Option) (*Signal, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if dom == nil {
		return nil, ErrNilDomain
	}
	if _, err := checkOriented(values, cfg.domainAxis, dom.Len()); err != nil {
		return nil, err
	}
	return build(channelsFromOriented(values, cfg.domainAxis), 2, cfg.domainAxis, dom, cfg)
}

// New1D builds a one-dimensional, single-channel signal. The values are
// copied.
func New1D(values []float64, dom *domain.Domain, opts ...Option) (*Signal, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if dom == nil {
		return nil, ErrNilDomain
	}
	if len(values) == 0 {
		return nil, ErrEmptyValues
	}
	if cfg.domainAxis != 0 {
		return nil, fmt.Errorf("%w: one-dimensional signals use axis 0", ErrAxis)
	}
	ch := make([]float64, len(values))
	copy(ch, values)
	return build([][]float64{ch}, 1, 0, dom, cfg)
}

// checkOriented validates oriented values against the domain length and
// returns the channel count.
func checkOriented(values [][]float64, axis, domLen int) (int, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return 0, ErrEmptyValues
	}
	for i, row := range values {
		if len(row) != len(values[0]) {
			return 0, fmt.Errorf("%w: row %d has %d, row 0 has %d", ErrRagged, i, len(row), len(values[0]))
		}
	}
	switch axis {
	case 0:
		if len(values) != domLen {
			return 0, fmt.Errorf("%w: %d rows for %d coordinates", ErrShape, len(values), domLen)
		}
		return len(values[0]), nil
	case 1:
		if len(values[0]) != domLen {
			return 0, fmt.Errorf("%w: %d columns for %d coordinates", ErrShape, len(values[0]), domLen)
		}
		return len(values), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrAxis, axis)
}

// channelsFromOriented copies oriented values into channel-major form.
func channelsFromOriented(values [][]float64, axis int) [][]float64 {
	if axis == 1 {
		out := make([][]float64, len(values))
		for c, row := range values {
			ch := make([]float64, len(row))
			copy(ch, row)
			out[c] = ch
		}
		return out
	}
	nc := len(values[0])
	out := make([][]float64, nc)
	for c := 0; c < nc; c++ {
		ch := make([]float64, len(values))
		for k, row := range values {
			ch[k] = row[c]
		}
		out[c] = ch
	}
	return out
}

// build validates metadata against the channel-major data and assembles
// the signal. The data is taken over, not copied.
func build(data [][]float64, ndim, axis int, dom *domain.Domain, cfg config) (*Signal, error) {
	for c, ch := range data {
		if len(ch) != dom.Len() {
			return nil, fmt.Errorf("%w: channel %d has %d samples for %d coordinates", ErrShape, c, len(ch), dom.Len())
		}
	}
	nc := len(data)
	if cfg.labels != nil && len(cfg.labels) != nc {
		return nil, fmt.Errorf("%w: %d labels for %d channels", ErrLabels, len(cfg.labels), nc)
	}
	if err := checkClip(cfg.clipMin, nc); err != nil {
		return nil, err
	}
	if err := checkClip(cfg.clipMax, nc); err != nil {
		return nil, err
	}
	for c := 0; c < nc; c++ {
		lo, okLo := boundAt(cfg.clipMin, c)
		hi, okHi := boundAt(cfg.clipMax, c)
		if okLo && okHi && lo > hi {
			return nil, fmt.Errorf("%w: channel %d: %g > %g", ErrClipOrder, c, lo, hi)
		}
	}
	for _, v := range [2]float64{cfg.domainMin, cfg.domainMax} {
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("signal: domain bound must be finite, got %g", v)
		}
	}
	if !math.IsNaN(cfg.domainMin) && !math.IsNaN(cfg.domainMax) && cfg.domainMin > cfg.domainMax {
		return nil, fmt.Errorf("signal: domain bounds inverted: %g > %g", cfg.domainMin, cfg.domainMax)
	}
	return &Signal{
		data:       data,
		dom:        dom,
		u:          cfg.u,
		ndim:       ndim,
		domainAxis: axis,
		labels:     cfg.labels,
		name:       cfg.name,
		attrs:      cfg.attrs,
		builder:    cfg.builder,
		clipMin:    cfg.clipMin,
		clipMax:    cfg.clipMax,
		domainMin:  cfg.domainMin,
		domainMax:  cfg.domainMax,
	}, nil
}

func checkClip(bounds []float64, nc int) error {
	if bounds == nil {
		return nil
	}
	if len(bounds) != 1 && len(bounds) != nc {
		return fmt.Errorf("%w: %d bounds for %d channels", ErrClipLength, len(bounds), nc)
	}
	for _, v := range bounds {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: NaN bound", ErrClipLength)
		}
	}
	return nil
}

// boundAt resolves a clip bound for channel c, treating a single bound as
// shared by all channels.
func boundAt(bounds []float64, c int) (float64, bool) {
	switch len(bounds) {
	case 0:
		return 0, false
	case 1:
		return bounds[0], true
	}
	return bounds[c], true
}

// NDim returns 1 for single-channel signals built with New1D and 2 for
// channel sets.
func (s *Signal) NDim() int { return s.ndim }

// DomainAxis returns the axis oriented values run along: 0 when rows are
// domain samples, 1 when rows are channels.
func (s *Signal) DomainAxis() int { return s.domainAxis }

// NumChannels returns the number of channels.
func (s *Signal) NumChannels() int { return len(s.data) }

// Domain returns the coordinate axis.
func (s *Signal) Domain() *domain.Domain { return s.dom }

// Unit returns the value unit.
func (s *Signal) Unit() unit.Unit { return s.u }

// Name returns the signal name.
func (s *Signal) Name() string { return s.name }

// Labels returns a copy of the channel labels, or nil when unset.
func (s *Signal) Labels() []string { return copyStrings(s.labels) }

// Attrs returns a copy of the free-form metadata, or nil when unset.
func (s *Signal) Attrs() map[string]string {
	if s.attrs == nil {
		return nil
	}
	out := make(map[string]string, len(s.attrs))
	for k, v := range s.attrs {
		out[k] = v
	}
	return out
}

// Interpolator returns the interpolator builder used for evaluation.
func (s *Signal) Interpolator() interp.Builder { return s.builder }

// ClipMin returns a copy of the lower clip bounds and whether any are set.
func (s *Signal) ClipMin() ([]float64, bool) { return copyFloats(s.clipMin), s.clipMin != nil }

// ClipMax returns a copy of the upper clip bounds and whether any are set.
func (s *Signal) ClipMax() ([]float64, bool) { return copyFloats(s.clipMax), s.clipMax != nil }

// DomainMin returns the explicit lower evaluation bound, if one is set.
func (s *Signal) DomainMin() (float64, bool) { return s.domainMin, !math.IsNaN(s.domainMin) }

// DomainMax returns the explicit upper evaluation bound, if one is set.
func (s *Signal) DomainMax() (float64, bool) { return s.domainMax, !math.IsNaN(s.domainMax) }

// Channel returns a copy of channel i's samples.
func (s *Signal) Channel(i int) []float64 {
	out := make([]float64, len(s.data[i]))
	copy(out, s.data[i])
	return out
}

// Magnitude1D returns the samples of channel 0, which for one-dimensional
// signals is the whole signal.
func (s *Signal) Magnitude1D() []float64 { return s.Channel(0) }

// Values returns the samples as an oriented copy: rows are domain samples
// when the domain axis is 0, channels when it is 1.
func (s *Signal) Values() [][]float64 {
	if s.domainAxis == 1 {
		out := make([][]float64, len(s.data))
		for c := range s.data {
			out[c] = s.Channel(c)
		}
		return out
	}
	n := s.dom.Len()
	out := make([][]float64, n)
	for k := 0; k < n; k++ {
		row := make([]float64, len(s.data))
		for c, ch := range s.data {
			row[c] = ch[k]
		}
		out[k] = row
	}
	return out
}

// Boundaries returns the per-channel minimum and maximum of the finite
// sample values. Channels without finite samples report NaN.
func (s *Signal) Boundaries() (mins, maxs []float64) {
	mins = make([]float64, len(s.data))
	maxs = make([]float64, len(s.data))
	for c, ch := range s.data {
		mins[c] = NaNMin(ch)
		maxs[c] = NaNMax(ch)
	}
	return mins, maxs
}

// SetValues replaces the sample values in place. The values must have the
// oriented shape Values returns and a unit convertible to the signal's
// unit; they are converted on assignment.
func (s *Signal) SetValues(values [][]float64, u unit.Unit) error {
	f, err := u.FactorTo(s.u)
	if err != nil {
		return err
	}
	nc, err := checkOriented(values, s.domainAxis, s.dom.Len())
	if err != nil {
		return err
	}
	if nc != len(s.data) {
		return fmt.Errorf("%w: %d channels for %d", ErrShape, nc, len(s.data))
	}
	data := channelsFromOriented(values, s.domainAxis)
	for _, ch := range data {
		scaleInPlace(ch, f)
	}
	s.data = data
	s.interps = nil
	return nil
}

// To converts the signal's values and clip bounds to a compatible unit.
func (s *Signal) To(u unit.Unit) (*Signal, error) {
	f, err := s.u.FactorTo(u)
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.u = u
	for _, ch := range out.data {
		scaleInPlace(ch, f)
	}
	scaleInPlace(out.clipMin, f)
	scaleInPlace(out.clipMax, f)
	return out, nil
}

// T returns a copy with the domain axis transposed. One-dimensional
// signals are returned unchanged.
func (s *Signal) T() *Signal {
	out := s.clone()
	if s.ndim == 2 {
		out.domainAxis = 1 - s.domainAxis
	}
	return out
}

// MoveAxis returns a copy with axis src moved to position dst.
func (s *Signal) MoveAxis(src, dst int) (*Signal, error) {
	if src < 0 || dst < 0 || src >= s.ndim || dst >= s.ndim {
		return nil, fmt.Errorf("%w: move %d to %d with %d axes", ErrAxis, src, dst, s.ndim)
	}
	if src == dst {
		return s.clone(), nil
	}
	return s.T(), nil
}

// Clone returns a deep copy of the signal.
func (s *Signal) Clone() *Signal { return s.clone() }

// To2D returns a copy promoted to a two-dimensional, single-channel
// signal. Two-dimensional signals are returned unchanged.
func (s *Signal) To2D() *Signal {
	out := s.clone()
	out.ndim = 2
	return out
}

// Relabel returns a copy with the channels renamed. Calling it with no
// labels clears them; otherwise the count must match the channel count.
func (s *Signal) Relabel(labels ...string) (*Signal, error) {
	out := s.clone()
	if len(labels) == 0 {
		out.labels = nil
		return out, nil
	}
	if len(labels) != len(s.data) {
		return nil, fmt.Errorf("%w: %d labels for %d channels", ErrLabels, len(labels), len(s.data))
	}
	out.labels = copyStrings(labels)
	return out, nil
}

// Equal reports whether two signals have the same unit, equal domains,
// the same shape and orientation, and identical values. NaNs compare
// unequal. Names, labels, and attributes are ignored.
func (s *Signal) Equal(other *Signal) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.ndim != other.ndim || s.domainAxis != other.domainAxis {
		return false
	}
	if !s.u.Same(other.u) || !s.dom.Equal(other.dom) {
		return false
	}
	if len(s.data) != len(other.data) {
		return false
	}
	for c := range s.data {
		if !floats.Equal(s.data[c], other.data[c]) {
			return false
		}
	}
	return true
}

// String returns a short description like
// "Signal("led set", 3 channels x 101 samples [nm] -> uW/cm^2/nm)".
func (s *Signal) String() string {
	var b strings.Builder
	b.WriteString("Signal(")
	if s.name != "" {
		fmt.Fprintf(&b, "%q, ", s.name)
	}
	if s.ndim == 1 {
		fmt.Fprintf(&b, "%d samples", s.dom.Len())
	} else {
		fmt.Fprintf(&b, "%d channels x %d samples", len(s.data), s.dom.Len())
	}
	if us := s.dom.Unit().String(); us != "" {
		fmt.Fprintf(&b, " [%s]", us)
	}
	if us := s.u.String(); us != "" {
		fmt.Fprintf(&b, " -> %s", us)
	}
	b.WriteString(")")
	return b.String()
}

// clone deep-copies the signal and drops cached interpolants.
func (s *Signal) clone() *Signal {
	out := *s
	out.data = make([][]float64, len(s.data))
	for c, ch := range s.data {
		dup := make([]float64, len(ch))
		copy(dup, ch)
		out.data[c] = dup
	}
	out.labels = copyStrings(s.labels)
	if s.attrs != nil {
		out.attrs = make(map[string]string, len(s.attrs))
		for k, v := range s.attrs {
			out.attrs[k] = v
		}
	}
	out.clipMin = copyFloats(s.clipMin)
	out.clipMax = copyFloats(s.clipMax)
	out.interps = nil
	return &out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyFloats(in []float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	copy(out, in)
	return out
}

func scaleInPlace(vs []float64, f float64) {
	for i := range vs {
		vs[i] *= f
	}
}
