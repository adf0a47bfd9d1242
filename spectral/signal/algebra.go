package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// equalized returns both signals resampled onto a shared domain. Signals
// whose domains are already equal are returned as they are.
func (s *Signal) equalized(other *Signal) (*Signal, *Signal, error) {
	if s.dom.Equal(other.dom) {
		return s, other, nil
	}
	shared, err := domain.Equalize(s.dom, other.dom)
	if err != nil {
		return nil, nil, err
	}
	a, err := s.Resample(shared)
	if err != nil {
		return nil, nil, err
	}
	b, err := other.Resample(shared)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// pairChannels resolves element-wise channel pairing, broadcasting a
// single-channel operand against a multi-channel one.
func pairChannels(na, nb int) (n int, err error) {
	switch {
	case na == nb:
		return na, nil
	case na == 1:
		return nb, nil
	case nb == 1:
		return na, nil
	}
	return 0, fmt.Errorf("%w: %d and %d", ErrChannels, na, nb)
}

// pickChannel selects the operand channel feeding result channel i.
func pickChannel(nc, i int) int {
	if nc == 1 {
		return 0
	}
	return i
}

// combined builds the result skeleton of an element-wise operation
// between two domain-equalized signals: nc channels on a's domain, rank
// and orientation promoted from the operands, labels taken from the
// operand that supplies the channels, and clip bounds dropped.
func combined(a, b *Signal, nc int, u unit.Unit) *Signal {
	ndim := a.ndim
	if b.ndim > ndim {
		ndim = b.ndim
	}
	if nc > 1 {
		ndim = 2
	}
	axis := 0
	if a.ndim == 2 {
		axis = a.domainAxis
	} else if b.ndim == 2 {
		axis = b.domainAxis
	}
	var labels []string
	if a.labels != nil && len(a.labels) == nc {
		labels = copyStrings(a.labels)
	} else if b.labels != nil && len(b.labels) == nc {
		labels = copyStrings(b.labels)
	}
	data := make([][]float64, nc)
	for c := range data {
		data[c] = make([]float64, a.dom.Len())
	}
	return &Signal{
		data:       data,
		dom:        a.dom,
		u:          u,
		ndim:       ndim,
		domainAxis: axis,
		labels:     labels,
		name:       a.name,
		attrs:      a.Attrs(),
		builder:    a.builder,
		domainMin:  a.domainMin,
		domainMax:  a.domainMax,
	}
}

// Add returns the element-wise sum. The other signal is converted to this
// signal's unit, domains are equalized, and single-channel operands
// broadcast.
func (s *Signal) Add(other *Signal) (*Signal, error) {
	return s.addScaled(other, 1)
}

// Sub returns the element-wise difference, with the same conversion,
// equalization, and broadcast rules as Add.
func (s *Signal) Sub(other *Signal) (*Signal, error) {
	return s.addScaled(other, -1)
}

func (s *Signal) addScaled(other *Signal, sign float64) (*Signal, error) {
	if other == nil {
		return nil, ErrNilSignal
	}
	f, err := other.u.FactorTo(s.u)
	if err != nil {
		return nil, err
	}
	a, b, err := s.equalized(other)
	if err != nil {
		return nil, err
	}
	nc, err := pairChannels(len(a.data), len(b.data))
	if err != nil {
		return nil, err
	}
	out := combined(a, b, nc, s.u)
	for i := 0; i < nc; i++ {
		av := a.data[pickChannel(len(a.data), i)]
		bv := b.data[pickChannel(len(b.data), i)]
		dst := out.data[i]
		for k := range dst {
			dst[k] = av[k] + sign*f*bv[k]
		}
	}
	return out, nil
}

// MulSignal returns the element-wise product. Units multiply and the
// magnitudes are combined as stored, so milliwatts times milliwatts
// yields squared milliwatts. Domains are equalized and single-channel
// operands broadcast.
func (s *Signal) MulSignal(other *Signal) (*Signal, error) {
	if other == nil {
		return nil, ErrNilSignal
	}
	a, b, err := s.equalized(other)
	if err != nil {
		return nil, err
	}
	nc, err := pairChannels(len(a.data), len(b.data))
	if err != nil {
		return nil, err
	}
	out := combined(a, b, nc, s.u.Mul(other.u))
	for i := 0; i < nc; i++ {
		av := a.data[pickChannel(len(a.data), i)]
		bv := b.data[pickChannel(len(b.data), i)]
		vecmath.MulBlock(out.data[i], av, bv)
	}
	return out, nil
}

// DivSignal returns the element-wise quotient. Units divide; division by
// zero follows IEEE semantics.
func (s *Signal) DivSignal(other *Signal) (*Signal, error) {
	if other == nil {
		return nil, ErrNilSignal
	}
	a, b, err := s.equalized(other)
	if err != nil {
		return nil, err
	}
	nc, err := pairChannels(len(a.data), len(b.data))
	if err != nil {
		return nil, err
	}
	out := combined(a, b, nc, s.u.Div(other.u))
	for i := 0; i < nc; i++ {
		av := a.data[pickChannel(len(a.data), i)]
		bv := b.data[pickChannel(len(b.data), i)]
		dst := out.data[i]
		for k := range dst {
			dst[k] = av[k] / bv[k]
		}
	}
	return out, nil
}

// Scale multiplies all channels by a scalar quantity. Units multiply and
// clip bounds scale along, swapping sides for negative factors.
func (s *Signal) Scale(q unit.Scalar) *Signal {
	out := s.clone()
	out.u = s.u.Mul(q.Unit)
	for c, ch := range s.data {
		vecmath.ScaleBlock(out.data[c], ch, q.Value)
	}
	out.clipMin, out.clipMax = scaleClip(out.clipMin, out.clipMax, q.Value)
	return out
}

// ScaleChannels multiplies each channel by its own scalar from a
// per-channel array. Units multiply and clip bounds scale along.
func (s *Signal) ScaleChannels(factors unit.Array) (*Signal, error) {
	if len(factors.Data) != len(s.data) {
		return nil, fmt.Errorf("%w: %d factors for %d channels", ErrChannels, len(factors.Data), len(s.data))
	}
	out := s.clone()
	out.u = s.u.Mul(factors.Unit)
	for c, ch := range s.data {
		vecmath.ScaleBlock(out.data[c], ch, factors.Data[c])
	}
	out.clipMin, out.clipMax = scaleClipPerChannel(out.clipMin, out.clipMax, len(s.data), factors.Data)
	return out, nil
}

// scaleClip scales clip bounds by a shared factor, swapping minimum and
// maximum for negative factors. A zero factor collapses the bounds to
// zero, matching the scaled values.
func scaleClip(lo, hi []float64, f float64) (newLo, newHi []float64) {
	if lo == nil && hi == nil {
		return nil, nil
	}
	if f == 0 {
		zeroInPlace(lo)
		zeroInPlace(hi)
		return lo, hi
	}
	scaleInPlace(lo, f)
	scaleInPlace(hi, f)
	if f < 0 {
		return hi, lo
	}
	return lo, hi
}

// scaleClipPerChannel scales clip bounds by per-channel factors. Bounds
// stored as a single shared value are expanded first, with infinities
// standing in for a missing side.
func scaleClipPerChannel(lo, hi []float64, nc int, factors []float64) (newLo, newHi []float64) {
	if lo == nil && hi == nil {
		return nil, nil
	}
	lo = expandSide(lo, nc, math.Inf(-1))
	hi = expandSide(hi, nc, math.Inf(1))
	for c := 0; c < nc; c++ {
		f := factors[c]
		if f == 0 {
			lo[c], hi[c] = 0, 0
			continue
		}
		l, h := lo[c]*f, hi[c]*f
		if f < 0 {
			l, h = h, l
		}
		lo[c], hi[c] = l, h
	}
	return lo, hi
}

// expandSide expands one clip side to an entry per channel, filling
// missing bounds with the given open value.
func expandSide(bounds []float64, nc int, open float64) []float64 {
	out := make([]float64, nc)
	for c := range out {
		if v, ok := boundAt(bounds, c); ok {
			out[c] = v
		} else {
			out[c] = open
		}
	}
	return out
}

func zeroInPlace(vs []float64) {
	for i := range vs {
		vs[i] = 0
	}
}
