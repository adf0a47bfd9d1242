package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/spectral/domain"
)

// DomainConcat appends the other signal past this signal's domain end.
// Channel counts must match and, when both signals are labeled, labels
// must agree channel by channel. The other signal's values are converted
// to this signal's unit and its domain to this domain's unit; the
// combined coordinates must remain strictly ascending. The result keeps
// this signal's rank, orientation, and metadata.
func (s *Signal) DomainConcat(other *Signal) (*Signal, error) {
	if other == nil {
		return nil, ErrNilSignal
	}
	if len(other.data) != len(s.data) {
		return nil, fmt.Errorf("%w: %d and %d", ErrChannels, len(s.data), len(other.data))
	}
	if s.labels != nil && other.labels != nil {
		for c := range s.labels {
			if s.labels[c] != other.labels[c] {
				return nil, fmt.Errorf("%w: channel %d is %q and %q", ErrLabels, c, s.labels[c], other.labels[c])
			}
		}
	}
	f, err := other.u.FactorTo(s.u)
	if err != nil {
		return nil, err
	}
	dom, err := s.dom.Append(other.dom, false)
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.dom = dom
	for c := range out.data {
		ch := make([]float64, 0, dom.Len())
		ch = append(ch, s.data[c]...)
		for _, v := range other.data[c] {
			ch = append(ch, v*f)
		}
		out.data[c] = ch
	}
	return out, nil
}

// ChannelConcat stacks the other signal's channels after this signal's,
// equalizing domains and converting the other signal's values to this
// signal's unit. Either both signals are labeled or neither is. The
// result is always two-dimensional.
func (s *Signal) ChannelConcat(other *Signal) (*Signal, error) {
	if other == nil {
		return nil, ErrNilSignal
	}
	if (s.labels == nil) != (other.labels == nil) {
		return nil, fmt.Errorf("%w: one side is unlabeled", ErrLabels)
	}
	f, err := other.u.FactorTo(s.u)
	if err != nil {
		return nil, err
	}
	a, b, err := s.equalized(other)
	if err != nil {
		return nil, err
	}
	na, nb := len(a.data), len(b.data)
	out := a.clone()
	out.ndim = 2
	if s.ndim != 2 {
		out.domainAxis = 0
		if other.ndim == 2 {
			out.domainAxis = other.domainAxis
		}
	}
	for c := 0; c < nb; c++ {
		ch := make([]float64, len(b.data[c]))
		for k, v := range b.data[c] {
			ch[k] = v * f
		}
		out.data = append(out.data, ch)
	}
	if s.labels != nil {
		out.labels = append(copyStrings(a.labels), other.labels...)
	}
	out.clipMin, out.clipMax = mergeClip(a.clipMin, b.clipMin, na, nb, math.Inf(-1)),
		mergeClip(a.clipMax, b.clipMax, na, nb, math.Inf(1))
	scaleTail(out.clipMin, na, f)
	scaleTail(out.clipMax, na, f)
	return out, nil
}

// AppendValues extends the signal along the domain with new oriented
// values on a continuation domain, in the signal's unit.
func (s *Signal) AppendValues(values [][]float64, d *domain.Domain) (*Signal, error) {
	tail, err := New(values, d, WithUnit(s.u), WithDomainAxis(s.domainAxis), WithInterpolator(s.builder))
	if err != nil {
		return nil, err
	}
	return s.DomainConcat(tail)
}

// mergeClip concatenates per-channel clip sides of two operands, keeping
// nil when neither side is clipped and padding the unclipped operand
// with the open value otherwise.
func mergeClip(a, b []float64, na, nb int, open float64) []float64 {
	if a == nil && b == nil {
		return nil
	}
	out := make([]float64, 0, na+nb)
	out = append(out, expandSide(a, na, open)...)
	out = append(out, expandSide(b, nb, open)...)
	return out
}

// scaleTail converts the appended operand's clip entries by the unit
// conversion factor applied to its values.
func scaleTail(bounds []float64, head int, f float64) {
	for i := head; i < len(bounds); i++ {
		bounds[i] *= f
	}
}
