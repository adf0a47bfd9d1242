package signal

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Integral returns the trapezoidal integral of each channel over the
// domain, in value units times domain units.
func (s *Signal) Integral() (unit.Array, error) {
	if s.dom.Len() < 2 {
		return unit.Array{}, fmt.Errorf("%w: integral needs at least two coordinates", domain.ErrTooShort)
	}
	xs := s.dom.Values()
	out := make([]float64, len(s.data))
	for c, ch := range s.data {
		out[c] = integrate.Trapezoidal(xs, ch)
	}
	return unit.NewArray(out, s.u.Mul(s.dom.Unit())), nil
}

// PiecewiseIntegral multiplies each sample by the local domain spacing,
// so that summing a channel approximates its integral. The result is in
// value units times domain units and carries no clip bounds.
func (s *Signal) PiecewiseIntegral() (*Signal, error) {
	grad, err := s.dom.Gradient()
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.u = s.u.Mul(grad.Unit)
	out.clipMin, out.clipMax = nil, nil
	for c, ch := range s.data {
		vecmath.MulBlock(out.data[c], ch, grad.Data)
	}
	return out, nil
}

// PiecewiseGradient divides each sample by the local domain spacing, the
// inverse of PiecewiseIntegral. The result is in value units per domain
// unit and carries no clip bounds.
func (s *Signal) PiecewiseGradient() (*Signal, error) {
	grad, err := s.dom.Gradient()
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.u = s.u.Div(grad.Unit)
	out.clipMin, out.clipMax = nil, nil
	for c, ch := range s.data {
		dst := out.data[c]
		for k, v := range ch {
			dst[k] = v / grad.Data[k]
		}
	}
	return out, nil
}

// Gradient differentiates each channel along the domain: second-order
// central differences in the interior, exact for non-uniform spacing,
// and one-sided differences at the edges. The result is in value units
// per domain unit and carries no clip bounds.
func (s *Signal) Gradient() (*Signal, error) {
	xs := s.dom.Values()
	n := len(xs)
	if n < 2 {
		return nil, fmt.Errorf("%w: gradient needs at least two coordinates", domain.ErrTooShort)
	}
	out := s.clone()
	out.u = s.u.Div(s.dom.Unit())
	out.clipMin, out.clipMax = nil, nil
	for c, ch := range s.data {
		dst := out.data[c]
		dst[0] = (ch[1] - ch[0]) / (xs[1] - xs[0])
		dst[n-1] = (ch[n-1] - ch[n-2]) / (xs[n-1] - xs[n-2])
		for i := 1; i < n-1; i++ {
			hd := xs[i] - xs[i-1]
			hs := xs[i+1] - xs[i]
			dst[i] = (hd*hd*ch[i+1] + (hs*hs-hd*hd)*ch[i] - hs*hs*ch[i-1]) / (hd * hs * (hd + hs))
		}
	}
	return out, nil
}

// Normalized scales each channel by the reciprocal of its integral, so
// every channel integrates to one. The result is in reciprocal domain
// units and carries no clip bounds. Channels with a zero integral fail
// with ErrZeroIntegral.
func (s *Signal) Normalized() (*Signal, error) {
	ints, err := s.Integral()
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.u = s.u.Div(ints.Unit)
	out.clipMin, out.clipMax = nil, nil
	for c, ch := range s.data {
		v := ints.Data[c]
		if v == 0 {
			return nil, fmt.Errorf("%w: channel %d", ErrZeroIntegral, c)
		}
		vecmath.ScaleBlock(out.data[c], ch, 1/v)
	}
	return out, nil
}
