package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/interp"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// interpolants fits one interpolant per channel on first use and caches
// them until the signal's values change.
func (s *Signal) interpolants() ([]interp.Interpolant, error) {
	if s.interps != nil {
		return s.interps, nil
	}
	xs := s.dom.Values()
	ins := make([]interp.Interpolant, len(s.data))
	for c, ch := range s.data {
		in, err := s.builder.Fit(xs, ch)
		if err != nil {
			return nil, fmt.Errorf("signal: channel %d: %w", c, err)
		}
		ins[c] = in
	}
	s.interps = ins
	return ins, nil
}

// clip applies channel c's clip bounds to an interpolated value.
func (s *Signal) clip(c int, v float64) float64 {
	if lo, ok := boundAt(s.clipMin, c); ok && v < lo {
		v = lo
	}
	if hi, ok := boundAt(s.clipMax, c); ok && v > hi {
		v = hi
	}
	return v
}

// queryRange returns the coordinate range the signal may be evaluated on:
// the domain range, widened or narrowed by explicit domain bounds.
func (s *Signal) queryRange() (lo, hi float64) {
	lo, hi = s.dom.Start(), s.dom.End()
	if !math.IsNaN(s.domainMin) {
		lo = s.domainMin
	}
	if !math.IsNaN(s.domainMax) {
		hi = s.domainMax
	}
	return lo, hi
}

// checkQuery rejects coordinates outside the query range, allowing a
// small relative slack at the edges.
func (s *Signal) checkQuery(x float64) error {
	lo, hi := s.queryRange()
	slack := 1e-9 * math.Max(math.Abs(lo), math.Abs(hi))
	if x < lo-slack || x > hi+slack {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrDomainBounds, x, lo, hi)
	}
	return nil
}

// At evaluates all channels at coordinate x, in domain units, and returns
// the clipped values. Coordinates outside the query range fail with
// ErrDomainBounds.
func (s *Signal) At(x float64) (unit.Array, error) {
	if err := s.checkQuery(x); err != nil {
		return unit.Array{}, err
	}
	ins, err := s.interpolants()
	if err != nil {
		return unit.Array{}, err
	}
	out := make([]float64, len(ins))
	for c, in := range ins {
		out[c] = s.clip(c, in.Predict(x))
	}
	return unit.NewArray(out, s.u), nil
}

// Resample projects the signal onto a new domain by interpolating every
// channel at the new coordinates, which may use any length-compatible
// unit. The new domain must lie within the query range and have at least
// two coordinates; use At for point queries.
func (s *Signal) Resample(d *domain.Domain) (*Signal, error) {
	if d == nil {
		return nil, ErrNilDomain
	}
	if d.Len() < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrSinglePoint, d.Len())
	}
	conv, err := d.To(s.dom.Unit())
	if err != nil {
		return nil, err
	}
	if err := s.checkQuery(conv.Start()); err != nil {
		return nil, err
	}
	if err := s.checkQuery(conv.End()); err != nil {
		return nil, err
	}
	ins, err := s.interpolants()
	if err != nil {
		return nil, err
	}
	xs := conv.Values()
	out := s.clone()
	out.dom = d
	f, err := s.dom.Unit().FactorTo(d.Unit())
	if err != nil {
		return nil, err
	}
	out.domainMin = s.domainMin * f
	out.domainMax = s.domainMax * f
	for c, in := range ins {
		ch := make([]float64, len(xs))
		for k, x := range xs {
			ch[k] = s.clip(c, in.Predict(x))
		}
		out.data[c] = ch
	}
	return out, nil
}

// Nanless returns a copy with non-finite samples filled by interpolating
// each channel's finite samples, without clipping. Finite samples are
// kept as they are. Channels with fewer than two finite samples fail
// with ErrAllNaN.
func (s *Signal) Nanless() (*Signal, error) {
	xs := s.dom.Values()
	out := s.clone()
	for c, ch := range s.data {
		if countFinite(ch) == len(ch) {
			continue
		}
		fx, fy := finitePairs(xs, ch)
		if len(fx) < 2 {
			return nil, fmt.Errorf("%w: channel %d has %d", ErrAllNaN, c, len(fx))
		}
		in, err := s.builder.Fit(fx, fy)
		if err != nil {
			return nil, fmt.Errorf("signal: channel %d: %w", c, err)
		}
		dst := out.data[c]
		for k, x := range xs {
			if !isFinite(ch[k]) {
				dst[k] = in.Predict(x)
			}
		}
	}
	return out, nil
}

// EnforceUniformity resamples the signal onto a uniform domain spanning
// the same range with the same number of coordinates.
func (s *Signal) EnforceUniformity() (*Signal, error) {
	u := s.dom.EnforceUniformity()
	if u.Equal(s.dom) {
		return s.clone(), nil
	}
	return s.Resample(u)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func countFinite(vs []float64) int {
	n := 0
	for _, v := range vs {
		if isFinite(v) {
			n++
		}
	}
	return n
}

func finitePairs(xs, ys []float64) (fx, fy []float64) {
	for k, y := range ys {
		if isFinite(y) {
			fx = append(fx, xs[k])
			fy = append(fy, y)
		}
	}
	return fx, fy
}
