package signal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Reducer collapses a sample vector to a single value. The input slice
// is never empty and must not be retained.
type Reducer func([]float64) float64

// Stock reducers. The NaN variants skip non-finite samples and return
// NaN when nothing is left; the plain variants propagate NaN. Std is the
// population standard deviation.
var (
	Sum  Reducer = floats.Sum
	Mean Reducer = func(v []float64) float64 { return stat.Mean(v, nil) }
	Min  Reducer = floats.Min
	Max  Reducer = floats.Max
	Std  Reducer = popStd

	NaNSum  Reducer = finiteOr(floats.Sum, 0)
	NaNMean Reducer = finiteOr(func(v []float64) float64 { return stat.Mean(v, nil) }, math.NaN())
	NaNMin  Reducer = finiteOr(floats.Min, math.NaN())
	NaNMax  Reducer = finiteOr(floats.Max, math.NaN())
	NaNStd  Reducer = finiteOr(popStd, math.NaN())
)

func popStd(v []float64) float64 {
	m := stat.Mean(v, nil)
	var ss float64
	for _, x := range v {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(v)))
}

// finiteOr wraps a reducer to operate on the finite samples only,
// returning empty when no sample is finite.
func finiteOr(r Reducer, empty float64) Reducer {
	return func(v []float64) float64 {
		f := make([]float64, 0, len(v))
		for _, x := range v {
			if isFinite(x) {
				f = append(f, x)
			}
		}
		if len(f) == 0 {
			return empty
		}
		return r(f)
	}
}

// ReduceDomain collapses every channel along the domain with r and
// returns one value per channel, in the signal's unit.
func (s *Signal) ReduceDomain(r Reducer) (unit.Array, error) {
	if r == nil {
		return unit.Array{}, fmt.Errorf("signal: nil reducer")
	}
	out := make([]float64, len(s.data))
	buf := make([]float64, s.dom.Len())
	for c, ch := range s.data {
		copy(buf, ch)
		out[c] = r(buf)
	}
	return unit.NewArray(out, s.u), nil
}

// ReduceChannels collapses the channel axis with r and returns a
// one-dimensional signal on the same domain. Labels and clip bounds do
// not carry over. One-dimensional signals fail with ErrNotTwoDim.
func (s *Signal) ReduceChannels(r Reducer) (*Signal, error) {
	if r == nil {
		return nil, fmt.Errorf("signal: nil reducer")
	}
	if s.ndim != 2 {
		return nil, ErrNotTwoDim
	}
	n := s.dom.Len()
	ch := make([]float64, n)
	buf := make([]float64, len(s.data))
	for k := 0; k < n; k++ {
		for c, cv := range s.data {
			buf[c] = cv[k]
		}
		ch[k] = r(buf)
	}
	out := &Signal{
		data:       [][]float64{ch},
		dom:        s.dom,
		u:          s.u,
		ndim:       1,
		domainAxis: 0,
		name:       s.name,
		attrs:      s.Attrs(),
		builder:    s.builder,
		domainMin:  s.domainMin,
		domainMax:  s.domainMax,
	}
	return out, nil
}
