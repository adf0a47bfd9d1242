package measure

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/fit"
	"github.com/cwbudde/algo-spectral/spectral/interp"
)

// channelMapper converts achievable intensities of one channel back into
// input settings by inverting the channel's monotone intensity fit.
type channelMapper struct {
	yLo, yHi   float64 // fitted intensity range
	loIn, hiIn float64 // inputs substituted outside the range
	flat       float64 // input returned when the fit has a single level
	inv        interp.Interpolant
}

func (m *channelMapper) mapValue(v float64) float64 {
	switch {
	case v < m.yLo:
		return m.loIn
	case v > m.yHi:
		return m.hiIn
	case m.inv == nil:
		return m.flat
	}
	return m.inv.Predict(v)
}

func (s *Spectra) mappers() ([]*channelMapper, error) {
	if s.memo.mappers != nil {
		return s.memo.mappers, nil
	}
	list, err := s.intensityList()
	if err != nil {
		return nil, err
	}
	boundLo, boundHi, err := s.Bounds()
	if err != nil {
		return nil, err
	}
	lower, upper := s.LowerBoundary(), s.UpperBoundary()
	out := make([]*channelMapper, len(s.channels))
	for c := range s.channels {
		m, err := s.buildMapper(c, list[c].Domain().Values(), list[c].Magnitude1D(),
			boundLo[c], boundHi[c], lower[c], upper[c])
		if err != nil {
			return nil, err
		}
		out[c] = m
	}
	s.memo.mappers = out
	return out, nil
}

// buildMapper fits a monotone curve to channel c's intensity samples and
// inverts it. When the zero boundary lies outside the tested settings a
// zero intensity sample is spliced in at the boundary, anchoring the fit
// there. Flat runs invert to the run's first setting counted from the zero
// side; intensities outside the fitted range resolve to the boundary
// inputs.
func (s *Spectra) buildMapper(c int, xs, ys []float64, boundLo, boundHi, loIn, hiIn float64) (*channelMapper, error) {
	sp := s.channels[c]
	if zb, ok := sp.ZeroBoundary(); ok {
		switch {
		case sp.zeroIsLower && zb < xs[0]:
			xs = append([]float64{zb}, xs...)
			ys = append([]float64{0}, ys...)
		case !sp.zeroIsLower && zb > xs[len(xs)-1]:
			xs = append(xs[:len(xs):len(xs)], zb)
			ys = append(ys[:len(ys):len(ys)], 0)
		}
	}
	opts := []fit.IsotonicOption{fit.WithBounds(boundLo, boundHi)}
	if !sp.zeroIsLower {
		opts = append(opts, fit.Decreasing())
	}
	fitted, err := fit.Isotonic(xs, ys, opts...)
	if err != nil {
		return nil, fmt.Errorf("measure: mapper for channel %q: %w", sp.Name(), err)
	}

	var yd, xd []float64
	if sp.zeroIsLower {
		for i, y := range fitted {
			if len(yd) == 0 || y > yd[len(yd)-1] {
				yd = append(yd, y)
				xd = append(xd, xs[i])
			}
		}
	} else {
		for i := len(fitted) - 1; i >= 0; i-- {
			if len(yd) == 0 || fitted[i] > yd[len(yd)-1] {
				yd = append(yd, fitted[i])
				xd = append(xd, xs[i])
			}
		}
	}
	m := &channelMapper{yLo: yd[0], yHi: yd[len(yd)-1], loIn: loIn, hiIn: hiIn}
	if len(yd) == 1 {
		m.flat = xd[0]
		return m, nil
	}
	inv, err := interp.Linear().Fit(yd, xd)
	if err != nil {
		return nil, fmt.Errorf("measure: mapper for channel %q: %w", sp.Name(), err)
	}
	m.inv = inv
	return m, nil
}

// Map converts target intensities into input settings, one row per
// combination and one column per channel. Every intensity must lie inside
// its channel's achievable bounds; mapped settings are clipped to the
// admissible input interval. Mapping requires a shared input unit across
// channels.
func (s *Spectra) Map(batch [][]float64) ([][]float64, error) {
	if _, err := s.InputUnit(); err != nil {
		return nil, err
	}
	boundLo, boundHi, err := s.Bounds()
	if err != nil {
		return nil, err
	}
	ms, err := s.mappers()
	if err != nil {
		return nil, err
	}
	lower, upper := s.LowerBoundary(), s.UpperBoundary()
	out := make([][]float64, len(batch))
	for r, row := range batch {
		if len(row) != len(s.channels) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d channels",
				ErrBatchShape, r, len(row), len(s.channels))
		}
		mapped := make([]float64, len(row))
		for c, v := range row {
			if math.IsNaN(v) || v < boundLo[c] || v > boundHi[c] {
				return nil, fmt.Errorf("%w: row %d channel %d (%q): %g outside [%g, %g]",
					ErrIntensityBounds, r, c, s.channels[c].Name(), v, boundLo[c], boundHi[c])
			}
			mapped[c] = clamp(ms[c].mapValue(v), lower[c], upper[c])
		}
		out[r] = mapped
	}
	return out, nil
}

// MapOne maps a single intensity combination.
func (s *Spectra) MapOne(values []float64) ([]float64, error) {
	out, err := s.Map([][]float64{values})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
