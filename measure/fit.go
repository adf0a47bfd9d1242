package measure

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-spectral/fit"
	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/signal"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// FitResult is the decomposition of a target spectrum into per-channel
// intensities.
type FitResult struct {
	// Weights holds one intensity per channel; driving the channels at
	// these intensities reproduces the target as closely as the bounds
	// allow.
	Weights unit.Array
	// Residual is the 2-norm of the remaining spectral error.
	Residual float64
	// Fitted is the reconstruction, the weighted sum of the normalized
	// channel shapes over the fit domain.
	Fitted *signal.Signal
	// Solver carries the bounded least-squares diagnostics.
	Solver *fit.Result
}

// Fit decomposes a one-dimensional target spectrum into channel
// intensities by bounded least squares. The target is converted to the
// container's value unit and both sides are resampled onto the overlap of
// the target domain with the normalized spectrum's.
func (s *Spectra) Fit(target *signal.Signal) (*FitResult, error) {
	if target == nil {
		return nil, ErrNilSignal
	}
	if target.NDim() != 1 {
		return nil, fmt.Errorf("%w: target has %d dimensions", ErrNotOneDim, target.NDim())
	}
	ns, err := s.NormalizedSpectrum()
	if err != nil {
		return nil, err
	}
	t, err := target.To(s.ValueUnit())
	if err != nil {
		return nil, fmt.Errorf("measure: fit target: %w", err)
	}
	common, err := domain.Equalize(ns.Domain(), t.Domain())
	if err != nil {
		return nil, fmt.Errorf("measure: fit target: %w", err)
	}
	nsr, err := ns.Resample(common)
	if err != nil {
		return nil, err
	}
	tr, err := t.Resample(common)
	if err != nil {
		return nil, fmt.Errorf("measure: fit target: %w", err)
	}

	rows, cols := common.Len(), s.Len()
	a := mat.NewDense(rows, cols, nil)
	for c := 0; c < cols; c++ {
		for i, v := range nsr.Channel(c) {
			a.Set(i, c, v)
		}
	}

	// The solver works on magnitudes, so the intensity bounds have to be
	// expressed in the weight unit first.
	weightUnit := s.ValueUnit().Mul(common.Unit())
	lo, hi, err := s.Bounds()
	if err != nil {
		return nil, err
	}
	iu, err := s.IntensityUnit()
	if err != nil {
		return nil, err
	}
	loArr, err := unit.NewArray(lo, iu).To(weightUnit)
	if err != nil {
		return nil, fmt.Errorf("measure: fit bounds: %w", err)
	}
	hiArr, err := unit.NewArray(hi, iu).To(weightUnit)
	if err != nil {
		return nil, fmt.Errorf("measure: fit bounds: %w", err)
	}

	res, err := fit.LSQLinear(a, tr.Magnitude1D(), loArr.Data, hiArr.Data)
	if err != nil {
		return nil, fmt.Errorf("measure: fit: %w", err)
	}
	weights := unit.NewArray(res.X, weightUnit)

	scaled, err := nsr.ScaleChannels(weights)
	if err != nil {
		return nil, err
	}
	fitted, err := scaled.ReduceChannels(signal.Sum)
	if err != nil {
		return nil, err
	}
	return &FitResult{
		Weights:  weights,
		Residual: res.Residual,
		Fitted:   fitted,
		Solver:   res,
	}, nil
}

// FitMap fits the target spectrum and maps the resulting intensities to
// input settings in one step.
func (s *Spectra) FitMap(target *signal.Signal) ([]float64, error) {
	fr, err := s.Fit(target)
	if err != nil {
		return nil, err
	}
	iu, err := s.IntensityUnit()
	if err != nil {
		return nil, err
	}
	w, err := fr.Weights.To(iu)
	if err != nil {
		return nil, fmt.Errorf("measure: fit map: %w", err)
	}
	// Unit round trips can land a weight a hair outside the achievable
	// bounds the solver respected; clamp before mapping.
	lo, hi, err := s.Bounds()
	if err != nil {
		return nil, err
	}
	for c, v := range w.Data {
		w.Data[c] = clamp(v, lo[c], hi[c])
	}
	return s.MapOne(w.Data)
}
