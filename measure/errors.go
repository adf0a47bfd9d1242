package measure

import "errors"

// Errors returned by measurement types.
var (
	ErrNilSignal       = errors.New("measure: nil signal")
	ErrNilInputs       = errors.New("measure: nil input domain")
	ErrNilSpectrum     = errors.New("measure: nil spectrum")
	ErrNilSpectra      = errors.New("measure: nil spectra container")
	ErrNotTwoDim       = errors.New("measure: requires a two-dimensional signal")
	ErrNotOneDim       = errors.New("measure: requires a one-dimensional signal")
	ErrInputCount      = errors.New("measure: input settings do not match channel count")
	ErrNoName          = errors.New("measure: spectrum requires a name")
	ErrBoundaryConfig  = errors.New("measure: need zero-is-lower or both zero and max boundaries")
	ErrArea            = errors.New("measure: invalid collector area")
	ErrNoChannels      = errors.New("measure: no channels")
	ErrInputUnits      = errors.New("measure: channel input units differ")
	ErrIntensityBounds = errors.New("measure: intensity outside achievable bounds")
	ErrBatchShape      = errors.New("measure: batch width does not match channel count")
	ErrKind            = errors.New("measure: unexpected payload kind")
)
