// Package measure turns raw spectral measurements into calibrated output
// channels.
//
// A Spectrum pairs a two-dimensional signal, one measured spectrum per
// control-input setting, with the ordered domain of those settings and
// the boundary metadata of the channel: which setting produces zero
// output, which produces the maximum, and whether output rises with the
// input. Spectra collects one Spectrum per controllable channel and
// derives, per channel:
//
//   - the intensity curve, the spectral integral at every tested setting
//   - the achievable intensity bounds
//   - a monotone intensity-to-input mapper built by isotonic regression
//   - the normalized spectral shape used for target fitting
//
// Map converts desired per-channel intensities into the control inputs
// that produce them; Fit decomposes a target spectrum into per-channel
// intensities by bounded least squares, and FitMap chains the two.
//
// Derived values are computed on first access and cached; Append, Extend,
// and Pop invalidate the cache. Mutating a member's signal in place after
// insertion leaves stale caches, so treat inserted signals as read-only.
package measure
