// Package signal implements unit-aware continuous signals sampled on a
// shared coordinate axis.
//
// A [Signal] couples a [domain.Domain] (the coordinate axis, typically
// wavelengths) with one or more channels of sampled values, a value unit,
// and a named interpolator. Samples are the ground truth; everything else
// is derived by interpolating them:
//
//   - [Signal.At] evaluates all channels at a single coordinate
//   - [Signal.Resample] projects the signal onto a new domain
//   - arithmetic between signals equalizes domains and converts units first
//
// Interpolated values are clipped to the optional per-signal or per-channel
// clip bounds; the stored samples themselves are never clipped. Queries
// outside the domain fail with [ErrDomainBounds] unless explicit bounds
// were widened with [WithDomainBounds].
//
// Signals are one-dimensional (a single channel) or two-dimensional (a
// channel set). The domain axis records how two-dimensional values are
// oriented externally; internal storage is always channel-major.
//
// Construction copies all input slices, and operations return new signals,
// so signals behave as values. Lazy interpolant state is cached on first
// evaluation, which makes concurrent evaluation of a shared Signal unsafe
// without external locking.
package signal
