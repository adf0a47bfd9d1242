// Package filter provides the smoothing engine for sampled spectra:
// normalized smoothing kernels, 1-D linear convolution with automatic
// direct/FFT selection, and Savitzky-Golay polynomial smoothing.
//
// Kernels are unit-sum so that convolving preserves the overall level of
// the data. For one-shot smoothing use [ConvolveMode] with [ModeSame], or
// [SavGolFilter] for shape-preserving polynomial smoothing:
//
//	k, _ := filter.Kernel(11, filter.Hann)
//	smooth, _ := filter.ConvolveMode(values, k, filter.ModeSame)
//
// Long kernels are convolved in the frequency domain using FFT overlap-add
// blocks; short kernels use direct time-domain convolution.
package filter
