package testutil

import "math"

// GaussianPeak evaluates a bell-shaped emission spectrum with the given
// center and width at each wavelength.
func GaussianPeak(center, width float64, wavelengths []float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		d := (w - center) / width
		out[i] = math.Exp(-0.5 * d * d)
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	for i := range out {
		out[i] = start + (stop-start)*float64(i)/float64(n-1)
	}
	out[n-1] = stop
	return out
}

// Ramp returns n values starting at start and stepping by step.
func Ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Constant returns n copies of value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return Constant(1, n)
}
