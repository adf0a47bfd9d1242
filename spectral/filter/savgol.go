package filter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SavGol returns Savitzky-Golay smoothing coefficients for an odd window
// length m and polynomial order polyorder < m. Correlating data with the
// coefficients evaluates, at each position, the least-squares polynomial
// through the surrounding window at its center.
func SavGol(m, polyorder int) ([]float64, error) {
	if m < 1 || m%2 == 0 {
		return nil, fmt.Errorf("filter: savgol window must be odd and positive: %d", m)
	}
	if polyorder < 0 || polyorder >= m {
		return nil, fmt.Errorf("filter: savgol polyorder must be in [0, %d): %d", m, polyorder)
	}
	half := (m - 1) / 2
	xs := make([]float64, m)
	for i := range xs {
		xs[i] = float64(i - half)
	}
	a := vandermonde(xs, polyorder)

	// The weights are the minimum-norm solution of aᵀ c = e0: the unique
	// coefficient vector that reproduces every polynomial up to the given
	// order exactly at the window center.
	e0 := mat.NewVecDense(polyorder+1, nil)
	e0.SetVec(0, 1)
	c := mat.NewVecDense(m, nil)

	qr := new(mat.QR)
	qr.Factorize(a)
	if err := qr.SolveVecTo(c, true, e0); err != nil {
		return nil, fmt.Errorf("filter: savgol solve: %w", err)
	}

	out := make([]float64, m)
	for i := range out {
		out[i] = c.AtVec(i)
	}
	return out, nil
}

// SavGolFilter smooths values with a Savitzky-Golay filter of odd window
// length m and the given polynomial order. The first and last half-windows
// are filled by refitting the boundary windows and evaluating the edge
// polynomials there, so the output has no startup transient.
func SavGolFilter(values []float64, m, polyorder int) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if m > len(values) {
		return nil, fmt.Errorf("filter: savgol window %d longer than input %d", m, len(values))
	}
	coeffs, err := SavGol(m, polyorder)
	if err != nil {
		return nil, err
	}

	n := len(values)
	half := (m - 1) / 2
	out := make([]float64, n)
	for i := half; i < n-half; i++ {
		var acc float64
		for j, c := range coeffs {
			acc += values[i-half+j] * c
		}
		out[i] = acc
	}
	if half == 0 {
		return out, nil
	}
	if err := polyEdge(out[:half], values[:m], polyorder, 0); err != nil {
		return nil, err
	}
	if err := polyEdge(out[n-half:], values[n-m:], polyorder, m-half); err != nil {
		return nil, err
	}
	return out, nil
}

// polyEdge least-squares fits a polynomial to one boundary window and
// evaluates it at the output positions offset..offset+len(dst)-1, counted
// in window-local coordinates.
func polyEdge(dst, window []float64, degree, offset int) error {
	xs := make([]float64, len(window))
	for i := range xs {
		xs[i] = float64(i)
	}
	a := vandermonde(xs, degree)
	b := mat.NewVecDense(len(window), window)
	c := mat.NewVecDense(degree+1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)
	if err := qr.SolveVecTo(c, false, b); err != nil {
		return fmt.Errorf("filter: savgol edge fit: %w", err)
	}
	for t := range dst {
		x := float64(offset + t)
		var v float64
		for j := degree; j >= 0; j-- {
			v = v*x + c.AtVec(j)
		}
		dst[t] = v
	}
	return nil
}

// vandermonde builds the len(xs) x (degree+1) design matrix with rows
// [1, x, x^2, ...].
func vandermonde(xs []float64, degree int) *mat.Dense {
	v := mat.NewDense(len(xs), degree+1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= degree; j++ {
			v.Set(i, j, p)
			p *= x
		}
	}
	return v
}
