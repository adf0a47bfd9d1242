package filter

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by filtering functions.
var (
	ErrEmptyInput  = errors.New("filter: empty input")
	ErrEmptyKernel = errors.New("filter: empty kernel")
	ErrBadLength   = errors.New("filter: kernel length must be >= 1")
)

// KernelKind identifies a smoothing kernel shape.
type KernelKind int

const (
	// Boxcar is the moving-average kernel.
	Boxcar KernelKind = iota
	// Hann is the raised-cosine kernel.
	Hann
	// Hamming is the Hamming-weighted cosine kernel.
	Hamming
	// Blackman is the three-term Blackman kernel.
	Blackman
	// Gauss is a Gaussian kernel with sigma = (m-1)/6.
	Gauss
)

// String returns the kernel name.
func (k KernelKind) String() string {
	switch k {
	case Boxcar:
		return "boxcar"
	case Hann:
		return "hann"
	case Hamming:
		return "hamming"
	case Blackman:
		return "blackman"
	case Gauss:
		return "gauss"
	default:
		return fmt.Sprintf("KernelKind(%d)", int(k))
	}
}

// Kernel returns m normalized smoothing coefficients of the given shape.
// The coefficients sum to 1 so that convolution preserves signal level.
func Kernel(m int, kind KernelKind) ([]float64, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadLength, m)
	}
	out := make([]float64, m)
	// Symmetric cosine windows vanish at both endpoints, so below three
	// points every shape reduces to the uniform kernel.
	if m <= 2 {
		for i := range out {
			out[i] = 1 / float64(m)
		}
		return out, nil
	}
	span := float64(m - 1)
	for i := range out {
		x := float64(i) / span
		switch kind {
		case Boxcar:
			out[i] = 1
		case Hann:
			out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
		case Hamming:
			out[i] = 0.54 - 0.46*math.Cos(2*math.Pi*x)
		case Blackman:
			out[i] = 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
		case Gauss:
			sigma := span / 6
			d := float64(i) - span/2
			out[i] = math.Exp(-0.5 * (d / sigma) * (d / sigma))
		default:
			return nil, fmt.Errorf("filter: unknown kernel kind %d", int(kind))
		}
	}
	normalize(out)
	return out, nil
}

// normalize scales coefficients to unit sum.
func normalize(w []float64) {
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
}
