package filter

// Mode specifies the output extent of convolution.
type Mode int

const (
	// ModeFull returns the full result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// centered on the full result.
	ModeSame

	// ModeValid returns only the portion where both inputs fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// Direct performs direct time-domain linear convolution of a and b and
// returns a new slice of length len(a)+len(b)-1. This is O(N*M) and suited
// to short kernels; Convolve switches to FFT blocks for long ones.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}
	dst := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			dst[i+j] += av * bv
		}
	}
	return dst, nil
}

// directThreshold is the kernel length above which FFT overlap-add beats
// direct convolution.
const directThreshold = 64

// Convolve performs linear convolution with automatic algorithm selection:
// direct for short kernels, FFT overlap-add for long ones.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	if len(b) <= directThreshold {
		return Direct(a, b)
	}
	return overlapAddConvolve(a, b)
}

// ConvolveMode performs convolution and trims the result to the given mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, len(a), len(b), mode), nil
}

// trimToMode extracts the requested portion of a full convolution result.
func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
