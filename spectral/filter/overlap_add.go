package filter

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// overlapAdd convolves long inputs against a fixed kernel in FFT blocks:
// the input is cut into non-overlapping segments, each segment is convolved
// with the kernel by frequency-domain multiplication, and the overlapping
// tails of consecutive segment results are summed into the output.
type overlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int
	plan      *algofft.Plan[complex128]
	scratch   []complex128
	product   []complex128
}

func newOverlapAdd(kernel []float64) (*overlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	blockSize := nextPowerOf2(len(kernel))
	if blockSize < 256 {
		blockSize = 256
	}
	fftSize := nextPowerOf2(blockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("filter: fft plan: %w", err)
	}

	oa := &overlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
		product:   make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("filter: kernel fft: %w", err)
	}
	return oa, nil
}

func (oa *overlapAdd) process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}
	outputLen := len(input) + oa.kernelLen - 1
	output := make([]float64, outputLen)

	for start := 0; start < len(input); start += oa.blockSize {
		end := start + oa.blockSize
		if end > len(input) {
			end = len(input)
		}
		blockLen := end - start

		for i := range oa.scratch {
			oa.scratch[i] = 0
		}
		for i := 0; i < blockLen; i++ {
			oa.scratch[i] = complex(input[start+i], 0)
		}
		if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
			return nil, fmt.Errorf("filter: forward fft: %w", err)
		}
		for i := range oa.product {
			oa.product[i] = oa.scratch[i] * oa.kernelFFT[i]
		}
		if err := oa.plan.Inverse(oa.product, oa.product); err != nil {
			return nil, fmt.Errorf("filter: inverse fft: %w", err)
		}

		// Each block contributes blockLen+kernelLen-1 samples starting at
		// its own offset; tails overlap the next block's head.
		tail := blockLen + oa.kernelLen - 1
		for i := 0; i < tail && start+i < outputLen; i++ {
			output[start+i] += real(oa.product[i])
		}
	}
	return output, nil
}

// overlapAddConvolve performs one-shot FFT-based linear convolution.
func overlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := newOverlapAdd(kernel)
	if err != nil {
		return nil, err
	}
	return oa.process(signal)
}
