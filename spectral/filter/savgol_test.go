package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavGolCoefficients(t *testing.T) {
	// Classic 5-point quadratic smoother: [-3, 12, 17, 12, -3] / 35.
	got, err := SavGol(5, 2)
	require.NoError(t, err)
	want := []float64{-3.0 / 35, 12.0 / 35, 17.0 / 35, 12.0 / 35, -3.0 / 35}
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestSavGolUnitSum(t *testing.T) {
	for _, tc := range []struct{ m, p int }{{5, 2}, {7, 3}, {11, 2}, {9, 4}} {
		got, err := SavGol(tc.m, tc.p)
		require.NoError(t, err)
		var sum float64
		for _, v := range got {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-10, "m=%d p=%d", tc.m, tc.p)
	}
}

func TestSavGolValidation(t *testing.T) {
	_, err := SavGol(4, 2)
	require.Error(t, err)
	_, err = SavGol(5, 5)
	require.Error(t, err)
	_, err = SavGol(-1, 0)
	require.Error(t, err)
}

func TestSavGolFilterPreservesPolynomials(t *testing.T) {
	// A polynomial at or below the filter order passes through unchanged,
	// edges included.
	n := 25
	values := make([]float64, n)
	for i := range values {
		x := float64(i)
		values[i] = 2 + 0.5*x - 0.125*x*x
	}
	got, err := SavGolFilter(values, 7, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, values, got, 1e-9)
}

func TestSavGolFilterSmoothsSpike(t *testing.T) {
	values := make([]float64, 21)
	values[10] = 1
	got, err := SavGolFilter(values, 5, 2)
	require.NoError(t, err)
	// The spike is attenuated to the center coefficient.
	assert.InDelta(t, 17.0/35, got[10], 1e-12)
	assert.Less(t, got[10], 1.0)
}

func TestSavGolFilterWindowTooLong(t *testing.T) {
	_, err := SavGolFilter([]float64{1, 2, 3}, 5, 2)
	require.Error(t, err)
	_, err = SavGolFilter(nil, 5, 2)
	require.ErrorIs(t, err, ErrEmptyInput)
}
