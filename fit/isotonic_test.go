package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsotonicMonotoneInputUnchanged(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 2}
	got, err := Isotonic(x, y, WithBounds(0, 2))
	require.NoError(t, err)
	assert.Equal(t, y, got)
}

func TestIsotonicPoolsViolators(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
		want []float64
	}{
		{"single violation", []float64{1, 3, 2}, []float64{1, 2.5, 2.5}},
		{"violation at head", []float64{3, 1, 2}, []float64{2, 2, 2}},
		{"cascade", []float64{4, 3, 2, 1}, []float64{2.5, 2.5, 2.5, 2.5}},
		{"plateau kept", []float64{1, 1, 2}, []float64{1, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]float64, len(tt.y))
			for i := range x {
				x[i] = float64(i)
			}
			got, err := Isotonic(x, tt.y)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestIsotonicDecreasing(t *testing.T) {
	x := []float64{0, 1, 2}
	got, err := Isotonic(x, []float64{2, 3, 1}, Decreasing())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.5, 2.5, 1}, got, 1e-12)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i], got[i-1])
	}
}

func TestIsotonicBoundsClip(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	got, err := Isotonic(x, []float64{0, 1, 2, 3}, WithBounds(0.5, 2.5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1, 2, 2.5}, got, 1e-12)
}

func TestIsotonicResultIsMonotone(t *testing.T) {
	x := make([]float64, 12)
	for i := range x {
		x[i] = float64(i)
	}
	y := []float64{0.3, 0.1, 0.5, 0.4, 0.4, 0.9, 0.7, 1.2, 1.0, 1.5, 1.4, 1.6}
	got, err := Isotonic(x, y)
	require.NoError(t, err)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i], got[i-1], "index %d", i)
	}
}

func TestIsotonicErrors(t *testing.T) {
	_, err := Isotonic(nil, nil)
	require.ErrorIs(t, err, ErrBadInput)

	_, err = Isotonic([]float64{0, 1}, []float64{1})
	require.ErrorIs(t, err, ErrBadInput)

	_, err = Isotonic([]float64{1, 1}, []float64{1, 2})
	require.ErrorIs(t, err, ErrBadInput)

	_, err = Isotonic([]float64{0, 1}, []float64{1, 2}, WithBounds(3, 1))
	require.ErrorIs(t, err, ErrBadBounds)
}
