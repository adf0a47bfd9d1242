package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarConvert(t *testing.T) {
	s := Scalar{Value: 2.5, Unit: Microwatt}
	got, err := s.To(Milliwatt)
	require.NoError(t, err)
	assert.InEpsilon(t, 2.5e-3, got.Value, 1e-12)
	assert.True(t, got.Unit.Same(Milliwatt))

	_, err = s.To(Nanometer)
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestScalarArithmetic(t *testing.T) {
	a := Scalar{Value: 1, Unit: Meter}
	b := Scalar{Value: 50, Unit: Centimeter}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.5, sum.Value, 1e-12)
	assert.True(t, sum.Unit.Same(Meter))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.5, diff.Value, 1e-12)

	_, err = a.Add(Scalar{Value: 1, Unit: Second})
	require.ErrorIs(t, err, ErrIncompatible)

	prod := a.Mul(Scalar{Value: 3, Unit: Second.Pow(-1)})
	assert.Equal(t, 3.0, prod.Value)
	assert.True(t, prod.Unit.Same(Meter.Div(Second)))

	quot := a.Div(Scalar{Value: 4, Unit: Second})
	assert.Equal(t, 0.25, quot.Value)
	assert.True(t, quot.Unit.Same(Meter.Div(Second)))
}

func TestScalarEqual(t *testing.T) {
	assert.True(t, Scalar{1, Meter}.Equal(Scalar{100, Centimeter}))
	assert.False(t, Scalar{1, Meter}.Equal(Scalar{1, Centimeter}))
	assert.False(t, Scalar{1, Meter}.Equal(Scalar{1, Second}))
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "450 nm", Scalar{450, Nanometer}.String())
	assert.Equal(t, "0.5", Scalar{0.5, Dimensionless}.String())
}

func TestArrayConvert(t *testing.T) {
	a := NewArray([]float64{1, 2, 3}, Millimeter)
	got, err := a.To(Micrometer)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1000, 2000, 3000}, got.Data, 1e-9)

	// Conversion must not alias the source data.
	got.Data[0] = -1
	assert.Equal(t, 1.0, a.Data[0])

	_, err = a.To(Watt)
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestArrayEqual(t *testing.T) {
	a := NewArray([]float64{1, 2}, Nanometer)
	assert.True(t, a.Equal(NewArray([]float64{1, 2}, Nanometer)))
	assert.False(t, a.Equal(NewArray([]float64{1, 2}, Micrometer)))
	assert.False(t, a.Equal(NewArray([]float64{1, 3}, Nanometer)))
}
