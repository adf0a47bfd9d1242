package domain

import (
	"testing"

	"github.com/cwbudde/algo-spectral/spectral/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d, err := New([]float64{400, 500, 600}, unit.Nanometer)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 400.0, d.Start())
	assert.Equal(t, 600.0, d.End())
	assert.Equal(t, 500.0, d.At(1))
	assert.True(t, d.Unit().Same(unit.Nanometer))
}

func TestNewRejectsUnordered(t *testing.T) {
	_, err := New([]float64{400, 600, 500}, unit.Nanometer)
	require.ErrorIs(t, err, ErrNotAscending)

	_, err = New([]float64{400, 400, 500}, unit.Nanometer)
	require.ErrorIs(t, err, ErrNotAscending)

	_, err = New(nil, unit.Nanometer)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestNewCopiesInput(t *testing.T) {
	src := []float64{1, 2, 3}
	d, err := New(src, unit.Volt)
	require.NoError(t, err)
	src[0] = 99
	assert.Equal(t, 1.0, d.At(0))

	vs := d.Values()
	vs[1] = -5
	assert.Equal(t, 2.0, d.At(1))
}

func TestNewSorted(t *testing.T) {
	d, perm, err := NewSorted([]float64{3, 1, 2}, unit.Volt)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, d.Values())
	assert.Equal(t, []int{1, 2, 0}, perm)

	_, _, err = NewSorted([]float64{1, 1, 2}, unit.Volt)
	require.ErrorIs(t, err, ErrNotAscending)
}

func TestFromRange(t *testing.T) {
	d, err := FromRange(400, 700, 1, unit.Nanometer)
	require.NoError(t, err)
	assert.Equal(t, 301, d.Len())
	assert.Equal(t, 400.0, d.Start())
	assert.Equal(t, 700.0, d.End())

	// Stop that the step does not hit exactly is trimmed.
	d, err = FromRange(0, 1, 0.3, unit.Second)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())
	assert.InDelta(t, 0.9, d.End(), 1e-12)

	_, err = FromRange(0, 1, 0, unit.Second)
	require.Error(t, err)
	_, err = FromRange(1, 0, 0.5, unit.Second)
	require.Error(t, err)
}

func TestInterval(t *testing.T) {
	uniform, err := New([]float64{400, 500, 600}, unit.Nanometer)
	require.NoError(t, err)
	step, ok := uniform.Interval()
	assert.True(t, ok)
	assert.Equal(t, 100.0, step)
	assert.True(t, uniform.IsUniform())

	ragged, err := New([]float64{0, 1, 3}, unit.Volt)
	require.NoError(t, err)
	_, ok = ragged.Interval()
	assert.False(t, ok)
	assert.False(t, ragged.IsUniform())

	single, err := New([]float64{5}, unit.Volt)
	require.NoError(t, err)
	_, ok = single.Interval()
	assert.False(t, ok)
}

func TestGradient(t *testing.T) {
	d, err := New([]float64{400, 500, 600}, unit.Nanometer)
	require.NoError(t, err)
	g, err := d.Gradient()
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 100}, g.Data)
	assert.True(t, g.Unit.Same(unit.Nanometer))

	ragged, err := New([]float64{0, 1, 3}, unit.Volt)
	require.NoError(t, err)
	g, err = ragged.Gradient()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5, 2}, g.Data)

	single, err := New([]float64{1}, unit.Volt)
	require.NoError(t, err)
	_, err = single.Gradient()
	require.ErrorIs(t, err, ErrTooShort)
}

func TestExtend(t *testing.T) {
	d, err := New([]float64{10, 20, 30}, unit.Millisecond)
	require.NoError(t, err)

	right, err := d.Extend(2, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, right.Values())

	left, err := d.Extend(2, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{-10, 0, 10, 20, 30}, left.Values())

	ragged, err := New([]float64{0, 1, 3}, unit.Second)
	require.NoError(t, err)
	_, err = ragged.Extend(1, false)
	require.ErrorIs(t, err, ErrNotUniform)
}

func TestAppend(t *testing.T) {
	a, err := New([]float64{400, 500}, unit.Nanometer)
	require.NoError(t, err)
	b, err := New([]float64{0.6, 0.7}, unit.Micrometer)
	require.NoError(t, err)

	joined, err := a.Append(b, false)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{400, 500, 600, 700}, joined.Values(), 1e-9)
	assert.True(t, joined.Unit().Same(unit.Nanometer))

	// Appending on the wrong side breaks ordering.
	_, err = a.Append(b, true)
	require.ErrorIs(t, err, ErrNotAscending)
}

func TestEnforceUniformity(t *testing.T) {
	d, err := New([]float64{0, 1, 3}, unit.Volt)
	require.NoError(t, err)
	u := d.EnforceUniformity()
	assert.Equal(t, []float64{0, 1.5, 3}, u.Values())
	assert.True(t, u.IsUniform())

	// Already uniform domains keep their coordinates.
	d, err = New([]float64{2, 4, 6}, unit.Volt)
	require.NoError(t, err)
	assert.Equal(t, d.Values(), d.EnforceUniformity().Values())
}

func TestTo(t *testing.T) {
	d, err := New([]float64{400, 500}, unit.Nanometer)
	require.NoError(t, err)
	um, err := d.To(unit.Micrometer)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.4, 0.5}, um.Values(), 1e-12)

	_, err = d.To(unit.Second)
	require.ErrorIs(t, err, unit.ErrIncompatible)
}

func TestEqual(t *testing.T) {
	a, _ := New([]float64{1, 2}, unit.Volt)
	b, _ := New([]float64{1, 2}, unit.Volt)
	c, _ := New([]float64{1, 3}, unit.Volt)
	d, _ := New([]float64{1, 2}, unit.Millivolt)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestContains(t *testing.T) {
	d, err := New([]float64{400, 700}, unit.Nanometer)
	require.NoError(t, err)
	assert.True(t, d.Contains(400))
	assert.True(t, d.Contains(550))
	assert.True(t, d.Contains(700))
	assert.True(t, d.Contains(700+1e-10*700))
	assert.False(t, d.Contains(399.9))
	assert.False(t, d.Contains(700.1))
}

func TestEqualize(t *testing.T) {
	a, err := FromRange(400, 600, 100, unit.Nanometer)
	require.NoError(t, err)
	b, err := FromRange(450, 650, 50, unit.Nanometer)
	require.NoError(t, err)

	shared, err := Equalize(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{450, 500, 550, 600}, shared.Values())
	assert.True(t, shared.Unit().Same(unit.Nanometer))
}

func TestEqualizeSameDomain(t *testing.T) {
	a, err := FromRange(400, 600, 100, unit.Nanometer)
	require.NoError(t, err)
	b, err := FromRange(400, 600, 100, unit.Nanometer)
	require.NoError(t, err)
	shared, err := Equalize(a, b)
	require.NoError(t, err)
	assert.True(t, shared.Equal(a))
}

func TestEqualizeConvertsUnits(t *testing.T) {
	a, err := FromRange(400, 600, 100, unit.Nanometer)
	require.NoError(t, err)
	b, err := New([]float64{0.45, 0.55, 0.65}, unit.Micrometer)
	require.NoError(t, err)
	shared, err := Equalize(a, b)
	require.NoError(t, err)
	assert.True(t, shared.Unit().Same(unit.Nanometer))
	assert.InDelta(t, 450, shared.Start(), 1e-9)
	assert.InDelta(t, 550, shared.End(), 1e-9)
}

func TestEqualizeDisjoint(t *testing.T) {
	a, err := FromRange(400, 500, 50, unit.Nanometer)
	require.NoError(t, err)
	b, err := FromRange(600, 700, 50, unit.Nanometer)
	require.NoError(t, err)
	_, err = Equalize(a, b)
	require.ErrorIs(t, err, ErrNoOverlap)
}
