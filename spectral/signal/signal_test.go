package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/interp"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// nmDomain builds the shared three-point wavelength axis used across the
// package tests.
func nmDomain(t *testing.T) *domain.Domain {
	t.Helper()
	d, err := domain.New([]float64{400, 500, 600}, unit.Nanometer)
	require.NoError(t, err)
	return d
}

// twoChannel builds a two-channel signal with channels [1 2 3] and
// [4 5 6] in microwatts on the shared wavelength axis.
func twoChannel(t *testing.T, opts ...Option) *Signal {
	t.Helper()
	all := append([]Option{WithUnit(unit.Microwatt)}, opts...)
	s, err := New([][]float64{{1, 4}, {2, 5}, {3, 6}}, nmDomain(t), all...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := twoChannel(t, WithLabels("green", "red"), WithName("leds"))
	assert.Equal(t, 2, s.NDim())
	assert.Equal(t, 0, s.DomainAxis())
	assert.Equal(t, 2, s.NumChannels())
	assert.Equal(t, []float64{1, 2, 3}, s.Channel(0))
	assert.Equal(t, []float64{4, 5, 6}, s.Channel(1))
	assert.Equal(t, []string{"green", "red"}, s.Labels())
	assert.Equal(t, "leds", s.Name())
	assert.True(t, s.Unit().Same(unit.Microwatt))
	assert.Equal(t, "linear", s.Interpolator().Name())
}

func TestNewDomainAxisOne(t *testing.T) {
	s, err := New([][]float64{{1, 2, 3}, {4, 5, 6}}, nmDomain(t), WithDomainAxis(1))
	require.NoError(t, err)
	assert.Equal(t, 1, s.DomainAxis())
	assert.Equal(t, 2, s.NumChannels())
	assert.Equal(t, []float64{1, 2, 3}, s.Channel(0))
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, s.Values())
}

func TestNewValidation(t *testing.T) {
	d := nmDomain(t)

	_, err := New([][]float64{{1}, {2}, {3}}, nil)
	require.ErrorIs(t, err, ErrNilDomain)

	_, err = New(nil, d)
	require.ErrorIs(t, err, ErrEmptyValues)

	_, err = New([][]float64{{1, 2}, {3}, {4, 5}}, d)
	require.ErrorIs(t, err, ErrRagged)

	_, err = New([][]float64{{1}, {2}}, d)
	require.ErrorIs(t, err, ErrShape)

	_, err = New([][]float64{{1}, {2}, {3}}, d, WithDomainAxis(2))
	require.ErrorIs(t, err, ErrAxis)

	_, err = New([][]float64{{1, 4}, {2, 5}, {3, 6}}, d, WithLabels("only one"))
	require.ErrorIs(t, err, ErrLabels)

	_, err = New([][]float64{{1, 4}, {2, 5}, {3, 6}}, d, WithClipMinPerChannel([]float64{0, 0, 0}))
	require.ErrorIs(t, err, ErrClipLength)

	_, err = New([][]float64{{1}, {2}, {3}}, d, WithClipMin(2), WithClipMax(1))
	require.ErrorIs(t, err, ErrClipOrder)

	_, err = New([][]float64{{1}, {2}, {3}}, d, WithDomainBounds(600, 400))
	require.Error(t, err)
}

func TestNew1D(t *testing.T) {
	s, err := New1D([]float64{1, 2, 3}, nmDomain(t), WithUnit(unit.Milliwatt))
	require.NoError(t, err)
	assert.Equal(t, 1, s.NDim())
	assert.Equal(t, 1, s.NumChannels())
	assert.Equal(t, []float64{1, 2, 3}, s.Magnitude1D())

	_, err = New1D(nil, nmDomain(t))
	require.ErrorIs(t, err, ErrEmptyValues)

	_, err = New1D([]float64{1, 2, 3}, nmDomain(t), WithDomainAxis(1))
	require.ErrorIs(t, err, ErrAxis)

	// Per-channel clip bounds have no meaning on a single channel.
	_, err = New1D([]float64{1, 2, 3}, nmDomain(t), WithClipMinPerChannel([]float64{0, 1}))
	require.ErrorIs(t, err, ErrClipLength)
}

func TestNewCopiesInput(t *testing.T) {
	values := [][]float64{{1, 4}, {2, 5}, {3, 6}}
	s, err := New(values, nmDomain(t))
	require.NoError(t, err)
	values[0][0] = 99
	assert.Equal(t, []float64{1, 2, 3}, s.Channel(0))

	ch := s.Channel(1)
	ch[0] = -1
	assert.Equal(t, []float64{4, 5, 6}, s.Channel(1))
}

func TestValuesOrientation(t *testing.T) {
	s := twoChannel(t)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, s.Values())

	flipped := s.T()
	assert.Equal(t, 1, flipped.DomainAxis())
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, flipped.Values())
	// Transposing does not touch the underlying channels.
	assert.Equal(t, s.Channel(0), flipped.Channel(0))
}

func TestMoveAxis(t *testing.T) {
	s := twoChannel(t)

	same, err := s.MoveAxis(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, same.DomainAxis())

	moved, err := s.MoveAxis(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.DomainAxis())

	_, err = s.MoveAxis(0, 2)
	require.ErrorIs(t, err, ErrAxis)

	one, err := New1D([]float64{1, 2, 3}, nmDomain(t))
	require.NoError(t, err)
	_, err = one.MoveAxis(0, 1)
	require.ErrorIs(t, err, ErrAxis)
}

func TestSetValues(t *testing.T) {
	s := twoChannel(t)
	// Millwatt values are converted into the signal's microwatts.
	err := s.SetValues([][]float64{{0.001, 0.004}, {0.002, 0.005}, {0.003, 0.006}}, unit.Milliwatt)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, s.Channel(0), 1e-12)

	err = s.SetValues([][]float64{{1, 2}}, unit.Microwatt)
	require.ErrorIs(t, err, ErrShape)

	err = s.SetValues([][]float64{{1}, {2}, {3}}, unit.Microwatt)
	require.ErrorIs(t, err, ErrShape)

	err = s.SetValues([][]float64{{1, 2}, {3, 4}, {5, 6}}, unit.Second)
	require.ErrorIs(t, err, unit.ErrIncompatible)
}

func TestTo(t *testing.T) {
	s := twoChannel(t, WithClipMin(0), WithClipMax(1000))
	mw, err := s.To(unit.Milliwatt)
	require.NoError(t, err)
	assert.True(t, mw.Unit().Same(unit.Milliwatt))
	assert.InDeltaSlice(t, []float64{0.001, 0.002, 0.003}, mw.Channel(0), 1e-15)

	// Clip bounds follow the conversion.
	hi, ok := mw.ClipMax()
	assert.True(t, ok)
	assert.InDelta(t, 1.0, hi[0], 1e-15)

	_, err = s.To(unit.Volt)
	require.ErrorIs(t, err, unit.ErrIncompatible)
}

func TestEqualSignals(t *testing.T) {
	a := twoChannel(t)
	b := twoChannel(t)
	assert.True(t, a.Equal(b))

	// Same magnitudes under a different unit are not equal.
	c := twoChannel(t)
	c.u = unit.Milliwatt
	assert.False(t, a.Equal(c))

	d := twoChannel(t)
	d.data[1][2] = 7
	assert.False(t, a.Equal(d))

	assert.False(t, a.Equal(a.T()))

	one, err := New1D([]float64{1, 2, 3}, nmDomain(t), WithUnit(unit.Microwatt))
	require.NoError(t, err)
	assert.False(t, one.Equal(a))

	// NaN samples never compare equal.
	n1, err := New1D([]float64{1, math.NaN(), 3}, nmDomain(t))
	require.NoError(t, err)
	n2, err := New1D([]float64{1, math.NaN(), 3}, nmDomain(t))
	require.NoError(t, err)
	assert.False(t, n1.Equal(n2))
}

func TestBoundaries(t *testing.T) {
	s, err := New([][]float64{{1, math.NaN()}, {3, 5}, {2, math.NaN()}}, nmDomain(t))
	require.NoError(t, err)
	mins, maxs := s.Boundaries()
	assert.Equal(t, []float64{1, 5}, mins)
	assert.Equal(t, []float64{3, 5}, maxs)
}

func TestAttrsCopied(t *testing.T) {
	attrs := map[string]string{"source": "calibration bench"}
	s := twoChannel(t, WithAttrs(attrs))
	attrs["source"] = "changed"
	assert.Equal(t, "calibration bench", s.Attrs()["source"])

	got := s.Attrs()
	got["source"] = "changed again"
	assert.Equal(t, "calibration bench", s.Attrs()["source"])
}

func TestString(t *testing.T) {
	s := twoChannel(t, WithName("leds"))
	assert.Equal(t, `Signal("leds", 2 channels x 3 samples [nm] -> uW)`, s.String())

	one, err := New1D([]float64{1, 2, 3}, nmDomain(t))
	require.NoError(t, err)
	assert.Equal(t, "Signal(3 samples [nm])", one.String())
}

func TestClone(t *testing.T) {
	s := twoChannel(t, WithLabels("green", "red"), WithName("leds"))
	c := s.Clone()
	assert.True(t, s.Equal(c))
	assert.Equal(t, s.Labels(), c.Labels())

	// The copy owns its samples.
	c.data[0][0] = 99
	assert.Equal(t, []float64{1, 2, 3}, s.Channel(0))
}

func TestTo2D(t *testing.T) {
	one, err := New1D([]float64{1, 2, 3}, nmDomain(t), WithUnit(unit.Microwatt))
	require.NoError(t, err)
	two := one.To2D()
	assert.Equal(t, 2, two.NDim())
	assert.Equal(t, 1, two.NumChannels())
	assert.Equal(t, []float64{1, 2, 3}, two.Channel(0))
	// The source keeps its dimensionality.
	assert.Equal(t, 1, one.NDim())

	s := twoChannel(t)
	assert.Equal(t, 2, s.To2D().NDim())
}

func TestRelabel(t *testing.T) {
	s := twoChannel(t, WithLabels("green", "red"))

	renamed, err := s.Relabel("g", "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "r"}, renamed.Labels())
	assert.Equal(t, []string{"green", "red"}, s.Labels())

	cleared, err := s.Relabel()
	require.NoError(t, err)
	assert.Nil(t, cleared.Labels())

	_, err = s.Relabel("only one")
	require.ErrorIs(t, err, ErrLabels)
}

func TestInterpolatorChoice(t *testing.T) {
	s := twoChannel(t, WithInterpolator(interp.Steps()))
	assert.Equal(t, "steps", s.Interpolator().Name())
	got, err := s.At(450)
	require.NoError(t, err)
	// Left-continuous piecewise constant takes the next sample's value.
	assert.Equal(t, []float64{2, 5}, got.Data)
}
