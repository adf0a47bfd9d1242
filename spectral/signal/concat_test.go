package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectral/internal/testutil"
	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

func TestDomainConcat(t *testing.T) {
	a := twoChannel(t)
	tailDom, err := domain.New([]float64{700, 800}, unit.Nanometer)
	require.NoError(t, err)
	b, err := New([][]float64{{0.004, 0.007}, {0.005, 0.008}}, tailDom, WithUnit(unit.Milliwatt))
	require.NoError(t, err)

	joined, err := a.DomainConcat(b)
	require.NoError(t, err)
	assert.Equal(t, 5, joined.Domain().Len())
	assert.Equal(t, []float64{400, 500, 600, 700, 800}, joined.Domain().Values())
	// Milliwatt values are converted into microwatts on the way in.
	testutil.RequireSliceNearlyEqual(t, joined.Channel(0), []float64{1, 2, 3, 4, 5}, 1e-9)
	testutil.RequireSliceNearlyEqual(t, joined.Channel(1), []float64{4, 5, 6, 7, 8}, 1e-9)
}

func TestDomainConcatOverlapRejected(t *testing.T) {
	a := twoChannel(t)
	overlapDom, err := domain.New([]float64{550, 650}, unit.Nanometer)
	require.NoError(t, err)
	b, err := New([][]float64{{1, 1}, {1, 1}}, overlapDom, WithUnit(unit.Microwatt))
	require.NoError(t, err)
	_, err = a.DomainConcat(b)
	require.ErrorIs(t, err, domain.ErrNotAscending)
}

func TestDomainConcatValidation(t *testing.T) {
	a := twoChannel(t, WithLabels("g", "r"))
	tailDom, err := domain.New([]float64{700, 800}, unit.Nanometer)
	require.NoError(t, err)

	one, err := New1D([]float64{1, 2}, tailDom, WithUnit(unit.Microwatt))
	require.NoError(t, err)
	_, err = a.DomainConcat(one)
	require.ErrorIs(t, err, ErrChannels)

	renamed, err := New([][]float64{{1, 1}, {1, 1}}, tailDom, WithUnit(unit.Microwatt), WithLabels("g", "b"))
	require.NoError(t, err)
	_, err = a.DomainConcat(renamed)
	require.ErrorIs(t, err, ErrLabels)

	_, err = a.DomainConcat(nil)
	require.ErrorIs(t, err, ErrNilSignal)
}

func TestDomainConcatKeepsRank(t *testing.T) {
	d1, err := domain.New([]float64{0, 1}, unit.Second)
	require.NoError(t, err)
	d2, err := domain.New([]float64{2, 3}, unit.Second)
	require.NoError(t, err)
	a, err := New1D([]float64{1, 2}, d1)
	require.NoError(t, err)
	b, err := New1D([]float64{3, 4}, d2)
	require.NoError(t, err)

	joined, err := a.DomainConcat(b)
	require.NoError(t, err)
	assert.Equal(t, 1, joined.NDim())
	assert.Equal(t, []float64{1, 2, 3, 4}, joined.Magnitude1D())
}

func TestChannelConcat(t *testing.T) {
	a := twoChannel(t, WithLabels("g", "r"))
	b, err := New1D([]float64{0.007, 0.008, 0.009}, nmDomain(t), WithUnit(unit.Milliwatt), WithLabels("b"))
	require.NoError(t, err)

	joined, err := a.ChannelConcat(b)
	require.NoError(t, err)
	assert.Equal(t, 2, joined.NDim())
	assert.Equal(t, 3, joined.NumChannels())
	assert.Equal(t, []string{"g", "r", "b"}, joined.Labels())
	assert.Equal(t, []float64{1, 2, 3}, joined.Channel(0))
	testutil.RequireSliceNearlyEqual(t, joined.Channel(2), []float64{7, 8, 9}, 1e-9)
	assert.True(t, joined.Unit().Same(unit.Microwatt))
}

func TestChannelConcatLabelMismatch(t *testing.T) {
	a := twoChannel(t, WithLabels("g", "r"))
	b, err := New1D([]float64{1, 2, 3}, nmDomain(t), WithUnit(unit.Microwatt))
	require.NoError(t, err)
	_, err = a.ChannelConcat(b)
	require.ErrorIs(t, err, ErrLabels)
}

func TestChannelConcatEqualizesDomains(t *testing.T) {
	a := twoChannel(t)
	fine, err := domain.FromRange(450, 550, 50, unit.Nanometer)
	require.NoError(t, err)
	b, err := New1D([]float64{1, 1, 1}, fine, WithUnit(unit.Microwatt))
	require.NoError(t, err)

	joined, err := a.ChannelConcat(b)
	require.NoError(t, err)
	assert.Equal(t, 3, joined.NumChannels())
	assert.Equal(t, []float64{450, 500, 550}, joined.Domain().Values())
	testutil.RequireSliceNearlyEqual(t, joined.Channel(0), []float64{1.5, 2, 2.5}, 1e-12)
	assert.Equal(t, []float64{1, 1, 1}, joined.Channel(2))
}

func TestChannelConcatOneDimOperands(t *testing.T) {
	a, err := New1D([]float64{1, 2, 3}, nmDomain(t))
	require.NoError(t, err)
	b, err := New1D([]float64{4, 5, 6}, nmDomain(t))
	require.NoError(t, err)

	joined, err := a.ChannelConcat(b)
	require.NoError(t, err)
	assert.Equal(t, 2, joined.NDim())
	assert.Equal(t, 2, joined.NumChannels())
	assert.Equal(t, 0, joined.DomainAxis())
}

func TestChannelConcatMergesClip(t *testing.T) {
	a := twoChannel(t, WithClipMin(0))
	b, err := New1D([]float64{1, 2, 3}, nmDomain(t), WithUnit(unit.Microwatt), WithClipMin(1))
	require.NoError(t, err)

	joined, err := a.ChannelConcat(b)
	require.NoError(t, err)
	lo, ok := joined.ClipMin()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 1}, lo)
	_, ok = joined.ClipMax()
	assert.False(t, ok)
}

func TestAppendValues(t *testing.T) {
	a := twoChannel(t)
	tailDom, err := domain.New([]float64{700, 800}, unit.Nanometer)
	require.NoError(t, err)

	joined, err := a.AppendValues([][]float64{{4, 7}, {5, 8}}, tailDom)
	require.NoError(t, err)
	assert.Equal(t, 5, joined.Domain().Len())
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, joined.Channel(0))
	assert.Equal(t, []float64{4, 5, 6, 7, 8}, joined.Channel(1))
}
