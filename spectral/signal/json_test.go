package signal

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectral/internal/testutil"
	"github.com/cwbudde/algo-spectral/spectral/interp"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

func TestJSONRoundTrip(t *testing.T) {
	s, err := New([][]float64{{1, 4}, {2, 5}, {3, 6}}, nmDomain(t),
		WithUnit(unit.Microwatt),
		WithName("leds"),
		WithLabels("green", "red"),
		WithAttrs(map[string]string{"device": "PR-655"}),
		WithInterpolator(interp.Akima()),
		WithClipMinPerChannel([]float64{0, 0}),
		WithClipMaxPerChannel([]float64{10, 10}),
		WithDomainBounds(380, 700),
	)
	require.NoError(t, err)

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var back Signal
	require.NoError(t, json.Unmarshal(raw, &back))

	assert.True(t, back.Equal(s))
	assert.Equal(t, "leds", back.Name())
	assert.Equal(t, []string{"green", "red"}, back.Labels())
	assert.Equal(t, map[string]string{"device": "PR-655"}, back.Attrs())
	assert.Equal(t, "akima", back.Interpolator().Name())

	lo, ok := back.ClipMin()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0}, lo)
	hi, ok := back.ClipMax()
	require.True(t, ok)
	assert.Equal(t, []float64{10, 10}, hi)

	dmin, ok := back.DomainMin()
	require.True(t, ok)
	assert.Equal(t, 380.0, dmin)
	dmax, ok := back.DomainMax()
	require.True(t, ok)
	assert.Equal(t, 700.0, dmax)

	assert.True(t, back.Unit().Same(unit.Microwatt))
	assert.True(t, back.Domain().Unit().Same(unit.Nanometer))
}

func TestJSONNonFiniteValues(t *testing.T) {
	s, err := New1D([]float64{1, math.NaN(), math.Inf(1)}, nmDomain(t))
	require.NoError(t, err)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "null")
	assert.Contains(t, string(raw), `"inf"`)

	back, err := Load(bytes.NewReader(raw))
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqualNaN(t, back.Magnitude1D(), []float64{1, math.NaN(), math.Inf(1)}, 0)
}

func TestJSONDefaultsOmitted(t *testing.T) {
	s, err := New1D([]float64{1, 2, 3}, nmDomain(t))
	require.NoError(t, err)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	text := string(raw)
	assert.NotContains(t, text, "labels")
	assert.NotContains(t, text, "clip_min")
	assert.NotContains(t, text, "domain_min")
	assert.Contains(t, text, `"kind":"signal"`)

	back, err := Load(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.True(t, back.Equal(s))
	assert.Equal(t, 1, back.NDim())
	_, ok := back.ClipMin()
	assert.False(t, ok)
}

func TestJSONRejectsForeignKind(t *testing.T) {
	raw := []byte(`{"kind":"chromaticity","domain":[1,2],"values":[[1,2]],"ndim":1,"domain_axis":0}`)
	var s Signal
	err := json.Unmarshal(raw, &s)
	require.ErrorIs(t, err, ErrKind)
}

func TestJSONRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bad ndim", `{"kind":"signal","domain":[1,2],"values":[[1,2]],"ndim":3,"domain_axis":0}`},
		{"bad axis", `{"kind":"signal","domain":[1,2],"values":[[1,2],[3,4]],"ndim":2,"domain_axis":2}`},
		{"no values", `{"kind":"signal","domain":[1,2],"values":[],"ndim":1,"domain_axis":0}`},
		{"multi-channel 1d", `{"kind":"signal","domain":[1,2],"values":[[1,2],[3,4]],"ndim":1,"domain_axis":0}`},
		{"descending domain", `{"kind":"signal","domain":[2,1],"values":[[1,2]],"ndim":1,"domain_axis":0}`},
		{"unknown interpolator", `{"kind":"signal","domain":[1,2],"values":[[1,2]],"ndim":1,"domain_axis":0,"interpolator":"quintic"}`},
		{"bad unit", `{"kind":"signal","unit":"parsec","domain":[1,2],"values":[[1,2]],"ndim":1,"domain_axis":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s Signal
			assert.Error(t, json.Unmarshal([]byte(tc.raw), &s))
		})
	}
}

func TestSaveLoad(t *testing.T) {
	s := twoChannel(t, WithName("bench"))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, s))
	assert.Contains(t, buf.String(), "\n  \"kind\"")

	back, err := Load(&buf)
	require.NoError(t, err)
	assert.True(t, back.Equal(s))
	assert.Equal(t, "bench", back.Name())

	require.ErrorIs(t, Save(&buf, nil), ErrNilSignal)
}
