package measure

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/signal"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// SpectrumOption configures spectrum construction.
type SpectrumOption func(*spectrumConfig)

type spectrumConfig struct {
	zeroBoundary float64
	maxBoundary  float64
	zeroIsLower  bool
	polaritySet  bool
}

// WithZeroBoundary records the control-input setting, in input units, that
// produces zero output.
func WithZeroBoundary(v float64) SpectrumOption {
	return func(c *spectrumConfig) { c.zeroBoundary = v }
}

// WithMaxBoundary records the control-input setting, in input units, that
// produces the maximum output.
func WithMaxBoundary(v float64) SpectrumOption {
	return func(c *spectrumConfig) { c.maxBoundary = v }
}

// WithZeroIsLower states whether output rises with the control input.
// When omitted, the polarity is derived from the zero and max boundaries,
// which must then both be given.
func WithZeroIsLower(b bool) SpectrumOption {
	return func(c *spectrumConfig) {
		c.zeroIsLower = b
		c.polaritySet = true
	}
}

// Spectrum is one measured output channel: a two-dimensional signal whose
// channels are the spectra recorded at the ordered control-input settings,
// plus the channel's calibration boundaries.
type Spectrum struct {
	sig    *signal.Signal
	inputs *domain.Domain

	zeroBoundary float64 // NaN when unknown
	maxBoundary  float64
	zeroIsLower  bool
}

// NewSpectrum builds a measured spectrum from a named two-dimensional
// signal and the ascending domain of control-input settings, one per
// signal channel. At least the polarity, or both boundaries to derive it
// from, must be supplied.
func NewSpectrum(sig *signal.Signal, inputs *domain.Domain, opts ...SpectrumOption) (*Spectrum, error) {
	cfg := spectrumConfig{zeroBoundary: math.NaN(), maxBoundary: math.NaN()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if sig == nil {
		return nil, ErrNilSignal
	}
	if inputs == nil {
		return nil, ErrNilInputs
	}
	if sig.NDim() != 2 {
		return nil, ErrNotTwoDim
	}
	if inputs.Len() != sig.NumChannels() {
		return nil, fmt.Errorf("%w: %d settings for %d channels", ErrInputCount, inputs.Len(), sig.NumChannels())
	}
	if sig.Name() == "" {
		return nil, ErrNoName
	}
	if !cfg.polaritySet && (math.IsNaN(cfg.zeroBoundary) || math.IsNaN(cfg.maxBoundary)) {
		return nil, ErrBoundaryConfig
	}
	zil := cfg.zeroIsLower
	if !cfg.polaritySet {
		zil = cfg.zeroBoundary < cfg.maxBoundary
	}
	return &Spectrum{
		sig:          sig.Clone(),
		inputs:       inputs,
		zeroBoundary: cfg.zeroBoundary,
		maxBoundary:  cfg.maxBoundary,
		zeroIsLower:  zil,
	}, nil
}

// NewSpectrumFromSettings builds a measured spectrum from raw, possibly
// unordered control-input settings. Unordered settings are sorted
// ascendingly with a logged warning, and the signal's channels, labels,
// and per-channel clip bounds are reordered to follow them. Duplicate
// settings fail with domain.ErrNotAscending.
func NewSpectrumFromSettings(sig *signal.Signal, settings []float64, u unit.Unit, opts ...SpectrumOption) (*Spectrum, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	if len(settings) != sig.NumChannels() {
		return nil, fmt.Errorf("%w: %d settings for %d channels", ErrInputCount, len(settings), sig.NumChannels())
	}
	inputs, perm, err := domain.NewSorted(settings, u)
	if err != nil {
		return nil, err
	}
	if !identity(perm) {
		slog.Warn("control input settings are not sorted ascendingly, reordering channels",
			"name", sig.Name())
		sig, err = reorderChannels(sig, perm)
		if err != nil {
			return nil, err
		}
	}
	return NewSpectrum(sig, inputs, opts...)
}

func identity(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}

// reorderChannels rebuilds the signal with its channels, labels, and
// per-channel clip bounds permuted: channel i of the result is channel
// perm[i] of src.
func reorderChannels(src *signal.Signal, perm []int) (*signal.Signal, error) {
	rows := make([][]float64, len(perm))
	for i, p := range perm {
		rows[i] = src.Channel(p)
	}
	labels := src.Labels()
	if labels != nil {
		labels = permuteStrings(labels, perm)
	}
	lo, _ := src.ClipMin()
	hi, _ := src.ClipMax()
	return channelSignal(src, rows, src.Unit(), labels, permuteBounds(lo, perm), permuteBounds(hi, perm))
}

func permuteStrings(vs []string, perm []int) []string {
	out := make([]string, len(vs))
	for i, p := range perm {
		out[i] = vs[p]
	}
	return out
}

// permuteBounds reorders per-channel clip bounds. A single shared bound
// applies to every channel and needs no reordering.
func permuteBounds(bounds []float64, perm []int) []float64 {
	if len(bounds) <= 1 {
		return bounds
	}
	out := make([]float64, len(bounds))
	for i, p := range perm {
		out[i] = bounds[p]
	}
	return out
}

// channelSignal assembles a two-dimensional signal from channel-major rows
// on src's domain, carrying over src's metadata and orientation.
func channelSignal(src *signal.Signal, rows [][]float64, u unit.Unit, labels []string, clipMin, clipMax []float64) (*signal.Signal, error) {
	opts := []signal.Option{
		signal.WithDomainAxis(1),
		signal.WithUnit(u),
		signal.WithName(src.Name()),
		signal.WithInterpolator(src.Interpolator()),
	}
	if labels != nil {
		opts = append(opts, signal.WithLabels(labels...))
	}
	if attrs := src.Attrs(); attrs != nil {
		opts = append(opts, signal.WithAttrs(attrs))
	}
	if clipMin != nil {
		opts = append(opts, signal.WithClipMinPerChannel(clipMin))
	}
	if clipMax != nil {
		opts = append(opts, signal.WithClipMaxPerChannel(clipMax))
	}
	lo, okLo := src.DomainMin()
	hi, okHi := src.DomainMax()
	if okLo || okHi {
		if !okLo {
			lo = math.NaN()
		}
		if !okHi {
			hi = math.NaN()
		}
		opts = append(opts, signal.WithDomainBounds(lo, hi))
	}
	out, err := signal.New(rows, src.Domain(), opts...)
	if err != nil {
		return nil, err
	}
	if src.DomainAxis() == 0 {
		out = out.T()
	}
	return out, nil
}

// Signal returns the measured signal. Treat it as read-only.
func (s *Spectrum) Signal() *signal.Signal { return s.sig }

// Inputs returns the domain of control-input settings.
func (s *Spectrum) Inputs() *domain.Domain { return s.inputs }

// Name returns the channel name.
func (s *Spectrum) Name() string { return s.sig.Name() }

// BoundaryUnits returns the unit the boundaries and inputs are given in.
func (s *Spectrum) BoundaryUnits() unit.Unit { return s.inputs.Unit() }

// ZeroBoundary returns the zero-output setting, if one was recorded.
func (s *Spectrum) ZeroBoundary() (float64, bool) {
	return s.zeroBoundary, !math.IsNaN(s.zeroBoundary)
}

// MaxBoundary returns the maximum-output setting, if one was recorded.
func (s *Spectrum) MaxBoundary() (float64, bool) {
	return s.maxBoundary, !math.IsNaN(s.maxBoundary)
}

// ZeroIsLower reports whether output rises with the control input.
func (s *Spectrum) ZeroIsLower() bool { return s.zeroIsLower }

// withSignal derives a spectrum with the same boundaries on another
// signal.
func (s *Spectrum) withSignal(sig *signal.Signal) *Spectrum {
	out := *s
	out.sig = sig
	return &out
}

// to converts the spectrum's values to a compatible unit.
func (s *Spectrum) to(u unit.Unit) (*Spectrum, error) {
	sig, err := s.sig.To(u)
	if err != nil {
		return nil, err
	}
	return s.withSignal(sig), nil
}

// ToPhotonFlux converts the measured values from spectral irradiance to
// molar photon flux, sample by sample against the wavelength domain. Clip
// bounds do not carry over: the conversion factor varies per wavelength.
func (s *Spectrum) ToPhotonFlux() (*Spectrum, error) {
	return s.convertPerWavelength(unit.IrradianceToPhotonFlux)
}

// ToIrradiance converts the measured values from molar photon flux back
// to spectral irradiance. Clip bounds do not carry over.
func (s *Spectrum) ToIrradiance() (*Spectrum, error) {
	return s.convertPerWavelength(unit.PhotonFluxToIrradiance)
}

func (s *Spectrum) convertPerWavelength(conv func(values, wavelengths unit.Array) (unit.Array, error)) (*Spectrum, error) {
	wl := unit.NewArray(s.sig.Domain().Values(), s.sig.Domain().Unit())
	rows := make([][]float64, s.sig.NumChannels())
	var u unit.Unit
	for c := range rows {
		arr, err := conv(unit.NewArray(s.sig.Channel(c), s.sig.Unit()), wl)
		if err != nil {
			return nil, err
		}
		rows[c] = arr.Data
		u = arr.Unit
	}
	sig, err := channelSignal(s.sig, rows, u, s.sig.Labels(), nil, nil)
	if err != nil {
		return nil, err
	}
	return s.withSignal(sig), nil
}

// CalibrationSpectrum is a one-dimensional reference measurement taken
// with a spectrometer of known collector area.
type CalibrationSpectrum struct {
	sig  *signal.Signal
	area unit.Scalar
}

// NewCalibrationSpectrum pairs a one-dimensional signal with the collector
// area it was measured through. The area must convert to square
// centimeters and be positive.
func NewCalibrationSpectrum(sig *signal.Signal, area unit.Scalar) (*CalibrationSpectrum, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	if sig.NDim() != 1 {
		return nil, ErrNotOneDim
	}
	a, err := area.To(unit.Centimeter.Pow(2))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArea, err)
	}
	if a.Value <= 0 {
		return nil, fmt.Errorf("%w: %g cm^2", ErrArea, a.Value)
	}
	return &CalibrationSpectrum{sig: sig.Clone(), area: a}, nil
}

// Signal returns the calibration measurement.
func (c *CalibrationSpectrum) Signal() *signal.Signal { return c.sig }

// Area returns the collector area in square centimeters.
func (c *CalibrationSpectrum) Area() unit.Scalar { return c.area }
