package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/signal"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Spectra is an ordered set of measured channel spectra sharing one value
// unit. Derived results are cached per container state; Append, Extend and
// Pop drop the caches.
type Spectra struct {
	channels []*Spectrum
	memo     spectraMemo
}

// spectraMemo holds lazily computed derivations of the channel set.
type spectraMemo struct {
	intensityList      []*signal.Signal
	intensities        *signal.Signal
	normalizedList     []*signal.Signal
	normalizedSpectrum *signal.Signal
	mappers            []*channelMapper
}

// New collects measured spectra into a container. At least one channel is
// required; channels after the first are converted to the first channel's
// value unit.
func New(channels ...*Spectrum) (*Spectra, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	if channels[0] == nil {
		return nil, fmt.Errorf("%w: channel 0", ErrNilSpectrum)
	}
	s := &Spectra{channels: []*Spectrum{channels[0]}}
	if err := s.Extend(channels[1:]...); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of channels.
func (s *Spectra) Len() int { return len(s.channels) }

// At returns channel i.
func (s *Spectra) At(i int) *Spectrum { return s.channels[i] }

// Channels returns the channels in order. Treat them as read-only.
func (s *Spectra) Channels() []*Spectrum {
	return append([]*Spectrum(nil), s.channels...)
}

// Names returns the channel names in order.
func (s *Spectra) Names() []string {
	out := make([]string, len(s.channels))
	for c, sp := range s.channels {
		out[c] = sp.Name()
	}
	return out
}

// ValueUnit returns the container's common measurement unit.
func (s *Spectra) ValueUnit() unit.Unit { return s.channels[0].sig.Unit() }

// Append adds one channel, converting it to the container's value unit.
func (s *Spectra) Append(sp *Spectrum) error { return s.Extend(sp) }

// Extend adds channels in order, converting each to the container's value
// unit. On error the container is left unchanged.
func (s *Spectra) Extend(sps ...*Spectrum) error {
	if len(sps) == 0 {
		return nil
	}
	u := s.ValueUnit()
	add := make([]*Spectrum, len(sps))
	for i, sp := range sps {
		if sp == nil {
			return fmt.Errorf("%w: channel %d", ErrNilSpectrum, len(s.channels)+i)
		}
		conv := sp
		if !sp.sig.Unit().Same(u) {
			var err error
			conv, err = sp.to(u)
			if err != nil {
				return fmt.Errorf("measure: channel %q: %w", sp.Name(), err)
			}
		}
		add[i] = conv
	}
	s.channels = append(s.channels, add...)
	s.invalidate()
	return nil
}

// Pop removes and returns the last channel. The container keeps at least
// one channel.
func (s *Spectra) Pop() (*Spectrum, error) {
	if len(s.channels) == 1 {
		return nil, fmt.Errorf("%w: cannot remove the last channel", ErrNoChannels)
	}
	last := s.channels[len(s.channels)-1]
	s.channels = s.channels[:len(s.channels)-1]
	s.invalidate()
	return last, nil
}

func (s *Spectra) invalidate() { s.memo = spectraMemo{} }

// Starts returns each channel's first tested input setting.
func (s *Spectra) Starts() []float64 {
	out := make([]float64, len(s.channels))
	for c, sp := range s.channels {
		out[c] = sp.inputs.Start()
	}
	return out
}

// Ends returns each channel's last tested input setting.
func (s *Spectra) Ends() []float64 {
	out := make([]float64, len(s.channels))
	for c, sp := range s.channels {
		out[c] = sp.inputs.End()
	}
	return out
}

// ZeroBoundary returns each channel's zero-output input setting, NaN
// where none was configured.
func (s *Spectra) ZeroBoundary() []float64 {
	out := make([]float64, len(s.channels))
	for c, sp := range s.channels {
		out[c] = sp.zeroBoundary
	}
	return out
}

// MaxBoundary returns each channel's maximum-output input setting, NaN
// where none was configured.
func (s *Spectra) MaxBoundary() []float64 {
	out := make([]float64, len(s.channels))
	for c, sp := range s.channels {
		out[c] = sp.maxBoundary
	}
	return out
}

// ZeroIsLower reports per channel whether the zero boundary sits at the
// low end of the input scale.
func (s *Spectra) ZeroIsLower() []bool {
	out := make([]bool, len(s.channels))
	for c, sp := range s.channels {
		out[c] = sp.zeroIsLower
	}
	return out
}

// LowerBoundary returns the numerically smallest admissible input setting
// per channel: the zero boundary where zero sits at the low end, the max
// boundary otherwise. Unknown boundaries fall back to the first tested
// setting.
func (s *Spectra) LowerBoundary() []float64 {
	out := make([]float64, len(s.channels))
	for c, sp := range s.channels {
		v := sp.maxBoundary
		if sp.zeroIsLower {
			v = sp.zeroBoundary
		}
		if math.IsNaN(v) {
			v = sp.inputs.Start()
		}
		out[c] = v
	}
	return out
}

// UpperBoundary returns the numerically largest admissible input setting
// per channel, with unknown boundaries falling back to the last tested
// setting.
func (s *Spectra) UpperBoundary() []float64 {
	out := make([]float64, len(s.channels))
	for c, sp := range s.channels {
		v := sp.zeroBoundary
		if sp.zeroIsLower {
			v = sp.maxBoundary
		}
		if math.IsNaN(v) {
			v = sp.inputs.End()
		}
		out[c] = v
	}
	return out
}

// InputBounds returns the admissible [lower, upper] input interval per
// channel.
func (s *Spectra) InputBounds() [][2]float64 {
	lo, hi := s.LowerBoundary(), s.UpperBoundary()
	out := make([][2]float64, len(lo))
	for c := range out {
		out[c] = [2]float64{lo[c], hi[c]}
	}
	return out
}

// Bounds returns the achievable intensity range per channel in the
// intensity unit. Channels with a configured zero boundary reach all the
// way down to zero.
func (s *Spectra) Bounds() (lo, hi []float64, err error) {
	list, err := s.intensityList()
	if err != nil {
		return nil, nil, err
	}
	lo = make([]float64, len(list))
	hi = make([]float64, len(list))
	for c, il := range list {
		m := il.Magnitude1D()
		lo[c] = floats.Min(m)
		hi[c] = floats.Max(m)
		if !math.IsNaN(s.channels[c].zeroBoundary) {
			lo[c] = 0
		}
	}
	return lo, hi, nil
}

// IntensityList returns one intensity curve per channel: the wavelength
// integral of the measured spectrum at each tested input setting, defined
// over the channel's input domain. All curves carry the unit of the first.
func (s *Spectra) IntensityList() ([]*signal.Signal, error) {
	list, err := s.intensityList()
	if err != nil {
		return nil, err
	}
	return append([]*signal.Signal(nil), list...), nil
}

func (s *Spectra) intensityList() ([]*signal.Signal, error) {
	if s.memo.intensityList != nil {
		return s.memo.intensityList, nil
	}
	list := make([]*signal.Signal, len(s.channels))
	var u unit.Unit
	for c, sp := range s.channels {
		integ, err := sp.sig.Integral()
		if err != nil {
			return nil, fmt.Errorf("measure: intensity of channel %q: %w", sp.Name(), err)
		}
		il, err := signal.New1D(integ.Data, sp.inputs,
			signal.WithUnit(integ.Unit),
			signal.WithName(sp.Name()),
			signal.WithLabels(sp.Name()),
		)
		if err != nil {
			return nil, fmt.Errorf("measure: intensity of channel %q: %w", sp.Name(), err)
		}
		if c == 0 {
			u = il.Unit()
		} else if !il.Unit().Same(u) {
			il, err = il.To(u)
			if err != nil {
				return nil, fmt.Errorf("measure: intensity of channel %q: %w", sp.Name(), err)
			}
		}
		list[c] = il
	}
	s.memo.intensityList = list
	return list, nil
}

// Intensities returns the per-channel intensity curves concatenated into
// one two-dimensional signal over a shared input domain.
func (s *Spectra) Intensities() (*signal.Signal, error) {
	if s.memo.intensities != nil {
		return s.memo.intensities, nil
	}
	list, err := s.intensityList()
	if err != nil {
		return nil, err
	}
	cat, err := concatList(list)
	if err != nil {
		return nil, err
	}
	s.memo.intensities = cat
	return cat, nil
}

// NormalizedList returns each channel's spectral shape: the mean spectrum
// across tested settings, scaled to unit wavelength integral.
func (s *Spectra) NormalizedList() ([]*signal.Signal, error) {
	list, err := s.normalizedList()
	if err != nil {
		return nil, err
	}
	return append([]*signal.Signal(nil), list...), nil
}

func (s *Spectra) normalizedList() ([]*signal.Signal, error) {
	if s.memo.normalizedList != nil {
		return s.memo.normalizedList, nil
	}
	list := make([]*signal.Signal, len(s.channels))
	for c, sp := range s.channels {
		mean, err := sp.sig.ReduceChannels(signal.Mean)
		if err != nil {
			return nil, fmt.Errorf("measure: normalized shape of channel %q: %w", sp.Name(), err)
		}
		norm, err := mean.Normalized()
		if err != nil {
			return nil, fmt.Errorf("measure: normalized shape of channel %q: %w", sp.Name(), err)
		}
		norm, err = norm.Relabel(sp.Name())
		if err != nil {
			return nil, err
		}
		list[c] = norm
	}
	s.memo.normalizedList = list
	return list, nil
}

// NormalizedSpectrum returns the channel shapes concatenated into one
// two-dimensional signal over a shared wavelength domain, one channel per
// measured spectrum.
func (s *Spectra) NormalizedSpectrum() (*signal.Signal, error) {
	if s.memo.normalizedSpectrum != nil {
		return s.memo.normalizedSpectrum, nil
	}
	list, err := s.normalizedList()
	if err != nil {
		return nil, err
	}
	cat, err := concatList(list)
	if err != nil {
		return nil, err
	}
	s.memo.normalizedSpectrum = cat
	return cat, nil
}

// Wavelengths returns the shared wavelength domain of the normalized
// spectrum.
func (s *Spectra) Wavelengths() (*domain.Domain, error) {
	ns, err := s.NormalizedSpectrum()
	if err != nil {
		return nil, err
	}
	return ns.Domain(), nil
}

// IntensityUnit returns the unit shared by the intensity curves, the
// value unit times the wavelength unit.
func (s *Spectra) IntensityUnit() (unit.Unit, error) {
	list, err := s.intensityList()
	if err != nil {
		return unit.Unit{}, err
	}
	return list[0].Unit(), nil
}

// InputUnit returns the unit shared by all channel input domains.
// Differing input units are reported here, not at construction.
func (s *Spectra) InputUnit() (unit.Unit, error) {
	u := s.channels[0].inputs.Unit()
	for c, sp := range s.channels[1:] {
		if !sp.inputs.Unit().Same(u) {
			return unit.Unit{}, fmt.Errorf("%w: channel %d (%q)", ErrInputUnits, c+1, sp.Name())
		}
	}
	return u, nil
}

func concatList(list []*signal.Signal) (*signal.Signal, error) {
	if len(list) == 1 {
		return list[0].To2D(), nil
	}
	cat := list[0]
	for _, sig := range list[1:] {
		var err error
		cat, err = cat.ChannelConcat(sig)
		if err != nil {
			return nil, err
		}
	}
	return cat, nil
}
