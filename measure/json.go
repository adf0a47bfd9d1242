package measure

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/signal"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Payload kind discriminators.
const (
	spectrumKind = "measured_spectrum"
	spectraKind  = "measured_spectra"
)

// spectrumPayload is the on-disk JSON form of a measured spectrum. The
// embedded signal uses the signal package's payload format.
type spectrumPayload struct {
	Kind         string         `json:"kind"`
	Signal       *signal.Signal `json:"signal"`
	Inputs       []float64      `json:"inputs"`
	InputUnit    string         `json:"input_unit,omitempty"`
	ZeroBoundary *float64       `json:"zero_boundary,omitempty"`
	MaxBoundary  *float64       `json:"max_boundary,omitempty"`
	ZeroIsLower  bool           `json:"zero_is_lower"`
}

// MarshalJSON encodes the spectrum with a "kind" discriminator, writing
// the boundaries only when configured.
func (s *Spectrum) MarshalJSON() ([]byte, error) {
	p := spectrumPayload{
		Kind:        spectrumKind,
		Signal:      s.sig,
		Inputs:      s.inputs.Values(),
		InputUnit:   s.inputs.Unit().String(),
		ZeroIsLower: s.zeroIsLower,
	}
	if v, ok := s.ZeroBoundary(); ok {
		p.ZeroBoundary = &v
	}
	if v, ok := s.MaxBoundary(); ok {
		p.MaxBoundary = &v
	}
	return json.Marshal(p)
}

// UnmarshalJSON decodes a measured spectrum payload, rejecting other
// kinds. The rebuilt spectrum passes through the constructor checks.
func (s *Spectrum) UnmarshalJSON(data []byte) error {
	var p spectrumPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("measure: decode: %w", err)
	}
	built, err := spectrumFromPayload(&p)
	if err != nil {
		return err
	}
	*s = *built
	return nil
}

func spectrumFromPayload(p *spectrumPayload) (*Spectrum, error) {
	if p.Kind != spectrumKind {
		return nil, fmt.Errorf("%w: %q", ErrKind, p.Kind)
	}
	if p.Signal == nil {
		return nil, ErrNilSignal
	}
	u, err := unit.Parse(p.InputUnit)
	if err != nil {
		return nil, err
	}
	inputs, err := domain.New(p.Inputs, u)
	if err != nil {
		return nil, err
	}
	opts := []SpectrumOption{WithZeroIsLower(p.ZeroIsLower)}
	if p.ZeroBoundary != nil {
		opts = append(opts, WithZeroBoundary(*p.ZeroBoundary))
	}
	if p.MaxBoundary != nil {
		opts = append(opts, WithMaxBoundary(*p.MaxBoundary))
	}
	return NewSpectrum(p.Signal, inputs, opts...)
}

// spectraPayload is the on-disk JSON form of a container.
type spectraPayload struct {
	Kind     string      `json:"kind"`
	Channels []*Spectrum `json:"channels"`
}

// MarshalJSON encodes the container's channels in order.
func (s *Spectra) MarshalJSON() ([]byte, error) {
	return json.Marshal(spectraPayload{Kind: spectraKind, Channels: s.channels})
}

// UnmarshalJSON decodes a container payload, rejecting other kinds. The
// channels pass through New, so the first channel's value unit becomes the
// container unit again.
func (s *Spectra) UnmarshalJSON(data []byte) error {
	var p spectraPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("measure: decode: %w", err)
	}
	if p.Kind != spectraKind {
		return fmt.Errorf("%w: %q", ErrKind, p.Kind)
	}
	built, err := New(p.Channels...)
	if err != nil {
		return err
	}
	*s = *built
	return nil
}

// Save writes the container as indented JSON.
func Save(w io.Writer, s *Spectra) error {
	if s == nil {
		return ErrNilSpectra
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Load reads a container written by Save.
func Load(r io.Reader) (*Spectra, error) {
	var s Spectra
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
