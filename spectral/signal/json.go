package signal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cwbudde/algo-spectral/spectral/domain"
	"github.com/cwbudde/algo-spectral/spectral/interp"
	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// payloadKind discriminates signal payloads from other persisted kinds.
const payloadKind = "signal"

// jsonFloat round-trips the non-finite values encoding/json rejects:
// NaN as null and infinities as quoted strings.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte("null"), nil
	case math.IsInf(v, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-inf"`), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null":
		*f = jsonFloat(math.NaN())
		return nil
	case `"inf"`, `"+inf"`:
		*f = jsonFloat(math.Inf(1))
		return nil
	case `"-inf"`:
		*f = jsonFloat(math.Inf(-1))
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("signal: bad number %s: %w", b, err)
	}
	*f = jsonFloat(v)
	return nil
}

func toJSONFloats(vs []float64) []jsonFloat {
	if vs == nil {
		return nil
	}
	out := make([]jsonFloat, len(vs))
	for i, v := range vs {
		out[i] = jsonFloat(v)
	}
	return out
}

func fromJSONFloats(vs []jsonFloat) []float64 {
	if vs == nil {
		return nil
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}

// payload is the on-disk JSON form of a Signal. Values are stored
// channel-major.
type payload struct {
	Kind         string            `json:"kind"`
	Name         string            `json:"name,omitempty"`
	Unit         string            `json:"unit,omitempty"`
	DomainUnit   string            `json:"domain_unit,omitempty"`
	Domain       []float64         `json:"domain"`
	Values       [][]jsonFloat     `json:"values"`
	NDim         int               `json:"ndim"`
	DomainAxis   int               `json:"domain_axis"`
	Labels       []string          `json:"labels,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty"`
	Interpolator string            `json:"interpolator,omitempty"`
	ClipMin      []jsonFloat       `json:"clip_min,omitempty"`
	ClipMax      []jsonFloat       `json:"clip_max,omitempty"`
	DomainMin    *float64          `json:"domain_min,omitempty"`
	DomainMax    *float64          `json:"domain_max,omitempty"`
}

// MarshalJSON encodes the signal with a "kind" discriminator, units as
// parseable strings, and the interpolator by registry name.
func (s *Signal) MarshalJSON() ([]byte, error) {
	p := payload{
		Kind:         payloadKind,
		Name:         s.name,
		Unit:         s.u.String(),
		DomainUnit:   s.dom.Unit().String(),
		Domain:       s.dom.Values(),
		NDim:         s.ndim,
		DomainAxis:   s.domainAxis,
		Labels:       s.labels,
		Attrs:        s.attrs,
		Interpolator: s.builder.Name(),
		ClipMin:      toJSONFloats(s.clipMin),
		ClipMax:      toJSONFloats(s.clipMax),
	}
	p.Values = make([][]jsonFloat, len(s.data))
	for c, ch := range s.data {
		p.Values[c] = toJSONFloats(ch)
	}
	if v, ok := s.DomainMin(); ok {
		p.DomainMin = &v
	}
	if v, ok := s.DomainMax(); ok {
		p.DomainMax = &v
	}
	return json.Marshal(p)
}

// UnmarshalJSON decodes a signal payload, rejecting other kinds.
func (s *Signal) UnmarshalJSON(data []byte) error {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("signal: decode: %w", err)
	}
	built, err := fromPayload(&p)
	if err != nil {
		return err
	}
	*s = *built
	return nil
}

func fromPayload(p *payload) (*Signal, error) {
	if p.Kind != payloadKind {
		return nil, fmt.Errorf("%w: %q", ErrKind, p.Kind)
	}
	du, err := unit.Parse(p.DomainUnit)
	if err != nil {
		return nil, err
	}
	u, err := unit.Parse(p.Unit)
	if err != nil {
		return nil, err
	}
	dom, err := domain.New(p.Domain, du)
	if err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	cfg.u = u
	cfg.labels = p.Labels
	cfg.name = p.Name
	cfg.attrs = p.Attrs
	cfg.clipMin = fromJSONFloats(p.ClipMin)
	cfg.clipMax = fromJSONFloats(p.ClipMax)
	if p.Interpolator != "" {
		b, err := interp.Lookup(p.Interpolator)
		if err != nil {
			return nil, err
		}
		cfg.builder = b
	}
	if p.DomainMin != nil {
		cfg.domainMin = *p.DomainMin
	}
	if p.DomainMax != nil {
		cfg.domainMax = *p.DomainMax
	}
	if p.NDim != 1 && p.NDim != 2 {
		return nil, fmt.Errorf("signal: bad ndim %d", p.NDim)
	}
	axis := p.DomainAxis
	if p.NDim == 1 {
		axis = 0
	}
	if axis != 0 && axis != 1 {
		return nil, fmt.Errorf("%w: %d", ErrAxis, axis)
	}
	if len(p.Values) == 0 {
		return nil, ErrEmptyValues
	}
	data := make([][]float64, len(p.Values))
	for c, ch := range p.Values {
		data[c] = fromJSONFloats(ch)
	}
	if p.NDim == 1 && len(data) != 1 {
		return nil, fmt.Errorf("%w: %d channels in a one-dimensional payload", ErrShape, len(data))
	}
	return build(data, p.NDim, axis, dom, cfg)
}

// Save writes the signal as indented JSON.
func Save(w io.Writer, s *Signal) error {
	if s == nil {
		return ErrNilSignal
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Load reads a signal written by Save.
func Load(r io.Reader) (*Signal, error) {
	var s Signal
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
