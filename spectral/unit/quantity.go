package unit

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Scalar is a single magnitude tagged with a unit.
type Scalar struct {
	Value float64
	Unit  Unit
}

// To converts the scalar to a compatible unit.
func (s Scalar) To(u Unit) (Scalar, error) {
	f, err := s.Unit.FactorTo(u)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Value: s.Value * f, Unit: u}, nil
}

// Add returns s + t in s's unit. t must be compatible.
func (s Scalar) Add(t Scalar) (Scalar, error) {
	c, err := t.To(s.Unit)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Value: s.Value + c.Value, Unit: s.Unit}, nil
}

// Sub returns s - t in s's unit. t must be compatible.
func (s Scalar) Sub(t Scalar) (Scalar, error) {
	c, err := t.To(s.Unit)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Value: s.Value - c.Value, Unit: s.Unit}, nil
}

// Mul returns the product quantity; units multiply.
func (s Scalar) Mul(t Scalar) Scalar {
	return Scalar{Value: s.Value * t.Value, Unit: s.Unit.Mul(t.Unit)}
}

// Div returns the quotient quantity; units divide.
func (s Scalar) Div(t Scalar) Scalar {
	return Scalar{Value: s.Value / t.Value, Unit: s.Unit.Div(t.Unit)}
}

// Equal reports whether s and t are the same physical quantity: compatible
// units and identical magnitude once both are expressed in coherent SI.
func (s Scalar) Equal(t Scalar) bool {
	return s.Unit.Compatible(t.Unit) && s.Value*s.Unit.factor() == t.Value*t.Unit.factor()
}

// String renders the magnitude followed by the unit symbol, e.g. "1.5 nm".
func (s Scalar) String() string {
	if us := s.Unit.String(); us != "" {
		return fmt.Sprintf("%g %s", s.Value, us)
	}
	return fmt.Sprintf("%g", s.Value)
}

// Array is a unit-tagged vector of magnitudes. Data is referenced, not
// copied; To returns an independent converted copy.
type Array struct {
	Data []float64
	Unit Unit
}

// NewArray tags data with a unit.
func NewArray(data []float64, u Unit) Array {
	return Array{Data: data, Unit: u}
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a.Data) }

// At returns element i as a Scalar.
func (a Array) At(i int) Scalar { return Scalar{Value: a.Data[i], Unit: a.Unit} }

// To converts the array to a compatible unit, returning a new copy.
func (a Array) To(u Unit) (Array, error) {
	f, err := a.Unit.FactorTo(u)
	if err != nil {
		return Array{}, err
	}
	out := make([]float64, len(a.Data))
	for i, v := range a.Data {
		out[i] = v * f
	}
	return Array{Data: out, Unit: u}, nil
}

// Equal reports interchangeable units and element-identical magnitudes.
func (a Array) Equal(b Array) bool {
	return a.Unit.Same(b.Unit) && floats.Equal(a.Data, b.Data)
}
