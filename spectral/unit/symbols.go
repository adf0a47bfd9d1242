package unit

import (
	"fmt"
	"strconv"
	"strings"
)

// Registered base symbols. Composite units are built with the algebra
// methods, e.g. unit.Microwatt.Div(unit.Centimeter.Pow(2)).Div(unit.Nanometer).
var (
	// Dimensionless is the unit of pure numbers.
	Dimensionless = Unit{}
	// Percent is the scaled pure number 1/100.
	Percent = sym("%", 1e-2, dims{})

	Meter      = sym("m", 1, lengthDims)
	Centimeter = sym("cm", 1e-2, lengthDims)
	Millimeter = sym("mm", 1e-3, lengthDims)
	Micrometer = sym("um", 1e-6, lengthDims)
	Nanometer  = sym("nm", 1e-9, lengthDims)

	Second      = sym("s", 1, timeDims)
	Millisecond = sym("ms", 1e-3, timeDims)

	Joule      = sym("J", 1, energyDims)
	Microjoule = sym("uJ", 1e-6, energyDims)

	Watt      = sym("W", 1, powerDims)
	Milliwatt = sym("mW", 1e-3, powerDims)
	Microwatt = sym("uW", 1e-6, powerDims)

	Mole      = sym("mol", 1, amountDims)
	Micromole = sym("umol", 1e-6, amountDims)

	Volt      = sym("V", 1, voltageDims)
	Millivolt = sym("mV", 1e-3, voltageDims)
)

// Common composite units of spectral measurement.
var (
	// SpectralIrradiance is power per collection area per wavelength.
	SpectralIrradiance = Watt.Div(Meter.Pow(2)).Div(Nanometer)
	// MolarPhotonFlux is photon amount per area per time per wavelength.
	MolarPhotonFlux = Mole.Div(Meter.Pow(2)).Div(Second).Div(Nanometer)
)

var (
	lengthDims  = dims{dimLength: 1}
	timeDims    = dims{dimTime: 1}
	amountDims  = dims{dimAmount: 1}
	energyDims  = dims{dimMass: 1, dimLength: 2, dimTime: -2}
	powerDims   = dims{dimMass: 1, dimLength: 2, dimTime: -3}
	voltageDims = dims{dimMass: 1, dimLength: 2, dimTime: -3, dimCurrent: -1}
)

var symbols = map[string]Unit{
	"%":    Percent,
	"m":    Meter,
	"cm":   Centimeter,
	"mm":   Millimeter,
	"um":   Micrometer,
	"nm":   Nanometer,
	"s":    Second,
	"ms":   Millisecond,
	"J":    Joule,
	"uJ":   Microjoule,
	"W":    Watt,
	"mW":   Milliwatt,
	"uW":   Microwatt,
	"mol":  Mole,
	"umol": Micromole,
	"V":    Volt,
	"mV":   Millivolt,
}

// Parse builds a unit from a symbol expression such as "uW/cm^2/nm" or
// "mol*nm^-1". Factors are separated by '*' and '/', each factor is a
// registered symbol with an optional integer '^' exponent, and a bare "1"
// stands for the identity. The empty string parses to Dimensionless.
func Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimensionless, nil
	}
	u := Dimensionless
	rest := s
	div := false
	for len(rest) > 0 {
		i := strings.IndexAny(rest, "*/")
		var tok string
		var sep byte
		if i < 0 {
			tok, rest = rest, ""
		} else {
			if i == 0 || i == len(rest)-1 {
				return Unit{}, fmt.Errorf("%w: %q", ErrSyntax, s)
			}
			sep, tok, rest = rest[i], rest[:i], rest[i+1:]
		}
		f, err := parseFactor(strings.TrimSpace(tok))
		if err != nil {
			return Unit{}, err
		}
		if div {
			u = u.Div(f)
		} else {
			u = u.Mul(f)
		}
		div = sep == '/'
	}
	return u, nil
}

// MustParse is Parse for known-good expressions; it panics on error.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func parseFactor(tok string) (Unit, error) {
	if tok == "" {
		return Unit{}, fmt.Errorf("%w: empty factor", ErrSyntax)
	}
	base, expPart, hasExp := strings.Cut(tok, "^")
	base = strings.TrimSpace(base)
	exp := 1
	if hasExp {
		n, err := strconv.Atoi(strings.TrimSpace(expPart))
		if err != nil {
			return Unit{}, fmt.Errorf("%w: exponent %q", ErrSyntax, expPart)
		}
		exp = n
	}
	if base == "1" {
		return Dimensionless, nil
	}
	u, ok := symbols[base]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknown, base)
	}
	if exp != 1 {
		u = u.Pow(exp)
	}
	return u, nil
}
