package unit

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Errors returned by unit operations.
var (
	ErrIncompatible = errors.New("unit: incompatible dimensions")
	ErrUnknown      = errors.New("unit: unknown symbol")
	ErrSyntax       = errors.New("unit: malformed expression")
)

// dims is the exponent vector over the seven SI base dimensions.
type dims [7]int8

const (
	dimLength = iota
	dimMass
	dimTime
	dimCurrent
	dimTemperature
	dimAmount
	dimLuminous
)

func (d dims) add(e dims) dims {
	for i := range d {
		d[i] += e[i]
	}
	return d
}

func (d dims) sub(e dims) dims {
	for i := range d {
		d[i] -= e[i]
	}
	return d
}

func (d dims) pow(n int) dims {
	for i := range d {
		d[i] *= int8(n)
	}
	return d
}

// term is one symbol^exp factor of a unit's display form.
type term struct {
	sym string
	exp int
}

// Unit is a measurement unit: a conversion factor to coherent SI plus an
// exponent vector over the SI base dimensions. Units are immutable values;
// the algebra methods return new units. The zero value is Dimensionless.
type Unit struct {
	scale float64
	d     dims
	terms []term
}

// sym builds a registered base symbol.
func sym(name string, scale float64, d dims) Unit {
	return Unit{scale: scale, d: d, terms: []term{{sym: name, exp: 1}}}
}

// factor reports the conversion factor to coherent SI. The zero value reads
// as factor 1 so that Unit{} behaves as Dimensionless.
func (u Unit) factor() float64 {
	if u.scale == 0 {
		return 1
	}
	return u.scale
}

// Mul returns the product unit. Base-dimension exponents add.
func (u Unit) Mul(v Unit) Unit {
	return Unit{
		scale: u.factor() * v.factor(),
		d:     u.d.add(v.d),
		terms: mergeTerms(u.terms, v.terms, 1),
	}
}

// Div returns the quotient unit. Base-dimension exponents subtract.
func (u Unit) Div(v Unit) Unit {
	return Unit{
		scale: u.factor() / v.factor(),
		d:     u.d.sub(v.d),
		terms: mergeTerms(u.terms, v.terms, -1),
	}
}

// Pow raises the unit to an integer power. Pow(0) is Dimensionless.
func (u Unit) Pow(n int) Unit {
	if n == 0 {
		return Unit{}
	}
	out := Unit{scale: math.Pow(u.factor(), float64(n)), d: u.d.pow(n)}
	out.terms = make([]term, 0, len(u.terms))
	for _, t := range u.terms {
		out.terms = append(out.terms, term{sym: t.sym, exp: t.exp * n})
	}
	return out
}

// IsDimensionless reports whether the unit carries no base dimensions.
// Scaled pure numbers such as Percent are dimensionless.
func (u Unit) IsDimensionless() bool {
	return u.d == dims{}
}

// Compatible reports whether v measures the same base dimensions as u,
// i.e. whether conversion between the two is defined.
func (u Unit) Compatible(v Unit) bool {
	return u.d == v.d
}

// Same reports whether u and v are interchangeable without rescaling:
// same dimensions and a conversion factor of one. A tiny relative
// tolerance absorbs float drift from chained unit algebra, so
// "uW*nm/nm" is Same as "uW".
func (u Unit) Same(v Unit) bool {
	if u.d != v.d {
		return false
	}
	r := u.factor() / v.factor()
	return math.Abs(r-1) <= 1e-12
}

// FactorTo returns the factor that converts magnitudes in u to magnitudes
// in target. It fails with ErrIncompatible when the dimensions differ.
func (u Unit) FactorTo(target Unit) (float64, error) {
	if !u.Compatible(target) {
		return 0, fmt.Errorf("%w: %q -> %q", ErrIncompatible, u.String(), target.String())
	}
	return u.factor() / target.factor(), nil
}

// String renders the unit in its canonical symbol form, e.g. "uW/cm^2/nm".
// Dimensionless units with factor 1 render as the empty string. The result
// round-trips through Parse.
func (u Unit) String() string {
	if len(u.terms) == 0 {
		return ""
	}
	var b strings.Builder
	wrote := false
	for _, t := range u.terms {
		if t.exp <= 0 {
			continue
		}
		if wrote {
			b.WriteByte('*')
		}
		b.WriteString(t.sym)
		if t.exp > 1 {
			fmt.Fprintf(&b, "^%d", t.exp)
		}
		wrote = true
	}
	if !wrote {
		b.WriteByte('1')
	}
	for _, t := range u.terms {
		if t.exp >= 0 {
			continue
		}
		b.WriteByte('/')
		b.WriteString(t.sym)
		if t.exp < -1 {
			fmt.Fprintf(&b, "^%d", -t.exp)
		}
	}
	return b.String()
}

// mergeTerms combines two display forms, multiplying the right side's
// exponents by sign. Cancelled symbols are dropped and the result is kept
// sorted so equal units share one canonical form.
func mergeTerms(a, b []term, sign int) []term {
	merged := make(map[string]int, len(a)+len(b))
	for _, t := range a {
		merged[t.sym] += t.exp
	}
	for _, t := range b {
		merged[t.sym] += t.exp * sign
	}
	out := make([]term, 0, len(merged))
	for s, e := range merged {
		if e != 0 {
			out = append(out, term{sym: s, exp: e})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].sym < out[j].sym })
	return out
}
