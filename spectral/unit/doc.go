// Package unit provides a small quantity layer for spectral data: units as
// explicit values, unit algebra, conversion between compatible units, and
// unit-tagged scalars and arrays.
//
// A [Unit] is a conversion factor to coherent SI together with an exponent
// vector over the SI base dimensions. Units combine with [Unit.Mul],
// [Unit.Div], and [Unit.Pow]; multiplying units adds their base-dimension
// exponents. Two units are compatible when their exponent vectors match, and
// conversion between compatible units is a pure scale factor:
//
//	f, err := unit.Microwatt.FactorTo(unit.Watt) // 1e-6
//
// Units render to and parse from compact symbol expressions such as
// "uW/cm^2/nm", which is also the persistence form:
//
//	u := unit.Microwatt.Div(unit.Centimeter.Pow(2)).Div(unit.Nanometer)
//	u.String()                 // "uW/cm^2/nm"
//	v, _ := unit.Parse("uW/cm^2/nm")
//	u.Same(v)                  // true
//
// [Scalar] and [Array] tag magnitudes with a unit and convert on demand.
// The zero Unit is [Dimensionless].
package unit
