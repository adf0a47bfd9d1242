// Package interp provides named, serializable interpolator builders for
// sampled spectral data, backed by gonum's interp predictors.
//
// Available builders, from cheapest to smoothest:
//
//   - [Steps]:          piecewise constant, no overshoot
//   - [Linear]:         piecewise linear (the default for signals)
//   - [FritschButland]: monotone piecewise cubic, no overshoot
//   - [Akima]:          Akima spline, robust to outliers
//   - [NaturalCubic]:   natural cubic spline, smoothest
//
// Outside the fitted range, predictions extend linearly from the two
// boundary samples (constant for [Steps]), so extrapolation behavior is
// deterministic across builders. Builders are identified by name and can be
// recovered with [Lookup], which is how persisted signals reconstruct their
// interpolator.
package interp

import (
	"errors"
	"fmt"

	gointerp "gonum.org/v1/gonum/interp"
)

// Errors returned by interpolator fitting and lookup.
var (
	ErrTooFewPoints = errors.New("interp: need at least 2 sample points")
	ErrBadSamples   = errors.New("interp: sample coordinates must be strictly ascending")
	ErrLengths      = errors.New("interp: coordinate and value lengths differ")
	ErrUnknown      = errors.New("interp: unknown interpolator")
)

// Interpolant predicts values at arbitrary coordinates after fitting.
type Interpolant interface {
	Predict(x float64) float64
}

// Builder is a named interpolant factory. The zero value is not usable;
// obtain builders from the constructors or from Lookup.
type Builder struct {
	name      string
	predictor func() gointerp.FittablePredictor
	stepEdges bool
}

// Linear interpolates piecewise linearly between samples.
func Linear() Builder {
	return Builder{name: "linear", predictor: func() gointerp.FittablePredictor { return &gointerp.PiecewiseLinear{} }}
}

// Steps interpolates with a left-continuous piecewise constant: between
// samples the next sample's value applies.
func Steps() Builder {
	return Builder{
		name:      "steps",
		predictor: func() gointerp.FittablePredictor { return &gointerp.PiecewiseConstant{} },
		stepEdges: true,
	}
}

// Akima fits an Akima spline.
func Akima() Builder {
	return Builder{name: "akima", predictor: func() gointerp.FittablePredictor { return &gointerp.AkimaSpline{} }}
}

// FritschButland fits a monotone Fritsch-Butland piecewise cubic.
func FritschButland() Builder {
	return Builder{name: "fritsch-butland", predictor: func() gointerp.FittablePredictor { return &gointerp.FritschButland{} }}
}

// NaturalCubic fits a natural cubic spline.
func NaturalCubic() Builder {
	return Builder{name: "natural-cubic", predictor: func() gointerp.FittablePredictor { return &gointerp.NaturalCubic{} }}
}

// Name returns the builder's registry name.
func (b Builder) Name() string { return b.name }

// Fit fits an interpolant to the sample pairs (xs[i], ys[i]). xs must be
// strictly ascending with at least two points.
func (b Builder) Fit(xs, ys []float64) (Interpolant, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengths, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: index %d", ErrBadSamples, i)
		}
	}
	p := b.predictor()
	if err := p.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interp: fit %s: %w", b.name, err)
	}
	n := len(xs)
	e := extrapolated{
		p:  p,
		x0: xs[0], y0: ys[0],
		x1: xs[n-1], y1: ys[n-1],
	}
	if !b.stepEdges {
		e.s0 = (ys[1] - ys[0]) / (xs[1] - xs[0])
		e.s1 = (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
	}
	return e, nil
}

// Lookup returns the builder registered under name.
func Lookup(name string) (Builder, error) {
	b, ok := builders[name]
	if !ok {
		return Builder{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return b, nil
}

var builders = map[string]Builder{
	"linear":          Linear(),
	"steps":           Steps(),
	"akima":           Akima(),
	"fritsch-butland": FritschButland(),
	"natural-cubic":   NaturalCubic(),
}

// extrapolated delegates to the fitted predictor inside the sample range
// and extends linearly from the boundary samples outside it.
type extrapolated struct {
	p      gointerp.Predictor
	x0, y0 float64
	x1, y1 float64
	s0, s1 float64
}

func (e extrapolated) Predict(x float64) float64 {
	switch {
	case x < e.x0:
		return e.y0 + e.s0*(x-e.x0)
	case x > e.x1:
		return e.y1 + e.s1*(x-e.x1)
	}
	return e.p.Predict(x)
}
