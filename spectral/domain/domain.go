package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-spectral/spectral/unit"
	"gonum.org/v1/gonum/floats"
)

// Errors returned by domain operations.
var (
	ErrEmpty        = errors.New("domain: empty")
	ErrNotAscending = errors.New("domain: coordinates not strictly ascending")
	ErrNotUniform   = errors.New("domain: not uniformly spaced")
	ErrNoOverlap    = errors.New("domain: ranges do not overlap")
	ErrTooShort     = errors.New("domain: too few coordinates")
)

// uniformTol is the relative spacing spread below which a domain counts as
// uniformly spaced.
const uniformTol = 1e-8

// Domain is an immutable, strictly ascending coordinate axis with a unit.
type Domain struct {
	values []float64
	unit   unit.Unit
}

// New builds a domain from strictly ascending coordinates. The slice is
// copied.
func New(values []float64, u unit.Unit) (*Domain, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return nil, fmt.Errorf("%w: index %d (%g after %g)", ErrNotAscending, i, values[i], values[i-1])
		}
	}
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Domain{values: vs, unit: u}, nil
}

// NewSorted builds a domain from coordinates in any order. It returns the
// applied permutation: sorted[i] came from values[perm[i]], so callers can
// reorder data aligned with the original ordering. Duplicate coordinates
// fail with ErrNotAscending.
func NewSorted(values []float64, u unit.Unit) (*Domain, []int, error) {
	if len(values) == 0 {
		return nil, nil, ErrEmpty
	}
	perm := make([]int, len(values))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return values[perm[i]] < values[perm[j]] })
	sorted := make([]float64, len(values))
	for i, p := range perm {
		sorted[i] = values[p]
	}
	d, err := New(sorted, u)
	if err != nil {
		return nil, nil, err
	}
	return d, perm, nil
}

// FromRange builds a uniform domain from start to stop (inclusive when hit
// exactly) with the given step.
func FromRange(start, stop, step float64, u unit.Unit) (*Domain, error) {
	if step <= 0 {
		return nil, fmt.Errorf("domain: step must be > 0: %g", step)
	}
	if stop < start {
		return nil, fmt.Errorf("domain: stop %g before start %g", stop, start)
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return &Domain{values: values, unit: u}, nil
}

// linspace builds a uniform n-point domain hitting start and stop exactly.
func linspace(start, stop float64, n int, u unit.Unit) *Domain {
	values := make([]float64, n)
	if n == 1 {
		values[0] = start
	} else {
		for i := range values {
			values[i] = start + (stop-start)*float64(i)/float64(n-1)
		}
		values[n-1] = stop
	}
	return &Domain{values: values, unit: u}
}

// Len returns the number of coordinates.
func (d *Domain) Len() int { return len(d.values) }

// At returns coordinate i.
func (d *Domain) At(i int) float64 { return d.values[i] }

// Start returns the first coordinate.
func (d *Domain) Start() float64 { return d.values[0] }

// End returns the last coordinate.
func (d *Domain) End() float64 { return d.values[len(d.values)-1] }

// Values returns a copy of the coordinates.
func (d *Domain) Values() []float64 {
	out := make([]float64, len(d.values))
	copy(out, d.values)
	return out
}

// Unit returns the coordinate unit.
func (d *Domain) Unit() unit.Unit { return d.unit }

// Interval returns the mean coordinate spacing and whether the spacing is
// uniform within a relative tolerance. Domains with fewer than two
// coordinates report (0, false).
func (d *Domain) Interval() (float64, bool) {
	if len(d.values) < 2 {
		return 0, false
	}
	mean := (d.End() - d.Start()) / float64(len(d.values)-1)
	for i := 1; i < len(d.values); i++ {
		if math.Abs(d.values[i]-d.values[i-1]-mean) > uniformTol*mean {
			return mean, false
		}
	}
	return mean, true
}

// IsUniform reports whether the coordinates are uniformly spaced.
func (d *Domain) IsUniform() bool {
	_, ok := d.Interval()
	return ok
}

// Gradient returns the local spacing at every coordinate: central
// differences in the interior, one-sided at the edges. It fails with
// ErrTooShort for domains of fewer than two coordinates.
func (d *Domain) Gradient() (unit.Array, error) {
	n := len(d.values)
	if n < 2 {
		return unit.Array{}, fmt.Errorf("%w: need >= 2 for gradient, have %d", ErrTooShort, n)
	}
	out := make([]float64, n)
	out[0] = d.values[1] - d.values[0]
	out[n-1] = d.values[n-1] - d.values[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (d.values[i+1] - d.values[i-1]) / 2
	}
	return unit.NewArray(out, d.unit), nil
}

// To converts the domain to a compatible unit.
func (d *Domain) To(u unit.Unit) (*Domain, error) {
	f, err := d.unit.FactorTo(u)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(d.values))
	for i, v := range d.values {
		values[i] = v * f
	}
	return &Domain{values: values, unit: u}, nil
}

// Equal reports interchangeable units and identical coordinates.
func (d *Domain) Equal(other *Domain) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.unit.Same(other.unit) && floats.Equal(d.values, other.values)
}

// Contains reports whether x lies within [Start, End], allowing a small
// relative slack at the edges.
func (d *Domain) Contains(x float64) bool {
	slack := 1e-9 * math.Max(math.Abs(d.Start()), math.Abs(d.End()))
	return x >= d.Start()-slack && x <= d.End()+slack
}
