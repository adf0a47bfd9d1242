package domain

import (
	"fmt"
	"math"
)

// Extend appends n uniform steps to the domain, before the start when left
// is true and after the end otherwise. The domain must be uniformly spaced.
func (d *Domain) Extend(n int, left bool) (*Domain, error) {
	if n < 0 {
		return nil, fmt.Errorf("domain: extend count must be >= 0: %d", n)
	}
	step, ok := d.Interval()
	if !ok {
		return nil, fmt.Errorf("%w: extend needs a uniform domain", ErrNotUniform)
	}
	values := make([]float64, 0, len(d.values)+n)
	if left {
		for i := n; i >= 1; i-- {
			values = append(values, d.Start()-float64(i)*step)
		}
		values = append(values, d.values...)
	} else {
		values = append(values, d.values...)
		for i := 1; i <= n; i++ {
			values = append(values, d.End()+float64(i)*step)
		}
	}
	return &Domain{values: values, unit: d.unit}, nil
}

// Append concatenates another domain onto this one, before the start when
// left is true and after the end otherwise. The other domain is converted
// to this domain's unit, and the combined coordinates must remain strictly
// ascending.
func (d *Domain) Append(other *Domain, left bool) (*Domain, error) {
	conv, err := other.To(d.unit)
	if err != nil {
		return nil, err
	}
	var values []float64
	if left {
		values = append(conv.values, d.values...)
	} else {
		values = append(d.Values(), conv.values...)
	}
	return New(values, d.unit)
}

// EnforceUniformity returns a uniform domain spanning the same range with
// the same number of coordinates, spaced at the mean interval.
func (d *Domain) EnforceUniformity() *Domain {
	if len(d.values) < 2 {
		clone := &Domain{values: d.Values(), unit: d.unit}
		return clone
	}
	return linspace(d.Start(), d.End(), len(d.values), d.unit)
}

// Equalize computes a shared domain for two signals: b is converted to a's
// unit, the ranges are intersected, and a uniform grid at the finer of the
// two mean spacings is laid over the intersection. When the domains are
// already equal, a is returned unchanged. It fails with ErrNoOverlap when
// the ranges are disjoint.
func Equalize(a, b *Domain) (*Domain, error) {
	conv, err := b.To(a.unit)
	if err != nil {
		return nil, err
	}
	if a.Equal(conv) {
		return a, nil
	}
	lo := math.Max(a.Start(), conv.Start())
	hi := math.Min(a.End(), conv.End())
	if lo > hi {
		return nil, fmt.Errorf("%w: [%g, %g] and [%g, %g]", ErrNoOverlap, a.Start(), a.End(), conv.Start(), conv.End())
	}
	if lo == hi {
		return &Domain{values: []float64{lo}, unit: a.unit}, nil
	}
	step := math.Min(meanInterval(a), meanInterval(conv))
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	out, err := FromRange(lo, lo+float64(n-1)*step, step, a.unit)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func meanInterval(d *Domain) float64 {
	if len(d.values) < 2 {
		return 0
	}
	return (d.End() - d.Start()) / float64(len(d.values)-1)
}
