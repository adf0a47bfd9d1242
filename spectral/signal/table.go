package signal

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-spectral/spectral/unit"
)

// Table is a labeled matrix quantity produced by contracting signals
// along their domain.
type Table struct {
	Data      *mat.Dense
	Unit      unit.Unit
	RowLabels []string
	ColLabels []string
}

// Dims returns the table dimensions.
func (t *Table) Dims() (rows, cols int) { return t.Data.Dims() }

// At returns entry (i, j) as a scalar quantity.
func (t *Table) At(i, j int) unit.Scalar {
	return unit.Scalar{Value: t.Data.At(i, j), Unit: t.Unit}
}

// Dot contracts two signals along the domain after equalizing their
// domains: entry (i, j) is the sample-wise product sum of this signal's
// channel i with the other's channel j. Units multiply.
func (s *Signal) Dot(other *Signal) (*Table, error) {
	if other == nil {
		return nil, ErrNilSignal
	}
	a, b, err := s.equalized(other)
	if err != nil {
		return nil, err
	}
	rows, cols := len(a.data), len(b.data)
	data := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data.Set(i, j, floats.Dot(a.data[i], b.data[j]))
		}
	}
	return &Table{
		Data:      data,
		Unit:      s.u.Mul(other.u),
		RowLabels: copyStrings(a.labels),
		ColLabels: copyStrings(b.labels),
	}, nil
}

// Cov returns the covariance table of a two-dimensional signal: at every
// domain sample the cross-channel mean is removed, and the centered
// channels are contracted with themselves. The unit is the value unit
// squared.
func (s *Signal) Cov() (*Table, error) {
	if s.ndim != 2 {
		return nil, ErrNotTwoDim
	}
	c := s.clone()
	n := s.dom.Len()
	nc := float64(len(s.data))
	for k := 0; k < n; k++ {
		var m float64
		for _, ch := range s.data {
			m += ch[k]
		}
		m /= nc
		for _, ch := range c.data {
			ch[k] -= m
		}
	}
	return c.Dot(c)
}

// Corr returns the dimensionless correlation table: the covariance with
// every entry divided by the geometric mean of the paired variances.
// Channels with zero variance yield NaN entries.
func (s *Signal) Corr() (*Table, error) {
	cov, err := s.Cov()
	if err != nil {
		return nil, err
	}
	rows, cols := cov.Data.Dims()
	vars := make([]float64, rows)
	for i := range vars {
		vars[i] = cov.Data.At(i, i)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			cov.Data.Set(i, j, cov.Data.At(i, j)/math.Sqrt(vars[i]*vars[j]))
		}
	}
	cov.Unit = unit.Unit{}
	return cov, nil
}
