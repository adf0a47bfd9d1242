// Package domain provides the coordinate axis that spectral signals are
// sampled on: a strictly ascending sequence of float64 coordinates tagged
// with a unit, e.g. wavelengths in nanometers or LED inputs in volts.
//
// Domains are immutable. Constructors validate ordering, and every
// modifying operation ([Domain.Extend], [Domain.Append], [Domain.To],
// [Domain.EnforceUniformity]) returns a new domain. [Equalize] computes a
// shared uniform grid covering the intersection of two domains, which is
// how signals with different axes are brought together before elementwise
// arithmetic or contraction.
package domain
