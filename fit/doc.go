// Package fit provides the two solvers behind calibration mapping:
// isotonic regression for building monotone intensity curves, and bounded
// linear least squares for decomposing a target spectrum into achievable
// channel intensities.
//
// [Isotonic] implements the pool-adjacent-violators algorithm with optional
// direction and output bounds. [LSQLinear] minimizes the 2-norm of Ax - b
// subject to elementwise bounds l <= x <= u, using an active-set method
// with QR solves on the free variables.
package fit
