package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Variable states during the active-set iteration.
const (
	atLower = -1
	isFree  = 0
	atUpper = 1
)

// Result holds the solution of a bounded least-squares problem.
type Result struct {
	// X is the minimizer.
	X []float64
	// Residual is the 2-norm of A*X - b at the solution.
	Residual float64
	// Iterations counts active-set changes until convergence.
	Iterations int
	// ActiveMask marks each variable: -1 at its lower bound, +1 at its
	// upper bound, 0 free.
	ActiveMask []int
}

// LSQLinear minimizes the 2-norm of A*x - b subject to elementwise bounds
// lower <= x <= upper. Pass nil for either bound slice to leave that side
// unconstrained; individual entries may be -Inf or +Inf. A must have at
// least as many rows as columns.
//
// The solver moves one variable at a time between its bounds and the free
// set, solving the unconstrained least-squares problem over the free
// variables by QR factorization until the Karush-Kuhn-Tucker conditions
// hold.
func LSQLinear(a *mat.Dense, b, lower, upper []float64) (*Result, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrBadInput)
	}
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrBadInput)
	}
	if m < n {
		return nil, fmt.Errorf("%w: need rows >= cols, have %dx%d", ErrBadInput, m, n)
	}
	if len(b) != m {
		return nil, fmt.Errorf("%w: rhs length %d, want %d", ErrBadInput, len(b), m)
	}
	lo, hi, err := expandBounds(lower, upper, n)
	if err != nil {
		return nil, err
	}

	x := make([]float64, n)
	state := make([]int, n)
	for j := 0; j < n; j++ {
		switch {
		case lo[j] == hi[j]:
			x[j], state[j] = lo[j], atLower
		case !math.IsInf(lo[j], -1):
			x[j], state[j] = lo[j], atLower
		case !math.IsInf(hi[j], 1):
			x[j], state[j] = hi[j], atUpper
		default:
			x[j], state[j] = 0, isFree
		}
	}

	bVec := mat.NewVecDense(m, b)
	var g0 mat.VecDense
	g0.MulVec(a.T(), bVec)
	tol := 1e-10 * (1 + mat.Norm(&g0, math.Inf(1)))

	maxIter := 30 + 10*n
	iters := 0
	hold := -1

	// innerSolve re-solves the free subproblem, binding variables that the
	// step pushes past a bound, until the free solution is interior.
	innerSolve := func() error {
		for {
			if iters > maxIter {
				return fmt.Errorf("%w after %d iterations", ErrNoConverge, iters)
			}
			z, freeIdx, err := solveFree(a, b, x, state)
			if err != nil {
				return err
			}
			alpha, limit, limitState := 1.0, -1, isFree
			for k, j := range freeIdx {
				if z[k] < lo[j] && z[k] < x[j] {
					if step := (lo[j] - x[j]) / (z[k] - x[j]); step < alpha {
						alpha, limit, limitState = step, j, atLower
					}
				} else if z[k] > hi[j] && z[k] > x[j] {
					if step := (hi[j] - x[j]) / (z[k] - x[j]); step < alpha {
						alpha, limit, limitState = step, j, atUpper
					}
				}
			}
			for k, j := range freeIdx {
				x[j] += alpha * (z[k] - x[j])
			}
			if limit < 0 {
				return nil
			}
			if limitState == atLower {
				x[limit] = lo[limit]
			} else {
				x[limit] = hi[limit]
			}
			state[limit] = limitState
			if alpha == 0 {
				hold = limit
			}
			iters++
		}
	}

	anyFree := false
	for j := 0; j < n; j++ {
		if state[j] == isFree {
			anyFree = true
			break
		}
	}
	if anyFree {
		if err := innerSolve(); err != nil {
			return nil, err
		}
	}

	for {
		if iters > maxIter {
			return nil, fmt.Errorf("%w after %d iterations", ErrNoConverge, iters)
		}

		w := negGradient(a, bVec, x)

		// Karush-Kuhn-Tucker check: a bound variable whose gradient pushes
		// into the feasible region is freed; none left means optimality.
		// A variable bound at zero step length sits out one round so the
		// free/bind pair cannot cycle.
		pick, best := -1, tol
		for j := 0; j < n; j++ {
			if lo[j] == hi[j] || j == hold {
				continue
			}
			switch state[j] {
			case atLower:
				if w[j] > best {
					pick, best = j, w[j]
				}
			case atUpper:
				if -w[j] > best {
					pick, best = j, -w[j]
				}
			}
		}
		hold = -1
		if pick < 0 {
			break
		}
		state[pick] = isFree
		iters++

		if err := innerSolve(); err != nil {
			return nil, err
		}
	}

	var ax mat.VecDense
	ax.MulVec(a, mat.NewVecDense(n, x))
	resid := make([]float64, m)
	for i := range resid {
		resid[i] = ax.AtVec(i) - b[i]
	}
	return &Result{
		X:          x,
		Residual:   math.Sqrt(floats.Dot(resid, resid)),
		Iterations: iters,
		ActiveMask: state,
	}, nil
}

// expandBounds fills missing bound slices with infinities and validates
// ordering.
func expandBounds(lower, upper []float64, n int) (lo, hi []float64, err error) {
	lo = make([]float64, n)
	hi = make([]float64, n)
	for j := 0; j < n; j++ {
		lo[j] = math.Inf(-1)
		hi[j] = math.Inf(1)
	}
	if lower != nil {
		if len(lower) != n {
			return nil, nil, fmt.Errorf("%w: lower bounds length %d, want %d", ErrBadInput, len(lower), n)
		}
		copy(lo, lower)
	}
	if upper != nil {
		if len(upper) != n {
			return nil, nil, fmt.Errorf("%w: upper bounds length %d, want %d", ErrBadInput, len(upper), n)
		}
		copy(hi, upper)
	}
	for j := 0; j < n; j++ {
		if lo[j] > hi[j] {
			return nil, nil, fmt.Errorf("%w: variable %d: %g > %g", ErrBadBounds, j, lo[j], hi[j])
		}
	}
	return lo, hi, nil
}

// negGradient returns Aᵀ(b - A*x), the descent direction of the squared
// residual at x.
func negGradient(a *mat.Dense, b *mat.VecDense, x []float64) []float64 {
	m, n := a.Dims()
	var ax mat.VecDense
	ax.MulVec(a, mat.NewVecDense(n, x))
	r := mat.NewVecDense(m, nil)
	r.SubVec(b, &ax)
	var w mat.VecDense
	w.MulVec(a.T(), r)
	out := make([]float64, n)
	for j := range out {
		out[j] = w.AtVec(j)
	}
	return out
}

// solveFree solves the unconstrained least-squares problem over the free
// variables, holding bound variables at their current values. It returns
// the free solution alongside the free variable indexes.
func solveFree(a *mat.Dense, b, x []float64, state []int) ([]float64, []int, error) {
	m, n := a.Dims()
	freeIdx := make([]int, 0, n)
	for j := 0; j < n; j++ {
		if state[j] == isFree {
			freeIdx = append(freeIdx, j)
		}
	}
	if len(freeIdx) == 0 {
		return nil, nil, nil
	}

	rhs := make([]float64, m)
	copy(rhs, b)
	for j := 0; j < n; j++ {
		if state[j] == isFree || x[j] == 0 {
			continue
		}
		for i := 0; i < m; i++ {
			rhs[i] -= a.At(i, j) * x[j]
		}
	}

	af := mat.NewDense(m, len(freeIdx), nil)
	for k, j := range freeIdx {
		for i := 0; i < m; i++ {
			af.Set(i, k, a.At(i, j))
		}
	}

	qr := new(mat.QR)
	qr.Factorize(af)
	z := mat.NewVecDense(len(freeIdx), nil)
	if err := qr.SolveVecTo(z, false, mat.NewVecDense(m, rhs)); err != nil {
		return nil, nil, fmt.Errorf("fit: free subproblem: %w", err)
	}
	out := make([]float64, len(freeIdx))
	for k := range out {
		out[k] = z.AtVec(k)
	}
	return out, freeIdx, nil
}
