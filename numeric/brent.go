// Package numeric carries the one nonlinear-solving abstraction used by every
// component solver: a bracketing Brent root search with bounded iterations,
// plus a small relative-change fixed-point loop.
package numeric

import (
	"errors"
	"math"
)

// ErrNoBracket signals f(lo) and f(hi) do not straddle a sign change. Callers
// are expected to saturate to a boundary instead of forcing a search.
var ErrNoBracket = errors.New("root not bracketed")

// Result of a root search. Root holds the best iterate even when Converged
// is false.
type Result struct {
	Root       float64
	Residual   float64
	Converged  bool
	Iterations int
}

const defaultMaxIter = 100

// Brent finds a root of f in [lo, hi] using Brent's method. tolX bounds the
// bracket width, tolF the residual magnitude; maxIter <= 0 selects the
// default cap. Termination is always bounded: on hitting the cap the best
// iterate is returned with Converged=false.
func Brent(f func(float64) (float64, error), lo, hi, tolX, tolF float64, maxIter int) (Result, error) {
	if maxIter <= 0 {
		maxIter = defaultMaxIter
	}
	a, b := lo, hi
	fa, err := f(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := f(b)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(fa) <= tolF {
		return Result{Root: a, Residual: fa, Converged: true}, nil
	}
	if math.Abs(fb) <= tolF {
		return Result{Root: b, Residual: fb, Converged: true}, nil
	}
	if fa*fb > 0 {
		return Result{Root: b, Residual: fb}, ErrNoBracket
	}

	c, fc := a, fa
	var d, e float64
	d = b - a
	e = d
	for it := 1; it <= maxIter; it++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*machEps*math.Abs(b) + 0.5*tolX
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || math.Abs(fb) <= tolF {
			return Result{Root: b, Residual: fb, Converged: true, Iterations: it}, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// inverse quadratic / secant step
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb, err = f(b)
		if err != nil {
			return Result{Root: b, Residual: fb, Iterations: it}, err
		}
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}
	return Result{Root: b, Residual: fb, Converged: false, Iterations: maxIter}, nil
}

const machEps = 2.220446049250313e-16

// FixedPoint iterates x = f(x) until the relative change drops below relTol
// or maxIter is hit. The last iterate is always returned; the bool reports
// convergence so callers can log the soft failure without aborting.
func FixedPoint(f func(float64) (float64, error), x0, relTol float64, maxIter int) (float64, bool, error) {
	x := x0
	for i := 0; i < maxIter; i++ {
		next, err := f(x)
		if err != nil {
			return x, false, err
		}
		if math.Abs(next-x) <= relTol*math.Max(math.Abs(next), 1e-12) {
			return next, true, nil
		}
		x = next
	}
	return x, false, nil
}

// Polyval evaluates c0 + c1*x + c2*x^2 + ... (coefficients low order first).
func Polyval(coeffs []float64, x float64) float64 {
	y := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}
