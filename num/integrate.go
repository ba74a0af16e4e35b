package num

import (
	"math"
)

const (
	maxRombergSteps = 25
	minRombergSteps = 5
)

// Romberg integrates f over [a, b] to the given relative tolerance using
// Romberg's method over repeated trapezoid refinements. It panics if the
// estimate has not converged after 2^25 function evaluations, since every
// integrand in this code base is smooth and a failure to converge means a
// bug in the caller.
func Romberg(f func(float64) float64, a, b, eps float64) float64 {
	if a == b {
		return 0
	}

	r := make([][]float64, maxRombergSteps)
	h := b - a
	r[0] = []float64{0.5 * h * (f(a) + f(b))}

	for i := 1; i < maxRombergSteps; i++ {
		h /= 2

		// Trapezoid refinement: only the new midpoints are evaluated.
		sum := 0.0
		n := 1 << uint(i-1)
		for k := 1; k <= n; k++ {
			sum += f(a + float64(2*k-1)*h)
		}

		r[i] = make([]float64, i+1)
		r[i][0] = 0.5*r[i-1][0] + h*sum

		// Richardson extrapolation up the current row.
		pow4 := 1.0
		for j := 1; j <= i; j++ {
			pow4 *= 4
			r[i][j] = r[i][j-1] + (r[i][j-1]-r[i-1][j-1])/(pow4-1)
		}

		if i >= minRombergSteps {
			diff := math.Abs(r[i][i] - r[i-1][i-1])
			if diff <= eps*math.Abs(r[i][i]) || diff == 0 {
				return r[i][i]
			}
		}
	}

	panic("num: Romberg integration failed to converge")
}
