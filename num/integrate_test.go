package num

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRombergPolynomial(t *testing.T) {
	f := func(x float64) float64 { return 3*x*x + 2*x + 1 }
	// exact integral of the polynomial is x^3 + x^2 + x
	got := Romberg(f, 0, 2, 1e-10)
	assert.InDelta(t, 14.0, got, 1e-8)
}

func TestRombergTranscendental(t *testing.T) {
	got := Romberg(math.Exp, 0, 1, 1e-10)
	assert.InDelta(t, math.E-1, got, 1e-8)

	got = Romberg(math.Cos, 0, math.Pi/2, 1e-10)
	assert.InDelta(t, 1.0, got, 1e-8)
}

func TestRombergEmptyInterval(t *testing.T) {
	assert.Equal(t, 0.0, Romberg(math.Exp, 1, 1, 1e-10))
}

func TestRombergReversedBounds(t *testing.T) {
	fwd := Romberg(math.Exp, 0, 1, 1e-10)
	rev := Romberg(math.Exp, 1, 0, 1e-10)
	assert.InDelta(t, -fwd, rev, 1e-8)
}
