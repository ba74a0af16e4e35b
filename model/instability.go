package model

import "github.com/darrencroton/sage-sub000/galaxy"

// checkDiskInstability tests the combined stellar and gaseous disk against
// the Mo, Mao & White (1998) stability criterion and moves just enough
// mass to the bulge, and through a burst, to restore stability.
func (ph *Physics) checkDiskInstability(gals []galaxy.Galaxy, p, central int,
	time, dt float64, step int) error {

	g := &gals[p]
	diskMass := g.ColdGas + (g.StellarMass - g.BulgeMass)
	if diskMass <= 0.0 {
		return nil
	}

	mcrit := diskMass
	if g.Vmax > 0.0 {
		mcrit = g.Vmax * g.Vmax * (3.0 * g.DiskScaleRadius) / ph.P.G
	}
	if mcrit > diskMass {
		mcrit = diskMass
	}

	gasFraction := g.ColdGas / diskMass
	unstableGas := gasFraction * (diskMass - mcrit)
	starFraction := 1.0 - gasFraction
	unstableStars := starFraction * (diskMass - mcrit)

	if unstableStars > 0.0 {
		z := metallicity(g.StellarMass-g.BulgeMass,
			g.MetalsStellarMass-g.MetalsBulgeMass)
		g.BulgeMass += unstableStars
		g.MetalsBulgeMass += z * unstableStars

		if g.BulgeMass > 1.0001*g.StellarMass ||
			g.MetalsBulgeMass > 1.0001*g.MetalsStellarMass {
			return &RecipeAnomalyError{
				Recipe: "disk instability", Galaxy: p,
				Value: g.BulgeMass / g.StellarMass,
			}
		}
	}

	// burst the excess gas and feed the black hole
	if unstableGas > 0.0 {
		if unstableGas/g.ColdGas > 1.0001 {
			return &RecipeAnomalyError{
				Recipe: "disk instability", Galaxy: p,
				Value: unstableGas / g.ColdGas,
			}
		}

		unstableGasFraction := unstableGas / g.ColdGas
		if ph.P.AGNrecipeOn > 0 {
			ph.growBlackHole(g, unstableGasFraction)
		}
		return ph.collisionalStarburst(gals, unstableGasFraction, p, central,
			time, dt, true, step)
	}
	return nil
}
