package model

import (
	"math"

	"github.com/darrencroton/sage-sub000/galaxy"
)

// Infall sums the baryons already locked up in the whole FOF group and
// returns the difference from the universal baryon budget of the central's
// halo. Satellite ejected gas and ICS are handed to the central on the way.
func (ph *Physics) Infall(gals []galaxy.Galaxy, central int, z float64) float64 {
	var totStellar, totBH, totCold, totHot, totEjected, totICS float64
	var totEjectedMetals, totICSMetals float64

	for i := range gals {
		g := &gals[i]
		totStellar += g.StellarMass
		totBH += g.BlackHoleMass
		totCold += g.ColdGas
		totHot += g.HotGas
		totEjected += g.EjectedMass
		totICS += g.ICS
		totEjectedMetals += g.MetalsEjectedMass
		totICSMetals += g.MetalsICS

		// satellite ejected gas and ICS live with the central
		if i != central {
			g.EjectedMass, g.MetalsEjectedMass = 0.0, 0.0
			g.ICS, g.MetalsICS = 0.0, 0.0
		}
	}

	reionizationModifier := 1.0
	if ph.P.ReionizationOn != 0 {
		reionizationModifier = ph.reionizationModifier(gals[central].Mvir, z)
	}

	infalling := reionizationModifier*ph.P.BaryonFrac*gals[central].Mvir -
		(totStellar + totCold + totHot + totEjected + totBH + totICS)

	c := &gals[central]
	c.EjectedMass, c.MetalsEjectedMass = totEjected, totEjectedMetals
	if c.MetalsEjectedMass > c.EjectedMass {
		c.MetalsEjectedMass = c.EjectedMass
	}
	if c.EjectedMass < 0.0 {
		c.EjectedMass, c.MetalsEjectedMass = 0.0, 0.0
	}
	if c.MetalsEjectedMass < 0.0 {
		c.MetalsEjectedMass = 0.0
	}

	c.ICS, c.MetalsICS = totICS, totICSMetals
	if c.MetalsICS > c.ICS {
		c.MetalsICS = c.ICS
	}
	if c.ICS < 0.0 {
		c.ICS, c.MetalsICS = 0.0, 0.0
	}
	if c.MetalsICS < 0.0 {
		c.MetalsICS = 0.0
	}

	return infalling
}

// reionizationModifier suppresses infall onto halos below the filtering
// mass after reionization, following Gnedin (2000) with the Kravtsov et al.
// (2004) Appendix B fitting formulas.
func (ph *Physics) reionizationModifier(mvir, z float64) float64 {
	// alpha gives the best fit to the Gnedin data
	const alpha = 6.0
	const tvir = 1e4

	a := 1.0 / (1.0 + z)
	a0, ar := ph.P.A0, ph.P.Ar
	aOnA0 := a / a0
	aOnAr := a / ar

	var fOfA float64
	switch {
	case a <= a0:
		fOfA = 3.0 * a / ((2.0 + alpha) * (5.0 + 2.0*alpha)) *
			math.Pow(aOnA0, alpha)
	case a < ar:
		fOfA = (3.0/a)*a0*a0*(1.0/(2.0+alpha)-
			2.0*math.Pow(aOnA0, -0.5)/(5.0+2.0*alpha)) +
			a*a/10.0 - (a0*a0/10.0)*(5.0-4.0*math.Pow(aOnA0, -0.5))
	default:
		fOfA = (3.0 / a) * (a0*a0*(1.0/(2.0+alpha)-
			2.0*math.Pow(aOnA0, -0.5)/(5.0+2.0*alpha)) +
			(ar*ar/10.0)*(5.0-4.0*math.Pow(aOnAr, -0.5)) -
			(a0*a0/10.0)*(5.0-4.0*math.Pow(aOnA0, -0.5)) +
			a*ar/3.0 - (ar*ar/3.0)*(3.0-2.0*math.Pow(aOnAr, -0.5)))
	}

	// in 10^10 Msun/h, with mu = 0.59 and mu^-1.5 = 2.21
	mJeans := 25.0 * math.Pow(ph.P.Omega, -0.5) * 2.21
	mFiltering := mJeans * math.Pow(fOfA, 1.5)

	// characteristic mass of a halo at virial temperature 10^4 K
	vchar := math.Sqrt(tvir / 36.0)
	zp1 := 1.0 + z
	omegaZ := ph.P.Omega * (zp1 * zp1 * zp1 /
		(ph.P.Omega*zp1*zp1*zp1 + ph.P.OmegaLambda))
	xZ := omegaZ - 1.0
	deltacritZ := 18.0*math.Pi*math.Pi + 82.0*xZ - 39.0*xZ*xZ
	hubbleZ := ph.P.Hubble *
		math.Sqrt(ph.P.Omega*zp1*zp1*zp1+ph.P.OmegaLambda)
	mChar := vchar * vchar * vchar /
		(ph.P.G * hubbleZ * math.Sqrt(0.5*deltacritZ))

	massToUse := math.Max(mFiltering, mChar)
	return math.Pow(1.0+0.26*(massToUse/mvir), -3.0)
}

// AddInfallToHot deposits infalling gas onto the hot halo. When the halo
// has lost baryons the deficit comes out of the ejected reservoir first,
// then the hot metals, then the hot gas itself.
func (ph *Physics) AddInfallToHot(g *galaxy.Galaxy, infalling float64) {
	if infalling < 0.0 && g.EjectedMass > 0.0 {
		z := metallicity(g.EjectedMass, g.MetalsEjectedMass)
		g.MetalsEjectedMass += infalling * z
		if g.MetalsEjectedMass < 0.0 {
			g.MetalsEjectedMass = 0.0
		}

		g.EjectedMass += infalling
		if g.EjectedMass < 0.0 {
			infalling = g.EjectedMass
			g.EjectedMass, g.MetalsEjectedMass = 0.0, 0.0
		} else {
			infalling = 0.0
		}
	}

	if infalling < 0.0 && g.MetalsHotGas > 0.0 {
		z := metallicity(g.HotGas, g.MetalsHotGas)
		g.MetalsHotGas += infalling * z
		if g.MetalsHotGas < 0.0 {
			g.MetalsHotGas = 0.0
		}
	}

	g.HotGas += infalling
	if g.HotGas < 0.0 {
		g.HotGas, g.MetalsHotGas = 0.0, 0.0
	}
}

// StripFromSatellite moves hot gas from a subhalo satellite to the central
// at the rate that would exhaust the satellite's excess baryons over one
// snapshot interval.
func (ph *Physics) StripFromSatellite(gals []galaxy.Galaxy, central, sat int, z float64) {
	g := &gals[sat]

	reionizationModifier := 1.0
	if ph.P.ReionizationOn != 0 {
		reionizationModifier = ph.reionizationModifier(g.Mvir, z)
	}

	stripped := -1.0 * (reionizationModifier*ph.P.BaryonFrac*g.Mvir -
		(g.StellarMass + g.ColdGas + g.HotGas + g.EjectedMass +
			g.BlackHoleMass + g.ICS)) / float64(galaxy.Steps)
	if stripped <= 0.0 {
		return
	}

	zHot := metallicity(g.HotGas, g.MetalsHotGas)
	strippedMetals := stripped * zHot

	if stripped > g.HotGas {
		stripped = g.HotGas
	}
	if strippedMetals > g.MetalsHotGas {
		strippedMetals = g.MetalsHotGas
	}

	g.HotGas -= stripped
	g.MetalsHotGas -= strippedMetals

	gals[central].HotGas += stripped
	gals[central].MetalsHotGas += stripped * zHot
}
