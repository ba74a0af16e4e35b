package model

import (
	"math"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
)

// HandleMerger absorbs galaxy p into target. The black hole grows by
// quasar-mode accretion, a collisional starburst fires, and mergers above
// the major threshold turn the target's disk into a bulge. p keeps its
// mass fields for the record but is marked merged.
func (ph *Physics) HandleMerger(gals []galaxy.Galaxy, p, target, central int,
	time, dt float64, step int) error {

	mp := gals[p].StellarMass + gals[p].ColdGas
	mt := gals[target].StellarMass + gals[target].ColdGas
	mi, ma := mp, mt
	if mi > ma {
		mi, ma = ma, mi
	}
	massRatio := 1.0
	if ma > 0.0 {
		massRatio = mi / ma
	}

	addGalaxiesTogether(&gals[target], &gals[p])

	// grow the black hole through cold disk accretion during the merger,
	// following Kauffmann & Haehnelt (2000)
	if ph.P.AGNrecipeOn > 0 {
		ph.growBlackHole(&gals[target], massRatio)
	}

	err := ph.collisionalStarburst(gals, massRatio, target, central,
		time, dt, false, step)
	if err != nil {
		return err
	}

	if massRatio > 0.1 {
		gals[target].TimeOfLastMinorMerger = time
	}

	if massRatio > ph.P.ThreshMajorMerger {
		makeBulgeFromBurst(&gals[target])
		gals[target].TimeOfLastMajorMerger = time
		gals[p].MergeType = galaxy.MergeMajor
	} else {
		gals[p].MergeType = galaxy.MergeMinor
	}
	return nil
}

// addGalaxiesTogether moves every reservoir of p onto t. The absorbed
// stars land in t's bulge.
func addGalaxiesTogether(t, p *galaxy.Galaxy) {
	t.ColdGas += p.ColdGas
	t.MetalsColdGas += p.MetalsColdGas
	t.StellarMass += p.StellarMass
	t.MetalsStellarMass += p.MetalsStellarMass
	t.HotGas += p.HotGas
	t.MetalsHotGas += p.MetalsHotGas
	t.EjectedMass += p.EjectedMass
	t.MetalsEjectedMass += p.MetalsEjectedMass
	t.ICS += p.ICS
	t.MetalsICS += p.MetalsICS
	t.BlackHoleMass += p.BlackHoleMass

	t.BulgeMass += p.StellarMass
	t.MetalsBulgeMass += p.MetalsStellarMass

	for step := 0; step < galaxy.Steps; step++ {
		t.SfrBulge[step] += p.SfrDisk[step] + p.SfrBulge[step]
		t.SfrBulgeColdGas[step] += p.SfrDiskColdGas[step] + p.SfrBulgeColdGas[step]
		t.SfrBulgeColdGasMetals[step] += p.SfrDiskColdGasMetals[step] +
			p.SfrBulgeColdGasMetals[step]
	}
}

// growBlackHole feeds a fraction of the cold gas, scaled by the merger
// mass ratio, to the central black hole and launches the quasar wind.
func (ph *Physics) growBlackHole(g *galaxy.Galaxy, massRatio float64) {
	if g.ColdGas <= 0.0 {
		return
	}

	accreted := ph.P.BlackHoleGrowthRate * massRatio /
		(1.0 + math.Pow(280.0/g.Vvir, 2.0)) * g.ColdGas
	if accreted > g.ColdGas {
		accreted = g.ColdGas
	}

	z := metallicity(g.ColdGas, g.MetalsColdGas)
	g.BlackHoleMass += accreted
	g.ColdGas -= accreted
	g.MetalsColdGas -= z * accreted
	g.QuasarModeBHaccretionMass += accreted

	ph.quasarModeWind(g, accreted)
}

// quasarModeWind compares the quasar wind energy (eta m c^2) against the
// binding energy of the cold and hot gas and blows out whatever loses.
func (ph *Physics) quasarModeWind(g *galaxy.Galaxy, accreted float64) {
	cInCode := sim.CLight / ph.P.UnitVelocityInCmPerS
	quasarEnergy := ph.P.QuasarModeEfficiency * 0.1 * accreted * cInCode * cInCode
	coldGasEnergy := 0.5 * g.ColdGas * g.Vvir * g.Vvir
	hotGasEnergy := 0.5 * g.HotGas * g.Vvir * g.Vvir

	if quasarEnergy > coldGasEnergy {
		g.EjectedMass += g.ColdGas
		g.MetalsEjectedMass += g.MetalsColdGas
		g.ColdGas, g.MetalsColdGas = 0.0, 0.0
	}
	if quasarEnergy > coldGasEnergy+hotGasEnergy {
		g.EjectedMass += g.HotGas
		g.MetalsEjectedMass += g.MetalsHotGas
		g.HotGas, g.MetalsHotGas = 0.0, 0.0
	}
}

// collisionalStarburst is the merger starburst of Somerville et al. (2001)
// with the burst fraction coefficients of Cox's thesis. Instability bursts
// reuse it with the unstable gas fraction as the burst fraction.
func (ph *Physics) collisionalStarburst(gals []galaxy.Galaxy, massRatio float64,
	target, central int, time, dt float64, instability bool, step int) error {

	g := &gals[target]

	eburst := massRatio
	if !instability {
		eburst = 0.56 * math.Pow(massRatio, 0.7)
	}
	stars := eburst * g.ColdGas
	if stars < 0.0 {
		stars = 0.0
	}

	reheated := 0.0
	if ph.P.SupernovaRecipeOn == 1 && stars > 0.0 {
		reheated = ph.P.FeedbackReheatingEpsilon * stars
	}
	if reheated < 0.0 {
		return &RecipeAnomalyError{
			Recipe: "starburst feedback", Galaxy: target, Value: reheated,
		}
	}

	if stars+reheated > g.ColdGas {
		fac := g.ColdGas / (stars + reheated)
		stars *= fac
		reheated *= fac
	}

	ejected := ph.ejectedMass(&gals[central], stars)

	// starbursts feed the bulge
	g.SfrBulge[step] += stars / dt
	g.SfrBulgeColdGas[step] += g.ColdGas
	g.SfrBulgeColdGasMetals[step] += g.MetalsColdGas

	z := metallicity(g.ColdGas, g.MetalsColdGas)
	updateFromStarFormation(g, stars, z, ph.P.RecycleFraction)

	g.BulgeMass += (1.0 - ph.P.RecycleFraction) * stars
	g.MetalsBulgeMass += z * (1.0 - ph.P.RecycleFraction) * stars

	z = metallicity(g.ColdGas, g.MetalsColdGas)
	if err := ph.updateFromFeedback(gals, target, central, reheated, ejected, z); err != nil {
		return err
	}

	if ph.P.DiskInstabilityOn != 0 && !instability &&
		massRatio < ph.P.ThreshMajorMerger {
		err := ph.checkDiskInstability(gals, target, central, time, dt, step)
		if err != nil {
			return err
		}
	}

	if g.ColdGas > 1.0e-8 && massRatio < ph.P.ThreshMajorMerger {
		fracLeave := ph.P.FracZleaveDisk *
			math.Exp(-1.0*gals[central].Mvir/30.0)
		g.MetalsColdGas += ph.P.Yield * (1.0 - fracLeave) * stars
		gals[central].MetalsHotGas += ph.P.Yield * fracLeave * stars
	} else {
		gals[central].MetalsHotGas += ph.P.Yield * stars
	}
	return nil
}

// makeBulgeFromBurst converts the whole stellar disk into a bulge after a
// major merger.
func makeBulgeFromBurst(g *galaxy.Galaxy) {
	g.BulgeMass = g.StellarMass
	g.MetalsBulgeMass = g.MetalsStellarMass

	for step := 0; step < galaxy.Steps; step++ {
		g.SfrBulge[step] += g.SfrDisk[step]
		g.SfrBulgeColdGas[step] += g.SfrDiskColdGas[step]
		g.SfrBulgeColdGasMetals[step] += g.SfrDiskColdGasMetals[step]
		g.SfrDisk[step] = 0.0
		g.SfrDiskColdGas[step] = 0.0
		g.SfrDiskColdGasMetals[step] = 0.0
	}
}

// DisruptToICS scatters a disrupted satellite: its gas joins the target's
// hot halo, its stars the intracluster light.
func (ph *Physics) DisruptToICS(gals []galaxy.Galaxy, target, sat int) {
	t, s := &gals[target], &gals[sat]

	t.HotGas += s.ColdGas + s.HotGas
	t.MetalsHotGas += s.MetalsColdGas + s.MetalsHotGas
	t.EjectedMass += s.EjectedMass
	t.MetalsEjectedMass += s.MetalsEjectedMass
	t.ICS += s.ICS
	t.MetalsICS += s.MetalsICS

	t.ICS += s.StellarMass
	t.MetalsICS += s.MetalsStellarMass

	// TODO: decide what to do with the disrupted satellite's black hole

	s.MergeType = galaxy.MergeDisruptToICS
}
