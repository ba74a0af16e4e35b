package model

import (
	"math"

	"github.com/darrencroton/sage-sub000/galaxy"
)

// StarFormation applies the Kennicutt-Schmidt style recipe of Kauffmann
// (1996) over one substep: cold gas above the critical surface density
// forms stars on the disk dynamical time, supernovae reheat and possibly
// eject gas, and the disk is checked for instability afterwards.
func (ph *Physics) StarFormation(gals []galaxy.Galaxy, p, central int,
	time, dt float64, step int) error {

	g := &gals[p]

	// the typical star forming region is 3 disk scale lengths, using the
	// Milky Way as a guide
	strdot := 0.0
	reff := 3.0 * g.DiskScaleRadius
	tdyn := reff / g.Vvir
	coldCrit := 0.19 * g.Vvir * reff
	if g.ColdGas > coldCrit && tdyn > 0.0 {
		strdot = ph.P.SfrEfficiency * (g.ColdGas - coldCrit) / tdyn
	}

	stars := strdot * dt
	if stars < 0.0 {
		stars = 0.0
	}

	reheated := 0.0
	if ph.P.SupernovaRecipeOn == 1 {
		reheated = ph.P.FeedbackReheatingEpsilon * stars
	}
	if reheated < 0.0 {
		return &RecipeAnomalyError{
			Recipe: "supernova feedback", Galaxy: p, Value: reheated,
		}
	}

	// can't use more cold gas than is available, so balance SF and feedback
	if stars+reheated > g.ColdGas && stars+reheated > 0.0 {
		fac := g.ColdGas / (stars + reheated)
		stars *= fac
		reheated *= fac
	}

	ejected := ph.ejectedMass(&gals[central], stars)

	g.SfrDisk[step] += stars / dt
	g.SfrDiskColdGas[step] += g.ColdGas
	g.SfrDiskColdGasMetals[step] += g.MetalsColdGas

	z := metallicity(g.ColdGas, g.MetalsColdGas)
	updateFromStarFormation(g, stars, z, ph.P.RecycleFraction)

	// the cold phase metallicity changed, recompute before feedback
	z = metallicity(g.ColdGas, g.MetalsColdGas)
	if err := ph.updateFromFeedback(gals, p, central, reheated, ejected, z); err != nil {
		return err
	}

	if ph.P.DiskInstabilityOn != 0 {
		if err := ph.checkDiskInstability(gals, p, central, time, dt, step); err != nil {
			return err
		}
	}

	ph.addYield(gals, p, central, stars)
	return nil
}

// ejectedMass returns the gas mass supernovae can expel from the central's
// potential well for the given newly formed stellar mass.
func (ph *Physics) ejectedMass(central *galaxy.Galaxy, stars float64) float64 {
	if ph.P.SupernovaRecipeOn != 1 || central.Vvir <= 0.0 {
		return 0.0
	}
	ejected := (ph.P.FeedbackEjectionEfficiency*
		(ph.P.EtaSNcode*ph.P.EnergySNcode)/(central.Vvir*central.Vvir) -
		ph.P.FeedbackReheatingEpsilon) * stars
	if ejected < 0.0 {
		return 0.0
	}
	return ejected
}

// updateFromStarFormation locks cold gas up in stars, with instantaneous
// recycling of the fraction that dies immediately.
func updateFromStarFormation(g *galaxy.Galaxy, stars, z, recycleFraction float64) {
	g.ColdGas -= (1.0 - recycleFraction) * stars
	g.MetalsColdGas -= z * (1.0 - recycleFraction) * stars
	g.StellarMass += (1.0 - recycleFraction) * stars
	g.MetalsStellarMass += z * (1.0 - recycleFraction) * stars
}

// updateFromFeedback reheats cold gas into the central's hot halo and
// ejects hot gas out of the halo entirely.
func (ph *Physics) updateFromFeedback(gals []galaxy.Galaxy, p, central int,
	reheated, ejected, z float64) error {

	g := &gals[p]
	if reheated > g.ColdGas && reheated > 0.0 {
		return &RecipeAnomalyError{
			Recipe: "supernova feedback", Galaxy: p, Value: reheated,
		}
	}
	if ph.P.SupernovaRecipeOn != 1 {
		return nil
	}

	c := &gals[central]
	g.ColdGas -= reheated
	g.MetalsColdGas -= z * reheated
	c.HotGas += reheated
	c.MetalsHotGas += z * reheated

	if ejected > c.HotGas {
		ejected = c.HotGas
	}
	zHot := metallicity(c.HotGas, c.MetalsHotGas)

	c.HotGas -= ejected
	c.MetalsHotGas -= zHot * ejected
	c.EjectedMass += ejected
	c.MetalsEjectedMass += zHot * ejected

	g.OutflowRate += reheated
	return nil
}

// addYield injects newly produced metals into the cold disk, letting the
// fraction FracZleaveDisk escape directly into the central's hot halo
// (Krumholz & Dekel 2011 eq. 22).
func (ph *Physics) addYield(gals []galaxy.Galaxy, p, central int, stars float64) {
	g, c := &gals[p], &gals[central]
	if g.ColdGas > 1.0e-8 {
		fracLeave := ph.P.FracZleaveDisk * math.Exp(-1.0*c.Mvir/30.0)
		g.MetalsColdGas += ph.P.Yield * (1.0 - fracLeave) * stars
		c.MetalsHotGas += ph.P.Yield * fracLeave * stars
	} else {
		c.MetalsHotGas += ph.P.Yield * stars
	}
}
