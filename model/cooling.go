package model

import (
	"math"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
)

// Cooling returns the hot gas mass cooling onto galaxy p this substep,
// following White & Frenk (1991) with an isothermal hot halo profile. When
// the cooling radius exceeds the virial radius the halo is in the cold
// accretion regime and drains on a dynamical time. Radio-mode AGN heating,
// if enabled, eats into the maximal rate before anything moves.
func (ph *Physics) Cooling(gals []galaxy.Galaxy, p int, dt float64) (float64, error) {
	g := &gals[p]
	if g.HotGas <= 0.0 || g.Vvir <= 0.0 {
		return 0.0, nil
	}

	tcool := g.Rvir / g.Vvir
	temp := 35.9 * g.Vvir * g.Vvir // Kelvin

	logZ := -10.0
	if g.MetalsHotGas > 0 {
		logZ = math.Log10(g.MetalsHotGas / g.HotGas)
	}

	lambda := ph.Cool.Rate(math.Log10(temp), logZ)
	x := sim.ProtonMass * sim.Boltzmann * temp / lambda // sec g/cm^3
	x /= ph.P.UnitDensityInCgs * ph.P.UnitTimeInS       // internal units
	// 0.885 = 3/2 mu, with mu = 0.59 for a fully ionized gas
	rhoRcool := x / tcool * 0.885

	// isothermal density profile for the hot gas
	rho0 := g.HotGas / (4.0 * math.Pi * g.Rvir)
	rcool := math.Sqrt(rho0 / rhoRcool)

	var coolingGas float64
	if rcool > g.Rvir {
		// cold accretion regime
		coolingGas = g.HotGas / (g.Rvir / g.Vvir) * dt
	} else {
		// hot halo cooling regime
		coolingGas = g.HotGas / (2.0 * tcool) * dt * rcool / g.Rvir
	}

	if coolingGas > g.HotGas {
		coolingGas = g.HotGas
	} else if coolingGas < 0.0 {
		return 0.0, &RecipeAnomalyError{
			Recipe: "cooling", Galaxy: p, Value: coolingGas,
		}
	}

	// the maximal rate so far; past and present heating reduce it
	if ph.P.AGNrecipeOn > 0 && coolingGas > 0.0 {
		coolingGas = ph.agnHeating(coolingGas, g, dt, x, rcool)
	}

	if coolingGas > 0.0 {
		g.Cooling += 0.5 * coolingGas * g.Vvir * g.Vvir
	}
	return coolingGas, nil
}

// agnHeating grows the central black hole by radio-mode accretion from the
// hot halo and offsets the cooling flow with the energy released. Returns
// the surviving cooling mass.
func (ph *Physics) agnHeating(coolingGas float64, g *galaxy.Galaxy,
	dt, x, rcool float64) float64 {

	// past heating episodes keep the gas inside RHeat from cooling
	if g.RHeat < rcool {
		coolingGas = (1.0 - g.RHeat/rcool) * coolingGas
	} else {
		coolingGas = 0.0
	}

	if g.HotGas <= 0.0 {
		return coolingGas
	}

	var agnRate float64
	switch ph.P.AGNrecipeOn {
	case 2:
		// Bondi-Hoyle accretion
		agnRate = (2.5 * math.Pi * ph.P.G) * (0.375 * 0.6 * x) *
			g.BlackHoleMass * ph.P.RadioModeEfficiency
	case 3:
		// cold cloud accretion, triggered when the black hole outweighs
		// 10^-4 of the gas within the cooling radius
		if g.BlackHoleMass > 0.0001*g.Mvir*math.Pow(rcool/g.Rvir, 3.0) {
			agnRate = 0.0001 * coolingGas / dt
		}
	default:
		// empirical recipe scaled to Vvir and hot gas fraction
		if g.Mvir > 0.0 {
			agnRate = ph.P.RadioModeEfficiency /
				(ph.P.UnitMassInG / ph.P.UnitTimeInS *
					sim.SecPerYear / sim.SolarMass) *
				(g.BlackHoleMass / 0.01) *
				math.Pow(g.Vvir/200.0, 3.0) *
				((g.HotGas / g.Mvir) / 0.1)
		}
	}

	// accretion is always Eddington limited
	eddRate := 1.3e38 * g.BlackHoleMass * 1e10 / ph.P.HubbleH /
		(ph.P.UnitEnergyInCgs / ph.P.UnitTimeInS) / (0.1 * 9e10)
	if agnRate > eddRate {
		agnRate = eddRate
	}

	agnAccreted := agnRate * dt
	if agnAccreted > g.HotGas {
		agnAccreted = g.HotGas
	}

	// 1.34e5 = sqrt(2 eta c^2) with eta = 0.1 and c in km/s; heating the
	// accreted mass back to the virial temperature costs this much cooling
	agnCoeff := math.Pow(1.34e5/g.Vvir, 2.0)
	agnHeating := agnCoeff * agnAccreted

	if agnHeating > coolingGas {
		agnAccreted = coolingGas / agnCoeff
		agnHeating = coolingGas
	}

	zHot := metallicity(g.HotGas, g.MetalsHotGas)
	g.BlackHoleMass += agnAccreted
	g.HotGas -= agnAccreted
	g.MetalsHotGas -= zHot * agnAccreted

	if g.RHeat < rcool && coolingGas > 0.0 {
		rHeatNew := (agnHeating / coolingGas) * rcool
		if rHeatNew > g.RHeat {
			g.RHeat = rHeatNew
		}
	}

	if agnHeating > 0.0 {
		g.Heating += 0.5 * agnHeating * g.Vvir * g.Vvir
	}
	return coolingGas
}

// CoolGasOntoGalaxy moves cooled gas and its metals from the hot halo onto
// the cold disk.
func (ph *Physics) CoolGasOntoGalaxy(g *galaxy.Galaxy, coolingGas float64) {
	if coolingGas <= 0.0 {
		return
	}
	if coolingGas < g.HotGas {
		z := metallicity(g.HotGas, g.MetalsHotGas)
		g.ColdGas += coolingGas
		g.MetalsColdGas += z * coolingGas
		g.HotGas -= coolingGas
		g.MetalsHotGas -= z * coolingGas
	} else {
		g.ColdGas += g.HotGas
		g.MetalsColdGas += g.MetalsHotGas
		g.HotGas, g.MetalsHotGas = 0.0, 0.0
	}
}
