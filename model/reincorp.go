package model

import "github.com/darrencroton/sage-sub000/galaxy"

// Reincorporate returns ejected gas to the hot halo of centrals whose
// escape velocity exceeds the supernova wind speed. 445.48 km/s is
// V_SN / sqrt(2) for a 630 km/s wind.
func (ph *Physics) Reincorporate(g *galaxy.Galaxy, dt float64) {
	vcrit := 445.48 * ph.P.ReIncorporationFactor
	if g.Vvir <= vcrit {
		return
	}

	reincorporated := (g.Vvir/vcrit - 1.0) * g.EjectedMass /
		(g.Rvir / g.Vvir) * dt
	if reincorporated > g.EjectedMass {
		reincorporated = g.EjectedMass
	}
	if reincorporated <= 0.0 {
		return
	}

	z := metallicity(g.EjectedMass, g.MetalsEjectedMass)
	g.EjectedMass -= reincorporated
	g.MetalsEjectedMass -= z * reincorporated
	g.HotGas += reincorporated
	g.MetalsHotGas += z * reincorporated
}
