package model

import (
	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
)

// Recipes is the physics the evolution loop integrates. Every method works
// on the working galaxy population alone; nothing here touches the merger
// tree, so alternative physics can be swapped in without knowing anything
// about halos.
//
// dt arguments are one substep, time arguments the age of the universe at
// the middle of the substep, both in code units.
type Recipes interface {
	// Infall consolidates the group's ejected gas and intracluster stars
	// onto the central and returns the gas mass (possibly negative) that
	// should fall onto the central's hot halo over the whole interval.
	Infall(gals []galaxy.Galaxy, central int, z float64) float64

	// AddInfallToHot deposits one substep's worth of infall, drawing down
	// the ejected reservoir first when the halo has lost mass.
	AddInfallToHot(g *galaxy.Galaxy, amount float64)

	// StripFromSatellite moves one substep's worth of hot gas from a
	// satellite that still owns a subhalo to the group central.
	StripFromSatellite(gals []galaxy.Galaxy, central, sat int, z float64)

	// Reincorporate returns ejected gas to the hot halo of a central
	// massive enough to recapture its own winds.
	Reincorporate(g *galaxy.Galaxy, dt float64)

	// Cooling returns the hot gas mass that cools onto the disk this
	// substep, net of radio-mode heating.
	Cooling(gals []galaxy.Galaxy, p int, dt float64) (float64, error)

	// CoolGasOntoGalaxy moves cooled mass from the hot to the cold phase.
	CoolGasOntoGalaxy(g *galaxy.Galaxy, coolingGas float64)

	// StarFormation forms stars from cold gas and applies supernova
	// feedback and disk instability.
	StarFormation(gals []galaxy.Galaxy, p, central int,
		time, dt float64, step int) error

	// HandleMerger absorbs galaxy p into target, growing the black hole
	// and bursting stars. It stamps p's MergeType.
	HandleMerger(gals []galaxy.Galaxy, p, target, central int,
		time, dt float64, step int) error

	// DisruptToICS scatters a stripped satellite's stars into the
	// intracluster light of the target.
	DisruptToICS(gals []galaxy.Galaxy, target, sat int)
}

// Physics is the standard recipe set.
type Physics struct {
	P    *sim.Params
	Cool *CoolingTables
}

// NewPhysics bundles the parameter set with its cooling tables.
func NewPhysics(p *sim.Params, cool *CoolingTables) *Physics {
	return &Physics{P: p, Cool: cool}
}
