package model

import (
	"math"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
)

// minSatHaloParticles is the smallest subhalo trusted to give a meaningful
// dynamical friction time.
const minSatHaloParticles = 10

// VirialMass returns the halo mass in code units. FOF group roots use the
// spherical overdensity estimate when one is available, everything else
// falls back to particle number times particle mass.
func VirialMass(f *tree.Forest, halonr int32, p *sim.Params) float64 {
	h := &f.Halos[halonr]
	if h.IsFOFRoot(halonr) && h.Mvir >= 0.0 {
		return float64(h.Mvir)
	}
	return float64(h.Len) * p.PartMass
}

// VirialRadius returns the radius enclosing 200 times the critical density
// at the halo's snapshot.
func VirialRadius(f *tree.Forest, halonr int32, p *sim.Params, tt *sim.TimeTable) float64 {
	z := tt.Redshift[f.Halos[halonr].SnapNum]
	rhocrit := 3.0 * p.HubbleOfZSq(z) / (8.0 * math.Pi * p.G)
	fac := 1.0 / (200.0 * 4.0 / 3.0 * math.Pi * rhocrit)
	return math.Cbrt(VirialMass(f, halonr, p) * fac)
}

// VirialVelocity returns the circular velocity at the virial radius, km/s.
func VirialVelocity(f *tree.Forest, halonr int32, p *sim.Params, tt *sim.TimeTable) float64 {
	rvir := VirialRadius(f, halonr, p, tt)
	if rvir <= 0.0 {
		return 0.0
	}
	return math.Sqrt(p.G * VirialMass(f, halonr, p) / rvir)
}

// diskRadius returns the exponential disk scale radius from the halo spin,
// following Mo, Mao & White (1998).
func diskRadius(f *tree.Forest, halonr int32, g *galaxy.Galaxy) float64 {
	if g.Vvir <= 0.0 || g.Rvir <= 0.0 {
		return 0.1 * g.Rvir
	}
	s := f.Halos[halonr].Spin
	mag := math.Sqrt(float64(s[0])*float64(s[0]) +
		float64(s[1])*float64(s[1]) + float64(s[2])*float64(s[2]))
	spinParameter := mag / (1.414 * g.Vvir * g.Rvir)
	return (spinParameter / 1.414) * g.Rvir
}

// metallicity returns metals/gas clamped to [0, 1].
func metallicity(gas, metals float64) float64 {
	if gas > 0.0 && metals > 0.0 {
		z := metals / gas
		if z < 1.0 {
			return z
		}
		return 1.0
	}
	return 0.0
}

// estimateMergingTime returns the dynamical friction timescale of a
// satellite subhalo orbiting within its FOF group, following Binney &
// Tremaine. Satellites too small to trust return -1, which merges them on
// the first eligible substep.
func estimateMergingTime(f *tree.Forest, satHalo, motherHalo int32,
	g *galaxy.Galaxy, p *sim.Params, tt *sim.TimeTable) float64 {

	if satHalo == motherHalo {
		return -1.0
	}

	coulomb := math.Log(1.0 +
		float64(f.Halos[motherHalo].Len)/float64(f.Halos[satHalo].Len))
	satMass := VirialMass(f, satHalo, p) + g.StellarMass + g.ColdGas
	satRadius := VirialRadius(f, motherHalo, p, tt)

	if satMass <= 0.0 || coulomb <= 0.0 ||
		f.Halos[satHalo].Len < minSatHaloParticles {
		return -1.0
	}
	return 2.0 * 1.17 * satRadius * satRadius *
		VirialVelocity(f, motherHalo, p, tt) / (coulomb * p.G * satMass)
}
