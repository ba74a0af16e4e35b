package model

import (
	"math"
	"testing"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
	"github.com/stretchr/testify/assert"
)

func testParams() *sim.Params {
	p := &sim.DefaultWrapper().Sage
	p.DeriveUnits()
	return p
}

func testTimeTable(p *sim.Params) *sim.TimeTable {
	return sim.NewTimeTable(p, []float64{0.5, 1.0})
}

// twoSnapForest is a single halo chain: halo 0 at z = 1 grows into halo 1
// at z = 0. Masses are 10^10 Msun/h.
func twoSnapForest() *tree.Forest {
	return &tree.Forest{
		File: 0, Tree: 0,
		Halos: []tree.Halo{
			{
				Descendant: 1, FirstProgenitor: tree.NilIndex,
				NextProgenitor: tree.NilIndex,
				FirstHaloInFOF: 0, NextHaloInFOF: tree.NilIndex,
				Len: 1000, Mvir: 10.0, Vmax: 180,
				Spin:    [3]float32{200, 0, 0},
				SnapNum: 0,
			},
			{
				Descendant: tree.NilIndex, FirstProgenitor: 0,
				NextProgenitor: tree.NilIndex,
				FirstHaloInFOF: 1, NextHaloInFOF: tree.NilIndex,
				Len: 2000, Mvir: 20.0, Vmax: 220,
				Spin:    [3]float32{250, 0, 0},
				SnapNum: 1,
			},
		},
	}
}

func TestVirialMass(t *testing.T) {
	p := testParams()
	f := twoSnapForest()

	// FOF roots with a mass estimate use it directly
	assert.Equal(t, 10.0, VirialMass(f, 0, p))

	// everything else counts particles
	f.Halos[0].Mvir = -1
	assert.InDelta(t, 1000*p.PartMass, VirialMass(f, 0, p), 1e-10)
}

func TestVirialRadiusAndVelocity(t *testing.T) {
	p := testParams()
	tt := testTimeTable(p)
	f := twoSnapForest()

	rvir := VirialRadius(f, 1, p, tt)
	vvir := VirialVelocity(f, 1, p, tt)
	assert.True(t, rvir > 0)

	// the three virial quantities must close under Vvir^2 = G M / R
	assert.InDelta(t, 1.0,
		vvir*vvir*rvir/(p.G*VirialMass(f, 1, p)), 1e-10)

	// the mean density inside Rvir is 200 rho_crit(z)
	rho := VirialMass(f, 1, p) / (4.0 / 3.0 * math.Pi * rvir * rvir * rvir)
	rhocrit := 3.0 * p.HubbleOfZSq(tt.Redshift[1]) / (8.0 * math.Pi * p.G)
	assert.InDelta(t, 200.0, rho/rhocrit, 1e-8)

	// the same halo at higher redshift is denser, so smaller
	f.Halos[0].Mvir = f.Halos[1].Mvir
	assert.True(t, VirialRadius(f, 0, p, tt) < rvir)
}

func TestMetallicity(t *testing.T) {
	assert.Equal(t, 0.02, metallicity(1.0, 0.02))
	assert.Equal(t, 0.0, metallicity(0.0, 0.02))
	assert.Equal(t, 0.0, metallicity(1.0, 0.0))
	assert.Equal(t, 0.0, metallicity(1.0, -0.5))
	assert.Equal(t, 1.0, metallicity(1.0, 3.0), "metallicity caps at unity")
}

func TestEstimateMergingTime(t *testing.T) {
	p := testParams()
	tt := testTimeTable(p)
	f := twoSnapForest()
	// halo 0 orbits halo 1 for this test
	g := &galaxy.Galaxy{StellarMass: 0.1, ColdGas: 0.1}

	mt := estimateMergingTime(f, 0, 1, g, p, tt)
	assert.True(t, mt > 0, "a healthy satellite gets a finite clock")

	// more massive satellites sink faster
	f2 := twoSnapForest()
	f2.Halos[0].Mvir = 19.0
	mt2 := estimateMergingTime(f2, 0, 1, g, p, tt)
	assert.True(t, mt2 < mt)

	// a satellite below the particle floor merges immediately
	f3 := twoSnapForest()
	f3.Halos[0].Len = 5
	f3.Halos[0].Mvir = -1
	assert.Equal(t, -1.0, estimateMergingTime(f3, 0, 1, g, p, tt))

	// satellite and central must be distinct halos
	assert.Equal(t, -1.0, estimateMergingTime(f, 1, 1, g, p, tt))
}

func TestDiskRadius(t *testing.T) {
	p := testParams()
	tt := testTimeTable(p)
	f := twoSnapForest()

	g := &galaxy.Galaxy{
		Rvir: VirialRadius(f, 1, p, tt),
		Vvir: VirialVelocity(f, 1, p, tt),
	}
	r := diskRadius(f, 1, g)
	assert.True(t, r > 0)
	assert.True(t, r < g.Rvir, "disks are much smaller than their halos")

	// without a virial velocity the fallback is a fixed fraction of Rvir
	g2 := &galaxy.Galaxy{Rvir: 1.0}
	assert.Equal(t, 0.1, diskRadius(f, 1, g2))
}
