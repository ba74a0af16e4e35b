package model

import (
	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
)

// minLedgerCap is the smallest per-tree ledger capacity. Trees with more
// halos get one slot per halo.
const minLedgerCap = 10000

// Evolver walks one merger tree at a time, maintaining the working galaxy
// population in an arena that is recycled across FOF groups and retiring
// galaxies into a per-tree ledger. The arena's backing store survives
// across trees.
type Evolver struct {
	p   *sim.Params
	tt  *sim.TimeTable
	rec Recipes

	f      *tree.Forest
	aux    *tree.AuxState
	arena  *galaxy.Arena
	ledger *galaxy.Ledger

	// serial number of the next galaxy born in this tree
	counter int
}

// NewEvolver returns an evolver ready to process trees.
func NewEvolver(p *sim.Params, tt *sim.TimeTable, rec Recipes) *Evolver {
	return &Evolver{p: p, tt: tt, rec: rec, arena: galaxy.NewArena(1000)}
}

// Ledger exposes the retired galaxies of the last processed tree.
func (e *Evolver) Ledger() *galaxy.Ledger { return e.ledger }

// Aux exposes the per-halo bookkeeping of the last processed tree.
func (e *Evolver) Aux() *tree.AuxState { return e.aux }

// ProcessTree validates f and evolves its whole galaxy population from the
// first snapshot to the last. On return the ledger holds every galaxy the
// tree ever produced, one entry per galaxy per snapshot lived.
func (e *Evolver) ProcessTree(f *tree.Forest) error {
	if err := f.Validate(); err != nil {
		return err
	}

	ledgerCap := len(f.Halos)
	if ledgerCap < minLedgerCap {
		ledgerCap = minLedgerCap
	}

	e.f = f
	e.aux = tree.NewAuxState(f)
	e.ledger = galaxy.NewLedger(ledgerCap)
	e.counter = 0

	return tree.Walk(f, e.aux, e.evolveGroup)
}

func (e *Evolver) invariant(halonr int32, gal int, msg string) error {
	return &StateInvariantError{
		File: e.f.File, Tree: e.f.Tree,
		Halo: halonr, Galaxy: gal, Msg: msg,
	}
}

// evolveGroup runs one FOF group through a full snapshot interval: join
// the progenitor populations of every member, integrate the physics over
// the substeps, settle mergers, and retire the survivors to the ledger.
func (e *Evolver) evolveGroup(root int32) error {
	e.arena.Reset()

	for m := root; m != tree.NilIndex; m = e.f.Halos[m].NextHaloInFOF {
		if err := e.joinProgenitors(m, root); err != nil {
			return err
		}
	}
	if e.arena.Len() == 0 {
		return nil
	}
	if err := e.evolve(root); err != nil {
		return err
	}
	return e.finalize(root)
}

// joinProgenitors copies the retired galaxies of halonr's progenitors back
// into the working arena, refreshing the galaxy that tracks the main
// branch with the new halo's properties and demoting the rest to orphans.
// A FOF root with no progenitor galaxies anywhere in its group seeds a
// new galaxy.
func (e *Evolver) joinProgenitors(halonr, root int32) error {
	h := &e.f.Halos[halonr]
	ngalstart := e.arena.Len()

	// the main branch follows the most massive progenitor that actually
	// hosts galaxies; first seen wins ties
	firstOccupied := h.FirstProgenitor
	lenmax := int32(0)
	for p := h.FirstProgenitor; p != tree.NilIndex; p = e.f.Halos[p].NextProgenitor {
		if e.f.Halos[p].Len > lenmax && e.aux.NGalaxies[p] > 0 {
			lenmax = e.f.Halos[p].Len
			firstOccupied = p
		}
	}

	for p := h.FirstProgenitor; p != tree.NilIndex; p = e.f.Halos[p].NextProgenitor {
		for i := 0; i < e.aux.NGalaxies[p]; i++ {
			g := *e.ledger.At(e.aux.FirstGalaxy[p] + i)
			g.HaloNr = halonr
			g.DT = -1.0
			g.ResetScratch()

			if g.Type == galaxy.TypeCentral || g.Type == galaxy.TypeSatellite {
				if g.MergeType != galaxy.MergeNone {
					// merged last interval; carry the husk forward once
					// so nothing dangles, but never evolve it again
					g.Type = galaxy.TypeDead
				} else if p == firstOccupied {
					e.refreshFromHalo(&g, halonr, root)
				} else {
					e.demoteToOrphan(&g)
				}
			}

			if _, err := e.arena.Add(g); err != nil {
				return err
			}
		}
	}

	if e.arena.Len() == 0 {
		if halonr != root {
			return e.invariant(halonr, -1,
				"new galaxy requested on a non-root halo")
		}
		if _, err := e.arena.Add(e.newGalaxy(halonr)); err != nil {
			return err
		}
	}

	// each subhalo carries at most one galaxy that is not an orphan
	central := -1
	for i := ngalstart; i < e.arena.Len(); i++ {
		t := e.arena.At(i).Type
		if t == galaxy.TypeCentral || t == galaxy.TypeSatellite {
			if central != -1 {
				return e.invariant(halonr, i,
					"two non-orphan galaxies in one subhalo")
			}
			central = i
		}
	}
	for i := ngalstart; i < e.arena.Len(); i++ {
		e.arena.At(i).CentralGal = central
	}
	return nil
}

// refreshFromHalo updates the main-branch galaxy with the properties of
// the halo it now sits in. Rvir and Vvir only ever grow; the halo mass
// change over the coming interval is remembered for the merger clock.
func (e *Evolver) refreshFromHalo(g *galaxy.Galaxy, halonr, root int32) {
	h := &e.f.Halos[halonr]

	prevMvir, prevVvir, prevVmax := g.Mvir, g.Vvir, g.Vmax

	g.MostBoundID = h.MostBoundID
	for j := 0; j < 3; j++ {
		g.Pos[j] = float64(h.Pos[j])
		g.Vel[j] = float64(h.Vel[j])
	}
	g.Len = h.Len
	g.Vmax = float64(h.Vmax)

	mvir := VirialMass(e.f, halonr, e.p)
	g.DeltaMvir = mvir - g.Mvir
	if mvir > g.Mvir {
		g.Rvir = VirialRadius(e.f, halonr, e.p, e.tt)
		g.Vvir = VirialVelocity(e.f, halonr, e.p, e.tt)
	}
	g.Mvir = mvir

	if halonr == root {
		g.MergeType = galaxy.MergeNone
		g.MergeIntoID = -1
		g.MergTime = galaxy.MergTimeUnset
		g.DiskScaleRadius = diskRadius(e.f, halonr, g)
		g.Type = galaxy.TypeCentral
	} else {
		g.MergeType = galaxy.MergeNone
		g.MergeIntoID = -1

		if g.Type == galaxy.TypeCentral {
			// freeze the properties the galaxy fell in with
			g.InfallMvir = prevMvir
			g.InfallVvir = prevVvir
			g.InfallVmax = prevVmax
		}
		if g.Type == galaxy.TypeCentral || g.MergTime > 999.0 {
			g.MergTime = estimateMergingTime(e.f, halonr, root, g, e.p, e.tt)
		}
		g.Type = galaxy.TypeSatellite
	}
}

// demoteToOrphan strips a galaxy whose subhalo was lost. Orphans merge or
// disrupt within the current interval.
func (e *Evolver) demoteToOrphan(g *galaxy.Galaxy) {
	prevMvir, prevVvir, prevVmax := g.Mvir, g.Vvir, g.Vmax

	g.DeltaMvir = -1.0 * g.Mvir
	g.Mvir = 0.0

	if g.MergTime > 999.0 || g.Type == galaxy.TypeCentral {
		// straight from central to orphan: merge it now
		g.MergTime = 0.0
		g.InfallMvir = prevMvir
		g.InfallVvir = prevVvir
		g.InfallVmax = prevVmax
	}
	g.Type = galaxy.TypeOrphan
}

// newGalaxy seeds a galaxy in a FOF root that no progenitor population
// reached. It is born one snapshot before its halo so the first interval
// integrates from somewhere.
func (e *Evolver) newGalaxy(halonr int32) galaxy.Galaxy {
	h := &e.f.Halos[halonr]

	g := galaxy.Galaxy{
		Type:             galaxy.TypeCentral,
		GalaxyNr:         e.counter,
		HaloNr:           halonr,
		MostBoundID:      h.MostBoundID,
		SnapNum:          int(h.SnapNum) - 1,
		MergeType:        galaxy.MergeNone,
		MergeIntoID:      -1,
		MergeIntoSnapNum: -1,
		DT:               -1.0,
		Len:              h.Len,
		Vmax:             float64(h.Vmax),
		MergTime:         galaxy.MergTimeUnset,

		InfallMvir: -1.0,
		InfallVvir: -1.0,
		InfallVmax: -1.0,

		TimeOfLastMajorMerger: -1.0,
		TimeOfLastMinorMerger: -1.0,
	}
	e.counter++

	for j := 0; j < 3; j++ {
		g.Pos[j] = float64(h.Pos[j])
		g.Vel[j] = float64(h.Vel[j])
	}
	g.Mvir = VirialMass(e.f, halonr, e.p)
	g.Rvir = VirialRadius(e.f, halonr, e.p, e.tt)
	g.Vvir = VirialVelocity(e.f, halonr, e.p, e.tt)
	g.DiskScaleRadius = diskRadius(e.f, halonr, &g)
	return g
}

// evolve integrates the physics over the snapshot interval in Steps
// substeps, settling mergers and disruptions at the end of each substep.
func (e *Evolver) evolve(root int32) error {
	gals := e.arena.Slice()
	halosnap := int(e.f.Halos[root].SnapNum)
	z := e.tt.Redshift[halosnap]

	central := gals[0].CentralGal
	if central < 0 || gals[central].Type != galaxy.TypeCentral ||
		gals[central].CentralGal != central {
		return e.invariant(root, central, "FOF group has no central galaxy")
	}

	infalling := e.rec.Infall(gals, central, z)

	for step := 0; step < galaxy.Steps; step++ {
		for p := range gals {
			g := &gals[p]
			if g.MergeType != galaxy.MergeNone {
				continue
			}

			deltaT := e.tt.Age(g.SnapNum) - e.tt.Age(halosnap)
			dt := deltaT / float64(galaxy.Steps)
			time := e.tt.Age(g.SnapNum) - (float64(step)+0.5)*dt
			if g.DT < 0.0 {
				g.DT = deltaT
			}

			if p == central {
				e.rec.AddInfallToHot(g, infalling/float64(galaxy.Steps))
				if e.p.ReIncorporationFactor > 0.0 {
					e.rec.Reincorporate(g, dt)
				}
			} else if g.Type == galaxy.TypeSatellite && g.HotGas > 0.0 {
				e.rec.StripFromSatellite(gals, central, p, z)
			}

			coolingGas, err := e.rec.Cooling(gals, p, dt)
			if err != nil {
				return err
			}
			e.rec.CoolGasOntoGalaxy(g, coolingGas)

			if err := e.rec.StarFormation(gals, p, central, time, dt, step); err != nil {
				return err
			}
		}

		if err := e.settleMergers(gals, central, root, halosnap, step); err != nil {
			return err
		}
	}

	// turn the accumulated energies into rates over the interval and roll
	// the surviving satellites' baryons up onto the central
	gals[central].TotalSatelliteBaryons = 0.0
	deltaT := e.tt.Age(gals[0].SnapNum) - e.tt.Age(halosnap)
	for p := range gals {
		if gals[p].MergeType != galaxy.MergeNone {
			continue
		}
		gals[p].Cooling /= deltaT
		gals[p].Heating /= deltaT
		gals[p].OutflowRate /= deltaT

		if p != central {
			gals[central].TotalSatelliteBaryons += gals[p].StellarMass +
				gals[p].BlackHoleMass + gals[p].ColdGas + gals[p].HotGas
		}
	}
	return nil
}

// settleMergers advances every satellite's merger clock by one substep and
// resolves the ones that ran out, either merging them into their central
// or scattering them into the intracluster light.
func (e *Evolver) settleMergers(gals []galaxy.Galaxy, central int,
	root int32, halosnap, step int) error {

	for p := range gals {
		g := &gals[p]
		if (g.Type != galaxy.TypeSatellite && g.Type != galaxy.TypeOrphan) ||
			g.MergeType != galaxy.MergeNone {
			continue
		}
		if g.MergTime > 999.0 {
			return e.invariant(root, p, "satellite without a merger clock")
		}

		deltaT := e.tt.Age(g.SnapNum) - e.tt.Age(halosnap)
		g.MergTime -= deltaT / float64(galaxy.Steps)

		// only merge or disrupt once the subhalo has thinned below the
		// disruption threshold; baryon-free satellites never grow and
		// would otherwise hang around forever
		currentMvir := g.Mvir - g.DeltaMvir*
			(1.0-(float64(step)+1.0)/float64(galaxy.Steps))
		baryons := g.StellarMass + g.ColdGas
		if baryons > 0.0 && currentMvir/baryons > e.p.ThresholdSatDisruption {
			continue
		}

		target := central
		if g.Type == galaxy.TypeOrphan {
			target = g.CentralGal
		}
		if target >= 0 && gals[target].MergeType != galaxy.MergeNone {
			target = gals[target].CentralGal
		}
		if target < 0 || target == p {
			return e.invariant(root, p, "merger target does not exist")
		}

		// where the target will sit in the output, fixed up again when
		// the ledger is written
		g.MergeIntoID = e.ledger.Len() + target

		if g.MergTime > 0.0 {
			// subhalo disrupted before the merger clock ran out
			e.rec.DisruptToICS(gals, target, p)
		} else {
			dt := deltaT / float64(galaxy.Steps)
			time := e.tt.Age(g.SnapNum) - (float64(step)+0.5)*dt
			err := e.rec.HandleMerger(gals, p, target, central, time, dt, step)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// finalize retires the interval's population. Survivors move to the
// ledger stamped with the halo's snapshot; galaxies that merged this
// interval instead patch their previous ledger entry with the merger
// outcome, and every mergeIntoID is shifted down past the entries that
// will never reach the ledger.
func (e *Evolver) finalize(root int32) error {
	gals := e.arena.Slice()

	currenthalo := int32(-1)
	for p := range gals {
		g := &gals[p]

		if g.HaloNr != currenthalo {
			currenthalo = g.HaloNr
			e.aux.FirstGalaxy[currenthalo] = e.ledger.Len()
			e.aux.NGalaxies[currenthalo] = 0
		}

		// count earlier arena entries that merged and sit below this
		// galaxy's target in the ledger; they are skipped on output
		offset := 0
		for i := p - 1; i >= 0; i-- {
			if gals[i].MergeType != galaxy.MergeNone &&
				g.MergeIntoID > gals[i].MergeIntoID {
				offset++
			}
		}

		if g.MergeType != galaxy.MergeNone {
			// find this galaxy's entry from the previous snapshot and
			// record the merger there
			i := e.aux.FirstGalaxy[currenthalo] - 1
			for i >= 0 && e.ledger.At(i).GalaxyNr != g.GalaxyNr {
				i--
			}
			if i < 0 {
				return e.invariant(currenthalo, p,
					"merged galaxy has no prior ledger entry")
			}

			prev := e.ledger.At(i)
			prev.MergeType = g.MergeType
			prev.MergeIntoID = g.MergeIntoID - offset
			prev.MergeIntoSnapNum = int(e.f.Halos[currenthalo].SnapNum)
			continue
		}

		g.SnapNum = int(e.f.Halos[currenthalo].SnapNum)
		if _, err := e.ledger.Append(*g); err != nil {
			return err
		}
		e.aux.NGalaxies[currenthalo]++
	}
	return nil
}
