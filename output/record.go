package output

import (
	"math"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/model"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
)

// GalaxyRecord is one catalogue row, exactly as stored on disk in little
// endian order. Masses are 10^10 Msun/h, SFRs Msun/yr, cooling and heating
// log10 erg/s, times Myr.
type GalaxyRecord struct {
	SnapNum             int32
	Type                int32
	GalaxyIndex         int64
	CentralGalaxyIndex  int64
	HaloIndex           int32
	TreeIndex           int32
	SimulationHaloIndex int64
	MergeType           int32
	MergeIntoID         int32
	MergeIntoSnapNum    int32
	DT                  float32
	Pos                 [3]float32
	Vel                 [3]float32
	Spin                [3]float32
	Len                 int32
	Mvir                float32
	CentralMvir         float32
	Rvir                float32
	Vvir                float32
	Vmax                float32
	VelDisp             float32

	ColdGas       float32
	StellarMass   float32
	BulgeMass     float32
	HotGas        float32
	EjectedMass   float32
	BlackHoleMass float32
	ICS           float32

	MetalsColdGas     float32
	MetalsStellarMass float32
	MetalsBulgeMass   float32
	MetalsHotGas      float32
	MetalsEjectedMass float32
	MetalsICS         float32

	SfrDisk   float32
	SfrBulge  float32
	SfrDiskZ  float32
	SfrBulgeZ float32

	DiskScaleRadius           float32
	Cooling                   float32
	Heating                   float32
	QuasarModeBHaccretionMass float32
	TimeOfLastMajorMerger     float32
	TimeOfLastMinorMerger     float32
	OutflowRate               float32

	InfallMvir float32
	InfallVvir float32
	InfallVmax float32
}

// newRecord converts a finished ledger galaxy into its catalogue row.
// Rvir and Vvir are recomputed from the halo the galaxy sits in, since the
// working values only ever grow.
func newRecord(p *sim.Params, tt *sim.TimeTable, f *tree.Forest,
	aux *tree.AuxState, led *galaxy.Ledger, g *galaxy.Galaxy,
	manyFiles bool) (GalaxyRecord, error) {

	h := &f.Halos[g.HaloNr]
	root := h.FirstHaloInFOF

	idx, err := galaxy.EncodeGlobalIndex(g.GalaxyNr, f.Tree, f.File, manyFiles)
	if err != nil {
		return GalaxyRecord{}, err
	}
	centralNr := led.At(aux.FirstGalaxy[root]).GalaxyNr
	centralIdx, err := galaxy.EncodeGlobalIndex(centralNr, f.Tree, f.File, manyFiles)
	if err != nil {
		return GalaxyRecord{}, err
	}

	simHaloIdx := h.MostBoundID
	if simHaloIdx < 0 {
		simHaloIdx = -simHaloIdx
	}

	rec := GalaxyRecord{
		SnapNum:             int32(g.SnapNum),
		Type:                int32(g.Type),
		GalaxyIndex:         idx,
		CentralGalaxyIndex:  centralIdx,
		HaloIndex:           g.HaloNr,
		TreeIndex:           int32(f.Tree),
		SimulationHaloIndex: simHaloIdx,
		MergeType:           int32(g.MergeType),
		MergeIntoID:         int32(g.MergeIntoID),
		MergeIntoSnapNum:    int32(g.MergeIntoSnapNum),
		DT:                  float32(g.DT * p.UnitTimeInS / sim.SecPerMegayear),
		Spin:                h.Spin,
		Len:                 g.Len,
		Mvir:                float32(g.Mvir),
		CentralMvir:         float32(model.VirialMass(f, root, p)),
		Rvir:                float32(model.VirialRadius(f, g.HaloNr, p, tt)),
		Vvir:                float32(model.VirialVelocity(f, g.HaloNr, p, tt)),
		Vmax:                float32(g.Vmax),
		VelDisp:             h.VelDisp,

		ColdGas:       float32(g.ColdGas),
		StellarMass:   float32(g.StellarMass),
		BulgeMass:     float32(g.BulgeMass),
		HotGas:        float32(g.HotGas),
		EjectedMass:   float32(g.EjectedMass),
		BlackHoleMass: float32(g.BlackHoleMass),
		ICS:           float32(g.ICS),

		MetalsColdGas:     float32(g.MetalsColdGas),
		MetalsStellarMass: float32(g.MetalsStellarMass),
		MetalsBulgeMass:   float32(g.MetalsBulgeMass),
		MetalsHotGas:      float32(g.MetalsHotGas),
		MetalsEjectedMass: float32(g.MetalsEjectedMass),
		MetalsICS:         float32(g.MetalsICS),

		DiskScaleRadius:           float32(g.DiskScaleRadius),
		QuasarModeBHaccretionMass: float32(g.QuasarModeBHaccretionMass),
		TimeOfLastMajorMerger:     float32(g.TimeOfLastMajorMerger * p.UnitTimeInMegayears),
		TimeOfLastMinorMerger:     float32(g.TimeOfLastMinorMerger * p.UnitTimeInMegayears),
		OutflowRate: float32(g.OutflowRate *
			p.UnitMassInG / p.UnitTimeInS * sim.SecPerYear / sim.SolarMass),
	}

	for j := 0; j < 3; j++ {
		rec.Pos[j] = float32(g.Pos[j])
		rec.Vel[j] = float32(g.Vel[j])
	}

	// SFRs in Msun/yr averaged over the substeps
	sfrUnit := p.UnitMassInG / p.UnitTimeInS * sim.SecPerYear / sim.SolarMass /
		float64(galaxy.Steps)
	for step := 0; step < galaxy.Steps; step++ {
		rec.SfrDisk += float32(g.SfrDisk[step] * sfrUnit)
		rec.SfrBulge += float32(g.SfrBulge[step] * sfrUnit)
		if g.SfrDiskColdGas[step] > 0.0 {
			rec.SfrDiskZ += float32(g.SfrDiskColdGasMetals[step] /
				g.SfrDiskColdGas[step] / float64(galaxy.Steps))
		}
		if g.SfrBulgeColdGas[step] > 0.0 {
			rec.SfrBulgeZ += float32(g.SfrBulgeColdGasMetals[step] /
				g.SfrBulgeColdGas[step] / float64(galaxy.Steps))
		}
	}

	if g.Cooling > 0.0 {
		rec.Cooling = float32(math.Log10(
			g.Cooling * p.UnitEnergyInCgs / p.UnitTimeInS))
	}
	if g.Heating > 0.0 {
		rec.Heating = float32(math.Log10(
			g.Heating * p.UnitEnergyInCgs / p.UnitTimeInS))
	}

	// centrals never fell into anything
	if g.Type != galaxy.TypeCentral {
		rec.InfallMvir = float32(g.InfallMvir)
		rec.InfallVvir = float32(g.InfallVvir)
		rec.InfallVmax = float32(g.InfallVmax)
	}

	return rec, nil
}
