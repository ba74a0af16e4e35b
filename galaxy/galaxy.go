package galaxy

// Steps is the number of integration substeps between adjacent snapshots.
const Steps = 10

// MergTimeUnset is the sentinel carried by galaxies with no merger clock
// running. Tests against it use > 999.0 so that float32 round trips through
// old catalogue files stay on the right side.
const MergTimeUnset = 999.9

// Galaxy types.
const (
	TypeCentral   = 0
	TypeSatellite = 1
	TypeOrphan    = 2
	TypeDead      = 3
)

// Merger outcome codes, stored on the absorbed galaxy.
const (
	MergeNone = iota
	MergeMinor
	MergeMajor
	MergeDiskInstability
	MergeDisruptToICS
)

// Galaxy is one galaxy of the working population. Masses are 10^10 Msun/h,
// lengths Mpc/h, velocities km/s, times code units.
type Galaxy struct {
	Type     int
	GalaxyNr int
	HaloNr   int32
	SnapNum  int

	MostBoundID int64

	// arena index of the group's central galaxy
	CentralGal int

	MergeType        int
	MergeIntoID      int
	MergeIntoSnapNum int

	Pos [3]float64
	Vel [3]float64
	Len int32

	Mvir        float64
	DeltaMvir   float64
	CentralMvir float64
	Rvir        float64
	Vvir        float64
	Vmax        float64
	VelDisp     float64

	ColdGas       float64
	StellarMass   float64
	BulgeMass     float64
	HotGas        float64
	EjectedMass   float64
	BlackHoleMass float64
	ICS           float64

	// sum over the group's satellites, kept on the central
	TotalSatelliteBaryons float64

	MetalsColdGas     float64
	MetalsStellarMass float64
	MetalsBulgeMass   float64
	MetalsHotGas      float64
	MetalsEjectedMass float64
	MetalsICS         float64

	SfrDisk               [Steps]float64
	SfrBulge              [Steps]float64
	SfrDiskColdGas        [Steps]float64
	SfrDiskColdGasMetals  [Steps]float64
	SfrBulgeColdGas       [Steps]float64
	SfrBulgeColdGasMetals [Steps]float64

	DiskScaleRadius float64
	Cooling         float64
	Heating         float64
	OutflowRate     float64

	// radius out to which past radio-mode heating has pushed the
	// cooling flow; never shrinks
	RHeat float64

	QuasarModeBHaccretionMass float64
	TimeOfLastMajorMerger     float64
	TimeOfLastMinorMerger     float64

	// properties frozen at infall, for satellites
	InfallMvir float64
	InfallVvir float64
	InfallVmax float64

	// remaining dynamical-friction time, or MergTimeUnset
	MergTime float64

	// substep width, set once per snapshot interval
	DT float64
}

// ResetScratch zeroes the per-interval accumulators. It is called on every
// galaxy copied forward into a new snapshot interval.
func (g *Galaxy) ResetScratch() {
	g.Cooling = 0
	g.Heating = 0
	g.OutflowRate = 0
	g.QuasarModeBHaccretionMass = 0
	for i := 0; i < Steps; i++ {
		g.SfrDisk[i] = 0
		g.SfrBulge[i] = 0
		g.SfrDiskColdGas[i] = 0
		g.SfrDiskColdGasMetals[i] = 0
		g.SfrBulgeColdGas[i] = 0
		g.SfrBulgeColdGasMetals[i] = 0
	}
}
