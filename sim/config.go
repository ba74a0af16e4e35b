package sim

import (
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"
)

const ExampleParameterFile = `[Sage]

#######################
# Required Parameters #
#######################

# Output directory and the base name of the galaxy catalogue files. One
# catalogue is written per output snapshot and per tree file, named
# <FileNameGalaxies>_z<redshift>_<filenr>.
OutputDir        = path/to/output/dir
FileNameGalaxies = model

# Directory containing the merger tree files, their base name, and the
# (inclusive) range of file numbers this run should process. Tree files are
# named <TreeName>.<filenr><TreeExtension>.
SimulationDir = path/to/trees/dir
TreeName      = trees_063
TreeExtension =
FirstFile     = 0
LastFile      = 7

# One expansion factor per line, one line per simulation snapshot.
FileWithSnapList = path/to/millennium.a_list
LastSnapshotNr   = 63

# Directory holding the metal-dependent cooling tables (the stripped
# Sutherland & Dopita .cie files).
CoolFuncDir = extra/CoolFunctions

# Cosmology and simulation particle mass (10^10 Msun/h).
Omega       = 0.25
OmegaLambda = 0.75
BaryonFrac  = 0.17
PartMass    = 0.0860657
HubbleH     = 0.73

#######################
# Optional Parameters #
#######################

# Snapshots to write catalogues for. Repeat the key for multiple snapshots;
# leave unset to write every snapshot.
# OutputSnap = 63
# OutputSnap = 40

# Redirect the log to a file instead of stderr.
# LogFile = sage.log

# Recipe toggles. AGNrecipeOn selects the radio-mode accretion model:
# 0 off, 1 empirical, 2 Bondi-Hoyle, 3 cold cloud.
SFprescription    = 0
AGNrecipeOn       = 2
SupernovaRecipeOn = 1
ReionizationOn    = 1
DiskInstabilityOn = 1

# Recipe parameters.
SfrEfficiency              = 0.05
FeedbackReheatingEpsilon   = 3.0
FeedbackEjectionEfficiency = 0.3
ReIncorporationFactor      = 0.15
RadioModeEfficiency        = 0.08
QuasarModeEfficiency       = 0.005
BlackHoleGrowthRate        = 0.015
ThreshMajorMerger          = 0.3
ThresholdSatDisruption     = 1.0
Yield                      = 0.025
RecycleFraction            = 0.43
FracZleaveDisk             = 0.0
ReionizationZ0             = 8.0
ReionizationZr             = 7.0
EnergySN                   = 1.0e51
EtaSN                      = 5.0e-3

# Unit system: length in cm (Mpc/h), mass in g (10^10 Msun/h), velocity in
# cm/s (km/s).
UnitLengthInCm         = 3.08568e24
UnitMassInG            = 1.989e43
UnitVelocityInCmPerS   = 100000`

// Params holds everything read from a parameter file plus the unit system
// derived from it. The derived fields are filled in by DeriveUnits and must
// not appear in the parameter file.
type Params struct {
	FirstFile int
	LastFile  int

	OutputDir        string
	FileNameGalaxies string
	SimulationDir    string
	TreeName         string
	TreeExtension    string
	FileWithSnapList string
	CoolFuncDir      string
	LogFile          string

	LastSnapshotNr int
	OutputSnap     []int

	// Cosmology.
	Omega       float64
	OmegaLambda float64
	BaryonFrac  float64
	PartMass    float64
	HubbleH     float64

	// Recipe toggles.
	SFprescription    int
	AGNrecipeOn       int
	SupernovaRecipeOn int
	ReionizationOn    int
	DiskInstabilityOn int

	// Recipe parameters.
	SfrEfficiency              float64
	FeedbackReheatingEpsilon   float64
	FeedbackEjectionEfficiency float64
	ReIncorporationFactor      float64
	RadioModeEfficiency        float64
	QuasarModeEfficiency       float64
	BlackHoleGrowthRate        float64
	ThreshMajorMerger          float64
	ThresholdSatDisruption     float64
	Yield                      float64
	RecycleFraction            float64
	FracZleaveDisk             float64
	ReionizationZ0             float64
	ReionizationZr             float64
	EnergySN                   float64
	EtaSN                      float64

	// Unit system.
	UnitLengthInCm       float64
	UnitMassInG          float64
	UnitVelocityInCmPerS float64

	// Derived quantities, set by DeriveUnits.
	UnitTimeInS          float64
	UnitTimeInMegayears  float64
	UnitDensityInCgs     float64
	UnitPressureInCgs    float64
	UnitCoolingRateInCgs float64
	UnitEnergyInCgs      float64
	G                    float64
	Hubble               float64
	RhoCrit              float64
	EnergySNcode         float64
	EtaSNcode            float64
	A0, Ar               float64
}

// Wrapper matches the [Sage] section of a parameter file.
type Wrapper struct {
	Sage Params
}

// DefaultWrapper returns a Wrapper whose parameters are the standard
// Millennium run values. Path-like parameters are left empty and must be
// supplied by the parameter file.
func DefaultWrapper() *Wrapper {
	return &Wrapper{Sage: Params{
		FirstFile: 0,
		LastFile:  0,

		FileNameGalaxies: "model",
		LastSnapshotNr:   63,

		Omega:       0.25,
		OmegaLambda: 0.75,
		BaryonFrac:  0.17,
		PartMass:    0.0860657,
		HubbleH:     0.73,

		SFprescription:    0,
		AGNrecipeOn:       2,
		SupernovaRecipeOn: 1,
		ReionizationOn:    1,
		DiskInstabilityOn: 1,

		SfrEfficiency:              0.05,
		FeedbackReheatingEpsilon:   3.0,
		FeedbackEjectionEfficiency: 0.3,
		ReIncorporationFactor:      0.15,
		RadioModeEfficiency:        0.08,
		QuasarModeEfficiency:       0.005,
		BlackHoleGrowthRate:        0.015,
		ThreshMajorMerger:          0.3,
		ThresholdSatDisruption:     1.0,
		Yield:                      0.025,
		RecycleFraction:            0.43,
		FracZleaveDisk:             0.0,
		ReionizationZ0:             8.0,
		ReionizationZr:             7.0,
		EnergySN:                   1.0e51,
		EtaSN:                      5.0e-3,

		UnitLengthInCm:       3.08568e24,
		UnitMassInG:          1.989e43,
		UnitVelocityInCmPerS: 100000,
	}}
}

// Load reads a parameter file on top of the defaults, validates it, and
// derives the unit system.
func Load(path string) (*Params, error) {
	wrap := DefaultWrapper()
	if err := gcfg.ReadFileInto(wrap, path); err != nil {
		return nil, err
	}

	p := &wrap.Sage
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.DeriveUnits()
	return p, nil
}

// Validate checks the parameters which have no sensible default.
func (p *Params) Validate() error {
	switch {
	case p.OutputDir == "":
		return fmt.Errorf("parameter 'OutputDir' is not set")
	case p.SimulationDir == "":
		return fmt.Errorf("parameter 'SimulationDir' is not set")
	case p.TreeName == "":
		return fmt.Errorf("parameter 'TreeName' is not set")
	case p.FileWithSnapList == "":
		return fmt.Errorf("parameter 'FileWithSnapList' is not set")
	case p.FirstFile < 0 || p.LastFile < p.FirstFile:
		return fmt.Errorf("invalid file range [%d, %d]",
			p.FirstFile, p.LastFile)
	case p.SFprescription != 0:
		return fmt.Errorf("unknown star formation prescription %d",
			p.SFprescription)
	case p.AGNrecipeOn < 0 || p.AGNrecipeOn > 3:
		return fmt.Errorf("unknown AGN recipe %d", p.AGNrecipeOn)
	}
	return nil
}

// DeriveUnits computes the internal unit system and the code-unit versions
// of the physical parameters. It must be called once before the parameters
// are used by any recipe.
func (p *Params) DeriveUnits() {
	p.UnitTimeInS = p.UnitLengthInCm / p.UnitVelocityInCmPerS
	p.UnitTimeInMegayears = p.UnitTimeInS / SecPerMegayear
	p.G = Gravity / math.Pow(p.UnitLengthInCm, 3) *
		p.UnitMassInG * p.UnitTimeInS * p.UnitTimeInS
	p.UnitDensityInCgs = p.UnitMassInG / math.Pow(p.UnitLengthInCm, 3)
	p.UnitPressureInCgs = p.UnitMassInG / p.UnitLengthInCm /
		(p.UnitTimeInS * p.UnitTimeInS)
	p.UnitCoolingRateInCgs = p.UnitPressureInCgs / p.UnitTimeInS
	p.UnitEnergyInCgs = p.UnitMassInG *
		math.Pow(p.UnitLengthInCm, 2) / math.Pow(p.UnitTimeInS, 2)

	p.EnergySNcode = p.EnergySN / p.UnitEnergyInCgs * p.HubbleH
	p.EtaSNcode = p.EtaSN * (p.UnitMassInG / SolarMass) / p.HubbleH

	p.Hubble = HubbleCgs * p.UnitTimeInS
	p.RhoCrit = 3 * p.Hubble * p.Hubble / (8 * math.Pi * p.G)

	p.A0 = 1.0 / (1.0 + p.ReionizationZ0)
	p.Ar = 1.0 / (1.0 + p.ReionizationZr)
}
