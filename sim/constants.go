package sim

// Physical constants in cgs.
const (
	Gravity        = 6.672e-8
	SolarMass      = 1.989e33
	Boltzmann      = 1.3806e-16
	ProtonMass     = 1.6726e-24
	CLight         = 2.9979e10
	CmPerMpc       = 3.085678e24
	SecPerMegayear = 3.155e13
	SecPerYear     = 3.155e7

	// Hubble constant for h = 1, in 1/s.
	HubbleCgs = 3.2407789e-18
)
