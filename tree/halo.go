package tree

// NilIndex marks the end of every intra-tree link chain.
const NilIndex = -1

// Halo is one subhalo record of an LHalo merger tree, exactly as stored on
// disk. All link fields are indices into the same tree's halo array, or
// NilIndex.
type Halo struct {
	Descendant        int32
	FirstProgenitor   int32
	NextProgenitor    int32
	FirstHaloInFOF    int32
	NextHaloInFOF     int32
	Len               int32
	MMean200          float32
	Mvir              float32 // M200c
	MTopHat           float32
	Pos               [3]float32
	Vel               [3]float32
	VelDisp           float32
	Vmax              float32
	Spin              [3]float32
	MostBoundID       int64
	SnapNum           int32
	FileNr            int32
	SubhaloIndex      int32
	SubHalfMass       float32
}

// HaloSize is the on-disk size of a Halo record in bytes.
const HaloSize = 4*5 + 4 + 4*3 + 4*3 + 4*3 + 4 + 4 + 4*3 + 8 + 4*3 + 4

// IsFOFRoot reports whether h is the first halo of its own FOF group.
func (h *Halo) IsFOFRoot(idx int32) bool {
	return h.FirstHaloInFOF == idx
}
