package tree

// GroupFlag is the tri-state group-processing marker of a halo.
type GroupFlag int8

const (
	// GroupUnvisited means no galaxy work has touched the halo's group yet.
	GroupUnvisited GroupFlag = iota
	// GroupScheduled means the group's halos have been joined but the group
	// has not been evolved.
	GroupScheduled
	// GroupDone means the group has been fully evolved.
	GroupDone
)

// Forest is one merger tree of one tree file.
type Forest struct {
	File, Tree int
	Halos      []Halo
}

// AuxState is the per-halo mutable bookkeeping of a single pass over a
// Forest. The Forest itself is never written to.
type AuxState struct {
	// Done marks halos whose progenitor branches have been walked.
	Done []bool
	// Group is the tri-state evolution marker, indexed by halo.
	Group []GroupFlag
	// NGalaxies counts the galaxies attached to each halo after the join.
	NGalaxies []int
	// FirstGalaxy is the arena index of the first galaxy attached to each
	// halo, or -1.
	FirstGalaxy []int
}

// NewAuxState returns zeroed bookkeeping for f.
func NewAuxState(f *Forest) *AuxState {
	n := len(f.Halos)
	aux := &AuxState{
		Done:        make([]bool, n),
		Group:       make([]GroupFlag, n),
		NGalaxies:   make([]int, n),
		FirstGalaxy: make([]int, n),
	}
	for i := range aux.FirstGalaxy {
		aux.FirstGalaxy[i] = -1
	}
	return aux
}

func (f *Forest) badLink(halo int32, field string, val int32, reason string,
) *GraphConsistencyError {
	return &GraphConsistencyError{
		File: f.File, Tree: f.Tree,
		Halo: halo, Field: field, Value: val, Reason: reason,
	}
}

// Validate checks every link of every halo before any galaxy work touches
// the tree. Out-of-range indices, FOF chains that do not start at a group
// root, and progenitors that do not strictly precede their descendant in
// snapshot order are all reported. The snapshot-ordering check also rules
// out progenitor cycles, so the recursive walk needs no cycle guard.
func (f *Forest) Validate() error {
	n := int32(len(f.Halos))

	inRange := func(v int32) bool { return v >= NilIndex && v < n }

	for i := int32(0); i < n; i++ {
		h := &f.Halos[i]

		for _, l := range []struct {
			field string
			val   int32
		}{
			{"Descendant", h.Descendant},
			{"FirstProgenitor", h.FirstProgenitor},
			{"NextProgenitor", h.NextProgenitor},
			{"FirstHaloInFOFgroup", h.FirstHaloInFOF},
			{"NextHaloInFOFgroup", h.NextHaloInFOF},
		} {
			if !inRange(l.val) {
				return f.badLink(i, l.field, l.val, "index out of range")
			}
		}

		if h.FirstHaloInFOF == NilIndex {
			return f.badLink(i, "FirstHaloInFOFgroup", NilIndex,
				"halo belongs to no FOF group")
		}
		root := &f.Halos[h.FirstHaloInFOF]
		if !root.IsFOFRoot(h.FirstHaloInFOF) {
			return f.badLink(i, "FirstHaloInFOFgroup", h.FirstHaloInFOF,
				"group pointer does not reach a group root")
		}
		if root.SnapNum != h.SnapNum {
			return f.badLink(i, "FirstHaloInFOFgroup", h.FirstHaloInFOF,
				"FOF group spans snapshots")
		}

		if d := h.Descendant; d != NilIndex {
			if f.Halos[d].SnapNum <= h.SnapNum {
				return f.badLink(i, "Descendant", d,
					"descendant does not follow progenitor")
			}
		}
	}

	// Snapshot ordering says nothing about the same-snapshot sibling
	// chains, so those get an explicit bounded walk.
	for i := int32(0); i < n; i++ {
		h := &f.Halos[i]
		if !h.IsFOFRoot(i) {
			continue
		}
		steps := int32(0)
		for m := i; m != NilIndex; m = f.Halos[m].NextHaloInFOF {
			if f.Halos[m].FirstHaloInFOF != i {
				return f.badLink(m, "FirstHaloInFOFgroup",
					f.Halos[m].FirstHaloInFOF,
					"group member points at a different root")
			}
			if steps++; steps > n {
				return f.badLink(i, "NextHaloInFOFgroup", i,
					"cycle in FOF group chain")
			}
		}
	}
	// Every member of a halo's progenitor chain must strictly precede the
	// halo in snapshot order. Chain members need not be ordered among
	// themselves; LHalo files order them by mass.
	for i := int32(0); i < n; i++ {
		steps := int32(0)
		field := "FirstProgenitor"
		for p := f.Halos[i].FirstProgenitor; p != NilIndex; p = f.Halos[p].NextProgenitor {
			if f.Halos[p].SnapNum >= f.Halos[i].SnapNum {
				return f.badLink(i, field, p,
					"progenitor does not precede descendant")
			}
			if steps++; steps > n {
				return f.badLink(i, "NextProgenitor", i,
					"cycle in progenitor chain")
			}
			field = "NextProgenitor"
		}
	}
	return nil
}
