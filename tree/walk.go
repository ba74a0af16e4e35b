package tree

// Walk visits every halo of f in causal order and fires evolve exactly once
// per FOF group, after all progenitors of all of the group's members have
// themselves been visited. Evolution state lives in aux; the forest is
// read-only. A non-nil error from evolve aborts the walk.
func Walk(f *Forest, aux *AuxState, evolve func(fofRoot int32) error) error {
	for i := int32(0); i < int32(len(f.Halos)); i++ {
		if !aux.Done[i] {
			if err := walk(f, aux, i, evolve); err != nil {
				return err
			}
		}
	}
	return nil
}

func walk(f *Forest, aux *AuxState, halonr int32,
	evolve func(fofRoot int32) error) error {

	aux.Done[halonr] = true
	for p := f.Halos[halonr].FirstProgenitor; p != NilIndex; p = f.Halos[p].NextProgenitor {
		if !aux.Done[p] {
			if err := walk(f, aux, p, evolve); err != nil {
				return err
			}
		}
	}

	// First visit by any member schedules the whole group: the group can
	// only be evolved once every member's progenitor branch is complete.
	root := f.Halos[halonr].FirstHaloInFOF
	if aux.Group[root] == GroupUnvisited {
		aux.Group[root] = GroupScheduled
		for m := root; m != NilIndex; m = f.Halos[m].NextHaloInFOF {
			for p := f.Halos[m].FirstProgenitor; p != NilIndex; p = f.Halos[p].NextProgenitor {
				if !aux.Done[p] {
					if err := walk(f, aux, p, evolve); err != nil {
						return err
					}
				}
			}
		}
	}

	if aux.Group[root] == GroupScheduled {
		aux.Group[root] = GroupDone
		return evolve(root)
	}
	return nil
}
