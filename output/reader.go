package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// ReadCatalogue reads one catalogue file back: the per-tree galaxy counts
// and every record, in file order. Used by the analysis scripts and the
// tests.
func ReadCatalogue(path string) (treeNgals []int32, recs []GalaxyRecord, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var nTrees, totGalaxies int32
	if err := binary.Read(br, end, &nTrees); err != nil {
		return nil, nil, fmt.Errorf("%s: reading header: %v", path, err)
	}
	if err := binary.Read(br, end, &totGalaxies); err != nil {
		return nil, nil, fmt.Errorf("%s: reading header: %v", path, err)
	}
	if nTrees < 0 || totGalaxies < 0 {
		return nil, nil, fmt.Errorf(
			"%s: corrupt header: %d trees, %d galaxies",
			path, nTrees, totGalaxies,
		)
	}

	treeNgals = make([]int32, nTrees)
	if err := binary.Read(br, end, treeNgals); err != nil {
		return nil, nil, fmt.Errorf("%s: reading tree counts: %v", path, err)
	}

	recs = make([]GalaxyRecord, totGalaxies)
	if err := binary.Read(br, end, recs); err != nil {
		return nil, nil, fmt.Errorf("%s: reading records: %v", path, err)
	}
	return treeNgals, recs, nil
}
