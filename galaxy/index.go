package galaxy

import "fmt"

// Global galaxy index packing. A catalogue-wide unique ID is built from the
// galaxy's serial number within its tree, the tree's number within its
// file, and the file number. Runs with 10000 or more tree files trade a
// decade of file headroom for one of tree headroom.
const (
	treeMulFac     = int64(1000000000)
	fileMulFac     = int64(1000000000000000)
	fileMulFacMany = fileMulFac / 10
)

func fileMul(manyFiles bool) int64 {
	if manyFiles {
		return fileMulFacMany
	}
	return fileMulFac
}

// EncodeGlobalIndex packs (galaxyNr, tree, file) into a single int64.
// manyFiles selects the wide-file-range packing and must match the decode
// side. Components too large to survive a round trip are an error.
func EncodeGlobalIndex(galaxyNr, tree, file int, manyFiles bool) (int64, error) {
	fm := fileMul(manyFiles)
	idx := int64(galaxyNr) + treeMulFac*int64(tree) + fm*int64(file)

	gn, tr, fl := DecodeGlobalIndex(idx, manyFiles)
	if gn != galaxyNr || tr != tree || fl != file {
		return 0, fmt.Errorf(
			"galaxy index overflow: galaxy %d, tree %d, file %d",
			galaxyNr, tree, file,
		)
	}
	return idx, nil
}

// DecodeGlobalIndex unpacks an index built by EncodeGlobalIndex.
func DecodeGlobalIndex(idx int64, manyFiles bool) (galaxyNr, tree, file int) {
	fm := fileMul(manyFiles)
	file = int(idx / fm)
	tree = int((idx % fm) / treeMulFac)
	galaxyNr = int(idx % treeMulFac)
	return galaxyNr, tree, file
}
