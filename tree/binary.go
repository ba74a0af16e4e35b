package tree

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

var end = binary.LittleEndian

// File is an open LHalo merger tree file. The layout is a 32-bit tree
// count, a 32-bit total halo count, one 32-bit halo count per tree, and
// then the concatenated halo records of every tree.
type File struct {
	f      *os.File
	FileNr int
	NTrees int
	NHalos int
	// halos per tree, in file order
	TreeNHalos []int32
	offsets    []int64
}

// Open opens an LHalo tree file and reads its header. fileNr is the file's
// number within the simulation's file set and is stamped onto the forests
// it returns.
func Open(path string, fileNr int) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	var nTrees, nHalos int32
	if err := binary.Read(br, end, &nTrees); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: reading tree count: %v", path, err)
	}
	if err := binary.Read(br, end, &nHalos); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: reading halo count: %v", path, err)
	}
	if nTrees < 0 || nHalos < 0 {
		f.Close()
		return nil, fmt.Errorf(
			"%s: corrupt header: %d trees, %d halos", path, nTrees, nHalos,
		)
	}

	counts := make([]int32, nTrees)
	if err := binary.Read(br, end, counts); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: reading tree sizes: %v", path, err)
	}

	sum := int64(0)
	offsets := make([]int64, nTrees)
	headerSize := int64(4 * (2 + int(nTrees)))
	for i, c := range counts {
		if c < 0 {
			f.Close()
			return nil, fmt.Errorf("%s: tree %d has %d halos", path, i, c)
		}
		offsets[i] = headerSize + sum*HaloSize
		sum += int64(c)
	}
	if sum != int64(nHalos) {
		f.Close()
		return nil, fmt.Errorf(
			"%s: tree sizes sum to %d halos, header says %d",
			path, sum, nHalos,
		)
	}

	return &File{
		f: f, FileNr: fileNr,
		NTrees: int(nTrees), NHalos: int(nHalos),
		TreeNHalos: counts, offsets: offsets,
	}, nil
}

// ReadTree reads tree i of the file into a fresh Forest.
func (tf *File) ReadTree(i int) (*Forest, error) {
	if i < 0 || i >= tf.NTrees {
		return nil, fmt.Errorf(
			"tree index %d out of range for file with %d trees",
			i, tf.NTrees,
		)
	}
	if _, err := tf.f.Seek(tf.offsets[i], 0); err != nil {
		return nil, err
	}

	halos := make([]Halo, tf.TreeNHalos[i])
	br := bufio.NewReader(tf.f)
	if err := binary.Read(br, end, halos); err != nil {
		return nil, fmt.Errorf(
			"reading tree %d of file %d: %v", i, tf.FileNr, err,
		)
	}
	return &Forest{File: tf.FileNr, Tree: i, Halos: halos}, nil
}

func (tf *File) Close() error { return tf.f.Close() }
