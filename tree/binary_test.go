package tree

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTreeFile(t *testing.T, trees [][]Halo) string {
	path := filepath.Join(t.TempDir(), "trees_063.0")
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()

	bw := bufio.NewWriter(f)
	total := int32(0)
	counts := make([]int32, len(trees))
	for i, halos := range trees {
		counts[i] = int32(len(halos))
		total += counts[i]
	}

	assert.NoError(t, binary.Write(bw, end, int32(len(trees))))
	assert.NoError(t, binary.Write(bw, end, total))
	assert.NoError(t, binary.Write(bw, end, counts))
	for _, halos := range trees {
		assert.NoError(t, binary.Write(bw, end, halos))
	}
	assert.NoError(t, bw.Flush())
	return path
}

func TestOpenReadTree(t *testing.T) {
	t0 := chain().Halos
	t1 := []Halo{{
		Descendant: NilIndex, FirstProgenitor: NilIndex,
		NextProgenitor: NilIndex,
		FirstHaloInFOF: 0, NextHaloInFOF: NilIndex,
		Len: 42, Mvir: 0.42, SnapNum: 1,
		MostBoundID: 1234567890123,
	}}
	path := writeTreeFile(t, [][]Halo{t0, t1})

	tf, err := Open(path, 3)
	assert.NoError(t, err)
	defer tf.Close()

	assert.Equal(t, 2, tf.NTrees)
	assert.Equal(t, 3, tf.NHalos)
	assert.Equal(t, []int32{2, 1}, tf.TreeNHalos)

	// random access works out of order
	f1, err := tf.ReadTree(1)
	assert.NoError(t, err)
	assert.Equal(t, 3, f1.File)
	assert.Equal(t, 1, f1.Tree)
	assert.Equal(t, t1, f1.Halos)

	f0, err := tf.ReadTree(0)
	assert.NoError(t, err)
	assert.Equal(t, t0, f0.Halos)

	_, err = tf.ReadTree(2)
	assert.Error(t, err)
}

func TestOpenRejectsCorruptHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trees_063.0")
	f, err := os.Create(path)
	assert.NoError(t, err)
	// header claims one tree of two halos but the size list says three
	assert.NoError(t, binary.Write(f, end, []int32{1, 2, 3}))
	assert.NoError(t, f.Close())

	_, err = Open(path, 0)
	assert.Error(t, err)
}

func TestHaloSizeMatchesEncoding(t *testing.T) {
	assert.Equal(t, HaloSize, binary.Size(Halo{}))
}
