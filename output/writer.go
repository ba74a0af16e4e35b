package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
)

var end = binary.LittleEndian

// FileName returns the catalogue path for one output snapshot of one tree
// file.
func FileName(p *sim.Params, tt *sim.TimeTable, snap, fileNr int) string {
	return filepath.Join(p.OutputDir, fmt.Sprintf(
		"%s_z%1.3f_%d", p.FileNameGalaxies, tt.Redshift[snap], fileNr,
	))
}

// Catalogue writes the galaxy catalogues of one tree file, one output file
// per requested snapshot. Each file starts with a header of 32-bit counts
// (trees, galaxies, then galaxies per tree) that is written as zeros at
// open and filled in by Finalize.
type Catalogue struct {
	p  *sim.Params
	tt *sim.TimeTable

	fileNr int
	nTrees int
	snaps  []int

	files []*os.File
	bufs  []*bufio.Writer

	totGalaxies []int32
	treeNgals   [][]int32

	manyFiles bool
}

// NewCatalogue opens the output files of one tree file and reserves their
// headers.
func NewCatalogue(p *sim.Params, tt *sim.TimeTable, fileNr, nTrees int,
	snaps []int) (*Catalogue, error) {

	c := &Catalogue{
		p: p, tt: tt,
		fileNr: fileNr, nTrees: nTrees, snaps: snaps,
		files: make([]*os.File, len(snaps)),
		bufs:  make([]*bufio.Writer, len(snaps)),

		totGalaxies: make([]int32, len(snaps)),
		treeNgals:   make([][]int32, len(snaps)),

		manyFiles: p.LastFile >= 10000,
	}

	header := make([]int32, 2+nTrees)
	for n, snap := range snaps {
		c.treeNgals[n] = make([]int32, nTrees)

		f, err := os.Create(FileName(p, tt, snap, fileNr))
		if err != nil {
			c.Close()
			return nil, err
		}
		c.files[n] = f
		c.bufs[n] = bufio.NewWriter(f)
		if err := binary.Write(c.bufs[n], end, header); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// WriteTree appends one finished tree's ledger to every output snapshot's
// file. Ledger-wide merger targets are remapped to each target's row
// within its own snapshot's file first; targets whose snapshot is not
// written come out as -1.
func (c *Catalogue) WriteTree(f *tree.Forest, aux *tree.AuxState,
	led *galaxy.Ledger) error {

	gals := led.Slice()

	order := make([]int, len(gals))
	for i := range order {
		order[i] = -1
	}
	for _, snap := range c.snaps {
		k := 0
		for i := range gals {
			if gals[i].SnapNum == snap {
				order[i] = k
				k++
			}
		}
	}

	for i := range gals {
		if gals[i].MergeIntoID > -1 {
			gals[i].MergeIntoID = order[gals[i].MergeIntoID]
		}
	}

	for n, snap := range c.snaps {
		for i := range gals {
			if gals[i].SnapNum != snap {
				continue
			}
			rec, err := newRecord(c.p, c.tt, f, aux, led, &gals[i], c.manyFiles)
			if err != nil {
				return err
			}
			if err := binary.Write(c.bufs[n], end, &rec); err != nil {
				return err
			}
			c.totGalaxies[n]++
			c.treeNgals[n][f.Tree]++
		}
	}
	return nil
}

// Finalize rewrites every header with the real counts and closes the
// files.
func (c *Catalogue) Finalize() error {
	for n := range c.files {
		if err := c.bufs[n].Flush(); err != nil {
			return err
		}
		if _, err := c.files[n].Seek(0, 0); err != nil {
			return err
		}

		header := make([]int32, 0, 2+c.nTrees)
		header = append(header, int32(c.nTrees), c.totGalaxies[n])
		header = append(header, c.treeNgals[n]...)
		if err := binary.Write(c.files[n], end, header); err != nil {
			return err
		}
		if err := c.files[n].Close(); err != nil {
			return err
		}
		c.files[n] = nil
	}
	return nil
}

// Close abandons the catalogue without finalizing the headers.
func (c *Catalogue) Close() {
	for _, f := range c.files {
		if f != nil {
			f.Close()
		}
	}
}
