package output

import (
	"path/filepath"
	"testing"

	"github.com/darrencroton/sage-sub000/galaxy"
	"github.com/darrencroton/sage-sub000/model"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
	"github.com/stretchr/testify/assert"
)

// mergerForest is two FOF groups at z = 1 falling into one halo at z = 0.
// The small group's galaxy merges into the survivor during the second
// interval, so the catalogue exercises both live rows and merger stamps.
func mergerForest() *tree.Forest {
	return &tree.Forest{
		File: 0, Tree: 0,
		Halos: []tree.Halo{
			{
				Descendant: 2, FirstProgenitor: tree.NilIndex,
				NextProgenitor: 1,
				FirstHaloInFOF: 0, NextHaloInFOF: tree.NilIndex,
				Len: 1000, Mvir: 10.0, Vmax: 180,
				Pos:     [3]float32{10, 20, 30},
				Spin:    [3]float32{200, 0, 0},
				SnapNum: 0,
			},
			{
				Descendant: 2, FirstProgenitor: tree.NilIndex,
				NextProgenitor: tree.NilIndex,
				FirstHaloInFOF: 1, NextHaloInFOF: tree.NilIndex,
				Len: 100, Mvir: 1.0, Vmax: 90,
				Spin:    [3]float32{40, 0, 0},
				SnapNum: 0,
			},
			{
				Descendant: tree.NilIndex, FirstProgenitor: 0,
				NextProgenitor: tree.NilIndex,
				FirstHaloInFOF: 2, NextHaloInFOF: tree.NilIndex,
				Len: 1100, Mvir: 11.0, Vmax: 190,
				Pos:     [3]float32{11, 21, 31},
				Spin:    [3]float32{220, 0, 0},
				SnapNum: 1,
			},
		},
	}
}

func flatCoolingTables(t *testing.T) *model.CoolingTables {
	// eight metallicity tables of 91 temperature rows each
	rows := make([][]float64, 8)
	for i := range rows {
		rows[i] = make([]float64, 91)
		for j := range rows[i] {
			rows[i][j] = -22.0
		}
	}
	ct, err := model.NewCoolingTables(rows)
	assert.NoError(t, err)
	return ct
}

func writeTestCatalogue(t *testing.T) (*sim.Params, *sim.TimeTable) {
	p := &sim.DefaultWrapper().Sage
	p.OutputDir = t.TempDir()
	p.DeriveUnits()
	tt := sim.NewTimeTable(p, []float64{0.5, 1.0})

	e := model.NewEvolver(p, tt, model.NewPhysics(p, flatCoolingTables(t)))
	f := mergerForest()
	assert.NoError(t, e.ProcessTree(f))

	c, err := NewCatalogue(p, tt, 0, 1, []int{0, 1})
	assert.NoError(t, err)
	assert.NoError(t, c.WriteTree(f, e.Aux(), e.Ledger()))
	assert.NoError(t, c.Finalize())
	return p, tt
}

func TestCatalogueRoundTrip(t *testing.T) {
	p, tt := writeTestCatalogue(t)

	// z = 1 file: both progenitor galaxies
	treeNgals, recs, err := ReadCatalogue(FileName(p, tt, 0, 0))
	assert.NoError(t, err)
	assert.Equal(t, []int32{2}, treeNgals)
	assert.Equal(t, 2, len(recs))

	assert.Equal(t, int32(0), recs[0].SnapNum)
	assert.Equal(t, int32(0), recs[0].Type)
	assert.Equal(t, int64(0), recs[0].GalaxyIndex)
	assert.Equal(t, int32(galaxy.MergeNone), recs[0].MergeType)
	assert.Equal(t, float32(10.0), recs[0].Mvir)
	assert.Equal(t, float32(10), recs[0].Pos[0])

	// the small galaxy carries the merger stamp, pointing at the
	// survivor's row in the z = 0 file
	assert.Equal(t, int64(1), recs[1].GalaxyIndex)
	assert.NotEqual(t, int32(galaxy.MergeNone), recs[1].MergeType)
	assert.Equal(t, int32(0), recs[1].MergeIntoID)
	assert.Equal(t, int32(1), recs[1].MergeIntoSnapNum)

	// z = 0 file: the survivor alone
	treeNgals, recs, err = ReadCatalogue(FileName(p, tt, 1, 0))
	assert.NoError(t, err)
	assert.Equal(t, []int32{1}, treeNgals)
	assert.Equal(t, 1, len(recs))

	assert.Equal(t, int32(1), recs[0].SnapNum)
	assert.Equal(t, int32(0), recs[0].Type)
	assert.Equal(t, int64(0), recs[0].GalaxyIndex)
	assert.Equal(t, recs[0].GalaxyIndex, recs[0].CentralGalaxyIndex)
	assert.Equal(t, int32(-1), recs[0].MergeIntoID)
	assert.Equal(t, float32(11.0), recs[0].Mvir)
	assert.True(t, recs[0].Rvir > 0)
	assert.True(t, recs[0].Vvir > 0)
	assert.True(t, recs[0].DT > 0, "DT comes out in Myr")
}

func TestFileName(t *testing.T) {
	p := &sim.DefaultWrapper().Sage
	p.OutputDir = "/tmp/out"
	p.DeriveUnits()
	tt := sim.NewTimeTable(p, []float64{0.5, 1.0})

	assert.Equal(t, filepath.Join("/tmp/out", "model_z1.000_0"),
		FileName(p, tt, 0, 0))
	assert.Equal(t, filepath.Join("/tmp/out", "model_z0.000_7"),
		FileName(p, tt, 1, 7))
}
