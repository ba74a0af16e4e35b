package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testParams() *Params {
	p := &DefaultWrapper().Sage
	p.DeriveUnits()
	return p
}

func TestNewTimeTable(t *testing.T) {
	p := testParams()
	tt := NewTimeTable(p, []float64{0.25, 0.5, 1.0})

	assert.InDelta(t, 3.0, tt.Redshift[0], 1e-12)
	assert.InDelta(t, 1.0, tt.Redshift[1], 1e-12)
	assert.InDelta(t, 0.0, tt.Redshift[2], 1e-12)

	// lookback times shrink towards the present
	assert.True(t, tt.Age(0) > tt.Age(1))
	assert.True(t, tt.Age(1) > tt.Age(2))
	assert.InDelta(t, 0.0, tt.Age(2), 1e-10)

	// snapshot -1 is as close to the big bang as the model gets
	assert.True(t, tt.Age(-1) > tt.Age(0))
}

func TestTimeTableMatchesAnalyticEdS(t *testing.T) {
	// in an Einstein-de Sitter universe the lookback time to redshift z
	// is (2/3H0)(1 - (1+z)^-1.5)
	p := testParams()
	p.Omega, p.OmegaLambda = 1.0, 0.0
	tt := NewTimeTable(p, []float64{0.5, 1.0})

	want := 2.0 / (3.0 * p.Hubble) * (1.0 - 1.0/(2.0*1.41421356237))
	assert.InDelta(t, want, tt.Age(0), want*1e-6)
}

func TestReadSnapList(t *testing.T) {
	p := testParams()
	path := filepath.Join(t.TempDir(), "millennium.a_list")
	err := os.WriteFile(path, []byte("0.25\n0.5\n1.0\n"), 0644)
	assert.NoError(t, err)

	tt, err := ReadSnapList(p, path, 3)
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 1.0}, tt.A)

	// asking for more snapshots than the file holds must fail
	_, err = ReadSnapList(p, path, 4)
	assert.Error(t, err)
}

func TestHubbleOfZSq(t *testing.T) {
	p := testParams()
	assert.InDelta(t, p.Hubble*p.Hubble, p.HubbleOfZSq(0), 1e-6)

	// matter domination scales as (1+z)^3
	high := p.HubbleOfZSq(9)
	approx := p.Hubble * p.Hubble * p.Omega * 1000.0
	assert.InDelta(t, 1.0, high/approx, 0.31)
}
