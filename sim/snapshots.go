package sim

import (
	"fmt"
	"math"

	"github.com/darrencroton/sage-sub000/num"
	"github.com/phil-mansfield/table"
)

// integrationEps is the relative tolerance of the lookback-time integrals.
const integrationEps = 1e-8

// TimeTable holds the expansion factor, redshift, and age of every snapshot
// of the simulation, in code units.
type TimeTable struct {
	A        []float64
	Redshift []float64
	// lookback time to each snapshot, code units
	age []float64
	// lookback time to z = 1000, used as the epoch of snapshot -1
	ageBigBang float64
}

// ReadSnapList reads a snapshot expansion-factor list, one value per line,
// and returns the per-snapshot time table. n is the number of snapshots,
// i.e. LastSnapshotNr + 1.
func ReadSnapList(p *Params, path string, n int) (*TimeTable, error) {
	cols, err := readTable(path, []int{0})
	if err != nil {
		return nil, err
	}
	a := cols[0]
	if len(a) < n {
		return nil, fmt.Errorf(
			"snapshot list %s has %d entries, need %d", path, len(a), n,
		)
	}
	return NewTimeTable(p, a[:n]), nil
}

// readTable reads the given whitespace-separated columns of a text file as
// float64s, recovering the table package's panics into returned errors.
func readTable(path string, cols []int) (out [][]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read %s: %v", path, r)
		}
	}()
	return table.TextFile(path).ReadFloat64s(cols), nil
}

// NewTimeTable builds the time table from a list of expansion factors, one
// per snapshot.
func NewTimeTable(p *Params, a []float64) *TimeTable {
	tt := &TimeTable{
		A:        a,
		Redshift: make([]float64, len(a)),
		age:      make([]float64, len(a)),
	}
	for i := range a {
		tt.Redshift[i] = 1.0/a[i] - 1.0
		tt.age[i] = p.timeToPresent(tt.Redshift[i])
	}
	tt.ageBigBang = p.timeToPresent(1000.0)
	return tt
}

// Age returns the lookback time to the given snapshot. Snapshot -1 is the
// epoch a galaxy created at snapshot 0 would be born at and maps to
// z = 1000.
func (tt *TimeTable) Age(snap int) float64 {
	if snap == -1 {
		return tt.ageBigBang
	}
	return tt.age[snap]
}

// timeToPresent returns the lookback time from z = 0 to the given redshift,
// in code units.
func (p *Params) timeToPresent(z float64) float64 {
	f := func(a float64) float64 {
		return 1.0 / math.Sqrt(
			p.Omega/a+(1.0-p.Omega-p.OmegaLambda)+p.OmegaLambda*a*a,
		)
	}
	t := num.Romberg(f, 1.0/(1.0+z), 1.0, integrationEps)
	return t / p.Hubble
}

// HubbleOfZSq returns H(z)^2 in code units.
func (p *Params) HubbleOfZSq(z float64) float64 {
	zp1 := 1.0 + z
	return p.Hubble * p.Hubble * (p.Omega*zp1*zp1*zp1 +
		(1.0-p.Omega-p.OmegaLambda)*zp1*zp1 + p.OmegaLambda)
}
