package model

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/phil-mansfield/table"
)

// The Sutherland & Dopita (1993) collisional ionization equilibrium
// cooling functions, tabulated for eight metallicities. Rows run over
// log T = [4.0, 8.5] in steps of 0.05.
const (
	coolTabRows  = 91
	coolTabZBins = 8
	coolLogTMin  = 4.0
	coolLogTStep = 0.05
)

var coolTabNames = []string{
	"stripped_mzero.cie",
	"stripped_m-30.cie",
	"stripped_m-20.cie",
	"stripped_m-15.cie",
	"stripped_m-10.cie",
	"stripped_m-05.cie",
	"stripped_m-00.cie",
	"stripped_m+05.cie",
}

// Table metallicities relative to solar. The primordial table stands in
// at -5 for what is really -infinity.
var coolTabSolarZ = []float64{-5.0, -3.0, -2.0, -1.5, -1.0, -0.5, 0.0, 0.5}

// CoolingTables interpolates log Lambda over (log T, log Z).
type CoolingTables struct {
	// log10 of absolute metallicity per table
	logZ [coolTabZBins]float64
	// log10 Lambda_norm per table per temperature row
	rate [coolTabZBins][coolTabRows]float64
}

// NewCoolingTables builds interpolation tables from raw log-Lambda rows,
// one slice of coolTabRows values per tabulated metallicity. Used by tests
// and by LoadCoolingTables.
func NewCoolingTables(rows [][]float64) (*CoolingTables, error) {
	if len(rows) != coolTabZBins {
		return nil, fmt.Errorf(
			"cooling tables need %d metallicity bins, got %d",
			coolTabZBins, len(rows),
		)
	}
	ct := &CoolingTables{}
	for i, r := range rows {
		if len(r) != coolTabRows {
			return nil, fmt.Errorf(
				"cooling table %d has %d rows, need %d",
				i, len(r), coolTabRows,
			)
		}
		copy(ct.rate[i][:], r)
		// convert to absolute metallicity, Zsun = 0.02
		ct.logZ[i] = coolTabSolarZ[i] + math.Log10(0.02)
	}
	return ct, nil
}

// LoadCoolingTables reads the stripped .cie files from dir. Column 0 is
// log T, column 5 the normalized log cooling rate.
func LoadCoolingTables(dir string) (*CoolingTables, error) {
	rows := make([][]float64, coolTabZBins)
	for i, name := range coolTabNames {
		cols, err := readTable(filepath.Join(dir, name), []int{0, 5})
		if err != nil {
			return nil, err
		}
		rows[i] = cols[1]
	}
	return NewCoolingTables(rows)
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

// rateAt linearly interpolates table tab at logT, clamping to the
// tabulated temperature range.
func (ct *CoolingTables) rateAt(tab int, logT float64) float64 {
	idx := int((logT - coolLogTMin) / coolLogTStep)
	if idx < 0 {
		idx = 0
	}
	if idx >= coolTabRows-1 {
		idx = coolTabRows - 2
	}
	logTidx := coolLogTMin + coolLogTStep*float64(idx)
	r1, r2 := ct.rate[tab][idx], ct.rate[tab][idx+1]
	return r1 + (r2-r1)/coolLogTStep*(logT-logTidx)
}

// Rate returns the cooling rate Lambda in erg cm^3/s at the given
// log temperature and log absolute metallicity. Metallicity is clamped to
// the tabulated range; temperatures beyond it follow the last bin's slope.
func (ct *CoolingTables) Rate(logT, logZ float64) float64 {
	if logT < coolLogTMin {
		logT = coolLogTMin
	}
	if logZ < ct.logZ[0] {
		logZ = ct.logZ[0]
	}
	if logZ > ct.logZ[coolTabZBins-1] {
		logZ = ct.logZ[coolTabZBins-1]
	}

	i := 0
	for i < coolTabZBins-2 && logZ > ct.logZ[i+1] {
		i++
	}
	r1 := ct.rateAt(i, logT)
	r2 := ct.rateAt(i+1, logT)
	r := r1 + (r2-r1)/(ct.logZ[i+1]-ct.logZ[i])*(logZ-ct.logZ[i])
	return math.Pow(10, r)
}
