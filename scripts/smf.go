package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/darrencroton/sage-sub000/output"
	plt "github.com/phil-mansfield/pyplot"
)

const (
	binWidth = 0.1 // dex
	logMMin  = 8.0
	logMMax  = 12.5
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr,
			"Usage: %s hubble_h box_size catalogue [catalogue ...]\n",
			os.Args[0])
		os.Exit(1)
	}

	h, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		panic(err)
	}
	boxSize, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		panic(err)
	}

	nBins := int((logMMax - logMMin) / binWidth)
	counts := make([]float64, nBins)

	for _, path := range os.Args[3:] {
		_, recs, err := output.ReadCatalogue(path)
		if err != nil {
			panic(err)
		}
		for i := range recs {
			if recs[i].StellarMass <= 0 {
				continue
			}
			logM := math.Log10(float64(recs[i].StellarMass) * 1e10 / h)
			bin := int((logM - logMMin) / binWidth)
			if bin >= 0 && bin < nBins {
				counts[bin]++
			}
		}
	}

	// number density per dex in a comoving (Mpc/h)^3 volume
	vol := boxSize * boxSize * boxSize
	logMs := make([]float64, nBins)
	phis := make([]float64, nBins)
	for i := range counts {
		logMs[i] = logMMin + binWidth*(float64(i)+0.5)
		phis[i] = counts[i] / vol / binWidth
	}

	plt.Figure()
	plt.Plot(logMs, phis, "ok", plt.LW(2))

	plt.XLabel(`$\log_{10} M_\star$ $[M_\odot]$`, plt.FontSize(16))
	plt.YLabel(`$\phi$ $[{\rm Mpc}^{-3} h^3\ {\rm dex}^{-1}]$`, plt.FontSize(16))
	plt.YScale("log")
	plt.XLim(logMMin, logMMax)
	plt.Grid(plt.Axis("both"))

	plt.Show()
	plt.Execute()
}
