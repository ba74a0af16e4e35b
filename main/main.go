package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/darrencroton/sage-sub000/model"
	"github.com/darrencroton/sage-sub000/output"
	"github.com/darrencroton/sage-sub000/sim"
	"github.com/darrencroton/sage-sub000/tree"
)

const treesPerLog = 10000

func main() {
	var (
		exampleConfig = flag.Bool("ExampleConfig", false,
			"Prints an example parameter file to stdout and exits.")
		overwrite = flag.Bool("Overwrite", false,
			"Reprocesses tree files whose catalogues already exist.")
	)
	flag.Parse()

	if *exampleConfig {
		fmt.Println(sim.ExampleParameterFile)
		return
	}
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [flags] parameter_file", os.Args[0])
	}

	p, err := sim.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading parameter file: %s", err.Error())
	}
	setupLog(p)

	tt, err := sim.ReadSnapList(p, p.FileWithSnapList, p.LastSnapshotNr+1)
	if err != nil {
		log.Fatalf("Error reading snapshot list: %s", err.Error())
	}

	snaps := p.OutputSnap
	if len(snaps) == 0 {
		for snap := 0; snap <= p.LastSnapshotNr; snap++ {
			snaps = append(snaps, snap)
		}
	}

	cool, err := model.LoadCoolingTables(p.CoolFuncDir)
	if err != nil {
		log.Fatalf("Error reading cooling tables: %s", err.Error())
	}

	ev := model.NewEvolver(p, tt, model.NewPhysics(p, cool))

	// finish the current tree before honoring an interrupt, so finalized
	// output files are never half-written
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for fileNr := p.FirstFile; fileNr <= p.LastFile; fileNr++ {
		if !*overwrite && outputExists(p, tt, snaps, fileNr) {
			log.Printf("File %d already processed, skipping.", fileNr)
			continue
		}
		if err := processFile(p, tt, ev, snaps, fileNr, interrupt); err != nil {
			log.Fatalf("File %d: %s", fileNr, err.Error())
		}
	}
	log.Println("Done.")
}

func setupLog(p *sim.Params) {
	if p.LogFile == "" {
		return
	}
	f, err := os.Create(p.LogFile)
	if err != nil {
		log.Fatalf("Error creating log file: %s", err.Error())
	}
	log.SetOutput(f)
}

func treeFileName(p *sim.Params, fileNr int) string {
	return filepath.Join(p.SimulationDir,
		fmt.Sprintf("%s.%d%s", p.TreeName, fileNr, p.TreeExtension))
}

func outputExists(p *sim.Params, tt *sim.TimeTable, snaps []int, fileNr int) bool {
	for _, snap := range snaps {
		if _, err := os.Stat(output.FileName(p, tt, snap, fileNr)); err != nil {
			return false
		}
	}
	return true
}

func processFile(p *sim.Params, tt *sim.TimeTable, ev *model.Evolver,
	snaps []int, fileNr int, interrupt <-chan os.Signal) error {

	tf, err := tree.Open(treeFileName(p, fileNr), fileNr)
	if err != nil {
		return err
	}
	defer tf.Close()

	log.Printf("Processing file %d: %d trees, %d halos.",
		fileNr, tf.NTrees, tf.NHalos)

	cat, err := output.NewCatalogue(p, tt, fileNr, tf.NTrees, snaps)
	if err != nil {
		return err
	}

	for i := 0; i < tf.NTrees; i++ {
		select {
		case <-interrupt:
			cat.Close()
			log.Fatalf("Interrupted at file %d, tree %d.", fileNr, i)
		default:
		}

		f, err := tf.ReadTree(i)
		if err != nil {
			cat.Close()
			return err
		}
		if err := ev.ProcessTree(f); err != nil {
			cat.Close()
			return err
		}
		if err := cat.WriteTree(f, ev.Aux(), ev.Ledger()); err != nil {
			cat.Close()
			return err
		}

		if (i+1)%treesPerLog == 0 {
			log.Printf("File %d: %d of %d trees done.", fileNr, i+1, tf.NTrees)
		}
	}

	return cat.Finalize()
}
