// peheatmap renders one PBS-by-RTT heatmap per (prime editor, drug, metric)
// combination of an experiment, averaged across replicates. With -normalize,
// efficiencies are first rescaled across the selected runs using a shared
// PBS/RTT combination as the reference point, so run-to-run batch effects do
// not distort the comparison.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"

	_ "github.com/Strugatsky/Prime-editing-tools/compileinfoprint"
	"github.com/Strugatsky/Prime-editing-tools/heatgrid"
	"github.com/Strugatsky/Prime-editing-tools/pedb"
	"github.com/Strugatsky/Prime-editing-tools/runnorm"
)

func main() {
	var dbFile, outDir string
	var normalize bool
	flag.StringVar(&dbFile, "db", "", "SQLite experiment database")
	flag.StringVar(&outDir, "out", "", "Directory for the rendered heatmaps")
	flag.BoolVar(&normalize, "normalize", false, "Rescale efficiencies across runs using a shared PBS/RTT reference point")
	flag.Parse()

	if dbFile == "" || outDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	db, err := pedb.Open(dbFile)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer db.Close()

	exps, err := db.Experiments()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(exps) == 0 {
		log.Fatalln("No experiments found in the database")
	}

	exp, err := chooseExperiment(exps)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	runs, err := db.Runs(exp.ID)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(runs) == 0 {
		log.Fatalln("No runs found for this experiment")
	}

	selected, err := chooseRuns(runs)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	runIDs := make([]string, 0, len(selected))
	for _, r := range selected {
		runIDs = append(runIDs, r.ID)
	}

	points, err := db.DataPoints(exp.ID, runIDs)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(points) == 0 {
		log.Fatalln("No data points found for the selected runs")
	}

	ms := toMeasurements(points)

	normText := ""
	if normalize {
		normed, ref, err := runnorm.Normalize(ms, runIDs)
		switch {
		case errors.Is(err, runnorm.ErrNoCommonCoordinate):
			log.Println("Warning: no PBS/RTT combination is shared by every selected run; normalization disabled")
		case err != nil:
			log.Fatalln(pfx.Err(err))
		default:
			log.Printf("Normalizing with PBS=%d, RTT=%d as the reference point", ref.Coord.PBS, ref.Coord.RTT)
			ms = normed
			normText = "_normalized"
		}
	}

	ix := heatgrid.Build(ms)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	for _, key := range ix.Keys() {
		pbs, rtt, cells := ix.Matrix(key)

		drugLine := "No Drug"
		if key.Drug != "None" {
			drugLine = "Drug: " + key.Drug
		}
		title := []string{
			fmt.Sprintf("%s - %s", exp.Name, exp.Variant.String),
			fmt.Sprintf("%s - %s - %s", key.Editor, drugLine, key.Metric),
		}

		outName := filepath.Join(outDir, fmt.Sprintf("%s_%s_%s%s.png", key.Editor, key.Metric, key.Drug, normText))
		if err := renderHeatmap(outName, title, pbs, rtt, cells); err != nil {
			log.Fatalln(pfx.Err(err))
		}
		log.Printf("Saved heatmap to %s", outName)
	}
}

func toMeasurements(points []pedb.JoinedPoint) []runnorm.Measurement {
	out := make([]runnorm.Measurement, 0, len(points))
	for _, p := range points {
		out = append(out, runnorm.Measurement{
			Editor:    p.PrimeEditor,
			Drug:      p.DrugName,
			PBS:       p.PBS,
			RTT:       p.RTT,
			Replicate: p.Replicate,
			Correct:   p.CorrectEdits,
			Incorrect: p.IncorrectEdits,
			Scaffold:  p.ScaffoldIncorporated,
			RunID:     p.RunID,
		})
	}
	return out
}
