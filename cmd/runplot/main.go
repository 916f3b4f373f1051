// runplot renders per-sample line plots of editing efficiency for one or
// more runs of an experiment: one plot per metric per prime editor, samples
// (P<pbs>R<rtt>) ordered by PBS then RTT, replicate means as a line and the
// individual replicates as dots.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"

	_ "github.com/Strugatsky/Prime-editing-tools/compileinfoprint"
	"github.com/Strugatsky/Prime-editing-tools/heatgrid"
	"github.com/Strugatsky/Prime-editing-tools/pedb"
)

func main() {
	var dbFile, outDir string
	flag.StringVar(&dbFile, "db", "", "SQLite experiment database")
	flag.StringVar(&outDir, "out", "", "Directory for the rendered plots")
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
	runNames := make([]string, 0, len(selected))
	for _, r := range selected {
		runIDs = append(runIDs, r.ID)
		runNames = append(runNames, r.Name)
	}

	points, err := db.DataPoints(exp.ID, runIDs)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(points) == 0 {
		log.Fatalln("No data points found for the selected runs")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	runLabel := strings.Join(runNames, "+")
	for _, metric := range heatgrid.Metrics {
		for _, editor := range editors(points) {
			title := fmt.Sprintf("%s - %s - %s - %s", exp.Name, runLabel, metricTitle(metric), editor)
			if err := plotEditor(outDir, title, metric, editor, points); err != nil {
				log.Fatalln(pfx.Err(err))
			}
		}
	}
}

func editors(points []pedb.JoinedPoint) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range points {
		if !seen[p.PrimeEditor] {
			seen[p.PrimeEditor] = true
			out = append(out, p.PrimeEditor)
		}
	}
	return out
}

func metricTitle(metric string) string {
	words := strings.Split(metric, "_")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
