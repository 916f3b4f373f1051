// quant2db ingests a tab-delimited amplicon quantification table (one row
// per amplicon category per batch) into the shared SQLite experiment
// database: it computes editing efficiencies per batch, recovers editor /
// PBS / RTT / replicate / drug metadata from the batch names, asks the
// operator to fill in whatever the names leave out, and stores one data
// point per surviving batch under a freshly created run.
package main

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/Strugatsky/Prime-editing-tools/batchinfo"
	_ "github.com/Strugatsky/Prime-editing-tools/compileinfoprint"
	"github.com/Strugatsky/Prime-editing-tools/pedb"
	"github.com/Strugatsky/Prime-editing-tools/quant"
)

func main() {
	var tsvFile, dbFile string
	flag.StringVar(&tsvFile, "tsv", "", "Tab-delimited quantification table with Batch, Amplicon, Unmodified, Modified, and Discarded columns")
	flag.StringVar(&dbFile, "db", "", "SQLite experiment database")
	flag.Parse()

	if tsvFile == "" || dbFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	rows, err := readRows(tsvFile)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	order, grouped := quant.Batches(rows)

	infos := make(map[string]batchinfo.BatchInfo)
	effs := make(map[string]quant.Efficiency)
	for _, name := range order {
		eff, err := quant.Compute(grouped[name])
		if err != nil {
			log.Printf("Warning: skipping batch %s: %v", name, err)
			continue
		}

		info, err := batchinfo.Parse(name)
		if err != nil {
			log.Printf("Warning: skipping batch %s: %v", name, err)
			continue
		}

		infos[name] = info
		effs[name] = eff
	}

	// One interactive pass over every batch lacking an editor, after all
	// parsing is done, so the operator sees the full unresolved set at once.
	excluded, err := batchinfo.ResolveEditors(infos, promptEditors)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	for _, name := range excluded {
		log.Printf("Warning: no prime editor provided for batch %s; excluding it", name)
	}

	db, err := pedb.Open(dbFile)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer db.Close()

	if err := db.Setup(); err != nil {
		log.Fatalln(pfx.Err(err))
	}

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

	runName, err := promptLine(fmt.Sprintf("\nEnter a run name for experiment %q: ", exp.Name))
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	runID, err := db.InsertRun(runName, exp.ID)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	drugs := pedb.NewDrugContext(db, promptDrug)

	added := 0
	for _, name := range order {
		info, ok := infos[name]
		if !ok {
			continue
		}
		eff := effs[name]

		entryID, err := db.EntryID(exp.ID, info.PBS, info.RTT)
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("Warning: no experiment entry for PBS=%d, RTT=%d; skipping batch %s", info.PBS, info.RTT, name)
			continue
		} else if err != nil {
			log.Fatalln(pfx.Err(err))
		}

		drugID, err := drugs.Resolve(info.Drug)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}

		err = db.InsertDataPoint(pedb.DataPoint{
			ExperimentEntryID:    entryID,
			CorrectEdits:         eff.Correct,
			IncorrectEdits:       eff.Incorrect,
			ScaffoldIncorporated: eff.Scaffold,
			PrimeEditor:          info.Editor.String,
			Replicate:            info.Replicate,
			RunID:                runID,
			DrugID:               drugID,
		})
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		added++
	}

	log.Printf("Run %q created with %d data points", runName, added)
}

func readRows(path string) ([]quant.AmpliconRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	// A table missing one of the required columns is a fatal input problem,
	// not something to silently zero-fill.
	gocsv.FailIfUnmatchedStructTags = true

	var rows []quant.AmpliconRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}
