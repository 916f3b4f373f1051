// pedata2csv flattens every data point in the experiment database into a
// single CSV (experiment, run, editor, design coordinates, replicate, drug,
// and the three efficiency metrics) for use outside the toolchain.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	_ "github.com/Strugatsky/Prime-editing-tools/compileinfoprint"
	"github.com/Strugatsky/Prime-editing-tools/pedb"
)

func main() {
	var dbFile, csvFile string
	flag.StringVar(&dbFile, "db", "", "SQLite experiment database")
	flag.StringVar(&csvFile, "csv", "", "Output CSV path")
	flag.Parse()

	if dbFile == "" || csvFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	db, err := pedb.Open(dbFile)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer db.Close()

	rows, err := db.Export()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	f, err := os.Create(csvFile)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Printf("Wrote %d data points to %s", len(rows), csvFile)
}
