// Package pedb wraps the shared experiment SQLite database: experiments and
// their pegRNA design entries, sequencing runs, drugs, and the per-replicate
// editing-efficiency data points the quantification tools produce.
package pedb

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v3"

	_ "github.com/mattn/go-sqlite3"
)

// NoDrugID is the reserved id of the "None" drug, assigned to every data
// point from an untreated sample.
const NoDrugID = "00000000-0000-0000-0000-000000000000"

type DB struct {
	*sqlx.DB
}

func Open(path string) (*DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &DB{DB: db}, nil
}

type Experiment struct {
	ID              string      `db:"id"`
	Name            string      `db:"name"`
	Variant         null.String `db:"variant"`
	Chromosome      null.String `db:"chromosome"`
	GenomicLocation null.String `db:"genomic_location"`
	Edit            null.String `db:"edit"`
	Date            null.String `db:"date"`
}

type Run struct {
	ID           string `db:"id"`
	Name         string `db:"run_name"`
	ExperimentID string `db:"experiment_id"`
}

type Drug struct {
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Description null.String `db:"description"`
}

type DataPoint struct {
	ID                   string  `db:"id"`
	ExperimentEntryID    string  `db:"experiment_entry_id"`
	CorrectEdits         float64 `db:"correct_edits"`
	IncorrectEdits       float64 `db:"incorrect_edits"`
	ScaffoldIncorporated float64 `db:"scaffold_incorporated"`
	PrimeEditor          string  `db:"prime_editor"`
	Replicate            int     `db:"replicate"`
	RunID                string  `db:"run_id"`
	DrugID               string  `db:"drug_id"`
}

// JoinedPoint is a data point joined with its design coordinates and drug
// name, the shape the visualization tools consume.
type JoinedPoint struct {
	PBS                  int     `db:"pbs"`
	RTT                  int     `db:"rtt"`
	CorrectEdits         float64 `db:"correct_edits"`
	IncorrectEdits       float64 `db:"incorrect_edits"`
	ScaffoldIncorporated float64 `db:"scaffold_incorporated"`
	PrimeEditor          string  `db:"prime_editor"`
	Replicate            int     `db:"replicate"`
	RunID                string  `db:"run_id"`
	DrugName             string  `db:"drug_name"`
}

func (db *DB) Experiments() ([]Experiment, error) {
	var out []Experiment
	err := db.Select(&out, `SELECT id, name, variant, chromosome, genomic_location, edit, date FROM experiments ORDER BY date DESC`)
	return out, err
}

func (db *DB) Runs(experimentID string) ([]Run, error) {
	var out []Run
	err := db.Select(&out, `SELECT id, run_name, experiment_id FROM runs WHERE experiment_id = ? ORDER BY run_name`, experimentID)
	return out, err
}

// EntryID looks up the experiment_entries row for one PBS/RTT design of an
// experiment. A miss surfaces as sql.ErrNoRows; ingestion treats that as a
// per-batch warning, not a failure.
func (db *DB) EntryID(experimentID string, pbs, rtt int) (string, error) {
	var id string
	err := db.Get(&id, `SELECT id FROM experiment_entries WHERE experiment_id = ? AND pbs = ? AND rtt = ?`, experimentID, pbs, rtt)
	return id, err
}

func (db *DB) InsertRun(name, experimentID string) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(`INSERT INTO runs (id, run_name, experiment_id) VALUES (?, ?, ?)`, id, name, experimentID)
	return id, err
}

func (db *DB) Drugs() ([]Drug, error) {
	var out []Drug
	err := db.Select(&out, `SELECT id, name, description FROM drugs ORDER BY name`)
	return out, err
}

func (db *DB) InsertDrug(name, description string) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(`INSERT INTO drugs (id, name, description) VALUES (?, ?, ?)`, id, name, description)
	return id, err
}

// InsertDataPoint stores one resolved measurement. A fresh id is assigned
// when the point carries none; an empty drug id maps to the None drug.
func (db *DB) InsertDataPoint(p DataPoint) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.DrugID == "" {
		p.DrugID = NoDrugID
	}

	_, err := db.NamedExec(`
	INSERT INTO data_points (id, experiment_entry_id, correct_edits, incorrect_edits,
		scaffold_incorporated, prime_editor, replicate, run_id, drug_id)
	VALUES (:id, :experiment_entry_id, :correct_edits, :incorrect_edits,
		:scaffold_incorporated, :prime_editor, :replicate, :run_id, :drug_id)`, p)
	return err
}

// DataPoints returns every data point of an experiment, restricted to the
// given runs when any are named, joined with design coordinates and drug
// names. Points whose drug predates the drugs table fall back to "None".
func (db *DB) DataPoints(experimentID string, runIDs []string) ([]JoinedPoint, error) {
	q := `
	SELECT ee.pbs, ee.rtt, dp.correct_edits, dp.incorrect_edits, dp.scaffold_incorporated,
		dp.prime_editor, dp.replicate, dp.run_id,
		COALESCE(dr.name, 'None') AS drug_name
	FROM data_points dp
	JOIN experiment_entries ee ON dp.experiment_entry_id = ee.id
	LEFT JOIN drugs dr ON dp.drug_id = dr.id
	WHERE ee.experiment_id = ?`
	args := []interface{}{experimentID}

	if len(runIDs) > 0 {
		in, inArgs, err := sqlx.In(` AND dp.run_id IN (?)`, runIDs)
		if err != nil {
			return nil, err
		}
		q += in
		args = append(args, inArgs...)
	}

	var out []JoinedPoint
	err := db.Select(&out, q, args...)
	return out, err
}

// ExportRow is one line of the flat CSV export.
type ExportRow struct {
	Experiment           string  `db:"experiment" csv:"experiment"`
	Run                  string  `db:"run" csv:"run"`
	PrimeEditor          string  `db:"prime_editor" csv:"prime_editor"`
	PBS                  int     `db:"pbs" csv:"PBS"`
	RTT                  int     `db:"rtt" csv:"RTT"`
	Replicate            int     `db:"replicate" csv:"replicate"`
	Drug                 string  `db:"drug" csv:"drug"`
	CorrectEdits         float64 `db:"correct_edits" csv:"correct_edits"`
	IncorrectEdits       float64 `db:"incorrect_edits" csv:"incorrect_edits"`
	ScaffoldIncorporated float64 `db:"scaffold_incorporated" csv:"scaffold_incorporated"`
}

// Export flattens every data point in the database with its experiment, run,
// and drug names, ordered for stable output.
func (db *DB) Export() ([]ExportRow, error) {
	var out []ExportRow
	err := db.Select(&out, `
	SELECT e.name AS experiment, r.run_name AS run, dp.prime_editor,
		ee.pbs, ee.rtt, dp.replicate,
		COALESCE(dr.name, 'None') AS drug,
		dp.correct_edits, dp.incorrect_edits, dp.scaffold_incorporated
	FROM data_points dp
	JOIN experiment_entries ee ON dp.experiment_entry_id = ee.id
	JOIN experiments e ON ee.experiment_id = e.id
	JOIN runs r ON dp.run_id = r.id
	LEFT JOIN drugs dr ON dp.drug_id = dr.id
	ORDER BY e.name, r.run_name, dp.prime_editor, ee.pbs, ee.rtt, dp.replicate`)
	return out, err
}
