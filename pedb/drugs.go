package pedb

import (
	"gopkg.in/guregu/null.v3"
)

// DrugChoice is a DrugChooser's answer: either the id of an existing drug,
// or (with an empty DrugID) the name and description for a new one.
type DrugChoice struct {
	DrugID      string
	Name        string
	Description string
}

// DrugChooser decides which drug a batch-name code refers to, given the
// drugs currently in the database. The interactive implementation lives in
// the ingestion tool; tests inject scripted choosers.
type DrugChooser func(code string, existing []Drug) (DrugChoice, error)

// DrugContext resolves drug codes to drug ids for one ingestion run. The
// cache is scoped to the context: each code consults the chooser at most
// once per run, and a fresh context starts clean.
type DrugContext struct {
	db     *DB
	choose DrugChooser
	cache  map[string]string
}

func NewDrugContext(db *DB, choose DrugChooser) *DrugContext {
	return &DrugContext{
		db:     db,
		choose: choose,
		cache:  make(map[string]string),
	}
}

// Resolve maps a batch-name drug code to a drug id, creating the drug when
// the chooser asks for one. A null code means the sample was untreated.
func (dc *DrugContext) Resolve(code null.String) (string, error) {
	if !code.Valid {
		return NoDrugID, nil
	}

	if id, ok := dc.cache[code.String]; ok {
		return id, nil
	}

	existing, err := dc.db.Drugs()
	if err != nil {
		return "", err
	}

	choice, err := dc.choose(code.String, existing)
	if err != nil {
		return "", err
	}

	id := choice.DrugID
	if id == "" {
		id, err = dc.db.InsertDrug(choice.Name, choice.Description)
		if err != nil {
			return "", err
		}
	}

	dc.cache[code.String] = id
	return id, nil
}
