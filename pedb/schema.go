package pedb

// Setup creates any missing tables and seeds the reserved "None" drug.
// Databases written before drugs existed get a drug_id column added to their
// data_points table; everything else is additive and idempotent.
func (db *DB) Setup() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS experiments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			variant TEXT,
			chromosome TEXT,
			genomic_location TEXT,
			edit TEXT,
			date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS experiment_entries (
			id TEXT PRIMARY KEY,
			experiment_id TEXT NOT NULL,
			pbs INTEGER NOT NULL,
			rtt INTEGER NOT NULL,
			name TEXT,
			score REAL,
			FOREIGN KEY (experiment_id) REFERENCES experiments(id)
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			run_name TEXT NOT NULL,
			experiment_id TEXT NOT NULL,
			FOREIGN KEY (experiment_id) REFERENCES experiments(id)
		)`,
		`CREATE TABLE IF NOT EXISTS drugs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := db.Exec(`INSERT OR IGNORE INTO drugs (id, name, description) VALUES (?, ?, ?)`,
		NoDrugID, "None", "No drug used"); err != nil {
		return err
	}

	if err := db.upgradeDataPoints(); err != nil {
		return err
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS data_points (
		id TEXT PRIMARY KEY,
		experiment_entry_id TEXT NOT NULL,
		correct_edits REAL NOT NULL,
		incorrect_edits REAL NOT NULL,
		scaffold_incorporated REAL NOT NULL,
		prime_editor TEXT NOT NULL,
		replicate INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		drug_id TEXT DEFAULT '` + NoDrugID + `',
		FOREIGN KEY (experiment_entry_id) REFERENCES experiment_entries(id),
		FOREIGN KEY (run_id) REFERENCES runs(id),
		FOREIGN KEY (drug_id) REFERENCES drugs(id)
	)`)
	return err
}

// upgradeDataPoints adds the drug_id column to a pre-drugs data_points
// table. No-op when the table does not exist yet or already has the column.
func (db *DB) upgradeDataPoints() error {
	var exists int
	if err := db.Get(&exists, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'data_points'`); err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}

	rows, err := db.Queryx(`PRAGMA table_info(data_points)`)
	if err != nil {
		return err
	}
	defer rows.Close()

	hasDrugID := false
	for rows.Next() {
		col := struct {
			CID       int         `db:"cid"`
			Name      string      `db:"name"`
			Type      string      `db:"type"`
			NotNull   int         `db:"notnull"`
			DfltValue interface{} `db:"dflt_value"`
			PK        int         `db:"pk"`
		}{}
		if err := rows.StructScan(&col); err != nil {
			return err
		}
		if col.Name == "drug_id" {
			hasDrugID = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if hasDrugID {
		return nil
	}

	_, err = db.Exec(`ALTER TABLE data_points ADD COLUMN drug_id TEXT DEFAULT '` + NoDrugID + `' REFERENCES drugs(id)`)
	return err
}
