package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS observations (
	date          TEXT PRIMARY KEY,
	vomit_count   INTEGER NOT NULL DEFAULT 0,
	pee_count     INTEGER NOT NULL DEFAULT 0,
	poop_count    INTEGER NOT NULL DEFAULT 0,
	teeth_brushed INTEGER NOT NULL DEFAULT 0,
	notes         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS meal_entries (
	date          TEXT NOT NULL,
	slot          INTEGER NOT NULL,
	status        TEXT NOT NULL,
	actual_amount REAL,
	comment       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (date, slot)
);

CREATE TABLE IF NOT EXISTS meal_slot_defaults (
	slot           INTEGER NOT NULL,
	effective_date TEXT NOT NULL,
	amount         REAL NOT NULL,
	PRIMARY KEY (slot, effective_date)
);

CREATE TABLE IF NOT EXISTS medications (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	dosage     TEXT NOT NULL DEFAULT '',
	active     INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS medication_entries (
	date          TEXT NOT NULL,
	medication_id TEXT NOT NULL,
	taken         INTEGER NOT NULL DEFAULT 0,
	comment       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (date, medication_id)
);
`

// Open abre (o crea) la base sqlite y bootstrapea el schema.
// Las fechas van como TEXT YYYY-MM-DD, igual que en el adapter de Postgres.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Un solo writer: sqlite serializa los read-modify-write por sí solo y
	// evita SQLITE_BUSY en los patches concurrentes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
