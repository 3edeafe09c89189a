package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) CreateMedication(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (id, name, dosage, active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Dosage, m.Active, m.CreatedAt)
	return err
}

func (r *MedicationsRepo) GetMedication(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, dosage, active, created_at
		FROM medications
		WHERE id = ?
	`, id)

	var m medications.Medication
	if err := row.Scan(&m.ID, &m.Name, &m.Dosage, &m.Active, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return medications.Medication{}, ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListMedications(ctx context.Context) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, dosage, active, created_at
		FROM medications
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		var m medications.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Dosage, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) UpsertEntry(ctx context.Context, e medications.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_entries (date, medication_id, taken, comment)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date, medication_id) DO UPDATE SET
			taken = excluded.taken,
			comment = excluded.comment
	`, string(e.Date), e.MedicationID, e.Taken, e.Comment)
	return err
}

func (r *MedicationsRepo) EntriesByDate(ctx context.Context, date dates.Date) ([]medications.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, medication_id, taken, comment
		FROM medication_entries
		WHERE date = ?
		ORDER BY medication_id ASC
	`, string(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Entry, 0)
	for rows.Next() {
		var e medications.Entry
		var d string
		if err := rows.Scan(&d, &e.MedicationID, &e.Taken, &e.Comment); err != nil {
			return nil, err
		}
		e.Date = dates.Date(d)
		out = append(out, e)
	}
	return out, rows.Err()
}
