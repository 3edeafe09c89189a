package postgres

import (
	"context"
	"database/sql"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
)

type MealsRepo struct {
	db *sql.DB
}

func NewMealsRepo(db *sql.DB) *MealsRepo {
	return &MealsRepo{db: db}
}

func (r *MealsRepo) UpsertEntry(ctx context.Context, e meals.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_entries (date, slot, status, actual_amount, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date, slot) DO UPDATE SET
			status = EXCLUDED.status,
			actual_amount = EXCLUDED.actual_amount,
			comment = EXCLUDED.comment
	`,
		string(e.Date),
		e.Slot,
		string(e.Status),
		toNullFloat(e.ActualAmount),
		e.Comment,
	)
	return err
}

func (r *MealsRepo) EntriesByDate(ctx context.Context, date dates.Date) ([]meals.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, slot, status, actual_amount, comment
		FROM meal_entries
		WHERE date = $1
		ORDER BY slot ASC
	`, string(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMealEntries(rows)
}

func (r *MealsRepo) QueryEntriesRange(ctx context.Context, start, end dates.Date) ([]meals.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, slot, status, actual_amount, comment
		FROM meal_entries
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, slot ASC
	`, string(start), string(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMealEntries(rows)
}

func (r *MealsRepo) DefaultVersions(ctx context.Context, slot int) ([]meals.DefaultVersion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT slot, amount, effective_date
		FROM meal_slot_defaults
		WHERE slot = $1
		ORDER BY effective_date ASC
	`, slot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]meals.DefaultVersion, 0)
	for rows.Next() {
		var v meals.DefaultVersion
		var d string
		if err := rows.Scan(&v.Slot, &v.Amount, &d); err != nil {
			return nil, err
		}
		v.EffectiveDate = dates.Date(d)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *MealsRepo) PutDefaultVersion(ctx context.Context, v meals.DefaultVersion) error {
	// Mismo (slot, effective_date) pisa el amount: last-write-wins, sin
	// versión nueva.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_slot_defaults (slot, effective_date, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot, effective_date) DO UPDATE SET amount = EXCLUDED.amount
	`, v.Slot, string(v.EffectiveDate), v.Amount)
	return err
}

func (r *MealsRepo) FirstEntryDate(ctx context.Context) (dates.Date, bool, error) {
	var d sql.NullString
	if err := r.db.QueryRowContext(ctx, `SELECT MIN(date) FROM meal_entries`).Scan(&d); err != nil {
		return "", false, err
	}
	if !d.Valid {
		return "", false, nil
	}
	return dates.Date(d.String), true, nil
}

func scanMealEntries(rows *sql.Rows) ([]meals.Entry, error) {
	out := make([]meals.Entry, 0)
	for rows.Next() {
		var e meals.Entry
		var d, status string
		var amount sql.NullFloat64
		if err := rows.Scan(&d, &e.Slot, &status, &amount, &e.Comment); err != nil {
			return nil, err
		}
		e.Date = dates.Date(d)
		e.Status = meals.Status(status)
		if amount.Valid {
			a := amount.Float64
			e.ActualAmount = &a
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
