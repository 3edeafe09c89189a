package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
)

// Las fechas se guardan como TEXT YYYY-MM-DD: el formato es de ancho fijo,
// así que el orden y las comparaciones SQL sobre el texto son correctos.
type DiaryRepo struct {
	db *sql.DB
}

func NewDiaryRepo(db *sql.DB) *DiaryRepo {
	return &DiaryRepo{db: db}
}

func (r *DiaryRepo) Get(ctx context.Context, date dates.Date) (diary.Observation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, vomit_count, pee_count, poop_count, teeth_brushed, notes
		FROM observations
		WHERE date = $1
	`, string(date))

	var o diary.Observation
	var d string
	if err := row.Scan(&d, &o.VomitCount, &o.PeeCount, &o.PoopCount, &o.TeethBrushed, &o.Notes); err != nil {
		if err == sql.ErrNoRows {
			// Sin fila = registro cero, no error.
			return diary.Observation{Date: date}, nil
		}
		return diary.Observation{}, err
	}
	o.Date = dates.Date(d)
	return o, nil
}

// Patch hace el merge dentro de una transacción: el INSERT crea la fila cero
// si hace falta y el UPDATE con SET dinámico toca solo los campos presentes.
// El row lock del UPDATE serializa patches concurrentes de la misma fecha.
func (r *DiaryRepo) Patch(ctx context.Context, date dates.Date, p diary.Patch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO observations (date) VALUES ($1)
		ON CONFLICT (date) DO NOTHING
	`, string(date)); err != nil {
		return err
	}

	sets := make([]string, 0, 5)
	args := []any{string(date)}
	argN := 2

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argN))
		args = append(args, value)
		argN++
	}

	if p.VomitCount != nil {
		addSet("vomit_count", *p.VomitCount)
	}
	if p.PeeCount != nil {
		addSet("pee_count", *p.PeeCount)
	}
	if p.PoopCount != nil {
		addSet("poop_count", *p.PoopCount)
	}
	if p.TeethBrushed != nil {
		addSet("teeth_brushed", *p.TeethBrushed)
	}
	if p.Notes != nil {
		addSet("notes", *p.Notes)
	}

	if len(sets) > 0 {
		q := "UPDATE observations SET " + strings.Join(sets, ", ") + " WHERE date = $1"
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *DiaryRepo) QueryRange(ctx context.Context, start, end dates.Date) ([]diary.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, vomit_count, pee_count, poop_count, teeth_brushed, notes
		FROM observations
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`, string(start), string(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]diary.Observation, 0)
	for rows.Next() {
		var o diary.Observation
		var d string
		if err := rows.Scan(&d, &o.VomitCount, &o.PeeCount, &o.PoopCount, &o.TeethBrushed, &o.Notes); err != nil {
			return nil, err
		}
		o.Date = dates.Date(d)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *DiaryRepo) FirstDate(ctx context.Context) (dates.Date, bool, error) {
	var d sql.NullString
	if err := r.db.QueryRowContext(ctx, `SELECT MIN(date) FROM observations`).Scan(&d); err != nil {
		return "", false, err
	}
	if !d.Valid {
		return "", false, nil
	}
	return dates.Date(d.String), true, nil
}
