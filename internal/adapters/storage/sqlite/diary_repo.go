package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
)

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
		WHERE date = ?
	`, string(date))

	var o diary.Observation
	var d string
	if err := row.Scan(&d, &o.VomitCount, &o.PeeCount, &o.PoopCount, &o.TeethBrushed, &o.Notes); err != nil {
		if err == sql.ErrNoRows {
			return diary.Observation{Date: date}, nil
		}
		return diary.Observation{}, err
	}
	o.Date = dates.Date(d)
	return o, nil
}

func (r *DiaryRepo) Patch(ctx context.Context, date dates.Date, p diary.Patch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO observations (date) VALUES (?)
		ON CONFLICT (date) DO NOTHING
	`, string(date)); err != nil {
		return err
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = ?", column))
		args = append(args, value)
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
		q := "UPDATE observations SET " + strings.Join(sets, ", ") + " WHERE date = ?"
		args = append(args, string(date))
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
		WHERE date >= ? AND date <= ?
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
