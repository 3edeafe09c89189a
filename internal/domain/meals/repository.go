package meals

import (
	"context"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

type Repository interface {
	// UpsertEntry crea o reemplaza la entry del par (date, slot).
	UpsertEntry(ctx context.Context, e Entry) error
	EntriesByDate(ctx context.Context, date dates.Date) ([]Entry, error)
	// QueryEntriesRange devuelve las entries del rango cerrado [start, end],
	// ordenadas por fecha ascendente.
	QueryEntriesRange(ctx context.Context, start, end dates.Date) ([]Entry, error)

	// DefaultVersions devuelve el historial de defaults del slot,
	// ordenado por effective_date ascendente.
	DefaultVersions(ctx context.Context, slot int) ([]DefaultVersion, error)
	// PutDefaultVersion inserta una versión; si ya existe una con el mismo
	// (slot, effective_date) pisa el amount (last-write-wins).
	PutDefaultVersion(ctx context.Context, v DefaultVersion) error

	// FirstEntryDate devuelve la fecha más antigua con alguna entry.
	// ok=false si no hay ninguna.
	FirstEntryDate(ctx context.Context) (dates.Date, bool, error)
}
