package medications

import (
	"context"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

type Repository interface {
	CreateMedication(ctx context.Context, m Medication) error
	GetMedication(ctx context.Context, id string) (Medication, error)
	ListMedications(ctx context.Context) ([]Medication, error)

	// UpsertEntry crea o reemplaza la entry del par (date, medication_id).
	UpsertEntry(ctx context.Context, e Entry) error
	EntriesByDate(ctx context.Context, date dates.Date) ([]Entry, error)
}
