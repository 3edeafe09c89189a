package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name   string
	Dosage string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}

	m := Medication{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Active:    true,
		CreatedAt: s.now(),
	}

	if err := s.repo.CreateMedication(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]Medication, error) {
	return s.repo.ListMedications(ctx)
}

type UpsertEntryInput struct {
	Taken   bool
	Comment string
}

// UpsertEntry registra la toma (o no-toma) de una medicación en una fecha.
// Exige que la medicación exista en el catálogo.
func (s *Service) UpsertEntry(ctx context.Context, date dates.Date, medicationID string, in UpsertEntryInput) (Entry, error) {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return Entry{}, ErrInvalidInput
	}

	if _, err := s.repo.GetMedication(ctx, medicationID); err != nil {
		return Entry{}, ErrNotFound
	}

	e := Entry{
		Date:         date,
		MedicationID: medicationID,
		Taken:        in.Taken,
		Comment:      strings.TrimSpace(in.Comment),
	}
	if err := s.repo.UpsertEntry(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// DayMedication es la vista de una medicación del catálogo para una fecha:
// qué dice el catálogo más lo registrado ese día (si hay registro).
type DayMedication struct {
	Medication Medication
	Entry      *Entry
}

// DayView lista las medicaciones activas del catálogo con su entry del día.
// Sin entry = todavía no se registró, no es error.
func (s *Service) DayView(ctx context.Context, date dates.Date) ([]DayMedication, error) {
	meds, err := s.repo.ListMedications(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.EntriesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	byMed := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byMed[e.MedicationID] = e
	}

	out := make([]DayMedication, 0, len(meds))
	for _, m := range meds {
		if !m.Active {
			continue
		}
		dm := DayMedication{Medication: m}
		if e, ok := byMed[m.ID]; ok {
			entry := e
			dm.Entry = &entry
		}
		out = append(out, dm)
	}
	return out, nil
}
