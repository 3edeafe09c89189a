package meals

import (
	"context"
	"errors"
	"strings"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownSlot  = errors.New("unknown meal slot")
)

type Service struct {
	repo  Repository
	slots []SlotConfig
}

// NewService crea el servicio de comidas. slots=nil usa DefaultSlots().
func NewService(repo Repository, slots []SlotConfig) *Service {
	if len(slots) == 0 {
		slots = DefaultSlots()
	}
	return &Service{
		repo:  repo,
		slots: slots,
	}
}

func (s *Service) Slots() []SlotConfig {
	out := make([]SlotConfig, len(s.slots))
	copy(out, s.slots)
	return out
}

// SlotLabel devuelve el label configurado del slot, o "" si no existe.
func (s *Service) SlotLabel(slot int) string {
	for _, sc := range s.slots {
		if sc.Number == slot {
			return sc.Label
		}
	}
	return ""
}

func (s *Service) validSlot(slot int) bool {
	return s.SlotLabel(slot) != ""
}

type UpsertEntryInput struct {
	Status       Status
	ActualAmount *float64
	Comment      string
}

func (s *Service) UpsertEntry(ctx context.Context, date dates.Date, slot int, in UpsertEntryInput) (Entry, error) {
	if !s.validSlot(slot) {
		return Entry{}, ErrUnknownSlot
	}
	if !ValidStatus(in.Status) {
		return Entry{}, ErrInvalidInput
	}
	if in.ActualAmount != nil && *in.ActualAmount < 0 {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		Date:         date,
		Slot:         slot,
		Status:       in.Status,
		ActualAmount: in.ActualAmount,
		Comment:      strings.TrimSpace(in.Comment),
	}

	if err := s.repo.UpsertEntry(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) EntriesByDate(ctx context.Context, date dates.Date) ([]Entry, error) {
	return s.repo.EntriesByDate(ctx, date)
}

func (s *Service) QueryEntriesRange(ctx context.Context, start, end dates.Date) ([]Entry, error) {
	if end.Before(start) {
		return []Entry{}, nil
	}
	return s.repo.QueryEntriesRange(ctx, start, end)
}

func (s *Service) FirstEntryDate(ctx context.Context) (dates.Date, bool, error) {
	return s.repo.FirstEntryDate(ctx)
}

// ResolveDefault devuelve el default de porción vigente para el slot en la
// fecha consultada: gana la versión con mayor effective_date <= queryDate.
// Sin versión que califique, devuelve 0.
//
// El historial admite inserciones fuera de orden (backfill): la resolución
// solo depende de las versiones, no del orden en que se insertaron.
func (s *Service) ResolveDefault(ctx context.Context, slot int, queryDate dates.Date) (float64, error) {
	if !s.validSlot(slot) {
		return 0, ErrUnknownSlot
	}

	versions, err := s.repo.DefaultVersions(ctx, slot)
	if err != nil {
		return 0, err
	}

	// versions viene ordenado por effective_date asc: la última que no
	// supere queryDate es la vigente.
	amount := 0.0
	for _, v := range versions {
		if v.EffectiveDate.After(queryDate) {
			break
		}
		amount = v.Amount
	}
	return amount, nil
}

// SetDefault registra (o corrige retroactivamente) el default del slot a
// partir de effectiveDate. Repetir el mismo (slot, effectiveDate) pisa el
// amount, no crea versión nueva.
func (s *Service) SetDefault(ctx context.Context, slot int, amount float64, effectiveDate dates.Date) (DefaultVersion, error) {
	if !s.validSlot(slot) {
		return DefaultVersion{}, ErrUnknownSlot
	}
	if amount < 0 {
		return DefaultVersion{}, ErrInvalidInput
	}

	v := DefaultVersion{
		Slot:          slot,
		Amount:        amount,
		EffectiveDate: effectiveDate,
	}
	if err := s.repo.PutDefaultVersion(ctx, v); err != nil {
		return DefaultVersion{}, err
	}
	return v, nil
}

// DaySlot materializa un slot para una fecha: label, default vigente y la
// entry registrada (si hay).
type DaySlot struct {
	Slot          int
	Label         string
	DefaultAmount float64
	Entry         *Entry
}

// DayView arma la vista de comidas de una fecha: todos los slots
// configurados, cada uno con su default resuelto y su entry si existe.
func (s *Service) DayView(ctx context.Context, date dates.Date) ([]DaySlot, error) {
	entries, err := s.repo.EntriesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	bySlot := make(map[int]Entry, len(entries))
	for _, e := range entries {
		bySlot[e.Slot] = e
	}

	out := make([]DaySlot, 0, len(s.slots))
	for _, sc := range s.slots {
		amount, err := s.ResolveDefault(ctx, sc.Number, date)
		if err != nil {
			return nil, err
		}

		ds := DaySlot{
			Slot:          sc.Number,
			Label:         sc.Label,
			DefaultAmount: amount,
		}
		if e, ok := bySlot[sc.Number]; ok {
			entry := e
			ds.Entry = &entry
		}
		out = append(out, ds)
	}
	return out, nil
}
