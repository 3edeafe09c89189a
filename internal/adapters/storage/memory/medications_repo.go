package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/medications"
)

type medEntryKey struct {
	date  dates.Date
	medID string
}

type medicationsRepo struct {
	mu      sync.RWMutex
	byID    map[string]medications.Medication
	entries map[medEntryKey]medications.Entry
}

func NewMedicationsRepo() medications.Repository {
	return &medicationsRepo{
		byID:    make(map[string]medications.Medication),
		entries: make(map[medEntryKey]medications.Entry),
	}
}

func (r *medicationsRepo) CreateMedication(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicationsRepo) GetMedication(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *medicationsRepo) ListMedications(ctx context.Context) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *medicationsRepo) UpsertEntry(ctx context.Context, e medications.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[medEntryKey{date: e.Date, medID: e.MedicationID}] = e
	return nil
}

func (r *medicationsRepo) EntriesByDate(ctx context.Context, date dates.Date) ([]medications.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Entry, 0)
	for k, e := range r.entries {
		if k.date == date {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MedicationID < out[j].MedicationID
	})
	return out, nil
}
