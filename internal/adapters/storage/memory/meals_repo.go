package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
)

type mealEntryKey struct {
	date dates.Date
	slot int
}

type mealsRepo struct {
	mu      sync.RWMutex
	entries map[mealEntryKey]meals.Entry
	// defaults: slot -> effective_date -> amount. Mapa y no slice para que
	// reescribir el mismo (slot, fecha) sea naturalmente last-write-wins.
	defaults map[int]map[dates.Date]float64
}

func NewMealsRepo() meals.Repository {
	return &mealsRepo{
		entries:  make(map[mealEntryKey]meals.Entry),
		defaults: make(map[int]map[dates.Date]float64),
	}
}

func (r *mealsRepo) UpsertEntry(ctx context.Context, e meals.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[mealEntryKey{date: e.Date, slot: e.Slot}] = e
	return nil
}

func (r *mealsRepo) EntriesByDate(ctx context.Context, date dates.Date) ([]meals.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]meals.Entry, 0)
	for k, e := range r.entries {
		if k.date == date {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (r *mealsRepo) QueryEntriesRange(ctx context.Context, start, end dates.Date) ([]meals.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]meals.Entry, 0)
	for k, e := range r.entries {
		if k.date.Before(start) || k.date.After(end) {
			continue
		}
		out = append(out, e)
	}

	// Orden por fecha asc, desempate por slot (estable para tests).
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Slot < out[j].Slot
	})
	return out, nil
}

func (r *mealsRepo) DefaultVersions(ctx context.Context, slot int) ([]meals.DefaultVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.defaults[slot]
	out := make([]meals.DefaultVersion, 0, len(versions))
	for d, amount := range versions {
		out = append(out, meals.DefaultVersion{
			Slot:          slot,
			Amount:        amount,
			EffectiveDate: d,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveDate.Before(out[j].EffectiveDate)
	})
	return out, nil
}

func (r *mealsRepo) PutDefaultVersion(ctx context.Context, v meals.DefaultVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults[v.Slot] == nil {
		r.defaults[v.Slot] = make(map[dates.Date]float64)
	}
	r.defaults[v.Slot][v.EffectiveDate] = v.Amount
	return nil
}

func (r *mealsRepo) FirstEntryDate(ctx context.Context) (dates.Date, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first dates.Date
	found := false
	for k := range r.entries {
		if !found || k.date.Before(first) {
			first = k.date
			found = true
		}
	}
	return first, found, nil
}
