package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
)

var ErrNotFound = errors.New("not found")

type diaryRepo struct {
	mu     sync.RWMutex
	byDate map[dates.Date]diary.Observation
}

func NewDiaryRepo() diary.Repository {
	return &diaryRepo{
		byDate: make(map[dates.Date]diary.Observation),
	}
}

func (r *diaryRepo) Get(ctx context.Context, date dates.Date) (diary.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if o, ok := r.byDate[date]; ok {
		return o, nil
	}
	// Sin fila = registro cero, no error.
	return diary.Observation{Date: date}, nil
}

func (r *diaryRepo) Patch(ctx context.Context, date dates.Date, p diary.Patch) error {
	// El mutex serializa el read-modify-write: dos patches concurrentes
	// sobre la misma fecha no se pisan campos.
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byDate[date]
	if !ok {
		o = diary.Observation{Date: date}
	}
	p.ApplyTo(&o)
	r.byDate[date] = o
	return nil
}

func (r *diaryRepo) QueryRange(ctx context.Context, start, end dates.Date) ([]diary.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diary.Observation, 0)
	for d, o := range r.byDate {
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *diaryRepo) FirstDate(ctx context.Context) (dates.Date, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first dates.Date
	found := false
	for d := range r.byDate {
		if !found || d.Before(first) {
			first = d
			found = true
		}
	}
	return first, found, nil
}
