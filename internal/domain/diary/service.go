package diary

import (
	"context"
	"errors"
	"strings"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, date dates.Date) (Observation, error) {
	return s.repo.Get(ctx, date)
}

// Update aplica un patch parcial sobre la observación de la fecha y devuelve
// el resultado. Los conteos negativos se normalizan a cero acá, antes de que
// lleguen al clasificador o al store.
func (s *Service) Update(ctx context.Context, date dates.Date, p Patch) (Observation, error) {
	if p.IsEmpty() {
		return Observation{}, ErrInvalidInput
	}

	p.VomitCount = clampCount(p.VomitCount)
	p.PeeCount = clampCount(p.PeeCount)
	p.PoopCount = clampCount(p.PoopCount)
	if p.Notes != nil {
		trimmed := strings.TrimSpace(*p.Notes)
		p.Notes = &trimmed
	}

	if err := s.repo.Patch(ctx, date, p); err != nil {
		return Observation{}, err
	}
	return s.repo.Get(ctx, date)
}

func (s *Service) QueryRange(ctx context.Context, start, end dates.Date) ([]Observation, error) {
	if end.Before(start) {
		return []Observation{}, nil
	}
	return s.repo.QueryRange(ctx, start, end)
}

func (s *Service) FirstDate(ctx context.Context) (dates.Date, bool, error) {
	return s.repo.FirstDate(ctx)
}

func clampCount(v *int) *int {
	if v == nil || *v >= 0 {
		return v
	}
	zero := 0
	return &zero
}
