package diary

import (
	"context"
	"errors"
	"testing"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byDate map[dates.Date]Observation
}

func newTestRepo() *testRepo {
	return &testRepo{byDate: map[dates.Date]Observation{}}
}

func (r *testRepo) Get(ctx context.Context, date dates.Date) (Observation, error) {
	if o, ok := r.byDate[date]; ok {
		return o, nil
	}
	return Observation{Date: date}, nil
}

func (r *testRepo) Patch(ctx context.Context, date dates.Date, p Patch) error {
	o, ok := r.byDate[date]
	if !ok {
		o = Observation{Date: date}
	}
	p.ApplyTo(&o)
	r.byDate[date] = o
	return nil
}

func (r *testRepo) QueryRange(ctx context.Context, start, end dates.Date) ([]Observation, error) {
	out := make([]Observation, 0)
	for d, o := range r.byDate {
		if !d.Before(start) && !d.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *testRepo) FirstDate(ctx context.Context) (dates.Date, bool, error) {
	var min dates.Date
	for d := range r.byDate {
		if min == "" || d.Before(min) {
			min = d
		}
	}
	return min, min != "", nil
}

// -------------------------
// Tests
// -------------------------

func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestService_Get_MissingDateIsZeroRecord(t *testing.T) {
	svc := NewService(newTestRepo())

	o, err := svc.Get(context.Background(), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if o.Date != "2025-04-01" {
		t.Fatalf("expected date echoed back, got %q", o.Date)
	}
	if o.VomitCount != 0 || o.PeeCount != 0 || o.PoopCount != 0 || o.TeethBrushed || o.Notes != "" {
		t.Fatalf("expected zero record, got %+v", o)
	}
}

func TestService_Update_MergesOnlyPresentFields(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()
	date := dates.MustParse("2025-04-01")

	if _, err := svc.Update(ctx, date, Patch{PeeCount: intPtr(2), Notes: strPtr("caminata larga")}); err != nil {
		t.Fatalf("Update #1 error: %v", err)
	}

	o, err := svc.Update(ctx, date, Patch{PoopCount: intPtr(1), TeethBrushed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update #2 error: %v", err)
	}

	if o.PeeCount != 2 || o.Notes != "caminata larga" {
		t.Fatalf("second patch must not clobber earlier fields: %+v", o)
	}
	if o.PoopCount != 1 || !o.TeethBrushed {
		t.Fatalf("second patch fields missing: %+v", o)
	}
}

func TestService_Update_EmptyPatchRejected(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Update(context.Background(), dates.MustParse("2025-04-01"), Patch{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_NegativeCountsClampToZero(t *testing.T) {
	svc := NewService(newTestRepo())

	o, err := svc.Update(context.Background(), dates.MustParse("2025-04-01"), Patch{
		VomitCount: intPtr(-3),
		PeeCount:   intPtr(1),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if o.VomitCount != 0 {
		t.Fatalf("expected negative count clamped to 0, got %d", o.VomitCount)
	}
	if o.PeeCount != 1 {
		t.Fatalf("expected pee count 1, got %d", o.PeeCount)
	}
}

func TestService_Update_TrimsNotes(t *testing.T) {
	svc := NewService(newTestRepo())

	o, err := svc.Update(context.Background(), dates.MustParse("2025-04-01"), Patch{Notes: strPtr("  ok  ")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if o.Notes != "ok" {
		t.Fatalf("expected trimmed notes, got %q", o.Notes)
	}
}

func TestService_QueryRange_InvertedIsEmpty(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Update(context.Background(), dates.MustParse("2025-04-01"), Patch{PeeCount: intPtr(1)}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	got, err := svc.QueryRange(context.Background(), dates.MustParse("2025-04-10"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("QueryRange error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for inverted range, got %d", len(got))
	}
}
