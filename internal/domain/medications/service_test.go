package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	meds    map[string]Medication
	order   []string
	entries map[string]Entry // key: date|medicationID
}

func newTestRepo() *testRepo {
	return &testRepo{
		meds:    map[string]Medication{},
		entries: map[string]Entry{},
	}
}

func (r *testRepo) CreateMedication(ctx context.Context, m Medication) error {
	if _, ok := r.meds[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.meds[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *testRepo) GetMedication(ctx context.Context, id string) (Medication, error) {
	m, ok := r.meds[id]
	if !ok {
		return Medication{}, errors.New("repo: not found")
	}
	return m, nil
}

func (r *testRepo) ListMedications(ctx context.Context) ([]Medication, error) {
	out := make([]Medication, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.meds[id])
	}
	return out, nil
}

func (r *testRepo) UpsertEntry(ctx context.Context, e Entry) error {
	r.entries[string(e.Date)+"|"+e.MedicationID] = e
	return nil
}

func (r *testRepo) EntriesByDate(ctx context.Context, date dates.Date) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create(t *testing.T) {
	svc := NewService(newTestRepo())
	fixed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	m, err := svc.Create(context.Background(), CreateInput{Name: "  Apoquel ", Dosage: " 16mg "})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if m.Name != "Apoquel" || m.Dosage != "16mg" {
		t.Fatalf("expected trimmed fields, got %+v", m)
	}
	if !m.Active {
		t.Fatalf("expected new medication to be active")
	}
	if !m.CreatedAt.Equal(fixed) {
		t.Fatalf("expected CreatedAt from clock, got %v", m.CreatedAt)
	}

	if _, err := svc.Create(context.Background(), CreateInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestService_UpsertEntry_RequiresCatalogMedication(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()
	date := dates.MustParse("2025-05-01")

	if _, err := svc.UpsertEntry(ctx, date, "nope", UpsertEntryInput{Taken: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	m, err := svc.Create(ctx, CreateInput{Name: "Apoquel"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	e, err := svc.UpsertEntry(ctx, date, m.ID, UpsertEntryInput{Taken: true, Comment: " con comida "})
	if err != nil {
		t.Fatalf("UpsertEntry error: %v", err)
	}
	if !e.Taken || e.Comment != "con comida" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	// Re-registrar el mismo par (fecha, medicación) pisa el registro.
	e2, err := svc.UpsertEntry(ctx, date, m.ID, UpsertEntryInput{Taken: false})
	if err != nil {
		t.Fatalf("UpsertEntry #2 error: %v", err)
	}
	if e2.Taken {
		t.Fatalf("expected last write to win")
	}
}

func TestService_DayView_ActiveOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()
	date := dates.MustParse("2025-05-01")

	active, err := svc.Create(ctx, CreateInput{Name: "Apoquel"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	inactive := Medication{ID: "old", Name: "Suspendida", Active: false}
	if err := repo.CreateMedication(ctx, inactive); err != nil {
		t.Fatalf("CreateMedication error: %v", err)
	}

	if _, err := svc.UpsertEntry(ctx, date, active.ID, UpsertEntryInput{Taken: true}); err != nil {
		t.Fatalf("UpsertEntry error: %v", err)
	}

	view, err := svc.DayView(ctx, date)
	if err != nil {
		t.Fatalf("DayView error: %v", err)
	}
	if len(view) != 1 {
		t.Fatalf("expected only active medications, got %d", len(view))
	}
	if view[0].Medication.ID != active.ID {
		t.Fatalf("unexpected medication: %+v", view[0].Medication)
	}
	if view[0].Entry == nil || !view[0].Entry.Taken {
		t.Fatalf("expected taken entry, got %+v", view[0].Entry)
	}

	// Otra fecha: misma medicación, sin entry todavía.
	view, err = svc.DayView(ctx, dates.MustParse("2025-05-02"))
	if err != nil {
		t.Fatalf("DayView error: %v", err)
	}
	if len(view) != 1 || view[0].Entry != nil {
		t.Fatalf("expected active medication without entry, got %+v", view)
	}
}
