package meals

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	entries  map[string]Entry // key: date|slot
	defaults map[int]map[dates.Date]float64
}

func newTestRepo() *testRepo {
	return &testRepo{
		entries:  map[string]Entry{},
		defaults: map[int]map[dates.Date]float64{},
	}
}

func entryKey(d dates.Date, slot int) string {
	return string(d) + "|" + string(rune('0'+slot))
}

func (r *testRepo) UpsertEntry(ctx context.Context, e Entry) error {
	r.entries[entryKey(e.Date, e.Slot)] = e
	return nil
}

func (r *testRepo) EntriesByDate(ctx context.Context, date dates.Date) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (r *testRepo) QueryEntriesRange(ctx context.Context, start, end dates.Date) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Slot < out[j].Slot
	})
	return out, nil
}

func (r *testRepo) DefaultVersions(ctx context.Context, slot int) ([]DefaultVersion, error) {
	out := make([]DefaultVersion, 0)
	for ed, amount := range r.defaults[slot] {
		out = append(out, DefaultVersion{Slot: slot, Amount: amount, EffectiveDate: ed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.Before(out[j].EffectiveDate) })
	return out, nil
}

func (r *testRepo) PutDefaultVersion(ctx context.Context, v DefaultVersion) error {
	if r.defaults[v.Slot] == nil {
		r.defaults[v.Slot] = map[dates.Date]float64{}
	}
	r.defaults[v.Slot][v.EffectiveDate] = v.Amount
	return nil
}

func (r *testRepo) FirstEntryDate(ctx context.Context) (dates.Date, bool, error) {
	var min dates.Date
	for _, e := range r.entries {
		if min == "" || e.Date.Before(min) {
			min = e.Date
		}
	}
	return min, min != "", nil
}

// -------------------------
// Tests
// -------------------------

func TestService_ResolveDefault_AsOfSemantics(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.SetDefault(ctx, 1, 20, dates.MustParse("2025-01-10")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}
	if _, err := svc.SetDefault(ctx, 1, 30, dates.MustParse("2025-02-01")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}

	cases := []struct {
		query string
		want  float64
	}{
		{"2025-01-15", 20}, // después de la primera vigencia
		{"2025-01-10", 20}, // el mismo día de vigencia ya aplica
		{"2025-01-09", 0},  // antes de cualquier vigencia
		{"2025-03-01", 30}, // después de la segunda
		{"2025-02-01", 30},
		{"2025-01-31", 20},
	}
	for _, tc := range cases {
		got, err := svc.ResolveDefault(ctx, 1, dates.MustParse(tc.query))
		if err != nil {
			t.Fatalf("ResolveDefault(%s) error: %v", tc.query, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveDefault(%s) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestService_ResolveDefault_BackfillReordersHistory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.SetDefault(ctx, 1, 20, dates.MustParse("2025-01-10")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}
	if _, err := svc.SetDefault(ctx, 1, 30, dates.MustParse("2025-02-01")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}

	// Insertar fuera de orden una vigencia intermedia.
	if _, err := svc.SetDefault(ctx, 1, 25, dates.MustParse("2025-01-20")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}

	got, err := svc.ResolveDefault(ctx, 1, dates.MustParse("2025-01-25"))
	if err != nil {
		t.Fatalf("ResolveDefault error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected backfilled version 25 to win on 2025-01-25, got %v", got)
	}

	// Las fechas fuera del tramo intermedio no cambian.
	if got, _ := svc.ResolveDefault(ctx, 1, dates.MustParse("2025-01-15")); got != 20 {
		t.Fatalf("expected 20 on 2025-01-15, got %v", got)
	}
	if got, _ := svc.ResolveDefault(ctx, 1, dates.MustParse("2025-02-10")); got != 30 {
		t.Fatalf("expected 30 on 2025-02-10, got %v", got)
	}
}

func TestService_SetDefault_SameEffectiveDateOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewService(repo, nil)

	if _, err := svc.SetDefault(ctx, 1, 20, dates.MustParse("2025-01-10")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}
	if _, err := svc.SetDefault(ctx, 1, 40, dates.MustParse("2025-01-10")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}

	got, err := svc.ResolveDefault(ctx, 1, dates.MustParse("2025-01-12"))
	if err != nil {
		t.Fatalf("ResolveDefault error: %v", err)
	}
	if got != 40 {
		t.Fatalf("expected overwrite to win (40), got %v", got)
	}

	versions, _ := repo.DefaultVersions(ctx, 1)
	if len(versions) != 1 {
		t.Fatalf("expected a single version after overwrite, got %d", len(versions))
	}
}

func TestService_SetDefault_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.SetDefault(ctx, 99, 20, dates.MustParse("2025-01-10")); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if _, err := svc.SetDefault(ctx, 1, -5, dates.MustParse("2025-01-10")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative amount, got %v", err)
	}
}

func TestService_UpsertEntry_ValidatesAndTrims(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(), nil)
	date := dates.MustParse("2025-03-01")

	e, err := svc.UpsertEntry(ctx, date, 2, UpsertEntryInput{
		Status:  StatusNotFully,
		Comment: "  dejó la mitad  ",
	})
	if err != nil {
		t.Fatalf("UpsertEntry error: %v", err)
	}
	if e.Comment != "dejó la mitad" {
		t.Fatalf("expected trimmed comment, got %q", e.Comment)
	}

	if _, err := svc.UpsertEntry(ctx, date, 7, UpsertEntryInput{Status: StatusAteFully}); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if _, err := svc.UpsertEntry(ctx, date, 1, UpsertEntryInput{Status: Status("nibbled")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad status, got %v", err)
	}
	neg := -1.0
	if _, err := svc.UpsertEntry(ctx, date, 1, UpsertEntryInput{Status: StatusAteFully, ActualAmount: &neg}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative amount, got %v", err)
	}
}

func TestService_UpsertEntry_ReplacesSameDateSlot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewService(repo, nil)
	date := dates.MustParse("2025-03-01")

	if _, err := svc.UpsertEntry(ctx, date, 1, UpsertEntryInput{Status: StatusSkipped}); err != nil {
		t.Fatalf("UpsertEntry #1 error: %v", err)
	}
	if _, err := svc.UpsertEntry(ctx, date, 1, UpsertEntryInput{Status: StatusAteFully}); err != nil {
		t.Fatalf("UpsertEntry #2 error: %v", err)
	}

	got, _ := repo.EntriesByDate(ctx, date)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after upsert, got %d", len(got))
	}
	if got[0].Status != StatusAteFully {
		t.Fatalf("expected last write to win, got %s", got[0].Status)
	}
}

func TestService_DayView_AllSlotsWithResolvedDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(), nil)
	date := dates.MustParse("2025-03-01")

	if _, err := svc.SetDefault(ctx, 1, 50, dates.MustParse("2025-01-01")); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}
	if _, err := svc.UpsertEntry(ctx, date, 1, UpsertEntryInput{Status: StatusAteFully}); err != nil {
		t.Fatalf("UpsertEntry error: %v", err)
	}

	view, err := svc.DayView(ctx, date)
	if err != nil {
		t.Fatalf("DayView error: %v", err)
	}
	if len(view) != len(DefaultSlots()) {
		t.Fatalf("expected %d slots, got %d", len(DefaultSlots()), len(view))
	}
	if view[0].Slot != 1 || view[0].Label != "morning" {
		t.Fatalf("expected slot 1 morning first, got %+v", view[0])
	}
	if view[0].DefaultAmount != 50 {
		t.Fatalf("expected resolved default 50, got %v", view[0].DefaultAmount)
	}
	if view[0].Entry == nil || view[0].Entry.Status != StatusAteFully {
		t.Fatalf("expected entry on slot 1, got %+v", view[0].Entry)
	}
	for _, ds := range view[1:] {
		if ds.Entry != nil {
			t.Fatalf("expected empty slot %d, got entry %+v", ds.Slot, ds.Entry)
		}
		if ds.DefaultAmount != 0 {
			t.Fatalf("expected zero default on slot %d, got %v", ds.Slot, ds.DefaultAmount)
		}
	}
}

func TestParseSlots(t *testing.T) {
	slots, err := ParseSlots("2:day, 1:morning")
	if err != nil {
		t.Fatalf("ParseSlots error: %v", err)
	}
	if len(slots) != 2 || slots[0].Number != 1 || slots[1].Number != 2 {
		t.Fatalf("expected sorted slots, got %+v", slots)
	}

	for _, bad := range []string{"", "1", "0:zero", "1:a,1:b", "x:y"} {
		if _, err := ParseSlots(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
