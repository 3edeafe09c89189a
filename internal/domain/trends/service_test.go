package trends

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "github.com/Berisch/pet-s-health-tracker/internal/adapters/storage/memory"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/daystatus"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
)

func newTestService() (*Service, *diary.Service, *meals.Service) {
	diarySvc := diary.NewService(mem.NewDiaryRepo())
	mealsSvc := meals.NewService(mem.NewMealsRepo(), nil)
	return NewService(diarySvc, mealsSvc, nil), diarySvc, mealsSvc
}

func intPtr(n int) *int { return &n }

func patchDay(t *testing.T, svc *diary.Service, date string, vomit, pee, poop int) {
	t.Helper()
	_, err := svc.Update(context.Background(), dates.MustParse(date), diary.Patch{
		VomitCount: intPtr(vomit),
		PeeCount:   intPtr(pee),
		PoopCount:  intPtr(poop),
	})
	if err != nil {
		t.Fatalf("Update(%s) error: %v", date, err)
	}
}

func addMeal(t *testing.T, svc *meals.Service, date string, slot int, status meals.Status) {
	t.Helper()
	_, err := svc.UpsertEntry(context.Background(), dates.MustParse(date), slot, meals.UpsertEntryInput{Status: status})
	if err != nil {
		t.Fatalf("UpsertEntry(%s, %d) error: %v", date, slot, err)
	}
}

func TestService_Summarize_EmptyRangeIsAllZero(t *testing.T) {
	svc, _, _ := newTestService()

	sum, err := svc.Summarize(context.Background(), dates.MustParse("2025-01-01"), dates.MustParse("2025-01-31"))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.TotalDays != 0 {
		t.Fatalf("expected 0 days, got %d", sum.TotalDays)
	}
	if sum.StatusCounts.Red+sum.StatusCounts.Orange+sum.StatusCounts.Green != 0 {
		t.Fatalf("expected zero status counts, got %+v", sum.StatusCounts)
	}
	if len(sum.NoPeeDates) != 0 || len(sum.NoPoopDates) != 0 {
		t.Fatalf("expected empty zero-date lists, got %v / %v", sum.NoPeeDates, sum.NoPoopDates)
	}
	if len(sum.VomitSeries) != 0 || len(sum.MissedMealSeries) != 0 {
		t.Fatalf("expected empty series")
	}
}

func TestService_Summarize_CountsAndInvariants(t *testing.T) {
	svc, diarySvc, mealsSvc := newTestService()

	patchDay(t, diarySvc, "2025-05-01", 0, 2, 1) // green
	patchDay(t, diarySvc, "2025-05-02", 1, 1, 1) // orange (vomit)
	patchDay(t, diarySvc, "2025-05-03", 1, 0, 1) // red (vomit + no pee)
	patchDay(t, diarySvc, "2025-05-04", 0, 0, 1) // orange (no pee)
	addMeal(t, mealsSvc, "2025-05-01", 1, meals.StatusAteFully)
	addMeal(t, mealsSvc, "2025-05-02", 1, meals.StatusAteFully)
	// Día presente solo por la comida: observación cero => red.
	addMeal(t, mealsSvc, "2025-05-06", 2, meals.StatusNotFully)

	sum, err := svc.Summarize(context.Background(), dates.MustParse("2025-05-01"), dates.MustParse("2025-05-31"))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if sum.TotalDays != 5 {
		t.Fatalf("expected 5 present days, got %d", sum.TotalDays)
	}
	if got := sum.StatusCounts.Red + sum.StatusCounts.Orange + sum.StatusCounts.Green; got != sum.TotalDays {
		t.Fatalf("status counts must add up to total days: %d vs %d", got, sum.TotalDays)
	}
	if sum.StatusCounts.Red != 2 || sum.StatusCounts.Orange != 2 || sum.StatusCounts.Green != 1 {
		t.Fatalf("unexpected status counts: %+v", sum.StatusCounts)
	}

	if sum.DaysWithVomit != 2 || sum.DaysWithoutVomit != 3 {
		t.Fatalf("unexpected vomit day counts: with=%d without=%d", sum.DaysWithVomit, sum.DaysWithoutVomit)
	}
	if sum.DaysWithVomit+sum.DaysWithoutVomit != sum.TotalDays {
		t.Fatalf("vomit day counts must add up to total days")
	}

	// Fechas sin pis, más reciente primero: 06 (cero implícito), 04, 03.
	wantNoPee := []dates.Date{"2025-05-06", "2025-05-04", "2025-05-03"}
	if len(sum.NoPeeDates) != len(wantNoPee) {
		t.Fatalf("expected %d no-pee dates, got %v", len(wantNoPee), sum.NoPeeDates)
	}
	for i, d := range wantNoPee {
		if sum.NoPeeDates[i] != d {
			t.Fatalf("no-pee dates: expected %v, got %v", wantNoPee, sum.NoPeeDates)
		}
	}

	if sum.TotalMealEntries != 3 || sum.MealsNotFullyEaten != 1 {
		t.Fatalf("unexpected meal counts: total=%d missed=%d", sum.TotalMealEntries, sum.MealsNotFullyEaten)
	}

	// Las series cubren solo días presentes, ascendente, sin huecos rellenos.
	if len(sum.VomitSeries) != 5 {
		t.Fatalf("expected 5 series points, got %d", len(sum.VomitSeries))
	}
	for i := 1; i < len(sum.VomitSeries); i++ {
		if !sum.VomitSeries[i-1].Date.Before(sum.VomitSeries[i].Date) {
			t.Fatalf("series not ascending: %v", sum.VomitSeries)
		}
	}
	if sum.VomitSeries[1].Count != 1 || sum.VomitSeries[2].Count != 1 {
		t.Fatalf("unexpected vomit series: %v", sum.VomitSeries)
	}
}

func TestService_Summarize_InvertedRange(t *testing.T) {
	svc, diarySvc, _ := newTestService()
	patchDay(t, diarySvc, "2025-05-01", 0, 1, 1)

	sum, err := svc.Summarize(context.Background(), dates.MustParse("2025-05-10"), dates.MustParse("2025-05-01"))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.TotalDays != 0 {
		t.Fatalf("inverted range must be empty, got %d days", sum.TotalDays)
	}
}

func TestService_ProblemDays_OrderAndIssues(t *testing.T) {
	svc, diarySvc, mealsSvc := newTestService()

	patchDay(t, diarySvc, "2025-05-01", 0, 2, 1) // green, no aparece
	patchDay(t, diarySvc, "2025-05-02", 0, 1, 1) // orange por comida salteada
	patchDay(t, diarySvc, "2025-05-03", 1, 0, 1) // red
	patchDay(t, diarySvc, "2025-05-04", 2, 1, 1) // orange por vómitos
	addMeal(t, mealsSvc, "2025-05-02", 1, meals.StatusSkipped)

	got, err := svc.ProblemDays(context.Background(), dates.MustParse("2025-05-01"), dates.MustParse("2025-05-31"))
	if err != nil {
		t.Fatalf("ProblemDays error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 problem days, got %d: %+v", len(got), got)
	}
	// Más reciente primero.
	if got[0].Date != "2025-05-04" || got[1].Date != "2025-05-03" || got[2].Date != "2025-05-02" {
		t.Fatalf("expected newest-first order, got %s, %s, %s", got[0].Date, got[1].Date, got[2].Date)
	}
	if got[0].Status != daystatus.StatusOrange || got[1].Status != daystatus.StatusRed || got[2].Status != daystatus.StatusOrange {
		t.Fatalf("unexpected statuses: %s / %s / %s", got[0].Status, got[1].Status, got[2].Status)
	}

	for _, pd := range got {
		if len(pd.Issues) == 0 {
			t.Fatalf("problem day %s must have at least one issue", pd.Date)
		}
	}

	wantIssues := [][]string{
		{"vomited 2 times"},              // 05-04
		{"vomited 1 time", "no pee"},     // 05-03
		{"morning: skipped"},             // 05-02
	}
	for i, want := range wantIssues {
		if len(got[i].Issues) != len(want) {
			t.Fatalf("day %s issues: expected %v, got %v", got[i].Date, want, got[i].Issues)
		}
		for j, w := range want {
			if got[i].Issues[j] != w {
				t.Fatalf("day %s issues: expected %v, got %v", got[i].Date, want, got[i].Issues)
			}
		}
	}
}

func TestService_ResolvePeriod(t *testing.T) {
	svc, diarySvc, mealsSvc := newTestService()
	svc.now = func() time.Time {
		return time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	start, end, err := svc.ResolvePeriod(ctx, PeriodWeek)
	if err != nil {
		t.Fatalf("ResolvePeriod(week) error: %v", err)
	}
	if start != "2025-05-14" || end != "2025-05-20" {
		t.Fatalf("week: expected 2025-05-14..2025-05-20, got %s..%s", start, end)
	}

	start, end, err = svc.ResolvePeriod(ctx, PeriodMonth)
	if err != nil {
		t.Fatalf("ResolvePeriod(month) error: %v", err)
	}
	if start != "2025-04-21" || end != "2025-05-20" {
		t.Fatalf("month: expected 2025-04-21..2025-05-20, got %s..%s", start, end)
	}

	// "all" con store vacío: rango de un día (hoy).
	start, end, err = svc.ResolvePeriod(ctx, PeriodAll)
	if err != nil {
		t.Fatalf("ResolvePeriod(all) error: %v", err)
	}
	if start != "2025-05-20" || end != "2025-05-20" {
		t.Fatalf("all(empty): expected today..today, got %s..%s", start, end)
	}

	// "all" arranca en el registro más antiguo, sea observación o comida.
	patchDay(t, diarySvc, "2025-03-10", 0, 1, 1)
	addMeal(t, mealsSvc, "2025-02-05", 1, meals.StatusAteFully)

	start, end, err = svc.ResolvePeriod(ctx, PeriodAll)
	if err != nil {
		t.Fatalf("ResolvePeriod(all) error: %v", err)
	}
	if start != "2025-02-05" || end != "2025-05-20" {
		t.Fatalf("all: expected 2025-02-05..2025-05-20, got %s..%s", start, end)
	}

	if _, _, err := svc.ResolvePeriod(ctx, "fortnight"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestService_Summarize_ReclassifiesAfterBackfill(t *testing.T) {
	svc, diarySvc, _ := newTestService()
	ctx := context.Background()

	patchDay(t, diarySvc, "2025-05-01", 0, 0, 0) // red

	sum, err := svc.Summarize(ctx, dates.MustParse("2025-05-01"), dates.MustParse("2025-05-01"))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.StatusCounts.Red != 1 {
		t.Fatalf("expected red before backfill, got %+v", sum.StatusCounts)
	}

	// Backfill: aparecen el pis y la caca del día.
	patchDay(t, diarySvc, "2025-05-01", 0, 1, 1)

	sum, err = svc.Summarize(ctx, dates.MustParse("2025-05-01"), dates.MustParse("2025-05-01"))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.StatusCounts.Green != 1 || sum.StatusCounts.Red != 0 {
		t.Fatalf("expected green after backfill, got %+v", sum.StatusCounts)
	}
}
