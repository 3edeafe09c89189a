package trends

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/daystatus"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
	"github.com/Berisch/pet-s-health-tracker/internal/platform/metrics"
)

var ErrInvalidPeriod = errors.New("invalid period")

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

type Service struct {
	diary   *diary.Service
	meals   *meals.Service
	metrics *metrics.Collector // puede ser nil (tests)
	now     func() time.Time
}

func NewService(diarySvc *diary.Service, mealsSvc *meals.Service, collector *metrics.Collector) *Service {
	return &Service{
		diary:   diarySvc,
		meals:   mealsSvc,
		metrics: collector,
		now:     time.Now,
	}
}

func (s *Service) observeQuery(kind string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.TrendsQueriesTotal.WithLabelValues(kind).Inc()
	s.metrics.TrendsQueryDuration.Observe(time.Since(started).Seconds())
}

// dayData junta todo lo crudo de una fecha antes de agregar.
type dayData struct {
	date    dates.Date
	obs     diary.Observation
	entries []meals.Entry
}

// collectDays arma el set de días "presentes" del rango: fechas con
// observación almacenada o con al menos una comida registrada, ascendente.
// Una fecha con comidas pero sin observación usa el registro cero (§ la
// ausencia no es error, es "sin actividad").
func (s *Service) collectDays(ctx context.Context, start, end dates.Date) ([]dayData, error) {
	observations, err := s.diary.QueryRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	entries, err := s.meals.QueryEntriesRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[dates.Date]*dayData)
	for _, o := range observations {
		byDate[o.Date] = &dayData{date: o.Date, obs: o}
	}
	for _, e := range entries {
		d, ok := byDate[e.Date]
		if !ok {
			d = &dayData{date: e.Date, obs: diary.Observation{Date: e.Date}}
			byDate[e.Date] = d
		}
		d.entries = append(d.entries, e)
	}

	out := make([]dayData, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out, nil
}

func classifyDay(d dayData) daystatus.Status {
	statuses := make([]meals.Status, 0, len(d.entries))
	for _, e := range d.entries {
		statuses = append(statuses, e.Status)
	}
	// Siempre se reclasifica desde los conteos crudos: ninguna copia
	// almacenada del estado es autoritativa después de un backfill.
	return daystatus.Classify(d.obs.VomitCount, d.obs.PeeCount, d.obs.PoopCount, statuses)
}

func missedMeals(d dayData) int {
	n := 0
	for _, e := range d.entries {
		if e.Status != meals.StatusAteFully {
			n++
		}
	}
	return n
}

// Summarize agrega el rango cerrado [start, end]. Un rango sin registros
// devuelve todo en cero/vacío, nunca falla.
func (s *Service) Summarize(ctx context.Context, start, end dates.Date) (Summary, error) {
	defer s.observeQuery("summary", s.now())

	sum := Summary{
		FromDate:         start,
		ToDate:           end,
		NoPeeDates:       []dates.Date{},
		NoPoopDates:      []dates.Date{},
		MissedMealSeries: []ChartPoint{},
		VomitSeries:      []ChartPoint{},
	}
	if end.Before(start) {
		return sum, nil
	}

	days, err := s.collectDays(ctx, start, end)
	if err != nil {
		return Summary{}, err
	}

	for _, d := range days {
		sum.TotalDays++

		switch classifyDay(d) {
		case daystatus.StatusRed:
			sum.StatusCounts.Red++
		case daystatus.StatusOrange:
			sum.StatusCounts.Orange++
		default:
			sum.StatusCounts.Green++
		}

		if d.obs.VomitCount > 0 {
			sum.DaysWithVomit++
		}
		if d.obs.PeeCount > 0 {
			sum.DaysWithPee++
		} else {
			sum.NoPeeDates = append(sum.NoPeeDates, d.date)
		}
		if d.obs.PoopCount > 0 {
			sum.DaysWithPoop++
		} else {
			sum.NoPoopDates = append(sum.NoPoopDates, d.date)
		}

		sum.TotalMealEntries += len(d.entries)
		sum.MealsNotFullyEaten += missedMeals(d)

		sum.MissedMealSeries = append(sum.MissedMealSeries, ChartPoint{Date: d.date, Count: missedMeals(d)})
		sum.VomitSeries = append(sum.VomitSeries, ChartPoint{Date: d.date, Count: d.obs.VomitCount})
	}

	sum.DaysWithoutVomit = sum.TotalDays - sum.DaysWithVomit

	// Las listas de fechas en cero van más reciente primero.
	reverseDates(sum.NoPeeDates)
	reverseDates(sum.NoPoopDates)

	return sum, nil
}

// ProblemDays devuelve los días ORANGE/RED del rango, más reciente primero,
// cada uno con su lista de problemas derivada de los mismos conteos crudos.
func (s *Service) ProblemDays(ctx context.Context, start, end dates.Date) ([]ProblemDay, error) {
	defer s.observeQuery("problem_days", s.now())

	out := make([]ProblemDay, 0)
	if end.Before(start) {
		return out, nil
	}

	days, err := s.collectDays(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Recorremos descendente (collectDays devuelve ascendente).
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		st := classifyDay(d)
		if st == daystatus.StatusGreen {
			continue
		}
		out = append(out, ProblemDay{
			Date:   d.date,
			Status: st,
			Issues: s.issuesFor(d),
		})
	}
	return out, nil
}

func (s *Service) issuesFor(d dayData) []string {
	issues := make([]string, 0, 3+len(d.entries))

	if d.obs.VomitCount == 1 {
		issues = append(issues, "vomited 1 time")
	} else if d.obs.VomitCount > 1 {
		issues = append(issues, fmt.Sprintf("vomited %d times", d.obs.VomitCount))
	}
	if d.obs.PeeCount == 0 {
		issues = append(issues, "no pee")
	}
	if d.obs.PoopCount == 0 {
		issues = append(issues, "no poop")
	}

	entries := make([]meals.Entry, len(d.entries))
	copy(entries, d.entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slot < entries[j].Slot })

	for _, e := range entries {
		if e.Status == meals.StatusAteFully {
			continue
		}
		label := s.meals.SlotLabel(e.Slot)
		if label == "" {
			label = fmt.Sprintf("slot %d", e.Slot)
		}
		switch e.Status {
		case meals.StatusSkipped:
			issues = append(issues, label+": skipped")
		default:
			issues = append(issues, label+": not fully eaten")
		}
	}
	return issues
}

// ResolvePeriod traduce un selector de período al rango cerrado de fechas.
// "all" arranca en la fecha más antigua presente en el store (observación o
// comida, la menor de las dos).
func (s *Service) ResolvePeriod(ctx context.Context, period string) (dates.Date, dates.Date, error) {
	today := dates.Today(s.now)

	switch period {
	case PeriodWeek:
		return today.AddDays(-6), today, nil
	case PeriodMonth:
		return today.AddDays(-29), today, nil
	case PeriodAll:
		first, ok, err := s.diary.FirstDate(ctx)
		if err != nil {
			return "", "", err
		}
		firstMeal, okMeal, err := s.meals.FirstEntryDate(ctx)
		if err != nil {
			return "", "", err
		}
		switch {
		case ok && okMeal:
			if firstMeal.Before(first) {
				first = firstMeal
			}
		case okMeal:
			first = firstMeal
		case !ok:
			// Store vacío: rango de un día que agrega a cero.
			first = today
		}
		return first, today, nil
	default:
		return "", "", ErrInvalidPeriod
	}
}

func reverseDates(ds []dates.Date) {
	for i, j := 0, len(ds)-1; i < j; i, j = i+1, j-1 {
		ds[i], ds[j] = ds[j], ds[i]
	}
}
