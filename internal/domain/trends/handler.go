package trends

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/daystatus"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/trends/summary", summaryHandler(svc))
	r.Get("/trends/problem-days", problemDaysHandler(svc))
}

type chartPointResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type statusCountsResponse struct {
	Red    int `json:"RED"`
	Orange int `json:"ORANGE"`
	Green  int `json:"GREEN"`
}

type summaryResponse struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalDays    int                  `json:"total_days"`
	StatusCounts statusCountsResponse `json:"status_counts"`

	DaysWithVomit    int `json:"days_with_vomit"`
	DaysWithoutVomit int `json:"days_without_vomit"`

	DaysWithPee  int      `json:"days_with_pee"`
	DaysWithPoop int      `json:"days_with_poop"`
	NoPeeDates   []string `json:"no_pee_dates"`
	NoPoopDates  []string `json:"no_poop_dates"`

	TotalMealEntries   int `json:"total_meal_entries"`
	MealsNotFullyEaten int `json:"meals_not_fully_eaten"`

	MissedMealSeries []chartPointResponse `json:"missed_meal_series"`
	VomitSeries      []chartPointResponse `json:"vomit_series"`
}

type problemDayResponse struct {
	Date   string           `json:"date"`
	Status daystatus.Status `json:"status" enums:"ORANGE,RED"`
	Issues []string         `json:"issues"`
}

// summaryHandler godoc
// @Summary Resumen de tendencias
// @Description Agrega el rango cerrado de fechas: totales por estado (siempre recalculados, nunca de cache), días con/sin vómito, días con pis/caca y las fechas en cero, comidas incompletas, y las series diarias para graficar. Rango por ?from/?to (YYYY-MM-DD) o ?period=week|month|all; "all" arranca en la fecha más antigua presente. Default: week.
// @Tags trends
// @Produce json
// @Param from query string false "Fecha inicial YYYY-MM-DD"
// @Param to query string false "Fecha final YYYY-MM-DD"
// @Param period query string false "week | month | all"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "rango inválido"
// @Router /trends/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, ok := parseRange(w, r, svc)
		if !ok {
			return
		}

		sum, err := svc.Summarize(r.Context(), start, end)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toSummaryResponse(sum))
	}
}

// problemDaysHandler godoc
// @Summary Días con problemas
// @Description Lista los días ORANGE/RED del rango, más reciente primero, cada uno con su lista de problemas derivada (vómitos, "no pee"/"no poop", comidas incompletas por slot). Mismos parámetros de rango que /trends/summary.
// @Tags trends
// @Produce json
// @Param from query string false "Fecha inicial YYYY-MM-DD"
// @Param to query string false "Fecha final YYYY-MM-DD"
// @Param period query string false "week | month | all"
// @Success 200 {array} problemDayResponse
// @Failure 400 {string} string "rango inválido"
// @Router /trends/problem-days [get]
func problemDaysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, ok := parseRange(w, r, svc)
		if !ok {
			return
		}

		days, err := svc.ProblemDays(r.Context(), start, end)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]problemDayResponse, 0, len(days))
		for _, pd := range days {
			out = append(out, problemDayResponse{
				Date:   pd.Date.String(),
				Status: pd.Status,
				Issues: pd.Issues,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// parseRange resuelve el rango pedido: from/to explícitos, o period
// (week/month/all). Sin nada, usa period=week. Escribe el 400 y devuelve
// ok=false si los parámetros no cierran.
func parseRange(w http.ResponseWriter, r *http.Request, svc *Service) (dates.Date, dates.Date, bool) {
	q := r.URL.Query()
	fromRaw := strings.TrimSpace(q.Get("from"))
	toRaw := strings.TrimSpace(q.Get("to"))
	period := strings.TrimSpace(q.Get("period"))

	if fromRaw != "" || toRaw != "" {
		if fromRaw == "" || toRaw == "" {
			http.Error(w, "from and to must be provided together", http.StatusBadRequest)
			return "", "", false
		}
		from, err := dates.Parse(fromRaw)
		if err != nil {
			http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
			return "", "", false
		}
		to, err := dates.Parse(toRaw)
		if err != nil {
			http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
			return "", "", false
		}
		if to.Before(from) {
			http.Error(w, "to must not be before from", http.StatusBadRequest)
			return "", "", false
		}
		return from, to, true
	}

	if period == "" {
		period = PeriodWeek
	}
	start, end, err := svc.ResolvePeriod(r.Context(), period)
	if err != nil {
		if err == ErrInvalidPeriod {
			http.Error(w, "period must be week, month or all", http.StatusBadRequest)
			return "", "", false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return "", "", false
	}
	return start, end, true
}

func toSummaryResponse(sum Summary) summaryResponse {
	resp := summaryResponse{
		From:      sum.FromDate.String(),
		To:        sum.ToDate.String(),
		TotalDays: sum.TotalDays,
		StatusCounts: statusCountsResponse{
			Red:    sum.StatusCounts.Red,
			Orange: sum.StatusCounts.Orange,
			Green:  sum.StatusCounts.Green,
		},
		DaysWithVomit:      sum.DaysWithVomit,
		DaysWithoutVomit:   sum.DaysWithoutVomit,
		DaysWithPee:        sum.DaysWithPee,
		DaysWithPoop:       sum.DaysWithPoop,
		NoPeeDates:         make([]string, 0, len(sum.NoPeeDates)),
		NoPoopDates:        make([]string, 0, len(sum.NoPoopDates)),
		TotalMealEntries:   sum.TotalMealEntries,
		MealsNotFullyEaten: sum.MealsNotFullyEaten,
		MissedMealSeries:   make([]chartPointResponse, 0, len(sum.MissedMealSeries)),
		VomitSeries:        make([]chartPointResponse, 0, len(sum.VomitSeries)),
	}

	for _, d := range sum.NoPeeDates {
		resp.NoPeeDates = append(resp.NoPeeDates, d.String())
	}
	for _, d := range sum.NoPoopDates {
		resp.NoPoopDates = append(resp.NoPoopDates, d.String())
	}
	for _, p := range sum.MissedMealSeries {
		resp.MissedMealSeries = append(resp.MissedMealSeries, chartPointResponse{Date: p.Date.String(), Count: p.Count})
	}
	for _, p := range sum.VomitSeries {
		resp.VomitSeries = append(resp.VomitSeries, chartPointResponse{Date: p.Date.String(), Count: p.Count})
	}
	return resp
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
