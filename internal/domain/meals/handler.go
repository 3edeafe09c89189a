package meals

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/meals/slots", listSlotsHandler(svc))
	r.Get("/meals/defaults/{slot}", resolveDefaultHandler(svc))
	r.Put("/meals/defaults/{slot}", setDefaultHandler(svc))

	r.Get("/days/{date}/meals", listDayMealsHandler(svc))
	r.Put("/days/{date}/meals/{slot}", upsertEntryHandler(svc))
}

type upsertEntryRequest struct {
	Status       Status   `json:"status" enums:"ate_fully,not_fully,skipped"`
	ActualAmount *float64 `json:"actual_amount"` // opcional, gramos
	Comment      string   `json:"comment"`
}

type entryResponse struct {
	Date         string   `json:"date"`
	Slot         int      `json:"slot"`
	Label        string   `json:"label"`
	Status       Status   `json:"status"`
	ActualAmount *float64 `json:"actual_amount,omitempty"`
	Comment      string   `json:"comment,omitempty"`
}

type daySlotResponse struct {
	Slot          int      `json:"slot"`
	Label         string   `json:"label"`
	DefaultAmount float64  `json:"default_amount"`
	Status        *Status  `json:"status,omitempty"`
	ActualAmount  *float64 `json:"actual_amount,omitempty"`
	Comment       string   `json:"comment,omitempty"`
}

type setDefaultRequest struct {
	Amount        float64 `json:"amount"`
	EffectiveDate string  `json:"effective_date"` // YYYY-MM-DD
}

type defaultVersionResponse struct {
	Slot          int     `json:"slot"`
	Amount        float64 `json:"amount"`
	EffectiveDate string  `json:"effective_date"`
}

type resolvedDefaultResponse struct {
	Slot   int     `json:"slot"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// listSlotsHandler godoc
// @Summary Slots de comida configurados
// @Tags meals
// @Produce json
// @Success 200 {array} SlotConfig
// @Router /meals/slots [get]
func listSlotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Slots())
	}
}

// resolveDefaultHandler godoc
// @Summary Default de porción vigente
// @Description Resuelve el tamaño de porción por defecto del slot vigente en la fecha consultada ("as of"). Sin versión vigente devuelve 0. Sin ?date= usa hoy.
// @Tags meals
// @Produce json
// @Param slot path int true "Número de slot"
// @Param date query string false "Fecha YYYY-MM-DD (default hoy)"
// @Success 200 {object} resolvedDefaultResponse
// @Failure 400 {string} string "slot o fecha inválidos"
// @Failure 404 {string} string "unknown meal slot"
// @Router /meals/defaults/{slot} [get]
func resolveDefaultHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
		if err != nil || slot <= 0 {
			http.Error(w, "slot must be a positive integer", http.StatusBadRequest)
			return
		}

		date := dates.Today(time.Now)
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			date, err = dates.Parse(v)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}

		amount, err := svc.ResolveDefault(r.Context(), slot, date)
		if err != nil {
			if err == ErrUnknownSlot {
				http.Error(w, "unknown meal slot", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resolvedDefaultResponse{
			Slot:   slot,
			Date:   date.String(),
			Amount: amount,
		})
	}
}

// setDefaultHandler godoc
// @Summary Definir default de porción
// @Description Registra el default del slot a partir de effective_date. Repetir el mismo par (slot, effective_date) pisa el amount en vez de crear otra versión. Insertar una fecha anterior a versiones existentes corrige retroactivamente las resoluciones intermedias.
// @Tags meals
// @Accept json
// @Produce json
// @Param slot path int true "Número de slot"
// @Param payload body setDefaultRequest true "Amount >= 0 y effective_date YYYY-MM-DD"
// @Success 200 {object} defaultVersionResponse
// @Failure 400 {string} string "payload inválido"
// @Failure 404 {string} string "unknown meal slot"
// @Router /meals/defaults/{slot} [put]
func setDefaultHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
		if err != nil || slot <= 0 {
			http.Error(w, "slot must be a positive integer", http.StatusBadRequest)
			return
		}

		var req setDefaultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		effective, err := dates.Parse(req.EffectiveDate)
		if err != nil {
			http.Error(w, "effective_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.SetDefault(r.Context(), slot, req.Amount, effective)
		if err != nil {
			switch err {
			case ErrUnknownSlot:
				http.Error(w, "unknown meal slot", http.StatusNotFound)
			case ErrInvalidInput:
				http.Error(w, "amount must be >= 0", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, defaultVersionResponse{
			Slot:          v.Slot,
			Amount:        v.Amount,
			EffectiveDate: v.EffectiveDate.String(),
		})
	}
}

// listDayMealsHandler godoc
// @Summary Comidas del día
// @Description Lista todos los slots configurados para la fecha, cada uno con el default vigente resuelto y la entry registrada si la hay.
// @Tags meals
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {array} daySlotResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Router /days/{date}/meals [get]
func listDayMealsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dates.Parse(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		daySlots, err := svc.DayView(r.Context(), date)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]daySlotResponse, 0, len(daySlots))
		for _, ds := range daySlots {
			item := daySlotResponse{
				Slot:          ds.Slot,
				Label:         ds.Label,
				DefaultAmount: ds.DefaultAmount,
			}
			if ds.Entry != nil {
				status := ds.Entry.Status
				item.Status = &status
				item.ActualAmount = ds.Entry.ActualAmount
				item.Comment = ds.Entry.Comment
			}
			out = append(out, item)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// upsertEntryHandler godoc
// @Summary Registrar comida de un slot
// @Description Crea o reemplaza la entry del par (fecha, slot). Status: ate_fully | not_fully | skipped.
// @Tags meals
// @Accept json
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Param slot path int true "Número de slot"
// @Param payload body upsertEntryRequest true "Estado de la comida"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "payload inválido"
// @Failure 404 {string} string "unknown meal slot"
// @Router /days/{date}/meals/{slot} [put]
func upsertEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dates.Parse(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
		if err != nil || slot <= 0 {
			http.Error(w, "slot must be a positive integer", http.StatusBadRequest)
			return
		}

		var req upsertEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.UpsertEntry(r.Context(), date, slot, UpsertEntryInput{
			Status:       req.Status,
			ActualAmount: req.ActualAmount,
			Comment:      req.Comment,
		})
		if err != nil {
			switch err {
			case ErrUnknownSlot:
				http.Error(w, "unknown meal slot", http.StatusNotFound)
			case ErrInvalidInput:
				http.Error(w, "invalid meal status or amount", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, entryResponse{
			Date:         e.Date.String(),
			Slot:         e.Slot,
			Label:        svc.SlotLabel(e.Slot),
			Status:       e.Status,
			ActualAmount: e.ActualAmount,
			Comment:      e.Comment,
		})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
