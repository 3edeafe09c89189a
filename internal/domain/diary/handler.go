package diary

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/daystatus"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/medications"
)

func RegisterRoutes(r chi.Router, svc *Service, mealsSvc *meals.Service, medsSvc *medications.Service) {
	r.Get("/days/{date}", getDayHandler(svc, mealsSvc, medsSvc))
	r.Patch("/days/{date}", updateDayHandler(svc, mealsSvc, medsSvc))
}

// observationResponse es la observación cruda del día.
type observationResponse struct {
	Date         string `json:"date"`
	VomitCount   int    `json:"vomit_count"`
	PeeCount     int    `json:"pee_count"`
	PoopCount    int    `json:"poop_count"`
	TeethBrushed bool   `json:"teeth_brushed"`
	Notes        string `json:"notes"`
}

type dayMealResponse struct {
	Slot          int           `json:"slot"`
	Label         string        `json:"label"`
	DefaultAmount float64       `json:"default_amount"`
	Status        *meals.Status `json:"status,omitempty"`
	ActualAmount  *float64      `json:"actual_amount,omitempty"`
	Comment       string        `json:"comment,omitempty"`
}

type dayMedicationResponse struct {
	MedicationID string `json:"medication_id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Taken        *bool  `json:"taken,omitempty"` // ausente = sin registrar hoy
	Comment      string `json:"comment,omitempty"`
}

// dayResponse es la vista completa de un día: observación, estado derivado,
// comidas materializadas contra los defaults vigentes y medicaciones.
type dayResponse struct {
	Date        string                  `json:"date"`
	Status      daystatus.Status        `json:"status" enums:"GREEN,ORANGE,RED"`
	Observation observationResponse     `json:"observation"`
	Meals       []dayMealResponse       `json:"meals"`
	Medications []dayMedicationResponse `json:"medications"`
}

// updateDayRequest es el patch parcial de la observación del día.
// Punteros para PATCH real: nil = no tocar.
type updateDayRequest struct {
	VomitCount   *int    `json:"vomit_count"`
	PeeCount     *int    `json:"pee_count"`
	PoopCount    *int    `json:"poop_count"`
	TeethBrushed *bool   `json:"teeth_brushed"`
	Notes        *string `json:"notes"`
}

// getDayHandler godoc
// @Summary Vista del día
// @Description Devuelve la vista completa de una fecha: observación (registro cero si no hay actividad), estado derivado GREEN/ORANGE/RED recalculado, comidas por slot con el default vigente resuelto y medicaciones. Una fecha sin datos no es error.
// @Tags days
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {object} dayResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Router /days/{date} [get]
func getDayHandler(svc *Service, mealsSvc *meals.Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dates.Parse(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		resp, err := buildDayResponse(r, svc, mealsSvc, medsSvc, date)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// updateDayHandler godoc
// @Summary Actualizar observación del día
// @Description Aplica un patch parcial sobre la observación de la fecha: solo los campos presentes se tocan. Crea la fila si no existía. Devuelve la vista del día con el estado derivado recalculado.
// @Tags days
// @Accept json
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Param payload body updateDayRequest true "Campos a actualizar (los ausentes no se tocan)"
// @Success 200 {object} dayResponse
// @Failure 400 {string} string "invalid json / empty patch"
// @Router /days/{date} [patch]
func updateDayHandler(svc *Service, mealsSvc *meals.Service, medsSvc *medications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dates.Parse(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateDayRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		_, err = svc.Update(r.Context(), date, Patch{
			VomitCount:   req.VomitCount,
			PeeCount:     req.PeeCount,
			PoopCount:    req.PoopCount,
			TeethBrushed: req.TeethBrushed,
			Notes:        req.Notes,
		})
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, "empty patch", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp, err := buildDayResponse(r, svc, mealsSvc, medsSvc, date)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func buildDayResponse(r *http.Request, svc *Service, mealsSvc *meals.Service, medsSvc *medications.Service, date dates.Date) (dayResponse, error) {
	ctx := r.Context()

	obs, err := svc.Get(ctx, date)
	if err != nil {
		return dayResponse{}, err
	}

	daySlots, err := mealsSvc.DayView(ctx, date)
	if err != nil {
		return dayResponse{}, err
	}

	dayMeds, err := medsSvc.DayView(ctx, date)
	if err != nil {
		return dayResponse{}, err
	}

	// El estado se deriva siempre acá, desde los conteos crudos del día:
	// cualquier copia almacenada sería un cache que no hay que confiar.
	statuses := make([]meals.Status, 0, len(daySlots))
	for _, ds := range daySlots {
		if ds.Entry != nil {
			statuses = append(statuses, ds.Entry.Status)
		}
	}
	st := daystatus.Classify(obs.VomitCount, obs.PeeCount, obs.PoopCount, statuses)

	resp := dayResponse{
		Date:   date.String(),
		Status: st,
		Observation: observationResponse{
			Date:         date.String(),
			VomitCount:   obs.VomitCount,
			PeeCount:     obs.PeeCount,
			PoopCount:    obs.PoopCount,
			TeethBrushed: obs.TeethBrushed,
			Notes:        obs.Notes,
		},
		Meals:       make([]dayMealResponse, 0, len(daySlots)),
		Medications: make([]dayMedicationResponse, 0, len(dayMeds)),
	}

	for _, ds := range daySlots {
		m := dayMealResponse{
			Slot:          ds.Slot,
			Label:         ds.Label,
			DefaultAmount: ds.DefaultAmount,
		}
		if ds.Entry != nil {
			status := ds.Entry.Status
			m.Status = &status
			m.ActualAmount = ds.Entry.ActualAmount
			m.Comment = ds.Entry.Comment
		}
		resp.Meals = append(resp.Meals, m)
	}

	for _, dm := range dayMeds {
		md := dayMedicationResponse{
			MedicationID: dm.Medication.ID,
			Name:         dm.Medication.Name,
			Dosage:       dm.Medication.Dosage,
		}
		if dm.Entry != nil {
			taken := dm.Entry.Taken
			md.Taken = &taken
			md.Comment = dm.Entry.Comment
		}
		resp.Medications = append(resp.Medications, md)
	}

	return resp, nil
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
