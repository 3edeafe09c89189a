package medications

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/medications", createMedicationHandler(svc))
	r.Get("/medications", listMedicationsHandler(svc))

	r.Get("/days/{date}/medications", listDayMedicationsHandler(svc))
	r.Put("/days/{date}/medications/{medicationID}", upsertEntryHandler(svc))
}

type createMedicationRequest struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

type medicationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type upsertEntryRequest struct {
	Taken   bool   `json:"taken"`
	Comment string `json:"comment"`
}

type entryResponse struct {
	Date         string `json:"date"`
	MedicationID string `json:"medication_id"`
	Taken        bool   `json:"taken"`
	Comment      string `json:"comment,omitempty"`
}

type dayMedicationResponse struct {
	Medication medicationResponse `json:"medication"`
	Taken      *bool              `json:"taken,omitempty"` // ausente = sin registrar
	Comment    string             `json:"comment,omitempty"`
}

// createMedicationHandler godoc
// @Summary Alta de medicación en el catálogo
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Nombre obligatorio"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / name required"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), CreateInput{
			Name:   req.Name,
			Dosage: req.Dosage,
		})
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, "name required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary Catálogo de medicaciones
// @Tags medications
// @Produce json
// @Success 200 {array} medicationResponse
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listDayMedicationsHandler godoc
// @Summary Medicaciones del día
// @Description Lista las medicaciones activas del catálogo con lo registrado en la fecha (taken ausente = sin registrar).
// @Tags medications
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {array} dayMedicationResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Router /days/{date}/medications [get]
func listDayMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dates.Parse(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := svc.DayView(r.Context(), date)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dayMedicationResponse, 0, len(items))
		for _, dm := range items {
			item := dayMedicationResponse{Medication: toMedicationResponse(dm.Medication)}
			if dm.Entry != nil {
				taken := dm.Entry.Taken
				item.Taken = &taken
				item.Comment = dm.Entry.Comment
			}
			out = append(out, item)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// upsertEntryHandler godoc
// @Summary Registrar toma de medicación
// @Description Crea o reemplaza la entry del par (fecha, medicación). La medicación debe existir en el catálogo.
// @Tags medications
// @Accept json
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Param medicationID path string true "ID de la medicación"
// @Param payload body upsertEntryRequest true "taken + comentario opcional"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "payload inválido"
// @Failure 404 {string} string "medication not found"
// @Router /days/{date}/medications/{medicationID} [put]
func upsertEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := dates.Parse(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		medicationID := chi.URLParam(r, "medicationID")

		var req upsertEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.UpsertEntry(r.Context(), date, medicationID, UpsertEntryInput{
			Taken:   req.Taken,
			Comment: req.Comment,
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "medication not found", http.StatusNotFound)
			case ErrInvalidInput:
				http.Error(w, "medication id required", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, entryResponse{
			Date:         e.Date.String(),
			MedicationID: e.MedicationID,
			Taken:        e.Taken,
			Comment:      e.Comment,
		})
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:        m.ID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
