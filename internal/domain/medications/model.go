package medications

import (
	"time"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

// Medication es una medicación del catálogo (la pastilla/jarabe que la
// mascota tiene indicada). Las entries diarias referencian su ID.
type Medication struct {
	ID string

	Name   string
	Dosage string // texto libre: "5ml", "1/2 comprimido"

	Active bool

	CreatedAt time.Time
}

// Entry registra si una medicación se dio (o no) en una fecha.
// Clave compuesta (date, medication_id): a lo sumo una por par,
// independiente del ciclo de vida de la observación del día.
type Entry struct {
	Date         dates.Date
	MedicationID string

	Taken   bool
	Comment string
}
