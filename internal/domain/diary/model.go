package diary

import (
	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

// Observation es el registro observacional de un día. Hay a lo sumo uno por
// fecha y se crea de forma perezosa: que no exista no es error, significa
// "todavía sin actividad" (todos los conteos en cero).
type Observation struct {
	Date dates.Date

	VomitCount int
	PeeCount   int
	PoopCount  int

	TeethBrushed bool

	Notes string
}

// Patch enumera explícitamente cada campo actualizable de la observación.
// nil = no tocar. Evita el merge de campos con nombres sueltos y deja la
// operación chequeable en compilación.
type Patch struct {
	VomitCount   *int
	PeeCount     *int
	PoopCount    *int
	TeethBrushed *bool
	Notes        *string
}

func (p Patch) IsEmpty() bool {
	return p.VomitCount == nil &&
		p.PeeCount == nil &&
		p.PoopCount == nil &&
		p.TeethBrushed == nil &&
		p.Notes == nil
}

// ApplyTo hace el merge de los campos presentes sobre la observación.
// Los adapters lo usan dentro de su sección crítica / transacción para que
// el read-modify-write de una fecha no pierda updates concurrentes.
func (p Patch) ApplyTo(o *Observation) {
	if p.VomitCount != nil {
		o.VomitCount = *p.VomitCount
	}
	if p.PeeCount != nil {
		o.PeeCount = *p.PeeCount
	}
	if p.PoopCount != nil {
		o.PoopCount = *p.PoopCount
	}
	if p.TeethBrushed != nil {
		o.TeethBrushed = *p.TeethBrushed
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
}
