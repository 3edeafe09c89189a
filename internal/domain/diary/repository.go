package diary

import (
	"context"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

type Repository interface {
	// Get devuelve la observación de la fecha. Si no hay fila devuelve el
	// registro cero con la fecha seteada, nunca falla por ausencia.
	Get(ctx context.Context, date dates.Date) (Observation, error)

	// Patch mergea solo los campos presentes sobre la fila de la fecha,
	// creándola si no existe. El merge es atómico por fecha.
	Patch(ctx context.Context, date dates.Date, p Patch) error

	// QueryRange devuelve las observaciones almacenadas en el rango cerrado
	// [start, end], ordenadas por fecha ascendente. Las fechas sin fila no
	// aparecen.
	QueryRange(ctx context.Context, start, end dates.Date) ([]Observation, error)

	// FirstDate devuelve la fecha más antigua con observación almacenada.
	// ok=false si el store está vacío.
	FirstDate(ctx context.Context) (dates.Date, bool, error)
}
