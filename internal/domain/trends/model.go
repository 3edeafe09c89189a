package trends

import (
	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/daystatus"
)

type StatusCounts struct {
	Red    int
	Orange int
	Green  int
}

// ChartPoint es un punto de una serie diaria para graficar. Las fechas sin
// registro no aparecen (se omiten los huecos, no se interpolan).
type ChartPoint struct {
	Date  dates.Date
	Count int
}

// Summary son los agregados de un rango cerrado de fechas. Es una proyección
// de solo lectura: nunca se persiste, se recalcula siempre a demanda.
type Summary struct {
	FromDate dates.Date
	ToDate   dates.Date

	// TotalDays cuenta las fechas del rango con al menos un registro
	// (observación o comida).
	TotalDays    int
	StatusCounts StatusCounts

	DaysWithVomit    int
	DaysWithoutVomit int

	DaysWithPee  int
	DaysWithPoop int
	// Fechas con el conteo en cero, más reciente primero (para mostrar).
	NoPeeDates  []dates.Date
	NoPoopDates []dates.Date

	TotalMealEntries   int
	MealsNotFullyEaten int

	// Series paralelas por día, ascendentes por fecha.
	MissedMealSeries []ChartPoint
	VomitSeries      []ChartPoint
}

// ProblemDay es un día cuyo estado derivado no es GREEN, con la lista de
// problemas legible por humanos. La lista se genera siempre desde los mismos
// conteos crudos que la clasificación, nunca se almacena: así no puede
// divergir del motivo de la severidad.
type ProblemDay struct {
	Date   dates.Date
	Status daystatus.Status
	Issues []string
}
