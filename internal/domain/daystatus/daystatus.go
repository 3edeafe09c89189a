package daystatus

import (
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
)

// Status es la severidad derivada de un día: RED > ORANGE > GREEN.
// @Enum GREEN, ORANGE, RED
type Status string

const (
	StatusGreen  Status = "GREEN"
	StatusOrange Status = "ORANGE"
	StatusRed    Status = "RED"
)

// Severity permite comparar severidades (mayor = peor).
func (s Status) Severity() int {
	switch s {
	case StatusRed:
		return 2
	case StatusOrange:
		return 1
	default:
		return 0
	}
}

// Classify deriva la severidad de un día a partir de los conteos crudos y los
// estados de comida. Función pura y total; los inputs fuera de rango los
// normaliza quien llama, acá no se validan.
//
// Las reglas se evalúan de arriba hacia abajo y gana la primera que matchee
// (las condiciones se superponen, el orden importa):
//
//  1. RED    si vomitó y además (no hizo pis, o no hizo caca, o alguna comida
//     quedó incompleta).
//  2. RED    si no hizo pis NI caca, sin importar vómitos o comidas.
//  3. ORANGE si vomitó (llega acá solo con pis>0, caca>0 y todo comido).
//  4. ORANGE si no hizo pis O no hizo caca (acá exactamente uno es cero).
//  5. ORANGE si alguna comida quedó incompleta.
//  6. GREEN  en cualquier otro caso.
//
// Sin comidas registradas no hay comidas incompletas (verdad vacua), no es un
// disparador automático.
func Classify(vomitCount, peeCount, poopCount int, mealStatuses []meals.Status) Status {
	anyMealNotFull := false
	for _, ms := range mealStatuses {
		if ms != meals.StatusAteFully {
			anyMealNotFull = true
			break
		}
	}

	if vomitCount > 0 && (peeCount == 0 || poopCount == 0 || anyMealNotFull) {
		return StatusRed
	}
	if peeCount == 0 && poopCount == 0 {
		return StatusRed
	}
	if vomitCount > 0 {
		return StatusOrange
	}
	if peeCount == 0 || poopCount == 0 {
		return StatusOrange
	}
	if anyMealNotFull {
		return StatusOrange
	}
	return StatusGreen
}
