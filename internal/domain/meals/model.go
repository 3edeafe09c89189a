package meals

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
)

// Status indica qué tan completa quedó la comida de un slot.
// @Enum ate_fully, not_fully, skipped
type Status string

const (
	StatusAteFully Status = "ate_fully"
	StatusNotFully Status = "not_fully"
	StatusSkipped  Status = "skipped"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusAteFully, StatusNotFully, StatusSkipped:
		return true
	}
	return false
}

// Entry es la comida registrada para un (fecha, slot). Clave compuesta:
// a lo sumo una por par.
type Entry struct {
	Date dates.Date
	Slot int

	Status Status

	// ActualAmount es la cantidad realmente servida/comida (gramos).
	// nil = no se registró cantidad, aplica el default vigente del slot.
	ActualAmount *float64

	Comment string
}

// DefaultVersion es una versión con fecha de vigencia del tamaño de porción
// por defecto de un slot. Historial append-only por slot; la clave es
// (slot, effective_date) y reescribir ese par pisa el amount.
type DefaultVersion struct {
	Slot          int
	Amount        float64
	EffectiveDate dates.Date
}

// SlotConfig define un slot de comida del día. El set de slots es
// configuración del despliegue, no parte del core.
type SlotConfig struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

func DefaultSlots() []SlotConfig {
	return []SlotConfig{
		{Number: 1, Label: "morning"},
		{Number: 2, Label: "day"},
		{Number: 3, Label: "evening"},
		{Number: 4, Label: "night"},
	}
}

// ParseSlots parsea la config de slots en formato "1:morning,2:day,...".
func ParseSlots(s string) ([]SlotConfig, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty slot config")
	}

	seen := map[int]struct{}{}
	out := make([]SlotConfig, 0)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid slot config %q", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid slot number %q", kv[0])
		}
		label := strings.TrimSpace(kv[1])
		if label == "" {
			return nil, fmt.Errorf("slot %d: empty label", n)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("slot %d: duplicated", n)
		}
		seen[n] = struct{}{}
		out = append(out, SlotConfig{Number: n, Label: label})
	}

	if len(out) == 0 {
		return nil, errors.New("empty slot config")
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}
