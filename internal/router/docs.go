package router

import (
	"encoding/json"
	"net/http"
)

// openAPIHandler sirve la especificación OpenAPI 3 de la API.
// Se mantiene a mano (sin codegen): la superficie es chica y estable.
func openAPIHandler(w http.ResponseWriter, _ *http.Request) {
	dateParam := func(name, in string, required bool) map[string]any {
		return map[string]any{
			"name":     name,
			"in":       in,
			"required": required,
			"schema":   map[string]any{"type": "string", "format": "date", "example": "2026-08-01"},
		}
	}
	rangeParams := []any{
		dateParam("from", "query", false),
		dateParam("to", "query", false),
		map[string]any{
			"name":   "period",
			"in":     "query",
			"schema": map[string]any{"type": "string", "enum": []string{"week", "month", "all"}},
		},
	}

	spec := map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       "Pet Daily Care API",
			"description": "Registro diario de cuidados de la mascota: observaciones, comidas con defaults con vigencia temporal, medicaciones y tendencias con clasificación GREEN/ORANGE/RED.",
			"version":     "1.0.0",
		},
		"paths": map[string]any{
			"/days/{date}": map[string]any{
				"get": map[string]any{
					"summary":    "Vista completa del día (observación + estado derivado + comidas + medicaciones)",
					"parameters": []any{dateParam("date", "path", true)},
					"responses":  map[string]any{"200": map[string]any{"description": "OK"}, "400": map[string]any{"description": "fecha inválida"}},
				},
				"patch": map[string]any{
					"summary":    "Patch parcial de la observación del día",
					"parameters": []any{dateParam("date", "path", true)},
					"requestBody": map[string]any{
						"content": map[string]any{"application/json": map[string]any{"schema": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"vomit_count":   map[string]any{"type": "integer", "minimum": 0},
								"pee_count":     map[string]any{"type": "integer", "minimum": 0},
								"poop_count":    map[string]any{"type": "integer", "minimum": 0},
								"teeth_brushed": map[string]any{"type": "boolean"},
								"notes":         map[string]any{"type": "string"},
							},
						}}},
					},
					"responses": map[string]any{"200": map[string]any{"description": "vista del día actualizada"}},
				},
			},
			"/days/{date}/meals": map[string]any{
				"get": map[string]any{
					"summary":    "Comidas del día por slot, con el default vigente resuelto",
					"parameters": []any{dateParam("date", "path", true)},
					"responses":  map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
			"/days/{date}/meals/{slot}": map[string]any{
				"put": map[string]any{
					"summary": "Registrar comida de un slot (ate_fully | not_fully | skipped)",
					"parameters": []any{
						dateParam("date", "path", true),
						map[string]any{"name": "slot", "in": "path", "required": true, "schema": map[string]any{"type": "integer"}},
					},
					"responses": map[string]any{"200": map[string]any{"description": "OK"}, "404": map[string]any{"description": "slot desconocido"}},
				},
			},
			"/days/{date}/medications": map[string]any{
				"get": map[string]any{
					"summary":    "Medicaciones del día",
					"parameters": []any{dateParam("date", "path", true)},
					"responses":  map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
			"/days/{date}/medications/{medicationID}": map[string]any{
				"put": map[string]any{
					"summary": "Registrar toma de una medicación",
					"parameters": []any{
						dateParam("date", "path", true),
						map[string]any{"name": "medicationID", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
					},
					"responses": map[string]any{"200": map[string]any{"description": "OK"}, "404": map[string]any{"description": "medicación inexistente"}},
				},
			},
			"/medications": map[string]any{
				"get":  map[string]any{"summary": "Catálogo de medicaciones", "responses": map[string]any{"200": map[string]any{"description": "OK"}}},
				"post": map[string]any{"summary": "Alta de medicación", "responses": map[string]any{"201": map[string]any{"description": "creada"}}},
			},
			"/meals/slots": map[string]any{
				"get": map[string]any{"summary": "Slots de comida configurados", "responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/meals/defaults/{slot}": map[string]any{
				"get": map[string]any{
					"summary": "Default de porción vigente en una fecha (as-of)",
					"parameters": []any{
						map[string]any{"name": "slot", "in": "path", "required": true, "schema": map[string]any{"type": "integer"}},
						dateParam("date", "query", false),
					},
					"responses": map[string]any{"200": map[string]any{"description": "OK"}},
				},
				"put": map[string]any{
					"summary":    "Definir (o corregir retroactivamente) el default de un slot",
					"parameters": []any{map[string]any{"name": "slot", "in": "path", "required": true, "schema": map[string]any{"type": "integer"}}},
					"responses":  map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
			"/trends/summary": map[string]any{
				"get": map[string]any{
					"summary":    "Resumen agregado del rango (estados, vómitos, pis/caca, series para graficar)",
					"parameters": rangeParams,
					"responses":  map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
			"/trends/problem-days": map[string]any{
				"get": map[string]any{
					"summary":    "Días ORANGE/RED del rango con sus problemas derivados, más reciente primero",
					"parameters": rangeParams,
					"responses":  map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
			"/health":  map[string]any{"get": map[string]any{"summary": "Liveness", "responses": map[string]any{"200": map[string]any{"description": "ok"}}}},
			"/metrics": map[string]any{"get": map[string]any{"summary": "Métricas Prometheus", "responses": map[string]any{"200": map[string]any{"description": "OK"}}}},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(spec)
}
