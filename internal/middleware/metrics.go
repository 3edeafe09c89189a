package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Berisch/pet-s-health-tracker/internal/platform/metrics"
)

// Metrics registra conteo y duración por request. Usa el patrón de ruta de
// chi (ej. /days/{date}) y no el path concreto, para no explotar en
// cardinalidad. collector nil = no-op (tests).
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := chi.RouteContext(r.Context()).RoutePattern()
			if path == "" {
				path = "unmatched"
			}
			collector.HTTPRequestsTotal.
				WithLabelValues(path, r.Method, strconv.Itoa(ww.Status())).
				Inc()
			collector.HTTPRequestDuration.
				WithLabelValues(path, r.Method).
				Observe(time.Since(started).Seconds())
		})
	}
}
