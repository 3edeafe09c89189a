package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector agrupa las métricas de la app.
type Collector struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	TrendsQueriesTotal  *prometheus.CounterVec
	TrendsQueryDuration prometheus.Histogram

	ImportedRecordsTotal prometheus.Counter
}

func NewCollector(namespace string) *Collector {
	return &Collector{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Requests HTTP por ruta, método y status.",
			},
			[]string{"path", "method", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duración de requests HTTP por ruta y método.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		TrendsQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trends_queries_total",
				Help:      "Consultas de tendencias por tipo (summary/problem_days).",
			},
			[]string{"kind"},
		),
		TrendsQueryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "trends_query_duration_seconds",
				Help:      "Duración de la agregación de tendencias.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ImportedRecordsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imported_records_total",
				Help:      "Observaciones importadas desde CSV.",
			},
		),
	}
}
