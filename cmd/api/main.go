package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Berisch/pet-s-health-tracker/internal/platform/logger"
	"github.com/Berisch/pet-s-health-tracker/internal/platform/metrics"
	"github.com/Berisch/pet-s-health-tracker/internal/router"
)

func main() {
	_ = godotenv.Load() // .env opcional, el env real tiene prioridad

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Una sola vez por proceso: promauto registra en el registry global.
	collector := metrics.NewCollector("pet_care")

	r := router.NewRouter(router.Options{
		Logger:  log,
		Metrics: collector,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
