package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "github.com/Berisch/pet-s-health-tracker/internal/adapters/storage/memory"
	pg "github.com/Berisch/pet-s-health-tracker/internal/adapters/storage/postgres"
	lite "github.com/Berisch/pet-s-health-tracker/internal/adapters/storage/sqlite"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/meals"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/medications"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/trends"
	"github.com/Berisch/pet-s-health-tracker/internal/middleware"
	"github.com/Berisch/pet-s-health-tracker/internal/platform/logger"
	"github.com/Berisch/pet-s-health-tracker/internal/platform/metrics"
)

type Options struct {
	Logger logger.Logger // nil => NewFromEnv

	// Opcional: colector de métricas. nil = sin instrumentación (tests).
	// Se crea una sola vez en main: promauto registra en el registry global.
	Metrics *metrics.Collector

	// Opcional: si viene, usa Postgres. Si no, decide por env
	// (STORAGE_DRIVER=postgres|sqlite|memory, default memory).
	DB *sql.DB

	// Opcional: slots de comida. nil = env MEAL_SLOTS o el set default.
	Slots []meals.SlotConfig
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(opts.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/docs/openapi.json", openAPIHandler)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))

	var (
		diaryRepo diary.Repository
		mealsRepo meals.Repository
		medsRepo  medications.Repository
	)

	// Selección de storage: DB explícita > env > memoria.
	db := opts.DB
	driver := os.Getenv("STORAGE_DRIVER")
	if db == nil && driver == "postgres" {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Error("postgres open failed, falling back to memory", map[string]any{"error": err.Error()})
			} else {
				db = opened
			}
		}
	}

	switch {
	case db != nil:
		diaryRepo = pg.NewDiaryRepo(db)
		mealsRepo = pg.NewMealsRepo(db)
		medsRepo = pg.NewMedicationsRepo(db)
		log.Info("storage ready", map[string]any{"driver": "postgres"})
	case driver == "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "data/care.db"
		}
		sdb, err := lite.Open(path)
		if err != nil {
			log.Error("sqlite open failed, falling back to memory", map[string]any{"error": err.Error(), "path": path})
			diaryRepo = mem.NewDiaryRepo()
			mealsRepo = mem.NewMealsRepo()
			medsRepo = mem.NewMedicationsRepo()
			break
		}
		diaryRepo = lite.NewDiaryRepo(sdb)
		mealsRepo = lite.NewMealsRepo(sdb)
		medsRepo = lite.NewMedicationsRepo(sdb)
		log.Info("storage ready", map[string]any{"driver": "sqlite", "path": path})
	default:
		diaryRepo = mem.NewDiaryRepo()
		mealsRepo = mem.NewMealsRepo()
		medsRepo = mem.NewMedicationsRepo()
		log.Info("storage ready", map[string]any{"driver": "memory"})
	}

	slots := opts.Slots
	if slots == nil {
		if raw := os.Getenv("MEAL_SLOTS"); raw != "" {
			parsed, err := meals.ParseSlots(raw)
			if err != nil {
				log.Warn("invalid MEAL_SLOTS, using defaults", map[string]any{"error": err.Error()})
			} else {
				slots = parsed
			}
		}
	}

	// Services por módulo
	diarySvc := diary.NewService(diaryRepo)
	mealsSvc := meals.NewService(mealsRepo, slots)
	medsSvc := medications.NewService(medsRepo)
	trendsSvc := trends.NewService(diarySvc, mealsSvc, opts.Metrics)

	// Rutas por módulo
	diary.RegisterRoutes(r, diarySvc, mealsSvc, medsSvc)
	meals.RegisterRoutes(r, mealsSvc)
	medications.RegisterRoutes(r, medsSvc)
	trends.RegisterRoutes(r, trendsSvc)

	return r
}
