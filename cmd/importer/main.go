package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	pg "github.com/Berisch/pet-s-health-tracker/internal/adapters/storage/postgres"
	lite "github.com/Berisch/pet-s-health-tracker/internal/adapters/storage/sqlite"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/dates"
	"github.com/Berisch/pet-s-health-tracker/internal/domain/diary"
	"github.com/Berisch/pet-s-health-tracker/internal/platform/logger"
	"github.com/Berisch/pet-s-health-tracker/internal/platform/metrics"
)

// Importa observaciones históricas desde un CSV con header:
//
//	date,vomit_count,pee_count,poop_count,teeth_brushed,notes
//
// Cada fila se aplica como patch sobre su fecha, así re-importar el mismo
// archivo es idempotente y no pisa campos que el CSV no trae.
func main() {
	file := flag.String("file", "observations.csv", "CSV file with daily observations")
	flag.Parse()

	_ = godotenv.Load()

	log := logger.NewFromEnv()
	collector := metrics.NewCollector("pet_care_importer")

	repo, closeFn, err := openRepo()
	if err != nil {
		log.Error("storage open failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer closeFn()

	svc := diary.NewService(repo)

	f, err := os.Open(*file)
	if err != nil {
		log.Error("cannot open csv", map[string]any{"error": err.Error(), "file": *file})
		os.Exit(1)
	}
	defer f.Close()

	imported, skipped, err := importCSV(context.Background(), svc, f, collector)
	if err != nil {
		log.Error("import failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log.Info("import finished", map[string]any{
		"file":     *file,
		"imported": imported,
		"skipped":  skipped,
	})
}

func openRepo() (diary.Repository, func(), error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			return nil, nil, err
		}
		return pg.NewDiaryRepo(db), func() { _ = db.Close() }, nil
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "data/care.db"
	}
	db, err := lite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return lite.NewDiaryRepo(db), func() { _ = db.Close() }, nil
}

func importCSV(ctx context.Context, svc *diary.Service, r io.Reader, collector *metrics.Collector) (imported, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6

	// Header obligatorio.
	if _, err := cr.Read(); err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, err
		}

		patch, date, perr := parseRow(rec)
		if perr != nil {
			skipped++
			continue
		}

		if _, err := svc.Update(ctx, date, patch); err != nil {
			return imported, skipped, fmt.Errorf("row %s: %w", date, err)
		}
		imported++
		if collector != nil {
			collector.ImportedRecordsTotal.Inc()
		}
	}
	return imported, skipped, nil
}

func parseRow(rec []string) (diary.Patch, dates.Date, error) {
	date, err := dates.Parse(strings.TrimSpace(rec[0]))
	if err != nil {
		return diary.Patch{}, "", err
	}

	var p diary.Patch
	if v, err := parseCount(rec[1]); err == nil {
		p.VomitCount = v
	}
	if v, err := parseCount(rec[2]); err == nil {
		p.PeeCount = v
	}
	if v, err := parseCount(rec[3]); err == nil {
		p.PoopCount = v
	}
	if s := strings.TrimSpace(rec[4]); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return diary.Patch{}, "", err
		}
		p.TeethBrushed = &b
	}
	if s := strings.TrimSpace(rec[5]); s != "" {
		p.Notes = &s
	}

	if p.IsEmpty() {
		return diary.Patch{}, "", fmt.Errorf("empty row for %s", date)
	}
	return p, date, nil
}

// parseCount devuelve nil (campo ausente) para celdas vacías.
func parseCount(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
