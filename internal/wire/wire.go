// Package wire provides dependency injection for the cfrsync application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/cfrsync/internal/adapters/ecfr"
	"github.com/example/cfrsync/internal/adapters/sqlite"
	"github.com/example/cfrsync/internal/app"
	"github.com/example/cfrsync/internal/config"
	"github.com/example/cfrsync/internal/db"
	"github.com/example/cfrsync/internal/metrics"
	"github.com/example/cfrsync/internal/ports/primary"
)

var (
	ingestService      primary.IngestService
	verifyService      primary.VerifyService
	correctionsService primary.CorrectionsService
	statusService      primary.StatusService
	appMetrics         *metrics.Metrics
	once               sync.Once
)

// IngestService returns the singleton IngestService instance.
func IngestService() primary.IngestService {
	once.Do(initServices)
	return ingestService
}

// VerifyService returns the singleton VerifyService instance.
func VerifyService() primary.VerifyService {
	once.Do(initServices)
	return verifyService
}

// CorrectionsService returns the singleton CorrectionsService instance.
func CorrectionsService() primary.CorrectionsService {
	once.Do(initServices)
	return correctionsService
}

// StatusService returns the singleton StatusService instance.
func StatusService() primary.StatusService {
	once.Do(initServices)
	return statusService
}

// Metrics returns the process-wide metrics, registered against the default
// Prometheus registry.
func Metrics() *metrics.Metrics {
	once.Do(initServices)
	return appMetrics
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg := config.FromEnv()

	database, err := db.GetDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	agencyRepo := sqlite.NewAgencyRepository(database)
	titleRepo := sqlite.NewTitleRepository(database)
	linkRepo := sqlite.NewAgencyTitleRepository(database)
	corrRepo := sqlite.NewCorrectionRepository(database)
	stages := sqlite.NewStageRunner(database)

	source := ecfr.NewClient(cfg.BaseURL, cfg.HTTPTimeout)
	appMetrics = metrics.New(prometheus.DefaultRegisterer)

	// Services (primary ports implementation)
	ingestService = app.NewIngestService(source, agencyRepo, titleRepo, linkRepo, corrRepo, stages, appMetrics)
	verifyService = app.NewVerifyService(agencyRepo)
	correctionsService = app.NewCorrectionsService(titleRepo, corrRepo)
	statusService = app.NewStatusService(agencyRepo, titleRepo, linkRepo, corrRepo)
}
