package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/adapters/reportsink/csvdir"
	mem "github.com/hevertoncelestino/controle-manutencao/internal/adapters/storage/memory"
	pg "github.com/hevertoncelestino/controle-manutencao/internal/adapters/storage/postgres"
	sq "github.com/hevertoncelestino/controle-manutencao/internal/adapters/storage/sqlite"
	"github.com/hevertoncelestino/controle-manutencao/internal/config"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/analytics"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/reports"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
	"github.com/hevertoncelestino/controle-manutencao/internal/router"
	"github.com/hevertoncelestino/controle-manutencao/internal/scheduler"
)

// @title Fleet Maintenance API
// @version 2.0.0
// @description Maintenance status and analytics for a vehicle fleet.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		vehicleRepo vehicles.Repository
		eventRepo   maintenance.Repository
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		vehicleRepo = pg.NewVehiclesRepo(db)
		eventRepo = pg.NewEventsRepo(db)
	case "memory":
		store := mem.NewStore()
		vehicleRepo = store.Vehicles()
		eventRepo = store.Events()
	default:
		db, err := sq.Open(ctx, cfg.DBDSN)
		if err != nil {
			log.Error("sqlite open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		vehicleRepo = sq.NewVehiclesRepo(db)
		eventRepo = sq.NewEventsRepo(db)
	}

	sink := csvdir.New(cfg.ExportsDir)

	// The scheduler gets its own assembler over the same repos and sink; the
	// router builds an identical one for the report endpoints.
	loader := analytics.NewLoader(vehicleRepo, eventRepo)
	engine := analytics.NewEngine(log)
	assembler := reports.NewAssembler(loader, engine, sink, log)

	sched := scheduler.New(assembler, time.Duration(cfg.SnapshotIntervalHours)*time.Hour, log)
	go sched.Run(ctx)

	r := router.NewRouter(router.Options{
		AuthVerifier: nil, // dev mode until a verifier is plugged in
		Vehicles:     vehicleRepo,
		Events:       eventRepo,
		Sink:         sink,
		Log:          log,
		HistoryLimit: cfg.HistoryLimit,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr, "driver": cfg.DBDriver})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
