package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/hevertoncelestino/controle-manutencao/docs"
	"github.com/hevertoncelestino/controle-manutencao/internal/adapters/reportsink/csvdir"
	mem "github.com/hevertoncelestino/controle-manutencao/internal/adapters/storage/memory"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/analytics"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/reports"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
	"github.com/hevertoncelestino/controle-manutencao/internal/middleware"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
	"github.com/hevertoncelestino/controle-manutencao/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil = dev mode (X-Debug-User header)

	// Storage; both nil falls back to a shared in-memory store.
	Vehicles vehicles.Repository
	Events   maintenance.Repository

	// Report sink; nil falls back to CSV files under ./exports.
	Sink reports.Sink

	Log          logger.Logger
	HistoryLimit int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	vehicleRepo := opts.Vehicles
	eventRepo := opts.Events
	if vehicleRepo == nil || eventRepo == nil {
		store := mem.NewStore()
		vehicleRepo = store.Vehicles()
		eventRepo = store.Events()
	}

	sink := opts.Sink
	if sink == nil {
		sink = csvdir.New("exports")
	}

	historyLimit := opts.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 100
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", healthHandler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services per module
	vehiclesSvc := vehicles.NewService(vehicleRepo)
	ledger := maintenance.NewLedger(eventRepo, log)
	loader := analytics.NewLoader(vehicleRepo, eventRepo)
	engine := analytics.NewEngine(log)
	assembler := reports.NewAssembler(loader, engine, sink, log)

	// Routes per module
	vehicles.RegisterRoutes(r, vehiclesSvc, ledger)
	maintenance.RegisterRoutes(r, ledger, historyLimit)
	analytics.RegisterRoutes(r, loader, engine)
	reports.RegisterRoutes(r, assembler)

	return r
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "online",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "2.0.0",
		})
	}
}
