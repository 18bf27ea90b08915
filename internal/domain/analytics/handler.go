package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, loader *Loader, engine *Engine) {
	r.Get("/dashboard", dashboardHandler(loader, engine))
	r.Get("/alerts", alertsHandler(loader, engine))
}

// dashboardHandler godoc
// @Summary Fleet dashboard payload
// @Description KPIs, monthly trends, forecast, ranking and the dashboard alert feed, all computed from one snapshot.
// @Tags analytics
// @Produce json
// @Success 200 {object} Dashboard
// @Router /dashboard [get]
func dashboardHandler(loader *Loader, engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := loader.Load(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, engine.Dashboard(s))
	}
}

// alertsHandler godoc
// @Summary Fleet alert lists
// @Description Vehicles past the fresh tier, grouped into warning (7-13 days) and critical (14+).
// @Tags analytics
// @Produce json
// @Success 200 {object} FleetAlerts
// @Router /alerts [get]
func alertsHandler(loader *Loader, engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := loader.Load(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, engine.FleetAlerts(s))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
