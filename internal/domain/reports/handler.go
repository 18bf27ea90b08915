package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, asm *Assembler) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Post("/fleet", generateHandler(asm.Fleet))
		rr.Post("/history", generateHandler(asm.History))
		rr.Post("/alerts", generateHandler(asm.Alerts))
		rr.Post("/types", generateHandler(asm.ByType))
	})
}

// generateHandler godoc
// @Summary Generate a report artifact
// @Description Builds the requested report from a fresh snapshot and writes it to the report sink. Artifacts are immutable; each call produces a new file.
// @Tags reports
// @Produce json
// @Success 201 {object} Artifact
// @Failure 404 {string} string "no data for report"
// @Router /reports/{kind} [post]
func generateHandler(generate func(context.Context) (Artifact, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		art, err := generate(r.Context())
		if err != nil {
			if errors.Is(err, ErrNoData) {
				http.Error(w, "no data for report", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, art)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
