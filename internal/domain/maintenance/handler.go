package maintenance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hevertoncelestino/controle-manutencao/internal/middleware"
)

func RegisterRoutes(r chi.Router, ledger *Ledger, defaultLimit int) {
	r.Route("/maintenance", func(mr chi.Router) {
		mr.Post("/", recordHandler(ledger))
		mr.Get("/", listHandler(ledger, defaultLimit))
		mr.Get("/types", typesHandler())
	})
}

// recordRequest is the body for registering a maintenance event.
type recordRequest struct {
	Plate string `json:"plate"`
	Type  string `json:"type" enums:"CAMERA_RESET,CLOCK_ADJUSTMENT,CABLE_REPLACEMENT,IMAGE_RETRIEVAL,LENS_CLEANING,FIRMWARE_UPDATE,REPOSITIONING,FUNCTION_TEST,OTHER"`
	Notes string `json:"notes"`
	// OccurredAt is optional RFC3339; defaults to now.
	OccurredAt string `json:"occurred_at"`
	// Technician is only honored when no authenticated user is present.
	Technician string `json:"technician"`
}

// EventResponse is the wire shape of a maintenance event, shared with the
// vehicle detail payload.
type EventResponse struct {
	ID         int64  `json:"id"`
	Plate      string `json:"plate"`
	OccurredAt string `json:"occurred_at"`
	Type       string `json:"type"`
	Technician string `json:"technician"`
	Notes      string `json:"notes"`
}

// recordHandler godoc
// @Summary Record a maintenance event
// @Description Appends a maintenance event for the plate. A vehicle that does not exist yet is created bare in the same atomic write, and the vehicle's last-maintenance cache is updated to this event. The technician is taken from the authenticated user (`X-Debug-User` in dev, Bearer token in prod), falling back to the request field and then to "system".
// @Tags maintenance
// @Accept json
// @Produce json
// @Param X-Debug-User header string false "Dev-mode acting user"
// @Param Authorization header string false "Bearer token in production"
// @Param payload body recordRequest true "Event data; occurred_at optional RFC3339"
// @Success 201 {object} EventResponse
// @Failure 400 {string} string "invalid json / plate and type required / occurred_at must be RFC3339"
// @Router /maintenance [post]
func recordHandler(ledger *Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var occurred *time.Time
		if strings.TrimSpace(req.OccurredAt) != "" {
			t, err := time.Parse(time.RFC3339, req.OccurredAt)
			if err != nil {
				http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
				return
			}
			occurred = &t
		}

		tech := req.Technician
		if claims, ok := middleware.GetClaims(r.Context()); ok && strings.TrimSpace(claims.Username) != "" {
			tech = claims.Username
		}

		e, err := ledger.Record(r.Context(), RecordInput{
			Plate:      req.Plate,
			Type:       req.Type,
			Technician: tech,
			Notes:      req.Notes,
			OccurredAt: occurred,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "plate and type required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToEventResponse(e))
	}
}

// listHandler godoc
// @Summary List maintenance history
// @Tags maintenance
// @Produce json
// @Param plate query string false "Narrow to one plate"
// @Param limit query int false "Max rows, default 100"
// @Success 200 {array} EventResponse
// @Router /maintenance [get]
func listHandler(ledger *Ledger, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		items, err := ledger.History(r.Context(), r.URL.Query().Get("plate"), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]EventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, ToEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func typesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Types())
	}
}

func ToEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		Plate:      e.Plate,
		OccurredAt: e.OccurredAt,
		Type:       e.Type,
		Technician: e.Technician,
		Notes:      e.Notes,
	}
}

// writeJSON is duplicated across module handlers on purpose; see the note in
// the vehicles handler.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
