package vehicles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
)

func RegisterRoutes(r chi.Router, svc *Service, ledger *maintenance.Ledger) {
	r.Route("/vehicles", func(vr chi.Router) {
		vr.Post("/", createVehicleHandler(svc))
		vr.Get("/", listVehiclesHandler(svc))
		vr.Get("/{plate}", getVehicleHandler(svc, ledger))
	})
}

type createVehicleRequest struct {
	Plate string `json:"plate"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color"`
	Notes string `json:"notes"`
}

type vehicleResponse struct {
	Plate        string  `json:"plate"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Color        string  `json:"color"`
	Notes        string  `json:"notes"`
	RegisteredAt string  `json:"registered_at"`
	LastDate     *string `json:"last_maintenance_at"`
	LastType     *string `json:"last_maintenance_type"`
}

type vehicleWithStatusResponse struct {
	vehicleResponse
	Status StatusInfo `json:"status"`
}

type vehicleDetailResponse struct {
	Vehicle vehicleResponse             `json:"vehicle"`
	Status  StatusInfo                  `json:"status"`
	History []maintenance.EventResponse `json:"history"`
}

// createVehicleHandler godoc
// @Summary Register a vehicle
// @Description Registers a new vehicle. The plate is case-insensitive and stored uppercase; a plate that already exists is rejected.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param payload body createVehicleRequest true "Vehicle data; only plate is required"
// @Success 201 {object} vehicleResponse
// @Failure 400 {string} string "invalid json / plate required / plate already exists"
// @Router /vehicles [post]
func createVehicleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVehicleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Plate: req.Plate,
			Model: req.Model,
			Year:  req.Year,
			Color: req.Color,
			Notes: req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicatePlate):
				http.Error(w, "plate already exists", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "plate required", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toVehicleResponse(v))
	}
}

// listVehiclesHandler godoc
// @Summary List the fleet with status
// @Tags vehicles
// @Produce json
// @Success 200 {array} vehicleWithStatusResponse
// @Router /vehicles [get]
func listVehiclesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vehicleWithStatusResponse, 0, len(items))
		for _, v := range items {
			out = append(out, vehicleWithStatusResponse{
				vehicleResponse: toVehicleResponse(v),
				Status:          statusOrUnknown(svc, v),
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getVehicleHandler(svc *Service, ledger *maintenance.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plate := chi.URLParam(r, "plate")
		v, err := svc.Get(r.Context(), plate)
		if err != nil {
			http.Error(w, "vehicle not found", http.StatusNotFound)
			return
		}

		history, err := ledger.History(r.Context(), v.Plate, 10)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]maintenance.EventResponse, 0, len(history))
		for _, e := range history {
			out = append(out, maintenance.ToEventResponse(e))
		}

		writeJSON(w, http.StatusOK, vehicleDetailResponse{
			Vehicle: toVehicleResponse(v),
			Status:  statusOrUnknown(svc, v),
			History: out,
		})
	}
}

// statusOrUnknown downgrades a malformed stored timestamp to an unknown
// status instead of failing the whole listing.
func statusOrUnknown(svc *Service, v Vehicle) StatusInfo {
	info, err := svc.Status(v)
	if err != nil {
		return StatusInfo{
			Tier:    TierUnknown,
			Message: "unreadable maintenance date",
		}
	}
	return info
}

func toVehicleResponse(v Vehicle) vehicleResponse {
	return vehicleResponse{
		Plate:        v.Plate,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		Notes:        v.Notes,
		RegisteredAt: v.RegisteredAt,
		LastDate:     v.LastMaintenanceAt,
		LastType:     v.LastMaintenanceType,
	}
}

// writeJSON is duplicated across module handlers on purpose; extracting a
// shared helper is not worth it until more modules need it.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
