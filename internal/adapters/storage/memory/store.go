// Package memory is an in-memory store for dev mode and tests. One mutex
// guards vehicles and events together, which is what makes Append atomic.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
)

type state struct {
	mu       sync.RWMutex
	vehicles map[string]vehicles.Vehicle
	events   []maintenance.Event
	nextID   int64
}

type Store struct {
	st *state
}

func NewStore() *Store {
	return &Store{st: &state{
		vehicles: make(map[string]vehicles.Vehicle),
		nextID:   1,
	}}
}

func (s *Store) Vehicles() vehicles.Repository {
	return &vehicleRepo{st: s.st}
}

func (s *Store) Events() maintenance.Repository {
	return &eventRepo{st: s.st}
}

type vehicleRepo struct {
	st *state
}

func (r *vehicleRepo) Create(ctx context.Context, v vehicles.Vehicle) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.vehicles[v.Plate]; exists {
		return vehicles.ErrDuplicatePlate
	}
	r.st.vehicles[v.Plate] = v
	return nil
}

func (r *vehicleRepo) Get(ctx context.Context, plate string) (vehicles.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	v, ok := r.st.vehicles[plate]
	if !ok {
		return vehicles.Vehicle{}, vehicles.ErrNotFound
	}
	return v, nil
}

func (r *vehicleRepo) List(ctx context.Context) ([]vehicles.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]vehicles.Vehicle, 0, len(r.st.vehicles))
	for _, v := range r.st.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Plate < out[j].Plate
	})
	return out, nil
}

type eventRepo struct {
	st *state
}

func (r *eventRepo) Append(ctx context.Context, e maintenance.Event) (maintenance.Event, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	v, ok := r.st.vehicles[e.Plate]
	if !ok {
		// Implicit bare vehicle; registered when its first event occurred.
		v = vehicles.Vehicle{Plate: e.Plate, RegisteredAt: e.OccurredAt}
	}

	e.ID = r.st.nextID
	r.st.nextID++
	r.st.events = append(r.st.events, e)

	occurred, typ := e.OccurredAt, e.Type
	v.LastMaintenanceAt = &occurred
	v.LastMaintenanceType = &typ
	r.st.vehicles[e.Plate] = v

	return e, nil
}

func (r *eventRepo) List(ctx context.Context, filter maintenance.ListFilter) ([]maintenance.Event, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]maintenance.Event, 0)
	for _, e := range r.st.events {
		if filter.Plate != "" && e.Plate != filter.Plate {
			continue
		}
		out = append(out, e)
	}

	// Most recent first; the canonical layout makes string order equal to
	// chronological order, ids break ties.
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccurredAt != out[j].OccurredAt {
			return out[i].OccurredAt > out[j].OccurredAt
		}
		return out[i].ID > out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
