package analytics

import (
	"context"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
)

// Snapshot is a full read of the fleet taken at one instant. Every analytics
// output is computed from a snapshot; there is no incremental update path.
type Snapshot struct {
	Vehicles []vehicles.Vehicle
	Events   []maintenance.Event
}

type Loader struct {
	vehicles vehicles.Repository
	events   maintenance.Repository
}

func NewLoader(vr vehicles.Repository, er maintenance.Repository) *Loader {
	return &Loader{vehicles: vr, events: er}
}

func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	vs, err := l.vehicles.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	// Limit 0 = uncapped: analytics needs the whole history.
	es, err := l.events.List(ctx, maintenance.ListFilter{})
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Vehicles: vs, Events: es}, nil
}
