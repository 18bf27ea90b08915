package maintenance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

var ErrInvalidInput = errors.New("invalid input")

// Ledger is the write path for maintenance events. It owns the invariant
// that a vehicle's last-maintenance cache always matches its latest event;
// every write goes through Record, which delegates the atomic unit to the
// repository.
type Ledger struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewLedger(repo Repository, log logger.Logger) *Ledger {
	return &Ledger{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

type RecordInput struct {
	Plate string
	Type  string
	// Technician defaults to DefaultTechnician when blank.
	Technician string
	Notes      string
	// OccurredAt defaults to now. The cache update is unconditional, so a
	// caller backfilling an older timestamp leaves the cache pointing at the
	// backfilled event, not the chronologically latest one.
	OccurredAt *time.Time
}

func (l *Ledger) Record(ctx context.Context, in RecordInput) (Event, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" {
		return Event{}, ErrInvalidInput
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return Event{}, ErrInvalidInput
	}

	tech := strings.TrimSpace(in.Technician)
	if tech == "" {
		tech = DefaultTechnician
	}

	occurred := l.now()
	if in.OccurredAt != nil {
		occurred = *in.OccurredAt
	}

	e := Event{
		Plate:      plate,
		OccurredAt: timefmt.Format(occurred),
		Type:       typ,
		Technician: tech,
		Notes:      strings.TrimSpace(in.Notes),
	}

	persisted, err := l.repo.Append(ctx, e)
	if err != nil {
		return Event{}, err
	}

	l.log.Info("maintenance recorded", map[string]any{
		"event_id": persisted.ID,
		"plate":    persisted.Plate,
		"type":     persisted.Type,
	})

	return persisted, nil
}

// History lists events, all plates when plate is blank.
func (l *Ledger) History(ctx context.Context, plate string, limit int) ([]Event, error) {
	return l.repo.List(ctx, ListFilter{
		Plate: strings.ToUpper(strings.TrimSpace(plate)),
		Limit: limit,
	})
}
