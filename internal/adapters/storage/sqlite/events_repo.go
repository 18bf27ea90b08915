package sqlite

import (
	"context"
	"database/sql"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

// Append runs the ledger's atomic unit in one transaction: bare vehicle row
// when the plate is new, the event insert, and the unconditional cache
// update on the vehicle.
func (r *EventsRepo) Append(ctx context.Context, e maintenance.Event) (maintenance.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return maintenance.Event{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO vehicles (plate, registered_at)
		VALUES (?, ?)
	`, e.Plate, e.OccurredAt); err != nil {
		return maintenance.Event{}, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO maintenance_events (plate, occurred_at, type, technician, notes)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.Plate, e.OccurredAt, e.Type, e.Technician, e.Notes,
	)
	if err != nil {
		return maintenance.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return maintenance.Event{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE vehicles
		SET last_maintenance_at = ?, last_maintenance_type = ?
		WHERE plate = ?
	`, e.OccurredAt, e.Type, e.Plate); err != nil {
		return maintenance.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return maintenance.Event{}, err
	}

	e.ID = id
	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, filter maintenance.ListFilter) ([]maintenance.Event, error) {
	query := `
		SELECT id, plate, occurred_at, type, technician, notes
		FROM maintenance_events
	`
	args := []any{}

	if filter.Plate != "" {
		query += " WHERE plate = ?"
		args = append(args, filter.Plate)
	}
	query += " ORDER BY occurred_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]maintenance.Event, 0)
	for rows.Next() {
		var e maintenance.Event
		if err := rows.Scan(
			&e.ID, &e.Plate, &e.OccurredAt, &e.Type, &e.Technician, &e.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
