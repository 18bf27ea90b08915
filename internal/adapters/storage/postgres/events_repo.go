package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

// Append runs the ledger's atomic unit in one transaction; see the sqlite
// adapter for the matching shape.
func (r *EventsRepo) Append(ctx context.Context, e maintenance.Event) (maintenance.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return maintenance.Event{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO vehicles (plate, registered_at)
		VALUES ($1, $2)
		ON CONFLICT (plate) DO NOTHING
	`, e.Plate, e.OccurredAt); err != nil {
		return maintenance.Event{}, err
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO maintenance_events (plate, occurred_at, type, technician, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		e.Plate, e.OccurredAt, e.Type, e.Technician, e.Notes,
	).Scan(&id); err != nil {
		return maintenance.Event{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE vehicles
		SET last_maintenance_at = $1, last_maintenance_type = $2
		WHERE plate = $3
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
	argN := 1

	if filter.Plate != "" {
		query += " WHERE plate = $1"
		args = append(args, filter.Plate)
		argN++
	}
	query += " ORDER BY occurred_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argN)
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
