package postgres

import (
	"context"
	"database/sql"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
)

type VehiclesRepo struct {
	db *sql.DB
}

func NewVehiclesRepo(db *sql.DB) *VehiclesRepo {
	return &VehiclesRepo{db: db}
}

func (r *VehiclesRepo) Create(ctx context.Context, v vehicles.Vehicle) error {
	// ON CONFLICT DO NOTHING + RowsAffected: the uniqueness violation comes
	// back as a result, not a driver error.
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO vehicles (plate, model, year, color, notes, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plate) DO NOTHING
	`,
		v.Plate, v.Model, v.Year, v.Color, v.Notes, v.RegisteredAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return vehicles.ErrDuplicatePlate
	}
	return nil
}

func (r *VehiclesRepo) Get(ctx context.Context, plate string) (vehicles.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT plate, model, year, color, notes, registered_at,
		       last_maintenance_at, last_maintenance_type
		FROM vehicles
		WHERE plate = $1
	`, plate)

	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return vehicles.Vehicle{}, vehicles.ErrNotFound
	}
	return v, err
}

func (r *VehiclesRepo) List(ctx context.Context) ([]vehicles.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT plate, model, year, color, notes, registered_at,
		       last_maintenance_at, last_maintenance_type
		FROM vehicles
		ORDER BY plate
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vehicles.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (vehicles.Vehicle, error) {
	var v vehicles.Vehicle
	var last, lastType sql.NullString

	if err := row.Scan(
		&v.Plate, &v.Model, &v.Year, &v.Color, &v.Notes, &v.RegisteredAt,
		&last, &lastType,
	); err != nil {
		return vehicles.Vehicle{}, err
	}

	if last.Valid {
		s := last.String
		v.LastMaintenanceAt = &s
	}
	if lastType.Valid {
		s := lastType.String
		v.LastMaintenanceType = &s
	}
	return v, nil
}
