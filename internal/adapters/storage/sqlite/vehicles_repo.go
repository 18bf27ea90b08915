package sqlite

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
	// INSERT OR IGNORE + RowsAffected turns the uniqueness violation into a
	// result instead of a driver error to sniff.
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO vehicles (plate, model, year, color, notes, registered_at)
		VALUES (?, ?, ?, ?, ?, ?)
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
		WHERE plate = ?
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
