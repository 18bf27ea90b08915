package vehicles

import "context"

type Repository interface {
	// Create inserts a new vehicle. A plate that already exists returns
	// ErrDuplicatePlate, never a raw storage error.
	Create(ctx context.Context, v Vehicle) error
	Get(ctx context.Context, plate string) (Vehicle, error)
	// List returns the whole fleet ordered by plate.
	List(ctx context.Context) ([]Vehicle, error)
}
