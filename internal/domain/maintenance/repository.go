package maintenance

import "context"

type Repository interface {
	// Append records e as one atomic unit: create a bare vehicle row when the
	// plate is new, insert the event, and unconditionally update the
	// vehicle's last-maintenance cache to e. A concurrent reader never sees
	// the event without the cache update or vice versa.
	// Returns the persisted event with its assigned id.
	Append(ctx context.Context, e Event) (Event, error)

	// List returns events most-recent-first. Limit <= 0 means no cap.
	List(ctx context.Context, filter ListFilter) ([]Event, error)
}

type ListFilter struct {
	// Plate narrows to a single vehicle when non-empty (already normalized).
	Plate string
	Limit int
}
