package vehicles

// Vehicle is a fleet vehicle identified by its plate (uppercase, unique).
//
// LastMaintenanceAt/LastMaintenanceType are a denormalized cache of the most
// recent maintenance event for the plate: both nil iff no event exists, and
// otherwise always equal to the chronologically latest event. The event
// history remains the source of truth; the ledger keeps the cache in step.
//
// Timestamps are carried as stored strings (see platform/timefmt): rows can
// predate this service and a malformed value must be skippable per record,
// not fatal to a whole fleet scan.
type Vehicle struct {
	Plate string

	Model string
	Year  int
	Color string
	Notes string

	RegisteredAt string

	LastMaintenanceAt   *string
	LastMaintenanceType *string
}
