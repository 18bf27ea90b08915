package maintenance

// Event is one maintenance intervention on a vehicle. Events are append-only:
// created once by the ledger, never updated or deleted here.
//
// ID is store-assigned and monotonic. OccurredAt is a stored timestamp string
// (platform/timefmt layouts), kept raw so malformed legacy rows surface at
// read time instead of corrupting writes.
type Event struct {
	ID    int64
	Plate string

	OccurredAt string

	Type       string
	Technician string
	Notes      string
}
