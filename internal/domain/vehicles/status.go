package vehicles

import (
	"fmt"
	"math"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

// Tier is the staleness classification of a vehicle's last maintenance.
type Tier string

const (
	TierOK       Tier = "ok"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
	TierUnknown  Tier = "unknown"
)

// Tier boundaries in whole days, inclusive as named: days <= FreshMaxDays is
// ok, days <= WarningMaxDays is warning, anything above is critical.
const (
	FreshMaxDays   = 6
	WarningMaxDays = 13
)

// StatusInfo is derived on demand from a vehicle's last maintenance; it is
// never persisted.
type StatusInfo struct {
	Tier    Tier   `json:"tier"`
	Days    *int   `json:"days_since"`
	Message string `json:"message"`
}

// Classify maps a stored last-maintenance timestamp to a status tier.
//
// last == nil means no maintenance was ever recorded (tier unknown). Days are
// floored: a partial day counts as the lower integer, and a future timestamp
// yields negative days, which still classifies as ok.
// A timestamp that parses with neither stored layout returns
// timefmt.ErrMalformedTimestamp; fleet-wide scans skip such rows.
func Classify(last *string, now time.Time) (StatusInfo, error) {
	if last == nil {
		return StatusInfo{
			Tier:    TierUnknown,
			Message: "no maintenance recorded",
		}, nil
	}

	t, err := timefmt.Parse(*last)
	if err != nil {
		return StatusInfo{}, err
	}

	days := DaysSince(t, now)
	info := StatusInfo{Days: &days}

	switch {
	case days <= FreshMaxDays:
		info.Tier = TierOK
		info.Message = fmt.Sprintf("up to date - %d days", days)
	case days <= WarningMaxDays:
		info.Tier = TierWarning
		info.Message = fmt.Sprintf("attention - %d days", days)
	default:
		info.Tier = TierCritical
		info.Message = fmt.Sprintf("critical - %d days", days)
	}

	return info, nil
}

// DaysSince is floor((now - t) in whole days). Floor, not truncate: for a
// future t the result goes to the lower (more negative) integer.
func DaysSince(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}
