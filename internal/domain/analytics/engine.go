package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

// Alert banding for the dashboard feed. This is deliberately stricter than
// the status tiers: the dashboard escalates at >20 days, while fleet alerts
// follow the 7/14 tier boundaries. Keep both; they serve different consumers.
const (
	DashboardUrgentAfterDays   = 13
	DashboardCriticalAfterDays = 20
)

// Engine computes fleet KPIs, trends, forecasts, rankings and alerts from a
// snapshot. Every computation skips rows whose stored timestamp fails to
// parse, logging the skip; one bad row never aborts a fleet-wide result.
type Engine struct {
	log logger.Logger
	now func() time.Time
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		log: log,
		now: time.Now,
	}
}

type KPIs struct {
	TotalVehicles   int     `json:"total_vehicles"`
	OKCount         int     `json:"ok_count"`
	WarningCount    int     `json:"warning_count"`
	CriticalCount   int     `json:"critical_count"`
	ComplianceRate  float64 `json:"compliance_rate"`
	MeanDays        float64 `json:"mean_days"`
	EventsThisMonth int     `json:"events_this_month"`
	TotalEvents     int     `json:"total_events"`
}

// KPIs aggregates the fleet. Tier counts cover only vehicles with at least
// one recorded maintenance; vehicles without one still count toward
// TotalVehicles. ComplianceRate = ok / total * 100, 0 for an empty fleet.
func (e *Engine) KPIs(s Snapshot) KPIs {
	now := e.now()
	out := KPIs{
		TotalVehicles: len(s.Vehicles),
		TotalEvents:   len(s.Events),
	}

	var daysSum, daysN int
	for _, v := range s.Vehicles {
		if v.LastMaintenanceAt == nil {
			continue
		}
		info, err := vehicles.Classify(v.LastMaintenanceAt, now)
		if err != nil {
			e.skip("vehicle", v.Plate, *v.LastMaintenanceAt)
			continue
		}

		daysSum += *info.Days
		daysN++

		switch info.Tier {
		case vehicles.TierOK:
			out.OKCount++
		case vehicles.TierWarning:
			out.WarningCount++
		case vehicles.TierCritical:
			out.CriticalCount++
		}
	}

	if out.TotalVehicles > 0 {
		out.ComplianceRate = round1(float64(out.OKCount) / float64(out.TotalVehicles) * 100)
	}
	if daysN > 0 {
		out.MeanDays = round1(float64(daysSum) / float64(daysN))
	}

	for _, ev := range s.Events {
		t, err := timefmt.Parse(ev.OccurredAt)
		if err != nil {
			e.skipEvent(ev.ID, ev.OccurredAt)
			continue
		}
		if t.Year() == now.Year() && t.Month() == now.Month() {
			out.EventsThisMonth++
		}
	}

	return out
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type Trends struct {
	Monthly  map[string]int `json:"monthly"`
	TopTypes []TypeCount    `json:"top_types"`
}

// Trends buckets events per calendar month and ranks the five most frequent
// types. Ties keep first-encountered order (stable sort over event order).
func (e *Engine) Trends(s Snapshot) Trends {
	out := Trends{Monthly: map[string]int{}}

	for _, ev := range s.Events {
		t, err := timefmt.Parse(ev.OccurredAt)
		if err != nil {
			e.skipEvent(ev.ID, ev.OccurredAt)
			continue
		}
		out.Monthly[t.Format("2006-01")]++
	}

	byType := map[string]int{}
	order := make([]string, 0)
	for _, ev := range s.Events {
		if _, seen := byType[ev.Type]; !seen {
			order = append(order, ev.Type)
		}
		byType[ev.Type]++
	}

	counts := make([]TypeCount, 0, len(order))
	for _, typ := range order {
		counts = append(counts, TypeCount{Type: typ, Count: byType[typ]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	out.TopTypes = counts

	return out
}

// MinForecastEvents is the precondition for a numeric projection; below it
// the forecast reports insufficient data, which is an expected outcome and
// not an error.
const MinForecastEvents = 7

type Forecast struct {
	Insufficient bool    `json:"insufficient_data"`
	NextWeek     int     `json:"next_week_projection"`
	DailyMean    float64 `json:"daily_mean"`
}

// Forecast projects next week's event volume: a 7-day trailing moving
// average over per-day counts (window shrinks to 1 at the start), the most
// recent value times 7, rounded. DailyMean averages over observed days only.
func (e *Engine) Forecast(s Snapshot) Forecast {
	if len(s.Events) < MinForecastEvents {
		return Forecast{Insufficient: true}
	}

	perDay := map[string]int{}
	for _, ev := range s.Events {
		t, err := timefmt.Parse(ev.OccurredAt)
		if err != nil {
			e.skipEvent(ev.ID, ev.OccurredAt)
			continue
		}
		perDay[timefmt.Day(t)]++
	}
	if len(perDay) == 0 {
		return Forecast{Insufficient: true}
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	counts := make([]float64, len(days))
	total := 0
	for i, d := range days {
		counts[i] = float64(perDay[d])
		total += perDay[d]
	}

	// Trailing moving average; only the last value feeds the projection but
	// the window walk mirrors how the series is charted.
	var latest float64
	for i := range counts {
		lo := i - 6
		if lo < 0 {
			lo = 0
		}
		sum := 0.0
		for _, c := range counts[lo : i+1] {
			sum += c
		}
		latest = sum / float64(i+1-lo)
	}

	return Forecast{
		NextWeek:  int(math.Round(latest * 7)),
		DailyMean: round1(float64(total) / float64(len(days))),
	}
}

type RankEntry struct {
	Plate           string  `json:"plate"`
	TotalEvents     int     `json:"total_events"`
	LastMaintenance *string `json:"last_maintenance"`
	Model           string  `json:"model"`
}

// Ranking lists the ten most-maintained vehicles by lifetime event count.
// Ties keep the plate order the snapshot came in.
func (e *Engine) Ranking(s Snapshot) []RankEntry {
	perPlate := map[string]int{}
	for _, ev := range s.Events {
		perPlate[ev.Plate]++
	}

	out := make([]RankEntry, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		out = append(out, RankEntry{
			Plate:           v.Plate,
			TotalEvents:     perPlate[v.Plate],
			LastMaintenance: v.LastMaintenanceAt,
			Model:           v.Model,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalEvents > out[j].TotalEvents
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

type Alert struct {
	Plate    string `json:"plate"`
	Days     int    `json:"days"`
	LastType string `json:"last_type"`
	LastDate string `json:"last_date"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type FleetAlerts struct {
	Warning  []Alert `json:"warning"`
	Critical []Alert `json:"critical"`
}

// FleetAlerts lists every vehicle past the fresh tier, grouped by the status
// tier banding: 7-13 days warning, 14+ critical. A vehicle at 6 days appears
// in neither.
func (e *Engine) FleetAlerts(s Snapshot) FleetAlerts {
	now := e.now()
	out := FleetAlerts{
		Warning:  make([]Alert, 0),
		Critical: make([]Alert, 0),
	}

	for _, v := range s.Vehicles {
		if v.LastMaintenanceAt == nil {
			continue
		}
		info, err := vehicles.Classify(v.LastMaintenanceAt, now)
		if err != nil {
			e.skip("vehicle", v.Plate, *v.LastMaintenanceAt)
			continue
		}
		if *info.Days <= vehicles.FreshMaxDays {
			continue
		}

		a := Alert{
			Plate:    v.Plate,
			Days:     *info.Days,
			LastType: lastType(v),
			LastDate: *v.LastMaintenanceAt,
			Message:  info.Message,
		}

		if *info.Days <= vehicles.WarningMaxDays {
			a.Severity = "warning"
			out.Warning = append(out.Warning, a)
		} else {
			a.Severity = "critical"
			out.Critical = append(out.Critical, a)
		}
	}

	return out
}

type DashboardAlert struct {
	Plate   string `json:"plate"`
	Days    int    `json:"days"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// DashboardAlerts is the stricter dashboard-only feed: >20 days CRITICAL,
// 14-20 URGENT, worst first, capped at five.
func (e *Engine) DashboardAlerts(s Snapshot) []DashboardAlert {
	now := e.now()
	out := make([]DashboardAlert, 0)

	for _, v := range s.Vehicles {
		if v.LastMaintenanceAt == nil {
			continue
		}
		t, err := timefmt.Parse(*v.LastMaintenanceAt)
		if err != nil {
			e.skip("vehicle", v.Plate, *v.LastMaintenanceAt)
			continue
		}
		days := vehicles.DaysSince(t, now)

		switch {
		case days > DashboardCriticalAfterDays:
			out = append(out, DashboardAlert{
				Plate:   v.Plate,
				Days:    days,
				Level:   "CRITICAL",
				Message: fmt.Sprintf("vehicle %s has gone %d days without maintenance", v.Plate, days),
			})
		case days > DashboardUrgentAfterDays:
			out = append(out, DashboardAlert{
				Plate:   v.Plate,
				Days:    days,
				Level:   "URGENT",
				Message: fmt.Sprintf("vehicle %s needs URGENT maintenance", v.Plate),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Days > out[j].Days
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

type Dashboard struct {
	KPIs     KPIs             `json:"kpis"`
	Trends   Trends           `json:"trends"`
	Forecast Forecast         `json:"forecast"`
	Ranking  []RankEntry      `json:"ranking"`
	Alerts   []DashboardAlert `json:"alerts"`
}

// Dashboard bundles every analytics output from one snapshot.
func (e *Engine) Dashboard(s Snapshot) Dashboard {
	return Dashboard{
		KPIs:     e.KPIs(s),
		Trends:   e.Trends(s),
		Forecast: e.Forecast(s),
		Ranking:  e.Ranking(s),
		Alerts:   e.DashboardAlerts(s),
	}
}

func lastType(v vehicles.Vehicle) string {
	if v.LastMaintenanceType == nil || *v.LastMaintenanceType == "" {
		return "N/A"
	}
	return *v.LastMaintenanceType
}

func (e *Engine) skip(kind, key, raw string) {
	e.log.Warn("skipping malformed timestamp", map[string]any{
		"kind":  kind,
		"key":   key,
		"value": raw,
	})
}

func (e *Engine) skipEvent(id int64, raw string) {
	e.log.Warn("skipping malformed timestamp", map[string]any{
		"kind":     "event",
		"event_id": id,
		"value":    raw,
	})
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
