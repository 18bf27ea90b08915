package analytics

import (
	"testing"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

var engineNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	e := NewEngine(logger.Nop())
	e.now = func() time.Time { return engineNow }
	return e
}

func stamp(daysAgo int) string {
	return timefmt.Format(engineNow.AddDate(0, 0, -daysAgo))
}

func vehicleAged(plate string, daysAgo int, typ string) vehicles.Vehicle {
	at := stamp(daysAgo)
	return vehicles.Vehicle{
		Plate:               plate,
		LastMaintenanceAt:   &at,
		LastMaintenanceType: &typ,
	}
}

func TestKPIs(t *testing.T) {
	e := testEngine()
	s := Snapshot{
		Vehicles: []vehicles.Vehicle{
			vehicleAged("OK11111", 2, maintenance.TypeCameraReset),
			vehicleAged("OK22222", 6, maintenance.TypeLensCleaning),
			vehicleAged("WARN111", 10, maintenance.TypeFunctionTest),
			vehicleAged("CRIT111", 20, maintenance.TypeOther),
			{Plate: "NEVER11"}, // no history, counts only toward the total
		},
		Events: []maintenance.Event{
			{ID: 1, Plate: "OK11111", OccurredAt: stamp(2), Type: maintenance.TypeCameraReset},
			{ID: 2, Plate: "CRIT111", OccurredAt: stamp(10), Type: maintenance.TypeOther},
			{ID: 3, Plate: "CRIT111", OccurredAt: stamp(60), Type: maintenance.TypeOther},
		},
	}

	got := e.KPIs(s)
	if got.TotalVehicles != 5 || got.TotalEvents != 3 {
		t.Fatalf("totals = %d vehicles / %d events", got.TotalVehicles, got.TotalEvents)
	}
	if got.OKCount != 2 || got.WarningCount != 1 || got.CriticalCount != 1 {
		t.Fatalf("tier counts = %d/%d/%d", got.OKCount, got.WarningCount, got.CriticalCount)
	}
	// 2 ok out of 5 total -> 40.0
	if got.ComplianceRate != 40.0 {
		t.Fatalf("compliance = %v, want 40.0", got.ComplianceRate)
	}
	// (2+6+10+20)/4 = 9.5
	if got.MeanDays != 9.5 {
		t.Fatalf("mean days = %v, want 9.5", got.MeanDays)
	}
	// Events at -2 and -10 days land in June; -60 does not.
	if got.EventsThisMonth != 2 {
		t.Fatalf("events this month = %d, want 2", got.EventsThisMonth)
	}
}

func TestKPIs_EmptyFleet(t *testing.T) {
	got := testEngine().KPIs(Snapshot{})
	if got.ComplianceRate != 0 || got.MeanDays != 0 || got.TotalVehicles != 0 {
		t.Fatalf("empty fleet KPIs = %+v", got)
	}
}

func TestKPIs_SkipsMalformedTimestamp(t *testing.T) {
	bad := "not-a-date"
	got := testEngine().KPIs(Snapshot{
		Vehicles: []vehicles.Vehicle{
			{Plate: "BAD1111", LastMaintenanceAt: &bad},
			vehicleAged("OK11111", 1, maintenance.TypeOther),
		},
	})
	if got.TotalVehicles != 2 {
		t.Fatalf("total = %d, want 2", got.TotalVehicles)
	}
	if got.OKCount != 1 || got.WarningCount != 0 || got.CriticalCount != 0 {
		t.Fatalf("tier counts = %d/%d/%d, malformed row should be skipped",
			got.OKCount, got.WarningCount, got.CriticalCount)
	}
}

func TestTrends_TopTypesCapAndOrder(t *testing.T) {
	events := make([]maintenance.Event, 0)
	add := func(typ string, n int) {
		for i := 0; i < n; i++ {
			events = append(events, maintenance.Event{
				ID: int64(len(events) + 1), Plate: "AAA1111", OccurredAt: stamp(1), Type: typ,
			})
		}
	}
	add("A", 5)
	add("B", 3)
	add("C", 3)
	add("D", 2)
	add("E", 1)
	add("F", 1)

	got := testEngine().Trends(Snapshot{Events: events})
	if len(got.TopTypes) != 5 {
		t.Fatalf("top types length = %d, want 5", len(got.TopTypes))
	}
	if got.TopTypes[0].Type != "A" || got.TopTypes[0].Count != 5 {
		t.Fatalf("top entry = %+v", got.TopTypes[0])
	}
	// B and C tie at 3; stable sort keeps B first.
	if got.TopTypes[1].Type != "B" || got.TopTypes[2].Type != "C" {
		t.Fatalf("tie order = %q, %q", got.TopTypes[1].Type, got.TopTypes[2].Type)
	}
	if got.Monthly["2026-06"] != 15 {
		t.Fatalf("monthly bucket = %d, want 15", got.Monthly["2026-06"])
	}
}

func TestForecast_InsufficientBelowSeven(t *testing.T) {
	events := make([]maintenance.Event, 6)
	for i := range events {
		events[i] = maintenance.Event{ID: int64(i + 1), OccurredAt: stamp(i + 1)}
	}
	got := testEngine().Forecast(Snapshot{Events: events})
	if !got.Insufficient {
		t.Fatal("expected insufficient data with 6 events")
	}
}

func TestForecast_ProjectsFromTrailingAverage(t *testing.T) {
	// One event per day across 7 consecutive days: moving average 1.0,
	// projection 7, daily mean 1.0.
	events := make([]maintenance.Event, 7)
	for i := range events {
		events[i] = maintenance.Event{ID: int64(i + 1), OccurredAt: stamp(i + 1)}
	}
	got := testEngine().Forecast(Snapshot{Events: events})
	if got.Insufficient {
		t.Fatal("unexpected insufficient data")
	}
	if got.NextWeek != 7 {
		t.Fatalf("next week = %d, want 7", got.NextWeek)
	}
	if got.DailyMean != 1.0 {
		t.Fatalf("daily mean = %v, want 1.0", got.DailyMean)
	}
}

func TestForecast_SingleDayWindow(t *testing.T) {
	// All 7 events on the same day: window shrinks to 1, average 7,
	// projection 49.
	events := make([]maintenance.Event, 7)
	for i := range events {
		events[i] = maintenance.Event{ID: int64(i + 1), OccurredAt: stamp(3)}
	}
	got := testEngine().Forecast(Snapshot{Events: events})
	if got.NextWeek != 49 {
		t.Fatalf("next week = %d, want 49", got.NextWeek)
	}
	if got.DailyMean != 7.0 {
		t.Fatalf("daily mean = %v, want 7.0", got.DailyMean)
	}
}

func TestRanking_CapsAtTen(t *testing.T) {
	s := Snapshot{}
	for i := 0; i < 15; i++ {
		plate := string(rune('A'+i)) + "AA0000"
		s.Vehicles = append(s.Vehicles, vehicles.Vehicle{Plate: plate})
		for j := 0; j <= i; j++ {
			s.Events = append(s.Events, maintenance.Event{
				ID: int64(len(s.Events) + 1), Plate: plate, OccurredAt: stamp(1),
			})
		}
	}

	got := testEngine().Ranking(s)
	if len(got) != 10 {
		t.Fatalf("ranking length = %d, want 10", len(got))
	}
	if got[0].TotalEvents != 15 {
		t.Fatalf("top entry events = %d, want 15", got[0].TotalEvents)
	}
	for i := 1; i < len(got); i++ {
		if got[i].TotalEvents > got[i-1].TotalEvents {
			t.Fatalf("ranking not descending at %d", i)
		}
	}
}

func TestFleetAlerts_TierBanding(t *testing.T) {
	got := testEngine().FleetAlerts(Snapshot{
		Vehicles: []vehicles.Vehicle{
			vehicleAged("FRESH11", 6, maintenance.TypeOther),
			vehicleAged("WARN111", 7, maintenance.TypeOther),
			vehicleAged("WARN222", 13, maintenance.TypeOther),
			vehicleAged("CRIT111", 14, maintenance.TypeOther),
			{Plate: "NEVER11"},
		},
	})
	if len(got.Warning) != 2 {
		t.Fatalf("warning count = %d, want 2", len(got.Warning))
	}
	if len(got.Critical) != 1 {
		t.Fatalf("critical count = %d, want 1", len(got.Critical))
	}
	if got.Critical[0].Plate != "CRIT111" || got.Critical[0].Severity != "critical" {
		t.Fatalf("critical entry = %+v", got.Critical[0])
	}
	if got.Warning[0].Days != 7 {
		t.Fatalf("warning days = %d, want 7", got.Warning[0].Days)
	}
}

func TestFleetAlerts_MissingTypeFallsBack(t *testing.T) {
	at := stamp(10)
	got := testEngine().FleetAlerts(Snapshot{
		Vehicles: []vehicles.Vehicle{{Plate: "WARN111", LastMaintenanceAt: &at}},
	})
	if len(got.Warning) != 1 || got.Warning[0].LastType != "N/A" {
		t.Fatalf("alerts = %+v, want N/A last type", got.Warning)
	}
}

func TestDashboardAlerts_BandingAndCap(t *testing.T) {
	s := Snapshot{
		Vehicles: []vehicles.Vehicle{
			vehicleAged("QUIET11", 13, maintenance.TypeOther), // below urgent threshold
			vehicleAged("URG1111", 14, maintenance.TypeOther),
			vehicleAged("URG2222", 20, maintenance.TypeOther),
			vehicleAged("CRI1111", 21, maintenance.TypeOther),
			vehicleAged("CRI2222", 30, maintenance.TypeOther),
			vehicleAged("CRI3333", 45, maintenance.TypeOther),
			vehicleAged("CRI4444", 60, maintenance.TypeOther),
		},
	}

	got := testEngine().DashboardAlerts(s)
	if len(got) != 5 {
		t.Fatalf("alert count = %d, want cap of 5", len(got))
	}
	if got[0].Plate != "CRI4444" || got[0].Level != "CRITICAL" {
		t.Fatalf("worst first = %+v", got[0])
	}
	// 13-day vehicle and the lowest urgent one fall off the top five.
	for _, a := range got {
		if a.Plate == "QUIET11" || a.Plate == "URG1111" {
			t.Fatalf("unexpected alert for %s", a.Plate)
		}
	}
	for _, a := range got {
		if a.Days == 20 && a.Level != "URGENT" {
			t.Fatalf("20 days should be URGENT, got %s", a.Level)
		}
		if a.Days == 21 && a.Level != "CRITICAL" {
			t.Fatalf("21 days should be CRITICAL, got %s", a.Level)
		}
	}
}
