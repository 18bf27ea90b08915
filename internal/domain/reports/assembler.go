package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/analytics"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/logger"
)

var ErrNoData = errors.New("no data for report")

// HistoryCap bounds the history report; the table is otherwise unbounded.
const HistoryCap = 10000

// Assembler shapes analytics output and per-vehicle detail into the four
// report tables and hands them to the sink.
type Assembler struct {
	loader *analytics.Loader
	engine *analytics.Engine
	sink   Sink
	log    logger.Logger
	now    func() time.Time
}

func NewAssembler(loader *analytics.Loader, engine *analytics.Engine, sink Sink, log logger.Logger) *Assembler {
	return &Assembler{
		loader: loader,
		engine: engine,
		sink:   sink,
		log:    log,
		now:    time.Now,
	}
}

// Fleet writes one row per vehicle plus a KPI summary block.
func (a *Assembler) Fleet(ctx context.Context) (Artifact, error) {
	s, err := a.loader.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}

	now := a.now()
	kpis := a.engine.KPIs(s)

	perPlate := map[string]int{}
	for _, ev := range s.Events {
		perPlate[ev.Plate]++
	}

	rep := Report{
		Name: "fleet_report",
		Columns: []string{
			"Plate", "Model", "Year", "Color",
			"Last Maintenance", "Days Since", "Status", "Last Type",
			"Total Events", "Registered At", "Notes",
		},
	}

	for _, v := range s.Vehicles {
		last := "never"
		days := "N/A"
		status := strings.ToUpper(string(vehicles.TierUnknown))
		if v.LastMaintenanceAt != nil {
			last = *v.LastMaintenanceAt
			info, err := vehicles.Classify(v.LastMaintenanceAt, now)
			if err != nil {
				a.log.Warn("skipping malformed timestamp", map[string]any{
					"kind":  "vehicle",
					"key":   v.Plate,
					"value": *v.LastMaintenanceAt,
				})
			} else {
				days = strconv.Itoa(*info.Days)
				status = strings.ToUpper(string(info.Tier))
			}
		}

		rep.Rows = append(rep.Rows, []string{
			v.Plate,
			v.Model,
			yearStr(v.Year),
			v.Color,
			last,
			days,
			status,
			lastType(v),
			strconv.Itoa(perPlate[v.Plate]),
			v.RegisteredAt,
			v.Notes,
		})
	}

	rep.Summary = [][]string{
		{"Total Vehicles", strconv.Itoa(kpis.TotalVehicles)},
		{"Vehicles OK", strconv.Itoa(kpis.OKCount)},
		{"Vehicles In Warning", strconv.Itoa(kpis.WarningCount)},
		{"Vehicles Critical", strconv.Itoa(kpis.CriticalCount)},
		{"Compliance Rate", fmt.Sprintf("%.1f", kpis.ComplianceRate)},
		{"Mean Days Since Maintenance", fmt.Sprintf("%.1f", kpis.MeanDays)},
		{"Events This Month", strconv.Itoa(kpis.EventsThisMonth)},
		{"Total Events", strconv.Itoa(kpis.TotalEvents)},
	}

	return a.emit(ctx, rep)
}

// History writes one row per event, most recent first, capped at HistoryCap.
// An empty history is ErrNoData.
func (a *Assembler) History(ctx context.Context) (Artifact, error) {
	s, err := a.loader.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}
	if len(s.Events) == 0 {
		return Artifact{}, ErrNoData
	}

	rep := Report{
		Name:    "maintenance_history",
		Columns: []string{"ID", "Plate", "Date", "Type", "Technician", "Notes"},
	}

	events := s.Events
	if len(events) > HistoryCap {
		events = events[:HistoryCap]
	}
	for _, ev := range events {
		rep.Rows = append(rep.Rows, []string{
			strconv.FormatInt(ev.ID, 10),
			ev.Plate,
			ev.OccurredAt,
			ev.Type,
			ev.Technician,
			ev.Notes,
		})
	}

	return a.emit(ctx, rep)
}

// Alerts writes warning rows then critical rows, the natural grouping of the
// fleet alert lists.
func (a *Assembler) Alerts(ctx context.Context) (Artifact, error) {
	s, err := a.loader.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}

	alerts := a.engine.FleetAlerts(s)

	rep := Report{
		Name:    "alerts",
		Columns: []string{"Plate", "Days Since", "Severity", "Last Type", "Last Date", "Priority"},
	}

	for _, al := range alerts.Warning {
		rep.Rows = append(rep.Rows, alertRow(al, "medium"))
	}
	for _, al := range alerts.Critical {
		rep.Rows = append(rep.Rows, alertRow(al, "high"))
	}

	return a.emit(ctx, rep)
}

// ByType writes one row per distinct event type with count and share of the
// total, largest first.
func (a *Assembler) ByType(ctx context.Context) (Artifact, error) {
	s, err := a.loader.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}

	byType := map[string]int{}
	order := make([]string, 0)
	for _, ev := range s.Events {
		if _, seen := byType[ev.Type]; !seen {
			order = append(order, ev.Type)
		}
		byType[ev.Type]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return byType[order[i]] > byType[order[j]]
	})

	rep := Report{
		Name:    "by_type",
		Columns: []string{"Maintenance Type", "Count", "Percentage"},
	}

	total := len(s.Events)
	for _, typ := range order {
		pct := 0.0
		if total > 0 {
			pct = float64(byType[typ]) / float64(total) * 100
		}
		rep.Rows = append(rep.Rows, []string{
			typ,
			strconv.Itoa(byType[typ]),
			fmt.Sprintf("%.1f%%", pct),
		})
	}

	return a.emit(ctx, rep)
}

func (a *Assembler) emit(ctx context.Context, rep Report) (Artifact, error) {
	handle, err := a.sink.Write(ctx, rep)
	if err != nil {
		return Artifact{}, err
	}

	art := Artifact{
		ID:       uuid.NewString(),
		Filename: handle,
	}
	a.log.Info("report generated", map[string]any{
		"report":      rep.Name,
		"artifact_id": art.ID,
		"filename":    art.Filename,
		"rows":        len(rep.Rows),
	})
	return art, nil
}

func alertRow(al analytics.Alert, priority string) []string {
	return []string{
		al.Plate,
		strconv.Itoa(al.Days),
		al.Severity,
		al.LastType,
		al.LastDate,
		priority,
	}
}

func yearStr(y int) string {
	if y == 0 {
		return "N/A"
	}
	return strconv.Itoa(y)
}

func lastType(v vehicles.Vehicle) string {
	if v.LastMaintenanceType == nil || *v.LastMaintenanceType == "" {
		return "N/A"
	}
	return *v.LastMaintenanceType
}
