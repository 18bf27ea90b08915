package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hevertoncelestino/controle-manutencao/internal/domain/maintenance"
	"github.com/hevertoncelestino/controle-manutencao/internal/domain/vehicles"
	"github.com/hevertoncelestino/controle-manutencao/internal/platform/timefmt"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testStamp(day int) string {
	return timefmt.Format(time.Date(2026, 4, day, 8, 30, 0, 0, time.UTC))
}

func TestVehiclesRepo_DuplicatePlate(t *testing.T) {
	ctx := context.Background()
	repo := NewVehiclesRepo(openTestDB(t))

	v := vehicles.Vehicle{Plate: "ABC1234", Model: "DVR-4", RegisteredAt: testStamp(1)}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, v); !errors.Is(err, vehicles.ErrDuplicatePlate) {
		t.Fatalf("second Create: err = %v, want ErrDuplicatePlate", err)
	}
}

func TestVehiclesRepo_GetNotFound(t *testing.T) {
	repo := NewVehiclesRepo(openTestDB(t))
	_, err := repo.Get(context.Background(), "NOPE000")
	if !errors.Is(err, vehicles.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEventsRepo_AppendCreatesVehicleAndCache(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	events := NewEventsRepo(db)
	vrepo := NewVehiclesRepo(db)

	e, err := events.Append(ctx, maintenance.Event{
		Plate:      "NEW7777",
		OccurredAt: testStamp(5),
		Type:       maintenance.TypeCameraReset,
		Technician: "system",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("expected assigned id")
	}

	v, err := vrepo.Get(ctx, "NEW7777")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.RegisteredAt != testStamp(5) {
		t.Fatalf("registered_at = %q", v.RegisteredAt)
	}
	if v.LastMaintenanceAt == nil || *v.LastMaintenanceAt != testStamp(5) {
		t.Fatalf("cache date = %v", v.LastMaintenanceAt)
	}
	if v.LastMaintenanceType == nil || *v.LastMaintenanceType != maintenance.TypeCameraReset {
		t.Fatalf("cache type = %v", v.LastMaintenanceType)
	}
}

func TestEventsRepo_AppendUpdatesExistingCache(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	events := NewEventsRepo(db)
	vrepo := NewVehiclesRepo(db)

	if err := vrepo.Create(ctx, vehicles.Vehicle{
		Plate: "OLD8888", Model: "DVR-8", RegisteredAt: testStamp(1),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := events.Append(ctx, maintenance.Event{
		Plate: "OLD8888", OccurredAt: testStamp(3), Type: maintenance.TypeOther, Technician: "system",
	}); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if _, err := events.Append(ctx, maintenance.Event{
		Plate: "OLD8888", OccurredAt: testStamp(8), Type: maintenance.TypeLensCleaning, Technician: "system",
	}); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	v, err := vrepo.Get(ctx, "OLD8888")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Model != "DVR-8" || v.RegisteredAt != testStamp(1) {
		t.Fatalf("vehicle fields clobbered: %+v", v)
	}
	if *v.LastMaintenanceAt != testStamp(8) || *v.LastMaintenanceType != maintenance.TypeLensCleaning {
		t.Fatalf("cache = %q / %q, want second event", *v.LastMaintenanceAt, *v.LastMaintenanceType)
	}
}

func TestEventsRepo_ListOrderFilterLimit(t *testing.T) {
	ctx := context.Background()
	events := NewEventsRepo(openTestDB(t))

	for i, in := range []struct {
		plate string
		day   int
	}{
		{"AAA1111", 2},
		{"BBB2222", 9},
		{"AAA1111", 6},
	} {
		if _, err := events.Append(ctx, maintenance.Event{
			Plate: in.plate, OccurredAt: testStamp(in.day), Type: maintenance.TypeOther, Technician: "system",
		}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	all, err := events.List(ctx, maintenance.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
	if all[0].OccurredAt != testStamp(9) || all[2].OccurredAt != testStamp(2) {
		t.Fatalf("order = %q .. %q", all[0].OccurredAt, all[2].OccurredAt)
	}

	mine, err := events.List(ctx, maintenance.ListFilter{Plate: "AAA1111"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(mine) != 2 || mine[0].OccurredAt != testStamp(6) {
		t.Fatalf("filtered = %+v", mine)
	}

	capped, err := events.List(ctx, maintenance.ListFilter{Limit: 1})
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(capped) != 1 || capped[0].OccurredAt != testStamp(9) {
		t.Fatalf("limited = %+v", capped)
	}
}
